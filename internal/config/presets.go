package config

// BuiltInPresets are available when the config file defines none.
func BuiltInPresets() []Preset {
	return []Preset{
		{
			Name:        "status-quo",
			Description: "Global diet mix in 2024",
			Diet:        map[string]float64{"vegan": 1, "vegetarian": 5, "pescatarian": 3, "mixed": 85, "carnivore": 6},
		},
		{
			Name:        "flexitarian",
			Description: "Half the world eats mostly plants",
			Diet:        map[string]float64{"vegan": 10, "vegetarian": 25, "pescatarian": 15, "mixed": 48, "carnivore": 2},
		},
		{
			Name:        "vegetarian-world",
			Description: "No meat, dairy and eggs remain",
			Diet:        map[string]float64{"vegan": 20, "vegetarian": 80},
		},
		{
			Name:        "vegan-world",
			Description: "Everyone eats plant-based",
			Diet:        map[string]float64{"vegan": 100},
		},
		{
			Name:        "carnivore-world",
			Description: "Everyone eats a meat-heavy diet",
			Diet:        map[string]float64{"carnivore": 100},
		},
	}
}
