package sim

import "time"

// DietFactors are the per-person characteristics of one diet category.
type DietFactors struct {
	CO2           float64 // tonnes CO2 per person per year
	Land          float64 // hectares per person per year
	Water         float64 // cubic metres per person per day
	Health        float64 // health multiplier, mixed = 1
	Biodiversity  float64 // annual biodiversity impact, higher is worse
	Efficiency    float64 // food conversion efficiency
	AnimalsKilled float64 // animals (excluding insects) per person per year
}

// FactorsFor returns the static factor row of a diet category.
func FactorsFor(c DietCategory) DietFactors {
	switch c {
	case Vegan:
		return DietFactors{CO2: 1.5, Land: 0.13, Water: 1.1, Health: 1.15, Biodiversity: 0.02, Efficiency: 1.0, AnimalsKilled: 0}
	case Vegetarian:
		return DietFactors{CO2: 2.5, Land: 0.25, Water: 1.8, Health: 1.10, Biodiversity: 0.05, Efficiency: 0.7, AnimalsKilled: 3}
	case Pescatarian:
		return DietFactors{CO2: 2.9, Land: 0.22, Water: 1.5, Health: 1.08, Biodiversity: 0.08, Efficiency: 0.65, AnimalsKilled: 250}
	case Mixed:
		return DietFactors{CO2: 3.8, Land: 0.43, Water: 2.5, Health: 1.00, Biodiversity: 0.12, Efficiency: 0.4, AnimalsKilled: 180}
	case Carnivore:
		return DietFactors{CO2: 5.5, Land: 0.65, Water: 3.5, Health: 0.88, Biodiversity: 0.18, Efficiency: 0.25, AnimalsKilled: 350}
	default:
		return DietFactors{}
	}
}

type BaselineValues struct {
	Population       float64 // billion people
	CO2              float64 // Gt per year, all sources
	FoodCO2Share     float64 // share of CO2 from the food system
	AgriculturalLand float64 // million km²
	Freshwater       float64 // % of freshwater used by agriculture
	Biodiversity     float64 // % of species remaining vs 1970
	FoodSecurity     float64 // % of population with adequate food access
	Health           float64 // global health score
	AnimalLives      float64 // billion animals killed per year
}

// Baselines are the 2024 reference measurements.
var Baselines = BaselineValues{
	Population:       8.1,
	CO2:              36.8,
	FoodCO2Share:     0.26,
	AgriculturalLand: 50,
	Freshwater:       70,
	Biodiversity:     68,
	FoodSecurity:     89,
	Health:           65,
	AnimalLives:      1500,
}

const (
	PopulationBaseGrowth = 0.009

	StartYear = 2024
	MaxYear   = 2200

	MinSpeed     = 0.5
	MaxSpeed     = 10.0
	DefaultSpeed = 1.0

	// one simulated year per tickBase at speed 1
	tickBase = time.Second
)

// SpeedOptions are the speed multipliers offered to the user.
func SpeedOptions() []float64 {
	return []float64{0.5, 1, 2, 5, 10}
}
