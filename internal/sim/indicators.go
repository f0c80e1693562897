package sim

import (
	"fmt"
	"strings"
)

type Indicator int

const (
	CO2 Indicator = iota
	LandUse
	WaterUse
	HealthIndex
	Population
	Biodiversity
	FoodSecurity
	AnimalLives
)

func Indicators() []Indicator {
	return []Indicator{CO2, LandUse, WaterUse, HealthIndex, Population, Biodiversity, FoodSecurity, AnimalLives}
}

func (i Indicator) String() string {
	switch i {
	case CO2:
		return "co2"
	case LandUse:
		return "landUse"
	case WaterUse:
		return "waterUse"
	case HealthIndex:
		return "healthIndex"
	case Population:
		return "population"
	case Biodiversity:
		return "biodiversity"
	case FoodSecurity:
		return "foodSecurity"
	case AnimalLives:
		return "animalLives"
	default:
		return fmt.Sprintf("indicator(%d)", int(i))
	}
}

func (i Indicator) Valid() bool {
	return i >= CO2 && i <= AnimalLives
}

// ParseIndicator accepts the indicator key case-insensitively.
func ParseIndicator(raw string) (Indicator, error) {
	key := strings.ToLower(strings.TrimSpace(raw))
	for _, ind := range Indicators() {
		if strings.ToLower(ind.String()) == key {
			return ind, nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownIndicator, raw)
}

func (i Indicator) MarshalText() ([]byte, error) {
	if !i.Valid() {
		return nil, fmt.Errorf("%w: %d", ErrUnknownIndicator, int(i))
	}
	return []byte(i.String()), nil
}

func (i *Indicator) UnmarshalText(text []byte) error {
	parsed, err := ParseIndicator(string(text))
	if err != nil {
		return err
	}
	*i = parsed
	return nil
}

type IndicatorVector struct {
	CO2          float64 `json:"co2"`
	LandUse      float64 `json:"landUse"`
	WaterUse     float64 `json:"waterUse"`
	HealthIndex  float64 `json:"healthIndex"`
	Population   float64 `json:"population"`
	Biodiversity float64 `json:"biodiversity"`
	FoodSecurity float64 `json:"foodSecurity"`
	AnimalLives  float64 `json:"animalLives"`
}

// BaselineIndicators is the 2024 seed vector.
func BaselineIndicators() IndicatorVector {
	return IndicatorVector{
		CO2:          Baselines.CO2,
		LandUse:      Baselines.AgriculturalLand,
		WaterUse:     Baselines.Freshwater,
		HealthIndex:  Baselines.Health,
		Population:   Baselines.Population,
		Biodiversity: Baselines.Biodiversity,
		FoodSecurity: Baselines.FoodSecurity,
		AnimalLives:  Baselines.AnimalLives,
	}
}

func (v IndicatorVector) Value(i Indicator) float64 {
	switch i {
	case CO2:
		return v.CO2
	case LandUse:
		return v.LandUse
	case WaterUse:
		return v.WaterUse
	case HealthIndex:
		return v.HealthIndex
	case Population:
		return v.Population
	case Biodiversity:
		return v.Biodiversity
	case FoodSecurity:
		return v.FoodSecurity
	case AnimalLives:
		return v.AnimalLives
	default:
		return 0
	}
}

// Baseline returns the 2024 reference value of an indicator.
func (i Indicator) Baseline() float64 {
	return BaselineIndicators().Value(i)
}

type Range struct {
	Min     float64
	Max     float64
	Clamped bool
}

func (r Range) Contains(v float64) bool {
	if !r.Clamped {
		return v >= r.Min
	}
	return v >= r.Min && v <= r.Max
}

// IndicatorRange returns the documented valid range of an indicator.
// Unclamped indicators only guarantee a non-negative value.
func IndicatorRange(i Indicator) Range {
	switch i {
	case LandUse:
		return Range{Min: 10, Max: 80, Clamped: true}
	case WaterUse:
		return Range{Min: 30, Max: 95, Clamped: true}
	case HealthIndex:
		return Range{Min: 40, Max: 95, Clamped: true}
	case Biodiversity:
		return Range{Min: 10, Max: 100, Clamped: true}
	case FoodSecurity:
		return Range{Min: 30, Max: 100, Clamped: true}
	default:
		return Range{Min: 0}
	}
}

type GoodDirection string

const (
	GoodUp      GoodDirection = "up"
	GoodDown    GoodDirection = "down"
	GoodNeutral GoodDirection = "neutral"
)

type IndicatorMeta struct {
	Key         Indicator     `json:"key"`
	Label       string        `json:"label"`
	Unit        string        `json:"unit"`
	Description string        `json:"description"`
	Color       string        `json:"color"`
	Good        GoodDirection `json:"goodDirection"`
}

func IndicatorInfo(i Indicator) IndicatorMeta {
	switch i {
	case CO2:
		return IndicatorMeta{Key: i, Label: "CO2 emissions", Unit: "Gt/yr", Description: "Annual CO2 emissions, all sources", Color: "#ff6b35", Good: GoodDown}
	case LandUse:
		return IndicatorMeta{Key: i, Label: "Land use", Unit: "M km²", Description: "Agricultural land area", Color: "#8b4513", Good: GoodDown}
	case WaterUse:
		return IndicatorMeta{Key: i, Label: "Water use", Unit: "%", Description: "Freshwater used by agriculture", Color: "#1e90ff", Good: GoodDown}
	case HealthIndex:
		return IndicatorMeta{Key: i, Label: "Health", Unit: "index", Description: "Global health index", Color: "#ff69b4", Good: GoodUp}
	case Population:
		return IndicatorMeta{Key: i, Label: "Population", Unit: "bn", Description: "World population", Color: "#ffd700", Good: GoodNeutral}
	case Biodiversity:
		return IndicatorMeta{Key: i, Label: "Biodiversity", Unit: "%", Description: "Species remaining vs 1970", Color: "#32cd32", Good: GoodUp}
	case FoodSecurity:
		return IndicatorMeta{Key: i, Label: "Food security", Unit: "%", Description: "Population with adequate food access", Color: "#daa520", Good: GoodUp}
	case AnimalLives:
		return IndicatorMeta{Key: i, Label: "Animal lives", Unit: "bn/yr", Description: "Animals killed for food, excluding insects", Color: "#c41e3a", Good: GoodDown}
	default:
		return IndicatorMeta{Key: i, Good: GoodNeutral}
	}
}

type DietMeta struct {
	Key   DietCategory `json:"key"`
	Label string       `json:"label"`
	Color string       `json:"color"`
}

func DietInfo(c DietCategory) DietMeta {
	switch c {
	case Vegan:
		return DietMeta{Key: c, Label: "Vegan", Color: "#39ff14"}
	case Vegetarian:
		return DietMeta{Key: c, Label: "Vegetarian", Color: "#7fff00"}
	case Pescatarian:
		return DietMeta{Key: c, Label: "Pescatarian", Color: "#00bfff"}
	case Mixed:
		return DietMeta{Key: c, Label: "Mixed", Color: "#ffaa00"}
	case Carnivore:
		return DietMeta{Key: c, Label: "Carnivore", Color: "#ff4444"}
	default:
		return DietMeta{Key: c, Label: c.String(), Color: "#ffffff"}
	}
}
