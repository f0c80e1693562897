package sim

import "math"

const (
	carryingCapacity     = 15.0 // billion people
	waterReference       = 2.5 * 8.1
	healthAdjustmentRate = 0.05
	recoveryRate         = 0.002
	lowLandPressure      = 0.8
	demandPerBillion     = 1.2
)

// Project computes next year's indicators from the active diet and the
// previous year's indicators. Later steps consume values computed earlier in
// the same call, so the order below is significant. year identifies the step
// being projected and does not enter the arithmetic.
func Project(diet DietDistribution, previous IndicatorVector, year int) IndicatorVector {
	population := projectPopulation(diet, previous.Population, previous.FoodSecurity)
	landUse := projectLandUse(diet, population)
	co2 := projectCO2(diet, population)
	waterUse := projectWaterUse(diet, population)
	biodiversity := projectBiodiversity(diet, previous.Biodiversity, landUse)
	foodSecurity := projectFoodSecurity(diet, population, landUse)
	health := projectHealth(diet, previous.HealthIndex)
	animalLives := projectAnimalLives(diet, population)

	return IndicatorVector{
		CO2:          co2,
		LandUse:      landUse,
		WaterUse:     waterUse,
		HealthIndex:  health,
		Population:   population,
		Biodiversity: biodiversity,
		FoodSecurity: foodSecurity,
		AnimalLives:  animalLives,
	}
}

// weightedAverage sums share × factor over every diet category.
func weightedAverage(diet DietDistribution, factor func(DietFactors) float64) float64 {
	sum := 0.0
	for _, c := range Categories() {
		sum += diet[c] / 100 * factor(FactorsFor(c))
	}
	return sum
}

func co2Factor(f DietFactors) float64          { return f.CO2 }
func landFactor(f DietFactors) float64         { return f.Land }
func waterFactor(f DietFactors) float64        { return f.Water }
func healthFactor(f DietFactors) float64       { return f.Health }
func biodiversityFactor(f DietFactors) float64 { return f.Biodiversity }
func efficiencyFactor(f DietFactors) float64   { return f.Efficiency }
func animalFactor(f DietFactors) float64       { return f.AnimalsKilled }

func projectPopulation(diet DietDistribution, previous, foodSecurity float64) float64 {
	growthRate := PopulationBaseGrowth * (foodSecurity / 100)
	adjusted := growthRate * (0.5 + weightedAverage(diet, healthFactor)*0.5)
	grown := previous * (1 + adjusted)
	if grown > carryingCapacity {
		grown = carryingCapacity - (carryingCapacity-grown)*0.1
	}
	return roundTo(grown, 2)
}

// projectLandUse converts hectares per person into million km².
func projectLandUse(diet DietDistribution, population float64) float64 {
	raw := weightedAverage(diet, landFactor) * population * 10
	return roundTo(clamp(raw, 10, 80), 1)
}

func projectCO2(diet DietDistribution, population float64) float64 {
	food := weightedAverage(diet, co2Factor) * population
	nonFood := Baselines.CO2 * (1 - Baselines.FoodCO2Share)
	return roundTo(food+nonFood, 1)
}

func projectWaterUse(diet DietDistribution, population float64) float64 {
	consumption := weightedAverage(diet, waterFactor) * population
	raw := Baselines.Freshwater * consumption / waterReference
	return roundTo(clamp(raw, 30, 95), 1)
}

func projectBiodiversity(diet DietDistribution, previous, landUse float64) float64 {
	landPressure := landUse / Baselines.AgriculturalLand
	annualLoss := weightedAverage(diet, biodiversityFactor) * landPressure
	recovery := 0.0
	if landPressure < lowLandPressure {
		recovery = recoveryRate
	}
	next := previous - annualLoss + recovery*(100-previous)
	return roundTo(clamp(next, 10, 100), 1)
}

func projectFoodSecurity(diet DietDistribution, population, landUse float64) float64 {
	capacity := landUse * weightedAverage(diet, efficiencyFactor) * 10
	demand := population * demandPerBillion
	security := 100.0
	if demand > 0 {
		security = math.Min(100, capacity/demand*100)
	}
	return roundTo(math.Max(30, security), 1)
}

// projectHealth moves the index a fixed fraction of the way to its target.
func projectHealth(diet DietDistribution, previous float64) float64 {
	target := Baselines.Health * weightedAverage(diet, healthFactor)
	next := previous + (target-previous)*healthAdjustmentRate
	return roundTo(clamp(next, 40, 95), 1)
}

func projectAnimalLives(diet DietDistribution, population float64) float64 {
	return roundTo(weightedAverage(diet, animalFactor)*population, 1)
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// roundTo rounds half away from zero at the given number of decimals.
func roundTo(v float64, decimals int) float64 {
	scale := math.Pow(10, float64(decimals))
	return math.Round(v*scale) / scale
}
