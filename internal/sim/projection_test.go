package sim

import (
	"math"
	"math/rand/v2"
	"testing"
)

func TestWeightedAverageOfInitialDiet(t *testing.T) {
	got := weightedAverage(InitialDiet(), healthFactor)
	if !approxEqual(got, 1.0017) {
		t.Fatalf("health weighted average=%.6f want 1.0017", got)
	}
	if got := weightedAverage(DietDistribution{Vegan: 100}, co2Factor); !approxEqual(got, 1.5) {
		t.Fatalf("pure vegan co2 average=%.4f want 1.5", got)
	}
	if got := weightedAverage(DietDistribution{Vegan: 50, Carnivore: 50}, animalFactor); !approxEqual(got, 175) {
		t.Fatalf("half vegan/carnivore animals=%.4f want 175", got)
	}
}

func TestProjectSeedYear(t *testing.T) {
	got := Project(InitialDiet(), BaselineIndicators(), 2025)
	want := IndicatorVector{
		CO2:          58.1,
		LandUse:      34.7,
		WaterUse:     70.0,
		HealthIndex:  65.0,
		Population:   8.16,
		Biodiversity: 68.0,
		FoodSecurity: 100,
		AnimalLives:  1482.3,
	}
	for _, ind := range Indicators() {
		if !approxEqual(got.Value(ind), want.Value(ind)) {
			t.Fatalf("%s=%.3f want %.3f", ind, got.Value(ind), want.Value(ind))
		}
	}
}

func TestProjectPopulationGrowsBelowBaseRate(t *testing.T) {
	got := Project(InitialDiet(), BaselineIndicators(), 2025)
	growth := got.Population/Baselines.Population - 1
	if growth <= 0 || growth >= PopulationBaseGrowth {
		t.Fatalf("expected growth in (0, %.3f), got %.5f", PopulationBaseGrowth, growth)
	}
}

func TestProjectPopulationSoftCap(t *testing.T) {
	if got := projectPopulation(DietDistribution{Vegan: 100}, 16, 100); got >= 16.2 || got <= 15 {
		t.Fatalf("expected damped growth above capacity, got %.2f", got)
	}
	if got := projectPopulation(DietDistribution{Vegan: 100}, 16, 100); !approxEqual(got, 15.12) {
		t.Fatalf("population above capacity=%.2f want 15.12", got)
	}
}

func TestProjectIsDeterministic(t *testing.T) {
	prev := BaselineIndicators()
	diet := DietDistribution{Vegan: 20, Vegetarian: 20, Pescatarian: 20, Mixed: 20, Carnivore: 20}
	a := Project(diet, prev, 2030)
	b := Project(diet, prev, 2030)
	if a != b {
		t.Fatalf("expected identical output, got %+v and %+v", a, b)
	}
	if c := Project(diet, prev, 2100); c != a {
		t.Fatalf("year must not change arithmetic: %+v vs %+v", c, a)
	}
}

func TestProjectCO2NeverBelowNonFoodEmissions(t *testing.T) {
	floor := Baselines.CO2 * (1 - Baselines.FoodCO2Share)
	got := Project(DietDistribution{Vegan: 100}, BaselineIndicators(), 2025)
	if got.CO2 < roundTo(floor, 1) {
		t.Fatalf("co2 %.1f below non-food floor %.1f", got.CO2, floor)
	}
}

func randomDiet(rng *rand.Rand) DietDistribution {
	var raw [dietCategoryCount]float64
	total := 0.0
	for i := range raw {
		raw[i] = rng.Float64()
		total += raw[i]
	}
	var d DietDistribution
	for i := range raw {
		d[i] = raw[i] / total * 100
	}
	return d
}

func randomIndicators(rng *rand.Rand) IndicatorVector {
	between := func(lo, hi float64) float64 { return lo + rng.Float64()*(hi-lo) }
	return IndicatorVector{
		CO2:          between(0, 120),
		LandUse:      between(10, 80),
		WaterUse:     between(30, 95),
		HealthIndex:  between(40, 95),
		Population:   between(0.5, 16),
		Biodiversity: between(10, 100),
		FoodSecurity: between(30, 100),
		AnimalLives:  between(0, 6000),
	}
}

func TestProjectRangeInvariant(t *testing.T) {
	rng := rand.New(rand.NewPCG(2024, 2200))
	for i := 0; i < 5000; i++ {
		diet := randomDiet(rng)
		prev := randomIndicators(rng)
		got := Project(diet, prev, 2025+i)
		for _, ind := range Indicators() {
			v := got.Value(ind)
			if math.IsNaN(v) || math.IsInf(v, 0) {
				t.Fatalf("case %d: %s not finite: %v", i, ind, v)
			}
			if r := IndicatorRange(ind); !r.Contains(v) {
				t.Fatalf("case %d: %s=%.2f outside [%.0f,%.0f] diet=%+v prev=%+v", i, ind, v, r.Min, r.Max, diet.Map(), prev)
			}
		}
	}
}

func TestProjectCarnivoreDrivesLandUpAndBiodiversityDown(t *testing.T) {
	diet := DietDistribution{Carnivore: 100}
	v := BaselineIndicators()
	prevLand := 0.0
	prevBio := v.Biodiversity
	for year := StartYear + 1; year <= StartYear+300; year++ {
		v = Project(diet, v, year)
		if v.LandUse < prevLand {
			t.Fatalf("%d: land use decreased %.1f -> %.1f", year, prevLand, v.LandUse)
		}
		if v.Biodiversity > prevBio {
			t.Fatalf("%d: biodiversity increased %.1f -> %.1f", year, prevBio, v.Biodiversity)
		}
		prevLand, prevBio = v.LandUse, v.Biodiversity
	}
	if v.LandUse != 80 {
		t.Fatalf("expected land use at upper clamp, got %.1f", v.LandUse)
	}
	if v.Biodiversity != 10 {
		t.Fatalf("expected biodiversity at lower clamp, got %.1f", v.Biodiversity)
	}
}

func TestProjectFullVeganFiftyYears(t *testing.T) {
	vegan := BaselineIndicators()
	statusQuo := BaselineIndicators()
	prevBio := vegan.Biodiversity
	for year := StartYear + 1; year <= StartYear+50; year++ {
		vegan = Project(DietDistribution{Vegan: 100}, vegan, year)
		statusQuo = Project(InitialDiet(), statusQuo, year)
		if vegan.Biodiversity < prevBio {
			t.Fatalf("%d: biodiversity fell under a vegan diet %.1f -> %.1f", year, prevBio, vegan.Biodiversity)
		}
		prevBio = vegan.Biodiversity
		if vegan.AnimalLives != 0 {
			t.Fatalf("%d: expected no animal lives, got %.1f", year, vegan.AnimalLives)
		}
	}
	if vegan.Biodiversity <= Baselines.Biodiversity {
		t.Fatalf("expected biodiversity recovery, got %.1f", vegan.Biodiversity)
	}
	if vegan.CO2 >= statusQuo.CO2 {
		t.Fatalf("expected vegan co2 %.1f below status quo %.1f", vegan.CO2, statusQuo.CO2)
	}
	if vegan.LandUse >= statusQuo.LandUse/2 {
		t.Fatalf("expected vegan land use %.1f far below status quo %.1f", vegan.LandUse, statusQuo.LandUse)
	}
	if vegan.HealthIndex <= Baselines.Health {
		t.Fatalf("expected health to improve, got %.1f", vegan.HealthIndex)
	}
}

func TestRoundToHalfAwayFromZero(t *testing.T) {
	tests := []struct {
		in       float64
		decimals int
		want     float64
	}{
		{in: 1.25, decimals: 1, want: 1.3},
		{in: -1.25, decimals: 1, want: -1.3},
		{in: 8.164, decimals: 2, want: 8.16},
		{in: 0.5, decimals: 0, want: 1},
		{in: -0.5, decimals: 0, want: -1},
	}
	for _, tc := range tests {
		if got := roundTo(tc.in, tc.decimals); !approxEqual(got, tc.want) {
			t.Fatalf("roundTo(%v, %d)=%v want=%v", tc.in, tc.decimals, got, tc.want)
		}
	}
}
