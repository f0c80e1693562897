package sim

import (
	"encoding/json"
	"fmt"
	"math"
	"strings"
)

type DietCategory int

const (
	Vegan DietCategory = iota
	Vegetarian
	Pescatarian
	Mixed
	Carnivore

	dietCategoryCount = 5
)

// Categories returns every diet category in display order.
func Categories() []DietCategory {
	return []DietCategory{Vegan, Vegetarian, Pescatarian, Mixed, Carnivore}
}

func (c DietCategory) String() string {
	switch c {
	case Vegan:
		return "vegan"
	case Vegetarian:
		return "vegetarian"
	case Pescatarian:
		return "pescatarian"
	case Mixed:
		return "mixed"
	case Carnivore:
		return "carnivore"
	default:
		return fmt.Sprintf("diet(%d)", int(c))
	}
}

func (c DietCategory) Valid() bool {
	return c >= Vegan && c <= Carnivore
}

func ParseDietCategory(raw string) (DietCategory, error) {
	key := strings.ToLower(strings.TrimSpace(raw))
	for _, c := range Categories() {
		if c.String() == key {
			return c, nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownDiet, raw)
}

func (c DietCategory) MarshalText() ([]byte, error) {
	if !c.Valid() {
		return nil, fmt.Errorf("%w: %d", ErrUnknownDiet, int(c))
	}
	return []byte(c.String()), nil
}

func (c *DietCategory) UnmarshalText(text []byte) error {
	parsed, err := ParseDietCategory(string(text))
	if err != nil {
		return err
	}
	*c = parsed
	return nil
}

// DietDistribution holds the percentage of the population following each
// diet category. Values are in [0,100] and sum to 100 within sumTolerance.
type DietDistribution [dietCategoryCount]float64

const sumTolerance = 0.5

func InitialDiet() DietDistribution {
	return DietDistribution{
		Vegan:       1,
		Vegetarian:  5,
		Pescatarian: 3,
		Mixed:       85,
		Carnivore:   6,
	}
}

// NewDietDistribution builds a distribution from a category keyed map.
// Missing categories are zero. The result is validated.
func NewDietDistribution(values map[DietCategory]float64) (DietDistribution, error) {
	var d DietDistribution
	for c, v := range values {
		if !c.Valid() {
			return DietDistribution{}, fmt.Errorf("%w: %d", ErrUnknownDiet, int(c))
		}
		d[c] = v
	}
	if err := d.Validate(); err != nil {
		return DietDistribution{}, err
	}
	return d, nil
}

func (d DietDistribution) Get(c DietCategory) float64 {
	if !c.Valid() {
		return 0
	}
	return d[c]
}

func (d DietDistribution) Sum() float64 {
	total := 0.0
	for _, v := range d {
		total += v
	}
	return total
}

func (d DietDistribution) Validate() error {
	for _, c := range Categories() {
		v := d[c]
		if math.IsNaN(v) || v < 0 || v > 100 {
			return fmt.Errorf("%w: %s=%.1f out of [0,100]", ErrInvalidDiet, c, v)
		}
	}
	if sum := d.Sum(); math.Abs(sum-100) > sumTolerance {
		return fmt.Errorf("%w: shares sum to %.2f", ErrInvalidDiet, sum)
	}
	return nil
}

// Map returns the distribution keyed by category name.
func (d DietDistribution) Map() map[string]float64 {
	out := make(map[string]float64, dietCategoryCount)
	for _, c := range Categories() {
		out[c.String()] = d[c]
	}
	return out
}

func (d DietDistribution) MarshalJSON() ([]byte, error) {
	return json.Marshal(d.Map())
}

func (d *DietDistribution) UnmarshalJSON(data []byte) error {
	var raw map[string]float64
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	var next DietDistribution
	for key, v := range raw {
		c, err := ParseDietCategory(key)
		if err != nil {
			return err
		}
		next[c] = v
	}
	*d = next
	return nil
}

// SetDiet returns a copy of d with category set to newValue and the
// difference taken proportionally from the remaining categories. When the
// remaining categories are all zero and the value increases there is nothing
// to redistribute and d is returned unchanged.
func SetDiet(d DietDistribution, category DietCategory, newValue float64) DietDistribution {
	if !category.Valid() {
		return d
	}
	delta := newValue - d[category]

	others := make([]DietCategory, 0, dietCategoryCount-1)
	otherTotal := 0.0
	for _, c := range Categories() {
		if c == category {
			continue
		}
		others = append(others, c)
		otherTotal += d[c]
	}
	if otherTotal == 0 && delta > 0 {
		return d
	}

	next := d
	next[category] = newValue
	for _, c := range others {
		share := 0.0
		if otherTotal != 0 {
			share = d[c] / otherTotal
		}
		next[c] = math.Max(0, roundTo(d[c]-delta*share, 1))
	}

	if sum := next.Sum(); math.Abs(sum-100) > 0.1 {
		largest := others[0]
		for _, c := range others[1:] {
			if next[c] > next[largest] {
				largest = c
			}
		}
		next[largest] = math.Max(0, next[largest]+(100-sum))
	}
	return next
}
