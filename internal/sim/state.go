package sim

import (
	"fmt"
	"time"
)

// State is a single simulation session. It is owned by its caller and is
// not safe for concurrent use.
type State struct {
	Year       int
	Diet       DietDistribution
	Indicators IndicatorVector
	History    *History

	Running bool
	Paused  bool
	Speed   float64

	maxYear int
}

func NewState() *State {
	s := &State{maxYear: MaxYear}
	s.Reset()
	return s
}

// WithMaxYear overrides the final simulated year.
func (s *State) WithMaxYear(year int) *State {
	if year > StartYear {
		s.maxYear = year
	}
	return s
}

func (s *State) MaxYear() int {
	if s.maxYear == 0 {
		return MaxYear
	}
	return s.maxYear
}

// Reset returns the session to the 2024 seed values.
func (s *State) Reset() {
	s.Year = StartYear
	s.Diet = InitialDiet()
	s.Indicators = BaselineIndicators()
	s.History = NewHistory(HistoryEntry{Year: StartYear, Indicators: s.Indicators, Diet: s.Diet})
	s.Running = false
	s.Paused = false
	s.Speed = DefaultSpeed
}

// Restore replaces the session with previously recorded entries. The last
// entry becomes the current year.
func (s *State) Restore(entries []HistoryEntry) error {
	if len(entries) == 0 {
		return fmt.Errorf("restore: %w: no entries", ErrHistoryOrder)
	}
	h := &History{}
	for _, e := range entries {
		if err := e.Diet.Validate(); err != nil {
			return fmt.Errorf("restore year %d: %w", e.Year, err)
		}
		if err := h.Append(e); err != nil {
			return fmt.Errorf("restore: %w", err)
		}
	}
	last := entries[len(entries)-1]
	s.Year = last.Year
	s.Diet = last.Diet
	s.Indicators = last.Indicators
	s.History = h
	s.Running = false
	s.Paused = false
	return nil
}

// Advancing reports whether an external scheduler would tick this state.
func (s *State) Advancing() bool {
	return s.Running && !s.Paused
}

// SetDiet changes one category and redistributes the rest. The diet may only
// change while the simulation is stopped or paused.
func (s *State) SetDiet(category DietCategory, value float64) error {
	if !category.Valid() {
		return fmt.Errorf("%w: %d", ErrUnknownDiet, int(category))
	}
	if s.Advancing() {
		return ErrAdvancing
	}
	s.Diet = SetDiet(s.Diet, category, clamp(value, 0, 100))
	return nil
}

// ApplyDiet replaces the whole distribution, e.g. from a preset.
func (s *State) ApplyDiet(d DietDistribution) error {
	if s.Advancing() {
		return ErrAdvancing
	}
	if err := d.Validate(); err != nil {
		return err
	}
	s.Diet = d
	return nil
}

func (s *State) Start() {
	if !s.Running {
		s.Running = true
		s.Paused = false
	}
}

func (s *State) Pause()  { s.Paused = true }
func (s *State) Resume() { s.Paused = false }

func (s *State) Stop() {
	s.Running = false
	s.Paused = false
}

func (s *State) SetSpeed(speed float64) {
	s.Speed = clamp(speed, MinSpeed, MaxSpeed)
}

// TickInterval is the wall-clock time between ticks at the current speed.
func (s *State) TickInterval() time.Duration {
	speed := s.Speed
	if speed <= 0 {
		speed = DefaultSpeed
	}
	return time.Duration(float64(tickBase) / speed)
}

// Tick advances one year when the simulation is running and not paused.
// It reports whether a year was simulated.
func (s *State) Tick() (bool, error) {
	if !s.Advancing() {
		return false, nil
	}
	if err := s.Step(); err != nil {
		return false, err
	}
	return true, nil
}

// Step advances one year regardless of the running flags.
func (s *State) Step() error {
	if s.Year >= s.MaxYear() {
		return fmt.Errorf("%w: %d", ErrMaxYear, s.MaxYear())
	}
	next := s.Year + 1
	indicators := Project(s.Diet, s.Indicators, next)
	if err := s.History.Append(HistoryEntry{Year: next, Indicators: indicators, Diet: s.Diet}); err != nil {
		return err
	}
	s.Year = next
	s.Indicators = indicators
	return nil
}

// Run steps up to years times and returns how many years were simulated.
func (s *State) Run(years int) (int, error) {
	done := 0
	for done < years {
		if err := s.Step(); err != nil {
			return done, err
		}
		done++
	}
	return done, nil
}

// Trends reports the recent trend of every indicator whose trend is defined.
// The rest are keyed in the second map with the reason.
func (s *State) Trends() (map[Indicator]TrendDirection, map[Indicator]error) {
	out := make(map[Indicator]TrendDirection, len(Indicators()))
	var undefined map[Indicator]error
	for _, ind := range Indicators() {
		t, err := s.History.Trend(ind)
		if err != nil {
			if undefined == nil {
				undefined = make(map[Indicator]error)
			}
			undefined[ind] = err
			continue
		}
		out[ind] = t
	}
	return out, undefined
}
