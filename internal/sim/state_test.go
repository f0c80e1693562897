package sim

import (
	"errors"
	"testing"
	"time"
)

func TestNewStateSeedsBaseline(t *testing.T) {
	s := NewState()
	if s.Year != StartYear {
		t.Fatalf("expected start year %d, got %d", StartYear, s.Year)
	}
	if s.Diet != InitialDiet() || s.Indicators != BaselineIndicators() {
		t.Fatalf("expected seed diet and indicators")
	}
	if s.History.Len() != 1 {
		t.Fatalf("expected one seed history entry, got %d", s.History.Len())
	}
	if s.Speed != DefaultSpeed || s.Running || s.Paused {
		t.Fatalf("unexpected control flags: %+v", s)
	}
}

func TestStepAppendsHistoryInYearOrder(t *testing.T) {
	s := NewState()
	n, err := s.Run(10)
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if n != 10 || s.Year != StartYear+10 {
		t.Fatalf("expected 10 years to year %d, got n=%d year=%d", StartYear+10, n, s.Year)
	}
	entries := s.History.Entries()
	if len(entries) != 11 {
		t.Fatalf("expected 11 entries, got %d", len(entries))
	}
	for i := 1; i < len(entries); i++ {
		if entries[i].Year != entries[i-1].Year+1 {
			t.Fatalf("entry %d out of order: %d after %d", i, entries[i].Year, entries[i-1].Year)
		}
	}
	latest, ok := s.History.Latest()
	if !ok || latest.Indicators != s.Indicators {
		t.Fatalf("latest entry must match current indicators")
	}
}

func TestStepMatchesProject(t *testing.T) {
	s := NewState()
	want := Project(s.Diet, s.Indicators, StartYear+1)
	if err := s.Step(); err != nil {
		t.Fatalf("step: %v", err)
	}
	if s.Indicators != want {
		t.Fatalf("step diverged from Project: %+v vs %+v", s.Indicators, want)
	}
}

func TestTickRequiresRunningAndUnpaused(t *testing.T) {
	s := NewState()
	if ticked, err := s.Tick(); ticked || err != nil {
		t.Fatalf("tick on stopped state: ticked=%v err=%v", ticked, err)
	}
	s.Start()
	if ticked, err := s.Tick(); !ticked || err != nil {
		t.Fatalf("tick on running state: ticked=%v err=%v", ticked, err)
	}
	s.Pause()
	if ticked, _ := s.Tick(); ticked {
		t.Fatalf("tick must not advance a paused state")
	}
	s.Resume()
	if ticked, _ := s.Tick(); !ticked {
		t.Fatalf("tick must advance a resumed state")
	}
	if s.Year != StartYear+2 {
		t.Fatalf("expected two simulated years, got year %d", s.Year)
	}
}

func TestSetDietRefusedWhileAdvancing(t *testing.T) {
	s := NewState()
	s.Start()
	if err := s.SetDiet(Vegan, 50); !errors.Is(err, ErrAdvancing) {
		t.Fatalf("expected ErrAdvancing, got %v", err)
	}
	s.Pause()
	if err := s.SetDiet(Vegan, 50); err != nil {
		t.Fatalf("paused state should accept diet edits: %v", err)
	}
	if s.Diet[Vegan] != 50 {
		t.Fatalf("expected vegan=50, got %.1f", s.Diet[Vegan])
	}
}

func TestSetDietClampsInput(t *testing.T) {
	s := NewState()
	if err := s.SetDiet(Carnivore, 140); err != nil {
		t.Fatalf("set diet: %v", err)
	}
	if s.Diet[Carnivore] != 100 {
		t.Fatalf("expected clamp to 100, got %.1f", s.Diet[Carnivore])
	}
	if err := s.SetDiet(Carnivore, -20); err != nil {
		t.Fatalf("set diet: %v", err)
	}
	if s.Diet[Carnivore] != 0 {
		t.Fatalf("expected clamp to 0, got %.1f", s.Diet[Carnivore])
	}
	if err := s.SetDiet(DietCategory(9), 10); !errors.Is(err, ErrUnknownDiet) {
		t.Fatalf("expected ErrUnknownDiet, got %v", err)
	}
}

func TestResetRestoresSeed(t *testing.T) {
	s := NewState()
	_ = s.SetDiet(Vegan, 80)
	s.SetSpeed(5)
	s.Start()
	_, _ = s.Run(5)
	s.Reset()
	if s.Year != StartYear || s.Diet != InitialDiet() || s.History.Len() != 1 || s.Running || s.Speed != DefaultSpeed {
		t.Fatalf("reset did not restore seed state: %+v", s)
	}
}

func TestMaxYearStopsStepping(t *testing.T) {
	s := NewState().WithMaxYear(StartYear + 3)
	n, err := s.Run(10)
	if !errors.Is(err, ErrMaxYear) {
		t.Fatalf("expected ErrMaxYear, got %v", err)
	}
	if n != 3 || s.Year != StartYear+3 {
		t.Fatalf("expected 3 years, got n=%d year=%d", n, s.Year)
	}
}

func TestSpeedAndTickInterval(t *testing.T) {
	s := NewState()
	if got := s.TickInterval(); got != time.Second {
		t.Fatalf("expected 1s at speed 1, got %v", got)
	}
	s.SetSpeed(2)
	if got := s.TickInterval(); got != 500*time.Millisecond {
		t.Fatalf("expected 500ms at speed 2, got %v", got)
	}
	s.SetSpeed(50)
	if s.Speed != MaxSpeed {
		t.Fatalf("expected speed clamp to %.1f, got %.1f", MaxSpeed, s.Speed)
	}
	s.SetSpeed(0.1)
	if s.Speed != MinSpeed || s.TickInterval() != 2*time.Second {
		t.Fatalf("expected min speed with 2s interval, got %.1f / %v", s.Speed, s.TickInterval())
	}
}

func TestRestoreRejectsOutOfOrderEntries(t *testing.T) {
	s := NewState()
	entries := []HistoryEntry{
		{Year: 2030, Indicators: BaselineIndicators(), Diet: InitialDiet()},
		{Year: 2029, Indicators: BaselineIndicators(), Diet: InitialDiet()},
	}
	if err := s.Restore(entries); !errors.Is(err, ErrHistoryOrder) {
		t.Fatalf("expected ErrHistoryOrder, got %v", err)
	}
	if s.Year != StartYear {
		t.Fatalf("failed restore must leave state untouched, got year %d", s.Year)
	}
}

func TestRestoreResumesFromLastEntry(t *testing.T) {
	src := NewState()
	_ = src.SetDiet(Vegan, 40)
	_, _ = src.Run(4)

	dst := NewState()
	if err := dst.Restore(src.History.Entries()); err != nil {
		t.Fatalf("restore: %v", err)
	}
	if dst.Year != src.Year || dst.Indicators != src.Indicators || dst.Diet != src.Diet {
		t.Fatalf("restored state differs from source")
	}
	if err := dst.Step(); err != nil {
		t.Fatalf("step after restore: %v", err)
	}
}

func TestTrendsCoversEveryIndicator(t *testing.T) {
	s := NewState()
	_ = s.SetDiet(Carnivore, 100)
	_, _ = s.Run(6)
	trends, undefined := s.Trends()
	if len(undefined) != 0 {
		t.Fatalf("unexpected undefined trends: %v", undefined)
	}
	if len(trends) != len(Indicators()) {
		t.Fatalf("expected %d trends, got %d", len(Indicators()), len(trends))
	}
	if trends[LandUse] != TrendUp || trends[Biodiversity] != TrendDown {
		t.Fatalf("expected land up and biodiversity down, got %v / %v", trends[LandUse], trends[Biodiversity])
	}
}

func TestTrendsKeepsUndefinedSeparate(t *testing.T) {
	s := NewState()
	_ = s.SetDiet(Vegan, 100)
	_, _ = s.Run(6)
	trends, undefined := s.Trends()
	if _, ok := trends[AnimalLives]; ok {
		t.Fatalf("animal lives should have no direction, got %v", trends[AnimalLives])
	}
	if !errors.Is(undefined[AnimalLives], ErrZeroReference) {
		t.Fatalf("expected ErrZeroReference for animal lives, got %v", undefined[AnimalLives])
	}
	if len(trends)+len(undefined) != len(Indicators()) {
		t.Fatalf("expected every indicator reported once, got %d + %d", len(trends), len(undefined))
	}
}
