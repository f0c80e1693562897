package console

import (
	"bytes"
	"io"
	"log"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/appengine-ltd/vegan-simulator/internal/config"
	"github.com/appengine-ltd/vegan-simulator/internal/sim"
	"github.com/appengine-ltd/vegan-simulator/internal/snapshot"
)

func newTestSession(t *testing.T) *Session {
	t.Helper()
	s, err := NewSession(config.Default(), snapshot.NewStore(t.TempDir()))
	require.NoError(t, err)
	s.SetLogger(log.New(io.Discard, "", 0))
	return s
}

func TestSetAndShorthandUpdateDiet(t *testing.T) {
	s := newTestSession(t)

	res := s.Execute("set vegan 50")
	require.True(t, res.Handled)
	assert.Contains(t, res.Message, "Diet updated")
	assert.InDelta(t, 50, s.State().Diet.Get(sim.Vegan), 1e-9)
	assert.InDelta(t, 100, s.State().Diet.Sum(), 0.1)

	s.Execute("carnivore 0")
	assert.Equal(t, 0.0, s.State().Diet.Get(sim.Carnivore))
	assert.InDelta(t, 100, s.State().Diet.Sum(), 0.1)
}

func TestClarifyReplyPicksOption(t *testing.T) {
	s := newTestSession(t)

	res := s.Execute("st")
	assert.Contains(t, res.Message, "1) status")
	assert.Contains(t, res.Message, "2) step")

	res = s.Execute("2")
	assert.Equal(t, 1, res.YearsAdvanced)
	assert.Equal(t, sim.StartYear+1, s.State().Year)
}

func TestClarifyReplyKeepsQuantity(t *testing.T) {
	s := newTestSession(t)

	res := s.Execute("set ve 10")
	require.Contains(t, res.Message, "Reply with a number")
	s.Execute("1")
	assert.InDelta(t, 10, s.State().Diet.Get(sim.Vegan), 1e-9)
}

func TestClarifyCommandReplyKeepsQuantity(t *testing.T) {
	s := newTestSession(t)

	res := s.Execute("st 5")
	require.Contains(t, res.Message, "2) step")

	res = s.Execute("2")
	assert.Equal(t, 5, res.YearsAdvanced)
	assert.Equal(t, sim.StartYear+5, s.State().Year)
}

func TestClarifyOutOfRange(t *testing.T) {
	s := newTestSession(t)
	s.Execute("st")
	res := s.Execute("7")
	assert.Contains(t, res.Message, "between 1 and 2")
	assert.Equal(t, sim.StartYear, s.State().Year)
}

func TestRunAndHistory(t *testing.T) {
	s := newTestSession(t)

	res := s.Execute("run 10 years")
	assert.Equal(t, 10, res.YearsAdvanced)
	assert.Equal(t, sim.StartYear+10, s.State().Year)
	assert.Contains(t, res.Message, "Simulated 10 year(s)")

	res = s.Execute("history 3")
	lines := strings.Split(res.Message, "\n")
	require.Len(t, lines, 4)
	assert.True(t, strings.HasPrefix(lines[3], "2034"))
}

func TestRunStopsAtMaxYear(t *testing.T) {
	cfg := config.Default()
	cfg.Simulation.MaxYear = 2030
	s, err := NewSession(cfg, nil)
	require.NoError(t, err)

	var out bytes.Buffer
	require.NoError(t, s.Headless(&out, 100))
	assert.Contains(t, out.String(), "Reached the final year 2030 after 6 year(s)")
	assert.Error(t, s.Headless(&out, 1))
}

func TestPresetAndReset(t *testing.T) {
	s := newTestSession(t)

	res := s.Execute("preset vegan world")
	assert.Contains(t, res.Message, "Applied preset vegan-world")
	assert.Equal(t, 100.0, s.State().Diet.Get(sim.Vegan))

	s.Execute("step")
	s.Execute("reset")
	assert.Equal(t, sim.StartYear, s.State().Year)
	assert.Equal(t, sim.InitialDiet(), s.State().Diet)
	assert.Equal(t, 1, s.State().History.Len())
}

func TestTrendCommand(t *testing.T) {
	s := newTestSession(t)
	s.Execute("preset carnivore world")
	s.Execute("run 6")

	res := s.Execute("trend land")
	assert.Equal(t, "Land use: ↑ up (worsening)", res.Message)

	res = s.Execute("trends")
	assert.Len(t, strings.Split(res.Message, "\n"), len(sim.Indicators()))
	assert.Contains(t, res.Message, "Population: ↑ up (neutral)")
}

func TestTrendsReportUndefined(t *testing.T) {
	s := newTestSession(t)
	s.Execute("preset vegan world")
	s.Execute("run 6")

	res := s.Execute("trends")
	lines := strings.Split(res.Message, "\n")
	require.Len(t, lines, len(sim.Indicators()))
	assert.Contains(t, res.Message, "Animal lives: trend undefined")
	assert.NotContains(t, res.Message, "Animal lives: → stable")

	status := s.Execute("status").Message
	assert.Regexp(t, `Animal lives\s+0 .* \?  -100\.0% vs 2024`, status)
}

func TestSaveLoadSnapshots(t *testing.T) {
	s := newTestSession(t)

	s.Execute("run 5")
	res := s.Execute("save plant shift")
	require.Contains(t, res.Message, "Saved snapshot plant-shift")

	s.Execute("run 5")
	require.Equal(t, sim.StartYear+10, s.State().Year)

	res = s.Execute("snapshots")
	assert.Equal(t, "Snapshots: plant-shift", res.Message)

	res = s.Execute("load plant shift")
	assert.Contains(t, res.Message, "Loaded snapshot plant-shift")
	assert.Equal(t, sim.StartYear+5, s.State().Year)
	assert.Equal(t, 6, s.State().History.Len())
}

func TestSnapshotsDisabledWithoutStore(t *testing.T) {
	s, err := NewSession(config.Default(), nil)
	require.NoError(t, err)
	assert.Equal(t, "Snapshots are disabled.", s.Execute("save x").Message)
}

func TestStatusShowsBaselineDelta(t *testing.T) {
	s := newTestSession(t)
	msg := FormatStatus(s.State())
	assert.Contains(t, msg, "Year 2024 of 2200")
	assert.Contains(t, msg, "+0.0% vs 2024")
	assert.Contains(t, msg, "Vegan 1.0%")
}
