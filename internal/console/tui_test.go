package console

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/appengine-ltd/vegan-simulator/internal/sim"
)

func typeLine(t *testing.T, m consoleModel, line string, submit tea.KeyType) (consoleModel, tea.Cmd) {
	t.Helper()
	for _, r := range line {
		next, _ := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
		m = next.(consoleModel)
	}
	next, cmd := m.Update(tea.KeyMsg{Type: submit})
	return next.(consoleModel), cmd
}

func TestConsoleModelSubmitsLine(t *testing.T) {
	s := newTestSession(t)
	m := newConsoleModel(s)

	got, cmd := typeLine(t, m, "run 3", tea.KeyEnter)
	assert.Nil(t, cmd)
	assert.Equal(t, sim.StartYear+3, s.State().Year)
	assert.Empty(t, got.input)

	view := got.View()
	assert.Contains(t, view, "run 3")
	assert.Contains(t, view, "Simulated 3 year(s)")
	assert.Contains(t, view, "Year 2027 of 2200")
}

func TestConsoleModelLineFeedSubmits(t *testing.T) {
	s := newTestSession(t)
	m := newConsoleModel(s)

	typeLine(t, m, "step", tea.KeyCtrlJ)
	assert.Equal(t, sim.StartYear+1, s.State().Year)
}

func TestConsoleModelBackspaceEditsInput(t *testing.T) {
	m := newConsoleModel(newTestSession(t))
	for _, r := range "stepx" {
		next, _ := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
		m = next.(consoleModel)
	}
	next, _ := m.Update(tea.KeyMsg{Type: tea.KeyBackspace})
	got := next.(consoleModel)
	assert.Equal(t, "step", got.input)
	assert.Contains(t, got.View(), "step")
}

func TestConsoleModelQuitCommand(t *testing.T) {
	s := newTestSession(t)
	m := newConsoleModel(s)

	got, cmd := typeLine(t, m, "quit", tea.KeyEnter)
	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())
	assert.True(t, got.quitting)
	assert.Contains(t, got.View(), "Goodbye.")
}

func TestConsoleModelCtrlCQuits(t *testing.T) {
	m := newConsoleModel(newTestSession(t))
	next, cmd := m.Update(tea.KeyMsg{Type: tea.KeyCtrlC})
	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())
	assert.True(t, next.(consoleModel).quitting)
}

func TestConsoleModelClarifyRoundTrip(t *testing.T) {
	s := newTestSession(t)
	m := newConsoleModel(s)

	m, _ = typeLine(t, m, "st 2", tea.KeyEnter)
	assert.Contains(t, m.View(), "Reply with a number.")

	typeLine(t, m, "2", tea.KeyEnter)
	assert.Equal(t, sim.StartYear+2, s.State().Year)
}

func TestConsoleModelViewFitsWindow(t *testing.T) {
	m := newConsoleModel(newTestSession(t))
	next, _ := m.Update(tea.WindowSizeMsg{Width: 80, Height: 4})
	m = next.(consoleModel)
	m, _ = typeLine(t, m, "status", tea.KeyEnter)

	lines := 0
	for _, c := range m.View() {
		if c == '\n' {
			lines++
		}
	}
	assert.Equal(t, 3, lines)
	assert.Contains(t, m.View(), "Animal lives")
}

func TestTermPaletteKeepsText(t *testing.T) {
	s := newTestSession(t)
	newConsoleModel(s)
	s.Execute("preset carnivore world")
	s.Execute("run 6")
	assert.Contains(t, s.Execute("trend land").Message, "up (worsening)")

	s.Execute("reset")
	s.Execute("preset vegan world")
	s.Execute("run 6")
	assert.Contains(t, s.Execute("trend animals").Message, "trend undefined")
}
