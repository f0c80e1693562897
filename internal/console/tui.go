package console

import (
	"fmt"
	"io"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/appengine-ltd/vegan-simulator/internal/sim"
)

const (
	prompt     = "> "
	scrollback = 500
)

// --- Styles ---
var (
	titleStyle     = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("10"))
	promptStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("2"))
	echoStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("244"))
	improvingStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
	worseningStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
	neutralStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("11"))
	mutedStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
)

type termPalette struct{}

func (termPalette) assessed(a sim.Assessment, text string) string {
	switch a {
	case sim.Improving:
		return improvingStyle.Render(text)
	case sim.Worsening:
		return worseningStyle.Render(text)
	case sim.Neutral:
		return neutralStyle.Render(text)
	default:
		return mutedStyle.Render(text)
	}
}

func (termPalette) undefined(text string) string {
	return mutedStyle.Render(text)
}

// Run starts the terminal front end on in and out. It returns when the user
// quits or presses ctrl+c.
func (s *Session) Run(in io.Reader, out io.Writer) error {
	p := tea.NewProgram(newConsoleModel(s), tea.WithInput(in), tea.WithOutput(out))
	_, err := p.Run()
	return err
}

// --- Console model ---

type consoleModel struct {
	session *Session

	input    string
	lines    []string
	height   int
	quitting bool
}

func newConsoleModel(s *Session) consoleModel {
	s.palette = termPalette{}
	banner := titleStyle.Render("VEGAN SIMULATOR") + fmt.Sprintf("  year %d. Type help for commands.", s.state.Year)
	return consoleModel{session: s, lines: []string{banner}}
}

func (m consoleModel) Init() tea.Cmd {
	return nil
}

func (m consoleModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.height = msg.Height
		return m, nil
	case tea.KeyMsg:
		switch msg.Type {
		case tea.KeyCtrlC, tea.KeyEsc:
			m.quitting = true
			return m, tea.Quit
		// piped input ends lines with a bare line feed
		case tea.KeyEnter, tea.KeyCtrlJ:
			return m.submit()
		case tea.KeyBackspace:
			if r := []rune(m.input); len(r) > 0 {
				m.input = string(r[:len(r)-1])
			}
		case tea.KeySpace:
			m.input += " "
		case tea.KeyRunes:
			m.input += string(msg.Runes)
		}
	}
	return m, nil
}

func (m consoleModel) submit() (tea.Model, tea.Cmd) {
	line := strings.TrimSpace(m.input)
	m.input = ""
	if line == "" {
		return m, nil
	}

	res := m.session.Execute(line)
	lines := make([]string, 0, len(m.lines)+8)
	lines = append(lines, m.lines...)
	lines = append(lines, echoStyle.Render(prompt+line))
	if res.Message != "" {
		lines = append(lines, strings.Split(res.Message, "\n")...)
	}
	if len(lines) > scrollback {
		lines = lines[len(lines)-scrollback:]
	}
	m.lines = lines

	if res.Quit {
		m.quitting = true
		return m, tea.Quit
	}
	return m, nil
}

func (m consoleModel) View() string {
	lines := m.lines
	// keep the prompt on screen once the window size is known
	if m.height > 1 && len(lines) > m.height-1 {
		lines = lines[len(lines)-(m.height-1):]
	}
	var b strings.Builder
	for _, l := range lines {
		b.WriteString(l)
		b.WriteString("\n")
	}
	if !m.quitting {
		b.WriteString(promptStyle.Render(prompt) + m.input)
	}
	return b.String()
}
