// Package tui provides an interactive terminal explorer for tonal
package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/harrybellamy/tonal/pkg/interval"
	"github.com/harrybellamy/tonal/pkg/note"
)

var (
	ink      = lipgloss.Color("#7DF9AA")
	amber    = lipgloss.Color("#FFD75F")
	gray     = lipgloss.Color("#C0C0C0")
	darkGray = lipgloss.Color("#333333")
	errorRed = lipgloss.Color("#FF5F5F")

	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(ink).
			Background(darkGray).
			Padding(0, 2).
			MarginBottom(1)

	labelStyle = lipgloss.NewStyle().
			Foreground(gray).
			Width(12)

	valueStyle = lipgloss.NewStyle().
			Foreground(amber)

	errorStyle = lipgloss.NewStyle().
			Foreground(errorRed).
			Bold(true)

	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#666666")).
			MarginTop(1)

	boxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(ink).
			Padding(1, 2)
)

// Model represents the TUI model
type Model struct {
	input  textinput.Model
	result string
}

// New creates a new TUI model
func New() Model {
	ti := textinput.New()
	ti.Placeholder = "C#4, Db, 5P, m-2 ..."
	ti.Focus()
	ti.CharLimit = 32
	ti.Width = 32

	return Model{input: ti}
}

// Init initializes the TUI model
func (m Model) Init() tea.Cmd {
	return textinput.Blink
}

// Update handles TUI updates
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		switch keyMsg.String() {
		case "esc", "ctrl+c":
			return m, tea.Quit
		case "enter":
			m.result = describe(strings.TrimSpace(m.input.Value()))
			return m, nil
		}
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// View renders the TUI
func (m Model) View() string {
	var s strings.Builder

	s.WriteString(titleStyle.Render(" TONAL EXPLORER "))
	s.WriteString("\n\n")
	s.WriteString("Enter a note or interval name:\n\n")
	s.WriteString(m.input.View())
	s.WriteString("\n")

	if m.result != "" {
		s.WriteString("\n")
		s.WriteString(m.result)
	}

	s.WriteString("\n")
	s.WriteString(helpStyle.Render("enter: lookup • esc: quit"))

	return boxStyle.Render(s.String())
}

// describe renders the descriptor of a name, trying notes first and falling
// back to intervals.
func describe(name string) string {
	if name == "" {
		return ""
	}
	if n := note.Get(name); !n.Empty {
		return describeNote(n)
	}
	if i := interval.Get(name); !i.Empty {
		return describeInterval(i)
	}
	return errorStyle.Render(fmt.Sprintf("✗ %q is not a note or interval name", name))
}

func describeNote(n note.Note) string {
	var s strings.Builder
	row(&s, "note", n.Name)
	row(&s, "pitch class", n.PitchClass)
	row(&s, "alteration", fmt.Sprintf("%d", n.Alt))
	row(&s, "chroma", fmt.Sprintf("%d", n.Chroma))
	if n.HasMidi {
		row(&s, "midi", fmt.Sprintf("%d", n.Midi))
	}
	if n.HasOct {
		row(&s, "frequency", fmt.Sprintf("%.2f Hz", n.Freq))
	}
	return s.String()
}

func describeInterval(i interval.Interval) string {
	var s strings.Builder
	row(&s, "interval", i.Name)
	row(&s, "type", string(i.Type))
	row(&s, "simple", fmt.Sprintf("%d%s", i.Simple, i.Quality))
	row(&s, "semitones", fmt.Sprintf("%d", i.Semitones))
	row(&s, "chroma", fmt.Sprintf("%d", i.Chroma))
	row(&s, "inversion", interval.Invert(i.Name))
	return s.String()
}

func row(s *strings.Builder, label, value string) {
	s.WriteString(labelStyle.Render(label))
	s.WriteString(valueStyle.Render(value))
	s.WriteString("\n")
}

// Run starts the TUI application
func Run() error {
	p := tea.NewProgram(New(), tea.WithAltScreen())
	_, err := p.Run()
	return err
}
