package bubbletea

import (
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"github.com/fwojciec/reveal"
)

// Styles maps a Theme to lipgloss styles for TUI rendering.
type Styles struct {
	Cursor   lipgloss.Style
	Running  lipgloss.Style
	Paused   lipgloss.Style
	Stopped  lipgloss.Style
	Complete lipgloss.Style
	Idle     lipgloss.Style
	Error    lipgloss.Style
	Muted    lipgloss.Style
}

// NewStyles creates Styles from a Theme.
func NewStyles(t reveal.Theme) Styles {
	return Styles{
		Cursor:   lipgloss.NewStyle().Foreground(ansiColor(t.Cursor)),
		Running:  lipgloss.NewStyle().Foreground(ansiColor(t.Running)).Bold(true),
		Paused:   lipgloss.NewStyle().Foreground(ansiColor(t.Paused)).Bold(true),
		Stopped:  lipgloss.NewStyle().Foreground(ansiColor(t.Stopped)).Bold(true),
		Complete: lipgloss.NewStyle().Foreground(ansiColor(t.Complete)).Bold(true),
		Idle:     lipgloss.NewStyle().Foreground(ansiColor(t.Muted)).Bold(true),
		Error:    lipgloss.NewStyle().Foreground(ansiColor(t.Error)),
		Muted:    lipgloss.NewStyle().Foreground(ansiColor(t.Muted)).Faint(true),
	}
}

// Status returns the badge style for s.
func (st Styles) Status(s reveal.Status) lipgloss.Style {
	switch s {
	case reveal.StatusRunning:
		return st.Running
	case reveal.StatusPaused:
		return st.Paused
	case reveal.StatusStopped:
		return st.Stopped
	case reveal.StatusComplete:
		return st.Complete
	default:
		return st.Idle
	}
}

func ansiColor(index int) lipgloss.TerminalColor {
	if index < 0 {
		return lipgloss.NoColor{}
	}
	return lipgloss.Color(strconv.Itoa(index))
}
