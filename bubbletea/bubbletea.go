// Package bubbletea provides a Bubble Tea TUI that replays documents through
// a reveal.Player.
package bubbletea

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/fwojciec/reveal"
)

// Run creates and runs the Bubble Tea program. It blocks until the program
// exits. Cancelling ctx quits the program.
func Run(ctx context.Context, m Model) error {
	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithMouseCellMotion())
	go func() {
		<-ctx.Done()
		p.Quit()
	}()
	_, err := p.Run()
	return err
}

// Document is one text the viewer can replay.
type Document struct {
	Name    string
	Content string
}

// TickMsg delivers a scheduled player tick to the Update loop.
type TickMsg struct {
	fire func()
}

// Interface compliance check.
var _ reveal.Scheduler = (*Scheduler)(nil)

// Scheduler implements reveal.Scheduler with tea.Tick, so player ticks run
// inside Update on the program's event loop. Commands accumulate until the
// model flushes them into its Update result.
//
// tea.Tick cannot be cancelled; a tick arriving after pause, stop or reset
// is discarded by the player.
type Scheduler struct {
	pending []tea.Cmd
}

// Schedule queues a tea.Tick that fires fn after d.
func (s *Scheduler) Schedule(d time.Duration, fn func()) func() {
	s.pending = append(s.pending, tea.Tick(d, func(time.Time) tea.Msg {
		return TickMsg{fire: fn}
	}))
	return func() {}
}

// Flush returns the commands queued since the last flush.
func (s *Scheduler) Flush() tea.Cmd {
	cmds := s.pending
	s.pending = nil
	return tea.Batch(cmds...)
}
