// Package tui provides the Bubble Tea front end for the simulator: the
// main menu, continuous and step-by-step play, the cell editor and the
// size/rule/pattern prompts.
package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// defaultFrameRate is used when Options.FrameRate is not positive.
const defaultFrameRate = 150 * time.Millisecond

// TickMsg triggers one generation in continuous play. ID ties the tick to
// the play session that scheduled it so stale ticks can be dropped.
type TickMsg struct {
	ID   int
	Time time.Time
}

// tickCmd returns a Bubble Tea command that sends a tick after interval.
func tickCmd(id int, interval time.Duration) tea.Cmd {
	if interval <= 0 {
		interval = defaultFrameRate
	}
	return tea.Tick(interval, func(t time.Time) tea.Msg {
		return TickMsg{ID: id, Time: t}
	})
}
