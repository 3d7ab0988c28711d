// Package tui provides the Bubble Tea integration for qmaze.
// It handles the terminal UI loop, input mapping, and session orchestration.
package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// TickMsg is sent to trigger a game simulation tick.
type TickMsg time.Time

// tickCmd returns a Bubble Tea command that sends tick messages at the specified rate.
func tickCmd(tickRate int) tea.Cmd {
	if tickRate <= 0 {
		tickRate = 60
	}
	interval := time.Second / time.Duration(tickRate)
	return tea.Tick(interval, func(t time.Time) tea.Msg {
		return TickMsg(t)
	})
}

// maxFrame caps a single simulation step so a stalled terminal does not
// teleport the player through the maze.
const maxFrame = 100 * time.Millisecond

// frameDelta returns the simulated time between two ticks.
func frameDelta(prev, now time.Time) time.Duration {
	if prev.IsZero() || !now.After(prev) {
		return 0
	}
	return min(now.Sub(prev), maxFrame)
}
