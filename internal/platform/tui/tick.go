// Package tui runs a game inside a Bubble Tea program: it drives the fixed
// tick loop, maps keys and mouse events to input frames, and draws the
// game's screen buffer.
package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/tui-jewels/internal/core"
)

// TickMsg is sent once per simulation tick.
type TickMsg time.Time

// tickInterval is the wall time between ticks. Non-positive rates run at
// core.DefaultTickRate.
func tickInterval(tickRate int) time.Duration {
	if tickRate <= 0 {
		tickRate = core.DefaultTickRate
	}
	return time.Second / time.Duration(tickRate)
}

func tickCmd(tickRate int) tea.Cmd {
	return tea.Tick(tickInterval(tickRate), func(t time.Time) tea.Msg {
		return TickMsg(t)
	})
}
