// Package tui provides the Bubble Tea integration for the arcade platform.
// It handles the terminal UI loop, input mapping, and game orchestration.
package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/canvas-arcade/internal/loop"
)

// TickMsg is the host frame callback for one scheduled frame chain.
// Bubble Tea cannot cancel a pending tick, so a stale Token is how a
// cancelled chain is recognized and dropped.
type TickMsg struct {
	Token loop.Token
	Time  time.Time
}

// tickCmd schedules the next frame of chain tok.
func tickCmd(interval time.Duration, tok loop.Token) tea.Cmd {
	return tea.Tick(interval, func(t time.Time) tea.Msg {
		return TickMsg{Token: tok, Time: t}
	})
}
