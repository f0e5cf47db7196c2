package tui

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/canvas-arcade/internal/core"
)

// KeyKind says how the game screen treats a mapped key.
type KeyKind int

const (
	KeyIgnored    KeyKind = iota
	KeyHold               // level-triggered movement, refreshed by key repeat
	KeyCommand            // one-shot command: start, fire, pause, restart
	KeyBack               // back to the menu
	KeyQuit               // leave the arcade
	KeyScreenshot         // export the current frame as PNG
)

// KeyMapper translates Bubble Tea key messages to game actions.
// This centralizes key bindings and makes them testable.
type KeyMapper struct{}

// NewKeyMapper creates a new key mapper with default bindings.
func NewKeyMapper() *KeyMapper {
	return &KeyMapper{}
}

// MapKey translates a key message to a game action and how to apply it.
func (km *KeyMapper) MapKey(msg tea.KeyMsg) (core.Action, KeyKind) {
	switch msg.String() {
	case "ctrl+c", "q":
		return core.ActionQuit, KeyQuit
	case "ctrl+s":
		return core.ActionNone, KeyScreenshot
	case "b":
		return core.ActionBack, KeyBack

	case "a", "left", "h":
		return core.ActionLeft, KeyHold
	case "d", "right", "l":
		return core.ActionRight, KeyHold
	case "w", "up", "k":
		return core.ActionUp, KeyHold
	case "s", "down", "j":
		return core.ActionDown, KeyHold

	case " ":
		return core.ActionFire, KeyCommand
	case "enter":
		return core.ActionStart, KeyCommand
	case "p", "esc":
		return core.ActionPause, KeyCommand
	case "r":
		return core.ActionRestart, KeyCommand
	}

	return core.ActionNone, KeyIgnored
}

// MenuAction represents a menu-specific action derived from input.
type MenuAction int

const (
	MenuActionNone MenuAction = iota
	MenuActionUp
	MenuActionDown
	MenuActionSelect
	MenuActionBack
	MenuActionScoreboard
	MenuActionTheme
	MenuActionQuit
)

// MapKeyToMenuAction translates a key to a menu action.
func (km *KeyMapper) MapKeyToMenuAction(msg tea.KeyMsg) MenuAction {
	key := msg.String()

	switch key {
	case "ctrl+c", "q":
		return MenuActionQuit
	case "w", "up", "k": // vim-style k for up
		return MenuActionUp
	case "s", "down", "j": // vim-style j for down
		return MenuActionDown
	case "enter", " ":
		return MenuActionSelect
	case "b", "esc":
		return MenuActionBack
	case "tab":
		return MenuActionScoreboard
	case "t":
		return MenuActionTheme
	}

	return MenuActionNone
}
