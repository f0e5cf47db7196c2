package core

import "time"

// Action represents a semantic game action, abstracted from physical key presses.
// This allows games to work with high-level intents rather than raw input.
type Action int

const (
	ActionNone    Action = iota
	ActionLeft           // A, Left arrow - move left (level-triggered)
	ActionRight          // D, Right arrow - move right (level-triggered)
	ActionUp             // W, Up arrow - move up (level-triggered)
	ActionDown           // S, Down arrow - move down (level-triggered)
	ActionFire           // Space - fire, or start when not playing
	ActionStart          // Enter - start / resume from ready
	ActionPause          // Escape, P - pause toggle
	ActionRestart        // R - back to a fresh ready state
	ActionBack           // B - back to menu
	ActionQuit           // Q, Ctrl+C - exit game/session
)

// String returns a human-readable name for the action.
func (a Action) String() string {
	switch a {
	case ActionNone:
		return "None"
	case ActionLeft:
		return "Left"
	case ActionRight:
		return "Right"
	case ActionUp:
		return "Up"
	case ActionDown:
		return "Down"
	case ActionFire:
		return "Fire"
	case ActionStart:
		return "Start"
	case ActionPause:
		return "Pause"
	case ActionRestart:
		return "Restart"
	case ActionBack:
		return "Back"
	case ActionQuit:
		return "Quit"
	default:
		return "Unknown"
	}
}

// Movement reports whether a is a level-triggered direction.
func (a Action) Movement() bool {
	return a == ActionLeft || a == ActionRight || a == ActionUp || a == ActionDown
}

// InputFrame is the command snapshot a Stepper reads for one tick.
type InputFrame struct {
	// Actions holds level-triggered flags that are down this tick.
	Actions map[Action]bool
	// Edges holds one-shot commands pressed since the previous tick.
	Edges map[Action]bool
	// Latest is the held direction with the most recent key event, or
	// ActionNone. Frames built by hand leave it unset.
	Latest Action
	// PointerX is an absolute target x in canvas pixels, valid when HasPointer is set.
	PointerX   float64
	HasPointer bool
}

// NewInputFrame creates an empty input frame.
func NewInputFrame() InputFrame {
	return InputFrame{
		Actions: make(map[Action]bool),
		Edges:   make(map[Action]bool),
	}
}

// Set marks an action as held for this frame.
func (f *InputFrame) Set(a Action) {
	if f.Actions == nil {
		f.Actions = make(map[Action]bool)
	}
	f.Actions[a] = true
}

// Press records a one-shot command for this frame.
func (f *InputFrame) Press(a Action) {
	if f.Edges == nil {
		f.Edges = make(map[Action]bool)
	}
	f.Edges[a] = true
}

// SetPointer records an absolute pointer target.
func (f *InputFrame) SetPointer(x float64) {
	f.PointerX = x
	f.HasPointer = true
}

// Has returns true if the action is held or was pressed this frame.
func (f InputFrame) Has(a Action) bool {
	return f.Actions[a] || f.Edges[a]
}

// Clear resets all actions for the next frame.
func (f *InputFrame) Clear() {
	clear(f.Actions)
	clear(f.Edges)
	f.Latest = ActionNone
	f.PointerX = 0
	f.HasPointer = false
}

// DefaultHoldTimeout is how long a movement key stays down after its last
// key event when the host never reports the release.
const DefaultHoldTimeout = 150 * time.Millisecond

// InputAdapter accumulates host input events between ticks.
// Writes are plain flag and coordinate updates; Snapshot is read once per tick.
type InputAdapter struct {
	hold       time.Duration
	held       map[Action]time.Time // release deadline; zero means until KeyUp
	order      map[Action]uint64    // sequence number of the last KeyDown
	seq        uint64
	edges      map[Action]bool
	pointerX   float64
	hasPointer bool
}

// NewInputAdapter creates an adapter. A hold of zero keeps keys down until KeyUp.
func NewInputAdapter(hold time.Duration) *InputAdapter {
	return &InputAdapter{
		hold:  hold,
		held:  make(map[Action]time.Time),
		order: make(map[Action]uint64),
		edges: make(map[Action]bool),
	}
}

var oppositeAction = map[Action]Action{
	ActionLeft:  ActionRight,
	ActionRight: ActionLeft,
	ActionUp:    ActionDown,
	ActionDown:  ActionUp,
}

// KeyDown marks a level-triggered action as held. Pressing a direction
// releases the opposite one on the same axis.
func (a *InputAdapter) KeyDown(act Action, now time.Time) {
	if act == ActionNone {
		return
	}
	if opp, ok := oppositeAction[act]; ok {
		a.KeyUp(opp)
	}
	var deadline time.Time
	if a.hold > 0 {
		deadline = now.Add(a.hold)
	}
	a.held[act] = deadline
	a.seq++
	a.order[act] = a.seq
}

// KeyUp releases a held action.
func (a *InputAdapter) KeyUp(act Action) {
	delete(a.held, act)
	delete(a.order, act)
}

// Press queues a one-shot command, consumed by the next Snapshot.
func (a *InputAdapter) Press(act Action) {
	if act == ActionNone {
		return
	}
	a.edges[act] = true
}

// PointerMove sets the absolute pointer target in canvas pixels.
func (a *InputAdapter) PointerMove(x float64) {
	a.pointerX = x
	a.hasPointer = true
}

// PointerRelease ends pointer control.
func (a *InputAdapter) PointerRelease() {
	a.hasPointer = false
}

// Snapshot builds the frame for one tick, drops expired holds and consumes edges.
func (a *InputAdapter) Snapshot(now time.Time) InputFrame {
	f := NewInputFrame()
	var latest uint64
	for act, deadline := range a.held {
		if !deadline.IsZero() && !now.Before(deadline) {
			a.KeyUp(act)
			continue
		}
		f.Actions[act] = true
		if act.Movement() && a.order[act] > latest {
			latest = a.order[act]
			f.Latest = act
		}
	}
	for act := range a.edges {
		f.Edges[act] = true
	}
	clear(a.edges)
	if a.hasPointer {
		f.SetPointer(a.pointerX)
	}
	return f
}

// Reset drops every held flag, pending command and pointer target.
func (a *InputAdapter) Reset() {
	clear(a.held)
	clear(a.order)
	clear(a.edges)
	a.hasPointer = false
}
