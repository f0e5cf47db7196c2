// Package loop drives a mounted game: it turns host frame callbacks into
// capped simulation ticks, renders after each tick and publishes the UI
// summary when it changes.
//
// A Driver is single-threaded. The host calls Frame, Command and the input
// methods from one goroutine (the Bubble Tea update loop, or Run).
package loop

import (
	"time"

	"github.com/vovakirdan/canvas-arcade/internal/core"
	"github.com/vovakirdan/canvas-arcade/internal/raster"
	"github.com/vovakirdan/canvas-arcade/internal/registry"
)

// Token identifies one scheduled frame chain. Frames carrying any other
// token are stale and ignored. The zero Token is never active.
type Token uint64

// Observer receives the game summary whenever it changes.
type Observer func(core.GameState)

// Option configures a Driver.
type Option func(*Driver)

// WithMaxDelta caps the elapsed time of a single tick.
func WithMaxDelta(d time.Duration) Option {
	return func(drv *Driver) {
		if d > 0 {
			drv.maxDelta = d
		}
	}
}

// WithHoldTimeout sets how long held keys stay down without a release event.
func WithHoldTimeout(d time.Duration) Option {
	return func(drv *Driver) {
		drv.input = core.NewInputAdapter(d)
	}
}

// Driver owns one mounted game and its single scheduled frame chain.
type Driver struct {
	game     registry.Game
	input    *core.InputAdapter
	frame    *raster.Frame
	maxDelta time.Duration

	token   Token
	issued  Token
	last    time.Time
	hasLast bool
	closed  bool

	state     core.GameState
	observers []Observer
}

// New wraps a game that has already been Reset and renders its idle frame.
func New(g registry.Game, opts ...Option) *Driver {
	w, h := g.CanvasSize()
	d := &Driver{
		game:     g,
		input:    core.NewInputAdapter(core.DefaultHoldTimeout),
		frame:    raster.NewFrame(w, h),
		maxDelta: core.DefaultMaxDelta,
	}
	for _, opt := range opts {
		opt(d)
	}
	d.state = g.State()
	g.Render(d.frame)
	return d
}

// Game returns the driven game.
func (d *Driver) Game() registry.Game {
	return d.game
}

// Input returns the adapter host key and pointer events are written to.
func (d *Driver) Input() *core.InputAdapter {
	return d.input
}

// Frame returns the most recently rendered frame.
func (d *Driver) Frame() *raster.Frame {
	return d.frame
}

// State returns the last published summary.
func (d *Driver) State() core.GameState {
	return d.state
}

// Active reports whether tok is the live frame chain.
func (d *Driver) Active(tok Token) bool {
	return !d.closed && tok != 0 && tok == d.token
}

// Subscribe registers an observer and calls it once with the current summary.
func (d *Driver) Subscribe(fn Observer) {
	d.observers = append(d.observers, fn)
	fn(d.state)
}

// Start cancels any previous chain and issues a fresh token.
// The next Frame for the new token only seeds the time baseline.
func (d *Driver) Start(now time.Time) Token {
	if d.closed {
		return 0
	}
	d.issued++
	d.token = d.issued
	d.last = now
	d.hasLast = false
	return d.token
}

// Cancel invalidates the active chain. Pending frames become stale.
func (d *Driver) Cancel() {
	d.token = 0
	d.hasLast = false
}

// Close cancels permanently. Every later Frame, Command and Start is a no-op.
func (d *Driver) Close() {
	d.Cancel()
	d.closed = true
	d.input.Reset()
	d.observers = nil
}

// Tick runs one host frame callback for tok at time now.
// It returns true while the chain should be rescheduled.
func (d *Driver) Tick(tok Token, now time.Time) bool {
	if !d.Active(tok) {
		return false
	}
	if d.game.State().Phase != core.PhasePlaying {
		d.Cancel()
		return false
	}
	if !d.hasLast {
		d.last = now
		d.hasLast = true
		return true
	}

	dt := now.Sub(d.last)
	d.last = now
	if dt < 0 {
		dt = 0
	}
	if dt > d.maxDelta {
		dt = d.maxDelta
	}

	in := d.input.Snapshot(now)
	d.game.Step(dt, in)
	d.render()

	if d.game.State().Phase != core.PhasePlaying {
		d.Cancel()
		return false
	}
	return true
}

// Command forwards a one-shot command to the game. When the game enters
// playing a new chain is started and returned with true; when it leaves
// playing the chain is cancelled. Commands the game ignores while playing
// are queued as edge input for the next tick (fire, for instance).
func (d *Driver) Command(a core.Action, now time.Time) (Token, bool) {
	if d.closed {
		return 0, false
	}
	before := d.game.State().Phase
	if !d.game.Command(a) {
		if before == core.PhasePlaying {
			d.input.Press(a)
		}
		return d.token, false
	}

	d.render()
	if d.game.State().Phase == core.PhasePlaying {
		return d.Start(now), true
	}
	d.Cancel()
	d.input.Reset()
	return 0, false
}

// Redraw re-renders the idle frame, for instance after a theme or size change.
func (d *Driver) Redraw() {
	if d.closed {
		return
	}
	d.render()
}

func (d *Driver) render() {
	d.game.Render(d.frame)
	d.publish()
}

func (d *Driver) publish() {
	s := d.game.State()
	if s == d.state {
		return
	}
	d.state = s
	for _, fn := range d.observers {
		fn(s)
	}
}
