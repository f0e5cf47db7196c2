package loop

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vovakirdan/canvas-arcade/internal/core"
	_ "github.com/vovakirdan/canvas-arcade/internal/games/breakout"
	"github.com/vovakirdan/canvas-arcade/internal/raster"
	"github.com/vovakirdan/canvas-arcade/internal/registry"
)

// stubGame records every Step; it ends the run once score reaches endAt.
type stubGame struct {
	phase   core.Phase
	steps   []time.Duration
	inputs  []core.InputFrame
	renders int
	score   int
	endAt   int
}

func (g *stubGame) ID() string               { return "stub" }
func (g *stubGame) Title() string            { return "Stub" }
func (g *stubGame) Reset(core.RuntimeConfig) { g.phase = core.PhaseReady }
func (g *stubGame) CanvasSize() (int, int)   { return 10, 10 }
func (g *stubGame) Render(*raster.Frame)     { g.renders++ }

func (g *stubGame) State() core.GameState {
	return core.GameState{Score: g.score, Phase: g.phase}
}

func (g *stubGame) Command(a core.Action) bool {
	switch a {
	case core.ActionStart:
		if g.phase != core.PhasePlaying {
			g.phase = core.PhasePlaying
			return true
		}
	case core.ActionPause:
		switch g.phase {
		case core.PhasePlaying:
			g.phase = core.PhasePaused
			return true
		case core.PhasePaused:
			g.phase = core.PhasePlaying
			return true
		}
	}
	return false
}

func (g *stubGame) Step(dt time.Duration, in core.InputFrame) core.StepResult {
	g.steps = append(g.steps, dt)
	g.inputs = append(g.inputs, in)
	g.score++
	if g.endAt > 0 && g.score >= g.endAt {
		g.phase = core.PhaseGameOver
	}
	return core.StepResult{State: g.State()}
}

func newStub(t *testing.T) (*stubGame, *Driver) {
	t.Helper()
	g := &stubGame{}
	g.Reset(core.DefaultConfig())
	return g, New(g)
}

var t0 = time.Unix(1000, 0)

func TestFirstFrameSeedsBaseline(t *testing.T) {
	g, d := newStub(t)

	tok, ok := d.Command(core.ActionStart, t0)
	require.True(t, ok)

	assert.True(t, d.Tick(tok, t0.Add(5*time.Second)))
	assert.Empty(t, g.steps, "seed frame does not step")

	assert.True(t, d.Tick(tok, t0.Add(5*time.Second+16*time.Millisecond)))
	require.Len(t, g.steps, 1)
	assert.Equal(t, 16*time.Millisecond, g.steps[0])
}

func TestElapsedTimeIsCapped(t *testing.T) {
	g, d := newStub(t)
	tok, _ := d.Command(core.ActionStart, t0)

	d.Tick(tok, t0)
	d.Tick(tok, t0.Add(3*time.Second))
	d.Tick(tok, t0.Add(2*time.Second)) // clock went backwards

	require.Len(t, g.steps, 2)
	assert.Equal(t, core.DefaultMaxDelta, g.steps[0])
	assert.Equal(t, time.Duration(0), g.steps[1])
}

func TestWithMaxDelta(t *testing.T) {
	g := &stubGame{}
	g.Reset(core.DefaultConfig())
	d := New(g, WithMaxDelta(40*time.Millisecond))
	tok, _ := d.Command(core.ActionStart, t0)

	d.Tick(tok, t0)
	d.Tick(tok, t0.Add(time.Second))

	assert.Equal(t, []time.Duration{40 * time.Millisecond}, g.steps)
}

func TestPauseCancelsAndResumeResetsBaseline(t *testing.T) {
	g, d := newStub(t)
	tok, _ := d.Command(core.ActionStart, t0)
	d.Tick(tok, t0)
	d.Tick(tok, t0.Add(16*time.Millisecond))

	_, ok := d.Command(core.ActionPause, t0.Add(20*time.Millisecond))
	assert.False(t, ok)
	assert.False(t, d.Tick(tok, t0.Add(32*time.Millisecond)), "paused chain is stale")
	assert.Len(t, g.steps, 1)

	resumed, ok := d.Command(core.ActionPause, t0.Add(time.Minute))
	require.True(t, ok)
	assert.NotEqual(t, tok, resumed)
	assert.False(t, d.Tick(tok, t0.Add(time.Minute+time.Millisecond)), "old token stays stale")

	d.Tick(resumed, t0.Add(time.Minute+16*time.Millisecond))
	d.Tick(resumed, t0.Add(time.Minute+33*time.Millisecond))
	require.Len(t, g.steps, 2)
	assert.Equal(t, 17*time.Millisecond, g.steps[1], "no stall carried over from the pause")
}

func TestStartReplacesPreviousChain(t *testing.T) {
	_, d := newStub(t)
	first := d.Start(t0)
	second := d.Start(t0)

	assert.False(t, d.Active(first))
	assert.True(t, d.Active(second))
	assert.False(t, d.Active(0))
}

func TestGameOverStopsScheduling(t *testing.T) {
	g, d := newStub(t)
	g.endAt = 3
	tok, _ := d.Command(core.ActionStart, t0)

	now := t0
	frames := 0
	for d.Tick(tok, now) {
		now = now.Add(16 * time.Millisecond)
		frames++
		require.Less(t, frames, 100)
	}

	assert.Len(t, g.steps, 3)
	assert.Equal(t, core.PhaseGameOver, d.State().Phase)
	assert.False(t, d.Active(tok))
}

func TestCloseDropsPendingFrames(t *testing.T) {
	g, d := newStub(t)
	tok, _ := d.Command(core.ActionStart, t0)
	d.Tick(tok, t0)

	d.Close()

	assert.False(t, d.Tick(tok, t0.Add(16*time.Millisecond)))
	_, ok := d.Command(core.ActionStart, t0)
	assert.False(t, ok)
	assert.Equal(t, Token(0), d.Start(t0))
	assert.Empty(t, g.steps)
}

func TestObserversSeeChanges(t *testing.T) {
	g, d := newStub(t)
	var seen []core.GameState
	d.Subscribe(func(s core.GameState) { seen = append(seen, s) })
	require.Len(t, seen, 1)

	tok, _ := d.Command(core.ActionStart, t0)
	d.Tick(tok, t0)
	d.Tick(tok, t0.Add(16*time.Millisecond))
	d.Redraw()

	require.Len(t, seen, 3, "ready, playing, score 1")
	assert.Equal(t, core.PhasePlaying, seen[1].Phase)
	assert.Equal(t, 1, seen[2].Score)
	assert.Greater(t, g.renders, 2)
}

func TestIgnoredCommandBecomesEdgeInput(t *testing.T) {
	g, d := newStub(t)
	tok, _ := d.Command(core.ActionStart, t0)
	d.Tick(tok, t0)

	got, ok := d.Command(core.ActionFire, t0)
	assert.False(t, ok)
	assert.Equal(t, tok, got)

	d.Input().KeyDown(core.ActionLeft, t0)
	d.Tick(tok, t0.Add(16*time.Millisecond))
	d.Tick(tok, t0.Add(32*time.Millisecond))

	require.Len(t, g.inputs, 2)
	assert.True(t, g.inputs[0].Edges[core.ActionFire])
	assert.True(t, g.inputs[0].Has(core.ActionLeft))
	assert.False(t, g.inputs[1].Edges[core.ActionFire], "edges are consumed once")
}

func TestRunStopsOnContext(t *testing.T) {
	_, d := newStub(t)
	tok, _ := d.Command(core.ActionStart, time.Now())

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Millisecond)
	defer cancel()

	err := Run(ctx, d, tok, time.Millisecond)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
	assert.False(t, d.Active(tok))
}

func TestRunReturnsWhenRunEnds(t *testing.T) {
	g, d := newStub(t)
	g.endAt = 5
	tok, _ := d.Command(core.ActionStart, time.Now())

	require.NoError(t, Run(context.Background(), d, tok, time.Millisecond))
	assert.Equal(t, core.PhaseGameOver, g.phase)
}

func TestSimulateIsDeterministic(t *testing.T) {
	run := func() Result {
		g, err := registry.Create("breakout")
		require.NoError(t, err)
		g.Reset(core.RuntimeConfig{Seed: 3})
		d := New(g)
		res, err := Simulate(context.Background(), d, core.BaselineTick, 600, func(i int, in *core.InputAdapter, now time.Time) {
			if i%90 < 45 {
				in.KeyDown(core.ActionLeft, now)
			} else {
				in.KeyDown(core.ActionRight, now)
			}
		})
		require.NoError(t, err)
		return res
	}

	a, b := run(), run()
	assert.Equal(t, "breakout", a.GameID)
	assert.NotZero(t, a.Hash)
	assert.Equal(t, a, b)
	assert.Positive(t, a.Frames)
}

func TestSimulateHonorsCancellation(t *testing.T) {
	_, d := newStub(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := Simulate(ctx, d, 0, 100, nil)
	assert.ErrorIs(t, err, context.Canceled)
}
