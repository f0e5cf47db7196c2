package snake

import (
	"testing"
	"time"

	"github.com/vovakirdan/canvas-arcade/internal/core"
	"github.com/vovakirdan/canvas-arcade/internal/raster"
)

func newGame(t *testing.T, seed int64) *Game {
	t.Helper()
	g := New()
	g.Reset(core.RuntimeConfig{Seed: seed, Theme: core.DefaultTheme()})
	return g
}

func playingGame(t *testing.T, seed int64) *Game {
	t.Helper()
	g := newGame(t, seed)
	if !g.Command(core.ActionStart) {
		t.Fatal("Start from ready should change phase")
	}
	return g
}

// forceMove fills the accumulator so the next Step moves exactly once.
func forceMove(g *Game, input core.InputFrame) {
	g.acc = g.Interval()
	g.Step(time.Millisecond, input)
}

func TestDeterminism(t *testing.T) {
	run := func() Snapshot {
		g := playingGame(t, 12345)
		input := core.NewInputFrame()
		for i := range 400 {
			input.Clear()
			switch i {
			case 60:
				input.Set(core.ActionDown)
			case 120:
				input.Set(core.ActionLeft)
			case 200:
				input.Set(core.ActionUp)
			}
			g.Step(16*time.Millisecond, input)
		}
		return g.Snapshot()
	}

	snap1 := run()
	snap2 := run()

	if snap1.Hash() != snap2.Hash() {
		t.Errorf("Hash mismatch: %d vs %d\n%+v\n%+v", snap1.Hash(), snap2.Hash(), snap1, snap2)
	}
	if snap1.HeadX != snap2.HeadX || snap1.HeadY != snap2.HeadY {
		t.Errorf("Head position mismatch: (%d,%d) vs (%d,%d)",
			snap1.HeadX, snap1.HeadY, snap2.HeadX, snap2.HeadY)
	}
	if snap1.FoodX != snap2.FoodX || snap1.FoodY != snap2.FoodY {
		t.Errorf("Food position mismatch: (%d,%d) vs (%d,%d)",
			snap1.FoodX, snap1.FoodY, snap2.FoodX, snap2.FoodY)
	}
}

func TestReset(t *testing.T) {
	g := newGame(t, 1)

	if len(g.snake) != 1 || g.snake[0] != (Point{X: 10, Y: 10}) {
		t.Errorf("Snake = %v, expected [(10,10)]", g.snake)
	}
	if g.direction != DirRight {
		t.Errorf("Direction = %v, expected right", g.direction)
	}
	if g.State().Phase != core.PhaseReady {
		t.Errorf("Phase = %v, expected ready", g.State().Phase)
	}
	if !g.hasFood || g.isSnakeAt(g.food) {
		t.Errorf("Food = %v, expected on an empty cell", g.food)
	}
	if w, h := g.CanvasSize(); w != 500 || h != 500 {
		t.Errorf("CanvasSize = %dx%d, expected 500x500", w, h)
	}
	if g.Interval() != 150*time.Millisecond {
		t.Errorf("Interval = %v, expected 150ms", g.Interval())
	}
}

func TestStepIgnoredUntilStarted(t *testing.T) {
	g := newGame(t, 1)
	for range 100 {
		g.Step(16*time.Millisecond, core.NewInputFrame())
	}
	if g.snake[0] != (Point{X: 10, Y: 10}) {
		t.Errorf("Head = %v, snake moved before start", g.snake[0])
	}
}

func TestAccumulatorGate(t *testing.T) {
	g := playingGame(t, 1)
	g.food = Point{X: 0, Y: 0}

	for range 9 {
		g.Step(16*time.Millisecond, core.NewInputFrame())
	}
	if g.snake[0].X != 10 {
		t.Fatalf("Head X = %d after 144ms, expected no move yet", g.snake[0].X)
	}

	g.Step(16*time.Millisecond, core.NewInputFrame())
	if g.snake[0].X != 11 {
		t.Errorf("Head X = %d after 160ms, expected 11", g.snake[0].X)
	}
	if g.acc != 0 {
		t.Errorf("acc = %v, expected reset to 0", g.acc)
	}
}

func TestNoImmediateReversal(t *testing.T) {
	g := playingGame(t, 42)

	input := core.NewInputFrame()
	input.Set(core.ActionLeft)
	g.Step(time.Millisecond, input)
	if g.nextDir == DirLeft {
		t.Error("Should not allow immediate reversal from Right to Left")
	}

	// The guard is against the current heading, not the buffered one
	input.Clear()
	input.Set(core.ActionUp)
	g.Step(time.Millisecond, input)
	input.Clear()
	input.Set(core.ActionLeft)
	g.Step(time.Millisecond, input)
	if g.nextDir != DirUp {
		t.Errorf("nextDir = %v, expected up", g.nextDir)
	}
}

func TestNewestHeldDirectionWins(t *testing.T) {
	g := playingGame(t, 42)
	in := core.NewInputAdapter(core.DefaultHoldTimeout)
	now := time.Unix(0, 0)

	// Up and Right are both inside their hold window; Right was pressed last
	in.KeyDown(core.ActionUp, now)
	in.KeyDown(core.ActionRight, now.Add(20*time.Millisecond))
	g.Step(time.Millisecond, in.Snapshot(now.Add(30*time.Millisecond)))
	if g.nextDir != DirRight {
		t.Errorf("nextDir = %v, expected right", g.nextDir)
	}

	in.KeyDown(core.ActionUp, now.Add(40*time.Millisecond))
	g.Step(time.Millisecond, in.Snapshot(now.Add(50*time.Millisecond)))
	if g.nextDir != DirUp {
		t.Errorf("nextDir = %v, expected up after the newer press", g.nextDir)
	}
}

func TestFoodSpawnValidity(t *testing.T) {
	g := newGame(t, 999)
	g.snake = []Point{{X: 3, Y: 3}, {X: 2, Y: 3}, {X: 1, Y: 3}}

	for range 100 {
		g.spawnFood()

		if g.isSnakeAt(g.food) {
			t.Errorf("Food spawned on snake at (%d, %d)", g.food.X, g.food.Y)
		}
		if g.food.X < 0 || g.food.X >= 20 || g.food.Y < 0 || g.food.Y >= 20 {
			t.Errorf("Food spawned out of bounds at (%d, %d)", g.food.X, g.food.Y)
		}
	}
}

func TestFullGridHasNoFood(t *testing.T) {
	g := newGame(t, 1)
	g.snake = g.snake[:0]
	for y := range 20 {
		for x := range 20 {
			g.snake = append(g.snake, Point{X: x, Y: y})
		}
	}

	g.spawnFood()
	if g.hasFood {
		t.Errorf("Food = %v on a full grid", g.food)
	}
}

func TestCollisionDetection(t *testing.T) {
	g := playingGame(t, 1)
	g.snake = []Point{{X: 19, Y: 10}}
	g.food = Point{X: 0, Y: 0}

	forceMove(g, core.NewInputFrame())

	if g.State().Phase != core.PhaseGameOver {
		t.Errorf("Phase = %v, expected gameover after leaving the grid", g.State().Phase)
	}
	if g.snake[0] != (Point{X: 19, Y: 10}) {
		t.Errorf("Head = %v, out-of-grid head must not be committed", g.snake[0])
	}
}

func TestSelfCollision(t *testing.T) {
	g := playingGame(t, 1)
	g.snake = []Point{{X: 5, Y: 5}, {X: 4, Y: 5}, {X: 3, Y: 5}, {X: 2, Y: 5}, {X: 1, Y: 5}}
	g.food = Point{X: 15, Y: 15}

	steps := []core.Action{core.ActionRight, core.ActionDown, core.ActionLeft, core.ActionUp}
	for i, act := range steps {
		input := core.NewInputFrame()
		input.Set(act)
		forceMove(g, input)
		if i < len(steps)-1 && g.State().Phase != core.PhasePlaying {
			t.Fatalf("step %d: phase = %v, expected playing", i, g.State().Phase)
		}
	}

	if g.State().Phase != core.PhaseGameOver {
		t.Errorf("Phase = %v, expected gameover", g.State().Phase)
	}
}

func TestTailCountsAsBody(t *testing.T) {
	g := playingGame(t, 1)
	g.snake = []Point{{X: 5, Y: 5}, {X: 5, Y: 6}, {X: 4, Y: 6}, {X: 4, Y: 5}}
	g.direction = DirUp
	g.nextDir = DirLeft
	g.food = Point{X: 15, Y: 15}

	forceMove(g, core.NewInputFrame())

	if g.State().Phase != core.PhaseGameOver {
		t.Errorf("Phase = %v, expected gameover when entering the tail cell", g.State().Phase)
	}
}

func TestSnakeGrowth(t *testing.T) {
	cell := &core.MemoryCell{}
	g := New()
	g.Reset(core.RuntimeConfig{Seed: 7, Best: cell})
	g.Command(core.ActionStart)
	g.food = Point{X: 11, Y: 10}

	forceMove(g, core.NewInputFrame())

	if len(g.snake) != 2 {
		t.Errorf("Length = %d, expected 2", len(g.snake))
	}
	if g.snake[1] != (Point{X: 10, Y: 10}) {
		t.Errorf("Tail = %v, expected the old head kept", g.snake[1])
	}
	if g.score != 10 || cell.Load() != 10 {
		t.Errorf("Score = %d stored = %d, expected 10", g.score, cell.Load())
	}
	if g.Interval() != 145*time.Millisecond {
		t.Errorf("Interval = %v, expected 145ms", g.Interval())
	}
	if g.isSnakeAt(g.food) {
		t.Error("New food spawned on the snake")
	}

	// A plain move keeps the length
	g.food = Point{X: 0, Y: 0}
	forceMove(g, core.NewInputFrame())
	if len(g.snake) != 2 {
		t.Errorf("Length = %d, expected 2 after a plain move", len(g.snake))
	}
}

func TestIntervalFloor(t *testing.T) {
	g := newGame(t, 1)
	g.eaten = 100
	if g.Interval() != 50*time.Millisecond {
		t.Errorf("Interval = %v, expected floor at 50ms", g.Interval())
	}
}

func TestPause(t *testing.T) {
	g := playingGame(t, 1)

	if !g.Command(core.ActionPause) {
		t.Fatal("Pause from playing should change phase")
	}
	head := g.snake[0]
	g.acc = time.Second
	g.Step(time.Millisecond, core.NewInputFrame())
	if g.snake[0] != head {
		t.Error("Snake moved while paused")
	}

	g.Command(core.ActionPause)
	if g.State().Phase != core.PhasePlaying {
		t.Errorf("Phase = %v, expected playing", g.State().Phase)
	}
}

func TestRestartAfterGameOver(t *testing.T) {
	g := playingGame(t, 1)
	g.snake = []Point{{X: 19, Y: 0}}
	g.score = 40
	forceMove(g, core.NewInputFrame())
	if g.State().Phase != core.PhaseGameOver {
		t.Fatalf("Phase = %v, expected gameover", g.State().Phase)
	}

	// Pause is ignored after the run has ended
	if g.Command(core.ActionPause) {
		t.Error("Pause should not apply in gameover")
	}

	g.Command(core.ActionStart)
	state := g.State()
	if state.Phase != core.PhasePlaying || state.Score != 0 || len(g.snake) != 1 {
		t.Errorf("State after restart = %+v len %d", state, len(g.snake))
	}
}

func TestGameID(t *testing.T) {
	g := New()
	if g.ID() != "snake" || g.Title() != "Snake" {
		t.Errorf("ID/Title = %q/%q", g.ID(), g.Title())
	}
}

func TestRender(t *testing.T) {
	g := newGame(t, 3)
	f := raster.NewFrame(1, 1)
	g.Render(f)

	if f.Width() != 500 || f.Height() != 500 {
		t.Fatalf("Frame = %dx%d, expected 500x500", f.Width(), f.Height())
	}
	if c := f.At(10*25+12, 10*25+12); c != core.ColorBrightGreen {
		t.Errorf("head pixel = %v, expected head color", c)
	}
	fx, fy := g.food.X*25+12, g.food.Y*25+12
	if c := f.At(fx, fy); c != core.ColorRed {
		t.Errorf("food pixel = %v, expected red", c)
	}
	if len(f.HUD()) != 3 {
		t.Errorf("HUD items = %d, expected 3", len(f.HUD()))
	}
	if f.Overlay() == nil || f.Overlay().Title != "SNAKE" {
		t.Errorf("Overlay = %+v, expected ready prompt", f.Overlay())
	}

	before := g.Snapshot()
	g.Render(f)
	after := g.Snapshot()
	if before.Hash() != after.Hash() {
		t.Error("Render changed game state")
	}
}
