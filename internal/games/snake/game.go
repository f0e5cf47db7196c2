// Package snake implements grid Snake with an accumulated-time move gate.
package snake

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/vovakirdan/canvas-arcade/internal/config"
	"github.com/vovakirdan/canvas-arcade/internal/core"
	"github.com/vovakirdan/canvas-arcade/internal/raster"
	"github.com/vovakirdan/canvas-arcade/internal/registry"
)

// Direction represents the snake's movement direction.
type Direction int

const (
	DirRight Direction = iota
	DirDown
	DirLeft
	DirUp
)

// Point represents a grid cell.
type Point struct {
	X, Y int
}

// Add returns the neighbouring cell in direction d.
func (p Point) Add(d Direction) Point {
	switch d {
	case DirUp:
		return Point{X: p.X, Y: p.Y - 1}
	case DirDown:
		return Point{X: p.X, Y: p.Y + 1}
	case DirLeft:
		return Point{X: p.X - 1, Y: p.Y}
	default:
		return Point{X: p.X + 1, Y: p.Y}
	}
}

// Game implements the Snake game.
type Game struct {
	rng   *rand.Rand
	tick  uint64
	score int
	eaten int
	best  core.HighScore
	phase core.Phase

	// Snake state
	snake     []Point // Head at index 0
	direction Direction
	nextDir   Direction // Buffered direction for next move

	food    Point
	hasFood bool

	acc time.Duration // time since the last move

	runtime core.RuntimeConfig
	cfg     config.SnakeConfig
	theme   core.Theme
}

// Package-level variables for config/difficulty (like breakout pattern)
var (
	configPath       string
	difficultyPreset config.DifficultyPreset
)

// SetConfigPath sets the custom config path for loading.
func SetConfigPath(path string) {
	configPath = path
}

// SetDifficultyPreset sets the difficulty preset.
func SetDifficultyPreset(preset config.DifficultyPreset) {
	difficultyPreset = preset
}

// New creates a new Snake game.
func New() *Game {
	return &Game{}
}

func init() {
	registry.Register("snake", func() registry.Game {
		return New()
	})
}

// ID returns the game identifier.
func (g *Game) ID() string {
	return "snake"
}

// Title returns the display name.
func (g *Game) Title() string {
	return "Snake"
}

// Reset mounts the game and starts a fresh run in the ready phase.
func (g *Game) Reset(runtime core.RuntimeConfig) {
	g.runtime = runtime

	cfg, err := config.LoadSnake(configPath)
	if err != nil {
		cfg = config.DefaultSnakeConfig()
	}
	if difficultyPreset != "" {
		config.ApplySnakePreset(&cfg, difficultyPreset)
	}

	g.cfg = cfg
	g.theme = runtime.Theme.OrDefault()
	g.rng = rand.New(rand.NewSource(runtime.Seed)) //#nosec G404 -- gameplay randomness, not security
	g.best = core.NewHighScore(runtime.Best)

	g.newRun()
}

// newRun places a one-cell snake at the grid center heading right.
func (g *Game) newRun() {
	mid := g.cfg.Grid.Size / 2
	g.snake = []Point{{X: mid, Y: mid}}
	g.direction = DirRight
	g.nextDir = DirRight
	g.score = 0
	g.eaten = 0
	g.tick = 0
	g.acc = 0
	g.phase = core.PhaseReady
	g.spawnFood()
}

// spawnFood places food at a uniformly random empty cell.
// A full grid leaves no food; the next move is then necessarily fatal.
func (g *Game) spawnFood() {
	size := g.cfg.Grid.Size
	occupied := make(map[Point]bool, len(g.snake))
	for _, seg := range g.snake {
		occupied[seg] = true
	}

	emptyCells := make([]Point, 0, size*size-len(g.snake))
	for y := range size {
		for x := range size {
			p := Point{X: x, Y: y}
			if !occupied[p] {
				emptyCells = append(emptyCells, p)
			}
		}
	}

	if len(emptyCells) == 0 {
		g.hasFood = false
		g.food = Point{X: -1, Y: -1}
		return
	}
	g.food = emptyCells[g.rng.Intn(len(emptyCells))]
	g.hasFood = true
}

// isSnakeAt checks if the snake occupies the given point.
func (g *Game) isSnakeAt(p Point) bool {
	for _, seg := range g.snake {
		if seg == p {
			return true
		}
	}
	return false
}

// Interval returns the current move interval.
func (g *Game) Interval() time.Duration {
	ms := max(g.cfg.Speed.MinMs, g.cfg.Speed.StartMs-g.eaten*g.cfg.Speed.StepMs)
	return time.Duration(ms) * time.Millisecond
}

// Command applies start, pause and restart. It never advances the world.
func (g *Game) Command(a core.Action) bool {
	switch a {
	case core.ActionStart, core.ActionFire:
		switch g.phase {
		case core.PhaseReady, core.PhasePaused:
			g.phase = core.PhasePlaying
			return true
		case core.PhaseGameOver:
			g.newRun()
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
	case core.ActionRestart:
		g.newRun()
		return true
	}
	return false
}

// Step accumulates elapsed time and moves one cell once it exceeds the interval.
func (g *Game) Step(dt time.Duration, input core.InputFrame) core.StepResult {
	if g.phase != core.PhasePlaying {
		return core.StepResult{State: g.State()}
	}

	g.processInput(input)

	if dt > 0 {
		g.acc += min(dt, core.DefaultMaxDelta)
	}
	if g.acc > g.Interval() {
		g.acc = 0
		g.tick++
		g.moveSnake()
	}

	return core.StepResult{State: g.State()}
}

// processInput buffers a direction change for the next move.
// The most recently pressed direction wins when several are held.
func (g *Game) processInput(input core.InputFrame) {
	act := input.Latest
	if !input.Has(act) {
		act = firstHeldDirection(input)
	}
	newDir, ok := directionOf(act)
	if !ok {
		return
	}

	// Prevent instant reversal
	if !isOpposite(newDir, g.direction) {
		g.nextDir = newDir
	}
}

// firstHeldDirection picks a held direction in a fixed order for frames
// that carry no press order.
func firstHeldDirection(input core.InputFrame) core.Action {
	for _, act := range []core.Action{core.ActionUp, core.ActionDown, core.ActionLeft, core.ActionRight} {
		if input.Has(act) {
			return act
		}
	}
	return core.ActionNone
}

func directionOf(act core.Action) (Direction, bool) {
	switch act {
	case core.ActionUp:
		return DirUp, true
	case core.ActionDown:
		return DirDown, true
	case core.ActionLeft:
		return DirLeft, true
	case core.ActionRight:
		return DirRight, true
	}
	return DirRight, false
}

// isOpposite checks if two directions are opposite.
func isOpposite(d1, d2 Direction) bool {
	return (d1 == DirUp && d2 == DirDown) ||
		(d1 == DirDown && d2 == DirUp) ||
		(d1 == DirLeft && d2 == DirRight) ||
		(d1 == DirRight && d2 == DirLeft)
}

// moveSnake moves the snake one cell in the buffered direction.
func (g *Game) moveSnake() {
	g.direction = g.nextDir
	newHead := g.snake[0].Add(g.direction)

	size := g.cfg.Grid.Size
	if newHead.X < 0 || newHead.X >= size || newHead.Y < 0 || newHead.Y >= size {
		g.phase = core.PhaseGameOver
		return
	}

	// The tail counts: the body is checked before it moves
	if g.isSnakeAt(newHead) {
		g.phase = core.PhaseGameOver
		return
	}

	g.snake = append([]Point{newHead}, g.snake...)

	if g.hasFood && newHead == g.food {
		g.score += g.cfg.Rules.PointsPerFood
		g.eaten++
		g.best.Offer(g.score)
		g.spawnFood()
		return
	}

	g.snake = g.snake[:len(g.snake)-1]
}

// Render draws the grid contents, HUD and the phase overlay.
func (g *Game) Render(dst *raster.Frame) {
	w, h := g.CanvasSize()
	dst.Resize(w, h)
	dst.Clear(g.theme)

	cell := float64(g.cfg.Grid.CellSize)

	for i, seg := range g.snake {
		color := g.theme.Foreground
		if i == 0 {
			color = core.ColorBrightGreen
		}
		dst.FillRect(core.RectF{
			X: float64(seg.X)*cell + 1,
			Y: float64(seg.Y)*cell + 1,
			W: cell - 2,
			H: cell - 2,
		}, color)
	}

	if g.hasFood {
		dst.FillCircle(core.Circle{
			X:      float64(g.food.X)*cell + cell/2,
			Y:      float64(g.food.Y)*cell + cell/2,
			Radius: cell/2 - 2,
		}, core.ColorRed)
	}

	g.renderHUD(dst)
	g.renderOverlay(dst)
}

// renderHUD publishes score, length and best.
func (g *Game) renderHUD(dst *raster.Frame) {
	dst.SetHUD(
		raster.HUDItem{Label: "Score", Value: fmt.Sprintf("%d", g.score)},
		raster.HUDItem{Label: "Length", Value: fmt.Sprintf("%d", len(g.snake))},
		raster.HUDItem{Label: "High", Value: fmt.Sprintf("%d", g.best.Value())},
	)
}

// renderOverlay draws the phase message.
func (g *Game) renderOverlay(dst *raster.Frame) {
	switch g.phase {
	case core.PhaseReady:
		dst.SetOverlay("SNAKE", "Press SPACE to start")
	case core.PhasePaused:
		dst.SetOverlay("PAUSED", "Press P to resume")
	case core.PhaseGameOver:
		dst.SetOverlay("GAME OVER", fmt.Sprintf("Score: %d", g.score), "Press SPACE to play again")
	}
}

// CanvasSize returns the logical canvas in pixels.
func (g *Game) CanvasSize() (w, h int) {
	side := g.cfg.Grid.Size * g.cfg.Grid.CellSize
	return side, side
}

// State returns the current game state.
func (g *Game) State() core.GameState {
	return core.GameState{
		Score:     g.score,
		HighScore: g.best.Value(),
		Phase:     g.phase,
	}
}

func (d Direction) String() string {
	switch d {
	case DirUp:
		return "up"
	case DirDown:
		return "down"
	case DirLeft:
		return "left"
	case DirRight:
		return "right"
	default:
		return "unknown"
	}
}
