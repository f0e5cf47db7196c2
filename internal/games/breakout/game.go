package breakout

import (
	"fmt"
	"math"
	"time"

	"github.com/vovakirdan/canvas-arcade/internal/config"
	"github.com/vovakirdan/canvas-arcade/internal/core"
	"github.com/vovakirdan/canvas-arcade/internal/raster"
	"github.com/vovakirdan/canvas-arcade/internal/registry"
)

// BrickColors cycles by row, top row first.
var BrickColors = []core.Color{
	core.ColorRed,
	core.ColorOrange,
	core.ColorYellow,
	core.ColorGreen,
	core.ColorCyan,
	core.ColorBlue,
	core.ColorMagenta,
	core.ColorBrightRed,
}

// GameMode represents the game mode.
type GameMode int

const (
	ModeCampaign GameMode = iota // Play through levels, win at end
	ModeEndless                  // Layouts cycle, score until game over
)

// configPath stores the custom config path set via CLI
var configPath string

// difficultyPreset stores the difficulty preset set via CLI
var difficultyPreset config.DifficultyPreset

// SetConfigPath sets the custom config path for loading.
func SetConfigPath(path string) {
	configPath = path
}

// SetDifficultyPreset sets the difficulty preset.
func SetDifficultyPreset(preset config.DifficultyPreset) {
	difficultyPreset = preset
}

// Game implements the Breakout game logic.
type Game struct {
	mode GameMode

	// Game objects
	paddle Paddle
	ball   Ball
	level  *Level

	// Game state
	phase     core.Phase
	score     int
	lives     int
	levelNum  int
	tickCount uint64
	best      core.HighScore

	// Configuration
	runtime core.RuntimeConfig
	cfg     config.BreakoutConfig
	theme   core.Theme
	width   float64
	height  float64
	bounce  float64 // max deflection from vertical, radians
}

// New creates a new Breakout game instance (campaign mode).
func New() *Game {
	return &Game{mode: ModeCampaign}
}

// NewEndless creates a new Breakout game instance in endless mode.
func NewEndless() *Game {
	return &Game{mode: ModeEndless}
}

// ID returns the unique identifier for this game.
func (g *Game) ID() string {
	if g.mode == ModeEndless {
		return "breakout_endless"
	}
	return "breakout"
}

// Title returns the display name for this game.
func (g *Game) Title() string {
	if g.mode == ModeEndless {
		return "Breakout (Endless)"
	}
	return "Breakout"
}

// Reset mounts the game and starts a fresh run in the ready phase.
func (g *Game) Reset(runtime core.RuntimeConfig) {
	g.runtime = runtime

	cfg, err := config.LoadBreakout(configPath)
	if err != nil {
		cfg = config.DefaultBreakoutConfig()
	}
	if difficultyPreset != "" {
		config.ApplyBreakoutPreset(&cfg, difficultyPreset)
	}
	if runtime.Width > 0 && runtime.Height > 0 {
		cfg.Canvas = config.CanvasConfig{Width: runtime.Width, Height: runtime.Height}
	}

	g.cfg = cfg
	g.theme = runtime.Theme.OrDefault()
	g.width = float64(cfg.Canvas.Width)
	g.height = float64(cfg.Canvas.Height)
	g.bounce = cfg.Ball.MaxBounceAngle * math.Pi / 180
	g.best = core.NewHighScore(runtime.Best)

	g.newRun()
}

// newRun resets score, lives and level 1. High score survives.
func (g *Game) newRun() {
	g.score = 0
	g.lives = g.cfg.Rules.Lives
	g.tickCount = 0
	g.loadLevel(1)
	g.phase = core.PhaseReady
}

// loadLevel builds the layout for a 1-based level and serves a new ball.
func (g *Game) loadLevel(n int) {
	g.levelNum = n
	g.level = BuildLevel(g.cfg.Bricks, g.width, n)
	g.serve()
}

// serve places the paddle and ball at their start positions for the current level.
func (g *Game) serve() {
	step := float64(g.levelNum - 1)

	g.paddle = Paddle{
		Body: core.RectF{
			X: g.width/2 - g.cfg.Paddle.Width/2,
			Y: g.height - g.cfg.Paddle.BottomOffset,
			W: g.cfg.Paddle.Width,
			H: g.cfg.Paddle.Height,
		},
		Speed: g.cfg.Paddle.Speed + step*g.cfg.Paddle.SpeedPerLevel,
	}

	speed := g.cfg.Ball.Speed + step*g.cfg.Ball.SpeedPerLevel
	g.ball = Ball{
		Pos:    core.Vec2{X: g.width / 2, Y: g.height - g.cfg.Ball.StartOffset},
		Vel:    core.Vec2{X: speed, Y: -speed},
		Radius: g.cfg.Ball.Radius,
	}
}

// Command applies start, pause and restart. It never advances the world.
func (g *Game) Command(a core.Action) bool {
	switch a {
	case core.ActionStart, core.ActionFire:
		switch g.phase {
		case core.PhaseReady, core.PhasePaused:
			g.phase = core.PhasePlaying
			return true
		case core.PhaseGameOver, core.PhaseWon:
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

// Step advances the simulation by dt. Frames longer than one baseline tick
// are split so the ball never moves more than one velocity step between
// collision checks.
func (g *Game) Step(dt time.Duration, in core.InputFrame) core.StepResult {
	if g.phase != core.PhasePlaying {
		return core.StepResult{State: g.State()}
	}

	scale := core.TickScale(dt, core.DefaultMaxDelta)
	if scale <= 0 {
		return core.StepResult{State: g.State()}
	}
	n := max(1, int(math.Ceil(scale-1e-6)))
	k := scale / float64(n)
	for range n {
		if g.phase != core.PhasePlaying {
			break
		}
		g.tick(in, k)
	}

	return core.StepResult{State: g.State()}
}

// tick runs one collision pass scaled by k baseline ticks.
func (g *Game) tick(in core.InputFrame, k float64) {
	g.tickCount++

	g.updatePaddle(in, k)

	g.ball.Pos = g.ball.Pos.Add(g.ball.Vel.Scale(k))
	CheckWallCollision(&g.ball, g.width)

	if CheckPaddleCollision(&g.ball, g.paddle.Body, g.bounce) {
		return
	}

	if g.ball.Pos.Y+g.ball.Radius > g.height {
		g.handleMiss()
		return
	}

	if _, hit := CheckBrickCollision(&g.ball, g.level.Bricks); hit {
		g.score += g.cfg.Rules.PointsPerBrick
		g.best.Offer(g.score)
		if g.level.CountAlive() == 0 {
			g.handleLevelClear()
		}
	}
}

// updatePaddle follows the pointer when present, otherwise the held keys.
func (g *Game) updatePaddle(in core.InputFrame, k float64) {
	if in.HasPointer {
		g.paddle.MoveTo(in.PointerX-g.paddle.Body.W/2, g.width)
		return
	}
	dx := 0.0
	if in.Has(core.ActionLeft) {
		dx -= g.paddle.Speed * k
	}
	if in.Has(core.ActionRight) {
		dx += g.paddle.Speed * k
	}
	if dx != 0 {
		g.paddle.MoveBy(dx, g.width)
	}
}

// handleMiss costs a life when the ball leaves through the bottom.
func (g *Game) handleMiss() {
	g.lives--
	if g.lives <= 0 {
		g.lives = 0
		g.phase = core.PhaseGameOver
		return
	}
	g.serve()
	g.phase = core.PhaseReady
}

// handleLevelClear advances to the next level or ends the campaign.
func (g *Game) handleLevelClear() {
	if g.mode == ModeCampaign && g.levelNum >= g.cfg.Rules.Levels {
		g.phase = core.PhaseWon
		return
	}
	g.loadLevel(g.levelNum + 1)
	g.phase = core.PhaseReady
}

// Render draws bricks, paddle, ball, HUD and the phase overlay.
func (g *Game) Render(dst *raster.Frame) {
	dst.Resize(g.cfg.Canvas.Width, g.cfg.Canvas.Height)
	dst.Clear(g.theme)

	g.renderBricks(dst)
	dst.FillRect(g.paddle.Body, g.theme.Foreground)
	dst.FillCircle(g.ball.Circle(), g.theme.Foreground)

	g.renderHUD(dst)
	g.renderOverlay(dst)
}

// renderHUD publishes score, lives, level and best.
func (g *Game) renderHUD(dst *raster.Frame) {
	level := fmt.Sprintf("%d/%d", g.levelNum, g.cfg.Rules.Levels)
	if g.mode == ModeEndless {
		level = fmt.Sprintf("%d", g.levelNum)
	}
	dst.SetHUD(
		raster.HUDItem{Label: "Score", Value: fmt.Sprintf("%d", g.score)},
		raster.HUDItem{Label: "Lives", Value: fmt.Sprintf("%d", g.lives)},
		raster.HUDItem{Label: "Level", Value: level},
		raster.HUDItem{Label: "High", Value: fmt.Sprintf("%d", g.best.Value())},
	)
}

// renderBricks draws all visible bricks, colored by row.
func (g *Game) renderBricks(dst *raster.Frame) {
	for _, b := range g.level.Bricks {
		if !b.Visible {
			continue
		}
		dst.FillRect(b.Body, BrickColors[b.Row%len(BrickColors)])
		// Background outline keeps adjacent bricks apart at low resolution
		dst.StrokeRect(b.Body, g.theme.Background)
	}
}

// renderOverlay draws the phase message.
func (g *Game) renderOverlay(dst *raster.Frame) {
	switch g.phase {
	case core.PhaseReady:
		dst.SetOverlay(fmt.Sprintf("LEVEL %d", g.levelNum), "Press SPACE to start")
	case core.PhasePaused:
		dst.SetOverlay("PAUSED", "Press P to resume")
	case core.PhaseGameOver:
		dst.SetOverlay("GAME OVER", fmt.Sprintf("Score: %d", g.score), "Press SPACE to play again")
	case core.PhaseWon:
		dst.SetOverlay("YOU WIN!", fmt.Sprintf("Final Score: %d", g.score), "Press SPACE to play again")
	}
}

// CanvasSize returns the logical canvas in pixels.
func (g *Game) CanvasSize() (w, h int) {
	return g.cfg.Canvas.Width, g.cfg.Canvas.Height
}

// State returns the current game state.
func (g *Game) State() core.GameState {
	return core.GameState{
		Score:     g.score,
		HighScore: g.best.Value(),
		Lives:     g.lives,
		Level:     g.levelNum,
		Phase:     g.phase,
	}
}

// Register the games with the registry
func init() {
	registry.Register("breakout", func() registry.Game {
		return New()
	})
	registry.Register("breakout_endless", func() registry.Game {
		return NewEndless()
	})
}
