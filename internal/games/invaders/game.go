// Package invaders implements Space Invaders: a sweeping formation, a
// player ship and two streams of bullets.
package invaders

import (
	"fmt"
	"math"
	"math/rand"
	"time"

	"github.com/vovakirdan/canvas-arcade/internal/config"
	"github.com/vovakirdan/canvas-arcade/internal/core"
	"github.com/vovakirdan/canvas-arcade/internal/raster"
	"github.com/vovakirdan/canvas-arcade/internal/registry"
)

// RowColors cycles invader colors by row. Every theme uses them.
var RowColors = []core.Color{
	core.ColorBrightMagenta,
	core.ColorBrightCyan,
	core.ColorBrightCyan,
	core.ColorBrightGreen,
	core.ColorBrightGreen,
}

// Bullet is a point projectile; it is drawn as a thin rectangle centered on Pos.
type Bullet struct {
	Pos        core.Vec2
	Speed      float64 // pixels per 60 Hz tick, positive
	FromPlayer bool
}

// Player is the ship at the bottom of the canvas.
type Player struct {
	Body  core.RectF
	Speed float64
}

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

// Game implements Space Invaders.
type Game struct {
	rng       *rand.Rand
	tickCount uint64
	phase     core.Phase
	score     int
	killed    int
	best      core.HighScore

	player    Player
	formation *Formation
	bullets   []Bullet

	// Elapsed-time timers
	cooldown  time.Duration // remaining before the player may fire again
	moveTimer time.Duration
	fireTimer time.Duration

	runtime core.RuntimeConfig
	cfg     config.InvadersConfig
	theme   core.Theme
	width   float64
	height  float64
}

// New creates a new Space Invaders game.
func New() *Game {
	return &Game{}
}

func init() {
	registry.Register("invaders", func() registry.Game {
		return New()
	})
}

// ID returns the game identifier.
func (g *Game) ID() string {
	return "invaders"
}

// Title returns the display name.
func (g *Game) Title() string {
	return "Space Invaders"
}

// Reset mounts the game and starts a fresh run in the ready phase.
func (g *Game) Reset(runtime core.RuntimeConfig) {
	g.runtime = runtime

	cfg, err := config.LoadInvaders(configPath)
	if err != nil {
		cfg = config.DefaultInvadersConfig()
	}
	if difficultyPreset != "" {
		config.ApplyInvadersPreset(&cfg, difficultyPreset)
	}
	if runtime.Width > 0 && runtime.Height > 0 {
		cfg.Canvas = config.CanvasConfig{Width: runtime.Width, Height: runtime.Height}
	}

	g.cfg = cfg
	g.theme = runtime.Theme.OrDefault()
	g.width = float64(cfg.Canvas.Width)
	g.height = float64(cfg.Canvas.Height)
	g.rng = rand.New(rand.NewSource(runtime.Seed)) //#nosec G404 -- gameplay randomness, not security
	g.best = core.NewHighScore(runtime.Best)

	g.newRun()
}

// newRun rebuilds the formation and centers the ship.
func (g *Game) newRun() {
	g.player = Player{
		Body: core.RectF{
			X: g.width/2 - g.cfg.Player.Width/2,
			Y: g.height - g.cfg.Player.BottomOffset,
			W: g.cfg.Player.Width,
			H: g.cfg.Player.Height,
		},
		Speed: g.cfg.Player.Speed,
	}
	g.formation = NewFormation(g.cfg.Formation)
	g.bullets = g.bullets[:0]
	g.score = 0
	g.killed = 0
	g.tickCount = 0
	g.cooldown = 0
	g.moveTimer = 0
	g.fireTimer = 0
	g.phase = core.PhaseReady
}

// SweepSpeed grows with the number of invaders destroyed.
func (g *Game) SweepSpeed() float64 {
	return 1 + float64(g.killed)/g.cfg.Rules.KillsPerSpeed
}

// MoveInterval is the time between formation beats at the current speed.
func (g *Game) MoveInterval() time.Duration {
	ms := float64(g.cfg.Timing.MoveIntervalMs) / g.SweepSpeed()
	return time.Duration(ms * float64(time.Millisecond))
}

// Command applies start, pause and restart. It never advances the world.
func (g *Game) Command(a core.Action) bool {
	switch a {
	case core.ActionStart:
		switch g.phase {
		case core.PhaseReady, core.PhasePaused:
			g.phase = core.PhasePlaying
			return true
		case core.PhaseGameOver, core.PhaseWon:
			g.newRun()
			g.phase = core.PhasePlaying
			return true
		}
	case core.ActionFire:
		// Outside play Fire acts as Start
		if g.phase != core.PhasePlaying {
			return g.Command(core.ActionStart)
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

// Step advances the simulation by dt, split into baseline-sized sub-ticks.
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
	sub := time.Duration(k * float64(core.BaselineTick))
	for range n {
		if g.phase != core.PhasePlaying {
			break
		}
		g.tick(in, k, sub)
	}

	return core.StepResult{State: g.State()}
}

// tick runs one sub-tick: ship, fire, formation beat, enemy fire, bullets.
func (g *Game) tick(in core.InputFrame, k float64, elapsed time.Duration) {
	g.tickCount++

	g.updatePlayer(in, k)

	g.cooldown -= elapsed
	if in.Has(core.ActionFire) && g.cooldown <= 0 {
		g.playerShoot()
	}

	g.moveTimer += elapsed
	if g.moveTimer > g.MoveInterval() {
		g.moveTimer = 0
		if g.formation.Advance(g.width, g.cfg.Formation) && g.formation.Reached(g.player.Body.Y) {
			g.phase = core.PhaseGameOver
			return
		}
	}

	g.fireTimer += elapsed
	if g.fireTimer > time.Duration(g.cfg.Timing.EnemyFireMs)*time.Millisecond {
		g.fireTimer = 0
		g.invaderShoot()
	}

	if g.updateBullets(k) {
		g.phase = core.PhaseGameOver
		return
	}

	if g.formation.CountAlive() == 0 {
		g.phase = core.PhaseWon
	}
}

// updatePlayer moves the ship under held input, clamped to the canvas.
func (g *Game) updatePlayer(in core.InputFrame, k float64) {
	dx := 0.0
	if in.Has(core.ActionLeft) {
		dx -= g.player.Speed * k
	}
	if in.Has(core.ActionRight) {
		dx += g.player.Speed * k
	}
	g.player.Body.X = core.ClampF(g.player.Body.X+dx, 0, g.width-g.player.Body.W)
}

// playerShoot launches a bullet from the cannon and starts the cooldown.
func (g *Game) playerShoot() {
	g.bullets = append(g.bullets, Bullet{
		Pos:        core.Vec2{X: g.player.Body.CenterX(), Y: g.player.Body.Y},
		Speed:      g.cfg.Bullets.PlayerSpeed,
		FromPlayer: true,
	})
	g.cooldown = time.Duration(g.cfg.Bullets.CooldownMs) * time.Millisecond
}

// invaderShoot fires from a uniformly random living invader.
func (g *Game) invaderShoot() {
	alive := g.formation.alive()
	if len(alive) == 0 {
		return
	}
	shooter := g.formation.Invaders[alive[g.rng.Intn(len(alive))]].Body
	g.bullets = append(g.bullets, Bullet{
		Pos:   core.Vec2{X: shooter.CenterX(), Y: shooter.Bottom()},
		Speed: g.cfg.Bullets.InvaderSpeed,
	})
}

// updateBullets moves every projectile and resolves hits.
// Returns true when an invader bullet struck the player.
func (g *Game) updateBullets(k float64) bool {
	kept := g.bullets[:0]
	for _, b := range g.bullets {
		if b.FromPlayer {
			b.Pos.Y -= b.Speed * k
		} else {
			b.Pos.Y += b.Speed * k
		}

		if b.Pos.Y < 0 || b.Pos.Y > g.height {
			continue
		}

		if b.FromPlayer {
			if _, hit := g.formation.HitBy(b.Pos.X, b.Pos.Y); hit {
				g.killed++
				g.score += g.cfg.Rules.PointsPerKill
				g.best.Offer(g.score)
				continue
			}
		} else if g.player.Body.ContainsPoint(b.Pos.X, b.Pos.Y) {
			g.bullets = kept
			return true
		}

		kept = append(kept, b)
	}
	g.bullets = kept
	return false
}

// Render draws the ship, formation, bullets, HUD and the phase overlay.
func (g *Game) Render(dst *raster.Frame) {
	dst.Resize(g.cfg.Canvas.Width, g.cfg.Canvas.Height)
	dst.Clear(g.theme)

	g.renderPlayer(dst)
	g.renderInvaders(dst)
	g.renderBullets(dst)

	g.renderHUD(dst)
	g.renderOverlay(dst)
}

// renderPlayer draws the hull and cannon.
func (g *Game) renderPlayer(dst *raster.Frame) {
	p := g.player.Body
	dst.FillRect(p, g.theme.Foreground)
	dst.FillRect(core.RectF{X: p.CenterX() - 3, Y: p.Y - 10, W: 6, H: 10}, g.theme.Foreground)
}

// renderInvaders draws each living invader as a small alien built from rectangles.
func (g *Game) renderInvaders(dst *raster.Frame) {
	for _, inv := range g.formation.Invaders {
		if !inv.Alive {
			continue
		}
		c := RowColors[inv.Row%len(RowColors)]
		x, y, w, h := inv.Body.X, inv.Body.Y, inv.Body.W, inv.Body.H

		dst.FillRect(core.RectF{X: x + w*0.2, Y: y + h*0.3, W: w * 0.6, H: h * 0.5}, c) // body
		dst.FillRect(core.RectF{X: x, Y: y + h*0.4, W: w * 0.2, H: h * 0.2}, c)         // arms
		dst.FillRect(core.RectF{X: x + w*0.8, Y: y + h*0.4, W: w * 0.2, H: h * 0.2}, c)
		dst.FillRect(core.RectF{X: x + w*0.2, Y: y + h*0.8, W: w * 0.2, H: h * 0.2}, c) // legs
		dst.FillRect(core.RectF{X: x + w*0.6, Y: y + h*0.8, W: w * 0.2, H: h * 0.2}, c)
		dst.FillRect(core.RectF{X: x + w*0.3, Y: y + h*0.4, W: w * 0.1, H: h * 0.2}, g.theme.Background) // eyes
		dst.FillRect(core.RectF{X: x + w*0.6, Y: y + h*0.4, W: w * 0.1, H: h * 0.2}, g.theme.Background)
	}
}

// renderBullets draws projectiles as thin rectangles.
func (g *Game) renderBullets(dst *raster.Frame) {
	bw, bh := g.cfg.Bullets.Width, g.cfg.Bullets.Height
	for _, b := range g.bullets {
		c := g.theme.Foreground
		if !b.FromPlayer {
			c = core.ColorRed
		}
		dst.FillRect(core.RectF{X: b.Pos.X - bw/2, Y: b.Pos.Y - bh/2, W: bw, H: bh}, c)
	}
}

// renderHUD publishes score, remaining invaders and best.
func (g *Game) renderHUD(dst *raster.Frame) {
	dst.SetHUD(
		raster.HUDItem{Label: "Score", Value: fmt.Sprintf("%d", g.score)},
		raster.HUDItem{Label: "Invaders", Value: fmt.Sprintf("%d", g.formation.CountAlive())},
		raster.HUDItem{Label: "High", Value: fmt.Sprintf("%d", g.best.Value())},
	)
}

// renderOverlay draws the phase message.
func (g *Game) renderOverlay(dst *raster.Frame) {
	switch g.phase {
	case core.PhaseReady:
		dst.SetOverlay("SPACE INVADERS", "Press SPACE to start")
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
		Phase:     g.phase,
	}
}
