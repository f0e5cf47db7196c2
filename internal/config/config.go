// Package config provides YAML-based game configuration loading and
// difficulty presets for the arcade games.
package config

import (
	"errors"
	"fmt"
)

// CanvasConfig is the fixed drawing surface in pixels.
type CanvasConfig struct {
	Width  int `yaml:"width"`
	Height int `yaml:"height"`
}

func (c CanvasConfig) validate() error {
	if c.Width <= 0 || c.Height <= 0 {
		return fmt.Errorf("canvas must be positive, got %dx%d", c.Width, c.Height)
	}
	return nil
}

// BreakoutConfig contains all configuration for the Breakout game.
type BreakoutConfig struct {
	Canvas CanvasConfig   `yaml:"canvas"`
	Paddle BreakoutPaddle `yaml:"paddle"`
	Ball   BreakoutBall   `yaml:"ball"`
	Bricks BreakoutBricks `yaml:"bricks"`
	Rules  BreakoutRules  `yaml:"rules"`
}

// BreakoutPaddle defines the paddle body and movement.
type BreakoutPaddle struct {
	Width         float64 `yaml:"width"`
	Height        float64 `yaml:"height"`
	BottomOffset  float64 `yaml:"bottom_offset"` // paddle top = canvas height - offset
	Speed         float64 `yaml:"speed"`         // pixels per 60 Hz tick
	SpeedPerLevel float64 `yaml:"speed_per_level"`
}

// BreakoutBall defines the ball body and speed.
type BreakoutBall struct {
	Radius         float64 `yaml:"radius"`
	StartOffset    float64 `yaml:"start_offset"` // ball y = canvas height - offset
	Speed          float64 `yaml:"speed"`        // per-axis component at level 1
	SpeedPerLevel  float64 `yaml:"speed_per_level"`
	MaxBounceAngle float64 `yaml:"max_bounce_angle"` // degrees either side of vertical
}

// BreakoutBricks defines the brick grid.
type BreakoutBricks struct {
	Columns   int     `yaml:"columns"`
	Width     float64 `yaml:"width"`
	Height    float64 `yaml:"height"`
	Padding   float64 `yaml:"padding"`
	OffsetTop float64 `yaml:"offset_top"`
	BaseRows  int     `yaml:"base_rows"`
	MaxRows   int     `yaml:"max_rows"`
}

// BreakoutRules defines scoring and progression.
type BreakoutRules struct {
	Lives          int `yaml:"lives"`
	Levels         int `yaml:"levels"`
	PointsPerBrick int `yaml:"points_per_brick"`
}

// Validate reports configuration that cannot produce a playable game.
func (c BreakoutConfig) Validate() error {
	var errs []error
	if err := c.Canvas.validate(); err != nil {
		errs = append(errs, err)
	}
	if c.Paddle.Width <= 0 || c.Paddle.Width > float64(c.Canvas.Width) {
		errs = append(errs, fmt.Errorf("paddle width %.0f out of range", c.Paddle.Width))
	}
	if c.Ball.Radius <= 0 || c.Ball.Speed <= 0 {
		errs = append(errs, errors.New("ball radius and speed must be positive"))
	}
	if c.Ball.MaxBounceAngle <= 0 || c.Ball.MaxBounceAngle >= 90 {
		errs = append(errs, fmt.Errorf("max bounce angle %.1f must be in (0, 90)", c.Ball.MaxBounceAngle))
	}
	if c.Bricks.Columns <= 0 || c.Bricks.BaseRows <= 0 || c.Bricks.MaxRows < c.Bricks.BaseRows {
		errs = append(errs, errors.New("brick grid must have columns and base_rows <= max_rows"))
	}
	if c.Rules.Lives <= 0 || c.Rules.Levels <= 0 {
		errs = append(errs, errors.New("lives and levels must be positive"))
	}
	return errors.Join(errs...)
}

// SnakeConfig contains all configuration for the Snake game.
type SnakeConfig struct {
	Grid  SnakeGrid  `yaml:"grid"`
	Speed SnakeSpeed `yaml:"speed"`
	Rules SnakeRules `yaml:"rules"`
}

// SnakeGrid defines the board.
type SnakeGrid struct {
	Size     int `yaml:"size"`      // cells per side
	CellSize int `yaml:"cell_size"` // pixels per cell
}

// SnakeSpeed defines the move interval in milliseconds.
type SnakeSpeed struct {
	StartMs int `yaml:"start_ms"`
	StepMs  int `yaml:"step_ms"` // subtracted per food eaten
	MinMs   int `yaml:"min_ms"`
}

// SnakeRules defines scoring.
type SnakeRules struct {
	PointsPerFood int `yaml:"points_per_food"`
}

// Validate reports configuration that cannot produce a playable game.
func (c SnakeConfig) Validate() error {
	var errs []error
	if c.Grid.Size < 4 || c.Grid.CellSize <= 0 {
		errs = append(errs, fmt.Errorf("grid %dx%d cells of %dpx is too small", c.Grid.Size, c.Grid.Size, c.Grid.CellSize))
	}
	if c.Speed.MinMs <= 0 || c.Speed.StartMs < c.Speed.MinMs || c.Speed.StepMs < 0 {
		errs = append(errs, errors.New("speed needs 0 < min_ms <= start_ms and step_ms >= 0"))
	}
	return errors.Join(errs...)
}

// InvadersConfig contains all configuration for the Space Invaders game.
type InvadersConfig struct {
	Canvas    CanvasConfig      `yaml:"canvas"`
	Player    InvadersPlayer    `yaml:"player"`
	Formation InvadersFormation `yaml:"formation"`
	Bullets   InvadersBullets   `yaml:"bullets"`
	Timing    InvadersTiming    `yaml:"timing"`
	Rules     InvadersRules     `yaml:"rules"`
}

// InvadersPlayer defines the player ship.
type InvadersPlayer struct {
	Width        float64 `yaml:"width"`
	Height       float64 `yaml:"height"`
	BottomOffset float64 `yaml:"bottom_offset"`
	Speed        float64 `yaml:"speed"`
}

// InvadersFormation defines the invader grid and its sweep.
type InvadersFormation struct {
	Rows    int     `yaml:"rows"`
	Columns int     `yaml:"columns"`
	Width   float64 `yaml:"width"`
	Height  float64 `yaml:"height"`
	Padding float64 `yaml:"padding"`
	OriginX float64 `yaml:"origin_x"`
	OriginY float64 `yaml:"origin_y"`
	Step    float64 `yaml:"step"`
	Drop    float64 `yaml:"drop"`
	Margin  float64 `yaml:"margin"`
}

// InvadersBullets defines projectiles.
type InvadersBullets struct {
	PlayerSpeed  float64 `yaml:"player_speed"`
	InvaderSpeed float64 `yaml:"invader_speed"`
	Width        float64 `yaml:"width"`
	Height       float64 `yaml:"height"`
	CooldownMs   int     `yaml:"cooldown_ms"`
}

// InvadersTiming defines the slower cadences.
type InvadersTiming struct {
	MoveIntervalMs int `yaml:"move_interval_ms"` // divided by the sweep speed
	EnemyFireMs    int `yaml:"enemy_fire_ms"`
}

// InvadersRules defines scoring and the speed ramp.
type InvadersRules struct {
	PointsPerKill int     `yaml:"points_per_kill"`
	KillsPerSpeed float64 `yaml:"kills_per_speed"` // speed = 1 + killed / kills_per_speed
}

// Validate reports configuration that cannot produce a playable game.
func (c InvadersConfig) Validate() error {
	var errs []error
	if err := c.Canvas.validate(); err != nil {
		errs = append(errs, err)
	}
	if c.Formation.Rows <= 0 || c.Formation.Columns <= 0 {
		errs = append(errs, errors.New("formation needs rows and columns"))
	}
	if c.Bullets.CooldownMs < 0 || c.Timing.MoveIntervalMs <= 0 || c.Timing.EnemyFireMs <= 0 {
		errs = append(errs, errors.New("timers must be positive"))
	}
	if c.Rules.KillsPerSpeed <= 0 {
		errs = append(errs, errors.New("kills_per_speed must be positive"))
	}
	return errors.Join(errs...)
}

// DifficultyPreset represents a named difficulty level.
type DifficultyPreset string

const (
	DifficultyEasy   DifficultyPreset = "easy"
	DifficultyNormal DifficultyPreset = "normal"
	DifficultyHard   DifficultyPreset = "hard"
)

// ParsePreset validates a preset name. Empty means normal.
func ParsePreset(name string) (DifficultyPreset, error) {
	switch DifficultyPreset(name) {
	case "", DifficultyNormal:
		return DifficultyNormal, nil
	case DifficultyEasy, DifficultyHard:
		return DifficultyPreset(name), nil
	default:
		return "", fmt.Errorf("unknown difficulty %q (want easy, normal or hard)", name)
	}
}
