package config

import (
	_ "embed"
)

//go:embed defaults/breakout.yaml
var defaultBreakoutYAML []byte

//go:embed defaults/snake.yaml
var defaultSnakeYAML []byte

//go:embed defaults/invaders.yaml
var defaultInvadersYAML []byte

// DefaultBreakoutConfig returns the default Breakout configuration.
func DefaultBreakoutConfig() BreakoutConfig {
	return BreakoutConfig{
		Canvas: CanvasConfig{Width: 800, Height: 600},
		Paddle: BreakoutPaddle{
			Width:         100,
			Height:        15,
			BottomOffset:  40,
			Speed:         8,
			SpeedPerLevel: 0.5,
		},
		Ball: BreakoutBall{
			Radius:         8,
			StartOffset:    60,
			Speed:          4,
			SpeedPerLevel:  0.5,
			MaxBounceAngle: 54,
		},
		Bricks: BreakoutBricks{
			Columns:   10,
			Width:     70,
			Height:    20,
			Padding:   5,
			OffsetTop: 60,
			BaseRows:  5,
			MaxRows:   8,
		},
		Rules: BreakoutRules{
			Lives:          3,
			Levels:         5,
			PointsPerBrick: 10,
		},
	}
}

// DefaultSnakeConfig returns the default Snake configuration.
func DefaultSnakeConfig() SnakeConfig {
	return SnakeConfig{
		Grid:  SnakeGrid{Size: 20, CellSize: 25},
		Speed: SnakeSpeed{StartMs: 150, StepMs: 5, MinMs: 50},
		Rules: SnakeRules{PointsPerFood: 10},
	}
}

// DefaultInvadersConfig returns the default Space Invaders configuration.
func DefaultInvadersConfig() InvadersConfig {
	return InvadersConfig{
		Canvas: CanvasConfig{Width: 800, Height: 600},
		Player: InvadersPlayer{
			Width:        40,
			Height:       30,
			BottomOffset: 60,
			Speed:        6,
		},
		Formation: InvadersFormation{
			Rows:    5,
			Columns: 11,
			Width:   30,
			Height:  20,
			Padding: 10,
			OriginX: 100,
			OriginY: 80,
			Step:    10,
			Drop:    20,
			Margin:  10,
		},
		Bullets: InvadersBullets{
			PlayerSpeed:  7,
			InvaderSpeed: 4,
			Width:        4,
			Height:       10,
			CooldownMs:   500,
		},
		Timing: InvadersTiming{
			MoveIntervalMs: 500,
			EnemyFireMs:    1000,
		},
		Rules: InvadersRules{
			PointsPerKill: 10,
			KillsPerSpeed: 10,
		},
	}
}
