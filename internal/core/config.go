package core

import "time"

// RuntimeConfig contains configuration passed to games at mount time.
type RuntimeConfig struct {
	Width    int       // Canvas width in pixels (0 = game default)
	Height   int       // Canvas height in pixels (0 = game default)
	TickRate int       // Host frame rate in frames per second (default 60)
	Seed     int64     // RNG seed for deterministic gameplay
	Theme    Theme     // Colors forwarded by the host
	Best     ScoreCell // Persisted best score; nil means in-memory only
}

// DefaultConfig returns a RuntimeConfig with sensible defaults.
func DefaultConfig() RuntimeConfig {
	return RuntimeConfig{
		TickRate: 60,
		Seed:     0, // 0 means use current time in platform layer
		Theme:    DefaultTheme(),
	}
}

// FrameInterval returns the time between host frames.
func (c RuntimeConfig) FrameInterval() time.Duration {
	rate := c.TickRate
	if rate <= 0 {
		rate = 60
	}
	return time.Second / time.Duration(rate)
}

// GameState is the UI-visible summary of a game.
// Returned by Game.State() and published by the loop driver on change.
type GameState struct {
	Score     int
	HighScore int
	Lives     int // 0 for games without lives
	Level     int // 0 for games without levels
	Phase     Phase
}

// GameOver reports whether the run has ended, by losing or winning.
func (s GameState) GameOver() bool {
	return s.Phase.Finished()
}

// Paused reports whether the game is paused.
func (s GameState) Paused() bool {
	return s.Phase == PhasePaused
}

// StepResult is returned by Game.Step() after each simulation tick.
type StepResult struct {
	State GameState
}

// BaselineTick is the frame duration velocities are expressed against.
const BaselineTick = time.Second / 60

// DefaultMaxDelta caps a single tick so a stall cannot tunnel bodies through colliders.
const DefaultMaxDelta = 100 * time.Millisecond

// TickScale converts elapsed time into a multiple of the 60 Hz baseline tick,
// capping dt at maxDelta first.
func TickScale(dt, maxDelta time.Duration) float64 {
	if dt <= 0 {
		return 0
	}
	if maxDelta > 0 && dt > maxDelta {
		dt = maxDelta
	}
	return float64(dt) / float64(BaselineTick)
}
