package loop

import (
	"context"
	"time"

	"github.com/vovakirdan/canvas-arcade/internal/core"
)

// Run drives the chain tok from a ticker until the game leaves playing or
// ctx is done. The chain is cancelled when ctx ends.
func Run(ctx context.Context, d *Driver, tok Token, interval time.Duration) error {
	if interval <= 0 {
		interval = core.BaselineTick
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	if !d.Tick(tok, time.Now()) {
		return nil
	}
	for {
		select {
		case <-ctx.Done():
			d.Cancel()
			return ctx.Err()
		case now := <-ticker.C:
			if !d.Tick(tok, now) {
				return nil
			}
		}
	}
}

// Script feeds input before frame i of a simulation.
type Script func(i int, in *core.InputAdapter, now time.Time)

// Hasher is implemented by games that can digest their full state.
type Hasher interface {
	SnapshotHash() uint64
}

// Result summarizes a finished simulation.
type Result struct {
	GameID string
	Frames int
	State  core.GameState
	Hash   uint64 // zero when the game is not a Hasher
}

// Simulate starts the game and runs up to frames host frames on a synthetic
// clock advancing by step, so a given seed always yields the same result.
// A run that falls back to ready (a lost life, a cleared level) is served
// again; it stops early once the run is finished.
func Simulate(ctx context.Context, d *Driver, step time.Duration, frames int, script Script) (Result, error) {
	if step <= 0 {
		step = core.BaselineTick
	}
	now := time.Unix(0, 0)
	res := Result{GameID: d.Game().ID()}

	tok, ok := d.Command(core.ActionStart, now)
	if !ok {
		tok, ok = d.Command(core.ActionFire, now)
	}

	for i := 0; ok && i < frames; i++ {
		if i%64 == 0 {
			if err := ctx.Err(); err != nil {
				d.Cancel()
				return res, err
			}
		}
		if script != nil {
			script(i, d.Input(), now)
		}
		ok = d.Tick(tok, now)
		res.Frames++
		now = now.Add(step)
		if !ok && d.Game().State().Phase == core.PhaseReady {
			tok, ok = d.Command(core.ActionStart, now)
		}
	}

	res.State = d.Game().State()
	if h, isHasher := d.Game().(Hasher); isHasher {
		res.Hash = h.SnapshotHash()
	}
	return res, nil
}
