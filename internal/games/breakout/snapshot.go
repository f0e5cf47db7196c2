package breakout

import (
	"encoding/binary"
	"math"

	"github.com/cespare/xxhash/v2"
)

// Snapshot contains the complete game state for replay and determinism checks.
// Uses primitive types only for stable serialization.
type Snapshot struct {
	Tick    uint64
	Phase   string
	Score   int
	Lives   int
	Level   int
	PaddleX float64
	BallX   float64
	BallY   float64
	BallVX  float64
	BallVY  float64

	// Brick visibility in layout order
	Bricks []bool
}

// Snapshot returns the current game state as a Snapshot.
func (g *Game) Snapshot() Snapshot {
	bricks := make([]bool, len(g.level.Bricks))
	for i, b := range g.level.Bricks {
		bricks[i] = b.Visible
	}

	return Snapshot{
		Tick:    g.tickCount,
		Phase:   g.phase.String(),
		Score:   g.score,
		Lives:   g.lives,
		Level:   g.levelNum,
		PaddleX: g.paddle.Body.X,
		BallX:   g.ball.Pos.X,
		BallY:   g.ball.Pos.Y,
		BallVX:  g.ball.Vel.X,
		BallVY:  g.ball.Vel.Y,
		Bricks:  bricks,
	}
}

// Hash returns an xxhash digest of the snapshot for determinism testing.
func (snap *Snapshot) Hash() uint64 {
	d := xxhash.New()
	var buf [8]byte
	word := func(v uint64) {
		binary.LittleEndian.PutUint64(buf[:], v)
		_, _ = d.Write(buf[:])
	}

	word(snap.Tick)
	_, _ = d.WriteString(snap.Phase)
	word(uint64(snap.Score)) //#nosec G115 -- hash computation
	word(uint64(snap.Lives)) //#nosec G115 -- hash computation
	word(uint64(snap.Level)) //#nosec G115 -- hash computation
	for _, f := range []float64{snap.PaddleX, snap.BallX, snap.BallY, snap.BallVX, snap.BallVY} {
		word(math.Float64bits(f))
	}
	for _, visible := range snap.Bricks {
		if visible {
			_, _ = d.Write([]byte{1})
		} else {
			_, _ = d.Write([]byte{0})
		}
	}

	return d.Sum64()
}

// SnapshotHash digests the current state.
func (g *Game) SnapshotHash() uint64 {
	snap := g.Snapshot()
	return snap.Hash()
}
