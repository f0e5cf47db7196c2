package snake

import (
	"encoding/binary"

	"github.com/cespare/xxhash/v2"
)

// Snapshot captures the complete game state for determinism testing and replay.
type Snapshot struct {
	Tick       uint64
	Phase      string
	Score      int
	SnakeLen   int
	HeadX      int
	HeadY      int
	Dir        Direction
	FoodX      int
	FoodY      int
	HasFood    bool
	IntervalMs int64
	Body       []Point
}

// Snapshot returns the current game snapshot for determinism verification.
func (g *Game) Snapshot() Snapshot {
	headX, headY := 0, 0
	if len(g.snake) > 0 {
		headX = g.snake[0].X
		headY = g.snake[0].Y
	}

	return Snapshot{
		Tick:       g.tick,
		Phase:      g.phase.String(),
		Score:      g.score,
		SnakeLen:   len(g.snake),
		HeadX:      headX,
		HeadY:      headY,
		Dir:        g.direction,
		FoodX:      g.food.X,
		FoodY:      g.food.Y,
		HasFood:    g.hasFood,
		IntervalMs: g.Interval().Milliseconds(),
		Body:       append([]Point(nil), g.snake...),
	}
}

// Hash returns an xxhash digest of the snapshot.
func (snap *Snapshot) Hash() uint64 {
	d := xxhash.New()
	var buf [8]byte
	word := func(v int64) {
		binary.LittleEndian.PutUint64(buf[:], uint64(v)) //#nosec G115 -- hash computation
		_, _ = d.Write(buf[:])
	}

	word(int64(snap.Tick)) //#nosec G115 -- hash computation
	_, _ = d.WriteString(snap.Phase)
	word(int64(snap.Score))
	word(int64(snap.Dir))
	word(int64(snap.FoodX))
	word(int64(snap.FoodY))
	word(snap.IntervalMs)
	for _, p := range snap.Body {
		word(int64(p.X))
		word(int64(p.Y))
	}

	return d.Sum64()
}

// SnapshotHash digests the current state.
func (g *Game) SnapshotHash() uint64 {
	snap := g.Snapshot()
	return snap.Hash()
}
