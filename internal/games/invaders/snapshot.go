package invaders

import (
	"encoding/binary"
	"math"

	"github.com/cespare/xxhash/v2"
)

// Snapshot captures the game state for determinism checks.
type Snapshot struct {
	Tick      uint64
	Phase     string
	Score     int
	Killed    int
	PlayerX   float64
	Direction float64
	Alive     []bool
	Positions []float64 // x, y per invader in layout order
	Bullets   []float64 // x, y, fromPlayer per bullet
}

// Snapshot returns the current game snapshot.
func (g *Game) Snapshot() Snapshot {
	snap := Snapshot{
		Tick:      g.tickCount,
		Phase:     g.phase.String(),
		Score:     g.score,
		Killed:    g.killed,
		PlayerX:   g.player.Body.X,
		Direction: g.formation.Dir,
		Alive:     make([]bool, len(g.formation.Invaders)),
		Positions: make([]float64, 0, 2*len(g.formation.Invaders)),
		Bullets:   make([]float64, 0, 3*len(g.bullets)),
	}
	for i, inv := range g.formation.Invaders {
		snap.Alive[i] = inv.Alive
		snap.Positions = append(snap.Positions, inv.Body.X, inv.Body.Y)
	}
	for _, b := range g.bullets {
		from := 0.0
		if b.FromPlayer {
			from = 1
		}
		snap.Bullets = append(snap.Bullets, b.Pos.X, b.Pos.Y, from)
	}
	return snap
}

// Hash returns an xxhash digest of the snapshot.
func (snap *Snapshot) Hash() uint64 {
	d := xxhash.New()
	var buf [8]byte
	word := func(v uint64) {
		binary.LittleEndian.PutUint64(buf[:], v)
		_, _ = d.Write(buf[:])
	}

	word(snap.Tick)
	_, _ = d.WriteString(snap.Phase)
	word(uint64(snap.Score))  //#nosec G115 -- hash computation
	word(uint64(snap.Killed)) //#nosec G115 -- hash computation
	word(math.Float64bits(snap.PlayerX))
	word(math.Float64bits(snap.Direction))
	for _, alive := range snap.Alive {
		if alive {
			word(1)
		} else {
			word(0)
		}
	}
	for _, v := range snap.Positions {
		word(math.Float64bits(v))
	}
	for _, v := range snap.Bullets {
		word(math.Float64bits(v))
	}

	return d.Sum64()
}

// SnapshotHash digests the current state.
func (g *Game) SnapshotHash() uint64 {
	snap := g.Snapshot()
	return snap.Hash()
}
