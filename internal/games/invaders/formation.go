package invaders

import (
	"github.com/vovakirdan/canvas-arcade/internal/config"
	"github.com/vovakirdan/canvas-arcade/internal/core"
)

// Invader is one member of the formation.
type Invader struct {
	Body  core.RectF
	Row   int
	Alive bool
}

// Formation is the invader grid and its sweep direction.
type Formation struct {
	Invaders []Invader
	Dir      float64 // +1 sweeping right, -1 sweeping left
}

// NewFormation lays out rows x columns invaders from the configured origin.
func NewFormation(cfg config.InvadersFormation) *Formation {
	f := &Formation{Dir: 1}
	for row := range cfg.Rows {
		for col := range cfg.Columns {
			f.Invaders = append(f.Invaders, Invader{
				Body: core.RectF{
					X: cfg.OriginX + float64(col)*(cfg.Width+cfg.Padding),
					Y: cfg.OriginY + float64(row)*(cfg.Height+cfg.Padding),
					W: cfg.Width,
					H: cfg.Height,
				},
				Row:   row,
				Alive: true,
			})
		}
	}
	return f
}

// CountAlive returns the number of living invaders.
func (f *Formation) CountAlive() int {
	count := 0
	for _, inv := range f.Invaders {
		if inv.Alive {
			count++
		}
	}
	return count
}

// AtEdge reports whether a living invader would cross the margin in the
// current sweep direction.
func (f *Formation) AtEdge(width, margin float64) bool {
	for _, inv := range f.Invaders {
		if !inv.Alive {
			continue
		}
		if f.Dir > 0 && inv.Body.Right() >= width-margin {
			return true
		}
		if f.Dir < 0 && inv.Body.X <= margin {
			return true
		}
	}
	return false
}

// Advance performs one sweep beat: either drop and reverse at an edge, or
// move sideways. Returns true when the formation dropped.
func (f *Formation) Advance(width float64, cfg config.InvadersFormation) bool {
	if f.AtEdge(width, cfg.Margin) {
		for i := range f.Invaders {
			if f.Invaders[i].Alive {
				f.Invaders[i].Body.Y += cfg.Drop
			}
		}
		f.Dir = -f.Dir
		return true
	}
	for i := range f.Invaders {
		if f.Invaders[i].Alive {
			f.Invaders[i].Body.X += f.Dir * cfg.Step
		}
	}
	return false
}

// Reached reports whether a living invader's lower edge is at or below y.
func (f *Formation) Reached(y float64) bool {
	for _, inv := range f.Invaders {
		if inv.Alive && inv.Body.Bottom() >= y {
			return true
		}
	}
	return false
}

// HitBy kills the first living invader containing the point. Edges count.
func (f *Formation) HitBy(x, y float64) (int, bool) {
	for i := range f.Invaders {
		if f.Invaders[i].Alive && f.Invaders[i].Body.ContainsPoint(x, y) {
			f.Invaders[i].Alive = false
			return i, true
		}
	}
	return -1, false
}

// alive returns the indices of living invaders in layout order.
func (f *Formation) alive() []int {
	idx := make([]int, 0, len(f.Invaders))
	for i, inv := range f.Invaders {
		if inv.Alive {
			idx = append(idx, i)
		}
	}
	return idx
}
