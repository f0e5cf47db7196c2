package core

// ScoreCell is a single persisted best-score value.
// Load is called once at mount; Store is called on each new high score.
type ScoreCell interface {
	Load() int
	Store(score int)
}

// MemoryCell is a ScoreCell that lives only as long as the process.
type MemoryCell struct {
	value int
}

// Load returns the stored value.
func (c *MemoryCell) Load() int {
	return c.value
}

// Store replaces the stored value.
func (c *MemoryCell) Store(score int) {
	c.value = score
}

// HighScore tracks a run's best score against a ScoreCell.
type HighScore struct {
	cell  ScoreCell
	value int
}

// NewHighScore reads the cell once. A nil cell keeps the value in memory.
func NewHighScore(cell ScoreCell) HighScore {
	if cell == nil {
		cell = &MemoryCell{}
	}
	v := cell.Load()
	if v < 0 {
		v = 0
	}
	return HighScore{cell: cell, value: v}
}

// Value returns the best score seen so far.
func (h *HighScore) Value() int {
	return h.value
}

// Offer records score if it strictly exceeds the current best and writes it through.
// Returns true when a new best was stored.
func (h *HighScore) Offer(score int) bool {
	if score <= h.value {
		return false
	}
	h.value = score
	if h.cell != nil {
		h.cell.Store(score)
	}
	return true
}
