package core

// Phase is the game state machine value gating whether ticks mutate the world.
type Phase int

const (
	PhaseReady Phase = iota
	PhasePlaying
	PhasePaused
	PhaseGameOver
	PhaseWon
)

// String returns the lowercase phase name.
func (p Phase) String() string {
	switch p {
	case PhaseReady:
		return "ready"
	case PhasePlaying:
		return "playing"
	case PhasePaused:
		return "paused"
	case PhaseGameOver:
		return "gameover"
	case PhaseWon:
		return "won"
	default:
		return "unknown"
	}
}

// Finished reports whether the run has ended (lost or won).
func (p Phase) Finished() bool {
	return p == PhaseGameOver || p == PhaseWon
}
