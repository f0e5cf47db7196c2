package storage

import (
	"strconv"
	"strings"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/canvas-arcade/internal/core"
)

// HighScoreKey returns the key-value key holding a game's best score.
func HighScoreKey(gameID string) string {
	return gameID + "-highscore"
}

// ScoreKV is the key-value surface a best-score cell needs.
type ScoreKV interface {
	Get(key string) (string, bool, error)
	SetMax(key string, value int) (bool, error)
}

// HighScoreCell is a core.ScoreCell backed by a key-value store.
// The value is the score as a decimal string.
type HighScoreCell struct {
	kv     ScoreKV
	key    string
	logger *log.Logger
}

var _ core.ScoreCell = (*HighScoreCell)(nil)

// NewHighScoreCell binds the cell for gameID. A nil logger uses the default logger.
func NewHighScoreCell(kv ScoreKV, gameID string, logger *log.Logger) *HighScoreCell {
	if logger == nil {
		logger = log.Default()
	}
	return &HighScoreCell{kv: kv, key: HighScoreKey(gameID), logger: logger}
}

// Load reads the stored best score. Missing, unreadable or malformed values read as 0.
func (c *HighScoreCell) Load() int {
	raw, ok, err := c.kv.Get(c.key)
	if err != nil {
		c.logger.Warn("cannot read high score", "key", c.key, "err", err)
		return 0
	}
	if !ok {
		return 0
	}
	return ParseScore(raw)
}

// Store writes score as a decimal string unless a higher score is already
// stored. Failures are logged; play continues.
func (c *HighScoreCell) Store(score int) {
	written, err := c.kv.SetMax(c.key, score)
	if err != nil {
		c.logger.Warn("cannot persist high score", "key", c.key, "score", score, "err", err)
		return
	}
	if !written {
		c.logger.Debug("stored high score is higher", "key", c.key, "score", score)
	}
}

// ParseScore decodes a stored decimal score. Only plain digits are accepted;
// anything else, signs included, is 0.
func ParseScore(raw string) int {
	raw = strings.TrimSpace(raw)
	if raw == "" || strings.IndexFunc(raw, func(r rune) bool { return r < '0' || r > '9' }) >= 0 {
		return 0
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0
	}
	return n
}
