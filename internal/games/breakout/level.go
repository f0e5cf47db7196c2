// Package breakout implements a Breakout-style ball, paddle and brick game.
package breakout

import (
	"strings"

	"github.com/vovakirdan/canvas-arcade/internal/config"
	"github.com/vovakirdan/canvas-arcade/internal/core"
)

// Brick is a destructible rectangle. Visible only ever goes true -> false within a level.
type Brick struct {
	Body    core.RectF
	Row     int
	Col     int
	Visible bool
}

// Level is one brick layout.
type Level struct {
	Number int
	Rows   int
	Cols   int
	Bricks []Brick
}

// SkipRule reports whether a grid slot stays empty.
type SkipRule func(row, col int) bool

// skipRules holds the per-level patterns; level 1 is a full wall.
var skipRules = []SkipRule{
	func(row, col int) bool { return false },
	func(row, col int) bool { return row == 2 && col%2 == 0 },
	func(row, col int) bool { return (row+col)%3 == 0 },
	func(row, col int) bool { return row == 3 && col >= 3 && col <= 6 },
	func(row, col int) bool { return row%2 == col%2 },
}

// PatternCount returns the number of distinct layouts before they repeat.
func PatternCount() int {
	return len(skipRules)
}

// RowsFor returns the brick rows for a 1-based level number.
func RowsFor(cfg config.BreakoutBricks, level int) int {
	return min(cfg.BaseRows+level-1, cfg.MaxRows)
}

// BuildLevel lays out the bricks for a 1-based level, centered horizontally.
func BuildLevel(cfg config.BreakoutBricks, canvasW float64, level int) *Level {
	rows := RowsFor(cfg, level)
	skip := skipRules[(level-1)%len(skipRules)]

	gridW := float64(cfg.Columns)*cfg.Width + float64(cfg.Columns-1)*cfg.Padding
	left := (canvasW - gridW) / 2

	l := &Level{Number: level, Rows: rows, Cols: cfg.Columns}
	for row := range rows {
		for col := range cfg.Columns {
			if skip(row, col) {
				continue
			}
			l.Bricks = append(l.Bricks, Brick{
				Body: core.RectF{
					X: left + float64(col)*(cfg.Width+cfg.Padding),
					Y: cfg.OffsetTop + float64(row)*(cfg.Height+cfg.Padding),
					W: cfg.Width,
					H: cfg.Height,
				},
				Row:     row,
				Col:     col,
				Visible: true,
			})
		}
	}
	return l
}

// CountAlive returns the number of remaining visible bricks.
func (l *Level) CountAlive() int {
	count := 0
	for _, b := range l.Bricks {
		if b.Visible {
			count++
		}
	}
	return count
}

// String renders the layout as ASCII, '#' for a visible brick.
func (l *Level) String() string {
	grid := make([][]byte, l.Rows)
	for r := range grid {
		grid[r] = []byte(strings.Repeat(".", l.Cols))
	}
	for _, b := range l.Bricks {
		if b.Visible {
			grid[b.Row][b.Col] = '#'
		}
	}
	lines := make([]string, len(grid))
	for i, row := range grid {
		lines[i] = string(row)
	}
	return strings.Join(lines, "\n")
}
