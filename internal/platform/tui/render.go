package tui

import (
	"strings"
	"sync"

	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/canvas-arcade/internal/core"
)

// ansiCodes maps core.Color to terminal palette indexes.
// ColorDefault has no entry and keeps the terminal default.
var ansiCodes = map[core.Color]string{
	core.ColorRed:           "1",
	core.ColorGreen:         "2",
	core.ColorYellow:        "3",
	core.ColorBlue:          "4",
	core.ColorMagenta:       "5",
	core.ColorCyan:          "6",
	core.ColorWhite:         "7",
	core.ColorBrightRed:     "9",
	core.ColorBrightGreen:   "10",
	core.ColorBrightYellow:  "11",
	core.ColorBrightBlue:    "12",
	core.ColorBrightMagenta: "13",
	core.ColorBrightCyan:    "14",
	core.ColorBrightWhite:   "15",
	core.ColorOrange:        "208",
	core.ColorGray:          "245",
	core.ColorBlack:         "16",
}

// termColor converts c for lipgloss; ColorDefault becomes NoColor.
func termColor(c core.Color) lipgloss.TerminalColor {
	if code, ok := ansiCodes[c]; ok {
		return lipgloss.Color(code)
	}
	return lipgloss.NoColor{}
}

type cellStyle struct {
	fg, bg core.Color
}

// styleCache holds one lipgloss style per foreground/background pair.
// SSH sessions render concurrently.
var (
	styleCache   = map[cellStyle]lipgloss.Style{}
	styleCacheMu sync.Mutex
)

func styleFor(fg, bg core.Color) lipgloss.Style {
	key := cellStyle{fg, bg}
	styleCacheMu.Lock()
	defer styleCacheMu.Unlock()
	if st, ok := styleCache[key]; ok {
		return st
	}
	st := lipgloss.NewStyle().Foreground(termColor(fg)).Background(termColor(bg))
	styleCache[key] = st
	return st
}

// RenderScreen converts a Screen buffer to a styled string for display.
// Groups adjacent cells with the same colors to minimize ANSI escape sequences.
func RenderScreen(s *core.Screen) string {
	var sb strings.Builder
	// Pre-allocate with extra space for ANSI codes
	sb.Grow(s.Width()*s.Height()*4 + s.Height())

	var run strings.Builder
	for y := range s.Height() {
		if y > 0 {
			sb.WriteRune('\n')
		}

		// Group consecutive cells with the same colors
		x := 0
		for x < s.Width() {
			start := s.GetCell(x, y)
			run.Reset()
			for x < s.Width() {
				cell := s.GetCell(x, y)
				if cell.Color != start.Color || cell.Background != start.Background {
					break
				}
				run.WriteRune(cell.Rune)
				x++
			}
			sb.WriteString(styleFor(start.Color, start.Background).Render(run.String()))
		}
	}
	return sb.String()
}
