package tui

import (
	"math"

	"github.com/vovakirdan/canvas-arcade/internal/core"
	"github.com/vovakirdan/canvas-arcade/internal/raster"
)

// Rows reserved around the canvas
const (
	hudRows    = 1
	footerRows = 1
	maxSamples = 4 // per axis, per half-cell
)

const halfBlock = '▀'

// Viewport maps a raster frame onto terminal cells. Every cell shows two
// vertically stacked samples: the glyph carries the upper one as foreground
// and the cell background carries the lower one.
type Viewport struct {
	Left  int     // first canvas column
	Top   int     // first canvas row
	Cols  int     // canvas width in cells
	Rows  int     // canvas height in cells
	Scale float64 // canvas pixels per sample
}

// FitViewport letterboxes a canvas into a terminal, keeping its aspect ratio.
// One row above the canvas holds the HUD and one row below holds the footer.
func FitViewport(canvasW, canvasH, termW, termH int) Viewport {
	availW := max(termW, 1)
	availH := max(termH-hudRows-footerRows, 1)

	scale := math.Max(float64(canvasW)/float64(availW), float64(canvasH)/float64(2*availH))
	if scale <= 0 {
		scale = 1
	}

	cols := min(int(math.Ceil(float64(canvasW)/scale)), availW)
	rows := min(int(math.Ceil(float64(canvasH)/(2*scale))), availH)
	return Viewport{
		Left:  (availW - cols) / 2,
		Top:   hudRows + (availH-rows)/2,
		Cols:  cols,
		Rows:  rows,
		Scale: scale,
	}
}

// CanvasX maps a terminal column back to a canvas x coordinate.
// Returns false for columns outside the canvas.
func (v Viewport) CanvasX(col int) (float64, bool) {
	c := col - v.Left
	if c < 0 || c >= v.Cols {
		return 0, false
	}
	return (float64(c) + 0.5) * v.Scale, true
}

// sample returns the dominant non-background color of one half-cell block,
// so thin bullets and the ball survive downscaling.
func (v Viewport) sample(f *raster.Frame, col, sub int, bg core.Color) core.Color {
	n := min(max(int(v.Scale), 1), maxSamples)
	step := v.Scale / float64(n)
	x0 := float64(col) * v.Scale
	y0 := float64(sub) * v.Scale

	var counts [256]uint8
	best, bestN := bg, uint8(0)
	for j := range n {
		y := int(y0 + (float64(j)+0.5)*step)
		for i := range n {
			c := f.At(int(x0+(float64(i)+0.5)*step), y)
			if c == bg {
				continue
			}
			counts[c]++
			if counts[c] > bestN {
				best, bestN = c, counts[c]
			}
		}
	}
	return best
}

// Present draws the frame, its HUD strip and its overlay into s.
func Present(f *raster.Frame, v Viewport, s *core.Screen) {
	s.Clear()
	theme := f.Theme()

	for r := range v.Rows {
		for c := range v.Cols {
			s.SetCell(v.Left+c, v.Top+r, core.Cell{
				Rune:       halfBlock,
				Color:      v.sample(f, c, 2*r, theme.Background),
				Background: v.sample(f, c, 2*r+1, theme.Background),
			})
		}
	}

	if hud := f.HUD(); len(hud) > 0 {
		s.DrawTextColored(v.Left, v.Top-hudRows, raster.HUDLine(hud, "   "), theme.Foreground)
	}

	if o := f.Overlay(); o != nil {
		drawOverlay(s, v, o, theme)
	}
}

// drawOverlay renders the status panel as a bordered box centered on the canvas.
func drawOverlay(s *core.Screen, v Viewport, o *raster.Overlay, theme core.Theme) {
	lines := append([]string{o.Title, ""}, o.Lines...)
	inner := 0
	for _, l := range lines {
		inner = max(inner, len([]rune(l)))
	}

	box := core.CenterRect(core.NewRect(v.Left, v.Top, v.Cols, v.Rows), inner+4, len(lines)+2)

	for y := box.Y; y < box.Bottom(); y++ {
		for x := box.X; x < box.Right(); x++ {
			s.SetCell(x, y, core.Cell{Rune: ' ', Background: theme.Background})
		}
	}
	s.DrawBoxColored(box, theme.Border)

	for i, l := range lines {
		fg := theme.Muted
		if i == 0 {
			fg = theme.Foreground
		}
		x := box.X + (box.W-len([]rune(l)))/2
		s.WriteText(x, box.Y+1+i, l, fg, theme.Background)
	}
}
