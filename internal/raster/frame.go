// Package raster provides the fixed-resolution render surface the games draw into.
// One logical pixel equals one game unit; scaling to the terminal or to an image
// happens when the frame is presented.
package raster

import (
	"math"

	"github.com/vovakirdan/canvas-arcade/internal/core"
)

// HUDItem is one label/value pair of the always-visible status strip.
type HUDItem struct {
	Label string
	Value string
}

// Overlay is the full-canvas status panel shown when a game is not playing.
type Overlay struct {
	Title string
	Lines []string
}

// Frame is a width x height pixel buffer with a HUD strip and an optional overlay.
type Frame struct {
	width   int
	height  int
	pix     []core.Color
	theme   core.Theme
	hud     []HUDItem
	overlay *Overlay
}

// NewFrame allocates a frame cleared to the default theme.
func NewFrame(width, height int) *Frame {
	f := &Frame{}
	f.Resize(width, height)
	f.Clear(core.DefaultTheme())
	return f
}

// Width returns the frame width in pixels.
func (f *Frame) Width() int {
	return f.width
}

// Height returns the frame height in pixels.
func (f *Frame) Height() int {
	return f.height
}

// Resize reallocates the pixel buffer when the canvas size changes.
func (f *Frame) Resize(width, height int) {
	width = max(width, 0)
	height = max(height, 0)
	if width == f.width && height == f.height && f.pix != nil {
		return
	}
	f.width = width
	f.height = height
	f.pix = make([]core.Color, width*height)
}

// Clear fills the frame with the theme background and drops HUD and overlay.
func (f *Frame) Clear(theme core.Theme) {
	f.theme = theme.OrDefault()
	for i := range f.pix {
		f.pix[i] = f.theme.Background
	}
	f.hud = f.hud[:0]
	f.overlay = nil
}

// Theme returns the theme the frame was last cleared with.
func (f *Frame) Theme() core.Theme {
	return f.theme
}

// At returns the color at (x, y); out-of-bounds reads return the background.
func (f *Frame) At(x, y int) core.Color {
	if x < 0 || x >= f.width || y < 0 || y >= f.height {
		return f.theme.Background
	}
	return f.pix[y*f.width+x]
}

func (f *Frame) set(x, y int, c core.Color) {
	if x < 0 || x >= f.width || y < 0 || y >= f.height {
		return
	}
	f.pix[y*f.width+x] = c
}

// pixelSpan converts a [lo, hi) coordinate range to clipped pixel indices.
func pixelSpan(lo, hi float64, limit int) (int, int) {
	a := int(math.Floor(lo))
	b := int(math.Ceil(hi))
	return max(a, 0), min(b, limit)
}

// FillRect fills every pixel the rectangle covers.
func (f *Frame) FillRect(r core.RectF, c core.Color) {
	if r.W <= 0 || r.H <= 0 {
		return
	}
	x0, x1 := pixelSpan(r.X, r.Right(), f.width)
	y0, y1 := pixelSpan(r.Y, r.Bottom(), f.height)
	for y := y0; y < y1; y++ {
		row := f.pix[y*f.width : (y+1)*f.width]
		for x := x0; x < x1; x++ {
			row[x] = c
		}
	}
}

// StrokeRect draws a one-pixel outline.
func (f *Frame) StrokeRect(r core.RectF, c core.Color) {
	f.FillRect(core.RectF{X: r.X, Y: r.Y, W: r.W, H: 1}, c)
	f.FillRect(core.RectF{X: r.X, Y: r.Bottom() - 1, W: r.W, H: 1}, c)
	f.FillRect(core.RectF{X: r.X, Y: r.Y, W: 1, H: r.H}, c)
	f.FillRect(core.RectF{X: r.Right() - 1, Y: r.Y, W: 1, H: r.H}, c)
}

// FillCircle fills every pixel whose center lies within the circle.
func (f *Frame) FillCircle(circle core.Circle, c core.Color) {
	if circle.Radius <= 0 {
		return
	}
	b := circle.Bounds()
	x0, x1 := pixelSpan(b.X, b.Right(), f.width)
	y0, y1 := pixelSpan(b.Y, b.Bottom(), f.height)
	for y := y0; y < y1; y++ {
		for x := x0; x < x1; x++ {
			if circle.Contains(float64(x)+0.5, float64(y)+0.5) {
				f.set(x, y, c)
			}
		}
	}
}

// SetHUD replaces the status strip.
func (f *Frame) SetHUD(items ...HUDItem) {
	f.hud = append(f.hud[:0], items...)
}

// HUD returns the status strip items.
func (f *Frame) HUD() []HUDItem {
	return f.hud
}

// SetOverlay shows a status panel over the canvas.
func (f *Frame) SetOverlay(title string, lines ...string) {
	f.overlay = &Overlay{Title: title, Lines: lines}
}

// Overlay returns the status panel, or nil while playing.
func (f *Frame) Overlay() *Overlay {
	return f.overlay
}
