package raster

import (
	"fmt"
	"image"
	"image/color"
	"image/png"
	"io"
	"strings"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"

	"github.com/vovakirdan/canvas-arcade/internal/core"
)

// Palette maps game colors to RGBA for image export.
type Palette map[core.Color]color.RGBA

// DefaultPalette approximates the xterm colors the terminal renderer uses.
func DefaultPalette() Palette {
	return Palette{
		core.ColorDefault:       {0xc0, 0xc0, 0xc0, 0xff},
		core.ColorRed:           {0xcd, 0x00, 0x00, 0xff},
		core.ColorGreen:         {0x00, 0xcd, 0x00, 0xff},
		core.ColorYellow:        {0xcd, 0xcd, 0x00, 0xff},
		core.ColorBlue:          {0x00, 0x00, 0xee, 0xff},
		core.ColorMagenta:       {0xcd, 0x00, 0xcd, 0xff},
		core.ColorCyan:          {0x00, 0xcd, 0xcd, 0xff},
		core.ColorWhite:         {0xe5, 0xe5, 0xe5, 0xff},
		core.ColorBrightRed:     {0xff, 0x00, 0x00, 0xff},
		core.ColorBrightGreen:   {0x00, 0xff, 0x00, 0xff},
		core.ColorBrightYellow:  {0xff, 0xff, 0x00, 0xff},
		core.ColorBrightBlue:    {0x5c, 0x5c, 0xff, 0xff},
		core.ColorBrightMagenta: {0xff, 0x00, 0xff, 0xff},
		core.ColorBrightCyan:    {0x00, 0xff, 0xff, 0xff},
		core.ColorBrightWhite:   {0xff, 0xff, 0xff, 0xff},
		core.ColorOrange:        {0xff, 0x87, 0x00, 0xff},
		core.ColorGray:          {0x8a, 0x8a, 0x8a, 0xff},
		core.ColorBlack:         {0x00, 0x00, 0x00, 0xff},
	}
}

func (p Palette) rgba(c core.Color) color.RGBA {
	if v, ok := p[c]; ok {
		return v
	}
	return p[core.ColorDefault]
}

const (
	hudHeight   = 18
	overlayDim  = 3 // divide channel values by this under an overlay
	lineSpacing = 18
)

// Image renders the frame to an RGBA image. The HUD strip is drawn above the
// canvas, so the image is hudHeight pixels taller than the frame.
func (f *Frame) Image(p Palette) *image.RGBA {
	if p == nil {
		p = DefaultPalette()
	}
	img := image.NewRGBA(image.Rect(0, 0, f.width, f.height+hudHeight))

	bg := p.rgba(f.theme.Background)
	for y := 0; y < hudHeight; y++ {
		for x := 0; x < f.width; x++ {
			img.SetRGBA(x, y, bg)
		}
	}

	for y := 0; y < f.height; y++ {
		for x := 0; x < f.width; x++ {
			c := p.rgba(f.pix[y*f.width+x])
			if f.overlay != nil {
				c = color.RGBA{R: c.R / overlayDim, G: c.G / overlayDim, B: c.B / overlayDim, A: 0xff}
			}
			img.SetRGBA(x, y+hudHeight, c)
		}
	}

	ink := p.rgba(f.theme.Foreground)
	if len(f.hud) > 0 {
		drawString(img, 4, 13, HUDLine(f.hud, "  "), ink)
	}

	if f.overlay != nil {
		lines := append([]string{f.overlay.Title}, f.overlay.Lines...)
		top := hudHeight + f.height/2 - len(lines)*lineSpacing/2
		for i, line := range lines {
			w := font.MeasureString(basicfont.Face7x13, line).Ceil()
			drawString(img, (f.width-w)/2, top+i*lineSpacing+13, line, ink)
		}
	}
	return img
}

// EncodePNG writes the frame as a PNG image.
func (f *Frame) EncodePNG(w io.Writer, p Palette) error {
	if err := png.Encode(w, f.Image(p)); err != nil {
		return fmt.Errorf("raster: cannot encode png: %w", err)
	}
	return nil
}

// HUDLine joins HUD items as "Label: Value" separated by sep.
func HUDLine(items []HUDItem, sep string) string {
	parts := make([]string, 0, len(items))
	for _, it := range items {
		if it.Label == "" {
			parts = append(parts, it.Value)
			continue
		}
		parts = append(parts, it.Label+": "+it.Value)
	}
	return strings.Join(parts, sep)
}

func drawString(dst *image.RGBA, x, y int, s string, c color.RGBA) {
	d := font.Drawer{
		Dst:  dst,
		Src:  image.NewUniform(c),
		Face: basicfont.Face7x13,
		Dot:  fixed.P(x, y),
	}
	d.DrawString(s)
}
