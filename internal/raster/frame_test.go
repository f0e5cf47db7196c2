package raster

import (
	"bytes"
	"image/png"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vovakirdan/canvas-arcade/internal/core"
)

func TestFrameClearUsesThemeBackground(t *testing.T) {
	f := NewFrame(10, 5)
	theme, ok := core.LookupTheme("light")
	require.True(t, ok)

	f.SetHUD(HUDItem{Label: "Score", Value: "1"})
	f.SetOverlay("Paused")
	f.Clear(theme)

	assert.Equal(t, theme.Background, f.At(0, 0))
	assert.Equal(t, theme.Background, f.At(9, 4))
	assert.Empty(t, f.HUD())
	assert.Nil(t, f.Overlay())
}

func TestFrameFillRectClips(t *testing.T) {
	f := NewFrame(10, 10)
	f.FillRect(core.RectF{X: -5, Y: 8, W: 8, H: 10}, core.ColorRed)

	assert.Equal(t, core.ColorRed, f.At(0, 8))
	assert.Equal(t, core.ColorRed, f.At(2, 9))
	assert.NotEqual(t, core.ColorRed, f.At(3, 9))
	assert.NotEqual(t, core.ColorRed, f.At(0, 7))
}

func TestFrameFillRectFractional(t *testing.T) {
	f := NewFrame(10, 10)
	f.FillRect(core.RectF{X: 2.5, Y: 2.5, W: 2, H: 1}, core.ColorBlue)

	// Covers pixels 2..4 horizontally and 2..3 vertically
	assert.Equal(t, core.ColorBlue, f.At(2, 2))
	assert.Equal(t, core.ColorBlue, f.At(4, 3))
	assert.NotEqual(t, core.ColorBlue, f.At(5, 2))
}

func TestFrameFillCircle(t *testing.T) {
	f := NewFrame(20, 20)
	f.FillCircle(core.Circle{X: 10, Y: 10, Radius: 3}, core.ColorYellow)

	assert.Equal(t, core.ColorYellow, f.At(10, 10))
	assert.Equal(t, core.ColorYellow, f.At(8, 10))
	assert.NotEqual(t, core.ColorYellow, f.At(6, 10))
	assert.NotEqual(t, core.ColorYellow, f.At(7, 7), "corner of the bounding box is outside the circle")
}

func TestFrameStrokeRect(t *testing.T) {
	f := NewFrame(10, 10)
	f.StrokeRect(core.RectF{X: 1, Y: 1, W: 5, H: 4}, core.ColorGray)

	assert.Equal(t, core.ColorGray, f.At(1, 1))
	assert.Equal(t, core.ColorGray, f.At(5, 4))
	assert.NotEqual(t, core.ColorGray, f.At(3, 2))
}

func TestFrameResizeKeepsBuffer(t *testing.T) {
	f := NewFrame(4, 4)
	f.FillRect(core.RectF{W: 4, H: 4}, core.ColorRed)

	f.Resize(4, 4)
	assert.Equal(t, core.ColorRed, f.At(3, 3), "same size must not reallocate")

	f.Resize(8, 2)
	assert.Equal(t, 8, f.Width())
	assert.Equal(t, 2, f.Height())
}

func TestHUDLine(t *testing.T) {
	items := []HUDItem{
		{Label: "Score", Value: "120"},
		{Label: "Lives", Value: "3"},
		{Value: "PAUSED"},
	}
	assert.Equal(t, "Score: 120 | Lives: 3 | PAUSED", HUDLine(items, " | "))
}

func TestEncodePNG(t *testing.T) {
	f := NewFrame(40, 30)
	f.FillRect(core.RectF{X: 0, Y: 0, W: 10, H: 10}, core.ColorRed)
	f.SetHUD(HUDItem{Label: "Score", Value: "10"})
	f.SetOverlay("Game Over", "Press Space to restart")

	var buf bytes.Buffer
	require.NoError(t, f.EncodePNG(&buf, nil))

	img, err := png.Decode(&buf)
	require.NoError(t, err)
	assert.Equal(t, 40, img.Bounds().Dx())
	assert.Equal(t, 30+hudHeight, img.Bounds().Dy())

	// Overlay dims the canvas
	r, _, _, _ := img.At(1, hudHeight+1).RGBA()
	assert.Less(t, r>>8, uint32(0xff))
}
