package render

import (
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"
)

var (
	black = color.RGBA{A: 255}
	white = color.RGBA{R: 255, G: 255, B: 255, A: 255}
)

func TestPaletteRamp(t *testing.T) {
	p := Palette(3, black, white)
	assert.Equal(t, []color.RGBA{black, {R: 127, G: 127, B: 127, A: 255}, white}, p)

	assert.Equal(t, []color.RGBA{black}, Palette(1, black, white))
	assert.Nil(t, Palette(0, black, white))
}

func TestFillPaletteRGBA(t *testing.T) {
	buf := make([]byte, 12)
	fillPaletteRGBA(buf, []uint8{0, 1, 7}, Palette(2, black, white))
	assert.Equal(t, []byte{
		0, 0, 0, 255,
		255, 255, 255, 255,
		255, 255, 255, 255,
	}, buf)
}

func TestFillPaletteRGBAEmptyPaletteClears(t *testing.T) {
	buf := []byte{1, 2, 3, 4, 5, 6, 7, 8}
	fillPaletteRGBA(buf, []uint8{0, 1}, nil)
	assert.Equal(t, make([]byte, 8), buf)
}
