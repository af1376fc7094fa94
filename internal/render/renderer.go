//go:build ebiten

package render

import (
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
)

// GridPainter uploads cell states into a single RGBA image.
type GridPainter struct {
	w, h    int
	img     *ebiten.Image
	buf     []byte
	palette []color.RGBA
}

// NewGridPainter allocates a painter for a w*h grid coloured by palette.
func NewGridPainter(w, h int, palette []color.RGBA) *GridPainter {
	return &GridPainter{
		w:       w,
		h:       h,
		img:     ebiten.NewImage(w, h),
		buf:     make([]byte, 4*w*h),
		palette: palette,
	}
}

// Blit uploads cells into the painter image and draws it scaled onto dst.
func (gp *GridPainter) Blit(dst *ebiten.Image, cells []uint8, scale int) {
	if len(cells) != gp.w*gp.h {
		return
	}
	fillPaletteRGBA(gp.buf, cells, gp.palette)
	gp.img.WritePixels(gp.buf)

	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(float64(scale), float64(scale))
	dst.DrawImage(gp.img, op)
}

// Size returns the dimensions of the underlying image.
func (gp *GridPainter) Size() (int, int) { return gp.w, gp.h }
