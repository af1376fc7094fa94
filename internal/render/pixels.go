package render

import "image/color"

// Palette returns n colours ramping from off (state 0) to on (the highest
// state). A single-state palette holds only off.
func Palette(n int, off, on color.RGBA) []color.RGBA {
	if n <= 0 {
		return nil
	}
	p := make([]color.RGBA, n)
	if n == 1 {
		p[0] = off
		return p
	}
	last := n - 1
	for i := range p {
		p[i] = color.RGBA{
			R: lerp(off.R, on.R, i, last),
			G: lerp(off.G, on.G, i, last),
			B: lerp(off.B, on.B, i, last),
			A: lerp(off.A, on.A, i, last),
		}
	}
	return p
}

func lerp(a, b uint8, i, n int) uint8 {
	return uint8((int(a)*(n-i) + int(b)*i) / n)
}

// fillPaletteRGBA converts cell values into RGBA pixels using a palette. When
// the palette is empty the buffer is cleared to transparent black. Values past
// the end of the palette use its last colour.
func fillPaletteRGBA(buf []byte, cells []uint8, palette []color.RGBA) {
	if len(palette) == 0 {
		clear(buf[:4*len(cells)])
		return
	}

	last := len(palette) - 1
	for i, c := range cells {
		col := palette[min(int(c), last)]
		base := i * 4
		buf[base+0] = col.R
		buf[base+1] = col.G
		buf[base+2] = col.B
		buf[base+3] = col.A
	}
}
