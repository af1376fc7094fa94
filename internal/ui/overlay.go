//go:build ebiten

package ui

import (
	"image/color"

	"ca-map/internal/core"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/text"
	"golang.org/x/image/font/basicfont"
)

const (
	overlayPadding = 6
	lineHeight     = 14
)

var (
	panelColor = color.RGBA{R: 16, G: 16, B: 24, A: 200}
	textColor  = color.RGBA{R: 220, G: 220, B: 230, A: 255}
	errorColor = color.RGBA{R: 240, G: 110, B: 100, A: 255}
)

// Overlay prints the sim's parameters over the grid. Tab toggles it.
type Overlay struct {
	sim   core.Sim
	shown bool
	pixel *ebiten.Image
}

// NewOverlay constructs an overlay for sim.
func NewOverlay(sim core.Sim) *Overlay {
	o := &Overlay{sim: sim, shown: true}
	o.pixel = ebiten.NewImage(1, 1)
	o.pixel.Fill(color.White)
	return o
}

// Update handles the toggle key.
func (o *Overlay) Update() {
	if inpututil.IsKeyJustPressed(ebiten.KeyTab) {
		o.shown = !o.shown
	}
}

// Draw renders the overlay onto screen.
func (o *Overlay) Draw(screen *ebiten.Image) {
	if !o.shown {
		return
	}
	lines, failed := Lines(o.sim)
	if len(lines) == 0 {
		return
	}

	face := basicfont.Face7x13
	width := 0
	for _, l := range lines {
		width = max(width, text.BoundString(face, l).Dx())
	}
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(float64(width+2*overlayPadding), float64(len(lines)*lineHeight+2*overlayPadding))
	op.ColorScale.ScaleWithColor(panelColor)
	screen.DrawImage(o.pixel, op)

	for i, l := range lines {
		col := textColor
		if failed && i == len(lines)-1 {
			col = errorColor
		}
		text.Draw(screen, l, face, overlayPadding, overlayPadding+(i+1)*lineHeight-3, col)
	}
}
