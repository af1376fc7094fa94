//go:build !ebiten

package app

import "ca-map/internal/core"

// Game is the headless stand-in for the ebiten viewer.
type Game struct{}

// New reports ErrHeadless; the viewer needs the ebiten build tag.
func New(core.Sim, int, int64) (*Game, error) {
	return nil, ErrHeadless
}

func (g *Game) Reset(int64) {}

func (g *Game) Update() error { return ErrHeadless }

func (g *Game) Draw(any) {}

func (g *Game) Layout(int, int) (int, int) { return 0, 0 }
