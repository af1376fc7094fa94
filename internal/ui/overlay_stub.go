//go:build !ebiten

package ui

import "ca-map/internal/core"

// Overlay does nothing in headless builds.
type Overlay struct{}

func NewOverlay(core.Sim) *Overlay { return &Overlay{} }

func (o *Overlay) Update() {}

func (o *Overlay) Draw(any) {}
