//go:build ebiten

package main

import (
	"errors"
	"flag"
	"log"

	"ca-map/internal/app"
	"ca-map/internal/core"
	_ "ca-map/internal/sims/automap"

	"github.com/hajimehoshi/ebiten/v2"
)

func main() {
	cfg := app.NewConfig()
	cfg.Bind(flag.CommandLine)
	flag.Parse()

	sim, err := core.NewSim(cfg.Sim, cfg.SimOptions())
	if err != nil {
		log.Fatal(err)
	}
	sim.Reset(cfg.Seed)

	game, err := app.New(sim, cfg.Scale, cfg.Seed)
	if err != nil {
		log.Fatal(err)
	}
	size := sim.Size()

	ebiten.SetWindowTitle("ca-map: " + sim.Name())
	ebiten.SetTPS(cfg.TPS)
	ebiten.SetWindowSize(size.W*cfg.Scale, size.H*cfg.Scale)

	if err := ebiten.RunGame(game); err != nil && !errors.Is(err, ebiten.Termination) {
		log.Fatal(err)
	}
}
