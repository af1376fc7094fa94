//go:build !ebiten

package main

import (
	"fmt"
	"os"
	"strings"

	"ca-map/internal/app"
	"ca-map/internal/core"
	_ "ca-map/internal/sims/automap"
)

func main() {
	fmt.Fprintln(os.Stderr, app.ErrHeadless)
	fmt.Fprintf(os.Stderr, "available sims: %s\n", strings.Join(core.Names(), ", "))
	fmt.Fprintln(os.Stderr, "Run `go run -tags ebiten ./cmd/ca -rules rules/parity.yaml`, or use ./cmd/automap for the headless tools.")
	os.Exit(2)
}
