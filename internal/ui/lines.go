package ui

import (
	"strings"

	"ca-map/internal/core"
)

type errorReporter interface {
	Err() error
}

// Lines returns the text the overlay shows for sim and whether the last line
// reports a halted run.
func Lines(sim core.Sim) ([]string, bool) {
	var lines []string
	if p, ok := sim.(core.ParameterProvider); ok {
		lines = strings.Split(p.Parameters().String(), "\n")
	} else {
		lines = []string{sim.Name()}
	}
	if er, ok := sim.(errorReporter); ok && er.Err() != nil {
		return append(lines, "halted: "+er.Err().Error()), true
	}
	return lines, false
}
