package core

import "strings"

// Parameter describes a single value exposed by a simulation.
type Parameter struct {
	Key   string
	Label string
	Value string
}

// ParameterGroup clusters related parameters for presentation purposes.
type ParameterGroup struct {
	Name   string
	Params []Parameter
}

// ParameterSnapshot captures the current set of values exposed by a sim.
type ParameterSnapshot struct {
	Groups []ParameterGroup
}

// ParameterProvider is implemented by sims that describe their settings.
type ParameterProvider interface {
	Parameters() ParameterSnapshot
}

// String renders the snapshot as "Group: label=value ..." lines.
func (s ParameterSnapshot) String() string {
	var b strings.Builder
	for i, g := range s.Groups {
		if i > 0 {
			b.WriteByte('\n')
		}
		b.WriteString(g.Name)
		b.WriteByte(':')
		for _, p := range g.Params {
			b.WriteByte(' ')
			b.WriteString(p.Label)
			b.WriteByte('=')
			b.WriteString(p.Value)
		}
	}
	return b.String()
}
