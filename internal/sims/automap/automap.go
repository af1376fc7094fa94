package automap

import (
	"strconv"

	"ca-map/internal/automaton"
	"ca-map/internal/config"
	"ca-map/internal/core"
)

// Config holds parameters for the automap viewer simulation.
type Config struct {
	File config.File
	// Start is the initial signature; negative picks one from the reset seed.
	Start int64
}

// DefaultConfig returns a 7x7 two-state torus under the default rules.
func DefaultConfig() Config {
	return Config{
		File:  config.File{Width: 7, Height: 7, States: 2, Wrap: true, Diagonal: true},
		Start: -1,
	}
}

// FromMap populates a Config from a string map. A "rules" entry names a YAML
// file whose contents replace the defaults before the remaining keys apply.
func FromMap(cfg map[string]string) (Config, error) {
	c := DefaultConfig()
	if cfg == nil {
		return c, nil
	}
	if path, ok := cfg["rules"]; ok && path != "" {
		f, err := config.Load(path)
		if err != nil {
			return Config{}, err
		}
		c.File = f
	}
	if v, ok := cfg["w"]; ok {
		if parsed, err := strconv.Atoi(v); err == nil && parsed > 0 {
			c.File.Width = parsed
		}
	}
	if v, ok := cfg["h"]; ok {
		if parsed, err := strconv.Atoi(v); err == nil && parsed > 0 {
			c.File.Height = parsed
		}
	}
	if v, ok := cfg["states"]; ok {
		if parsed, err := strconv.Atoi(v); err == nil && parsed > 0 && parsed <= automaton.MaxStates {
			c.File.States = parsed
		}
	}
	if v, ok := cfg["wrap"]; ok {
		if parsed, err := strconv.ParseBool(v); err == nil {
			c.File.Wrap = parsed
		}
	}
	if v, ok := cfg["diagonal"]; ok {
		if parsed, err := strconv.ParseBool(v); err == nil {
			c.File.Diagonal = parsed
		}
	}
	if v, ok := cfg["no_match"]; ok {
		if _, err := automaton.ParseNoMatchPolicy(v); err != nil {
			return Config{}, err
		}
		c.File.NoMatch = v
	}
	if v, ok := cfg["signature"]; ok {
		if parsed, err := strconv.ParseInt(v, 10, 64); err == nil {
			c.Start = parsed
		}
	}
	return c, nil
}

// Automap steps one configuration of an automaton forward per tick.
type Automap struct {
	a     *automaton.Automaton
	start int64

	grid       *automaton.Grid
	generation int
	err        error
	cells      []uint8
}

// New builds the automaton described by cfg and resets it with seed 0.
func New(cfg Config) (*Automap, error) {
	acfg, err := cfg.File.Automaton()
	if err != nil {
		return nil, err
	}
	a, err := automaton.New(acfg)
	if err != nil {
		return nil, err
	}
	m := &Automap{a: a, start: cfg.Start, cells: make([]uint8, a.Shape().Cells())}
	m.Reset(0)
	return m, nil
}

// Name returns the simulation identifier.
func (m *Automap) Name() string { return "automap" }

// Size returns the grid dimensions.
func (m *Automap) Size() core.Size {
	s := m.a.Shape()
	return core.Size{W: s.Width, H: s.Height}
}

// States returns the number of cell states.
func (m *Automap) States() int { return m.a.States() }

// Cells exposes the current configuration.
func (m *Automap) Cells() []uint8 { return m.cells }

// Reset jumps to the configured start signature, or to a signature drawn
// from seed when none is configured.
func (m *Automap) Reset(seed int64) {
	var sig automaton.Signature
	if m.start >= 0 && uint64(m.start) < m.a.Domain() {
		sig = automaton.Signature(m.start)
	} else {
		sig = automaton.Signature(core.PickBelow(seed, m.a.Domain()))
	}
	g, err := m.a.Grid(sig)
	if err != nil {
		m.err = err
		return
	}
	m.setGrid(g)
	m.generation = 0
	m.err = nil
}

// Step advances one generation. After a failed transition the grid stays
// put and Err reports why.
func (m *Automap) Step() {
	if m.err != nil || m.grid == nil {
		return
	}
	next, err := m.grid.Next()
	if err != nil {
		m.err = err
		return
	}
	m.setGrid(next)
	m.generation++
}

// Signature returns the signature of the current configuration.
func (m *Automap) Signature() automaton.Signature {
	if m.grid == nil {
		return 0
	}
	return m.grid.Signature()
}

// Generation counts steps since the last reset.
func (m *Automap) Generation() int { return m.generation }

// Err returns the transition error that halted the sim, if any.
func (m *Automap) Err() error { return m.err }

func (m *Automap) setGrid(g *automaton.Grid) {
	m.grid = g
	for i, c := range g.Cells() {
		m.cells[i] = uint8(c)
	}
}

// Parameters describes the automaton and the current position.
func (m *Automap) Parameters() core.ParameterSnapshot {
	s := m.a.Shape()
	engine := m.a.Engine()
	rules := strconv.Itoa(len(engine.Rules()))
	if engine.UsesDefaults() {
		rules = "default"
	}
	return core.ParameterSnapshot{Groups: []core.ParameterGroup{
		{
			Name: "Grid",
			Params: []core.Parameter{
				{Key: "w", Label: "Width", Value: strconv.Itoa(s.Width)},
				{Key: "h", Label: "Height", Value: strconv.Itoa(s.Height)},
				{Key: "states", Label: "States", Value: strconv.Itoa(m.a.States())},
				{Key: "wrap", Label: "Wrap", Value: strconv.FormatBool(s.Wrap)},
				{Key: "diagonal", Label: "Diagonal", Value: strconv.FormatBool(s.Diagonal)},
			},
		},
		{
			Name: "Rules",
			Params: []core.Parameter{
				{Key: "rules", Label: "Rules", Value: rules},
				{Key: "no_match", Label: "No match", Value: engine.NoMatch().String()},
			},
		},
		{
			Name: "Run",
			Params: []core.Parameter{
				{Key: "signature", Label: "Signature", Value: strconv.FormatUint(uint64(m.Signature()), 10)},
				{Key: "generation", Label: "Generation", Value: strconv.Itoa(m.generation)},
			},
		},
	}}
}

func init() {
	core.Register("automap", func(cfg map[string]string) (core.Sim, error) {
		c, err := FromMap(cfg)
		if err != nil {
			return nil, err
		}
		return New(c)
	})
}
