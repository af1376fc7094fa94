package automaton

import (
	"fmt"
	"slices"
	"strings"
)

// Config is everything needed to build an Automaton.
type Config struct {
	Width  int
	Height int
	States int

	Wrap          bool
	Diagonal      bool
	ClipDiagonals bool

	// Rules is evaluated in order; empty selects DefaultRuleSet.
	Rules RuleSet
	// Matcher defaults to FirstMatch.
	Matcher Matcher
	// NoMatch is ignored when the default rule set is in use.
	NoMatch NoMatchPolicy
}

// Shape returns the grid shape described by c.
func (c Config) Shape() Shape {
	return Shape{
		Width:         c.Width,
		Height:        c.Height,
		Topology:      Topology{Wrap: c.Wrap, Diagonal: c.Diagonal},
		ClipDiagonals: c.ClipDiagonals,
	}
}

// Automaton binds a shape, state count and rule engine. It owns the
// neighbour cache for its shape and is safe for concurrent use.
type Automaton struct {
	shape  Shape
	states int
	domain uint64
	engine *RuleEngine
	cache  *NeighborCache
}

// New validates cfg and precomputes the neighbour cache.
func New(cfg Config) (*Automaton, error) {
	shape := cfg.Shape()
	if err := shape.Validate(); err != nil {
		return nil, err
	}
	domain, err := DomainSize(cfg.States, shape.Cells())
	if err != nil {
		return nil, err
	}
	engine, err := NewRuleEngine(cfg.Rules, cfg.States, cfg.Matcher, cfg.NoMatch)
	if err != nil {
		return nil, err
	}
	return &Automaton{
		shape:  shape,
		states: cfg.States,
		domain: domain,
		engine: engine,
		cache:  NewNeighborCache(shape),
	}, nil
}

// Shape returns the grid shape.
func (a *Automaton) Shape() Shape { return a.shape }

// States returns the number of cell states.
func (a *Automaton) States() int { return a.states }

// Domain returns states^cells, the number of distinct configurations.
func (a *Automaton) Domain() uint64 { return a.domain }

// Engine returns the rule engine.
func (a *Automaton) Engine() *RuleEngine { return a.engine }

// Grid decodes sig into a configuration.
func (a *Automaton) Grid(sig Signature) (*Grid, error) {
	cells := make([]State, a.shape.Cells())
	if err := decodeInto(cells, sig, a.states); err != nil {
		return nil, err
	}
	return &Grid{a: a, cells: cells}, nil
}

// GridOf builds a grid holding a copy of cells.
func (a *Automaton) GridOf(cells []State) (*Grid, error) {
	if len(cells) != a.shape.Cells() {
		return nil, invalidShapef("%d cells for %dx%d grid", len(cells), a.shape.Width, a.shape.Height)
	}
	for i, c := range cells {
		if int(c) >= a.states {
			return nil, fmt.Errorf("%w: cell %d holds %d with %d states", ErrInvalidState, i, c, a.states)
		}
	}
	return &Grid{a: a, cells: slices.Clone(cells)}, nil
}

// encode is Encode without validation; cells are known to be in range and
// the domain to fit.
func (a *Automaton) encode(cells []State) Signature {
	radix := uint64(a.states)
	var sig uint64
	for _, c := range cells {
		sig = sig*radix + uint64(c)
	}
	return Signature(sig)
}

// step writes the successor of src into dst. h is scratch space of length
// states.
func (a *Automaton) step(dst, src []State, h Histogram) error {
	for i, cur := range src {
		clear(h)
		for _, j := range a.cache.Neighbors(i) {
			h[src[j]]++
		}
		next, err := a.engine.Apply(cur, h)
		if err != nil {
			return &StepError{
				Signature: a.encode(src),
				Cell:      i,
				Histogram: slices.Clone(h),
				Err:       err,
			}
		}
		dst[i] = next
	}
	return nil
}

// Grid is one immutable configuration of an Automaton.
type Grid struct {
	a     *Automaton
	cells []State
}

// Automaton returns the automaton g belongs to.
func (g *Grid) Automaton() *Automaton { return g.a }

// Shape returns the grid shape.
func (g *Grid) Shape() Shape { return g.a.shape }

// Cells returns a copy of the configuration in row-major order.
func (g *Grid) Cells() []State { return slices.Clone(g.cells) }

// At returns the state at column x, row y.
func (g *Grid) At(x, y int) State { return g.cells[g.a.shape.Index(x, y)] }

// Signature encodes the configuration.
func (g *Grid) Signature() Signature { return g.a.encode(g.cells) }

// Histogram counts the states of cell i's neighbours.
func (g *Grid) Histogram(i int) Histogram {
	h := make(Histogram, g.a.states)
	for _, j := range g.a.cache.Neighbors(i) {
		h[g.cells[j]]++
	}
	return h
}

// Next returns the successor configuration. g is left unchanged.
func (g *Grid) Next() (*Grid, error) {
	next := make([]State, len(g.cells))
	if err := g.a.step(next, g.cells, make(Histogram, g.a.states)); err != nil {
		return nil, err
	}
	return &Grid{a: g.a, cells: next}, nil
}

// Equal reports whether g and o hold the same configuration.
func (g *Grid) Equal(o *Grid) bool {
	return g.a.shape == o.a.shape && slices.Equal(g.cells, o.cells)
}

func (g *Grid) String() string {
	s := g.a.shape
	var b strings.Builder
	fmt.Fprintf(&b, "Grid (width=%d, height=%d [diagonal=%t, wrap=%t]) [\n", s.Width, s.Height, s.Diagonal, s.Wrap)
	for y := range s.Height {
		b.WriteString("  ")
		for x := range s.Width {
			if x > 0 {
				b.WriteByte(',')
			}
			fmt.Fprintf(&b, "%d", g.cells[s.Index(x, y)])
		}
		if y < s.Height-1 {
			b.WriteByte(',')
		}
		b.WriteByte('\n')
	}
	b.WriteString("]")
	return b.String()
}
