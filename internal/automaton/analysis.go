package automaton

import (
	"fmt"
	"slices"
)

// Orbit is the trajectory of a configuration under a Map, split into the
// transient prefix and the cycle it settles into.
type Orbit struct {
	Transient []Signature
	Cycle     []Signature
}

// Orbit follows s until a signature repeats.
func (m *Map) Orbit(s Signature) (Orbit, error) {
	if uint64(s) >= m.Len() {
		return Orbit{}, fmt.Errorf("%w: %d outside domain %d", ErrSignatureOutOfRange, s, m.Len())
	}
	seen := make(map[Signature]int)
	var path []Signature
	for {
		if at, ok := seen[s]; ok {
			return Orbit{Transient: path[:at:at], Cycle: path[at:]}, nil
		}
		seen[s] = len(path)
		path = append(path, s)
		s = m.next[s]
	}
}

// Attractor is a cycle of the map together with the number of
// configurations, cycle members included, that eventually enter it.
type Attractor struct {
	Cycle []Signature
	Basin uint64
}

// Period returns the cycle length.
func (a Attractor) Period() int { return len(a.Cycle) }

// Analysis summarises the long-term structure of a Map.
type Analysis struct {
	// Attractors is ordered by the smallest signature of each cycle; every
	// cycle starts at that signature.
	Attractors []Attractor
	// FixedPoints lists signatures that map to themselves.
	FixedPoints []Signature
	// GardenOfEden lists signatures no configuration maps to.
	GardenOfEden []Signature
}

const (
	unvisited uint8 = iota
	onPath
	resolved
)

// Analyze finds every attractor of m, its basin, and the configurations
// without a predecessor.
func (m *Map) Analyze() Analysis {
	n := len(m.next)
	color := make([]uint8, n)
	owner := make([]int32, n)
	hasPred := make([]bool, n)
	for _, t := range m.next {
		hasPred[t] = true
	}

	var cycles [][]Signature
	var path []int
	for start := range n {
		if color[start] != unvisited {
			continue
		}
		path = path[:0]
		s := start
		for color[s] == unvisited {
			color[s] = onPath
			path = append(path, s)
			s = int(m.next[s])
		}
		id := owner[s]
		if color[s] == onPath {
			at := slices.Index(path, s)
			cycle := make([]Signature, 0, len(path)-at)
			for _, c := range path[at:] {
				cycle = append(cycle, Signature(c))
			}
			id = int32(len(cycles))
			cycles = append(cycles, canonicalCycle(cycle))
		}
		for _, p := range path {
			color[p] = resolved
			owner[p] = id
		}
	}

	basins := make([]uint64, len(cycles))
	for _, id := range owner {
		basins[id]++
	}

	var out Analysis
	for i, c := range cycles {
		out.Attractors = append(out.Attractors, Attractor{Cycle: c, Basin: basins[i]})
		if len(c) == 1 {
			out.FixedPoints = append(out.FixedPoints, c[0])
		}
	}
	slices.SortFunc(out.Attractors, func(a, b Attractor) int {
		return compareSignature(a.Cycle[0], b.Cycle[0])
	})
	slices.Sort(out.FixedPoints)
	for s, ok := range hasPred {
		if !ok {
			out.GardenOfEden = append(out.GardenOfEden, Signature(s))
		}
	}
	return out
}

// canonicalCycle rotates c so that its smallest signature comes first.
func canonicalCycle(c []Signature) []Signature {
	at := slices.Index(c, slices.Min(c))
	return append(c[at:len(c):len(c)], c[:at]...)
}

func compareSignature(a, b Signature) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}
