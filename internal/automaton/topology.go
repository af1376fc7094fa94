package automaton

import "fmt"

// Topology selects how a grid treats its edges and which cells count as
// neighbours.
type Topology struct {
	// Wrap joins opposite edges into a torus.
	Wrap bool
	// Diagonal adds the four corner-adjacent cells to the orthogonal four.
	Diagonal bool
}

// Shape fixes grid dimensions together with the neighbour topology.
type Shape struct {
	Width  int
	Height int
	Topology

	// ClipDiagonals stops non-wrapping diagonal neighbours from spilling
	// into the adjacent row at the left and right edges. Without it only the
	// linear index bounds are checked.
	ClipDiagonals bool
}

// Cells returns the number of cells in the grid.
func (s Shape) Cells() int { return s.Width * s.Height }

// Index returns the row-major index for column x and row y.
func (s Shape) Index(x, y int) int { return y*s.Width + x }

// Coords returns the column and row of index i.
func (s Shape) Coords(i int) (x, y int) { return i % s.Width, i / s.Width }

// Validate reports whether both dimensions are positive.
func (s Shape) Validate() error {
	if s.Width <= 0 || s.Height <= 0 {
		return invalidShapef("%dx%d", s.Width, s.Height)
	}
	return nil
}

func (s Shape) String() string {
	return fmt.Sprintf("%dx%d wrap=%t diagonal=%t", s.Width, s.Height, s.Wrap, s.Diagonal)
}

// Neighbors returns the ordered neighbour indices of cell i. Orthogonal
// neighbours come first (left, right, up, down) followed by diagonals
// (up-left, up-right, down-left, down-right). Wrapping shapes always return
// four or eight entries, repeating indices when a dimension is smaller than
// three.
func (s Shape) Neighbors(i int) []int {
	return s.appendNeighbors(make([]int, 0, 8), i)
}

func (s Shape) appendNeighbors(dst []int, i int) []int {
	switch {
	case !s.Wrap && !s.Diagonal:
		return s.appendBounded(dst, i)
	case s.Wrap && !s.Diagonal:
		return s.appendWrapped(dst, i)
	case !s.Wrap && s.Diagonal:
		return s.appendBoundedDiagonal(s.appendBounded(dst, i), i)
	default:
		return s.appendWrappedDiagonal(s.appendWrapped(dst, i), i)
	}
}

func (s Shape) appendBounded(dst []int, i int) []int {
	w, n := s.Width, s.Cells()
	x := i % w
	if x > 0 {
		dst = append(dst, i-1)
	}
	if x < w-1 {
		dst = append(dst, i+1)
	}
	if i-w >= 0 {
		dst = append(dst, i-w)
	}
	if i+w < n {
		dst = append(dst, i+w)
	}
	return dst
}

func (s Shape) appendWrapped(dst []int, i int) []int {
	w, h := s.Width, s.Height
	x, y := s.Coords(i)
	return append(dst,
		y*w+(x-1+w)%w,
		y*w+(x+1)%w,
		((y-1+h)%h)*w+x,
		((y+1)%h)*w+x,
	)
}

var diagonalOffsets = [4][2]int{{-1, -1}, {1, -1}, {-1, 1}, {1, 1}}

func (s Shape) appendBoundedDiagonal(dst []int, i int) []int {
	w, n := s.Width, s.Cells()
	x := i % w
	for _, d := range diagonalOffsets {
		j := i + d[1]*w + d[0]
		if j < 0 || j >= n {
			continue
		}
		if s.ClipDiagonals && (x+d[0] < 0 || x+d[0] >= w) {
			continue
		}
		dst = append(dst, j)
	}
	return dst
}

func (s Shape) appendWrappedDiagonal(dst []int, i int) []int {
	w, h := s.Width, s.Height
	x, y := s.Coords(i)
	for _, d := range diagonalOffsets {
		nx := (x + d[0] + w) % w
		ny := (y + d[1] + h) % h
		dst = append(dst, ny*w+nx)
	}
	return dst
}

// NeighborCache holds the precomputed neighbour lists of every cell for one
// shape. It is immutable once built and safe for concurrent reads.
type NeighborCache struct {
	shape Shape
	start []int
	flat  []int
}

// NewNeighborCache computes neighbour lists for every cell of shape.
func NewNeighborCache(shape Shape) *NeighborCache {
	n := shape.Cells()
	c := &NeighborCache{
		shape: shape,
		start: make([]int, n+1),
		flat:  make([]int, 0, n*8),
	}
	for i := range n {
		c.start[i] = len(c.flat)
		c.flat = shape.appendNeighbors(c.flat, i)
	}
	c.start[n] = len(c.flat)
	return c
}

// Shape returns the shape the cache was built for.
func (c *NeighborCache) Shape() Shape { return c.shape }

// Neighbors returns the cached neighbour indices of cell i. The slice is
// shared and must not be modified.
func (c *NeighborCache) Neighbors(i int) []int {
	return c.flat[c.start[i]:c.start[i+1]:c.start[i+1]]
}

// For returns c when it was built for shape and a freshly built cache
// otherwise.
func (c *NeighborCache) For(shape Shape) *NeighborCache {
	if c != nil && c.shape == shape {
		return c
	}
	return NewNeighborCache(shape)
}
