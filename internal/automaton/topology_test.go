package automaton

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func square(wrap, diagonal bool) Shape {
	return Shape{Width: 3, Height: 3, Topology: Topology{Wrap: wrap, Diagonal: diagonal}}
}

func TestNeighborCounts3x3(t *testing.T) {
	corners := []int{0, 2, 6, 8}
	edges := []int{1, 3, 5, 7}

	bounded := square(false, false)
	for _, i := range corners {
		assert.Lenf(t, bounded.Neighbors(i), 2, "corner %d", i)
	}
	for _, i := range edges {
		assert.Lenf(t, bounded.Neighbors(i), 3, "edge %d", i)
	}
	assert.Len(t, bounded.Neighbors(4), 4)

	wrapped := square(true, false)
	for i := range 9 {
		assert.Lenf(t, wrapped.Neighbors(i), 4, "cell %d", i)
	}

	assert.Len(t, square(false, true).Neighbors(4), 8)

	torus := square(true, true)
	for i := range 9 {
		assert.Lenf(t, torus.Neighbors(i), 8, "cell %d", i)
	}
}

func TestNeighborOrder(t *testing.T) {
	cases := []struct {
		name  string
		shape Shape
		cell  int
		want  []int
	}{
		{"BoundedCorner", square(false, false), 0, []int{1, 3}},
		{"BoundedCenter", square(false, false), 4, []int{3, 5, 1, 7}},
		{"WrappedCorner", square(true, false), 0, []int{2, 1, 6, 3}},
		{"WrappedLastCell", square(true, false), 8, []int{7, 6, 5, 2}},
		{"TorusCorner", square(true, true), 0, []int{2, 1, 6, 3, 8, 7, 5, 4}},
		{"DiagonalCenter", square(false, true), 4, []int{3, 5, 1, 7, 0, 2, 6, 8}},
		// Bounds-only diagonals let cell 3 see cell 5 across the row edge.
		{"DiagonalLeftEdge", square(false, true), 3, []int{4, 0, 6, 1, 5, 7}},
		{"DiagonalLeftEdgeClipped", Shape{Width: 3, Height: 3, Topology: Topology{Diagonal: true}, ClipDiagonals: true}, 3, []int{4, 0, 6, 1, 7}},
		{"Single", Shape{Width: 1, Height: 1}, 0, []int{}},
		{"SingleWrapped", Shape{Width: 1, Height: 1, Topology: Topology{Wrap: true}}, 0, []int{0, 0, 0, 0}},
		{"SingleTorus", Shape{Width: 1, Height: 1, Topology: Topology{Wrap: true, Diagonal: true}}, 0, []int{0, 0, 0, 0, 0, 0, 0, 0}},
		{"ColumnWrapped", Shape{Width: 1, Height: 3, Topology: Topology{Wrap: true}}, 1, []int{1, 1, 0, 2}},
		{"PairWrapped", Shape{Width: 2, Height: 1, Topology: Topology{Wrap: true}}, 0, []int{1, 1, 0, 0}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, tc.shape.Neighbors(tc.cell))
		})
	}
}

func TestNeighborCacheMatchesShape(t *testing.T) {
	shapes := []Shape{
		square(false, false),
		square(true, false),
		square(false, true),
		square(true, true),
		{Width: 4, Height: 2, Topology: Topology{Wrap: true, Diagonal: true}},
		{Width: 1, Height: 5, Topology: Topology{Diagonal: true}},
	}
	for _, shape := range shapes {
		cache := NewNeighborCache(shape)
		require.Equal(t, shape, cache.Shape())
		for i := range shape.Cells() {
			assert.Equalf(t, shape.Neighbors(i), cache.Neighbors(i), "%s cell %d", shape, i)
		}
	}
}

func TestNeighborCacheFor(t *testing.T) {
	cache := NewNeighborCache(square(true, false))
	assert.Same(t, cache, cache.For(square(true, false)))

	other := cache.For(square(false, false))
	assert.NotSame(t, cache, other)
	assert.Equal(t, square(false, false), other.Shape())

	var empty *NeighborCache
	assert.Equal(t, square(true, true), empty.For(square(true, true)).Shape())
}

func TestShapeValidate(t *testing.T) {
	require.NoError(t, Shape{Width: 1, Height: 1}.Validate())
	require.ErrorIs(t, Shape{Width: 0, Height: 2}.Validate(), ErrInvalidShape)
	require.ErrorIs(t, Shape{Width: 2, Height: -1}.Validate(), ErrInvalidShape)
}
