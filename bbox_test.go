package geounion

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestBBoxOverlaps(t *testing.T) {
	a := BBox{MinX: 0, MinY: 0, MaxX: 2, MaxY: 2}
	b := BBox{MinX: 1, MinY: 1, MaxX: 3, MaxY: 3}
	require.True(t, a.Overlaps(b))
	require.True(t, b.Overlaps(a))
	// touching edges count as overlap
	c := BBox{MinX: 2, MinY: 0, MaxX: 4, MaxY: 2}
	require.True(t, a.Overlaps(c))
	require.True(t, c.Overlaps(a))
	// disjoint
	d := BBox{MinX: 5, MinY: 5, MaxX: 6, MaxY: 6}
	require.False(t, a.Overlaps(d))
	require.False(t, d.Overlaps(a))
}

func TestBBoxExtend(t *testing.T) {
	a := BBox{MinX: 0, MinY: 0, MaxX: 1, MaxY: 1}
	b := BBox{MinX: -2, MinY: 3, MaxX: 0.5, MaxY: 4}
	m := a.Extend(b)
	require.Equal(t, BBox{MinX: -2, MinY: 0, MaxX: 1, MaxY: 4}, m)
	require.Equal(t, m, b.Extend(a))
}

func TestSortableHashLocality(t *testing.T) {
	unit := func(x, y float64) BBox {
		return BBox{MinX: x, MinY: y, MaxX: x + 1, MaxY: y + 1}
	}
	near := unit(0, 0).SortableHash(0)
	next := unit(1, 0).SortableHash(0)
	far := unit(1e6, 1e6).SortableHash(0)
	require.Equal(t, unit(0, 0).SortableHash(0), near) // deterministic
	require.NotEqual(t, near, far)
	// an adjacent box hashes closer than a distant one
	require.Less(t, diff(near, next), diff(near, far))
}

func TestSortableHashOrdersNegatives(t *testing.T) {
	neg := BBox{MinX: -10, MinY: -10, MaxX: -9, MaxY: -9}.SortableHash(0)
	pos := BBox{MinX: 9, MinY: 9, MaxX: 10, MaxY: 10}.SortableHash(0)
	require.NotEqual(t, neg, pos)
	require.Less(t, neg, pos)
}

func diff(a, b uint64) uint64 {
	if a > b {
		return a - b
	}
	return b - a
}
