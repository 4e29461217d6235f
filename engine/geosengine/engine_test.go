package geosengine

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/go-geounion/geounion"
	"github.com/go-geounion/geounion/union"
)

func square(t *testing.T, e *Engine, x, y, size float64) geounion.Geometry {
	t.Helper()
	doc := fmt.Sprintf(
		`{"type": "Polygon", "coordinates": [[[%g,%g],[%g,%g],[%g,%g],[%g,%g],[%g,%g]]]}`,
		x, y, x+size, y, x+size, y+size, x, y+size, x, y)
	g, err := e.FromGeoJSON([]byte(doc))
	require.Nil(t, err)
	return g
}

func TestBBoxAndEmptiness(t *testing.T) {
	e := New()
	g := square(t, e, 0, 0, 2)
	require.False(t, g.IsEmpty())
	b, ok := g.BBox()
	require.True(t, ok)
	require.Equal(t, geounion.BBox{MinX: 0, MinY: 0, MaxX: 2, MaxY: 2}, b)

	empty, err := e.FromGeoJSON([]byte(`{"type": "GeometryCollection", "geometries": []}`))
	require.Nil(t, err)
	require.True(t, empty.IsEmpty())
	_, ok = empty.BBox()
	require.False(t, ok)
}

func TestUnaryUnionDissolvesAdjacentSquares(t *testing.T) {
	e := New()
	g, err := e.UnaryUnion([]geounion.Geometry{
		square(t, e, 0, 0, 1),
		square(t, e, 1, 0, 1),
	}, geounion.UnsetGridSize)
	require.Nil(t, err)
	require.False(t, g.IsCollection())
	require.InDelta(t, 2.0, g.(*geometry).g.Area(), 1e-9)
}

func TestUnaryUnionKeepsDisjointParts(t *testing.T) {
	e := New()
	g, err := e.UnaryUnion([]geounion.Geometry{
		square(t, e, 0, 0, 1),
		square(t, e, 10, 10, 1),
	}, geounion.UnsetGridSize)
	require.Nil(t, err)
	require.True(t, g.IsCollection())
	require.Len(t, g.Parts(), 2)
}

func TestCollectionCodecRoundTrip(t *testing.T) {
	e := New()
	geoms := []geounion.Geometry{
		square(t, e, 0, 0, 1),
		square(t, e, 5, 5, 2),
	}
	buf, err := e.EncodeCollection(geoms)
	require.Nil(t, err)
	decoded, err := e.DecodeCollection(buf)
	require.Nil(t, err)
	require.Len(t, decoded, 2)
	area := 0.0
	for _, g := range decoded {
		area += g.(*geometry).g.Area()
	}
	require.InDelta(t, 5.0, area, 1e-9)
}

func TestStatePipelineAgainstGEOS(t *testing.T) {
	// end-to-end: contiguous squares collapse to a single polygon whose
	// area equals the bounding rectangle's
	e := New()
	s := union.NewState(e)
	const n = 6
	for i := 0; i < n; i++ {
		require.Nil(t, s.Accumulate(square(t, e, float64(i), 0, 1), geounion.UnsetGridSize))
	}
	require.Nil(t, s.Compact())
	require.Equal(t, 1, s.Len())

	buf, err := s.ToBytes()
	require.Nil(t, err)
	restored, err := union.NewState(e).FromBytes(buf)
	require.Nil(t, err)

	result, err := restored.Finalize()
	require.Nil(t, err)
	require.False(t, result.IsCollection())
	require.InDelta(t, float64(n), result.(*geometry).g.Area(), 1e-9)
}
