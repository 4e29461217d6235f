package geosengine

import (
	geos "github.com/twpayne/go-geos"

	"github.com/go-geounion/geounion"
)

// geometry wraps a GEOS geometry and lazily caches its bounding box, the
// way the accumulator's sweep expects. Empty geometries never acquire a
// box.
type geometry struct {
	eng *Engine
	g   *geos.Geom

	box      geounion.BBox
	boxKnown bool
	boxEmpty bool
}

// SRID returns the spatial reference id this geometry is expressed in.
func (g *geometry) SRID() int {
	return g.g.SRID()
}

// HasZ returns true iff this geometry carries Z ordinates.
func (g *geometry) HasZ() bool {
	return g.g.HasZ()
}

// HasM returns false. The GEOS binding in use predates M-ordinate
// accessors, so dimensionality tracking covers Z only on this engine.
func (g *geometry) HasM() bool {
	return false
}

// IsEmpty returns true iff this geometry covers nothing.
func (g *geometry) IsEmpty() bool {
	return g.g.IsEmpty()
}

// BBox returns the axis-aligned bounding box, computing and caching it on
// first use. Empty geometries have no box.
func (g *geometry) BBox() (geounion.BBox, bool) {
	if !g.boxKnown {
		g.boxKnown = true
		if g.g.IsEmpty() {
			g.boxEmpty = true
		} else {
			b := g.g.Bounds()
			g.box = geounion.BBox{MinX: b.MinX, MinY: b.MinY, MaxX: b.MaxX, MaxY: b.MaxY}
		}
	}
	if g.boxEmpty {
		return geounion.BBox{}, false
	}
	return g.box, true
}

// Clone deep-copies this geometry within the same arena.
func (g *geometry) Clone() geounion.Geometry {
	return g.eng.wrap(g.g.Clone())
}

// IsCollection returns true iff this geometry is a multi-part value.
func (g *geometry) IsCollection() bool {
	switch g.g.TypeID() {
	case geos.TypeIDMultiPoint, geos.TypeIDMultiLineString, geos.TypeIDMultiPolygon, geos.TypeIDGeometryCollection:
		return true
	}
	return false
}

// Parts flattens a multi-part geometry one level into standalone members.
// Atomic geometries yield themselves as their only part. Members are
// cloned because GEOS child geometries stay owned by their parent.
func (g *geometry) Parts() []geounion.Geometry {
	if !g.IsCollection() {
		return []geounion.Geometry{g}
	}
	n := g.g.NumGeometries()
	srid := g.g.SRID()
	parts := make([]geounion.Geometry, 0, n)
	for i := 0; i < n; i++ {
		child := g.g.Geometry(i).Clone()
		if child.SRID() == 0 && srid != 0 {
			child.SetSRID(srid)
		}
		parts = append(parts, g.eng.wrap(child))
	}
	return parts
}
