package geosengine

import (
	"fmt"

	geos "github.com/twpayne/go-geos"

	"github.com/go-geounion/geounion"
)

// An Engine is a GEOS-backed geometry engine scoped to one aggregation
// group. Engines are not safe for concurrent use; per the aggregation
// contract, each worker drives exactly one state (and thus one engine) at a
// time.
type Engine struct {
	ctx *geos.Context
}

// New returns an Engine with a fresh GEOS context.
func New() *Engine {
	return &Engine{ctx: geos.NewContext()}
}

// Context exposes the underlying GEOS context, the arena all of this
// group's geometries live in.
func (e *Engine) Context() *geos.Context {
	return e.ctx
}

// FromWKB decodes a single geometry from its WKB encoding.
func (e *Engine) FromWKB(wkb []byte) (geounion.Geometry, error) {
	g, err := e.ctx.NewGeomFromWKB(wkb)
	if err != nil {
		return nil, fmt.Errorf("decoding WKB: %w", err)
	}
	return e.wrap(g), nil
}

// ToWKB produces the WKB encoding of a single geometry.
func (e *Engine) ToWKB(g geounion.Geometry) (buf []byte, err error) {
	gg, err := e.unwrap(g)
	if err != nil {
		return nil, err
	}
	defer recoverGEOS(&err)
	return gg.g.ToWKB(), nil
}

// FromGeoJSON decodes a single geometry from a GeoJSON geometry object.
func (e *Engine) FromGeoJSON(geojson []byte) (geounion.Geometry, error) {
	g, err := e.ctx.NewGeomFromGeoJSON(string(geojson))
	if err != nil {
		return nil, fmt.Errorf("decoding GeoJSON: %w", err)
	}
	return e.wrap(g), nil
}

// EncodeCollection encodes a geometry sequence as a WKB GeometryCollection.
func (e *Engine) EncodeCollection(geoms []geounion.Geometry) (buf []byte, err error) {
	members := make([]*geos.Geom, len(geoms))
	for i, g := range geoms {
		gg, err := e.unwrap(g)
		if err != nil {
			return nil, err
		}
		// NewCollection takes ownership of its members, so the state's
		// geometries must not be handed over directly.
		members[i] = gg.g.Clone()
	}
	defer recoverGEOS(&err)
	coll := e.ctx.NewCollection(geos.TypeIDGeometryCollection, members)
	if len(geoms) > 0 {
		coll.SetSRID(geoms[0].SRID())
	}
	return coll.ToWKB(), nil
}

// DecodeCollection decodes a geometry sequence from a WKB
// GeometryCollection. A non-collection payload decodes to a single-element
// sequence.
func (e *Engine) DecodeCollection(buf []byte) ([]geounion.Geometry, error) {
	coll, err := e.ctx.NewGeomFromWKB(buf)
	if err != nil {
		return nil, fmt.Errorf("decoding WKB collection: %w", err)
	}
	wrapped := e.wrap(coll)
	if !wrapped.IsCollection() {
		return []geounion.Geometry{wrapped}, nil
	}
	return wrapped.Parts(), nil
}

// UnaryUnion computes the union of a geometry sequence. A positive gridSize
// snaps the result onto a grid of that cell size, trading precision for
// numerical stability; any other value means unconstrained precision.
func (e *Engine) UnaryUnion(geoms []geounion.Geometry, gridSize float64) (result geounion.Geometry, err error) {
	if len(geoms) == 0 {
		return nil, fmt.Errorf("union of zero geometries")
	}
	members := make([]*geos.Geom, len(geoms))
	for i, g := range geoms {
		gg, err := e.unwrap(g)
		if err != nil {
			return nil, err
		}
		members[i] = gg.g.Clone()
	}
	defer recoverGEOS(&err)
	coll := e.ctx.NewCollection(geos.TypeIDGeometryCollection, members)
	var u *geos.Geom
	if gridSize > 0 {
		u = coll.UnaryUnionPrec(gridSize)
	} else {
		u = coll.UnaryUnion()
	}
	u.SetSRID(geoms[0].SRID())
	return e.wrap(u), nil
}

func (e *Engine) wrap(g *geos.Geom) *geometry {
	return &geometry{eng: e, g: g}
}

func (e *Engine) unwrap(g geounion.Geometry) (*geometry, error) {
	gg, ok := g.(*geometry)
	if !ok {
		return nil, fmt.Errorf("geometry %T does not belong to a GEOS engine", g)
	}
	if gg.eng != e {
		return nil, fmt.Errorf("geometry belongs to a different engine's arena")
	}
	return gg, nil
}

// recoverGEOS converts a GEOS panic (go-geos reports topology exceptions by
// panicking) into an error return.
func recoverGEOS(err *error) {
	if r := recover(); r != nil {
		if e, ok := r.(error); ok {
			*err = fmt.Errorf("GEOS: %w", e)
			return
		}
		*err = fmt.Errorf("GEOS: %v", r)
	}
}
