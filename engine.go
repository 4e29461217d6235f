package geounion

// A Geometry is an opaque value produced by an Engine. Geometries carry a
// spatial reference id and dimensionality, may lazily expose a bounding box
// (empty geometries have none), and are exclusively owned by whichever
// Accumulator sequence currently holds them.
type Geometry interface {
	SRID() int                // SRID returns the spatial reference id this Geometry is expressed in
	HasZ() bool               // HasZ returns true iff this Geometry carries Z ordinates
	HasM() bool               // HasM returns true iff this Geometry carries M ordinates
	IsEmpty() bool            // IsEmpty returns true iff this Geometry covers nothing
	BBox() (BBox, bool)       // BBox returns the axis-aligned bounding box, or false for an empty Geometry
	Clone() Geometry          // Clone deep-copies this Geometry
	IsCollection() bool       // IsCollection returns true iff this Geometry is a multi-part value
	Parts() []Geometry        // Parts flattens a multi-part Geometry one level into standalone members
}

// An Engine is a geometry backend scoped to a single aggregation group. All
// Geometry values an Engine produces are allocated from the group's arena
// and remain valid until the engine is released by the host executor.
// Engines perform the expensive spatial operations on behalf of the
// accumulator state machine; geounion never computes a union itself.
type Engine interface {
	FromWKB(wkb []byte) (Geometry, error)                              // FromWKB decodes a single Geometry from its binary encoding
	ToWKB(g Geometry) ([]byte, error)                                  // ToWKB produces the binary encoding of a single Geometry
	FromGeoJSON(geojson []byte) (Geometry, error)                      // FromGeoJSON decodes a single Geometry from a GeoJSON geometry object
	EncodeCollection(geoms []Geometry) ([]byte, error)                 // EncodeCollection encodes a geometry sequence in the engine's binary collection format
	DecodeCollection(buf []byte) ([]Geometry, error)                   // DecodeCollection decodes a geometry sequence from the engine's binary collection format
	UnaryUnion(geoms []Geometry, gridSize float64) (Geometry, error)   // UnaryUnion computes the union of a geometry sequence; gridSize <= 0 means unconstrained precision
}
