package testengine

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"io"

	"github.com/go-geounion/geounion"
)

// The binary layout is deliberately simple: every geometry encodes its srid,
// its member count, and each member's cells, so a sequence of geometries is
// self-describing back-to-back with no outer framing beyond a count.

// ToWKB produces the binary encoding of a single geometry.
func (e *Engine) ToWKB(g geounion.Geometry) ([]byte, error) {
	cg, err := toGeom(g)
	if err != nil {
		return nil, err
	}
	var buf bytes.Buffer
	writeGeom(&buf, cg)
	return buf.Bytes(), nil
}

// FromWKB decodes a single geometry from its binary encoding.
func (e *Engine) FromWKB(wkb []byte) (geounion.Geometry, error) {
	r := bytes.NewReader(wkb)
	g, err := readGeom(r)
	if err != nil {
		return nil, err
	}
	return g, nil
}

// EncodeCollection encodes a geometry sequence in the engine's binary
// collection format: a count followed by each geometry's encoding.
func (e *Engine) EncodeCollection(geoms []geounion.Geometry) ([]byte, error) {
	var buf bytes.Buffer
	var n [4]byte
	binary.LittleEndian.PutUint32(n[:], uint32(len(geoms)))
	buf.Write(n[:])
	for _, g := range geoms {
		cg, err := toGeom(g)
		if err != nil {
			return nil, err
		}
		writeGeom(&buf, cg)
	}
	return buf.Bytes(), nil
}

// DecodeCollection decodes a geometry sequence from the engine's binary
// collection format.
func (e *Engine) DecodeCollection(buf []byte) ([]geounion.Geometry, error) {
	r := bytes.NewReader(buf)
	var n uint32
	if err := binary.Read(r, binary.LittleEndian, &n); err != nil {
		return nil, fmt.Errorf("reading collection size: %w", err)
	}
	geoms := make([]geounion.Geometry, 0, n)
	for i := uint32(0); i < n; i++ {
		g, err := readGeom(r)
		if err != nil {
			return nil, fmt.Errorf("decoding geometry %d of %d: %w", i, n, err)
		}
		geoms = append(geoms, g)
	}
	return geoms, nil
}

// FromGeoJSON is not supported by the test engine; GeoJSON decoding is
// exercised against the production engine and with datasource-local fakes.
func (e *Engine) FromGeoJSON(geojson []byte) (geounion.Geometry, error) {
	return nil, fmt.Errorf("testengine does not decode GeoJSON")
}

func writeGeom(buf *bytes.Buffer, g *Geom) {
	binary.Write(buf, binary.LittleEndian, int32(g.srid))
	members := g.members
	if members == nil {
		members = []map[Cell]struct{}{g.cells}
	}
	binary.Write(buf, binary.LittleEndian, uint32(len(members)))
	for _, m := range members {
		cells := make([]Cell, 0, len(m))
		for c := range m {
			cells = append(cells, c)
		}
		binary.Write(buf, binary.LittleEndian, uint32(len(cells)))
		for _, c := range cells {
			binary.Write(buf, binary.LittleEndian, int32(c.X))
			binary.Write(buf, binary.LittleEndian, int32(c.Y))
		}
	}
}

func readGeom(r io.Reader) (*Geom, error) {
	var srid int32
	if err := binary.Read(r, binary.LittleEndian, &srid); err != nil {
		return nil, err
	}
	var nMembers uint32
	if err := binary.Read(r, binary.LittleEndian, &nMembers); err != nil {
		return nil, err
	}
	g := &Geom{srid: int(srid), cells: make(map[Cell]struct{})}
	for i := uint32(0); i < nMembers; i++ {
		var nCells uint32
		if err := binary.Read(r, binary.LittleEndian, &nCells); err != nil {
			return nil, err
		}
		part := make(map[Cell]struct{}, nCells)
		for j := uint32(0); j < nCells; j++ {
			var x, y int32
			if err := binary.Read(r, binary.LittleEndian, &x); err != nil {
				return nil, err
			}
			if err := binary.Read(r, binary.LittleEndian, &y); err != nil {
				return nil, err
			}
			c := Cell{X: int(x), Y: int(y)}
			part[c] = struct{}{}
			g.cells[c] = struct{}{}
		}
		if nMembers > 1 {
			g.members = append(g.members, part)
		}
	}
	return g, nil
}
