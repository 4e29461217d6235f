package union

import (
	"encoding/binary"
	"fmt"
	"math"

	"github.com/go-geounion/geounion"
	"github.com/go-geounion/geounion/errors"
)

// gridSizeLen is the fixed-width header of a serialized State: one IEEE754
// double holding the grid size.
const gridSizeLen = 8

// ToBytes serializes this State for transfer across a process boundary.
// Unless the State already resulted from a Merge or FromBytes, clustering
// reduction runs first so the payload stays compact. The payload is the
// little-endian grid size followed, for a non-empty State, by the engine's
// binary collection encoding of the geometry sequence; an empty State
// serializes to the grid size alone.
func (s *State) ToBytes() ([]byte, error) {
	if len(s.geoms) > 0 && !s.reduced {
		if err := s.Compact(); err != nil {
			return nil, err
		}
	}
	buf := make([]byte, gridSizeLen)
	binary.LittleEndian.PutUint64(buf, math.Float64bits(s.gridSize))
	if len(s.geoms) > 0 {
		coll, err := s.engine.EncodeCollection(s.geoms)
		if err != nil {
			return nil, fmt.Errorf("encoding geometry collection: %w", err)
		}
		buf = append(buf, coll...)
	}
	return buf, nil
}

// FromBytes produces a new State from serialized data, built against the
// same Engine as the receiver. The new State is marked as already reduced,
// since reduction ran before the payload was produced; a subsequent ToBytes
// will not re-cluster it. Payloads are only ever consumed by the process
// family that produced them, so a malformed payload indicates an internal
// consistency violation and surfaces as an error rather than being repaired.
func (s *State) FromBytes(buf []byte) (geounion.Accumulator, error) {
	if len(buf) < gridSizeLen {
		return nil, errors.TruncatedPayloadError{Len: len(buf)}
	}
	next := &State{
		engine:   s.engine,
		gridSize: math.Float64frombits(binary.LittleEndian.Uint64(buf)),
		reduced:  true,
	}
	if len(buf) > gridSizeLen {
		geoms, err := s.engine.DecodeCollection(buf[gridSizeLen:])
		if err != nil {
			return nil, fmt.Errorf("decoding geometry collection: %w", err)
		}
		if len(geoms) > 0 {
			next.geoms = geoms
			next.srid = geoms[0].SRID()
			next.hasZ = geoms[0].HasZ()
			next.hasM = geoms[0].HasM()
		}
	}
	return next, nil
}
