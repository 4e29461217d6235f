package geounion

// UnsetGridSize is the sentinel grid size meaning "full precision, no
// snapping". Any non-positive grid size supplied to Accumulate is treated
// as unset and leaves the previously stored value untouched.
const UnsetGridSize = -1.0

// An Accumulator incrementally computes the union of a stream of
// geometries. One Accumulator is owned and mutated by exactly one worker at
// a time; cross-worker scheduling belongs to the host aggregation executor,
// which must issue zero or more Accumulate calls, then zero or more Merge
// calls, optionally one ToBytes/FromBytes transfer cycle, and exactly one
// terminal Finalize per aggregation group. Because Merge is commutative and
// associative with respect to final coverage, the executor may combine
// worker results in any order or tree shape.
type Accumulator interface {
	Accumulate(g Geometry, gridSize float64) error // Accumulate adds a geometry to this Accumulator; a positive gridSize overwrites the stored grid size
	Merge(o Accumulator) error                     // Merge consumes another Accumulator into this one, leaving it empty
	ToBytes() ([]byte, error)                      // ToBytes serializes this Accumulator for transfer across a process boundary
	FromBytes(buf []byte) (Accumulator, error)     // FromBytes produces a new Accumulator from serialized data
	Finalize() (Geometry, error)                   // Finalize computes the full union, or (nil, nil) when nothing was accumulated
}
