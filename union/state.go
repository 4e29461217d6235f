package union

import (
	"github.com/go-geounion/geounion"
	"github.com/go-geounion/geounion/errors"
)

// A State accumulates geometries for one aggregation group. Exactly one
// worker owns and mutates a State at a time, so no locking happens here;
// cross-worker ordering is the host executor's responsibility. Once a State
// is non-empty, all of its geometries share the srid and dimensionality of
// the first inserted geometry. Later insertions are assumed compatible -
// input validation happens upstream, before the first Accumulate.
type State struct {
	engine   geounion.Engine
	geoms    []geounion.Geometry
	gridSize float64
	srid     int
	hasZ     bool
	hasM     bool
	reduced  bool // set after a Merge or FromBytes; lets ToBytes skip re-clustering
}

// NewState returns an empty State built against the given Engine. The
// Engine is the explicit capability every entry point works through;
// passing nil is a programmer error and panics immediately rather than at
// first use.
func NewState(engine geounion.Engine) *State {
	if engine == nil {
		panic("union: NewState called with a nil engine")
	}
	return &State{
		engine:   engine,
		gridSize: geounion.UnsetGridSize,
	}
}

// Accumulate deep-copies a geometry into this State. The first geometry
// establishes the srid and dimensionality for the whole State. A positive
// gridSize overwrites the stored grid size ("last positive value wins");
// any other value leaves it untouched. A nil geometry contributes nothing
// but still applies the grid size, mirroring how an aggregate treats a
// null input row.
func (s *State) Accumulate(g geounion.Geometry, gridSize float64) error {
	if gridSize > 0 {
		s.gridSize = gridSize
	}
	if g == nil {
		return nil
	}
	if len(s.geoms) == 0 {
		s.srid = g.SRID()
		s.hasZ = g.HasZ()
		s.hasM = g.HasM()
	}
	s.geoms = append(s.geoms, g.Clone())
	return nil
}

// Merge consumes another State into this one: the other State's geometry
// sequence is concatenated onto this one's, ownership transfers, and the
// other State is left empty and must not be reused. Grid sizes follow the
// same last-positive-wins rule, applied as if the other State's value
// arrived last. The survivor is marked as having been reduced across
// workers. Merge is commutative and associative with respect to final
// coverage, so the executor may combine workers in any order or tree shape.
func (s *State) Merge(o geounion.Accumulator) error {
	other, ok := o.(*State)
	if !ok {
		return errors.IncompatibleAccumulatorError{}
	}
	if other.engine != s.engine {
		return errors.MismatchedEngineError{}
	}
	if len(other.geoms) > 0 {
		if len(s.geoms) == 0 {
			s.srid = other.srid
			s.hasZ = other.hasZ
			s.hasM = other.hasM
		}
		s.geoms = append(s.geoms, other.geoms...)
	}
	if other.gridSize > 0 {
		s.gridSize = other.gridSize
	}
	other.geoms = nil
	s.reduced = true
	return nil
}

// Finalize computes the grid-size-aware full union over whatever the State
// currently holds, reduced or not, and returns it. An empty State yields
// (nil, nil): a defined no-result outcome, not an error.
func (s *State) Finalize() (geounion.Geometry, error) {
	if len(s.geoms) == 0 {
		return nil, nil
	}
	return s.engine.UnaryUnion(s.geoms, s.gridSize)
}

// Compact re-runs clustering reduction in place, regardless of whether the
// State was already reduced. Coverage is preserved; only the internal
// partitioning changes. Useful after a chain of Merges, whose concatenated
// sequences are never re-clustered against each other automatically.
func (s *State) Compact() error {
	if len(s.geoms) < 2 {
		return nil
	}
	reduced, err := reduceClusters(s.engine, s.geoms, s.gridSize)
	if err != nil {
		return err
	}
	s.geoms = reduced
	return nil
}

// Len returns the number of geometries currently held by this State.
func (s *State) Len() int {
	return len(s.geoms)
}

// GridSize returns the stored grid size, or UnsetGridSize if none was ever
// supplied.
func (s *State) GridSize() float64 {
	return s.gridSize
}

// Reduced returns true iff this State resulted from a Merge or FromBytes,
// meaning ToBytes will skip clustering reduction.
func (s *State) Reduced() bool {
	return s.reduced
}
