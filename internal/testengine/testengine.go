// Package testengine provides a deterministic, dependency-free Engine for
// unit tests. Geometries are sets of integer unit cells: union is exact set
// union, multi-part results are 4-connected components, and coverage
// comparisons never suffer floating-point noise. The production engine
// lives in engine/geosengine; this one exists so the accumulator state
// machine can be verified without a native geometry backend.
package testengine

import (
	"fmt"
	"sort"

	"github.com/go-geounion/geounion"
)

// A Cell is one unit square of coverage, spanning [X,X+1) x [Y,Y+1).
type Cell struct{ X, Y int }

// An Engine is a cell-set geometry backend. It records how it was driven
// so tests can assert on union call counts and grid sizes.
type Engine struct {
	UnionCalls   int     // number of UnaryUnion invocations
	LastGridSize float64 // grid size passed to the most recent UnaryUnion
}

// New returns a fresh test Engine.
func New() *Engine {
	return &Engine{LastGridSize: geounion.UnsetGridSize}
}

// A Geom is a cell-set geometry. An atomic Geom holds its cells directly;
// a multi-part Geom additionally records the partition of its cells into
// members.
type Geom struct {
	srid    int
	cells   map[Cell]struct{}
	members []map[Cell]struct{} // nil for atomic geometries
}

// NewGeom builds an atomic geometry from explicit cells.
func NewGeom(srid int, cells ...Cell) *Geom {
	g := &Geom{srid: srid, cells: make(map[Cell]struct{}, len(cells))}
	for _, c := range cells {
		g.cells[c] = struct{}{}
	}
	return g
}

// Rect builds an atomic geometry covering a w x h block of cells anchored
// at (x, y).
func Rect(srid, x, y, w, h int) *Geom {
	g := &Geom{srid: srid, cells: make(map[Cell]struct{}, w*h)}
	for i := 0; i < w; i++ {
		for j := 0; j < h; j++ {
			g.cells[Cell{X: x + i, Y: y + j}] = struct{}{}
		}
	}
	return g
}

// Empty builds an empty geometry, which has no bounding box.
func Empty(srid int) *Geom {
	return &Geom{srid: srid, cells: map[Cell]struct{}{}}
}

// Multi builds a multi-part geometry from atomic members.
func Multi(srid int, members ...*Geom) *Geom {
	g := &Geom{srid: srid, cells: map[Cell]struct{}{}}
	for _, m := range members {
		part := make(map[Cell]struct{}, len(m.cells))
		for c := range m.cells {
			part[c] = struct{}{}
			g.cells[c] = struct{}{}
		}
		g.members = append(g.members, part)
	}
	return g
}

// SRID returns the spatial reference id this geometry is expressed in.
func (g *Geom) SRID() int { return g.srid }

// HasZ returns false; cell geometries are strictly two-dimensional.
func (g *Geom) HasZ() bool { return false }

// HasM returns false; cell geometries carry no measure ordinates.
func (g *Geom) HasM() bool { return false }

// IsEmpty returns true iff this geometry covers no cells.
func (g *Geom) IsEmpty() bool { return len(g.cells) == 0 }

// BBox returns the bounding box of the covered cells, or false when empty.
func (g *Geom) BBox() (geounion.BBox, bool) {
	if len(g.cells) == 0 {
		return geounion.BBox{}, false
	}
	first := true
	var b geounion.BBox
	for c := range g.cells {
		cb := geounion.BBox{
			MinX: float64(c.X), MinY: float64(c.Y),
			MaxX: float64(c.X + 1), MaxY: float64(c.Y + 1),
		}
		if first {
			b = cb
			first = false
		} else {
			b = b.Extend(cb)
		}
	}
	return b, true
}

// Clone deep-copies this geometry.
func (g *Geom) Clone() geounion.Geometry {
	n := &Geom{srid: g.srid, cells: make(map[Cell]struct{}, len(g.cells))}
	for c := range g.cells {
		n.cells[c] = struct{}{}
	}
	for _, m := range g.members {
		part := make(map[Cell]struct{}, len(m))
		for c := range m {
			part[c] = struct{}{}
		}
		n.members = append(n.members, part)
	}
	return n
}

// IsCollection returns true iff this geometry has more than one part.
func (g *Geom) IsCollection() bool { return len(g.members) > 1 }

// Parts flattens this geometry one level into standalone members. Atomic
// geometries yield themselves as their only part.
func (g *Geom) Parts() []geounion.Geometry {
	if len(g.members) == 0 {
		return []geounion.Geometry{g}
	}
	parts := make([]geounion.Geometry, 0, len(g.members))
	for _, m := range g.members {
		p := &Geom{srid: g.srid, cells: make(map[Cell]struct{}, len(m))}
		for c := range m {
			p.cells[c] = struct{}{}
		}
		parts = append(parts, p)
	}
	return parts
}

// Cells returns the covered cells in deterministic order, for assertions.
func (g *Geom) Cells() []Cell {
	cells := make([]Cell, 0, len(g.cells))
	for c := range g.cells {
		cells = append(cells, c)
	}
	sort.Slice(cells, func(i, j int) bool {
		if cells[i].X != cells[j].X {
			return cells[i].X < cells[j].X
		}
		return cells[i].Y < cells[j].Y
	})
	return cells
}

// NumParts returns how many parts this geometry has.
func (g *Geom) NumParts() int {
	if len(g.members) == 0 {
		return 1
	}
	return len(g.members)
}

// UnaryUnion merges the cell sets of all inputs. Connected cells collapse
// into one part; a result with multiple 4-connected components comes back
// as a multi-part geometry. Cells are unit-aligned already, so the grid
// size is recorded but performs no extra snapping.
func (e *Engine) UnaryUnion(geoms []geounion.Geometry, gridSize float64) (geounion.Geometry, error) {
	e.UnionCalls++
	e.LastGridSize = gridSize
	if len(geoms) == 0 {
		return nil, fmt.Errorf("union of zero geometries")
	}
	merged := make(map[Cell]struct{})
	srid := 0
	for i, g := range geoms {
		cg, err := toGeom(g)
		if err != nil {
			return nil, err
		}
		if i == 0 {
			srid = cg.srid
		}
		for c := range cg.cells {
			merged[c] = struct{}{}
		}
	}
	comps := components(merged)
	out := &Geom{srid: srid, cells: merged}
	if len(comps) > 1 {
		out.members = comps
	}
	return out, nil
}

// components partitions a cell set into its 4-connected components.
func components(cells map[Cell]struct{}) []map[Cell]struct{} {
	seen := make(map[Cell]struct{}, len(cells))
	var comps []map[Cell]struct{}
	for start := range cells {
		if _, ok := seen[start]; ok {
			continue
		}
		comp := make(map[Cell]struct{})
		queue := []Cell{start}
		seen[start] = struct{}{}
		for len(queue) > 0 {
			c := queue[0]
			queue = queue[1:]
			comp[c] = struct{}{}
			for _, n := range []Cell{{c.X + 1, c.Y}, {c.X - 1, c.Y}, {c.X, c.Y + 1}, {c.X, c.Y - 1}} {
				if _, ok := cells[n]; !ok {
					continue
				}
				if _, ok := seen[n]; ok {
					continue
				}
				seen[n] = struct{}{}
				queue = append(queue, n)
			}
		}
		comps = append(comps, comp)
	}
	return comps
}

// toGeom unwraps the concrete cell geometry behind the interface.
func toGeom(g geounion.Geometry) (*Geom, error) {
	cg, ok := g.(*Geom)
	if !ok {
		return nil, fmt.Errorf("geometry %T is not a testengine geometry", g)
	}
	return cg, nil
}
