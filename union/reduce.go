package union

import (
	"fmt"
	"sort"

	"github.com/go-geounion/geounion"
)

// reduceClusters merges spatially-contiguous geometries into fewer parts
// with the same total coverage. The sequence is stably sorted into spatial
// locality order, then swept once: geometries whose bounding boxes overlap
// the running box of the current run stay in the run, and each completed
// run of two or more members is replaced by its grid-size-aware partial
// union. The returned sequence replaces the input, whose members are
// consumed. Cost is O(n log n) for the sort plus one engine union call per
// multi-member run.
func reduceClusters(engine geounion.Engine, geoms []geounion.Geometry, gridSize float64) ([]geounion.Geometry, error) {
	if len(geoms) < 2 {
		return geoms, nil
	}
	sortByLocality(geoms)

	out := make([]geounion.Geometry, 0, len(geoms))
	runStart := 0
	var runBox geounion.BBox
	haveRunBox := false

	// One extra pass with no element flushes the final run.
	for i := 0; i <= len(geoms); i++ {
		var cur geounion.Geometry
		var curBox geounion.BBox
		curHasBox := false
		if i < len(geoms) {
			cur = geoms[i]
			curBox, curHasBox = cur.BBox()
		}

		// A run ends at the end of the sequence, at a geometry whose box
		// falls outside the running box, and at any boxless (empty)
		// geometry, which acts as a hard break point.
		if i > 0 && (cur == nil || !curHasBox || (haveRunBox && !runBox.Overlaps(curBox))) {
			if i-runStart > 1 {
				merged, err := engine.UnaryUnion(geoms[runStart:i], gridSize)
				if err != nil {
					return nil, fmt.Errorf("partial union of %d geometries: %w", i-runStart, err)
				}
				// Flatten a multi-part result directly into the output so
				// nesting depth never exceeds the input's.
				if merged.IsCollection() {
					out = append(out, merged.Parts()...)
				} else {
					out = append(out, merged)
				}
			} else {
				out = append(out, geoms[runStart])
			}
			if cur != nil {
				runStart = i
				runBox = curBox
				haveRunBox = curHasBox
			}
		} else if cur != nil && curHasBox {
			if haveRunBox {
				runBox = runBox.Extend(curBox)
			} else {
				runBox = curBox
				haveRunBox = true
			}
		}
	}
	return out, nil
}

// sortByLocality orders geometries so that spatial neighbors end up
// adjacent, using the Z-order hash of each bounding box. Boxless (empty)
// geometries compare equal to everything: their relative order is
// unspecified but stable, and the sweep breaks runs at them regardless of
// where they land.
func sortByLocality(geoms []geounion.Geometry) {
	sort.SliceStable(geoms, func(a, b int) bool {
		ba, okA := geoms[a].BBox()
		bb, okB := geoms[b].BBox()
		if !okA || !okB {
			return false
		}
		return ba.SortableHash(geoms[a].SRID()) < bb.SortableHash(geoms[b].SRID())
	})
}
