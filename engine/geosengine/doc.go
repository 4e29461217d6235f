// Package geosengine implements the geounion Engine on top of GEOS, via
// github.com/twpayne/go-geos. This is the same geometry backend that powers
// the reference union aggregates in spatial databases, including the
// precision-aware (grid-snapped) unary union the accumulator relies on.
// Each Engine owns one geos.Context, which serves as the group-scoped arena
// from which every geometry of an aggregation group is allocated.
package geosengine
