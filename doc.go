// Package geounion contains the core components of geounion, a library for
// incrementally computing the geometric union of an unbounded stream of
// geometries inside a parallel, multi-stage aggregation pipeline. This root
// package defines the types which are employed during regular use of the
// library as well as in its extension - the Accumulator protocol driven by
// an aggregation executor, the Engine contract fulfilled by a geometry
// backend, and the BBox utilities shared by both - and is an excellent
// overview of geounion's key concepts. Concrete implementations live in the
// union, engine and executor subpackages.
package geounion
