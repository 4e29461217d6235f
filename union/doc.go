// Package union implements the geometry-union Accumulator: a state machine
// which collects geometries on behalf of one aggregation worker, merges
// with other workers' partial results, survives serialization across
// process boundaries, and produces the final union on demand. To bound the
// cost of carrying large geometry sets across aggregation boundaries, the
// state clusters spatially-contiguous geometries and partially unions them
// before serialization, so the expensive full union at finalize sees far
// fewer parts.
package union
