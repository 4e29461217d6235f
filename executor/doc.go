// Package executor provides an in-process reference implementation of the
// aggregation executor contract: it fans a geometry stream out to a fixed
// number of workers, each of which owns exactly one accumulator state and
// mutates it single-threadedly, then combines the workers' partial results
// and finalizes exactly once. Worker results can optionally cross a
// simulated process boundary - serialized, framed, compressed and
// checksummed - which is how a distributed host would move partial states
// between processes. Hosts with their own scheduling (a database executor,
// a job scheduler) should drive union.State directly instead and treat this
// package as documentation of the required call ordering.
package executor
