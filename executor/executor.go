package executor

import (
	"bytes"
	"context"
	"fmt"
	"log"

	uuid "github.com/gofrs/uuid"
	"github.com/hashicorp/go-multierror"
	"golang.org/x/sync/errgroup"

	"github.com/go-geounion/geounion"
	"github.com/go-geounion/geounion/logging"
	"github.com/go-geounion/geounion/union"
)

// Conf configures the execution of one aggregation group
type Conf struct {
	NumWorkers           int     // number of parallel accumulator states (default 1)
	GridSize             float64 // grid size supplied with every append; non-positive means full precision
	TransferStates       bool    // iff true, worker results cross a serialize/transfer/deserialize boundary before combining
	CompactAfterMerge    bool    // iff true, re-run clustering reduction on the combined state before finalizing
	IgnoreGeometryErrors bool    // iff true, log append errors instead of aborting the group
	LogLevel             int     // minimum logging.Level to emit
}

// An Executor drives the aggregation call-ordering contract for one group:
// appends on the workers, combines on the coordinator, one finalize.
type Executor struct {
	id     string
	engine geounion.Engine
	conf   *Conf
}

// New creates an Executor for aggregation groups against the given engine.
func New(engine geounion.Engine, conf *Conf) *Executor {
	if engine == nil {
		panic("executor: New called with a nil engine")
	}
	if conf == nil {
		conf = &Conf{}
	}
	if conf.NumWorkers < 1 {
		conf.NumWorkers = 1
	}
	id, err := uuid.NewV4()
	if err != nil {
		log.Fatalf("failed to generate UUID: %v", err)
	}
	return &Executor{id: id.String(), engine: engine, conf: conf}
}

// ID returns this Executor's unique identifier.
func (e *Executor) ID() string {
	return e.id
}

// Aggregate consumes the geometry stream and returns its union, or
// (nil, nil) when the stream was empty. Workers pull from the stream
// concurrently, so the partitioning of geometries across workers is
// nondeterministic; the final coverage never depends on it.
func (e *Executor) Aggregate(ctx context.Context, geoms <-chan geounion.Geometry) (geounion.Geometry, error) {
	states := make([]*union.State, e.conf.NumWorkers)
	g, gctx := errgroup.WithContext(ctx)
	for w := 0; w < e.conf.NumWorkers; w++ {
		w := w
		g.Go(func() error {
			state := union.NewState(e.engine)
			states[w] = state
			var ignored *multierror.Error
			for {
				select {
				case <-gctx.Done():
					return gctx.Err()
				case geom, ok := <-geoms:
					if !ok {
						if ignored != nil {
							e.logf(logging.WarnLevel, "worker %d ignored %d geometry errors: %v", w, len(ignored.Errors), ignored)
						}
						return nil
					}
					if err := state.Accumulate(geom, e.conf.GridSize); err != nil {
						if !e.conf.IgnoreGeometryErrors {
							return fmt.Errorf("worker %d: %w", w, err)
						}
						ignored = multierror.Append(ignored, err)
					}
				}
			}
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	if e.conf.TransferStates {
		for w := range states {
			restored, err := e.transfer(states[w])
			if err != nil {
				return nil, fmt.Errorf("transferring worker %d state: %w", w, err)
			}
			states[w] = restored
		}
	}

	result := states[0]
	for _, state := range states[1:] {
		if err := result.Merge(state); err != nil {
			return nil, err
		}
	}
	if e.conf.CompactAfterMerge {
		if err := result.Compact(); err != nil {
			return nil, err
		}
		e.logf(logging.DebugLevel, "compacted combined state to %d geometries", result.Len())
	}
	e.logf(logging.InfoLevel, "finalizing group with %d geometries", result.Len())
	return result.Finalize()
}

// transfer pushes one worker state across the serialize/frame/deserialize
// boundary, the way a distributed host would move it between processes.
func (e *Executor) transfer(state *union.State) (*union.State, error) {
	payload, err := state.ToBytes()
	if err != nil {
		return nil, err
	}
	var frame bytes.Buffer
	if err := EncodeFrame(&frame, payload); err != nil {
		return nil, err
	}
	received, err := DecodeFrame(&frame)
	if err != nil {
		return nil, err
	}
	restored, err := union.NewState(e.engine).FromBytes(received)
	if err != nil {
		return nil, err
	}
	return restored.(*union.State), nil
}

// logf emits a log line iff the configured level admits it.
func (e *Executor) logf(level int, format string, args ...interface{}) {
	if level < e.conf.LogLevel {
		return
	}
	log.Printf("[%s] executor %s: %s", logging.LogLevelToString(level), e.id, fmt.Sprintf(format, args...))
}
