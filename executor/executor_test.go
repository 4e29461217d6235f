package executor

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"github.com/go-geounion/geounion"
	"github.com/go-geounion/geounion/internal/testengine"
	"github.com/go-geounion/geounion/union"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func feed(geoms []geounion.Geometry) <-chan geounion.Geometry {
	ch := make(chan geounion.Geometry)
	go func() {
		defer close(ch)
		for _, g := range geoms {
			ch <- g
		}
	}()
	return ch
}

func stripGeoms(n int) []geounion.Geometry {
	geoms := make([]geounion.Geometry, n)
	for i := range geoms {
		geoms[i] = testengine.Rect(0, i, 0, 1, 1)
	}
	return geoms
}

func directCells(t *testing.T, e *testengine.Engine, geoms []geounion.Geometry) []testengine.Cell {
	t.Helper()
	s := union.NewState(e)
	for _, g := range geoms {
		require.Nil(t, s.Accumulate(g, geounion.UnsetGridSize))
	}
	result, err := s.Finalize()
	require.Nil(t, err)
	return result.(*testengine.Geom).Cells()
}

func TestAggregateMatchesSingleState(t *testing.T) {
	e := testengine.New()
	geoms := stripGeoms(40)
	want := directCells(t, e, geoms)

	for _, workers := range []int{1, 2, 5} {
		exec := New(e, &Conf{NumWorkers: workers, LogLevel: 99})
		result, err := exec.Aggregate(context.Background(), feed(geoms))
		require.Nil(t, err)
		require.NotNil(t, result)
		require.Equal(t, want, result.(*testengine.Geom).Cells())
	}
}

func TestAggregateAcrossTransferBoundary(t *testing.T) {
	e := testengine.New()
	geoms := stripGeoms(25)
	want := directCells(t, e, geoms)

	exec := New(e, &Conf{NumWorkers: 3, TransferStates: true, LogLevel: 99})
	result, err := exec.Aggregate(context.Background(), feed(geoms))
	require.Nil(t, err)
	require.Equal(t, want, result.(*testengine.Geom).Cells())
}

func TestAggregateCompactAfterMerge(t *testing.T) {
	e := testengine.New()
	geoms := stripGeoms(25)
	want := directCells(t, e, geoms)

	exec := New(e, &Conf{NumWorkers: 4, TransferStates: true, CompactAfterMerge: true, LogLevel: 99})
	result, err := exec.Aggregate(context.Background(), feed(geoms))
	require.Nil(t, err)
	require.Equal(t, want, result.(*testengine.Geom).Cells())
}

func TestAggregateEmptyStream(t *testing.T) {
	e := testengine.New()
	exec := New(e, &Conf{NumWorkers: 2, LogLevel: 99})
	result, err := exec.Aggregate(context.Background(), feed(nil))
	require.Nil(t, err)
	require.Nil(t, result)
}

func TestAggregateAppliesGridSize(t *testing.T) {
	e := testengine.New()
	exec := New(e, &Conf{NumWorkers: 1, GridSize: 2.5, LogLevel: 99})
	_, err := exec.Aggregate(context.Background(), feed(stripGeoms(3)))
	require.Nil(t, err)
	require.Equal(t, 2.5, e.LastGridSize)
}

func TestAggregateHonorsCancellation(t *testing.T) {
	e := testengine.New()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	ch := make(chan geounion.Geometry)
	defer close(ch)
	exec := New(e, &Conf{NumWorkers: 2, LogLevel: 99})
	_, err := exec.Aggregate(ctx, ch)
	require.Equal(t, context.Canceled, err)
}

func TestExecutorHasStableID(t *testing.T) {
	e := testengine.New()
	exec := New(e, nil)
	require.NotEmpty(t, exec.ID())
	require.Equal(t, exec.ID(), exec.ID())
}
