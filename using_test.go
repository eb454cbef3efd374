package reactor

import (
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	reactortest "github.com/itssanjib/reactor-core/testing"
	"github.com/itssanjib/reactor-core/types"
	"github.com/stretchr/testify/require"
)

// eventLog records observable ordering across cleanup and signal delivery.
type eventLog struct {
	mu     sync.Mutex
	events []string
}

func (l *eventLog) add(e string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.events = append(l.events, e)
}

func (l *eventLog) snapshot() []string {
	l.mu.Lock()
	defer l.mu.Unlock()
	out := make([]string, len(l.events))
	copy(out, l.events)

	return out
}

// orderedProbe appends terminal events to a shared log before recording them.
type orderedProbe[T any] struct {
	*reactortest.Probe[T]
	log *eventLog
}

func (p *orderedProbe[T]) OnError(err error) {
	p.log.add("error")
	p.Probe.OnError(err)
}

func (p *orderedProbe[T]) OnComplete() {
	p.log.add("complete")
	p.Probe.OnComplete()
}

func countingCleanup(count *atomic.Int32, err error) func(int) error {
	return func(int) error {
		count.Add(1)
		return err
	}
}

func supplierOf(v int) func() (int, error) {
	return func() (int, error) { return v, nil }
}

func sliceFactory(values ...string) func(int) (types.Publisher[string], error) {
	return func(int) (types.Publisher[string], error) {
		return FromSlice(values), nil
	}
}

func TestUsing_EndToEnd(t *testing.T) {
	var count atomic.Int32
	var seen atomic.Int64

	p := Using(
		supplierOf(42),
		func(r int) (types.Publisher[string], error) {
			return Just(fmt.Sprintf("%d-value", r)), nil
		},
		func(r int) error {
			count.Add(1)
			seen.Store(int64(r))

			return nil
		},
	)

	probe := reactortest.NewProbe[string](10)
	p.Subscribe(probe)
	probe.AwaitTerminal(t, time.Second)

	require.Equal(t, []string{"42-value"}, probe.Values())
	require.True(t, probe.Completed())
	require.NoError(t, probe.Err())
	require.EqualValues(t, 1, count.Load())
	require.EqualValues(t, 42, seen.Load())
}

func TestUsing_CleanupExactlyOncePerOutcome(t *testing.T) {
	outcomes := []struct {
		name  string
		drive func(src *reactortest.Source[string], probe *reactortest.Probe[string])
	}{
		{"complete", func(src *reactortest.Source[string], _ *reactortest.Probe[string]) {
			src.Emit("a")
			src.Complete()
		}},
		{"error", func(src *reactortest.Source[string], _ *reactortest.Probe[string]) {
			src.Fail(errors.New("boom"))
		}},
		{"cancel", func(_ *reactortest.Source[string], probe *reactortest.Probe[string]) {
			probe.Cancel()
		}},
	}

	for _, lazy := range []bool{false, true} {
		for _, tc := range outcomes {
			name := fmt.Sprintf("%s/eager=%v", tc.name, !lazy)
			t.Run(name, func(t *testing.T) {
				var count atomic.Int32
				src := reactortest.NewSource[string]()

				var opts []Option
				if lazy {
					opts = append(opts, WithLazyCleanup())
				}

				p := Using(
					supplierOf(1),
					func(int) (types.Publisher[string], error) { return src, nil },
					countingCleanup(&count, nil),
					opts...,
				)

				probe := reactortest.NewProbe[string](10)
				p.Subscribe(probe)
				tc.drive(src, probe)

				require.EqualValues(t, 1, count.Load())
			})
		}
	}
}

func TestUsing_ConditionalCleanupExactlyOnce(t *testing.T) {
	t.Run("complete", func(t *testing.T) {
		var count atomic.Int32

		p := Using(
			supplierOf(1),
			func(int) (types.Publisher[string], error) {
				return &plainSlicePublisher[string]{items: []string{"a", "b"}}, nil
			},
			countingCleanup(&count, nil),
		)

		probe := reactortest.NewConditionalProbe[string](10, nil)
		p.Subscribe(probe)
		probe.AwaitTerminal(t, time.Second)

		require.Equal(t, []string{"a", "b"}, probe.Values())
		require.EqualValues(t, 1, count.Load())
	})

	t.Run("cancel", func(t *testing.T) {
		var count atomic.Int32
		src := reactortest.NewSource[string]()

		p := Using(
			supplierOf(1),
			func(int) (types.Publisher[string], error) { return src, nil },
			countingCleanup(&count, nil),
		)

		probe := reactortest.NewConditionalProbe[string](10, nil)
		p.Subscribe(probe)
		probe.Cancel()
		probe.Cancel()

		require.True(t, src.Cancelled())
		require.EqualValues(t, 1, count.Load())
	})
}

func TestUsing_SupplierInvokedPerAttempt(t *testing.T) {
	var supplied atomic.Int32
	var count atomic.Int32

	p := Using(
		func() (int, error) { return int(supplied.Add(1)), nil },
		sliceFactory("v"),
		countingCleanup(&count, nil),
	)

	for range 3 {
		probe := reactortest.NewProbe[string](1)
		p.Subscribe(probe)
		probe.AwaitTerminal(t, time.Second)
	}

	require.EqualValues(t, 3, supplied.Load())
	require.EqualValues(t, 3, count.Load())
}

func TestUsing_SupplierFailure(t *testing.T) {
	supplyErr := errors.New("no resource")
	var count atomic.Int32

	p := Using(
		func() (int, error) { return 0, supplyErr },
		sliceFactory("unreachable"),
		countingCleanup(&count, nil),
	)

	probe := reactortest.NewProbe[string](1)
	p.Subscribe(probe)
	probe.AwaitTerminal(t, time.Second)

	require.Equal(t, supplyErr, probe.Err())
	require.EqualValues(t, 0, count.Load(), "no resource was created, no cleanup owed")
	require.Empty(t, probe.Values())
}

func TestUsing_FactoryFailureReleasesResource(t *testing.T) {
	factoryErr := errors.New("factory failed")
	var count atomic.Int32

	p := Using(
		supplierOf(7),
		func(int) (types.Publisher[string], error) { return nil, factoryErr },
		countingCleanup(&count, nil),
	)

	probe := reactortest.NewProbe[string](1)
	p.Subscribe(probe)
	probe.AwaitTerminal(t, time.Second)

	require.Equal(t, factoryErr, probe.Err())
	require.EqualValues(t, 1, count.Load())
}

func TestUsing_FactoryFailureWithCleanupFailure(t *testing.T) {
	factoryErr := errors.New("factory failed")
	cleanupErr := errors.New("cleanup failed")
	var count atomic.Int32

	p := Using(
		supplierOf(7),
		func(int) (types.Publisher[string], error) { return nil, factoryErr },
		countingCleanup(&count, cleanupErr),
	)

	probe := reactortest.NewProbe[string](1)
	p.Subscribe(probe)
	probe.AwaitTerminal(t, time.Second)

	err := probe.Err()
	require.Equal(t, factoryErr, Primary(err), "factory failure remains the reported cause")
	require.Equal(t, []error{cleanupErr}, SuppressedOf(err))
	require.EqualValues(t, 1, count.Load())
}

func TestUsing_NilFactoryResultIsContractViolation(t *testing.T) {
	var count atomic.Int32

	p := Using(
		supplierOf(7),
		func(int) (types.Publisher[string], error) { return nil, nil },
		countingCleanup(&count, nil),
	)

	probe := reactortest.NewProbe[string](1)
	p.Subscribe(probe)
	probe.AwaitTerminal(t, time.Second)

	require.ErrorIs(t, probe.Err(), ErrNilSourceFactoryResult)
	require.EqualValues(t, 1, count.Load())
}

func TestUsing_EagerOrderingOnComplete(t *testing.T) {
	log := &eventLog{}

	p := Using(
		supplierOf(1),
		sliceFactory("v"),
		func(int) error {
			log.add("cleanup")
			return nil
		},
	)

	probe := &orderedProbe[string]{Probe: reactortest.NewProbe[string](10), log: log}
	p.Subscribe(probe)
	probe.AwaitTerminal(t, time.Second)

	require.Equal(t, []string{"cleanup", "complete"}, log.snapshot())
}

func TestUsing_LazyOrderingOnComplete(t *testing.T) {
	log := &eventLog{}

	p := Using(
		supplierOf(1),
		sliceFactory("v"),
		func(int) error {
			log.add("cleanup")
			return nil
		},
		WithLazyCleanup(),
	)

	probe := &orderedProbe[string]{Probe: reactortest.NewProbe[string](10), log: log}
	p.Subscribe(probe)
	probe.AwaitTerminal(t, time.Second)

	require.Equal(t, []string{"complete", "cleanup"}, log.snapshot())
}

func TestUsing_EagerCleanupFailureOverridesCompletion(t *testing.T) {
	cleanupErr := errors.New("cleanup failed")

	p := Using(
		supplierOf(1),
		sliceFactory("v"),
		func(int) error { return cleanupErr },
	)

	probe := reactortest.NewProbe[string](10)
	p.Subscribe(probe)
	probe.AwaitTerminal(t, time.Second)

	require.False(t, probe.Completed())
	require.Equal(t, cleanupErr, probe.Err())
	require.Equal(t, []string{"v"}, probe.Values(), "values before the terminal are unaffected")
}

func TestUsing_EagerCleanupFailureOverridesError(t *testing.T) {
	streamErr := errors.New("stream failed")
	cleanupErr := errors.New("cleanup failed")
	src := reactortest.NewSource[string]()

	p := Using(
		supplierOf(1),
		func(int) (types.Publisher[string], error) { return src, nil },
		func(int) error { return cleanupErr },
	)

	probe := reactortest.NewProbe[string](10)
	p.Subscribe(probe)
	src.Fail(streamErr)

	err := probe.Err()
	require.Equal(t, cleanupErr, Primary(err), "cleanup failure becomes the reported cause")
	require.Equal(t, []error{streamErr}, SuppressedOf(err), "original failure stays reachable")
}

func TestUsing_LazyCleanupFailureIsDropped(t *testing.T) {
	cleanupErr := errors.New("cleanup failed")
	var dropped atomic.Value

	p := Using(
		supplierOf(1),
		sliceFactory("v"),
		func(int) error { return cleanupErr },
		WithLazyCleanup(),
		WithHooks(&types.Hooks{
			OnErrorDropped: func(err error) { dropped.Store(err) },
		}),
	)

	probe := reactortest.NewProbe[string](10)
	p.Subscribe(probe)
	probe.AwaitTerminal(t, time.Second)

	require.True(t, probe.Completed())
	require.NoError(t, probe.Err(), "lazy cleanup failures never reach the consumer")
	require.Equal(t, cleanupErr, dropped.Load())
}

func TestUsing_CancelCleanupFailureIsDropped(t *testing.T) {
	cleanupErr := errors.New("cleanup failed")
	var dropped atomic.Value
	src := reactortest.NewSource[string]()

	p := Using(
		supplierOf(1),
		func(int) (types.Publisher[string], error) { return src, nil },
		func(int) error { return cleanupErr },
		WithHooks(&types.Hooks{
			OnErrorDropped: func(err error) { dropped.Store(err) },
		}),
	)

	probe := reactortest.NewProbe[string](10)
	p.Subscribe(probe)
	probe.Cancel()

	require.True(t, src.Cancelled(), "cancellation propagates to the inner stream")
	require.NoError(t, probe.Err())
	require.Equal(t, cleanupErr, dropped.Load())
}

func TestUsing_CancelAfterTerminalIsNoOp(t *testing.T) {
	var count atomic.Int32
	src := reactortest.NewSource[string]()

	p := Using(
		supplierOf(1),
		func(int) (types.Publisher[string], error) { return src, nil },
		countingCleanup(&count, nil),
	)

	probe := reactortest.NewProbe[string](10)
	p.Subscribe(probe)
	src.Complete()
	probe.Cancel()

	require.EqualValues(t, 1, count.Load())
	require.False(t, src.Cancelled(), "the losing cancel does not reach the inner stream")
}

func TestUsing_MultiValueStream(t *testing.T) {
	var count atomic.Int32

	p := Using(
		supplierOf(1),
		sliceFactory("a", "b", "c"),
		countingCleanup(&count, nil),
	)

	probe := reactortest.NewProbe[string](10)
	p.Subscribe(probe)
	probe.AwaitTerminal(t, time.Second)

	require.Equal(t, []string{"a", "b", "c"}, probe.Values())
	require.True(t, probe.Completed())
	require.EqualValues(t, 1, count.Load())
}

func TestUsing_RequestForwarding(t *testing.T) {
	src := reactortest.NewSource[string]()

	p := Using(
		supplierOf(1),
		func(int) (types.Publisher[string], error) { return src, nil },
		func(int) error { return nil },
	)

	probe := reactortest.NewProbe[string](5)
	p.Subscribe(probe)
	probe.Request(3)

	require.EqualValues(t, 8, src.Requested())
	src.Complete()
}

func TestUsing_Hooks(t *testing.T) {
	var acquired, released atomic.Int32

	p := Using(
		supplierOf(1),
		sliceFactory("v"),
		func(int) error { return nil },
		WithHooks(&types.Hooks{
			OnResourceAcquired: func() { acquired.Add(1) },
			OnResourceReleased: func(err error) {
				require.NoError(t, err)
				released.Add(1)
			},
		}),
	)

	probe := reactortest.NewProbe[string](10)
	p.Subscribe(probe)
	probe.AwaitTerminal(t, time.Second)

	require.EqualValues(t, 1, acquired.Load())
	require.EqualValues(t, 1, released.Load())
}

func TestUsing_NilArgumentsPanic(t *testing.T) {
	supplier := supplierOf(1)
	factory := sliceFactory("v")
	cleanup := func(int) error { return nil }

	require.PanicsWithValue(t, "reactor: resourceSupplier must not be nil", func() {
		Using[string, int](nil, factory, cleanup)
	})
	require.PanicsWithValue(t, "reactor: sourceFactory must not be nil", func() {
		Using[string, int](supplier, nil, cleanup)
	})
	require.PanicsWithValue(t, "reactor: resourceCleanup must not be nil", func() {
		Using(supplier, factory, nil)
	})
}

func TestUsing_ScopeTracking(t *testing.T) {
	src := reactortest.NewSource[string]()

	p := Using(
		supplierOf(1),
		func(int) (types.Publisher[string], error) { return src, nil },
		func(int) error { return nil },
		WithScopeTracking(),
	)

	before := len(ActiveScopes())

	probe := reactortest.NewProbe[string](10)
	p.Subscribe(probe)

	scopes := ActiveScopes()
	require.Len(t, scopes, before+1)
	last := scopes[len(scopes)-1]
	require.Equal(t, "plain", last.Variant)
	require.True(t, last.Eager)

	src.Complete()
	require.Len(t, ActiveScopes(), before)
}
