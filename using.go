package reactor

import "github.com/itssanjib/reactor-core/types"

// Using builds a Publisher that creates a resource per subscription attempt,
// streams the sequence derived from it, and guarantees the resource is
// released exactly once regardless of how the sequence ends: normal
// completion, error, or consumer cancellation.
//
// Per Subscribe call:
//   - resourceSupplier is invoked exactly once (never memoized across
//     attempts). A supplier failure is signalled to the subscriber and no
//     cleanup is owed.
//   - sourceFactory derives the value stream from the live resource. A
//     factory failure, or a nil Publisher result (a contract violation,
//     reported as ErrNilSourceFactoryResult), releases the resource
//     immediately; if the release also fails, its error is attached as
//     suppressed to the factory failure, which remains the reported cause.
//   - on success, exclusive ownership of the resource passes to the
//     subscription's terminal state machine, which performs the single
//     cleanup per the configured policy (eager by default; see
//     WithLazyCleanup).
//
// resourceCleanup is invoked at most once per resource, on exactly one
// goroutine, even when cancellation races with a terminal signal. It is
// assumed synchronous and fast; no timeout is applied around it.
//
// All three arguments are required. Passing nil for any of them is a usage
// error reported by panic at construction time.
func Using[T, R any](
	resourceSupplier func() (R, error),
	sourceFactory func(R) (types.Publisher[T], error),
	resourceCleanup func(R) error,
	opts ...Option,
) types.Publisher[T] {
	if resourceSupplier == nil {
		panic("reactor: resourceSupplier must not be nil")
	}
	if sourceFactory == nil {
		panic("reactor: sourceFactory must not be nil")
	}
	if resourceCleanup == nil {
		panic("reactor: resourceCleanup must not be nil")
	}

	return &usingPublisher[T, R]{
		supplier: resourceSupplier,
		factory:  sourceFactory,
		cleanup:  resourceCleanup,
		opts:     newUsingOptions(opts),
	}
}

type usingPublisher[T, R any] struct {
	supplier func() (R, error)
	factory  func(R) (types.Publisher[T], error)
	cleanup  func(R) error
	opts     *usingOptions
}

// Subscribe runs one subscription attempt: create the resource, derive the
// inner stream, select the most capable wrapper variant, and hand the
// wrapper exclusive ownership of the resource.
func (u *usingPublisher[T, R]) Subscribe(actual types.Subscriber[T]) {
	if actual == nil {
		panic("reactor: subscriber must not be nil")
	}

	resource, err := u.supplier()
	if err != nil {
		u.opts.metrics.RecordSupplyFailure()
		SignalError(actual, err)

		return
	}
	if u.opts.hooks.OnResourceAcquired != nil {
		u.opts.hooks.OnResourceAcquired()
	}

	sc := newScope(resource, u.cleanup, u.opts)

	source, err := u.factory(resource)
	if err == nil && source == nil {
		err = types.ErrNilSourceFactoryResult
	}
	if err != nil {
		// Setup-phase failure: the subscription protocol has not started, so
		// cleanup always happens here regardless of the eager/lazy policy.
		u.opts.metrics.RecordFactoryFailure()
		if sc.claim() {
			if cerr := sc.release(types.CleanupPathSetup); cerr != nil {
				err = types.AddSuppressed(err, cerr)
			}
		}
		SignalError(actual, err)

		return
	}

	// Capability negotiation, in priority order. Pure selection: the
	// resource is not touched here.
	if isFuseable(source) {
		sc.setVariant(variantFused)
		source.Subscribe(&usingFuseableSubscriber[T, R]{actual: actual, scope: sc})

		return
	}
	if cond, ok := actual.(types.ConditionalSubscriber[T]); ok {
		sc.setVariant(variantConditional)
		source.Subscribe(&usingConditionalSubscriber[T, R]{
			usingSubscriber: usingSubscriber[T, R]{actual: cond, scope: sc},
			cond:            cond,
		})

		return
	}
	sc.setVariant(variantPlain)
	source.Subscribe(&usingSubscriber[T, R]{actual: actual, scope: sc})
}

// Wrapper variant labels reported through metrics and scope tracking.
const (
	variantPlain       = "plain"
	variantConditional = "conditional"
	variantFused       = "fused"
)

func isFuseable[T any](p types.Publisher[T]) bool {
	_, ok := p.(types.Fuseable)
	return ok
}
