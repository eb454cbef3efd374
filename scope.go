package reactor

import "sync/atomic"

// scope owns one resource for one subscription attempt and decides, exactly
// once, when its cleanup action runs.
//
// The terminated flag is the only safety-critical shared state in the
// operator: the terminal-signal path and the cancellation path may run
// concurrently on different goroutines, and only the claim winner performs
// cleanup. All three wrapper variants embed a scope so the race logic exists
// in one place.
type scope[R any] struct {
	resource R
	cleanup  func(R) error
	eager    bool

	opts    *usingOptions
	scopeID string

	terminated atomic.Bool
}

func newScope[R any](resource R, cleanup func(R) error, opts *usingOptions) *scope[R] {
	sc := &scope[R]{
		resource: resource,
		cleanup:  cleanup,
		eager:    !opts.lazy,
		opts:     opts,
	}
	if opts.scopes != nil {
		sc.scopeID = opts.scopes.Add("setup", sc.eager)
		opts.metrics.RecordActiveScopes(opts.scopes.Len())
	}

	return sc
}

// claim attempts the single transition out of the active state and reports
// whether the caller won. The loser must not touch the resource.
func (sc *scope[R]) claim() bool {
	return sc.terminated.CompareAndSwap(false, true)
}

// release invokes the cleanup action and returns its error. Callers must
// have won claim first.
func (sc *scope[R]) release(path string) error {
	err := sc.cleanup(sc.resource)

	sc.opts.metrics.RecordCleanup(path, err == nil)
	if sc.opts.hooks.OnResourceReleased != nil {
		sc.opts.hooks.OnResourceReleased(err)
	}
	if sc.opts.scopes != nil {
		sc.opts.scopes.Remove(sc.scopeID)
		sc.opts.metrics.RecordActiveScopes(sc.opts.scopes.Len())
	}

	return err
}

// releaseDropping invokes the cleanup action on a path with no remaining
// delivery channel: any failure is dropped through the drop sinks and never
// surfaces to the consumer.
func (sc *scope[R]) releaseDropping(path string) {
	if err := sc.release(path); err != nil {
		sc.drop(err)
	}
}

// drop routes a failure that can no longer be delivered: the configured
// OnErrorDropped hook when set, the logger otherwise, and always the metrics
// counter.
func (sc *scope[R]) drop(err error) {
	sc.opts.metrics.RecordDroppedError()
	if sc.opts.hooks.OnErrorDropped != nil {
		sc.opts.hooks.OnErrorDropped(err)
		return
	}
	sc.opts.logger.Error("cleanup failure dropped: no delivery channel remains", "error", err)
}

func (sc *scope[R]) setVariant(variant string) {
	sc.opts.metrics.RecordSubscription(variant)
	if sc.opts.scopes != nil {
		sc.opts.scopes.SetVariant(sc.scopeID, variant)
	}
}
