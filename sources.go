package reactor

import (
	"sync/atomic"

	"github.com/itssanjib/reactor-core/types"
)

// FromSlice returns a Publisher emitting the items of the slice in order,
// then completing. The publisher is Fuseable: subscriptions grant
// synchronous fusion when requested, letting consumers drain items by Poll.
// Conditional subscribers get the accept-or-reject fast path, with rejected
// items not counted against demand.
func FromSlice[T any](items []T) types.Publisher[T] {
	return &slicePublisher[T]{items: items}
}

// Just returns a Publisher emitting the single value v, then completing.
func Just[T any](v T) types.Publisher[T] {
	return FromSlice([]T{v})
}

// Empty returns a Publisher that completes immediately without values.
func Empty[T any]() types.Publisher[T] {
	return emptyPublisher[T]{}
}

// Error returns a Publisher that fails immediately with err.
func Error[T any](err error) types.Publisher[T] {
	return errorPublisher[T]{err: err}
}

// FromFunc returns a Publisher that obtains values by calling next until it
// reports exhaustion with ok == false, then completing. Values are produced
// on demand: next is called at most once per requested value and never again
// after exhaustion or cancellation.
//
// The publisher is push-only and advertises no optional capability, so it
// always takes the plain protocol path.
func FromFunc[T any](next func() (T, bool)) types.Publisher[T] {
	if next == nil {
		panic("reactor: next must not be nil")
	}

	return &funcPublisher[T]{next: next}
}

// Hide wraps a Publisher so that no optional capability survives: the
// returned publisher is not Fuseable, its subscriptions are plain, and the
// wrapped source never observes a downstream conditional fast path. Useful
// to force the plain protocol path.
func Hide[T any](source types.Publisher[T]) types.Publisher[T] {
	if source == nil {
		panic("reactor: source must not be nil")
	}

	return &hidePublisher[T]{source: source}
}

type slicePublisher[T any] struct {
	items []T
}

var _ types.Fuseable = (*slicePublisher[int])(nil)

// Fuseable marks the publisher's subscriptions as QueueSubscription capable.
func (p *slicePublisher[T]) Fuseable() {}

func (p *slicePublisher[T]) Subscribe(s types.Subscriber[T]) {
	sub := &sliceSubscription[T]{actual: s, items: p.items}
	sub.cond, _ = s.(types.ConditionalSubscriber[T])
	s.OnSubscribe(sub)
}

// sliceSubscription serves one subscriber over a fixed slice. index is only
// mutated by the active emission path (drain loop or Poll), never by two
// goroutines at once; demand and cancellation are atomics because Request
// and Cancel may arrive from other goroutines.
type sliceSubscription[T any] struct {
	actual types.Subscriber[T]
	cond   types.ConditionalSubscriber[T]
	items  []T
	index  int

	requested atomic.Int64
	cancelled atomic.Bool
	fused     atomic.Bool
}

var _ types.QueueSubscription[int] = (*sliceSubscription[int])(nil)

func (s *sliceSubscription[T]) Request(n int64) {
	if n <= 0 {
		s.cancelled.Store(true)
		s.actual.OnError(types.ErrInvalidDemand)

		return
	}
	if s.fused.Load() {
		// Sync fusion: the consumer drains via Poll, push demand is ignored.
		return
	}

	prev := s.requested.Add(n) - n
	if prev > 0 {
		// Another call owns the drain loop; it will pick up the new demand.
		return
	}

	if n >= int64(len(s.items)-s.index) {
		s.fastPath()
	} else {
		s.slowPath(n)
	}
}

// fastPath emits the remainder without demand bookkeeping.
func (s *sliceSubscription[T]) fastPath() {
	for s.index < len(s.items) {
		if s.cancelled.Load() {
			return
		}
		v := s.items[s.index]
		s.index++
		if s.cond != nil {
			s.cond.TryOnNext(v)
		} else {
			s.actual.OnNext(v)
		}
	}
	if !s.cancelled.Load() {
		s.actual.OnComplete()
	}
}

// slowPath emits up to the signalled demand, re-reading demand accumulated
// by re-entrant Request calls before giving up the drain loop.
func (s *sliceSubscription[T]) slowPath(n int64) {
	var emitted int64
	for {
		for emitted != n && s.index < len(s.items) {
			if s.cancelled.Load() {
				return
			}
			v := s.items[s.index]
			s.index++
			if s.cond != nil {
				if s.cond.TryOnNext(v) {
					emitted++
				}
			} else {
				s.actual.OnNext(v)
				emitted++
			}
		}

		if s.index == len(s.items) {
			if !s.cancelled.Load() {
				s.actual.OnComplete()
			}

			return
		}

		n = s.requested.Load()
		if n == emitted {
			n = s.requested.Add(-emitted)
			if n == 0 {
				return
			}
			emitted = 0
		}
	}
}

func (s *sliceSubscription[T]) Cancel() {
	s.cancelled.Store(true)
}

func (s *sliceSubscription[T]) RequestFusion(requested types.FusionMode) types.FusionMode {
	if requested&types.FusionSync != 0 {
		s.fused.Store(true)
		return types.FusionSync
	}

	return types.FusionNone
}

func (s *sliceSubscription[T]) Poll() (T, bool, error) {
	if s.index < len(s.items) && !s.cancelled.Load() {
		v := s.items[s.index]
		s.index++

		return v, true, nil
	}

	var zero T

	return zero, false, nil
}

func (s *sliceSubscription[T]) IsEmpty() bool {
	return s.index >= len(s.items)
}

func (s *sliceSubscription[T]) Clear() {
	s.index = len(s.items)
}

type funcPublisher[T any] struct {
	next func() (T, bool)
}

func (p *funcPublisher[T]) Subscribe(s types.Subscriber[T]) {
	s.OnSubscribe(&funcSubscription[T]{actual: s, next: p.next})
}

// funcSubscription pulls values from the generator under the signalled
// demand. done is only mutated by the active drain loop; demand and
// cancellation are atomics because Request and Cancel may arrive from other
// goroutines.
type funcSubscription[T any] struct {
	actual types.Subscriber[T]
	next   func() (T, bool)
	done   bool

	requested atomic.Int64
	cancelled atomic.Bool
}

func (s *funcSubscription[T]) Request(n int64) {
	if n <= 0 {
		s.cancelled.Store(true)
		s.actual.OnError(types.ErrInvalidDemand)

		return
	}

	prev := s.requested.Add(n) - n
	if prev > 0 {
		// Another call owns the drain loop; it will pick up the new demand.
		return
	}

	s.drain(n)
}

// drain emits up to the signalled demand, re-reading demand accumulated by
// re-entrant Request calls before giving up the drain loop.
func (s *funcSubscription[T]) drain(n int64) {
	var emitted int64
	for {
		for emitted != n {
			if s.cancelled.Load() || s.done {
				return
			}
			v, ok := s.next()
			if !ok {
				s.done = true
				if !s.cancelled.Load() {
					s.actual.OnComplete()
				}

				return
			}
			s.actual.OnNext(v)
			emitted++
		}

		n = s.requested.Load()
		if n == emitted {
			n = s.requested.Add(-emitted)
			if n == 0 {
				return
			}
			emitted = 0
		}
	}
}

func (s *funcSubscription[T]) Cancel() {
	s.cancelled.Store(true)
}

type emptyPublisher[T any] struct{}

func (emptyPublisher[T]) Subscribe(s types.Subscriber[T]) {
	SignalComplete(s)
}

type errorPublisher[T any] struct {
	err error
}

func (p errorPublisher[T]) Subscribe(s types.Subscriber[T]) {
	SignalError(s, p.err)
}

type hidePublisher[T any] struct {
	source types.Publisher[T]
}

func (p *hidePublisher[T]) Subscribe(s types.Subscriber[T]) {
	p.source.Subscribe(&hideSubscriber[T]{actual: s})
}

// hideSubscriber forwards all signals while exposing only the plain
// Subscriber and Subscription surfaces in both directions.
type hideSubscriber[T any] struct {
	actual types.Subscriber[T]
	s      types.Subscription
}

func (h *hideSubscriber[T]) OnSubscribe(s types.Subscription) {
	h.s = s
	h.actual.OnSubscribe(h)
}

func (h *hideSubscriber[T]) OnNext(v T)        { h.actual.OnNext(v) }
func (h *hideSubscriber[T]) OnError(err error) { h.actual.OnError(err) }
func (h *hideSubscriber[T]) OnComplete()       { h.actual.OnComplete() }

func (h *hideSubscriber[T]) Request(n int64) { h.s.Request(n) }
func (h *hideSubscriber[T]) Cancel()         { h.s.Cancel() }
