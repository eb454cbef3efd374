package testing

import (
	"sync"
	"sync/atomic"

	"github.com/itssanjib/reactor-core/types"
)

// Source is a manually-driven hot publisher for tests.
//
// The test calls Emit, Complete and Fail to drive signals, which makes it
// possible to stage exact interleavings, including a terminal signal racing
// a downstream cancellation from another goroutine. Source accepts a single
// subscriber per instance and performs no demand buffering: emitted values
// are pushed regardless of outstanding demand.
type Source[T any] struct {
	mu  sync.Mutex
	sub types.Subscriber[T]

	requested atomic.Int64
	cancelled atomic.Bool
}

// Compile-time assertion that Source implements Publisher.
var _ types.Publisher[int] = (*Source[int])(nil)

// NewSource creates an idle source.
func NewSource[T any]() *Source[T] {
	return &Source[T]{}
}

// Subscribe attaches the subscriber. Panics when called twice; a test that
// needs several subscriptions should use several sources.
func (s *Source[T]) Subscribe(sub types.Subscriber[T]) {
	s.mu.Lock()
	if s.sub != nil {
		s.mu.Unlock()
		panic("testing: Source supports a single subscriber")
	}
	s.sub = sub
	s.mu.Unlock()

	sub.OnSubscribe(&sourceSubscription[T]{source: s})
}

// Emit pushes v to the subscriber.
func (s *Source[T]) Emit(v T) {
	s.subscriber().OnNext(v)
}

// Complete terminates the sequence successfully.
func (s *Source[T]) Complete() {
	s.subscriber().OnComplete()
}

// Fail terminates the sequence with err.
func (s *Source[T]) Fail(err error) {
	s.subscriber().OnError(err)
}

// Requested returns the total demand signalled so far.
func (s *Source[T]) Requested() int64 {
	return s.requested.Load()
}

// Cancelled reports whether the subscription was cancelled.
func (s *Source[T]) Cancelled() bool {
	return s.cancelled.Load()
}

func (s *Source[T]) subscriber() types.Subscriber[T] {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.sub == nil {
		panic("testing: Source has no subscriber")
	}

	return s.sub
}

type sourceSubscription[T any] struct {
	source *Source[T]
}

func (ss *sourceSubscription[T]) Request(n int64) {
	ss.source.requested.Add(n)
}

func (ss *sourceSubscription[T]) Cancel() {
	ss.source.cancelled.Store(true)
}
