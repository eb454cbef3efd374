package testing

import (
	"sync"
	"testing"
	"time"

	"github.com/itssanjib/reactor-core/types"
)

// Probe is a recording Subscriber for tests.
//
// It captures every signal it receives, signals an initial demand on
// subscription, and exposes the Subscription for explicit demand and
// cancellation control. All accessors are safe for concurrent use.
type Probe[T any] struct {
	initialDemand int64

	mu        sync.Mutex
	sub       types.Subscription
	values    []T
	err       error
	completed bool
	terminals int

	terminal chan struct{}
	once     sync.Once
}

// Compile-time assertion that Probe implements Subscriber.
var _ types.Subscriber[int] = (*Probe[int])(nil)

// NewProbe creates a probe that requests initialDemand values on
// subscription. Pass a negative demand to subscribe without requesting.
func NewProbe[T any](initialDemand int64) *Probe[T] {
	return &Probe[T]{
		initialDemand: initialDemand,
		terminal:      make(chan struct{}),
	}
}

// OnSubscribe stores the subscription and signals the initial demand.
func (p *Probe[T]) OnSubscribe(s types.Subscription) {
	p.mu.Lock()
	p.sub = s
	p.mu.Unlock()

	if p.initialDemand >= 0 {
		s.Request(p.initialDemand)
	}
}

// OnNext records the value.
func (p *Probe[T]) OnNext(v T) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.values = append(p.values, v)
}

// OnError records the failure.
func (p *Probe[T]) OnError(err error) {
	p.mu.Lock()
	p.err = err
	p.terminals++
	p.mu.Unlock()
	p.once.Do(func() { close(p.terminal) })
}

// OnComplete records the completion.
func (p *Probe[T]) OnComplete() {
	p.mu.Lock()
	p.completed = true
	p.terminals++
	p.mu.Unlock()
	p.once.Do(func() { close(p.terminal) })
}

// Request signals more demand through the stored subscription.
func (p *Probe[T]) Request(n int64) {
	p.Subscription().Request(n)
}

// Cancel cancels the stored subscription.
func (p *Probe[T]) Cancel() {
	p.Subscription().Cancel()
}

// Subscription returns the subscription received in OnSubscribe, or nil
// before subscription.
func (p *Probe[T]) Subscription() types.Subscription {
	p.mu.Lock()
	defer p.mu.Unlock()

	return p.sub
}

// Values returns a copy of the recorded values.
func (p *Probe[T]) Values() []T {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]T, len(p.values))
	copy(out, p.values)

	return out
}

// Err returns the recorded terminal error, if any.
func (p *Probe[T]) Err() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	return p.err
}

// Completed reports whether OnComplete was received.
func (p *Probe[T]) Completed() bool {
	p.mu.Lock()
	defer p.mu.Unlock()

	return p.completed
}

// Terminals returns the number of terminal signals received. The protocol
// allows at most one; tests assert on this to catch double termination.
func (p *Probe[T]) Terminals() int {
	p.mu.Lock()
	defer p.mu.Unlock()

	return p.terminals
}

// AwaitTerminal blocks until a terminal signal arrives or the timeout
// elapses, failing the test on timeout.
func (p *Probe[T]) AwaitTerminal(t *testing.T, timeout time.Duration) {
	t.Helper()
	select {
	case <-p.terminal:
	case <-time.After(timeout):
		t.Fatal("probe: no terminal signal within timeout")
	}
}

// ConditionalProbe is a Probe that advertises the conditional-accept
// capability. Accept decides whether an offered value is kept; rejected
// values are recorded separately and do not consume demand upstream.
type ConditionalProbe[T any] struct {
	Probe[T]

	// Accept decides TryOnNext results. When nil every value is accepted.
	Accept func(v T) bool

	mu       sync.Mutex
	rejected []T
}

// Compile-time assertion that ConditionalProbe implements ConditionalSubscriber.
var _ types.ConditionalSubscriber[int] = (*ConditionalProbe[int])(nil)

// NewConditionalProbe creates a conditional probe that requests
// initialDemand values on subscription.
func NewConditionalProbe[T any](initialDemand int64, accept func(v T) bool) *ConditionalProbe[T] {
	return &ConditionalProbe[T]{
		Probe:  Probe[T]{initialDemand: initialDemand, terminal: make(chan struct{})},
		Accept: accept,
	}
}

// TryOnNext offers v and records it when accepted.
func (p *ConditionalProbe[T]) TryOnNext(v T) bool {
	if p.Accept == nil || p.Accept(v) {
		p.OnNext(v)
		return true
	}

	p.mu.Lock()
	defer p.mu.Unlock()
	p.rejected = append(p.rejected, v)

	return false
}

// Rejected returns a copy of the values rejected by Accept.
func (p *ConditionalProbe[T]) Rejected() []T {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]T, len(p.rejected))
	copy(out, p.rejected)

	return out
}
