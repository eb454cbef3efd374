package natsbridge

import (
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/itssanjib/reactor-core/types"
	"github.com/nats-io/nats.go/jetstream"
)

// Messages returns a Publisher emitting the messages of a JetStream pull
// consumer.
//
// Each subscription attempt runs its own pull loop: demand signalled via
// Request gates message delivery, Cancel stops the iterator. A closed
// iterator completes the sequence; iterator failures other than a missed
// heartbeat terminate it with an error. On a missed heartbeat the iterator
// is recreated and consumption resumes.
func Messages(consumer jetstream.Consumer, opts ...Option) types.Publisher[jetstream.Msg] {
	if consumer == nil {
		panic("natsbridge: consumer must not be nil")
	}

	return &messagesPublisher{consumer: consumer, opts: newOptions(opts)}
}

type messagesPublisher struct {
	consumer jetstream.Consumer
	opts     *options
}

func (p *messagesPublisher) Subscribe(s types.Subscriber[jetstream.Msg]) {
	sub := &messageSubscription{
		actual:   s,
		consumer: p.consumer,
		opts:     p.opts,
		notify:   make(chan struct{}, 1),
		done:     make(chan struct{}),
	}
	s.OnSubscribe(sub)

	go sub.loop()
}

// messageSubscription drives one pull loop per subscriber. The loop
// goroutine is the only emitter, so downstream signals are never delivered
// concurrently; demand and cancellation cross goroutines through atomics
// and channels.
type messageSubscription struct {
	actual   types.Subscriber[jetstream.Msg]
	consumer jetstream.Consumer
	opts     *options

	demand    atomic.Int64
	cancelled atomic.Bool
	notify    chan struct{}
	done      chan struct{}

	// Only touched by the loop goroutine.
	recreateDelay time.Duration

	mu   sync.Mutex
	iter jetstream.MessagesContext
}

func (m *messageSubscription) Request(n int64) {
	if n <= 0 {
		m.opts.logger.Warn("ignoring non-positive demand", "n", n)
		return
	}

	m.demand.Add(n)
	select {
	case m.notify <- struct{}{}:
	default:
	}
}

func (m *messageSubscription) Cancel() {
	if !m.cancelled.CompareAndSwap(false, true) {
		return
	}
	close(m.done)

	// Unblock a pull loop waiting in iter.Next.
	m.mu.Lock()
	iter := m.iter
	m.mu.Unlock()
	if iter != nil {
		iter.Stop()
	}
}

func (m *messageSubscription) setIter(iter jetstream.MessagesContext) {
	m.mu.Lock()
	m.iter = iter
	m.mu.Unlock()
}

func (m *messageSubscription) loop() {
	for {
		if m.cancelled.Load() {
			return
		}

		iter, err := m.consumer.Messages(
			jetstream.PullMaxMessages(m.opts.batch),
			jetstream.PullExpiry(m.opts.fetchExpiry),
			jetstream.PullHeartbeat(m.opts.fetchExpiry/2),
		)
		if err != nil {
			if !m.cancelled.Load() {
				m.actual.OnError(fmt.Errorf("creating message iterator: %w", err))
			}

			return
		}
		m.setIter(iter)

		if m.cancelled.Load() {
			// Cancel raced iterator creation before setIter.
			iter.Stop()
			return
		}

		delivered, recreate := m.drain(iter)
		iter.Stop()
		if !recreate {
			return
		}

		if delivered {
			m.recreateDelay = 0
		}
		m.recreateDelay = jitterBackoff(
			m.recreateDelay, m.opts.backoffBase, recreateBackoffMultiplier, m.opts.backoffCap, nil,
		)
		select {
		case <-m.done:
			return
		case <-time.After(m.recreateDelay):
		}
	}
}

// drain consumes the iterator until a terminal condition. recreate reports
// whether the iterator should be rebuilt (missed heartbeat); delivered
// reports whether any message got through, which resets the recreate
// backoff.
func (m *messageSubscription) drain(iter jetstream.MessagesContext) (delivered, recreate bool) {
	for {
		for m.demand.Load() == 0 {
			select {
			case <-m.done:
				return delivered, false
			case <-m.notify:
			}
		}

		msg, err := iter.Next()
		if err != nil {
			if m.cancelled.Load() {
				return delivered, false
			}

			switch {
			case errors.Is(err, jetstream.ErrMsgIteratorClosed):
				m.actual.OnComplete()
				return delivered, false
			case errors.Is(err, jetstream.ErrNoHeartbeat):
				m.opts.logger.Warn("message iterator missed heartbeat, recreating", "error", err)
				return delivered, true
			default:
				m.actual.OnError(fmt.Errorf("message iterator failed: %w", err))
				return delivered, false
			}
		}

		m.demand.Add(-1)
		m.actual.OnNext(msg)
		delivered = true
	}
}
