package reactor

import "github.com/itssanjib/reactor-core/types"

// emptySubscription is an already-terminated subscription handed to
// subscribers whose sequence fails or completes before any demand matters.
type emptySubscription struct{}

func (emptySubscription) Request(_ int64) {}
func (emptySubscription) Cancel()         {}

// SignalError reports err to s through the standard error-signal path: the
// subscriber receives an inert subscription followed by OnError.
//
// Used for failures that occur strictly before a real subscription is
// established (supplier or factory failures) so the subscriber observes a
// protocol-conformant sequence.
func SignalError[T any](s types.Subscriber[T], err error) {
	s.OnSubscribe(emptySubscription{})
	s.OnError(err)
}

// SignalComplete reports an empty, successfully completed sequence to s.
func SignalComplete[T any](s types.Subscriber[T]) {
	s.OnSubscribe(emptySubscription{})
	s.OnComplete()
}
