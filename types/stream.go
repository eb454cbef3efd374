package types

// Subscriber receives signals from a Publisher it has subscribed to.
//
// The protocol is the usual reactive-streams contract: OnSubscribe is called
// exactly once before any other signal, OnNext is called zero or more times,
// and at most one of OnComplete or OnError terminates the sequence. After a
// terminal signal no further signals are delivered.
//
// Implementations must not assume which goroutine delivers a signal; the
// publisher side decides scheduling. Signals to the same subscriber are never
// delivered concurrently.
type Subscriber[T any] interface {
	// OnSubscribe is invoked once with the Subscription that controls demand
	// and cancellation for this attempt.
	OnSubscribe(s Subscription)

	// OnNext delivers the next value of the sequence.
	OnNext(v T)

	// OnError terminates the sequence with a failure. No further signals follow.
	OnError(err error)

	// OnComplete terminates the sequence successfully. No further signals follow.
	OnComplete()
}

// Subscription represents the one-to-one lifecycle of a Subscriber attached
// to a Publisher.
type Subscription interface {
	// Request signals demand for up to n more values. Request is additive and
	// may be called from any goroutine.
	Request(n int64)

	// Cancel requests the publisher to stop emitting and release per-attempt
	// state. Cancel may race with a concurrent terminal signal; publishers
	// must tolerate both orders.
	Cancel()
}

// Publisher is a provider of an asynchronous sequence of values, emitted
// according to the demand its Subscriber signals.
//
// Subscribe may be called any number of times; each call starts an
// independent subscription attempt with its own per-attempt state.
type Publisher[T any] interface {
	Subscribe(s Subscriber[T])
}

// ConditionalSubscriber is a Subscriber that additionally supports a
// synchronous accept-or-reject fast path.
//
// TryOnNext lets an upstream operator learn immediately whether the value was
// consumed, so rejected values do not count against signalled demand.
type ConditionalSubscriber[T any] interface {
	Subscriber[T]

	// TryOnNext offers v to the subscriber and reports whether it was accepted.
	// A rejected value must not be re-delivered via OnNext.
	TryOnNext(v T) bool
}

// Fuseable marks a Publisher whose subscriptions implement
// QueueSubscription, allowing consumers to drain values by direct Poll
// instead of receiving them through push signals.
//
// The method is a marker only and carries no behavior.
type Fuseable interface {
	Fuseable()
}

// FusionMode describes the fusion capability negotiated between a
// QueueSubscription and its consumer. Modes are requested as a bit mask and
// granted as a single mode.
type FusionMode int

const (
	// FusionNone indicates no fusion; values are delivered by push only.
	FusionNone FusionMode = 0

	// FusionSync indicates synchronous fusion: the consumer pulls values via
	// Poll and the sequence end is observed as an empty Poll result. No push
	// signals are delivered after the grant.
	FusionSync FusionMode = 1

	// FusionAsync indicates asynchronous fusion: values become available over
	// time; OnNext acts as a drain notification and values are retrieved via
	// Poll.
	FusionAsync FusionMode = 2

	// FusionAny requests any supported fusion mode.
	FusionAny FusionMode = FusionSync | FusionAsync
)

// String returns a human-readable fusion mode name.
func (m FusionMode) String() string {
	switch m {
	case FusionNone:
		return "None"
	case FusionSync:
		return "Sync"
	case FusionAsync:
		return "Async"
	case FusionAny:
		return "Any"
	default:
		return "Unknown"
	}
}

// QueueSubscription is a Subscription that additionally exposes a pull-based
// accessor over the publisher's buffered values.
//
// Consumers must first negotiate a mode with RequestFusion; Poll semantics
// depend on the granted mode (see FusionMode).
type QueueSubscription[T any] interface {
	Subscription

	// RequestFusion negotiates a fusion mode. The requested argument is a bit
	// mask of acceptable modes; the return value is the single granted mode,
	// or FusionNone when fusion is not available.
	RequestFusion(requested FusionMode) FusionMode

	// Poll retrieves the next buffered value.
	//
	// ok reports whether a value was produced. ok == false with a nil error
	// means the sequence is drained (terminal in FusionSync mode, temporarily
	// empty in FusionAsync mode). A non-nil error reports the sequence
	// failure and is terminal.
	Poll() (v T, ok bool, err error)

	// IsEmpty reports whether no buffered value is currently available.
	IsEmpty() bool

	// Clear discards any buffered values.
	Clear()
}
