package reactor

import "github.com/itssanjib/reactor-core/types"

// usingSubscriber is the plain wrapper variant: it interposes on every
// signal between the inner stream and the outside consumer and funnels every
// terminal or cancel event through the scope's single-winner claim.
type usingSubscriber[T, R any] struct {
	actual types.Subscriber[T]
	*scope[R]

	s types.Subscription
}

var _ types.Subscription = (*usingSubscriber[int, int])(nil)

func (u *usingSubscriber[T, R]) OnSubscribe(s types.Subscription) {
	u.s = s
	u.actual.OnSubscribe(u)
}

func (u *usingSubscriber[T, R]) OnNext(v T) {
	u.actual.OnNext(v)
}

func (u *usingSubscriber[T, R]) OnError(err error) {
	if u.eager && u.claim() {
		if cerr := u.release(types.CleanupPathTerminal); cerr != nil {
			// Eager cleanup failure becomes the reported cause; the original
			// terminal error stays reachable as suppressed.
			err = types.AddSuppressed(cerr, err)
		}
	}

	u.opts.metrics.RecordTerminal("error", u.eager)
	u.actual.OnError(err)

	if !u.eager && u.claim() {
		u.releaseDropping(types.CleanupPathTerminal)
	}
}

func (u *usingSubscriber[T, R]) OnComplete() {
	if u.eager && u.claim() {
		if cerr := u.release(types.CleanupPathTerminal); cerr != nil {
			// A failed eager cleanup overrides the successful completion.
			u.opts.metrics.RecordTerminal("error", u.eager)
			u.actual.OnError(cerr)

			return
		}
	}

	u.opts.metrics.RecordTerminal("complete", u.eager)
	u.actual.OnComplete()

	if !u.eager && u.claim() {
		u.releaseDropping(types.CleanupPathTerminal)
	}
}

func (u *usingSubscriber[T, R]) Request(n int64) {
	u.s.Request(n)
}

// Cancel treats downstream cancellation as a terminal event for ownership:
// the claim winner stops the inner stream then releases the resource. A
// cancel that loses the race against a terminal signal is a no-op.
func (u *usingSubscriber[T, R]) Cancel() {
	if u.claim() {
		u.s.Cancel()
		u.releaseDropping(types.CleanupPathCancel)
	}
}

// usingConditionalSubscriber adds the accept-or-reject fast path on top of
// the plain wrapper. Terminal and cancel handling stay with the embedded
// state machine.
type usingConditionalSubscriber[T, R any] struct {
	usingSubscriber[T, R]
	cond types.ConditionalSubscriber[T]
}

var _ types.ConditionalSubscriber[int] = (*usingConditionalSubscriber[int, int])(nil)

func (u *usingConditionalSubscriber[T, R]) TryOnNext(v T) bool {
	return u.cond.TryOnNext(v)
}
