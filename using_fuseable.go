package reactor

import "github.com/itssanjib/reactor-core/types"

// usingFuseableSubscriber is the fused wrapper variant, installed when the
// inner stream advertises the Fuseable capability. Values may then be
// retrieved by direct Poll instead of push signals, so the wrapper
// interposes on the pull-based accessor as well: whichever path reaches the
// terminal condition performs the single cleanup.
type usingFuseableSubscriber[T, R any] struct {
	actual types.Subscriber[T]
	*scope[R]

	s    types.Subscription
	qs   types.QueueSubscription[T]
	mode types.FusionMode
}

var _ types.QueueSubscription[int] = (*usingFuseableSubscriber[int, int])(nil)

func (u *usingFuseableSubscriber[T, R]) OnSubscribe(s types.Subscription) {
	u.s = s
	u.qs, _ = s.(types.QueueSubscription[T])
	u.actual.OnSubscribe(u)
}

func (u *usingFuseableSubscriber[T, R]) OnNext(v T) {
	// In async fusion mode this is a drain notification; either way the
	// signal is forwarded verbatim.
	u.actual.OnNext(v)
}

func (u *usingFuseableSubscriber[T, R]) OnError(err error) {
	if u.eager && u.claim() {
		if cerr := u.release(types.CleanupPathTerminal); cerr != nil {
			err = types.AddSuppressed(cerr, err)
		}
	}

	u.opts.metrics.RecordTerminal("error", u.eager)
	u.actual.OnError(err)

	if !u.eager && u.claim() {
		u.releaseDropping(types.CleanupPathTerminal)
	}
}

func (u *usingFuseableSubscriber[T, R]) OnComplete() {
	if u.eager && u.claim() {
		if cerr := u.release(types.CleanupPathTerminal); cerr != nil {
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

func (u *usingFuseableSubscriber[T, R]) Request(n int64) {
	u.s.Request(n)
}

func (u *usingFuseableSubscriber[T, R]) Cancel() {
	if u.claim() {
		u.s.Cancel()
		u.releaseDropping(types.CleanupPathCancel)
	}
}

// RequestFusion negotiates with the inner queue subscription and records the
// granted mode so Poll knows whether a drained queue is terminal.
func (u *usingFuseableSubscriber[T, R]) RequestFusion(requested types.FusionMode) types.FusionMode {
	if u.qs == nil {
		return types.FusionNone
	}
	u.mode = u.qs.RequestFusion(requested)

	return u.mode
}

// Poll drains the inner queue. In sync fusion mode a drained queue or a
// polled error is the sequence's terminal condition, so cleanup fires here,
// under the same single-winner claim as the push path.
func (u *usingFuseableSubscriber[T, R]) Poll() (T, bool, error) {
	if u.qs == nil {
		var zero T
		return zero, false, nil
	}

	v, ok, err := u.qs.Poll()
	if err != nil {
		if u.claim() {
			if u.eager {
				if cerr := u.release(types.CleanupPathPoll); cerr != nil {
					err = types.AddSuppressed(cerr, err)
				}
			} else {
				u.releaseDropping(types.CleanupPathPoll)
			}
		}

		var zero T

		return zero, false, err
	}

	if !ok && u.mode == types.FusionSync {
		if u.claim() {
			if u.eager {
				if cerr := u.release(types.CleanupPathPoll); cerr != nil {
					var zero T
					return zero, false, cerr
				}
			} else {
				// Lazy policy: the drained result is already the terminal
				// indication, so a cleanup failure here has no channel left
				// and is dropped.
				u.releaseDropping(types.CleanupPathPoll)
			}
		}
	}

	return v, ok, nil
}

func (u *usingFuseableSubscriber[T, R]) IsEmpty() bool {
	return u.qs == nil || u.qs.IsEmpty()
}

func (u *usingFuseableSubscriber[T, R]) Clear() {
	if u.qs != nil {
		u.qs.Clear()
	}
}
