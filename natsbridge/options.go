package natsbridge

import (
	"time"

	reactor "github.com/itssanjib/reactor-core"
	"github.com/itssanjib/reactor-core/internal/logger"
	"github.com/itssanjib/reactor-core/types"
)

const (
	defaultBatchSize   = 64
	defaultFetchExpiry = 5 * time.Second
	defaultBackoffBase = 50 * time.Millisecond
	defaultBackoffCap  = 2 * time.Second
)

// Option configures the bridge publishers.
type Option func(*options)

type options struct {
	batch        int
	fetchExpiry  time.Duration
	backoffBase  time.Duration
	backoffCap   time.Duration
	logger       types.Logger
	operatorOpts []reactor.Option
}

func newOptions(opts []Option) *options {
	o := &options{
		batch:       defaultBatchSize,
		fetchExpiry: defaultFetchExpiry,
		backoffBase: defaultBackoffBase,
		backoffCap:  defaultBackoffCap,
		logger:      logger.NewNop(),
	}
	for _, opt := range opts {
		opt(o)
	}

	return o
}

// WithBatchSize sets the maximum number of messages pulled per iterator
// batch. Defaults to 64.
func WithBatchSize(n int) Option {
	return func(o *options) {
		if n > 0 {
			o.batch = n
		}
	}
}

// WithFetchExpiry sets the pull request expiry. The iterator heartbeat is
// derived from it. Defaults to 5s.
func WithFetchExpiry(d time.Duration) Option {
	return func(o *options) {
		if d > 0 {
			o.fetchExpiry = d
		}
	}
}

// WithRecreateBackoff bounds the jittered delay between iterator
// recreations after missed heartbeats. Defaults to 50ms base with a 2s cap.
func WithRecreateBackoff(base, max time.Duration) Option {
	return func(o *options) {
		if base > 0 {
			o.backoffBase = base
		}
		if max > 0 {
			o.backoffCap = max
		}
	}
}

// WithLogger sets the logger used by the pull loop.
func WithLogger(l types.Logger) Option {
	return func(o *options) {
		if l != nil {
			o.logger = l
		}
	}
}

// WithOperatorOptions passes options through to the reactor.Using operator
// underlying ScopedMessages (cleanup policy, metrics, hooks). Ignored by
// Messages.
func WithOperatorOptions(opts ...reactor.Option) Option {
	return func(o *options) {
		o.operatorOpts = append(o.operatorOpts, opts...)
	}
}
