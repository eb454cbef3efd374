package natsbridge

import (
	"context"
	"fmt"

	reactor "github.com/itssanjib/reactor-core"
	"github.com/itssanjib/reactor-core/types"
	"github.com/nats-io/nats.go/jetstream"
)

// ScopedMessages returns a Publisher whose JetStream consumer is scoped to
// each subscription attempt.
//
// On Subscribe, a consumer is created (or updated) on the stream from cfg;
// its messages are then streamed as with Messages. Whatever way the
// sequence ends, the consumer is deleted exactly once: the lifecycle is
// composed with reactor.Using, so the usual cleanup-policy options apply
// through WithOperatorOptions.
//
// The context bounds consumer creation and deletion, not message flow;
// message flow is governed by demand and cancellation.
func ScopedMessages(
	ctx context.Context,
	js jetstream.JetStream,
	stream string,
	cfg jetstream.ConsumerConfig,
	opts ...Option,
) types.Publisher[jetstream.Msg] {
	if js == nil {
		panic("natsbridge: jetstream context must not be nil")
	}
	if stream == "" {
		panic("natsbridge: stream name must not be empty")
	}

	o := newOptions(opts)

	return reactor.Using(
		func() (jetstream.Consumer, error) {
			cons, err := js.CreateOrUpdateConsumer(ctx, stream, cfg)
			if err != nil {
				return nil, fmt.Errorf("creating scoped consumer: %w", err)
			}
			o.logger.Debug("scoped consumer created", "stream", stream, "consumer", cons.CachedInfo().Name)

			return cons, nil
		},
		func(cons jetstream.Consumer) (types.Publisher[jetstream.Msg], error) {
			return Messages(cons, opts...), nil
		},
		func(cons jetstream.Consumer) error {
			name := cons.CachedInfo().Name
			if err := js.DeleteConsumer(ctx, stream, name); err != nil {
				return fmt.Errorf("deleting scoped consumer %q: %w", name, err)
			}
			o.logger.Debug("scoped consumer deleted", "stream", stream, "consumer", name)

			return nil
		},
		o.operatorOpts...,
	)
}
