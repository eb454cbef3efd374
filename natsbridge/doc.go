// Package natsbridge adapts NATS JetStream consumers to the reactor
// Publisher protocol.
//
// Messages turns an existing pull consumer into a demand-driven
// Publisher[jetstream.Msg]. ScopedMessages goes one step further and ties an
// ephemeral consumer's whole lifecycle to a subscription attempt using
// reactor.Using: the consumer is created when a subscriber arrives and
// deleted exactly once when the message stream completes, fails, or the
// subscriber cancels.
//
// Acknowledgement is left to the consumer of the stream: messages are
// delivered as received and the subscriber decides when to Ack or Nak.
package natsbridge
