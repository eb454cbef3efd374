// Package testing provides test utilities for the reactor library.
//
// This package offers subscriber probes for asserting on stream signals,
// a manually-driven Source publisher for exercising signal races, and an
// embedded NATS server helper for natsbridge integration tests. It follows
// Go's convention of providing testing utilities in a dedicated package
// (similar to net/http/httptest).
//
// Key utilities:
//   - Probe: recording Subscriber with demand and cancellation control
//   - ConditionalProbe: Probe variant advertising the accept-or-reject fast path
//   - Source: hot publisher whose signals the test drives explicitly
//   - StartEmbeddedNATS: single NATS server with JetStream
//
// Example usage:
//
//	import (
//	    "testing"
//	    reactortest "github.com/itssanjib/reactor-core/testing"
//	)
//
//	func TestMyOperator(t *testing.T) {
//	    probe := reactortest.NewProbe[string](10)
//	    publisher.Subscribe(probe)
//	    probe.AwaitTerminal(t, time.Second)
//	}
package testing
