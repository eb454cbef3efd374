// Package types provides core type definitions and interfaces for the reactor library.
//
// This package contains shared types that are used across multiple packages:
// the reactive protocol surface (Publisher, Subscriber, Subscription plus the
// optional Fuseable and ConditionalSubscriber capabilities), the failure
// composition type used for suppressed-error reporting, and the pluggable
// observability interfaces (Logger, MetricsCollector, Hooks).
//
// By keeping these types in a separate package, we avoid import cycles while
// still providing a convenient public API: the root reactor package re-exports
// the public subset via type aliases.
package types
