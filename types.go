package reactor

import "github.com/itssanjib/reactor-core/types"

// Re-export types from the types package.
//
// This file provides a stable public API for the library's core types and
// interfaces. It uses type aliases to re-export definitions from the `types`
// subpackage, which contains the actual declarations.
//
// This pattern solves the "import cycle" problem by allowing internal
// packages to depend on `types` without depending on the root reactor
// package, while still providing a convenient `reactor.Publisher`,
// `reactor.Logger`, etc. for users.
type (
	Publisher[T any]             = types.Publisher[T]
	Subscriber[T any]            = types.Subscriber[T]
	Subscription                 = types.Subscription
	ConditionalSubscriber[T any] = types.ConditionalSubscriber[T]
	QueueSubscription[T any]     = types.QueueSubscription[T]
	Fuseable                     = types.Fuseable
	FusionMode                   = types.FusionMode
)

// Re-export observability interfaces for convenience.
type (
	Logger           = types.Logger
	MetricsCollector = types.MetricsCollector
	Hooks            = types.Hooks
	ScopeInfo        = types.ScopeInfo
	CompositeError   = types.CompositeError
)

// Re-export fusion mode constants.
const (
	FusionNone  = types.FusionNone
	FusionSync  = types.FusionSync
	FusionAsync = types.FusionAsync
	FusionAny   = types.FusionAny
)
