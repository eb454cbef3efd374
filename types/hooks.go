package types

// Hooks defines callbacks for resource lifecycle events.
//
// All hooks are optional and invoked synchronously on the goroutine that
// triggered the event, so they must complete quickly and must not block.
//
// Best practices for hook implementation:
//   - Complete quickly; hooks run on signal-delivery paths
//   - Never panic; a panicking hook corrupts the subscription protocol
//   - Handle errors internally (hooks have no error return)
type Hooks struct {
	// OnResourceAcquired is called after the resource supplier succeeds,
	// before the source factory is invoked.
	OnResourceAcquired func()

	// OnResourceReleased is called after the cleanup action runs, with the
	// error it returned (nil on success).
	OnResourceReleased func(err error)

	// OnErrorDropped is called for failures that have no remaining delivery
	// channel: cleanup errors in lazy mode and cleanup errors raised while
	// processing a cancellation. When unset, dropped failures are logged at
	// Error level.
	OnErrorDropped func(err error)
}
