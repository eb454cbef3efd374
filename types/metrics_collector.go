package types

// Cleanup path labels reported through MetricsCollector.RecordCleanup.
const (
	// CleanupPathTerminal marks a cleanup triggered by a terminal signal
	// (completion or error) from the inner sequence.
	CleanupPathTerminal = "terminal"

	// CleanupPathCancel marks a cleanup triggered by downstream cancellation.
	CleanupPathCancel = "cancel"

	// CleanupPathPoll marks a cleanup triggered by a drained pull-based
	// accessor in fused mode.
	CleanupPathPoll = "poll"

	// CleanupPathSetup marks a cleanup triggered by a source factory failure
	// before the subscription was established.
	CleanupPathSetup = "setup"
)

// MetricsCollector defines methods for recording operational metrics.
//
// Implementations should be non-blocking and handle failures gracefully.
// All methods may be called from arbitrary goroutines and must be
// thread-safe.
type MetricsCollector interface {
	// RecordSubscription records a subscription attempt and the wrapper
	// variant installed for it ("plain", "conditional" or "fused").
	RecordSubscription(variant string)

	// RecordSupplyFailure records a resource supplier failure. No resource
	// was created, so no cleanup is owed.
	RecordSupplyFailure()

	// RecordFactoryFailure records a source factory failure or contract
	// violation after a resource was created.
	RecordFactoryFailure()

	// RecordTerminal records a terminal signal forwarded downstream.
	//
	// Parameters:
	//   - signal: "complete" or "error"
	//   - eager: whether cleanup ran before the signal was forwarded
	RecordTerminal(signal string, eager bool)

	// RecordCleanup records the outcome of a resource cleanup invocation.
	//
	// Parameters:
	//   - path: one of the CleanupPath constants
	//   - success: whether the cleanup action returned nil
	RecordCleanup(path string, success bool)

	// RecordDroppedError records a failure that had no remaining delivery
	// channel and was dropped.
	RecordDroppedError()

	// RecordActiveScopes sets the current number of live resource scopes
	// (gauge metric). Only reported when scope tracking is enabled.
	RecordActiveScopes(count int)
}
