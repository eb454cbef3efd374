package types

import "time"

// ScopeInfo describes a live resource scope for diagnostics.
//
// A scope is live from the moment its resource supplier succeeds until its
// cleanup action has run. Scopes that stay live after their consumers are
// gone indicate a resource leak.
type ScopeInfo struct {
	// ID is the unique identifier assigned to the scope at creation.
	ID string

	// Variant is the wrapper variant installed for the subscription
	// ("plain", "conditional" or "fused"), or "setup" while dispatch has not
	// happened yet.
	Variant string

	// Eager reports the cleanup timing policy of the scope.
	Eager bool

	// AcquiredAt is the time the resource was created.
	AcquiredAt time.Time
}
