// Package registry tracks live resource scopes for leak diagnostics.
//
// A scope is registered when its resource supplier succeeds and removed when
// its cleanup action has run. Snapshots of the registry therefore list every
// resource that is currently owed a cleanup, which makes leaked resources
// visible in tests and in production diagnostics.
package registry

import (
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/itssanjib/reactor-core/types"
	"github.com/puzpuzpuz/xsync/v4"
)

// Registry is a concurrent map of live resource scopes.
//
// All methods are safe for concurrent use; Add and Remove sit on the
// subscribe and cleanup paths and must stay cheap.
type Registry struct {
	scopes  *xsync.Map[string, types.ScopeInfo]
	metrics types.MetricsCollector
}

// New creates an empty registry.
//
// Parameters:
//   - metrics: Collector receiving active-scope gauge updates (may be nil)
//
// Returns:
//   - *Registry: A new registry instance
func New(metrics types.MetricsCollector) *Registry {
	return &Registry{
		scopes:  xsync.NewMap[string, types.ScopeInfo](),
		metrics: metrics,
	}
}

// Add registers a live scope and returns its generated id.
func (r *Registry) Add(variant string, eager bool) string {
	id := uuid.NewString()
	r.scopes.Store(id, types.ScopeInfo{
		ID:         id,
		Variant:    variant,
		Eager:      eager,
		AcquiredAt: time.Now(),
	})
	r.reportSize()

	return id
}

// SetVariant updates the wrapper variant recorded for a scope once dispatch
// has selected it. Unknown ids are ignored.
func (r *Registry) SetVariant(id, variant string) {
	if info, ok := r.scopes.Load(id); ok {
		info.Variant = variant
		r.scopes.Store(id, info)
	}
}

// Remove unregisters a scope after its cleanup has run. Removing an unknown
// id is a no-op.
func (r *Registry) Remove(id string) {
	r.scopes.Delete(id)
	r.reportSize()
}

// Len returns the number of live scopes.
func (r *Registry) Len() int {
	return r.scopes.Size()
}

// Snapshot returns the live scopes ordered by acquisition time.
func (r *Registry) Snapshot() []types.ScopeInfo {
	out := make([]types.ScopeInfo, 0, r.scopes.Size())
	r.scopes.Range(func(_ string, info types.ScopeInfo) bool {
		out = append(out, info)
		return true
	})
	sort.Slice(out, func(i, j int) bool {
		return out[i].AcquiredAt.Before(out[j].AcquiredAt)
	})

	return out
}

func (r *Registry) reportSize() {
	if r.metrics != nil {
		r.metrics.RecordActiveScopes(r.scopes.Size())
	}
}
