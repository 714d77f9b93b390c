// Package observability provides hooks for metrics, tracing, and logging.
//
// This package enables optional instrumentation without adding hard dependencies
// on specific observability backends. Consumers can register hooks at startup
// to receive events about symmetry discovery, search pruning, and cache use.
//
// # Architecture
//
// The package uses a simple hooks pattern:
//   - Define hook interfaces for different event categories
//   - Provide no-op default implementations
//   - Allow registration of custom implementations at startup
//
// The prom subpackage implements every hook interface with Prometheus
// collectors.
//
// # Usage
//
// Register hooks at application startup:
//
//	func main() {
//	    m := prom.New(prometheus.DefaultRegisterer)
//	    observability.SetGroupHooks(m)
//	    observability.SetSearchHooks(m)
//	    // ... run application
//	}
//
// Libraries call hooks to emit events:
//
//	observability.Group().OnPopulateStart(ctx, "discover")
//	// ... discover generators ...
//	observability.Group().OnPopulateComplete(ctx, "discover", gens, discarded, duration, err)
package observability

import (
	"context"
	"sync"
	"time"
)

// =============================================================================
// Group Hooks
// =============================================================================

// GroupHooks receives events from symmetry group population.
type GroupHooks interface {
	// OnPopulateStart records the start of a one-time population.
	OnPopulateStart(ctx context.Context, source string)

	// OnPopulateComplete records the outcome of a population. generators is
	// the number of stored generators, discarded the number of identities
	// and dropped invalid generators.
	OnPopulateComplete(ctx context.Context, source string, generators, discarded int, duration time.Duration, err error)

	// OnExhausted records that discovery ran out of its budget and the
	// group fell back to having no symmetries.
	OnExhausted(ctx context.Context, source string)
}

// =============================================================================
// Search Hooks
// =============================================================================

// SearchHooks receives events from symmetry-based pruning. These are called
// once per generated state and must be cheap.
type SearchHooks interface {
	// OnCanonicalize records one canonicalization; changed reports whether
	// the canonical form differs from the input state.
	OnCanonicalize(mode string, changed bool)

	// OnDuplicate records a state rejected because a symmetric state was
	// already closed.
	OnDuplicate(mode string)
}

// =============================================================================
// Cache Hooks
// =============================================================================

// CacheHooks receives events from cache operations.
type CacheHooks interface {
	// OnCacheHit records a cache hit.
	OnCacheHit(ctx context.Context, keyType string)

	// OnCacheMiss records a cache miss.
	OnCacheMiss(ctx context.Context, keyType string)

	// OnCacheSet records a cache write.
	OnCacheSet(ctx context.Context, keyType string, size int)
}

// =============================================================================
// No-op Implementations
// =============================================================================

// NoopGroupHooks is a no-op implementation of GroupHooks.
type NoopGroupHooks struct{}

func (NoopGroupHooks) OnPopulateStart(context.Context, string) {}
func (NoopGroupHooks) OnPopulateComplete(context.Context, string, int, int, time.Duration, error) {
}
func (NoopGroupHooks) OnExhausted(context.Context, string) {}

// NoopSearchHooks is a no-op implementation of SearchHooks.
type NoopSearchHooks struct{}

func (NoopSearchHooks) OnCanonicalize(string, bool) {}
func (NoopSearchHooks) OnDuplicate(string)          {}

// NoopCacheHooks is a no-op implementation of CacheHooks.
type NoopCacheHooks struct{}

func (NoopCacheHooks) OnCacheHit(context.Context, string)      {}
func (NoopCacheHooks) OnCacheMiss(context.Context, string)     {}
func (NoopCacheHooks) OnCacheSet(context.Context, string, int) {}

// =============================================================================
// Global Hook Registry
// =============================================================================

var (
	groupHooks  GroupHooks  = NoopGroupHooks{}
	searchHooks SearchHooks = NoopSearchHooks{}
	cacheHooks  CacheHooks  = NoopCacheHooks{}
	hooksMu     sync.RWMutex
)

// SetGroupHooks registers custom group hooks.
// This should be called once at application startup before any group is populated.
func SetGroupHooks(h GroupHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		groupHooks = h
	}
}

// SetSearchHooks registers custom search hooks.
// This should be called once at application startup before search begins.
func SetSearchHooks(h SearchHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		searchHooks = h
	}
}

// SetCacheHooks registers custom cache hooks.
// This should be called once at application startup before any cache operations.
func SetCacheHooks(h CacheHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		cacheHooks = h
	}
}

// Group returns the registered group hooks.
func Group() GroupHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return groupHooks
}

// Search returns the registered search hooks.
func Search() SearchHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return searchHooks
}

// Cache returns the registered cache hooks.
func Cache() CacheHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return cacheHooks
}

// Reset restores all hooks to their no-op defaults.
// This is primarily useful for testing.
func Reset() {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	groupHooks = NoopGroupHooks{}
	searchHooks = NoopSearchHooks{}
	cacheHooks = NoopCacheHooks{}
}
