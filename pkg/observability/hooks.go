// Package observability provides hooks for metrics, tracing, and logging.
//
// Libraries in this module emit events through the registered hooks instead
// of importing a specific metrics backend. The defaults are no-ops; an
// application registers real implementations once at startup.
//
// # Usage
//
// Register hooks at application startup:
//
//	func main() {
//	    observability.SetPipelineHooks(&myPipelineHooks{})
//	    observability.SetCacheHooks(&myCacheHooks{})
//	    // ... run application
//	}
//
// Libraries call hooks to emit events:
//
//	observability.Pipeline().OnSortStart(ctx, path, "luminance")
//	// ... decode, sort, encode ...
//	observability.Pipeline().OnSortComplete(ctx, path, "luminance", SortEvent{...})
package observability

import (
	"context"
	"sync"
	"time"
)

// =============================================================================
// Pipeline Hooks
// =============================================================================

// SortEvent describes one finished image.
type SortEvent struct {
	Rows     int
	Runs     int
	Pixels   int
	CacheHit bool
	Duration time.Duration
	Err      error
}

// PipelineHooks receives events from the sorting pipeline.
type PipelineHooks interface {
	// OnBatchStart is called before the first image of a batch.
	OnBatchStart(ctx context.Context, runID string, images int)
	// OnBatchComplete is called after the last image of a batch.
	OnBatchComplete(ctx context.Context, runID string, succeeded, failed int, duration time.Duration)

	// OnSortStart is called before an image is read.
	OnSortStart(ctx context.Context, path, metric string)
	// OnSortComplete is called once an image is written or has failed.
	OnSortComplete(ctx context.Context, path, metric string, ev SortEvent)
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

// NoopPipelineHooks is a no-op implementation of PipelineHooks.
type NoopPipelineHooks struct{}

func (NoopPipelineHooks) OnBatchStart(context.Context, string, int)                        {}
func (NoopPipelineHooks) OnBatchComplete(context.Context, string, int, int, time.Duration) {}
func (NoopPipelineHooks) OnSortStart(context.Context, string, string)                      {}
func (NoopPipelineHooks) OnSortComplete(context.Context, string, string, SortEvent)        {}

// NoopCacheHooks is a no-op implementation of CacheHooks.
type NoopCacheHooks struct{}

func (NoopCacheHooks) OnCacheHit(context.Context, string)      {}
func (NoopCacheHooks) OnCacheMiss(context.Context, string)     {}
func (NoopCacheHooks) OnCacheSet(context.Context, string, int) {}

// =============================================================================
// Global Hook Registry
// =============================================================================

var (
	pipelineHooks PipelineHooks = NoopPipelineHooks{}
	cacheHooks    CacheHooks    = NoopCacheHooks{}
	hooksMu       sync.RWMutex
)

// SetPipelineHooks registers custom pipeline hooks.
// This should be called once at application startup before any pipeline operations.
func SetPipelineHooks(h PipelineHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		pipelineHooks = h
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

// Pipeline returns the registered pipeline hooks.
func Pipeline() PipelineHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return pipelineHooks
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
	pipelineHooks = NoopPipelineHooks{}
	cacheHooks = NoopCacheHooks{}
}
