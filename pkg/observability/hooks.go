// Package observability provides hooks for metrics, tracing, and logging.
//
// This package enables optional instrumentation without adding hard
// dependencies on specific observability backends. Consumers register hooks
// at startup to receive events about pipeline stages, cache operations, and
// outbound HTTP calls.
//
// # Architecture
//
// The package uses a simple hooks pattern:
//   - Define hook interfaces for different event categories
//   - Provide no-op default implementations
//   - Allow registration of custom implementations at startup
//
// This keeps the core library free of observability framework imports and
// avoids import cycles: hooks are registered by main, not by libraries.
//
// # Usage
//
// Register hooks at application startup:
//
//	func main() {
//	    observability.SetPipelineHooks(&myPipelineHooks{})
//	    // ... run application
//	}
//
// Libraries call hooks to emit events:
//
//	observability.Pipeline().OnAnalyzeStart(ctx, dataDir)
//	// ... load and analyze ...
//	observability.Pipeline().OnAnalyzeComplete(ctx, dataDir, entries, duration, err)
package observability

import (
	"context"
	"sync"
	"time"
)

// =============================================================================
// Pipeline Hooks
// =============================================================================

// PipelineHooks receives events from the carousel generation pipeline.
type PipelineHooks interface {
	// Analyze events
	OnAnalyzeStart(ctx context.Context, dataDir string)
	OnAnalyzeComplete(ctx context.Context, dataDir string, entries int, duration time.Duration, err error)

	// Render events (one pair per platform)
	OnRenderStart(ctx context.Context, platform string)
	OnRenderComplete(ctx context.Context, platform string, images int, duration time.Duration, err error)

	// Markdown events
	OnMarkdownStart(ctx context.Context, platform string)
	OnMarkdownComplete(ctx context.Context, platform string, duration time.Duration, err error)
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
// HTTP Hooks
// =============================================================================

// HTTPHooks receives events from outbound HTTP requests.
type HTTPHooks interface {
	// OnRequest records a completed request. A status of 0 means the
	// request never produced a response (network failure, cancellation).
	OnRequest(ctx context.Context, method, url string, status int, duration time.Duration, err error)
}

// =============================================================================
// No-op Implementations
// =============================================================================

type noopPipelineHooks struct{}

func (noopPipelineHooks) OnAnalyzeStart(context.Context, string) {}
func (noopPipelineHooks) OnAnalyzeComplete(context.Context, string, int, time.Duration, error) {
}
func (noopPipelineHooks) OnRenderStart(context.Context, string) {}
func (noopPipelineHooks) OnRenderComplete(context.Context, string, int, time.Duration, error) {
}
func (noopPipelineHooks) OnMarkdownStart(context.Context, string)                               {}
func (noopPipelineHooks) OnMarkdownComplete(context.Context, string, time.Duration, error)      {}

type noopCacheHooks struct{}

func (noopCacheHooks) OnCacheHit(context.Context, string)       {}
func (noopCacheHooks) OnCacheMiss(context.Context, string)      {}
func (noopCacheHooks) OnCacheSet(context.Context, string, int)  {}

type noopHTTPHooks struct{}

func (noopHTTPHooks) OnRequest(context.Context, string, string, int, time.Duration, error) {}

// =============================================================================
// Registry
// =============================================================================

var (
	mu            sync.RWMutex
	pipelineHooks PipelineHooks = noopPipelineHooks{}
	cacheHooks    CacheHooks    = noopCacheHooks{}
	httpHooks     HTTPHooks     = noopHTTPHooks{}
)

// SetPipelineHooks registers pipeline hooks. Pass nil to restore the no-op.
func SetPipelineHooks(h PipelineHooks) {
	mu.Lock()
	defer mu.Unlock()
	if h == nil {
		pipelineHooks = noopPipelineHooks{}
		return
	}
	pipelineHooks = h
}

// SetCacheHooks registers cache hooks. Pass nil to restore the no-op.
func SetCacheHooks(h CacheHooks) {
	mu.Lock()
	defer mu.Unlock()
	if h == nil {
		cacheHooks = noopCacheHooks{}
		return
	}
	cacheHooks = h
}

// SetHTTPHooks registers HTTP hooks. Pass nil to restore the no-op.
func SetHTTPHooks(h HTTPHooks) {
	mu.Lock()
	defer mu.Unlock()
	if h == nil {
		httpHooks = noopHTTPHooks{}
		return
	}
	httpHooks = h
}

// Pipeline returns the registered pipeline hooks.
func Pipeline() PipelineHooks {
	mu.RLock()
	defer mu.RUnlock()
	return pipelineHooks
}

// Cache returns the registered cache hooks.
func Cache() CacheHooks {
	mu.RLock()
	defer mu.RUnlock()
	return cacheHooks
}

// HTTP returns the registered HTTP hooks.
func HTTP() HTTPHooks {
	mu.RLock()
	defer mu.RUnlock()
	return httpHooks
}
