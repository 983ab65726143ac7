// Package observability provides hooks for metrics and tracing.
//
// Libraries emit events through the registered hooks and the application
// decides where they go. Nothing is recorded by default: every hook starts
// out as a no-op implementation.
//
// Register hooks once at startup:
//
//	observability.SetEditHooks(&myEditMetrics{})
//	observability.SetSpriteHooks(&myScanMetrics{})
//	observability.SetCacheHooks(&myCacheMetrics{})
//
// and emit events from library code:
//
//	observability.Sprite().OnScanStart(ctx, path)
//	// ... flood fill ...
//	observability.Sprite().OnScanComplete(ctx, path, regions, elapsed, err)
package observability

import (
	"context"
	"sync"
	"time"
)

// =============================================================================
// Edit Hooks
// =============================================================================

// EditHooks receives events from batch edits of a layout.
type EditHooks interface {
	// OnEdit records one edit operation such as "align" over n elements.
	OnEdit(ctx context.Context, op string, n int, duration time.Duration)
}

// =============================================================================
// Sprite Hooks
// =============================================================================

// SpriteHooks receives events from sprite sheet scans.
type SpriteHooks interface {
	OnScanStart(ctx context.Context, source string)
	OnScanComplete(ctx context.Context, source string, regions int, duration time.Duration, err error)
}

// =============================================================================
// Cache Hooks
// =============================================================================

// CacheHooks receives events from cache lookups.
type CacheHooks interface {
	// OnCacheHit records a hit for a key type such as "sprite".
	OnCacheHit(ctx context.Context, keyType string)

	// OnCacheMiss records a miss.
	OnCacheMiss(ctx context.Context, keyType string)

	// OnCacheSet records a write of size bytes.
	OnCacheSet(ctx context.Context, keyType string, size int)
}

// =============================================================================
// Request Hooks
// =============================================================================

// RequestHooks receives events from the HTTP API.
type RequestHooks interface {
	OnRequest(ctx context.Context, method, route string)
	OnResponse(ctx context.Context, method, route string, status int, duration time.Duration)
}

// =============================================================================
// No-op Implementations
// =============================================================================

// NoopEditHooks ignores all events.
type NoopEditHooks struct{}

func (NoopEditHooks) OnEdit(context.Context, string, int, time.Duration) {}

// NoopSpriteHooks ignores all events.
type NoopSpriteHooks struct{}

func (NoopSpriteHooks) OnScanStart(context.Context, string)                               {}
func (NoopSpriteHooks) OnScanComplete(context.Context, string, int, time.Duration, error) {}

// NoopCacheHooks ignores all events.
type NoopCacheHooks struct{}

func (NoopCacheHooks) OnCacheHit(context.Context, string)      {}
func (NoopCacheHooks) OnCacheMiss(context.Context, string)     {}
func (NoopCacheHooks) OnCacheSet(context.Context, string, int) {}

// NoopRequestHooks ignores all events.
type NoopRequestHooks struct{}

func (NoopRequestHooks) OnRequest(context.Context, string, string) {}
func (NoopRequestHooks) OnResponse(context.Context, string, string, int, time.Duration) {
}

// =============================================================================
// Global Hook Registry
// =============================================================================

var (
	editHooks    EditHooks    = NoopEditHooks{}
	spriteHooks  SpriteHooks  = NoopSpriteHooks{}
	cacheHooks   CacheHooks   = NoopCacheHooks{}
	requestHooks RequestHooks = NoopRequestHooks{}
	hooksMu      sync.RWMutex
)

// SetEditHooks registers edit hooks. A nil value is ignored.
func SetEditHooks(h EditHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		editHooks = h
	}
}

// SetSpriteHooks registers sprite hooks. A nil value is ignored.
func SetSpriteHooks(h SpriteHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		spriteHooks = h
	}
}

// SetCacheHooks registers cache hooks. A nil value is ignored.
func SetCacheHooks(h CacheHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		cacheHooks = h
	}
}

// SetRequestHooks registers request hooks. A nil value is ignored.
func SetRequestHooks(h RequestHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		requestHooks = h
	}
}

// Edit returns the registered edit hooks.
func Edit() EditHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return editHooks
}

// Sprite returns the registered sprite hooks.
func Sprite() SpriteHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return spriteHooks
}

// Cache returns the registered cache hooks.
func Cache() CacheHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return cacheHooks
}

// Request returns the registered request hooks.
func Request() RequestHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return requestHooks
}

// Reset restores the no-op defaults.
func Reset() {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	editHooks = NoopEditHooks{}
	spriteHooks = NoopSpriteHooks{}
	cacheHooks = NoopCacheHooks{}
	requestHooks = NoopRequestHooks{}
}
