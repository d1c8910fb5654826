// Package observability provides hooks for progress reporting and tracing.
//
// Libraries emit events through the registered hooks; the command line
// registers implementations that print progress or log timings. Nothing is
// reported until hooks are registered.
//
// # Usage
//
// Register hooks at application startup:
//
//	func main() {
//	    observability.SetRenderHooks(&myRenderHooks{})
//	    observability.SetRegistryHooks(&myRegistryHooks{})
//	    // ... run application
//	}
//
// Libraries call hooks to emit events:
//
//	observability.Render().OnStepStart(ctx, "logo")
//	// ... draw ...
//	observability.Render().OnStepComplete(ctx, "logo", duration, err)
package observability

import (
	"context"
	"sync"
	"time"
)

// =============================================================================
// Render Hooks
// =============================================================================

// RenderHooks receives events from the card renderer, once per draw step.
type RenderHooks interface {
	OnStepStart(ctx context.Context, step string)
	OnStepComplete(ctx context.Context, step string, duration time.Duration, err error)
}

// =============================================================================
// Registry Hooks
// =============================================================================

// RegistryHooks receives events from callsign registration.
type RegistryHooks interface {
	// OnRegistered records a new registry entry.
	OnRegistered(ctx context.Context, id string)

	// OnSkipped records a registration skipped because the id already exists.
	OnSkipped(ctx context.Context, id string)
}

// =============================================================================
// No-op Implementations
// =============================================================================

// NoopRenderHooks is a no-op implementation of RenderHooks.
type NoopRenderHooks struct{}

func (NoopRenderHooks) OnStepStart(context.Context, string)                          {}
func (NoopRenderHooks) OnStepComplete(context.Context, string, time.Duration, error) {}

// NoopRegistryHooks is a no-op implementation of RegistryHooks.
type NoopRegistryHooks struct{}

func (NoopRegistryHooks) OnRegistered(context.Context, string) {}
func (NoopRegistryHooks) OnSkipped(context.Context, string)    {}

// =============================================================================
// Global Hook Registry
// =============================================================================

var (
	renderHooks   RenderHooks   = NoopRenderHooks{}
	registryHooks RegistryHooks = NoopRegistryHooks{}
	hooksMu       sync.RWMutex
)

// SetRenderHooks registers custom render hooks.
// This should be called once at application startup before rendering.
func SetRenderHooks(h RenderHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		renderHooks = h
	}
}

// SetRegistryHooks registers custom registry hooks.
func SetRegistryHooks(h RegistryHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		registryHooks = h
	}
}

// Render returns the registered render hooks.
func Render() RenderHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return renderHooks
}

// Registry returns the registered registry hooks.
func Registry() RegistryHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return registryHooks
}

// Reset restores all hooks to their no-op defaults.
// This is primarily useful for testing.
func Reset() {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	renderHooks = NoopRenderHooks{}
	registryHooks = NoopRegistryHooks{}
}
