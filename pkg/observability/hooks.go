// Package observability provides hooks for metrics, tracing, and logging
// around a search run, without adding a hard dependency on any specific
// backend.
//
// # Architecture
//
// The package uses a simple hooks pattern:
//   - Define hook interfaces for different event categories
//   - Provide no-op default implementations
//   - Allow registration of custom implementations at startup
//
// This approach:
//   - Avoids import cycles (hooks are registered by main, not by libraries)
//   - Keeps the core library dependency-free from observability frameworks
//   - Allows different backends (OpenTelemetry, Prometheus, DataDog, etc.)
//
// # Usage
//
// Register hooks at application startup:
//
//	func main() {
//	    observability.SetSearchHooks(&mySearchHooks{})
//	    observability.SetWorkerHooks(&myWorkerHooks{})
//	    // ... run application
//	}
//
// Strategies call hooks to emit events:
//
//	observability.Search().OnSearchStart(ctx, tag, workers)
//	// ... run the annealing loop ...
//	observability.Search().OnSearchComplete(ctx, tag, best, duration, err)
package observability

import (
	"context"
	"sync"
	"time"
)

// =============================================================================
// Search Hooks
// =============================================================================

// SearchHooks receives events from one strategy invocation, start to finish.
type SearchHooks interface {
	// OnSearchStart fires once a strategy begins running, before any worker
	// starts its annealing loop.
	OnSearchStart(ctx context.Context, tag string, workers int)

	// OnSearchComplete fires once the strategy returns, whether or not it
	// improved on the ledger's seed.
	OnSearchComplete(ctx context.Context, tag string, bestCost float64, duration time.Duration, err error)

	// OnImprovement fires every time the ledger accepts a new best cost.
	OnImprovement(ctx context.Context, cost float64, elapsed time.Duration)
}

// =============================================================================
// Worker Hooks
// =============================================================================

// WorkerHooks receives per-worker lifecycle events. The multistart strategy
// calls OnWorkerStart and OnWorkerDone from each worker goroutine; parallel
// tempering calls OnExchange from its exchange step. The parallel-moves
// strategy calls none of these hooks.
type WorkerHooks interface {
	// OnWorkerStart fires when a worker goroutine begins its loop.
	OnWorkerStart(ctx context.Context, workerID int)

	// OnWorkerDone fires when a worker goroutine returns, reporting how much
	// work it completed; multistart workers report the number of complete
	// SA runs they finished.
	OnWorkerDone(ctx context.Context, workerID int, steps int)

	// OnExchange fires after a parallel-tempering replica-swap attempt.
	OnExchange(ctx context.Context, i, j int, accepted bool)
}

// =============================================================================
// No-op Implementations
// =============================================================================

// NoopSearchHooks is a no-op implementation of SearchHooks.
type NoopSearchHooks struct{}

func (NoopSearchHooks) OnSearchStart(context.Context, string, int)                             {}
func (NoopSearchHooks) OnSearchComplete(context.Context, string, float64, time.Duration, error) {}
func (NoopSearchHooks) OnImprovement(context.Context, float64, time.Duration)                   {}

// NoopWorkerHooks is a no-op implementation of WorkerHooks.
type NoopWorkerHooks struct{}

func (NoopWorkerHooks) OnWorkerStart(context.Context, int)         {}
func (NoopWorkerHooks) OnWorkerDone(context.Context, int, int)     {}
func (NoopWorkerHooks) OnExchange(context.Context, int, int, bool) {}

// =============================================================================
// Global Hook Registry
// =============================================================================

var (
	searchHooks SearchHooks = NoopSearchHooks{}
	workerHooks WorkerHooks = NoopWorkerHooks{}
	hooksMu     sync.RWMutex
)

// SetSearchHooks registers custom search hooks. Call once at application
// startup before running any strategy.
func SetSearchHooks(h SearchHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		searchHooks = h
	}
}

// SetWorkerHooks registers custom worker hooks. Call once at application
// startup before running any strategy.
func SetWorkerHooks(h WorkerHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		workerHooks = h
	}
}

// Search returns the registered search hooks.
func Search() SearchHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return searchHooks
}

// Worker returns the registered worker hooks.
func Worker() WorkerHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return workerHooks
}

// Reset restores all hooks to their no-op defaults. Primarily useful for
// testing.
func Reset() {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	searchHooks = NoopSearchHooks{}
	workerHooks = NoopWorkerHooks{}
}
