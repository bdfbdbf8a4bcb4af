// Package ledger implements the single shared best-solution record every
// search strategy writes to: a compare-and-replace under mutual exclusion,
// paired with a non-blocking stream of improvement events for convergence
// logging.
package ledger

import (
	"context"
	"sync"
	"time"

	"github.com/arvogrid/floorsa/pkg/bstree"
	"github.com/arvogrid/floorsa/pkg/cost"
	"github.com/arvogrid/floorsa/pkg/observability"
)

// Improvement is one event in the ledger's monotone-decreasing cost
// sequence.
type Improvement struct {
	At      time.Time
	Elapsed time.Duration
	Result  cost.Result
}

// Ledger is safe for concurrent use by any number of workers. The zero
// value is not usable; construct one with New.
type Ledger struct {
	mu    sync.Mutex
	best  *bstree.Tree
	res   cost.Result
	have  bool
	start time.Time

	events chan Improvement
}

// New returns an empty ledger with event capacity for buffered, non-blocking
// delivery of improvement events to a consumer (e.g. the convergence
// logger).
func New(eventBuffer int) *Ledger {
	return &Ledger{
		start:  time.Now(),
		events: make(chan Improvement, eventBuffer),
	}
}

// Events returns the channel improvement events are published to. Closed by
// Close.
func (l *Ledger) Events() <-chan Improvement {
	return l.events
}

// Update compares res against the stored best and, if strictly lower,
// replaces it and publishes an improvement event. It reports whether the
// replacement happened. The ledger never rolls back: an incoming cost equal
// to or greater than the stored best is a no-op.
func (l *Ledger) Update(t *bstree.Tree, res cost.Result) bool {
	l.mu.Lock()
	improved := !l.have || res.Cost < l.res.Cost
	if improved {
		l.best = t.Clone()
		l.res = res
		l.have = true
	}
	l.mu.Unlock()

	if !improved {
		return false
	}

	now := time.Now()
	evt := Improvement{At: now, Elapsed: now.Sub(l.start), Result: res}
	observability.Search().OnImprovement(context.Background(), res.Cost, evt.Elapsed)
	select {
	case l.events <- evt:
	default:
		// Consumer is behind; dropping an event never affects correctness,
		// only convergence-log granularity, so the SA loop is never stalled.
	}
	return true
}

// Snapshot returns the current best tree and cost under lock. The returned
// tree is a clone, safe to retain past further Update calls. ok is false if
// no Update has yet succeeded.
func (l *Ledger) Snapshot() (tree *bstree.Tree, res cost.Result, ok bool) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if !l.have {
		return nil, cost.Result{}, false
	}
	return l.best.Clone(), l.res, true
}

// Close closes the events channel. Callers must stop calling Update before
// calling Close.
func (l *Ledger) Close() {
	close(l.events)
}
