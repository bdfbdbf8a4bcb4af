// Package pipeline orchestrates one end-to-end floorsa invocation: load a
// catalogue, run the configured strategy to its deadline, and produce a
// result the CLI can render as an output block file and convergence log.
//
// # Architecture
//
// The pipeline consists of three stages:
//
//  1. Load: parse the .block input into a Catalogue
//  2. Search: run the chosen strategy's SA-based search to its deadline
//  3. Report: package the best tree, its cost, and run statistics
//
// # Usage
//
//	runner := pipeline.NewRunner(logger)
//	opts := pipeline.Options{
//	    InputPath: "ami33.block",
//	    Strategy:  strategy.MultiStartCoarse,
//	    Params:    anneal.Params{TStart: 100, TMin: 0.1, CoolingRate: 0.9, Factor: 1},
//	    Workers:   8,
//	    Deadline:  30 * time.Second,
//	}
//	result, err := runner.Execute(ctx, opts)
package pipeline

import (
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/arvogrid/floorsa/pkg/anneal"
	"github.com/arvogrid/floorsa/pkg/bstree"
	"github.com/arvogrid/floorsa/pkg/catalogue"
	"github.com/arvogrid/floorsa/pkg/cost"
	"github.com/arvogrid/floorsa/pkg/ledger"
	"github.com/arvogrid/floorsa/pkg/strategy"
)

// Options configures one run of the pipeline.
type Options struct {
	InputPath string

	Strategy strategy.Tag
	Params   anneal.Params
	Workers  int
	Deadline time.Duration

	// ConvergenceWriter, if non-nil, receives one CSV row per ledger
	// improvement for the duration of the run.
	ConvergenceWriter io.Writer

	// OnLedgerReady, if non-nil, is called once synchronously, after the
	// ledger is created but before the strategy starts running, with the
	// live ledger and the absolute search deadline. Callers use it to wire
	// up side channels (an HTTP status endpoint, a terminal progress view)
	// that read the ledger concurrently with the search itself.
	OnLedgerReady func(led *ledger.Ledger, deadline time.Time)

	Logger *log.Logger
}

// Result carries everything a caller needs to render the outcome of a run.
type Result struct {
	Catalogue *catalogue.Catalogue
	Tree      *bstree.Tree
	Cost      cost.Result
	Stats     Stats
}

// Stats records timing for one run.
type Stats struct {
	LoadTime   time.Duration
	SearchTime time.Duration
	Strategy   strategy.Tag
	Workers    int
}

// setDefaults falls back to MultiStart_Coarse for an empty or unrecognised
// strategy tag, reporting whether the fallback was due to an unrecognised
// (as opposed to merely unset) tag so the caller can warn accordingly.
func (o *Options) setDefaults() (fellBack bool) {
	if o.Strategy == "" {
		o.Strategy = strategy.MultiStartCoarse
		return false
	}
	if !o.Strategy.Valid() {
		o.Strategy = strategy.MultiStartCoarse
		return true
	}
	return false
}
