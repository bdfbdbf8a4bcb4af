package pipeline

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/charmbracelet/log"

	"github.com/arvogrid/floorsa/pkg/blockio"
	"github.com/arvogrid/floorsa/pkg/catalogue"
	"github.com/arvogrid/floorsa/pkg/convergence"
	"github.com/arvogrid/floorsa/pkg/ledger"
	"github.com/arvogrid/floorsa/pkg/strategy"
)

// Runner encapsulates one floorsa invocation. It is stateless apart from
// its logger, so the same Runner can drive multiple Execute calls from
// different goroutines.
type Runner struct {
	Logger *log.Logger
}

// NewRunner returns a Runner logging through logger. A nil logger discards
// output.
func NewRunner(logger *log.Logger) *Runner {
	if logger == nil {
		logger = log.NewWithOptions(io.Discard, log.Options{})
	}
	return &Runner{Logger: logger}
}

// Execute loads the catalogue at opts.InputPath, runs the configured
// strategy until opts.Deadline elapses, and returns the best tree found.
func (r *Runner) Execute(ctx context.Context, opts Options) (*Result, error) {
	if opts.Logger == nil {
		opts.Logger = r.Logger
	}
	fellBack := opts.setDefaults()
	if fellBack {
		opts.Logger.Warnf("unknown strategy tag, falling back to %s", strategy.MultiStartCoarse)
	}

	loadStart := time.Now()
	cat, err := r.loadCatalogue(opts.InputPath)
	if err != nil {
		return nil, fmt.Errorf("load catalogue: %w", err)
	}
	loadTime := time.Since(loadStart)
	opts.Logger.Infof("loaded catalogue: %d blocks", cat.Len())

	led := ledger.New(64)
	convDone := r.startConvergenceLogger(opts.ConvergenceWriter, led, opts.Logger)

	opts.Logger.Infof("running %s with %d workers", opts.Strategy, opts.Workers)
	searchStart := time.Now()
	deadline := searchStart.Add(opts.Deadline)

	if opts.OnLedgerReady != nil {
		opts.OnLedgerReady(led, deadline)
	}

	tree, res := strategy.Run(opts.Strategy, strategy.Options{
		Catalogue: cat,
		Params:    opts.Params,
		Deadline:  deadline,
		Workers:   opts.Workers,
		Ledger:    led,
	})
	searchTime := time.Since(searchStart)

	led.Close()
	<-convDone

	if tree == nil {
		return nil, fmt.Errorf("strategy %s produced no result", opts.Strategy)
	}
	opts.Logger.Infof("best cost %.6f (area %.4f, chip %.2fx%.2f) after %s", res.Cost, res.Area, res.ChipW, res.ChipH, searchTime.Round(time.Millisecond))

	return &Result{
		Catalogue: cat,
		Tree:      tree,
		Cost:      res,
		Stats: Stats{
			LoadTime:   loadTime,
			SearchTime: searchTime,
			Strategy:   opts.Strategy,
			Workers:    opts.Workers,
		},
	}, nil
}

func (r *Runner) loadCatalogue(path string) (*catalogue.Catalogue, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return blockio.ReadCatalogue(f)
}

// startConvergenceLogger, if w is non-nil, spawns a goroutine draining led's
// event stream to a CSV logger and returns a channel closed once the
// goroutine exits (i.e. once led is closed and drained). If w is nil, the
// returned channel is already closed.
func (r *Runner) startConvergenceLogger(w io.Writer, led *ledger.Ledger, lg *log.Logger) <-chan struct{} {
	done := make(chan struct{})
	if w == nil {
		close(done)
		return done
	}
	csvLogger := convergence.New(w)
	go func() {
		defer close(done)
		if err := convergence.Run(csvLogger, led.Events()); err != nil {
			lg.Warnf("convergence log: %v", err)
		}
	}()
	return done
}
