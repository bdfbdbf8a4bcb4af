package strategy

import (
	"context"
	"sync"
	"time"

	"github.com/arvogrid/floorsa/pkg/anneal"
	"github.com/arvogrid/floorsa/pkg/bstree"
	"github.com/arvogrid/floorsa/pkg/cost"
	"github.com/arvogrid/floorsa/pkg/observability"
	"github.com/arvogrid/floorsa/pkg/rng"
)

// runMultistart spawns Workers goroutines, each with its own RNG, looping
// repeated complete SA runs from fresh random trees until the deadline.
// Every improvement is recorded as soon as it is observed, and each
// worker's final best is merged again on exit as a safety net.
func runMultistart(opts Options) (*bstree.Tree, cost.Result) {
	origin := time.Now().UnixNano()
	var wg sync.WaitGroup

	for w := 0; w < opts.Workers; w++ {
		wg.Add(1)
		go func(workerID int) {
			defer wg.Done()
			ctx := context.Background()
			observability.Worker().OnWorkerStart(ctx, workerID)
			r := rng.New(origin, workerID)

			var privateBest *bstree.Tree
			var privateRes cost.Result
			have := false
			runs := 0

			for time.Now().Before(opts.Deadline) {
				runs++
				best, res := anneal.Run(opts.Catalogue, opts.Params, opts.Deadline, r, func(imp anneal.Improvement) {
					opts.Ledger.Update(imp.Tree, imp.Result)
				})
				if !have || res.Cost < privateRes.Cost {
					privateBest, privateRes, have = best, res, true
				}
			}
			if have {
				opts.Ledger.Update(privateBest, privateRes)
			}
			observability.Worker().OnWorkerDone(ctx, workerID, runs)
		}(w)
	}

	wg.Wait()

	tree, res, ok := opts.Ledger.Snapshot()
	if !ok {
		return nil, cost.Result{}
	}
	return tree, res
}
