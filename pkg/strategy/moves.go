package strategy

import (
	"math"
	"math/rand/v2"
	"sync"
	"time"

	"github.com/arvogrid/floorsa/pkg/bstree"
	"github.com/arvogrid/floorsa/pkg/cost"
	"github.com/arvogrid/floorsa/pkg/packer"
	"github.com/arvogrid/floorsa/pkg/perturb"
	"github.com/arvogrid/floorsa/pkg/rng"
)

// runParallelMoves drives a single shared SA run (the flattened resolution
// of the fine-grained strategy's nested-parallelism open question) whose
// inner proposal loop pools all Workers goroutines to evaluate one
// candidate each per step; a single driver goroutine alone selects the
// minimum-cost candidate and makes the Metropolis accept/reject decision.
// Like the other two strategies, it restarts from a fresh random tree and
// cooling schedule every time one schedule converges, until the deadline.
func runParallelMoves(opts Options) (*bstree.Tree, cost.Result) {
	w := opts.Workers
	if w < 1 {
		w = 1
	}
	origin := time.Now().UnixNano()
	driverRNG := rng.New(origin, 0)

	n := opts.Catalogue.Len()
	steps := opts.Params.StepsPerTemp(n)

	for time.Now().Before(opts.Deadline) {
		current := bstree.NewRandom(opts.Catalogue, driverRNG)
		packer.Pack(current)
		currentRes := cost.Evaluate(current, opts.Catalogue)
		opts.Ledger.Update(current, currentRes)

		T := opts.Params.TStart

		for T > opts.Params.TMin && time.Now().Before(opts.Deadline) {
			for i := 0; i < steps; i++ {
				candidates := make([]*bstree.Tree, w)
				results := make([]cost.Result, w)
				candidateRNGs := make([]*rand.Rand, w)
				for c := 0; c < w; c++ {
					candidateRNGs[c] = rng.Derive(driverRNG, c)
				}

				var wg sync.WaitGroup
				for c := 0; c < w; c++ {
					wg.Add(1)
					go func(c int) {
						defer wg.Done()
						cand := current.Clone()
						perturb.Perturb(cand, opts.Catalogue, candidateRNGs[c])
						packer.Pack(cand)
						candidates[c] = cand
						results[c] = cost.Evaluate(cand, opts.Catalogue)
					}(c)
				}
				wg.Wait()

				best := pickBest(candidates, results)
				delta := results[best].Cost - currentRes.Cost
				if delta < 0 || driverRNG.Float64() < math.Exp(-delta/T) {
					current, currentRes = candidates[best], results[best]
					opts.Ledger.Update(current, currentRes)
				}
			}
			T *= opts.Params.CoolingRate
		}
	}

	tree, res, ok := opts.Ledger.Snapshot()
	if !ok {
		return nil, cost.Result{}
	}
	return tree, res
}

func pickBest(candidates []*bstree.Tree, results []cost.Result) int {
	best := 0
	for i := 1; i < len(results); i++ {
		if results[i].Cost < results[best].Cost {
			best = i
		}
	}
	return best
}
