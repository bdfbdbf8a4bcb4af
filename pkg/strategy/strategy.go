// Package strategy dispatches the three concurrency strategies over the SA
// kernel: independent multistart, parallel tempering, and parallel move
// generation. The three strategies share enough internal divergence
// (barriers, shared replica-vector access) that a tagged dispatch is
// preferred here over a runtime-polymorphic kernel.
package strategy

import (
	"context"
	"time"

	"github.com/arvogrid/floorsa/pkg/anneal"
	"github.com/arvogrid/floorsa/pkg/bstree"
	"github.com/arvogrid/floorsa/pkg/catalogue"
	"github.com/arvogrid/floorsa/pkg/cost"
	"github.com/arvogrid/floorsa/pkg/ledger"
	"github.com/arvogrid/floorsa/pkg/observability"
)

// Tag identifies one of the three strategies by its external name.
type Tag string

const (
	MultiStartCoarse        Tag = "MultiStart_Coarse"
	ParallelTemperingMedium Tag = "ParallelTempering_Medium"
	ParallelMovesFine       Tag = "ParallelMoves_Fine"
)

// Valid reports whether tag is one of the three recognised strategy tags.
func (tag Tag) Valid() bool {
	switch tag {
	case MultiStartCoarse, ParallelTemperingMedium, ParallelMovesFine:
		return true
	default:
		return false
	}
}

// Options bundles everything a strategy driver needs to run.
type Options struct {
	Catalogue *catalogue.Catalogue
	Params    anneal.Params
	Deadline  time.Time
	Workers   int
	Ledger    *ledger.Ledger
}

// Run dispatches to the strategy named by tag and returns the global best
// tree and cost once the deadline has elapsed. Every improvement discovered
// along the way is also recorded to opts.Ledger.
func Run(tag Tag, opts Options) (*bstree.Tree, cost.Result) {
	ctx := context.Background()
	start := time.Now()
	observability.Search().OnSearchStart(ctx, string(tag), opts.Workers)

	var tree *bstree.Tree
	var res cost.Result
	switch tag {
	case ParallelTemperingMedium:
		tree, res = runTempering(opts)
	case ParallelMovesFine:
		tree, res = runParallelMoves(opts)
	default:
		tree, res = runMultistart(opts)
	}

	observability.Search().OnSearchComplete(ctx, string(tag), res.Cost, time.Since(start), nil)
	return tree, res
}
