package strategy

import (
	"context"
	"math"
	"math/rand/v2"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/arvogrid/floorsa/pkg/bstree"
	"github.com/arvogrid/floorsa/pkg/catalogue"
	"github.com/arvogrid/floorsa/pkg/cost"
	"github.com/arvogrid/floorsa/pkg/ledger"
	"github.com/arvogrid/floorsa/pkg/observability"
	"github.com/arvogrid/floorsa/pkg/packer"
	"github.com/arvogrid/floorsa/pkg/perturb"
	"github.com/arvogrid/floorsa/pkg/rng"
)

// replica is one tempering replica: a private tree state, its fixed
// temperature slot, a private RNG, and its most recent cost.
type replica struct {
	tree *bstree.Tree
	temp float64
	rng  *rand.Rand
	res  cost.Result
}

// runTempering allocates Workers replicas at geometrically spaced fixed
// temperatures and alternates parallel sweeps with a single-designated-
// worker exchange pass between neighbouring replicas only.
func runTempering(opts Options) (*bstree.Tree, cost.Result) {
	w := opts.Workers
	if w < 1 {
		w = 1
	}
	origin := time.Now().UnixNano()
	temps := temperatureLadder(opts.Params.TStart, opts.Params.TMin, w)
	replicas := make([]*replica, w)

	var initGroup errgroup.Group
	for i := 0; i < w; i++ {
		i := i
		initGroup.Go(func() error {
			r := rng.New(origin, i)
			tree := bstree.NewRandom(opts.Catalogue, r)
			packer.Pack(tree)
			res := cost.Evaluate(tree, opts.Catalogue)
			replicas[i] = &replica{tree: tree, temp: temps[i], rng: r, res: res}
			return nil
		})
	}
	_ = initGroup.Wait()

	for _, rep := range replicas {
		opts.Ledger.Update(rep.tree, rep.res)
	}

	n := opts.Catalogue.Len()
	steps := opts.Params.StepsPerTemp(n)
	exchangeRNG := rng.New(origin, w)

	for time.Now().Before(opts.Deadline) {
		var sweepGroup errgroup.Group
		for i := 0; i < w; i++ {
			rep := replicas[i]
			sweepGroup.Go(func() error {
				sweep(rep, opts.Catalogue, steps, opts.Ledger)
				return nil
			})
		}
		_ = sweepGroup.Wait()

		exchange(replicas, exchangeRNG)
		for _, rep := range replicas {
			opts.Ledger.Update(rep.tree, rep.res)
		}
	}

	tree, res, ok := opts.Ledger.Snapshot()
	if !ok {
		return nil, cost.Result{}
	}
	return tree, res
}

// sweep runs steps Metropolis proposals against rep's tree at its fixed
// temperature, using rep's own RNG, and records any improvement to led
// inline.
func sweep(rep *replica, cat *catalogue.Catalogue, steps int, led *ledger.Ledger) {
	for i := 0; i < steps; i++ {
		candidate := rep.tree.Clone()
		perturb.Perturb(candidate, cat, rep.rng)
		packer.Pack(candidate)
		candRes := cost.Evaluate(candidate, cat)

		delta := candRes.Cost - rep.res.Cost
		if delta < 0 || rep.rng.Float64() < math.Exp(-delta/rep.temp) {
			rep.tree, rep.res = candidate, candRes
			led.Update(rep.tree, rep.res)
		}
	}
}

// exchange attempts, for each neighbouring pair of replica slots, a
// Metropolis-criterion state swap. Only adjacent slots ever exchange.
func exchange(replicas []*replica, r *rand.Rand) {
	ctx := context.Background()
	for i := 0; i < len(replicas)-1; i++ {
		a, b := replicas[i], replicas[i+1]
		delta := (a.res.Cost - b.res.Cost) * (1/a.temp - 1/b.temp)
		p := math.Min(1, math.Exp(delta))
		accepted := r.Float64() < p
		if accepted {
			a.tree, b.tree = b.tree, a.tree
			a.res, b.res = b.res, a.res
		}
		observability.Worker().OnExchange(ctx, i, i+1, accepted)
	}
}

// temperatureLadder returns w temperatures geometrically spaced from tStart
// (hot, slot 0) to tMin (cold, slot w-1).
func temperatureLadder(tStart, tMin float64, w int) []float64 {
	temps := make([]float64, w)
	if w == 1 {
		temps[0] = tStart
		return temps
	}
	alpha := math.Pow(tMin/tStart, 1/float64(w-1))
	for i := 0; i < w; i++ {
		temps[i] = tStart * math.Pow(alpha, float64(i))
	}
	return temps
}
