// Package anneal implements the single-run simulated-annealing kernel: a
// temperature loop with Metropolis acceptance driving the packer, cost
// evaluator, and perturbation operators.
package anneal

import (
	"math"
	"math/rand/v2"
	"time"

	"github.com/arvogrid/floorsa/pkg/bstree"
	"github.com/arvogrid/floorsa/pkg/catalogue"
	"github.com/arvogrid/floorsa/pkg/cost"
	"github.com/arvogrid/floorsa/pkg/packer"
	"github.com/arvogrid/floorsa/pkg/perturb"
)

// Params is the hyperparameter bundle injected per run.
type Params struct {
	TStart      float64
	TMin        float64
	CoolingRate float64
	Factor      float64
}

// StepsPerTemp returns the number of proposals evaluated at each
// temperature for a catalogue of size n: ceil(Factor*n), never less than 1.
func (p Params) StepsPerTemp(n int) int {
	steps := int(math.Ceil(p.Factor * float64(n)))
	if steps < 1 {
		steps = 1
	}
	return steps
}

// Improvement is fired every time Run discovers a new best-in-run cost.
type Improvement struct {
	Tree   *bstree.Tree
	Result cost.Result
}

// Run executes one complete SA search starting from a fresh random tree and
// returns the best tree and cost found before the deadline elapses. onImprove,
// if non-nil, is called synchronously every time best-in-run improves.
func Run(cat *catalogue.Catalogue, p Params, deadline time.Time, r *rand.Rand, onImprove func(Improvement)) (*bstree.Tree, cost.Result) {
	current := bstree.NewRandom(cat, r)
	packer.Pack(current)
	currentRes := cost.Evaluate(current, cat)

	best := current.Clone()
	bestRes := currentRes
	if onImprove != nil {
		onImprove(Improvement{Tree: best.Clone(), Result: bestRes})
	}

	n := cat.Len()
	steps := p.StepsPerTemp(n)
	T := p.TStart

	for T > p.TMin && time.Now().Before(deadline) {
		for i := 0; i < steps; i++ {
			candidate := current.Clone()
			perturb.Perturb(candidate, cat, r)
			packer.Pack(candidate)
			candRes := cost.Evaluate(candidate, cat)

			delta := candRes.Cost - currentRes.Cost
			if accept(delta, T, r) {
				current, currentRes = candidate, candRes
				if currentRes.Cost < bestRes.Cost {
					best, bestRes = current.Clone(), currentRes
					if onImprove != nil {
						onImprove(Improvement{Tree: best.Clone(), Result: bestRes})
					}
				}
			}
		}
		T *= p.CoolingRate
	}

	return best, bestRes
}

// accept implements Metropolis acceptance: always accept improving moves,
// accept worsening moves with probability exp(-delta/T).
func accept(delta, T float64, r *rand.Rand) bool {
	if delta < 0 {
		return true
	}
	if T <= 0 {
		return false
	}
	return r.Float64() < math.Exp(-delta/T)
}
