package anneal

import (
	"math"
	"math/rand/v2"
	"testing"
	"time"

	"github.com/arvogrid/floorsa/pkg/catalogue"
)

func mustCatalogue(t *testing.T, blocks []catalogue.Block) *catalogue.Catalogue {
	t.Helper()
	cat, err := catalogue.New(blocks)
	if err != nil {
		t.Fatalf("catalogue.New() error = %v", err)
	}
	return cat
}

func TestStepsPerTempNeverLessThanOne(t *testing.T) {
	p := Params{Factor: 0}
	if got := p.StepsPerTemp(5); got != 1 {
		t.Errorf("StepsPerTemp(5) = %d, want 1", got)
	}
	p = Params{Factor: 2}
	if got := p.StepsPerTemp(5); got != 10 {
		t.Errorf("StepsPerTemp(5) = %d, want 10", got)
	}
}

func TestRunReturnsBestWithinDeadline(t *testing.T) {
	cat := mustCatalogue(t, []catalogue.Block{
		{Name: "A1", Variants: []catalogue.Variant{{W: 10, H: 20}, {W: 20, H: 10}}},
		{Name: "A2", Variants: []catalogue.Variant{{W: 5, H: 5}}},
		{Name: "A3", Variants: []catalogue.Variant{{W: 8, H: 3}, {W: 3, H: 8}}},
	})
	p := Params{TStart: 100, TMin: 1, CoolingRate: 0.8, Factor: 1}
	r := rand.New(rand.NewPCG(1, 1))
	deadline := time.Now().Add(200 * time.Millisecond)

	var improvements int
	best, res := Run(cat, p, deadline, r, func(Improvement) { improvements++ })

	if best == nil {
		t.Fatal("Run() returned nil tree")
	}
	if res.Cost >= 1e18 {
		t.Errorf("Cost = %v, unexpectedly degenerate", res.Cost)
	}
	if improvements == 0 {
		t.Error("onImprove was never called despite at least the initial tree")
	}
	if err := best.Validate(cat); err != nil {
		t.Errorf("best tree invalid: %v", err)
	}
}

func TestRunRespectsImmediateDeadline(t *testing.T) {
	cat := mustCatalogue(t, []catalogue.Block{
		{Name: "A1", Variants: []catalogue.Variant{{W: 1, H: 1}}},
	})
	p := Params{TStart: 10, TMin: 1, CoolingRate: 0.9, Factor: 1}
	r := rand.New(rand.NewPCG(2, 2))
	deadline := time.Now().Add(-time.Second)

	best, res := Run(cat, p, deadline, r, nil)
	if best == nil {
		t.Fatal("Run() returned nil tree even with an elapsed deadline")
	}
	// sanity: a single 1x1 block has area 1, cost dominated by area_ar.
	if res.Area != 1 {
		t.Errorf("Area = %v, want 1 (single 1x1 block)", res.Area)
	}
}

func TestAccept(t *testing.T) {
	r := rand.New(rand.NewPCG(3, 3))
	if !accept(-1, 10, r) {
		t.Error("accept() = false for an improving move, want true")
	}
	if accept(1, 0, r) {
		t.Error("accept() = true at T=0 for a worsening move, want false")
	}
}

// TestAcceptMatchesMetropolisLaw samples accept() over many draws for a
// worsening move (delta>0, T>0) and checks the empirical acceptance rate
// converges to the closed-form Metropolis probability exp(-delta/T), rather
// than only exercising the delta<0 and T=0 boundaries.
func TestAcceptMatchesMetropolisLaw(t *testing.T) {
	const trials = 200000
	cases := []struct {
		delta, T float64
	}{
		{delta: 1, T: 2},
		{delta: 5, T: 10},
		{delta: 0.5, T: 0.5},
	}
	for _, c := range cases {
		want := math.Exp(-c.delta / c.T)
		r := rand.New(rand.NewPCG(uint64(c.delta*1000), uint64(c.T*1000)))
		accepted := 0
		for i := 0; i < trials; i++ {
			if accept(c.delta, c.T, r) {
				accepted++
			}
		}
		got := float64(accepted) / float64(trials)
		if diff := math.Abs(got - want); diff > 0.01 {
			t.Errorf("delta=%v T=%v: empirical acceptance rate = %v, want %v (diff %v > 0.01 tolerance)", c.delta, c.T, got, want, diff)
		}
	}
}
