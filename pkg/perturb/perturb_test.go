package perturb

import (
	"math/rand/v2"
	"testing"

	"github.com/arvogrid/floorsa/pkg/bstree"
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

func fiveBlockCatalogue(t *testing.T) *catalogue.Catalogue {
	return mustCatalogue(t, []catalogue.Block{
		{Name: "A1", Variants: []catalogue.Variant{{W: 1, H: 1}, {W: 2, H: 2}}},
		{Name: "A2", Variants: []catalogue.Variant{{W: 3, H: 3}}},
		{Name: "A3", Variants: []catalogue.Variant{{W: 4, H: 4}, {W: 5, H: 5}}},
		{Name: "A4", Variants: []catalogue.Variant{{W: 6, H: 6}}},
		{Name: "A5", Variants: []catalogue.Variant{{W: 7, H: 7}}},
	})
}

func TestPerturbPreservesInvariants(t *testing.T) {
	cat := fiveBlockCatalogue(t)
	r := rand.New(rand.NewPCG(1, 1))
	tr := bstree.NewRandom(cat, r)

	for i := 0; i < 200; i++ {
		Perturb(tr, cat, r)
		if err := tr.Validate(cat); err != nil {
			t.Fatalf("iteration %d: Validate() error = %v", i, err)
		}
	}
}

func TestSwapLeavesTopologyUnchanged(t *testing.T) {
	cat := fiveBlockCatalogue(t)
	r := rand.New(rand.NewPCG(2, 2))
	tr := bstree.NewRandom(cat, r)

	type links struct{ parent, left, right int }
	before := make([]links, len(tr.Nodes))
	for i, n := range tr.Nodes {
		before[i] = links{n.Parent, n.Left, n.Right}
	}

	swap(tr, r)

	for i, n := range tr.Nodes {
		got := links{n.Parent, n.Left, n.Right}
		if got != before[i] {
			t.Errorf("node %d links changed by swap: got %+v, want %+v", i, got, before[i])
		}
	}
}

func TestDetachThenAttachRestoresReachability(t *testing.T) {
	cat := fiveBlockCatalogue(t)
	r := rand.New(rand.NewPCG(3, 3))
	tr := bstree.NewRandom(cat, r)

	u := 4 // leaf at the tail of the initial left-spine
	p := tr.Nodes[u].Parent
	isLeft := tr.Nodes[p].Left == u

	detach(tr, u)
	// A detached node has no links, so it is unreachable until reattached.
	if err := tr.Validate(cat); err == nil {
		t.Fatal("after detach: Validate() error = nil, want an error for the unreachable detached node")
	}
	attach(tr, u, p, isLeft)
	if err := tr.Validate(cat); err != nil {
		t.Fatalf("after reattach: Validate() error = %v", err)
	}
	if tr.Nodes[u].Parent != p {
		t.Errorf("reattached node's parent = %d, want %d", tr.Nodes[u].Parent, p)
	}
}

func TestMoveNeverOrphansNodes(t *testing.T) {
	cat := fiveBlockCatalogue(t)
	r := rand.New(rand.NewPCG(4, 4))
	tr := bstree.NewRandom(cat, r)

	for i := 0; i < 100; i++ {
		move(tr, r)
		tr.RefreshDims(cat)
		if err := tr.Validate(cat); err != nil {
			t.Fatalf("iteration %d: Validate() error = %v", i, err)
		}
	}
}

func TestRotateReassignsVariantAmongAllOptions(t *testing.T) {
	cat := mustCatalogue(t, []catalogue.Block{
		{Name: "A1", Variants: []catalogue.Variant{{W: 1, H: 1}, {W: 2, H: 2}, {W: 3, H: 3}}},
	})
	r := rand.New(rand.NewPCG(5, 5))
	tr := bstree.NewRandom(cat, r)

	seen := map[int]bool{}
	for i := 0; i < 200; i++ {
		rotate(tr, cat, r)
		seen[tr.Nodes[0].Variant] = true
	}
	if len(seen) != 3 {
		t.Errorf("rotate visited %d distinct variants over 200 draws, want 3", len(seen))
	}
}
