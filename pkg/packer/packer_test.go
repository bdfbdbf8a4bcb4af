package packer

import (
	"testing"

	"github.com/arvogrid/floorsa/pkg/bstree"
)

func singleNodeTree(w, h float64) *bstree.Tree {
	return &bstree.Tree{
		Root:  0,
		Nodes: []bstree.Node{{Block: 0, Variant: 0, Parent: bstree.None, Left: bstree.None, Right: bstree.None, W: w, H: h}},
	}
}

func TestPackEmptyTree(t *testing.T) {
	tr := &bstree.Tree{Root: bstree.None}
	Pack(tr)
	if tr.ChipW != 0 || tr.ChipH != 0 || tr.Area != 0 {
		t.Errorf("empty tree chip = (%g,%g,%g), want (0,0,0)", tr.ChipW, tr.ChipH, tr.Area)
	}
}

func TestPackSingleNode(t *testing.T) {
	tr := singleNodeTree(10, 20)
	Pack(tr)
	if tr.ChipW != 10 || tr.ChipH != 20 || tr.Area != 200 {
		t.Errorf("chip = (%g,%g,%g), want (10,20,200)", tr.ChipW, tr.ChipH, tr.Area)
	}
	n := tr.Nodes[0]
	if n.X != 0 || n.Y != 0 {
		t.Errorf("root placed at (%g,%g), want (0,0)", n.X, n.Y)
	}
}

func TestPackLeftChildSitsBesideParent(t *testing.T) {
	// root (10x10) with a left child (5x5): left sits at x=10, y=0.
	tr := &bstree.Tree{
		Root: 0,
		Nodes: []bstree.Node{
			{Block: 0, Parent: bstree.None, Left: 1, Right: bstree.None, W: 10, H: 10},
			{Block: 1, Parent: 0, Left: bstree.None, Right: bstree.None, W: 5, H: 5},
		},
	}
	Pack(tr)
	if tr.Nodes[1].X != 10 || tr.Nodes[1].Y != 0 {
		t.Errorf("left child placed at (%g,%g), want (10,0)", tr.Nodes[1].X, tr.Nodes[1].Y)
	}
	if tr.ChipW != 15 || tr.ChipH != 10 {
		t.Errorf("chip = (%g,%g), want (15,10)", tr.ChipW, tr.ChipH)
	}
}

func TestPackRightChildSharesParentX(t *testing.T) {
	// root (10x10) with a right child (5x5): right child sits at x=0,
	// stacked on top of the root since it shares the parent's x-interval.
	tr := &bstree.Tree{
		Root: 0,
		Nodes: []bstree.Node{
			{Block: 0, Parent: bstree.None, Left: bstree.None, Right: 1, W: 10, H: 10},
			{Block: 1, Parent: 0, Left: bstree.None, Right: bstree.None, W: 5, H: 5},
		},
	}
	Pack(tr)
	if tr.Nodes[1].X != 0 {
		t.Errorf("right child X = %g, want 0", tr.Nodes[1].X)
	}
	if tr.Nodes[1].Y != 10 {
		t.Errorf("right child Y = %g, want 10 (stacked above parent)", tr.Nodes[1].Y)
	}
	if tr.ChipW != 10 || tr.ChipH != 15 {
		t.Errorf("chip = (%g,%g), want (10,15)", tr.ChipW, tr.ChipH)
	}
}

func TestPackDeterministic(t *testing.T) {
	build := func() *bstree.Tree {
		return &bstree.Tree{
			Root: 0,
			Nodes: []bstree.Node{
				{Block: 0, Parent: bstree.None, Left: 1, Right: 2, W: 10, H: 5},
				{Block: 1, Parent: 0, Left: bstree.None, Right: bstree.None, W: 3, H: 3},
				{Block: 2, Parent: 0, Left: bstree.None, Right: bstree.None, W: 4, H: 4},
			},
		}
	}
	a, b := build(), build()
	Pack(a)
	Pack(b)
	for i := range a.Nodes {
		if a.Nodes[i].X != b.Nodes[i].X || a.Nodes[i].Y != b.Nodes[i].Y {
			t.Errorf("node %d differs between identical packs: (%g,%g) vs (%g,%g)",
				i, a.Nodes[i].X, a.Nodes[i].Y, b.Nodes[i].X, b.Nodes[i].Y)
		}
	}
	if a.ChipW != b.ChipW || a.ChipH != b.ChipH {
		t.Errorf("chip dims differ between identical packs")
	}
}

// rectsOverlap reports whether two axis-aligned rectangles overlap (sharing a
// boundary edge is not an overlap).
func rectsOverlap(ax, ay, aw, ah, bx, by, bw, bh float64) bool {
	return ax < bx+bw && bx < ax+aw && ay < by+bh && by < ay+ah
}

func TestPackNoOverlap(t *testing.T) {
	tr := &bstree.Tree{
		Root: 0,
		Nodes: []bstree.Node{
			{Block: 0, Parent: bstree.None, Left: 1, Right: bstree.None, W: 10, H: 5},
			{Block: 1, Parent: 0, Left: 2, Right: bstree.None, W: 4, H: 4},
			{Block: 2, Parent: 1, Left: bstree.None, Right: 3, W: 3, H: 3},
			{Block: 3, Parent: 2, Left: bstree.None, Right: bstree.None, W: 2, H: 2},
		},
	}
	Pack(tr)
	for i := 0; i < len(tr.Nodes); i++ {
		for j := i + 1; j < len(tr.Nodes); j++ {
			a, b := tr.Nodes[i], tr.Nodes[j]
			if rectsOverlap(a.X, a.Y, a.W, a.H, b.X, b.Y, b.W, b.H) {
				t.Errorf("nodes %d and %d overlap: %+v vs %+v", i, j, a, b)
			}
		}
	}
}
