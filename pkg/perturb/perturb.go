// Package perturb implements the three randomised B*-tree mutations used as
// the simulated-annealing kernel's proposal generator: rotate, swap, and
// move. Together they are complete — any binary tree on n labelled nodes is
// reachable from any other via a finite sequence of moves and swaps.
package perturb

import (
	"math/rand/v2"

	"github.com/arvogrid/floorsa/pkg/bstree"
	"github.com/arvogrid/floorsa/pkg/catalogue"
)

// Perturb draws op uniformly in [0,10] and applies rotate (op<=3), swap
// (op<=7), or move (otherwise) to t in place, then refreshes every node's
// cached dimensions from its (possibly changed) variant selection. Trees
// with fewer than two nodes are left untouched by swap and move.
func Perturb(t *bstree.Tree, cat *catalogue.Catalogue, r *rand.Rand) {
	op := r.IntN(11)
	switch {
	case op <= 3:
		rotate(t, cat, r)
	case op <= 7:
		swap(t, r)
	default:
		move(t, r)
	}
	t.RefreshDims(cat)
}

// rotate picks one node uniformly and, if its block has more than one
// variant, reassigns its variant index uniformly among all variants
// (including the current one).
func rotate(t *bstree.Tree, cat *catalogue.Catalogue, r *rand.Rand) {
	n := len(t.Nodes)
	if n == 0 {
		return
	}
	i := r.IntN(n)
	variants := cat.Block(t.Nodes[i].Block).Variants
	if len(variants) <= 1 {
		return
	}
	t.Nodes[i].Variant = r.IntN(len(variants))
}

// swap picks two distinct nodes uniformly and exchanges their block and
// variant selection, leaving tree topology untouched.
func swap(t *bstree.Tree, r *rand.Rand) {
	n := len(t.Nodes)
	if n < 2 {
		return
	}
	i, j := distinctPair(n, r)
	t.Nodes[i].Block, t.Nodes[j].Block = t.Nodes[j].Block, t.Nodes[i].Block
	t.Nodes[i].Variant, t.Nodes[j].Variant = t.Nodes[j].Variant, t.Nodes[i].Variant
}

// move picks a node u and a distinct destination p uniformly, detaches u,
// and reattaches it as a uniformly chosen child side of p.
func move(t *bstree.Tree, r *rand.Rand) {
	n := len(t.Nodes)
	if n < 2 {
		return
	}
	u, p := distinctPair(n, r)
	detach(t, u)
	attach(t, u, p, r.IntN(2) == 0)
}

func distinctPair(n int, r *rand.Rand) (int, int) {
	i := r.IntN(n)
	j := r.IntN(n)
	for j == i {
		j = r.IntN(n)
	}
	return i, j
}

// detach removes u from the tree, promoting its surviving subtree into its
// former slot. If u has both children, it grafts the right subtree onto the
// rightmost descendant of the left subtree before promoting the left
// subtree, so no node other than u is ever orphaned.
func detach(t *bstree.Tree, u int) {
	nd := &t.Nodes[u]
	p, l, right := nd.Parent, nd.Left, nd.Right

	var promoted int
	switch {
	case l != bstree.None && right != bstree.None:
		rightmost := l
		for t.Nodes[rightmost].Right != bstree.None {
			rightmost = t.Nodes[rightmost].Right
		}
		t.Nodes[rightmost].Right = right
		t.Nodes[right].Parent = rightmost
		promoted = l
	case l != bstree.None:
		promoted = l
	default:
		promoted = right
	}

	if promoted != bstree.None {
		t.Nodes[promoted].Parent = p
	}
	if p == bstree.None {
		t.Root = promoted
	} else if t.Nodes[p].Left == u {
		t.Nodes[p].Left = promoted
	} else {
		t.Nodes[p].Right = promoted
	}

	nd.Parent, nd.Left, nd.Right = bstree.None, bstree.None, bstree.None
}

// attach makes u a child of p on the side chosen by isLeft. Any subtree
// already attached there becomes a child of u, which keeps every other
// node validly attached to the tree.
func attach(t *bstree.Tree, u, p int, isLeft bool) {
	var existing int
	if isLeft {
		existing = t.Nodes[p].Left
	} else {
		existing = t.Nodes[p].Right
	}

	nd := &t.Nodes[u]
	if isLeft {
		nd.Left = existing
	} else {
		nd.Right = existing
	}
	if existing != bstree.None {
		t.Nodes[existing].Parent = u
	}
	nd.Parent = p

	if isLeft {
		t.Nodes[p].Left = u
	} else {
		t.Nodes[p].Right = u
	}
}
