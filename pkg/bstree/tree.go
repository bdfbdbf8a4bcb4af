// Package bstree implements the B*-tree placement representation: a
// densely-indexed array of node records with integer parent/child links
// rather than a pointer graph, so that cloning a whole tree for a search
// proposal is a single contiguous buffer copy.
package bstree

import (
	"fmt"
	"math/rand/v2"

	"github.com/arvogrid/floorsa/pkg/catalogue"
)

// None is the sentinel used for absent parent/child links and for an empty
// tree's root index.
const None = -1

// Node is one tree record: the catalogue block it places, the shape variant
// currently selected for that block, its links within the tree, its cached
// dimensions (copied from the selected variant), and its coordinates as of
// the most recent successful pack.
type Node struct {
	Block   int
	Variant int
	Parent  int
	Left    int
	Right   int
	W, H    float64
	X, Y    float64
}

// Tree is a fixed-size array of nodes, one per catalogue block, plus the
// root index and cached totals from the most recent pack and evaluation.
// The zero value is not usable; build one with NewRandom or Clone.
type Tree struct {
	Nodes []Node
	Root  int

	ChipW, ChipH float64
	Area         float64
	INL          float64
	Cost         float64
}

// NewRandom builds a tree over every block in cat: a uniform random
// permutation of block indices assigned to nodes in permutation order, a
// uniformly random variant chosen per node, chained as a degenerate
// left-spine (node i's left child is node i+1).
func NewRandom(cat *catalogue.Catalogue, r *rand.Rand) *Tree {
	n := cat.Len()
	perm := r.Perm(n)

	nodes := make([]Node, n)
	for i, block := range perm {
		variants := cat.Block(block).Variants
		vi := r.IntN(len(variants))
		v := variants[vi]

		left := None
		if i+1 < n {
			left = i + 1
		}
		parent := None
		if i > 0 {
			parent = i - 1
		}
		nodes[i] = Node{
			Block:   block,
			Variant: vi,
			Parent:  parent,
			Left:    left,
			Right:   None,
			W:       v.W,
			H:       v.H,
		}
	}

	root := None
	if n > 0 {
		root = 0
	}
	return &Tree{Nodes: nodes, Root: root}
}

// Clone returns a deep copy safe for independent mutation. Because Nodes is
// a flat value slice, cloning is a single contiguous buffer copy.
func (t *Tree) Clone() *Tree {
	nodes := make([]Node, len(t.Nodes))
	copy(nodes, t.Nodes)
	return &Tree{
		Nodes: nodes,
		Root:  t.Root,
		ChipW: t.ChipW,
		ChipH: t.ChipH,
		Area:  t.Area,
		INL:   t.INL,
		Cost:  t.Cost,
	}
}

// RefreshDims rewrites every node's cached (W,H) from its currently selected
// variant in cat. Called after any perturbation that may have changed a
// node's block or variant selection.
func (t *Tree) RefreshDims(cat *catalogue.Catalogue) {
	for i := range t.Nodes {
		n := &t.Nodes[i]
		v := cat.Block(n.Block).Variants[n.Variant]
		n.W, n.H = v.W, v.H
	}
}

// Validate checks the invariants §3 and §8 require of a legal tree: every
// block index appears in exactly one node, links form a single rooted
// binary tree reachable from Root, and every node's cached (W,H) matches its
// selected variant.
func (t *Tree) Validate(cat *catalogue.Catalogue) error {
	n := len(t.Nodes)
	if n == 0 {
		if t.Root != None {
			return fmt.Errorf("empty tree has root %d, want %d", t.Root, None)
		}
		return nil
	}
	if t.Root < 0 || t.Root >= n {
		return fmt.Errorf("root index %d out of range [0,%d)", t.Root, n)
	}

	seenBlock := make(map[int]bool, n)
	for i, nd := range t.Nodes {
		if seenBlock[nd.Block] {
			return fmt.Errorf("block %d placed by more than one node", nd.Block)
		}
		seenBlock[nd.Block] = true

		variants := cat.Block(nd.Block).Variants
		if nd.Variant < 0 || nd.Variant >= len(variants) {
			return fmt.Errorf("node %d has variant index %d out of range", i, nd.Variant)
		}
		v := variants[nd.Variant]
		if nd.W != v.W || nd.H != v.H {
			return fmt.Errorf("node %d cached dims (%g,%g) != variant dims (%g,%g)", i, nd.W, nd.H, v.W, v.H)
		}
	}

	visited := make([]bool, n)
	var walk func(i int) error
	walk = func(i int) error {
		if i == None {
			return nil
		}
		if i < 0 || i >= n {
			return fmt.Errorf("link to out-of-range node %d", i)
		}
		if visited[i] {
			return fmt.Errorf("cycle detected at node %d", i)
		}
		visited[i] = true
		nd := t.Nodes[i]
		if nd.Left != None {
			if t.Nodes[nd.Left].Parent != i {
				return fmt.Errorf("node %d's left child %d has parent %d, want %d", i, nd.Left, t.Nodes[nd.Left].Parent, i)
			}
			if err := walk(nd.Left); err != nil {
				return err
			}
		}
		if nd.Right != None {
			if t.Nodes[nd.Right].Parent != i {
				return fmt.Errorf("node %d's right child %d has parent %d, want %d", i, nd.Right, t.Nodes[nd.Right].Parent, i)
			}
			if err := walk(nd.Right); err != nil {
				return err
			}
		}
		return nil
	}
	if err := walk(t.Root); err != nil {
		return err
	}
	if t.Nodes[t.Root].Parent != None {
		return fmt.Errorf("root node %d has non-nil parent %d", t.Root, t.Nodes[t.Root].Parent)
	}
	for i, ok := range visited {
		if !ok {
			return fmt.Errorf("node %d is unreachable from root", i)
		}
	}
	return nil
}
