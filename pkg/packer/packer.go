// Package packer turns a B*-tree's topology and selected variants into
// placed coordinates via a contour-based depth-first traversal.
package packer

import (
	"github.com/arvogrid/floorsa/pkg/bstree"
	"github.com/arvogrid/floorsa/pkg/contour"
)

// frame is one entry on the explicit DFS stack: the node to place and the
// x-coordinate its parent has already determined for it.
type frame struct {
	node int
	x    float64
}

// Pack assigns (x,y) to every node of t and updates ChipW, ChipH, and Area.
// The root is placed at (0,0); a left child sits to the right of its
// parent at x(parent)+width(parent); a right child shares its parent's x.
// Traversal uses an explicit stack rather than recursion so packing depth
// (which equals tree height, up to n for an initial left-spine) never
// exhausts the goroutine stack.
func Pack(t *bstree.Tree) {
	t.ChipW, t.ChipH, t.Area = 0, 0, 0
	if t.Root == bstree.None {
		return
	}

	c := contour.New()
	stack := []frame{{node: t.Root, x: 0}}

	for len(stack) > 0 {
		top := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		n := &t.Nodes[top.node]
		x := top.x
		y := c.Query(x, x+n.W)
		n.X, n.Y = x, y
		c.Update(x, x+n.W, y+n.H)

		if right := x + n.W; right > t.ChipW {
			t.ChipW = right
		}
		if top := y + n.H; top > t.ChipH {
			t.ChipH = top
		}

		// Push right first so left is popped and visited first, matching
		// "recurse left then right".
		if n.Right != bstree.None {
			stack = append(stack, frame{node: n.Right, x: x})
		}
		if n.Left != bstree.None {
			stack = append(stack, frame{node: n.Left, x: x + n.W})
		}
	}

	t.Area = t.ChipW * t.ChipH
}
