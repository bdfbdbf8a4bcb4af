// Package contour implements the packer's skyline: an ordered mapping from
// x-coordinate to the current maximum placed height, keyed by strictly
// increasing x. It is implemented as a sorted slice searched by binary
// search rather than an ordered map, one of the alternatives spec §9 allows
// as long as queries return the same max-over-interval and the post-update
// invariants hold.
package contour

import "sort"

type entry struct {
	x float64
	h float64
}

// Contour is an ephemeral scratch structure owned by a single pack
// invocation. The zero value represents an empty skyline (height 0
// everywhere).
type Contour struct {
	entries []entry
}

// New returns an empty contour.
func New() *Contour {
	return &Contour{}
}

// Query returns the maximum skyline height over [x0, x1).
func (c *Contour) Query(x0, x1 float64) float64 {
	i := c.seedIndex(x0)
	h := 0.0
	if i >= 0 {
		h = c.entries[i].h
	}
	j := i + 1
	if j < 0 {
		j = 0
	}
	for ; j < len(c.entries) && c.entries[j].x < x1; j++ {
		if c.entries[j].h > h {
			h = c.entries[j].h
		}
	}
	return h
}

// Update records that the interval [x0, x1) is now occupied up to height
// topH: it erases every entry with key in [x0, x1), then inserts (x0, topH)
// and (x1, rightH), where rightH is the height that was in effect just
// before x1 prior to this update (preserving what lies outside the
// interval). If an entry already exists at x1 it is kept as is and no
// (x1, rightH) entry is inserted.
func (c *Contour) Update(x0, x1, topH float64) {
	rightH := c.heightBefore(x1)

	lo := sort.Search(len(c.entries), func(i int) bool { return c.entries[i].x >= x0 })
	hi := sort.Search(len(c.entries), func(i int) bool { return c.entries[i].x >= x1 })

	keepX1 := hi < len(c.entries) && c.entries[hi].x == x1

	tail := append([]entry{}, c.entries[hi:]...)
	c.entries = c.entries[:lo]
	c.entries = append(c.entries, entry{x: x0, h: topH})
	if !keepX1 {
		c.entries = append(c.entries, entry{x: x1, h: rightH})
	}
	c.entries = append(c.entries, tail...)
}

// seedIndex returns the index of the last entry with x <= target, or -1 if
// none exists.
func (c *Contour) seedIndex(target float64) int {
	i := sort.Search(len(c.entries), func(i int) bool { return c.entries[i].x > target })
	return i - 1
}

// heightBefore returns the skyline height in effect immediately before x,
// i.e. the height recorded at the last entry with key < x, or 0 if none.
func (c *Contour) heightBefore(x float64) float64 {
	i := sort.Search(len(c.entries), func(i int) bool { return c.entries[i].x >= x })
	if i == 0 {
		return 0
	}
	return c.entries[i-1].h
}
