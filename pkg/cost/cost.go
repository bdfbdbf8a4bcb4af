// Package cost evaluates a packed B*-tree against the area, aspect-ratio,
// and INL-regularity objective.
package cost

import (
	"math"

	"github.com/arvogrid/floorsa/pkg/bstree"
	"github.com/arvogrid/floorsa/pkg/catalogue"
)

// degenerateSentinel is the cost assigned to layouts whose area falls below
// areaEpsilon.
const degenerateSentinel = 1e18

// areaEpsilon is the minimum chip area below which a layout is treated as
// degenerate.
const areaEpsilon = 1e-9

// Result holds every quantity the evaluator produces for one packed tree.
type Result struct {
	Area  float64
	ChipW float64
	ChipH float64
	AR    float64
	INL   float64
	Cost  float64
}

// Evaluate scores t, which must already have been packed, against cat.
// Evaluate never mutates t.
func Evaluate(t *bstree.Tree, cat *catalogue.Catalogue) Result {
	area := t.Area
	if area < areaEpsilon {
		return Result{Area: area, ChipW: t.ChipW, ChipH: t.ChipH, Cost: degenerateSentinel}
	}

	ar := aspectRatio(t.ChipW, t.ChipH)
	areaAR := area * (1 + aspectPenalty(ar))
	inl := computeINL(t, cat)
	if !isNormalOrZero(inl) {
		inl = 0
	}

	return Result{
		Area:  area,
		ChipW: t.ChipW,
		ChipH: t.ChipH,
		AR:    ar,
		INL:   inl,
		Cost:  0.8*areaAR + 0.2*inl,
	}
}

func aspectRatio(w, h float64) float64 {
	if h == 0 || w == 0 {
		return math.Inf(1)
	}
	a, b := w/h, h/w
	if a > b {
		return a
	}
	return b
}

// aspectPenalty implements f(AR) from the cost model: a linear penalty
// outside [0.5, 2], zero inside.
func aspectPenalty(ar float64) float64 {
	switch {
	case ar < 0.5:
		return 2 * (0.5 - ar)
	case ar > 2:
		return ar - 2
	default:
		return 0
	}
}

// computeINL fits the name-ordered cumulative squared-centroid-distance
// curve to a line by ordinary least squares and returns the maximum
// absolute deviation from that fit.
func computeINL(t *bstree.Tree, cat *catalogue.Catalogue) float64 {
	n := len(t.Nodes)
	if n < 2 {
		return 0
	}

	cx, cy := t.ChipW/2, t.ChipH/2
	order := cat.SortedIndices()

	nodeByBlock := make(map[int]bstree.Node, n)
	for _, nd := range t.Nodes {
		nodeByBlock[nd.Block] = nd
	}

	d := make([]float64, 0, n)
	for _, block := range order {
		nd := nodeByBlock[block]
		mx, my := nd.X+nd.W/2, nd.Y+nd.H/2
		dx, dy := mx-cx, my-cy
		d = append(d, dx*dx+dy*dy)
	}

	s := make([]float64, n)
	running := 0.0
	for k, v := range d {
		running += v
		s[k] = running
	}

	var sumK, sumK2, sumS, sumKS float64
	for k := 0; k < n; k++ {
		kf := float64(k + 1)
		sumK += kf
		sumK2 += kf * kf
		sumS += s[k]
		sumKS += kf * s[k]
	}
	nf := float64(n)
	denom := nf*sumK2 - sumK*sumK
	if math.Abs(denom) < 1e-12 {
		return 0
	}
	a := (nf*sumKS - sumK*sumS) / denom
	b := (sumS - a*sumK) / nf

	maxDev := 0.0
	for k := 0; k < n; k++ {
		fit := a*float64(k+1) + b
		dev := math.Abs(s[k] - fit)
		if dev > maxDev {
			maxDev = dev
		}
	}
	return maxDev
}

func isNormalOrZero(v float64) bool {
	return v == 0 || (!math.IsNaN(v) && !math.IsInf(v, 0))
}
