// Package blockio implements the .block file format's input and output
// sides: parsing a catalogue from a stream (delegated to catalogue.Load,
// since the two share no state) and rendering a packed, evaluated tree back
// out in the fixed-precision layout external tools expect.
package blockio

import (
	"fmt"
	"io"
	"math"

	"github.com/arvogrid/floorsa/pkg/bstree"
	"github.com/arvogrid/floorsa/pkg/catalogue"
	"github.com/arvogrid/floorsa/pkg/cost"
)

// ReadCatalogue parses the .block input format from r.
func ReadCatalogue(r io.Reader) (*catalogue.Catalogue, error) {
	return catalogue.Load(r)
}

// WriteResult renders t (already packed and evaluated as res) to w: three
// header lines, then one line per block ordered by the catalogue's name
// comparator.
//
//	<area>                    (4 decimal places)
//	<chip_w> <chip_h>         (2 decimal places each)
//	<inl>                     (2 decimal places; non-normal INL emits 0.00)
//	<name> <x> <y> (<w> <h> <c> <r>)   per block, 3dp coords, 2dp shape
func WriteResult(w io.Writer, t *bstree.Tree, res cost.Result, cat *catalogue.Catalogue) error {
	inl := res.INL
	if isNonNormal(inl) {
		inl = 0
	}

	if _, err := fmt.Fprintf(w, "%.4f\n", res.Area); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(w, "%.2f %.2f\n", res.ChipW, res.ChipH); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(w, "%.2f\n", inl); err != nil {
		return err
	}

	nodeByBlock := make(map[int]bstree.Node, len(t.Nodes))
	for _, n := range t.Nodes {
		nodeByBlock[n.Block] = n
	}

	for _, bi := range cat.SortedIndices() {
		n, ok := nodeByBlock[bi]
		if !ok {
			continue
		}
		block := cat.Block(bi)
		v := block.Variants[n.Variant]
		_, err := fmt.Fprintf(w, "%s %.3f %.3f (%.2f %.2f %d %d)\n",
			block.Name, n.X, n.Y, v.W, v.H, v.ColMult, v.RowMult)
		if err != nil {
			return err
		}
	}
	return nil
}

func isNonNormal(v float64) bool {
	return math.IsNaN(v) || math.IsInf(v, 0)
}
