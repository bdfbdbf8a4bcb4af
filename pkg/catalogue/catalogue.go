// Package catalogue loads and indexes the immutable set of macros a
// floorplan search places. A Catalogue is read once from a .block file and
// shared read-only by every search worker.
package catalogue

import (
	"bufio"
	"fmt"
	"io"
	"sort"
	"strconv"
	"strings"

	ferrors "github.com/arvogrid/floorsa/pkg/errors"
)

// Variant is one allowed (width, height) shape for a block, together with
// the column/row multiplicities the original netlist carried. Multiplicities
// are preserved verbatim for output and never influence the search.
type Variant struct {
	W, H    float64
	ColMult int
	RowMult int
}

// Block is one catalogue entry: a name plus a non-empty ordered list of
// shape variants. Blocks are immutable once loaded.
type Block struct {
	Name     string
	Variants []Variant
}

// Catalogue is the immutable, read-only set of blocks a search instance
// places. It is safe for concurrent use by any number of workers.
type Catalogue struct {
	blocks []Block
	index  map[string]int
}

// New builds a Catalogue from already-parsed blocks. Block names must be
// unique; at least one variant per block is required.
func New(blocks []Block) (*Catalogue, error) {
	if len(blocks) == 0 {
		return nil, ferrors.New(ferrors.ErrCodeInvalidInput, "catalogue must contain at least one block")
	}
	index := make(map[string]int, len(blocks))
	for i, b := range blocks {
		if b.Name == "" {
			return nil, ferrors.New(ferrors.ErrCodeInvalidInput, "block %d has an empty name", i)
		}
		if len(b.Variants) == 0 {
			return nil, ferrors.New(ferrors.ErrCodeInvalidInput, "block %q has no shape variants", b.Name)
		}
		if _, dup := index[b.Name]; dup {
			return nil, ferrors.New(ferrors.ErrCodeInvalidInput, "duplicate block name %q", b.Name)
		}
		index[b.Name] = i
	}
	return &Catalogue{blocks: blocks, index: index}, nil
}

// Load parses the .block input format of a single netlist:
//
//	<name> (w1 h1 c1 r1) (w2 h2 c2 r2) ...
//
// Parsing is lenient about repeated whitespace but requires every variant
// tuple's parentheses to be matched.
func Load(r io.Reader) (*Catalogue, error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	var blocks []Block
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		b, err := parseLine(line)
		if err != nil {
			return nil, ferrors.Wrap(ferrors.ErrCodeInvalidInput, err, "line %d", lineNo)
		}
		blocks = append(blocks, b)
	}
	if err := scanner.Err(); err != nil {
		return nil, ferrors.Wrap(ferrors.ErrCodeInvalidInput, err, "reading block file")
	}
	return New(blocks)
}

func parseLine(line string) (Block, error) {
	nameEnd := strings.IndexAny(line, " \t(")
	if nameEnd <= 0 {
		return Block{}, fmt.Errorf("missing block name or variants: %q", line)
	}
	name := line[:nameEnd]
	rest := line[nameEnd:]

	var variants []Variant
	for {
		open := strings.IndexByte(rest, '(')
		if open < 0 {
			break
		}
		close := strings.IndexByte(rest, ')')
		if close < open {
			return Block{}, fmt.Errorf("unmatched parenthesis in %q", line)
		}
		tuple := strings.Fields(rest[open+1 : close])
		v, err := parseVariant(tuple)
		if err != nil {
			return Block{}, fmt.Errorf("block %q: %w", name, err)
		}
		variants = append(variants, v)
		rest = rest[close+1:]
	}
	if len(variants) == 0 {
		return Block{}, fmt.Errorf("block %q has no variant tuples", name)
	}
	return Block{Name: name, Variants: variants}, nil
}

func parseVariant(tok []string) (Variant, error) {
	if len(tok) != 4 {
		return Variant{}, fmt.Errorf("expected 4 numbers in variant tuple, got %d", len(tok))
	}
	w, err := strconv.ParseFloat(tok[0], 64)
	if err != nil {
		return Variant{}, fmt.Errorf("invalid width %q: %w", tok[0], err)
	}
	h, err := strconv.ParseFloat(tok[1], 64)
	if err != nil {
		return Variant{}, fmt.Errorf("invalid height %q: %w", tok[1], err)
	}
	c, err := strconv.Atoi(tok[2])
	if err != nil {
		return Variant{}, fmt.Errorf("invalid column multiplicity %q: %w", tok[2], err)
	}
	r, err := strconv.Atoi(tok[3])
	if err != nil {
		return Variant{}, fmt.Errorf("invalid row multiplicity %q: %w", tok[3], err)
	}
	return Variant{W: w, H: h, ColMult: c, RowMult: r}, nil
}

// Len returns the number of blocks in the catalogue.
func (c *Catalogue) Len() int { return len(c.blocks) }

// Block returns the i-th block by catalogue index.
func (c *Catalogue) Block(i int) Block { return c.blocks[i] }

// IndexOf returns the stable integer index of the block with the given
// name, and whether it was found.
func (c *Catalogue) IndexOf(name string) (int, bool) {
	i, ok := c.index[name]
	return i, ok
}

// SortedIndices returns block indices 0..Len()-1 ordered by CompareNames on
// the blocks' names, used for both INL computation and output ordering.
func (c *Catalogue) SortedIndices() []int {
	idx := make([]int, len(c.blocks))
	for i := range idx {
		idx[i] = i
	}
	sort.Slice(idx, func(i, j int) bool {
		return CompareNames(c.blocks[idx[i]].Name, c.blocks[idx[j]].Name) < 0
	})
	return idx
}

// CompareNames implements the name ordering used by INL and output sorting:
// split each name into a non-digit prefix and the remainder parsed as a
// non-negative decimal integer (absent digits sort as 0), order first by
// prefix, then by integer value. This yields MM1 < MM2 < ... < MM10 rather
// than lexicographic order.
func CompareNames(a, b string) int {
	pa, na := splitNamePrefix(a)
	pb, nb := splitNamePrefix(b)
	if pa != pb {
		if pa < pb {
			return -1
		}
		return 1
	}
	switch {
	case na < nb:
		return -1
	case na > nb:
		return 1
	default:
		return 0
	}
}

func splitNamePrefix(name string) (prefix string, num int64) {
	i := 0
	for i < len(name) && (name[i] < '0' || name[i] > '9') {
		i++
	}
	prefix = name[:i]
	if i == len(name) {
		return prefix, 0
	}
	n, err := strconv.ParseInt(name[i:], 10, 64)
	if err != nil {
		// Non-numeric remainder (rare, malformed name): treat as 0 so the
		// comparator remains total rather than erroring mid-sort.
		return prefix, 0
	}
	return prefix, n
}
