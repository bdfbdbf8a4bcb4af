package catalogue

import (
	"strings"
	"testing"

	ferrors "github.com/arvogrid/floorsa/pkg/errors"
)

func TestLoadBasic(t *testing.T) {
	input := "MM1 (4.0 2.0 1 1) (2.0 4.0 1 1)\nMM2 (3.0 3.0 2 2)\n"
	cat, err := Load(strings.NewReader(input))
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cat.Len() != 2 {
		t.Fatalf("Len() = %d, want 2", cat.Len())
	}
	i, ok := cat.IndexOf("MM2")
	if !ok {
		t.Fatal("IndexOf(MM2) not found")
	}
	b := cat.Block(i)
	if len(b.Variants) != 1 {
		t.Fatalf("MM2 variants = %d, want 1", len(b.Variants))
	}
	v := b.Variants[0]
	if v.W != 3.0 || v.H != 3.0 || v.ColMult != 2 || v.RowMult != 2 {
		t.Errorf("variant = %+v, want {3 3 2 2}", v)
	}
}

func TestLoadIgnoresBlankLines(t *testing.T) {
	input := "MM1 (1 1 1 1)\n\n   \nMM2 (2 2 1 1)\n"
	cat, err := Load(strings.NewReader(input))
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cat.Len() != 2 {
		t.Fatalf("Len() = %d, want 2", cat.Len())
	}
}

func TestLoadErrors(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{"unmatched paren", "MM1 (1 1 1 1"},
		{"wrong tuple arity", "MM1 (1 1 1)"},
		{"non-numeric width", "MM1 (x 1 1 1)"},
		{"no variants", "MM1"},
		{"duplicate name", "MM1 (1 1 1 1)\nMM1 (2 2 1 1)\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(strings.NewReader(tt.input))
			if err == nil {
				t.Fatal("Load() error = nil, want error")
			}
			if got := ferrors.GetCode(err); got != ferrors.ErrCodeInvalidInput {
				t.Errorf("GetCode() = %v, want %v", got, ferrors.ErrCodeInvalidInput)
			}
		})
	}
}

func TestNewRejectsEmpty(t *testing.T) {
	if _, err := New(nil); err == nil {
		t.Fatal("New(nil) error = nil, want error")
	}
}

func TestCompareNames(t *testing.T) {
	tests := []struct {
		a, b string
		want int
	}{
		{"MM1", "MM2", -1},
		{"MM2", "MM10", -1},
		{"MM10", "MM2", 1},
		{"MM1", "MM1", 0},
		{"A1", "B1", -1},
	}
	for _, tt := range tests {
		if got := CompareNames(tt.a, tt.b); sign(got) != tt.want {
			t.Errorf("CompareNames(%q, %q) = %d, want sign %d", tt.a, tt.b, got, tt.want)
		}
	}
}

func TestSortedIndices(t *testing.T) {
	cat, err := New([]Block{
		{Name: "MM10", Variants: []Variant{{W: 1, H: 1}}},
		{Name: "MM2", Variants: []Variant{{W: 1, H: 1}}},
		{Name: "MM1", Variants: []Variant{{W: 1, H: 1}}},
	})
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	idx := cat.SortedIndices()
	var names []string
	for _, i := range idx {
		names = append(names, cat.Block(i).Name)
	}
	want := []string{"MM1", "MM2", "MM10"}
	for i, n := range want {
		if names[i] != n {
			t.Errorf("SortedIndices()[%d] = %q, want %q", i, names[i], n)
		}
	}
}

func sign(n int) int {
	switch {
	case n < 0:
		return -1
	case n > 0:
		return 1
	default:
		return 0
	}
}
