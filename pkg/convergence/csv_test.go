package convergence

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/arvogrid/floorsa/pkg/cost"
	"github.com/arvogrid/floorsa/pkg/ledger"
)

func TestWriteEmitsHeaderOnce(t *testing.T) {
	var buf bytes.Buffer
	l := New(&buf)

	if err := l.Write(ledger.Improvement{Elapsed: time.Second, Result: cost.Result{Cost: 10}}); err != nil {
		t.Fatalf("Write() error = %v", err)
	}
	if err := l.Write(ledger.Improvement{Elapsed: 2 * time.Second, Result: cost.Result{Cost: 5}}); err != nil {
		t.Fatalf("Write() error = %v", err)
	}

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 3 {
		t.Fatalf("got %d lines, want 3 (1 header + 2 rows)", len(lines))
	}
	if lines[0] != "Timestamp(s),BestCost" {
		t.Errorf("header = %q, want %q", lines[0], "Timestamp(s),BestCost")
	}
	if lines[1] != "1.0000,10.000000" {
		t.Errorf("row 1 = %q, want %q", lines[1], "1.0000,10.000000")
	}
}

func TestNoImprovementsProducesNoOutput(t *testing.T) {
	var buf bytes.Buffer
	New(&buf)
	if buf.Len() != 0 {
		t.Errorf("buf = %q, want empty (header is written lazily)", buf.String())
	}
}

func TestRunDrainsChannel(t *testing.T) {
	var buf bytes.Buffer
	l := New(&buf)
	events := make(chan ledger.Improvement, 2)
	events <- ledger.Improvement{Elapsed: time.Second, Result: cost.Result{Cost: 1}}
	events <- ledger.Improvement{Elapsed: 2 * time.Second, Result: cost.Result{Cost: 0.5}}
	close(events)

	if err := Run(l, events); err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if !strings.Contains(buf.String(), "0.500000") {
		t.Errorf("output %q missing expected cost row", buf.String())
	}
}
