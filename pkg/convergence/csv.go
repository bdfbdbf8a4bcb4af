// Package convergence logs the ledger's improvement-event stream to CSV for
// offline plotting.
package convergence

import (
	"encoding/csv"
	"io"
	"strconv"

	"github.com/arvogrid/floorsa/pkg/ledger"
)

// Logger wraps an io.Writer with a CSV encoder, writing the header once and
// one flushed row per improvement event.
type Logger struct {
	w         *csv.Writer
	wroteHead bool
}

// New returns a Logger writing to w. The header row is written lazily on
// the first call to Write so opening a log file never produces output for a
// run that records no improvements.
func New(w io.Writer) *Logger {
	return &Logger{w: csv.NewWriter(w)}
}

// Write appends one row for evt: elapsed seconds since strategy start
// (4 decimal places) and best cost (6 decimal places), flushing
// immediately.
func (l *Logger) Write(evt ledger.Improvement) error {
	if !l.wroteHead {
		if err := l.w.Write([]string{"Timestamp(s)", "BestCost"}); err != nil {
			return err
		}
		l.wroteHead = true
	}
	row := []string{
		strconv.FormatFloat(evt.Elapsed.Seconds(), 'f', 4, 64),
		strconv.FormatFloat(evt.Result.Cost, 'f', 6, 64),
	}
	if err := l.w.Write(row); err != nil {
		return err
	}
	l.w.Flush()
	return l.w.Error()
}

// Run drains events from the ledger's event channel until it is closed,
// writing one CSV row per event. Intended to run in its own goroutine for
// the lifetime of a strategy invocation.
func Run(l *Logger, events <-chan ledger.Improvement) error {
	for evt := range events {
		if err := l.Write(evt); err != nil {
			return err
		}
	}
	return nil
}
