package diag

import (
	"fmt"
	"io"
	"os"
)

// Reporter prints diagnostics, one line each, and counts them by kind.
type Reporter struct {
	w      io.Writer
	counts [3]int
}

// NewReporter creates a Reporter writing to w. A nil w means standard output.
func NewReporter(w io.Writer) *Reporter {
	if w == nil {
		w = os.Stdout
	}
	return &Reporter{w: w}
}

// Report prints d and counts it.
func (r *Reporter) Report(d Diagnostic) {
	if k := d.Kind(); k >= Syntax && k <= Runtime {
		r.counts[k]++
	}
	fmt.Fprintln(r.w, d.Error())
}

// Count returns how many diagnostics of kind k have been reported.
func (r *Reporter) Count(k Kind) int {
	if k < Syntax || k > Runtime {
		return 0
	}
	return r.counts[k]
}

// Total returns the number of diagnostics reported.
func (r *Reporter) Total() int {
	return r.counts[Syntax] + r.counts[Parse] + r.counts[Runtime]
}
