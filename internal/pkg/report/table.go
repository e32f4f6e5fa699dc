package report

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"
)

// Table wraps text/tabwriter with consistent column-aligned output.
// Headers and a dash divider are written lazily on first Row() or Flush(),
// so empty tables produce no output.
type Table struct {
	w       *tabwriter.Writer
	headers []string
	written bool
}

// NewTable creates a table with the given column headers.
func NewTable(out io.Writer, headers ...string) *Table {
	return &Table{
		w:       tabwriter.NewWriter(out, 0, 0, 2, ' ', 0),
		headers: headers,
	}
}

// Row writes a tab-separated row. On the first call, headers and divider
// are emitted before the row.
func (t *Table) Row(values ...string) {
	t.ensureHeaders()
	fmt.Fprintln(t.w, strings.Join(values, "\t"))
}

// Flush writes any buffered output. If no rows were written, nothing is printed.
func (t *Table) Flush() {
	if !t.written {
		return
	}
	t.w.Flush()
}

func (t *Table) ensureHeaders() {
	if t.written {
		return
	}
	t.written = true
	fmt.Fprintln(t.w, strings.Join(t.headers, "\t"))
	dividers := make([]string, len(t.headers))
	for i, h := range t.headers {
		dividers[i] = strings.Repeat("-", len(h))
	}
	fmt.Fprintln(t.w, strings.Join(dividers, "\t"))
}

// RenderTable writes the report as a column-aligned console table followed
// by the per-category summary line.
func (r *FleetReport) RenderTable(out io.Writer) {
	table := NewTable(out, "TARGET", "OLD PREFIX", "NEW PREFIX", "RESULT", "MESSAGE")
	for _, outcome := range r.outcomes {
		oldPrefix := "-"
		if outcome.OldPrefixLength != nil {
			oldPrefix = fmt.Sprintf("/%d", *outcome.OldPrefixLength)
		}
		table.Row(
			outcome.Target,
			oldPrefix,
			fmt.Sprintf("/%d", outcome.NewPrefixLength),
			string(outcome.Kind),
			outcome.Message,
		)
	}
	table.Flush()

	succeeded, failed, skipped := r.Summary()
	fmt.Fprintf(out, "\n%d succeeded, %d failed, %d skipped (%d total)\n",
		succeeded, failed, skipped, r.Len())
}
