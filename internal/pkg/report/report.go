// Package report collects per-target outcomes into an ordered fleet report
// with CSV persistence and a console summary.
package report

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"strconv"

	"prefixctl/internal/port"
	"prefixctl/internal/types"
)

// FleetReport is an append-only, roster-ordered sequence of outcomes, one
// per dispatched target. No outcome is ever overwritten or re-ordered.
type FleetReport struct {
	outcomes []types.ReconfigurationOutcome
}

// New creates an empty fleet report.
func New() *FleetReport {
	return &FleetReport{}
}

// Append records one target's outcome at the end of the report.
func (r *FleetReport) Append(outcome types.ReconfigurationOutcome) {
	r.outcomes = append(r.outcomes, outcome)
}

// Outcomes returns the recorded outcomes in roster order.
func (r *FleetReport) Outcomes() []types.ReconfigurationOutcome {
	return r.outcomes
}

// Len returns the number of recorded outcomes.
func (r *FleetReport) Len() int {
	return len(r.outcomes)
}

// Counts returns the number of outcomes per kind.
func (r *FleetReport) Counts() map[types.OutcomeKind]int {
	counts := make(map[types.OutcomeKind]int)
	for _, outcome := range r.outcomes {
		counts[outcome.Kind]++
	}
	return counts
}

// Summary returns the outcome totals partitioned by category.
func (r *FleetReport) Summary() (succeeded, failed, skipped int) {
	for _, outcome := range r.outcomes {
		switch outcome.Kind.Category() {
		case types.CategorySucceeded:
			succeeded++
		case types.CategorySkipped:
			skipped++
		default:
			failed++
		}
	}
	return succeeded, failed, skipped
}

// WriteCSV renders the report as a delimited file and writes it once,
// overwriting any prior file at path.
func (r *FleetReport) WriteCSV(fileMgr port.FileManager, path string) error {
	var buf bytes.Buffer
	writer := csv.NewWriter(&buf)

	if err := writer.Write([]string{"target", "old_prefix", "new_prefix", "result"}); err != nil {
		return fmt.Errorf("failed to render report header: %w", err)
	}

	for _, outcome := range r.outcomes {
		oldPrefix := ""
		if outcome.OldPrefixLength != nil {
			oldPrefix = strconv.Itoa(*outcome.OldPrefixLength)
		}
		record := []string{
			outcome.Target,
			oldPrefix,
			strconv.Itoa(outcome.NewPrefixLength),
			string(outcome.Kind),
		}
		if err := writer.Write(record); err != nil {
			return fmt.Errorf("failed to render report row for %s: %w", outcome.Target, err)
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return fmt.Errorf("failed to render report: %w", err)
	}

	if err := fileMgr.WriteFile(path, buf.Bytes(), 0644); err != nil {
		return fmt.Errorf("failed to write report file: %w", err)
	}
	return nil
}
