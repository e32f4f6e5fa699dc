// Package roster parses the ordered list of per-run target identifiers and
// classifies each as local or remote.
package roster

import (
	"encoding/csv"
	"fmt"
	"os"
	"strings"
)

// LocalSentinel is the literal identifier routed to in-process execution.
const LocalSentinel = "localhost"

// DefaultTargetColumn is the roster header naming the target column.
const DefaultTargetColumn = "target"

// TargetKind says where a target's reconfiguration routine runs. It is
// resolved once at parse time, not re-derived on every call.
type TargetKind int

const (
	TargetLocal TargetKind = iota
	TargetRemote
)

// Target is one resolved roster entry. Repeated identifiers are independent
// entries, each producing its own outcome.
type Target struct {
	Identifier string
	Kind       TargetKind
}

// Resolver classifies target identifiers against the orchestrating machine's
// hostname.
type Resolver struct {
	localHostname string
}

// NewResolver creates a resolver treating localHostname (and the local
// sentinel) as in-process targets.
func NewResolver(localHostname string) *Resolver {
	return &Resolver{localHostname: localHostname}
}

// Resolve trims and classifies the given identifiers, preserving order.
// Blank entries are dropped entirely; they never reach the executor or the
// report. No deduplication is performed.
func (r *Resolver) Resolve(identifiers []string) []Target {
	targets := make([]Target, 0, len(identifiers))
	for _, id := range identifiers {
		id = strings.TrimSpace(id)
		if id == "" {
			continue
		}

		kind := TargetRemote
		if strings.EqualFold(id, LocalSentinel) || strings.EqualFold(id, r.localHostname) {
			kind = TargetLocal
		}
		targets = append(targets, Target{Identifier: id, Kind: kind})
	}
	return targets
}

// LoadCSV reads a delimited roster file with a header row and returns the
// resolved targets from the named column, in record order.
func (r *Resolver) LoadCSV(path, column string) ([]Target, error) {
	if column == "" {
		column = DefaultTargetColumn
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open roster file %s: %w", path, err)
	}
	defer f.Close()

	reader := csv.NewReader(f)
	reader.FieldsPerRecord = -1

	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to parse roster file %s: %w", path, err)
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("roster file %s is empty", path)
	}

	columnIndex := -1
	for i, header := range records[0] {
		if strings.EqualFold(strings.TrimSpace(header), column) {
			columnIndex = i
			break
		}
	}
	if columnIndex < 0 {
		return nil, fmt.Errorf("roster file %s has no %q column", path, column)
	}

	identifiers := make([]string, 0, len(records)-1)
	for _, record := range records[1:] {
		if columnIndex >= len(record) {
			identifiers = append(identifiers, "")
			continue
		}
		identifiers = append(identifiers, record[columnIndex])
	}

	return r.Resolve(identifiers), nil
}
