// Package port defines the primary ports (interfaces) for the application.
// This follows the Ports and Adapters (Hexagonal Architecture) pattern.
package port

import (
	"context"

	"prefixctl/internal/types"
)

// Reconfigurer is the primary port for the prefix reconfiguration routine.
// An implementation runs the full snapshot/compare/apply/settle/verify
// sequence against the machine it executes on and classifies the result.
// Every failure inside the routine is converted into an outcome; the
// returned value always carries a terminal OutcomeKind.
type Reconfigurer interface {
	// Reconfigure changes the prefix length of the first IPv4-bearing
	// adapter to desiredPrefix. The Target field of the returned outcome is
	// left empty for the caller to fill in.
	Reconfigure(ctx context.Context, desiredPrefix int) types.ReconfigurationOutcome
}
