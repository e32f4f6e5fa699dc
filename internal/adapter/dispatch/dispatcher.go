// Package dispatch routes reconfiguration requests to their targets, either
// in-process for the local machine or over the remote-execution channel.
package dispatch

import (
	"context"
	"fmt"

	"prefixctl/internal/pkg/logging"
	"prefixctl/internal/pkg/report"
	"prefixctl/internal/pkg/roster"
	"prefixctl/internal/port"
	"prefixctl/internal/types"
)

// Dispatcher processes a roster strictly sequentially, one target at a time,
// in roster order. One target's failure, panic, or unreachability never
// aborts processing of the remaining roster.
type Dispatcher struct {
	local  port.Reconfigurer
	remote port.RemoteRunner
}

// NewDispatcher creates a dispatcher with the given local engine and remote
// execution channel.
func NewDispatcher(local port.Reconfigurer, remote port.RemoteRunner) *Dispatcher {
	return &Dispatcher{local: local, remote: remote}
}

// Run dispatches the desired prefix length to every target and collects one
// outcome per target, in roster order, into a fleet report.
func (d *Dispatcher) Run(ctx context.Context, targets []roster.Target, desiredPrefix int) *report.FleetReport {
	logger := logging.WithComponent("dispatch")
	fleetReport := report.New()

	for _, target := range targets {
		logger.WithField("target", target.Identifier).Info("Dispatching reconfiguration")

		outcome := d.dispatchOne(ctx, target, desiredPrefix)
		outcome.Target = target.Identifier
		fleetReport.Append(outcome)

		logger.WithFields(map[string]interface{}{
			"target": target.Identifier,
			"result": string(outcome.Kind),
		}).Info("Target processed")
	}

	return fleetReport
}

// dispatchOne runs a single target to completion, converting every failure
// mode into a structured outcome.
func (d *Dispatcher) dispatchOne(ctx context.Context, target roster.Target, desiredPrefix int) (outcome types.ReconfigurationOutcome) {
	defer func() {
		if r := recover(); r != nil {
			outcome = types.ReconfigurationOutcome{
				NewPrefixLength: desiredPrefix,
				Kind:            types.OutcomeError,
				Message:         fmt.Sprintf("panic during reconfiguration: %v", r),
			}
		}
	}()

	if target.Kind == roster.TargetLocal {
		return d.local.Reconfigure(ctx, desiredPrefix)
	}

	remoteOutcome, err := d.remote.Run(ctx, target.Identifier, desiredPrefix)
	if err != nil {
		// The channel itself could not be established, as opposed to a
		// failure inside the remote routine.
		return types.ReconfigurationOutcome{
			NewPrefixLength: desiredPrefix,
			Kind:            types.OutcomeConnectionFailed,
			Message:         err.Error(),
		}
	}
	return remoteOutcome
}
