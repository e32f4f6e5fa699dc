// Package reconfig implements the prefix reconfiguration state machine:
// snapshot -> compare -> apply -> settle -> verify -> commit/rollback.
package reconfig

import (
	"context"
	"fmt"
	"net"
	"time"

	"prefixctl/internal/pkg/logging"
	"prefixctl/internal/pkg/maskcodec"
	"prefixctl/internal/port"
	"prefixctl/internal/types"

	"github.com/sirupsen/logrus"
	"github.com/vishvananda/netlink"
)

const (
	// DefaultSettleWindow is the pause between applying the new prefix and
	// probing the gateway, long enough for the interface to rebind.
	DefaultSettleWindow = 7 * time.Second

	// DefaultProbeCount is the number of gateway probes issued during
	// verification; any successful exchange counts as reachable.
	DefaultProbeCount = 2
)

// Engine runs the reconfiguration state machine against the local machine.
// It mutates only the prefix length of the first IPv4-bearing adapter; the
// IP address, gateway, and DNS list are never altered as a goal, and a
// failed verification restores the pre-change snapshot exactly.
type Engine struct {
	networkMgr port.NetworkManager
	dnsMgr     port.DNSManager
	prober     port.Prober
	sleeper    port.Sleeper
	settle     time.Duration
	probeCount int
}

// Ensure Engine implements the Reconfigurer port
var _ port.Reconfigurer = (*Engine)(nil)

// NewEngine creates a reconfiguration engine. A zero settle duration or
// probe count falls back to the defaults.
func NewEngine(networkMgr port.NetworkManager, dnsMgr port.DNSManager, prober port.Prober, sleeper port.Sleeper, settle time.Duration, probeCount int) *Engine {
	if settle <= 0 {
		settle = DefaultSettleWindow
	}
	if probeCount <= 0 {
		probeCount = DefaultProbeCount
	}
	return &Engine{
		networkMgr: networkMgr,
		dnsMgr:     dnsMgr,
		prober:     prober,
		sleeper:    sleeper,
		settle:     settle,
		probeCount: probeCount,
	}
}

// Reconfigure implements the Reconfigurer port. It never returns an error:
// every failure is classified into the outcome.
func (e *Engine) Reconfigure(ctx context.Context, desiredPrefix int) types.ReconfigurationOutcome {
	logger := logging.WithComponent("reconfig")

	link, snapshot, err := e.discover()
	if err != nil {
		logger.WithError(err).Error("Adapter discovery failed")
		return types.ReconfigurationOutcome{
			NewPrefixLength: desiredPrefix,
			Kind:            types.OutcomeError,
			Message:         err.Error(),
		}
	}
	if link == nil {
		logger.Warn("No adapter with an IPv4 address found")
		return types.ReconfigurationOutcome{
			NewPrefixLength: desiredPrefix,
			Kind:            types.OutcomeNoAdapterFound,
			Message:         "no adapter with an IPv4 address found",
		}
	}

	oldPrefix := snapshot.PrefixLength
	logger = logger.WithField("adapter", snapshot.InterfaceAlias)
	logger.WithFields(map[string]interface{}{
		"ip":             snapshot.IPAddress.String(),
		"prefix":         oldPrefix,
		"desired_prefix": desiredPrefix,
	}).Info("Captured adapter snapshot")

	if oldPrefix == desiredPrefix {
		mask, _ := maskcodec.PrefixToMask(oldPrefix)
		logger.Info("Prefix length already set, skipping")
		return types.ReconfigurationOutcome{
			OldPrefixLength: &oldPrefix,
			NewPrefixLength: desiredPrefix,
			Kind:            types.OutcomeSkippedAlreadySet,
			Message:         fmt.Sprintf("prefix length already %d (%s)", oldPrefix, mask),
		}
	}

	if err := e.applyAddressing(link, snapshot, desiredPrefix, oldPrefix); err != nil {
		logger.WithError(err).Error("Failed to apply new prefix length")
		return types.ReconfigurationOutcome{
			OldPrefixLength: &oldPrefix,
			NewPrefixLength: desiredPrefix,
			Kind:            types.OutcomeError,
			Message:         err.Error(),
		}
	}

	logger.WithField("settle", e.settle.String()).Info("Prefix applied, waiting for interface to settle")
	e.sleeper.Sleep(e.settle)

	if e.verify(ctx, snapshot.Gateway, logger) {
		oldMask, _ := maskcodec.PrefixToMask(oldPrefix)
		newMask, _ := maskcodec.PrefixToMask(desiredPrefix)
		logger.Info("Gateway reachable, committing new prefix length")
		return types.ReconfigurationOutcome{
			OldPrefixLength: &oldPrefix,
			NewPrefixLength: desiredPrefix,
			Kind:            types.OutcomeSuccess,
			Message:         fmt.Sprintf("prefix length changed from %d (%s) to %d (%s)", oldPrefix, oldMask, desiredPrefix, newMask),
		}
	}

	logger.Warn("Gateway unreachable after change, rolling back")
	if err := e.applyAddressing(link, snapshot, oldPrefix, desiredPrefix); err != nil {
		logger.WithError(err).Error("Rollback failed")
		return types.ReconfigurationOutcome{
			OldPrefixLength: &oldPrefix,
			NewPrefixLength: desiredPrefix,
			Kind:            types.OutcomeError,
			Message:         fmt.Sprintf("rollback failed: %v", err),
		}
	}

	oldMask, _ := maskcodec.PrefixToMask(oldPrefix)
	return types.ReconfigurationOutcome{
		OldPrefixLength: &oldPrefix,
		NewPrefixLength: desiredPrefix,
		Kind:            types.OutcomeRolledBack,
		Message:         fmt.Sprintf("gateway unreachable after change, restored prefix length %d (%s)", oldPrefix, oldMask),
	}
}

// discover locates the first link exposing an IPv4 address and captures its
// snapshot. A nil link with nil error means no adapter qualified. The
// enumeration order of links carries no stability guarantee across runs.
func (e *Engine) discover() (netlink.Link, *types.AdapterSnapshot, error) {
	links, err := e.networkMgr.ListLinks()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to list links: %w", err)
	}

	for _, link := range links {
		addrs, err := e.networkMgr.ListAddresses(link)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to list addresses on %s: %w", link.Attrs().Name, err)
		}

		for _, addr := range addrs {
			ip := addr.IPNet.IP.To4()
			if ip == nil || ip.IsLoopback() {
				continue
			}

			prefix, _ := addr.IPNet.Mask.Size()

			gateway, err := e.findGateway(link)
			if err != nil {
				return nil, nil, err
			}

			dnsServers, err := e.dnsMgr.Nameservers()
			if err != nil {
				return nil, nil, fmt.Errorf("failed to read DNS configuration: %w", err)
			}

			return link, &types.AdapterSnapshot{
				InterfaceAlias: link.Attrs().Name,
				IPAddress:      ip,
				PrefixLength:   prefix,
				Gateway:        gateway,
				DNSServers:     dnsServers,
			}, nil
		}
	}

	return nil, nil, nil
}

// findGateway returns the next-hop of the default route bound to link, or
// nil when no default route exists.
func (e *Engine) findGateway(link netlink.Link) (net.IP, error) {
	routes, err := e.networkMgr.ListRoutes()
	if err != nil {
		return nil, fmt.Errorf("failed to list routes: %w", err)
	}

	for _, route := range routes {
		isDefault := route.Dst == nil || route.Dst.String() == "0.0.0.0/0"
		if isDefault && route.Gw != nil && route.LinkIndex == link.Attrs().Index {
			return route.Gw, nil
		}
	}
	return nil, nil
}

// applyAddressing binds the snapshot's IP address with the given prefix
// length, re-asserts the gateway route, and unconditionally re-applies the
// DNS server list. The new binding is replaced before the previous one is
// removed so the interface always keeps a bound address; some address
// mutation paths reset DNS configuration as a side effect, hence the
// unconditional rewrite.
func (e *Engine) applyAddressing(link netlink.Link, snapshot *types.AdapterSnapshot, prefix, previousPrefix int) error {
	newAddr := &netlink.Addr{
		IPNet: &net.IPNet{
			IP:   snapshot.IPAddress,
			Mask: net.CIDRMask(prefix, 32),
		},
	}
	if err := e.networkMgr.ReplaceAddress(link, newAddr); err != nil {
		return fmt.Errorf("failed to bind %s/%d: %w", snapshot.IPAddress, prefix, err)
	}

	if previousPrefix != prefix {
		staleAddr := &netlink.Addr{
			IPNet: &net.IPNet{
				IP:   snapshot.IPAddress,
				Mask: net.CIDRMask(previousPrefix, 32),
			},
		}
		if err := e.networkMgr.DeleteAddress(link, staleAddr); err != nil {
			return fmt.Errorf("failed to remove stale binding %s/%d: %w", snapshot.IPAddress, previousPrefix, err)
		}
	}

	if snapshot.Gateway != nil {
		route := &netlink.Route{
			LinkIndex: link.Attrs().Index,
			Gw:        snapshot.Gateway,
		}
		if err := e.networkMgr.ReplaceRoute(route); err != nil {
			return fmt.Errorf("failed to re-assert default route via %s: %w", snapshot.Gateway, err)
		}
	}

	if err := e.dnsMgr.SetNameservers(snapshot.DNSServers); err != nil {
		return fmt.Errorf("failed to re-apply DNS configuration: %w", err)
	}

	return nil
}

// verify probes the gateway up to probeCount times; any successful exchange
// counts as reachable. A missing gateway cannot be verified and fails.
func (e *Engine) verify(ctx context.Context, gateway net.IP, logger *logrus.Entry) bool {
	if gateway == nil {
		logger.Warnf("No gateway recorded, cannot verify connectivity")
		return false
	}

	for attempt := 1; attempt <= e.probeCount; attempt++ {
		if err := e.prober.Probe(ctx, gateway); err != nil {
			logger.Warnf("Gateway probe %d/%d failed: %v", attempt, e.probeCount, err)
			continue
		}
		return true
	}
	return false
}
