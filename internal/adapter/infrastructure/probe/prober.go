// Package probe provides a reachability probe adapter implementation.
package probe

import (
	"context"
	"fmt"
	"net"
	"time"

	"prefixctl/internal/port"

	probing "github.com/prometheus-community/pro-bing"
)

// DefaultTimeout bounds a single probe exchange.
const DefaultTimeout = 3 * time.Second

// ProberAdapter is an adapter that implements the Prober port using the
// prometheus-community/pro-bing library.
type ProberAdapter struct {
	timeout    time.Duration
	privileged bool
}

// Ensure ProberAdapter implements the Prober port
var _ port.Prober = (*ProberAdapter)(nil)

// NewProberAdapter creates a new probe adapter. privileged selects raw ICMP
// sockets; unprivileged UDP ping requires net.ipv4.ping_group_range to allow
// the process.
func NewProberAdapter(timeout time.Duration, privileged bool) *ProberAdapter {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &ProberAdapter{timeout: timeout, privileged: privileged}
}

// Probe issues a single echo exchange with addr. A nil error means the
// address answered within the timeout.
func (p *ProberAdapter) Probe(ctx context.Context, addr net.IP) error {
	pinger, err := probing.NewPinger(addr.String())
	if err != nil {
		return fmt.Errorf("failed to create pinger for %s: %w", addr, err)
	}
	pinger.Count = 1
	pinger.Timeout = p.timeout
	pinger.SetPrivileged(p.privileged)

	if err := pinger.RunWithContext(ctx); err != nil {
		return fmt.Errorf("probe to %s failed: %w", addr, err)
	}
	if pinger.Statistics().PacketsRecv == 0 {
		return fmt.Errorf("no reply from %s within %s", addr, p.timeout)
	}
	return nil
}
