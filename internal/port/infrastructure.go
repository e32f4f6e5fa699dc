// Package port defines the primary ports (interfaces) for the application.
// This follows the Ports and Adapters (Hexagonal Architecture) pattern.
package port

import (
	"context"
	"net"
	"time"

	"prefixctl/internal/types"

	"github.com/vishvananda/netlink"
)

// NetworkManager is a port for network interface operations.
// This interface abstracts netlink operations for address reconfiguration.
type NetworkManager interface {
	// ListLinks returns all network links on the machine, in enumeration order
	ListLinks() ([]netlink.Link, error)

	// ListAddresses returns IPv4 addresses configured on the link
	ListAddresses(link netlink.Link) ([]netlink.Addr, error)

	// ReplaceAddress adds or updates an IP address binding on the interface
	ReplaceAddress(link netlink.Link, addr *netlink.Addr) error

	// DeleteAddress removes an IP address binding from the interface
	DeleteAddress(link netlink.Link, addr *netlink.Addr) error

	// ListRoutes returns IPv4 routes
	ListRoutes() ([]netlink.Route, error)

	// ReplaceRoute adds or updates a route
	ReplaceRoute(route *netlink.Route) error
}

// DNSManager is a port for resolver configuration.
// This interface abstracts reading and writing the nameserver list.
type DNSManager interface {
	// Nameservers returns the configured DNS servers in order
	Nameservers() ([]net.IP, error)

	// SetNameservers replaces the configured DNS server list
	SetNameservers(servers []net.IP) error
}

// Prober is a port for reachability probes.
type Prober interface {
	// Probe issues a single reachability exchange with addr; a nil error
	// means the address answered
	Probe(ctx context.Context, addr net.IP) error
}

// Sleeper is a port for blocking waits, abstracted so tests can skip the
// post-apply settle window.
type Sleeper interface {
	Sleep(d time.Duration)
}

// RemoteRunner is a port for the remote-execution boundary. The contract is
// a single-argument call per target returning the structured outcome.
type RemoteRunner interface {
	// Run executes the reconfiguration routine on host. A non-nil error
	// means the remote-execution channel itself could not be established;
	// failures inside the remote routine come back inside the outcome.
	Run(ctx context.Context, host string, desiredPrefix int) (types.ReconfigurationOutcome, error)
}

// FileManager is a port for file system operations.
// This interface abstracts file read/write operations.
type FileManager interface {
	// ReadFile reads the contents of a file
	ReadFile(filename string) ([]byte, error)

	// WriteFile writes data to a file with specified permissions
	WriteFile(filename string, data []byte, perm int) error

	// FileExists checks if a file exists
	FileExists(filename string) bool
}
