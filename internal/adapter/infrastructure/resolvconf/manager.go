// Package resolvconf provides a resolver configuration adapter backed by
// /etc/resolv.conf.
package resolvconf

import (
	"fmt"
	"net"
	"strings"

	"prefixctl/internal/port"
)

// DefaultPath is the resolver configuration file consulted by libc.
const DefaultPath = "/etc/resolv.conf"

// ManagerAdapter is an adapter that implements the DNSManager port by
// parsing and rewriting a resolv.conf style file.
type ManagerAdapter struct {
	fileMgr port.FileManager
	path    string
}

// Ensure ManagerAdapter implements the DNSManager port
var _ port.DNSManager = (*ManagerAdapter)(nil)

// NewManagerAdapter creates a resolver configuration adapter. An empty path
// falls back to /etc/resolv.conf.
func NewManagerAdapter(fileMgr port.FileManager, path string) *ManagerAdapter {
	if path == "" {
		path = DefaultPath
	}
	return &ManagerAdapter{fileMgr: fileMgr, path: path}
}

// Nameservers returns the configured DNS servers in file order. A missing
// file yields an empty list, not an error.
func (m *ManagerAdapter) Nameservers() ([]net.IP, error) {
	if !m.fileMgr.FileExists(m.path) {
		return nil, nil
	}

	data, err := m.fileMgr.ReadFile(m.path)
	if err != nil {
		return nil, fmt.Errorf("failed to read resolver configuration: %w", err)
	}

	var servers []net.IP
	for _, line := range strings.Split(string(data), "\n") {
		fields := strings.Fields(line)
		if len(fields) < 2 || fields[0] != "nameserver" {
			continue
		}
		if ip := net.ParseIP(fields[1]); ip != nil {
			servers = append(servers, ip)
		}
	}
	return servers, nil
}

// SetNameservers replaces the configured DNS server list, preserving order.
func (m *ManagerAdapter) SetNameservers(servers []net.IP) error {
	content := "# Generated by prefixctl\n"
	for _, server := range servers {
		content += fmt.Sprintf("nameserver %s\n", server.String())
	}

	if err := m.fileMgr.WriteFile(m.path, []byte(content), 0644); err != nil {
		return fmt.Errorf("failed to write resolver configuration: %w", err)
	}
	return nil
}
