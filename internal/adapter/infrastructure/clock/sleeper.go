// Package clock provides the real-time Sleeper adapter.
package clock

import (
	"time"

	"prefixctl/internal/port"
)

// SleeperAdapter is an adapter that implements the Sleeper port using the
// standard time package.
type SleeperAdapter struct{}

// Ensure SleeperAdapter implements the Sleeper port
var _ port.Sleeper = (*SleeperAdapter)(nil)

// NewSleeperAdapter creates a new sleeper adapter.
func NewSleeperAdapter() *SleeperAdapter {
	return &SleeperAdapter{}
}

// Sleep blocks for d.
func (s *SleeperAdapter) Sleep(d time.Duration) {
	time.Sleep(d)
}
