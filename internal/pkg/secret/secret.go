// Package secret holds short-lived credentials in a scoped handle that is
// explicitly cleared at the end of orchestration on every exit path.
package secret

import (
	"fmt"
	"os"
	"sync"

	"golang.org/x/term"
)

// Secret owns a credential in memory. The value is never logged and never
// persisted; Clear zeroes the backing bytes. A cleared secret yields an
// empty value.
type Secret struct {
	mu   sync.Mutex
	data []byte
}

// FromBytes wraps b in a secret handle. The handle takes ownership of b;
// the caller must not reuse it.
func FromBytes(b []byte) *Secret {
	return &Secret{data: b}
}

// Prompt reads a credential from the terminal with echo disabled.
func Prompt(prompt string) (*Secret, error) {
	fmt.Fprint(os.Stderr, prompt)
	data, err := term.ReadPassword(int(os.Stdin.Fd()))
	fmt.Fprintln(os.Stderr)
	if err != nil {
		return nil, fmt.Errorf("failed to read credential: %w", err)
	}
	return FromBytes(data), nil
}

// Value returns the credential as a string, or "" once cleared.
func (s *Secret) Value() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return string(s.data)
}

// IsSet reports whether the handle still holds a non-empty credential.
func (s *Secret) IsSet() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.data) > 0
}

// Clear zeroes and releases the backing bytes. Safe to call multiple times.
func (s *Secret) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.data {
		s.data[i] = 0
	}
	s.data = nil
}

// String implements fmt.Stringer so accidental formatting never leaks the
// credential.
func (s *Secret) String() string {
	return "[redacted]"
}
