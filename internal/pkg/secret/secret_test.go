//go:build unit

package secret

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSecret_Value(t *testing.T) {
	s := FromBytes([]byte("hunter2"))
	assert.Equal(t, "hunter2", s.Value())
	assert.True(t, s.IsSet())
}

func TestSecret_Clear(t *testing.T) {
	backing := []byte("hunter2")
	s := FromBytes(backing)

	s.Clear()
	assert.Equal(t, "", s.Value())
	assert.False(t, s.IsSet())

	// Backing bytes are zeroed, not just released.
	for i, b := range backing {
		assert.Zero(t, b, "byte %d not zeroed", i)
	}

	// Clearing twice is safe.
	s.Clear()
	assert.Equal(t, "", s.Value())
}

func TestSecret_FormattingNeverLeaks(t *testing.T) {
	s := FromBytes([]byte("hunter2"))
	assert.Equal(t, "[redacted]", fmt.Sprintf("%v", s))
	assert.Equal(t, "[redacted]", fmt.Sprintf("%s", s))
	assert.NotContains(t, fmt.Sprintf("%+v", s), "hunter2")
}
