//go:build unit

package remote

import (
	"context"
	"testing"
	"time"

	"prefixctl/internal/pkg/secret"
	"prefixctl/internal/types"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewRunner_Defaults(t *testing.T) {
	runner := NewRunner("admin", 0, nil, secret.FromBytes([]byte("pw")), "")
	assert.Equal(t, 22, runner.port)
	assert.Equal(t, DefaultCommand, runner.command)
	assert.Len(t, runner.auth, 1)
}

func TestRunner_Run_DialFailure(t *testing.T) {
	runner := NewRunner("admin", 2222, nil, secret.FromBytes([]byte("pw")), "")
	runner.dialTimeout = 200 * time.Millisecond

	// TEST-NET-1 address: the channel can never be established.
	_, err := runner.Run(context.Background(), "192.0.2.1", 25)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "SSH dial")
}

func TestDecodeOutcome(t *testing.T) {
	t.Run("ValidRecord", func(t *testing.T) {
		output := []byte(`{"target":"","old_prefix":24,"new_prefix":25,"result":"Success","message":"ok"}`)

		outcome, err := decodeOutcome(output, 25)
		require.NoError(t, err)
		assert.Equal(t, types.OutcomeSuccess, outcome.Kind)
		require.NotNil(t, outcome.OldPrefixLength)
		assert.Equal(t, 24, *outcome.OldPrefixLength)
		assert.Equal(t, 25, outcome.NewPrefixLength)
	})

	t.Run("MissingResult", func(t *testing.T) {
		_, err := decodeOutcome([]byte(`{"new_prefix":25}`), 25)
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "missing result field")
	})

	t.Run("MalformedJSON", func(t *testing.T) {
		_, err := decodeOutcome([]byte("command not found: prefixctl"), 25)
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "malformed remote outcome")
	})

	t.Run("FillsDesiredPrefix", func(t *testing.T) {
		outcome, err := decodeOutcome([]byte(`{"result":"NoAdapterFound"}`), 25)
		require.NoError(t, err)
		assert.Equal(t, 25, outcome.NewPrefixLength)
	})
}
