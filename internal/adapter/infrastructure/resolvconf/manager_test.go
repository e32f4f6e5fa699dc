//go:build unit

package resolvconf

import (
	"net"
	"os"
	"path/filepath"
	"testing"

	"prefixctl/internal/adapter/infrastructure/file"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestManagerAdapter_Nameservers(t *testing.T) {
	fileMgr := file.NewManagerAdapter()
	tempDir := t.TempDir()

	t.Run("ParsesInOrder", func(t *testing.T) {
		path := filepath.Join(tempDir, "resolv.conf")
		content := "# comment\nsearch example.com\nnameserver 8.8.8.8\nnameserver 1.1.1.1\n"
		require.NoError(t, os.WriteFile(path, []byte(content), 0644))

		adapter := NewManagerAdapter(fileMgr, path)
		servers, err := adapter.Nameservers()
		require.NoError(t, err)
		require.Len(t, servers, 2)
		assert.Equal(t, "8.8.8.8", servers[0].String())
		assert.Equal(t, "1.1.1.1", servers[1].String())
	})

	t.Run("MissingFileIsEmpty", func(t *testing.T) {
		adapter := NewManagerAdapter(fileMgr, filepath.Join(tempDir, "nope.conf"))
		servers, err := adapter.Nameservers()
		assert.NoError(t, err)
		assert.Empty(t, servers)
	})

	t.Run("IgnoresMalformedLines", func(t *testing.T) {
		path := filepath.Join(tempDir, "malformed.conf")
		content := "nameserver\nnameserver not-an-ip\nnameserver 9.9.9.9\n"
		require.NoError(t, os.WriteFile(path, []byte(content), 0644))

		adapter := NewManagerAdapter(fileMgr, path)
		servers, err := adapter.Nameservers()
		require.NoError(t, err)
		require.Len(t, servers, 1)
		assert.Equal(t, "9.9.9.9", servers[0].String())
	})
}

func TestManagerAdapter_SetNameservers(t *testing.T) {
	fileMgr := file.NewManagerAdapter()
	path := filepath.Join(t.TempDir(), "resolv.conf")
	adapter := NewManagerAdapter(fileMgr, path)

	servers := []net.IP{net.ParseIP("8.8.8.8"), net.ParseIP("8.8.4.4")}
	require.NoError(t, adapter.SetNameservers(servers))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "# Generated by prefixctl\nnameserver 8.8.8.8\nnameserver 8.8.4.4\n", string(data))

	// Round-trip preserves order.
	back, err := adapter.Nameservers()
	require.NoError(t, err)
	require.Len(t, back, 2)
	assert.Equal(t, "8.8.8.8", back[0].String())
}
