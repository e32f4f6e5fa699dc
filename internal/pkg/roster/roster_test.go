//go:build unit

package roster

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolver_Resolve(t *testing.T) {
	resolver := NewResolver("orchestrator-01")

	t.Run("Classification", func(t *testing.T) {
		targets := resolver.Resolve([]string{"localhost", "ORCHESTRATOR-01", "web-01", "10.0.0.5"})
		require.Len(t, targets, 4)
		assert.Equal(t, TargetLocal, targets[0].Kind)
		assert.Equal(t, TargetLocal, targets[1].Kind, "own hostname routes in-process")
		assert.Equal(t, TargetRemote, targets[2].Kind)
		assert.Equal(t, TargetRemote, targets[3].Kind)
	})

	t.Run("BlankEntriesDropped", func(t *testing.T) {
		targets := resolver.Resolve([]string{"web-01", "", "   ", "web-02"})
		require.Len(t, targets, 2)
		assert.Equal(t, "web-01", targets[0].Identifier)
		assert.Equal(t, "web-02", targets[1].Identifier)
	})

	t.Run("WhitespaceTrimmed", func(t *testing.T) {
		targets := resolver.Resolve([]string{"  web-01  "})
		require.Len(t, targets, 1)
		assert.Equal(t, "web-01", targets[0].Identifier)
	})

	t.Run("NoDeduplication", func(t *testing.T) {
		targets := resolver.Resolve([]string{"web-01", "web-01", "web-01"})
		assert.Len(t, targets, 3)
	})
}

func TestResolver_LoadCSV(t *testing.T) {
	resolver := NewResolver("orchestrator-01")
	tempDir := t.TempDir()

	writeRoster := func(t *testing.T, name, content string) string {
		path := filepath.Join(tempDir, name)
		require.NoError(t, os.WriteFile(path, []byte(content), 0644))
		return path
	}

	t.Run("ValidRoster", func(t *testing.T) {
		path := writeRoster(t, "valid.csv", "target,site\nweb-01,east\nlocalhost,local\nweb-02,west\n")

		targets, err := resolver.LoadCSV(path, "target")
		require.NoError(t, err)
		require.Len(t, targets, 3)
		assert.Equal(t, "web-01", targets[0].Identifier)
		assert.Equal(t, TargetRemote, targets[0].Kind)
		assert.Equal(t, TargetLocal, targets[1].Kind)
		assert.Equal(t, "web-02", targets[2].Identifier)
	})

	t.Run("BlankRecordsDropped", func(t *testing.T) {
		path := writeRoster(t, "blanks.csv", "target\nweb-01\n\"   \"\nweb-02\n")

		targets, err := resolver.LoadCSV(path, "target")
		require.NoError(t, err)
		assert.Len(t, targets, 2)
	})

	t.Run("DefaultColumnName", func(t *testing.T) {
		path := writeRoster(t, "default.csv", "Target\nweb-01\n")

		targets, err := resolver.LoadCSV(path, "")
		require.NoError(t, err)
		require.Len(t, targets, 1)
		assert.Equal(t, "web-01", targets[0].Identifier)
	})

	t.Run("MissingColumn", func(t *testing.T) {
		path := writeRoster(t, "missing.csv", "hostname\nweb-01\n")

		_, err := resolver.LoadCSV(path, "target")
		assert.Error(t, err)
		assert.Contains(t, err.Error(), `no "target" column`)
	})

	t.Run("NonExistentFile", func(t *testing.T) {
		_, err := resolver.LoadCSV(filepath.Join(tempDir, "nope.csv"), "target")
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "failed to open roster file")
	})

	t.Run("EmptyFile", func(t *testing.T) {
		path := writeRoster(t, "empty.csv", "")

		_, err := resolver.LoadCSV(path, "target")
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "empty")
	})
}
