//go:build unit

package report

import (
	"bytes"
	"path/filepath"
	"strings"
	"testing"

	"prefixctl/internal/adapter/infrastructure/file"
	"prefixctl/internal/types"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func intPtr(n int) *int { return &n }

func sampleReport() *FleetReport {
	r := New()
	r.Append(types.ReconfigurationOutcome{
		Target: "web-01", OldPrefixLength: intPtr(24), NewPrefixLength: 25,
		Kind: types.OutcomeSuccess, Message: "prefix length changed from 24 (255.255.255.0) to 25 (255.255.255.128)",
	})
	r.Append(types.ReconfigurationOutcome{
		Target: "web-02", NewPrefixLength: 25,
		Kind: types.OutcomeNoAdapterFound, Message: "no adapter with an IPv4 address found",
	})
	r.Append(types.ReconfigurationOutcome{
		Target: "web-03", OldPrefixLength: intPtr(25), NewPrefixLength: 25,
		Kind: types.OutcomeSkippedAlreadySet, Message: "prefix length already 25 (255.255.255.128)",
	})
	return r
}

func TestFleetReport_AppendOrder(t *testing.T) {
	r := sampleReport()
	require.Equal(t, 3, r.Len())

	outcomes := r.Outcomes()
	assert.Equal(t, "web-01", outcomes[0].Target)
	assert.Equal(t, "web-02", outcomes[1].Target)
	assert.Equal(t, "web-03", outcomes[2].Target)
}

func TestFleetReport_Counts(t *testing.T) {
	r := sampleReport()

	counts := r.Counts()
	assert.Equal(t, 1, counts[types.OutcomeSuccess])
	assert.Equal(t, 1, counts[types.OutcomeNoAdapterFound])
	assert.Equal(t, 1, counts[types.OutcomeSkippedAlreadySet])

	succeeded, failed, skipped := r.Summary()
	assert.Equal(t, 1, succeeded)
	assert.Equal(t, 1, failed)
	assert.Equal(t, 1, skipped)
}

func TestFleetReport_WriteCSV(t *testing.T) {
	r := sampleReport()
	fileMgr := file.NewManagerAdapter()
	path := filepath.Join(t.TempDir(), "report.csv")

	require.NoError(t, r.WriteCSV(fileMgr, path))

	data, err := fileMgr.ReadFile(path)
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	require.Len(t, lines, 4, "header plus one row per target")
	assert.Equal(t, "target,old_prefix,new_prefix,result", lines[0])
	assert.Equal(t, "web-01,24,25,Success", lines[1])
	assert.Equal(t, "web-02,,25,NoAdapterFound", lines[2])
	assert.Equal(t, "web-03,25,25,SkippedAlreadySet", lines[3])
}

func TestFleetReport_WriteCSV_Overwrites(t *testing.T) {
	fileMgr := file.NewManagerAdapter()
	path := filepath.Join(t.TempDir(), "report.csv")

	first := New()
	first.Append(types.ReconfigurationOutcome{Target: "old-host", NewPrefixLength: 24, Kind: types.OutcomeError})
	require.NoError(t, first.WriteCSV(fileMgr, path))

	second := sampleReport()
	require.NoError(t, second.WriteCSV(fileMgr, path))

	data, err := fileMgr.ReadFile(path)
	require.NoError(t, err)
	assert.NotContains(t, string(data), "old-host")
}

func TestFleetReport_RenderTable(t *testing.T) {
	r := sampleReport()

	var buf bytes.Buffer
	r.RenderTable(&buf)

	output := buf.String()
	assert.Contains(t, output, "TARGET")
	assert.Contains(t, output, "web-01")
	assert.Contains(t, output, "/25")
	assert.Contains(t, output, "1 succeeded, 1 failed, 1 skipped (3 total)")
}

func TestFleetReport_RenderTable_Empty(t *testing.T) {
	var buf bytes.Buffer
	New().RenderTable(&buf)
	assert.Contains(t, buf.String(), "0 succeeded, 0 failed, 0 skipped (0 total)")
}
