package history_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/openkraft/testgap/internal/adapters/outbound/history"
	"github.com/openkraft/testgap/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHistory_SaveAndLoad(t *testing.T) {
	dir := t.TempDir()
	h := history.New()

	entry := domain.CoverageEntry{
		Timestamp:  "2026-02-25T10:00:00Z",
		CommitHash: "abc1234",
		Total:      11,
		Tested:     4,
		Percentage: 36.36,
	}

	err := h.Save(dir, entry)
	require.NoError(t, err)

	entries, err := h.Load(dir)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, entry, entries[0])
	assert.FileExists(t, filepath.Join(dir, history.File))
}

func TestHistory_AppendMultiple(t *testing.T) {
	dir := t.TempDir()
	h := history.New()

	require.NoError(t, h.Save(dir, domain.CoverageEntry{Timestamp: "t1", Percentage: 36.4}))
	require.NoError(t, h.Save(dir, domain.CoverageEntry{Timestamp: "t2", Percentage: 54.5}))
	require.NoError(t, h.Save(dir, domain.CoverageEntry{Timestamp: "t3", Percentage: 100}))

	entries, err := h.Load(dir)
	require.NoError(t, err)
	require.Len(t, entries, 3)
	assert.Equal(t, "t1", entries[0].Timestamp)
	assert.InDelta(t, 100.0, entries[2].Percentage, 0.001)
}

func TestHistory_LoadEmpty(t *testing.T) {
	dir := t.TempDir()
	h := history.New()

	entries, err := h.Load(dir)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestHistory_CreatesDirectory(t *testing.T) {
	dir := t.TempDir()
	nestedDir := filepath.Join(dir, "deep", "nested")
	h := history.New()

	err := h.Save(nestedDir, domain.CoverageEntry{Timestamp: "t1"})
	require.NoError(t, err)

	entries, err := h.Load(nestedDir)
	require.NoError(t, err)
	assert.Len(t, entries, 1)
}

func TestHistory_CorruptFile(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, history.File), []byte("{not json"), 0644))

	_, err := history.New().Load(dir)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "parsing testgap_history.json")

	assert.Error(t, history.New().Save(dir, domain.CoverageEntry{}))
}
