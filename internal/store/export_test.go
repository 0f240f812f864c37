package store

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stuagano/wolf-goat-pig-sub000/internal/game"
)

func TestWriteRoundExport(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := filepath.Join(dir, "round.json")

	records := []*game.HoleRecord{testRecord(1, 2), testRecord(2, 1)}
	require.NoError(t, WriteRoundExport(path, "round-1", records))

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	var export RoundExport
	require.NoError(t, json.Unmarshal(data, &export))
	assert.Equal(t, "round-1", export.RoundID)
	require.Len(t, export.Holes, 2)
	assert.Equal(t, 2, export.Holes[0].Wager)
	assert.Equal(t, 1.0, export.Holes[0].Quarters["ann"])

	// No temp files left behind.
	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	for _, e := range entries {
		if strings.Contains(e.Name(), ".tmp.") {
			t.Errorf("temp file left behind: %s", e.Name())
		}
	}
}

func TestWriteRoundExport_ReplacesExisting(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "round.json")
	require.NoError(t, os.WriteFile(path, []byte("not json"), 0644))

	require.NoError(t, WriteRoundExport(path, "round-2", []*game.HoleRecord{testRecord(1, 4)}))

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	var export RoundExport
	require.NoError(t, json.Unmarshal(data, &export))
	assert.Equal(t, "round-2", export.RoundID)
}
