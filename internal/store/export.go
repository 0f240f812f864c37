package store

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/stuagano/wolf-goat-pig-sub000/internal/game"
)

// RoundExport is the JSON shape written for external tooling.
type RoundExport struct {
	RoundID string             `json:"roundId"`
	Holes   []*game.HoleRecord `json:"holes"`
}

// WriteRoundExport writes the full hole history as JSON, atomically: the
// data lands in a temp file in the same directory and is renamed into
// place, so readers see either no file or a complete one, never a partial
// write.
func WriteRoundExport(filename, roundID string, records []*game.HoleRecord) error {
	data, err := json.MarshalIndent(RoundExport{RoundID: roundID, Holes: records}, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode round export: %w", err)
	}

	dir := filepath.Dir(filename)
	base := filepath.Base(filename)

	tmpFile, err := os.CreateTemp(dir, base+".tmp.*")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	tmpPath := tmpFile.Name()

	defer func() {
		if tmpFile != nil {
			tmpFile.Close()
			os.Remove(tmpPath)
		}
	}()

	if _, err := tmpFile.Write(data); err != nil {
		return fmt.Errorf("failed to write temp file: %w", err)
	}
	if err := tmpFile.Sync(); err != nil {
		return fmt.Errorf("failed to sync temp file: %w", err)
	}
	if err := tmpFile.Close(); err != nil {
		return fmt.Errorf("failed to close temp file: %w", err)
	}
	tmpFile = nil

	if err := os.Chmod(tmpPath, 0644); err != nil {
		return fmt.Errorf("failed to set permissions: %w", err)
	}
	if err := os.Rename(tmpPath, filename); err != nil {
		return fmt.Errorf("failed to rename temp file: %w", err)
	}

	return nil
}
