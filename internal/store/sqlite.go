// Package store persists hole records. The engine writes optimistically
// through an async recorder; sqlite is the durable backend.
package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	_ "github.com/mattn/go-sqlite3"

	"github.com/stuagano/wolf-goat-pig-sub000/internal/game"
)

// Store is the durable backend for hole records.
type Store interface {
	SaveHole(ctx context.Context, roundID string, rec *game.HoleRecord) error
	MarkComplete(ctx context.Context, roundID string) error
	LoadRound(ctx context.Context, roundID string) ([]*game.HoleRecord, error)
	Close() error
}

const schema = `
CREATE TABLE IF NOT EXISTS rounds (
	id         TEXT PRIMARY KEY,
	complete   INTEGER NOT NULL DEFAULT 0,
	created_at TEXT NOT NULL DEFAULT (datetime('now'))
);
CREATE TABLE IF NOT EXISTS hole_records (
	round_id TEXT NOT NULL,
	hole     INTEGER NOT NULL,
	wager    INTEGER NOT NULL,
	phase    TEXT NOT NULL,
	payload  TEXT NOT NULL,
	PRIMARY KEY (round_id, hole)
);
`

// SQLite is the sqlite-backed store.
type SQLite struct {
	db *sql.DB
}

// OpenSQLite opens (creating if needed) a sqlite database at path.
func OpenSQLite(path string) (*SQLite, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create schema: %w", err)
	}
	return &SQLite{db: db}, nil
}

// SaveHole upserts one hole record. Edits replace the row in place, the
// same way the in-memory ledger replaces the record.
func (s *SQLite) SaveHole(ctx context.Context, roundID string, rec *game.HoleRecord) error {
	payload, err := json.Marshal(rec)
	if err != nil {
		return fmt.Errorf("failed to encode hole record: %w", err)
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx,
		`INSERT OR IGNORE INTO rounds (id) VALUES (?)`, roundID); err != nil {
		return fmt.Errorf("failed to upsert round: %w", err)
	}
	if _, err := tx.ExecContext(ctx,
		`INSERT OR REPLACE INTO hole_records (round_id, hole, wager, phase, payload) VALUES (?, ?, ?, ?, ?)`,
		roundID, rec.Hole, rec.Wager, rec.Phase, string(payload)); err != nil {
		return fmt.Errorf("failed to save hole %d: %w", rec.Hole, err)
	}

	return tx.Commit()
}

// MarkComplete flags a round as fully recorded.
func (s *SQLite) MarkComplete(ctx context.Context, roundID string) error {
	res, err := s.db.ExecContext(ctx,
		`UPDATE rounds SET complete = 1 WHERE id = ?`, roundID)
	if err != nil {
		return fmt.Errorf("failed to mark round complete: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("round %s not found", roundID)
	}
	return nil
}

// LoadRound reads all hole records for a round, ordered by hole.
func (s *SQLite) LoadRound(ctx context.Context, roundID string) ([]*game.HoleRecord, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT payload FROM hole_records WHERE round_id = ? ORDER BY hole`, roundID)
	if err != nil {
		return nil, fmt.Errorf("failed to load round: %w", err)
	}
	defer rows.Close()

	var records []*game.HoleRecord
	for rows.Next() {
		var payload string
		if err := rows.Scan(&payload); err != nil {
			return nil, err
		}
		var rec game.HoleRecord
		if err := json.Unmarshal([]byte(payload), &rec); err != nil {
			return nil, fmt.Errorf("failed to decode hole record: %w", err)
		}
		records = append(records, &rec)
	}
	return records, rows.Err()
}

// Close closes the underlying database.
func (s *SQLite) Close() error {
	return s.db.Close()
}
