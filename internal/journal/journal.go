// Package journal persists the original path of files about to be
// renamed, so a collision detected after the move can be rolled back
// even if it is noticed by a later run.
package journal

import (
	"database/sql"
	"errors"
	"os"
	"path/filepath"
	"time"

	"github.com/adrg/xdg"
	_ "modernc.org/sqlite" // SQLite driver
)

const (
	appName    = "tagstand"
	dbFileName = "journal.db"
)

// Journal is a sqlite-backed map from current path to original path.
type Journal struct {
	db *sql.DB
}

// Open opens the journal at path, creating it as needed. An empty path
// uses the default location under the user's data directory.
func Open(path string) (*Journal, error) {
	if path == "" {
		var err error
		path, err = xdg.DataFile(filepath.Join(appName, dbFileName))
		if err != nil {
			return nil, err
		}
	}

	// Ensure directory exists
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, err
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}

	if err := initSchema(db); err != nil {
		db.Close()
		return nil, err
	}

	return &Journal{db: db}, nil
}

func initSchema(db *sql.DB) error {
	_, err := db.Exec(`
		CREATE TABLE IF NOT EXISTS renames (
			current TEXT PRIMARY KEY,
			original TEXT NOT NULL,
			recorded_at INTEGER NOT NULL
		);
	`)
	return err
}

func (j *Journal) Close() error {
	return j.db.Close()
}

// Record stores the original path for a file now at current,
// replacing any previous entry for the same current path.
func (j *Journal) Record(current, original string) error {
	_, err := j.db.Exec(`
		INSERT INTO renames (current, original, recorded_at)
		VALUES (?, ?, ?)
		ON CONFLICT(current) DO UPDATE SET
			original = excluded.original,
			recorded_at = excluded.recorded_at
	`, current, original, time.Now().Unix())
	return err
}

// Lookup returns the recorded original path for current, or ok=false
// when none is recorded.
func (j *Journal) Lookup(current string) (string, bool, error) {
	row := j.db.QueryRow(`SELECT original FROM renames WHERE current = ?`, current)

	var original string
	err := row.Scan(&original)
	if errors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return original, true, nil
}

// Clear removes the entry for current. Clearing an absent entry is a
// no-op.
func (j *Journal) Clear(current string) error {
	_, err := j.db.Exec(`DELETE FROM renames WHERE current = ?`, current)
	return err
}
