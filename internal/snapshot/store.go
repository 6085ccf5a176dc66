// Package snapshot stores the profile, job and course corpora in a single
// SQLite file so recommendations can run without the upstream database.
package snapshot

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"
)

const schema = `
CREATE TABLE IF NOT EXISTS profiles (
	user_id          TEXT PRIMARY KEY,
	job_title        TEXT NOT NULL DEFAULT '',
	skills           TEXT NOT NULL DEFAULT 'null',
	salary           REAL,
	salary_period    TEXT NOT NULL DEFAULT '',
	currency         TEXT NOT NULL DEFAULT '',
	years_experience REAL
);
CREATE TABLE IF NOT EXISTS jobs (
	id              INTEGER PRIMARY KEY AUTOINCREMENT,
	title           TEXT NOT NULL,
	annual_comp     REAL,
	work_experience REAL,
	language        TEXT NOT NULL DEFAULT 'null',
	database_skills TEXT NOT NULL DEFAULT 'null',
	platform        TEXT NOT NULL DEFAULT 'null',
	framework       TEXT NOT NULL DEFAULT 'null'
);
CREATE TABLE IF NOT EXISTS courses (
	id          TEXT PRIMARY KEY,
	title       TEXT NOT NULL DEFAULT '',
	provider    TEXT NOT NULL DEFAULT '',
	url         TEXT NOT NULL DEFAULT '',
	description TEXT NOT NULL DEFAULT '',
	level       TEXT NOT NULL DEFAULT '',
	duration    TEXT NOT NULL DEFAULT '',
	model       TEXT NOT NULL DEFAULT '',
	embedding   BLOB
);
CREATE TABLE IF NOT EXISTS metadata (
	key   TEXT PRIMARY KEY,
	value TEXT NOT NULL
);`

// ErrInvalidUserID is returned for a stored profile whose id is not a UUID.
var ErrInvalidUserID = errors.New("snapshot: invalid user id")

// Store is a SQLite-backed corpus snapshot.
type Store struct {
	db *sql.DB
}

// Open opens (or creates) the snapshot file at path.
func Open(path string) (*Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("snapshot: open db: %w", err)
	}
	db.SetMaxOpenConns(1) // SQLite: single writer
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("snapshot: init schema: %w", err)
	}
	return &Store{db: db}, nil
}

// Close closes the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}

func parseUserID(raw string) (uuid.UUID, error) {
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, fmt.Errorf("%w %q: %v", ErrInvalidUserID, raw, err)
	}
	return id, nil
}
