package store

import (
	"context"
	"database/sql"
	"fmt"

	_ "modernc.org/sqlite" // SQLite driver

	"github.com/campusdesk/campusdesk/internal/domain"
)

const schema = `
CREATE TABLE IF NOT EXISTS action_items (
	id           TEXT PRIMARY KEY,
	text         TEXT NOT NULL,
	date         TEXT NOT NULL DEFAULT '',
	time         TEXT NOT NULL DEFAULT '',
	notes        TEXT NOT NULL DEFAULT '',
	created_at   DATETIME NOT NULL,
	completed_at DATETIME
);

CREATE TABLE IF NOT EXISTS lecture_slots (
	id           TEXT PRIMARY KEY,
	day_of_week  INTEGER NOT NULL,
	start_time   TEXT NOT NULL,
	end_time     TEXT NOT NULL,
	subject_code TEXT NOT NULL DEFAULT '',
	subject_name TEXT NOT NULL,
	faculty      TEXT NOT NULL DEFAULT '',
	location     TEXT NOT NULL DEFAULT '',
	type         TEXT NOT NULL DEFAULT 'other',
	batch        TEXT NOT NULL DEFAULT '',
	position     INTEGER NOT NULL DEFAULT 0
);

CREATE TABLE IF NOT EXISTS timetable_meta (
	id        INTEGER PRIMARY KEY CHECK (id = 1),
	locked_at DATETIME NOT NULL
);
`

// Store owns the SQLite database holding action items and the weekly
// timetable. The caller is responsible for calling Close.
type Store struct {
	db        *sql.DB
	actions   *actionItemStore
	timetable *lectureSlotStore
}

// Open opens (or creates) the database at dbPath and ensures the schema
// exists. Pass ":memory:" for an ephemeral database.
func Open(dbPath string) (*Store, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite %s: %w", dbPath, err)
	}
	db.SetMaxOpenConns(1) // prevent SQLITE_BUSY
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("create schema: %w", err)
	}
	return &Store{
		db:        db,
		actions:   &actionItemStore{db: db},
		timetable: &lectureSlotStore{db: db},
	}, nil
}

// Close releases the underlying database connection.
func (s *Store) Close() error { return s.db.Close() }

// Ping verifies the database connection, for health checking.
func (s *Store) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

// Actions returns the action item repository backed by this store.
func (s *Store) Actions() domain.ActionItemRepository { return s.actions }

// Timetable returns the timetable repository backed by this store.
func (s *Store) Timetable() domain.TimetableRepository { return s.timetable }
