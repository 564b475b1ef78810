// Package history keeps a sqlite log of every command the worker handled.
package history

import (
	"database/sql"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite" // SQLite driver

	"github.com/llehouerou/spotiqueue-worker/internal/db"
)

// maxEntries bounds the table; older rows are pruned on insert.
const maxEntries = 1000

// Entry is one handled command.
type Entry struct {
	ID        int64
	URI       string
	TrackHex  string // empty when the command did not resolve to a track
	Outcome   string
	Error     string
	HandledAt time.Time
}

// Store is the play history database. It is safe for concurrent use.
type Store struct {
	db *sql.DB
}

// Open opens (creating if needed) the history database at path.
func Open(path string) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, err
	}

	conn, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	if _, err := conn.Exec("PRAGMA journal_mode = WAL"); err != nil {
		conn.Close()
		return nil, err
	}

	s, err := New(conn)
	if err != nil {
		conn.Close()
		return nil, err
	}
	return s, nil
}

// New wraps an open database, initializing the schema.
func New(conn *sql.DB) (*Store, error) {
	if err := initSchema(conn); err != nil {
		return nil, err
	}
	return &Store{db: conn}, nil
}

// Record inserts e and prunes entries beyond maxEntries.
func (s *Store) Record(e Entry) error {
	if e.HandledAt.IsZero() {
		e.HandledAt = time.Now()
	}
	return db.WithTx(s.db, func(tx *sql.Tx) error {
		if _, err := tx.Exec(
			`INSERT INTO play_history (uri, track_hex, outcome, error, handled_at) VALUES (?, ?, ?, ?, ?)`,
			e.URI, nullString(e.TrackHex), e.Outcome, nullString(e.Error), e.HandledAt.UnixMilli(),
		); err != nil {
			return err
		}
		_, err := tx.Exec(`
			DELETE FROM play_history
			WHERE id NOT IN (SELECT id FROM play_history ORDER BY id DESC LIMIT ?)
		`, maxEntries)
		return err
	})
}

// Recent returns up to limit entries, newest first.
func (s *Store) Recent(limit int) ([]Entry, error) {
	rows, err := s.db.Query(`
		SELECT id, uri, track_hex, outcome, error, handled_at
		FROM play_history
		ORDER BY id DESC
		LIMIT ?
	`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		var (
			e         Entry
			trackHex  sql.NullString
			errText   sql.NullString
			handledAt int64
		)
		if err := rows.Scan(&e.ID, &e.URI, &trackHex, &e.Outcome, &errText, &handledAt); err != nil {
			return nil, err
		}
		e.TrackHex = db.NullStringValue(trackHex)
		e.Error = db.NullStringValue(errText)
		e.HandledAt = time.UnixMilli(handledAt)
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

// Close closes the database.
func (s *Store) Close() error {
	return s.db.Close()
}

func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}
