// Package storage provides the high score ledger.
// The SQLite store uses the pure-Go modernc.org/sqlite driver to avoid CGO.
package storage

import (
	"database/sql"
	"errors"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite" // Pure Go SQLite driver
)

// Store is a Ledger backed by a SQLite database file.
type Store struct {
	db  *sql.DB
	now func() time.Time
}

// Stats summarizes the ledger.
type Stats struct {
	Games      int
	HighScore  int
	AvgScore   float64
	LastPlayed time.Time
}

// Open creates or opens a SQLite database at the given path.
// It creates the parent directories if needed and runs migrations.
func Open(dbPath string) (*Store, error) {
	// Expand ~ to home directory
	if dbPath != "" && dbPath[0] == '~' {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, persistErr("expand home directory", err)
		}
		dbPath = filepath.Join(home, dbPath[1:])
	}

	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, persistErr("create directory "+dir, err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, persistErr("open database", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, persistErr("connect", err)
	}

	// One writer at a time; SSH sessions share the handle.
	db.SetMaxOpenConns(1)

	store := &Store{db: db, now: time.Now}
	if err := store.migrate(); err != nil {
		db.Close()
		return nil, persistErr("migrate", err)
	}

	return store, nil
}

func (s *Store) migrate() error {
	schema := `
		CREATE TABLE IF NOT EXISTS high_scores (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			initials TEXT NOT NULL,
			score INTEGER NOT NULL,
			played_at DATETIME NOT NULL
		);
		CREATE INDEX IF NOT EXISTS idx_high_scores_top ON high_scores(score DESC, id ASC);
	`
	_, err := s.db.Exec(schema)
	return err
}

// Close closes the database connection.
func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// Record appends a run with the current time.
func (s *Store) Record(initials string, score int) error {
	_, err := s.db.Exec(
		"INSERT INTO high_scores (initials, score, played_at) VALUES (?, ?, ?)",
		initials, score, s.now().UTC(),
	)
	if err != nil {
		return persistErr("record", err)
	}
	return nil
}

// QueryTop returns the best limit entries. Equal scores keep insertion order.
func (s *Store) QueryTop(limit int) ([]Entry, error) {
	if limit <= 0 {
		limit = DefaultLimit
	}

	rows, err := s.db.Query(
		`SELECT id, initials, score, played_at
		 FROM high_scores
		 ORDER BY score DESC, id ASC
		 LIMIT ?`,
		limit,
	)
	if err != nil {
		return nil, persistErr("query top", err)
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		var e Entry
		var playedAt any
		if err := rows.Scan(&e.ID, &e.Initials, &e.Score, &playedAt); err != nil {
			return nil, persistErr("scan row", err)
		}
		e.PlayedAt = parseTime(playedAt)
		entries = append(entries, e)
	}

	if err := rows.Err(); err != nil {
		return nil, persistErr("iterate rows", err)
	}

	return entries, nil
}

// HighScore returns the best score, or 0 for an empty ledger.
func (s *Store) HighScore() (int, error) {
	var score sql.NullInt64
	if err := s.db.QueryRow("SELECT MAX(score) FROM high_scores").Scan(&score); err != nil {
		return 0, persistErr("query high score", err)
	}
	if !score.Valid {
		return 0, nil
	}
	return int(score.Int64), nil
}

// Stats aggregates the whole ledger.
func (s *Store) Stats() (*Stats, error) {
	stats := &Stats{}

	err := s.db.QueryRow(
		`SELECT COUNT(*), COALESCE(MAX(score), 0), COALESCE(AVG(score), 0)
		 FROM high_scores`,
	).Scan(&stats.Games, &stats.HighScore, &stats.AvgScore)
	if err != nil {
		return nil, persistErr("query stats", err)
	}

	var lastPlayed any
	err = s.db.QueryRow(
		`SELECT played_at FROM high_scores ORDER BY id DESC LIMIT 1`,
	).Scan(&lastPlayed)
	if err != nil && !errors.Is(err, sql.ErrNoRows) {
		return nil, persistErr("query last played", err)
	}
	if err == nil {
		stats.LastPlayed = parseTime(lastPlayed)
	}

	return stats, nil
}

// Clear deletes every entry.
func (s *Store) Clear() error {
	if _, err := s.db.Exec("DELETE FROM high_scores"); err != nil {
		return persistErr("clear", err)
	}
	return nil
}

var timeLayouts = []string{
	"2006-01-02 15:04:05.999999999-07:00",
	time.RFC3339Nano,
	"2006-01-02 15:04:05",
}

// parseTime handles both driver-decoded times and stored strings.
func parseTime(v any) time.Time {
	switch t := v.(type) {
	case time.Time:
		return t
	case string:
		for _, layout := range timeLayouts {
			if parsed, err := time.Parse(layout, t); err == nil {
				return parsed
			}
		}
	}
	return time.Time{}
}

var _ Ledger = (*Store)(nil)
