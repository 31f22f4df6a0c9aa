package history

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	_ "modernc.org/sqlite"
)

// Store remembers submitted search terms. It never stores results.
type Store struct {
	readDB  *sql.DB
	writeDB *sql.DB
}

func Open(dbPath string) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0o755); err != nil {
		return nil, fmt.Errorf("creating history dir: %w", err)
	}

	writeDB, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("opening write db: %w", err)
	}
	writeDB.SetMaxOpenConns(1)

	readDB, err := sql.Open("sqlite", dbPath+"?mode=ro")
	if err != nil {
		writeDB.Close()
		return nil, fmt.Errorf("opening read db: %w", err)
	}

	s := &Store{readDB: readDB, writeDB: writeDB}
	if err := s.init(); err != nil {
		s.Close()
		return nil, err
	}
	return s, nil
}

func (s *Store) init() error {
	_, err := s.writeDB.Exec(`
		CREATE TABLE IF NOT EXISTS searches (
			term      TEXT PRIMARY KEY,
			count     INTEGER NOT NULL DEFAULT 1,
			last_used DATETIME NOT NULL
		);
		CREATE INDEX IF NOT EXISTS idx_searches_last_used ON searches(last_used DESC);
	`)
	if err != nil {
		return fmt.Errorf("initializing schema: %w", err)
	}
	return nil
}

func (s *Store) Close() error {
	var errs []error
	if s.readDB != nil {
		errs = append(errs, s.readDB.Close())
	}
	if s.writeDB != nil {
		errs = append(errs, s.writeDB.Close())
	}
	for _, e := range errs {
		if e != nil {
			return e
		}
	}
	return nil
}

// Record bumps term's count and last-used time. Blank terms are ignored.
func (s *Store) Record(term string) error {
	return s.recordAt(term, time.Now())
}

func (s *Store) recordAt(term string, at time.Time) error {
	term = strings.TrimSpace(term)
	if term == "" {
		return nil
	}
	_, err := s.writeDB.Exec(`
		INSERT INTO searches (term, count, last_used) VALUES (?, 1, ?)
		ON CONFLICT(term) DO UPDATE SET
			count = count + 1,
			last_used = excluded.last_used
	`, term, at.UTC())
	if err != nil {
		return fmt.Errorf("recording %q: %w", term, err)
	}
	return nil
}

// Recent returns up to limit terms, most recently used first.
func (s *Store) Recent(limit int) ([]Entry, error) {
	if limit <= 0 {
		limit = 10
	}
	rows, err := s.readDB.Query(`
		SELECT term, count, last_used FROM searches
		ORDER BY last_used DESC, term ASC
		LIMIT ?
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("querying history: %w", err)
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		var e Entry
		if err := rows.Scan(&e.Term, &e.Count, &e.LastUsed); err != nil {
			return nil, fmt.Errorf("scanning history: %w", err)
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

// Prune deletes terms not used within olderThan.
func (s *Store) Prune(olderThan time.Duration) (int64, error) {
	cutoff := time.Now().Add(-olderThan).UTC()
	res, err := s.writeDB.Exec(`DELETE FROM searches WHERE last_used < ?`, cutoff)
	if err != nil {
		return 0, fmt.Errorf("pruning history: %w", err)
	}
	return res.RowsAffected()
}

// Stats returns the number of remembered terms and the size of the db file.
func (s *Store) Stats(dbPath string) (int, int64, error) {
	var count int
	if err := s.readDB.QueryRow(`SELECT COUNT(*) FROM searches`).Scan(&count); err != nil {
		return 0, 0, fmt.Errorf("counting history: %w", err)
	}
	fi, err := os.Stat(dbPath)
	if err != nil {
		return count, 0, fmt.Errorf("stat %s: %w", dbPath, err)
	}
	return count, fi.Size(), nil
}
