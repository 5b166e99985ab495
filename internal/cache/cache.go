// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package cache persists fetched results in a local SQLite database keyed
// by request fingerprint, with time-based expiry. It sits in front of the
// provider router so repeated invocations of the same logical request
// within the TTL window never touch the network.
package cache

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "github.com/mattn/go-sqlite3"
)

const dbFile = "cache.db"

// DefaultTTL is how long an entry stays fresh unless configured otherwise.
const DefaultTTL = 15 * time.Minute

// timeNow is swapped out in tests that exercise expiry.
var timeNow = time.Now

// Store is the fingerprint-keyed result cache. The cache directory is an
// explicit constructor argument; nothing here reads global state, so
// tests run against isolated instances.
type Store struct {
	db  *sql.DB
	ttl time.Duration
}

// Open creates or opens the cache database under dir. A non-positive ttl
// selects DefaultTTL.
func Open(dir string, ttl time.Duration) (*Store, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("creating cache directory: %w", err)
	}
	if ttl <= 0 {
		ttl = DefaultTTL
	}

	db, err := sql.Open("sqlite3", filepath.Join(dir, dbFile)+"?_journal_mode=WAL")
	if err != nil {
		return nil, fmt.Errorf("opening cache database: %w", err)
	}

	s := &Store{db: db, ttl: ttl}
	if err := s.createSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating cache schema: %w", err)
	}
	return s, nil
}

// Path returns the cache database location under dir without opening it.
func Path(dir string) string {
	return filepath.Join(dir, dbFile)
}

// Close releases the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) createSchema() error {
	_, err := s.db.Exec(`CREATE TABLE IF NOT EXISTS entries (
		fingerprint TEXT PRIMARY KEY,
		payload     BLOB NOT NULL,
		stored_at   TEXT NOT NULL
	)`)
	if err != nil {
		return fmt.Errorf("executing schema statement: %w", err)
	}
	return nil
}

// Get loads the entry for fingerprint into v. It reports false when no
// entry exists, the entry's age exceeds the TTL, or the stored payload
// cannot be decoded: a corrupt cache degrades to a cold one, never an
// error. Expired entries are left in place; only Clear removes rows.
func (s *Store) Get(fingerprint string, v any) (bool, error) {
	var payload []byte
	var storedAt string
	err := s.db.QueryRow(
		`SELECT payload, stored_at FROM entries WHERE fingerprint = ?`, fingerprint,
	).Scan(&payload, &storedAt)
	if err == sql.ErrNoRows {
		return false, nil
	}
	if err != nil {
		// Unreadable cache behaves as a miss.
		return false, nil
	}

	stored, err := time.Parse(time.RFC3339Nano, storedAt)
	if err != nil || timeNow().Sub(stored) > s.ttl {
		return false, nil
	}

	if err := json.Unmarshal(payload, v); err != nil {
		return false, nil
	}
	return true, nil
}

// Put stores v under fingerprint, unconditionally overwriting any
// previous entry. Concurrent writers race benignly: last writer wins.
func (s *Store) Put(fingerprint string, v any) error {
	payload, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("encoding cache entry: %w", err)
	}

	_, err = s.db.Exec(
		`INSERT INTO entries (fingerprint, payload, stored_at) VALUES (?, ?, ?)
		 ON CONFLICT(fingerprint) DO UPDATE SET
			payload=excluded.payload, stored_at=excluded.stored_at`,
		fingerprint, payload, timeNow().UTC().Format(time.RFC3339Nano),
	)
	if err != nil {
		return fmt.Errorf("writing cache entry: %w", err)
	}
	return nil
}

// Clear removes entries. An empty scope removes everything; otherwise
// only entries whose fingerprint starts with scope (an operation kind,
// e.g. "search") are removed. Returns the number of rows deleted.
func (s *Store) Clear(scope string) (int64, error) {
	var res sql.Result
	var err error
	if scope == "" {
		res, err = s.db.Exec(`DELETE FROM entries`)
	} else {
		res, err = s.db.Exec(`DELETE FROM entries WHERE fingerprint LIKE ?`, scope+":%")
	}
	if err != nil {
		return 0, fmt.Errorf("clearing cache: %w", err)
	}
	n, _ := res.RowsAffected()
	return n, nil
}
