/*
Package storage implements the search analytics store.

Every answered query is recorded as one row in a SQLite database: a hash of
the query text, the strategy that produced the answer, the section filter and
the number of hits. The raw query is never stored.

The database lives at ~/.lawdesk/history.db unless configured otherwise and
uses modernc.org/sqlite (a pure Go, CGo-free implementation). If the database
cannot be opened, the store is disabled and every operation is a no-op.
*/
package storage

import (
	"crypto/sha256"
	"database/sql"
	"encoding/hex"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"sync"
	"time"

	_ "modernc.org/sqlite"
)

// Storage defines the interface for analytics storage operations.
type Storage interface {
	// Init initializes the database and runs migrations.
	Init() error

	// RecordSearch records an answered query.
	RecordSearch(search SearchRecord) error

	// StrategyCounts returns the number of searches per strategy since a given time.
	StrategyCounts(since time.Time) (map[string]int, error)

	// RecentSearches returns the newest searches, newest first.
	RecentSearches(limit int) ([]SearchRecord, error)

	// Cleanup removes records older than the retention period and
	// returns how many were removed.
	Cleanup(retention time.Duration) (int64, error)

	// Close closes the database connection.
	Close() error
}

// SQLiteStorage implements the Storage interface using SQLite.
type SQLiteStorage struct {
	db       *sql.DB
	dbPath   string
	enabled  bool
	mu       sync.Mutex
	initOnce sync.Once
}

// DefaultDBPath returns ~/.lawdesk/history.db, or "" if the home directory
// cannot be determined.
func DefaultDBPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		log.Printf("Warning: failed to get home directory: %v", err)
		return ""
	}
	return filepath.Join(home, ".lawdesk", "history.db")
}

// NewStorage creates a new SQLite storage instance at dbPath.
//
// An empty dbPath uses DefaultDBPath. If no path can be resolved the storage
// is disabled but operations will not fail.
func NewStorage(dbPath string) *SQLiteStorage {
	if dbPath == "" {
		dbPath = DefaultDBPath()
	}
	if dbPath == "" {
		return &SQLiteStorage{enabled: false}
	}

	return &SQLiteStorage{
		dbPath:  dbPath,
		enabled: true,
	}
}

// Enabled reports whether the store is backed by an open database.
func (s *SQLiteStorage) Enabled() bool {
	return s.enabled
}

// Path returns the database file path.
func (s *SQLiteStorage) Path() string {
	return s.dbPath
}

// Init initializes the database and runs migrations.
//
// If initialization fails, storage is disabled and subsequent operations
// become no-ops (graceful degradation).
func (s *SQLiteStorage) Init() error {
	if !s.enabled {
		return nil
	}

	var initErr error
	s.initOnce.Do(func() {
		dbDir := filepath.Dir(s.dbPath)
		if err := os.MkdirAll(dbDir, 0755); err != nil {
			initErr = fmt.Errorf("failed to create db directory: %w", err)
			s.enabled = false
			return
		}

		db, err := sql.Open("sqlite", s.dbPath)
		if err != nil {
			initErr = fmt.Errorf("failed to open database: %w", err)
			s.enabled = false
			log.Printf("Warning: %v", initErr)
			return
		}
		s.db = db

		if err := db.Ping(); err != nil {
			initErr = fmt.Errorf("failed to ping database: %w", err)
			s.disable(initErr)
			return
		}

		if err := s.runMigrations(); err != nil {
			initErr = fmt.Errorf("failed to run migrations: %w", err)
			s.disable(initErr)
			return
		}
	})

	return initErr
}

// disable releases an opened handle after a failed Init.
func (s *SQLiteStorage) disable(cause error) {
	log.Printf("Warning: %v", cause)
	if s.db != nil {
		s.db.Close()
		s.db = nil
	}
	s.enabled = false
}

// Close closes the database connection.
func (s *SQLiteStorage) Close() error {
	if !s.enabled || s.db == nil {
		return nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.db.Close(); err != nil {
		return fmt.Errorf("failed to close database: %w", err)
	}

	s.db = nil
	return nil
}

// HashQuery creates a SHA256 hash of a query string for privacy.
func HashQuery(query string) string {
	hash := sha256.Sum256([]byte(query))
	return hex.EncodeToString(hash[:])
}

// formatTime renders timestamps in UTC so stored values sort lexically.
func formatTime(t time.Time) string {
	return t.UTC().Format(time.RFC3339)
}
