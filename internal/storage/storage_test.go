package storage

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func newTestStorage(t *testing.T) *SQLiteStorage {
	t.Helper()

	storage := NewStorage(filepath.Join(t.TempDir(), "test.db"))
	if err := storage.Init(); err != nil {
		t.Fatalf("Init failed: %v", err)
	}
	t.Cleanup(func() { storage.Close() })
	return storage
}

// TestNewStorage verifies storage path resolution.
func TestNewStorage(t *testing.T) {
	storage := NewStorage("/tmp/custom/history.db")
	if storage.Path() != "/tmp/custom/history.db" {
		t.Errorf("expected custom path, got %q", storage.Path())
	}
	if !storage.Enabled() {
		t.Error("expected storage to be enabled")
	}

	def := NewStorage("")
	if def == nil {
		t.Fatal("NewStorage returned nil")
	}
	if def.Enabled() && filepath.Base(def.Path()) != "history.db" {
		t.Errorf("unexpected default path %q", def.Path())
	}
}

// TestInit verifies database initialization and schema creation.
func TestInit(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "nested", "test.db")

	storage := NewStorage(dbPath)
	if err := storage.Init(); err != nil {
		t.Fatalf("Init failed: %v", err)
	}
	defer storage.Close()

	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		t.Error("Database file not created")
	}

	version, err := storage.getCurrentMigrationVersion()
	if err != nil {
		t.Fatalf("failed to read migration version: %v", err)
	}
	if version != 2 {
		t.Errorf("expected migration version 2, got %d", version)
	}
}

// TestRecordSearch verifies recording and listing searches.
func TestRecordSearch(t *testing.T) {
	storage := newTestStorage(t)

	base := time.Now().Add(-time.Minute)
	for i, strategy := range []string{"substring", "similarity", "substring"} {
		rec := SearchRecord{
			SearchID:     fmt.Sprintf("search-%d", i),
			QueryHash:    HashQuery(fmt.Sprintf("query %d", i)),
			Strategy:     strategy,
			Section:      "إجازات",
			Timestamp:    base.Add(time.Duration(i) * time.Second),
			ResultsCount: i + 1,
		}
		if err := storage.RecordSearch(rec); err != nil {
			t.Fatalf("RecordSearch failed: %v", err)
		}
	}

	recent, err := storage.RecentSearches(2)
	if err != nil {
		t.Fatalf("RecentSearches failed: %v", err)
	}
	if len(recent) != 2 {
		t.Fatalf("expected 2 searches, got %d", len(recent))
	}
	if recent[0].SearchID != "search-2" || recent[1].SearchID != "search-1" {
		t.Errorf("expected newest first, got %s, %s", recent[0].SearchID, recent[1].SearchID)
	}
	if recent[0].Section != "إجازات" || recent[0].ResultsCount != 3 {
		t.Errorf("unexpected record: %+v", recent[0])
	}
}

// TestStrategyCounts verifies aggregation by strategy and time window.
func TestStrategyCounts(t *testing.T) {
	storage := newTestStorage(t)

	now := time.Now()
	records := []SearchRecord{
		{SearchID: "a", Strategy: "substring", Timestamp: now},
		{SearchID: "b", Strategy: "substring", Timestamp: now},
		{SearchID: "c", Strategy: "fuzzy", Timestamp: now},
		{SearchID: "d", Strategy: "no_result", Timestamp: now.Add(-48 * time.Hour)},
	}
	for _, rec := range records {
		rec.QueryHash = HashQuery(rec.SearchID)
		if err := storage.RecordSearch(rec); err != nil {
			t.Fatalf("RecordSearch failed: %v", err)
		}
	}

	counts, err := storage.StrategyCounts(now.Add(-time.Hour))
	if err != nil {
		t.Fatalf("StrategyCounts failed: %v", err)
	}

	if counts["substring"] != 2 || counts["fuzzy"] != 1 {
		t.Errorf("unexpected counts: %v", counts)
	}
	if _, ok := counts["no_result"]; ok {
		t.Errorf("old record should be outside the window: %v", counts)
	}
}

// TestCleanup verifies retention-based deletion.
func TestCleanup(t *testing.T) {
	storage := newTestStorage(t)

	now := time.Now()
	storage.RecordSearch(SearchRecord{SearchID: "old", QueryHash: "x", Strategy: "fuzzy", Timestamp: now.Add(-100 * 24 * time.Hour)})
	storage.RecordSearch(SearchRecord{SearchID: "new", QueryHash: "y", Strategy: "fuzzy", Timestamp: now})

	removed, err := storage.Cleanup(30 * 24 * time.Hour)
	if err != nil {
		t.Fatalf("Cleanup failed: %v", err)
	}
	if removed != 1 {
		t.Errorf("expected 1 record removed, got %d", removed)
	}

	recent, _ := storage.RecentSearches(10)
	if len(recent) != 1 || recent[0].SearchID != "new" {
		t.Errorf("expected only the new record, got %+v", recent)
	}

	// Nothing left to expire.
	removed, err = storage.Cleanup(30 * 24 * time.Hour)
	if err != nil || removed != 0 {
		t.Errorf("expected nothing removed on second cleanup, got %d, %v", removed, err)
	}
}

// TestHashQuery verifies query hashing consistency.
func TestHashQuery(t *testing.T) {
	query := "test query for hashing"

	hash1 := HashQuery(query)
	hash2 := HashQuery(query)

	if hash1 != hash2 {
		t.Error("HashQuery produced inconsistent results")
	}

	if len(hash1) != 64 { // SHA256 hex = 64 chars
		t.Errorf("Expected hash length 64, got %d", len(hash1))
	}

	if HashQuery("other") == hash1 {
		t.Error("different queries should hash differently")
	}
}

// TestGracefulDegradation verifies behavior when DB is unavailable.
func TestGracefulDegradation(t *testing.T) {
	blocker := filepath.Join(t.TempDir(), "blocker")
	if err := os.WriteFile(blocker, []byte("x"), 0644); err != nil {
		t.Fatalf("failed to create blocker: %v", err)
	}

	storage := NewStorage(filepath.Join(blocker, "test.db"))

	if err := storage.Init(); err == nil {
		t.Error("expected Init to fail under a regular file")
	}
	if storage.Enabled() {
		t.Error("storage should be disabled after failed Init")
	}

	// Operations should not panic
	if err := storage.RecordSearch(SearchRecord{SearchID: "x", Strategy: "fuzzy", Timestamp: time.Now()}); err != nil {
		t.Errorf("RecordSearch should return nil on disabled storage, got: %v", err)
	}

	counts, err := storage.StrategyCounts(time.Now())
	if err != nil || len(counts) != 0 {
		t.Errorf("expected empty counts on disabled storage, got %v, %v", counts, err)
	}

	recent, err := storage.RecentSearches(5)
	if err != nil || len(recent) != 0 {
		t.Errorf("expected empty history on disabled storage, got %v, %v", recent, err)
	}

	if removed, err := storage.Cleanup(time.Hour); err != nil || removed != 0 {
		t.Errorf("Cleanup should be a no-op on disabled storage, got: %d, %v", removed, err)
	}
	if err := storage.Close(); err != nil {
		t.Errorf("Close should return nil on disabled storage, got: %v", err)
	}
}

// TestInitReleasesHandleOnFailure verifies a database that opens but cannot
// be migrated is closed before storage is disabled.
func TestInitReleasesHandleOnFailure(t *testing.T) {
	path := filepath.Join(t.TempDir(), "garbage.db")
	junk := []byte(strings.Repeat("this is not a sqlite database file ", 200))
	if err := os.WriteFile(path, junk, 0644); err != nil {
		t.Fatalf("failed to write garbage file: %v", err)
	}

	storage := NewStorage(path)
	if err := storage.Init(); err == nil {
		t.Fatal("expected Init to fail on a non-database file")
	}

	if storage.Enabled() {
		t.Error("storage should be disabled after failed Init")
	}
	if storage.db != nil {
		t.Error("database handle should be released after failed Init")
	}
	if err := storage.Close(); err != nil {
		t.Errorf("Close after failed Init should be a no-op, got: %v", err)
	}
}
