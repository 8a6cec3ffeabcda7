package memory

import (
	"encoding/json"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
)

// Store defines the operations on an interaction log.
type Store interface {
	// Append stamps and appends a record, evicting the oldest entries
	// beyond the cap, and persists the log.
	Append(rec Record) (Record, error)

	// Search returns records whose query or response contains keyword
	// (case-insensitive). A non-empty role must also match.
	Search(keyword, role string) []Record

	// SearchIndexed is Search with each record's position in the log, the
	// index that Update accepts.
	SearchIndexed(keyword, role string) []Match

	// Update changes the record at index and persists the log.
	Update(index int, u Update) (Record, error)

	// Clear removes every record and persists the empty log.
	Clear() error

	// Entries returns a copy of the log, oldest first.
	Entries() []Record

	// Len returns the number of records in the log.
	Len() int
}

// history is the bounded log shared by the store implementations.
type history struct {
	mu         sync.Mutex
	entries    []Record
	maxEntries int
	now        func() time.Time
	persist    func([]Record) error
}

func (h *history) init(maxEntries int) {
	if maxEntries <= 0 {
		maxEntries = DefaultMaxEntries
	}
	h.entries = []Record{}
	h.maxEntries = maxEntries
	h.now = time.Now
}

func (h *history) Append(rec Record) (Record, error) {
	h.mu.Lock()
	defer h.mu.Unlock()

	rec = rec.clone()
	rec.Timestamp = h.now().Format(time.RFC3339)
	if rec.ID == "" {
		rec.ID = uuid.NewString()
	}

	h.entries = append(h.entries, rec)
	h.entries = trim(h.entries, h.maxEntries)

	return rec.clone(), h.save()
}

func (h *history) Search(keyword, role string) []Record {
	matches := h.SearchIndexed(keyword, role)
	results := make([]Record, len(matches))
	for i, m := range matches {
		results[i] = m.Record
	}
	return results
}

func (h *history) SearchIndexed(keyword, role string) []Match {
	h.mu.Lock()
	defer h.mu.Unlock()

	needle := strings.ToLower(keyword)
	matches := []Match{}
	for i, rec := range h.entries {
		if !strings.Contains(strings.ToLower(rec.Query), needle) &&
			!strings.Contains(strings.ToLower(rec.Response), needle) {
			continue
		}
		if role != "" && rec.Role != role {
			continue
		}
		matches = append(matches, Match{Index: i, Record: rec.clone()})
	}
	return matches
}

func (h *history) Update(index int, u Update) (Record, error) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if index < 0 || index >= len(h.entries) {
		return Record{}, &InvalidIndexError{Index: index, Len: len(h.entries)}
	}

	u.apply(&h.entries[index])
	return h.entries[index].clone(), h.save()
}

func (h *history) Clear() error {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.entries = []Record{}
	return h.save()
}

func (h *history) Entries() []Record {
	h.mu.Lock()
	defer h.mu.Unlock()

	out := make([]Record, len(h.entries))
	for i, rec := range h.entries {
		out[i] = rec.clone()
	}
	return out
}

func (h *history) Len() int {
	h.mu.Lock()
	defer h.mu.Unlock()

	return len(h.entries)
}

// save persists the log; callers hold mu.
func (h *history) save() error {
	if h.persist == nil {
		return nil
	}
	return h.persist(h.entries)
}

// trim keeps the newest limit entries.
func trim(entries []Record, limit int) []Record {
	if over := len(entries) - limit; over > 0 {
		return append([]Record{}, entries[over:]...)
	}
	return entries
}

// MemStore is an in-memory Store with no persistence.
type MemStore struct {
	history
}

// NewMemStore creates an empty in-memory store. maxEntries <= 0 uses
// DefaultMaxEntries.
func NewMemStore(maxEntries int) *MemStore {
	s := &MemStore{}
	s.init(maxEntries)
	return s
}

// document is the on-disk shape of the log.
type document struct {
	Memory []Record `json:"memory"`
}

// FileStore is a Store persisted to a JSON file.
type FileStore struct {
	history
	path string
}

// NewFileStore opens the log at path, creating its directory on the first
// write. A missing or corrupt file yields an empty log.
func NewFileStore(path string, maxEntries int) *FileStore {
	fs := &FileStore{path: path}
	fs.init(maxEntries)
	fs.persist = fs.write
	fs.entries = trim(fs.load(), fs.maxEntries)
	return fs
}

// Path returns the backing file path.
func (fs *FileStore) Path() string {
	return fs.path
}

// load reads the log from disk, degrading to an empty log on any error.
func (fs *FileStore) load() []Record {
	data, err := os.ReadFile(fs.path)
	if err != nil {
		if !os.IsNotExist(err) {
			log.Printf("Warning: failed to read interaction log %s: %v", fs.path, err)
		}
		return []Record{}
	}

	var doc document
	if err := json.Unmarshal(data, &doc); err != nil {
		log.Printf("Warning: corrupt interaction log %s, starting empty: %v", fs.path, err)
		return []Record{}
	}

	entries := make([]Record, 0, len(doc.Memory))
	for _, rec := range doc.Memory {
		if rec.ContextTags == nil {
			rec.ContextTags = []string{}
		}
		entries = append(entries, rec)
	}
	return entries
}

// write replaces the file with the given entries.
func (fs *FileStore) write(entries []Record) error {
	data, err := json.MarshalIndent(document{Memory: entries}, "", "  ")
	if err != nil {
		return &PersistenceError{Path: fs.path, Err: fmt.Errorf("failed to marshal log: %w", err)}
	}

	if err := atomicWrite(fs.path, data); err != nil {
		return &PersistenceError{Path: fs.path, Err: err}
	}
	return nil
}

func atomicWrite(path string, data []byte) error {
	// Write to temp file in same directory
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}

	tmpPath := path + ".tmp"
	if err := os.WriteFile(tmpPath, data, 0644); err != nil {
		return err
	}

	// Atomic rename
	return os.Rename(tmpPath, path)
}
