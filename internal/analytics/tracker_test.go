package analytics

import (
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/alywork/lawdesk/internal/storage"
)

// mockSink is an in-memory Sink for testing.
type mockSink struct {
	mu      sync.Mutex
	records []storage.SearchRecord
	fail    bool
	block   chan struct{}
}

func (m *mockSink) RecordSearch(rec storage.SearchRecord) error {
	if m.block != nil {
		<-m.block
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if m.fail {
		return errors.New("disk full")
	}
	m.records = append(m.records, rec)
	return nil
}

func (m *mockSink) count() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.records)
}

func record(i int) storage.SearchRecord {
	return storage.SearchRecord{
		SearchID:  fmt.Sprintf("search-%d", i),
		Strategy:  "substring",
		Timestamp: time.Now(),
	}
}

func TestTrackerRecordsInBackground(t *testing.T) {
	sink := &mockSink{}
	tracker := NewTracker(sink)
	defer tracker.Stop()

	if err := tracker.RecordSearch(record(1)); err != nil {
		t.Fatalf("RecordSearch failed: %v", err)
	}

	deadline := time.Now().Add(2 * time.Second)
	for sink.count() == 0 && time.Now().Before(deadline) {
		time.Sleep(10 * time.Millisecond)
	}
	if sink.count() != 1 {
		t.Errorf("expected record to be flushed, got %d", sink.count())
	}
}

func TestTrackerStopFlushes(t *testing.T) {
	sink := &mockSink{}
	tracker := NewTracker(sink)

	for i := 0; i < 25; i++ {
		if err := tracker.RecordSearch(record(i)); err != nil {
			t.Fatalf("RecordSearch %d failed: %v", i, err)
		}
	}
	tracker.Stop()

	if sink.count() != 25 {
		t.Errorf("expected 25 records after Stop, got %d", sink.count())
	}
	if tracker.writtenCount() != 25 {
		t.Errorf("writtenCount() = %d, want 25", tracker.writtenCount())
	}

	// Order is preserved.
	for i, rec := range sink.records {
		if rec.SearchID != fmt.Sprintf("search-%d", i) {
			t.Errorf("record %d out of order: %s", i, rec.SearchID)
			break
		}
	}
}

func TestTrackerAfterStop(t *testing.T) {
	tracker := NewTracker(&mockSink{})
	tracker.Stop()
	tracker.Stop()

	if err := tracker.RecordSearch(record(1)); !errors.Is(err, ErrStopped) {
		t.Errorf("expected ErrStopped, got %v", err)
	}
}

func TestTrackerQueueFull(t *testing.T) {
	sink := &mockSink{block: make(chan struct{})}
	tracker := NewTracker(sink)

	var dropped error
	for i := 0; i < queueSize+batchFlushSize+2; i++ {
		if err := tracker.RecordSearch(record(i)); err != nil {
			dropped = err
			break
		}
	}

	close(sink.block)
	tracker.Stop()

	if !errors.Is(dropped, ErrQueueFull) {
		t.Errorf("expected ErrQueueFull once the queue filled, got %v", dropped)
	}
}

func TestTrackerSinkErrors(t *testing.T) {
	sink := &mockSink{fail: true}
	tracker := NewTracker(sink)

	tracker.RecordSearch(record(1))
	tracker.RecordSearch(record(2))
	tracker.Stop()

	if tracker.writtenCount() != 0 {
		t.Errorf("expected no records written, got %d", tracker.writtenCount())
	}
	if len(tracker.queue) != 0 {
		t.Errorf("expected empty queue, got %d", len(tracker.queue))
	}
}
