/*
Package analytics records answered searches in the background.

A Tracker queues search records and writes them to a Sink in batches from a
single goroutine, so answering a query never waits on the database. Records
that arrive while the queue is full are dropped.
*/
package analytics

import (
	"errors"
	"log"
	"sync"
	"time"

	"github.com/alywork/lawdesk/internal/storage"
)

const (
	// queueSize is the buffer size for the record queue.
	// If full, records are dropped (non-blocking).
	queueSize = 1000

	// batchFlushSize is the number of records that triggers an immediate flush.
	batchFlushSize = 10

	// flushInterval is how often pending records are written.
	flushInterval = 50 * time.Millisecond
)

// ErrQueueFull is returned by RecordSearch when a record is dropped.
var ErrQueueFull = errors.New("analytics queue full")

// ErrStopped is returned by RecordSearch after Stop.
var ErrStopped = errors.New("analytics tracker stopped")

// Sink persists search records.
type Sink interface {
	RecordSearch(rec storage.SearchRecord) error
}

// Tracker records searches in the background with non-blocking writes.
type Tracker struct {
	sink     Sink
	queue    chan storage.SearchRecord
	stopChan chan struct{}
	stopOnce sync.Once
	wg       sync.WaitGroup

	mu      sync.RWMutex
	stopped bool
	written int
}

// NewTracker starts a tracker writing to sink.
func NewTracker(sink Sink) *Tracker {
	t := &Tracker{
		sink:     sink,
		queue:    make(chan storage.SearchRecord, queueSize),
		stopChan: make(chan struct{}),
	}

	t.wg.Add(1)
	go t.process()

	return t
}

// RecordSearch queues rec for writing. It never blocks.
func (t *Tracker) RecordSearch(rec storage.SearchRecord) error {
	t.mu.RLock()
	defer t.mu.RUnlock()

	if t.stopped {
		return ErrStopped
	}

	select {
	case t.queue <- rec:
		return nil
	default:
		return ErrQueueFull
	}
}

// Stop flushes the queued records and waits for the writer to exit.
// It is safe to call more than once.
func (t *Tracker) Stop() {
	t.stopOnce.Do(func() {
		t.mu.Lock()
		t.stopped = true
		t.mu.Unlock()

		close(t.stopChan)
		t.wg.Wait()
	})
}

// writtenCount returns the number of records the sink accepted.
func (t *Tracker) writtenCount() int {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.written
}

// process runs in the background, batching and flushing records.
func (t *Tracker) process() {
	defer t.wg.Done()

	ticker := time.NewTicker(flushInterval)
	defer ticker.Stop()

	batch := make([]storage.SearchRecord, 0, batchFlushSize)

	for {
		select {
		case rec := <-t.queue:
			batch = append(batch, rec)
			if len(batch) >= batchFlushSize {
				t.flush(batch)
				batch = batch[:0]
			}

		case <-ticker.C:
			if len(batch) > 0 {
				t.flush(batch)
				batch = batch[:0]
			}

		case <-t.stopChan:
			// Drain whatever is left, then exit.
			for {
				select {
				case rec := <-t.queue:
					batch = append(batch, rec)
				default:
					t.flush(batch)
					return
				}
			}
		}
	}
}

// flush writes a batch to the sink.
func (t *Tracker) flush(batch []storage.SearchRecord) {
	written := 0
	for _, rec := range batch {
		if err := t.sink.RecordSearch(rec); err != nil {
			log.Printf("Warning: failed to record search: %v", err)
			continue
		}
		written++
	}

	t.mu.Lock()
	t.written += written
	t.mu.Unlock()
}
