// Package metrics keeps in-memory request counters and a bounded audit
// history for the generation engine. Nothing here is persisted.
package metrics

import (
	"sync"
	"time"

	"github.com/google/uuid"
)

// DefaultHistoryCapacity bounds the audit trail.
const DefaultHistoryCapacity = 100

// Record is one audited request outcome.
type Record struct {
	ID        string
	Timestamp time.Time

	// Request summary.
	Provider   string
	Voice      string
	TextLength int

	// Outcome. Cost and DurationSeconds are zero on failure.
	Success         bool
	Cost            float64
	DurationSeconds int
	Error           string
}

// History is a bounded FIFO audit trail: when full, the oldest record is
// evicted regardless of how often it has been read. Safe for concurrent use.
type History struct {
	mu       sync.Mutex
	capacity int
	records  []Record
}

// NewHistory creates a history holding at most capacity records.
// A non-positive capacity falls back to DefaultHistoryCapacity.
func NewHistory(capacity int) *History {
	if capacity <= 0 {
		capacity = DefaultHistoryCapacity
	}
	return &History{capacity: capacity}
}

// Append adds a record, assigning it an ID and timestamp if absent, and
// evicts the oldest record when the trail is full.
func (h *History) Append(r Record) Record {
	if r.ID == "" {
		r.ID = uuid.NewString()
	}
	if r.Timestamp.IsZero() {
		r.Timestamp = time.Now()
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	if len(h.records) >= h.capacity {
		h.records = h.records[1:]
	}
	h.records = append(h.records, r)
	return r
}

// Records returns a copy of the trail, oldest first.
func (h *History) Records() []Record {
	h.mu.Lock()
	defer h.mu.Unlock()

	out := make([]Record, len(h.records))
	copy(out, h.records)
	return out
}

// Len returns the number of records currently held.
func (h *History) Len() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.records)
}
