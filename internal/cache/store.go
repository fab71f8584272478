package cache

import (
	"sync"
	"time"

	"github.com/google/uuid"
)

// Metadata describes how a cached artifact was produced.
type Metadata struct {
	Model    string  `json:"model,omitempty"`
	Provider string  `json:"provider,omitempty"`
	Cost     float64 `json:"cost"`
	Quality  string  `json:"quality,omitempty"`
}

// Entry is a single cached artifact together with its bookkeeping.
// AccessCount starts at 1 on insert and increments on every hit, so the
// number of billable calls the entry has saved is AccessCount-1.
type Entry[T any] struct {
	ID          string    `json:"id"`
	Key         string    `json:"key"`
	Payload     T         `json:"payload"`
	Metadata    Metadata  `json:"metadata"`
	CreatedAt   time.Time `json:"created_at"`
	ExpiresAt   time.Time `json:"expires_at"`
	LastAccess  time.Time `json:"last_access"`
	AccessCount int64     `json:"access_count"`
}

// Expired reports whether the entry is past its TTL at the given instant.
func (e *Entry[T]) Expired(now time.Time) bool {
	return now.After(e.ExpiresAt)
}

// Stats holds counters for one store instance.
type Stats struct {
	Entries int   // live entries
	Hits    int64 // lookups that returned a live entry
	Misses  int64 // lookups that found nothing
	Expired int64 // entries lazily evicted on lookup
}

// Store is a content-addressed cache with TTL expiry. At most one live
// entry exists per key; an expired entry is evicted lazily on the next
// lookup, never swept in the background. Safe for concurrent use.
type Store[T any] struct {
	mu      sync.Mutex
	ttl     time.Duration
	entries map[string]*Entry[T]
	onEvict func(Entry[T])
	persist Persistence[T]

	hits    int64
	misses  int64
	expired int64
}

// NewStore creates a store whose entries expire ttl after insertion.
func NewStore[T any](ttl time.Duration) *Store[T] {
	return &Store[T]{
		ttl:     ttl,
		entries: make(map[string]*Entry[T]),
	}
}

// SetEvictionHook registers a callback invoked whenever an entry leaves the
// store (expiry, explicit delete, or clear). The audio cache uses this to
// release the blob the entry owns.
func (s *Store[T]) SetEvictionHook(fn func(Entry[T])) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.onEvict = fn
}

// SetPersistence attaches a snapshot backend and restores any previous
// snapshot. Without one the store is memory-only and empties on restart.
func (s *Store[T]) SetPersistence(p Persistence[T]) error {
	entries, err := p.Load()
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.persist = p
	now := time.Now()
	for key, entry := range entries {
		if entry.Expired(now) {
			continue
		}
		e := entry
		s.entries[key] = &e
	}
	return nil
}

// Get returns the live entry for key, or nil and false on a miss. A hit
// bumps the access counter. An expired entry is deleted as a side effect
// and reported as a miss.
func (s *Store[T]) Get(key string) (*Entry[T], bool) {
	s.mu.Lock()

	entry, ok := s.entries[key]
	if !ok {
		s.misses++
		s.mu.Unlock()
		return nil, false
	}

	if entry.Expired(time.Now()) {
		delete(s.entries, key)
		s.expired++
		s.misses++
		evicted := *entry
		hook := s.onEvict
		s.mu.Unlock()
		if hook != nil {
			hook(evicted)
		}
		return nil, false
	}

	entry.AccessCount++
	entry.LastAccess = time.Now()
	s.hits++

	copied := *entry
	s.mu.Unlock()
	return &copied, true
}

// Put inserts or overwrites the entry for key and returns a copy of it.
func (s *Store[T]) Put(key string, payload T, meta Metadata) *Entry[T] {
	now := time.Now()
	entry := &Entry[T]{
		ID:          uuid.NewString(),
		Key:         key,
		Payload:     payload,
		Metadata:    meta,
		CreatedAt:   now,
		ExpiresAt:   now.Add(s.ttl),
		LastAccess:  now,
		AccessCount: 1,
	}

	s.mu.Lock()
	s.entries[key] = entry
	s.mu.Unlock()

	copied := *entry
	return &copied
}

// Delete removes the entry for key, invoking the eviction hook if set.
func (s *Store[T]) Delete(key string) {
	s.mu.Lock()
	entry, ok := s.entries[key]
	if ok {
		delete(s.entries, key)
	}
	hook := s.onEvict
	s.mu.Unlock()

	if ok && hook != nil {
		hook(*entry)
	}
}

// Clear removes every entry, invoking the eviction hook for each.
func (s *Store[T]) Clear() {
	s.mu.Lock()
	evicted := make([]Entry[T], 0, len(s.entries))
	for _, entry := range s.entries {
		evicted = append(evicted, *entry)
	}
	s.entries = make(map[string]*Entry[T])
	hook := s.onEvict
	s.mu.Unlock()

	if hook != nil {
		for _, entry := range evicted {
			hook(entry)
		}
	}
}

// Entries returns a copy of every held entry, in no particular order.
func (s *Store[T]) Entries() []Entry[T] {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]Entry[T], 0, len(s.entries))
	for _, entry := range s.entries {
		out = append(out, *entry)
	}
	return out
}

// Len returns the number of entries currently held, expired or not.
func (s *Store[T]) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.entries)
}

// Hits returns the number of billable calls the store has saved so far,
// summed as accessCount-1 over all live entries.
func (s *Store[T]) Hits() int64 {
	s.mu.Lock()
	defer s.mu.Unlock()

	var hits int64
	for _, entry := range s.entries {
		hits += entry.AccessCount - 1
	}
	return hits
}

// Stats returns a snapshot of the store's counters.
func (s *Store[T]) Stats() Stats {
	s.mu.Lock()
	defer s.mu.Unlock()
	return Stats{
		Entries: len(s.entries),
		Hits:    s.hits,
		Misses:  s.misses,
		Expired: s.expired,
	}
}

// Flush writes the current entries to the persistence backend, if any.
func (s *Store[T]) Flush() error {
	s.mu.Lock()
	if s.persist == nil {
		s.mu.Unlock()
		return nil
	}
	snapshot := make(map[string]Entry[T], len(s.entries))
	for key, entry := range s.entries {
		snapshot[key] = *entry
	}
	p := s.persist
	s.mu.Unlock()

	return p.Save(snapshot)
}
