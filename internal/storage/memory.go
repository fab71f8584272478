package storage

import (
	"context"
	"fmt"
	"strings"
	"sync"
)

// MemoryStore is an in-process BlobStore used in tests and local runs
// where no object storage is configured.
type MemoryStore struct {
	mu      sync.Mutex
	objects map[string][]byte

	// Test controls.
	failPut    error
	failDelete error

	putCalls    int
	deleteCalls int
}

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{objects: make(map[string][]byte)}
}

// Put stores the object and returns a memory:// URL for it.
func (s *MemoryStore) Put(_ context.Context, key string, data []byte, _ string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.putCalls++
	if s.failPut != nil {
		return "", s.failPut
	}

	copied := make([]byte, len(data))
	copy(copied, data)
	s.objects[key] = copied

	return "memory://" + key, nil
}

// Delete removes the object behind a memory:// URL.
func (s *MemoryStore) Delete(_ context.Context, url string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.deleteCalls++
	if s.failDelete != nil {
		return s.failDelete
	}

	key, ok := strings.CutPrefix(url, "memory://")
	if !ok {
		return fmt.Errorf("not a memory store url: %q", url)
	}
	delete(s.objects, key)
	return nil
}

// Get returns a stored object, for assertions in tests.
func (s *MemoryStore) Get(key string) ([]byte, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	data, ok := s.objects[key]
	return data, ok
}

// Len returns the number of stored objects.
func (s *MemoryStore) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.objects)
}

// SetFailure makes subsequent Put and Delete calls fail with err.
func (s *MemoryStore) SetFailure(err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.failPut = err
	s.failDelete = err
}

// ClearFailure resets the store to normal operation.
func (s *MemoryStore) ClearFailure() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.failPut = nil
	s.failDelete = nil
}

// PutCalls returns how many uploads were attempted.
func (s *MemoryStore) PutCalls() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.putCalls
}

// DeleteCalls returns how many deletes were attempted.
func (s *MemoryStore) DeleteCalls() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.deleteCalls
}
