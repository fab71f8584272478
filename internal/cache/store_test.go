package cache

import (
	"fmt"
	"sync"
	"testing"
	"time"
)

func TestStore_PutAndGet(t *testing.T) {
	store := NewStore[string](time.Hour)

	key := SummaryKey("some article text")
	put := store.Put(key, "a short summary", Metadata{Model: "gpt-4o-mini", Cost: 0.002})

	if put.AccessCount != 1 {
		t.Errorf("AccessCount after insert = %d, want 1", put.AccessCount)
	}
	if put.ID == "" {
		t.Error("entry ID is empty")
	}

	got, ok := store.Get(key)
	if !ok {
		t.Fatal("Get missed a freshly inserted entry")
	}
	if got.Payload != "a short summary" {
		t.Errorf("Payload = %q, want %q", got.Payload, "a short summary")
	}
	if got.AccessCount != 2 {
		t.Errorf("AccessCount after one hit = %d, want 2", got.AccessCount)
	}
	if got.Metadata.Model != "gpt-4o-mini" {
		t.Errorf("Metadata.Model = %q, want gpt-4o-mini", got.Metadata.Model)
	}
}

func TestStore_MissOnUnknownKey(t *testing.T) {
	store := NewStore[string](time.Hour)

	if _, ok := store.Get("no-such-key"); ok {
		t.Error("Get returned a hit for an unknown key")
	}

	stats := store.Stats()
	if stats.Misses != 1 {
		t.Errorf("Misses = %d, want 1", stats.Misses)
	}
}

func TestStore_OverwriteKeepsSingleEntry(t *testing.T) {
	store := NewStore[string](time.Hour)

	key := SummaryKey("same text")
	store.Put(key, "first", Metadata{})
	store.Put(key, "second", Metadata{})

	if store.Len() != 1 {
		t.Fatalf("Len = %d, want 1 (one live entry per hash)", store.Len())
	}

	got, ok := store.Get(key)
	if !ok {
		t.Fatal("Get missed after overwrite")
	}
	if got.Payload != "second" {
		t.Errorf("Payload = %q, want the overwritten value", got.Payload)
	}
	if got.AccessCount != 2 {
		t.Errorf("AccessCount = %d, want 2 (overwrite resets the counter)", got.AccessCount)
	}
}

func TestStore_LazyExpiry(t *testing.T) {
	store := NewStore[string](20 * time.Millisecond)

	evicted := 0
	store.SetEvictionHook(func(Entry[string]) { evicted++ })

	key := SummaryKey("ephemeral")
	store.Put(key, "soon gone", Metadata{})

	time.Sleep(40 * time.Millisecond)

	// Entry is still held until something looks it up.
	if store.Len() != 1 {
		t.Fatalf("Len before lookup = %d, want 1 (expiry is lazy)", store.Len())
	}

	if _, ok := store.Get(key); ok {
		t.Error("Get returned an expired entry")
	}
	if store.Len() != 0 {
		t.Errorf("Len after lookup = %d, want 0", store.Len())
	}
	if evicted != 1 {
		t.Errorf("eviction hook ran %d times, want 1", evicted)
	}

	stats := store.Stats()
	if stats.Expired != 1 {
		t.Errorf("Expired = %d, want 1", stats.Expired)
	}
}

func TestStore_DeleteInvokesHook(t *testing.T) {
	store := NewStore[int](time.Hour)

	var evictedKeys []string
	store.SetEvictionHook(func(e Entry[int]) {
		evictedKeys = append(evictedKeys, e.Key)
	})

	store.Put("a", 1, Metadata{})
	store.Put("b", 2, Metadata{})

	store.Delete("a")
	store.Delete("missing") // no-op, no hook

	if len(evictedKeys) != 1 || evictedKeys[0] != "a" {
		t.Errorf("evicted keys = %v, want [a]", evictedKeys)
	}

	store.Clear()
	if len(evictedKeys) != 2 {
		t.Errorf("hook ran %d times total, want 2", len(evictedKeys))
	}
	if store.Len() != 0 {
		t.Errorf("Len after Clear = %d, want 0", store.Len())
	}
}

func TestStore_HitsDerivedFromAccessCounts(t *testing.T) {
	store := NewStore[string](time.Hour)

	store.Put("k1", "v1", Metadata{})
	store.Put("k2", "v2", Metadata{})

	// Three hits on k1, one on k2.
	store.Get("k1")
	store.Get("k1")
	store.Get("k1")
	store.Get("k2")

	if hits := store.Hits(); hits != 4 {
		t.Errorf("Hits = %d, want 4", hits)
	}
}

func TestStore_ConcurrentAccess(t *testing.T) {
	store := NewStore[string](time.Hour)

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				key := fmt.Sprintf("key-%d", j%7)
				store.Put(key, "value", Metadata{})
				store.Get(key)
			}
		}(i)
	}
	wg.Wait()

	if store.Len() != 7 {
		t.Errorf("Len = %d, want 7", store.Len())
	}
}

func TestStore_EntriesReturnsCopies(t *testing.T) {
	store := NewStore[string](time.Hour)
	store.Put("a", "first", Metadata{Cost: 0.01})
	store.Put("b", "second", Metadata{Cost: 0.02})

	entries := store.Entries()
	if len(entries) != 2 {
		t.Fatalf("Entries() returned %d entries, want 2", len(entries))
	}

	entries[0].Payload = "mutated"
	for _, key := range []string{"a", "b"} {
		entry, ok := store.Get(key)
		if !ok {
			t.Fatalf("entry %q missing after Entries()", key)
		}
		if entry.Payload == "mutated" {
			t.Error("mutating the returned slice must not affect the store")
		}
	}
}
