package metrics

import (
	"fmt"
	"testing"
)

func TestHistory_AppendAssignsIdentity(t *testing.T) {
	h := NewHistory(10)

	r := h.Append(Record{Provider: "openai", Voice: "alloy", Success: true})
	if r.ID == "" {
		t.Error("Append did not assign an ID")
	}
	if r.Timestamp.IsZero() {
		t.Error("Append did not assign a timestamp")
	}
	if h.Len() != 1 {
		t.Errorf("Len = %d, want 1", h.Len())
	}
}

func TestHistory_FIFOEviction(t *testing.T) {
	h := NewHistory(3)

	for i := 0; i < 5; i++ {
		h.Append(Record{Error: fmt.Sprintf("err-%d", i)})
	}

	records := h.Records()
	if len(records) != 3 {
		t.Fatalf("Len = %d, want capacity 3", len(records))
	}

	// Oldest first; records 0 and 1 evicted regardless of access pattern.
	want := []string{"err-2", "err-3", "err-4"}
	for i, r := range records {
		if r.Error != want[i] {
			t.Errorf("records[%d].Error = %q, want %q", i, r.Error, want[i])
		}
	}
}

func TestHistory_DefaultCapacity(t *testing.T) {
	h := NewHistory(0)

	for i := 0; i < DefaultHistoryCapacity+20; i++ {
		h.Append(Record{})
	}

	if h.Len() != DefaultHistoryCapacity {
		t.Errorf("Len = %d, want %d", h.Len(), DefaultHistoryCapacity)
	}
}
