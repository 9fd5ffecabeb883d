package date

import (
	"testing"
	"time"
)

func TestHistoryAppendKeepsOrder(t *testing.T) {
	var h History
	h.Append(New(2024, time.March, 1), 3)
	h.Append(New(2024, time.January, 1), 1)
	h.Append(New(2024, time.February, 1), 2)

	var prev Date
	for on, v := range h.Values() {
		if on.Before(prev) {
			t.Fatalf("history out of order at %v", on)
		}
		if int(v) != int(on.Month()) {
			t.Errorf("value at %v = %v, want %d", on, v, on.Month())
		}
		prev = on
	}
}

func TestHistoryAppendOverwrites(t *testing.T) {
	var h History
	on := New(2024, time.June, 15)
	h.Append(on, 100).Append(on, 101)
	if h.Len() != 1 {
		t.Fatalf("Len = %d, want 1", h.Len())
	}
	if v, _ := h.Get(on); v != 101 {
		t.Errorf("Get = %v, want 101", v)
	}
}

func TestHistoryValueAsOf(t *testing.T) {
	var h History
	h.Append(New(2024, time.January, 10), 10)
	h.Append(New(2024, time.January, 20), 20)

	// Exact match.
	if v, ok := h.ValueAsOf(New(2024, time.January, 10)); !ok || v != 10 {
		t.Errorf("ValueAsOf(exact) = %v %v, want 10 true", v, ok)
	}
	// Forward fill from the prior point.
	if v, ok := h.ValueAsOf(New(2024, time.January, 15)); !ok || v != 10 {
		t.Errorf("ValueAsOf(between) = %v %v, want 10 true", v, ok)
	}
	// After the last point.
	if v, ok := h.ValueAsOf(New(2024, time.June, 1)); !ok || v != 20 {
		t.Errorf("ValueAsOf(after) = %v %v, want 20 true", v, ok)
	}
	// Before the first point.
	if _, ok := h.ValueAsOf(New(2023, time.December, 31)); ok {
		t.Error("ValueAsOf(before first) should report not found")
	}
}

func TestHistoryFirstLatest(t *testing.T) {
	var h History
	if on, v := h.Latest(); !on.IsZero() || v != 0 {
		t.Errorf("empty Latest = %v %v", on, v)
	}
	h.Append(New(2024, time.May, 2), 2)
	h.Append(New(2024, time.May, 1), 1)
	if on, v := h.First(); on != New(2024, time.May, 1) || v != 1 {
		t.Errorf("First = %v %v", on, v)
	}
	if on, v := h.Latest(); on != New(2024, time.May, 2) || v != 2 {
		t.Errorf("Latest = %v %v", on, v)
	}
}
