package date

import (
	"iter"
	"slices"
)

// History stores a chronological series of float64 values, one per date.
// Dates are unique and the series is always sorted, so lookups can use
// binary search.
type History struct {
	days   []Date
	values []float64
}

// Len returns the number of points in the history.
func (h *History) Len() int { return len(h.days) }

// First returns the earliest date and value, or zero values when empty.
func (h *History) First() (Date, float64) {
	if len(h.days) == 0 {
		return Date{}, 0
	}
	return h.days[0], h.values[0]
}

// Latest returns the latest date and value, or zero values when empty.
func (h *History) Latest() (Date, float64) {
	last := len(h.days) - 1
	if last < 0 {
		return Date{}, 0
	}
	return h.days[last], h.values[last]
}

func (h *History) search(day Date) (int, bool) {
	return slices.BinarySearchFunc(h.days, day, Date.Compare)
}

// Append adds a point to the history, keeping it sorted.
// An existing value on that date is overwritten.
func (h *History) Append(on Date, v float64) *History {
	i, found := h.search(on)
	if found {
		h.values[i] = v
		return h
	}
	h.days = slices.Insert(h.days, i, on)
	h.values = slices.Insert(h.values, i, v)
	return h
}

// Get returns the value at exactly 'day', and whether it exists.
func (h *History) Get(day Date) (float64, bool) {
	if i, found := h.search(day); found {
		return h.values[i], true
	}
	return 0, false
}

// ValueAsOf returns the value on a given day, or the most recent value
// before it. The boolean is false when no point exists on or before the day.
func (h *History) ValueAsOf(day Date) (float64, bool) {
	i, found := h.search(day)
	if found {
		return h.values[i], true
	}
	// i is the insertion index; the forward-filled value is the point before it.
	if i == 0 {
		return 0, false
	}
	return h.values[i-1], true
}

// Values returns an iterator over all date/value pairs in chronological order.
func (h *History) Values() iter.Seq2[Date, float64] {
	return func(yield func(Date, float64) bool) {
		for i, on := range h.days {
			if !yield(on, h.values[i]) {
				return
			}
		}
	}
}
