package pigro

import (
	"iter"
	"slices"
)

// History stores a chronological series of values, each associated with a specific date.
// It ensures that dates are unique and the series is always sorted.
type History struct {
	days   []Date
	values []float64
}

// search returns the index where day is, or would be inserted.
func (h *History) search(day Date) (int, bool) {
	return slices.BinarySearchFunc(h.days, day, Date.Compare)
}

// Append adds a point to the history.
//
// Existing value at that date is overwritten: the last data wins.
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

// Len returns the number of items in the history.
func (h *History) Len() int { return len(h.days) }

// First returns the earliest date and value in the history.
// If the history is empty, it returns zero values.
func (h *History) First() (day Date, value float64) {
	if len(h.days) == 0 {
		return Date{}, 0
	}
	return h.days[0], h.values[0]
}

// Get returns the value at 'day' and true or zero value and false.
func (h *History) Get(day Date) (float64, bool) {
	if i, found := h.search(day); found {
		return h.values[i], true
	}
	return 0, false
}

// Values returns an iterator over all date/value pairs in the history, in chronological order.
func (h *History) Values() iter.Seq2[Date, float64] {
	return func(yield func(Date, float64) bool) {
		for i, on := range h.days {
			if !yield(on, h.values[i]) {
				return
			}
		}
	}
}
