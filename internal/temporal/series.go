// Package temporal implements as-of lookups over date-ordered attribute series.
package temporal

import (
	"sort"
	"time"
)

// Entry is one (effective date, value) pair.
type Entry[T any] struct {
	Date  time.Time
	Value T
}

// Window is a resolved entry together with the span during which it is in effect.
// End is the date of the next entry; it is the zero time when Open is true.
type Window[T any] struct {
	Value T
	Start time.Time
	End   time.Time
	Open  bool
}

// Series is an immutable, date-sorted sequence of entries with unique dates.
type Series[T any] struct {
	entries []Entry[T]
}

// NewSeries sorts entries by date and collapses equal dates, keeping the entry
// that came last in source order. The input slice is not modified.
func NewSeries[T any](entries []Entry[T]) *Series[T] {
	sorted := make([]Entry[T], len(entries))
	copy(sorted, entries)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Date.Before(sorted[j].Date)
	})

	out := sorted[:0]
	for _, e := range sorted {
		if n := len(out); n > 0 && out[n-1].Date.Equal(e.Date) {
			out[n-1] = e
			continue
		}
		out = append(out, e)
	}
	return &Series[T]{entries: out}
}

// Len returns the number of distinct dates in the series. A nil series has length 0.
func (s *Series[T]) Len() int {
	if s == nil {
		return 0
	}
	return len(s.entries)
}

// Entries returns a copy of the sorted entries.
func (s *Series[T]) Entries() []Entry[T] {
	if s == nil {
		return nil
	}
	out := make([]Entry[T], len(s.entries))
	copy(out, s.entries)
	return out
}

// Resolve returns the value of the latest entry dated at or before at,
// or def when no entry qualifies.
func (s *Series[T]) Resolve(at time.Time, def T) T {
	i := s.index(at)
	if i < 0 {
		return def
	}
	return s.entries[i].Value
}

// ResolveWindow is Resolve plus the validity window of the selected entry.
// ok is false when no entry is dated at or before at.
func (s *Series[T]) ResolveWindow(at time.Time) (w Window[T], ok bool) {
	i := s.index(at)
	if i < 0 {
		return w, false
	}
	w = Window[T]{Value: s.entries[i].Value, Start: s.entries[i].Date}
	if i+1 < len(s.entries) {
		w.End = s.entries[i+1].Date
	} else {
		w.Open = true
	}
	return w, true
}

// index returns the position of the latest entry with Date <= at, or -1.
func (s *Series[T]) index(at time.Time) int {
	if s.Len() == 0 {
		return -1
	}
	// first entry strictly after at
	after := sort.Search(len(s.entries), func(i int) bool {
		return s.entries[i].Date.After(at)
	})
	return after - 1
}
