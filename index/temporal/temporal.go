package temporal

import (
	"math"

	"github.com/hupe1980/geochrono/core"
	"github.com/hupe1980/geochrono/geo"
	"github.com/hupe1980/geochrono/internal/arena"
)

// Index orders items by timestamp.
// Items are never removed; handles stay valid for the life of the index.
type Index[T any] struct {
	backend Backend
	items   *arena.Arena[T]
	stamps  *arena.Arena[geo.Timestamp]
}

// New creates an empty Index.
func New[T any](opts ...Option) *Index[T] {
	o := applyOptions(opts)
	return &Index[T]{
		backend: o.backend,
		items:   arena.New[T](),
		stamps:  arena.New[geo.Timestamp](),
	}
}

// FromItems builds an Index holding items, timestamped by ts.
func FromItems[T any](items []T, ts func(T) geo.Timestamp, opts ...Option) *Index[T] {
	o := applyOptions(opts)
	idx := &Index[T]{
		backend: o.backend,
		items:   arena.NewWithCapacity[T](len(items)),
		stamps:  arena.NewWithCapacity[geo.Timestamp](len(items)),
	}
	for _, item := range items {
		idx.Insert(item, ts(item))
	}
	return idx
}

// Insert adds item at ts and returns its handle.
func (idx *Index[T]) Insert(item T, ts geo.Timestamp) core.Handle {
	h := idx.items.Append(item)
	idx.stamps.Append(ts)
	idx.backend.Append(ts.UnixMilli(), h)
	return h
}

// QueryRange returns items whose key lies in [r.Start, r.End], both ends
// inclusive, ordered by key and then insertion. An inverted range matches
// nothing.
func (idx *Index[T]) QueryRange(r geo.TimeRange) []T {
	return idx.collectRange(r.Start.UnixMilli(), r.End.UnixMilli())
}

// Before returns items strictly earlier than ts.
func (idx *Index[T]) Before(ts geo.Timestamp) []T {
	k := ts.UnixMilli()
	if k == math.MinInt64 {
		return nil
	}
	return idx.collectRange(math.MinInt64, k-1)
}

// After returns items strictly later than ts.
func (idx *Index[T]) After(ts geo.Timestamp) []T {
	k := ts.UnixMilli()
	if k == math.MaxInt64 {
		return nil
	}
	return idx.collectRange(k+1, math.MaxInt64)
}

// AtOrBefore returns items at or earlier than ts.
func (idx *Index[T]) AtOrBefore(ts geo.Timestamp) []T {
	return idx.collectRange(math.MinInt64, ts.UnixMilli())
}

// AtOrAfter returns items at or later than ts.
func (idx *Index[T]) AtOrAfter(ts geo.Timestamp) []T {
	return idx.collectRange(ts.UnixMilli(), math.MaxInt64)
}

// RangeHandles calls fn with the handle of every item whose key lies in
// [from, to] until fn returns false.
func (idx *Index[T]) RangeHandles(from, to int64, fn func(core.Handle) bool) {
	idx.backend.AscendRange(from, to, func(_ int64, hs []core.Handle) bool {
		for _, h := range hs {
			if !fn(h) {
				return false
			}
		}
		return true
	})
}

// First returns the earliest item. Among items sharing the earliest key the
// first inserted wins.
func (idx *Index[T]) First() (T, bool) {
	_, hs, ok := idx.backend.Min()
	if !ok {
		var zero T
		return zero, false
	}
	return idx.items.At(hs[0]), true
}

// Last returns the latest item. Among items sharing the latest key the last
// inserted wins.
func (idx *Index[T]) Last() (T, bool) {
	_, hs, ok := idx.backend.Max()
	if !ok {
		var zero T
		return zero, false
	}
	return idx.items.At(hs[len(hs)-1]), true
}

// Chronological returns every item ordered by key and then insertion.
func (idx *Index[T]) Chronological() []T {
	out := make([]T, 0, idx.items.Len())
	idx.backend.Ascend(func(_ int64, hs []core.Handle) bool {
		for _, h := range hs {
			out = append(out, idx.items.At(h))
		}
		return true
	})
	return out
}

// ReverseChronological returns the exact reverse of Chronological.
func (idx *Index[T]) ReverseChronological() []T {
	out := make([]T, 0, idx.items.Len())
	idx.backend.Descend(func(_ int64, hs []core.Handle) bool {
		for i := len(hs) - 1; i >= 0; i-- {
			out = append(out, idx.items.At(hs[i]))
		}
		return true
	})
	return out
}

// TimeRange returns the span from the earliest to the latest timestamp.
// Timestamps sharing a millisecond key are compared at full resolution, so
// the range is never inverted and contains every stored timestamp.
func (idx *Index[T]) TimeRange() (geo.TimeRange, bool) {
	_, lo, ok := idx.backend.Min()
	if !ok {
		return geo.TimeRange{}, false
	}
	_, hi, _ := idx.backend.Max()

	start := idx.stamps.At(lo[0])
	for _, h := range lo[1:] {
		if ts := idx.stamps.At(h); ts.Before(start) {
			start = ts
		}
	}
	end := idx.stamps.At(hi[0])
	for _, h := range hi[1:] {
		if ts := idx.stamps.At(h); !ts.Before(end) {
			end = ts
		}
	}
	return geo.NewTimeRange(start, end), true
}

// Get returns the item stored under h.
func (idx *Index[T]) Get(h core.Handle) (T, bool) {
	return idx.items.Get(h)
}

// Timestamp returns the timestamp stored under h.
func (idx *Index[T]) Timestamp(h core.Handle) (geo.Timestamp, bool) {
	return idx.stamps.Get(h)
}

// Len returns the number of inserted items.
func (idx *Index[T]) Len() int {
	return idx.items.Len()
}

// IsEmpty reports whether nothing has been inserted.
func (idx *Index[T]) IsEmpty() bool {
	return idx.items.Len() == 0
}

// Items returns every item in insertion order. The slice must not be modified.
func (idx *Index[T]) Items() []T {
	return idx.items.View()
}

// Timestamps returns every timestamp in insertion order, parallel to Items.
// The slice must not be modified.
func (idx *Index[T]) Timestamps() []geo.Timestamp {
	return idx.stamps.View()
}

// Backend returns the underlying backend.
func (idx *Index[T]) Backend() Backend {
	return idx.backend
}

func (idx *Index[T]) collectRange(from, to int64) []T {
	var out []T
	idx.backend.AscendRange(from, to, func(_ int64, hs []core.Handle) bool {
		for _, h := range hs {
			out = append(out, idx.items.At(h))
		}
		return true
	})
	return out
}
