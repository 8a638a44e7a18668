package temporal

import (
	"iter"
	"math"
	"time"

	"github.com/hupe1980/geochrono/core"
	"github.com/hupe1980/geochrono/geo"
)

// SlidingWindow walks an Index in consecutive fixed-width windows.
//
// Windows are [origin + n*width, origin + (n+1)*width) where origin is the
// earliest key at creation time. Windows without items are skipped, so every
// window returned is non-empty. The cursor reads the index lazily; items
// inserted behind the cursor are not revisited.
type SlidingWindow[T any] struct {
	idx    *Index[T]
	width  int64
	origin int64
	start  int64
	last   geo.TimeRange
	done   bool
}

// SlidingWindow returns a cursor over windows of width d.
// d is truncated to whole milliseconds with a floor of one millisecond.
// A non-positive d yields no windows.
func (idx *Index[T]) SlidingWindow(d time.Duration) *SlidingWindow[T] {
	w := &SlidingWindow[T]{idx: idx}
	if d <= 0 {
		w.done = true
		return w
	}
	w.width = max(d.Milliseconds(), 1)

	origin, _, ok := idx.backend.Min()
	if !ok {
		w.done = true
		return w
	}
	w.origin = origin
	w.start = origin
	return w
}

// Next returns the items of the next non-empty window in key order.
// It returns false once every key has been consumed.
func (w *SlidingWindow[T]) Next() ([]T, bool) {
	if w.done {
		return nil, false
	}

	k, ok := w.idx.backend.Ceiling(w.start)
	if !ok {
		w.done = true
		return nil, false
	}
	w.start = w.align(k)

	endKey := int64(math.MaxInt64)
	if w.start <= math.MaxInt64-w.width+1 {
		endKey = w.start + w.width - 1
	}

	var out []T
	w.idx.backend.AscendRange(w.start, endKey, func(_ int64, hs []core.Handle) bool {
		for _, h := range hs {
			out = append(out, w.idx.items.At(h))
		}
		return true
	})
	w.last = geo.NewTimeRange(geo.FromUnixMilli(w.start), geo.FromUnixMilli(endKey))

	if endKey == math.MaxInt64 {
		w.done = true
	} else {
		w.start = endKey + 1
	}
	return out, true
}

// Window returns the key span of the window last returned by Next,
// both ends inclusive.
func (w *SlidingWindow[T]) Window() geo.TimeRange {
	return w.last
}

// All returns an iterator over the remaining windows.
func (w *SlidingWindow[T]) All() iter.Seq[[]T] {
	return func(yield func([]T) bool) {
		for {
			items, ok := w.Next()
			if !ok || !yield(items) {
				return
			}
		}
	}
}

// align returns the start of the window holding key k.
func (w *SlidingWindow[T]) align(k int64) int64 {
	// k >= origin always holds, so the unsigned difference is exact.
	n := (uint64(k) - uint64(w.origin)) / uint64(w.width)
	return w.origin + int64(n*uint64(w.width))
}
