package temporal

import (
	"math"
	"slices"
	"sort"
	"testing"
	"time"

	"github.com/hupe1980/geochrono/core"
	"github.com/hupe1980/geochrono/geo"
	"github.com/hupe1980/geochrono/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ms(v int64) geo.Timestamp { return geo.FromUnixMilli(v) }

func newEvents(t *testing.T) *Index[string] {
	t.Helper()
	idx := New[string]()
	idx.Insert("b1", ms(200))
	idx.Insert("a1", ms(100))
	idx.Insert("c1", ms(300))
	idx.Insert("b2", ms(200))
	idx.Insert("a2", ms(100))
	return idx
}

func TestIndex(t *testing.T) {
	t.Run("Empty", func(t *testing.T) {
		idx := New[string]()
		assert.True(t, idx.IsEmpty())
		assert.Empty(t, idx.QueryRange(geo.NewTimeRange(ms(0), ms(1000))))
		assert.Empty(t, idx.Chronological())

		_, ok := idx.First()
		assert.False(t, ok)
		_, ok = idx.Last()
		assert.False(t, ok)
		_, ok = idx.TimeRange()
		assert.False(t, ok)
	})

	t.Run("Chronological", func(t *testing.T) {
		idx := newEvents(t)
		assert.Equal(t, []string{"a1", "a2", "b1", "b2", "c1"}, idx.Chronological())
		assert.Equal(t, []string{"c1", "b2", "b1", "a2", "a1"}, idx.ReverseChronological())
		assert.Equal(t, 5, idx.Len())
		assert.Equal(t, 3, idx.Backend().Len())
	})

	t.Run("FirstLast", func(t *testing.T) {
		idx := newEvents(t)
		idx.Insert("c2", ms(300))

		first, ok := idx.First()
		require.True(t, ok)
		assert.Equal(t, "a1", first)

		last, ok := idx.Last()
		require.True(t, ok)
		assert.Equal(t, "c2", last)

		tr, ok := idx.TimeRange()
		require.True(t, ok)
		assert.Equal(t, int64(100), tr.Start.UnixMilli())
		assert.Equal(t, int64(300), tr.End.UnixMilli())
	})

	t.Run("QueryRangeInclusive", func(t *testing.T) {
		idx := newEvents(t)
		assert.Equal(t, []string{"a1", "a2", "b1", "b2"}, idx.QueryRange(geo.NewTimeRange(ms(100), ms(200))))
		assert.Equal(t, []string{"b1", "b2"}, idx.QueryRange(geo.NewTimeRange(ms(200), ms(200))))
		assert.Empty(t, idx.QueryRange(geo.NewTimeRange(ms(101), ms(199))))
		assert.Empty(t, idx.QueryRange(geo.NewTimeRange(ms(300), ms(100))))
	})

	t.Run("BeforeAfter", func(t *testing.T) {
		idx := newEvents(t)
		assert.Equal(t, []string{"a1", "a2"}, idx.Before(ms(200)))
		assert.Equal(t, []string{"a1", "a2", "b1", "b2"}, idx.AtOrBefore(ms(200)))
		assert.Equal(t, []string{"c1"}, idx.After(ms(200)))
		assert.Equal(t, []string{"b1", "b2", "c1"}, idx.AtOrAfter(ms(200)))

		assert.Empty(t, idx.Before(ms(100)))
		assert.Empty(t, idx.After(ms(300)))
		assert.Empty(t, idx.Before(ms(math.MinInt64)))
		assert.Empty(t, idx.After(ms(math.MaxInt64)))
	})

	t.Run("SubMillisecondShareKey", func(t *testing.T) {
		base := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
		idx := New[string]()
		idx.Insert("x", geo.NewTimestamp(base.Add(100*time.Microsecond)))
		idx.Insert("y", geo.NewTimestamp(base.Add(900*time.Microsecond)))

		assert.Equal(t, 1, idx.Backend().Len())
		assert.Equal(t, []string{"x", "y"}, idx.QueryRange(geo.NewTimeRange(geo.NewTimestamp(base), geo.NewTimestamp(base))))
	})

	t.Run("TimeRangeWithinOneKey", func(t *testing.T) {
		base := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
		late := geo.NewTimestamp(base.Add(900 * time.Microsecond))
		early := geo.NewTimestamp(base.Add(100 * time.Microsecond))

		idx := New[string]()
		idx.Insert("late", late)
		idx.Insert("early", early)

		tr, ok := idx.TimeRange()
		require.True(t, ok)
		assert.NoError(t, tr.Validate())
		assert.True(t, tr.Start.Equal(early))
		assert.True(t, tr.End.Equal(late))
		assert.True(t, tr.Contains(early))
		assert.True(t, tr.Contains(late))
	})

	t.Run("HandlesAndTimestamps", func(t *testing.T) {
		idx := New[string]()
		assert.Equal(t, core.Handle(0), idx.Insert("a", ms(5)))
		assert.Equal(t, core.Handle(1), idx.Insert("b", ms(1)))

		v, ok := idx.Get(1)
		require.True(t, ok)
		assert.Equal(t, "b", v)

		ts, ok := idx.Timestamp(0)
		require.True(t, ok)
		assert.Equal(t, int64(5), ts.UnixMilli())

		assert.Equal(t, []string{"a", "b"}, idx.Items())
		assert.Len(t, idx.Timestamps(), 2)

		var hs []core.Handle
		idx.RangeHandles(0, 10, func(h core.Handle) bool {
			hs = append(hs, h)
			return true
		})
		assert.Equal(t, []core.Handle{1, 0}, hs)
	})
}

func TestIndexMatchesBruteForce(t *testing.T) {
	rng := testutil.NewRNG(4711)
	start := time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC)
	stamps := rng.CoarseTimestamps(3000, start, time.Minute, 500)

	pos := make([]int, len(stamps))
	for i := range pos {
		pos[i] = i
	}
	idx := FromItems(pos, func(i int) geo.Timestamp { return stamps[i] }, WithDegree(3))
	require.Equal(t, len(stamps), idx.Len())

	chrono := idx.Chronological()
	require.Len(t, chrono, len(stamps))
	for i := 1; i < len(chrono); i++ {
		a, b := stamps[chrono[i-1]].UnixMilli(), stamps[chrono[i]].UnixMilli()
		require.LessOrEqual(t, a, b)
		if a == b {
			require.Less(t, chrono[i-1], chrono[i], "insertion order within a key")
		}
	}

	rev := idx.ReverseChronological()
	slices.Reverse(rev)
	assert.Equal(t, chrono, rev)

	for q := 0; q < 100; q++ {
		a := stamps[rng.Intn(len(stamps))].UnixMilli() + int64(rng.Intn(3)-1)
		b := stamps[rng.Intn(len(stamps))].UnixMilli() + int64(rng.Intn(3)-1)
		lo, hi := min(a, b), max(a, b)

		got := idx.QueryRange(geo.NewTimeRange(ms(lo), ms(hi)))
		want := testutil.BruteForceTimeRange(stamps, lo, hi)
		gotSorted := append([]int(nil), got...)
		sort.Ints(gotSorted)
		if len(want) == 0 {
			assert.Empty(t, got)
		} else {
			assert.Equal(t, want, gotSorted)
		}

		// Before and AtOrAfter partition the index.
		before := idx.Before(ms(a))
		atOrAfter := idx.AtOrAfter(ms(a))
		assert.Equal(t, idx.Len(), len(before)+len(atOrAfter))
		for _, p := range before {
			assert.Less(t, stamps[p].UnixMilli(), a)
		}
	}
}

func TestSlidingWindow(t *testing.T) {
	t.Run("AlignedWindows", func(t *testing.T) {
		idx := New[string]()
		idx.Insert("a", ms(1000))
		idx.Insert("b", ms(1500))
		idx.Insert("c", ms(1999))
		idx.Insert("d", ms(2000))
		idx.Insert("e", ms(9100))
		idx.Insert("f", ms(9000))

		w := idx.SlidingWindow(time.Second)

		got, ok := w.Next()
		require.True(t, ok)
		assert.Equal(t, []string{"a", "b", "c"}, got)
		assert.Equal(t, int64(1000), w.Window().Start.UnixMilli())
		assert.Equal(t, int64(1999), w.Window().End.UnixMilli())

		got, ok = w.Next()
		require.True(t, ok)
		assert.Equal(t, []string{"d"}, got)

		// Empty windows between 3000 and 9000 are skipped in one step.
		got, ok = w.Next()
		require.True(t, ok)
		assert.Equal(t, []string{"f", "e"}, got)
		assert.Equal(t, int64(9000), w.Window().Start.UnixMilli())

		_, ok = w.Next()
		assert.False(t, ok)
		_, ok = w.Next()
		assert.False(t, ok)
	})

	t.Run("AlignsOnOrigin", func(t *testing.T) {
		idx := New[int]()
		idx.Insert(1, ms(10))
		idx.Insert(2, ms(45))
		idx.Insert(3, ms(49))
		idx.Insert(4, ms(50))

		var windows [][]int
		for items := range idx.SlidingWindow(20 * time.Millisecond).All() {
			windows = append(windows, items)
		}
		// [10,30) [30,50) [50,70)
		assert.Equal(t, [][]int{{1}, {2, 3}, {4}}, windows)
	})

	t.Run("NonPositiveWidth", func(t *testing.T) {
		idx := newEvents(t)
		_, ok := idx.SlidingWindow(0).Next()
		assert.False(t, ok)
		_, ok = idx.SlidingWindow(-time.Second).Next()
		assert.False(t, ok)
	})

	t.Run("Empty", func(t *testing.T) {
		idx := New[int]()
		_, ok := idx.SlidingWindow(time.Hour).Next()
		assert.False(t, ok)
	})

	t.Run("SubMillisecondWidth", func(t *testing.T) {
		idx := New[int]()
		idx.Insert(1, ms(1))
		idx.Insert(2, ms(2))

		var windows [][]int
		for items := range idx.SlidingWindow(time.Microsecond).All() {
			windows = append(windows, items)
		}
		assert.Equal(t, [][]int{{1}, {2}}, windows)
	})

	t.Run("ExtremeKeys", func(t *testing.T) {
		idx := New[int]()
		idx.Insert(1, ms(math.MinInt64+1000))
		idx.Insert(2, ms(math.MaxInt64))

		var windows [][]int
		for items := range idx.SlidingWindow(time.Hour).All() {
			windows = append(windows, items)
		}
		assert.Equal(t, [][]int{{1}, {2}}, windows)
	})

	t.Run("CoversEveryItemOnce", func(t *testing.T) {
		rng := testutil.NewRNG(11)
		start := time.Date(2023, 6, 1, 0, 0, 0, 0, time.UTC)
		stamps := rng.Timestamps(1000, start, 72*time.Hour)

		idx := New[int]()
		for i, ts := range stamps {
			idx.Insert(i, ts)
		}

		var all []int
		w := idx.SlidingWindow(90 * time.Minute)
		for items := range w.All() {
			require.NotEmpty(t, items)
			span := w.Window()
			for _, p := range items {
				assert.True(t, span.Contains(stamps[p]))
			}
			all = append(all, items...)
		}
		assert.Equal(t, idx.Chronological(), all)
	})
}

func TestNewBTree(t *testing.T) {
	assert.Equal(t, DefaultDegree, NewBTree(0).Degree())
	assert.Equal(t, 4, NewBTree(4).Degree())

	bt := NewBTree(2)
	bt.Append(10, 0)
	bt.Append(30, 1)
	bt.Append(20, 2)

	k, ok := bt.Ceiling(11)
	require.True(t, ok)
	assert.Equal(t, int64(20), k)

	k, ok = bt.Ceiling(30)
	require.True(t, ok)
	assert.Equal(t, int64(30), k)

	_, ok = bt.Ceiling(31)
	assert.False(t, ok)

	var keys []int64
	bt.AscendRange(10, 20, func(k int64, _ []core.Handle) bool {
		keys = append(keys, k)
		return true
	})
	assert.Equal(t, []int64{10, 20}, keys)

	keys = keys[:0]
	bt.AscendRange(20, 10, func(k int64, _ []core.Handle) bool {
		keys = append(keys, k)
		return true
	})
	assert.Empty(t, keys)
}
