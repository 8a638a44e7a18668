package testutil

import (
	"testing"
	"time"

	"github.com/hupe1980/geochrono/geo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLocations(t *testing.T) {
	rng := NewRNG(4711)
	b := geo.NewGeoBounds(10, 20, 30, 60)

	locs := rng.Locations(500, b)
	require.Len(t, locs, 500)
	for _, l := range locs {
		assert.True(t, b.Contains(l), "location %s outside %v", l, b)
	}
}

func TestReset(t *testing.T) {
	rng := NewRNG(42)
	first := rng.Locations(10, geo.WorldBounds())
	rng.Reset()
	assert.Equal(t, first, rng.Locations(10, geo.WorldBounds()))
	assert.Equal(t, int64(42), rng.Seed())
}

func TestGridLocations(t *testing.T) {
	rng := NewRNG(7)
	b := geo.NewGeoBounds(0, 0, 10, 10)

	for _, l := range rng.GridLocations(200, b, 0.5) {
		assert.True(t, b.Contains(l))
		assert.InDelta(t, 0, l.Lat*2-float64(int(l.Lat*2)), 1e-9)
	}
}

func TestTimestamps(t *testing.T) {
	rng := NewRNG(4711)
	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

	ts := rng.Timestamps(300, start, time.Hour)
	require.Len(t, ts, 300)
	for _, v := range ts {
		assert.GreaterOrEqual(t, v.UnixMilli(), start.UnixMilli())
		assert.Less(t, v.UnixMilli(), start.Add(time.Hour).UnixMilli())
	}

	coarse := rng.CoarseTimestamps(100, start, time.Minute, 3)
	distinct := map[int64]struct{}{}
	for _, v := range coarse {
		distinct[v.UnixMilli()] = struct{}{}
	}
	assert.LessOrEqual(t, len(distinct), 3)
}

func TestBruteForce(t *testing.T) {
	locs := []geo.Location{
		geo.NewLocation(0, 0),
		geo.NewLocation(1, 1),
		geo.NewLocation(2, 2),
		geo.NewLocation(1, 0),
	}

	t.Run("BBox", func(t *testing.T) {
		assert.Equal(t, []int{0, 1, 3}, BruteForceBBox(locs, 0, 0, 1, 1))
	})

	t.Run("Radius", func(t *testing.T) {
		assert.Equal(t, []int{0, 3}, BruteForceRadius(locs, 0, 0, 1))
		assert.Empty(t, BruteForceRadius(locs, 0, 0, -1))
	})

	t.Run("Nearest", func(t *testing.T) {
		got := BruteForceNearest(locs, 0.9, 0.1, 2)
		require.Len(t, got, 2)
		assert.Equal(t, 3, got[0].Pos)
		assert.Empty(t, BruteForceNearest(locs, 0, 0, 0))
	})

	t.Run("TimeRange", func(t *testing.T) {
		ts := []geo.Timestamp{geo.FromUnixMilli(5), geo.FromUnixMilli(10), geo.FromUnixMilli(15)}
		assert.Equal(t, []int{1, 2}, BruteForceTimeRange(ts, 10, 20))
	})
}
