package testutil

import (
	"math/rand"
	"sort"
	"sync"
	"time"

	"github.com/hupe1980/geochrono/geo"
)

// RNG struct encapsulates the random number generator and seed.
// It is thread-safe.
type RNG struct {
	rand *rand.Rand
	seed int64
	mu   sync.Mutex
}

// NewRNG creates a new RNG instance with the specified seed.
func NewRNG(seed int64) *RNG {
	return &RNG{
		rand: rand.New(rand.NewSource(seed)),
		seed: seed,
	}
}

// Reset resets the RNG to its initial seed.
func (r *RNG) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.rand.Seed(r.seed)
}

// Seed returns the initial seed.
func (r *RNG) Seed() int64 {
	return r.seed
}

// Intn returns a non-negative pseudo-random number in [0,n).
func (r *RNG) Intn(n int) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.rand.Intn(n)
}

// Float64 returns a pseudo-random number in [0.0,1.0).
func (r *RNG) Float64() float64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.rand.Float64()
}

// Location returns a location drawn uniformly from b.
func (r *RNG) Location(b geo.GeoBounds) geo.Location {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.locationLocked(b)
}

func (r *RNG) locationLocked(b geo.GeoBounds) geo.Location {
	return geo.NewLocation(
		b.MinLat+r.rand.Float64()*b.Height(),
		b.MinLon+r.rand.Float64()*b.Width(),
	)
}

// Locations returns n locations drawn uniformly from b.
func (r *RNG) Locations(n int, b geo.GeoBounds) []geo.Location {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := make([]geo.Location, n)
	for i := range out {
		out[i] = r.locationLocked(b)
	}
	return out
}

// GridLocations returns n locations snapped to a step-degree lattice inside b.
// Lattice data produces many exact duplicates and points on query edges.
func (r *RNG) GridLocations(n int, b geo.GeoBounds, step float64) []geo.Location {
	r.mu.Lock()
	defer r.mu.Unlock()

	latSteps := int(b.Height()/step) + 1
	lonSteps := int(b.Width()/step) + 1

	out := make([]geo.Location, n)
	for i := range out {
		out[i] = geo.NewLocation(
			b.MinLat+float64(r.rand.Intn(latSteps))*step,
			b.MinLon+float64(r.rand.Intn(lonSteps))*step,
		)
	}
	return out
}

// ClusteredLocations returns n locations scattered around the given centers
// with Gaussian noise of spread degrees.
func (r *RNG) ClusteredLocations(n int, centers []geo.Location, spread float64) []geo.Location {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := make([]geo.Location, n)
	for i := range out {
		c := centers[i%len(centers)]
		out[i] = geo.NewLocation(
			c.Lat+r.rand.NormFloat64()*spread,
			c.Lon+r.rand.NormFloat64()*spread,
		)
	}
	return out
}

// Timestamps returns n timestamps drawn uniformly from [start, start+span)
// at millisecond resolution.
func (r *RNG) Timestamps(n int, start time.Time, span time.Duration) []geo.Timestamp {
	r.mu.Lock()
	defer r.mu.Unlock()

	ms := span.Milliseconds()
	if ms <= 0 {
		ms = 1
	}
	base := start.UnixMilli()

	out := make([]geo.Timestamp, n)
	for i := range out {
		out[i] = geo.FromUnixMilli(base + r.rand.Int63n(ms))
	}
	return out
}

// CoarseTimestamps returns n timestamps drawn from buckets distinct instants
// spaced step apart, so many items share a key.
func (r *RNG) CoarseTimestamps(n int, start time.Time, step time.Duration, buckets int) []geo.Timestamp {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := make([]geo.Timestamp, n)
	for i := range out {
		out[i] = geo.NewTimestamp(start.Add(time.Duration(r.rand.Intn(buckets)) * step))
	}
	return out
}

// BruteForceBBox returns the positions of locs inside the closed rectangle.
func BruteForceBBox(locs []geo.Location, minLat, minLon, maxLat, maxLon float64) []int {
	var out []int
	for i, l := range locs {
		if l.Lat >= minLat && l.Lat <= maxLat && l.Lon >= minLon && l.Lon <= maxLon {
			out = append(out, i)
		}
	}
	return out
}

// BruteForceRadius returns the positions of locs within radius of (lat, lon)
// in planar degree space.
func BruteForceRadius(locs []geo.Location, lat, lon, radius float64) []int {
	var out []int
	if radius < 0 {
		return out
	}
	r2 := radius * radius
	for i, l := range locs {
		if geo.DegreeDistance2(l.Lat, l.Lon, lat, lon) <= r2 {
			out = append(out, i)
		}
	}
	return out
}

// BruteForceHaversine returns the positions of locs within radiusMeters of
// (lat, lon) along the great circle.
func BruteForceHaversine(locs []geo.Location, lat, lon, radiusMeters float64) []int {
	var out []int
	for i, l := range locs {
		if geo.Haversine(lat, lon, l.Lat, l.Lon) <= radiusMeters {
			out = append(out, i)
		}
	}
	return out
}

// Neighbor is a reference nearest neighbor result.
type Neighbor struct {
	Pos      int
	Distance float64 // squared planar degree distance
}

// BruteForceNearest returns the k positions of locs closest to (lat, lon),
// ordered by ascending distance and then position.
func BruteForceNearest(locs []geo.Location, lat, lon float64, k int) []Neighbor {
	all := make([]Neighbor, len(locs))
	for i, l := range locs {
		all[i] = Neighbor{Pos: i, Distance: geo.DegreeDistance2(l.Lat, l.Lon, lat, lon)}
	}

	sort.SliceStable(all, func(i, j int) bool {
		return all[i].Distance < all[j].Distance
	})

	if k < 0 {
		k = 0
	}
	if len(all) > k {
		all = all[:k]
	}
	return all
}

// BruteForceTimeRange returns the positions of ts whose millisecond key lies
// in [start, end].
func BruteForceTimeRange(ts []geo.Timestamp, start, end int64) []int {
	var out []int
	for i, t := range ts {
		if k := t.UnixMilli(); k >= start && k <= end {
			out = append(out, i)
		}
	}
	return out
}
