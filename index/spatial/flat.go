package spatial

import (
	"math"

	"github.com/hupe1980/geochrono/core"
	"github.com/hupe1980/geochrono/geo"
	"github.com/hupe1980/geochrono/internal/queue"
)

// Compile time check to ensure Flat satisfies the Backend interface.
var _ Backend = (*Flat)(nil)

// Flat is a Backend that scans every entry on each query.
// Nearest is exact and breaks distance ties by the lower handle.
type Flat struct {
	entries []Entry
}

// NewFlat creates an empty flat backend.
func NewFlat() *Flat {
	return &Flat{}
}

// Insert adds an entry.
func (f *Flat) Insert(e Entry) {
	f.entries = append(f.entries, e)
}

// Search calls fn for every entry inside the closed rectangle.
func (f *Flat) Search(minLat, minLon, maxLat, maxLon float64, fn func(Entry) bool) {
	for _, e := range f.entries {
		if !e.Finite() || !e.inBox(minLat, minLon, maxLat, maxLon) {
			continue
		}
		if !fn(e) {
			return
		}
	}
}

// Within calls fn for every entry within radius of (lat, lon).
func (f *Flat) Within(lat, lon, radius float64, fn func(Entry) bool) {
	if !searchableRadius(lat, lon, radius) {
		return
	}
	r2 := radius * radius
	for _, e := range f.entries {
		if !e.Finite() || geo.DegreeDistance2(e.Lat, e.Lon, lat, lon) > r2 {
			continue
		}
		if !fn(e) {
			return
		}
	}
}

// Nearest returns up to k entries ordered by ascending planar distance.
func (f *Flat) Nearest(lat, lon float64, k int) []Entry {
	if k <= 0 || math.IsNaN(lat) || math.IsNaN(lon) {
		return nil
	}

	// Candidate handles are positions in f.entries.
	top := queue.NewTopK(min(k, len(f.entries)))
	for i, e := range f.entries {
		if !e.Finite() {
			continue
		}
		top.Offer(queue.Candidate{Handle: core.Handle(i), Distance: geo.DegreeDistance2(e.Lat, e.Lon, lat, lon)})
	}

	best := top.Drain()
	out := make([]Entry, 0, len(best))
	for _, c := range best {
		out = append(out, f.entries[c.Handle])
	}
	return out
}

// Len returns the number of inserted entries.
func (f *Flat) Len() int {
	return len(f.entries)
}
