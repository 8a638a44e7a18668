package spatial

import (
	"math"

	"github.com/hupe1980/geochrono/core"
)

// Entry is a single indexed coordinate.
type Entry struct {
	Lat    float64
	Lon    float64
	Handle core.Handle
}

// Finite reports whether both coordinates are finite numbers.
func (e Entry) Finite() bool {
	return !math.IsNaN(e.Lat) && !math.IsInf(e.Lat, 0) &&
		!math.IsNaN(e.Lon) && !math.IsInf(e.Lon, 0)
}

// inBox reports whether e lies in the closed rectangle.
func (e Entry) inBox(minLat, minLon, maxLat, maxLon float64) bool {
	return e.Lat >= minLat && e.Lat <= maxLat && e.Lon >= minLon && e.Lon <= maxLon
}

// Backend stores entries and answers geometric predicates over them.
//
// Every backend must return the same result set for the same predicate;
// only the order may differ. Non-finite entries count towards Len but never
// match.
type Backend interface {
	// Insert adds an entry.
	Insert(e Entry)

	// Search calls fn for every entry inside the closed rectangle until fn
	// returns false.
	Search(minLat, minLon, maxLat, maxLon float64, fn func(Entry) bool)

	// Within calls fn for every entry whose planar distance to (lat, lon) is
	// at most radius until fn returns false. A negative radius matches nothing.
	Within(lat, lon, radius float64, fn func(Entry) bool)

	// Nearest returns up to k entries ordered by ascending planar distance.
	Nearest(lat, lon float64, k int) []Entry

	// Len returns the number of inserted entries.
	Len() int
}

// BulkLoader is implemented by backends that build faster from a full batch.
// BulkLoad on a non-empty backend behaves like repeated Insert.
type BulkLoader interface {
	BulkLoad(entries []Entry)
}

// searchableRadius reports whether a Within query can match anything.
func searchableRadius(lat, lon, radius float64) bool {
	return radius >= 0 && !math.IsNaN(lat) && !math.IsNaN(lon)
}
