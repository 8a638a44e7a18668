package spatial

import (
	"github.com/hupe1980/geochrono/core"
	"github.com/hupe1980/geochrono/geo"
	"github.com/hupe1980/geochrono/internal/arena"
)

// Index maps items to coordinates and answers geometric queries over them.
// Items are never removed; handles stay valid for the life of the index.
type Index[T any] struct {
	backend Backend
	items   *arena.Arena[T]
}

// New creates an empty Index.
func New[T any](opts ...Option) *Index[T] {
	o := applyOptions(opts)
	return &Index[T]{
		backend: o.backend,
		items:   arena.New[T](),
	}
}

// FromItems builds an Index holding items, located by loc.
// Backends implementing BulkLoader are loaded in one pass.
func FromItems[T any](items []T, loc func(T) geo.Location, opts ...Option) *Index[T] {
	o := applyOptions(opts)
	idx := &Index[T]{
		backend: o.backend,
		items:   arena.NewWithCapacity[T](len(items)),
	}

	entries := make([]Entry, 0, len(items))
	for _, item := range items {
		l := loc(item)
		h := idx.items.Append(item)
		entries = append(entries, Entry{Lat: l.Lat, Lon: l.Lon, Handle: h})
	}

	if bl, ok := idx.backend.(BulkLoader); ok {
		bl.BulkLoad(entries)
	} else {
		for _, e := range entries {
			idx.backend.Insert(e)
		}
	}
	return idx
}

// Insert adds item at loc and returns its handle.
// Coordinates are not validated.
func (idx *Index[T]) Insert(item T, loc geo.Location) core.Handle {
	h := idx.items.Append(item)
	idx.backend.Insert(Entry{Lat: loc.Lat, Lon: loc.Lon, Handle: h})
	return h
}

// QueryBBox returns items inside the closed rectangle, edges included.
// Result order follows the backend's traversal.
func (idx *Index[T]) QueryBBox(minLat, minLon, maxLat, maxLon float64) []T {
	var out []T
	idx.backend.Search(minLat, minLon, maxLat, maxLon, func(e Entry) bool {
		out = append(out, idx.items.At(e.Handle))
		return true
	})
	return out
}

// QueryBounds returns items inside b.
func (idx *Index[T]) QueryBounds(b geo.GeoBounds) []T {
	return idx.QueryBBox(b.MinLat, b.MinLon, b.MaxLat, b.MaxLon)
}

// QueryRadius returns items within radiusDegrees of (lat, lon), measured as
// planar distance in degree space.
func (idx *Index[T]) QueryRadius(lat, lon, radiusDegrees float64) []T {
	var out []T
	idx.backend.Within(lat, lon, radiusDegrees, func(e Entry) bool {
		out = append(out, idx.items.At(e.Handle))
		return true
	})
	return out
}

// QueryRadiusMeters returns items roughly within radiusMeters of (lat, lon).
//
// The radius is converted with a fixed degrees per meter factor and a 1.5x
// margin, then passed to QueryRadius. No great-circle filter is applied: the
// result is a superset of the true set away from the poles and may contain
// items farther than radiusMeters. Filter with geo.Haversine when exactness
// matters.
func (idx *Index[T]) QueryRadiusMeters(lat, lon, radiusMeters float64) []T {
	return idx.QueryRadius(lat, lon, MetersToDegrees(radiusMeters))
}

// Nearest returns up to k items ordered by ascending planar distance to
// (lat, lon). The order of items at equal distance is unspecified.
func (idx *Index[T]) Nearest(lat, lon float64, k int) []T {
	entries := idx.backend.Nearest(lat, lon, k)
	if len(entries) == 0 {
		return nil
	}
	out := make([]T, 0, len(entries))
	for _, e := range entries {
		out = append(out, idx.items.At(e.Handle))
	}
	return out
}

// NearestOne returns the closest item to (lat, lon).
// Returns false if the index holds no matchable entry.
func (idx *Index[T]) NearestOne(lat, lon float64) (T, bool) {
	entries := idx.backend.Nearest(lat, lon, 1)
	if len(entries) == 0 {
		var zero T
		return zero, false
	}
	return idx.items.At(entries[0].Handle), true
}

// NearestHandles is Nearest without resolving items.
func (idx *Index[T]) NearestHandles(lat, lon float64, k int) []core.Handle {
	entries := idx.backend.Nearest(lat, lon, k)
	hs := make([]core.Handle, 0, len(entries))
	for _, e := range entries {
		hs = append(hs, e.Handle)
	}
	return hs
}

// SearchHandles calls fn with the handle of every item inside the closed
// rectangle until fn returns false.
func (idx *Index[T]) SearchHandles(minLat, minLon, maxLat, maxLon float64, fn func(core.Handle) bool) {
	idx.backend.Search(minLat, minLon, maxLat, maxLon, func(e Entry) bool {
		return fn(e.Handle)
	})
}

// Get returns the item stored under h.
func (idx *Index[T]) Get(h core.Handle) (T, bool) {
	return idx.items.Get(h)
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

// Backend returns the underlying backend.
func (idx *Index[T]) Backend() Backend {
	return idx.backend
}

// MetersToDegrees converts a meter radius into the degree radius used by
// QueryRadiusMeters: meters / geo.MetersPerDegreeLat * 1.5.
func MetersToDegrees(meters float64) float64 {
	return meters / geo.MetersPerDegreeLat * 1.5
}
