package geo

import (
	"fmt"
	"time"
)

// GeoBounds is a latitude/longitude rectangle. All four edges are inclusive.
type GeoBounds struct {
	MinLat float64
	MinLon float64
	MaxLat float64
	MaxLon float64
}

// NewGeoBounds returns the rectangle with the given edges.
func NewGeoBounds(minLat, minLon, maxLat, maxLon float64) GeoBounds {
	return GeoBounds{MinLat: minLat, MinLon: minLon, MaxLat: maxLat, MaxLon: maxLon}
}

// WorldBounds covers every valid WGS84 coordinate.
func WorldBounds() GeoBounds {
	return NewGeoBounds(-90, -180, 90, 180)
}

// BoundsFromLocations returns the smallest rectangle containing every
// location, or false when locs is empty.
func BoundsFromLocations(locs []Location) (GeoBounds, bool) {
	if len(locs) == 0 {
		return GeoBounds{}, false
	}
	b := NewGeoBounds(locs[0].Lat, locs[0].Lon, locs[0].Lat, locs[0].Lon)
	for _, l := range locs[1:] {
		b.ExpandToInclude(l)
	}
	return b, true
}

// Contains reports whether l lies inside or on the edge of b.
// Comparisons involving NaN are false, so NaN locations are never contained.
func (b GeoBounds) Contains(l Location) bool {
	return l.Lat >= b.MinLat && l.Lat <= b.MaxLat &&
		l.Lon >= b.MinLon && l.Lon <= b.MaxLon
}

// ExpandToInclude grows b so that it contains l.
func (b *GeoBounds) ExpandToInclude(l Location) {
	b.MinLat = min(b.MinLat, l.Lat)
	b.MaxLat = max(b.MaxLat, l.Lat)
	b.MinLon = min(b.MinLon, l.Lon)
	b.MaxLon = max(b.MaxLon, l.Lon)
}

// Intersects reports whether b and other share at least one point.
func (b GeoBounds) Intersects(other GeoBounds) bool {
	return b.MinLat <= other.MaxLat && b.MaxLat >= other.MinLat &&
		b.MinLon <= other.MaxLon && b.MaxLon >= other.MinLon
}

// Union returns the smallest rectangle containing b and other.
func (b GeoBounds) Union(other GeoBounds) GeoBounds {
	return NewGeoBounds(
		min(b.MinLat, other.MinLat),
		min(b.MinLon, other.MinLon),
		max(b.MaxLat, other.MaxLat),
		max(b.MaxLon, other.MaxLon),
	)
}

// Width is the longitude span in degrees.
func (b GeoBounds) Width() float64 { return b.MaxLon - b.MinLon }

// Height is the latitude span in degrees.
func (b GeoBounds) Height() float64 { return b.MaxLat - b.MinLat }

// Center returns the midpoint of the rectangle.
func (b GeoBounds) Center() Location {
	return NewLocation((b.MinLat+b.MaxLat)/2, (b.MinLon+b.MaxLon)/2)
}

// Validate reports ErrInvalidRange for inverted boxes and
// ErrInvalidCoordinate for corners outside WGS84.
func (b GeoBounds) Validate() error {
	if err := NewLocation(b.MinLat, b.MinLon).Validate(); err != nil {
		return err
	}
	if err := NewLocation(b.MaxLat, b.MaxLon).Validate(); err != nil {
		return err
	}
	if b.MinLat > b.MaxLat || b.MinLon > b.MaxLon {
		return fmt.Errorf("%w: bounds min (%v, %v) exceeds max (%v, %v)",
			ErrInvalidRange, b.MinLat, b.MinLon, b.MaxLat, b.MaxLon)
	}
	return nil
}

// TimeRange is a span of time. Both ends are inclusive.
type TimeRange struct {
	Start Timestamp
	End   Timestamp
}

// NewTimeRange returns the range [start, end].
func NewTimeRange(start, end Timestamp) TimeRange {
	return TimeRange{Start: start, End: end}
}

// Contains reports whether ts falls within the range, ends included.
func (r TimeRange) Contains(ts Timestamp) bool {
	return ts.Compare(r.Start) >= 0 && ts.Compare(r.End) <= 0
}

// Overlaps reports whether r and other share at least one instant.
func (r TimeRange) Overlaps(other TimeRange) bool {
	return r.Start.Compare(other.End) <= 0 && r.End.Compare(other.Start) >= 0
}

// Duration is End minus Start.
func (r TimeRange) Duration() time.Duration {
	return r.End.Time.Sub(r.Start.Time)
}

// Validate reports ErrInvalidRange when Start is after End.
func (r TimeRange) Validate() error {
	if r.Start.After(r.End) {
		return fmt.Errorf("%w: start %s after end %s", ErrInvalidRange, r.Start, r.End)
	}
	return nil
}
