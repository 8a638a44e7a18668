package geo

import (
	"fmt"
	"math"
)

// Location is a point on the earth's surface.
type Location struct {
	// Lat is the latitude in degrees, [-90, 90].
	Lat float64
	// Lon is the longitude in degrees, [-180, 180].
	Lon float64
	// Elevation in meters above sea level, if known.
	Elevation *float64
	// UncertaintyMeters is the radius of positional uncertainty, if known.
	UncertaintyMeters *float64
	// Name is an optional human-readable label.
	Name string
}

// NewLocation returns a Location at lat/lon with no optional fields set.
func NewLocation(lat, lon float64) Location {
	return Location{Lat: lat, Lon: lon}
}

// NewLocationWithElevation returns a Location carrying an elevation in meters.
func NewLocationWithElevation(lat, lon, elevation float64) Location {
	return Location{Lat: lat, Lon: lon, Elevation: &elevation}
}

// IsValid reports whether the coordinates are finite and within WGS84 range.
func (l Location) IsValid() bool {
	return l.Validate() == nil
}

// Validate returns ErrInvalidCoordinate (wrapped) if the location is not usable.
func (l Location) Validate() error {
	if math.IsNaN(l.Lat) || math.IsInf(l.Lat, 0) || l.Lat < -90 || l.Lat > 90 {
		return fmt.Errorf("%w: latitude %v", ErrInvalidCoordinate, l.Lat)
	}
	if math.IsNaN(l.Lon) || math.IsInf(l.Lon, 0) || l.Lon < -180 || l.Lon > 180 {
		return fmt.Errorf("%w: longitude %v", ErrInvalidCoordinate, l.Lon)
	}
	return nil
}

// IsFinite reports whether both coordinates are finite numbers.
func (l Location) IsFinite() bool {
	return !math.IsNaN(l.Lat) && !math.IsInf(l.Lat, 0) &&
		!math.IsNaN(l.Lon) && !math.IsInf(l.Lon, 0)
}

// String returns "(lat, lon)" with the name prefixed when present.
func (l Location) String() string {
	if l.Name != "" {
		return fmt.Sprintf("%s (%.6f, %.6f)", l.Name, l.Lat, l.Lon)
	}
	return fmt.Sprintf("(%.6f, %.6f)", l.Lat, l.Lon)
}
