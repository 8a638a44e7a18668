package geo

import "math"

const (
	// EarthRadiusMeters is the mean earth radius used by Haversine.
	EarthRadiusMeters = 6_371_000.0

	// MetersPerDegreeLat is the length of one degree of latitude.
	// Indexes use it to turn a meter radius into a degree radius.
	MetersPerDegreeLat = 111_320.0
)

// Haversine returns the great-circle distance in meters between two points.
func Haversine(lat1, lon1, lat2, lon2 float64) float64 {
	dLat := (lat2 - lat1) * math.Pi / 180
	dLon := (lon2 - lon1) * math.Pi / 180
	a := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(lat1*math.Pi/180)*math.Cos(lat2*math.Pi/180)*math.Sin(dLon/2)*math.Sin(dLon/2)
	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))
	return EarthRadiusMeters * c
}

// DistanceMeters returns the great-circle distance between l and other.
func (l Location) DistanceMeters(other Location) float64 {
	return Haversine(l.Lat, l.Lon, other.Lat, other.Lon)
}

// DegreeDistance2 returns the squared planar distance in degree space.
// This is the metric the spatial index ranks by; it is not geodesic.
func DegreeDistance2(lat1, lon1, lat2, lon2 float64) float64 {
	dLat := lat1 - lat2
	dLon := lon1 - lon2
	return dLat*dLat + dLon*dLon
}
