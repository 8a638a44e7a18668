package geo

import "errors"

var (
	// ErrInvalidCoordinate is returned when a latitude or longitude is NaN,
	// infinite, or outside the WGS84 range.
	ErrInvalidCoordinate = errors.New("invalid coordinate")

	// ErrInvalidRange is returned when a bounds box or time range has its
	// minimum after its maximum.
	ErrInvalidRange = errors.New("invalid range")
)
