package geochrono

import (
	"errors"
	"fmt"

	"github.com/hupe1980/geochrono/geo"
)

var (
	// ErrInvalidCoordinate is returned when a latitude or longitude is out of
	// range or not a number.
	ErrInvalidCoordinate = geo.ErrInvalidCoordinate

	// ErrInvalidRange is returned for inverted bounds or time ranges.
	ErrInvalidRange = geo.ErrInvalidRange

	// ErrInvalidConfig is returned when a Config fails validation.
	ErrInvalidConfig = errors.New("invalid config")
)

// InsertError reports an item TryInsert refused.
//
// The original underlying error can be accessed via errors.Unwrap.
type InsertError struct {
	Location  geo.Location
	Timestamp geo.Timestamp
	cause     error
}

func (e *InsertError) Error() string {
	return fmt.Sprintf("insert at %s (%s): %v", e.Location, e.Timestamp, e.cause)
}

func (e *InsertError) Unwrap() error { return e.cause }
