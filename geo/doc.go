// Package geo defines the value types consumed by geochrono's indexes.
//
// The indexes never construct or validate these values on their own: they
// store them, compare them, and hand them back. Validation is available to
// callers that want a stricter contract through the Validate methods, which
// report ErrInvalidCoordinate or ErrInvalidRange.
//
// Coordinates are WGS84 degrees. Timestamps are UTC instants tagged with the
// precision they were recorded at; indexes key them by unix milliseconds.
package geo
