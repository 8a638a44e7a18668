package temporal

import "github.com/hupe1980/geochrono/core"

// Backend is an ordered map from millisecond key to a bucket of handles.
//
// Buckets hold handles in insertion order. Iteration callbacks receive the
// live bucket slice and must not retain or modify it.
type Backend interface {
	// Append adds h to the end of the bucket for key, creating it if needed.
	Append(key int64, h core.Handle)

	// AscendRange calls fn for every bucket with from <= key <= to in
	// ascending key order until fn returns false.
	AscendRange(from, to int64, fn func(key int64, hs []core.Handle) bool)

	// Ascend calls fn for every bucket in ascending key order.
	Ascend(fn func(key int64, hs []core.Handle) bool)

	// Descend calls fn for every bucket in descending key order.
	Descend(fn func(key int64, hs []core.Handle) bool)

	// Min returns the bucket with the smallest key.
	Min() (int64, []core.Handle, bool)

	// Max returns the bucket with the largest key.
	Max() (int64, []core.Handle, bool)

	// Ceiling returns the smallest key >= key.
	Ceiling(key int64) (int64, bool)

	// Len returns the number of buckets.
	Len() int
}
