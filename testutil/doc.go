// Package testutil provides testing utilities for geochrono.
//
// This package is intended for use in tests and benchmarks only.
// It provides seeded generators for locations and timestamps and
// brute-force reference implementations of the index queries.
//
// # Random Data
//
//	rng := testutil.NewRNG(seed)
//	locs := rng.Locations(1000, geo.WorldBounds())
//	ts := rng.Timestamps(1000, start, 24*time.Hour)
//
// # Reference Queries
//
//	want := testutil.BruteForceBBox(locs, minLat, minLon, maxLat, maxLon)
//	near := testutil.BruteForceNearest(locs, lat, lon, k)
//
// Reference queries return positions into the input slice, which match the
// handles an index assigns when the same slice is inserted in order.
package testutil
