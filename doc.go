// Package geochrono provides embedded spatial, temporal and spatiotemporal
// indexes for Go.
//
// geochrono indexes a growing collection of items that each carry a
// geographic coordinate and a timestamp. It answers bounding-box, radius,
// nearest-neighbour, time-range and combined space-time queries and
// aggregates stored locations onto heatmap grids.
//
// # Packages
//
//   - geo: Location, Timestamp, GeoBounds and TimeRange value types.
//   - index/spatial: coordinate index with R-tree and flat backends.
//   - index/temporal: timestamp index on a B-tree with sliding windows.
//   - geochrono (this package): SpatiotemporalIndex, GridSpec and Heatmap.
//   - metrics/prometheus: MetricsCollector backed by Prometheus.
//
// # Quick Start
//
//	idx := geochrono.New[string]()
//	idx.Insert("NYC", geo.NewLocation(40.7128, -74.0060), geo.MustParseTimestamp("2024-01-15"))
//	idx.Insert("LA", geo.NewLocation(34.0522, -118.2437), geo.MustParseTimestamp("2024-02-01"))
//
//	january := geo.NewTimeRange(
//	    geo.MustParseTimestamp("2024-01-01"),
//	    geo.MustParseTimestamp("2024-01-31"),
//	)
//	hits := idx.Query(geo.NewGeoBounds(40, -75, 41, -73), january) // ["NYC"]
//
// # Heatmaps
//
//	bounds, _ := idx.Bounds()
//	hm := idx.Heatmap(geochrono.SquareCells(bounds, 100))
//	fmt.Println(hm.MaxCount(), hm.ToGrid())
//
// # Distances
//
// Radius and nearest queries measure planar Euclidean distance in degrees,
// treating longitude as X and latitude as Y. This is fast and adequate for
// ranking at city scale but is not geodesic. geo.Haversine gives the
// great-circle distance when exact meters matter.
//
// # Concurrency
//
// Indexes are not safe for concurrent mutation. Any number of goroutines
// may query an index while no goroutine inserts into it.
//
// # Observability
//
// Every query reports its kind, result count and latency to the configured
// MetricsCollector and logs at debug level through the configured Logger.
// Both default to no-ops.
package geochrono
