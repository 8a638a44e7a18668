// Package spatial indexes items by geographic coordinate.
//
// An Index stores items in an append-only arena and keeps (coordinate, handle)
// entries in a Backend. Two backends are provided:
//
//   - RTree: an R-tree built on github.com/dhconnelly/rtreego. Default.
//   - Flat: an exhaustive scan. Exact, slower, useful as a reference.
//
// Coordinates are treated as planar points in degree space with X = longitude
// and Y = latitude. Radius and nearest queries rank by Euclidean distance in
// degrees, which is not geodesic. Use QueryRadiusMeters for a conservative
// meter radius.
//
// Coordinates are not validated. Entries with a NaN or infinite component are
// counted but never match a query.
//
// Example:
//
//	idx := spatial.New[string]()
//	idx.Insert("NYC", geo.NewLocation(40.7128, -74.0060))
//	idx.Insert("LA", geo.NewLocation(34.0522, -118.2437))
//	hits := idx.QueryBBox(40, -75, 41, -73) // ["NYC"]
package spatial
