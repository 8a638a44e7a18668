// Package bitmap holds candidate handle sets for multi-dimension queries.
//
// A combined query evaluates each dimension on its own, collects the matching
// handles into a HandleSet and intersects the sets. HandleSet is backed by a
// 32-bit Roaring bitmap, which stays compact for both sparse and dense
// results and iterates in ascending handle order.
//
// # Example Usage
//
//	inSpace := bitmap.HandleSetOf(spatialHits...)
//	inTime := bitmap.HandleSetOf(temporalHits...)
//
//	for h := range bitmap.Intersect(inSpace, inTime).Handles() {
//	    // h matched both dimensions
//	}
package bitmap
