// Package temporal indexes items by timestamp.
//
// Timestamps are keyed by their Unix millisecond value. Items sharing a key
// form a bucket and keep their insertion order, so every traversal is
// deterministic: ascending key, then insertion order within a key.
//
// The default Backend is a B-tree from github.com/google/btree.
//
// Example:
//
//	idx := temporal.New[string]()
//	idx.Insert("launch", geo.MustParseTimestamp("2024-03-01"))
//	idx.Insert("landing", geo.MustParseTimestamp("2024-03-04"))
//
//	for window := range idx.SlidingWindow(24 * time.Hour).All() {
//		fmt.Println(window)
//	}
package temporal
