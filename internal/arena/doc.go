// Package arena provides an append-only item store addressed by core.Handle.
//
// Handles are issued in insertion order and never reused; there is no delete
// or update. Sub-indexes keep handles only, so an arena is the single owner
// of the items it holds.
//
// The arena is not safe for concurrent mutation. Concurrent readers are fine
// as long as no Append runs at the same time.
package arena
