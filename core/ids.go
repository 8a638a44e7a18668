// Package core holds identifier types shared by every index in geochrono.
package core

// Handle is a dense identifier for an indexed item.
// It is the position of the item in its append-only store and is strictly
// 32-bit, allowing for max 4 Billion items per index.
// Invariant: Never reused. There is no delete, so handles stay valid for the
// lifetime of the index that issued them.
type Handle uint32

// MaxHandle is the maximum possible value for a Handle.
const MaxHandle = ^Handle(0)
