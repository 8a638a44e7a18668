package arena

import "github.com/hupe1980/geochrono/core"

// Arena is an append-only store of T addressed by core.Handle.
type Arena[T any] struct {
	items []T
}

// New creates an empty Arena.
func New[T any]() *Arena[T] {
	return &Arena[T]{}
}

// NewWithCapacity creates an empty Arena with room for n items.
func NewWithCapacity[T any](n int) *Arena[T] {
	return &Arena[T]{items: make([]T, 0, n)}
}

// Append stores v and returns its handle.
func (a *Arena[T]) Append(v T) core.Handle {
	if uint64(len(a.items)) > uint64(core.MaxHandle) {
		panic("arena: handle space exhausted")
	}
	h := core.Handle(len(a.items))
	a.items = append(a.items, v)
	return h
}

// Get returns the item stored under h.
// Returns zero value if h was never issued by this arena.
func (a *Arena[T]) Get(h core.Handle) (T, bool) {
	if int(h) >= len(a.items) {
		var zero T
		return zero, false
	}
	return a.items[h], true
}

// At returns the item stored under h and panics if h is out of range.
// Use it on hot paths where h came from an index over this arena.
func (a *Arena[T]) At(h core.Handle) T {
	return a.items[h]
}

// Len returns the number of stored items.
func (a *Arena[T]) Len() int {
	return len(a.items)
}

// View returns the stored items in handle order without copying.
// The capacity is clipped so appending to the view never writes into the
// arena; callers must not modify elements.
func (a *Arena[T]) View() []T {
	return a.items[:len(a.items):len(a.items)]
}

// Resolve maps handles to their items, preserving order.
func (a *Arena[T]) Resolve(hs []core.Handle) []T {
	out := make([]T, 0, len(hs))
	for _, h := range hs {
		out = append(out, a.items[h])
	}
	return out
}
