package bitmap

import (
	"iter"

	"github.com/RoaringBitmap/roaring/v2"
	"github.com/hupe1980/geochrono/core"
)

// HandleSet is a set of item handles backed by a 32-bit Roaring Bitmap.
// It is used to hold the candidate set of a single-dimension query so that
// candidate sets from different dimensions can be intersected.
type HandleSet struct {
	rb *roaring.Bitmap
}

// NewHandleSet creates a new empty handle set.
func NewHandleSet() *HandleSet {
	return &HandleSet{
		rb: roaring.New(),
	}
}

// HandleSetOf creates a handle set holding hs.
func HandleSetOf(hs ...core.Handle) *HandleSet {
	s := NewHandleSet()
	for _, h := range hs {
		s.Add(h)
	}
	return s
}

// Add adds a handle to the set.
func (s *HandleSet) Add(h core.Handle) {
	s.rb.Add(uint32(h))
}

// Contains checks if a handle is in the set.
func (s *HandleSet) Contains(h core.Handle) bool {
	return s.rb.Contains(uint32(h))
}

// IsEmpty returns true if the set is empty.
func (s *HandleSet) IsEmpty() bool {
	return s.rb.IsEmpty()
}

// Cardinality returns the number of handles in the set.
func (s *HandleSet) Cardinality() uint64 {
	return s.rb.GetCardinality()
}

// Intersect returns a new set holding the handles present in both a and b.
func Intersect(a, b *HandleSet) *HandleSet {
	return &HandleSet{
		rb: roaring.And(a.rb, b.rb),
	}
}

// Handles returns an iterator over the set in ascending handle order.
func (s *HandleSet) Handles() iter.Seq[core.Handle] {
	return func(yield func(core.Handle) bool) {
		it := s.rb.Iterator()
		for it.HasNext() {
			if !yield(core.Handle(it.Next())) {
				return
			}
		}
	}
}
