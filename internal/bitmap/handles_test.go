package bitmap

import (
	"slices"
	"testing"

	"github.com/hupe1980/geochrono/core"
	"github.com/stretchr/testify/assert"
)

func TestHandleSet(t *testing.T) {
	t.Run("AddContains", func(t *testing.T) {
		s := NewHandleSet()
		assert.True(t, s.IsEmpty())

		s.Add(3)
		s.Add(70000)
		s.Add(3)

		assert.False(t, s.IsEmpty())
		assert.Equal(t, uint64(2), s.Cardinality())
		assert.True(t, s.Contains(3))
		assert.True(t, s.Contains(70000))
		assert.False(t, s.Contains(4))
	})

	t.Run("Intersect", func(t *testing.T) {
		a := HandleSetOf(1, 2, 3, 4)
		b := HandleSetOf(3, 4, 5)

		got := Intersect(a, b)
		assert.Equal(t, []core.Handle{3, 4}, slices.Collect(got.Handles()))

		// inputs are untouched
		assert.Equal(t, uint64(4), a.Cardinality())
		assert.Equal(t, uint64(3), b.Cardinality())
	})

	t.Run("IntersectDisjoint", func(t *testing.T) {
		got := Intersect(HandleSetOf(1, 2), HandleSetOf(5, 70000))
		assert.True(t, got.IsEmpty())
	})

	t.Run("HandlesStopsEarly", func(t *testing.T) {
		s := HandleSetOf(1, 2, 3)
		var got []core.Handle
		for h := range s.Handles() {
			got = append(got, h)
			if len(got) == 2 {
				break
			}
		}
		assert.Equal(t, []core.Handle{1, 2}, got)
	})
}
