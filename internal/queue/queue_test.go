package queue

import (
	"testing"

	"github.com/hupe1980/geochrono/core"
	"github.com/hupe1980/geochrono/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTopK(t *testing.T) {
	t.Run("KeepsKClosest", func(t *testing.T) {
		top := NewTopK(3)
		for i, d := range []float64{9, 4, 7, 1, 8, 2, 6} {
			top.Offer(Candidate{Handle: core.Handle(i), Distance: d})
		}

		got := top.Drain()
		assert.Equal(t, []float64{1, 2, 4}, distances(got))
		assert.Equal(t, 0, top.Len())
	})

	t.Run("TiesPreferLowerHandle", func(t *testing.T) {
		top := NewTopK(2)
		for _, h := range []core.Handle{5, 1, 3, 0} {
			top.Offer(Candidate{Handle: h, Distance: 1})
		}
		assert.Equal(t, []core.Handle{0, 1}, handles(top.Drain()))
	})

	t.Run("OfferReportsKept", func(t *testing.T) {
		top := NewTopK(1)
		assert.True(t, top.Offer(Candidate{Handle: 1, Distance: 5}))
		assert.False(t, top.Offer(Candidate{Handle: 2, Distance: 6}))
		assert.True(t, top.Offer(Candidate{Handle: 3, Distance: 4}))
		assert.Equal(t, []core.Handle{3}, handles(top.Drain()))
	})

	t.Run("ZeroK", func(t *testing.T) {
		for _, k := range []int{0, -3} {
			top := NewTopK(k)
			assert.False(t, top.Offer(Candidate{Handle: 1}))
			assert.Equal(t, 0, top.Len())
			assert.Empty(t, top.Drain())
		}
	})

	t.Run("MatchesSort", func(t *testing.T) {
		rng := testutil.NewRNG(7)
		const n, k = 500, 25

		top := NewTopK(k)
		all := make([]float64, n)
		for i := range all {
			all[i] = float64(rng.Intn(100))
			top.Offer(Candidate{Handle: core.Handle(i), Distance: all[i]})
		}

		got := top.Drain()
		require.Len(t, got, k)
		for i := 1; i < len(got); i++ {
			assert.False(t, closer(got[i], got[i-1]), "position %d out of order", i)
		}

		// Every dropped candidate ranks after the last one kept.
		kept := make(map[core.Handle]bool, k)
		for _, c := range got {
			kept[c.Handle] = true
		}
		last := got[len(got)-1]
		for i, d := range all {
			if !kept[core.Handle(i)] {
				assert.False(t, closer(Candidate{Handle: core.Handle(i), Distance: d}, last))
			}
		}
	})
}

func distances(cs []Candidate) []float64 {
	out := make([]float64, len(cs))
	for i, c := range cs {
		out[i] = c.Distance
	}
	return out
}

func handles(cs []Candidate) []core.Handle {
	out := make([]core.Handle, len(cs))
	for i, c := range cs {
		out[i] = c.Handle
	}
	return out
}
