// Package queue provides the bounded heap used for exact k-nearest searches.
package queue

import (
	"container/heap"

	"github.com/hupe1980/geochrono/core"
)

// Candidate is a handle ranked by distance.
type Candidate struct {
	Handle   core.Handle
	Distance float64
}

// closer reports whether a ranks strictly before b.
// Equal distances fall back to the handle, so rankings are deterministic.
func closer(a, b Candidate) bool {
	if a.Distance != b.Distance {
		return a.Distance < b.Distance
	}
	return a.Handle < b.Handle
}

// TopK keeps the k closest candidates offered to it.
//
// It is a max-heap on distance: the root is the worst candidate held, so a
// new candidate either beats the root and replaces it or is dropped.
type TopK struct {
	k     int
	worst worstFirst
}

// NewTopK returns an empty TopK holding at most k candidates.
func NewTopK(k int) *TopK {
	k = max(k, 0)
	return &TopK{k: k, worst: make(worstFirst, 0, k)}
}

// Offer considers c and reports whether it was kept.
func (t *TopK) Offer(c Candidate) bool {
	if t.k == 0 {
		return false
	}
	if len(t.worst) < t.k {
		heap.Push(&t.worst, c)
		return true
	}
	if !closer(c, t.worst[0]) {
		return false
	}
	t.worst[0] = c
	heap.Fix(&t.worst, 0)
	return true
}

// Len returns the number of candidates held.
func (t *TopK) Len() int { return len(t.worst) }

// Drain empties t and returns its candidates, closest first.
func (t *TopK) Drain() []Candidate {
	out := make([]Candidate, len(t.worst))
	for i := len(out) - 1; i >= 0; i-- {
		out[i] = heap.Pop(&t.worst).(Candidate)
	}
	return out
}

// worstFirst orders candidates farthest first.
type worstFirst []Candidate

var _ heap.Interface = (*worstFirst)(nil)

func (w worstFirst) Len() int           { return len(w) }
func (w worstFirst) Less(i, j int) bool { return closer(w[j], w[i]) }
func (w worstFirst) Swap(i, j int)      { w[i], w[j] = w[j], w[i] }

func (w *worstFirst) Push(x any) { *w = append(*w, x.(Candidate)) }

func (w *worstFirst) Pop() any {
	old := *w
	n := len(old)
	c := old[n-1]
	*w = old[:n-1]
	return c
}
