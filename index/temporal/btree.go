package temporal

import (
	"github.com/google/btree"
	"github.com/hupe1980/geochrono/core"
)

// DefaultDegree is the default B-tree degree.
const DefaultDegree = 32

// Compile time check to ensure BTree satisfies the Backend interface.
var _ Backend = (*BTree)(nil)

type bucket struct {
	key     int64
	handles []core.Handle
}

func bucketLess(a, b *bucket) bool { return a.key < b.key }

// BTree is a Backend built on a generic B-tree.
type BTree struct {
	tree   *btree.BTreeG[*bucket]
	degree int
}

// NewBTree creates an empty B-tree backend.
// A degree below 2 falls back to DefaultDegree.
func NewBTree(degree int) *BTree {
	if degree < 2 {
		degree = DefaultDegree
	}
	return &BTree{
		tree:   btree.NewG(degree, bucketLess),
		degree: degree,
	}
}

// Degree returns the effective degree.
func (t *BTree) Degree() int {
	return t.degree
}

// Append adds h to the bucket for key.
func (t *BTree) Append(key int64, h core.Handle) {
	if b, ok := t.tree.Get(t.at(key)); ok {
		b.handles = append(b.handles, h)
		return
	}
	t.tree.ReplaceOrInsert(&bucket{key: key, handles: []core.Handle{h}})
}

// AscendRange visits buckets with from <= key <= to.
func (t *BTree) AscendRange(from, to int64, fn func(int64, []core.Handle) bool) {
	if from > to {
		return
	}
	t.tree.AscendGreaterOrEqual(t.at(from), func(b *bucket) bool {
		if b.key > to {
			return false
		}
		return fn(b.key, b.handles)
	})
}

// Ascend visits every bucket in ascending key order.
func (t *BTree) Ascend(fn func(int64, []core.Handle) bool) {
	t.tree.Ascend(func(b *bucket) bool {
		return fn(b.key, b.handles)
	})
}

// Descend visits every bucket in descending key order.
func (t *BTree) Descend(fn func(int64, []core.Handle) bool) {
	t.tree.Descend(func(b *bucket) bool {
		return fn(b.key, b.handles)
	})
}

// Min returns the bucket with the smallest key.
func (t *BTree) Min() (int64, []core.Handle, bool) {
	b, ok := t.tree.Min()
	if !ok {
		return 0, nil, false
	}
	return b.key, b.handles, true
}

// Max returns the bucket with the largest key.
func (t *BTree) Max() (int64, []core.Handle, bool) {
	b, ok := t.tree.Max()
	if !ok {
		return 0, nil, false
	}
	return b.key, b.handles, true
}

// Ceiling returns the smallest key >= key.
func (t *BTree) Ceiling(key int64) (int64, bool) {
	var (
		found int64
		ok    bool
	)
	t.tree.AscendGreaterOrEqual(t.at(key), func(b *bucket) bool {
		found, ok = b.key, true
		return false
	})
	return found, ok
}

// Len returns the number of buckets.
func (t *BTree) Len() int {
	return t.tree.Len()
}

// at returns a search pivot for key.
func (t *BTree) at(key int64) *bucket {
	return &bucket{key: key}
}
