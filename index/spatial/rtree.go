package spatial

import (
	"math"

	"github.com/dhconnelly/rtreego"
	"github.com/hupe1980/geochrono/geo"
)

const (
	// DefaultMinChildren is the default minimum fan-out of an R-tree node.
	DefaultMinChildren = 25

	// DefaultMaxChildren is the default maximum fan-out of an R-tree node.
	DefaultMaxChildren = 50

	// searchPad widens query rectangles before they reach the tree.
	// rtreego treats touching rectangles as disjoint, so a point lying exactly
	// on a query edge would otherwise be missed. Results are filtered exactly
	// afterwards.
	searchPad = 1e-9
)

// Compile time check to ensure RTree satisfies the Backend interfaces.
var (
	_ Backend    = (*RTree)(nil)
	_ BulkLoader = (*RTree)(nil)
)

// rtreeEntry adapts an Entry to rtreego.Spatial.
type rtreeEntry struct {
	Entry
	bb rtreego.Rect
}

func newRTreeEntry(e Entry) *rtreeEntry {
	return &rtreeEntry{
		Entry: e,
		bb:    rtreego.Point{e.Lon, e.Lat}.ToRect(0),
	}
}

// Bounds implements rtreego.Spatial.
func (e *rtreeEntry) Bounds() rtreego.Rect { return e.bb }

// RTree is a Backend built on a two dimensional rtreego tree.
// Non-finite entries are held outside the tree.
type RTree struct {
	tree        *rtreego.Rtree
	minChildren int
	maxChildren int
	nonFinite   int
}

// NewRTree creates an empty R-tree backend.
// Out of range fan-out values are replaced: maxChildren falls back to
// DefaultMaxChildren when below 4 and minChildren is clamped to
// [1, maxChildren/2].
func NewRTree(minChildren, maxChildren int) *RTree {
	if maxChildren < 4 {
		maxChildren = DefaultMaxChildren
	}
	if minChildren < 1 {
		minChildren = 1
	}
	if minChildren > maxChildren/2 {
		minChildren = maxChildren / 2
	}
	return &RTree{
		tree:        rtreego.NewTree(2, minChildren, maxChildren),
		minChildren: minChildren,
		maxChildren: maxChildren,
	}
}

// NodeCapacity returns the effective fan-out bounds.
func (t *RTree) NodeCapacity() (minChildren, maxChildren int) {
	return t.minChildren, t.maxChildren
}

// Insert adds an entry.
func (t *RTree) Insert(e Entry) {
	if !e.Finite() {
		t.nonFinite++
		return
	}
	t.tree.Insert(newRTreeEntry(e))
}

// BulkLoad builds the tree from entries with the overlap minimizing top-down
// algorithm. On a non-empty tree it falls back to Insert.
func (t *RTree) BulkLoad(entries []Entry) {
	if t.tree.Size() > 0 {
		for _, e := range entries {
			t.Insert(e)
		}
		return
	}

	objs := make([]rtreego.Spatial, 0, len(entries))
	for _, e := range entries {
		if !e.Finite() {
			t.nonFinite++
			continue
		}
		objs = append(objs, newRTreeEntry(e))
	}
	t.tree = rtreego.NewTree(2, t.minChildren, t.maxChildren, objs...)
}

// Search calls fn for every entry inside the closed rectangle.
func (t *RTree) Search(minLat, minLon, maxLat, maxLon float64, fn func(Entry) bool) {
	if t.tree.Size() == 0 {
		return
	}
	bb, err := paddedRect(minLat, minLon, maxLat, maxLon)
	if err != nil {
		return
	}

	t.search(bb, func(e Entry) (bool, bool) {
		if !e.inBox(minLat, minLon, maxLat, maxLon) {
			return false, true
		}
		return true, fn(e)
	})
}

// Within calls fn for every entry within radius of (lat, lon).
func (t *RTree) Within(lat, lon, radius float64, fn func(Entry) bool) {
	if t.tree.Size() == 0 || !searchableRadius(lat, lon, radius) {
		return
	}
	bb, err := paddedRect(lat-radius, lon-radius, lat+radius, lon+radius)
	if err != nil {
		return
	}

	r2 := radius * radius
	t.search(bb, func(e Entry) (bool, bool) {
		d := geo.DegreeDistance2(e.Lat, e.Lon, lat, lon)
		if d > r2 {
			return false, true
		}
		return true, fn(e)
	})
}

// search walks the candidates of bb. visit reports whether the entry matched
// and whether the walk should continue.
func (t *RTree) search(bb rtreego.Rect, visit func(Entry) (matched, more bool)) {
	stopped := false
	t.tree.SearchIntersect(bb, func(_ []rtreego.Spatial, obj rtreego.Spatial) (bool, bool) {
		// abort only unwinds the current leaf in rtreego, so the flag
		// suppresses callbacks for the rest of the walk.
		if stopped {
			return true, true
		}
		if _, more := visit(obj.(*rtreeEntry).Entry); !more {
			stopped = true
			return true, true
		}
		// Matches are streamed to the caller, never collected.
		return true, false
	})
}

// Nearest returns up to k entries ordered by ascending planar distance.
func (t *RTree) Nearest(lat, lon float64, k int) []Entry {
	if k <= 0 || t.tree.Size() == 0 || math.IsNaN(lat) || math.IsNaN(lon) {
		return nil
	}
	objs := t.tree.NearestNeighbors(k, rtreego.Point{lon, lat})

	out := make([]Entry, 0, len(objs))
	for _, obj := range objs {
		out = append(out, obj.(*rtreeEntry).Entry)
	}
	return out
}

// Len returns the number of inserted entries, including non-finite ones.
func (t *RTree) Len() int {
	return t.tree.Size() + t.nonFinite
}

// Depth returns the height of the tree.
func (t *RTree) Depth() int {
	return t.tree.Depth()
}

func paddedRect(minLat, minLon, maxLat, maxLon float64) (rtreego.Rect, error) {
	lo := rtreego.Point{
		math.Nextafter(minLon-searchPad, math.Inf(-1)),
		math.Nextafter(minLat-searchPad, math.Inf(-1)),
	}
	hi := rtreego.Point{
		math.Nextafter(maxLon+searchPad, math.Inf(1)),
		math.Nextafter(maxLat+searchPad, math.Inf(1)),
	}
	return rtreego.NewRectFromPoints(lo, hi)
}
