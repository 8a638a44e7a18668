package geochrono

import (
	"fmt"
	"math"
	"time"

	"github.com/hupe1980/geochrono/core"
	"github.com/hupe1980/geochrono/geo"
	"github.com/hupe1980/geochrono/index/spatial"
	"github.com/hupe1980/geochrono/index/temporal"
	"github.com/hupe1980/geochrono/internal/arena"
	"github.com/hupe1980/geochrono/internal/bitmap"
	"golang.org/x/sync/errgroup"
)

// SpatiotemporalIndex stores items that carry both a location and a
// timestamp and answers combined space and time queries.
//
// The index owns the items. Its spatial and temporal sub-indexes hold
// handles into the item store, so every item is stored exactly once.
type SpatiotemporalIndex[T any] struct {
	items     *arena.Arena[T]
	locations *arena.Arena[geo.Location]
	spatial   *spatial.Index[core.Handle]
	temporal  *temporal.Index[core.Handle]

	bounds    geo.GeoBounds
	hasBounds bool

	overfetch int
	logger    *Logger
	metrics   MetricsCollector
}

// New creates an empty SpatiotemporalIndex.
func New[T any](optFns ...Option) *SpatiotemporalIndex[T] {
	o := applyOptions(optFns)
	return &SpatiotemporalIndex[T]{
		items:     arena.New[T](),
		locations: arena.New[geo.Location](),
		spatial:   spatial.New[core.Handle](o.spatialOptions()...),
		temporal:  temporal.New[core.Handle](o.temporalOptions()...),
		overfetch: o.overfetch,
		logger:    o.logger,
		metrics:   o.metricsCollector,
	}
}

// FromItems builds a SpatiotemporalIndex holding items in one pass.
// The spatial side is bulk loaded when its backend supports it. The spatial
// and temporal sides are built concurrently, so ts runs on its own goroutine.
// A panic in ts or in either build is re-raised on the calling goroutine.
func FromItems[T any](items []T, loc func(T) geo.Location, ts func(T) geo.Timestamp, optFns ...Option) *SpatiotemporalIndex[T] {
	start := time.Now()
	o := applyOptions(optFns)

	idx := &SpatiotemporalIndex[T]{
		items:     arena.NewWithCapacity[T](len(items)),
		locations: arena.NewWithCapacity[geo.Location](len(items)),
		overfetch: o.overfetch,
		logger:    o.logger,
		metrics:   o.metricsCollector,
	}

	handles := make([]core.Handle, 0, len(items))
	for _, item := range items {
		l := loc(item)
		h := idx.items.Append(item)
		idx.locations.Append(l)
		idx.expandBounds(l)
		handles = append(handles, h)
	}

	// The sub-indexes share nothing but read-only arenas; build them in parallel.
	var g errgroup.Group
	g.Go(func() (err error) {
		defer recoverBuild("spatial", &err)
		idx.spatial = spatial.FromItems(handles, idx.locations.At, o.spatialOptions()...)
		return nil
	})
	g.Go(func() (err error) {
		defer recoverBuild("temporal", &err)
		idx.temporal = temporal.FromItems(handles, func(h core.Handle) geo.Timestamp {
			return ts(idx.items.At(h))
		}, o.temporalOptions()...)
		return nil
	})
	if err := g.Wait(); err != nil {
		// Re-raise on the caller's goroutine so it can be recovered there.
		panic(err)
	}

	elapsed := time.Since(start)
	idx.metrics.RecordBulkLoad(len(items), elapsed)
	idx.logger.LogBulkLoad(len(items), elapsed)
	return idx
}

// Insert adds item at loc and ts and returns its handle.
// Coordinates are not validated; see TryInsert.
func (idx *SpatiotemporalIndex[T]) Insert(item T, loc geo.Location, ts geo.Timestamp) core.Handle {
	start := time.Now()

	h := idx.items.Append(item)
	idx.locations.Append(loc)
	idx.spatial.Insert(h, loc)
	idx.temporal.Insert(h, ts)
	idx.expandBounds(loc)

	idx.metrics.RecordInsert(time.Since(start), nil)
	idx.logger.LogInsert(h, nil)
	return h
}

// TryInsert is Insert with coordinate validation. It returns an
// *InsertError wrapping ErrInvalidCoordinate when loc is outside the WGS84
// range or not finite; the item is not stored in that case.
func (idx *SpatiotemporalIndex[T]) TryInsert(item T, loc geo.Location, ts geo.Timestamp) (core.Handle, error) {
	if err := loc.Validate(); err != nil {
		err = &InsertError{Location: loc, Timestamp: ts, cause: err}
		idx.metrics.RecordInsert(0, err)
		idx.logger.LogInsert(0, err)
		return 0, err
	}
	return idx.Insert(item, loc, ts), nil
}

// Query returns items inside b whose timestamp lies in r.
//
// Both dimensions are evaluated in full and the candidate sets intersected,
// so the result holds exactly the items returned by both QuerySpatial(b) and
// QueryTemporal(r). Results come back in insertion order.
func (idx *SpatiotemporalIndex[T]) Query(b geo.GeoBounds, r geo.TimeRange) []T {
	start := time.Now()

	inSpace := bitmap.HandleSetOf(idx.spatial.QueryBounds(b)...)
	inTime := bitmap.HandleSetOf(idx.temporal.QueryRange(r)...)
	out := idx.resolveSet(bitmap.Intersect(inSpace, inTime))

	idx.record(KindSpatiotemporal, len(out), start)
	return out
}

// QuerySpatial returns items inside b, ignoring time.
func (idx *SpatiotemporalIndex[T]) QuerySpatial(b geo.GeoBounds) []T {
	start := time.Now()
	out := idx.resolve(idx.spatial.QueryBounds(b))
	idx.record(KindSpatial, len(out), start)
	return out
}

// QueryTemporal returns items whose timestamp lies in r, ignoring location.
// Results are ordered by timestamp and then insertion.
func (idx *SpatiotemporalIndex[T]) QueryTemporal(r geo.TimeRange) []T {
	start := time.Now()
	out := idx.resolve(idx.temporal.QueryRange(r))
	idx.record(KindTemporal, len(out), start)
	return out
}

// NearestInRange returns up to k items nearest to (lat, lon) whose
// timestamp lies in r, nearest first.
//
// Only the overfetch*k spatially nearest items are considered, so fewer than
// k items may come back even when more qualify. Raise the factor with
// WithNearestOverfetch when time ranges are narrow.
func (idx *SpatiotemporalIndex[T]) NearestInRange(lat, lon float64, k int, r geo.TimeRange) []T {
	start := time.Now()
	if k <= 0 {
		idx.record(KindNearestInRange, 0, start)
		return nil
	}

	inTime := bitmap.HandleSetOf(idx.temporal.QueryRange(r)...)
	if inTime.IsEmpty() {
		idx.record(KindNearestInRange, 0, start)
		return nil
	}

	fetch := idx.items.Len()
	if k <= math.MaxInt/idx.overfetch {
		fetch = min(k*idx.overfetch, fetch)
	}

	var out []T
	for _, h := range idx.spatial.Nearest(lat, lon, fetch) {
		if !inTime.Contains(h) {
			continue
		}
		out = append(out, idx.items.At(h))
		if len(out) == k {
			break
		}
	}

	idx.record(KindNearestInRange, len(out), start)
	return out
}

// Bounds returns the smallest box holding every finite location.
// Returns false if there is none.
func (idx *SpatiotemporalIndex[T]) Bounds() (geo.GeoBounds, bool) {
	return idx.bounds, idx.hasBounds
}

// TimeRange returns the span from the earliest to the latest timestamp.
// Returns false if the index is empty.
func (idx *SpatiotemporalIndex[T]) TimeRange() (geo.TimeRange, bool) {
	return idx.temporal.TimeRange()
}

// Heatmap counts stored locations per cell of g.
func (idx *SpatiotemporalIndex[T]) Heatmap(g GridSpec) *Heatmap {
	start := time.Now()
	hm := NewHeatmap(g, idx.locations.View())
	idx.record(KindHeatmap, hm.Total(), start)
	return hm
}

// Get returns the item stored under h.
func (idx *SpatiotemporalIndex[T]) Get(h core.Handle) (T, bool) {
	return idx.items.Get(h)
}

// Location returns the location stored under h.
func (idx *SpatiotemporalIndex[T]) Location(h core.Handle) (geo.Location, bool) {
	return idx.locations.Get(h)
}

// Timestamp returns the timestamp stored under h.
func (idx *SpatiotemporalIndex[T]) Timestamp(h core.Handle) (geo.Timestamp, bool) {
	return idx.temporal.Timestamp(h)
}

// Len returns the number of inserted items.
func (idx *SpatiotemporalIndex[T]) Len() int {
	return idx.items.Len()
}

// IsEmpty reports whether nothing has been inserted.
func (idx *SpatiotemporalIndex[T]) IsEmpty() bool {
	return idx.items.Len() == 0
}

// Items returns every item in insertion order. The slice must not be modified.
func (idx *SpatiotemporalIndex[T]) Items() []T {
	return idx.items.View()
}

// recoverBuild turns a panic in a sub-index build into an error.
func recoverBuild(side string, err *error) {
	if r := recover(); r != nil {
		*err = fmt.Errorf("geochrono: building %s index: %v", side, r)
	}
}

func (idx *SpatiotemporalIndex[T]) expandBounds(l geo.Location) {
	if !l.IsFinite() {
		return
	}
	if !idx.hasBounds {
		idx.bounds = geo.NewGeoBounds(l.Lat, l.Lon, l.Lat, l.Lon)
		idx.hasBounds = true
		return
	}
	idx.bounds.ExpandToInclude(l)
}

func (idx *SpatiotemporalIndex[T]) resolve(hs []core.Handle) []T {
	if len(hs) == 0 {
		return nil
	}
	return idx.items.Resolve(hs)
}

func (idx *SpatiotemporalIndex[T]) resolveSet(s *bitmap.HandleSet) []T {
	if s.IsEmpty() {
		return nil
	}
	out := make([]T, 0, s.Cardinality())
	for h := range s.Handles() {
		out = append(out, idx.items.At(h))
	}
	return out
}

func (idx *SpatiotemporalIndex[T]) record(kind QueryKind, results int, start time.Time) {
	elapsed := time.Since(start)
	idx.metrics.RecordQuery(kind, results, elapsed)
	idx.logger.LogQuery(kind, results, elapsed)
}
