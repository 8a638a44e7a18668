package geochrono

import (
	"sync/atomic"
	"time"
)

// QueryKind identifies the query an index answered.
type QueryKind int

// Query kinds reported to MetricsCollector.
const (
	KindSpatial QueryKind = iota
	KindTemporal
	KindSpatiotemporal
	KindNearestInRange
	KindHeatmap
	numQueryKinds
)

// String returns the metric label for k.
func (k QueryKind) String() string {
	switch k {
	case KindSpatial:
		return "spatial"
	case KindTemporal:
		return "temporal"
	case KindSpatiotemporal:
		return "spatiotemporal"
	case KindNearestInRange:
		return "nearest_in_range"
	case KindHeatmap:
		return "heatmap"
	default:
		return "unknown"
	}
}

// QueryKinds returns every QueryKind.
func QueryKinds() []QueryKind {
	kinds := make([]QueryKind, 0, numQueryKinds)
	for k := QueryKind(0); k < numQueryKinds; k++ {
		kinds = append(kinds, k)
	}
	return kinds
}

// MetricsCollector defines an interface for collecting operational metrics.
// Implement this interface to integrate with monitoring systems; see
// metrics/prometheus for a Prometheus implementation.
type MetricsCollector interface {
	// RecordInsert is called after each insert.
	// err is non-nil when TryInsert rejected the item.
	RecordInsert(duration time.Duration, err error)

	// RecordBulkLoad is called after FromItems built an index.
	RecordBulkLoad(count int, duration time.Duration)

	// RecordQuery is called after each query with the number of results.
	RecordQuery(kind QueryKind, results int, duration time.Duration)
}

// NoopMetricsCollector is a no-op implementation of MetricsCollector.
// Use this when metrics collection is not needed.
type NoopMetricsCollector struct{}

func (NoopMetricsCollector) RecordInsert(time.Duration, error)         {}
func (NoopMetricsCollector) RecordBulkLoad(int, time.Duration)         {}
func (NoopMetricsCollector) RecordQuery(QueryKind, int, time.Duration) {}

// BasicMetricsCollector provides simple in-memory metrics collection.
// Useful for debugging and basic monitoring without external dependencies.
type BasicMetricsCollector struct {
	InsertCount      atomic.Int64
	InsertErrors     atomic.Int64
	InsertTotalNanos atomic.Int64
	BulkLoadCount    atomic.Int64
	BulkLoadItems    atomic.Int64
	QueryCount       atomic.Int64
	QueryResults     atomic.Int64
	QueryTotalNanos  atomic.Int64

	queriesByKind [numQueryKinds]atomic.Int64
}

// RecordInsert implements MetricsCollector.
func (b *BasicMetricsCollector) RecordInsert(duration time.Duration, err error) {
	b.InsertCount.Add(1)
	b.InsertTotalNanos.Add(duration.Nanoseconds())
	if err != nil {
		b.InsertErrors.Add(1)
	}
}

// RecordBulkLoad implements MetricsCollector.
func (b *BasicMetricsCollector) RecordBulkLoad(count int, _ time.Duration) {
	b.BulkLoadCount.Add(1)
	b.BulkLoadItems.Add(int64(count))
}

// RecordQuery implements MetricsCollector.
func (b *BasicMetricsCollector) RecordQuery(kind QueryKind, results int, duration time.Duration) {
	b.QueryCount.Add(1)
	b.QueryResults.Add(int64(results))
	b.QueryTotalNanos.Add(duration.Nanoseconds())
	if kind >= 0 && kind < numQueryKinds {
		b.queriesByKind[kind].Add(1)
	}
}

// GetStats returns a snapshot of current metrics.
func (b *BasicMetricsCollector) GetStats() BasicMetricsStats {
	s := BasicMetricsStats{
		InsertCount:    b.InsertCount.Load(),
		InsertErrors:   b.InsertErrors.Load(),
		InsertAvgNanos: avg(b.InsertTotalNanos.Load(), b.InsertCount.Load()),
		BulkLoadCount:  b.BulkLoadCount.Load(),
		BulkLoadItems:  b.BulkLoadItems.Load(),
		QueryCount:     b.QueryCount.Load(),
		QueryResults:   b.QueryResults.Load(),
		QueryAvgNanos:  avg(b.QueryTotalNanos.Load(), b.QueryCount.Load()),
		QueriesByKind:  make(map[QueryKind]int64, numQueryKinds),
	}
	for k := QueryKind(0); k < numQueryKinds; k++ {
		if n := b.queriesByKind[k].Load(); n > 0 {
			s.QueriesByKind[k] = n
		}
	}
	return s
}

func avg(total, count int64) int64 {
	if count == 0 {
		return 0
	}
	return total / count
}

// BasicMetricsStats is a snapshot of BasicMetricsCollector state.
type BasicMetricsStats struct {
	InsertCount    int64
	InsertErrors   int64
	InsertAvgNanos int64
	BulkLoadCount  int64
	BulkLoadItems  int64
	QueryCount     int64
	QueryResults   int64
	QueryAvgNanos  int64
	QueriesByKind  map[QueryKind]int64
}
