// Package prometheus provides a geochrono.MetricsCollector that records to
// Prometheus.
//
// Example:
//
//	c := prometheus.NewCollector("myapp")
//	prom.MustRegister(c)
//	idx := geochrono.New[string](geochrono.WithMetricsCollector(c))
package prometheus

import (
	"time"

	"github.com/hupe1980/geochrono"
	"github.com/prometheus/client_golang/prometheus"
)

// Compile time check to ensure Collector satisfies both interfaces.
var (
	_ geochrono.MetricsCollector = (*Collector)(nil)
	_ prometheus.Collector       = (*Collector)(nil)
)

// Collector records index operations as Prometheus metrics.
// Register it with a prometheus.Registerer before use.
type Collector struct {
	inserts         *prometheus.CounterVec
	insertLatency   prometheus.Histogram
	bulkLoadItems   prometheus.Counter
	bulkLoadLatency prometheus.Histogram
	queries         *prometheus.CounterVec
	queryLatency    *prometheus.HistogramVec
	queryResults    *prometheus.HistogramVec
}

// NewCollector creates a Collector whose metric names start with namespace.
// An empty namespace defaults to "geochrono".
func NewCollector(namespace string) *Collector {
	if namespace == "" {
		namespace = "geochrono"
	}
	return &Collector{
		inserts: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "inserts_total",
			Help:      "Total inserts by status (success, rejected).",
		}, []string{"status"}),
		insertLatency: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "insert_duration_seconds",
			Help:      "Insert latency in seconds.",
			Buckets:   []float64{1e-7, 5e-7, 1e-6, 5e-6, 1e-5, 5e-5, 1e-4, 1e-3},
		}),
		bulkLoadItems: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "bulk_load_items_total",
			Help:      "Total items added through bulk loads.",
		}),
		bulkLoadLatency: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "bulk_load_duration_seconds",
			Help:      "Bulk load latency in seconds.",
			Buckets:   prometheus.DefBuckets,
		}),
		queries: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "queries_total",
			Help:      "Total queries by kind.",
		}, []string{"kind"}),
		queryLatency: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "query_duration_seconds",
			Help:      "Query latency in seconds by kind.",
			Buckets:   []float64{1e-6, 1e-5, 5e-5, 1e-4, 5e-4, 0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1},
		}, []string{"kind"}),
		queryResults: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "query_results",
			Help:      "Number of results returned per query by kind.",
			Buckets:   []float64{0, 1, 5, 10, 25, 50, 100, 1000, 10000},
		}, []string{"kind"}),
	}
}

// RecordInsert implements geochrono.MetricsCollector.
func (c *Collector) RecordInsert(d time.Duration, err error) {
	status := "success"
	if err != nil {
		status = "rejected"
	}
	c.inserts.WithLabelValues(status).Inc()
	if err == nil {
		c.insertLatency.Observe(d.Seconds())
	}
}

// RecordBulkLoad implements geochrono.MetricsCollector.
func (c *Collector) RecordBulkLoad(count int, d time.Duration) {
	c.bulkLoadItems.Add(float64(count))
	c.bulkLoadLatency.Observe(d.Seconds())
}

// RecordQuery implements geochrono.MetricsCollector.
func (c *Collector) RecordQuery(kind geochrono.QueryKind, results int, d time.Duration) {
	k := kind.String()
	c.queries.WithLabelValues(k).Inc()
	c.queryLatency.WithLabelValues(k).Observe(d.Seconds())
	c.queryResults.WithLabelValues(k).Observe(float64(results))
}

// Describe implements prometheus.Collector.
func (c *Collector) Describe(ch chan<- *prometheus.Desc) {
	c.inserts.Describe(ch)
	c.insertLatency.Describe(ch)
	c.bulkLoadItems.Describe(ch)
	c.bulkLoadLatency.Describe(ch)
	c.queries.Describe(ch)
	c.queryLatency.Describe(ch)
	c.queryResults.Describe(ch)
}

// Collect implements prometheus.Collector.
func (c *Collector) Collect(ch chan<- prometheus.Metric) {
	c.inserts.Collect(ch)
	c.insertLatency.Collect(ch)
	c.bulkLoadItems.Collect(ch)
	c.bulkLoadLatency.Collect(ch)
	c.queries.Collect(ch)
	c.queryLatency.Collect(ch)
	c.queryResults.Collect(ch)
}
