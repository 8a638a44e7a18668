package prometheus

import (
	"errors"
	"testing"
	"time"

	"github.com/hupe1980/geochrono"
	"github.com/hupe1980/geochrono/geo"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// gather returns counter values and histogram sample counts keyed by
// metric name and first label value.
func gather(t *testing.T, reg *prometheus.Registry) map[string]float64 {
	t.Helper()
	mfs, err := reg.Gather()
	require.NoError(t, err)

	out := map[string]float64{}
	for _, mf := range mfs {
		for _, m := range mf.GetMetric() {
			key := mf.GetName()
			if labels := m.GetLabel(); len(labels) > 0 {
				key += "/" + labels[0].GetValue()
			}
			switch {
			case m.GetCounter() != nil:
				out[key] = m.GetCounter().GetValue()
			case m.GetHistogram() != nil:
				out[key] = float64(m.GetHistogram().GetSampleCount())
			}
		}
	}
	return out
}

func TestCollector(t *testing.T) {
	t.Run("Direct", func(t *testing.T) {
		c := NewCollector("")
		reg := prometheus.NewRegistry()
		require.NoError(t, reg.Register(c))

		c.RecordInsert(time.Microsecond, nil)
		c.RecordInsert(0, errors.New("bad"))
		c.RecordBulkLoad(10, time.Millisecond)
		c.RecordQuery(geochrono.KindSpatial, 3, time.Microsecond)
		c.RecordQuery(geochrono.KindSpatial, 0, time.Microsecond)

		got := gather(t, reg)
		assert.Equal(t, 1.0, got["geochrono_inserts_total/success"])
		assert.Equal(t, 1.0, got["geochrono_inserts_total/rejected"])
		assert.Equal(t, 1.0, got["geochrono_insert_duration_seconds"])
		assert.Equal(t, 10.0, got["geochrono_bulk_load_items_total"])
		assert.Equal(t, 2.0, got["geochrono_queries_total/spatial"])
		assert.Equal(t, 2.0, got["geochrono_query_results/spatial"])
	})

	t.Run("WithIndex", func(t *testing.T) {
		c := NewCollector("test")
		reg := prometheus.NewRegistry()
		reg.MustRegister(c)

		idx := geochrono.New[string](geochrono.WithMetricsCollector(c))
		ts := geo.MustParseTimestamp("2024-01-01")
		idx.Insert("a", geo.NewLocation(1, 1), ts)
		idx.QuerySpatial(geo.WorldBounds())
		idx.Query(geo.WorldBounds(), geo.NewTimeRange(ts, ts))

		got := gather(t, reg)
		assert.Equal(t, 1.0, got["test_inserts_total/success"])
		assert.Equal(t, 1.0, got["test_queries_total/spatial"])
		assert.Equal(t, 1.0, got["test_queries_total/spatiotemporal"])
	})

	t.Run("DoubleRegisterFails", func(t *testing.T) {
		reg := prometheus.NewRegistry()
		require.NoError(t, reg.Register(NewCollector("dup")))
		assert.Error(t, reg.Register(NewCollector("dup")))
	})
}
