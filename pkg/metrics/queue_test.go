package metrics

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestQueueMetricsCounters(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewQueueMetrics(reg)

	m.IncPublished("create.basket")
	m.IncPublished("create.basket")
	m.IncReceived("add.product.basket")
	m.IncProcessed("add.product.basket")
	m.IncDiscarded("delete.basket", "not_found")
	m.IncPublishFailure("")
	m.ObserveHandleDuration("create.basket", 25*time.Millisecond)

	assert.Equal(t, float64(2), testutil.ToFloat64(m.published.WithLabelValues("create.basket")))
	assert.Equal(t, float64(1), testutil.ToFloat64(m.received.WithLabelValues("add.product.basket")))
	assert.Equal(t, float64(1), testutil.ToFloat64(m.processed.WithLabelValues("add.product.basket")))
	assert.Equal(t, float64(1), testutil.ToFloat64(m.discarded.WithLabelValues("delete.basket", "not_found")))
	assert.Equal(t, float64(1), testutil.ToFloat64(m.publishFailure.WithLabelValues("unknown")))
}

func TestQueueMetricsNilSafe(t *testing.T) {
	var m *QueueMetrics
	m.IncPublished("create.basket")
	m.IncDiscarded("create.basket", "conflict")

	empty := NewQueueMetrics(nil)
	empty.IncProcessed("create.basket")
	empty.ObserveHandleDuration("create.basket", time.Millisecond)
}
