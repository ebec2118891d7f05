package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// QueueMetrics records the lifecycle of basket intent messages.
type QueueMetrics struct {
	published      *prometheus.CounterVec
	publishFailure *prometheus.CounterVec
	received       *prometheus.CounterVec
	processed      *prometheus.CounterVec
	discarded      *prometheus.CounterVec
	handleDuration *prometheus.HistogramVec
}

// NewQueueMetrics registers the queue metrics on the provided registerer.
func NewQueueMetrics(reg prometheus.Registerer) *QueueMetrics {
	if reg == nil {
		return &QueueMetrics{}
	}
	published := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "basket_intents_published",
		Help: "Basket intents accepted by the broker.",
	}, []string{"event"})
	publishFailure := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "basket_intents_publish_failure",
		Help: "Basket intents that failed to publish.",
	}, []string{"event"})
	received := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "basket_intents_received",
		Help: "Basket intents delivered to the consumer.",
	}, []string{"event"})
	processed := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "basket_intents_processed",
		Help: "Basket intents applied successfully.",
	}, []string{"event"})
	discarded := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "basket_intents_discarded",
		Help: "Basket intents dropped after a processing failure.",
	}, []string{"event", "reason"})
	handleDuration := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "basket_intent_handle_seconds",
		Help:    "Time spent applying a basket intent.",
		Buckets: prometheus.DefBuckets,
	}, []string{"event"})
	reg.MustRegister(published, publishFailure, received, processed, discarded, handleDuration)
	return &QueueMetrics{
		published:      published,
		publishFailure: publishFailure,
		received:       received,
		processed:      processed,
		discarded:      discarded,
		handleDuration: handleDuration,
	}
}

// IncPublished increments the published counter for the event tag.
func (q *QueueMetrics) IncPublished(event string) {
	if q == nil || q.published == nil {
		return
	}
	q.published.WithLabelValues(normalizeLabel(event)).Inc()
}

// IncPublishFailure increments the publish failure counter for the event tag.
func (q *QueueMetrics) IncPublishFailure(event string) {
	if q == nil || q.publishFailure == nil {
		return
	}
	q.publishFailure.WithLabelValues(normalizeLabel(event)).Inc()
}

// IncReceived increments the received counter for the event tag.
func (q *QueueMetrics) IncReceived(event string) {
	if q == nil || q.received == nil {
		return
	}
	q.received.WithLabelValues(normalizeLabel(event)).Inc()
}

// IncProcessed increments the processed counter for the event tag.
func (q *QueueMetrics) IncProcessed(event string) {
	if q == nil || q.processed == nil {
		return
	}
	q.processed.WithLabelValues(normalizeLabel(event)).Inc()
}

// IncDiscarded increments the discarded counter for the event tag and reason.
func (q *QueueMetrics) IncDiscarded(event, reason string) {
	if q == nil || q.discarded == nil {
		return
	}
	q.discarded.WithLabelValues(normalizeLabel(event), normalizeLabel(reason)).Inc()
}

// ObserveHandleDuration records how long applying an intent took.
func (q *QueueMetrics) ObserveHandleDuration(event string, duration time.Duration) {
	if q == nil || q.handleDuration == nil {
		return
	}
	q.handleDuration.WithLabelValues(normalizeLabel(event)).Observe(duration.Seconds())
}

func normalizeLabel(value string) string {
	if value == "" {
		return "unknown"
	}
	return value
}
