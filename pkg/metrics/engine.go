package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

// EngineMetrics records quote computation outcomes.
type EngineMetrics struct {
	quotes           prometheus.Counter
	offersMatched    prometheus.Counter
	snapshotFailures *prometheus.CounterVec
}

// NewEngineMetrics registers the engine metrics on the provided registerer.
// A nil registerer yields a no-op recorder.
func NewEngineMetrics(reg prometheus.Registerer) *EngineMetrics {
	if reg == nil {
		return &EngineMetrics{}
	}
	quotes := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "offers_quotes_total",
		Help: "Order quotes computed.",
	})
	offersMatched := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "offers_matched_total",
		Help: "Offers matched across all quotes.",
	})
	snapshotFailures := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "offers_snapshot_decode_failures_total",
		Help: "Persisted snapshot payloads that could not be decoded and were treated as empty.",
	}, []string{"field"})
	reg.MustRegister(quotes, offersMatched, snapshotFailures)
	return &EngineMetrics{
		quotes:           quotes,
		offersMatched:    offersMatched,
		snapshotFailures: snapshotFailures,
	}
}

// IncQuotes counts one computed quote.
func (m *EngineMetrics) IncQuotes() {
	if m == nil || m.quotes == nil {
		return
	}
	m.quotes.Inc()
}

// AddOffersMatched counts offers matched during one quote.
func (m *EngineMetrics) AddOffersMatched(count int) {
	if m == nil || m.offersMatched == nil || count <= 0 {
		return
	}
	m.offersMatched.Add(float64(count))
}

// IncSnapshotFailure counts a tolerated snapshot decode failure for the
// named persisted field.
func (m *EngineMetrics) IncSnapshotFailure(field string) {
	if m == nil || m.snapshotFailures == nil {
		return
	}
	if field == "" {
		field = "unknown"
	}
	m.snapshotFailures.WithLabelValues(field).Inc()
}
