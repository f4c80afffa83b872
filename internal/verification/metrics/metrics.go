package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics provides observability for verification submissions.
type Metrics struct {
	// Completed verifications by overall status
	Outcomes *prometheus.CounterVec

	// Match score distribution
	Scores prometheus.Histogram

	// Submission latency including directory lookup and persistence
	SubmitLatency prometheus.Histogram

	// ID allocation conflicts that forced a retry
	IDConflicts prometheus.Counter
}

// New registers verification metrics with reg.
func New(reg prometheus.Registerer) *Metrics {
	f := promauto.With(reg)
	return &Metrics{
		Outcomes: f.NewCounterVec(prometheus.CounterOpts{
			Name: "veriport_verifications_total",
			Help: "Completed verifications by overall status",
		}, []string{"status"}),

		Scores: f.NewHistogram(prometheus.HistogramOpts{
			Name:    "veriport_verification_match_score",
			Help:    "Distribution of verification match scores",
			Buckets: []float64{0, 15, 29, 43, 58, 70, 72, 86, 100},
		}),

		SubmitLatency: f.NewHistogram(prometheus.HistogramOpts{
			Name:    "veriport_verification_submit_duration_seconds",
			Help:    "Duration of verification submission",
			Buckets: []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5},
		}),

		IDConflicts: f.NewCounter(prometheus.CounterOpts{
			Name: "veriport_verification_id_conflicts_total",
			Help: "Verification ID allocations retried after a uniqueness conflict",
		}),
	}
}

// ObserveOutcome records a completed verification.
func (m *Metrics) ObserveOutcome(status string, score int) {
	if m != nil {
		m.Outcomes.WithLabelValues(status).Inc()
		m.Scores.Observe(float64(score))
	}
}

// ObserveSubmitLatency records the submission duration.
func (m *Metrics) ObserveSubmitLatency(d time.Duration) {
	if m != nil {
		m.SubmitLatency.Observe(d.Seconds())
	}
}

// IncrementIDConflict records a retried allocation.
func (m *Metrics) IncrementIDConflict() {
	if m != nil {
		m.IDConflicts.Inc()
	}
}
