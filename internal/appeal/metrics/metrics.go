package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics provides observability for the appeal workflow.
type Metrics struct {
	Created *prometheus.CounterVec

	// Resolutions by decision
	Resolved *prometheus.CounterVec

	// Resolve attempts rejected because the appeal was no longer pending
	ResolveConflicts prometheus.Counter

	// Best-effort notifications that failed
	NotificationFailures *prometheus.CounterVec
}

func New(reg prometheus.Registerer) *Metrics {
	f := promauto.With(reg)
	return &Metrics{
		Created: f.NewCounterVec(prometheus.CounterOpts{
			Name: "veriport_appeals_created_total",
			Help: "Appeals created, by whether documents were attached",
		}, []string{"with_documents"}),
		Resolved: f.NewCounterVec(prometheus.CounterOpts{
			Name: "veriport_appeals_resolved_total",
			Help: "Appeals resolved by decision",
		}, []string{"decision"}),
		ResolveConflicts: f.NewCounter(prometheus.CounterOpts{
			Name: "veriport_appeal_resolve_conflicts_total",
			Help: "Resolve attempts on appeals that were already resolved",
		}),
		NotificationFailures: f.NewCounterVec(prometheus.CounterOpts{
			Name: "veriport_appeal_notification_failures_total",
			Help: "Appeal notifications that could not be delivered",
		}, []string{"kind"}),
	}
}

func (m *Metrics) IncrementCreated(withDocuments bool) {
	if m == nil {
		return
	}
	label := "false"
	if withDocuments {
		label = "true"
	}
	m.Created.WithLabelValues(label).Inc()
}

func (m *Metrics) IncrementResolved(decision string) {
	if m != nil {
		m.Resolved.WithLabelValues(decision).Inc()
	}
}

func (m *Metrics) IncrementResolveConflict() {
	if m != nil {
		m.ResolveConflicts.Inc()
	}
}

func (m *Metrics) IncrementNotificationFailure(kind string) {
	if m != nil {
		m.NotificationFailures.WithLabelValues(kind).Inc()
	}
}
