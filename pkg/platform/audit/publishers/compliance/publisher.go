// Package compliance provides a fail-closed audit publisher.
//
// Events are written synchronously, inside the caller's transaction when one
// is in context. If the write fails the calling operation must fail, so a
// verification or appeal transition never commits without its audit record.
//
// Use for: consent_recorded, verification_completed, appeal_created, appeal_resolved
package compliance

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	audit "veriport/pkg/platform/audit"
)

// Metrics counts compliance persistence outcomes.
type Metrics struct {
	emitted         prometheus.Counter
	persistFailures prometheus.Counter
	persistDuration prometheus.Histogram
}

// NewMetrics registers compliance metrics with reg.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	f := promauto.With(reg)
	return &Metrics{
		emitted: f.NewCounter(prometheus.CounterOpts{
			Name: "veriport_compliance_events_emitted_total",
			Help: "Compliance audit events persisted",
		}),
		persistFailures: f.NewCounter(prometheus.CounterOpts{
			Name: "veriport_compliance_persist_failures_total",
			Help: "Compliance audit events that failed to persist",
		}),
		persistDuration: f.NewHistogram(prometheus.HistogramOpts{
			Name:    "veriport_compliance_persist_duration_seconds",
			Help:    "Time spent persisting compliance audit events",
			Buckets: prometheus.DefBuckets,
		}),
	}
}

// Publisher emits compliance events with fail-closed semantics.
type Publisher struct {
	store   audit.Store
	logger  *slog.Logger
	metrics *Metrics
}

// Option configures the Publisher.
type Option func(*Publisher)

// WithLogger sets a logger for error reporting.
func WithLogger(logger *slog.Logger) Option {
	return func(p *Publisher) {
		p.logger = logger
	}
}

// WithMetrics sets the metrics collector.
func WithMetrics(m *Metrics) Option {
	return func(p *Publisher) {
		p.metrics = m
	}
}

// New creates a compliance publisher.
func New(store audit.Store, opts ...Option) *Publisher {
	p := &Publisher{store: store}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Emit synchronously writes a compliance event. The caller must fail its
// operation when Emit returns an error.
func (p *Publisher) Emit(ctx context.Context, event audit.Event) error {
	start := time.Now()

	if event.ActorID == "" {
		return fmt.Errorf("compliance event requires ActorID")
	}
	if event.Action == "" {
		return fmt.Errorf("compliance event requires Action")
	}
	if event.Timestamp.IsZero() {
		event.Timestamp = time.Now()
	}
	event.Category = audit.CategoryCompliance

	if err := p.store.Append(ctx, event); err != nil {
		if p.metrics != nil {
			p.metrics.persistFailures.Inc()
		}
		if p.logger != nil {
			p.logger.ErrorContext(ctx, "CRITICAL: compliance audit failed",
				"action", event.Action,
				"resource_id", event.ResourceID,
				"error", err,
			)
		}
		return fmt.Errorf("compliance audit persistence failed: %w", err)
	}

	if p.metrics != nil {
		p.metrics.persistDuration.Observe(time.Since(start).Seconds())
		p.metrics.emitted.Inc()
	}
	return nil
}
