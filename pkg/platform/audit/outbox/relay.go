// Package outbox relays committed audit events from the database outbox to
// the event stream.
package outbox

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	txcontext "veriport/pkg/platform/tx"
)

const (
	defaultInterval  = 2 * time.Second
	defaultBatchSize = 100
)

// Entry is one unpublished outbox row.
type Entry struct {
	ID      uuid.UUID
	Action  string
	Key     string
	Payload []byte
}

// Source yields pending entries and records delivery. Both calls run inside
// the relay's transaction.
type Source interface {
	Pending(ctx context.Context, limit int) ([]Entry, error)
	MarkPublished(ctx context.Context, ids []uuid.UUID, at time.Time) error
}

// Producer writes one record to the event stream.
type Producer interface {
	Produce(ctx context.Context, key, value []byte) error
}

// Relay polls the outbox and publishes entries in creation order.
type Relay struct {
	source    Source
	producer  Producer
	runner    txcontext.Runner
	logger    *slog.Logger
	interval  time.Duration
	batchSize int
}

// Option configures the Relay.
type Option func(*Relay)

// WithInterval sets the polling interval.
func WithInterval(d time.Duration) Option {
	return func(r *Relay) {
		r.interval = d
	}
}

// WithBatchSize caps entries published per flush.
func WithBatchSize(n int) Option {
	return func(r *Relay) {
		r.batchSize = n
	}
}

// WithLogger sets a logger for delivery failures.
func WithLogger(logger *slog.Logger) Option {
	return func(r *Relay) {
		r.logger = logger
	}
}

// NewRelay builds a relay over source and producer.
func NewRelay(source Source, producer Producer, runner txcontext.Runner, opts ...Option) *Relay {
	r := &Relay{
		source:    source,
		producer:  producer,
		runner:    runner,
		logger:    slog.Default(),
		interval:  defaultInterval,
		batchSize: defaultBatchSize,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Run flushes on every tick until ctx is cancelled. Flush failures are logged
// and retried on the next tick.
func (r *Relay) Run(ctx context.Context) error {
	ticker := time.NewTicker(r.interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			if _, err := r.Flush(ctx); err != nil && ctx.Err() == nil {
				r.logger.ErrorContext(ctx, "outbox flush failed", "error", err)
			}
		}
	}
}

// Flush publishes one batch. Entries are marked published only when the whole
// batch was produced, so a failure redelivers the batch later.
func (r *Relay) Flush(ctx context.Context) (int, error) {
	published := 0
	err := r.runner.RunInTx(ctx, func(ctx context.Context) error {
		entries, err := r.source.Pending(ctx, r.batchSize)
		if err != nil {
			return err
		}
		ids := make([]uuid.UUID, 0, len(entries))
		for _, e := range entries {
			if err := r.producer.Produce(ctx, []byte(e.Key), e.Payload); err != nil {
				return fmt.Errorf("produce %s %s: %w", e.Action, e.ID, err)
			}
			ids = append(ids, e.ID)
		}
		if err := r.source.MarkPublished(ctx, ids, time.Now()); err != nil {
			return err
		}
		published = len(ids)
		return nil
	})
	if err != nil {
		return 0, err
	}
	return published, nil
}
