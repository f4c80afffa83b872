// Package cache wraps a directory store with a Redis read-through cache.
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/redis/go-redis/v9"

	"veriport/internal/employee"
	id "veriport/pkg/domain"
)

const keyPrefix = "employee:"

// Metrics counts cache lookups by outcome.
type Metrics struct {
	lookups *prometheus.CounterVec
}

func NewMetrics(reg prometheus.Registerer) *Metrics {
	return &Metrics{
		lookups: promauto.With(reg).NewCounterVec(prometheus.CounterOpts{
			Name: "veriport_employee_cache_lookups_total",
			Help: "Employee cache lookups by result (hit, miss, error)",
		}, []string{"result"}),
	}
}

func (m *Metrics) observe(result string) {
	if m != nil {
		m.lookups.WithLabelValues(result).Inc()
	}
}

// Store caches FindByID results. Writes go to the backing store first and
// then drop the cached copy. Cache failures never fail a lookup.
type Store struct {
	next    employee.Store
	client  redis.UniversalClient
	ttl     time.Duration
	logger  *slog.Logger
	metrics *Metrics
}

type Option func(*Store)

func WithLogger(logger *slog.Logger) Option {
	return func(s *Store) {
		if logger != nil {
			s.logger = logger
		}
	}
}

func WithMetrics(m *Metrics) Option {
	return func(s *Store) {
		s.metrics = m
	}
}

func New(next employee.Store, client redis.UniversalClient, ttl time.Duration, opts ...Option) *Store {
	s := &Store{
		next:   next,
		client: client,
		ttl:    ttl,
		logger: slog.Default(),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(s)
		}
	}
	return s
}

func (s *Store) FindByID(ctx context.Context, employeeID id.EmployeeID) (*employee.Record, error) {
	key := keyPrefix + string(employeeID)

	raw, err := s.client.Get(ctx, key).Bytes()
	switch {
	case err == nil:
		var r employee.Record
		if jsonErr := json.Unmarshal(raw, &r); jsonErr == nil {
			s.metrics.observe("hit")
			return &r, nil
		}
		s.metrics.observe("error")
	case errors.Is(err, redis.Nil):
		s.metrics.observe("miss")
	default:
		s.metrics.observe("error")
		s.logger.WarnContext(ctx, "employee cache read failed", "employee_id", employeeID, "error", err)
	}

	r, err := s.next.FindByID(ctx, employeeID)
	if err != nil {
		return nil, err
	}
	if payload, err := json.Marshal(r); err == nil {
		if err := s.client.Set(ctx, key, payload, s.ttl).Err(); err != nil {
			s.logger.WarnContext(ctx, "employee cache write failed", "employee_id", employeeID, "error", err)
		}
	}
	return r, nil
}

func (s *Store) Upsert(ctx context.Context, record *employee.Record) error {
	if err := s.next.Upsert(ctx, record); err != nil {
		return err
	}
	if err := s.client.Del(ctx, keyPrefix+string(record.EmployeeID)).Err(); err != nil {
		s.logger.WarnContext(ctx, "employee cache invalidation failed", "employee_id", record.EmployeeID, "error", err)
	}
	return nil
}

func (s *Store) Count(ctx context.Context) (int, error) {
	return s.next.Count(ctx)
}
