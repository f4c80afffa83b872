package ratelimit

import (
	"log/slog"
	"math"
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	dErrors "veriport/pkg/domain-errors"
	"veriport/pkg/platform/httputil"
	"veriport/pkg/requestcontext"
)

// Metrics counts throttling decisions per endpoint class.
type Metrics struct {
	decisions *prometheus.CounterVec
}

func NewMetrics(reg prometheus.Registerer) *Metrics {
	return &Metrics{
		decisions: promauto.With(reg).NewCounterVec(prometheus.CounterOpts{
			Name: "veriport_ratelimit_decisions_total",
			Help: "Rate limit decisions by endpoint class and outcome (allowed, limited, error)",
		}, []string{"class", "decision"}),
	}
}

// Decisions exposes the underlying counter.
func (m *Metrics) Decisions() *prometheus.CounterVec {
	return m.decisions
}

func (m *Metrics) observe(class, decision string) {
	if m != nil {
		m.decisions.WithLabelValues(class, decision).Inc()
	}
}

// Middleware applies one limit per client IP and endpoint class.
type Middleware struct {
	store   Store
	limit   int
	window  time.Duration
	logger  *slog.Logger
	metrics *Metrics
}

type Option func(*Middleware)

func WithLogger(logger *slog.Logger) Option {
	return func(m *Middleware) {
		if logger != nil {
			m.logger = logger
		}
	}
}

func WithMetrics(metrics *Metrics) Option {
	return func(m *Middleware) {
		m.metrics = metrics
	}
}

func New(store Store, limit int, window time.Duration, opts ...Option) *Middleware {
	m := &Middleware{
		store:  store,
		limit:  limit,
		window: window,
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// PerIP rejects requests beyond the limit with 429. Store failures let the
// request through.
func (m *Middleware) PerIP(class string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()
			ip := requestcontext.ClientIP(ctx)

			result, err := m.store.Allow(ctx, class+":"+ip, m.limit, m.window)
			if err != nil {
				m.metrics.observe(class, "error")
				m.logger.WarnContext(ctx, "rate limit check failed",
					"class", class,
					"request_id", requestcontext.RequestID(ctx),
					"error", err,
				)
				next.ServeHTTP(w, r)
				return
			}

			h := w.Header()
			h.Set("X-RateLimit-Limit", strconv.Itoa(result.Limit))
			h.Set("X-RateLimit-Remaining", strconv.Itoa(result.Remaining))
			h.Set("X-RateLimit-Reset", strconv.FormatInt(result.ResetAt.Unix(), 10))

			if !result.Allowed {
				m.metrics.observe(class, "limited")
				retry := math.Ceil(time.Until(result.ResetAt).Seconds())
				h.Set("Retry-After", strconv.Itoa(max(int(retry), 1)))
				m.logger.InfoContext(ctx, "request rate limited",
					"class", class,
					"client_ip", ip,
					"request_id", requestcontext.RequestID(ctx),
				)
				httputil.WriteError(w, dErrors.New(dErrors.CodeRateLimited, "too many requests, try again later"))
				return
			}
			m.metrics.observe(class, "allowed")
			next.ServeHTTP(w, r)
		})
	}
}
