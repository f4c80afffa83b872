// Package httptransport assembles the public HTTP API from the per-domain
// handlers.
package httptransport

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"veriport/internal/admin"
	appealhandler "veriport/internal/appeal/handler"
	authhandler "veriport/internal/auth/handler"
	"veriport/internal/platform/metrics"
	"veriport/internal/platform/middleware"
	reporthandler "veriport/internal/report/handler"
	verificationhandler "veriport/internal/verification/handler"
	id "veriport/pkg/domain"
	"veriport/pkg/platform/httputil"
	opsmw "veriport/pkg/platform/middleware/admin"
	authmw "veriport/pkg/platform/middleware/auth"
	"veriport/pkg/platform/middleware/metadata"
	"veriport/pkg/platform/middleware/requesttime"
)

const requestTimeout = 30 * time.Second

// HealthCheck reports whether a backing dependency is reachable.
type HealthCheck func(ctx context.Context) error

// Dependencies are the handlers and cross-cutting pieces the router mounts.
// AuthThrottle, HTTPMetrics, Metrics and Health are optional.
type Dependencies struct {
	Logger        *slog.Logger
	Tokens        authmw.JWTValidator
	Auth          *authhandler.Handler
	Verifications *verificationhandler.Handler
	Reports       *reporthandler.Handler
	Appeals       *appealhandler.Handler
	Dashboard     *admin.Handler
	AuthThrottle  func(http.Handler) http.Handler
	HTTPMetrics   *metrics.HTTP
	Metrics       http.Handler
	MetricsToken  string
	Health        map[string]HealthCheck
}

// NewRouter mounts every API route under /api. Verifier routes require the
// verifier role; admin routes require an HR role and, for appeals, the
// matching permission.
func NewRouter(deps Dependencies) chi.Router {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recovery(deps.Logger))
	r.Use(requesttime.Middleware)
	r.Use(metadata.ClientMetadata)
	r.Use(middleware.Logger(deps.Logger))
	if deps.HTTPMetrics != nil {
		r.Use(deps.HTTPMetrics.Middleware)
	}

	r.Get("/health", healthHandler(deps.Health))
	if deps.Metrics != nil {
		r.With(opsmw.RequireToken(deps.MetricsToken, deps.Logger)).Handle("/metrics", deps.Metrics)
	}

	denials := deps.Auth
	r.Route("/api", func(api chi.Router) {
		api.Use(chimw.Timeout(requestTimeout))
		api.Group(func(public chi.Router) {
			if deps.AuthThrottle != nil {
				public.Use(deps.AuthThrottle)
			}
			deps.Auth.RegisterPublic(public)
		})

		api.Group(func(authed chi.Router) {
			authed.Use(authmw.RequireAuth(deps.Tokens, deps.Logger))
			deps.Auth.Register(authed)

			authed.Group(func(v chi.Router) {
				v.Use(authmw.RequireRole(denials, id.RoleVerifier))
				deps.Verifications.Register(v)
				deps.Reports.Register(v)
				deps.Appeals.Register(v)
			})

			authed.Group(func(a chi.Router) {
				a.Use(authmw.RequireAdmin(denials))
				deps.Dashboard.Register(a)
				deps.Appeals.RegisterAdmin(a,
					authmw.RequirePermission(denials, id.PermViewAppeals),
					authmw.RequirePermission(denials, id.PermManageAppeals),
				)
			})
		})
	})
	return r
}

func healthHandler(checks map[string]HealthCheck) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()

		status := http.StatusOK
		results := make(map[string]string, len(checks))
		for name, check := range checks {
			if err := check(ctx); err != nil {
				results[name] = "unavailable"
				status = http.StatusServiceUnavailable
				continue
			}
			results[name] = "ok"
		}
		body := map[string]any{"status": "ok", "checks": results}
		if status != http.StatusOK {
			body["status"] = "degraded"
		}
		httputil.WriteJSON(w, status, body)
	}
}
