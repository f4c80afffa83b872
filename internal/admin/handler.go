package admin

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"veriport/pkg/platform/httputil"
	"veriport/pkg/requestcontext"
)

type DashboardService interface {
	Dashboard(ctx context.Context) (*Dashboard, error)
}

type Handler struct {
	service DashboardService
	logger  *slog.Logger
}

func NewHandler(service DashboardService, logger *slog.Logger) *Handler {
	return &Handler{service: service, logger: logger}
}

// Register mounts the dashboard. The caller applies the admin role
// middleware.
func (h *Handler) Register(r chi.Router) {
	r.Get("/admin/dashboard", h.HandleDashboard)
}

// HandleDashboard handles GET /admin/dashboard.
func (h *Handler) HandleDashboard(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	d, err := h.service.Dashboard(ctx)
	if err != nil {
		h.logger.ErrorContext(ctx, "failed to load dashboard",
			"request_id", requestcontext.RequestID(ctx),
			"error", err,
		)
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, FromDashboard(d))
}
