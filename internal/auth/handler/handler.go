package handler

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"veriport/internal/auth/models"
	"veriport/internal/auth/service"
	id "veriport/pkg/domain"
	"veriport/pkg/platform/httputil"
	"veriport/pkg/requestcontext"
)

// Service defines the account operations used by the handler.
type Service interface {
	Register(ctx context.Context, cmd service.RegisterCommand) (*models.Account, error)
	Login(ctx context.Context, cmd service.LoginCommand) (*service.LoginResult, error)
	Me(ctx context.Context, accountID id.AccountID) (*models.Account, error)
	RecordAccessDenied(ctx context.Context, reason string)
}

type Handler struct {
	service Service
	logger  *slog.Logger
}

func New(service Service, logger *slog.Logger) *Handler {
	return &Handler{service: service, logger: logger}
}

// RegisterPublic mounts the unauthenticated endpoints.
func (h *Handler) RegisterPublic(r chi.Router) {
	r.Post("/auth/register", h.HandleRegister)
	r.Post("/auth/login", h.HandleLogin)
}

// Register mounts endpoints that need an access token.
func (h *Handler) Register(r chi.Router) {
	r.Get("/auth/me", h.HandleMe)
}

// AccessDenied lets the handler serve as the authorization middleware's
// denial recorder.
func (h *Handler) AccessDenied(r *http.Request, reason string) {
	h.service.RecordAccessDenied(r.Context(), reason)
}

// HandleRegister handles POST /auth/register.
func (h *Handler) HandleRegister(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := requestcontext.RequestID(ctx)

	req, ok := httputil.DecodeAndPrepare[RegisterRequest](w, r, h.logger, ctx, requestID)
	if !ok {
		return
	}

	account, err := h.service.Register(ctx, service.RegisterCommand{
		Email:       req.Email,
		Password:    req.Password,
		FullName:    req.FullName,
		CompanyName: req.CompanyName,
	})
	if err != nil {
		h.logger.WarnContext(ctx, "registration failed",
			"request_id", requestID,
			"error", err,
		)
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusCreated, FromAccount(account))
}

// HandleLogin handles POST /auth/login.
func (h *Handler) HandleLogin(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := requestcontext.RequestID(ctx)

	req, ok := httputil.DecodeAndPrepare[LoginRequest](w, r, h.logger, ctx, requestID)
	if !ok {
		return
	}

	res, err := h.service.Login(ctx, service.LoginCommand{Email: req.Email, Password: req.Password})
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, FromLogin(res))
}

// HandleMe handles GET /auth/me.
func (h *Handler) HandleMe(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	account, err := h.service.Me(ctx, requestcontext.AccountID(ctx))
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, FromAccount(account))
}
