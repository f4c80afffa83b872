package handler

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"veriport/internal/verification/models"
	"veriport/internal/verification/service"
	id "veriport/pkg/domain"
	dErrors "veriport/pkg/domain-errors"
	"veriport/pkg/platform/httputil"
	"veriport/pkg/requestcontext"
)

// Service defines the verification operations used by the handler.
type Service interface {
	Submit(ctx context.Context, cmd service.SubmitCommand) (*service.SubmitResult, error)
	GetOwned(ctx context.Context, verificationID id.VerificationID, verifier id.AccountID) (*models.Record, error)
	ListByVerifier(ctx context.Context, verifier id.AccountID) ([]*models.Record, error)
}

// Handler wires verification endpoints to the verification service.
type Handler struct {
	service Service
	logger  *slog.Logger
}

// New constructs a verification handler.
func New(service Service, logger *slog.Logger) *Handler {
	return &Handler{service: service, logger: logger}
}

// Register mounts verification endpoints. The caller applies the verifier
// role middleware.
func (h *Handler) Register(r chi.Router) {
	r.Post("/verifications", h.HandleSubmit)
	r.Get("/verifications", h.HandleList)
	r.Get("/verifications/{id}", h.HandleGet)
}

// HandleSubmit handles POST /verifications.
func (h *Handler) HandleSubmit(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := requestcontext.RequestID(ctx)

	verifier := requestcontext.AccountID(ctx)
	if verifier.IsNil() {
		httputil.WriteError(w, dErrors.New(dErrors.CodeUnauthorized, "authentication required"))
		return
	}

	req, ok := httputil.DecodeAndPrepare[SubmitRequest](w, r, h.logger, ctx, requestID)
	if !ok {
		return
	}

	res, err := h.service.Submit(ctx, service.SubmitCommand{
		VerifierID:   verifier,
		Claim:        req.Claim(),
		ConsentGiven: req.ConsentGiven,
	})
	if err != nil {
		h.logger.WarnContext(ctx, "verification failed",
			"request_id", requestID,
			"verifier_id", verifier,
			"employee_id", req.EmployeeID,
			"error", err,
		)
		httputil.WriteError(w, err)
		return
	}

	httputil.WriteJSON(w, http.StatusCreated, FromSubmitResult(res))
}

// HandleList handles GET /verifications.
func (h *Handler) HandleList(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	verifier := requestcontext.AccountID(ctx)
	if verifier.IsNil() {
		httputil.WriteError(w, dErrors.New(dErrors.CodeUnauthorized, "authentication required"))
		return
	}

	records, err := h.service.ListByVerifier(ctx, verifier)
	if err != nil {
		h.logger.ErrorContext(ctx, "failed to list verifications",
			"request_id", requestcontext.RequestID(ctx),
			"error", err,
		)
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, FromRecords(records))
}

// HandleGet handles GET /verifications/{id}. Another verifier's record is
// reported as not found.
func (h *Handler) HandleGet(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	verifier := requestcontext.AccountID(ctx)
	if verifier.IsNil() {
		httputil.WriteError(w, dErrors.New(dErrors.CodeUnauthorized, "authentication required"))
		return
	}

	verificationID, err := id.ParseVerificationID(chi.URLParam(r, "id"))
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	record, err := h.service.GetOwned(ctx, verificationID, verifier)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, FromRecord(record))
}
