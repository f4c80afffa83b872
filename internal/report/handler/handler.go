package handler

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"veriport/internal/report"
	id "veriport/pkg/domain"
	dErrors "veriport/pkg/domain-errors"
	"veriport/pkg/platform/httputil"
	"veriport/pkg/requestcontext"
)

type Service interface {
	Generate(ctx context.Context, cmd report.GenerateCommand) (*report.Result, error)
}

type Handler struct {
	service Service
	logger  *slog.Logger
}

func New(service Service, logger *slog.Logger) *Handler {
	return &Handler{service: service, logger: logger}
}

// Register mounts the report endpoint. The caller applies the verifier role
// middleware.
func (h *Handler) Register(r chi.Router) {
	r.Post("/verifications/{id}/report", h.HandleGenerate)
}

// GenerateRequest is the optional body of POST /verifications/{id}/report.
type GenerateRequest struct {
	SendEmail bool `json:"send_email"`
}

type GenerateResponse struct {
	VerificationID string `json:"verification_id"`
	DownloadURL    string `json:"download_url"`
	Reused         bool   `json:"reused"`
	EmailSent      bool   `json:"email_sent"`
}

// HandleGenerate handles POST /verifications/{id}/report.
func (h *Handler) HandleGenerate(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := requestcontext.RequestID(ctx)

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

	req := &GenerateRequest{}
	if r.ContentLength != 0 {
		var ok bool
		if req, ok = httputil.DecodeAndPrepare[GenerateRequest](w, r, h.logger, ctx, requestID); !ok {
			return
		}
	}

	res, err := h.service.Generate(ctx, report.GenerateCommand{
		VerificationID: verificationID,
		VerifierID:     verifier,
		VerifierEmail:  requestcontext.Email(ctx),
		SendEmail:      req.SendEmail,
	})
	if err != nil {
		h.logger.WarnContext(ctx, "report generation failed",
			"request_id", requestID,
			"verification_id", verificationID,
			"error", err,
		)
		httputil.WriteError(w, err)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, GenerateResponse{
		VerificationID: string(res.VerificationID),
		DownloadURL:    res.DownloadURL,
		Reused:         res.Reused,
		EmailSent:      res.EmailSent,
	})
}
