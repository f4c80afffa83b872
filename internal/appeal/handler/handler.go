package handler

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"mime"
	"mime/multipart"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"veriport/internal/appeal/models"
	"veriport/internal/appeal/service"
	id "veriport/pkg/domain"
	dErrors "veriport/pkg/domain-errors"
	"veriport/pkg/platform/httputil"
	"veriport/pkg/requestcontext"
)

const (
	maxUploadBytes   = 20 << 20
	maxDocumentBytes = 5 << 20
	documentsField   = "documents"
)

// Service defines the appeal operations used by the handler.
type Service interface {
	Create(ctx context.Context, cmd service.CreateCommand) (*models.Appeal, error)
	Resolve(ctx context.Context, cmd service.ResolveCommand) (*models.Appeal, error)
	GetDetail(ctx context.Context, appealID id.AppealID) (*service.Detail, error)
	List(ctx context.Context, filter models.Filter) ([]*models.Appeal, error)
	ListByVerifier(ctx context.Context, verifier id.AccountID) ([]*models.Appeal, error)
}

// Handler exposes appeal endpoints for verifiers and reviewers.
type Handler struct {
	service Service
	logger  *slog.Logger
}

func New(service Service, logger *slog.Logger) *Handler {
	return &Handler{service: service, logger: logger}
}

// Register mounts the verifier endpoints.
func (h *Handler) Register(r chi.Router) {
	r.Post("/verifications/{id}/appeals", h.HandleCreate)
	r.Get("/appeals/mine", h.HandleListMine)
}

// RegisterAdmin mounts the review endpoints. view is applied to every route
// and manage to resolution only.
func (h *Handler) RegisterAdmin(r chi.Router, view, manage func(http.Handler) http.Handler) {
	r.With(view).Get("/admin/appeals", h.HandleList)
	r.With(view).Get("/admin/appeals/{id}", h.HandleGet)
	r.With(manage).Post("/admin/appeals/{id}/resolve", h.HandleResolve)
}

// HandleCreate accepts either a JSON body or a multipart form with
// "documents" files.
func (h *Handler) HandleCreate(w http.ResponseWriter, r *http.Request) {
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

	cmd := service.CreateCommand{VerificationID: verificationID, VerifierID: verifier}
	if isMultipart(r) {
		req, docs, err := parseMultipart(w, r)
		if err != nil {
			h.logger.WarnContext(ctx, "invalid appeal upload", "request_id", requestID, "error", err)
			httputil.WriteError(w, err)
			return
		}
		cmd.Reason, cmd.DocumentRefs, cmd.Documents = req.Reason, req.DocumentRefs, docs
	} else {
		req, ok := httputil.DecodeAndPrepare[CreateRequest](w, r, h.logger, ctx, requestID)
		if !ok {
			return
		}
		cmd.Reason, cmd.DocumentRefs = req.Reason, req.DocumentRefs
	}

	appeal, err := h.service.Create(ctx, cmd)
	if err != nil {
		h.logger.WarnContext(ctx, "appeal creation failed",
			"request_id", requestID,
			"verification_id", verificationID,
			"verifier_id", verifier,
			"error", err,
		)
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusCreated, FromAppeal(appeal))
}

// HandleListMine handles GET /appeals/mine.
func (h *Handler) HandleListMine(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	verifier := requestcontext.AccountID(ctx)
	if verifier.IsNil() {
		httputil.WriteError(w, dErrors.New(dErrors.CodeUnauthorized, "authentication required"))
		return
	}
	appeals, err := h.service.ListByVerifier(ctx, verifier)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, FromAppeals(appeals))
}

// HandleList handles GET /admin/appeals?status=&employee_id=.
func (h *Handler) HandleList(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	var filter models.Filter
	q := r.URL.Query()
	if v := q.Get("status"); v != "" {
		status, err := models.ParseStatus(v)
		if err != nil {
			httputil.WriteError(w, err)
			return
		}
		filter.Status = status
	}
	if v := q.Get("employee_id"); v != "" {
		employeeID, err := id.ParseEmployeeID(v)
		if err != nil {
			httputil.WriteError(w, err)
			return
		}
		filter.EmployeeID = employeeID
	}

	appeals, err := h.service.List(ctx, filter)
	if err != nil {
		h.logger.ErrorContext(ctx, "failed to list appeals",
			"request_id", requestcontext.RequestID(ctx),
			"error", err,
		)
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, FromAppeals(appeals))
}

// HandleGet handles GET /admin/appeals/{id}.
func (h *Handler) HandleGet(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	appealID, err := id.ParseAppealID(chi.URLParam(r, "id"))
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	detail, err := h.service.GetDetail(ctx, appealID)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, FromDetail(detail))
}

// HandleResolve handles POST /admin/appeals/{id}/resolve.
func (h *Handler) HandleResolve(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := requestcontext.RequestID(ctx)

	reviewer := requestcontext.AccountID(ctx)
	if reviewer.IsNil() {
		httputil.WriteError(w, dErrors.New(dErrors.CodeUnauthorized, "authentication required"))
		return
	}
	appealID, err := id.ParseAppealID(chi.URLParam(r, "id"))
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	req, ok := httputil.DecodeAndPrepare[ResolveRequest](w, r, h.logger, ctx, requestID)
	if !ok {
		return
	}

	appeal, err := h.service.Resolve(ctx, service.ResolveCommand{
		AppealID:    appealID,
		Decision:    req.Decision,
		Response:    req.Response,
		ReviewerID:  reviewer,
		Role:        requestcontext.Role(ctx),
		Permissions: requestcontext.Permissions(ctx),
	})
	if err != nil {
		h.logger.WarnContext(ctx, "appeal resolution failed",
			"request_id", requestID,
			"appeal_id", appealID,
			"reviewer_id", reviewer,
			"error", err,
		)
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, FromAppeal(appeal))
}

func isMultipart(r *http.Request) bool {
	mediaType, _, err := mime.ParseMediaType(r.Header.Get("Content-Type"))
	return err == nil && mediaType == "multipart/form-data"
}

func parseMultipart(w http.ResponseWriter, r *http.Request) (*CreateRequest, []service.Document, error) {
	r.Body = http.MaxBytesReader(w, r.Body, maxUploadBytes)
	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			return nil, nil, dErrors.New(dErrors.CodeValidation, "upload is too large")
		}
		return nil, nil, dErrors.Wrap(err, dErrors.CodeBadRequest, "invalid multipart form")
	}
	defer func() {
		_ = r.MultipartForm.RemoveAll()
	}()

	req := &CreateRequest{
		Reason:       r.FormValue("reason"),
		DocumentRefs: r.MultipartForm.Value["document_refs"],
	}
	req.Normalize()
	if err := req.Validate(); err != nil {
		return nil, nil, err
	}

	files := r.MultipartForm.File[documentsField]
	if len(files)+len(req.DocumentRefs) > models.MaxDocuments {
		return nil, nil, dErrors.New(dErrors.CodeValidation, "too many documents")
	}
	docs := make([]service.Document, 0, len(files))
	for _, fh := range files {
		doc, err := readDocument(fh)
		if err != nil {
			return nil, nil, err
		}
		docs = append(docs, doc)
	}
	return req, docs, nil
}

func readDocument(fh *multipart.FileHeader) (service.Document, error) {
	if fh.Size > maxDocumentBytes {
		return service.Document{}, dErrors.New(dErrors.CodeValidation, "document "+fh.Filename+" is too large")
	}
	f, err := fh.Open()
	if err != nil {
		return service.Document{}, dErrors.Wrap(err, dErrors.CodeBadRequest, "unreadable document")
	}
	defer f.Close()
	body, err := io.ReadAll(io.LimitReader(f, maxDocumentBytes+1))
	if err != nil {
		return service.Document{}, dErrors.Wrap(err, dErrors.CodeBadRequest, "unreadable document")
	}
	if len(body) > maxDocumentBytes {
		return service.Document{}, dErrors.New(dErrors.CodeValidation, "document "+fh.Filename+" is too large")
	}
	contentType := fh.Header.Get("Content-Type")
	if contentType == "" || strings.HasPrefix(contentType, "application/octet-stream") {
		contentType = http.DetectContentType(body)
	}
	return service.Document{Filename: fh.Filename, ContentType: contentType, Body: body}, nil
}
