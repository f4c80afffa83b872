package handler

import (
	"strings"

	"veriport/internal/appeal/models"
	dErrors "veriport/pkg/domain-errors"
)

// CreateRequest is the JSON body of POST /verifications/{id}/appeals. The
// multipart form carries the same reason field plus "documents" files.
type CreateRequest struct {
	Reason       string   `json:"reason"`
	DocumentRefs []string `json:"document_refs"`
}

func (r *CreateRequest) Normalize() {
	if r == nil {
		return
	}
	r.Reason = strings.TrimSpace(r.Reason)
}

func (r *CreateRequest) Validate() error {
	if r == nil {
		return dErrors.New(dErrors.CodeBadRequest, "request body is required")
	}
	if err := models.ValidateReason(r.Reason); err != nil {
		return err
	}
	if len(r.DocumentRefs) > models.MaxDocuments {
		return dErrors.New(dErrors.CodeValidation, "too many documents")
	}
	return nil
}

// ResolveRequest is the body of POST /admin/appeals/{id}/resolve.
type ResolveRequest struct {
	Decision string `json:"decision"`
	Response string `json:"response"`
}

func (r *ResolveRequest) Normalize() {
	if r == nil {
		return
	}
	r.Decision = strings.ToLower(strings.TrimSpace(r.Decision))
	r.Response = strings.TrimSpace(r.Response)
}

func (r *ResolveRequest) Validate() error {
	if r == nil {
		return dErrors.New(dErrors.CodeBadRequest, "request body is required")
	}
	if _, err := models.ParseDecision(r.Decision); err != nil {
		return err
	}
	return models.ValidateResponse(r.Response)
}
