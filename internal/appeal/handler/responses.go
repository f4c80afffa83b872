package handler

import (
	"time"

	"veriport/internal/appeal/models"
	"veriport/internal/appeal/service"
	"veriport/internal/comparison"
	vmodels "veriport/internal/verification/models"
	vhandler "veriport/internal/verification/handler"
)

// MismatchResponse is one disputed field.
type MismatchResponse struct {
	Field         comparison.Field `json:"field"`
	Label         string           `json:"label"`
	Submitted     string           `json:"submitted_value"`
	Authoritative string           `json:"authoritative_value"`
}

// AppealResponse is the JSON view of an appeal.
type AppealResponse struct {
	AppealID         string             `json:"appeal_id"`
	VerificationID   string             `json:"verification_id"`
	EmployeeID       string             `json:"employee_id"`
	Reason           string             `json:"reason"`
	DocumentRefs     []string           `json:"document_refs"`
	MismatchedFields []MismatchResponse `json:"mismatched_fields"`
	Status           models.Status      `json:"status"`
	ReviewerResponse string             `json:"reviewer_response,omitempty"`
	ReviewedAt       *time.Time         `json:"reviewed_at,omitempty"`
	CreatedAt        time.Time          `json:"created_at"`
}

// DetailResponse is an appeal with the verification it disputes.
type DetailResponse struct {
	Appeal       AppealResponse                 `json:"appeal"`
	Verification *vhandler.VerificationResponse `json:"verification,omitempty"`
	Employee     *vmodels.EmployeeView          `json:"employee,omitempty"`
}

// ListResponse wraps a set of appeals.
type ListResponse struct {
	Appeals []AppealResponse `json:"appeals"`
	Total   int              `json:"total"`
}

func FromAppeal(a *models.Appeal) AppealResponse {
	fields := make([]MismatchResponse, 0, len(a.MismatchedFields))
	for _, f := range a.MismatchedFields {
		fields = append(fields, MismatchResponse{
			Field:         f.Field,
			Label:         f.Field.Label(),
			Submitted:     f.Submitted,
			Authoritative: f.Authoritative,
		})
	}
	refs := a.DocumentRefs
	if refs == nil {
		refs = []string{}
	}
	return AppealResponse{
		AppealID:         a.ID.String(),
		VerificationID:   a.VerificationID.String(),
		EmployeeID:       a.EmployeeID.String(),
		Reason:           a.Reason,
		DocumentRefs:     refs,
		MismatchedFields: fields,
		Status:           a.Status,
		ReviewerResponse: a.ReviewerResponse,
		ReviewedAt:       a.ReviewedAt,
		CreatedAt:        a.CreatedAt,
	}
}

func FromAppeals(appeals []*models.Appeal) ListResponse {
	out := make([]AppealResponse, 0, len(appeals))
	for _, a := range appeals {
		out = append(out, FromAppeal(a))
	}
	return ListResponse{Appeals: out, Total: len(out)}
}

func FromDetail(d *service.Detail) DetailResponse {
	resp := DetailResponse{Appeal: FromAppeal(d.Appeal), Employee: d.Employee}
	if d.Verification != nil {
		v := vhandler.FromRecord(d.Verification)
		resp.Verification = &v
	}
	return resp
}
