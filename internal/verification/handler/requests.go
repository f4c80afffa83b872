package handler

import (
	"veriport/internal/comparison"
	"veriport/internal/verification/models"
	dErrors "veriport/pkg/domain-errors"
)

// SubmitRequest is the body of POST /api/verifications.
type SubmitRequest struct {
	EmployeeID    string `json:"employee_id"`
	Name          string `json:"name"`
	EntityName    string `json:"entity_name"`
	DateOfJoining string `json:"date_of_joining"`
	DateOfLeaving string `json:"date_of_leaving"`
	Designation   string `json:"designation"`
	ExitReason    string `json:"exit_reason"`
	ConsentGiven  bool   `json:"consent_given"`
}

// Claim returns the submitted fields as a comparison claim.
func (r *SubmitRequest) Claim() comparison.Claim {
	return comparison.Claim{
		EmployeeID:    r.EmployeeID,
		Name:          r.Name,
		EntityName:    r.EntityName,
		DateOfJoining: r.DateOfJoining,
		DateOfLeaving: r.DateOfLeaving,
		Designation:   r.Designation,
		ExitReason:    r.ExitReason,
	}
}

func (r *SubmitRequest) Normalize() {
	if r == nil {
		return
	}
	c := models.NormalizeClaim(r.Claim())
	r.EmployeeID = c.EmployeeID
	r.Name = c.Name
	r.EntityName = c.EntityName
	r.DateOfJoining = c.DateOfJoining
	r.DateOfLeaving = c.DateOfLeaving
	r.Designation = c.Designation
	r.ExitReason = c.ExitReason
}

// Validate implements the Validatable interface for httputil.DecodeAndPrepare.
func (r *SubmitRequest) Validate() error {
	if r == nil {
		return dErrors.New(dErrors.CodeBadRequest, "request body is required")
	}
	if !r.ConsentGiven {
		return dErrors.New(dErrors.CodeMissingConsent, "employee consent is required")
	}
	return models.ValidateClaim(r.Claim())
}
