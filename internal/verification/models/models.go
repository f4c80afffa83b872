// Package models holds the verification record and its claim validation.
package models

import (
	"strings"
	"time"
	"unicode/utf8"

	"veriport/internal/comparison"
	"veriport/internal/employee"
	id "veriport/pkg/domain"
	dErrors "veriport/pkg/domain-errors"
)

const maxNameLength = 100

// Record is one completed verification. It is written once; the report key
// is the only field attached afterwards.
type Record struct {
	ID            id.VerificationID        `json:"verification_id"`
	EmployeeID    id.EmployeeID            `json:"employee_id"`
	VerifierID    id.AccountID             `json:"verifier_id"`
	Claim         comparison.Claim         `json:"submitted_data"`
	Results       []comparison.FieldResult `json:"comparison_results"`
	OverallStatus comparison.Status        `json:"overall_status"`
	MatchScore    int                      `json:"match_score"`
	ConsentGiven  bool                     `json:"consent_given"`
	CompletedAt   time.Time                `json:"completed_at"`
	ReportKey     string                   `json:"report_key,omitempty"`
}

// OwnedBy reports whether verifier created the record.
func (r *Record) OwnedBy(verifier id.AccountID) bool {
	return r.VerifierID == verifier
}

// HasReport reports whether a report has been attached.
func (r *Record) HasReport() bool {
	return r.ReportKey != ""
}

// Result rebuilds the aggregate view from the stored field results.
func (r *Record) Result() comparison.Result {
	return comparison.Summarize(r.Results)
}

// MismatchedFields is the failed subset of the stored field results.
func (r *Record) MismatchedFields() []comparison.MismatchedField {
	return comparison.MismatchedFields(r.Results)
}

// EmployeeView is the authoritative record as shown next to a verification.
// FnFStatus is derived at read time and never stored.
type EmployeeView struct {
	EmployeeID    id.EmployeeID      `json:"employee_id"`
	Name          string             `json:"name"`
	EntityName    string             `json:"entity_name"`
	DateOfJoining string             `json:"date_of_joining"`
	DateOfLeaving string             `json:"date_of_leaving,omitempty"`
	Designation   string             `json:"designation"`
	ExitReason    string             `json:"exit_reason,omitempty"`
	Department    string             `json:"department,omitempty"`
	FnFStatus     employee.FnFStatus `json:"fnf_status"`
}

// NewEmployeeView renders rec for display as of now.
func NewEmployeeView(rec *employee.Record, now time.Time) EmployeeView {
	return EmployeeView{
		EmployeeID:    rec.EmployeeID,
		Name:          rec.Name,
		EntityName:    rec.EntityName.Label(),
		DateOfJoining: displayDate(rec.DateOfJoining),
		DateOfLeaving: displayDate(rec.DateOfLeaving),
		Designation:   rec.Designation.Label(),
		ExitReason:    rec.ExitReason.Label(),
		Department:    rec.Department,
		FnFStatus:     rec.FnFStatus(now),
	}
}

func displayDate(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format("02 Jan 2006")
}

// NormalizeClaim trims every field and upper-cases the employee ID.
func NormalizeClaim(c comparison.Claim) comparison.Claim {
	c.EmployeeID = strings.ToUpper(strings.TrimSpace(c.EmployeeID))
	c.Name = strings.TrimSpace(c.Name)
	c.EntityName = strings.TrimSpace(c.EntityName)
	c.DateOfJoining = strings.TrimSpace(c.DateOfJoining)
	c.DateOfLeaving = strings.TrimSpace(c.DateOfLeaving)
	c.Designation = strings.TrimSpace(c.Designation)
	c.ExitReason = strings.TrimSpace(c.ExitReason)
	return c
}

// ValidateClaim checks a normalized claim. Only the employee ID is required;
// any other field may be empty but must be well formed when present.
func ValidateClaim(c comparison.Claim) error {
	if c.EmployeeID == "" {
		return dErrors.New(dErrors.CodeValidation, "employee_id is required")
	}
	if _, err := id.ParseEmployeeID(c.EmployeeID); err != nil {
		return dErrors.New(dErrors.CodeValidation, "employee_id is malformed")
	}
	if utf8.RuneCountInString(c.Name) > maxNameLength {
		return dErrors.New(dErrors.CodeValidation, "name must be at most 100 characters")
	}
	if c.EntityName != "" && !employee.Entity(c.EntityName).IsValid() {
		return dErrors.New(dErrors.CodeValidation, "entity_name must be one of TVSCSHIB, HIB")
	}
	if c.Designation != "" && !employee.Designation(c.Designation).IsValid() {
		return dErrors.New(dErrors.CodeValidation, "designation must be one of Executive, Assistant Manager, Manager")
	}
	if c.ExitReason != "" && !employee.ExitReason(c.ExitReason).IsValid() {
		return dErrors.New(dErrors.CodeValidation, "unknown exit_reason "+c.ExitReason)
	}

	var joined, left time.Time
	var err error
	if c.DateOfJoining != "" {
		if joined, err = time.Parse(time.DateOnly, c.DateOfJoining); err != nil {
			return dErrors.New(dErrors.CodeValidation, "date_of_joining must be YYYY-MM-DD")
		}
	}
	if c.DateOfLeaving != "" {
		if left, err = time.Parse(time.DateOnly, c.DateOfLeaving); err != nil {
			return dErrors.New(dErrors.CodeValidation, "date_of_leaving must be YYYY-MM-DD")
		}
	}
	if !joined.IsZero() && !left.IsZero() && left.Before(joined) {
		return dErrors.New(dErrors.CodeValidation, "date_of_leaving must not precede date_of_joining")
	}
	return nil
}
