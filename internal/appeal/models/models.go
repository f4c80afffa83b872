// Package models holds the appeal aggregate and its one-shot resolution rule.
package models

import (
	"slices"
	"strconv"
	"strings"
	"time"
	"unicode/utf8"

	"veriport/internal/comparison"
	vmodels "veriport/internal/verification/models"
	id "veriport/pkg/domain"
	dErrors "veriport/pkg/domain-errors"
)

// Status is the appeal lifecycle state.
type Status string

const (
	StatusPending  Status = "pending"
	StatusApproved Status = "approved"
	StatusRejected Status = "rejected"
)

const (
	MinReasonLength   = 10
	MaxReasonLength   = 1000
	MinResponseLength = 3
	MaxResponseLength = 2000
	MaxDocuments      = 10
)

func (s Status) IsValid() bool {
	switch s {
	case StatusPending, StatusApproved, StatusRejected:
		return true
	}
	return false
}

// IsTerminal reports whether no further transition is allowed.
func (s Status) IsTerminal() bool {
	return s == StatusApproved || s == StatusRejected
}

// ParseStatus parses a list filter value.
func ParseStatus(s string) (Status, error) {
	st := Status(strings.ToLower(strings.TrimSpace(s)))
	if !st.IsValid() {
		return "", dErrors.New(dErrors.CodeInvalidInput, "invalid appeal status "+s)
	}
	return st, nil
}

// ParseDecision accepts only the terminal statuses.
func ParseDecision(s string) (Status, error) {
	st := Status(strings.ToLower(strings.TrimSpace(s)))
	if !st.IsTerminal() {
		return "", dErrors.New(dErrors.CodeValidation, "decision must be approved or rejected")
	}
	return st, nil
}

// Appeal is a verifier's dispute of the mismatches in one verification.
type Appeal struct {
	ID               id.AppealID                  `json:"appeal_id"`
	VerificationID   id.VerificationID            `json:"verification_id"`
	EmployeeID       id.EmployeeID                `json:"employee_id"`
	VerifierID       id.AccountID                 `json:"verifier_id"`
	Reason           string                       `json:"reason"`
	DocumentRefs     []string                     `json:"document_refs"`
	MismatchedFields []comparison.MismatchedField `json:"mismatched_fields"`
	Status           Status                       `json:"status"`
	ReviewerResponse string                       `json:"reviewer_response,omitempty"`
	ReviewerID       *id.AccountID                `json:"reviewer_id,omitempty"`
	ReviewedAt       *time.Time                   `json:"reviewed_at,omitempty"`
	CreatedAt        time.Time                    `json:"created_at"`
}

// New opens a pending appeal against record. The mismatched fields are copied
// from the stored comparison and never recomputed.
func New(record *vmodels.Record, reason string, documentRefs []string, now time.Time) (*Appeal, error) {
	mismatched := record.MismatchedFields()
	if len(mismatched) == 0 {
		return nil, dErrors.New(dErrors.CodeInvalidState, "verification has no mismatched fields to appeal")
	}
	return &Appeal{
		VerificationID:   record.ID,
		EmployeeID:       record.EmployeeID,
		VerifierID:       record.VerifierID,
		Reason:           reason,
		DocumentRefs:     slices.Clone(documentRefs),
		MismatchedFields: mismatched,
		Status:           StatusPending,
		CreatedAt:        now,
	}, nil
}

// Resolution is the single reviewer decision applied to a pending appeal.
type Resolution struct {
	Decision   Status
	Response   string
	ReviewerID id.AccountID
	ReviewedAt time.Time
}

// CanResolve fails with CodeInvalidState unless the appeal is pending.
func (a *Appeal) CanResolve() error {
	if a.Status != StatusPending {
		return dErrors.New(dErrors.CodeInvalidState, "appeal has already been "+string(a.Status))
	}
	return nil
}

// ApplyResolution moves a pending appeal to its terminal state. A resolved
// appeal is left unchanged.
func (a *Appeal) ApplyResolution(res Resolution) error {
	if err := a.CanResolve(); err != nil {
		return err
	}
	if !res.Decision.IsTerminal() {
		return dErrors.New(dErrors.CodeValidation, "decision must be approved or rejected")
	}
	reviewer := res.ReviewerID
	reviewedAt := res.ReviewedAt
	a.Status = res.Decision
	a.ReviewerResponse = res.Response
	a.ReviewerID = &reviewer
	a.ReviewedAt = &reviewedAt
	return nil
}

// Clone returns a deep copy.
func (a *Appeal) Clone() *Appeal {
	c := *a
	c.DocumentRefs = slices.Clone(a.DocumentRefs)
	c.MismatchedFields = slices.Clone(a.MismatchedFields)
	if a.ReviewerID != nil {
		r := *a.ReviewerID
		c.ReviewerID = &r
	}
	if a.ReviewedAt != nil {
		t := *a.ReviewedAt
		c.ReviewedAt = &t
	}
	return &c
}

// ValidateReason checks the verifier's comments.
func ValidateReason(reason string) error {
	return validateLength("reason", reason, MinReasonLength, MaxReasonLength)
}

// ValidateResponse checks the reviewer's response.
func ValidateResponse(response string) error {
	return validateLength("response", response, MinResponseLength, MaxResponseLength)
}

func validateLength(field, v string, lo, hi int) error {
	n := utf8.RuneCountInString(strings.TrimSpace(v))
	if n < lo || n > hi {
		return dErrors.New(dErrors.CodeValidation,
			field+" must be between "+strconv.Itoa(lo)+" and "+strconv.Itoa(hi)+" characters")
	}
	return nil
}

// Filter narrows admin listings. Zero values match everything.
type Filter struct {
	Status     Status
	EmployeeID id.EmployeeID
}

// Matches reports whether a satisfies f.
func (f Filter) Matches(a *Appeal) bool {
	if f.Status != "" && a.Status != f.Status {
		return false
	}
	if f.EmployeeID != "" && a.EmployeeID != f.EmployeeID {
		return false
	}
	return true
}
