package handler

import (
	"time"

	"veriport/internal/comparison"
	"veriport/internal/verification/models"
	"veriport/internal/verification/service"
)

// FieldResponse is one compared field as shown to the verifier.
type FieldResponse struct {
	Field         comparison.Field     `json:"field"`
	Label         string               `json:"label"`
	Submitted     string               `json:"submitted_value"`
	Authoritative string               `json:"authoritative_value"`
	IsMatch       bool                 `json:"is_match"`
	MatchType     comparison.MatchType `json:"match_type"`
	Color         string               `json:"color"`
}

// VerificationResponse is the JSON view of a stored verification.
type VerificationResponse struct {
	VerificationID string                       `json:"verification_id"`
	EmployeeID     string                       `json:"employee_id"`
	SubmittedData  comparison.Claim             `json:"submitted_data"`
	Results        []FieldResponse              `json:"comparison_results"`
	OverallStatus  comparison.Status            `json:"overall_status"`
	MatchScore     int                          `json:"match_score"`
	MatchedCount   int                          `json:"matched_count"`
	TotalCount     int                          `json:"total_count"`
	Summary        string                       `json:"summary"`
	Mismatched     []comparison.MismatchedField `json:"mismatched_fields"`
	ConsentGiven   bool                         `json:"consent_given"`
	CompletedAt    time.Time                    `json:"completed_at"`
	HasReport      bool                         `json:"has_report"`
}

// SubmitResponse adds the authoritative employee view to a new verification.
type SubmitResponse struct {
	Verification VerificationResponse `json:"verification"`
	Employee     models.EmployeeView  `json:"employee"`
}

// ListResponse wraps a verifier's verifications.
type ListResponse struct {
	Verifications []VerificationResponse `json:"verifications"`
	Total         int                    `json:"total"`
}

// FromRecord renders a stored record.
func FromRecord(r *models.Record) VerificationResponse {
	result := r.Result()
	fields := make([]FieldResponse, 0, len(r.Results))
	for _, f := range r.Results {
		fields = append(fields, FieldResponse{
			Field:         f.Field,
			Label:         f.Label,
			Submitted:     f.Submitted,
			Authoritative: f.Authoritative,
			IsMatch:       f.IsMatch,
			MatchType:     f.MatchType,
			Color:         f.Color(),
		})
	}
	return VerificationResponse{
		VerificationID: r.ID.String(),
		EmployeeID:     r.EmployeeID.String(),
		SubmittedData:  r.Claim,
		Results:        fields,
		OverallStatus:  r.OverallStatus,
		MatchScore:     r.MatchScore,
		MatchedCount:   result.MatchedCount,
		TotalCount:     result.TotalCount,
		Summary:        result.Summary,
		Mismatched:     result.Mismatched,
		ConsentGiven:   r.ConsentGiven,
		CompletedAt:    r.CompletedAt,
		HasReport:      r.HasReport(),
	}
}

// FromSubmitResult renders the outcome of a submission.
func FromSubmitResult(res *service.SubmitResult) SubmitResponse {
	return SubmitResponse{
		Verification: FromRecord(res.Record),
		Employee:     res.Employee,
	}
}

// FromRecords renders a list of records.
func FromRecords(records []*models.Record) ListResponse {
	out := make([]VerificationResponse, 0, len(records))
	for _, r := range records {
		out = append(out, FromRecord(r))
	}
	return ListResponse{Verifications: out, Total: len(out)}
}
