package comparison

import (
	"fmt"
	"math"

	"veriport/internal/employee"
)

// Status is the aggregate outcome of a verification.
type Status string

const (
	StatusMatched      Status = "matched"
	StatusPartialMatch Status = "partial_match"
	StatusMismatch     Status = "mismatch"
)

const partialMatchThreshold = 70

// MismatchedField is the reduced view of a failed field kept on appeals.
type MismatchedField struct {
	Field         Field  `json:"field"`
	Submitted     string `json:"submitted_value"`
	Authoritative string `json:"authoritative_value"`
}

// Result is the full comparison of a claim against a record.
type Result struct {
	Fields        []FieldResult     `json:"fields"`
	OverallStatus Status            `json:"overall_status"`
	MatchScore    int               `json:"match_score"`
	MatchedCount  int               `json:"matched_count"`
	TotalCount    int               `json:"total_count"`
	Mismatched    []MismatchedField `json:"mismatched_fields"`
	Summary       string            `json:"summary"`
}

// Evaluate compares every comparable field of claim against record in the
// fixed field order. The caller must have already located record.
func Evaluate(claim Claim, record *employee.Record) Result {
	fields := make([]FieldResult, 0, len(fieldSpecs))
	for _, spec := range fieldSpecs {
		fields = append(fields, CompareField(spec.field, spec.claim(&claim), spec.record(record)))
	}
	return Summarize(fields)
}

// Summarize derives score, status and mismatches from field results. It is
// also used to rebuild a Result from stored field results.
func Summarize(fields []FieldResult) Result {
	matched := 0
	for _, f := range fields {
		if f.IsMatch {
			matched++
		}
	}
	total := len(fields)
	score := Score(matched, total)
	status := StatusForScore(score)
	return Result{
		Fields:        fields,
		OverallStatus: status,
		MatchScore:    score,
		MatchedCount:  matched,
		TotalCount:    total,
		Mismatched:    MismatchedFields(fields),
		Summary:       summaryText(status, matched, total),
	}
}

// Score is round(100 * matched / total), or 0 for an empty field set.
func Score(matched, total int) int {
	if total <= 0 {
		return 0
	}
	return int(math.Round(100 * float64(matched) / float64(total)))
}

// StatusForScore applies the fixed status thresholds.
func StatusForScore(score int) Status {
	switch {
	case score == 100:
		return StatusMatched
	case score >= partialMatchThreshold:
		return StatusPartialMatch
	default:
		return StatusMismatch
	}
}

// MismatchedFields returns the failed fields in their original order.
func MismatchedFields(fields []FieldResult) []MismatchedField {
	out := make([]MismatchedField, 0)
	for _, f := range fields {
		if f.IsMatch {
			continue
		}
		out = append(out, MismatchedField{
			Field:         f.Field,
			Submitted:     f.Submitted,
			Authoritative: f.Authoritative,
		})
	}
	return out
}

func summaryText(status Status, matched, total int) string {
	switch status {
	case StatusMatched:
		return fmt.Sprintf("Perfect Match - All %d fields match", total)
	case StatusPartialMatch:
		return fmt.Sprintf("Partial Match - %d of %d fields match", matched, total)
	default:
		return fmt.Sprintf("Significant Mismatch - Only %d of %d fields match", matched, total)
	}
}
