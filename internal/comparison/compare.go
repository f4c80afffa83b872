// Package comparison checks a verifier's claim against the authoritative
// employee record field by field and scores the outcome.
package comparison

import (
	"strings"
	"time"
)

// MatchType classifies a single field comparison.
type MatchType string

const (
	MatchExact       MatchType = "exact"
	MatchPartial     MatchType = "partial"
	MatchNotProvided MatchType = "not_provided"
	MatchMismatch    MatchType = "mismatch"
)

const notProvidedDisplay = "Not Provided"

// dateTolerance is the largest skew still treated as the same date.
const dateTolerance = 24 * time.Hour

// FieldResult is the outcome for one field. Values are display formatted.
type FieldResult struct {
	Field         Field     `json:"field"`
	Label         string    `json:"label"`
	Submitted     string    `json:"submitted_value"`
	Authoritative string    `json:"authoritative_value"`
	IsMatch       bool      `json:"is_match"`
	MatchType     MatchType `json:"match_type"`
}

// Color is the presentation hint used by reports.
func (r FieldResult) Color() string {
	switch {
	case r.MatchType == MatchNotProvided:
		return "gray"
	case r.IsMatch:
		return "green"
	default:
		return "red"
	}
}

// CompareField compares one submitted value with its authoritative
// counterpart. An empty submission is always not_provided.
func CompareField(field Field, submitted, authoritative string) FieldResult {
	spec, known := specsByField[field]
	display := strings.TrimSpace
	if known {
		display = spec.display
	}

	result := FieldResult{
		Field:         field,
		Label:         field.Label(),
		Submitted:     displayValue(display, submitted),
		Authoritative: displayValue(display, authoritative),
	}
	result.MatchType, result.IsMatch = classify(RuleFor(field), submitted, authoritative)
	return result
}

func displayValue(display func(string) string, v string) string {
	if strings.TrimSpace(v) == "" {
		return notProvidedDisplay
	}
	return display(v)
}

// classify applies rule to a pair of raw values.
func classify(rule Rule, submitted, authoritative string) (MatchType, bool) {
	if strings.TrimSpace(submitted) == "" {
		return MatchNotProvided, false
	}
	if strings.TrimSpace(authoritative) == "" {
		return MatchMismatch, false
	}

	switch rule {
	case RuleIdentifier:
		if submitted == authoritative {
			return MatchExact, true
		}
		return MatchMismatch, false
	case RuleName:
		if strings.EqualFold(strings.TrimSpace(submitted), strings.TrimSpace(authoritative)) {
			return MatchExact, true
		}
		return MatchPartial, false
	case RuleDate:
		return classifyDates(submitted, authoritative)
	default:
		if strings.TrimSpace(submitted) == strings.TrimSpace(authoritative) {
			return MatchExact, true
		}
		return MatchMismatch, false
	}
}

func classifyDates(submitted, authoritative string) (MatchType, bool) {
	s, ok := ParseDate(submitted)
	if !ok {
		return MatchMismatch, false
	}
	a, ok := ParseDate(authoritative)
	if !ok {
		return MatchMismatch, false
	}

	diff := s.Sub(a)
	if diff < 0 {
		diff = -diff
	}
	switch {
	case diff == 0:
		return MatchExact, true
	case diff <= dateTolerance:
		return MatchPartial, true
	default:
		return MatchMismatch, false
	}
}
