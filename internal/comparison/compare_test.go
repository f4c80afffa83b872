package comparison

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCompareField_NotProvidedOverridesEveryRule(t *testing.T) {
	for _, f := range append(Fields(), Field("department")) {
		for _, submitted := range []string{"", "   "} {
			r := CompareField(f, submitted, "anything")
			assert.Equal(t, MatchNotProvided, r.MatchType, "field %s", f)
			assert.False(t, r.IsMatch, "field %s", f)
			assert.Equal(t, "Not Provided", r.Submitted)
		}
	}
}

func TestCompareField_Identifiers(t *testing.T) {
	tests := []struct {
		name          string
		field         Field
		submitted     string
		authoritative string
		want          MatchType
	}{
		{"employee id equal", FieldEmployeeID, "6002056", "6002056", MatchExact},
		{"employee id differs", FieldEmployeeID, "6002057", "6002056", MatchMismatch},
		{"entity is case sensitive", FieldEntityName, "tvscshib", "TVSCSHIB", MatchMismatch},
		{"designation equal", FieldDesignation, "Manager", "Manager", MatchExact},
		{"exit reason differs", FieldExitReason, "Terminated", "Resigned", MatchMismatch},
		{"missing authoritative value", FieldDesignation, "Manager", "", MatchMismatch},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := CompareField(tt.field, tt.submitted, tt.authoritative)
			assert.Equal(t, tt.want, r.MatchType)
			assert.Equal(t, tt.want == MatchExact, r.IsMatch)
		})
	}
}

func TestCompareField_Name(t *testing.T) {
	t.Run("case and surrounding space are folded", func(t *testing.T) {
		r := CompareField(FieldName, "  s SATHISH ", "S Sathish")
		assert.Equal(t, MatchExact, r.MatchType)
		assert.True(t, r.IsMatch)
		assert.Equal(t, "s SATHISH", r.Submitted)
	})

	t.Run("any other difference is partial and not a match", func(t *testing.T) {
		r := CompareField(FieldName, "Sathish S", "S Sathish")
		assert.Equal(t, MatchPartial, r.MatchType)
		assert.False(t, r.IsMatch)
	})
}

func TestCompareField_Dates(t *testing.T) {
	tests := []struct {
		name          string
		submitted     string
		authoritative string
		want          MatchType
		isMatch       bool
	}{
		{"same day", "2024-03-31", "2024-03-31", MatchExact, true},
		{"one day later", "2024-04-01", "2024-03-31", MatchPartial, true},
		{"one day earlier", "2024-03-30", "2024-03-31", MatchPartial, true},
		{"two days apart", "2024-04-02", "2024-03-31", MatchMismatch, false},
		{"timestamp within a day", "2024-03-31T18:30:00Z", "2024-03-31", MatchPartial, true},
		{"unparseable submission", "31/03/2024", "2024-03-31", MatchMismatch, false},
		{"unparseable authoritative", "2024-03-31", "soon", MatchMismatch, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := CompareField(FieldDateOfLeaving, tt.submitted, tt.authoritative)
			assert.Equal(t, tt.want, r.MatchType)
			assert.Equal(t, tt.isMatch, r.IsMatch)
		})
	}
}

func TestCompareField_DefaultRuleTrims(t *testing.T) {
	r := CompareField(Field("department"), " HRD ", "HRD")
	assert.Equal(t, MatchExact, r.MatchType)

	r = CompareField(Field("department"), "IT", "HRD")
	assert.Equal(t, MatchMismatch, r.MatchType)
}

func TestCompareField_IsDeterministic(t *testing.T) {
	first := CompareField(FieldDateOfJoining, "2021-02-06", "2021-02-05")
	second := CompareField(FieldDateOfJoining, "2021-02-06", "2021-02-05")
	assert.Equal(t, first, second)
}

func TestCompareField_DisplayFormatting(t *testing.T) {
	assert.Equal(t, "05 Feb 2021", CompareField(FieldDateOfJoining, "2021-02-05", "2021-02-05").Submitted)
	assert.Equal(t, "Invalid Date", CompareField(FieldDateOfJoining, "yesterday", "2021-02-05").Submitted)
	assert.Equal(t, "TVS-CSHIB", CompareField(FieldEntityName, "TVSCSHIB", "TVSCSHIB").Authoritative)
	assert.Equal(t, "Others", CompareField(FieldExitReason, "Other", "Resigned").Submitted)
	assert.Equal(t, "EMP01", CompareField(FieldEmployeeID, "emp01", "EMP01").Submitted)
	assert.Equal(t, "Not Provided", CompareField(FieldDesignation, "Manager", "").Authoritative)
}

func TestFieldResultColor(t *testing.T) {
	assert.Equal(t, "gray", FieldResult{MatchType: MatchNotProvided}.Color())
	assert.Equal(t, "green", FieldResult{MatchType: MatchPartial, IsMatch: true}.Color())
	assert.Equal(t, "red", FieldResult{MatchType: MatchPartial}.Color())
}
