package comparison

import (
	"strings"
	"time"

	"veriport/internal/employee"
)

// Field names a comparable attribute of a claim.
type Field string

const (
	FieldEmployeeID    Field = "employee_id"
	FieldName          Field = "name"
	FieldEntityName    Field = "entity_name"
	FieldDateOfJoining Field = "date_of_joining"
	FieldDateOfLeaving Field = "date_of_leaving"
	FieldDesignation   Field = "designation"
	FieldExitReason    Field = "exit_reason"
)

// Rule selects how a submitted value is matched against the authoritative one.
type Rule int

const (
	// RuleText is trimmed string equality.
	RuleText Rule = iota
	// RuleIdentifier is exact, case-sensitive equality.
	RuleIdentifier
	// RuleName folds case and whitespace; any other difference is partial.
	RuleName
	// RuleDate tolerates up to one day of skew.
	RuleDate
)

// Claim is the set of values a verifier asserts about an employee.
type Claim struct {
	EmployeeID    string `json:"employee_id"`
	Name          string `json:"name"`
	EntityName    string `json:"entity_name"`
	DateOfJoining string `json:"date_of_joining"`
	DateOfLeaving string `json:"date_of_leaving"`
	Designation   string `json:"designation"`
	ExitReason    string `json:"exit_reason"`
}

type fieldSpec struct {
	field   Field
	label   string
	rule    Rule
	claim   func(*Claim) string
	record  func(*employee.Record) string
	display func(string) string
}

// fieldSpecs is the comparable field set in presentation order.
var fieldSpecs = []fieldSpec{
	{
		field:   FieldEmployeeID,
		label:   "Employee ID",
		rule:    RuleIdentifier,
		claim:   func(c *Claim) string { return c.EmployeeID },
		record:  func(r *employee.Record) string { return string(r.EmployeeID) },
		display: strings.ToUpper,
	},
	{
		field:   FieldName,
		label:   "Full Name",
		rule:    RuleName,
		claim:   func(c *Claim) string { return c.Name },
		record:  func(r *employee.Record) string { return r.Name },
		display: strings.TrimSpace,
	},
	{
		field:   FieldEntityName,
		label:   "Entity Name",
		rule:    RuleIdentifier,
		claim:   func(c *Claim) string { return c.EntityName },
		record:  func(r *employee.Record) string { return string(r.EntityName) },
		display: func(v string) string { return employee.Entity(v).Label() },
	},
	{
		field:   FieldDateOfJoining,
		label:   "Date of Joining",
		rule:    RuleDate,
		claim:   func(c *Claim) string { return c.DateOfJoining },
		record:  func(r *employee.Record) string { return canonicalDate(r.DateOfJoining) },
		display: FormatDate,
	},
	{
		field:   FieldDateOfLeaving,
		label:   "Date of Leaving",
		rule:    RuleDate,
		claim:   func(c *Claim) string { return c.DateOfLeaving },
		record:  func(r *employee.Record) string { return canonicalDate(r.DateOfLeaving) },
		display: FormatDate,
	},
	{
		field:   FieldDesignation,
		label:   "Designation",
		rule:    RuleIdentifier,
		claim:   func(c *Claim) string { return c.Designation },
		record:  func(r *employee.Record) string { return string(r.Designation) },
		display: func(v string) string { return employee.Designation(v).Label() },
	},
	{
		field:   FieldExitReason,
		label:   "Exit Reason",
		rule:    RuleIdentifier,
		claim:   func(c *Claim) string { return c.ExitReason },
		record:  func(r *employee.Record) string { return string(r.ExitReason) },
		display: func(v string) string { return employee.ExitReason(v).Label() },
	},
}

var specsByField = func() map[Field]fieldSpec {
	m := make(map[Field]fieldSpec, len(fieldSpecs))
	for _, s := range fieldSpecs {
		m[s.field] = s
	}
	return m
}()

// Fields returns the comparable fields in presentation order.
func Fields() []Field {
	out := make([]Field, len(fieldSpecs))
	for i, s := range fieldSpecs {
		out[i] = s.field
	}
	return out
}

// Label returns the display label for a field.
func (f Field) Label() string {
	if s, ok := specsByField[f]; ok {
		return s.label
	}
	return string(f)
}

// RuleFor returns the match rule for a field. Unknown fields use RuleText.
func RuleFor(f Field) Rule {
	if s, ok := specsByField[f]; ok {
		return s.rule
	}
	return RuleText
}

const (
	isoDateLayout     = "2006-01-02"
	displayDateLayout = "02 Jan 2006"
)

var dateLayouts = []string{isoDateLayout, time.RFC3339, time.RFC3339Nano, displayDateLayout}

// ParseDate accepts ISO dates, RFC 3339 timestamps and the display layout.
func ParseDate(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// FormatDate renders a date as "02 Jan 2006".
func FormatDate(s string) string {
	t, ok := ParseDate(s)
	if !ok {
		return "Invalid Date"
	}
	return t.Format(displayDateLayout)
}

// canonicalDate keeps the calendar day of t in its own location.
func canonicalDate(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format(isoDateLayout)
}
