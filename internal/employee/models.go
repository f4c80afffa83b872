// Package employee owns the authoritative HR record that verifier claims are
// checked against. The verification core only ever reads these records.
package employee

import (
	"time"

	id "veriport/pkg/domain"
	dErrors "veriport/pkg/domain-errors"
)

// Entity is the legal employer entity.
type Entity string

const (
	EntityTVSCSHIB Entity = "TVSCSHIB"
	EntityHIB      Entity = "HIB"
)

var entityLabels = map[Entity]string{
	EntityTVSCSHIB: "TVS-CSHIB",
	EntityHIB:      "HIB",
}

// Designation is the employee's job title.
type Designation string

const (
	DesignationExecutive        Designation = "Executive"
	DesignationAssistantManager Designation = "Assistant Manager"
	DesignationManager          Designation = "Manager"
)

var designationLabels = map[Designation]string{
	DesignationExecutive:        "Executive",
	DesignationAssistantManager: "Assistant Manager",
	DesignationManager:          "Manager",
}

// ExitReason records why the employee left.
type ExitReason string

const (
	ExitResigned          ExitReason = "Resigned"
	ExitRetired           ExitReason = "Retired"
	ExitContractCompleted ExitReason = "Contract Completed"
	ExitTerminated        ExitReason = "Terminated"
	ExitAbsconding        ExitReason = "Absconding"
	ExitOther             ExitReason = "Other"
)

var exitReasonLabels = map[ExitReason]string{
	ExitResigned:          "Resigned",
	ExitRetired:           "Retired",
	ExitContractCompleted: "Contract Completed",
	ExitTerminated:        "Terminated",
	ExitAbsconding:        "Absconding",
	ExitOther:             "Others",
}

// Record is the authoritative employee record. A zero DateOfLeaving means the
// directory has no leaving date on file.
type Record struct {
	EmployeeID    id.EmployeeID `json:"employee_id" yaml:"employee_id"`
	Name          string        `json:"name" yaml:"name"`
	EntityName    Entity        `json:"entity_name" yaml:"entity_name"`
	DateOfJoining time.Time     `json:"date_of_joining" yaml:"date_of_joining"`
	DateOfLeaving time.Time     `json:"date_of_leaving" yaml:"date_of_leaving"`
	Designation   Designation   `json:"designation" yaml:"designation"`
	ExitReason    ExitReason    `json:"exit_reason" yaml:"exit_reason"`
	Department    string        `json:"department" yaml:"department"`
}

// Label returns the display label, or the raw value when unknown.
func (e Entity) Label() string {
	if l, ok := entityLabels[e]; ok {
		return l
	}
	return string(e)
}

// IsValid reports whether e is a known entity.
func (e Entity) IsValid() bool {
	_, ok := entityLabels[e]
	return ok
}

func (d Designation) Label() string {
	if l, ok := designationLabels[d]; ok {
		return l
	}
	return string(d)
}

func (d Designation) IsValid() bool {
	_, ok := designationLabels[d]
	return ok
}

func (r ExitReason) Label() string {
	if l, ok := exitReasonLabels[r]; ok {
		return l
	}
	return string(r)
}

func (r ExitReason) IsValid() bool {
	_, ok := exitReasonLabels[r]
	return ok
}

// Validate checks a record before it is written to the directory.
func (r *Record) Validate() error {
	if r.EmployeeID == "" {
		return dErrors.New(dErrors.CodeValidation, "employee_id is required")
	}
	if r.Name == "" {
		return dErrors.New(dErrors.CodeValidation, "name is required")
	}
	if !r.EntityName.IsValid() {
		return dErrors.New(dErrors.CodeValidation, "unknown entity_name "+string(r.EntityName))
	}
	if r.DateOfJoining.IsZero() {
		return dErrors.New(dErrors.CodeValidation, "date_of_joining is required")
	}
	if !r.DateOfLeaving.IsZero() && r.DateOfLeaving.Before(r.DateOfJoining) {
		return dErrors.New(dErrors.CodeValidation, "date_of_leaving precedes date_of_joining")
	}
	if r.Designation != "" && !r.Designation.IsValid() {
		return dErrors.New(dErrors.CodeValidation, "unknown designation "+string(r.Designation))
	}
	if r.ExitReason != "" && !r.ExitReason.IsValid() {
		return dErrors.New(dErrors.CodeValidation, "unknown exit_reason "+string(r.ExitReason))
	}
	return nil
}
