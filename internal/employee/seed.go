package employee

import (
	"fmt"
	"io"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	id "veriport/pkg/domain"
	dErrors "veriport/pkg/domain-errors"
)

type seedFile struct {
	Employees []seedRow `yaml:"employees"`
}

type seedRow struct {
	EmployeeID    string `yaml:"employee_id"`
	Name          string `yaml:"name"`
	EntityName    string `yaml:"entity_name"`
	DateOfJoining string `yaml:"date_of_joining"`
	DateOfLeaving string `yaml:"date_of_leaving"`
	Designation   string `yaml:"designation"`
	ExitReason    string `yaml:"exit_reason"`
	Department    string `yaml:"department"`
}

const seedDateLayout = "2006-01-02"

// LoadSeed parses a YAML directory file of the form
//
//	employees:
//	  - employee_id: EMP001
//	    name: Ravi Kumar
//	    entity_name: TVSCSHIB
//	    date_of_joining: "2019-06-01"
//
// Every record is validated; the first invalid row fails the whole load.
func LoadSeed(r io.Reader) ([]*Record, error) {
	var file seedFile
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&file); err != nil {
		if err == io.EOF {
			return nil, nil
		}
		return nil, dErrors.Wrap(err, dErrors.CodeBadRequest, "invalid seed file")
	}

	seen := make(map[id.EmployeeID]struct{}, len(file.Employees))
	out := make([]*Record, 0, len(file.Employees))
	for i, row := range file.Employees {
		rec, err := row.toRecord()
		if err != nil {
			return nil, fmt.Errorf("employees[%d]: %w", i, err)
		}
		if _, dup := seen[rec.EmployeeID]; dup {
			return nil, fmt.Errorf("employees[%d]: %w", i,
				dErrors.New(dErrors.CodeValidation, "duplicate employee_id "+string(rec.EmployeeID)))
		}
		seen[rec.EmployeeID] = struct{}{}
		out = append(out, rec)
	}
	return out, nil
}

func (row seedRow) toRecord() (*Record, error) {
	empID, err := id.ParseEmployeeID(row.EmployeeID)
	if err != nil {
		return nil, err
	}
	rec := &Record{
		EmployeeID:  empID,
		Name:        strings.TrimSpace(row.Name),
		EntityName:  Entity(strings.TrimSpace(row.EntityName)),
		Designation: Designation(strings.TrimSpace(row.Designation)),
		ExitReason:  ExitReason(strings.TrimSpace(row.ExitReason)),
		Department:  strings.TrimSpace(row.Department),
	}
	if rec.DateOfJoining, err = parseSeedDate("date_of_joining", row.DateOfJoining); err != nil {
		return nil, err
	}
	if rec.DateOfLeaving, err = parseSeedDate("date_of_leaving", row.DateOfLeaving); err != nil {
		return nil, err
	}
	if err := rec.Validate(); err != nil {
		return nil, err
	}
	return rec, nil
}

func parseSeedDate(field, value string) (time.Time, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return time.Time{}, nil
	}
	t, err := time.Parse(seedDateLayout, value)
	if err != nil {
		return time.Time{}, dErrors.New(dErrors.CodeValidation, field+" must be YYYY-MM-DD")
	}
	return t, nil
}
