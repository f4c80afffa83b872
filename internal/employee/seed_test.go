package employee

import (
	"os"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	id "veriport/pkg/domain"
	dErrors "veriport/pkg/domain-errors"
)

func TestLoadSeed(t *testing.T) {
	f, err := os.Open("testdata/employees.yaml")
	require.NoError(t, err)
	defer f.Close()

	records, err := LoadSeed(f)
	require.NoError(t, err)
	require.Len(t, records, 2)

	first := records[0]
	assert.Equal(t, id.EmployeeID("EMP001"), first.EmployeeID)
	assert.Equal(t, EntityTVSCSHIB, first.EntityName)
	assert.Equal(t, time.Date(2019, time.June, 1, 0, 0, 0, 0, time.UTC), first.DateOfJoining)
	assert.Equal(t, time.Date(2023, time.March, 31, 0, 0, 0, 0, time.UTC), first.DateOfLeaving)
	assert.Equal(t, ExitResigned, first.ExitReason)

	second := records[1]
	assert.True(t, second.DateOfLeaving.IsZero())
	assert.Equal(t, time.Date(2020, time.January, 15, 0, 0, 0, 0, time.UTC), second.DateOfJoining)
}

func TestLoadSeedRejectsInvalidRows(t *testing.T) {
	tests := []struct {
		name string
		yaml string
	}{
		{
			name: "unknown entity",
			yaml: "employees:\n  - {employee_id: E1, name: A, entity_name: ACME, date_of_joining: '2020-01-01'}\n",
		},
		{
			name: "bad date",
			yaml: "employees:\n  - {employee_id: E1, name: A, entity_name: HIB, date_of_joining: '01/02/2020'}\n",
		},
		{
			name: "leaving before joining",
			yaml: "employees:\n  - {employee_id: E1, name: A, entity_name: HIB, date_of_joining: '2020-01-01', date_of_leaving: '2019-01-01'}\n",
		},
		{
			name: "duplicate id",
			yaml: "employees:\n  - {employee_id: E1, name: A, entity_name: HIB, date_of_joining: '2020-01-01'}\n  - {employee_id: e1, name: B, entity_name: HIB, date_of_joining: '2020-01-01'}\n",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := LoadSeed(strings.NewReader(tt.yaml))
			require.Error(t, err)
			assert.True(t, dErrors.HasCode(err, dErrors.CodeValidation), "got %v", err)
		})
	}
}

func TestLoadSeedRejectsUnknownKeys(t *testing.T) {
	_, err := LoadSeed(strings.NewReader("employees:\n  - {employee_id: E1, salary: 10}\n"))
	require.Error(t, err)
	assert.True(t, dErrors.HasCode(err, dErrors.CodeBadRequest))
}

func TestLoadSeedEmpty(t *testing.T) {
	records, err := LoadSeed(strings.NewReader(""))
	require.NoError(t, err)
	assert.Empty(t, records)
}
