package memory

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"veriport/internal/employee"
	"veriport/pkg/platform/sentinel"
)

func TestInMemoryStore(t *testing.T) {
	ctx := context.Background()
	rec := &employee.Record{
		EmployeeID:    "EMP001",
		Name:          "Ravi Kumar",
		EntityName:    employee.EntityHIB,
		DateOfJoining: time.Date(2019, 6, 1, 0, 0, 0, 0, time.UTC),
	}
	s := New(rec)

	got, err := s.FindByID(ctx, "EMP001")
	require.NoError(t, err)
	assert.Equal(t, "Ravi Kumar", got.Name)

	got.Name = "mutated"
	again, err := s.FindByID(ctx, "EMP001")
	require.NoError(t, err)
	assert.Equal(t, "Ravi Kumar", again.Name, "callers must receive copies")

	_, err = s.FindByID(ctx, "EMP404")
	assert.True(t, errors.Is(err, sentinel.ErrNotFound))

	updated := *rec
	updated.Department = "Finance"
	require.NoError(t, s.Upsert(ctx, &updated))
	require.NoError(t, s.Upsert(ctx, &employee.Record{EmployeeID: "EMP002", Name: "Anita"}))

	n, err := s.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	got, err = s.FindByID(ctx, "EMP001")
	require.NoError(t, err)
	assert.Equal(t, "Finance", got.Department)
}
