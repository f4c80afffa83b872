package employee

import (
	"context"

	id "veriport/pkg/domain"
)

// Reader is the read-only view of the HR directory used by verification.
// FindByID returns sentinel.ErrNotFound for unknown employees.
type Reader interface {
	FindByID(ctx context.Context, employeeID id.EmployeeID) (*Record, error)
}

// Store is the full directory port used by seeding and the dashboard.
type Store interface {
	Reader
	Upsert(ctx context.Context, record *Record) error
	Count(ctx context.Context) (int, error)
}
