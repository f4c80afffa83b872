// Package postgres reads the HR directory through a pgx pool. The directory
// may live in a separate database from the verification tables.
package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"

	"veriport/internal/employee"
	id "veriport/pkg/domain"
	"veriport/pkg/platform/sentinel"
)

type Store struct {
	pool *pgxpool.Pool
}

func New(pool *pgxpool.Pool) *Store {
	return &Store{pool: pool}
}

func (s *Store) FindByID(ctx context.Context, employeeID id.EmployeeID) (*employee.Record, error) {
	query := `
		SELECT employee_id, name, entity_name, date_of_joining, date_of_leaving,
		       designation, exit_reason, department
		FROM employees
		WHERE employee_id = $1
	`
	var (
		r       employee.Record
		rawID   string
		entity  string
		design  string
		reason  string
		joined  time.Time
		leaving pgtype.Date
	)
	err := s.pool.QueryRow(ctx, query, string(employeeID)).Scan(
		&rawID, &r.Name, &entity, &joined, &leaving, &design, &reason, &r.Department,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, sentinel.ErrNotFound
		}
		return nil, fmt.Errorf("find employee: %w", err)
	}
	r.EmployeeID = id.EmployeeID(rawID)
	r.EntityName = employee.Entity(entity)
	r.Designation = employee.Designation(design)
	r.ExitReason = employee.ExitReason(reason)
	r.DateOfJoining = joined.UTC()
	if leaving.Valid {
		r.DateOfLeaving = leaving.Time.UTC()
	}
	return &r, nil
}

const upsertEmployee = `
	INSERT INTO employees (employee_id, name, entity_name, date_of_joining, date_of_leaving,
	                       designation, exit_reason, department, updated_at)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8, now())
	ON CONFLICT (employee_id) DO UPDATE SET
		name = EXCLUDED.name,
		entity_name = EXCLUDED.entity_name,
		date_of_joining = EXCLUDED.date_of_joining,
		date_of_leaving = EXCLUDED.date_of_leaving,
		designation = EXCLUDED.designation,
		exit_reason = EXCLUDED.exit_reason,
		department = EXCLUDED.department,
		updated_at = now()
`

func upsertArgs(r *employee.Record) []any {
	leaving := pgtype.Date{}
	if !r.DateOfLeaving.IsZero() {
		leaving = pgtype.Date{Time: r.DateOfLeaving, Valid: true}
	}
	return []any{
		string(r.EmployeeID),
		r.Name,
		string(r.EntityName),
		pgtype.Date{Time: r.DateOfJoining, Valid: true},
		leaving,
		string(r.Designation),
		string(r.ExitReason),
		r.Department,
	}
}

func (s *Store) Upsert(ctx context.Context, r *employee.Record) error {
	if _, err := s.pool.Exec(ctx, upsertEmployee, upsertArgs(r)...); err != nil {
		return fmt.Errorf("upsert employee: %w", err)
	}
	return nil
}

func (s *Store) Count(ctx context.Context) (int, error) {
	var n int
	if err := s.pool.QueryRow(ctx, `SELECT COUNT(*) FROM employees`).Scan(&n); err != nil {
		return 0, fmt.Errorf("count employees: %w", err)
	}
	return n, nil
}

// UpsertBatch writes every record in a single transaction.
func (s *Store) UpsertBatch(ctx context.Context, records []*employee.Record) error {
	return pgx.BeginFunc(ctx, s.pool, func(tx pgx.Tx) error {
		batch := &pgx.Batch{}
		for _, r := range records {
			batch.Queue(upsertEmployee, upsertArgs(r)...)
		}
		if err := tx.SendBatch(ctx, batch).Close(); err != nil {
			return fmt.Errorf("upsert employees: %w", err)
		}
		return nil
	})
}
