package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"

	"veriport/internal/auth/models"
	id "veriport/pkg/domain"
	"veriport/pkg/platform/sentinel"
	txcontext "veriport/pkg/platform/tx"
)

const uniqueViolation = "23505"

// Store persists accounts through lib/pq.
type Store struct {
	db *sql.DB
}

func New(db *sql.DB) *Store {
	return &Store{db: db}
}

const selectColumns = `
	id, email, password_hash, full_name, company_name, role, permissions,
	active, created_at, last_login_at
`

func (s *Store) Create(ctx context.Context, a *models.Account) error {
	perms := make([]string, len(a.Permissions))
	for i, p := range a.Permissions {
		perms[i] = string(p)
	}
	query := `
		INSERT INTO accounts (id, email, password_hash, full_name, company_name, role, permissions, active, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`
	_, err := txcontext.ExecutorFrom(ctx, s.db).ExecContext(ctx, query,
		uuid.UUID(a.ID),
		strings.ToLower(a.Email),
		a.PasswordHash,
		a.FullName,
		a.CompanyName,
		string(a.Role),
		pq.Array(perms),
		a.Active,
		a.CreatedAt,
	)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == uniqueViolation {
			return fmt.Errorf("account %s: %w", a.Email, sentinel.ErrConflict)
		}
		return fmt.Errorf("insert account: %w", err)
	}
	return nil
}

func (s *Store) FindByID(ctx context.Context, accountID id.AccountID) (*models.Account, error) {
	row := txcontext.ExecutorFrom(ctx, s.db).QueryRowContext(ctx,
		`SELECT `+selectColumns+` FROM accounts WHERE id = $1`, uuid.UUID(accountID))
	return s.scanOne(row)
}

func (s *Store) FindByEmail(ctx context.Context, email string) (*models.Account, error) {
	row := txcontext.ExecutorFrom(ctx, s.db).QueryRowContext(ctx,
		`SELECT `+selectColumns+` FROM accounts WHERE email = $1`, strings.ToLower(email))
	return s.scanOne(row)
}

func (s *Store) RecordLogin(ctx context.Context, accountID id.AccountID, at time.Time) error {
	res, err := txcontext.ExecutorFrom(ctx, s.db).ExecContext(ctx,
		`UPDATE accounts SET last_login_at = $2 WHERE id = $1`, uuid.UUID(accountID), at)
	if err != nil {
		return fmt.Errorf("record login: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("record login: %w", err)
	}
	if n == 0 {
		return sentinel.ErrNotFound
	}
	return nil
}

func (s *Store) scanOne(row *sql.Row) (*models.Account, error) {
	var (
		a         models.Account
		rawID     uuid.UUID
		role      string
		perms     pq.StringArray
		lastLogin sql.NullTime
	)
	err := row.Scan(&rawID, &a.Email, &a.PasswordHash, &a.FullName, &a.CompanyName,
		&role, &perms, &a.Active, &a.CreatedAt, &lastLogin)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, sentinel.ErrNotFound
		}
		return nil, fmt.Errorf("scan account: %w", err)
	}
	a.ID = id.AccountID(rawID)
	a.Role = id.Role(role)
	for _, p := range perms {
		a.Permissions = append(a.Permissions, id.Permission(p))
	}
	if lastLogin.Valid {
		t := lastLogin.Time
		a.LastLoginAt = &t
	}
	return &a, nil
}
