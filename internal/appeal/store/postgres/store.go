package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/lib/pq"

	"veriport/internal/appeal/models"
	id "veriport/pkg/domain"
	"veriport/pkg/platform/sentinel"
	txcontext "veriport/pkg/platform/tx"
)

const (
	uniqueViolation        = "23505"
	verificationConstraint = "appeals_verification_id_key"
)

// Store persists appeals through lib/pq. Resolution is a conditional update
// on status so concurrent reviewers cannot both win.
type Store struct {
	db *sql.DB
}

func New(db *sql.DB) *Store {
	return &Store{db: db}
}

const selectColumns = `
	appeal_id, verification_id, employee_id, verifier_id, reason, document_refs,
	mismatched_fields, status, reviewer_response, reviewer_id, reviewed_at, created_at
`

func (s *Store) Create(ctx context.Context, a *models.Appeal) error {
	mismatched, err := json.Marshal(a.MismatchedFields)
	if err != nil {
		return fmt.Errorf("marshal mismatched fields: %w", err)
	}
	refs := a.DocumentRefs
	if refs == nil {
		refs = []string{}
	}
	query := `
		INSERT INTO appeals (appeal_id, verification_id, employee_id, verifier_id, reason,
		                     document_refs, mismatched_fields, status, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`
	_, err = txcontext.ExecutorFrom(ctx, s.db).ExecContext(ctx, query,
		string(a.ID),
		string(a.VerificationID),
		string(a.EmployeeID),
		uuid.UUID(a.VerifierID),
		a.Reason,
		pq.Array(refs),
		mismatched,
		string(a.Status),
		a.CreatedAt,
	)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == uniqueViolation {
			if pqErr.Constraint == verificationConstraint {
				return fmt.Errorf("appeal for %s: %w", a.VerificationID, sentinel.ErrAlreadyUsed)
			}
			return fmt.Errorf("appeal %s: %w", a.ID, sentinel.ErrConflict)
		}
		return fmt.Errorf("insert appeal: %w", err)
	}
	return nil
}

func (s *Store) FindByID(ctx context.Context, appealID id.AppealID) (*models.Appeal, error) {
	return s.findOne(ctx, `appeal_id = $1`, string(appealID))
}

func (s *Store) FindByVerification(ctx context.Context, verificationID id.VerificationID) (*models.Appeal, error) {
	return s.findOne(ctx, `verification_id = $1`, string(verificationID))
}

func (s *Store) findOne(ctx context.Context, where string, arg any) (*models.Appeal, error) {
	query := `SELECT ` + selectColumns + ` FROM appeals WHERE ` + where
	row := txcontext.ExecutorFrom(ctx, s.db).QueryRowContext(ctx, query, arg)
	a, err := scanAppeal(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, sentinel.ErrNotFound
		}
		return nil, fmt.Errorf("find appeal: %w", err)
	}
	return a, nil
}

func (s *Store) List(ctx context.Context, filter models.Filter) ([]*models.Appeal, error) {
	var (
		conds []string
		args  []any
	)
	if filter.Status != "" {
		args = append(args, string(filter.Status))
		conds = append(conds, fmt.Sprintf("status = $%d", len(args)))
	}
	if filter.EmployeeID != "" {
		args = append(args, string(filter.EmployeeID))
		conds = append(conds, fmt.Sprintf("employee_id = $%d", len(args)))
	}
	query := `SELECT ` + selectColumns + ` FROM appeals`
	if len(conds) > 0 {
		query += ` WHERE ` + strings.Join(conds, " AND ")
	}
	query += ` ORDER BY created_at DESC, appeal_id DESC`

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list appeals: %w", err)
	}
	return scanAppeals(rows)
}

func (s *Store) ListByVerifier(ctx context.Context, verifierID id.AccountID) ([]*models.Appeal, error) {
	query := `SELECT ` + selectColumns + `
		FROM appeals
		WHERE verifier_id = $1
		ORDER BY created_at DESC, appeal_id DESC
	`
	rows, err := s.db.QueryContext(ctx, query, uuid.UUID(verifierID))
	if err != nil {
		return nil, fmt.Errorf("list appeals by verifier: %w", err)
	}
	return scanAppeals(rows)
}

func (s *Store) ListIDs(ctx context.Context) ([]string, error) {
	rows, err := txcontext.ExecutorFrom(ctx, s.db).QueryContext(ctx, `SELECT appeal_id FROM appeals`)
	if err != nil {
		return nil, fmt.Errorf("list appeal ids: %w", err)
	}
	defer rows.Close()
	var ids []string
	for rows.Next() {
		var v string
		if err := rows.Scan(&v); err != nil {
			return nil, err
		}
		ids = append(ids, v)
	}
	return ids, rows.Err()
}

// ResolveIfPending updates the appeal only while it is still pending. When no
// row changes, a follow-up lookup tells a missing appeal from a resolved one.
func (s *Store) ResolveIfPending(ctx context.Context, appealID id.AppealID, res models.Resolution) (*models.Appeal, error) {
	exec := txcontext.ExecutorFrom(ctx, s.db)
	query := `
		UPDATE appeals
		SET status = $2, reviewer_response = $3, reviewer_id = $4, reviewed_at = $5
		WHERE appeal_id = $1 AND status = 'pending'
		RETURNING ` + selectColumns
	row := exec.QueryRowContext(ctx, query,
		string(appealID),
		string(res.Decision),
		res.Response,
		uuid.UUID(res.ReviewerID),
		res.ReviewedAt,
	)
	a, err := scanAppeal(row)
	if err == nil {
		return a, nil
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("resolve appeal: %w", err)
	}

	var exists bool
	if err := exec.QueryRowContext(ctx,
		`SELECT EXISTS (SELECT 1 FROM appeals WHERE appeal_id = $1)`, string(appealID),
	).Scan(&exists); err != nil {
		return nil, fmt.Errorf("resolve appeal: %w", err)
	}
	if !exists {
		return nil, sentinel.ErrNotFound
	}
	return nil, sentinel.ErrInvalidState
}

// CountByStatus counts appeals per status.
func (s *Store) CountByStatus(ctx context.Context) (map[models.Status]int, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT status, COUNT(*) FROM appeals GROUP BY status`)
	if err != nil {
		return nil, fmt.Errorf("count appeals: %w", err)
	}
	defer rows.Close()
	counts := make(map[models.Status]int)
	for rows.Next() {
		var status string
		var n int
		if err := rows.Scan(&status, &n); err != nil {
			return nil, err
		}
		counts[models.Status(status)] = n
	}
	return counts, rows.Err()
}

type scanner interface {
	Scan(dest ...any) error
}

func scanAppeal(row scanner) (*models.Appeal, error) {
	var (
		a              models.Appeal
		appealID       string
		verificationID string
		employeeID     string
		verifierID     uuid.UUID
		refs           pq.StringArray
		mismatched     []byte
		status         string
		response       sql.NullString
		reviewerID     uuid.NullUUID
		reviewedAt     sql.NullTime
	)
	if err := row.Scan(&appealID, &verificationID, &employeeID, &verifierID, &a.Reason, &refs,
		&mismatched, &status, &response, &reviewerID, &reviewedAt, &a.CreatedAt); err != nil {
		return nil, err
	}
	if err := json.Unmarshal(mismatched, &a.MismatchedFields); err != nil {
		return nil, fmt.Errorf("decode mismatched fields: %w", err)
	}
	a.ID = id.AppealID(appealID)
	a.VerificationID = id.VerificationID(verificationID)
	a.EmployeeID = id.EmployeeID(employeeID)
	a.VerifierID = id.AccountID(verifierID)
	a.DocumentRefs = []string(refs)
	a.Status = models.Status(status)
	a.ReviewerResponse = response.String
	if reviewerID.Valid {
		r := id.AccountID(reviewerID.UUID)
		a.ReviewerID = &r
	}
	if reviewedAt.Valid {
		t := reviewedAt.Time
		a.ReviewedAt = &t
	}
	return &a, nil
}

func scanAppeals(rows *sql.Rows) ([]*models.Appeal, error) {
	defer rows.Close()
	out := make([]*models.Appeal, 0)
	for rows.Next() {
		a, err := scanAppeal(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, a)
	}
	return out, rows.Err()
}
