package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"

	"veriport/internal/comparison"
	"veriport/internal/verification/models"
	id "veriport/pkg/domain"
	"veriport/pkg/platform/sentinel"
	txcontext "veriport/pkg/platform/tx"
)

const uniqueViolation = "23505"

// Store persists verification records through lib/pq. Writes join the
// transaction carried by ctx.
type Store struct {
	db *sql.DB
}

func New(db *sql.DB) *Store {
	return &Store{db: db}
}

const selectColumns = `
	verification_id, employee_id, verifier_id, claim, comparison_results,
	overall_status, match_score, consent_given, completed_at, report_key
`

func (s *Store) Create(ctx context.Context, r *models.Record) error {
	claim, err := json.Marshal(r.Claim)
	if err != nil {
		return fmt.Errorf("marshal claim: %w", err)
	}
	results, err := json.Marshal(r.Results)
	if err != nil {
		return fmt.Errorf("marshal comparison results: %w", err)
	}
	query := `
		INSERT INTO verifications (verification_id, employee_id, verifier_id, claim, comparison_results,
		                           overall_status, match_score, consent_given, completed_at, report_key)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, NULLIF($10, ''))
	`
	_, err = txcontext.ExecutorFrom(ctx, s.db).ExecContext(ctx, query,
		string(r.ID),
		string(r.EmployeeID),
		uuid.UUID(r.VerifierID),
		claim,
		results,
		string(r.OverallStatus),
		r.MatchScore,
		r.ConsentGiven,
		r.CompletedAt,
		r.ReportKey,
	)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == uniqueViolation {
			return fmt.Errorf("verification %s: %w", r.ID, sentinel.ErrConflict)
		}
		return fmt.Errorf("insert verification: %w", err)
	}
	return nil
}

func (s *Store) FindByID(ctx context.Context, verificationID id.VerificationID) (*models.Record, error) {
	query := `SELECT ` + selectColumns + ` FROM verifications WHERE verification_id = $1`
	row := txcontext.ExecutorFrom(ctx, s.db).QueryRowContext(ctx, query, string(verificationID))
	r, err := scanRecord(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, sentinel.ErrNotFound
		}
		return nil, fmt.Errorf("find verification: %w", err)
	}
	return r, nil
}

func (s *Store) ListByVerifier(ctx context.Context, verifierID id.AccountID) ([]*models.Record, error) {
	query := `SELECT ` + selectColumns + `
		FROM verifications
		WHERE verifier_id = $1
		ORDER BY completed_at DESC, verification_id DESC
	`
	rows, err := s.db.QueryContext(ctx, query, uuid.UUID(verifierID))
	if err != nil {
		return nil, fmt.Errorf("list verifications: %w", err)
	}
	return scanRecords(rows)
}

func (s *Store) ListIDs(ctx context.Context) ([]string, error) {
	rows, err := txcontext.ExecutorFrom(ctx, s.db).QueryContext(ctx, `SELECT verification_id FROM verifications`)
	if err != nil {
		return nil, fmt.Errorf("list verification ids: %w", err)
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

func (s *Store) AttachReport(ctx context.Context, verificationID id.VerificationID, key string) error {
	res, err := txcontext.ExecutorFrom(ctx, s.db).ExecContext(ctx,
		`UPDATE verifications SET report_key = $2 WHERE verification_id = $1`,
		string(verificationID), key,
	)
	if err != nil {
		return fmt.Errorf("attach report: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("attach report: %w", err)
	}
	if n == 0 {
		return sentinel.ErrNotFound
	}
	return nil
}

// CountByStatus counts records per overall status.
func (s *Store) CountByStatus(ctx context.Context) (map[comparison.Status]int, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT overall_status, COUNT(*) FROM verifications GROUP BY overall_status`)
	if err != nil {
		return nil, fmt.Errorf("count verifications: %w", err)
	}
	defer rows.Close()
	counts := make(map[comparison.Status]int)
	for rows.Next() {
		var status string
		var n int
		if err := rows.Scan(&status, &n); err != nil {
			return nil, err
		}
		counts[comparison.Status(status)] = n
	}
	return counts, rows.Err()
}

// ListRecent returns up to limit records across all verifiers, newest first.
func (s *Store) ListRecent(ctx context.Context, limit int) ([]*models.Record, error) {
	query := `SELECT ` + selectColumns + `
		FROM verifications
		ORDER BY completed_at DESC, verification_id DESC
		LIMIT $1
	`
	rows, err := s.db.QueryContext(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("list recent verifications: %w", err)
	}
	return scanRecords(rows)
}

// DailyCounts counts records completed on each UTC day since from.
func (s *Store) DailyCounts(ctx context.Context, from time.Time) (map[string]int, error) {
	query := `
		SELECT to_char(completed_at AT TIME ZONE 'UTC', 'YYYY-MM-DD') AS day, COUNT(*)
		FROM verifications
		WHERE completed_at >= $1
		GROUP BY day
	`
	rows, err := s.db.QueryContext(ctx, query, from)
	if err != nil {
		return nil, fmt.Errorf("count verifications per day: %w", err)
	}
	defer rows.Close()
	counts := make(map[string]int)
	for rows.Next() {
		var day string
		var n int
		if err := rows.Scan(&day, &n); err != nil {
			return nil, err
		}
		counts[day] = n
	}
	return counts, rows.Err()
}

type scanner interface {
	Scan(dest ...any) error
}

func scanRecord(row scanner) (*models.Record, error) {
	var (
		r          models.Record
		rawID      string
		employeeID string
		verifierID uuid.UUID
		claim      []byte
		results    []byte
		status     string
		reportKey  sql.NullString
	)
	if err := row.Scan(&rawID, &employeeID, &verifierID, &claim, &results,
		&status, &r.MatchScore, &r.ConsentGiven, &r.CompletedAt, &reportKey); err != nil {
		return nil, err
	}
	if err := json.Unmarshal(claim, &r.Claim); err != nil {
		return nil, fmt.Errorf("decode claim: %w", err)
	}
	if err := json.Unmarshal(results, &r.Results); err != nil {
		return nil, fmt.Errorf("decode comparison results: %w", err)
	}
	r.ID = id.VerificationID(rawID)
	r.EmployeeID = id.EmployeeID(employeeID)
	r.VerifierID = id.AccountID(verifierID)
	r.OverallStatus = comparison.Status(status)
	r.ReportKey = reportKey.String
	return &r, nil
}

func scanRecords(rows *sql.Rows) ([]*models.Record, error) {
	defer rows.Close()
	out := make([]*models.Record, 0)
	for rows.Next() {
		r, err := scanRecord(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	return out, rows.Err()
}
