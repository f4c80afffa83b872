package service

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"

	"veriport/internal/comparison"
	"veriport/internal/employee"
	"veriport/internal/sequence"
	"veriport/internal/verification/metrics"
	"veriport/internal/verification/models"
	id "veriport/pkg/domain"
	dErrors "veriport/pkg/domain-errors"
	"veriport/pkg/platform/audit"
	"veriport/pkg/platform/sentinel"
	txcontext "veriport/pkg/platform/tx"
	"veriport/pkg/requestcontext"
)

// Store persists verification records. Create must return sentinel.ErrConflict
// when the ID is already taken.
type Store interface {
	Create(ctx context.Context, record *models.Record) error
	FindByID(ctx context.Context, verificationID id.VerificationID) (*models.Record, error)
	ListByVerifier(ctx context.Context, verifierID id.AccountID) ([]*models.Record, error)
	ListIDs(ctx context.Context) ([]string, error)
	AttachReport(ctx context.Context, verificationID id.VerificationID, key string) error
}

// AuditPublisher is the fail-closed compliance sink. It is called inside the
// creating transaction.
type AuditPublisher interface {
	Emit(ctx context.Context, event audit.Event) error
}

// SubmitCommand is a verifier's claim about one employee.
type SubmitCommand struct {
	VerifierID   id.AccountID
	Claim        comparison.Claim
	ConsentGiven bool
}

// SubmitResult is the stored record plus its read-time views.
type SubmitResult struct {
	Record   *models.Record
	Employee models.EmployeeView
	Result   comparison.Result
}

// Service runs claims through the comparison engine and stores the outcome.
type Service struct {
	store     Store
	directory employee.Reader
	tx        txcontext.Runner
	ids       sequence.Allocator
	auditor   AuditPublisher
	logger    *slog.Logger
	metrics   *metrics.Metrics
	attempts  int
}

type Option func(*Service)

func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) {
		if logger != nil {
			s.logger = logger
		}
	}
}

func WithMetrics(m *metrics.Metrics) Option {
	return func(s *Service) {
		s.metrics = m
	}
}

// WithAllocator replaces the default scan-based VER allocator.
func WithAllocator(a sequence.Allocator) Option {
	return func(s *Service) {
		if a != nil {
			s.ids = a
		}
	}
}

// WithAllocationAttempts bounds retries on ID conflicts.
func WithAllocationAttempts(n int) Option {
	return func(s *Service) {
		s.attempts = n
	}
}

// New constructs a Service.
func New(store Store, directory employee.Reader, tx txcontext.Runner, auditor AuditPublisher, opts ...Option) *Service {
	s := &Service{
		store:     store,
		directory: directory,
		tx:        tx,
		auditor:   auditor,
		logger:    slog.Default(),
		attempts:  sequence.DefaultAttempts,
	}
	s.ids = sequence.NewScanAllocator(id.VerificationPrefix, sequence.SourceFunc(store.ListIDs))
	for _, opt := range opts {
		if opt != nil {
			opt(s)
		}
	}
	return s
}

var tracer = otel.Tracer("veriport/verification")

// Submit validates the claim, compares it against the directory and stores a
// new record together with its consent and completion audit events.
func (s *Service) Submit(ctx context.Context, cmd SubmitCommand) (result *SubmitResult, err error) {
	ctx, span := tracer.Start(ctx, "verification.Submit")
	defer func() {
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, dErrors.Message(err))
		}
		span.End()
	}()
	start := time.Now()

	if cmd.VerifierID.IsNil() {
		return nil, dErrors.New(dErrors.CodeUnauthorized, "verifier is required")
	}
	if !cmd.ConsentGiven {
		return nil, dErrors.New(dErrors.CodeMissingConsent, "employee consent is required")
	}
	claim := models.NormalizeClaim(cmd.Claim)
	if err := models.ValidateClaim(claim); err != nil {
		return nil, err
	}
	employeeID := id.EmployeeID(claim.EmployeeID)

	rec, err := s.directory.FindByID(ctx, employeeID)
	if err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return nil, dErrors.New(dErrors.CodeNotFound, "employee not found")
		}
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to load employee")
	}

	outcome := comparison.Evaluate(claim, rec)
	now := requestcontext.Now(ctx)
	record := &models.Record{
		EmployeeID:    employeeID,
		VerifierID:    cmd.VerifierID,
		Claim:         claim,
		Results:       outcome.Fields,
		OverallStatus: outcome.OverallStatus,
		MatchScore:    outcome.MatchScore,
		ConsentGiven:  true,
		CompletedAt:   now,
	}

	txCtx := txcontext.WithShardKey(ctx, id.VerificationPrefix)
	allocated, err := sequence.InsertTx(txCtx, s.tx, s.ids, s.attempts, func(ctx context.Context, candidate string) error {
		record.ID = id.VerificationID(candidate)
		if err := s.store.Create(ctx, record); err != nil {
			if errors.Is(err, sentinel.ErrConflict) {
				s.metrics.IncrementIDConflict()
			}
			return err
		}
		return s.emitCreated(ctx, record)
	})
	if err != nil {
		if errors.Is(err, sequence.ErrExhausted) {
			return nil, dErrors.Wrap(err, dErrors.CodeConflict, "could not allocate a verification id")
		}
		if dErrors.GetCode(err) == dErrors.CodeTimeout {
			return nil, err
		}
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to store verification")
	}
	record.ID = id.VerificationID(allocated)

	span.SetAttributes(
		attribute.String("verification.id", allocated),
		attribute.String("verification.status", string(outcome.OverallStatus)),
		attribute.Int("verification.score", outcome.MatchScore),
	)
	s.metrics.ObserveOutcome(string(outcome.OverallStatus), outcome.MatchScore)
	s.metrics.ObserveSubmitLatency(time.Since(start))
	s.logger.InfoContext(ctx, "verification completed",
		"verification_id", record.ID,
		"employee_id", employeeID,
		"verifier_id", cmd.VerifierID,
		"status", outcome.OverallStatus,
		"match_score", outcome.MatchScore,
	)

	return &SubmitResult{
		Record:   record,
		Employee: models.NewEmployeeView(rec, now),
		Result:   outcome,
	}, nil
}

func (s *Service) emitCreated(ctx context.Context, record *models.Record) error {
	base := audit.Event{
		Timestamp:  record.CompletedAt,
		ActorID:    record.VerifierID.String(),
		Subject:    record.EmployeeID.String(),
		ResourceID: record.ID.String(),
	}.WithRequestContext(ctx)

	consent := base
	consent.Action = string(audit.EventConsentRecorded)
	consent.Decision = "granted"
	if err := s.auditor.Emit(ctx, consent); err != nil {
		return err
	}

	completed := base
	completed.Action = string(audit.EventVerificationCompleted)
	completed.Decision = string(record.OverallStatus)
	return s.auditor.Emit(ctx, completed)
}

// Get returns a record by ID. Ownership is checked by the caller.
func (s *Service) Get(ctx context.Context, verificationID id.VerificationID) (*models.Record, error) {
	record, err := s.store.FindByID(ctx, verificationID)
	if err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return nil, dErrors.New(dErrors.CodeNotFound, "verification not found")
		}
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to load verification")
	}
	return record, nil
}

// GetOwned returns a record only when verifier created it. Records owned by
// someone else are reported as not found.
func (s *Service) GetOwned(ctx context.Context, verificationID id.VerificationID, verifier id.AccountID) (*models.Record, error) {
	record, err := s.Get(ctx, verificationID)
	if err != nil {
		return nil, err
	}
	if !record.OwnedBy(verifier) {
		return nil, dErrors.New(dErrors.CodeNotFound, "verification not found")
	}
	return record, nil
}

// ListByVerifier returns the verifier's records, newest first.
func (s *Service) ListByVerifier(ctx context.Context, verifier id.AccountID) ([]*models.Record, error) {
	records, err := s.store.ListByVerifier(ctx, verifier)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to list verifications")
	}
	return records, nil
}

// AttachReport records the object key of a generated report.
func (s *Service) AttachReport(ctx context.Context, verificationID id.VerificationID, key string) error {
	if err := s.store.AttachReport(ctx, verificationID, key); err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return dErrors.New(dErrors.CodeNotFound, "verification not found")
		}
		return dErrors.Wrap(err, dErrors.CodeInternal, "failed to attach report")
	}
	return nil
}
