package service

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"golang.org/x/sync/errgroup"

	"veriport/internal/appeal/metrics"
	"veriport/internal/appeal/models"
	"veriport/internal/employee"
	"veriport/internal/platform/objectstore"
	"veriport/internal/sequence"
	vmodels "veriport/internal/verification/models"
	id "veriport/pkg/domain"
	dErrors "veriport/pkg/domain-errors"
	"veriport/pkg/platform/audit"
	"veriport/pkg/platform/sentinel"
	"veriport/pkg/platform/textutil"
	txcontext "veriport/pkg/platform/tx"
	"veriport/pkg/requestcontext"
)

// Store persists appeals.
//
// Create returns sentinel.ErrConflict for a taken appeal ID and
// sentinel.ErrAlreadyUsed when the verification already has an appeal.
// ResolveIfPending returns sentinel.ErrInvalidState when the appeal is no
// longer pending.
type Store interface {
	Create(ctx context.Context, appeal *models.Appeal) error
	FindByID(ctx context.Context, appealID id.AppealID) (*models.Appeal, error)
	FindByVerification(ctx context.Context, verificationID id.VerificationID) (*models.Appeal, error)
	List(ctx context.Context, filter models.Filter) ([]*models.Appeal, error)
	ListByVerifier(ctx context.Context, verifierID id.AccountID) ([]*models.Appeal, error)
	ListIDs(ctx context.Context) ([]string, error)
	ResolveIfPending(ctx context.Context, appealID id.AppealID, res models.Resolution) (*models.Appeal, error)
}

// Verifications resolves the verification an appeal is raised against.
type Verifications interface {
	Get(ctx context.Context, verificationID id.VerificationID) (*vmodels.Record, error)
	GetOwned(ctx context.Context, verificationID id.VerificationID, verifier id.AccountID) (*vmodels.Record, error)
}

// AuditPublisher is the fail-closed compliance sink.
type AuditPublisher interface {
	Emit(ctx context.Context, event audit.Event) error
}

// Notifier delivers best-effort notices about appeal activity.
type Notifier interface {
	AppealCreated(ctx context.Context, appeal *models.Appeal) error
	AppealResolved(ctx context.Context, appeal *models.Appeal) error
}

// DocumentStore keeps uploaded supporting documents.
type DocumentStore interface {
	Put(ctx context.Context, key, contentType string, body []byte) error
	Delete(ctx context.Context, key string) error
}

// Document is an uploaded supporting file.
type Document struct {
	Filename    string
	ContentType string
	Body        []byte
}

// CreateCommand is a verifier's dispute of a verification. Documents are
// uploaded and their keys appended to DocumentRefs.
type CreateCommand struct {
	VerificationID id.VerificationID
	VerifierID     id.AccountID
	Reason         string
	DocumentRefs   []string
	Documents      []Document
}

// ResolveCommand is a reviewer's decision on a pending appeal.
type ResolveCommand struct {
	AppealID    id.AppealID
	Decision    string
	Response    string
	ReviewerID  id.AccountID
	Role        id.Role
	Permissions []id.Permission
}

// Detail is an appeal with the verification it disputes and the current
// authoritative record.
type Detail struct {
	Appeal       *models.Appeal
	Verification *vmodels.Record
	Employee     *vmodels.EmployeeView
}

// Service runs the appeal lifecycle.
type Service struct {
	store         Store
	verifications Verifications
	directory     employee.Reader
	tx            txcontext.Runner
	ids           sequence.Allocator
	auditor       AuditPublisher
	notifier      Notifier
	documents     DocumentStore
	logger        *slog.Logger
	metrics       *metrics.Metrics
	attempts      int
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

func WithNotifier(n Notifier) Option {
	return func(s *Service) {
		s.notifier = n
	}
}

// WithDocumentStore enables document uploads on Create.
func WithDocumentStore(d DocumentStore) Option {
	return func(s *Service) {
		s.documents = d
	}
}

// WithDirectory enables the employee view on Detail.
func WithDirectory(d employee.Reader) Option {
	return func(s *Service) {
		s.directory = d
	}
}

func WithAllocator(a sequence.Allocator) Option {
	return func(s *Service) {
		if a != nil {
			s.ids = a
		}
	}
}

func New(store Store, verifications Verifications, tx txcontext.Runner, auditor AuditPublisher, opts ...Option) *Service {
	s := &Service{
		store:         store,
		verifications: verifications,
		tx:            tx,
		auditor:       auditor,
		logger:        slog.Default(),
		attempts:      sequence.DefaultAttempts,
	}
	s.ids = sequence.NewScanAllocator(id.AppealPrefix, sequence.SourceFunc(store.ListIDs))
	for _, opt := range opts {
		if opt != nil {
			opt(s)
		}
	}
	return s
}

var tracer = otel.Tracer("veriport/appeal")

// Create opens a pending appeal on one of the verifier's own verifications.
// A verification may carry at most one appeal, whatever its status.
func (s *Service) Create(ctx context.Context, cmd CreateCommand) (appeal *models.Appeal, err error) {
	ctx, span := tracer.Start(ctx, "appeal.Create")
	defer func() {
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, dErrors.Message(err))
		}
		span.End()
	}()

	if cmd.VerifierID.IsNil() {
		return nil, dErrors.New(dErrors.CodeUnauthorized, "verifier is required")
	}
	reason := strings.TrimSpace(cmd.Reason)
	if err := models.ValidateReason(reason); err != nil {
		return nil, err
	}
	refs := textutil.CompactUnique(cmd.DocumentRefs)
	if len(refs)+len(cmd.Documents) > models.MaxDocuments {
		return nil, dErrors.New(dErrors.CodeValidation, "too many documents")
	}

	record, err := s.verifications.GetOwned(ctx, cmd.VerificationID, cmd.VerifierID)
	if err != nil {
		return nil, err
	}
	appeal, err = models.New(record, reason, refs, requestcontext.Now(ctx))
	if err != nil {
		return nil, err
	}

	if _, err := s.store.FindByVerification(ctx, record.ID); err == nil {
		return nil, errAlreadyAppealed()
	} else if !errors.Is(err, sentinel.ErrNotFound) {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to check existing appeals")
	}

	var uploaded []string
	if len(cmd.Documents) > 0 {
		uploaded, err = s.upload(ctx, record.EmployeeID, cmd.Documents)
		if err != nil {
			return nil, err
		}
		appeal.DocumentRefs = append(appeal.DocumentRefs, uploaded...)
	}

	txCtx := txcontext.WithShardKey(ctx, id.AppealPrefix)
	allocated, err := sequence.InsertTx(txCtx, s.tx, s.ids, s.attempts, func(ctx context.Context, candidate string) error {
		appeal.ID = id.AppealID(candidate)
		if err := s.store.Create(ctx, appeal); err != nil {
			return err
		}
		return s.emit(ctx, appeal, audit.EventAppealCreated, appeal.VerifierID, string(appeal.Status))
	})
	if err != nil {
		s.discard(ctx, uploaded)
		switch {
		case errors.Is(err, sentinel.ErrAlreadyUsed):
			return nil, errAlreadyAppealed()
		case errors.Is(err, sequence.ErrExhausted):
			return nil, dErrors.Wrap(err, dErrors.CodeConflict, "could not allocate an appeal id")
		case dErrors.GetCode(err) == dErrors.CodeTimeout:
			return nil, err
		}
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to store appeal")
	}
	appeal.ID = id.AppealID(allocated)

	span.SetAttributes(
		attribute.String("appeal.id", allocated),
		attribute.String("verification.id", string(record.ID)),
		attribute.Int("appeal.mismatched_fields", len(appeal.MismatchedFields)),
	)
	s.metrics.IncrementCreated(len(appeal.DocumentRefs) > 0)
	s.logger.InfoContext(ctx, "appeal created",
		"appeal_id", appeal.ID,
		"verification_id", appeal.VerificationID,
		"verifier_id", appeal.VerifierID,
		"mismatched_fields", len(appeal.MismatchedFields),
	)

	if s.notifier != nil {
		if err := s.notifier.AppealCreated(ctx, appeal); err != nil {
			s.notifyFailed(ctx, "appeal_created", appeal, err)
		}
	}
	return appeal, nil
}

// Resolve moves a pending appeal to approved or rejected. The transition
// happens once; later attempts fail with CodeInvalidState and change nothing.
func (s *Service) Resolve(ctx context.Context, cmd ResolveCommand) (appeal *models.Appeal, err error) {
	ctx, span := tracer.Start(ctx, "appeal.Resolve")
	defer func() {
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, dErrors.Message(err))
		}
		span.End()
	}()
	span.SetAttributes(attribute.String("appeal.id", string(cmd.AppealID)))

	if cmd.ReviewerID.IsNil() {
		return nil, dErrors.New(dErrors.CodeUnauthorized, "reviewer is required")
	}
	if !id.Can(cmd.Role, cmd.Permissions, id.PermManageAppeals) {
		return nil, dErrors.New(dErrors.CodeForbidden, "manage_appeals permission required")
	}
	decision, err := models.ParseDecision(cmd.Decision)
	if err != nil {
		return nil, err
	}
	response := strings.TrimSpace(cmd.Response)
	if err := models.ValidateResponse(response); err != nil {
		return nil, err
	}

	current, err := s.Get(ctx, cmd.AppealID)
	if err != nil {
		return nil, err
	}
	if err := current.CanResolve(); err != nil {
		s.metrics.IncrementResolveConflict()
		return nil, err
	}

	res := models.Resolution{
		Decision:   decision,
		Response:   response,
		ReviewerID: cmd.ReviewerID,
		ReviewedAt: requestcontext.Now(ctx),
	}
	err = s.tx.RunInTx(txcontext.WithShardKey(ctx, string(cmd.AppealID)), func(ctx context.Context) error {
		resolved, err := s.store.ResolveIfPending(ctx, cmd.AppealID, res)
		if err != nil {
			return err
		}
		appeal = resolved
		return s.emit(ctx, resolved, audit.EventAppealResolved, cmd.ReviewerID, string(decision))
	})
	if err != nil {
		switch {
		case errors.Is(err, sentinel.ErrInvalidState):
			s.metrics.IncrementResolveConflict()
			return nil, dErrors.New(dErrors.CodeInvalidState, "appeal has already been resolved")
		case errors.Is(err, sentinel.ErrNotFound):
			return nil, dErrors.New(dErrors.CodeNotFound, "appeal not found")
		case dErrors.GetCode(err) == dErrors.CodeTimeout:
			return nil, err
		}
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to resolve appeal")
	}

	s.metrics.IncrementResolved(string(decision))
	s.logger.InfoContext(ctx, "appeal resolved",
		"appeal_id", appeal.ID,
		"decision", decision,
		"reviewer_id", cmd.ReviewerID,
	)

	if s.notifier != nil {
		if err := s.notifier.AppealResolved(ctx, appeal); err != nil {
			s.notifyFailed(ctx, "appeal_resolved", appeal, err)
		}
	}
	return appeal, nil
}

// Get returns an appeal by ID.
func (s *Service) Get(ctx context.Context, appealID id.AppealID) (*models.Appeal, error) {
	appeal, err := s.store.FindByID(ctx, appealID)
	if err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return nil, dErrors.New(dErrors.CodeNotFound, "appeal not found")
		}
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to load appeal")
	}
	return appeal, nil
}

// GetDetail loads an appeal together with its verification and, when a
// directory is configured, the current employee record.
func (s *Service) GetDetail(ctx context.Context, appealID id.AppealID) (*Detail, error) {
	appeal, err := s.Get(ctx, appealID)
	if err != nil {
		return nil, err
	}
	detail := &Detail{Appeal: appeal}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		record, err := s.verifications.Get(gctx, appeal.VerificationID)
		if err != nil {
			return err
		}
		detail.Verification = record
		return nil
	})
	if s.directory != nil {
		g.Go(func() error {
			rec, err := s.directory.FindByID(gctx, appeal.EmployeeID)
			if err != nil {
				if errors.Is(err, sentinel.ErrNotFound) {
					return nil
				}
				return dErrors.Wrap(err, dErrors.CodeInternal, "failed to load employee")
			}
			view := vmodels.NewEmployeeView(rec, requestcontext.Now(gctx))
			detail.Employee = &view
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return detail, nil
}

// List returns appeals matching filter, newest first.
func (s *Service) List(ctx context.Context, filter models.Filter) ([]*models.Appeal, error) {
	appeals, err := s.store.List(ctx, filter)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to list appeals")
	}
	return appeals, nil
}

// ListByVerifier returns the verifier's own appeals, newest first.
func (s *Service) ListByVerifier(ctx context.Context, verifier id.AccountID) ([]*models.Appeal, error) {
	appeals, err := s.store.ListByVerifier(ctx, verifier)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to list appeals")
	}
	return appeals, nil
}

func (s *Service) emit(ctx context.Context, appeal *models.Appeal, action audit.AuditEvent, actor id.AccountID, decision string) error {
	event := audit.Event{
		Timestamp:  requestcontext.Now(ctx),
		ActorID:    actor.String(),
		Subject:    appeal.EmployeeID.String(),
		ResourceID: appeal.ID.String(),
		Action:     string(action),
		Decision:   decision,
		Reason:     string(appeal.VerificationID),
	}.WithRequestContext(ctx)
	return s.auditor.Emit(ctx, event)
}

// upload stores documents before the appeal is written. Create discards
// them again when the appeal cannot be stored.
func (s *Service) upload(ctx context.Context, employeeID id.EmployeeID, docs []Document) ([]string, error) {
	if s.documents == nil {
		return nil, dErrors.New(dErrors.CodeBadRequest, "document uploads are not enabled")
	}
	keys := make([]string, 0, len(docs))
	for _, d := range docs {
		if len(d.Body) == 0 {
			return nil, dErrors.New(dErrors.CodeValidation, "document "+d.Filename+" is empty")
		}
		contentType := d.ContentType
		if contentType == "" {
			contentType = "application/octet-stream"
		}
		key := objectstore.AppealDocumentKey(employeeID.String(), d.Filename)
		if err := s.documents.Put(ctx, key, contentType, d.Body); err != nil {
			s.discard(ctx, keys)
			return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to store document")
		}
		keys = append(keys, key)
	}
	return keys, nil
}

// discard removes uploaded documents on a best-effort basis.
func (s *Service) discard(ctx context.Context, keys []string) {
	if len(keys) == 0 || s.documents == nil {
		return
	}
	ctx = context.WithoutCancel(ctx)
	for _, key := range keys {
		if err := s.documents.Delete(ctx, key); err != nil {
			s.logger.WarnContext(ctx, "failed to discard appeal document",
				"key", key,
				"error", err,
			)
		}
	}
}

func (s *Service) notifyFailed(ctx context.Context, kind string, appeal *models.Appeal, err error) {
	s.metrics.IncrementNotificationFailure(kind)
	s.logger.WarnContext(ctx, "appeal notification failed",
		"kind", kind,
		"appeal_id", appeal.ID,
		"error", err,
	)
}

func errAlreadyAppealed() error {
	return dErrors.New(dErrors.CodeInvalidState, "an appeal already exists for this verification")
}

