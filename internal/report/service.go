package report

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"veriport/internal/platform/mail"
	"veriport/internal/platform/objectstore"
	vmodels "veriport/internal/verification/models"
	id "veriport/pkg/domain"
	dErrors "veriport/pkg/domain-errors"
	"veriport/pkg/platform/audit"
	"veriport/pkg/requestcontext"
)

const pdfContentType = "application/pdf"

// Verifications is the part of the verification service reports need.
type Verifications interface {
	GetOwned(ctx context.Context, verificationID id.VerificationID, verifier id.AccountID) (*vmodels.Record, error)
	AttachReport(ctx context.Context, verificationID id.VerificationID, key string) error
}

type AuditPublisher interface {
	Emit(ctx context.Context, event audit.Event) error
}

type GenerateCommand struct {
	VerificationID id.VerificationID
	VerifierID     id.AccountID
	VerifierEmail  string
	SendEmail      bool
}

type Result struct {
	VerificationID id.VerificationID
	Key            string
	DownloadURL    string
	Reused         bool
	EmailSent      bool
}

// Service renders a report once per verification and hands out presigned
// links to it.
type Service struct {
	verifications Verifications
	objects       objectstore.Store
	mailer        mail.Mailer
	auditor       AuditPublisher
	logger        *slog.Logger
	linkTTL       time.Duration
}

type Option func(*Service)

func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) {
		if logger != nil {
			s.logger = logger
		}
	}
}

func WithMailer(m mail.Mailer) Option {
	return func(s *Service) {
		if m != nil {
			s.mailer = m
		}
	}
}

func WithAuditor(a AuditPublisher) Option {
	return func(s *Service) {
		s.auditor = a
	}
}

// WithLinkTTL states the presigned link lifetime in report emails.
func WithLinkTTL(d time.Duration) Option {
	return func(s *Service) {
		s.linkTTL = d
	}
}

func NewService(verifications Verifications, objects objectstore.Store, opts ...Option) *Service {
	s := &Service{
		verifications: verifications,
		objects:       objects,
		mailer:        mail.Noop(),
		logger:        slog.Default(),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(s)
		}
	}
	return s
}

var tracer = otel.Tracer("veriport/report")

// Generate returns a download link for the verification's report, rendering
// and uploading it first when none is attached yet.
func (s *Service) Generate(ctx context.Context, cmd GenerateCommand) (*Result, error) {
	ctx, span := tracer.Start(ctx, "report.Generate")
	defer span.End()

	if cmd.VerifierID.IsNil() {
		return nil, dErrors.New(dErrors.CodeUnauthorized, "verifier is required")
	}
	if s.objects == nil {
		return nil, dErrors.New(dErrors.CodeInternal, "report storage is not configured")
	}
	record, err := s.verifications.GetOwned(ctx, cmd.VerificationID, cmd.VerifierID)
	if err != nil {
		return nil, err
	}

	result := &Result{VerificationID: record.ID, Key: record.ReportKey, Reused: record.HasReport()}
	if !result.Reused {
		key, err := s.publish(ctx, record, cmd.VerifierEmail)
		if err != nil {
			return nil, err
		}
		result.Key = key
	}
	span.SetAttributes(
		attribute.String("verification.id", string(record.ID)),
		attribute.Bool("report.reused", result.Reused),
	)

	url, err := s.objects.PresignGet(ctx, result.Key)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to create download link")
	}
	result.DownloadURL = url

	if cmd.SendEmail && cmd.VerifierEmail != "" {
		result.EmailSent = s.sendLink(ctx, record, cmd.VerifierEmail, url)
	}
	return result, nil
}

func (s *Service) publish(ctx context.Context, record *vmodels.Record, verifierEmail string) (string, error) {
	span := trace.SpanFromContext(ctx)
	now := requestcontext.Now(ctx)
	body, err := Render(record, verifierEmail, now)
	if err != nil {
		return "", dErrors.Wrap(err, dErrors.CodeInternal, "failed to render report")
	}
	span.AddEvent("report.rendered", trace.WithAttributes(attribute.Int("report.bytes", len(body))))

	key := objectstore.ReportKey(string(record.ID), now)
	if err := s.objects.Put(ctx, key, pdfContentType, body); err != nil {
		return "", dErrors.Wrap(err, dErrors.CodeInternal, "failed to store report")
	}
	span.AddEvent("report.stored", trace.WithAttributes(attribute.String("report.key", key)))
	if err := s.verifications.AttachReport(ctx, record.ID, key); err != nil {
		return "", err
	}

	s.logger.InfoContext(ctx, "report generated",
		"verification_id", record.ID,
		"key", key,
		"bytes", len(body),
	)
	if s.auditor != nil {
		event := audit.Event{
			Timestamp:  now,
			ActorID:    record.VerifierID.String(),
			Subject:    record.EmployeeID.String(),
			ResourceID: record.ID.String(),
			Action:     string(audit.EventReportGenerated),
		}.WithRequestContext(ctx)
		if err := s.auditor.Emit(ctx, event); err != nil {
			s.logger.WarnContext(ctx, "failed to emit report event", "verification_id", record.ID, "error", err)
		}
	}
	return key, nil
}

func (s *Service) sendLink(ctx context.Context, record *vmodels.Record, to, url string) bool {
	var b strings.Builder
	fmt.Fprintf(&b, "Your employment verification report for %s is ready.\n\n", record.EmployeeID)
	fmt.Fprintf(&b, "Verification ID: %s\n", record.ID)
	fmt.Fprintf(&b, "Result: %s (%d%%)\n\n", record.Result().Summary, record.MatchScore)
	fmt.Fprintf(&b, "Download: %s\n", url)
	if s.linkTTL > 0 {
		fmt.Fprintf(&b, "The link expires at %s.\n", requestcontext.Now(ctx).Add(s.linkTTL).UTC().Format(time.RFC1123))
	}

	err := s.mailer.Send(ctx, mail.Message{
		To:      to,
		Subject: "Verification report " + string(record.ID),
		Body:    b.String(),
	})
	if err != nil {
		s.logger.WarnContext(ctx, "failed to email report link",
			"verification_id", record.ID,
			"error", err,
		)
		return false
	}
	return true
}
