// Package notify emails HR and verifiers about appeal lifecycle changes.
package notify

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"veriport/internal/appeal/models"
	"veriport/internal/platform/mail"
	id "veriport/pkg/domain"
	"veriport/pkg/email"
)

// Accounts resolves an account's email address.
type Accounts interface {
	Email(ctx context.Context, accountID id.AccountID) (string, error)
}

// AppealNotifier sends appeal emails. HR receives new appeals at a fixed
// address; verifiers receive the outcome of their own appeals.
type AppealNotifier struct {
	mailer   mail.Mailer
	accounts Accounts
	hrEmail  string
	logger   *slog.Logger
}

func NewAppealNotifier(mailer mail.Mailer, accounts Accounts, hrEmail string, logger *slog.Logger) *AppealNotifier {
	if logger == nil {
		logger = slog.Default()
	}
	return &AppealNotifier{mailer: mailer, accounts: accounts, hrEmail: hrEmail, logger: logger}
}

// AppealCreated emails the HR inbox. It is a no-op when no inbox is set.
func (n *AppealNotifier) AppealCreated(ctx context.Context, appeal *models.Appeal) error {
	if n.hrEmail == "" {
		n.logger.DebugContext(ctx, "no HR inbox configured; skipping appeal email", "appeal_id", appeal.ID)
		return nil
	}
	var b strings.Builder
	fmt.Fprintf(&b, "A verifier has appealed verification %s.\n\n", appeal.VerificationID)
	fmt.Fprintf(&b, "Appeal ID:   %s\n", appeal.ID)
	fmt.Fprintf(&b, "Employee ID: %s\n", appeal.EmployeeID)
	fmt.Fprintf(&b, "Submitted:   %s\n\n", appeal.CreatedAt.UTC().Format("02 Jan 2006 15:04 MST"))
	b.WriteString("Disputed fields:\n")
	for _, f := range appeal.MismatchedFields {
		fmt.Fprintf(&b, "  - %s: submitted %q, on record %q\n", f.Field.Label(), f.Submitted, f.Authoritative)
	}
	fmt.Fprintf(&b, "\nReason:\n%s\n", appeal.Reason)
	if len(appeal.DocumentRefs) > 0 {
		fmt.Fprintf(&b, "\nSupporting documents: %d attached\n", len(appeal.DocumentRefs))
	}

	return n.mailer.Send(ctx, mail.Message{
		To:      n.hrEmail,
		Subject: fmt.Sprintf("New appeal %s for employee %s", appeal.ID, appeal.EmployeeID),
		Body:    b.String(),
	})
}

// AppealResolved emails the verifier who raised the appeal.
func (n *AppealNotifier) AppealResolved(ctx context.Context, appeal *models.Appeal) error {
	to, err := n.accounts.Email(ctx, appeal.VerifierID)
	if err != nil {
		return fmt.Errorf("look up verifier %s: %w", appeal.VerifierID, err)
	}
	var b strings.Builder
	fmt.Fprintf(&b, "Hello %s,\n\n", email.DisplayName(to))
	fmt.Fprintf(&b, "Your appeal %s on verification %s has been %s.\n\n", appeal.ID, appeal.VerificationID, appeal.Status)
	fmt.Fprintf(&b, "Response from HR:\n%s\n", appeal.ReviewerResponse)
	if appeal.ReviewedAt != nil {
		fmt.Fprintf(&b, "\nReviewed: %s\n", appeal.ReviewedAt.UTC().Format("02 Jan 2006 15:04 MST"))
	}

	return n.mailer.Send(ctx, mail.Message{
		To:      to,
		Subject: fmt.Sprintf("Appeal %s %s", appeal.ID, appeal.Status),
		Body:    b.String(),
	})
}
