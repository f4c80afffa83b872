package notify

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"veriport/internal/appeal/models"
	"veriport/internal/comparison"
	"veriport/internal/platform/mail"
	id "veriport/pkg/domain"
	"veriport/pkg/platform/sentinel"
)

type captureMailer struct {
	sent []mail.Message
}

func (c *captureMailer) Send(_ context.Context, msg mail.Message) error {
	c.sent = append(c.sent, msg)
	return nil
}

type accountsFunc func(ctx context.Context, accountID id.AccountID) (string, error)

func (f accountsFunc) Email(ctx context.Context, accountID id.AccountID) (string, error) {
	return f(ctx, accountID)
}

func sampleAppeal() *models.Appeal {
	reviewed := time.Date(2024, 6, 3, 12, 0, 0, 0, time.UTC)
	return &models.Appeal{
		ID:             "APP000001",
		VerificationID: "VER000007",
		EmployeeID:     "6002056",
		VerifierID:     id.NewAccountID(),
		Reason:         "The relieving letter shows 2 April as the last day.",
		DocumentRefs:   []string{"appeals/6002056/letter.pdf"},
		MismatchedFields: []comparison.MismatchedField{
			{Field: comparison.FieldDateOfLeaving, Submitted: "02 Apr 2024", Authoritative: "31 Mar 2024"},
		},
		Status:           models.StatusApproved,
		ReviewerResponse: "Corrected after checking payroll.",
		ReviewedAt:       &reviewed,
		CreatedAt:        time.Date(2024, 6, 1, 10, 0, 0, 0, time.UTC),
	}
}

func TestAppealCreatedEmailsHR(t *testing.T) {
	mailer := &captureMailer{}
	n := NewAppealNotifier(mailer, nil, "hr@tvs.in", nil)

	require.NoError(t, n.AppealCreated(context.Background(), sampleAppeal()))
	require.Len(t, mailer.sent, 1)
	msg := mailer.sent[0]
	assert.Equal(t, "hr@tvs.in", msg.To)
	assert.Contains(t, msg.Subject, "APP000001")
	assert.Contains(t, msg.Body, "Date of Leaving")
	assert.Contains(t, msg.Body, "relieving letter")
	assert.Contains(t, msg.Body, "1 attached")
}

func TestAppealCreatedWithoutInbox(t *testing.T) {
	mailer := &captureMailer{}
	n := NewAppealNotifier(mailer, nil, "", nil)
	require.NoError(t, n.AppealCreated(context.Background(), sampleAppeal()))
	assert.Empty(t, mailer.sent)
}

func TestAppealResolvedEmailsVerifier(t *testing.T) {
	appeal := sampleAppeal()
	mailer := &captureMailer{}
	accounts := accountsFunc(func(_ context.Context, accountID id.AccountID) (string, error) {
		assert.Equal(t, appeal.VerifierID, accountID)
		return "anita@checkr.in", nil
	})
	n := NewAppealNotifier(mailer, accounts, "hr@tvs.in", nil)

	require.NoError(t, n.AppealResolved(context.Background(), appeal))
	require.Len(t, mailer.sent, 1)
	assert.Equal(t, "anita@checkr.in", mailer.sent[0].To)
	assert.True(t, strings.HasPrefix(mailer.sent[0].Body, "Hello Anita,\n\n"))
	assert.Contains(t, mailer.sent[0].Body, "approved")
	assert.Contains(t, mailer.sent[0].Body, "Corrected after checking payroll.")
}

func TestAppealResolvedUnknownVerifier(t *testing.T) {
	accounts := accountsFunc(func(context.Context, id.AccountID) (string, error) {
		return "", sentinel.ErrNotFound
	})
	n := NewAppealNotifier(&captureMailer{}, accounts, "", nil)
	err := n.AppealResolved(context.Background(), sampleAppeal())
	assert.True(t, errors.Is(err, sentinel.ErrNotFound))
}
