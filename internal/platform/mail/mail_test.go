package mail

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"veriport/internal/platform/config"
)

func TestBuildMessage(t *testing.T) {
	raw := string(buildMessage("no-reply@veriport.local", Message{
		To:      "hr@acme.com",
		Subject: "New appeal\r\nBcc: attacker@evil.com",
		Body:    "body text",
	}))

	headers, body, found := strings.Cut(raw, "\r\n\r\n")
	require.True(t, found)
	assert.Equal(t, "body text", body)
	assert.Contains(t, headers, "From: no-reply@veriport.local")
	assert.Contains(t, headers, "To: hr@acme.com")
	assert.Contains(t, headers, "Subject: New appeal  Bcc: attacker@evil.com")
	assert.NotContains(t, headers, "\r\nBcc:")
}

func TestNewFallsBackToNoop(t *testing.T) {
	assert.IsType(t, noopMailer{}, New(config.MailConfig{Enabled: false, SMTPHost: "smtp.acme.com"}))
	assert.IsType(t, noopMailer{}, New(config.MailConfig{Enabled: true}))
	assert.IsType(t, &smtpMailer{}, New(config.MailConfig{Enabled: true, SMTPHost: "smtp.acme.com"}))
}

func TestSMTPMailerSkipsEmptyRecipient(t *testing.T) {
	m := New(config.MailConfig{Enabled: true, SMTPHost: "127.0.0.1", SMTPPort: 1})
	require.NoError(t, m.Send(context.Background(), Message{To: "  "}))
}
