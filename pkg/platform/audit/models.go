package audit

import (
	"context"
	"time"
)

// EventCategory classifies audit events by their primary purpose.
type EventCategory string

const (
	// CategoryCompliance covers events with legal or contractual weight:
	// consent evidence and every verification and appeal state change.
	CategoryCompliance EventCategory = "compliance"

	// CategorySecurity covers authentication outcomes and access violations.
	CategorySecurity EventCategory = "security"

	// CategoryOperations covers routine activity that can be sampled.
	CategoryOperations EventCategory = "operations"
)

// Event is emitted from domain logic to capture key actions. Keep it
// transport-agnostic so stores and sinks can fan out.
type Event struct {
	Category  EventCategory `json:"category"`
	Timestamp time.Time     `json:"timestamp"`
	// ActorID is the account that performed the action.
	ActorID string `json:"actor_id,omitempty"`
	// Subject is the employee the action concerns.
	Subject string `json:"subject,omitempty"`
	// ResourceID is the verification or appeal the action touched.
	ResourceID string `json:"resource_id,omitempty"`
	Action     string `json:"action"`
	Decision   string `json:"decision,omitempty"`
	Reason     string `json:"reason,omitempty"`
	RequestID  string `json:"request_id,omitempty"`
	ClientIP   string `json:"client_ip,omitempty"`
	Browser    string `json:"browser,omitempty"`
	OS         string `json:"os,omitempty"`
}

type AuditEvent string

const (
	// Verification lifecycle
	EventConsentRecorded       AuditEvent = "consent_recorded"
	EventVerificationCompleted AuditEvent = "verification_completed"
	EventReportGenerated       AuditEvent = "report_generated"

	// Appeal lifecycle
	EventAppealCreated  AuditEvent = "appeal_created"
	EventAppealResolved AuditEvent = "appeal_resolved"

	// Accounts
	EventAccountRegistered AuditEvent = "account_registered"
	EventLoginSucceeded    AuditEvent = "login_succeeded"
	EventLoginFailed       AuditEvent = "login_failed"
	EventAccessDenied      AuditEvent = "access_denied"

	// Notifications
	EventNotificationFailed AuditEvent = "notification_failed"
)

var eventCategories = map[AuditEvent]EventCategory{
	EventConsentRecorded:       CategoryCompliance,
	EventVerificationCompleted: CategoryCompliance,
	EventAppealCreated:         CategoryCompliance,
	EventAppealResolved:        CategoryCompliance,

	EventLoginFailed:  CategorySecurity,
	EventAccessDenied: CategorySecurity,

	EventReportGenerated:    CategoryOperations,
	EventAccountRegistered:  CategoryOperations,
	EventLoginSucceeded:     CategoryOperations,
	EventNotificationFailed: CategoryOperations,
}

// Category returns the EventCategory for this audit event.
// Unknown events default to CategoryOperations.
func (e AuditEvent) Category() EventCategory {
	if cat, ok := eventCategories[e]; ok {
		return cat
	}
	return CategoryOperations
}

// Store persists audit events.
type Store interface {
	Append(ctx context.Context, event Event) error
}

// Lister reads back recent events, newest first.
type Lister interface {
	ListRecent(ctx context.Context, limit int) ([]Event, error)
	ListBySubject(ctx context.Context, subject string) ([]Event, error)
}
