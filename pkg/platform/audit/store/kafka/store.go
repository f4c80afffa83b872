// Package kafka mirrors audit events straight onto the event stream for
// deployments without a database outbox.
package kafka

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	audit "veriport/pkg/platform/audit"
)

// Producer writes one record to the event stream.
type Producer interface {
	Produce(ctx context.Context, key, value []byte) error
}

// Store publishes each appended event keyed by its resource ID.
type Store struct {
	producer Producer
}

func New(producer Producer) *Store {
	return &Store{producer: producer}
}

func (s *Store) Append(ctx context.Context, event audit.Event) error {
	if event.Timestamp.IsZero() {
		event.Timestamp = time.Now()
	}
	event.Category = audit.AuditEvent(event.Action).Category()
	payload, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("marshal audit event: %w", err)
	}
	if err := s.producer.Produce(ctx, []byte(event.ResourceID), payload); err != nil {
		return fmt.Errorf("publish audit event: %w", err)
	}
	return nil
}
