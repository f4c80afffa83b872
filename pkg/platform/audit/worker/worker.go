package worker

import (
	"context"
	"log/slog"

	audit "veriport/pkg/platform/audit"
)

// Worker consumes audit events from a channel and persists them. When the
// inbox is closed it returns after the last buffered event.
type Worker struct {
	store  audit.Store
	inbox  <-chan audit.Event
	logger *slog.Logger
}

func NewWorker(store audit.Store, inbox <-chan audit.Event, logger *slog.Logger) *Worker {
	return &Worker{store: store, inbox: inbox, logger: logger}
}

// Run drains the inbox until it is closed. Append failures are logged and do
// not stop the worker.
func (w *Worker) Run(ctx context.Context) {
	for event := range w.inbox {
		if err := w.store.Append(ctx, event); err != nil {
			w.logger.ErrorContext(ctx, "audit append failed",
				"action", event.Action,
				"error", err,
			)
		}
	}
}
