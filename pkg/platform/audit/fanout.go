package audit

import (
	"context"
	"log/slog"
)

// Fanout appends to a primary store and mirrors to secondaries. Only the
// primary's failure is returned; mirror failures are logged.
type Fanout struct {
	primary Store
	mirrors []Store
	logger  *slog.Logger
}

func NewFanout(logger *slog.Logger, primary Store, mirrors ...Store) *Fanout {
	return &Fanout{primary: primary, mirrors: mirrors, logger: logger}
}

func (f *Fanout) Append(ctx context.Context, event Event) error {
	if err := f.primary.Append(ctx, event); err != nil {
		return err
	}
	for _, m := range f.mirrors {
		if err := m.Append(ctx, event); err != nil {
			f.logger.WarnContext(ctx, "audit mirror append failed",
				"action", event.Action,
				"error", err,
			)
		}
	}
	return nil
}
