// Package sequence allocates human-readable sequential IDs ("VER000042").
//
// Allocation is derived from the IDs already stored, with no separate counter.
// Two callers that read the same collection state receive the same ID, so the
// storage layer must reject duplicate keys and callers retry through Insert.
package sequence

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strconv"

	"veriport/pkg/platform/sentinel"
	txcontext "veriport/pkg/platform/tx"
)

const width = 6

// DefaultAttempts bounds Insert retries on key conflicts.
const DefaultAttempts = 5

// ErrExhausted is returned when every insert attempt hit a key conflict.
var ErrExhausted = errors.New("sequence: id allocation attempts exhausted")

// Next returns the ID following the highest prefix-matching entry of existing.
// Entries not of the form prefix + digits are ignored.
func Next(prefix string, existing []string) string {
	pattern := regexp.MustCompile(`^` + regexp.QuoteMeta(prefix) + `(\d+)$`)
	highest := 0
	for _, id := range existing {
		m := pattern.FindStringSubmatch(id)
		if m == nil {
			continue
		}
		n, err := strconv.Atoi(m[1])
		if err != nil {
			continue
		}
		if n > highest {
			highest = n
		}
	}
	return fmt.Sprintf("%s%0*d", prefix, width, highest+1)
}

// Allocator hands out candidate IDs.
type Allocator interface {
	Allocate(ctx context.Context) (string, error)
}

// Source lists the IDs currently held by a collection.
type Source interface {
	ListIDs(ctx context.Context) ([]string, error)
}

// SourceFunc adapts a function to Source.
type SourceFunc func(ctx context.Context) ([]string, error)

func (f SourceFunc) ListIDs(ctx context.Context) ([]string, error) {
	return f(ctx)
}

// ScanAllocator derives the next ID by scanning its source.
type ScanAllocator struct {
	prefix string
	source Source
}

// NewScanAllocator builds an allocator for prefix over source.
func NewScanAllocator(prefix string, source Source) *ScanAllocator {
	return &ScanAllocator{prefix: prefix, source: source}
}

func (a *ScanAllocator) Allocate(ctx context.Context) (string, error) {
	ids, err := a.source.ListIDs(ctx)
	if err != nil {
		return "", fmt.Errorf("list %s ids: %w", a.prefix, err)
	}
	return Next(a.prefix, ids), nil
}

// Insert allocates an ID and passes it to insert, retrying with a fresh ID
// while insert reports sentinel.ErrConflict.
func Insert(ctx context.Context, alloc Allocator, attempts int, insert func(id string) error) (string, error) {
	if attempts <= 0 {
		attempts = DefaultAttempts
	}
	for range attempts {
		if err := ctx.Err(); err != nil {
			return "", err
		}
		id, err := alloc.Allocate(ctx)
		if err != nil {
			return "", err
		}
		err = insert(id)
		if err == nil {
			return id, nil
		}
		if !errors.Is(err, sentinel.ErrConflict) {
			return "", err
		}
	}
	return "", ErrExhausted
}

// InsertTx is Insert with allocation and insert run as one unit of work per
// attempt. A runner that serializes on a shard key (the memory backend) never
// sees a conflict; a SQL runner rolls the failed attempt back and retries.
func InsertTx(ctx context.Context, runner txcontext.Runner, alloc Allocator, attempts int,
	insert func(ctx context.Context, id string) error,
) (string, error) {
	if attempts <= 0 {
		attempts = DefaultAttempts
	}
	for range attempts {
		var id string
		err := runner.RunInTx(ctx, func(ctx context.Context) error {
			var err error
			if id, err = alloc.Allocate(ctx); err != nil {
				return err
			}
			return insert(ctx, id)
		})
		if err == nil {
			return id, nil
		}
		if !errors.Is(err, sentinel.ErrConflict) {
			return "", err
		}
	}
	return "", ErrExhausted
}
