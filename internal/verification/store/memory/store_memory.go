package memory

import (
	"context"
	"slices"
	"sync"
	"time"

	"veriport/internal/comparison"
	"veriport/internal/verification/models"
	id "veriport/pkg/domain"
	"veriport/pkg/platform/sentinel"
)

// InMemoryStore keeps verification records in process. Records are copied on
// the way in and out so callers never share state with the store.
type InMemoryStore struct {
	mu      sync.RWMutex
	records map[id.VerificationID]*models.Record
}

func New() *InMemoryStore {
	return &InMemoryStore{records: make(map[id.VerificationID]*models.Record)}
}

func (s *InMemoryStore) Create(_ context.Context, record *models.Record) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.records[record.ID]; exists {
		return sentinel.ErrConflict
	}
	s.records[record.ID] = clone(record)
	return nil
}

func (s *InMemoryStore) FindByID(_ context.Context, verificationID id.VerificationID) (*models.Record, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	r, ok := s.records[verificationID]
	if !ok {
		return nil, sentinel.ErrNotFound
	}
	return clone(r), nil
}

func (s *InMemoryStore) ListByVerifier(_ context.Context, verifierID id.AccountID) ([]*models.Record, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]*models.Record, 0)
	for _, r := range s.records {
		if r.VerifierID == verifierID {
			out = append(out, clone(r))
		}
	}
	sortNewestFirst(out)
	return out, nil
}

func (s *InMemoryStore) ListIDs(_ context.Context) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	ids := make([]string, 0, len(s.records))
	for k := range s.records {
		ids = append(ids, string(k))
	}
	return ids, nil
}

func (s *InMemoryStore) AttachReport(_ context.Context, verificationID id.VerificationID, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	r, ok := s.records[verificationID]
	if !ok {
		return sentinel.ErrNotFound
	}
	r.ReportKey = key
	return nil
}

// CountByStatus counts records per overall status.
func (s *InMemoryStore) CountByStatus(_ context.Context) (map[comparison.Status]int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	counts := make(map[comparison.Status]int)
	for _, r := range s.records {
		counts[r.OverallStatus]++
	}
	return counts, nil
}

// ListRecent returns up to limit records across all verifiers, newest first.
func (s *InMemoryStore) ListRecent(_ context.Context, limit int) ([]*models.Record, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]*models.Record, 0, len(s.records))
	for _, r := range s.records {
		out = append(out, clone(r))
	}
	sortNewestFirst(out)
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

// DailyCounts counts records completed on each UTC day since from.
func (s *InMemoryStore) DailyCounts(_ context.Context, from time.Time) (map[string]int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	counts := make(map[string]int)
	for _, r := range s.records {
		if r.CompletedAt.Before(from) {
			continue
		}
		counts[r.CompletedAt.UTC().Format(time.DateOnly)]++
	}
	return counts, nil
}

func sortNewestFirst(records []*models.Record) {
	slices.SortFunc(records, func(a, b *models.Record) int {
		if c := b.CompletedAt.Compare(a.CompletedAt); c != 0 {
			return c
		}
		return -compareIDs(a.ID, b.ID)
	})
}

func compareIDs(a, b id.VerificationID) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	}
	return 0
}

func clone(r *models.Record) *models.Record {
	c := *r
	c.Results = slices.Clone(r.Results)
	return &c
}
