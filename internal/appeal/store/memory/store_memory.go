package memory

import (
	"context"
	"slices"
	"strings"
	"sync"

	"veriport/internal/appeal/models"
	id "veriport/pkg/domain"
	"veriport/pkg/platform/sentinel"
)

// InMemoryStore keeps appeals in process with a verification index that
// enforces one appeal per verification.
type InMemoryStore struct {
	mu             sync.RWMutex
	appeals        map[id.AppealID]*models.Appeal
	byVerification map[id.VerificationID]id.AppealID
}

func New() *InMemoryStore {
	return &InMemoryStore{
		appeals:        make(map[id.AppealID]*models.Appeal),
		byVerification: make(map[id.VerificationID]id.AppealID),
	}
}

func (s *InMemoryStore) Create(_ context.Context, appeal *models.Appeal) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.appeals[appeal.ID]; exists {
		return sentinel.ErrConflict
	}
	if _, exists := s.byVerification[appeal.VerificationID]; exists {
		return sentinel.ErrAlreadyUsed
	}
	s.appeals[appeal.ID] = appeal.Clone()
	s.byVerification[appeal.VerificationID] = appeal.ID
	return nil
}

func (s *InMemoryStore) FindByID(_ context.Context, appealID id.AppealID) (*models.Appeal, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	a, ok := s.appeals[appealID]
	if !ok {
		return nil, sentinel.ErrNotFound
	}
	return a.Clone(), nil
}

func (s *InMemoryStore) FindByVerification(_ context.Context, verificationID id.VerificationID) (*models.Appeal, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	appealID, ok := s.byVerification[verificationID]
	if !ok {
		return nil, sentinel.ErrNotFound
	}
	return s.appeals[appealID].Clone(), nil
}

func (s *InMemoryStore) List(_ context.Context, filter models.Filter) ([]*models.Appeal, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]*models.Appeal, 0)
	for _, a := range s.appeals {
		if filter.Matches(a) {
			out = append(out, a.Clone())
		}
	}
	sortNewestFirst(out)
	return out, nil
}

func (s *InMemoryStore) ListByVerifier(_ context.Context, verifierID id.AccountID) ([]*models.Appeal, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]*models.Appeal, 0)
	for _, a := range s.appeals {
		if a.VerifierID == verifierID {
			out = append(out, a.Clone())
		}
	}
	sortNewestFirst(out)
	return out, nil
}

func (s *InMemoryStore) ListIDs(_ context.Context) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	ids := make([]string, 0, len(s.appeals))
	for k := range s.appeals {
		ids = append(ids, string(k))
	}
	return ids, nil
}

// ResolveIfPending applies res under the store lock so that exactly one of
// several concurrent resolutions wins.
func (s *InMemoryStore) ResolveIfPending(_ context.Context, appealID id.AppealID, res models.Resolution) (*models.Appeal, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	a, ok := s.appeals[appealID]
	if !ok {
		return nil, sentinel.ErrNotFound
	}
	if a.Status != models.StatusPending {
		return nil, sentinel.ErrInvalidState
	}
	if err := a.ApplyResolution(res); err != nil {
		return nil, err
	}
	return a.Clone(), nil
}

// CountByStatus counts appeals per status.
func (s *InMemoryStore) CountByStatus(_ context.Context) (map[models.Status]int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	counts := make(map[models.Status]int)
	for _, a := range s.appeals {
		counts[a.Status]++
	}
	return counts, nil
}

func sortNewestFirst(appeals []*models.Appeal) {
	slices.SortFunc(appeals, func(a, b *models.Appeal) int {
		if c := b.CreatedAt.Compare(a.CreatedAt); c != 0 {
			return c
		}
		return strings.Compare(string(b.ID), string(a.ID))
	})
}
