package memory

import (
	"context"
	"strings"
	"sync"
	"time"

	"veriport/internal/auth/models"
	id "veriport/pkg/domain"
	"veriport/pkg/platform/sentinel"
)

// InMemoryStore keeps accounts in process, indexed by ID and by lower-cased
// email.
type InMemoryStore struct {
	mu      sync.RWMutex
	byID    map[id.AccountID]*models.Account
	byEmail map[string]id.AccountID
}

func New() *InMemoryStore {
	return &InMemoryStore{
		byID:    make(map[id.AccountID]*models.Account),
		byEmail: make(map[string]id.AccountID),
	}
}

func (s *InMemoryStore) Create(_ context.Context, account *models.Account) error {
	key := strings.ToLower(account.Email)
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.byID[account.ID]; exists {
		return sentinel.ErrConflict
	}
	if _, exists := s.byEmail[key]; exists {
		return sentinel.ErrConflict
	}
	s.byID[account.ID] = account.Clone()
	s.byEmail[key] = account.ID
	return nil
}

func (s *InMemoryStore) FindByID(_ context.Context, accountID id.AccountID) (*models.Account, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	a, ok := s.byID[accountID]
	if !ok {
		return nil, sentinel.ErrNotFound
	}
	return a.Clone(), nil
}

func (s *InMemoryStore) FindByEmail(_ context.Context, email string) (*models.Account, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	accountID, ok := s.byEmail[strings.ToLower(email)]
	if !ok {
		return nil, sentinel.ErrNotFound
	}
	return s.byID[accountID].Clone(), nil
}

func (s *InMemoryStore) RecordLogin(_ context.Context, accountID id.AccountID, at time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	a, ok := s.byID[accountID]
	if !ok {
		return sentinel.ErrNotFound
	}
	a.LastLoginAt = &at
	return nil
}
