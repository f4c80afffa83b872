package memory

import (
	"context"
	"sync"

	"veriport/internal/employee"
	id "veriport/pkg/domain"
	"veriport/pkg/platform/sentinel"
)

// InMemoryStore is the HR directory for the memory backend.
type InMemoryStore struct {
	mu      sync.RWMutex
	records map[id.EmployeeID]employee.Record
}

func New(seed ...*employee.Record) *InMemoryStore {
	s := &InMemoryStore{records: make(map[id.EmployeeID]employee.Record, len(seed))}
	for _, r := range seed {
		if r != nil {
			s.records[r.EmployeeID] = *r
		}
	}
	return s
}

func (s *InMemoryStore) FindByID(_ context.Context, employeeID id.EmployeeID) (*employee.Record, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	r, ok := s.records[employeeID]
	if !ok {
		return nil, sentinel.ErrNotFound
	}
	return &r, nil
}

func (s *InMemoryStore) Upsert(_ context.Context, record *employee.Record) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.records[record.EmployeeID] = *record
	return nil
}

func (s *InMemoryStore) Count(_ context.Context) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.records), nil
}
