package ratelimit

import (
	"context"
	"sync"
	"time"
)

// MemoryStore keeps one sliding window per key. It is not shared between
// replicas.
type MemoryStore struct {
	mu      sync.Mutex
	windows map[string][]time.Time
	now     func() time.Time
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		windows: make(map[string][]time.Time),
		now:     time.Now,
	}
}

func (s *MemoryStore) Allow(_ context.Context, key string, limit int, window time.Duration) (*Result, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	hits := prune(s.windows[key], now.Add(-window))

	if len(hits) >= limit {
		s.windows[key] = hits
		return &Result{
			Allowed: false,
			Limit:   limit,
			ResetAt: resetAt(hits, now, window),
		}, nil
	}

	hits = append(hits, now)
	s.windows[key] = hits
	return &Result{
		Allowed:   true,
		Limit:     limit,
		Remaining: limit - len(hits),
		ResetAt:   resetAt(hits, now, window),
	}, nil
}

// prune drops hits at or before cutoff. hits is ordered oldest first.
func prune(hits []time.Time, cutoff time.Time) []time.Time {
	i := 0
	for ; i < len(hits); i++ {
		if hits[i].After(cutoff) {
			break
		}
	}
	return hits[i:]
}

func resetAt(hits []time.Time, now time.Time, window time.Duration) time.Time {
	if len(hits) == 0 {
		return now.Add(window)
	}
	return hits[0].Add(window)
}
