package ratelimit

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"
)

const (
	testLimit  = 5
	testWindow = time.Minute
)

type MemoryStoreSuite struct {
	suite.Suite
	store *MemoryStore
	clock time.Time
	ctx   context.Context
}

func TestMemoryStoreSuite(t *testing.T) {
	suite.Run(t, new(MemoryStoreSuite))
}

func (s *MemoryStoreSuite) SetupTest() {
	s.clock = time.Date(2026, time.March, 1, 9, 0, 0, 0, time.UTC)
	s.store = NewMemoryStore()
	s.store.now = func() time.Time { return s.clock }
	s.ctx = context.Background()
}

func (s *MemoryStoreSuite) allow(key string) *Result {
	result, err := s.store.Allow(s.ctx, key, testLimit, testWindow)
	s.Require().NoError(err)
	return result
}

func (s *MemoryStoreSuite) TestAllowUpToLimit() {
	first := s.allow("auth:10.0.0.1")
	s.True(first.Allowed)
	s.Equal(testLimit, first.Limit)
	s.Equal(testLimit-1, first.Remaining)
	s.Equal(s.clock.Add(testWindow), first.ResetAt)

	var last *Result
	for range testLimit - 1 {
		last = s.allow("auth:10.0.0.1")
	}
	s.True(last.Allowed)
	s.Zero(last.Remaining)

	denied := s.allow("auth:10.0.0.1")
	s.False(denied.Allowed)
	s.Zero(denied.Remaining)
}

func (s *MemoryStoreSuite) TestKeysAreIndependent() {
	for range testLimit {
		s.allow("auth:10.0.0.1")
	}
	s.False(s.allow("auth:10.0.0.1").Allowed)
	s.True(s.allow("auth:10.0.0.2").Allowed)
}

func (s *MemoryStoreSuite) TestWindowSlides() {
	for range testLimit {
		s.allow("auth:10.0.0.1")
		s.clock = s.clock.Add(10 * time.Second)
	}
	s.False(s.allow("auth:10.0.0.1").Allowed)

	// The oldest hit leaves the window one minute after it was recorded.
	s.clock = time.Date(2026, time.March, 1, 9, 1, 0, 1, time.UTC)
	result := s.allow("auth:10.0.0.1")
	s.True(result.Allowed)
	s.Zero(result.Remaining)
}

func (s *MemoryStoreSuite) TestRejectedHitsAreNotRecorded() {
	for range testLimit {
		s.allow("auth:10.0.0.1")
	}
	for range 10 {
		s.False(s.allow("auth:10.0.0.1").Allowed)
	}
	s.clock = s.clock.Add(testWindow + time.Nanosecond)
	s.Equal(testLimit-1, s.allow("auth:10.0.0.1").Remaining)
}

func (s *MemoryStoreSuite) TestConcurrentCallersNeverExceedLimit() {
	var (
		wg      sync.WaitGroup
		mu      sync.Mutex
		allowed int
	)
	for range 50 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			result, err := s.store.Allow(s.ctx, "auth:10.0.0.9", testLimit, testWindow)
			if err == nil && result.Allowed {
				mu.Lock()
				allowed++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()
	s.Equal(testLimit, allowed)
}
