//go:build integration

package ratelimit

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"veriport/pkg/testutil/containers"
)

type RedisStoreSuite struct {
	suite.Suite
	redis *containers.RedisContainer
	store *RedisStore
	clock time.Time
}

func TestRedisStoreSuite(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}
	suite.Run(t, new(RedisStoreSuite))
}

func (s *RedisStoreSuite) SetupSuite() {
	s.redis = containers.GetManager().GetRedis(s.T())
}

func (s *RedisStoreSuite) SetupTest() {
	s.Require().NoError(s.redis.FlushAll(context.Background()))
	s.clock = time.Now().Truncate(time.Millisecond)
	s.store = NewRedisStore(s.redis.Client)
	s.store.now = func() time.Time { return s.clock }
}

func (s *RedisStoreSuite) allow(key string) *Result {
	result, err := s.store.Allow(context.Background(), key, 3, time.Minute)
	s.Require().NoError(err)
	return result
}

func (s *RedisStoreSuite) TestLimitAndSlide() {
	start := s.clock
	for i := range 3 {
		result := s.allow("auth:10.0.0.1")
		s.True(result.Allowed)
		s.Equal(2-i, result.Remaining)
		s.Equal(start.Add(time.Minute), result.ResetAt)
		s.clock = s.clock.Add(time.Second)
	}

	denied := s.allow("auth:10.0.0.1")
	s.False(denied.Allowed)
	s.Equal(start.Add(time.Minute), denied.ResetAt)

	s.True(s.allow("auth:10.0.0.2").Allowed)

	s.clock = start.Add(time.Minute + time.Millisecond)
	s.True(s.allow("auth:10.0.0.1").Allowed)
}

func (s *RedisStoreSuite) TestKeyExpires() {
	s.allow("auth:10.0.0.3")
	ttl, err := s.redis.Client.PTTL(context.Background(), redisKeyPrefix+"auth:10.0.0.3").Result()
	s.Require().NoError(err)
	s.Greater(ttl, time.Duration(0))
	s.LessOrEqual(ttl, time.Minute)
}
