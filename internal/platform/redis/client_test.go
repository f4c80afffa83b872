package redis

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"veriport/internal/platform/config"
)

func TestNewWithoutURLIsDisabled(t *testing.T) {
	c, err := New(context.Background(), config.RedisConfig{})
	require.NoError(t, err)
	assert.Nil(t, c)
}

func TestOptions(t *testing.T) {
	t.Run("settings override the url", func(t *testing.T) {
		opts, err := Options(config.RedisConfig{
			URL:          "redis://:pw@cache.internal:6380/2",
			PoolSize:     7,
			MinIdleConns: 3,
			DialTimeout:  2 * time.Second,
			ReadTimeout:  time.Second,
			WriteTimeout: time.Second,
		})
		require.NoError(t, err)
		assert.Equal(t, "cache.internal:6380", opts.Addr)
		assert.Equal(t, "pw", opts.Password)
		assert.Equal(t, 2, opts.DB)
		assert.Equal(t, 7, opts.PoolSize)
		assert.Equal(t, 3, opts.MinIdleConns)
		assert.Equal(t, 2*time.Second, opts.DialTimeout)
	})

	t.Run("zero settings keep the url values", func(t *testing.T) {
		opts, err := Options(config.RedisConfig{URL: "redis://localhost:6379/0?pool_size=4"})
		require.NoError(t, err)
		assert.Equal(t, 4, opts.PoolSize)
	})

	t.Run("invalid url", func(t *testing.T) {
		_, err := Options(config.RedisConfig{URL: "http://localhost"})
		require.Error(t, err)
	})
}
