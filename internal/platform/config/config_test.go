package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFromEnvDefaults(t *testing.T) {
	cfg := FromEnv()

	assert.Equal(t, ":8080", cfg.Server.Addr)
	assert.Equal(t, BackendMemory, cfg.Storage.Backend)
	assert.Equal(t, 5*time.Minute, cfg.Redis.EmployeeTTL)
	assert.Empty(t, cfg.Kafka.Brokers)
	require.NoError(t, cfg.Validate())
}

func TestFromEnvOverrides(t *testing.T) {
	t.Setenv("VERIPORT_STORAGE_BACKEND", "Postgres")
	t.Setenv("VERIPORT_DATABASE_URL", "postgres://veriport@localhost/veriport")
	t.Setenv("VERIPORT_KAFKA_BROKERS", "kafka-1:9092, kafka-2:9092,")
	t.Setenv("VERIPORT_EMPLOYEE_CACHE_TTL", "90s")
	t.Setenv("VERIPORT_SMTP_PORT", "not-a-number")

	cfg := FromEnv()

	assert.Equal(t, BackendPostgres, cfg.Storage.Backend)
	assert.Equal(t, cfg.Storage.DatabaseURL, cfg.Storage.EmployeeDatabaseURL)
	assert.Equal(t, []string{"kafka-1:9092", "kafka-2:9092"}, cfg.Kafka.Brokers)
	assert.Equal(t, 90*time.Second, cfg.Redis.EmployeeTTL)
	assert.Equal(t, 587, cfg.Mail.SMTPPort, "unparseable values fall back")
	require.NoError(t, cfg.Validate())
}

func TestValidate(t *testing.T) {
	base := func() Config {
		cfg := FromEnv()
		cfg.Storage.Backend = BackendPostgres
		cfg.Storage.DatabaseURL = "postgres://localhost/veriport"
		return cfg
	}

	t.Run("postgres requires url", func(t *testing.T) {
		cfg := base()
		cfg.Storage.DatabaseURL = ""
		assert.Error(t, cfg.Validate())
	})

	t.Run("unknown backend", func(t *testing.T) {
		cfg := base()
		cfg.Storage.Backend = "mongo"
		assert.Error(t, cfg.Validate())
	})

	t.Run("production rejects dev signing key", func(t *testing.T) {
		cfg := base()
		cfg.Server.Environment = "production"
		assert.Error(t, cfg.Validate())

		cfg.Auth.JWTSigningKey = "0123456789abcdef0123456789abcdef"
		assert.NoError(t, cfg.Validate())
	})

	t.Run("production rejects memory backend", func(t *testing.T) {
		cfg := base()
		cfg.Server.Environment = "production"
		cfg.Auth.JWTSigningKey = "0123456789abcdef0123456789abcdef"
		cfg.Storage.Backend = BackendMemory
		assert.Error(t, cfg.Validate())
	})

	t.Run("rate limit needs a positive window", func(t *testing.T) {
		cfg := base()
		cfg.RateLimit.AuthWindow = 0
		assert.Error(t, cfg.Validate())

		cfg.RateLimit.Enabled = false
		assert.NoError(t, cfg.Validate())
	})

	t.Run("email requires smtp host", func(t *testing.T) {
		cfg := base()
		cfg.Mail.Enabled = true
		assert.Error(t, cfg.Validate())
	})

	t.Run("cache ttl must be positive", func(t *testing.T) {
		cfg := base()
		cfg.Redis.URL = "redis://localhost:6379"
		cfg.Redis.EmployeeTTL = 0
		assert.Error(t, cfg.Validate())
	})
}
