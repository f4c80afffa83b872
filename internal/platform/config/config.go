package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// Storage backends selectable at startup.
const (
	BackendMemory   = "memory"
	BackendPostgres = "postgres"
)

// Config is the full process configuration, built once in main.
type Config struct {
	Server      Server
	Storage     Storage
	Redis       RedisConfig
	Kafka       KafkaConfig
	ObjectStore ObjectStoreConfig
	Mail        MailConfig
	Auth        AuthConfig
	RateLimit   RateLimitConfig
	Seed        SeedConfig
}

// Server captures HTTP server level configuration.
type Server struct {
	Addr            string
	Environment     string
	LogLevel        string
	ShutdownTimeout time.Duration
	MetricsEnabled  bool
	// MetricsToken, when set, must accompany /metrics scrapes.
	MetricsToken string
}

// Storage selects the storage port implementation.
type Storage struct {
	Backend string
	// DatabaseURL holds verifications, appeals, accounts and the audit outbox.
	DatabaseURL string
	// EmployeeDatabaseURL is the HR directory; defaults to DatabaseURL.
	EmployeeDatabaseURL string
	RunMigrations       bool
	TxTimeout           time.Duration
}

// RedisConfig configures the employee cache. An empty URL disables it.
type RedisConfig struct {
	URL          string
	PoolSize     int
	MinIdleConns int
	DialTimeout  time.Duration
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	EmployeeTTL  time.Duration
}

// KafkaConfig configures lifecycle event publishing. No brokers disables it.
type KafkaConfig struct {
	Brokers        []string
	Topic          string
	Partitions     int32
	Replication    int16
	RelayInterval  time.Duration
	RelayBatchSize int
}

// ObjectStoreConfig configures the S3 compatible bucket for reports and
// appeal documents. An empty bucket disables uploads.
type ObjectStoreConfig struct {
	Endpoint   string
	Region     string
	Bucket     string
	AccessKey  string
	SecretKey  string
	PresignTTL time.Duration
}

// MailConfig configures outbound email.
type MailConfig struct {
	Enabled  bool
	From     string
	HRNotify string
	SMTPHost string
	SMTPPort int
	SMTPUser string
	SMTPPass string
	UseTLS   bool
}

// AuthConfig configures token issuance.
type AuthConfig struct {
	JWTSigningKey string
	Issuer        string
	TokenTTL      time.Duration
}

// RateLimitConfig throttles the public auth endpoints per client IP. Windows
// are shared through Redis when it is configured.
type RateLimitConfig struct {
	Enabled      bool
	AuthRequests int
	AuthWindow   time.Duration
}

// SeedConfig configures optional startup seeding for the memory backend.
type SeedConfig struct {
	EmployeesFile string
	AdminEmail    string
	AdminPassword string
}

const devSigningKey = "dev-secret-key-change-in-production"

// FromEnv builds a Config from environment variables so main stays lean.
func FromEnv() Config {
	databaseURL := getEnv("VERIPORT_DATABASE_URL", "")
	return Config{
		Server: Server{
			Addr:            getEnv("VERIPORT_ADDR", ":8080"),
			Environment:     getEnv("VERIPORT_ENV", "development"),
			LogLevel:        getEnv("VERIPORT_LOG_LEVEL", "info"),
			ShutdownTimeout: getEnvDuration("VERIPORT_SHUTDOWN_TIMEOUT", 15*time.Second),
			MetricsEnabled:  getEnvBool("VERIPORT_METRICS_ENABLED", true),
			MetricsToken:    getEnv("VERIPORT_METRICS_TOKEN", ""),
		},
		Storage: Storage{
			Backend:             strings.ToLower(getEnv("VERIPORT_STORAGE_BACKEND", BackendMemory)),
			DatabaseURL:         databaseURL,
			EmployeeDatabaseURL: getEnv("VERIPORT_EMPLOYEE_DATABASE_URL", databaseURL),
			RunMigrations:       getEnvBool("VERIPORT_RUN_MIGRATIONS", true),
			TxTimeout:           getEnvDuration("VERIPORT_TX_TIMEOUT", 5*time.Second),
		},
		Redis: RedisConfig{
			URL:          getEnv("VERIPORT_REDIS_URL", ""),
			PoolSize:     getEnvInt("VERIPORT_REDIS_POOL_SIZE", 10),
			MinIdleConns: getEnvInt("VERIPORT_REDIS_MIN_IDLE_CONNS", 2),
			DialTimeout:  getEnvDuration("VERIPORT_REDIS_DIAL_TIMEOUT", 5*time.Second),
			ReadTimeout:  getEnvDuration("VERIPORT_REDIS_READ_TIMEOUT", 3*time.Second),
			WriteTimeout: getEnvDuration("VERIPORT_REDIS_WRITE_TIMEOUT", 3*time.Second),
			EmployeeTTL:  getEnvDuration("VERIPORT_EMPLOYEE_CACHE_TTL", 5*time.Minute),
		},
		Kafka: KafkaConfig{
			Brokers:        splitList(getEnv("VERIPORT_KAFKA_BROKERS", "")),
			Topic:          getEnv("VERIPORT_KAFKA_TOPIC", "veriport.lifecycle"),
			Partitions:     int32(getEnvInt("VERIPORT_KAFKA_PARTITIONS", 3)),
			Replication:    int16(getEnvInt("VERIPORT_KAFKA_REPLICATION", 1)),
			RelayInterval:  getEnvDuration("VERIPORT_OUTBOX_INTERVAL", 2*time.Second),
			RelayBatchSize: getEnvInt("VERIPORT_OUTBOX_BATCH_SIZE", 100),
		},
		ObjectStore: ObjectStoreConfig{
			Endpoint:   getEnv("VERIPORT_S3_ENDPOINT", ""),
			Region:     getEnv("VERIPORT_S3_REGION", "us-east-1"),
			Bucket:     getEnv("VERIPORT_S3_BUCKET", ""),
			AccessKey:  getEnv("VERIPORT_S3_ACCESS_KEY", ""),
			SecretKey:  getEnv("VERIPORT_S3_SECRET_KEY", ""),
			PresignTTL: getEnvDuration("VERIPORT_S3_PRESIGN_TTL", 15*time.Minute),
		},
		Mail: MailConfig{
			Enabled:  getEnvBool("VERIPORT_EMAIL_ENABLED", false),
			From:     getEnv("VERIPORT_EMAIL_FROM", "no-reply@veriport.local"),
			HRNotify: getEnv("VERIPORT_HR_NOTIFY_EMAIL", ""),
			SMTPHost: getEnv("VERIPORT_SMTP_HOST", ""),
			SMTPPort: getEnvInt("VERIPORT_SMTP_PORT", 587),
			SMTPUser: getEnv("VERIPORT_SMTP_USER", ""),
			SMTPPass: getEnv("VERIPORT_SMTP_PASSWORD", ""),
			UseTLS:   getEnvBool("VERIPORT_SMTP_USE_TLS", true),
		},
		Auth: AuthConfig{
			JWTSigningKey: getEnv("VERIPORT_JWT_SIGNING_KEY", devSigningKey),
			Issuer:        getEnv("VERIPORT_JWT_ISSUER", "veriport"),
			TokenTTL:      getEnvDuration("VERIPORT_TOKEN_TTL", 8*time.Hour),
		},
		RateLimit: RateLimitConfig{
			Enabled:      getEnvBool("VERIPORT_RATELIMIT_ENABLED", true),
			AuthRequests: getEnvInt("VERIPORT_RATELIMIT_AUTH_REQUESTS", 20),
			AuthWindow:   getEnvDuration("VERIPORT_RATELIMIT_AUTH_WINDOW", time.Minute),
		},
		Seed: SeedConfig{
			EmployeesFile: getEnv("VERIPORT_SEED_EMPLOYEES_FILE", ""),
			AdminEmail:    getEnv("VERIPORT_SEED_ADMIN_EMAIL", ""),
			AdminPassword: getEnv("VERIPORT_SEED_ADMIN_PASSWORD", ""),
		},
	}
}

// IsProduction reports whether the process runs in production.
func (c Config) IsProduction() bool {
	return c.Server.Environment == "production"
}

// Validate rejects inconsistent combinations before anything is wired.
func (c Config) Validate() error {
	switch c.Storage.Backend {
	case BackendMemory:
	case BackendPostgres:
		if strings.TrimSpace(c.Storage.DatabaseURL) == "" {
			return fmt.Errorf("VERIPORT_DATABASE_URL is required for the postgres backend")
		}
	default:
		return fmt.Errorf("unknown storage backend %q", c.Storage.Backend)
	}
	if c.IsProduction() {
		if c.Auth.JWTSigningKey == devSigningKey || len(c.Auth.JWTSigningKey) < 32 {
			return fmt.Errorf("VERIPORT_JWT_SIGNING_KEY must be at least 32 characters in production")
		}
		if c.Storage.Backend == BackendMemory {
			return fmt.Errorf("the memory backend is not allowed in production")
		}
	}
	if c.Redis.URL != "" && c.Redis.EmployeeTTL <= 0 {
		return fmt.Errorf("VERIPORT_EMPLOYEE_CACHE_TTL must be positive")
	}
	if c.Auth.TokenTTL <= 0 {
		return fmt.Errorf("VERIPORT_TOKEN_TTL must be positive")
	}
	if c.Mail.Enabled && c.Mail.SMTPHost == "" {
		return fmt.Errorf("VERIPORT_SMTP_HOST must be set when VERIPORT_EMAIL_ENABLED is true")
	}
	if c.RateLimit.Enabled && (c.RateLimit.AuthRequests <= 0 || c.RateLimit.AuthWindow <= 0) {
		return fmt.Errorf("VERIPORT_RATELIMIT_AUTH_REQUESTS and VERIPORT_RATELIMIT_AUTH_WINDOW must be positive")
	}
	if len(c.Kafka.Brokers) > 0 && c.Kafka.Topic == "" {
		return fmt.Errorf("VERIPORT_KAFKA_TOPIC must be set when brokers are configured")
	}
	return nil
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func getEnvBool(key string, fallback bool) bool {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	parsed, err := strconv.ParseBool(value)
	if err != nil {
		return fallback
	}
	return parsed
}

func getEnvInt(key string, fallback int) int {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	parsed, err := strconv.Atoi(value)
	if err != nil {
		return fallback
	}
	return parsed
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	parsed, err := time.ParseDuration(value)
	if err != nil {
		return fallback
	}
	return parsed
}

func splitList(value string) []string {
	var out []string
	for _, part := range strings.Split(value, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
