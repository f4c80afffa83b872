package main

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"net/http"
	"os"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"golang.org/x/sync/errgroup"

	"veriport/internal/admin"
	appealhandler "veriport/internal/appeal/handler"
	appealmetrics "veriport/internal/appeal/metrics"
	appealservice "veriport/internal/appeal/service"
	appealmemory "veriport/internal/appeal/store/memory"
	appealpg "veriport/internal/appeal/store/postgres"
	authhandler "veriport/internal/auth/handler"
	authservice "veriport/internal/auth/service"
	authmemory "veriport/internal/auth/store/memory"
	authpg "veriport/internal/auth/store/postgres"
	"veriport/internal/employee"
	employeecache "veriport/internal/employee/store/cache"
	employeememory "veriport/internal/employee/store/memory"
	employeepg "veriport/internal/employee/store/postgres"
	jwttoken "veriport/internal/jwt_token"
	"veriport/internal/notify"
	"veriport/internal/platform/config"
	"veriport/internal/platform/kafka"
	"veriport/internal/platform/mail"
	"veriport/internal/platform/metrics"
	"veriport/internal/platform/objectstore"
	"veriport/internal/platform/postgres"
	"veriport/internal/platform/redis"
	"veriport/internal/ratelimit"
	"veriport/internal/report"
	reporthandler "veriport/internal/report/handler"
	httptransport "veriport/internal/transport/http"
	verificationhandler "veriport/internal/verification/handler"
	verificationmetrics "veriport/internal/verification/metrics"
	verificationservice "veriport/internal/verification/service"
	verificationmemory "veriport/internal/verification/store/memory"
	verificationpg "veriport/internal/verification/store/postgres"
	id "veriport/pkg/domain"
	dErrors "veriport/pkg/domain-errors"
	audit "veriport/pkg/platform/audit"
	"veriport/pkg/platform/audit/outbox"
	"veriport/pkg/platform/audit/publisher"
	"veriport/pkg/platform/audit/publishers/compliance"
	auditkafka "veriport/pkg/platform/audit/store/kafka"
	auditmemory "veriport/pkg/platform/audit/store/memory"
	auditpg "veriport/pkg/platform/audit/store/postgres"
	txcontext "veriport/pkg/platform/tx"
)

const (
	tokenAudience     = "veriport-api"
	securityBufferLen = 1024
)

// application is the wired process: the HTTP handler, background loops and
// the resources to release on shutdown, in release order.
type application struct {
	handler    http.Handler
	background []func(ctx context.Context) error
	closers    []func()
}

// run starts the background loops and blocks until ctx is done.
func (a *application) run(ctx context.Context) error {
	g, ctx := errgroup.WithContext(ctx)
	for _, loop := range a.background {
		g.Go(func() error { return loop(ctx) })
	}
	return g.Wait()
}

func (a *application) close() {
	for _, c := range a.closers {
		c()
	}
}

// storage groups the port implementations selected by the backend.
type storage struct {
	employees     employee.Store
	verifications verificationStore
	appeals       appealStore
	accounts      authservice.Store
	audit         audit.Store
	tx            txcontext.Runner
	health        map[string]httptransport.HealthCheck
}

type verificationStore interface {
	verificationservice.Store
	admin.VerificationStats
}

type appealStore interface {
	appealservice.Store
	admin.AppealStats
}

// buildApp wires every dependency for cfg. On error the partially built
// resources are already released.
func buildApp(ctx context.Context, cfg config.Config, logger *slog.Logger) (_ *application, err error) {
	app := &application{}
	defer func() {
		if err != nil {
			app.close()
		}
	}()

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

	producer, err := kafka.New(ctx, cfg.Kafka)
	if err != nil {
		return nil, err
	}
	if producer != nil {
		app.closers = append(app.closers, producer.Close)
		if err := producer.EnsureTopic(ctx, cfg.Kafka.Partitions, cfg.Kafka.Replication); err != nil {
			return nil, err
		}
	}

	var st *storage
	switch cfg.Storage.Backend {
	case config.BackendPostgres:
		st, err = openPostgres(ctx, cfg, app)
	default:
		st = openMemory(cfg, logger, producer)
	}
	if err != nil {
		return nil, err
	}

	if pg, ok := st.audit.(*auditpg.Store); ok && producer != nil {
		relay := outbox.NewRelay(pg, producer, st.tx,
			outbox.WithInterval(cfg.Kafka.RelayInterval),
			outbox.WithBatchSize(cfg.Kafka.RelayBatchSize),
			outbox.WithLogger(logger),
		)
		app.background = append(app.background, relay.Run)
	}

	redisClient, err := redis.New(ctx, cfg.Redis)
	if err != nil {
		return nil, err
	}
	var limits ratelimit.Store = ratelimit.NewMemoryStore()
	if redisClient != nil {
		limits = ratelimit.NewRedisStore(redisClient)
		app.closers = append(app.closers, func() { _ = redisClient.Close() })
		st.employees = employeecache.New(st.employees, redisClient, cfg.Redis.EmployeeTTL,
			employeecache.WithLogger(logger),
			employeecache.WithMetrics(employeecache.NewMetrics(reg)),
		)
		st.health["redis"] = redisClient.Health
	}

	if err := seedEmployees(ctx, cfg.Seed.EmployeesFile, st.employees, logger); err != nil {
		return nil, err
	}

	objects, err := openObjectStore(ctx, cfg.ObjectStore, logger)
	if err != nil {
		return nil, err
	}
	mailer := mail.New(cfg.Mail)

	complianceAudit := compliance.New(st.audit,
		compliance.WithLogger(logger),
		compliance.WithMetrics(compliance.NewMetrics(reg)),
	)
	securityAudit := publisher.NewPublisher(st.audit,
		publisher.WithAsyncBuffer(securityBufferLen),
		publisher.WithLogger(logger),
	)
	// The publisher drains before the stores and producer it writes to close.
	app.closers = append([]func(){securityAudit.Close}, app.closers...)

	tokens := jwttoken.NewJWTService(cfg.Auth.JWTSigningKey, cfg.Auth.Issuer, tokenAudience, cfg.Auth.TokenTTL)

	authSvc := authservice.New(st.accounts, tokens, securityAudit, authservice.WithLogger(logger))
	verificationSvc := verificationservice.New(st.verifications, st.employees, st.tx, complianceAudit,
		verificationservice.WithLogger(logger),
		verificationservice.WithMetrics(verificationmetrics.New(reg)),
	)
	appealSvc := appealservice.New(st.appeals, verificationSvc, st.tx, complianceAudit,
		appealservice.WithLogger(logger),
		appealservice.WithMetrics(appealmetrics.New(reg)),
		appealservice.WithNotifier(notify.NewAppealNotifier(mailer, authSvc, cfg.Mail.HRNotify, logger)),
		appealservice.WithDocumentStore(objects),
		appealservice.WithDirectory(st.employees),
	)
	reportSvc := report.NewService(verificationSvc, objects,
		report.WithLogger(logger),
		report.WithMailer(mailer),
		report.WithAuditor(securityAudit),
		report.WithLinkTTL(cfg.ObjectStore.PresignTTL),
	)
	dashboard := admin.NewService(st.employees, st.verifications, st.appeals)

	if err := seedAdmin(ctx, cfg.Seed, authSvc, logger); err != nil {
		return nil, err
	}

	deps := httptransport.Dependencies{
		Logger:        logger,
		Tokens:        jwttoken.NewJWTServiceAdapter(tokens),
		Auth:          authhandler.New(authSvc, logger),
		Verifications: verificationhandler.New(verificationSvc, logger),
		Reports:       reporthandler.New(reportSvc, logger),
		Appeals:       appealhandler.New(appealSvc, logger),
		Dashboard:     admin.NewHandler(dashboard, logger),
		Health:        st.health,
	}
	if cfg.RateLimit.Enabled {
		throttle := ratelimit.New(limits, cfg.RateLimit.AuthRequests, cfg.RateLimit.AuthWindow,
			ratelimit.WithLogger(logger),
			ratelimit.WithMetrics(ratelimit.NewMetrics(reg)),
		)
		deps.AuthThrottle = throttle.PerIP("auth")
	}
	if cfg.Server.MetricsEnabled {
		deps.HTTPMetrics = metrics.NewHTTP(reg)
		deps.Metrics = metrics.Handler(reg)
		deps.MetricsToken = cfg.Server.MetricsToken
	}
	app.handler = httptransport.NewRouter(deps)
	return app, nil
}

func openMemory(cfg config.Config, logger *slog.Logger, producer *kafka.Producer) *storage {
	var auditStore audit.Store = auditmemory.NewInMemoryStore()
	if producer != nil {
		auditStore = audit.NewFanout(logger, auditStore, auditkafka.New(producer))
	}
	logger.Warn("using in-memory storage; data is lost on restart")
	return &storage{
		employees:     employeememory.New(),
		verifications: verificationmemory.New(),
		appeals:       appealmemory.New(),
		accounts:      authmemory.New(),
		audit:         auditStore,
		tx:            txcontext.NewShardedRunner(cfg.Storage.TxTimeout),
		health:        map[string]httptransport.HealthCheck{},
	}
}

func openPostgres(ctx context.Context, cfg config.Config, app *application) (*storage, error) {
	db, err := postgres.Open(ctx, cfg.Storage.DatabaseURL)
	if err != nil {
		return nil, err
	}
	app.closers = append(app.closers, func() { _ = db.Close() })

	pool, err := postgres.OpenPool(ctx, cfg.Storage.EmployeeDatabaseURL)
	if err != nil {
		return nil, err
	}
	app.closers = append(app.closers, pool.Close)

	if cfg.Storage.RunMigrations {
		if err := postgres.MigrateCore(ctx, db); err != nil {
			return nil, fmt.Errorf("migrate core schema: %w", err)
		}
		if err := postgres.MigrateHR(ctx, pool); err != nil {
			return nil, fmt.Errorf("migrate hr schema: %w", err)
		}
	}

	return &storage{
		employees:     employeepg.New(pool),
		verifications: verificationpg.New(db),
		appeals:       appealpg.New(db),
		accounts:      authpg.New(db),
		audit:         auditpg.New(db),
		tx:            txcontext.NewSQLRunner(db, cfg.Storage.TxTimeout),
		health: map[string]httptransport.HealthCheck{
			"database":  pingDB(db),
			"directory": pingPool(pool),
		},
	}, nil
}

func pingDB(db *sql.DB) httptransport.HealthCheck {
	return db.PingContext
}

func pingPool(pool *pgxpool.Pool) httptransport.HealthCheck {
	return pool.Ping
}

func openObjectStore(ctx context.Context, cfg config.ObjectStoreConfig, logger *slog.Logger) (objectstore.Store, error) {
	if cfg.Bucket == "" {
		logger.Warn("no object store bucket configured; reports and documents are kept in memory")
		return objectstore.NewMemory(), nil
	}
	return objectstore.New(ctx, cfg)
}

func seedEmployees(ctx context.Context, path string, store employee.Store, logger *slog.Logger) error {
	if path == "" {
		return nil
	}
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("open employee seed: %w", err)
	}
	defer f.Close()

	records, err := employee.LoadSeed(f)
	if err != nil {
		return fmt.Errorf("load employee seed: %w", err)
	}
	for _, rec := range records {
		if err := store.Upsert(ctx, rec); err != nil {
			return fmt.Errorf("seed employee %s: %w", rec.EmployeeID, err)
		}
	}
	logger.InfoContext(ctx, "employee directory seeded", "count", len(records), "file", path)
	return nil
}

func seedAdmin(ctx context.Context, cfg config.SeedConfig, accounts *authservice.Service, logger *slog.Logger) error {
	if cfg.AdminEmail == "" || cfg.AdminPassword == "" {
		return nil
	}
	_, err := accounts.CreateAccount(ctx, authservice.CreateAccountCommand{
		Email:    cfg.AdminEmail,
		Password: cfg.AdminPassword,
		FullName: "Administrator",
		Role:     id.RoleSuperAdmin,
	})
	switch {
	case err == nil:
		logger.InfoContext(ctx, "admin account seeded", "email", cfg.AdminEmail)
	case dErrors.HasCode(err, dErrors.CodeConflict):
	default:
		return fmt.Errorf("seed admin account: %w", err)
	}
	return nil
}
