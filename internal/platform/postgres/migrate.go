package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"sync"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"

	"veriport/internal/platform/postgres/migrations"
)

// goose keeps its base FS and dialect in package state.
var gooseMu sync.Mutex

// MigrateCore applies the core schema.
func MigrateCore(ctx context.Context, db *sql.DB) error {
	return up(ctx, db, migrations.Core)
}

// MigrateHR applies the employee directory schema through the pool.
func MigrateHR(ctx context.Context, pool *pgxpool.Pool) error {
	db := stdlib.OpenDBFromPool(pool)
	defer db.Close()
	return up(ctx, db, migrations.HR)
}

func up(ctx context.Context, db *sql.DB, dir string) error {
	gooseMu.Lock()
	defer gooseMu.Unlock()

	goose.SetBaseFS(migrations.FS)
	if err := goose.SetDialect("postgres"); err != nil {
		return fmt.Errorf("set goose dialect: %w", err)
	}
	goose.SetTableName("goose_" + dir + "_version")
	if err := goose.UpContext(ctx, db, dir); err != nil {
		return fmt.Errorf("migrate %s: %w", dir, err)
	}
	return nil
}
