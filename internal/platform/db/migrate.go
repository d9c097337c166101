package db

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"

	"github.com/accountd/accountd/internal/platform/db/migrations"
)

// Migrate applies the embedded SQL migrations. Running it repeatedly is a
// no-op once the schema is current, so it is safe to call at every startup.
func Migrate(ctx context.Context, pool *pgxpool.Pool) error {
	goose.SetBaseFS(migrations.FS)
	if err := goose.SetDialect("postgres"); err != nil {
		return fmt.Errorf("platform/db: set dialect: %w", err)
	}

	sqldb := stdlib.OpenDBFromPool(pool)
	defer func() { _ = sqldb.Close() }()

	if err := goose.UpContext(ctx, sqldb, "."); err != nil {
		return fmt.Errorf("platform/db: migrate up: %w", err)
	}
	return nil
}
