// Package migrations applies the schema the job queue needs. Application
// tables are migrated by the store itself; river's tables live outside gorm
// and are migrated here.
package migrations

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/riverqueue/river/riverdriver/riverpgxv5"
	"github.com/riverqueue/river/rivermigrate"
	"go.uber.org/zap"
)

// MigrateRiver brings the river schema up to date. Safe to run on every
// startup; already-applied versions are skipped.
func MigrateRiver(ctx context.Context, pool *pgxpool.Pool) error {
	migrator, err := rivermigrate.New(riverpgxv5.New(pool), nil)
	if err != nil {
		return err
	}

	res, err := migrator.Migrate(ctx, rivermigrate.DirectionUp, nil)
	if err != nil {
		return err
	}

	if len(res.Versions) > 0 {
		zap.S().Named("migrations").Infow("river schema migrated", "versions", len(res.Versions))
	}
	return nil
}
