package persistence

import (
	"context"
	"embed"
	"log/slog"
	"time"

	"circle/config"
	"circle/internal/util"

	"github.com/pkg/errors"
	"github.com/pressly/goose/v3"
	"gorm.io/gorm"
)

//go:embed migrations/postgres/*.sql migrations/sqlite/*.sql
var migrationsFS embed.FS

var migrationDialects = map[string]string{
	config.DriverPostgres: "postgres",
	config.DriverSQLite:   "sqlite3",
}

// Migrate applies the embedded schema migrations for driver.
func Migrate(ctx context.Context, db *gorm.DB, driver string, logger *slog.Logger) error {
	dialect, ok := migrationDialects[driver]
	if !ok {
		return errors.Errorf("no migrations for driver %q", driver)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return errors.Wrap(err, "failed to get sql.DB")
	}

	goose.SetBaseFS(migrationsFS)
	goose.SetLogger(goose.NopLogger())
	if err := goose.SetDialect(dialect); err != nil {
		return errors.Wrap(err, "failed to set goose dialect")
	}

	started := time.Now()
	if err := goose.UpContext(ctx, sqlDB, "migrations/"+driver); err != nil {
		return errors.Wrap(err, "failed to apply migrations")
	}

	version, err := goose.GetDBVersionContext(ctx, sqlDB)
	if err != nil {
		return errors.Wrap(err, "failed to read schema version")
	}

	if logger != nil {
		logger.Info("Database migrated",
			slog.String("driver", driver),
			slog.Int64("version", version),
			slog.String("took", util.FormatDuration(time.Since(started))),
		)
	}

	return nil
}
