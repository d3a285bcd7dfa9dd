// Package testdb opens migrated SQLite databases for tests.
package testdb

import (
	"context"
	"path/filepath"
	"testing"

	"circle/config"
	"circle/internal/infra/persistence"

	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// New returns a GORM handle on a fresh, migrated SQLite file inside t.TempDir().
func New(t testing.TB) *gorm.DB {
	t.Helper()

	cfg := &config.Config{
		Database: config.DatabaseConfig{Driver: config.DriverSQLite},
		SQLite:   &config.SQLiteConfig{Path: filepath.Join(t.TempDir(), "circle.db")},
	}

	db, err := persistence.Open(cfg, nil)
	require.NoError(t, err)
	require.NoError(t, persistence.Migrate(context.Background(), db, config.DriverSQLite, nil))

	sqlDB, err := db.DB()
	require.NoError(t, err)
	t.Cleanup(func() { _ = sqlDB.Close() })

	return db
}
