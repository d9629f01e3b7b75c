// Package integration exercises the engine end to end against a real
// database, from stock registration through billing to settlement.
package integration

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/revenda/backend/internal/infrastructure/config"
	"github.com/revenda/backend/internal/infrastructure/persistence"
)

// newTestDB opens an in-memory sqlite database and migrates the full schema.
// A single connection is forced so every query sees the same database.
func newTestDB(t *testing.T) *persistence.Database {
	t.Helper()

	db, err := persistence.NewDatabase(&config.DatabaseConfig{
		Driver:          "sqlite",
		Path:            ":memory:",
		MaxOpenConns:    1,
		MaxIdleConns:    1,
		ConnMaxLifetime: 5,
		ConnMaxIdleTime: 5,
	})
	require.NoError(t, err, "failed to open in-memory database")
	require.NoError(t, db.Migrate(), "failed to migrate schema")

	t.Cleanup(func() {
		_ = db.Close()
	})

	return db
}
