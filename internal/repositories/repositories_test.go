package repositories_test

import (
	"testing"

	"staffsync/internal/config"
	"staffsync/internal/database"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// openTestDB returns a migrated in-memory SQLite database private to the test.
func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := database.Open(config.DriverSQLite, "file:"+uuid.NewString()+"?mode=memory&cache=shared", zap.NewNop())
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			sqlDB.Close()
		}
	})
	return db
}
