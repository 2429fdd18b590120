package testutil

import (
	"database/sql"
	"testing"

	"github.com/alexanderramin/gantt/internal/db"
	"github.com/stretchr/testify/require"
)

// NewTestDB opens a private in-memory timeline store with the projects,
// resources and allocations tables migrated. It is closed on cleanup.
func NewTestDB(t *testing.T) *sql.DB {
	t.Helper()
	database, err := db.OpenDB(":memory:")
	require.NoError(t, err, "opening timeline store")
	t.Cleanup(func() { _ = database.Close() })
	return database
}

// NewTestUoW wraps database for services that write allocations in a
// transaction.
func NewTestUoW(database *sql.DB) db.UnitOfWork {
	return db.NewSQLiteUnitOfWork(database)
}
