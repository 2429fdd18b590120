package db

import (
	"database/sql"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTestDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := OpenDB(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return db
}

func TestMigrate_Idempotent(t *testing.T) {
	db := openTestDB(t)

	// Run migrations a second time; it should succeed without error.
	err := Migrate(db)
	require.NoError(t, err)

	err = Migrate(db)
	require.NoError(t, err)
}

func TestMigrate_CreatesAllTables(t *testing.T) {
	db := openTestDB(t)

	expected := []string{"projects", "resources", "allocations"}
	for _, table := range expected {
		var name string
		err := db.QueryRow(`SELECT name FROM sqlite_master WHERE type='table' AND name=?`, table).Scan(&name)
		require.NoError(t, err, "table %s should exist", table)
		assert.Equal(t, table, name)
	}
}

func TestMigrate_CreatesIndexes(t *testing.T) {
	db := openTestDB(t)

	expected := []string{
		"idx_allocations_resource",
		"idx_allocations_project",
		"idx_allocations_dates",
		"idx_projects_name",
	}
	for _, idx := range expected {
		var name string
		err := db.QueryRow(`SELECT name FROM sqlite_master WHERE type='index' AND name=?`, idx).Scan(&name)
		require.NoError(t, err, "index %s should exist", idx)
	}
}

func TestMigrate_ForeignKeysEnabled(t *testing.T) {
	db := openTestDB(t)

	var fk int
	err := db.QueryRow(`PRAGMA foreign_keys`).Scan(&fk)
	require.NoError(t, err)
	assert.Equal(t, 1, fk, "foreign keys should be enabled")
}

func TestMigrate_WALModeRequested(t *testing.T) {
	// In-memory SQLite reports "memory"; WAL only applies to file DBs.
	db := openTestDB(t)

	var mode string
	err := db.QueryRow(`PRAGMA journal_mode`).Scan(&mode)
	require.NoError(t, err)
	assert.Equal(t, "memory", mode)
}

func seedProjectAndResource(t *testing.T, db *sql.DB) {
	t.Helper()
	_, err := db.Exec(`INSERT INTO projects (id, name, color, created_at, updated_at)
		VALUES ('p1', 'Apollo', 'Red', '2025-01-01T00:00:00Z', '2025-01-01T00:00:00Z')`)
	require.NoError(t, err)
	_, err = db.Exec(`INSERT INTO resources (id, name, default_role, created_at, updated_at)
		VALUES ('r1', 'Ada', 'Engineer', '2025-01-01T00:00:00Z', '2025-01-01T00:00:00Z')`)
	require.NoError(t, err)
}

func TestMigrate_AllocationDateCheck(t *testing.T) {
	db := openTestDB(t)
	seedProjectAndResource(t, db)

	_, err := db.Exec(`INSERT INTO allocations (id, project_id, resource_id, role, start_date, end_date, created_at, updated_at)
		VALUES ('a1', 'p1', 'r1', 'Engineer', '2025-01-05', '2025-01-03', '2025-01-01T00:00:00Z', '2025-01-01T00:00:00Z')`)
	assert.Error(t, err, "end before start should violate CHECK constraint")

	_, err = db.Exec(`INSERT INTO allocations (id, project_id, resource_id, role, start_date, end_date, created_at, updated_at)
		VALUES ('a2', 'p1', 'r1', 'Engineer', '2025-01-03', '2025-01-03', '2025-01-01T00:00:00Z', '2025-01-01T00:00:00Z')`)
	assert.NoError(t, err, "single-day allocation should be accepted")
}

func TestMigrate_AllocationCascadesWithProject(t *testing.T) {
	db := openTestDB(t)
	seedProjectAndResource(t, db)

	_, err := db.Exec(`INSERT INTO allocations (id, project_id, resource_id, role, start_date, end_date, created_at, updated_at)
		VALUES ('a1', 'p1', 'r1', 'Engineer', '2025-01-03', '2025-01-05', '2025-01-01T00:00:00Z', '2025-01-01T00:00:00Z')`)
	require.NoError(t, err)

	_, err = db.Exec(`DELETE FROM projects WHERE id = 'p1'`)
	require.NoError(t, err)

	var count int
	require.NoError(t, db.QueryRow(`SELECT COUNT(*) FROM allocations`).Scan(&count))
	assert.Equal(t, 0, count)
}

func TestMigrate_ProjectNameUniqueCaseInsensitive(t *testing.T) {
	db := openTestDB(t)
	seedProjectAndResource(t, db)

	_, err := db.Exec(`INSERT INTO projects (id, name, color, created_at, updated_at)
		VALUES ('p2', 'APOLLO', 'Blue', '2025-01-01T00:00:00Z', '2025-01-01T00:00:00Z')`)
	assert.Error(t, err)
}
