package storage

import (
	"context"
	"database/sql"
	"testing"

	_ "github.com/mattn/go-sqlite3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTestDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := sql.Open("sqlite3", ":memory:")
	require.NoError(t, err)
	db.SetMaxOpenConns(1)
	t.Cleanup(func() { db.Close() })
	return db
}

func TestMigrationRunner_FreshDB(t *testing.T) {
	db := openTestDB(t)
	runner := NewMigrationRunner(db)

	require.NoError(t, runner.Run(context.Background()))

	for _, table := range []string{"imports", "records", "schema_migrations"} {
		var name string
		err := db.QueryRow(
			"SELECT name FROM sqlite_master WHERE type='table' AND name=?", table,
		).Scan(&name)
		require.NoError(t, err, "table %s should exist", table)
		assert.Equal(t, table, name)
	}
}

func TestMigrationRunner_IndexesCreated(t *testing.T) {
	db := openTestDB(t)
	require.NoError(t, NewMigrationRunner(db).Run(context.Background()))

	for _, idx := range []string{"idx_records_ts", "idx_records_title", "idx_imports_imported_at"} {
		var name string
		err := db.QueryRow(
			"SELECT name FROM sqlite_master WHERE type='index' AND name=?", idx,
		).Scan(&name)
		require.NoError(t, err, "index %s should exist", idx)
	}
}

func TestMigrationRunner_Idempotent(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()
	runner := NewMigrationRunner(db)

	require.NoError(t, runner.Run(ctx))
	require.NoError(t, runner.Run(ctx))

	var count int
	require.NoError(t, db.QueryRow("SELECT COUNT(*) FROM schema_migrations").Scan(&count))
	assert.Equal(t, 1, count)

	v, err := runner.Version(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, v)
}

func TestMigrationRunner_VersionOnFreshDB(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()
	runner := NewMigrationRunner(db)

	_, err := db.Exec(`CREATE TABLE schema_migrations (version INTEGER PRIMARY KEY, name TEXT NOT NULL, applied_at DATETIME)`)
	require.NoError(t, err)

	v, err := runner.Version(ctx)
	require.NoError(t, err)
	assert.Equal(t, 0, v)
}

func TestMigrationRunner_JournalModeOverride(t *testing.T) {
	db := openTestDB(t)
	runner := NewMigrationRunner(db).WithJournalMode("DELETE")
	require.NoError(t, runner.Run(context.Background()))
	assert.Equal(t, "DELETE", runner.journalMode)

	runner.WithJournalMode("")
	assert.Equal(t, "DELETE", runner.journalMode)
}
