package cli

import (
	"bytes"
	"context"
	"database/sql"
	"io"
	"os"
	"path/filepath"
	"testing"

	_ "github.com/mattn/go-sqlite3"
	"github.com/stretchr/testify/require"

	"github.com/runnerr0/searchwrapped/internal/storage"
)

// sampleExport has three English searches, one non-search entry and one
// location on the first search.
const sampleExport = `[
  {
    "title": "Searched for cats",
    "time": "2023-01-01T10:00:00Z",
    "locationInfos": [
      {
        "name": "From your places (Home)",
        "url": "https://www.google.com/maps/@?api=1&map_action=map&center=52.520008,13.404954&zoom=12",
        "source": "From your places (Home)"
      }
    ]
  },
  {"title": "Searched for dogs", "time": "2023-01-01T10:05:00Z"},
  {"title": "Visited example.com", "time": "2023-01-01T11:00:00Z"},
  {"title": "Searched for cats", "time": "2023-01-02T09:00:00Z"}
]`

// captureOutput captures stdout during fn execution and returns it as a string.
func captureOutput(t *testing.T, fn func()) string {
	t.Helper()
	old := os.Stdout
	r, w, err := os.Pipe()
	require.NoError(t, err)
	os.Stdout = w

	fn()

	w.Close()
	os.Stdout = old

	var buf bytes.Buffer
	_, _ = io.Copy(&buf, r)
	return buf.String()
}

// openTestDB creates a migrated in-memory SQLite database for testing.
func openTestDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := sql.Open("sqlite3", ":memory:?_foreign_keys=on")
	require.NoError(t, err)
	db.SetMaxOpenConns(1)
	t.Cleanup(func() { db.Close() })

	runner := storage.NewMigrationRunner(db)
	require.NoError(t, runner.Run(context.Background()))

	return db
}

// testGlobals points the config at a fresh temp file and injects db.
func testGlobals(t *testing.T, db *sql.DB) *GlobalFlags {
	t.Helper()
	return &GlobalFlags{
		Config: filepath.Join(t.TempDir(), "config.yaml"),
		db:     db,
	}
}

// writeExport writes content to a temp export file and returns its path.
func writeExport(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "MyActivity.json")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func intPtr(n int) *int { return &n }
