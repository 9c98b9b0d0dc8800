package storage

import (
	"context"
	"database/sql"
)

// migrateV001 creates the archive schema. Every statement uses IF NOT EXISTS
// for idempotency.
func migrateV001(ctx context.Context, tx *sql.Tx) error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS imports (
			id           TEXT PRIMARY KEY,
			source_path  TEXT NOT NULL,
			imported_at  DATETIME NOT NULL,
			record_count INTEGER NOT NULL DEFAULT 0
		)`,

		`CREATE TABLE IF NOT EXISTS records (
			import_id      TEXT NOT NULL REFERENCES imports(id) ON DELETE CASCADE,
			position       INTEGER NOT NULL,
			title          TEXT NOT NULL,
			raw_time       TEXT NOT NULL,
			ts             DATETIME NOT NULL,
			location_infos TEXT NOT NULL DEFAULT '[]',
			PRIMARY KEY (import_id, position)
		)`,

		`CREATE INDEX IF NOT EXISTS idx_records_ts         ON records(ts)`,
		`CREATE INDEX IF NOT EXISTS idx_records_title      ON records(title)`,
		`CREATE INDEX IF NOT EXISTS idx_imports_imported_at ON imports(imported_at)`,
	}

	for _, stmt := range stmts {
		if _, err := tx.ExecContext(ctx, stmt); err != nil {
			return err
		}
	}
	return nil
}
