package storage

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/runnerr0/searchwrapped/internal/history"
)

// Store defines the archive operations.
type Store interface {
	AddImport(ctx context.Context, imp *Import, records []Record) error
	GetImport(ctx context.Context, id string) (*Import, error)
	ListImports(ctx context.Context) ([]Import, error)
	ListRecords(ctx context.Context, q RecordQuery) ([]Record, error)
	CountBefore(ctx context.Context, before time.Time) (int64, error)
	PruneBefore(ctx context.Context, before time.Time) (int64, error)
	PurgeAll(ctx context.Context) error
	GetStats(ctx context.Context) (*Stats, error)
	Close() error
}

// SQLiteStore implements Store backed by a SQLite database.
type SQLiteStore struct {
	db *sql.DB

	getImport *sql.Stmt
	countOld  *sql.Stmt
}

// NewSQLiteStore creates a new SQLiteStore from an already-opened and migrated database.
func NewSQLiteStore(db *sql.DB) (*SQLiteStore, error) {
	s := &SQLiteStore{db: db}

	if err := s.prepareStatements(); err != nil {
		return nil, fmt.Errorf("prepare statements: %w", err)
	}

	return s, nil
}

func (s *SQLiteStore) prepareStatements() error {
	var err error

	s.getImport, err = s.db.Prepare(`
		SELECT id, source_path, imported_at, record_count
		FROM imports WHERE id = ?
	`)
	if err != nil {
		return err
	}

	s.countOld, err = s.db.Prepare(`SELECT COUNT(*) FROM records WHERE ts < ?`)
	if err != nil {
		return err
	}

	return nil
}

// importedAtLayout keeps nanoseconds at fixed width so imports made within
// the same second still sort in order.
const importedAtLayout = "2006-01-02T15:04:05.000000000Z07:00"

// formatTimestamp renders t as fixed-width UTC so stored values sort
// chronologically.
func formatTimestamp(t time.Time) string {
	return t.UTC().Format(time.RFC3339)
}

// parseTimestamp tries several common SQLite timestamp formats.
func parseTimestamp(s string) (time.Time, error) {
	formats := []string{
		time.RFC3339Nano,
		time.RFC3339,
		"2006-01-02 15:04:05",
		"2006-01-02T15:04:05.999999999-07:00",
	}
	for _, f := range formats {
		if t, err := time.Parse(f, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("cannot parse timestamp: %s", s)
}

// AddImport stores an import run and its records in one transaction. The
// import's ID, ImportedAt and RecordCount are filled in; record positions
// are assigned from slice order.
func (s *SQLiteStore) AddImport(ctx context.Context, imp *Import, records []Record) error {
	imp.ID = uuid.NewString()
	if imp.ImportedAt.IsZero() {
		imp.ImportedAt = time.Now()
	}
	imp.RecordCount = int64(len(records))

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck

	_, err = tx.ExecContext(ctx,
		"INSERT INTO imports (id, source_path, imported_at, record_count) VALUES (?, ?, ?, ?)",
		imp.ID, imp.SourcePath, imp.ImportedAt.UTC().Format(importedAtLayout), imp.RecordCount,
	)
	if err != nil {
		return fmt.Errorf("insert import: %w", err)
	}

	insert, err := tx.PrepareContext(ctx, `
		INSERT INTO records (import_id, position, title, raw_time, ts, location_infos)
		VALUES (?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return fmt.Errorf("prepare record insert: %w", err)
	}
	defer insert.Close()

	for i := range records {
		r := &records[i]
		r.ImportID = imp.ID
		r.Position = i

		infos := r.LocationInfos
		if infos == nil {
			infos = []history.LocationInfo{}
		}
		encoded, err := json.Marshal(infos)
		if err != nil {
			return fmt.Errorf("encode location infos of record %d: %w", i, err)
		}

		if _, err := insert.ExecContext(ctx,
			r.ImportID, r.Position, r.Title, r.RawTime, formatTimestamp(r.Timestamp), string(encoded),
		); err != nil {
			return fmt.Errorf("insert record %d: %w", i, err)
		}
	}

	return tx.Commit()
}

// GetImport retrieves a single import run by ID.
func (s *SQLiteStore) GetImport(ctx context.Context, id string) (*Import, error) {
	var imp Import
	var importedAt string

	err := s.getImport.QueryRowContext(ctx, id).Scan(&imp.ID, &imp.SourcePath, &importedAt, &imp.RecordCount)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("import %s not found", id)
		}
		return nil, fmt.Errorf("get import: %w", err)
	}
	imp.ImportedAt, _ = parseTimestamp(importedAt)

	return &imp, nil
}

// ListImports returns all import runs, oldest first.
func (s *SQLiteStore) ListImports(ctx context.Context) ([]Import, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, source_path, imported_at, record_count
		FROM imports ORDER BY imported_at, id
	`)
	if err != nil {
		return nil, fmt.Errorf("query imports: %w", err)
	}
	defer rows.Close()

	imports := []Import{}
	for rows.Next() {
		var imp Import
		var importedAt string
		if err := rows.Scan(&imp.ID, &imp.SourcePath, &importedAt, &imp.RecordCount); err != nil {
			return nil, fmt.Errorf("scan import: %w", err)
		}
		imp.ImportedAt, _ = parseTimestamp(importedAt)
		imports = append(imports, imp)
	}

	return imports, rows.Err()
}

// ListRecords returns archived records in archive order: by import time,
// then by position inside the export.
func (s *SQLiteStore) ListRecords(ctx context.Context, q RecordQuery) ([]Record, error) {
	var clauses []string
	var args []interface{}

	baseQuery := `
		SELECT r.import_id, r.position, r.title, r.raw_time, r.ts, r.location_infos
		FROM records r
		JOIN imports i ON i.id = r.import_id
	`

	if q.ImportID != "" {
		clauses = append(clauses, "r.import_id = ?")
		args = append(args, q.ImportID)
	}
	if !q.Since.IsZero() {
		clauses = append(clauses, "r.ts >= ?")
		args = append(args, formatTimestamp(q.Since))
	}
	if !q.Until.IsZero() {
		clauses = append(clauses, "r.ts <= ?")
		args = append(args, formatTimestamp(q.Until))
	}

	where := ""
	if len(clauses) > 0 {
		where = " WHERE " + strings.Join(clauses, " AND ")
	}

	limit := q.Limit
	if limit <= 0 {
		limit = -1 // SQLite: no limit
	}

	fullQuery := baseQuery + where + " ORDER BY i.imported_at, r.import_id, r.position LIMIT ? OFFSET ?"
	args = append(args, limit, q.Offset)

	rows, err := s.db.QueryContext(ctx, fullQuery, args...)
	if err != nil {
		return nil, fmt.Errorf("query records: %w", err)
	}
	defer rows.Close()

	records := []Record{}
	for rows.Next() {
		var r Record
		var ts, infos string
		if err := rows.Scan(&r.ImportID, &r.Position, &r.Title, &r.RawTime, &ts, &infos); err != nil {
			return nil, fmt.Errorf("scan record: %w", err)
		}
		r.Timestamp, _ = parseTimestamp(ts)
		if err := json.Unmarshal([]byte(infos), &r.LocationInfos); err != nil {
			return nil, fmt.Errorf("decode location infos of %s/%d: %w", r.ImportID, r.Position, err)
		}
		if len(r.LocationInfos) == 0 {
			r.LocationInfos = nil
		}
		records = append(records, r)
	}

	return records, rows.Err()
}

// CountBefore counts records with timestamps before the given time.
func (s *SQLiteStore) CountBefore(ctx context.Context, before time.Time) (int64, error) {
	var n int64
	if err := s.countOld.QueryRowContext(ctx, formatTimestamp(before)).Scan(&n); err != nil {
		return 0, fmt.Errorf("count records: %w", err)
	}
	return n, nil
}

// PruneBefore deletes records with timestamps before the given time,
// refreshes the per-import counts and drops imports left empty.
func (s *SQLiteStore) PruneBefore(ctx context.Context, before time.Time) (int64, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck

	res, err := tx.ExecContext(ctx, "DELETE FROM records WHERE ts < ?", formatTimestamp(before))
	if err != nil {
		return 0, fmt.Errorf("prune records: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, err
	}

	stmts := []string{
		`UPDATE imports SET record_count = (SELECT COUNT(*) FROM records WHERE records.import_id = imports.id)`,
		`DELETE FROM imports WHERE record_count = 0`,
	}
	for _, stmt := range stmts {
		if _, err := tx.ExecContext(ctx, stmt); err != nil {
			return 0, fmt.Errorf("prune (%s): %w", stmt, err)
		}
	}

	return n, tx.Commit()
}

// PurgeAll deletes all imports and records.
func (s *SQLiteStore) PurgeAll(ctx context.Context) error {
	stmts := []string{
		"DELETE FROM records",
		"DELETE FROM imports",
	}
	for _, stmt := range stmts {
		if _, err := s.db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("purge (%s): %w", stmt, err)
		}
	}
	return nil
}

// GetStats returns aggregate statistics about the archive.
func (s *SQLiteStore) GetStats(ctx context.Context) (*Stats, error) {
	stats := &Stats{}

	err := s.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM imports").Scan(&stats.TotalImports)
	if err != nil {
		return nil, fmt.Errorf("count imports: %w", err)
	}

	err = s.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM records").Scan(&stats.TotalRecords)
	if err != nil {
		return nil, fmt.Errorf("count records: %w", err)
	}

	// Oldest and newest (handle empty DB)
	if stats.TotalRecords > 0 {
		var oldestStr, newestStr string
		err = s.db.QueryRowContext(ctx, "SELECT MIN(ts), MAX(ts) FROM records").Scan(&oldestStr, &newestStr)
		if err != nil {
			return nil, fmt.Errorf("record time range: %w", err)
		}
		stats.OldestRecord, _ = parseTimestamp(oldestStr)
		stats.NewestRecord, _ = parseTimestamp(newestStr)
	}

	rows, err := s.db.QueryContext(ctx,
		"SELECT title, COUNT(*) AS cnt FROM records GROUP BY title ORDER BY cnt DESC, title LIMIT 10",
	)
	if err != nil {
		return nil, fmt.Errorf("top titles: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var tc TitleCount
		if err := rows.Scan(&tc.Title, &tc.Count); err != nil {
			return nil, err
		}
		stats.TopTitles = append(stats.TopTitles, tc)
	}

	return stats, rows.Err()
}

// Close releases all prepared statements. The underlying *sql.DB is NOT
// closed; that is the caller's responsibility.
func (s *SQLiteStore) Close() error {
	for _, stmt := range []*sql.Stmt{s.getImport, s.countOld} {
		if stmt != nil {
			stmt.Close()
		}
	}
	return nil
}
