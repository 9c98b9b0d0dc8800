package cli

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"time"

	"github.com/runnerr0/searchwrapped/internal/config"
	"github.com/runnerr0/searchwrapped/internal/storage"
)

// statusJSON is the JSON output structure for the status command.
type statusJSON struct {
	Version           string           `json:"version"`
	DatabasePath      string           `json:"database_path"`
	DatabaseSizeBytes int64            `json:"database_size_bytes"`
	TotalImports      int64            `json:"total_imports"`
	TotalRecords      int64            `json:"total_records"`
	OldestRecord      string           `json:"oldest_record,omitempty"`
	NewestRecord      string           `json:"newest_record,omitempty"`
	Language          string           `json:"language"`
	AssumeZone        string           `json:"assume_zone"`
	Imports           []importJSON     `json:"imports"`
	TopTitles         []titleCountJSON `json:"top_titles"`
}

type titleCountJSON struct {
	Title string `json:"title"`
	Count int64  `json:"count"`
}

// Execute implements the go-flags Commander interface for StatusCommand.
func (c *StatusCommand) Execute(args []string) error {
	cfg, err := loadConfig(c.globals)
	if err != nil {
		return err
	}

	ctx := context.Background()
	store, db, cleanup, err := openArchive(ctx, c.globals, cfg)
	if err != nil {
		return err
	}
	defer cleanup()

	stats, err := store.GetStats(ctx)
	if err != nil {
		return fmt.Errorf("get stats: %w", err)
	}
	imports, err := store.ListImports(ctx)
	if err != nil {
		return fmt.Errorf("list imports: %w", err)
	}

	dbPath, _ := cfg.DatabasePath()
	if c.globals != nil && c.globals.db != nil {
		dbPath = ":memory:"
	}
	dbSize := getDatabaseSize(db, dbPath)

	if c.globals != nil && c.globals.JSON {
		return c.printStatusJSON(cfg, stats, imports, dbPath, dbSize)
	}
	return c.printStatusHuman(cfg, stats, imports, dbPath, dbSize)
}

func (c *StatusCommand) printStatusHuman(cfg *config.Config, stats *storage.Stats, imports []storage.Import, dbPath string, dbSize int64) error {
	fmt.Println("searchwrapped Status")
	fmt.Println("====================")
	fmt.Printf("Version:       %s\n", c.version)
	fmt.Printf("Database:      %s (%s)\n", dbPath, formatBytes(dbSize))
	fmt.Printf("Imports:       %s\n", formatNumber(stats.TotalImports))
	fmt.Printf("Records:       %s\n", formatNumber(stats.TotalRecords))

	if stats.TotalRecords > 0 {
		fmt.Printf("Oldest:        %s\n", stats.OldestRecord.Local().Format("2006-01-02"))
		fmt.Printf("Newest:        %s\n", stats.NewestRecord.Local().Format("2006-01-02"))
	}

	fmt.Printf("Language:      %s\n", cfg.Analysis.Language)
	fmt.Printf("Assume zone:   %s\n", cfg.Analysis.AssumeZone)

	if len(imports) > 0 {
		fmt.Println()
		fmt.Println("Imports:")
		for _, imp := range imports {
			fmt.Printf("  %s  %s  %8s  %s\n",
				imp.ID, imp.ImportedAt.Local().Format("2006-01-02 15:04"), formatNumber(imp.RecordCount), imp.SourcePath)
		}
	}

	if len(stats.TopTitles) > 0 {
		fmt.Println()
		fmt.Println("Top Titles:")
		for _, t := range stats.TopTitles {
			fmt.Printf("  %-40s %s\n", t.Title, formatNumber(t.Count))
		}
	}

	return nil
}

func (c *StatusCommand) printStatusJSON(cfg *config.Config, stats *storage.Stats, imports []storage.Import, dbPath string, dbSize int64) error {
	out := statusJSON{
		Version:           c.version,
		DatabasePath:      dbPath,
		DatabaseSizeBytes: dbSize,
		TotalImports:      stats.TotalImports,
		TotalRecords:      stats.TotalRecords,
		Language:          cfg.Analysis.Language,
		AssumeZone:        cfg.Analysis.AssumeZone,
		Imports:           make([]importJSON, len(imports)),
		TopTitles:         make([]titleCountJSON, len(stats.TopTitles)),
	}

	if stats.TotalRecords > 0 {
		out.OldestRecord = stats.OldestRecord.UTC().Format(time.RFC3339)
		out.NewestRecord = stats.NewestRecord.UTC().Format(time.RFC3339)
	}

	for i, imp := range imports {
		out.Imports[i] = importJSON{
			ID:          imp.ID,
			SourcePath:  imp.SourcePath,
			ImportedAt:  imp.ImportedAt.UTC().Format(time.RFC3339),
			RecordCount: imp.RecordCount,
		}
	}
	for i, t := range stats.TopTitles {
		out.TopTitles[i] = titleCountJSON{Title: t.Title, Count: t.Count}
	}

	return writeJSON(out)
}

// getDatabaseSize returns the database file size in bytes.
// For on-disk databases, it uses os.Stat. For in-memory databases,
// it queries page_count * page_size.
func getDatabaseSize(db *sql.DB, dbPath string) int64 {
	if info, err := os.Stat(dbPath); err == nil {
		return info.Size()
	}

	var pageCount, pageSize int64
	if err := db.QueryRow("PRAGMA page_count").Scan(&pageCount); err != nil {
		return 0
	}
	if err := db.QueryRow("PRAGMA page_size").Scan(&pageSize); err != nil {
		return 0
	}
	return pageCount * pageSize
}
