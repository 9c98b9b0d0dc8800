package cli

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/runnerr0/searchwrapped/internal/history"
	"github.com/runnerr0/searchwrapped/internal/storage"
)

type importJSON struct {
	ID          string `json:"id"`
	SourcePath  string `json:"source_path"`
	ImportedAt  string `json:"imported_at"`
	RecordCount int64  `json:"record_count"`
}

// Execute implements the go-flags Commander interface for ImportCommand.
func (c *ImportCommand) Execute(args []string) error {
	file := c.File
	if file == "" && len(args) > 0 {
		file = args[0]
	}
	if file == "" {
		return fmt.Errorf("an export file is required (--file PATH)")
	}

	cfg, err := loadConfig(c.globals)
	if err != nil {
		return err
	}
	logger := newLogger(c.globals, cfg)

	analysis := cfg.Analysis
	if c.AssumeZone != "" {
		analysis.AssumeZone = c.AssumeZone
	}
	loc, err := analysis.Location()
	if err != nil {
		return err
	}

	ctx := context.Background()
	src := history.FileSource{Path: file}
	raw, err := src.Records(ctx)
	if err != nil {
		return err
	}

	// Every time must parse before anything is written.
	records, err := storage.RecordsFromEvents(raw, history.NormalizeOptions{AssumeZone: loc})
	if err != nil {
		return err
	}

	store, _, cleanup, err := openArchive(ctx, c.globals, cfg)
	if err != nil {
		return err
	}
	defer cleanup()

	sourcePath := file
	if abs, err := filepath.Abs(file); err == nil {
		sourcePath = abs
	}

	imp := &storage.Import{SourcePath: sourcePath}
	if err := store.AddImport(ctx, imp, records); err != nil {
		return fmt.Errorf("import: %w", err)
	}

	logger.Info().
		Str("import_id", imp.ID).
		Str("source", sourcePath).
		Int64("records", imp.RecordCount).
		Msg("export imported")

	if c.globals != nil && c.globals.JSON {
		return writeJSON(importJSON{
			ID:          imp.ID,
			SourcePath:  imp.SourcePath,
			ImportedAt:  imp.ImportedAt.UTC().Format(time.RFC3339),
			RecordCount: imp.RecordCount,
		})
	}

	fmt.Printf("Imported %s records from %s (import %s)\n", formatNumber(imp.RecordCount), sourcePath, imp.ID)
	return nil
}
