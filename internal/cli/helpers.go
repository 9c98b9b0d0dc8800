package cli

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	_ "github.com/mattn/go-sqlite3"
	"github.com/rs/zerolog"

	"github.com/runnerr0/searchwrapped/internal/analytics"
	"github.com/runnerr0/searchwrapped/internal/config"
	"github.com/runnerr0/searchwrapped/internal/history"
	"github.com/runnerr0/searchwrapped/internal/logging"
	"github.com/runnerr0/searchwrapped/internal/storage"
)

// loadConfig reads --config if given (creating it with defaults when
// missing), else the default path if present, else built-in defaults.
func loadConfig(globals *GlobalFlags) (*config.Config, error) {
	if globals != nil && globals.Config != "" {
		return config.LoadOrCreateAt(globals.Config)
	}
	path, err := config.DefaultPath()
	if err != nil {
		return config.DefaultConfig(), nil
	}
	return config.LoadOrDefault(path)
}

// newLogger writes diagnostics to stderr so stdout stays machine readable.
func newLogger(globals *GlobalFlags, cfg *config.Config) zerolog.Logger {
	verbose := globals != nil && globals.Verbose
	return logging.Init(os.Stderr, cfg.Logging.Level, cfg.Logging.Format, verbose)
}

// openArchive opens the configured archive, runs migrations, and returns a
// ready-to-use store with its *sql.DB and a cleanup func. An injected test
// database is used as-is and is not closed by the cleanup.
func openArchive(ctx context.Context, globals *GlobalFlags, cfg *config.Config) (*storage.SQLiteStore, *sql.DB, func(), error) {
	if globals != nil && globals.db != nil {
		store, err := storage.NewSQLiteStore(globals.db)
		if err != nil {
			return nil, nil, nil, fmt.Errorf("init store: %w", err)
		}
		return store, globals.db, func() { store.Close() }, nil
	}

	dbPath, err := cfg.DatabasePath()
	if err != nil {
		return nil, nil, nil, fmt.Errorf("resolve db path: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
		return nil, nil, nil, fmt.Errorf("create database directory: %w", err)
	}

	db, err := sql.Open("sqlite3", dbPath+"?_foreign_keys=on")
	if err != nil {
		return nil, nil, nil, fmt.Errorf("open database: %w", err)
	}

	runner := storage.NewMigrationRunner(db).WithJournalMode(cfg.Storage.SQLiteJournalMode)
	if err := runner.Run(ctx); err != nil {
		db.Close()
		return nil, nil, nil, fmt.Errorf("run migrations: %w", err)
	}

	store, err := storage.NewSQLiteStore(db)
	if err != nil {
		db.Close()
		return nil, nil, nil, fmt.Errorf("init store: %w", err)
	}

	return store, db, func() {
		store.Close()
		db.Close()
	}, nil
}

// resolve merges the flags over the config file.
func (f *AnalysisFlags) resolve(cfg *config.Config) (analytics.Options, error) {
	a := cfg.Analysis
	if f.Lang != "" {
		a.Language = f.Lang
	}
	if f.From != "" {
		a.FromDate = f.From
	}
	if f.Until != "" {
		a.UntilDate = f.Until
	}
	if f.AssumeZone != "" {
		a.AssumeZone = f.AssumeZone
	}

	lang, err := history.ParseLanguage(a.Language)
	if err != nil {
		return analytics.Options{}, err
	}
	loc, err := a.Location()
	if err != nil {
		return analytics.Options{}, err
	}

	return analytics.Options{
		Language:   lang,
		FromDate:   a.FromDate,
		UntilDate:  a.UntilDate,
		AssumeZone: loc,
	}, nil
}

// analyze loads the selected input into an Analyzer.
func (f *AnalysisFlags) analyze(globals *GlobalFlags, args []string) (*analytics.Analyzer, *config.Config, error) {
	cfg, err := loadConfig(globals)
	if err != nil {
		return nil, nil, err
	}
	logger := newLogger(globals, cfg)

	opts, err := f.resolve(cfg)
	if err != nil {
		return nil, nil, err
	}

	file := f.File
	if file == "" && len(args) > 0 {
		file = args[0]
	}

	ctx := context.Background()
	var src history.Source
	switch {
	case f.Archive && file != "":
		return nil, nil, fmt.Errorf("--archive and --file are mutually exclusive")
	case f.Archive:
		store, _, cleanup, err := openArchive(ctx, globals, cfg)
		if err != nil {
			return nil, nil, err
		}
		defer cleanup()
		src = storage.NewSource(store, storage.RecordQuery{ImportID: f.ImportID})
	case file != "":
		src = history.FileSource{Path: file}
	default:
		return nil, nil, fmt.Errorf("an export file is required (--file PATH) or use --archive")
	}

	start := time.Now()
	a, err := analytics.New(ctx, src, opts)
	if err != nil {
		return nil, nil, err
	}

	logger.Debug().
		Str("source", a.Source()).
		Str("language", string(a.Language())).
		Int("events", a.EventCount()).
		Int("searches", len(a.Searches())).
		Dur("elapsed", time.Since(start)).
		Msg("history loaded")

	return a, cfg, nil
}

// fill resolves --fill/--no-fill over the config default.
func (f *HeatmapFlags) fill(def bool) (bool, error) {
	switch {
	case f.Fill && f.NoFill:
		return false, fmt.Errorf("--fill and --no-fill are mutually exclusive")
	case f.Fill:
		return true, nil
	case f.NoFill:
		return false, nil
	}
	return def, nil
}

// topN returns n when the flag was given, even if it is zero or negative,
// and the config default otherwise.
func topN(n *int, def int) int {
	if n != nil {
		return *n
	}
	return def
}

// writeJSON prints v as indented JSON on stdout.
func writeJSON(v interface{}) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// parseDuration parses a human-friendly duration string like "30d", "7d", "24h", "2w".
func parseDuration(s string) (time.Duration, error) {
	if s == "" {
		return 0, fmt.Errorf("invalid duration: empty string")
	}

	if len(s) < 2 {
		return 0, fmt.Errorf("invalid duration: %q", s)
	}

	suffix := s[len(s)-1]
	numStr := s[:len(s)-1]

	n, err := strconv.Atoi(numStr)
	if err != nil || n < 0 {
		return 0, fmt.Errorf("invalid duration: %q", s)
	}

	switch suffix {
	case 'd':
		return time.Duration(n) * 24 * time.Hour, nil
	case 'h':
		return time.Duration(n) * time.Hour, nil
	case 'w':
		return time.Duration(n) * 7 * 24 * time.Hour, nil
	case 'm':
		return time.Duration(n) * time.Minute, nil
	default:
		return 0, fmt.Errorf("invalid duration: %q (use d, h, w, or m suffix)", s)
	}
}

// formatDurationHuman formats a duration like "2 days 3h4m0s".
func formatDurationHuman(d time.Duration) string {
	days := int(d / (24 * time.Hour))
	rest := d - time.Duration(days)*24*time.Hour

	switch {
	case days == 0:
		return rest.String()
	case rest == 0 && days == 1:
		return "1 day"
	case rest == 0:
		return fmt.Sprintf("%d days", days)
	case days == 1:
		return "1 day " + rest.String()
	default:
		return fmt.Sprintf("%d days %s", days, rest)
	}
}

// formatBytes formats a byte count into a human-readable string.
func formatBytes(b int64) string {
	switch {
	case b >= 1<<30:
		return fmt.Sprintf("%.1f GB", float64(b)/float64(1<<30))
	case b >= 1<<20:
		return fmt.Sprintf("%.1f MB", float64(b)/float64(1<<20))
	case b >= 1<<10:
		return fmt.Sprintf("%.1f KB", float64(b)/float64(1<<10))
	default:
		return fmt.Sprintf("%d B", b)
	}
}

// formatNumber formats an int64 with comma separators.
func formatNumber(n int64) string {
	if n < 0 {
		return "-" + formatNumber(-n)
	}
	s := strconv.FormatInt(n, 10)
	if len(s) <= 3 {
		return s
	}

	var result strings.Builder
	remainder := len(s) % 3
	if remainder > 0 {
		result.WriteString(s[:remainder])
	}
	for i := remainder; i < len(s); i += 3 {
		if i > 0 {
			result.WriteString(",")
		}
		result.WriteString(s[i : i+3])
	}
	return result.String()
}

// displayTerm trims the whitespace a marker strip leaves behind.
func displayTerm(s string) string {
	if t := strings.TrimSpace(s); t != "" {
		return t
	}
	return "(empty)"
}
