package cli

import "database/sql"

// GlobalFlags holds flags available to all subcommands.
type GlobalFlags struct {
	Config  string `long:"config" description:"Path to config file" default:""`
	JSON    bool   `long:"json" description:"Output in JSON format"`
	Verbose bool   `long:"verbose" description:"Enable verbose output"`
	Version bool   `long:"version" description:"Show version and exit"`

	db *sql.DB // injectable for testing; nil means open the configured archive
}

// AnalysisFlags select the input and range shared by the analysis commands.
// Unset flags fall back to the config file.
type AnalysisFlags struct {
	File       string `long:"file" short:"f" description:"Path to the search history JSON export"`
	Archive    bool   `long:"archive" description:"Analyze the imported archive instead of a file"`
	ImportID   string `long:"import-id" description:"Restrict --archive to one import run"`
	Lang       string `long:"lang" description:"Export language: en | de"`
	From       string `long:"from" description:"Only events at or after this local time (YYYY-MM-DD[ HH:MM:SS])"`
	Until      string `long:"until" description:"Only events at or before this local time (YYYY-MM-DD[ HH:MM:SS])"`
	AssumeZone string `long:"assume-zone" description:"Zone for timestamps without an offset (default UTC)"`
}

// HeatmapFlags override the config's fill_heatmap setting.
type HeatmapFlags struct {
	Fill   bool `long:"fill" description:"Show empty cells as 0 instead of null"`
	NoFill bool `long:"no-fill" description:"Leave empty cells null even if the config fills them"`
}

// FactsCommand prints the basic facts.
type FactsCommand struct {
	AnalysisFlags

	globals *GlobalFlags
}

// WeeklyCommand prints searches per week.
type WeeklyCommand struct {
	AnalysisFlags

	globals *GlobalFlags
}

// HeatmapCommand prints the hour by weekday matrix.
type HeatmapCommand struct {
	AnalysisFlags
	HeatmapFlags

	globals *GlobalFlags
}

// TopCommand prints the most frequent search terms.
type TopCommand struct {
	AnalysisFlags
	N *int `long:"n" short:"n" description:"Number of terms (default from config)"`

	globals *GlobalFlags
}

// LocationsCommand prints the coordinates searches were made from.
type LocationsCommand struct {
	AnalysisFlags

	globals *GlobalFlags
}

// ReportCommand prints every aggregate and optionally exports metrics.
type ReportCommand struct {
	AnalysisFlags
	HeatmapFlags
	N               *int   `long:"n" short:"n" description:"Number of top terms (default from config)"`
	MetricsTextfile string `long:"metrics-textfile" description:"Write Prometheus gauges to this file"`

	globals *GlobalFlags
}

// ImportCommand stores an export in the archive.
type ImportCommand struct {
	File       string `long:"file" short:"f" description:"Path to the search history JSON export"`
	AssumeZone string `long:"assume-zone" description:"Zone for timestamps without an offset (default UTC)"`

	globals *GlobalFlags
}

// StatusCommand shows archive statistics and configuration summary.
type StatusCommand struct {
	globals *GlobalFlags
	version string
}

// PruneCommand deletes archived records older than a relative age.
type PruneCommand struct {
	OlderThan string `long:"older-than" description:"Delete records older than this (e.g., 90d, 12w)" required:"true"`
	DryRun    bool   `long:"dry-run" description:"Show what would be pruned without deleting"`

	globals *GlobalFlags
}

// PurgeCommand deletes the whole archive with safety confirmation.
type PurgeCommand struct {
	All   bool `long:"all" description:"Required flag to confirm purge intent"`
	Force bool `long:"force" description:"Skip safety confirmation prompt"`

	globals *GlobalFlags
}
