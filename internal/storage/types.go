package storage

import (
	"time"

	"github.com/runnerr0/searchwrapped/internal/history"
)

// Import is one export file loaded into the archive.
type Import struct {
	ID          string
	SourcePath  string
	ImportedAt  time.Time
	RecordCount int64
}

// Record is one archived export entry. Title, RawTime and LocationInfos are
// kept exactly as exported; Timestamp is the parsed instant used for
// ordering and pruning.
type Record struct {
	ImportID      string
	Position      int
	Title         string
	RawTime       string
	Timestamp     time.Time
	LocationInfos []history.LocationInfo
}

// RecordQuery filters archived records. Zero values mean unbounded; a zero
// Limit returns every match.
type RecordQuery struct {
	ImportID string
	Since    time.Time
	Until    time.Time
	Limit    int
	Offset   int
}

// Stats holds aggregate statistics about the archive.
type Stats struct {
	TotalImports int64
	TotalRecords int64
	OldestRecord time.Time
	NewestRecord time.Time
	TopTitles    []TitleCount
}

// TitleCount pairs a raw title with its record count.
type TitleCount struct {
	Title string
	Count int64
}
