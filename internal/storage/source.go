package storage

import (
	"context"

	"github.com/runnerr0/searchwrapped/internal/history"
)

// Source exposes archived records as a history.Source so archived data
// goes through the same analysis path as an export file.
type Source struct {
	store Store
	query RecordQuery
}

// NewSource returns a Source reading the records matched by q.
func NewSource(store Store, q RecordQuery) *Source {
	return &Source{store: store, query: q}
}

// Name identifies the archive selection.
func (s *Source) Name() string {
	if s.query.ImportID != "" {
		return "archive:" + s.query.ImportID
	}
	return "archive"
}

// Records returns the archived entries in archive order.
func (s *Source) Records(ctx context.Context) ([]history.RawEvent, error) {
	records, err := s.store.ListRecords(ctx, s.query)
	if err != nil {
		return nil, &history.SourceError{Source: s.Name(), Err: err}
	}

	events := make([]history.RawEvent, len(records))
	for i, r := range records {
		events[i] = history.RawEvent{
			Title:         r.Title,
			Time:          r.RawTime,
			LocationInfos: r.LocationInfos,
		}
	}
	return events, nil
}

// RecordsFromEvents parses the time of each raw event for archiving. The
// first unparseable time aborts with a *history.ParseError, matching the
// load policy of the analyzer.
func RecordsFromEvents(events []history.RawEvent, opts history.NormalizeOptions) ([]Record, error) {
	records := make([]Record, len(events))
	for i, e := range events {
		ts, err := history.ParseTime(e.Time, opts.AssumeZone)
		if err != nil {
			return nil, &history.ParseError{Index: i, Field: "time", Value: e.Time, Err: err}
		}
		records[i] = Record{
			Title:         e.Title,
			RawTime:       e.Time,
			Timestamp:     ts,
			LocationInfos: e.LocationInfos,
		}
	}
	return records, nil
}
