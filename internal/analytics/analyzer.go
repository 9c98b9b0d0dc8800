// Package analytics turns a loaded search history into summary facts and
// chart-ready aggregates. An Analyzer reads its source once; every query
// afterwards is a pure function of the frozen search collection.
package analytics

import (
	"context"
	"fmt"
	"time"

	"github.com/runnerr0/searchwrapped/internal/history"
)

// Options configures an Analyzer.
type Options struct {
	Language   history.Language
	FromDate   string
	UntilDate  string
	AssumeZone *time.Location
}

// Analyzer holds the normalized and search events of one export.
type Analyzer struct {
	source     string
	language   history.Language
	normalized []history.NormalizedEvent
	searches   []history.SearchEvent
}

// New loads src and derives the search events. Any load error aborts
// construction; no partially built Analyzer is returned.
func New(ctx context.Context, src history.Source, opts Options) (*Analyzer, error) {
	lang := opts.Language
	if lang == "" {
		lang = history.English
	}
	if _, err := history.Marker(lang); err != nil {
		return nil, err
	}

	normalized, err := history.Load(ctx, src, history.NormalizeOptions{
		FromDate:   opts.FromDate,
		UntilDate:  opts.UntilDate,
		AssumeZone: opts.AssumeZone,
	})
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", src.Name(), err)
	}

	searches, err := history.FilterSearches(normalized, lang)
	if err != nil {
		return nil, err
	}

	return &Analyzer{
		source:     src.Name(),
		language:   lang,
		normalized: normalized,
		searches:   searches,
	}, nil
}

// Source names the input the analyzer was built from.
func (a *Analyzer) Source() string { return a.source }

// Language returns the marker language in use.
func (a *Analyzer) Language() history.Language { return a.language }

// EventCount is the number of events inside the date range, searches or not.
func (a *Analyzer) EventCount() int { return len(a.normalized) }

// Searches returns a copy of the search events in source order.
func (a *Analyzer) Searches() []history.SearchEvent {
	out := make([]history.SearchEvent, len(a.searches))
	copy(out, a.searches)
	return out
}

// BasicFacts summarizes the searches; see the package-level BasicFacts.
func (a *Analyzer) BasicFacts() FactsReport { return BasicFacts(a.searches) }

// LongestPause is the largest gap between consecutive searches. It fails
// with history.ErrInsufficientData for fewer than two searches.
func (a *Analyzer) LongestPause() (time.Duration, error) { return LongestPause(a.searches) }

// SearchesPerWeek counts searches per Monday-start week.
func (a *Analyzer) SearchesPerWeek() []WeekCount { return SearchesPerWeek(a.searches) }

// HourWeekdayHeatmap counts searches per local hour and weekday.
func (a *Analyzer) HourWeekdayHeatmap(fillMissing bool) Heatmap {
	return HourWeekdayHeatmap(a.searches, fillMissing)
}

// TopTerms returns the n most frequent queries.
func (a *Analyzer) TopTerms(n int) []TermCount { return TopTerms(a.searches, n) }

// ExtractLocations returns the points searches were made from.
func (a *Analyzer) ExtractLocations() []Location { return ExtractLocations(a.searches) }

// Report bundles every aggregate.
type Report struct {
	Source    string
	Language  history.Language
	Facts     FactsReport
	Weekly    []WeekCount
	Heatmap   Heatmap
	TopTerms  []TermCount
	Locations []Location
}

// Report computes all aggregates in one call.
func (a *Analyzer) Report(topN int, fillMissing bool) Report {
	return Report{
		Source:    a.source,
		Language:  a.language,
		Facts:     a.BasicFacts(),
		Weekly:    a.SearchesPerWeek(),
		Heatmap:   a.HourWeekdayHeatmap(fillMissing),
		TopTerms:  a.TopTerms(topN),
		Locations: a.ExtractLocations(),
	}
}
