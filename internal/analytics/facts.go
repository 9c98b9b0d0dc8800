package analytics

import (
	"sort"
	"time"
	"unicode/utf8"

	"github.com/runnerr0/searchwrapped/internal/history"
)

const dayLayout = "2006-01-02"

// FactsReport holds the scalar summary of a search collection.
type FactsReport struct {
	CountSearches int

	// DateMostSearches is the busiest day (YYYY-MM-DD in the target zone);
	// the earliest day wins a tie. Empty when there are no searches.
	DateMostSearches   string
	AmountMostSearches int

	// LongestPause is nil when fewer than two searches exist.
	LongestPause *time.Duration

	// LongestSearchTerm is the query with the most code points; the first
	// one wins a tie.
	LongestSearchTerm string
}

// BasicFacts computes the summary. It never fails: an empty input yields a
// zero report.
func BasicFacts(events []history.SearchEvent) FactsReport {
	report := FactsReport{CountSearches: len(events)}

	report.DateMostSearches, report.AmountMostSearches = busiestDay(events)

	if pause, err := LongestPause(events); err == nil {
		report.LongestPause = &pause
	}

	longest := -1
	for _, e := range events {
		if n := utf8.RuneCountInString(e.Query); n > longest {
			longest = n
			report.LongestSearchTerm = e.Query
		}
	}

	return report
}

// SearchesPerDay counts searches per calendar day in the target zone.
func SearchesPerDay(events []history.SearchEvent) map[string]int {
	counts := make(map[string]int)
	for _, e := range events {
		counts[e.Time.Format(dayLayout)]++
	}
	return counts
}

func busiestDay(events []history.SearchEvent) (string, int) {
	var day string
	var amount int
	for d, n := range SearchesPerDay(events) {
		if n > amount || (n == amount && d < day) {
			day, amount = d, n
		}
	}
	return day, amount
}

// LongestPause returns the largest gap between chronologically consecutive
// searches. It needs at least two searches.
func LongestPause(events []history.SearchEvent) (time.Duration, error) {
	if len(events) < 2 {
		return 0, history.ErrInsufficientData
	}

	times := make([]time.Time, len(events))
	for i, e := range events {
		times[i] = e.Time
	}
	sort.Slice(times, func(i, j int) bool { return times[i].Before(times[j]) })

	var longest time.Duration
	for i := 1; i < len(times); i++ {
		if gap := times[i].Sub(times[i-1]); gap > longest {
			longest = gap
		}
	}
	return longest, nil
}
