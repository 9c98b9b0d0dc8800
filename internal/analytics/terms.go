package analytics

import (
	"sort"

	"github.com/runnerr0/searchwrapped/internal/history"
)

// TermCount pairs a query with how often it was searched.
type TermCount struct {
	Term  string
	Count int
}

// TopTerms ranks queries by exact-match frequency, descending. Equal counts
// keep first-seen order. n <= 0 yields an empty list.
func TopTerms(events []history.SearchEvent, n int) []TermCount {
	if n <= 0 {
		return []TermCount{}
	}

	index := make(map[string]int)
	var terms []TermCount
	for _, e := range events {
		i, ok := index[e.Query]
		if !ok {
			i = len(terms)
			index[e.Query] = i
			terms = append(terms, TermCount{Term: e.Query})
		}
		terms[i].Count++
	}

	sort.SliceStable(terms, func(i, j int) bool { return terms[i].Count > terms[j].Count })

	if n < len(terms) {
		terms = terms[:n]
	}
	if terms == nil {
		terms = []TermCount{}
	}
	return terms
}
