package analytics

import (
	"sort"
	"time"

	"github.com/runnerr0/searchwrapped/internal/history"
)

// WeekCount is the number of searches in the week starting at WeekStart
// (Monday 00:00 in the target zone).
type WeekCount struct {
	WeekStart time.Time
	Count     int
}

// SearchesPerWeek buckets searches by Monday-start week, ascending. Weeks
// without searches are omitted.
func SearchesPerWeek(events []history.SearchEvent) []WeekCount {
	counts := make(map[int64]*WeekCount)
	for _, e := range events {
		start := weekStart(e.Time)
		key := start.Unix()
		wc, ok := counts[key]
		if !ok {
			wc = &WeekCount{WeekStart: start}
			counts[key] = wc
		}
		wc.Count++
	}

	out := make([]WeekCount, 0, len(counts))
	for _, wc := range counts {
		out = append(out, *wc)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].WeekStart.Before(out[j].WeekStart) })
	return out
}

func weekStart(t time.Time) time.Time {
	y, m, d := t.Date()
	back := (int(t.Weekday()) + 6) % 7
	return time.Date(y, m, d-back, 0, 0, 0, 0, t.Location())
}
