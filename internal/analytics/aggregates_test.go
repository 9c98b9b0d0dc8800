package analytics

import (
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/runnerr0/searchwrapped/internal/history"
)

func search(query string, t time.Time) history.SearchEvent {
	local := t.In(history.Location())
	return history.SearchEvent{Query: query, Time: local, LocalTime: local.Format(history.LocalLayout)}
}

func berlin(year int, month time.Month, day, hour, min int) time.Time {
	return time.Date(year, month, day, hour, min, 0, 0, history.Location())
}

// --- BasicFacts ---

func TestBasicFacts_BusiestDayTieTakesEarliest(t *testing.T) {
	events := []history.SearchEvent{
		search("a", berlin(2023, 3, 5, 9, 0)),
		search("b", berlin(2023, 3, 5, 10, 0)),
		search("c", berlin(2023, 3, 1, 9, 0)),
		search("d", berlin(2023, 3, 1, 10, 0)),
		search("e", berlin(2023, 3, 3, 10, 0)),
	}

	facts := BasicFacts(events)
	assert.Equal(t, "2023-03-01", facts.DateMostSearches)
	assert.Equal(t, 2, facts.AmountMostSearches)

	for _, n := range SearchesPerDay(events) {
		assert.LessOrEqual(t, n, facts.AmountMostSearches)
	}
}

func TestBasicFacts_DayUsesTargetZone(t *testing.T) {
	// 23:30 UTC on Jan 1 is already Jan 2 in Berlin.
	events := []history.SearchEvent{
		search("late", time.Date(2023, 1, 1, 23, 30, 0, 0, time.UTC)),
	}
	assert.Equal(t, "2023-01-02", BasicFacts(events).DateMostSearches)
}

func TestBasicFacts_LongestSearchTermCountsRunes(t *testing.T) {
	events := []history.SearchEvent{
		search("ääää", berlin(2023, 1, 1, 0, 0)), // 4 runes, 8 bytes
		search("abcde", berlin(2023, 1, 1, 1, 0)),
		search("vwxyz", berlin(2023, 1, 1, 2, 0)),
	}
	assert.Equal(t, "abcde", BasicFacts(events).LongestSearchTerm)
}

func TestBasicFacts_DoesNotMutateInput(t *testing.T) {
	events := []history.SearchEvent{
		search("late", berlin(2023, 1, 2, 0, 0)),
		search("early", berlin(2023, 1, 1, 0, 0)),
	}
	_ = BasicFacts(events)
	assert.Equal(t, "late", events[0].Query)
	assert.Equal(t, "early", events[1].Query)
}

// --- LongestPause ---

func TestLongestPause_UniformGaps(t *testing.T) {
	const gap = 17 * time.Minute
	start := berlin(2023, 6, 1, 8, 0)
	var events []history.SearchEvent
	for i := 0; i < 6; i++ {
		events = append(events, search(fmt.Sprintf("q%d", i), start.Add(time.Duration(i)*gap)))
	}
	// shuffle order; pauses are computed on time order
	events[0], events[4] = events[4], events[0]

	pause, err := LongestPause(events)
	require.NoError(t, err)
	assert.Equal(t, gap, pause)
}

func TestLongestPause_PicksMaximumGap(t *testing.T) {
	events := []history.SearchEvent{
		search("a", berlin(2023, 1, 1, 10, 0)),
		search("b", berlin(2023, 1, 3, 10, 0)),
		search("c", berlin(2023, 1, 1, 11, 0)),
		search("d", berlin(2023, 1, 1, 11, 0)), // tie, zero gap
	}
	pause, err := LongestPause(events)
	require.NoError(t, err)
	assert.Equal(t, 47*time.Hour, pause)
	assert.GreaterOrEqual(t, pause, time.Duration(0))
}

func TestLongestPause_InsufficientData(t *testing.T) {
	_, err := LongestPause(nil)
	assert.True(t, errors.Is(err, history.ErrInsufficientData))

	_, err = LongestPause([]history.SearchEvent{search("one", berlin(2023, 1, 1, 0, 0))})
	assert.True(t, errors.Is(err, history.ErrInsufficientData))
	assert.Nil(t, BasicFacts([]history.SearchEvent{search("one", berlin(2023, 1, 1, 0, 0))}).LongestPause)
}

// --- SearchesPerWeek ---

func TestSearchesPerWeek_MondayStartAndGaps(t *testing.T) {
	events := []history.SearchEvent{
		search("sun", berlin(2023, 1, 8, 23, 59)),  // week of Jan 2
		search("mon", berlin(2023, 1, 9, 0, 0)),    // week of Jan 9
		search("later", berlin(2023, 1, 25, 12, 0)), // week of Jan 23, Jan 16 skipped
		search("mon2", berlin(2023, 1, 2, 0, 0)),
	}

	weeks := SearchesPerWeek(events)
	require.Len(t, weeks, 3)

	var got []string
	for _, w := range weeks {
		got = append(got, fmt.Sprintf("%s=%d", w.WeekStart.Format("2006-01-02"), w.Count))
		assert.Equal(t, time.Monday, w.WeekStart.Weekday())
		assert.Equal(t, 0, w.WeekStart.Hour())
	}
	assert.Equal(t, []string{"2023-01-02=2", "2023-01-09=1", "2023-01-23=1"}, got)
}

func TestSearchesPerWeek_AcrossDSTChange(t *testing.T) {
	// Berlin switches to summer time on Sunday 2023-03-26.
	events := []history.SearchEvent{
		search("before", berlin(2023, 3, 26, 1, 0)),
		search("after", berlin(2023, 3, 26, 23, 0)),
	}
	weeks := SearchesPerWeek(events)
	require.Len(t, weeks, 1)
	assert.Equal(t, "2023-03-20 00:00:00", weeks[0].WeekStart.Format(history.LocalLayout))
	assert.Equal(t, 2, weeks[0].Count)
}

// --- HourWeekdayHeatmap ---

func TestHourWeekdayHeatmap_DenseAndSummed(t *testing.T) {
	var events []history.SearchEvent
	start := berlin(2023, 2, 6, 0, 0) // Monday
	for i := 0; i < 50; i++ {
		events = append(events, search("q", start.Add(time.Duration(i*7)*time.Hour)))
	}

	filled := HourWeekdayHeatmap(events, true)
	cells := 0
	for hour := range filled.Cells {
		for col := range filled.Cells[hour] {
			cells++
			assert.NotNil(t, filled.Cells[hour][col])
		}
	}
	assert.Equal(t, HoursPerDay*DaysPerWeek, cells)
	assert.Equal(t, 168, cells)
	assert.Equal(t, len(events), filled.Total())

	sparse := HourWeekdayHeatmap(events, false)
	assert.Equal(t, len(events), sparse.Total())
	nils := 0
	for hour := range sparse.Cells {
		for col := range sparse.Cells[hour] {
			if sparse.Cells[hour][col] == nil {
				nils++
				v, ok := filled.Value(hour, col)
				assert.True(t, ok)
				assert.Equal(t, 0, v)
			}
		}
	}
	assert.Positive(t, nils)
}

func TestHourWeekdayHeatmap_ColumnOrder(t *testing.T) {
	// 2023-02-12 is a Sunday.
	h := HourWeekdayHeatmap([]history.SearchEvent{search("sun", berlin(2023, 2, 12, 23, 15))}, false)
	v, ok := h.Value(23, 6)
	require.True(t, ok)
	assert.Equal(t, 1, v)
	assert.Equal(t, time.Sunday, Weekdays[6])
	assert.Equal(t, time.Monday, Weekdays[0])
}

func TestHourWeekdayHeatmap_Empty(t *testing.T) {
	assert.Equal(t, 0, HourWeekdayHeatmap(nil, true).Total())
	_, ok := HourWeekdayHeatmap(nil, false).Value(12, 3)
	assert.False(t, ok)
}

// --- TopTerms ---

func TestTopTerms_OrderingAndTies(t *testing.T) {
	queries := []string{"b", "a", "c", "a", "b", "d", "a"}
	var events []history.SearchEvent
	for i, q := range queries {
		events = append(events, search(q, berlin(2023, 1, 1, i, 0)))
	}

	got := TopTerms(events, 10)
	// b and c/d tie-break by first appearance
	assert.Equal(t, []TermCount{{"a", 3}, {"b", 2}, {"c", 1}, {"d", 1}}, got)

	assert.Equal(t, []TermCount{{"a", 3}, {"b", 2}}, TopTerms(events, 2))
	assert.Equal(t, []TermCount{}, TopTerms(events, 0))
	assert.Equal(t, []TermCount{}, TopTerms(events, -3))

	sum := 0
	for _, tc := range got {
		sum += tc.Count
	}
	assert.LessOrEqual(t, sum, len(events))
}

func TestTopTerms_ExactMatchOnly(t *testing.T) {
	events := []history.SearchEvent{
		search(" cats", berlin(2023, 1, 1, 1, 0)),
		search("cats", berlin(2023, 1, 1, 2, 0)),
		search(" Cats", berlin(2023, 1, 1, 3, 0)),
	}
	assert.Len(t, TopTerms(events, 5), 3)
}

// --- ExtractLocations ---

func withLocation(e history.SearchEvent, urls ...string) history.SearchEvent {
	for _, u := range urls {
		e.LocationInfos = append(e.LocationInfos, history.LocationInfo{URL: u})
	}
	return e
}

func TestExtractLocations_NoStaleMatch(t *testing.T) {
	events := []history.SearchEvent{
		withLocation(search(" london", berlin(2023, 1, 1, 9, 0)), "https://www.google.com/maps/@?api=1&map_action=map&center=51.5,-0.12&zoom=11"),
		search(" nowhere", berlin(2023, 1, 1, 10, 0)),
		withLocation(search(" no center", berlin(2023, 1, 1, 11, 0)), "https://www.google.com/maps/@?api=1&zoom=11"),
		withLocation(search(" empty url", berlin(2023, 1, 1, 12, 0)), ""),
	}

	locs := ExtractLocations(events)
	require.Len(t, locs, 1)
	assert.Equal(t, Location{Lat: 51.5, Lon: -0.12, Label: " london"}, locs[0])
}

func TestExtractLocations_UsesFirstEntryOnly(t *testing.T) {
	events := []history.SearchEvent{
		withLocation(search(" a", berlin(2023, 1, 1, 9, 0)), "https://maps/?zoom=3", "https://maps/?center=1.0,2.0"),
		withLocation(search(" b", berlin(2023, 1, 1, 9, 0)), "https://maps/?center=52,13", "https://maps/?center=1.0,2.0"),
	}

	locs := ExtractLocations(events)
	require.Len(t, locs, 1)
	assert.Equal(t, Location{Lat: 52, Lon: 13, Label: " b"}, locs[0])
}

func TestParseCenter(t *testing.T) {
	cases := []struct {
		url      string
		lat, lon float64
		ok       bool
	}{
		{"center=51.5,-0.12", 51.5, -0.12, true},
		{"x?center=-33.8688,+151.2093&zoom=4", -33.8688, 151.2093, true},
		{"center=.5,7", 0.5, 7, true},
		{"x?center=-33,151&z", -33, 151, true},
		{"x?center=+5,-7", 5, -7, true},
		{"center=-33,-151.5", -33, -151.5, true},
		{"center=abc,def", 0, 0, false},
		{"no coordinates", 0, 0, false},
	}
	for _, tc := range cases {
		lat, lon, ok := ParseCenter(tc.url)
		assert.Equal(t, tc.ok, ok, tc.url)
		assert.InDelta(t, tc.lat, lat, 1e-9, tc.url)
		assert.InDelta(t, tc.lon, lon, 1e-9, tc.url)
	}
}
