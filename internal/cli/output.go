package cli

import (
	"fmt"
	"strings"

	"github.com/runnerr0/searchwrapped/internal/analytics"
)

type factsJSON struct {
	CountSearches       int     `json:"count_searches"`
	DateMostSearches    string  `json:"date_most_searches"`
	AmountMostSearches  int     `json:"amount_most_searches"`
	LongestPauseSeconds *int64  `json:"longest_pause_seconds"`
	LongestPause        *string `json:"longest_pause"`
	LongestSearchTerm   string  `json:"longest_search_term"`
}

type weekJSON struct {
	WeekStart string `json:"week_start"`
	Count     int    `json:"count"`
}

type heatmapJSON struct {
	Hours    []int    `json:"hours"`
	Weekdays []string `json:"weekdays"`
	Cells    [][]*int `json:"cells"`
}

type termJSON struct {
	Term  string `json:"term"`
	Count int    `json:"count"`
}

type locationJSON struct {
	Lat   float64 `json:"lat"`
	Lon   float64 `json:"lon"`
	Label string  `json:"label"`
}

type reportJSON struct {
	Source    string         `json:"source"`
	Language  string         `json:"language"`
	Facts     factsJSON      `json:"facts"`
	Weekly    []weekJSON     `json:"weekly"`
	Heatmap   heatmapJSON    `json:"heatmap"`
	TopTerms  []termJSON     `json:"top_terms"`
	Locations []locationJSON `json:"locations"`
}

func toFactsJSON(f analytics.FactsReport) factsJSON {
	out := factsJSON{
		CountSearches:      f.CountSearches,
		DateMostSearches:   f.DateMostSearches,
		AmountMostSearches: f.AmountMostSearches,
		LongestSearchTerm:  f.LongestSearchTerm,
	}
	if f.LongestPause != nil {
		secs := int64(f.LongestPause.Seconds())
		human := formatDurationHuman(*f.LongestPause)
		out.LongestPauseSeconds = &secs
		out.LongestPause = &human
	}
	return out
}

func toWeeksJSON(weeks []analytics.WeekCount) []weekJSON {
	out := make([]weekJSON, len(weeks))
	for i, w := range weeks {
		out[i] = weekJSON{WeekStart: w.WeekStart.Format("2006-01-02"), Count: w.Count}
	}
	return out
}

func toHeatmapJSON(h analytics.Heatmap) heatmapJSON {
	out := heatmapJSON{
		Hours:    make([]int, analytics.HoursPerDay),
		Weekdays: make([]string, analytics.DaysPerWeek),
		Cells:    make([][]*int, analytics.HoursPerDay),
	}
	for col, day := range analytics.Weekdays {
		out.Weekdays[col] = day.String()
	}
	for hour := range h.Cells {
		out.Hours[hour] = hour
		out.Cells[hour] = h.Cells[hour][:]
	}
	return out
}

func toTermsJSON(terms []analytics.TermCount) []termJSON {
	out := make([]termJSON, len(terms))
	for i, tc := range terms {
		out[i] = termJSON{Term: tc.Term, Count: tc.Count}
	}
	return out
}

func toLocationsJSON(locs []analytics.Location) []locationJSON {
	out := make([]locationJSON, len(locs))
	for i, l := range locs {
		out[i] = locationJSON{Lat: l.Lat, Lon: l.Lon, Label: l.Label}
	}
	return out
}

func printFactsHuman(f analytics.FactsReport) {
	fmt.Println("Basic Facts")
	fmt.Println("===========")
	fmt.Printf("Total searches:      %s\n", formatNumber(int64(f.CountSearches)))
	if f.CountSearches > 0 {
		fmt.Printf("Busiest day:         %s (%s searches)\n", f.DateMostSearches, formatNumber(int64(f.AmountMostSearches)))
		fmt.Printf("Longest search term: %s\n", displayTerm(f.LongestSearchTerm))
	}
	if f.LongestPause != nil {
		fmt.Printf("Longest pause:       %s\n", formatDurationHuman(*f.LongestPause))
	} else {
		fmt.Println("Longest pause:       n/a (fewer than 2 searches)")
	}
}

func printWeeklyHuman(weeks []analytics.WeekCount) {
	fmt.Println("Searches per Week")
	fmt.Println("=================")
	if len(weeks) == 0 {
		fmt.Println("No searches found")
		return
	}
	for _, w := range weeks {
		fmt.Printf("%s  %6s\n", w.WeekStart.Format("2006-01-02"), formatNumber(int64(w.Count)))
	}
}

func printHeatmapHuman(h analytics.Heatmap) {
	fmt.Println("Searches per Hour and Day")
	fmt.Println("=========================")

	var header strings.Builder
	header.WriteString("Hour")
	for _, day := range analytics.Weekdays {
		fmt.Fprintf(&header, " %5s", day.String()[:3])
	}
	fmt.Println(header.String())

	for hour := range h.Cells {
		var row strings.Builder
		fmt.Fprintf(&row, "%4d", hour)
		for col := range h.Cells[hour] {
			if v, ok := h.Value(hour, col); ok {
				fmt.Fprintf(&row, " %5d", v)
			} else {
				fmt.Fprintf(&row, " %5s", "-")
			}
		}
		fmt.Println(row.String())
	}
}

func printTopHuman(terms []analytics.TermCount) {
	fmt.Println("Most Searched Terms")
	fmt.Println("===================")
	if len(terms) == 0 {
		fmt.Println("No searches found")
		return
	}
	for i, tc := range terms {
		fmt.Printf("%3d. %-40s %s\n", i+1, displayTerm(tc.Term), formatNumber(int64(tc.Count)))
	}
}

func printLocationsHuman(locs []analytics.Location) {
	fmt.Println("Searched From")
	fmt.Println("=============")
	if len(locs) == 0 {
		fmt.Println("No locations found")
		return
	}
	for _, l := range locs {
		fmt.Printf("%10.5f %11.5f  %s\n", l.Lat, l.Lon, displayTerm(l.Label))
	}
}
