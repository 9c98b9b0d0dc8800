package analytics

import (
	"time"

	"github.com/runnerr0/searchwrapped/internal/history"
)

const (
	HoursPerDay = 24
	DaysPerWeek = 7
)

// Weekdays is the column order of a Heatmap.
var Weekdays = [DaysPerWeek]time.Weekday{
	time.Monday, time.Tuesday, time.Wednesday, time.Thursday,
	time.Friday, time.Saturday, time.Sunday,
}

// Heatmap is a dense hour-of-day by weekday matrix. Row h is hour h; column
// c is Weekdays[c]. A nil cell had no searches and filling was off.
type Heatmap struct {
	Cells [HoursPerDay][DaysPerWeek]*int
}

// Value returns the count at hour and column, and whether the cell is set.
func (h Heatmap) Value(hour, col int) (int, bool) {
	v := h.Cells[hour][col]
	if v == nil {
		return 0, false
	}
	return *v, true
}

// Total sums every set cell.
func (h Heatmap) Total() int {
	var total int
	for hour := range h.Cells {
		for col := range h.Cells[hour] {
			if v := h.Cells[hour][col]; v != nil {
				total += *v
			}
		}
	}
	return total
}

// HourWeekdayHeatmap counts searches per local hour and weekday. Empty
// cells are nil unless fillMissing is set, in which case they are zero.
func HourWeekdayHeatmap(events []history.SearchEvent, fillMissing bool) Heatmap {
	var counts [HoursPerDay][DaysPerWeek]int
	for _, e := range events {
		counts[e.Time.Hour()][weekdayColumn(e.Time.Weekday())]++
	}

	var h Heatmap
	for hour := range counts {
		for col := range counts[hour] {
			n := counts[hour][col]
			if n == 0 && !fillMissing {
				continue
			}
			h.Cells[hour][col] = &n
		}
	}
	return h
}

func weekdayColumn(d time.Weekday) int {
	return (int(d) + 6) % 7
}
