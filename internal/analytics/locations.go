package analytics

import (
	"regexp"
	"strconv"

	"github.com/runnerr0/searchwrapped/internal/history"
)

// Location is a point a search was made from.
type Location struct {
	Lat   float64
	Lon   float64
	Label string
}

// Each coordinate is optionally signed, in decimal or integer form.
var centerPattern = regexp.MustCompile(`center=([-+]?(?:\d*\.\d+|\d+)),([-+]?(?:\d*\.\d+|\d+))`)

// ParseCenter extracts the center=<lat>,<lon> pair from a maps URL.
func ParseCenter(url string) (lat, lon float64, ok bool) {
	m := centerPattern.FindStringSubmatch(url)
	if m == nil {
		return 0, 0, false
	}
	lat, err := strconv.ParseFloat(m[1], 64)
	if err != nil {
		return 0, 0, false
	}
	lon, err = strconv.ParseFloat(m[2], 64)
	if err != nil {
		return 0, 0, false
	}
	return lat, lon, true
}

// ExtractLocations returns one point per search whose first location entry
// carries a parseable center. Each search is evaluated on its own; searches
// without a match are skipped.
func ExtractLocations(events []history.SearchEvent) []Location {
	out := []Location{}
	for _, e := range events {
		if loc, ok := locationOf(e); ok {
			out = append(out, loc)
		}
	}
	return out
}

func locationOf(e history.SearchEvent) (Location, bool) {
	if len(e.LocationInfos) == 0 || e.LocationInfos[0].URL == "" {
		return Location{}, false
	}
	lat, lon, ok := ParseCenter(e.LocationInfos[0].URL)
	if !ok {
		return Location{}, false
	}
	return Location{Lat: lat, Lon: lon, Label: e.Query}, true
}
