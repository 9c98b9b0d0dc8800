package history

import (
	"context"
	"fmt"
	"strings"
	"time"
	_ "time/tzdata" // target zone must resolve on hosts without a zoneinfo database

	"github.com/araddon/dateparse"
)

const (
	// TargetZone is the zone every event is converted to before bucketing.
	TargetZone = "Europe/Berlin"

	// LocalLayout renders normalized times. It is fixed-width and
	// zero-padded, so string order equals chronological order.
	LocalLayout = "2006-01-02 15:04:05"
)

// NormalizeOptions controls Normalize and Load.
type NormalizeOptions struct {
	// FromDate and UntilDate are inclusive bounds compared as strings
	// against the LocalLayout rendering. Empty means unbounded.
	FromDate  string
	UntilDate string

	// AssumeZone applies to timestamps that carry no offset. Nil means UTC.
	AssumeZone *time.Location
}

var targetLocation = mustLoadLocation(TargetZone)

func mustLoadLocation(name string) *time.Location {
	loc, err := time.LoadLocation(name)
	if err != nil {
		panic(fmt.Sprintf("load location %s: %v", name, err))
	}
	return loc
}

// Location returns the target zone.
func Location() *time.Location {
	return targetLocation
}

// ParseTime parses a free-form timestamp. A timestamp without an explicit
// offset is read in assume (UTC when nil). A zone abbreviation unknown to
// assume is resolved against the target zone; one neither knows is an error.
func ParseTime(s string, assume *time.Location) (time.Time, error) {
	if assume == nil {
		assume = time.UTC
	}
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, fmt.Errorf("empty timestamp")
	}

	t, err := dateparse.ParseIn(s, assume)
	if err != nil {
		return time.Time{}, err
	}
	if !unresolvedZone(t, assume) {
		return t, nil
	}

	t, err = dateparse.ParseIn(s, targetLocation)
	if err != nil {
		return time.Time{}, err
	}
	if unresolvedZone(t, targetLocation) {
		name, _ := t.Zone()
		return time.Time{}, fmt.Errorf("unknown time zone abbreviation %q", name)
	}
	return t, nil
}

// unresolvedZone reports whether t carries a zone abbreviation that loc
// does not define. Parsing gives such a name a zero offset.
func unresolvedZone(t time.Time, loc *time.Location) bool {
	name, offset := t.Zone()
	if offset != 0 || t.Location() == loc {
		return false
	}
	switch name {
	case "", "UTC", "GMT", "UT", "Z":
		return false
	}
	return true
}

// Normalize converts raw records to the target zone and applies the date
// range. The first record whose time cannot be parsed aborts the whole call
// with a *ParseError.
func Normalize(raw []RawEvent, opts NormalizeOptions) ([]NormalizedEvent, error) {
	out := make([]NormalizedEvent, 0, len(raw))
	for i, r := range raw {
		t, err := ParseTime(r.Time, opts.AssumeZone)
		if err != nil {
			return nil, &ParseError{Index: i, Field: "time", Value: r.Time, Err: err}
		}
		local := t.In(targetLocation)
		rendered := local.Format(LocalLayout)

		if opts.FromDate != "" && rendered < opts.FromDate {
			continue
		}
		if opts.UntilDate != "" && rendered > opts.UntilDate {
			continue
		}

		out = append(out, NormalizedEvent{
			Title:         r.Title,
			Time:          local,
			LocalTime:     rendered,
			LocationInfos: r.LocationInfos,
		})
	}
	return out, nil
}

// Load reads every record from src and normalizes it.
func Load(ctx context.Context, src Source, opts NormalizeOptions) ([]NormalizedEvent, error) {
	raw, err := src.Records(ctx)
	if err != nil {
		return nil, err
	}
	return Normalize(raw, opts)
}
