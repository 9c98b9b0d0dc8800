package history

import "time"

// LocationInfo is one location descriptor attached to an exported event.
type LocationInfo struct {
	Name   string `json:"name,omitempty"`
	URL    string `json:"url,omitempty"`
	Source string `json:"source,omitempty"`
}

// RawEvent is one record exactly as found in the export.
type RawEvent struct {
	Title         string         `json:"title"`
	Time          string         `json:"time"`
	LocationInfos []LocationInfo `json:"locationInfos,omitempty"`
}

// NormalizedEvent is a RawEvent whose time has been parsed and converted to
// the target zone.
type NormalizedEvent struct {
	Title         string
	Time          time.Time // in the target zone
	LocalTime     string    // Time rendered with LocalLayout
	LocationInfos []LocationInfo
}

// SearchEvent is a NormalizedEvent recognized as a search. Query is the
// title with the language marker removed; surrounding whitespace is kept.
type SearchEvent struct {
	Query         string
	Time          time.Time
	LocalTime     string
	LocationInfos []LocationInfo
}
