package history

import (
	"fmt"
	"strings"
)

// Language selects the marker that identifies search events.
type Language string

const (
	English Language = "en"
	German  Language = "de"
)

// The German marker carries a trailing colon and the English one does not;
// both match the wording of the respective exports.
var markers = map[Language]string{
	English: "Searched for",
	German:  "Gesucht nach:",
}

// ParseLanguage validates a language code. The empty string selects English.
func ParseLanguage(code string) (Language, error) {
	if code == "" {
		return English, nil
	}
	lang := Language(strings.ToLower(strings.TrimSpace(code)))
	if _, ok := markers[lang]; !ok {
		return "", fmt.Errorf("%w: %q", ErrUnsupportedLanguage, code)
	}
	return lang, nil
}

// Marker returns the search marker for lang.
func Marker(lang Language) (string, error) {
	m, ok := markers[lang]
	if !ok {
		return "", fmt.Errorf("%w: %q", ErrUnsupportedLanguage, string(lang))
	}
	return m, nil
}

// Languages lists the supported codes.
func Languages() []Language {
	return []Language{English, German}
}

// FilterSearches keeps events whose title contains the marker anywhere and
// removes the first occurrence of it. The input slice is not modified.
func FilterSearches(events []NormalizedEvent, lang Language) ([]SearchEvent, error) {
	marker, err := Marker(lang)
	if err != nil {
		return nil, err
	}

	out := make([]SearchEvent, 0, len(events))
	for _, e := range events {
		if !strings.Contains(e.Title, marker) {
			continue
		}
		out = append(out, SearchEvent{
			Query:         strings.Replace(e.Title, marker, "", 1),
			Time:          e.Time,
			LocalTime:     e.LocalTime,
			LocationInfos: e.LocationInfos,
		})
	}
	return out, nil
}
