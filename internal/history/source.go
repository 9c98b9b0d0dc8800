package history

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
)

// Source produces the raw records of one export.
type Source interface {
	Name() string
	Records(ctx context.Context) ([]RawEvent, error)
}

// FileSource reads a JSON export from disk.
type FileSource struct {
	Path string
}

// Name returns the file path.
func (s FileSource) Name() string { return s.Path }

// Records opens and decodes the file.
func (s FileSource) Records(ctx context.Context) ([]RawEvent, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	f, err := os.Open(s.Path)
	if err != nil {
		return nil, &SourceError{Source: s.Path, Err: err}
	}
	defer f.Close()

	return Decode(f, s.Path)
}

// record mirrors RawEvent with pointer fields so missing keys can be told
// apart from empty strings.
type record struct {
	Title         *string        `json:"title"`
	Time          *string        `json:"time"`
	LocationInfos []LocationInfo `json:"locationInfos"`
}

// Decode reads a JSON array of event objects. Each object must carry string
// title and time fields; unknown fields are ignored.
func Decode(r io.Reader, name string) ([]RawEvent, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, &SourceError{Source: name, Err: err}
	}

	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 || trimmed[0] != '[' {
		return nil, &SourceError{Source: name, Err: errors.New("expected a JSON list of records")}
	}

	var entries []json.RawMessage
	if err := json.Unmarshal(trimmed, &entries); err != nil {
		return nil, &SourceError{Source: name, Err: fmt.Errorf("decode list: %w", err)}
	}

	events := make([]RawEvent, 0, len(entries))
	for i, raw := range entries {
		var rec record
		if err := json.Unmarshal(raw, &rec); err != nil {
			return nil, &SourceError{Source: name, Err: fmt.Errorf("record %d: %w", i, err)}
		}
		if rec.Title == nil {
			return nil, &SourceError{Source: name, Err: fmt.Errorf("record %d: missing title", i)}
		}
		if rec.Time == nil {
			return nil, &SourceError{Source: name, Err: fmt.Errorf("record %d: missing time", i)}
		}
		events = append(events, RawEvent{
			Title:         *rec.Title,
			Time:          *rec.Time,
			LocationInfos: rec.LocationInfos,
		})
	}

	return events, nil
}
