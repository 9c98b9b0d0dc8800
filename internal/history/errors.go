package history

import (
	"errors"
	"fmt"
)

// Error kinds. Every error returned by this package matches exactly one of
// them under errors.Is.
var (
	ErrSource              = errors.New("source error")
	ErrParse               = errors.New("parse error")
	ErrUnsupportedLanguage = errors.New("unsupported language")
	ErrInsufficientData    = errors.New("insufficient data")
)

// SourceError reports an input resource that cannot be read or does not
// decode to a list of records.
type SourceError struct {
	Source string
	Err    error
}

func (e *SourceError) Error() string {
	return fmt.Sprintf("read %s: %v", e.Source, e.Err)
}

func (e *SourceError) Unwrap() []error {
	return []error{ErrSource, e.Err}
}

// ParseError reports a single record whose field could not be parsed.
type ParseError struct {
	Index int
	Field string
	Value string
	Err   error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("record %d: parse %s %q: %v", e.Index, e.Field, e.Value, e.Err)
}

func (e *ParseError) Unwrap() []error {
	return []error{ErrParse, e.Err}
}
