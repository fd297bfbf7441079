package pcb

import (
	"errors"
	"fmt"
)

var (
	// ErrMissingField marks a mandatory sub-record that is absent.
	ErrMissingField = errors.New("missing field")
	// ErrBadField marks a sub-record whose values cannot be read.
	ErrBadField = errors.New("malformed field")
	// ErrEmpty is returned for a buffer without any record.
	ErrEmpty = errors.New("no records found")
)

// ParseError locates a record that could not be converted.
type ParseError struct {
	Record string
	Field  string
	Offset int
	Err    error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("%s at offset %d: field %q: %v", e.Record, e.Offset, e.Field, e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// WarningKind classifies non-fatal findings.
type WarningKind int

const (
	// WarnFormat flags an unexpected file header or a repaired record.
	WarnFormat WarningKind = iota
	// WarnOutline flags a board edge that could not be closed.
	WarnOutline
	// WarnUnsupported flags a recognised record that is not converted.
	WarnUnsupported
)

func (k WarningKind) String() string {
	switch k {
	case WarnFormat:
		return "format"
	case WarnOutline:
		return "outline"
	case WarnUnsupported:
		return "unsupported"
	}
	return "unknown"
}

// Warning is a non-fatal finding made during extraction.
type Warning struct {
	Kind    WarningKind
	Offset  int
	Message string
}

func (w Warning) String() string {
	return fmt.Sprintf("%s: %s (offset %d)", w.Kind, w.Message, w.Offset)
}
