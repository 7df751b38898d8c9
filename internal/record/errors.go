package record

import (
	"errors"
	"fmt"
)

// Errors returned when a scraped row cannot become a Publication.
var (
	// ErrEmptyTitle indicates the row has no title text.
	ErrEmptyTitle = errors.New("empty title")

	// ErrMalformedCount indicates the "cited by" text is not a non-negative integer.
	ErrMalformedCount = errors.New("malformed citation count")
)

// ParseKind classifies why a row was skipped.
type ParseKind string

const (
	KindEmptyTitle     ParseKind = "empty_title"
	KindMalformedCount ParseKind = "malformed_count"
)

// ParseError describes a single skipped row.
type ParseError struct {
	Row   int // Index in the ingested sequence
	Kind  ParseKind
	Title string
	Text  string // Raw "cited by" text
	Err   error
}

func (e *ParseError) Error() string {
	if e.Kind == KindMalformedCount {
		return fmt.Sprintf("row %d: %v: %q (title %q)", e.Row, e.Err, e.Text, e.Title)
	}
	return fmt.Sprintf("row %d: %v", e.Row, e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// IsMalformedCount reports whether err is a ParseError caused by bad count text.
func IsMalformedCount(err error) bool {
	var perr *ParseError
	if errors.As(err, &perr) {
		return perr.Kind == KindMalformedCount
	}
	return errors.Is(err, ErrMalformedCount)
}

// IsEmptyTitle reports whether err is a ParseError caused by a missing title.
func IsEmptyTitle(err error) bool {
	var perr *ParseError
	if errors.As(err, &perr) {
		return perr.Kind == KindEmptyTitle
	}
	return errors.Is(err, ErrEmptyTitle)
}
