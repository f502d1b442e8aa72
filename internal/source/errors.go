package source

import (
	"errors"
	"fmt"
)

// ErrUnsupportedFormat indicates the input format cannot be read.
var ErrUnsupportedFormat = errors.New("unsupported input format")

// ErrNoTable indicates the input holds no table (empty sheet, no <table>, no rows).
var ErrNoTable = errors.New("no table found")

// ParseError represents an error while decoding one row of an input.
type ParseError struct {
	Source string
	Row    int // 1-based; 0 when the error is not tied to a row
	Err    error
}

func (e *ParseError) Error() string {
	if e.Row > 0 {
		return fmt.Sprintf("parse error in %s at row %d: %v", e.Source, e.Row, e.Err)
	}
	return fmt.Sprintf("parse error in %s: %v", e.Source, e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// NewParseError creates a new ParseError.
func NewParseError(source string, row int, err error) *ParseError {
	return &ParseError{
		Source: source,
		Row:    row,
		Err:    err,
	}
}
