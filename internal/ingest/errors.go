package ingest

import (
	"fmt"
	"strings"
)

// Validation errors are fatal for the whole upload: the user fixes the
// file and uploads again, there is no per-row skipping.

type MissingColumnsError struct {
	Columns []string
}

func (e *MissingColumnsError) Error() string {
	return "missing required columns: " + strings.Join(e.Columns, ", ")
}

type DateParseError struct {
	Row   int
	Value string
}

func (e *DateParseError) Error() string {
	return fmt.Sprintf("row %d: cannot parse startOfOrder value %q, dates must be in format MM/DD/YYYY HH:MM", e.Row, e.Value)
}

type NumericCoercionError struct {
	Column string
	Row    int
	Value  string
}

func (e *NumericCoercionError) Error() string {
	return fmt.Sprintf("invalid numeric value %q in column %s (row %d)", e.Value, e.Column, e.Row)
}

type EmptyFieldError struct {
	Column string
	Row    int
}

func (e *EmptyFieldError) Error() string {
	return fmt.Sprintf("empty value in column %s (row %d)", e.Column, e.Row)
}
