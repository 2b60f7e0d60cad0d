package ingest

import "fmt"

// MissingFieldError marks a record lacking one of the required fields.
type MissingFieldError struct {
	Field string
}

func (e *MissingFieldError) Error() string {
	return fmt.Sprintf("missing required field %q", e.Field)
}

// InvalidDateError marks a screen date that is not a valid ISO calendar date.
type InvalidDateError struct {
	Value string
}

func (e *InvalidDateError) Error() string {
	return fmt.Sprintf("invalid date %q (want YYYY-MM-DD)", e.Value)
}

// UnparseableNameError marks a director name outside the 2-3 word heuristic.
// The record carrying it must be skipped whole; the name needs manual
// resolution.
type UnparseableNameError struct {
	Name string
}

func (e *UnparseableNameError) Error() string {
	return fmt.Sprintf("cannot parse director name %q", e.Name)
}
