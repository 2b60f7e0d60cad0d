package ingest

import (
	"strings"
	"time"
)

// Record is one raw row from the schedule CSV, untrimmed.
type Record struct {
	Title    string
	Director string
	Country  string
	Year     string
	Date     string
	Host     string
}

// requiredFields maps the validated fields to their CSV column names.
var requiredFields = []struct {
	name  string
	value func(*Record) string
}{
	{"title", func(r *Record) string { return r.Title }},
	{"director", func(r *Record) string { return r.Director }},
	{"country of origin", func(r *Record) string { return r.Country }},
	{"year", func(r *Record) string { return r.Year }},
	{"screen date", func(r *Record) string { return r.Date }},
}

// Validate checks presence of the required fields and the screen date
// format. Pure check; the year is coerced later, and the host is optional.
func (r *Record) Validate() error {
	for _, f := range requiredFields {
		if strings.TrimSpace(f.value(r)) == "" {
			return &MissingFieldError{Field: f.name}
		}
	}
	if !validDate(strings.TrimSpace(r.Date)) {
		return &InvalidDateError{Value: strings.TrimSpace(r.Date)}
	}
	return nil
}

// validDate reports whether s is a real calendar date in strict
// YYYY-MM-DD form. time.Parse alone accepts unpadded months and days, so
// the round trip back to the layout catches those.
func validDate(s string) bool {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		return false
	}
	return t.Format("2006-01-02") == s
}
