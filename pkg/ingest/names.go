// CLAUDE:SUMMARY Name-parsing heuristics: 2-3 word director names, semicolon-separated director lists, first/rest host names.
package ingest

import "strings"

// Name is a structured person name. Middle is empty for two-word names.
type Name struct {
	First  string
	Middle string
	Last   string
}

// ParseDirectorName splits a director's full name on whitespace.
// Two words give (first, "", last), three give (first, middle, last).
// One word or four and more cannot be resolved automatically and fail
// with an UnparseableNameError.
func ParseDirectorName(fullName string) (Name, error) {
	parts := strings.Fields(fullName)
	switch len(parts) {
	case 2:
		return Name{First: parts[0], Last: parts[1]}, nil
	case 3:
		return Name{First: parts[0], Middle: parts[1], Last: parts[2]}, nil
	default:
		return Name{}, &UnparseableNameError{Name: fullName}
	}
}

// SplitDirectors splits the director field on semicolons and trims each
// segment. Order is preserved; it becomes the credit ordinal.
func SplitDirectors(field string) []string {
	segments := strings.Split(field, ";")
	for i := range segments {
		segments[i] = strings.TrimSpace(segments[i])
	}
	return segments
}

// ParseDirectors parses every name in the director field, in order.
// A single unparseable name fails the whole list: the caller treats the
// record as all-or-nothing across its directors.
func ParseDirectors(field string) ([]Name, error) {
	segments := SplitDirectors(field)
	names := make([]Name, 0, len(segments))
	for _, segment := range segments {
		n, err := ParseDirectorName(segment)
		if err != nil {
			return nil, err
		}
		names = append(names, n)
	}
	return names, nil
}

// HostName is the parsed (first, last) identity of a session host.
type HostName struct {
	First string
	Last  string
}

// ParseHostName parses the optional host field: the first token is the
// first name, the remainder joined is the last name. A blank field means
// no host and returns nil, which is not an error.
func ParseHostName(field string) *HostName {
	parts := strings.Fields(field)
	switch len(parts) {
	case 0:
		return nil
	case 1:
		return &HostName{First: parts[0]}
	default:
		return &HostName{First: parts[0], Last: strings.Join(parts[1:], " ")}
	}
}
