package ingest

import (
	"errors"
	"testing"
)

func TestParseDirectorName(t *testing.T) {
	tests := []struct {
		input string
		want  Name
	}{
		{"Mathieu Kassovitz", Name{First: "Mathieu", Last: "Kassovitz"}},
		{"Paul Thomas Anderson", Name{First: "Paul", Middle: "Thomas", Last: "Anderson"}},
		{"  Agnès   Varda  ", Name{First: "Agnès", Last: "Varda"}},
	}
	for _, tt := range tests {
		got, err := ParseDirectorName(tt.input)
		if err != nil {
			t.Errorf("ParseDirectorName(%q): %v", tt.input, err)
			continue
		}
		if got != tt.want {
			t.Errorf("ParseDirectorName(%q) = %+v, want %+v", tt.input, got, tt.want)
		}
	}
}

func TestParseDirectorName_Unparseable(t *testing.T) {
	for _, input := range []string{
		"Kurosawa",
		"Joel Coen Ethan Coen",
		"A B C D E",
		"",
		"   ",
	} {
		_, err := ParseDirectorName(input)
		if err == nil {
			t.Errorf("ParseDirectorName(%q): expected error", input)
			continue
		}
		var unparseable *UnparseableNameError
		if !errors.As(err, &unparseable) {
			t.Errorf("ParseDirectorName(%q): error %v is not UnparseableNameError", input, err)
		}
	}
}

func TestSplitDirectors(t *testing.T) {
	got := SplitDirectors(" Joel Coen ; Ethan Coen ")
	if len(got) != 2 || got[0] != "Joel Coen" || got[1] != "Ethan Coen" {
		t.Errorf("SplitDirectors = %v", got)
	}

	got = SplitDirectors("Mathieu Kassovitz")
	if len(got) != 1 || got[0] != "Mathieu Kassovitz" {
		t.Errorf("SplitDirectors single = %v", got)
	}
}

func TestParseDirectors_PreservesOrder(t *testing.T) {
	names, err := ParseDirectors("Joel Coen; Ethan Coen; Paul Thomas Anderson")
	if err != nil {
		t.Fatalf("ParseDirectors: %v", err)
	}
	if len(names) != 3 {
		t.Fatalf("len = %d, want 3", len(names))
	}
	if names[0].First != "Joel" || names[1].First != "Ethan" || names[2].First != "Paul" {
		t.Errorf("order not preserved: %+v", names)
	}
}

func TestParseDirectors_OneBadNameFailsAll(t *testing.T) {
	names, err := ParseDirectors("John Smith; X")
	if err == nil {
		t.Fatal("expected error for unparseable second name")
	}
	if names != nil {
		t.Errorf("expected nil names on failure, got %v", names)
	}
	var unparseable *UnparseableNameError
	if !errors.As(err, &unparseable) {
		t.Errorf("error %v is not UnparseableNameError", err)
	}
	if unparseable.Name != "X" {
		t.Errorf("failed name = %q, want X", unparseable.Name)
	}
}

func TestParseHostName(t *testing.T) {
	tests := []struct {
		input string
		want  *HostName
	}{
		{"", nil},
		{"   ", nil},
		{"Jane", &HostName{First: "Jane"}},
		{"Jane Doe", &HostName{First: "Jane", Last: "Doe"}},
		{"Jean Claude Van Damme", &HostName{First: "Jean", Last: "Claude Van Damme"}},
	}
	for _, tt := range tests {
		got := ParseHostName(tt.input)
		if tt.want == nil {
			if got != nil {
				t.Errorf("ParseHostName(%q) = %+v, want nil", tt.input, got)
			}
			continue
		}
		if got == nil || *got != *tt.want {
			t.Errorf("ParseHostName(%q) = %+v, want %+v", tt.input, got, tt.want)
		}
	}
}
