package core

import (
	"testing"
	"time"
)

func TestParseFoundingDate(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  time.Time
		ok    bool
	}{
		{
			name:  "full ISO date",
			input: "1976-04-01",
			want:  time.Date(1976, 4, 1, 0, 0, 0, 0, time.UTC),
			ok:    true,
		},
		{
			name:  "year and month default to the 1st",
			input: "1976-04",
			want:  time.Date(1976, 4, 1, 0, 0, 0, 0, time.UTC),
			ok:    true,
		},
		{
			name:  "year only defaults to January 1st",
			input: "1976",
			want:  time.Date(1976, 1, 1, 0, 0, 0, 0, time.UTC),
			ok:    true,
		},
		{
			name:  "textual month and year",
			input: "April 1976",
			want:  time.Date(1976, 4, 1, 0, 0, 0, 0, time.UTC),
			ok:    true,
		},
		{
			name:  "textual full date",
			input: "April 1, 1976",
			want:  time.Date(1976, 4, 1, 0, 0, 0, 0, time.UTC),
			ok:    true,
		},
		{
			name:  "surrounding whitespace",
			input: "  1976-04-01  ",
			want:  time.Date(1976, 4, 1, 0, 0, 0, 0, time.UTC),
			ok:    true,
		},
		{
			name:  "empty input",
			input: "",
			ok:    false,
		},
		{
			name:  "literal null",
			input: "null",
			ok:    false,
		},
		{
			name:  "garbage collapses to absent",
			input: "@@@@",
			ok:    false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := ParseFoundingDate(tt.input)
			if ok != tt.ok {
				t.Fatalf("ParseFoundingDate(%q) ok = %v, want %v", tt.input, ok, tt.ok)
			}
			if tt.ok && !got.Equal(tt.want) {
				t.Errorf("ParseFoundingDate(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestParseFoundingDate_NeverErrors(t *testing.T) {
	// Any input must resolve to a date or to absent, never panic.
	inputs := []string{"circa the dawn of time", "++--", "9999999999", "\x00"}
	for _, input := range inputs {
		_, _ = ParseFoundingDate(input)
	}
}
