package datetime

import (
	"errors"
	"testing"
	"time"
)

var evaluationDate = time.Date(2025, time.June, 15, 14, 30, 0, 0, time.UTC)

func TestMustParseTime(t *testing.T) {
	tests := []struct {
		name     string
		layout   string
		dateStr  string
		expected string
	}{
		{
			name:     "Valid date",
			layout:   DateLayout,
			dateStr:  "1990-06-15",
			expected: "1990-06-15",
		},
		{
			name:     "Leap day",
			layout:   DateLayout,
			dateStr:  "2000-02-29",
			expected: "2000-02-29",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := MustParseTime(tt.layout, tt.dateStr)
			if result.Format(tt.layout) != tt.expected {
				t.Errorf("MustParseTime() = %s, expected %s", result.Format(tt.layout), tt.expected)
			}
		})
	}
}

func TestMustParseTimePanic(t *testing.T) {
	defer func() {
		if r := recover(); r == nil {
			t.Errorf("Expected MustParseTime to panic with invalid date")
		}
	}()

	MustParseTime(DateLayout, "invalid-date")
}

func TestParseDOB(t *testing.T) {
	tests := []struct {
		name    string
		dob     string
		wantErr bool
	}{
		{"ISO date", "1990-06-15", false},
		{"Surrounding whitespace", "  1990-06-15 ", false},
		{"US format", "06/15/1990", true},
		{"Empty", "", true},
		{"Impossible day", "1990-02-30", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseDOB(tt.dob)
			if tt.wantErr {
				if !errors.Is(err, ErrUnparsableDate) {
					t.Errorf("ParseDOB(%q) error = %v, expected ErrUnparsableDate", tt.dob, err)
				}
				return
			}
			if err != nil {
				t.Errorf("ParseDOB(%q) unexpected error: %v", tt.dob, err)
			}
		})
	}
}

func TestAgeFromDOB(t *testing.T) {
	tests := []struct {
		name    string
		dob     string
		wantAge int
		wantOK  bool
	}{
		{"Exact birthday", "1990-06-15", 35, true},
		{"Day before birthday truncates", "1990-06-16", 34, true},
		{"Just over one year", "2024-06-14", 1, true},
		{"Oldest plausible", "1906-06-01", 119, true},
		{"Under one year is unknown", "2024-12-01", 0, false},
		{"Over 120 years is unknown", "1905-06-01", 0, false},
		{"Future date is unknown", "2030-01-01", 0, false},
		{"Unparsable is unknown", "not a date", 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			age, ok := AgeFromDOB(tt.dob, evaluationDate)
			if ok != tt.wantOK {
				t.Fatalf("AgeFromDOB(%q) ok = %v, expected %v", tt.dob, ok, tt.wantOK)
			}
			if age != tt.wantAge {
				t.Errorf("AgeFromDOB(%q) = %d, expected %d", tt.dob, age, tt.wantAge)
			}
		})
	}
}

func TestBirthYearFromAge(t *testing.T) {
	tests := []struct {
		name     string
		age      int
		wantYear int
		wantOK   bool
	}{
		{"Adult", 35, 1990, true},
		{"Child", 4, 2021, true},
		{"Zero", 0, 0, false},
		{"Negative", -3, 0, false},
		{"Too old", 120, 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			year, ok := BirthYearFromAge(tt.age, evaluationDate)
			if ok != tt.wantOK || year != tt.wantYear {
				t.Errorf("BirthYearFromAge(%d) = (%d, %v), expected (%d, %v)", tt.age, year, ok, tt.wantYear, tt.wantOK)
			}
		})
	}
}
