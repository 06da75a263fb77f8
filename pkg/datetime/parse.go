// Package datetime provides date of birth parsing and age estimation.
package datetime

import (
	"errors"
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/iwvelando/income-eligibility/pkg/constants"
)

const (
	// DateLayout is the format expected for dates of birth.
	DateLayout = constants.DateLayout
)

// ErrUnparsableDate is returned when a date of birth cannot be parsed.
var ErrUnparsableDate = errors.New("unparsable date")

// MustParseTime parses a date string using the given layout and panics on error.
// This is intended for use in tests where the date string is known to be valid.
func MustParseTime(layout, dateStr string) time.Time {
	t, err := time.Parse(layout, dateStr)
	if err != nil {
		panic(err)
	}
	return t
}

// ParseDOB parses a date of birth in DateLayout.
func ParseDOB(dob string) (time.Time, error) {
	trimmed := strings.TrimSpace(dob)
	t, err := time.Parse(DateLayout, trimmed)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %q: %v", ErrUnparsableDate, dob, err)
	}
	return t, nil
}

// AgeFromDOB approximates the age in whole years at now from a date of birth,
// dividing the elapsed days by the mean Gregorian year and truncating.
// It reports false when the date cannot be parsed or the age falls outside
// (MinAge, MaxAge); an implausible age is unknown, not an error.
func AgeFromDOB(dob string, now time.Time) (int, bool) {
	born, err := ParseDOB(dob)
	if err != nil {
		return 0, false
	}
	return AgeAt(born, now)
}

// AgeAt is AgeFromDOB for an already parsed date of birth.
func AgeAt(born, now time.Time) (int, bool) {
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	born = time.Date(born.Year(), born.Month(), born.Day(), 0, 0, 0, 0, time.UTC)

	days := math.Floor(today.Sub(born).Hours() / 24)
	age := int(days / constants.DaysPerYear)
	if !PlausibleAge(age) {
		return 0, false
	}
	return age, true
}

// BirthYearFromAge estimates a birth year from an age in years.
func BirthYearFromAge(age int, now time.Time) (int, bool) {
	if !PlausibleAge(age) {
		return 0, false
	}
	return now.Year() - age, true
}

// PlausibleAge reports whether age lies strictly between MinAge and MaxAge.
func PlausibleAge(age int) bool {
	return age > constants.MinAge && age < constants.MaxAge
}
