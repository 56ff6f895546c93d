package utils

import (
	"fmt"
	"time"
)

// DateLayout is the YYYY-MM-DD format accepted by list filters
const DateLayout = "2006-01-02"

// ParseDate parses a YYYY-MM-DD value
func ParseDate(s string) (time.Time, error) {
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q, use YYYY-MM-DD", s)
	}
	return t, nil
}

func parseDateIn(s string, loc *time.Location) (time.Time, error) {
	t, err := time.ParseInLocation(DateLayout, s, loc)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q, use YYYY-MM-DD", s)
	}
	return t, nil
}

// EndOfDay returns the last instant of t's calendar day
func EndOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 23, 59, 59, 999999999, t.Location())
}

// ParseRange parses optional from/to filters as UTC days. "to" is inclusive.
func ParseRange(from, to string) (*time.Time, *time.Time, error) {
	return ParseRangeIn(from, to, time.UTC)
}

// ParseRangeIn parses optional from/to filters as calendar days in loc.
// from starts at local midnight and "to" runs to the end of its local day.
func ParseRangeIn(from, to string, loc *time.Location) (*time.Time, *time.Time, error) {
	if loc == nil {
		loc = time.UTC
	}
	var f, t *time.Time
	if from != "" {
		parsed, err := parseDateIn(from, loc)
		if err != nil {
			return nil, nil, err
		}
		f = &parsed
	}
	if to != "" {
		parsed, err := parseDateIn(to, loc)
		if err != nil {
			return nil, nil, err
		}
		end := EndOfDay(parsed)
		t = &end
	}
	if f != nil && t != nil && t.Before(*f) {
		return nil, nil, fmt.Errorf("to must not be before from")
	}
	return f, t, nil
}
