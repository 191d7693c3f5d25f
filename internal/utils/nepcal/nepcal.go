// Package nepcal converts between Bikram Sambat (BS) and Gregorian (AD)
// dates. All downstream date comparisons in the application operate on the
// canonical Gregorian timeline produced here; BS strings only exist at the
// API boundary.
package nepcal

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// System tags which calendar a date string is expressed in.
type System int

const (
	// SystemUnknown lets the parser fall back to the year-magnitude
	// heuristic: a leading year above DetectionThreshold is treated as BS.
	SystemUnknown System = iota
	SystemGregorian
	SystemBikramSambat
)

// DetectionThreshold is the largest leading year still treated as Gregorian
// when the calendar system is not tagged explicitly. BS years run roughly 56-57
// years ahead of AD, so real-world inputs never straddle the boundary.
const DetectionThreshold = 2050

// bsEpochYear maps to bsEpoch: 1 Baishakh 2000 BS fell on 14 April 1943 AD.
const bsEpochYear = 2000

var bsEpoch = time.Date(1943, time.April, 14, 0, 0, 0, 0, time.UTC)

// unixEpoch is the known-bad sentinel some upstream tools emit when a
// conversion silently failed; IsValidCanonical treats it as invalid.
var unixEpoch = time.Date(1970, time.January, 1, 0, 0, 0, 0, time.UTC)

// bsMonthDays lists the day count of each of the 12 BS months per year.
// BS month lengths do not follow a closed-form leap rule; the official
// calendar is table-driven.
var bsMonthDays = map[int][12]int{
	2000: {30, 32, 31, 32, 31, 30, 30, 30, 29, 30, 29, 31},
	2001: {31, 31, 32, 31, 31, 31, 30, 29, 30, 29, 30, 30},
	2002: {31, 31, 32, 32, 31, 30, 30, 29, 30, 29, 30, 30},
	2003: {31, 32, 31, 32, 31, 30, 30, 30, 29, 29, 30, 31},
	2004: {30, 32, 31, 32, 31, 30, 30, 30, 29, 30, 29, 31},
	2005: {31, 31, 32, 31, 31, 31, 30, 29, 30, 29, 30, 30},
	2006: {31, 31, 32, 32, 31, 30, 30, 29, 30, 29, 30, 30},
	2007: {31, 32, 31, 32, 31, 30, 30, 30, 29, 29, 30, 31},
	2008: {31, 31, 31, 32, 31, 31, 29, 30, 30, 29, 29, 31},
	2009: {31, 31, 32, 31, 31, 31, 30, 29, 30, 29, 30, 30},
	2010: {31, 31, 32, 32, 31, 30, 30, 29, 30, 29, 30, 30},
	2011: {31, 32, 31, 32, 31, 30, 30, 30, 29, 29, 30, 31},
	2012: {31, 31, 31, 32, 31, 31, 29, 30, 30, 29, 30, 30},
	2013: {31, 31, 32, 31, 31, 31, 30, 29, 30, 29, 30, 30},
	2014: {31, 31, 32, 32, 31, 30, 30, 29, 30, 29, 30, 30},
	2015: {31, 32, 31, 32, 31, 30, 30, 30, 29, 29, 30, 31},
	2016: {31, 31, 31, 32, 31, 31, 29, 30, 30, 29, 30, 30},
	2017: {31, 31, 32, 31, 31, 31, 30, 29, 30, 29, 30, 30},
	2018: {31, 32, 31, 32, 31, 30, 30, 29, 30, 29, 30, 30},
	2019: {31, 32, 31, 32, 31, 30, 30, 30, 29, 30, 29, 31},
	2020: {31, 31, 31, 32, 31, 31, 30, 29, 30, 29, 30, 30},
	2021: {31, 31, 32, 31, 31, 31, 30, 29, 30, 29, 30, 30},
	2022: {31, 32, 31, 32, 31, 30, 30, 30, 29, 29, 30, 30},
	2023: {31, 32, 31, 32, 31, 30, 30, 30, 29, 30, 29, 31},
	2024: {31, 31, 31, 32, 31, 31, 30, 29, 30, 29, 30, 30},
	2025: {31, 31, 32, 31, 31, 31, 30, 29, 30, 29, 30, 30},
	2026: {31, 32, 31, 32, 31, 30, 30, 30, 29, 29, 30, 31},
	2027: {30, 32, 31, 32, 31, 30, 30, 30, 29, 30, 29, 31},
	2028: {31, 31, 32, 31, 31, 31, 30, 29, 30, 29, 30, 30},
	2029: {31, 31, 32, 31, 32, 30, 30, 29, 30, 29, 30, 30},
	2030: {31, 32, 31, 32, 31, 30, 30, 30, 29, 29, 30, 31},
	2031: {30, 32, 31, 32, 31, 30, 30, 30, 29, 30, 29, 31},
	2032: {31, 31, 32, 31, 31, 31, 30, 29, 30, 29, 30, 30},
	2033: {31, 31, 32, 32, 31, 30, 30, 29, 30, 29, 30, 30},
	2034: {31, 32, 31, 32, 31, 30, 30, 30, 29, 29, 30, 31},
	2035: {30, 32, 31, 32, 31, 31, 29, 30, 30, 29, 29, 31},
	2036: {31, 31, 32, 31, 31, 31, 30, 29, 30, 29, 30, 30},
	2037: {31, 31, 32, 32, 31, 30, 30, 29, 30, 29, 30, 30},
	2038: {31, 32, 31, 32, 31, 30, 30, 30, 29, 29, 30, 31},
	2039: {31, 31, 31, 32, 31, 31, 29, 30, 30, 29, 30, 30},
	2040: {31, 31, 32, 31, 31, 31, 30, 29, 30, 29, 30, 30},
	2041: {31, 31, 32, 32, 31, 30, 30, 29, 30, 29, 30, 30},
	2042: {31, 32, 31, 32, 31, 30, 30, 30, 29, 29, 30, 31},
	2043: {31, 31, 31, 32, 31, 31, 29, 30, 30, 29, 30, 30},
	2044: {31, 31, 32, 31, 31, 31, 30, 29, 30, 29, 30, 30},
	2045: {31, 32, 31, 32, 31, 30, 30, 29, 30, 29, 30, 30},
	2046: {31, 32, 31, 32, 31, 30, 30, 30, 29, 29, 30, 31},
	2047: {31, 31, 31, 32, 31, 31, 30, 29, 30, 29, 30, 30},
	2048: {31, 31, 32, 31, 31, 31, 30, 29, 30, 29, 30, 30},
	2049: {31, 32, 31, 32, 31, 30, 30, 30, 29, 29, 30, 30},
	2050: {31, 32, 31, 32, 31, 30, 30, 30, 29, 30, 29, 31},
	2051: {31, 31, 31, 32, 31, 31, 30, 29, 30, 29, 30, 30},
	2052: {31, 31, 32, 31, 31, 31, 30, 29, 30, 29, 30, 30},
	2053: {31, 32, 31, 32, 31, 30, 30, 30, 29, 29, 30, 30},
	2054: {31, 32, 31, 32, 31, 30, 30, 30, 29, 30, 29, 31},
	2055: {31, 31, 32, 31, 31, 31, 30, 29, 30, 29, 30, 30},
	2056: {31, 31, 32, 31, 32, 30, 30, 29, 30, 29, 30, 30},
	2057: {31, 32, 31, 32, 31, 30, 30, 30, 29, 29, 30, 31},
	2058: {30, 32, 31, 32, 31, 30, 30, 30, 29, 30, 29, 31},
	2059: {31, 31, 32, 31, 31, 31, 30, 29, 30, 29, 30, 30},
	2060: {31, 31, 32, 32, 31, 30, 30, 29, 30, 29, 30, 30},
	2061: {31, 32, 31, 32, 31, 30, 30, 30, 29, 29, 30, 31},
	2062: {30, 32, 31, 32, 31, 31, 29, 30, 29, 30, 29, 31},
	2063: {31, 31, 32, 31, 31, 31, 30, 29, 30, 29, 30, 30},
	2064: {31, 31, 32, 32, 31, 30, 30, 29, 30, 29, 30, 30},
	2065: {31, 32, 31, 32, 31, 30, 30, 30, 29, 29, 30, 31},
	2066: {31, 31, 31, 32, 31, 31, 29, 30, 30, 29, 29, 31},
	2067: {31, 31, 32, 31, 31, 31, 30, 29, 30, 29, 30, 30},
	2068: {31, 31, 32, 32, 31, 30, 30, 29, 30, 29, 30, 30},
	2069: {31, 32, 31, 32, 31, 30, 30, 30, 29, 29, 30, 31},
	2070: {31, 31, 31, 32, 31, 31, 29, 30, 30, 29, 30, 30},
	2071: {31, 31, 32, 31, 31, 31, 30, 29, 30, 29, 30, 30},
	2072: {31, 32, 31, 32, 31, 30, 30, 29, 30, 29, 30, 30},
	2073: {31, 32, 31, 32, 31, 30, 30, 30, 29, 29, 30, 31},
	2074: {31, 31, 31, 32, 31, 31, 30, 29, 30, 29, 30, 30},
	2075: {31, 31, 32, 31, 31, 31, 30, 29, 30, 29, 30, 30},
	2076: {31, 32, 31, 32, 31, 30, 30, 30, 29, 29, 30, 30},
	2077: {31, 32, 31, 32, 31, 30, 30, 30, 29, 30, 29, 31},
	2078: {31, 31, 31, 32, 31, 31, 30, 29, 30, 29, 30, 30},
	2079: {31, 31, 32, 31, 31, 31, 30, 29, 30, 29, 30, 30},
	2080: {31, 32, 31, 32, 31, 30, 30, 30, 29, 29, 30, 30},
	2081: {31, 31, 32, 32, 31, 30, 30, 30, 29, 30, 30, 30},
	2082: {30, 32, 31, 32, 31, 30, 30, 30, 29, 30, 30, 30},
	2083: {31, 31, 32, 31, 31, 30, 30, 30, 29, 30, 30, 30},
	2084: {31, 31, 32, 31, 31, 30, 30, 30, 29, 30, 30, 30},
	2085: {31, 32, 31, 32, 30, 31, 30, 30, 29, 30, 30, 30},
	2086: {30, 32, 31, 32, 31, 30, 30, 30, 29, 30, 30, 30},
	2087: {31, 31, 32, 31, 31, 31, 30, 30, 29, 30, 30, 30},
	2088: {30, 31, 32, 32, 30, 31, 30, 30, 29, 30, 30, 30},
	2089: {30, 32, 31, 32, 31, 30, 30, 30, 29, 30, 30, 30},
	2090: {30, 32, 31, 32, 31, 30, 30, 30, 29, 30, 30, 30},
}

const bsMaxYear = 2090

// ParseError reports a date string that could not be interpreted in the
// requested (or detected) calendar system.
type ParseError struct {
	Value  string
	System System
	Reason string
}

func (e *ParseError) Error() string {
	sys := "date"
	switch e.System {
	case SystemGregorian:
		sys = "gregorian date"
	case SystemBikramSambat:
		sys = "bikram sambat date"
	}
	return fmt.Sprintf("invalid %s %q: %s", sys, e.Value, e.Reason)
}

// IsBikramSambatString reports whether a YYYY-MM-DD string should be read as
// a BS date under the magnitude heuristic. The threshold year itself is
// still Gregorian.
func IsBikramSambatString(s string) bool {
	year, _, _, err := splitDateString(s)
	if err != nil {
		return false
	}
	return year > DetectionThreshold
}

// ToCanonical parses a YYYY-MM-DD string in either calendar system and
// returns the canonical Gregorian date at UTC midnight. The calendar is
// detected heuristically; use Parse when the caller knows the system.
func ToCanonical(s string) (time.Time, error) {
	return Parse(s, SystemUnknown)
}

// Parse converts a YYYY-MM-DD string in the given calendar system to the
// canonical timeline. SystemUnknown applies the magnitude heuristic.
// Conversion failures are returned to the caller; there is deliberately no
// fallback value.
func Parse(s string, sys System) (time.Time, error) {
	year, month, day, err := splitDateString(s)
	if err != nil {
		return time.Time{}, &ParseError{Value: s, System: sys, Reason: err.Error()}
	}

	if sys == SystemUnknown {
		if year > DetectionThreshold {
			sys = SystemBikramSambat
		} else {
			sys = SystemGregorian
		}
	}

	switch sys {
	case SystemBikramSambat:
		t, err := FromBS(year, month, day)
		if err != nil {
			return time.Time{}, &ParseError{Value: s, System: sys, Reason: err.Error()}
		}
		return t, nil
	default:
		t := time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)
		// time.Date normalizes out-of-range components; reject those.
		if t.Year() != year || t.Month() != time.Month(month) || t.Day() != day {
			return time.Time{}, &ParseError{Value: s, System: SystemGregorian, Reason: "no such calendar day"}
		}
		return t, nil
	}
}

// FromBS converts a Bikram Sambat date to the canonical timeline.
func FromBS(year, month, day int) (time.Time, error) {
	if year < bsEpochYear || year > bsMaxYear {
		return time.Time{}, fmt.Errorf("BS year %d outside supported range %d-%d", year, bsEpochYear, bsMaxYear)
	}
	if month < 1 || month > 12 {
		return time.Time{}, fmt.Errorf("BS month %d out of range", month)
	}
	monthLen := bsMonthDays[year][month-1]
	if day < 1 || day > monthLen {
		return time.Time{}, fmt.Errorf("BS day %d out of range for %04d-%02d (has %d days)", day, year, month, monthLen)
	}

	days := 0
	for y := bsEpochYear; y < year; y++ {
		for _, n := range bsMonthDays[y] {
			days += n
		}
	}
	for m := 0; m < month-1; m++ {
		days += bsMonthDays[year][m]
	}
	days += day - 1

	return bsEpoch.AddDate(0, 0, days), nil
}

// ToBS converts a canonical date to its Bikram Sambat components.
func ToBS(t time.Time) (year, month, day int, err error) {
	t = atMidnightUTC(t)
	if t.Before(bsEpoch) {
		return 0, 0, 0, fmt.Errorf("date %s precedes BS epoch %s", t.Format("2006-01-02"), bsEpoch.Format("2006-01-02"))
	}

	days := int(t.Sub(bsEpoch).Hours() / 24)
	year = bsEpochYear
	for {
		yearLen := 0
		lengths, ok := bsMonthDays[year]
		if !ok {
			return 0, 0, 0, fmt.Errorf("date %s beyond supported BS year %d", t.Format("2006-01-02"), bsMaxYear)
		}
		for _, n := range lengths {
			yearLen += n
		}
		if days < yearLen {
			break
		}
		days -= yearLen
		year++
	}

	month = 1
	for days >= bsMonthDays[year][month-1] {
		days -= bsMonthDays[year][month-1]
		month++
	}
	return year, month, days + 1, nil
}

// ToBSString renders a canonical date as a zero-padded BS YYYY-MM-DD string.
func ToBSString(t time.Time) (string, error) {
	y, m, d, err := ToBS(t)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%04d-%02d-%02d", y, m, d), nil
}

// IsValidCanonical reports whether a canonical date is usable for
// comparisons. The zero time and the Unix epoch both signal a failed
// upstream conversion rather than a real production date.
func IsValidCanonical(t time.Time) bool {
	if t.IsZero() {
		return false
	}
	return !atMidnightUTC(t).Equal(unixEpoch)
}

func atMidnightUTC(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func splitDateString(s string) (year, month, day int, err error) {
	parts := strings.Split(strings.TrimSpace(s), "-")
	if len(parts) != 3 {
		return 0, 0, 0, fmt.Errorf("expected YYYY-MM-DD")
	}
	year, err = strconv.Atoi(parts[0])
	if err != nil {
		return 0, 0, 0, fmt.Errorf("bad year component %q", parts[0])
	}
	month, err = strconv.Atoi(parts[1])
	if err != nil {
		return 0, 0, 0, fmt.Errorf("bad month component %q", parts[1])
	}
	day, err = strconv.Atoi(parts[2])
	if err != nil {
		return 0, 0, 0, fmt.Errorf("bad day component %q", parts[2])
	}
	return year, month, day, nil
}
