// ============================================================================
// kairos - Market Calendar Timestamps
// ============================================================================
//
// Package:     datetime
// Description: Construction from compact integers and strings
// Author:      Mike Stoffels
// Created:     2026-10-18
// License:     MIT
// ============================================================================

package datetime

import (
	"strings"
)

// NullString is the text form of the Null value.
const NullString = "+infinity"

// FromNumber decodes a compact integer:
//
//	NullNumber        Null
//	<= 99999999       YYYYMMDD, midnight
//	<= 999999999999   YYYYMMDDHHMM
//
// Larger values and an hour >= 24 or minute >= 60 in the long form fail
// with ErrRange; an invalid date fails with ErrDate.
func FromNumber(n uint64) (Datetime, error) {
	switch {
	case n == NullNumber:
		return Datetime{}, nil

	case n <= 99_999_999:
		y, m, d := int(n/10_000), int(n/100%100), int(n%100)
		return build("FromNumber", y, m, d, 0, 0, 0, 0, 0)

	case n <= 999_999_999_999:
		y := int(n / 100_000_000)
		m := int(n / 1_000_000 % 100)
		d := int(n / 10_000 % 100)
		hh, mm := int(n/100%100), int(n%100)
		if hh >= 24 {
			return Datetime{}, rangeError("FromNumber", "hour value is out of range 0..23 (got %d in %d)", hh, n)
		}
		if mm >= 60 {
			return Datetime{}, rangeError("FromNumber", "minute value is out of range 0..59 (got %d in %d)", mm, n)
		}
		return build("FromNumber", y, m, d, hh, mm, 0, 0, 0)
	}
	return Datetime{}, rangeError("FromNumber", "unsupported format: only YYYYMMDDhhmm or YYYYMMDD, got %d", n)
}

// Parse reads a Datetime from text. Surrounding whitespace is ignored.
//
//	+infinity                       Null
//	YYYY-MM-DD, YYYY/MM/DD          midnight (at most 10 characters)
//	YYYYMMDD                        midnight
//	YYYYMMDDTHHMMSS[.ffffff]        longer input containing T
//	YYYY-MM-DDTHH:MM:SS[.ffffff]
//	YYYY-MM-DD HH:MM[:SS[.ffffff]]  longer input without T
//
// Month and day of delimited dates may have one or two digits, and the
// month may be an English three letter abbreviation. Letters are case
// insensitive. Malformed input fails with ErrDate.
func Parse(s string) (Datetime, error) {
	str := strings.TrimSpace(s)
	if str == NullString {
		return Datetime{}, nil
	}

	if len(str) <= 10 {
		var (
			f  fields
			ok bool
		)
		if strings.ContainsAny(str, "-/") {
			f, ok = parseDelimitedDate(str)
		} else {
			f, ok = parseCompactDate(str)
		}
		if !ok {
			return Datetime{}, malformed(s)
		}
		return f.build()
	}

	str = strings.ToUpper(str)
	if i := isoSeparator(str); i >= 0 {
		return parseDateTime(s, str[:i], str[i+1:], true)
	}
	date, clock, found := strings.Cut(str, " ")
	if !found {
		// Long delimited dates such as 2023-JAN-15
		f, ok := parseDelimitedDate(str)
		if !ok {
			return Datetime{}, malformed(s)
		}
		return f.build()
	}
	return parseDateTime(s, date, strings.TrimLeft(clock, " "), false)
}

// MustParse is like Parse but panics on error.
func MustParse(s string) Datetime {
	return Must(Parse(s))
}

type fields struct {
	year, month, day     int
	hour, minute, second int
	micro                int
}

func (f fields) build() (Datetime, error) {
	return build("Parse", f.year, f.month, f.day, f.hour, f.minute, f.second, f.micro/1000, f.micro%1000)
}

func malformed(s string) error {
	return dateError("Parse", "unrecognized datetime format: %q", s).WithDetail("input", s)
}

func parseDateTime(orig, date, clock string, iso bool) (Datetime, error) {
	var (
		f  fields
		ok bool
	)
	switch {
	case strings.ContainsAny(date, "-/"):
		f, ok = parseDelimitedDate(date)
	case iso:
		f, ok = parseCompactDate(date)
	}
	if !ok {
		return Datetime{}, malformed(orig)
	}

	if iso && !strings.Contains(clock, ":") {
		ok = parseCompactClock(clock, &f)
	} else {
		ok = parseColonClock(clock, &f, !iso)
	}
	if !ok {
		return Datetime{}, malformed(orig)
	}
	return f.build()
}

// isoSeparator returns the index of the T between date and time, or -1.
// A T inside a month name such as OCT is not a separator.
func isoSeparator(s string) int {
	for i := 1; i < len(s)-1; i++ {
		if s[i] == 'T' && isDigit(s[i-1]) && isDigit(s[i+1]) {
			return i
		}
	}
	return -1
}

func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}

// parseCompactDate reads exactly eight digits YYYYMMDD.
func parseCompactDate(s string) (fields, bool) {
	if len(s) != 8 {
		return fields{}, false
	}
	n, ok := digits(s)
	if !ok {
		return fields{}, false
	}
	return fields{year: n / 10_000, month: n / 100 % 100, day: n % 100}, true
}

// parseDelimitedDate reads Y-M-D or Y/M/D with a four digit year.
func parseDelimitedDate(s string) (fields, bool) {
	parts := strings.FieldsFunc(s, func(r rune) bool { return r == '-' || r == '/' })
	if len(parts) != 3 || strings.Count(s, "-")+strings.Count(s, "/") != 2 {
		return fields{}, false
	}
	if len(parts[0]) != 4 || len(parts[2]) > 2 {
		return fields{}, false
	}
	y, ok := digits(parts[0])
	if !ok {
		return fields{}, false
	}
	m, ok := monthField(parts[1])
	if !ok {
		return fields{}, false
	}
	d, ok := digits(parts[2])
	if !ok {
		return fields{}, false
	}
	return fields{year: y, month: m, day: d}, true
}

var monthNames = map[string]int{
	"JAN": 1, "FEB": 2, "MAR": 3, "APR": 4, "MAY": 5, "JUN": 6,
	"JUL": 7, "AUG": 8, "SEP": 9, "OCT": 10, "NOV": 11, "DEC": 12,
}

func monthField(s string) (int, bool) {
	if len(s) == 3 {
		m, ok := monthNames[strings.ToUpper(s)]
		return m, ok
	}
	if len(s) > 2 {
		return 0, false
	}
	return digits(s)
}

// parseCompactClock reads HHMMSS[.ffffff].
func parseCompactClock(s string, f *fields) bool {
	whole, frac, hasFrac := strings.Cut(s, ".")
	if len(whole) != 6 {
		return false
	}
	n, ok := digits(whole)
	if !ok {
		return false
	}
	f.hour, f.minute, f.second = n/10_000, n/100%100, n%100
	if hasFrac {
		return fraction(frac, f)
	}
	return true
}

// parseColonClock reads HH:MM:SS[.ffffff]; seconds are optional when
// allowShort is set.
func parseColonClock(s string, f *fields, allowShort bool) bool {
	whole, frac, hasFrac := strings.Cut(s, ".")
	parts := strings.Split(whole, ":")
	switch {
	case len(parts) == 3:
	case len(parts) == 2 && allowShort && !hasFrac:
	default:
		return false
	}

	vals := make([]int, 3)
	for i, p := range parts {
		if len(p) != 2 {
			return false
		}
		v, ok := digits(p)
		if !ok {
			return false
		}
		vals[i] = v
	}
	f.hour, f.minute, f.second = vals[0], vals[1], vals[2]
	if hasFrac {
		return fraction(frac, f)
	}
	return true
}

// fraction reads 1 to 6 fractional digits as microseconds.
func fraction(s string, f *fields) bool {
	if len(s) == 0 || len(s) > 6 {
		return false
	}
	n, ok := digits(s)
	if !ok {
		return false
	}
	for i := len(s); i < 6; i++ {
		n *= 10
	}
	f.micro = n
	return true
}

// digits parses a non-empty string of ASCII digits.
func digits(s string) (int, bool) {
	if s == "" {
		return 0, false
	}
	n := 0
	for i := 0; i < len(s); i++ {
		if !isDigit(s[i]) {
			return 0, false
		}
		n = n*10 + int(s[i]-'0')
	}
	return n, true
}
