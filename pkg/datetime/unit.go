// ============================================================================
// kairos - Market Calendar Timestamps
// ============================================================================
//
// Package:     datetime
// Description: Period kinds used for alignment and resampling
// Author:      Mike Stoffels
// Created:     2026-10-18
// License:     MIT
// ============================================================================

package datetime

import (
	"strings"

	kerror "github.com/msto63/kairos/foundation/core/error"
)

// Period selects a calendar period for Start, End, Next and Prev.
type Period int

const (
	Day Period = iota
	Week
	Month
	Quarter
	Halfyear
	Year
)

var periodNames = [...]string{"day", "week", "month", "quarter", "halfyear", "year"}

// Periods lists all periods from shortest to longest.
func Periods() []Period {
	return []Period{Day, Week, Month, Quarter, Halfyear, Year}
}

// String returns the lower case period name.
func (p Period) String() string {
	if p < Day || p > Year {
		return "unknown"
	}
	return periodNames[p]
}

// ParsePeriod accepts a period name or its first letter, case insensitive.
func ParsePeriod(s string) (Period, error) {
	name := strings.ToLower(strings.TrimSpace(s))
	for i, n := range periodNames {
		if name == n || (len(name) == 1 && name[0] == n[0]) {
			return Period(i), nil
		}
	}
	switch name {
	case "half-year", "half_year":
		return Halfyear, nil
	}
	return Day, kerror.New("unknown period: "+s).
		WithCode(kerror.CodeInvalidInput).
		WithOperation("datetime.ParsePeriod").
		WithDetail("input", s)
}

// MarshalText implements encoding.TextMarshaler.
func (p Period) MarshalText() ([]byte, error) {
	return []byte(p.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (p *Period) UnmarshalText(text []byte) error {
	v, err := ParsePeriod(string(text))
	if err != nil {
		return err
	}
	*p = v
	return nil
}

// Start returns the first day of dt's period p. For Day it is midnight.
func (dt Datetime) Start(p Period) Datetime {
	switch p {
	case Week:
		return dt.StartOfWeek()
	case Month:
		return dt.StartOfMonth()
	case Quarter:
		return dt.StartOfQuarter()
	case Halfyear:
		return dt.StartOfHalfyear()
	case Year:
		return dt.StartOfYear()
	default:
		return dt.StartOfDay()
	}
}

// End returns the last day of dt's period p. For Day it is 23:59:59.
func (dt Datetime) End(p Period) Datetime {
	switch p {
	case Week:
		return dt.EndOfWeek()
	case Month:
		return dt.EndOfMonth()
	case Quarter:
		return dt.EndOfQuarter()
	case Halfyear:
		return dt.EndOfHalfyear()
	case Year:
		return dt.EndOfYear()
	default:
		return dt.EndOfDay()
	}
}

// Next returns the start of the period following dt's period p.
func (dt Datetime) Next(p Period) Datetime {
	switch p {
	case Week:
		return dt.NextWeek()
	case Month:
		return dt.NextMonth()
	case Quarter:
		return dt.NextQuarter()
	case Halfyear:
		return dt.NextHalfyear()
	case Year:
		return dt.NextYear()
	default:
		return dt.NextDay()
	}
}

// Prev returns the start of the period preceding dt's period p.
func (dt Datetime) Prev(p Period) Datetime {
	switch p {
	case Week:
		return dt.PreWeek()
	case Month:
		return dt.PreMonth()
	case Quarter:
		return dt.PreQuarter()
	case Halfyear:
		return dt.PreHalfyear()
	case Year:
		return dt.PreYear()
	default:
		return dt.PreDay()
	}
}
