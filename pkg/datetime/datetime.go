// ============================================================================
// kairos - Market Calendar Timestamps
// ============================================================================
//
// Package:     datetime
// Description: Calendar timestamp value with a distinguished Null value
// Author:      Mike Stoffels
// Created:     2026-10-18
// License:     MIT
// ============================================================================

package datetime

import (
	"math"
	"time"

	"github.com/msto63/kairos/internal/calendar"
)

// NullNumber is the compact integer encoding of the Null value.
const NullNumber uint64 = math.MaxUint64

const (
	microsPerSecond = int64(1_000_000)
	microsPerMinute = 60 * microsPerSecond
	microsPerHour   = 60 * microsPerMinute
	microsPerDay    = 24 * microsPerHour
)

// Datetime is either a calendar instant between Min and Max at microsecond
// resolution, or the Null value. The zero value is Null.
//
// Datetime values are immutable and comparable with ==. Null orders after
// every instant.
type Datetime struct {
	day   calendar.Date
	micro int64 // since midnight
	valid bool
}

// Components holds the broken-down fields of an instant.
type Components struct {
	Year        int `json:"year"`
	Month       int `json:"month"`
	Day         int `json:"day"`
	Hour        int `json:"hour"`
	Minute      int `json:"minute"`
	Second      int `json:"second"`
	Millisecond int `json:"millisecond"`
	Microsecond int `json:"microsecond"`
}

// Null returns the Null value.
func Null() Datetime {
	return Datetime{}
}

// IsNull reports whether dt is the Null value.
func (dt Datetime) IsNull() bool {
	return !dt.valid
}

// New builds an instant from its components. Millisecond and microsecond
// outside [0, 999] fail with ErrRange; an invalid date or time of day fails
// with ErrDate.
func New(year, month, day, hour, minute, second, millisecond, microsecond int) (Datetime, error) {
	return build("New", year, month, day, hour, minute, second, millisecond, microsecond)
}

// NewDate builds the instant at midnight of the given date.
func NewDate(year, month, day int) (Datetime, error) {
	return build("NewDate", year, month, day, 0, 0, 0, 0, 0)
}

// FromTime takes the wall clock fields of t in its own location,
// truncated to the microsecond.
func FromTime(t time.Time) (Datetime, error) {
	y, m, d := t.Date()
	hh, mm, ss := t.Clock()
	us := t.Nanosecond() / 1000
	return build("FromTime", y, int(m), d, hh, mm, ss, us/1000, us%1000)
}

// Must panics if err is non-nil and returns dt otherwise.
func Must(dt Datetime, err error) Datetime {
	if err != nil {
		panic(err)
	}
	return dt
}

func build(op string, year, month, day, hour, minute, second, millisecond, microsecond int) (Datetime, error) {
	if millisecond < 0 || millisecond > 999 {
		return Datetime{}, rangeError(op, "millisecond %d is out of range 0..999", millisecond)
	}
	if microsecond < 0 || microsecond > 999 {
		return Datetime{}, rangeError(op, "microsecond %d is out of range 0..999", microsecond)
	}
	date, err := calendar.FromCivil(year, month, day)
	if err != nil {
		return Datetime{}, wrapDateError(op, err)
	}
	if err := calendar.ValidTime(hour, minute, second); err != nil {
		return Datetime{}, wrapDateError(op, err)
	}
	micro := int64(hour)*microsPerHour +
		int64(minute)*microsPerMinute +
		int64(second)*microsPerSecond +
		int64(millisecond)*1000 + int64(microsecond)
	return Datetime{day: date, micro: micro, valid: true}, nil
}

// fromDay returns midnight of d. d must be in range.
func fromDay(d calendar.Date) Datetime {
	return Datetime{day: d, valid: true}
}

// clampDay returns midnight of day number n, saturated to [Min, Max].
func clampDay(n int64) Datetime {
	switch {
	case n < int64(calendar.Min):
		return fromDay(calendar.Min)
	case n > int64(calendar.Max):
		return fromDay(calendar.Max)
	}
	return fromDay(calendar.Date(n))
}

// mustCivil is used for boundaries derived from a valid instant, which are
// valid by construction.
func mustCivil(year, month, day int) Datetime {
	d, err := calendar.FromCivil(year, month, day)
	if err != nil {
		panic(err)
	}
	return fromDay(d)
}

// Min returns midnight of the earliest representable date, 1400-01-01.
func Min() Datetime {
	return fromDay(calendar.Min)
}

// Max returns midnight of the latest representable date, 9999-12-31.
func Max() Datetime {
	return fromDay(calendar.Max)
}

func (dt Datetime) check(op string) {
	if !dt.valid {
		panic(nullError(op))
	}
}

// Components returns the fields of dt, or an ErrNull error for Null.
func (dt Datetime) Components() (Components, error) {
	if !dt.valid {
		return Components{}, nullError("Components")
	}
	y, m, d := dt.day.Civil()
	return Components{
		Year:        y,
		Month:       m,
		Day:         d,
		Hour:        int(dt.micro / microsPerHour),
		Minute:      int(dt.micro / microsPerMinute % 60),
		Second:      int(dt.micro / microsPerSecond % 60),
		Millisecond: int(dt.micro / 1000 % 1000),
		Microsecond: int(dt.micro % 1000),
	}, nil
}

// The field accessors below panic with an ErrNull error when dt is Null.
// Use Components for a checked read.

// Year returns the year.
func (dt Datetime) Year() int {
	dt.check("Year")
	y, _, _ := dt.day.Civil()
	return y
}

// Month returns the month in [1, 12].
func (dt Datetime) Month() int {
	dt.check("Month")
	_, m, _ := dt.day.Civil()
	return m
}

// Day returns the day of month.
func (dt Datetime) Day() int {
	dt.check("Day")
	_, _, d := dt.day.Civil()
	return d
}

// Hour returns the hour in [0, 23].
func (dt Datetime) Hour() int {
	dt.check("Hour")
	return int(dt.micro / microsPerHour)
}

// Minute returns the minute in [0, 59].
func (dt Datetime) Minute() int {
	dt.check("Minute")
	return int(dt.micro / microsPerMinute % 60)
}

// Second returns the second in [0, 59].
func (dt Datetime) Second() int {
	dt.check("Second")
	return int(dt.micro / microsPerSecond % 60)
}

// Millisecond returns the millisecond in [0, 999].
func (dt Datetime) Millisecond() int {
	dt.check("Millisecond")
	return int(dt.micro / 1000 % 1000)
}

// Microsecond returns the microsecond in [0, 999], not including milliseconds.
func (dt Datetime) Microsecond() int {
	dt.check("Microsecond")
	return int(dt.micro % 1000)
}

// DayOfWeek returns 0 for Sunday through 6 for Saturday.
func (dt Datetime) DayOfWeek() int {
	dt.check("DayOfWeek")
	return dt.day.Weekday()
}

// DayOfYear returns the day of the year in [1, 366].
func (dt Datetime) DayOfYear() int {
	dt.check("DayOfYear")
	return dt.day.YearDay()
}

// Time places the wall clock of dt in loc (time.Local when nil). Null
// yields the zero time.Time.
func (dt Datetime) Time(loc *time.Location) time.Time {
	if !dt.valid {
		return time.Time{}
	}
	if loc == nil {
		loc = time.Local
	}
	c, _ := dt.Components()
	ns := (c.Millisecond*1000 + c.Microsecond) * 1000
	return time.Date(c.Year, time.Month(c.Month), c.Day, c.Hour, c.Minute, c.Second, ns, loc)
}

// Compare returns -1, 0 or +1 as dt is before, equal to or after o.
// Null is after every instant and equal to itself.
func (dt Datetime) Compare(o Datetime) int {
	switch {
	case !dt.valid && !o.valid:
		return 0
	case !dt.valid:
		return 1
	case !o.valid:
		return -1
	case dt.day != o.day:
		if dt.day < o.day {
			return -1
		}
		return 1
	case dt.micro != o.micro:
		if dt.micro < o.micro {
			return -1
		}
		return 1
	}
	return 0
}

// Before reports whether dt is strictly before o.
func (dt Datetime) Before(o Datetime) bool { return dt.Compare(o) < 0 }

// After reports whether dt is strictly after o.
func (dt Datetime) After(o Datetime) bool { return dt.Compare(o) > 0 }

// Equal reports whether dt and o denote the same value.
func (dt Datetime) Equal(o Datetime) bool { return dt == o }
