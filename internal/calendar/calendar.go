// ============================================================================
// kairos - Market Calendar Timestamps
// ============================================================================
//
// Package:     calendar
// Description: Proleptic Gregorian day arithmetic over the representable range
// Author:      Mike Stoffels
// Created:     2026-10-18
// License:     MIT
// ============================================================================

// Package calendar validates calendar dates and times of day and performs
// day-level arithmetic. Dates are plain day numbers, so adding days or
// comparing dates never fails; range checks are explicit via InRange.
package calendar

import (
	"errors"
	"fmt"
)

// Representable year range.
const (
	MinYear = 1400
	MaxYear = 9999
)

var (
	ErrYear   = errors.New("year is out of valid range: 1400..9999")
	ErrMonth  = errors.New("month number is out of range 1..12")
	ErrDay    = errors.New("day of month is not valid for year")
	ErrHour   = errors.New("hour value is out of range 0..23")
	ErrMinute = errors.New("minute value is out of range 0..59")
	ErrSecond = errors.New("second value is out of range 0..59")
)

// Date is the number of days since 1970-01-01.
type Date int32

// Min and Max are the first and last representable dates.
var (
	Min = mustCivil(MinYear, 1, 1)
	Max = mustCivil(MaxYear, 12, 31)
)

// daysBefore[m] counts the days in a non-leap year before month m+1 begins.
var daysBefore = [...]int{0, 31, 59, 90, 120, 151, 181, 212, 243, 273, 304, 334, 365}

// IsLeap reports whether y is a Gregorian leap year.
func IsLeap(y int) bool {
	return y%4 == 0 && (y%100 != 0 || y%400 == 0)
}

// DaysInMonth returns the length of month m in year y. It returns 0 for an
// invalid month.
func DaysInMonth(y, m int) int {
	if m < 1 || m > 12 {
		return 0
	}
	if m == 2 && IsLeap(y) {
		return 29
	}
	return daysBefore[m] - daysBefore[m-1]
}

// FromCivil validates (y, m, d) and returns its day number.
func FromCivil(y, m, d int) (Date, error) {
	if y < MinYear || y > MaxYear {
		return 0, fmt.Errorf("%w (got %d)", ErrYear, y)
	}
	if m < 1 || m > 12 {
		return 0, fmt.Errorf("%w (got %d)", ErrMonth, m)
	}
	if d < 1 || d > DaysInMonth(y, m) {
		return 0, fmt.Errorf("%w (got %04d-%02d-%02d)", ErrDay, y, m, d)
	}
	return Date(daysFromCivil(y, m, d)), nil
}

// ValidTime validates an (hour, minute, second) time of day.
func ValidTime(h, m, s int) error {
	switch {
	case h < 0 || h > 23:
		return fmt.Errorf("%w (got %d)", ErrHour, h)
	case m < 0 || m > 59:
		return fmt.Errorf("%w (got %d)", ErrMinute, m)
	case s < 0 || s > 59:
		return fmt.Errorf("%w (got %d)", ErrSecond, s)
	}
	return nil
}

// Civil returns the year, month and day of d.
func (d Date) Civil() (year, month, day int) {
	return civilFromDays(int64(d))
}

// Weekday returns the day of week with 0 = Sunday through 6 = Saturday.
func (d Date) Weekday() int {
	// 1970-01-01 was a Thursday.
	w := (int64(d) + 4) % 7
	if w < 0 {
		w += 7
	}
	return int(w)
}

// YearDay returns the day of the year in [1, 366].
func (d Date) YearDay() int {
	y, m, day := d.Civil()
	n := daysBefore[m-1] + day
	if m > 2 && IsLeap(y) {
		n++
	}
	return n
}

// AddDays returns d shifted by n days. The result may leave the
// representable range; callers check InRange or compare against Min/Max.
func (d Date) AddDays(n int) Date {
	return d + Date(n)
}

// InRange reports whether d lies within [Min, Max].
func (d Date) InRange() bool {
	return d >= Min && d <= Max
}

// String formats d as YYYY-MM-DD.
func (d Date) String() string {
	y, m, day := d.Civil()
	return fmt.Sprintf("%04d-%02d-%02d", y, m, day)
}

// daysFromCivil and civilFromDays follow the era-based algorithm for the
// proleptic Gregorian calendar where each era spans 400 years.
func daysFromCivil(y, m, d int) int64 {
	if m <= 2 {
		y--
	}
	era := floorDiv(int64(y), 400)
	yoe := int64(y) - era*400
	mp := int64(m+9) % 12
	doy := (153*mp+2)/5 + int64(d) - 1
	doe := yoe*365 + yoe/4 - yoe/100 + doy
	return era*146097 + doe - 719468
}

func civilFromDays(z int64) (int, int, int) {
	z += 719468
	era := floorDiv(z, 146097)
	doe := z - era*146097
	yoe := (doe - doe/1460 + doe/36524 - doe/146096) / 365
	y := yoe + era*400
	doy := doe - (365*yoe + yoe/4 - yoe/100)
	mp := (5*doy + 2) / 153
	d := doy - (153*mp+2)/5 + 1
	m := mp + 3
	if m > 12 {
		m -= 12
	}
	if m <= 2 {
		y++
	}
	return int(y), int(m), int(d)
}

func floorDiv(a, b int64) int64 {
	q := a / b
	if (a%b != 0) && ((a < 0) != (b < 0)) {
		q--
	}
	return q
}

func mustCivil(y, m, d int) Date {
	dt, err := FromCivil(y, m, d)
	if err != nil {
		panic(err)
	}
	return dt
}
