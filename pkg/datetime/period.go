// ============================================================================
// kairos - Market Calendar Timestamps
// ============================================================================
//
// Package:     datetime
// Description: Period boundaries and navigation with saturation at Min/Max
// Author:      Mike Stoffels
// Created:     2026-10-18
// License:     MIT
// ============================================================================

package datetime

import (
	"github.com/msto63/kairos/internal/calendar"
)

// All operations in this file return Null for Null input. Results are at
// midnight unless documented otherwise, and never leave [Min, Max].

// AddDays shifts dt by n days, keeping the time of day. Results past the
// representable range saturate to Min or Max.
func (dt Datetime) AddDays(n int) Datetime {
	if !dt.valid {
		return dt
	}
	target := int64(dt.day) + int64(n)
	switch {
	case target < int64(calendar.Min):
		return Min()
	case target > int64(calendar.Max):
		return Max()
	}
	return Datetime{day: calendar.Date(target), micro: dt.micro, valid: true}
}

// DateOfWeek returns the date of the given weekday (0 = Sunday .. 6 =
// Saturday, clamped into that range) in the Sunday-based week of dt.
func (dt Datetime) DateOfWeek(day int) Datetime {
	if !dt.valid {
		return dt
	}
	day = max(0, min(day, 6))
	return clampDay(int64(dt.day) + int64(day-dt.day.Weekday()))
}

// StartOfDay returns midnight of dt's date.
func (dt Datetime) StartOfDay() Datetime {
	if !dt.valid {
		return dt
	}
	return fromDay(dt.day)
}

// EndOfDay returns 23:59:59 of dt's date. On the last representable date
// it returns Max.
func (dt Datetime) EndOfDay() Datetime {
	if !dt.valid {
		return dt
	}
	if dt.day == calendar.Max {
		return Max()
	}
	return Datetime{day: dt.day, micro: microsPerDay - microsPerSecond, valid: true}
}

// StartOfWeek returns the Monday of dt's week. Weeks run Monday through
// Sunday, so a Sunday steps back six days.
func (dt Datetime) StartOfWeek() Datetime {
	if !dt.valid {
		return dt
	}
	wd := dt.day.Weekday()
	if wd == 0 {
		return clampDay(int64(dt.day) - 6)
	}
	return clampDay(int64(dt.day) + int64(1-wd))
}

// EndOfWeek returns the Sunday of dt's week.
func (dt Datetime) EndOfWeek() Datetime {
	if !dt.valid {
		return dt
	}
	wd := dt.day.Weekday()
	if wd == 0 {
		return fromDay(dt.day)
	}
	return clampDay(int64(dt.day) + int64(7-wd))
}

// StartOfMonth returns the first day of dt's month.
func (dt Datetime) StartOfMonth() Datetime {
	if !dt.valid {
		return dt
	}
	y, m, _ := dt.day.Civil()
	return mustCivil(y, m, 1)
}

// EndOfMonth returns the last day of dt's month.
func (dt Datetime) EndOfMonth() Datetime {
	if !dt.valid {
		return dt
	}
	y, m, _ := dt.day.Civil()
	return mustCivil(y, m, calendar.DaysInMonth(y, m))
}

// StartOfQuarter returns the first day of dt's quarter (January, April,
// July or October).
func (dt Datetime) StartOfQuarter() Datetime {
	if !dt.valid {
		return dt
	}
	y, m, _ := dt.day.Civil()
	return mustCivil(y, quarterStart(m), 1)
}

// EndOfQuarter returns the last day of dt's quarter.
func (dt Datetime) EndOfQuarter() Datetime {
	if !dt.valid {
		return dt
	}
	y, m, _ := dt.day.Civil()
	last := quarterStart(m) + 2
	return mustCivil(y, last, calendar.DaysInMonth(y, last))
}

// StartOfHalfyear returns January 1st or July 1st of dt's year.
func (dt Datetime) StartOfHalfyear() Datetime {
	if !dt.valid {
		return dt
	}
	y, m, _ := dt.day.Civil()
	if m <= 6 {
		return mustCivil(y, 1, 1)
	}
	return mustCivil(y, 7, 1)
}

// EndOfHalfyear returns June 30th or December 31st of dt's year.
func (dt Datetime) EndOfHalfyear() Datetime {
	if !dt.valid {
		return dt
	}
	y, m, _ := dt.day.Civil()
	if m <= 6 {
		return mustCivil(y, 6, 30)
	}
	return mustCivil(y, 12, 31)
}

// StartOfYear returns January 1st of dt's year.
func (dt Datetime) StartOfYear() Datetime {
	if !dt.valid {
		return dt
	}
	y, _, _ := dt.day.Civil()
	return mustCivil(y, 1, 1)
}

// EndOfYear returns December 31st of dt's year.
func (dt Datetime) EndOfYear() Datetime {
	if !dt.valid {
		return Null()
	}
	y, _, _ := dt.day.Civil()
	return mustCivil(y, 12, 31)
}

// NextDay returns midnight of the following day. On the last representable
// date dt is returned unchanged.
func (dt Datetime) NextDay() Datetime {
	if !dt.valid || dt.day == calendar.Max {
		return dt
	}
	return fromDay(dt.day + 1)
}

// PreDay returns midnight of the previous day. On the first representable
// date dt is returned unchanged.
func (dt Datetime) PreDay() Datetime {
	if !dt.valid || dt.day == calendar.Min {
		return dt
	}
	return fromDay(dt.day - 1)
}

// NextWeek returns the Monday after dt's week.
func (dt Datetime) NextWeek() Datetime {
	return dt.after(dt.EndOfWeek())
}

// NextMonth returns the first day of the following month.
func (dt Datetime) NextMonth() Datetime {
	return dt.after(dt.EndOfMonth())
}

// NextQuarter returns the first day of the following quarter.
func (dt Datetime) NextQuarter() Datetime {
	return dt.after(dt.EndOfQuarter())
}

// NextHalfyear returns the first day of the following half year.
func (dt Datetime) NextHalfyear() Datetime {
	return dt.after(dt.EndOfHalfyear())
}

// NextYear returns January 1st of the following year.
func (dt Datetime) NextYear() Datetime {
	return dt.after(dt.EndOfYear())
}

// after returns the day following end, saturated at Max.
func (dt Datetime) after(end Datetime) Datetime {
	if !dt.valid {
		return dt
	}
	return clampDay(int64(end.day) + 1)
}

// PreWeek returns the Monday of the previous week.
func (dt Datetime) PreWeek() Datetime {
	if !dt.valid {
		return dt
	}
	target := int64(dt.day) - 7
	if target < int64(calendar.Min) {
		return Min()
	}
	return fromDay(calendar.Date(target)).StartOfWeek()
}

// PreMonth returns the first day of the previous month.
func (dt Datetime) PreMonth() Datetime {
	if !dt.valid {
		return dt
	}
	y, m, _ := dt.day.Civil()
	if m == 1 {
		return startOrMin(y-1, 12)
	}
	return mustCivil(y, m-1, 1)
}

// PreQuarter returns the first day of the previous quarter.
func (dt Datetime) PreQuarter() Datetime {
	if !dt.valid {
		return dt
	}
	y, m, _ := dt.day.Civil()
	q := quarterStart(m)
	if q == 1 {
		return startOrMin(y-1, 10)
	}
	return mustCivil(y, q-3, 1)
}

// PreHalfyear returns the first day of the previous half year.
func (dt Datetime) PreHalfyear() Datetime {
	if !dt.valid {
		return dt
	}
	y, m, _ := dt.day.Civil()
	if m <= 6 {
		return startOrMin(y-1, 7)
	}
	return mustCivil(y, 1, 1)
}

// PreYear returns January 1st of the previous year.
func (dt Datetime) PreYear() Datetime {
	if !dt.valid {
		return dt
	}
	y, _, _ := dt.day.Civil()
	return startOrMin(y-1, 1)
}

// startOrMin returns the first day of (year, month), or Min when the year
// precedes the representable range.
func startOrMin(year, month int) Datetime {
	if year < calendar.MinYear {
		return Min()
	}
	return mustCivil(year, month, 1)
}

func quarterStart(month int) int {
	return (month-1)/3*3 + 1
}
