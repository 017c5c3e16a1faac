// ============================================================================
// kairos - Market Calendar Timestamps
// ============================================================================
//
// Package:     datetime
// Description: Canonical text forms and compact integer encodings
// Author:      Mike Stoffels
// Created:     2026-10-18
// License:     MIT
// ============================================================================

package datetime

import (
	"fmt"
)

// String returns "YYYY-MM-DD HH:MM:SS", followed by ".ffffff" when the
// sub-second part is non-zero. Null yields "+infinity".
func (dt Datetime) String() string {
	if !dt.valid {
		return NullString
	}
	c, _ := dt.Components()
	if frac := c.Millisecond*1000 + c.Microsecond; frac != 0 {
		return fmt.Sprintf("%04d-%02d-%02d %02d:%02d:%02d.%06d",
			c.Year, c.Month, c.Day, c.Hour, c.Minute, c.Second, frac)
	}
	return fmt.Sprintf("%04d-%02d-%02d %02d:%02d:%02d",
		c.Year, c.Month, c.Day, c.Hour, c.Minute, c.Second)
}

// Repr returns the positional constructor form
// "Datetime(Y,M,D,h,m,s,ms,us)", or "Datetime()" for Null.
func (dt Datetime) Repr() string {
	if !dt.valid {
		return "Datetime()"
	}
	c, _ := dt.Components()
	return fmt.Sprintf("Datetime(%d,%d,%d,%d,%d,%d,%d,%d)",
		c.Year, c.Month, c.Day, c.Hour, c.Minute, c.Second, c.Millisecond, c.Microsecond)
}

// GoString makes %#v print the Repr form.
func (dt Datetime) GoString() string {
	return dt.Repr()
}

// Number returns the compact YYYYMMDDHHMM encoding. Seconds and smaller
// units are dropped. Null yields NullNumber.
func (dt Datetime) Number() uint64 {
	if !dt.valid {
		return NullNumber
	}
	c, _ := dt.Components()
	return uint64(c.Year)*100_000_000 +
		uint64(c.Month)*1_000_000 +
		uint64(c.Day)*10_000 +
		uint64(c.Hour)*100 +
		uint64(c.Minute)
}

// YMD returns the compact YYYYMMDD encoding, or NullNumber for Null.
func (dt Datetime) YMD() uint64 {
	if !dt.valid {
		return NullNumber
	}
	y, m, d := dt.day.Civil()
	return uint64(y)*10_000 + uint64(m)*100 + uint64(d)
}

// YMDHMS returns YYYYMMDDHHMMSS, or NullNumber for Null.
func (dt Datetime) YMDHMS() uint64 {
	if !dt.valid {
		return NullNumber
	}
	c, _ := dt.Components()
	return dt.YMD()*1_000_000 + uint64(c.Hour)*10_000 + uint64(c.Minute)*100 + uint64(c.Second)
}
