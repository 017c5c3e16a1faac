// ============================================================================
// kairos - Market Calendar Timestamps
// ============================================================================
//
// Package:     datetime
// Description: Day sequences over half-open ranges
// Author:      Mike Stoffels
// Created:     2026-10-18
// License:     MIT
// ============================================================================

package datetime

import (
	"iter"
)

// DateRange returns midnight of every day in [start, end) in ascending
// order. Times of day on the endpoints are ignored. It returns nil when
// start is not before end or either endpoint is Null.
func DateRange(start, end Datetime) []Datetime {
	if !start.valid || !end.valid || start.day >= end.day {
		return nil
	}
	out := make([]Datetime, 0, int(end.day-start.day))
	for d := range Days(start, end) {
		out = append(out, d)
	}
	return out
}

// Days is the lazy form of DateRange.
func Days(start, end Datetime) iter.Seq[Datetime] {
	return func(yield func(Datetime) bool) {
		if !start.valid || !end.valid {
			return
		}
		for d := start.day; d < end.day; d++ {
			if !yield(fromDay(d)) {
				return
			}
		}
	}
}
