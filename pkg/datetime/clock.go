// ============================================================================
// kairos - Market Calendar Timestamps
// ============================================================================
//
// Package:     datetime
// Description: Wall clock readings
// Author:      Mike Stoffels
// Created:     2026-10-18
// License:     MIT
// ============================================================================

package datetime

import (
	"time"
)

// wallClock is replaced in tests.
var wallClock = time.Now

// Now returns the current local wall clock time at microsecond resolution.
// Readings are not monotonic across clock adjustments.
func Now() Datetime {
	dt, err := FromTime(wallClock())
	if err != nil {
		// Only reachable with a system clock outside years 1400..9999.
		return Null()
	}
	return dt
}

// Today returns midnight of the current local date.
func Today() Datetime {
	return Now().StartOfDay()
}
