// Package datetime provides Datetime, a naive calendar timestamp for
// market data: microsecond resolution between 1400-01-01 and 9999-12-31,
// plus a Null value that stands for "unknown" or "unbounded".
//
// Values are built with New, NewDate, FromNumber, FromTime or Parse:
//
//	d, err := datetime.Parse("2023-01-15 08:30:00.5")
//	w := d.StartOfWeek()           // Monday 2023-01-09
//	n := d.NextQuarter().Number()  // 202304010000
//
// The zero Datetime is Null. Null sorts after every instant, prints as
// "+infinity", and is returned unchanged by every period operation. The
// field accessors (Year, Month, ...) panic on Null with an error matching
// ErrNull; Components is the checked alternative.
//
// Period navigation never fails: results that would leave the
// representable range saturate to Min or Max.
//
// Errors returned by this package match ErrRange, ErrDate or ErrNull
// under errors.Is.
package datetime
