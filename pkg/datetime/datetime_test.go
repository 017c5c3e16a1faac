package datetime

import (
	"errors"
	"testing"
	"time"

	kerror "github.com/msto63/kairos/foundation/core/error"
)

func mustNew(t *testing.T, y, m, d, hh, mm, ss, ms, us int) Datetime {
	t.Helper()
	dt, err := New(y, m, d, hh, mm, ss, ms, us)
	if err != nil {
		t.Fatalf("New(%d,%d,%d,%d,%d,%d,%d,%d) error = %v", y, m, d, hh, mm, ss, ms, us, err)
	}
	return dt
}

func mustDate(t *testing.T, y, m, d int) Datetime {
	t.Helper()
	return mustNew(t, y, m, d, 0, 0, 0, 0, 0)
}

func TestNewRoundTrip(t *testing.T) {
	tests := []Components{
		{2023, 1, 15, 0, 0, 0, 0, 0},
		{2023, 1, 15, 8, 30, 0, 500, 0},
		{2024, 2, 29, 23, 59, 59, 999, 999},
		{1400, 1, 1, 0, 0, 0, 0, 1},
		{9999, 12, 31, 23, 59, 59, 0, 0},
		{1970, 1, 1, 12, 0, 1, 1, 999},
	}

	for _, c := range tests {
		dt := mustNew(t, c.Year, c.Month, c.Day, c.Hour, c.Minute, c.Second, c.Millisecond, c.Microsecond)
		got := Components{
			dt.Year(), dt.Month(), dt.Day(),
			dt.Hour(), dt.Minute(), dt.Second(),
			dt.Millisecond(), dt.Microsecond(),
		}
		if got != c {
			t.Errorf("accessors = %+v, want %+v", got, c)
		}
		checked, err := dt.Components()
		if err != nil || checked != c {
			t.Errorf("Components() = %+v, %v, want %+v", checked, err, c)
		}
	}
}

func TestNewErrors(t *testing.T) {
	tests := []struct {
		name                        string
		y, m, d, hh, mm, ss, ms, us int
		want                        error
	}{
		{"millisecond 1000", 2023, 1, 1, 0, 0, 0, 1000, 0, ErrRange},
		{"microsecond 1000", 2023, 1, 1, 0, 0, 0, 0, 1000, ErrRange},
		{"negative millisecond", 2023, 1, 1, 0, 0, 0, -1, 0, ErrRange},
		{"february 30", 2023, 2, 30, 0, 0, 0, 0, 0, ErrDate},
		{"month 13", 2023, 13, 1, 0, 0, 0, 0, 0, ErrDate},
		{"year before range", 1399, 12, 31, 0, 0, 0, 0, 0, ErrDate},
		{"year after range", 10000, 1, 1, 0, 0, 0, 0, 0, ErrDate},
		{"hour 24", 2023, 1, 1, 24, 0, 0, 0, 0, ErrDate},
		{"minute 60", 2023, 1, 1, 0, 60, 0, 0, 0, ErrDate},
		{"second 60", 2023, 1, 1, 0, 0, 60, 0, 0, ErrDate},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dt, err := New(tt.y, tt.m, tt.d, tt.hh, tt.mm, tt.ss, tt.ms, tt.us)
			if !errors.Is(err, tt.want) {
				t.Fatalf("New() error = %v, want %v", err, tt.want)
			}
			if !dt.IsNull() {
				t.Errorf("New() returned %v with error, want Null", dt)
			}
		})
	}
}

func TestErrorsAreDistinct(t *testing.T) {
	_, rangeErr := New(2023, 1, 1, 0, 0, 0, 1000, 0)
	if errors.Is(rangeErr, ErrDate) || errors.Is(rangeErr, ErrNull) {
		t.Errorf("range error matches another kind: %v", rangeErr)
	}
	if kerror.GetCode(rangeErr) != kerror.CodeValueOutOfRange {
		t.Errorf("GetCode() = %v", kerror.GetCode(rangeErr))
	}
}

func TestNullValue(t *testing.T) {
	var zero Datetime
	if !zero.IsNull() {
		t.Error("zero Datetime should be Null")
	}
	if zero != Null() {
		t.Error("zero Datetime should equal Null()")
	}
	if mustDate(t, 2023, 1, 1).IsNull() {
		t.Error("instant reported as Null")
	}
	n, err := FromNumber(NullNumber)
	if err != nil || n != Null() {
		t.Errorf("FromNumber(NullNumber) = %v, %v", n, err)
	}
}

func TestNullAccessorsPanic(t *testing.T) {
	accessors := map[string]func(Datetime) int{
		"Year":        Datetime.Year,
		"Month":       Datetime.Month,
		"Day":         Datetime.Day,
		"Hour":        Datetime.Hour,
		"Minute":      Datetime.Minute,
		"Second":      Datetime.Second,
		"Millisecond": Datetime.Millisecond,
		"Microsecond": Datetime.Microsecond,
		"DayOfWeek":   Datetime.DayOfWeek,
		"DayOfYear":   Datetime.DayOfYear,
	}

	for name, fn := range accessors {
		t.Run(name, func(t *testing.T) {
			defer func() {
				r := recover()
				err, ok := r.(error)
				if !ok {
					t.Fatalf("%s() panic value = %v, want error", name, r)
				}
				if !errors.Is(err, ErrNull) {
					t.Errorf("%s() panic = %v, want ErrNull", name, err)
				}
				if err.Error() != NullMessage {
					t.Errorf("%s() message = %q, want %q", name, err.Error(), NullMessage)
				}
			}()
			fn(Null())
		})
	}
}

func TestComponentsNull(t *testing.T) {
	_, err := Null().Components()
	if !errors.Is(err, ErrNull) {
		t.Errorf("Components() error = %v, want ErrNull", err)
	}
}

func TestDayOfWeekAndYear(t *testing.T) {
	tests := []struct {
		dt       Datetime
		dow, doy int
	}{
		{mustDate(t, 2023, 1, 15), 0, 15},
		{mustDate(t, 2023, 1, 11), 3, 11},
		{mustDate(t, 2024, 12, 31), 2, 366},
		{mustDate(t, 2023, 12, 31), 0, 365},
		{Min(), 3, 1},
		{Max(), 5, 365},
	}
	for _, tt := range tests {
		if got := tt.dt.DayOfWeek(); got != tt.dow {
			t.Errorf("%v.DayOfWeek() = %d, want %d", tt.dt, got, tt.dow)
		}
		if got := tt.dt.DayOfYear(); got != tt.doy {
			t.Errorf("%v.DayOfYear() = %d, want %d", tt.dt, got, tt.doy)
		}
	}
}

func TestCompare(t *testing.T) {
	a := mustNew(t, 2023, 1, 15, 8, 0, 0, 0, 0)
	b := mustNew(t, 2023, 1, 15, 8, 0, 0, 0, 1)
	c := mustDate(t, 2023, 1, 16)

	tests := []struct {
		x, y Datetime
		want int
	}{
		{a, a, 0},
		{a, b, -1},
		{b, a, 1},
		{b, c, -1},
		{c, Null(), -1},
		{Max().EndOfDay(), Null(), -1},
		{Null(), Max(), 1},
		{Null(), Null(), 0},
	}
	for _, tt := range tests {
		if got := tt.x.Compare(tt.y); got != tt.want {
			t.Errorf("%v.Compare(%v) = %d, want %d", tt.x, tt.y, got, tt.want)
		}
	}

	if !a.Before(b) || !b.After(a) || a.After(a) || !a.Equal(a) || a.Equal(b) {
		t.Error("Before/After/Equal inconsistent with Compare")
	}
}

func TestMinMax(t *testing.T) {
	if got := Min().Repr(); got != "Datetime(1400,1,1,0,0,0,0,0)" {
		t.Errorf("Min() = %s", got)
	}
	if got := Max().Repr(); got != "Datetime(9999,12,31,0,0,0,0,0)" {
		t.Errorf("Max() = %s", got)
	}
}

func TestFromTimeAndTime(t *testing.T) {
	loc := time.FixedZone("X", 3*3600)
	src := time.Date(2023, 1, 15, 8, 30, 5, 123456789, loc)

	dt, err := FromTime(src)
	if err != nil {
		t.Fatal(err)
	}
	if want := mustNew(t, 2023, 1, 15, 8, 30, 5, 123, 456); dt != want {
		t.Errorf("FromTime() = %#v, want %#v", dt, want)
	}

	back := dt.Time(loc)
	if !back.Equal(src.Truncate(time.Microsecond)) {
		t.Errorf("Time() = %v, want %v", back, src.Truncate(time.Microsecond))
	}
	if !Null().Time(nil).IsZero() {
		t.Error("Null().Time() should be zero")
	}
	if got := dt.Time(nil).Location(); got != time.Local {
		t.Errorf("Time(nil) location = %v, want Local", got)
	}

	if _, err := FromTime(time.Date(1200, 1, 1, 0, 0, 0, 0, time.UTC)); !errors.Is(err, ErrDate) {
		t.Errorf("FromTime(1200) error = %v, want ErrDate", err)
	}
}

func TestMust(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("Must() should panic on error")
		}
	}()
	Must(New(2023, 2, 30, 0, 0, 0, 0, 0))
}
