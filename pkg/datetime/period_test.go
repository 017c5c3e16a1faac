package datetime

import (
	"testing"
)

func d(t *testing.T, s string) Datetime {
	t.Helper()
	dt, err := Parse(s)
	if err != nil {
		t.Fatalf("Parse(%q) error = %v", s, err)
	}
	return dt
}

func TestPeriodBoundaries(t *testing.T) {
	tests := []struct {
		name string
		fn   func(Datetime) Datetime
		in   string
		want string
	}{
		{"StartOfDay", Datetime.StartOfDay, "2023-05-17 13:45:00", "2023-05-17"},
		{"EndOfDay", Datetime.EndOfDay, "2023-05-17 13:45:00", "2023-05-17 23:59:59"},
		{"EndOfDay at max", Datetime.EndOfDay, "9999-12-31 12:00:00", "9999-12-31"},

		{"StartOfWeek wednesday", Datetime.StartOfWeek, "2023-01-11", "2023-01-09"},
		{"StartOfWeek monday", Datetime.StartOfWeek, "2023-01-09", "2023-01-09"},
		{"StartOfWeek sunday", Datetime.StartOfWeek, "2023-01-15", "2023-01-09"},
		{"StartOfWeek clamps", Datetime.StartOfWeek, "1400-01-01", "1400-01-01"},
		{"EndOfWeek wednesday", Datetime.EndOfWeek, "2023-01-11", "2023-01-15"},
		{"EndOfWeek sunday", Datetime.EndOfWeek, "2023-01-15", "2023-01-15"},
		{"EndOfWeek monday", Datetime.EndOfWeek, "2023-01-09", "2023-01-15"},
		{"EndOfWeek clamps", Datetime.EndOfWeek, "9999-12-31", "9999-12-31"},

		{"StartOfMonth", Datetime.StartOfMonth, "2023-02-17 10:00:00", "2023-02-01"},
		{"EndOfMonth february", Datetime.EndOfMonth, "2023-02-17", "2023-02-28"},
		{"EndOfMonth leap", Datetime.EndOfMonth, "2024-02-01", "2024-02-29"},
		{"EndOfMonth april", Datetime.EndOfMonth, "2023-04-30", "2023-04-30"},

		{"StartOfQuarter q1", Datetime.StartOfQuarter, "2023-03-31", "2023-01-01"},
		{"StartOfQuarter q2", Datetime.StartOfQuarter, "2023-04-01", "2023-04-01"},
		{"StartOfQuarter q3", Datetime.StartOfQuarter, "2023-08-15", "2023-07-01"},
		{"StartOfQuarter q4", Datetime.StartOfQuarter, "2023-12-31", "2023-10-01"},
		{"EndOfQuarter q1", Datetime.EndOfQuarter, "2023-01-01", "2023-03-31"},
		{"EndOfQuarter q2", Datetime.EndOfQuarter, "2023-05-05", "2023-06-30"},
		{"EndOfQuarter q3", Datetime.EndOfQuarter, "2023-07-01", "2023-09-30"},
		{"EndOfQuarter q4", Datetime.EndOfQuarter, "2023-11-11", "2023-12-31"},

		{"StartOfHalfyear first", Datetime.StartOfHalfyear, "2023-06-30", "2023-01-01"},
		{"StartOfHalfyear second", Datetime.StartOfHalfyear, "2023-07-01", "2023-07-01"},
		{"EndOfHalfyear first", Datetime.EndOfHalfyear, "2023-02-01", "2023-06-30"},
		{"EndOfHalfyear second", Datetime.EndOfHalfyear, "2023-09-01", "2023-12-31"},

		{"StartOfYear", Datetime.StartOfYear, "2023-09-01 08:00:00", "2023-01-01"},
		{"EndOfYear", Datetime.EndOfYear, "2023-09-01 08:00:00", "2023-12-31"},
		{"EndOfYear max", Datetime.EndOfYear, "9999-06-01", "9999-12-31"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.fn(d(t, tt.in))
			if want := d(t, tt.want); got != want {
				t.Errorf("%s(%s) = %v, want %v", tt.name, tt.in, got, want)
			}
		})
	}
}

func TestNavigation(t *testing.T) {
	tests := []struct {
		name string
		fn   func(Datetime) Datetime
		in   string
		want string
	}{
		{"NextDay", Datetime.NextDay, "2023-01-31 10:00:00", "2023-02-01"},
		{"NextDay leap", Datetime.NextDay, "2024-02-28", "2024-02-29"},
		{"PreDay", Datetime.PreDay, "2023-03-01 10:00:00", "2023-02-28"},

		{"NextWeek", Datetime.NextWeek, "2023-01-11", "2023-01-16"},
		{"NextWeek sunday", Datetime.NextWeek, "2023-01-15", "2023-01-16"},
		{"NextWeek near max", Datetime.NextWeek, "9999-12-27", "9999-12-31"},
		{"NextMonth", Datetime.NextMonth, "2023-01-31", "2023-02-01"},
		{"NextMonth december", Datetime.NextMonth, "2023-12-05", "2024-01-01"},
		{"NextMonth max", Datetime.NextMonth, "9999-12-05", "9999-12-31"},
		{"NextQuarter", Datetime.NextQuarter, "2023-01-15", "2023-04-01"},
		{"NextQuarter q4", Datetime.NextQuarter, "2023-11-15", "2024-01-01"},
		{"NextHalfyear", Datetime.NextHalfyear, "2023-03-01", "2023-07-01"},
		{"NextHalfyear second", Datetime.NextHalfyear, "2023-08-01", "2024-01-01"},
		{"NextYear", Datetime.NextYear, "2023-08-01", "2024-01-01"},
		{"NextYear max", Datetime.NextYear, "9999-01-01", "9999-12-31"},

		{"PreWeek", Datetime.PreWeek, "2023-01-11", "2023-01-02"},
		{"PreWeek sunday", Datetime.PreWeek, "2023-01-15", "2023-01-02"},
		{"PreWeek near min", Datetime.PreWeek, "1400-01-05", "1400-01-01"},
		{"PreWeek second sunday", Datetime.PreWeek, "1400-01-12", "1400-01-01"},
		{"PreWeek first monday", Datetime.PreWeek, "1400-01-13", "1400-01-06"},
		{"PreMonth", Datetime.PreMonth, "2023-03-31", "2023-02-01"},
		{"PreMonth january", Datetime.PreMonth, "2023-01-15", "2022-12-01"},
		{"PreMonth min", Datetime.PreMonth, "1400-01-20", "1400-01-01"},
		{"PreQuarter", Datetime.PreQuarter, "2023-05-15", "2023-01-01"},
		{"PreQuarter q1", Datetime.PreQuarter, "2023-02-15", "2022-10-01"},
		{"PreQuarter q4", Datetime.PreQuarter, "2023-12-15", "2023-07-01"},
		{"PreQuarter min", Datetime.PreQuarter, "1400-03-01", "1400-01-01"},
		{"PreHalfyear first", Datetime.PreHalfyear, "2023-03-01", "2022-07-01"},
		{"PreHalfyear second", Datetime.PreHalfyear, "2023-09-01", "2023-01-01"},
		{"PreHalfyear min", Datetime.PreHalfyear, "1400-03-01", "1400-01-01"},
		{"PreYear", Datetime.PreYear, "2023-09-01", "2022-01-01"},
		{"PreYear min", Datetime.PreYear, "1400-12-31", "1400-01-01"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.fn(d(t, tt.in))
			if want := d(t, tt.want); got != want {
				t.Errorf("%s(%s) = %v, want %v", tt.name, tt.in, got, want)
			}
		})
	}
}

func TestSaturationAtBounds(t *testing.T) {
	if got := Max().NextDay(); got != Max() {
		t.Errorf("Max().NextDay() = %v", got)
	}
	if got := Min().PreDay(); got != Min() {
		t.Errorf("Min().PreDay() = %v", got)
	}
	if got := Min().PreYear(); got != Min() {
		t.Errorf("Min().PreYear() = %v", got)
	}

	late := Must(New(9999, 12, 31, 12, 0, 0, 0, 0))
	if got := late.NextDay(); got != late {
		t.Errorf("NextDay() on the last date should be a no-op, got %v", got)
	}

	for _, p := range Periods() {
		if got := Max().Next(p); got != Max() {
			t.Errorf("Max().Next(%s) = %v, want Max", p, got)
		}
		if got := Min().Prev(p); got != Min() {
			t.Errorf("Min().Prev(%s) = %v, want Min", p, got)
		}
	}
}

func TestNullIsAbsorbing(t *testing.T) {
	ops := map[string]func(Datetime) Datetime{
		"StartOfDay": Datetime.StartOfDay, "EndOfDay": Datetime.EndOfDay,
		"StartOfWeek": Datetime.StartOfWeek, "EndOfWeek": Datetime.EndOfWeek,
		"StartOfMonth": Datetime.StartOfMonth, "EndOfMonth": Datetime.EndOfMonth,
		"StartOfQuarter": Datetime.StartOfQuarter, "EndOfQuarter": Datetime.EndOfQuarter,
		"StartOfHalfyear": Datetime.StartOfHalfyear, "EndOfHalfyear": Datetime.EndOfHalfyear,
		"StartOfYear": Datetime.StartOfYear, "EndOfYear": Datetime.EndOfYear,
		"NextDay": Datetime.NextDay, "NextWeek": Datetime.NextWeek, "NextMonth": Datetime.NextMonth,
		"NextQuarter": Datetime.NextQuarter, "NextHalfyear": Datetime.NextHalfyear, "NextYear": Datetime.NextYear,
		"PreDay": Datetime.PreDay, "PreWeek": Datetime.PreWeek, "PreMonth": Datetime.PreMonth,
		"PreQuarter": Datetime.PreQuarter, "PreHalfyear": Datetime.PreHalfyear, "PreYear": Datetime.PreYear,
		"DateOfWeek": func(x Datetime) Datetime { return x.DateOfWeek(3) },
		"AddDays":    func(x Datetime) Datetime { return x.AddDays(10) },
	}
	for name, op := range ops {
		if got := op(Null()); !got.IsNull() {
			t.Errorf("%s(Null) = %v, want Null", name, got)
		}
	}
}

func TestWeekContainment(t *testing.T) {
	start := d(t, "2023-12-20")
	for i := 0; i < 21; i++ {
		dt := start.AddDays(i)
		s, e := dt.StartOfWeek(), dt.EndOfWeek()
		if s.DayOfWeek() != 1 || e.DayOfWeek() != 0 {
			t.Fatalf("%v: week %v..%v should run Monday to Sunday", dt, s, e)
		}
		if dt.Before(s) || dt.After(e) {
			t.Errorf("%v outside its week %v..%v", dt, s, e)
		}
		if e.Compare(s.AddDays(6)) != 0 {
			t.Errorf("%v: week %v..%v is not seven days", dt, s, e)
		}
	}
}

func TestDateOfWeek(t *testing.T) {
	wed := d(t, "2023-01-11")
	tests := []struct {
		day  int
		want string
	}{
		{0, "2023-01-08"},
		{1, "2023-01-09"},
		{3, "2023-01-11"},
		{6, "2023-01-14"},
		{-1, "2023-01-08"},
		{10, "2023-01-14"},
	}
	for _, tt := range tests {
		if got, want := wed.DateOfWeek(tt.day), d(t, tt.want); got != want {
			t.Errorf("DateOfWeek(%d) = %v, want %v", tt.day, got, want)
		}
	}

	if wed.DateOfWeek(-1) != wed.DateOfWeek(0) || wed.DateOfWeek(10) != wed.DateOfWeek(6) {
		t.Error("DateOfWeek should clamp its argument")
	}
	if got := Min().DateOfWeek(0); got != Min() {
		t.Errorf("Min().DateOfWeek(0) = %v, want Min", got)
	}
	if got := Max().DateOfWeek(6); got != Max() {
		t.Errorf("Max().DateOfWeek(6) = %v, want Max", got)
	}
}

func TestAddDays(t *testing.T) {
	dt := d(t, "2023-01-31 10:15:00")
	if got, want := dt.AddDays(1), d(t, "2023-02-01 10:15:00"); got != want {
		t.Errorf("AddDays(1) = %v, want %v", got, want)
	}
	if got, want := dt.AddDays(-31), d(t, "2022-12-31 10:15:00"); got != want {
		t.Errorf("AddDays(-31) = %v, want %v", got, want)
	}
	if got := dt.AddDays(5_000_000); got != Max() {
		t.Errorf("AddDays(large) = %v, want Max", got)
	}
	if got := dt.AddDays(-5_000_000); got != Min() {
		t.Errorf("AddDays(-large) = %v, want Min", got)
	}
}

func TestPeriodDispatch(t *testing.T) {
	dt := d(t, "2023-05-17 13:45:00")
	tests := []struct {
		p                      Period
		start, end, next, prev Datetime
	}{
		{Day, dt.StartOfDay(), dt.EndOfDay(), dt.NextDay(), dt.PreDay()},
		{Week, dt.StartOfWeek(), dt.EndOfWeek(), dt.NextWeek(), dt.PreWeek()},
		{Month, dt.StartOfMonth(), dt.EndOfMonth(), dt.NextMonth(), dt.PreMonth()},
		{Quarter, dt.StartOfQuarter(), dt.EndOfQuarter(), dt.NextQuarter(), dt.PreQuarter()},
		{Halfyear, dt.StartOfHalfyear(), dt.EndOfHalfyear(), dt.NextHalfyear(), dt.PreHalfyear()},
		{Year, dt.StartOfYear(), dt.EndOfYear(), dt.NextYear(), dt.PreYear()},
	}
	for _, tt := range tests {
		t.Run(tt.p.String(), func(t *testing.T) {
			if dt.Start(tt.p) != tt.start || dt.End(tt.p) != tt.end ||
				dt.Next(tt.p) != tt.next || dt.Prev(tt.p) != tt.prev {
				t.Errorf("dispatch mismatch for %s", tt.p)
			}
			if dt.Next(tt.p) != dt.End(tt.p).StartOfDay().NextDay() {
				t.Errorf("Next(%s) should follow End(%s)", tt.p, tt.p)
			}
		})
	}
}

func TestParsePeriod(t *testing.T) {
	tests := []struct {
		in   string
		want Period
	}{
		{"day", Day}, {"D", Day}, {"Week", Week}, {"w", Week},
		{"month", Month}, {"M", Month}, {"quarter", Quarter}, {"q", Quarter},
		{"halfyear", Halfyear}, {"half-year", Halfyear}, {"h", Halfyear},
		{" YEAR ", Year}, {"y", Year},
	}
	for _, tt := range tests {
		got, err := ParsePeriod(tt.in)
		if err != nil || got != tt.want {
			t.Errorf("ParsePeriod(%q) = %v, %v, want %v", tt.in, got, err, tt.want)
		}
	}
	if _, err := ParsePeriod("fortnight"); err == nil {
		t.Error("ParsePeriod(fortnight) should fail")
	}

	var p Period
	if err := p.UnmarshalText([]byte("quarter")); err != nil || p != Quarter {
		t.Errorf("UnmarshalText() = %v, %v", p, err)
	}
	if text, _ := Halfyear.MarshalText(); string(text) != "halfyear" {
		t.Errorf("MarshalText() = %s", text)
	}
	if Period(42).String() != "unknown" {
		t.Error("out of range period should print unknown")
	}
}
