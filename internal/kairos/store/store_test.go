package store

import (
	"context"
	"path/filepath"
	"testing"

	kerror "github.com/msto63/kairos/foundation/core/error"
	"github.com/msto63/kairos/pkg/datetime"
)

func newSQLiteStore(t *testing.T) Store {
	t.Helper()
	s, err := NewSQLiteStore(SQLiteConfig{Path: filepath.Join(t.TempDir(), "cal", "calendar.db")})
	if err != nil {
		t.Fatalf("NewSQLiteStore() error = %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func newMemoryStore(t *testing.T) Store {
	return NewMemoryStore()
}

var backends = []struct {
	name string
	open func(t *testing.T) Store
}{
	{"sqlite", newSQLiteStore},
	{"memory", newMemoryStore},
}

func forEachBackend(t *testing.T, fn func(t *testing.T, s Store)) {
	for _, b := range backends {
		t.Run(b.name, func(t *testing.T) {
			fn(t, b.open(t))
		})
	}
}

func TestStore_AddAndList(t *testing.T) {
	forEachBackend(t, func(t *testing.T, s Store) {
		ctx := context.Background()

		days := []struct {
			day  string
			name string
		}{
			{"2023-12-26", "Boxing Day"},
			{"2023-12-25 10:30:00", "Christmas"},
			{"2024-01-01", "New Year"},
		}
		for _, d := range days {
			if err := s.AddHoliday(ctx, "xetr", datetime.MustParse(d.day), d.name); err != nil {
				t.Fatalf("AddHoliday(%s) error = %v", d.day, err)
			}
		}

		got, err := s.Holidays(ctx, "XETR", datetime.MustParse("2023-12-01"), datetime.MustParse("2023-12-31"))
		if err != nil {
			t.Fatalf("Holidays() error = %v", err)
		}
		if len(got) != 2 {
			t.Fatalf("Holidays() len = %d, want 2", len(got))
		}
		if got[0].Day.String() != "2023-12-25 00:00:00" || got[0].Name != "Christmas" {
			t.Errorf("first holiday = %s %q", got[0].Day, got[0].Name)
		}
		if got[1].Day.String() != "2023-12-26 00:00:00" || got[1].Market != "XETR" {
			t.Errorf("second holiday = %s %s", got[1].Market, got[1].Day)
		}
		if got[0].CreatedAt.IsNull() {
			t.Error("CreatedAt should be set")
		}

		all, err := s.Holidays(ctx, "XETR", datetime.Min(), datetime.Null())
		if err != nil {
			t.Fatal(err)
		}
		if len(all) != 3 {
			t.Errorf("unbounded Holidays() len = %d, want 3", len(all))
		}
	})
}

func TestStore_IsHoliday(t *testing.T) {
	forEachBackend(t, func(t *testing.T, s Store) {
		ctx := context.Background()
		if err := s.AddHoliday(ctx, "XNYS", datetime.MustParse("20230704"), "Independence Day"); err != nil {
			t.Fatal(err)
		}

		tests := []struct {
			market string
			day    string
			want   bool
		}{
			{"XNYS", "2023-07-04", true},
			{"xnys", "2023-07-04 15:59:59", true},
			{"XNYS", "2023-07-05", false},
			{"XETR", "2023-07-04", false},
		}
		for _, tt := range tests {
			got, err := s.IsHoliday(ctx, tt.market, datetime.MustParse(tt.day))
			if err != nil {
				t.Fatalf("IsHoliday() error = %v", err)
			}
			if got != tt.want {
				t.Errorf("IsHoliday(%s, %s) = %v, want %v", tt.market, tt.day, got, tt.want)
			}
		}
	})
}

func TestStore_Errors(t *testing.T) {
	forEachBackend(t, func(t *testing.T, s Store) {
		ctx := context.Background()
		day := datetime.MustParse("2023-05-01")
		if err := s.AddHoliday(ctx, "XETR", day, "Labour Day"); err != nil {
			t.Fatal(err)
		}

		tests := []struct {
			name string
			err  error
			want kerror.Code
		}{
			{"duplicate", s.AddHoliday(ctx, "XETR", day.EndOfDay(), "again"), kerror.CodeDuplicateEntry},
			{"null day", s.AddHoliday(ctx, "XETR", datetime.Null(), "never"), kerror.CodeInvalidInput},
			{"empty market", s.AddHoliday(ctx, "  ", day, "x"), kerror.CodeInvalidInput},
			{"remove missing", s.RemoveHoliday(ctx, "XETR", datetime.MustParse("2023-05-02")), kerror.CodeNotFound},
			{"null start", func() error {
				_, err := s.Holidays(ctx, "XETR", datetime.Null(), datetime.Null())
				return err
			}(), kerror.CodeInvalidInput},
		}
		for _, tt := range tests {
			if !kerror.HasCode(tt.err, tt.want) {
				t.Errorf("%s: error = %v, want code %s", tt.name, tt.err, tt.want)
			}
		}
	})
}

func TestStore_Remove(t *testing.T) {
	forEachBackend(t, func(t *testing.T, s Store) {
		ctx := context.Background()
		day := datetime.MustParse("2023-10-03")
		if err := s.AddHoliday(ctx, "XETR", day, "Unity Day"); err != nil {
			t.Fatal(err)
		}
		if err := s.RemoveHoliday(ctx, "XETR", day); err != nil {
			t.Fatalf("RemoveHoliday() error = %v", err)
		}
		if ok, _ := s.IsHoliday(ctx, "XETR", day); ok {
			t.Error("holiday still present after RemoveHoliday()")
		}
	})
}

func TestStore_Markets(t *testing.T) {
	forEachBackend(t, func(t *testing.T, s Store) {
		ctx := context.Background()
		adds := []struct{ market, day string }{
			{"XNYS", "2023-01-02"},
			{"XETR", "2023-01-02"},
			{"XNYS", "2023-01-16"},
		}
		for _, a := range adds {
			if err := s.AddHoliday(ctx, a.market, datetime.MustParse(a.day), ""); err != nil {
				t.Fatal(err)
			}
		}
		markets, err := s.Markets(ctx)
		if err != nil {
			t.Fatal(err)
		}
		if len(markets) != 2 || markets[0] != "XETR" || markets[1] != "XNYS" {
			t.Errorf("Markets() = %v, want [XETR XNYS]", markets)
		}
		if err := s.Ping(ctx); err != nil {
			t.Errorf("Ping() error = %v", err)
		}
	})
}

func TestSQLiteStore_Persists(t *testing.T) {
	path := filepath.Join(t.TempDir(), "calendar.db")
	ctx := context.Background()

	s, err := NewSQLiteStore(SQLiteConfig{Path: path})
	if err != nil {
		t.Fatal(err)
	}
	if err := s.AddHoliday(ctx, "XETR", datetime.MustParse("2024-12-24"), "Christmas Eve"); err != nil {
		t.Fatal(err)
	}
	s.Close()

	reopened, err := NewSQLiteStore(SQLiteConfig{Path: path})
	if err != nil {
		t.Fatal(err)
	}
	defer reopened.Close()

	ok, err := reopened.IsHoliday(ctx, "XETR", datetime.MustParse("2024-12-24"))
	if err != nil || !ok {
		t.Errorf("IsHoliday() after reopen = %v, %v", ok, err)
	}
}
