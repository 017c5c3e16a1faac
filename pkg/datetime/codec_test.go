package datetime

import (
	"encoding/json"
	"errors"
	"testing"
	"time"
)

func TestTextMarshalling(t *testing.T) {
	type payload struct {
		At    Datetime   `json:"at"`
		Until Datetime   `json:"until"`
		Bars  []Datetime `json:"bars"`
	}

	in := payload{
		At:    d(t, "2023-01-15 08:30:00.5"),
		Until: Null(),
		Bars:  []Datetime{d(t, "2023-01-16"), d(t, "2023-01-17")},
	}
	data, err := json.Marshal(in)
	if err != nil {
		t.Fatalf("json.Marshal() error = %v", err)
	}
	want := `{"at":"2023-01-15 08:30:00.500000","until":"+infinity","bars":["2023-01-16 00:00:00","2023-01-17 00:00:00"]}`
	if string(data) != want {
		t.Errorf("json.Marshal() = %s, want %s", data, want)
	}

	var out payload
	if err := json.Unmarshal(data, &out); err != nil {
		t.Fatalf("json.Unmarshal() error = %v", err)
	}
	if out.At != in.At || out.Until != in.Until || len(out.Bars) != 2 || out.Bars[1] != in.Bars[1] {
		t.Errorf("json round trip = %+v, want %+v", out, in)
	}
}

func TestUnmarshalText(t *testing.T) {
	var dt Datetime
	if err := dt.UnmarshalText([]byte("20230115")); err != nil || dt != d(t, "2023-01-15") {
		t.Errorf("UnmarshalText() = %v, %v", dt, err)
	}
	if err := dt.UnmarshalText(nil); err != nil || !dt.IsNull() {
		t.Errorf("UnmarshalText(empty) = %v, %v, want Null", dt, err)
	}

	dt = d(t, "2023-01-15")
	if err := dt.UnmarshalText([]byte("2023-13-01")); !errors.Is(err, ErrDate) {
		t.Errorf("UnmarshalText(bad) error = %v, want ErrDate", err)
	}
	if dt != d(t, "2023-01-15") {
		t.Error("failed UnmarshalText modified the receiver")
	}
}

func TestSQLValue(t *testing.T) {
	v, err := d(t, "2023-01-15 08:30:00").Value()
	if err != nil || v != "2023-01-15 08:30:00" {
		t.Errorf("Value() = %v, %v", v, err)
	}
	v, err = Null().Value()
	if err != nil || v != nil {
		t.Errorf("Null().Value() = %v, %v, want nil", v, err)
	}
}

func TestSQLScan(t *testing.T) {
	tests := []struct {
		name    string
		src     interface{}
		want    Datetime
		wantErr error
	}{
		{"string", "2023-01-15 08:30:00", d(t, "2023-01-15 08:30:00"), nil},
		{"bytes", []byte("20230115"), d(t, "2023-01-15"), nil},
		{"compact", int64(202301151230), d(t, "2023-01-15 12:30:00"), nil},
		{"time", time.Date(2023, 1, 15, 8, 30, 0, 0, time.UTC), d(t, "2023-01-15 08:30:00"), nil},
		{"nil", nil, Null(), nil},
		{"negative", int64(-1), Null(), ErrRange},
		{"bad string", "yesterday", Null(), ErrDate},
		{"unsupported", 3.14, Null(), ErrDate},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var dt Datetime
			err := dt.Scan(tt.src)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("Scan(%v) error = %v, want %v", tt.src, err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("Scan(%v) unexpected error: %v", tt.src, err)
			}
			if dt != tt.want {
				t.Errorf("Scan(%v) = %v, want %v", tt.src, dt, tt.want)
			}
		})
	}
}
