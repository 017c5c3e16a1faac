package error

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"testing"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

func TestNew(t *testing.T) {
	err := New("boom")

	if err.Error() != "boom" {
		t.Errorf("Error() = %q, want %q", err.Error(), "boom")
	}
	if err.Code() != CodeUnknown {
		t.Errorf("Code() = %v, want %v", err.Code(), CodeUnknown)
	}
	if err.Severity() != SeverityMedium {
		t.Errorf("Severity() = %v, want %v", err.Severity(), SeverityMedium)
	}
	if len(err.StackTrace()) == 0 {
		t.Error("StackTrace() should not be empty")
	}
	if err.Timestamp().IsZero() {
		t.Error("Timestamp() should be set")
	}
}

func TestWithCodeSetsSeverity(t *testing.T) {
	tests := []struct {
		code Code
		want Severity
	}{
		{CodeInvalidDate, SeverityLow},
		{CodeDatabaseError, SeverityHigh},
		{CodeServiceUnavailable, SeverityCritical},
		{CodeInternal, SeverityMedium},
	}

	for _, tt := range tests {
		t.Run(string(tt.code), func(t *testing.T) {
			err := New("x").WithCode(tt.code)
			if err.Severity() != tt.want {
				t.Errorf("Severity() = %v, want %v", err.Severity(), tt.want)
			}
		})
	}
}

func TestExplicitSeverityWins(t *testing.T) {
	err := New("x").WithSeverity(SeverityCritical).WithCode(CodeInvalidDate)
	if err.Severity() != SeverityCritical {
		t.Errorf("Severity() = %v, want %v", err.Severity(), SeverityCritical)
	}
}

func TestWrap(t *testing.T) {
	if Wrap(nil, "ctx") != nil {
		t.Fatal("Wrap(nil) should return nil")
	}

	base := New("bad day").WithCode(CodeInvalidDate).WithDetail("input", "2023-02-30")
	wrapped := Wrap(base, "load holiday")

	if wrapped.Error() != "load holiday: bad day" {
		t.Errorf("Error() = %q", wrapped.Error())
	}
	if wrapped.Code() != CodeInvalidDate {
		t.Errorf("Code() = %v, want %v", wrapped.Code(), CodeInvalidDate)
	}
	if wrapped.Details()["input"] != "2023-02-30" {
		t.Errorf("Details() lost inherited detail: %v", wrapped.Details())
	}
	if !errors.Is(wrapped, base) {
		t.Error("errors.Is(wrapped, base) = false, want true")
	}

	plain := Wrap(fmt.Errorf("io"), "read")
	if plain.Code() != CodeUnknown {
		t.Errorf("Code() of wrapped std error = %v, want %v", plain.Code(), CodeUnknown)
	}
}

func TestWrapTruncatesDeepChains(t *testing.T) {
	var err error = New("root").WithCode(CodeDatabaseError)
	for i := 0; i < MaxErrorChainDepth+5; i++ {
		err = fmt.Errorf("layer %d: %w", i, err)
	}
	wrapped := Wrap(err, "top")
	if wrapped.Details()["truncated"] != true {
		t.Errorf("expected truncated detail, got %v", wrapped.Details())
	}
	if wrapped.Code() != CodeDatabaseError {
		t.Errorf("Code() = %v, want %v", wrapped.Code(), CodeDatabaseError)
	}
}

func TestIsByCode(t *testing.T) {
	sentinel := New("range").WithCode(CodeValueOutOfRange)
	other := New("millisecond out of range").WithCode(CodeValueOutOfRange)

	if !errors.Is(other, sentinel) {
		t.Error("errors with equal codes should match")
	}
	if errors.Is(New("a").WithCode(CodeInvalidDate), sentinel) {
		t.Error("errors with different codes should not match")
	}
	if errors.Is(New("a"), New("b")) {
		t.Error("CodeUnknown errors should not match each other")
	}
	if !errors.Is(fmt.Errorf("outer: %w", other), sentinel) {
		t.Error("wrapped error should match through fmt.Errorf")
	}
}

func TestHasCodeAndGetCode(t *testing.T) {
	err := fmt.Errorf("outer: %w", New("x").WithCode(CodeNullDatetime))

	if !HasCode(err, CodeNullDatetime) {
		t.Error("HasCode() = false, want true")
	}
	if HasCode(err, CodeInvalidDate) {
		t.Error("HasCode() = true for wrong code")
	}
	if GetCode(err) != CodeNullDatetime {
		t.Errorf("GetCode() = %v", GetCode(err))
	}
	if GetCode(errors.New("plain")) != CodeUnknown {
		t.Error("GetCode() of plain error should be CodeUnknown")
	}
	if GetSeverity(errors.New("plain")) != SeverityMedium {
		t.Error("GetSeverity() of plain error should be SeverityMedium")
	}
}

func TestGRPCStatus(t *testing.T) {
	tests := []struct {
		code Code
		want codes.Code
	}{
		{CodeInvalidDate, codes.InvalidArgument},
		{CodeValueOutOfRange, codes.OutOfRange},
		{CodeNullDatetime, codes.FailedPrecondition},
		{CodeNotFound, codes.NotFound},
		{CodeDatabaseError, codes.Internal},
	}

	for _, tt := range tests {
		t.Run(string(tt.code), func(t *testing.T) {
			st, ok := status.FromError(New("x").WithCode(tt.code))
			if !ok {
				t.Fatal("status.FromError() ok = false")
			}
			if st.Code() != tt.want {
				t.Errorf("status code = %v, want %v", st.Code(), tt.want)
			}
		})
	}
}

func TestHTTPStatus(t *testing.T) {
	tests := []struct {
		code Code
		want int
	}{
		{CodeInvalidDate, 400},
		{CodeValueOutOfRange, 400},
		{CodeNotFound, 404},
		{CodeNullDatetime, 409},
		{CodeServiceUnavailable, 503},
		{CodeUnknown, 500},
	}
	for _, tt := range tests {
		if got := tt.code.HTTPStatus(); got != tt.want {
			t.Errorf("%s.HTTPStatus() = %d, want %d", tt.code, got, tt.want)
		}
	}
}

func TestCodeCategory(t *testing.T) {
	if CodeInvalidDate.Category() != "datetime" {
		t.Errorf("Category() = %q", CodeInvalidDate.Category())
	}
	if !CodeNullDatetime.IsValid() {
		t.Error("CodeNullDatetime should be valid")
	}
	if Code("BOGUS").IsValid() {
		t.Error("unknown code should be invalid")
	}
}

func TestStringAndJSON(t *testing.T) {
	err := New("bad").
		WithCode(CodeInvalidDate).
		WithOperation("datetime.Parse").
		WithRequestID("req-1").
		WithDetail("input", "x")

	s := err.String()
	for _, want := range []string{"Error: bad", "Code: INVALID_DATE", "Operation: datetime.Parse", "RequestID: req-1", "input=x"} {
		if !strings.Contains(s, want) {
			t.Errorf("String() missing %q:\n%s", want, s)
		}
	}

	data, jerr := json.Marshal(err)
	if jerr != nil {
		t.Fatalf("json.Marshal() error = %v", jerr)
	}
	var m map[string]interface{}
	if jerr := json.Unmarshal(data, &m); jerr != nil {
		t.Fatalf("json.Unmarshal() error = %v", jerr)
	}
	if m["code"] != "INVALID_DATE" || m["operation"] != "datetime.Parse" || m["severity"] != "low" {
		t.Errorf("unexpected JSON: %s", data)
	}
}

func TestSeverity(t *testing.T) {
	if SeverityLow.ShouldAlert() || !SeverityHigh.ShouldAlert() {
		t.Error("ShouldAlert() threshold should be SeverityHigh")
	}
	if Severity(42).String() != "unknown" {
		t.Errorf("String() = %q", Severity(42).String())
	}
}
