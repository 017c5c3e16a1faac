package service

import (
	"strings"

	kerror "github.com/msto63/kairos/foundation/core/error"
	"github.com/msto63/kairos/pkg/datetime"
)

// Edge selects the boundary Align moves to
type Edge int

const (
	EdgeStart Edge = iota
	EdgeEnd
)

// String returns the edge name
func (e Edge) String() string {
	if e == EdgeEnd {
		return "end"
	}
	return "start"
}

// ParseEdge accepts "start"/"end" (or "s"/"e"); empty means start
func ParseEdge(s string) (Edge, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "start", "s", "begin":
		return EdgeStart, nil
	case "end", "e":
		return EdgeEnd, nil
	default:
		return EdgeStart, kerror.Newf("unknown edge %q, want start or end", s).
			WithCode(kerror.CodeInvalidInput).
			WithOperation("service.ParseEdge")
	}
}

// Inspection describes a parsed input
type Inspection struct {
	Input     string               `json:"input"`
	Value     datetime.Datetime    `json:"value"`
	Repr      string               `json:"repr"`
	Number    uint64               `json:"number,string"`
	IsNull    bool                 `json:"is_null"`
	DayOfWeek int                  `json:"day_of_week"`
	DayOfYear int                  `json:"day_of_year"`
	Fields    *datetime.Components `json:"fields,omitempty"`
}

// Inspect describes dt. Day of week and year are -1 for Null.
func Inspect(input string, dt datetime.Datetime) *Inspection {
	in := &Inspection{
		Input:     input,
		Value:     dt,
		Repr:      dt.Repr(),
		Number:    dt.Number(),
		IsNull:    dt.IsNull(),
		DayOfWeek: -1,
		DayOfYear: -1,
	}
	if c, err := dt.Components(); err == nil {
		in.Fields = &c
		in.DayOfWeek = dt.DayOfWeek()
		in.DayOfYear = dt.DayOfYear()
	}
	return in
}

// Bucket is a group of timestamps sharing a period
type Bucket struct {
	Start   datetime.Datetime   `json:"start"`
	End     datetime.Datetime   `json:"end"`
	Members []datetime.Datetime `json:"members"`
}

// Count returns the number of members
func (b Bucket) Count() int {
	return len(b.Members)
}
