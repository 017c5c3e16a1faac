// ============================================================================
// kairos - Market Calendar Timestamps
// ============================================================================
//
// Package:     datetime
// Description: Text, JSON and database/sql encodings
// Author:      Mike Stoffels
// Created:     2026-10-18
// License:     MIT
// ============================================================================

package datetime

import (
	"database/sql"
	"database/sql/driver"
	"encoding"
	"time"
)

var (
	_ encoding.TextMarshaler   = Datetime{}
	_ encoding.TextUnmarshaler = (*Datetime)(nil)
	_ driver.Valuer            = Datetime{}
	_ sql.Scanner              = (*Datetime)(nil)
)

// MarshalText encodes dt as its String form.
func (dt Datetime) MarshalText() ([]byte, error) {
	return []byte(dt.String()), nil
}

// UnmarshalText decodes any form accepted by Parse. Empty text decodes to Null.
func (dt *Datetime) UnmarshalText(text []byte) error {
	if len(text) == 0 {
		*dt = Datetime{}
		return nil
	}
	v, err := Parse(string(text))
	if err != nil {
		return err
	}
	*dt = v
	return nil
}

// Value stores instants as their String form and Null as SQL NULL.
func (dt Datetime) Value() (driver.Value, error) {
	if !dt.valid {
		return nil, nil
	}
	return dt.String(), nil
}

// Scan reads text, compact integers, time.Time and NULL.
func (dt *Datetime) Scan(src interface{}) error {
	var (
		v   Datetime
		err error
	)
	switch s := src.(type) {
	case nil:
	case string:
		v, err = Parse(s)
	case []byte:
		v, err = Parse(string(s))
	case int64:
		if s < 0 {
			return rangeError("Scan", "negative compact value %d", s)
		}
		v, err = FromNumber(uint64(s))
	case time.Time:
		v, err = FromTime(s)
	default:
		return dateError("Scan", "cannot scan %T into Datetime", src)
	}
	if err != nil {
		return err
	}
	*dt = v
	return nil
}
