// ============================================================================
// kairos - Market Calendar Timestamps
// ============================================================================
//
// Package:     store
// Description: Trading calendar persistence (market holidays)
// Author:      Mike Stoffels
// Created:     2026-10-18
// License:     MIT
// ============================================================================

// Package store persists market holidays keyed by market code and compact
// YYYYMMDD day number.
package store

import (
	"context"
	"strings"

	kerror "github.com/msto63/kairos/foundation/core/error"
	"github.com/msto63/kairos/pkg/datetime"
)

// Holiday is a non-trading day of a market
type Holiday struct {
	Market    string            `json:"market"`
	Day       datetime.Datetime `json:"day"`
	Name      string            `json:"name"`
	CreatedAt datetime.Datetime `json:"created_at"`
}

// Store defines the interface for trading calendar persistence
type Store interface {
	// AddHoliday marks day (time of day ignored) as a holiday of market
	AddHoliday(ctx context.Context, market string, day datetime.Datetime, name string) error
	// RemoveHoliday deletes a holiday; it fails with NOT_FOUND if absent
	RemoveHoliday(ctx context.Context, market string, day datetime.Datetime) error
	// Holidays lists holidays of market with start <= day <= end in day
	// order. A Null end is unbounded.
	Holidays(ctx context.Context, market string, start, end datetime.Datetime) ([]Holiday, error)
	// IsHoliday reports whether day is a holiday of market
	IsHoliday(ctx context.Context, market string, day datetime.Datetime) (bool, error)
	// Markets lists the market codes that have at least one holiday
	Markets(ctx context.Context) ([]string, error)

	Ping(ctx context.Context) error
	Close() error
}

// normalizeMarket trims and upper-cases a market code
func normalizeMarket(op, market string) (string, error) {
	m := strings.ToUpper(strings.TrimSpace(market))
	if m == "" {
		return "", invalid(op, "market code is required")
	}
	if len(m) > 16 {
		return "", invalid(op, "market code too long").WithDetail("market", m)
	}
	return m, nil
}

// dayKey returns the compact YYYYMMDD key of day
func dayKey(op string, day datetime.Datetime) (int64, error) {
	if day.IsNull() {
		return 0, invalid(op, "holiday day must not be Null")
	}
	return int64(day.YMD()), nil
}

// bounds returns the inclusive key range for a listing
func bounds(op string, start, end datetime.Datetime) (lo, hi int64, err error) {
	if start.IsNull() {
		return 0, 0, invalid(op, "range start must not be Null")
	}
	lo = int64(start.YMD())
	hi = int64(datetime.Max().YMD())
	if !end.IsNull() {
		hi = int64(end.YMD())
	}
	return lo, hi, nil
}

func invalid(op, msg string) *kerror.Error {
	return kerror.New(msg).
		WithCode(kerror.CodeInvalidInput).
		WithOperation("store." + op)
}

func notFound(op, market string, key int64) *kerror.Error {
	return kerror.Newf("holiday not found: %s %d", market, key).
		WithCode(kerror.CodeNotFound).
		WithOperation("store." + op).
		WithDetail("market", market)
}

func duplicate(op, market string, key int64) *kerror.Error {
	return kerror.Newf("holiday already exists: %s %d", market, key).
		WithCode(kerror.CodeDuplicateEntry).
		WithOperation("store." + op).
		WithDetail("market", market)
}

func dbError(op string, err error) *kerror.Error {
	return kerror.Wrap(err, "holiday store "+op+" failed").
		WithCode(kerror.CodeDatabaseError).
		WithOperation("store." + op)
}
