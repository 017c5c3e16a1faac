// ============================================================================
// kairos - Market Calendar Timestamps
// ============================================================================
//
// Package:     datetime
// Description: Error taxonomy of the datetime value type
// Author:      Mike Stoffels
// Created:     2026-10-18
// License:     MIT
// ============================================================================

package datetime

import (
	"fmt"

	kerror "github.com/msto63/kairos/foundation/core/error"
)

// NullMessage is the message carried by every null-access error.
const NullMessage = "This is Null Datetime!"

// Sentinel errors for errors.Is. Every error returned by this package
// matches exactly one of them.
var (
	// ErrRange reports a numeric field or compact encoding outside its domain.
	ErrRange = kerror.New("value out of range").WithCode(kerror.CodeValueOutOfRange)

	// ErrDate reports an invalid calendar date or time, or unparsable text.
	ErrDate = kerror.New("invalid date").WithCode(kerror.CodeInvalidDate)

	// ErrNull reports a field access on the Null value.
	ErrNull = kerror.New(NullMessage).WithCode(kerror.CodeNullDatetime)
)

func rangeError(op, format string, args ...interface{}) *kerror.Error {
	return kerror.New(fmt.Sprintf(format, args...)).
		WithCode(kerror.CodeValueOutOfRange).
		WithOperation("datetime." + op)
}

func dateError(op, format string, args ...interface{}) *kerror.Error {
	return kerror.New(fmt.Sprintf(format, args...)).
		WithCode(kerror.CodeInvalidDate).
		WithOperation("datetime." + op)
}

func wrapDateError(op string, err error) *kerror.Error {
	return kerror.Wrap(err, "invalid date").
		WithCode(kerror.CodeInvalidDate).
		WithOperation("datetime." + op)
}

func nullError(op string) *kerror.Error {
	return kerror.New(NullMessage).
		WithCode(kerror.CodeNullDatetime).
		WithOperation("datetime." + op)
}
