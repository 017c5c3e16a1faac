// File: codes.go
// Title: Error Code Definitions
// Description: Defines the error codes used across kairos. The datetime codes
//              carry the range/date/null taxonomy of the timestamp type; the
//              remaining codes classify service, storage and configuration
//              failures.
// Author: Mike Stoffels
// Version: v0.2.0
// Created: 2025-01-24
// Modified: 2026-10-18
//
// Change History:
// - 2025-01-24 v0.1.0: Initial implementation with core error codes
// - 2026-10-18 v0.2.0: Datetime taxonomy codes, gRPC mapping

package error

import "google.golang.org/grpc/codes"

// Code represents a structured error code for categorizing errors
type Code string

const (
	// Generic codes
	CodeUnknown      Code = "UNKNOWN"
	CodeInternal     Code = "INTERNAL"
	CodeNotFound     Code = "NOT_FOUND"
	CodeInvalidInput Code = "INVALID_INPUT"
	CodeTimeout      Code = "TIMEOUT"

	// Datetime taxonomy
	CodeValueOutOfRange Code = "VALUE_OUT_OF_RANGE"
	CodeInvalidDate     Code = "INVALID_DATE"
	CodeNullDatetime    Code = "NULL_DATETIME"

	// Storage
	CodeDatabaseError  Code = "DATABASE_ERROR"
	CodeDuplicateEntry Code = "DUPLICATE_ENTRY"

	// Service and network
	CodeServiceUnavailable    Code = "SERVICE_UNAVAILABLE"
	CodeServiceInitialization Code = "SERVICE_INITIALIZATION"
	CodeNetworkError          Code = "NETWORK_ERROR"

	// Configuration
	CodeConfigError   Code = "CONFIG_ERROR"
	CodeMissingConfig Code = "MISSING_CONFIG"
	CodeInvalidConfig Code = "INVALID_CONFIG"
)

// String returns the string representation of the error code
func (c Code) String() string {
	return string(c)
}

// IsValid checks if the error code is a known valid code
func (c Code) IsValid() bool {
	switch c {
	case CodeUnknown, CodeInternal, CodeNotFound, CodeInvalidInput, CodeTimeout,
		CodeValueOutOfRange, CodeInvalidDate, CodeNullDatetime,
		CodeDatabaseError, CodeDuplicateEntry,
		CodeServiceUnavailable, CodeServiceInitialization, CodeNetworkError,
		CodeConfigError, CodeMissingConfig, CodeInvalidConfig:
		return true
	default:
		return false
	}
}

// Category returns the high-level category of the error code
func (c Code) Category() string {
	switch c {
	case CodeValueOutOfRange, CodeInvalidDate, CodeNullDatetime:
		return "datetime"
	case CodeDatabaseError, CodeDuplicateEntry:
		return "database"
	case CodeServiceUnavailable, CodeServiceInitialization, CodeNetworkError:
		return "service"
	case CodeConfigError, CodeMissingConfig, CodeInvalidConfig:
		return "configuration"
	default:
		return "generic"
	}
}

// HTTPStatus returns the appropriate HTTP status code for this error code
func (c Code) HTTPStatus() int {
	switch c {
	case CodeNotFound:
		return 404
	case CodeInvalidInput, CodeValueOutOfRange, CodeInvalidDate:
		return 400
	case CodeNullDatetime, CodeDuplicateEntry:
		return 409
	case CodeTimeout:
		return 408
	case CodeServiceUnavailable, CodeDatabaseError:
		return 503
	default:
		return 500
	}
}

// GRPCCode returns the gRPC status code for this error code
func (c Code) GRPCCode() codes.Code {
	switch c {
	case CodeNotFound:
		return codes.NotFound
	case CodeInvalidInput, CodeInvalidDate:
		return codes.InvalidArgument
	case CodeValueOutOfRange:
		return codes.OutOfRange
	case CodeNullDatetime:
		return codes.FailedPrecondition
	case CodeDuplicateEntry:
		return codes.AlreadyExists
	case CodeTimeout:
		return codes.DeadlineExceeded
	case CodeServiceUnavailable, CodeNetworkError:
		return codes.Unavailable
	default:
		return codes.Internal
	}
}
