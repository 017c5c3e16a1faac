// Package error provides structured error handling for kairos.
//
// Package: error
// Title: kairos Error Handling Framework
// Description: This package implements a structured error type with contextual
//              information, error codes, severities and stack traces. Codes map
//              onto HTTP and gRPC statuses, and errors.Is matches errors that
//              carry the same code, which lets packages publish sentinel values.
// Author: Mike Stoffels
// Version: v0.2.0
// Created: 2025-01-24
// Modified: 2026-10-18
//
// Change History:
// - 2025-01-24 v0.1.0: Initial implementation with contextual errors and codes
// - 2026-10-18 v0.2.0: Datetime codes, code-based matching, gRPC statuses
//
// Usage:
//   import kerror "github.com/msto63/kairos/foundation/core/error"
//
//   // Create a new error with context
//   err := kerror.New("month number is out of range 1..12").
//     WithCode(kerror.CodeInvalidDate).
//     WithDetail("input", "2023-13-01")
//
//   // Wrap an existing error with context
//   wrapped := kerror.Wrap(err, "failed to load holiday").
//     WithOperation("store.AddHoliday")
//
//   // Check error code
//   if kerror.HasCode(wrapped, kerror.CodeInvalidDate) {
//     // Handle bad dates specifically
//   }
package error
