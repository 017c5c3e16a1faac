// File: entry.go
// Title: Log Entry Structure
// Description: Holds a single log message and assembles it from the
//              emitting logger's context.
// Author: Mike Stoffels
// Version: v0.2.0
// Created: 2025-01-24
// Modified: 2026-10-18
//
// Change History:
// - 2025-01-24 v0.1.0: Initial implementation
// - 2026-10-18 v0.2.0: Entries are built from the logger; error code fields

package log

import (
	"time"

	kerror "github.com/msto63/kairos/foundation/core/error"
)

// Entry represents a single log entry with all its metadata
type Entry struct {
	Timestamp time.Time
	Level     Level
	Message   string
	Logger    string
	RequestID string

	Fields Fields
	Error  error

	Duration time.Duration
	Caller   *CallerInfo
}

// CallerInfo contains information about where the log was called from
type CallerInfo struct {
	Function string
	File     string
	Line     int
}

// Fields represents custom key-value pairs for structured logging
type Fields map[string]interface{}

// Clone creates a copy of the Fields
func (f Fields) Clone() Fields {
	if f == nil {
		return nil
	}
	result := make(Fields, len(f))
	for k, v := range f {
		result[k] = v
	}
	return result
}

// NewEntry creates a bare entry with the given level and message
func NewEntry(level Level, message string) *Entry {
	return &Entry{
		Timestamp: time.Now(),
		Level:     level,
		Message:   message,
		Fields:    make(Fields),
	}
}

// newEntry creates an entry carrying l's name, request ID and context
// fields. Later field sets win on conflicts.
func (l *Logger) newEntry(level Level, message string, err error, sets ...Fields) *Entry {
	e := NewEntry(level, message)
	e.Logger = l.name
	e.RequestID = l.requestID
	e.Error = err

	for k, v := range l.contextFields {
		e.Fields[k] = v
	}
	for _, set := range sets {
		for k, v := range set {
			e.Fields[k] = v
		}
	}
	return e
}

// WithCaller adds caller information to the entry
func (e *Entry) WithCaller(function, file string, line int) *Entry {
	e.Caller = &CallerInfo{Function: function, File: file, Line: line}
	return e
}

// errorFields flattens the code, severity, operation and details of a
// kairos error into log fields. Other errors yield nil.
func errorFields(err error) Fields {
	kerr, ok := err.(*kerror.Error)
	if !ok {
		return nil
	}

	fields := Fields{
		"error_code":     kerr.Code(),
		"error_severity": kerr.Severity().String(),
	}
	if op := kerr.Operation(); op != "" {
		fields["error_operation"] = op
	}
	for k, v := range kerr.Details() {
		fields["error_"+k] = v
	}
	return fields
}
