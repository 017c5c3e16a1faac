// ============================================================================
// kairos - Market Calendar Timestamps
// ============================================================================
//
// Package:     logging
// Description: Key/value logger used by the service components
// Author:      Mike Stoffels
// Created:     2025-12-06
// License:     MIT
// ============================================================================

package logging

import (
	klog "github.com/msto63/kairos/foundation/core/log"
)

// Level represents log severity
type Level int

const (
	LevelDebug Level = iota
	LevelInfo
	LevelWarn
	LevelError
)

// String returns the string representation of the level
func (l Level) String() string {
	switch l {
	case LevelDebug:
		return "debug"
	case LevelInfo:
		return "info"
	case LevelWarn:
		return "warn"
	case LevelError:
		return "error"
	default:
		return "unknown"
	}
}

func (l Level) foundation() klog.Level {
	switch l {
	case LevelDebug:
		return klog.LevelDebug
	case LevelWarn:
		return klog.LevelWarn
	case LevelError:
		return klog.LevelError
	default:
		return klog.LevelInfo
	}
}

// Logger wraps the Foundation logger with key/value arguments. Loggers
// created by New follow the process-wide level set by Configure or SetLevel,
// also after they were created.
type Logger struct {
	*klog.Logger
	name    string
	dynamic bool
}

// New creates a logger for a named component using the configured defaults
func New(name string) *Logger {
	return &Logger{
		Logger:  NewSimpleLogger(name).WithLevel(klog.LevelTrace),
		name:    name,
		dynamic: true,
	}
}

// Wrap adapts an existing Foundation logger; its own level applies
func Wrap(l *klog.Logger) *Logger {
	return &Logger{Logger: l, name: l.Name()}
}

// WithLevel returns a new logger pinned to the specified level
func (l *Logger) WithLevel(level Level) *Logger {
	return &Logger{Logger: l.Logger.WithLevel(level.foundation()), name: l.name}
}

// With returns a logger that adds the key/value pairs to every entry
func (l *Logger) With(keysAndValues ...interface{}) *Logger {
	return &Logger{Logger: l.Logger.WithFields(toFields(keysAndValues...)), name: l.name, dynamic: l.dynamic}
}

// WithRequestID returns a logger tagged with a request ID
func (l *Logger) WithRequestID(id string) *Logger {
	return &Logger{Logger: l.Logger.WithRequestID(id), name: l.name, dynamic: l.dynamic}
}

// IsLevelEnabled reports whether entries at level are written
func (l *Logger) IsLevelEnabled(level klog.Level) bool {
	if l.dynamic && !level.ShouldLog(currentLevel()) {
		return false
	}
	return l.Logger.IsLevelEnabled(level)
}

// StartTimer starts a timer that logs at completion if debug is enabled
// at start
func (l *Logger) StartTimer(operation string) *klog.Timer {
	if l.dynamic {
		return l.Logger.WithLevel(currentLevel()).StartTimer(operation)
	}
	return l.Logger.StartTimer(operation)
}

// Debug logs a debug message
func (l *Logger) Debug(msg string, keysAndValues ...interface{}) {
	if l.IsLevelEnabled(klog.LevelDebug) {
		l.Logger.Debug(msg, toFields(keysAndValues...))
	}
}

// Info logs an info message
func (l *Logger) Info(msg string, keysAndValues ...interface{}) {
	if l.IsLevelEnabled(klog.LevelInfo) {
		l.Logger.Info(msg, toFields(keysAndValues...))
	}
}

// Warn logs a warning message
func (l *Logger) Warn(msg string, keysAndValues ...interface{}) {
	if l.IsLevelEnabled(klog.LevelWarn) {
		l.Logger.Warn(msg, toFields(keysAndValues...))
	}
}

// Error logs an error message
func (l *Logger) Error(msg string, keysAndValues ...interface{}) {
	if l.IsLevelEnabled(klog.LevelError) {
		l.Logger.Error(msg, toFields(keysAndValues...))
	}
}

// toFields converts key-value pairs to Foundation fields. Non-string keys
// and a trailing key without value are dropped.
func toFields(keysAndValues ...interface{}) klog.Fields {
	if len(keysAndValues) == 0 {
		return nil
	}

	fields := make(klog.Fields)
	for i := 0; i < len(keysAndValues)-1; i += 2 {
		key, ok := keysAndValues[i].(string)
		if !ok {
			continue
		}
		fields[key] = keysAndValues[i+1]
	}
	return fields
}
