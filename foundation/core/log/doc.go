// Package log provides structured logging for kairos.
//
// Package: log
// Title: kairos Structured Logging Framework
// Description: This package implements structured logging with contextual
//              fields, log levels, JSON/text/console formats and integration
//              with the kairos error type, whose code and severity are copied
//              into the entry when logged through LogError.
// Author: Mike Stoffels
// Version: v0.2.0
// Created: 2025-01-24
// Modified: 2026-10-18
//
// Change History:
// - 2025-01-24 v0.1.0: Initial implementation with structured logging and error integration
// - 2026-10-18 v0.2.0: Immutable loggers with serialized output
//
// Usage:
//   import klog "github.com/msto63/kairos/foundation/core/log"
//
//   logger := klog.New().
//     WithLevel(klog.LevelInfo).
//     WithField("service", "kairos").
//     WithRequestID("req-123")
//
//   logger.Info("holiday added", klog.Fields{"market": "XNYS", "day": 20231225})
//   logger.ErrorWithErr("store unavailable", err)
//
//   timer := logger.StartTimer("trading_days")
//   // ... query the calendar store
//   timer.Stop()
package log
