// ============================================================================
// kairos - Market Calendar Timestamps
// ============================================================================
//
// Package:     logging
// Description: Factory functions for creating configured Foundation loggers
// Author:      Mike Stoffels
// Created:     2025-12-06
// License:     MIT
// ============================================================================

package logging

import (
	"fmt"
	"io"
	"os"
	"sync"
	"sync/atomic"

	klog "github.com/msto63/kairos/foundation/core/log"
)

// LoggerConfig holds configuration for creating loggers
type LoggerConfig struct {
	// Service name
	ServiceName string

	// Log level (trace, debug, info, warn, error)
	Level string

	// Output format: "json", "text" or "console" (default: json)
	Format string

	// File, if set, receives log output in addition to stderr
	File string

	// Additional outputs (besides stderr and File)
	AdditionalOutputs []io.Writer
}

// DefaultLoggerConfig returns a default configuration
func DefaultLoggerConfig(serviceName string) LoggerConfig {
	return LoggerConfig{
		ServiceName: serviceName,
		Level:       "info",
		Format:      "json",
	}
}

var (
	defaultsMu sync.RWMutex
	defaults   = LoggerConfig{Level: "info", Format: "json"}
	logFile    *os.File

	// minLevel gates every logger created by New
	minLevel atomic.Int32
)

func init() {
	minLevel.Store(int32(klog.LevelInfo))
}

func currentLevel() klog.Level {
	return klog.Level(minLevel.Load())
}

// SetLevel changes the level of all loggers created by New, including
// existing ones
func SetLevel(level string) error {
	lvl, err := klog.ParseLevel(level)
	if err != nil {
		return err
	}
	defaultsMu.Lock()
	defaults.Level = level
	defaultsMu.Unlock()
	minLevel.Store(int32(lvl))
	return nil
}

// Configure sets the level, format and outputs used by New. It is called
// once at startup after the configuration has been loaded.
func Configure(cfg LoggerConfig) error {
	defaultsMu.Lock()
	defer defaultsMu.Unlock()

	if logFile != nil {
		logFile.Close()
		logFile = nil
	}
	if cfg.File != "" {
		f, err := os.OpenFile(cfg.File, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return fmt.Errorf("open log file: %w", err)
		}
		logFile = f
		cfg.AdditionalOutputs = append(cfg.AdditionalOutputs, f)
	}
	cfg.File = ""
	defaults = cfg

	lvl, err := klog.ParseLevel(cfg.Level)
	if err != nil {
		lvl = klog.LevelInfo
	}
	minLevel.Store(int32(lvl))
	return nil
}

// Shutdown closes the log file opened by Configure, if any
func Shutdown() error {
	defaultsMu.Lock()
	defer defaultsMu.Unlock()
	if logFile == nil {
		return nil
	}
	err := logFile.Close()
	logFile = nil
	defaults.AdditionalOutputs = nil
	return err
}

func currentDefaults() LoggerConfig {
	defaultsMu.RLock()
	defer defaultsMu.RUnlock()
	return defaults
}

// NewLogger creates a new Foundation logger
func NewLogger(cfg LoggerConfig) *klog.Logger {
	level, err := klog.ParseLevel(cfg.Level)
	if err != nil {
		level = klog.LevelInfo
	}
	format, err := klog.ParseFormat(cfg.Format)
	if err != nil {
		format = klog.FormatJSON
	}

	var output io.Writer = os.Stderr
	if len(cfg.AdditionalOutputs) > 0 {
		writers := append([]io.Writer{output}, cfg.AdditionalOutputs...)
		output = io.MultiWriter(writers...)
	}

	return klog.NewWithConfig(klog.Config{
		Level:        level,
		Format:       format,
		Output:       output,
		Name:         cfg.ServiceName,
		EnableCaller: level <= klog.LevelDebug,
		// Logger wrapper adds one frame
		CallerSkipFrames: 1,
	})
}

// NewSimpleLogger creates a logger using the configured defaults
func NewSimpleLogger(serviceName string) *klog.Logger {
	cfg := currentDefaults()
	cfg.ServiceName = serviceName
	return NewLogger(cfg)
}
