// ============================================================================
// kairos - Market Calendar Timestamps
// ============================================================================
//
// Package:     version
// Description: Central version management for the kairos binaries
// Author:      Mike Stoffels
// Created:     2025-12-06
// License:     MIT
// ============================================================================

package version

import (
	"fmt"
	"runtime"
)

// Version constants
const (
	// Platform is the release version of the kairos module
	Platform = "0.3.0"

	// API is the version of the kairos.v1 wire surface
	API = "v1"
)

// Set at build time via -ldflags "-X github.com/msto63/kairos/pkg/core/version.Commit=..."
var (
	Commit    = "dev"
	BuildDate = "unknown"
)

// Info describes the running binary
type Info struct {
	Version   string `json:"version"`
	API       string `json:"api"`
	Commit    string `json:"commit"`
	BuildDate string `json:"build_date"`
	GoVersion string `json:"go_version"`
	Platform  string `json:"platform"`
}

// Get returns the version information of the running binary
func Get() Info {
	return Info{
		Version:   Platform,
		API:       API,
		Commit:    Commit,
		BuildDate: BuildDate,
		GoVersion: runtime.Version(),
		Platform:  runtime.GOOS + "/" + runtime.GOARCH,
	}
}

// String returns a single-line summary
func (i Info) String() string {
	return fmt.Sprintf("kairos %s (api %s, commit %s, built %s, %s %s)",
		i.Version, i.API, i.Commit, i.BuildDate, i.GoVersion, i.Platform)
}
