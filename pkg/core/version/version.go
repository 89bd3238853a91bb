// ============================================================================
// texrefs - LaTeX Cross-Reference Extractor
// ============================================================================
//
// Package:     version
// Description: Version and build information
// Author:      Mike Stoffels
// Created:     2026-10-19
// License:     MIT
// ============================================================================

package version

import (
	"fmt"
	"runtime"
)

// Version is the released version of texrefs
const Version = "1.0.0"

// Set at build time via -ldflags "-X github.com/msto63/texrefs/pkg/core/version.Commit=..."
var (
	Commit    = "none"
	BuildDate = "unknown"
)

// BuildInfo describes the running binary
type BuildInfo struct {
	Version   string `json:"version"`
	Commit    string `json:"commit"`
	BuildDate string `json:"build_date"`
	GoVersion string `json:"go_version"`
	Platform  string `json:"platform"`
}

// Info returns the build information of the running binary
func Info() BuildInfo {
	return BuildInfo{
		Version:   Version,
		Commit:    Commit,
		BuildDate: BuildDate,
		GoVersion: runtime.Version(),
		Platform:  runtime.GOOS + "/" + runtime.GOARCH,
	}
}

// String returns a one-line version description
func (b BuildInfo) String() string {
	return fmt.Sprintf("texrefs %s (commit %s, built %s, %s %s)",
		b.Version, b.Commit, b.BuildDate, b.GoVersion, b.Platform)
}
