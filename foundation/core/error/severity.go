// File: severity.go
// Title: Error Severity Levels
// Description: Severity levels attached to errors; the logger picks its log
//              level from them.
// Author: msto63
// Version: v0.2.0
// Created: 2025-01-24
// Modified: 2026-10-19

package error

// Severity represents the severity level of an error
type Severity int

const (
	// SeverityLow is a problem with user input that is reported and otherwise harmless
	SeverityLow Severity = iota

	// SeverityMedium is the default for errors without a more specific code
	SeverityMedium

	// SeverityHigh aborts the current run
	SeverityHigh

	// SeverityCritical indicates a bug in texrefs itself
	SeverityCritical
)

// String returns the string representation of the severity level
func (s Severity) String() string {
	switch s {
	case SeverityLow:
		return "low"
	case SeverityMedium:
		return "medium"
	case SeverityHigh:
		return "high"
	case SeverityCritical:
		return "critical"
	default:
		return "unknown"
	}
}

// GetSeverityFromCode determines the severity level for an error code
func GetSeverityFromCode(code Code) Severity {
	switch code {
	case CodeInternal:
		return SeverityCritical
	case CodeMalformedInput, CodeConsistencyError, CodeWriteFailed, CodeDatabaseError:
		return SeverityHigh
	case CodeInvalidInput, CodeNotFound, CodeConfigError, CodeInvalidConfig:
		return SeverityLow
	default:
		return SeverityMedium
	}
}
