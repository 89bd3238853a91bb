// File: codes.go
// Title: Error Code Definitions
// Description: Defines the error codes used to classify failures of an
//              extraction run: malformed directive arguments, broken label
//              ordering, and the ambient I/O and configuration failures.
// Author: msto63
// Version: v0.2.0
// Created: 2025-01-24
// Modified: 2026-10-19
//
// Change History:
// - 2025-01-24 v0.1.0: Initial implementation with core error codes
// - 2026-10-19 v0.2.0: Aux extraction codes

package error

// Code represents a structured error code for categorizing errors
type Code string

const (
	// Generic codes
	CodeUnknown      Code = "UNKNOWN"
	CodeInternal     Code = "INTERNAL"
	CodeNotFound     Code = "NOT_FOUND"
	CodeInvalidInput Code = "INVALID_INPUT"

	// Extraction
	CodeMalformedInput   Code = "MALFORMED_INPUT"
	CodeConsistencyError Code = "CONSISTENCY_ERROR"

	// Configuration
	CodeConfigError   Code = "CONFIG_ERROR"
	CodeInvalidConfig Code = "INVALID_CONFIG"

	// Output
	CodeWriteFailed   Code = "WRITE_FAILED"
	CodeDatabaseError Code = "DATABASE_ERROR"
)

// String returns the string representation of the error code
func (c Code) String() string {
	return string(c)
}

// IsValid checks if the error code is a known code
func (c Code) IsValid() bool {
	switch c {
	case CodeUnknown, CodeInternal, CodeNotFound, CodeInvalidInput,
		CodeMalformedInput, CodeConsistencyError,
		CodeConfigError, CodeInvalidConfig,
		CodeWriteFailed, CodeDatabaseError:
		return true
	default:
		return false
	}
}

// Category returns the high-level category of the error code
func (c Code) Category() string {
	switch c {
	case CodeMalformedInput, CodeConsistencyError:
		return "extraction"
	case CodeConfigError, CodeInvalidConfig:
		return "configuration"
	case CodeWriteFailed, CodeDatabaseError:
		return "output"
	case CodeNotFound, CodeInvalidInput:
		return "input"
	default:
		return "general"
	}
}

// IsFatal reports whether an error with this code must abort the whole run.
// Extraction errors are never skipped: a partial reference list is worse
// than none.
func (c Code) IsFatal() bool {
	return c.Category() == "extraction"
}
