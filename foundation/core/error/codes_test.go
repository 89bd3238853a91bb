// File: codes_test.go
// Title: Error Code Tests
// Author: msto63
// Created: 2025-01-24
// Modified: 2026-10-19

package error

import "testing"

func TestCode_IsValid(t *testing.T) {
	valid := []Code{
		CodeUnknown, CodeInternal, CodeNotFound, CodeInvalidInput,
		CodeMalformedInput, CodeConsistencyError,
		CodeConfigError, CodeInvalidConfig,
		CodeWriteFailed, CodeDatabaseError,
	}
	for _, c := range valid {
		if !c.IsValid() {
			t.Errorf("%s.IsValid() = false, want true", c)
		}
	}
	if Code("TCOL_SYNTAX").IsValid() {
		t.Error("unknown code reported as valid")
	}
}

func TestCode_Category(t *testing.T) {
	tests := []struct {
		code Code
		want string
	}{
		{CodeMalformedInput, "extraction"},
		{CodeConsistencyError, "extraction"},
		{CodeConfigError, "configuration"},
		{CodeInvalidConfig, "configuration"},
		{CodeWriteFailed, "output"},
		{CodeDatabaseError, "output"},
		{CodeNotFound, "input"},
		{CodeUnknown, "general"},
	}

	for _, tt := range tests {
		t.Run(tt.code.String(), func(t *testing.T) {
			if got := tt.code.Category(); got != tt.want {
				t.Errorf("Category() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestCode_IsFatal(t *testing.T) {
	if !CodeMalformedInput.IsFatal() || !CodeConsistencyError.IsFatal() {
		t.Error("extraction codes must be fatal")
	}
	if CodeWriteFailed.IsFatal() {
		t.Error("CodeWriteFailed.IsFatal() = true, want false")
	}
}

func TestSeverity_String(t *testing.T) {
	tests := []struct {
		s    Severity
		want string
	}{
		{SeverityLow, "low"},
		{SeverityMedium, "medium"},
		{SeverityHigh, "high"},
		{SeverityCritical, "critical"},
		{Severity(42), "unknown"},
	}
	for _, tt := range tests {
		if got := tt.s.String(); got != tt.want {
			t.Errorf("Severity(%d).String() = %v, want %v", tt.s, got, tt.want)
		}
	}
}
