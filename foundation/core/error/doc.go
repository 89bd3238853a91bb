// Package error provides the coded error type shared by all texrefs packages.
//
// Package: error
// Title: texrefs Error Handling
// Description: Structured errors carrying a code, a severity, the failing
//              operation and free-form details (line numbers, offsets, paths).
//              Compatible with the standard errors package through Unwrap.
// Author: msto63
// Version: v0.2.0
// Created: 2025-01-24
// Modified: 2026-10-19
//
// Change History:
// - 2025-01-24 v0.1.0: Initial implementation with contextual errors and codes
// - 2026-10-19 v0.2.0: Reduced to the codes used by the aux extractor
//
// Usage:
//
//	err := error.New("missing '}'").
//		WithCode(error.CodeMalformedInput).
//		WithOperation("bracket.Parse").
//		WithDetail("offset", 17)
//
//	if error.HasCode(err, error.CodeMalformedInput) {
//		// abort the run
//	}
package error
