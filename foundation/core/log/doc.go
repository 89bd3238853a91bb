// Package log provides structured logging for texrefs.
//
// Package: log
// Title: texrefs Structured Logging
// Description: Leveled, structured logger with JSON, text, console and logfmt
//              output, persistent context fields, a per-run correlation id and
//              timers for measuring extraction runs. Understands the coded
//              errors of foundation/core/error.
// Author: msto63
// Version: v0.2.0
// Created: 2025-01-24
// Modified: 2026-10-19
//
// Change History:
// - 2025-01-24 v0.1.0: Initial implementation with structured logging and error integration
// - 2026-10-19 v0.2.0: Synchronous writer only, sorted text fields, run correlation
//
// Usage:
//
//	logger := log.NewWithConfig(log.Config{
//		Level:  log.LevelInfo,
//		Format: log.FormatText,
//		Output: os.Stderr,
//		Name:   "texrefs",
//	}).WithCorrelationID(runID)
//
//	logger.Info("extraction finished", log.Fields{"records": 42})
//
//	timer := logger.StartTimer("extract")
//	// ... run
//	timer.Stop()
package log
