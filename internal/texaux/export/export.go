// ============================================================================
// texrefs - LaTeX Cross-Reference Extractor
// ============================================================================
//
// Package:     export
// Description: Output formats for extracted cross-reference records
// Author:      Mike Stoffels
// Created:     2026-10-19
// License:     MIT
// ============================================================================

// Package export writes extracted records as JSON, YAML or into a SQLite
// database.
package export

import (
	"context"
	"fmt"
	"io"
	"strings"

	mdwerror "github.com/msto63/texrefs/foundation/core/error"
	"github.com/msto63/texrefs/internal/texaux/record"
)

// Format names an output format
type Format string

const (
	FormatJSON   Format = "json"
	FormatYAML   Format = "yaml"
	FormatSQLite Format = "sqlite"
)

// Formats lists all supported output formats
var Formats = []Format{FormatJSON, FormatYAML, FormatSQLite}

// ParseFormat parses a format name, case-insensitive. "" selects JSON.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "json":
		return FormatJSON, nil
	case "yaml", "yml":
		return FormatYAML, nil
	case "sqlite", "sqlite3", "db":
		return FormatSQLite, nil
	default:
		return "", mdwerror.Newf("unknown output format %q (want json, yaml or sqlite)", s).
			WithCode(mdwerror.CodeInvalidInput).
			WithDetail("format", s)
	}
}

// IsStream reports whether the format is written to a byte stream
func (f Format) IsStream() bool {
	return f == FormatJSON || f == FormatYAML
}

// Exporter writes records to a stream
type Exporter interface {
	Export(ctx context.Context, w io.Writer, records []record.Record) error
}

// New returns the stream exporter for format. SQLite output goes through
// Store instead.
func New(format Format) (Exporter, error) {
	switch format {
	case FormatJSON:
		return JSONExporter{}, nil
	case FormatYAML:
		return YAMLExporter{}, nil
	default:
		return nil, mdwerror.Newf("format %q cannot be written to a stream", format).
			WithCode(mdwerror.CodeInvalidInput)
	}
}

func writeFailed(err error, format string, args ...interface{}) *mdwerror.Error {
	return mdwerror.Wrap(err, fmt.Sprintf(format, args...)).
		WithCode(mdwerror.CodeWriteFailed).
		WithOperation("export")
}
