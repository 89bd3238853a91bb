package export

import (
	"bytes"
	"context"
	"encoding/json"
	"io"

	"github.com/msto63/texrefs/internal/texaux/record"
)

// JSONExporter writes records as a JSON array with one object per line:
//
//	[
//	{"type": "section", "texLabel": "sec:intro", ...},
//	{"type": "cite", "texLabel": "knuth84", "anchor": "cite.knuth84"}
//	]
type JSONExporter struct{}

// Export implements Exporter
func (JSONExporter) Export(ctx context.Context, w io.Writer, records []record.Record) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if _, err := w.Write(EncodeJSON(records)); err != nil {
		return writeFailed(err, "writing JSON output")
	}
	return nil
}

// EncodeJSON returns the JSON array layout of records. The same records
// always encode to the same bytes.
func EncodeJSON(records []record.Record) []byte {
	buf := make([]byte, 0, 2+len(records)*128)
	buf = append(buf, "[\n"...)
	for i, rec := range records {
		buf = rec.AppendJSON(buf)
		if i != len(records)-1 {
			buf = append(buf, ',')
		}
		buf = append(buf, '\n')
	}
	return append(buf, "]\n"...)
}

// WriteValue writes a single JSON value on one line followed by a
// newline, using the same ", " and ": " separators as the record layout.
func WriteValue(w io.Writer, v interface{}) error {
	var b bytes.Buffer
	enc := json.NewEncoder(&b)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return writeFailed(err, "encoding JSON value")
	}
	out := append(spaceSeparators(bytes.TrimSuffix(b.Bytes(), []byte{'\n'})), '\n')
	if _, err := w.Write(out); err != nil {
		return writeFailed(err, "writing JSON value")
	}
	return nil
}

// spaceSeparators inserts a space after every ',' and ':' of compact JSON
// that is not inside a string.
func spaceSeparators(compact []byte) []byte {
	out := make([]byte, 0, len(compact)+len(compact)/4)
	inString, escaped := false, false
	for _, c := range compact {
		out = append(out, c)
		switch {
		case escaped:
			escaped = false
		case inString && c == '\\':
			escaped = true
		case c == '"':
			inString = !inString
		case !inString && (c == ',' || c == ':'):
			out = append(out, ' ')
		}
	}
	return out
}
