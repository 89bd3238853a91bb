package export

import (
	"context"
	"io"

	"gopkg.in/yaml.v3"

	"github.com/msto63/texrefs/internal/texaux/record"
)

// YAMLExporter writes records as a YAML sequence of mappings
type YAMLExporter struct{}

// Export implements Exporter
func (YAMLExporter) Export(ctx context.Context, w io.Writer, records []record.Record) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if records == nil {
		records = []record.Record{}
	}

	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(records); err != nil {
		return writeFailed(err, "writing YAML output")
	}
	if err := enc.Close(); err != nil {
		return writeFailed(err, "writing YAML output")
	}
	return nil
}
