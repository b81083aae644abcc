package export

import (
	"io"

	"gopkg.in/yaml.v3"
)

// YAMLExporter exports session records in YAML format
type YAMLExporter struct{}

// Export writes a record as YAML
func (e *YAMLExporter) Export(record *Record, w io.Writer) error {
	enc := yaml.NewEncoder(w)
	defer func() { _ = enc.Close() }()

	return enc.Encode(record)
}

// Extension returns the file extension for this format
func (e *YAMLExporter) Extension() string {
	return "yaml"
}
