package export

import (
	"encoding/json"
	"io"
)

// JSONExporter exports session records in indented JSON format
type JSONExporter struct{}

// Export writes a record as indented JSON
func (e *JSONExporter) Export(record *Record, w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(record)
}

// Extension returns the file extension for this format
func (e *JSONExporter) Extension() string {
	return "json"
}
