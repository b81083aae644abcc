package export

import (
	"fmt"
	"io"

	"github.com/julianstephens/unstick/internal/models"
)

// Record is the exportable view of a session: its detail projection plus
// the full check-in history.
type Record struct {
	Detail   models.SessionDetail `json:"session" yaml:"session"`
	Checkins []models.CheckIn     `json:"checkins,omitempty" yaml:"checkins,omitempty"`
}

// Exporter defines the interface for all export formats
type Exporter interface {
	Export(record *Record, w io.Writer) error
	Extension() string
}

// NewExporter creates a new exporter based on format
func NewExporter(format string) (Exporter, error) {
	switch format {
	case "json":
		return &JSONExporter{}, nil
	case "yaml":
		return &YAMLExporter{}, nil
	case "md", "markdown":
		return &MarkdownExporter{}, nil
	default:
		return nil, fmt.Errorf("unsupported format: %s (supported: json, yaml, md)", format)
	}
}
