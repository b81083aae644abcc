package export

import (
	"fmt"
	"io"
	"strings"
	"time"
)

// MarkdownExporter exports session records as a readable markdown summary
type MarkdownExporter struct{}

// Export writes a record as markdown
func (e *MarkdownExporter) Export(record *Record, w io.Writer) error {
	var b strings.Builder

	d := record.Detail
	b.WriteString(fmt.Sprintf("# Session %s\n\n", d.SessionID))
	b.WriteString(fmt.Sprintf("**Task:** %s\n\n", d.TaskDescription))

	if d.PhysicalSensation != "" || d.InternalNarrative != "" || d.EmotionLabel != "" {
		b.WriteString("## Intake\n\n")
		writeField(&b, "Physical sensation", d.PhysicalSensation)
		writeField(&b, "Internal narrative", d.InternalNarrative)
		writeField(&b, "Emotion", d.EmotionLabel)
		b.WriteString("\n")
	}

	if d.TechniqueID != "" || d.Message != "" {
		b.WriteString("## Intervention\n\n")
		writeField(&b, "Technique", string(d.TechniqueID))
		writeField(&b, "Message", d.Message)
		b.WriteString("\n")
	}

	b.WriteString("## Timeline\n\n")
	writeField(&b, "Created", formatTimestamp(&d.CreatedAt))
	writeField(&b, "Started", formatTimestamp(d.StartedAt))
	writeField(&b, "Next check-in", formatTimestamp(d.ScheduledCheckinAt))
	b.WriteString("\n")

	if len(record.Checkins) > 0 {
		b.WriteString("## Check-ins\n\n")
		for _, c := range record.Checkins {
			b.WriteString(fmt.Sprintf("- `%s` %s", c.CreatedAt.UTC().Format(time.RFC3339), c.Outcome))
			if c.Notes != "" {
				b.WriteString(fmt.Sprintf(": %s", c.Notes))
			}
			if c.EmotionAfter != "" {
				b.WriteString(fmt.Sprintf(" (feeling: %s)", c.EmotionAfter))
			}
			b.WriteString("\n")
		}
	}

	_, err := io.WriteString(w, b.String())
	return err
}

// Extension returns the file extension for this format
func (e *MarkdownExporter) Extension() string {
	return "md"
}

func writeField(b *strings.Builder, label, value string) {
	if value == "" {
		return
	}
	b.WriteString(fmt.Sprintf("- **%s:** %s\n", label, value))
}

func formatTimestamp(t *time.Time) string {
	if t == nil {
		return ""
	}
	return t.UTC().Format(time.RFC3339)
}
