package export

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/julianstephens/unstick/internal/constants"
	"github.com/julianstephens/unstick/internal/models"
)

func sampleRecord() *Record {
	created := time.Date(2024, 1, 15, 10, 0, 0, 0, time.UTC)
	started := created.Add(5 * time.Minute)
	scheduled := started.Add(15 * time.Minute)

	return &Record{
		Detail: models.SessionDetail{
			SessionID:          "sess-1",
			TaskID:             "task-1",
			TaskDescription:    "Write the report",
			PhysicalSensation:  "tight chest",
			InternalNarrative:  "it has to be perfect",
			EmotionLabel:       "Perfectionism anxiety",
			TechniqueID:        constants.TechniquePermissionProtocol,
			Message:            "Create it imperfectly.",
			CreatedAt:          created,
			StartedAt:          &started,
			ScheduledCheckinAt: &scheduled,
		},
		Checkins: []models.CheckIn{
			{
				ID:        "chk-1",
				SessionID: "sess-1",
				Outcome:   constants.OutcomeStartedKeptGoing,
				Notes:     "got going after a minute",
				CreatedAt: scheduled,
			},
		},
	}
}

func TestNewExporter(t *testing.T) {
	cases := []struct {
		format string
		ext    string
	}{
		{"json", "json"},
		{"yaml", "yaml"},
		{"md", "md"},
		{"markdown", "md"},
	}
	for _, tc := range cases {
		e, err := NewExporter(tc.format)
		if err != nil {
			t.Errorf("NewExporter(%q) failed: %v", tc.format, err)
			continue
		}
		if e.Extension() != tc.ext {
			t.Errorf("NewExporter(%q).Extension() = %q, want %q", tc.format, e.Extension(), tc.ext)
		}
	}

	if _, err := NewExporter("xml"); err == nil {
		t.Error("expected error for unsupported format")
	}
}

func TestJSONExporter_RoundTrips(t *testing.T) {
	var buf bytes.Buffer
	if err := (&JSONExporter{}).Export(sampleRecord(), &buf); err != nil {
		t.Fatalf("Export failed: %v", err)
	}

	var got Record
	if err := json.Unmarshal(buf.Bytes(), &got); err != nil {
		t.Fatalf("output is not valid JSON: %v", err)
	}
	if got.Detail.SessionID != "sess-1" {
		t.Errorf("expected session id, got %q", got.Detail.SessionID)
	}
	if len(got.Checkins) != 1 || got.Checkins[0].Outcome != constants.OutcomeStartedKeptGoing {
		t.Errorf("check-ins not preserved: %+v", got.Checkins)
	}
}

func TestYAMLExporter(t *testing.T) {
	var buf bytes.Buffer
	if err := (&YAMLExporter{}).Export(sampleRecord(), &buf); err != nil {
		t.Fatalf("Export failed: %v", err)
	}
	out := buf.String()
	if !strings.Contains(out, "session:") {
		t.Errorf("expected session key in YAML output:\n%s", out)
	}
	if !strings.Contains(out, "checkins:") {
		t.Errorf("expected checkins key in YAML output:\n%s", out)
	}
}

func TestMarkdownExporter(t *testing.T) {
	var buf bytes.Buffer
	if err := (&MarkdownExporter{}).Export(sampleRecord(), &buf); err != nil {
		t.Fatalf("Export failed: %v", err)
	}
	out := buf.String()

	for _, want := range []string{
		"# Session sess-1",
		"**Task:** Write the report",
		"## Intake",
		"## Intervention",
		"## Timeline",
		"## Check-ins",
		"started_kept_going",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("expected %q in markdown output:\n%s", want, out)
		}
	}
}

func TestMarkdownExporter_OmitsEmptySections(t *testing.T) {
	record := sampleRecord()
	record.Detail.PhysicalSensation = ""
	record.Detail.InternalNarrative = ""
	record.Detail.EmotionLabel = ""
	record.Checkins = nil

	var buf bytes.Buffer
	if err := (&MarkdownExporter{}).Export(record, &buf); err != nil {
		t.Fatalf("Export failed: %v", err)
	}
	out := buf.String()
	if strings.Contains(out, "## Intake") {
		t.Error("empty intake section should be omitted")
	}
	if strings.Contains(out, "## Check-ins") {
		t.Error("empty check-in section should be omitted")
	}
}
