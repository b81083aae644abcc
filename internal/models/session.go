package models

import (
	"errors"
	"time"

	"github.com/julianstephens/unstick/internal/constants"
)

// Intake captures how being stuck feels for the user, gathered before an
// intervention is chosen.
type Intake struct {
	PhysicalSensation string `json:"physical_sensation"`
	InternalNarrative string `json:"internal_narrative"`
	EmotionLabel      string `json:"emotion_label"`
}

// Intervention is the advisory payload supplied by the AI collaborator.
// It is stored as-is: the technique is not required to be a member of the
// local hint table, so unknown techniques simply resolve to an empty hint.
type Intervention struct {
	Pattern         constants.Pattern   `json:"pattern"`
	TechniqueID     constants.Technique `json:"technique_id"`
	Message         string              `json:"message"`
	DurationSeconds int                 `json:"duration_seconds"`
}

// Validate checks the advisory payload for presence only.
func (iv Intervention) Validate() error {
	if iv.Pattern == "" || iv.TechniqueID == "" || iv.Message == "" {
		return errors.New("intervention requires pattern, technique_id, and message")
	}
	return nil
}

// Session represents one attempt to start a task, tracked from
// intervention selection through start and subsequent check-ins.
type Session struct {
	ID     string `json:"id"`
	TaskID string `json:"task_id"`

	PhysicalSensation string `json:"physical_sensation,omitempty"`
	InternalNarrative string `json:"internal_narrative,omitempty"`
	EmotionLabel      string `json:"emotion_label,omitempty"`

	Pattern         constants.Pattern   `json:"pattern,omitempty"`
	TechniqueID     constants.Technique `json:"technique_id,omitempty"`
	Message         string              `json:"message,omitempty"`
	DurationSeconds int                 `json:"duration_seconds,omitempty"`

	CreatedAt          time.Time  `json:"created_at"`
	StartedAt          *time.Time `json:"started_at,omitempty"`
	ScheduledCheckinAt *time.Time `json:"scheduled_checkin_at,omitempty"`
}

// Basis returns the reference timestamp from which a check-in offset is
// computed: started_at when the session has been started, created_at
// otherwise.
func (s Session) Basis() time.Time {
	if s.StartedAt != nil {
		return *s.StartedAt
	}
	return s.CreatedAt
}

// CheckinSummary is the most recent check-in surfaced in a detail view.
type CheckinSummary struct {
	Outcome   constants.Outcome `json:"outcome"`
	CreatedAt time.Time         `json:"created_at"`
}

// SessionDetail is a read-only projection of a session for display and
// export.
type SessionDetail struct {
	SessionID          string              `json:"session_id"`
	TaskID             string              `json:"task_id"`
	TaskDescription    string              `json:"task_description"`
	PhysicalSensation  string              `json:"physical_sensation,omitempty"`
	InternalNarrative  string              `json:"internal_narrative,omitempty"`
	EmotionLabel       string              `json:"emotion_label,omitempty"`
	TechniqueID        constants.Technique `json:"technique_id,omitempty"`
	Message            string              `json:"message,omitempty"`
	CreatedAt          time.Time           `json:"created_at"`
	StartedAt          *time.Time          `json:"started_at,omitempty"`
	ScheduledCheckinAt *time.Time          `json:"scheduled_checkin_at,omitempty"`
	Checkin            *CheckinSummary     `json:"checkin,omitempty"`
}
