package models

import (
	"time"

	"github.com/julianstephens/unstick/internal/constants"
)

// CheckIn is a single immutable outcome report against a session.
type CheckIn struct {
	ID           string            `json:"id"`
	SessionID    string            `json:"session_id"`
	Outcome      constants.Outcome `json:"outcome"`
	Notes        string            `json:"notes,omitempty"`
	EmotionAfter string            `json:"emotion_after,omitempty"`
	CreatedAt    time.Time         `json:"created_at"`
}

// ValidOutcome reports whether o is a member of the fixed outcome
// enumeration.
func ValidOutcome(o constants.Outcome) bool {
	switch o {
	case constants.OutcomeStartedKeptGoing,
		constants.OutcomeStartedStopped,
		constants.OutcomeDidNotStart,
		constants.OutcomeStillWorking:
		return true
	default:
		return false
	}
}

// Engaged reports whether the outcome means the user worked on the task at
// all since the last report. This drives the task last-worked-on update.
func Engaged(o constants.Outcome) bool {
	return o == constants.OutcomeStartedKeptGoing ||
		o == constants.OutcomeStartedStopped ||
		o == constants.OutcomeStillWorking
}

// CheckinResult is returned to the caller after a check-in is recorded.
type CheckinResult struct {
	CheckinID              string     `json:"checkin_id"`
	Suggestion             string     `json:"suggestion"`
	RecommendedNextMinutes int        `json:"recommended_next_minutes"`
	ScheduledNextCheckinAt *time.Time `json:"scheduled_next_checkin_at,omitempty"`
}
