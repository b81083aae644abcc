package session

import (
	"strings"

	"github.com/google/uuid"

	"github.com/julianstephens/unstick/internal/clock"
	"github.com/julianstephens/unstick/internal/constants"
	"github.com/julianstephens/unstick/internal/logger"
	"github.com/julianstephens/unstick/internal/models"
	"github.com/julianstephens/unstick/internal/policy"
)

// baseSuggestions maps each outcome to a short user-facing message.
var baseSuggestions = map[constants.Outcome]string{
	constants.OutcomeStartedKeptGoing: "Great work getting started.",
	constants.OutcomeStartedStopped:   "Nice start. Small steps count.",
	constants.OutcomeDidNotStart:      "That's okay. Want to try again?",
	constants.OutcomeStillWorking:     "Keep going, no pressure. You've got this.",
}

// techniqueHints holds a gentle, technique-specific nudge appended to the
// base suggestion. Techniques outside this table resolve to an empty hint.
var techniqueHints = map[constants.Technique]string{
	constants.TechniquePermissionProtocol: "Keep permission wide open: it's okay to do this imperfectly.",
	constants.TechniqueSingleNextAction:   "Identify the smallest next physical action and do only that.",
	constants.TechniqueChoiceElimination:  "Skip choosing: follow the single next step you defined.",
	constants.TechniqueOneMinuteEntry:     "Commit to one minute; you can stop after that if you want.",
}

// recommendedMinutes maps each outcome to the suggested next check-in
// window. Values are clamped before use so future edits stay in bounds.
var recommendedMinutes = map[constants.Outcome]int{
	constants.OutcomeDidNotStart:      15,
	constants.OutcomeStartedStopped:   20,
	constants.OutcomeStartedKeptGoing: 25,
	constants.OutcomeStillWorking:     30,
}

func recommendMinutes(outcome constants.Outcome) int {
	minutes, ok := recommendedMinutes[outcome]
	if !ok {
		minutes = policy.DefaultMinutes()
	}
	return policy.ClampMinutes(minutes)
}

func techniqueHint(technique constants.Technique) string {
	return techniqueHints[technique]
}

// CheckinInput carries a reported outcome. AutoScheduleNext controls
// whether the session's next check-in is scheduled as a side effect.
type CheckinInput struct {
	Outcome          constants.Outcome
	Notes            string
	EmotionAfter     string
	AutoScheduleNext bool
}

// CreateCheckin validates and records an outcome report, updates the
// task's last-worked-on time when the user engaged with the task at all,
// and computes the recommended next check-in window. Nothing is persisted
// when validation fails.
func (s *Service) CreateCheckin(sessionID string, input CheckinInput) (models.CheckinResult, error) {
	if !models.ValidOutcome(input.Outcome) {
		return models.CheckinResult{}, ErrInvalidOutcome
	}

	session, err := s.store.GetSession(sessionID)
	if err != nil {
		return models.CheckinResult{}, err
	}

	checkin := models.CheckIn{
		ID:           uuid.New().String(),
		SessionID:    session.ID,
		Outcome:      input.Outcome,
		Notes:        input.Notes,
		EmotionAfter: input.EmotionAfter,
		CreatedAt:    clock.Now(),
	}
	if err := s.store.AddCheckin(checkin); err != nil {
		return models.CheckinResult{}, err
	}

	// Any started-like outcome means the user engaged with the task, so
	// the task's last-worked-on moves to the check-in time. did_not_start
	// leaves it untouched.
	if models.Engaged(input.Outcome) {
		task, err := s.store.GetTask(session.TaskID)
		if err != nil {
			return models.CheckinResult{}, err
		}
		worked := checkin.CreatedAt
		task.LastWorkedOn = &worked
		if err := s.store.UpdateTask(task); err != nil {
			return models.CheckinResult{}, err
		}
	}

	suggestion := strings.TrimSpace(baseSuggestions[input.Outcome] + " " + techniqueHint(session.TechniqueID))
	minutes := recommendMinutes(input.Outcome)

	result := models.CheckinResult{
		CheckinID:              checkin.ID,
		Suggestion:             suggestion,
		RecommendedNextMinutes: minutes,
	}

	if input.AutoScheduleNext {
		basis := session.Basis()
		next := policy.ScheduleCheckin(&basis, minutes)
		session.ScheduledCheckinAt = &next
		if err := s.store.UpdateSession(session); err != nil {
			return models.CheckinResult{}, err
		}
		result.ScheduledNextCheckinAt = &next
	}

	logger.Debug("Recorded check-in",
		"session", session.ID, "outcome", input.Outcome, "next_minutes", minutes)
	return result, nil
}
