// Package session implements the intervention-session lifecycle: creating
// a session for a task, starting it, scheduling check-ins, and recording
// check-in outcomes.
package session

import (
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/julianstephens/unstick/internal/clock"
	"github.com/julianstephens/unstick/internal/logger"
	"github.com/julianstephens/unstick/internal/models"
	"github.com/julianstephens/unstick/internal/policy"
	"github.com/julianstephens/unstick/internal/storage"
)

var (
	// ErrAlreadyStarted is returned when starting a session whose
	// started_at is already set. Starting is not idempotent: a second
	// start is a conflict, never a silent overwrite.
	ErrAlreadyStarted = errors.New("session already started")

	// ErrInvalidOutcome is returned for an outcome outside the fixed
	// enumeration.
	ErrInvalidOutcome = errors.New("invalid outcome")
)

// Service orchestrates session state against a storage provider.
type Service struct {
	store storage.Provider
}

// New creates a session service backed by the given provider.
func New(store storage.Provider) *Service {
	return &Service{store: store}
}

// Create records a new session for a task with the intake answers and the
// advisory payload chosen by the AI collaborator. The payload is checked
// for presence only; its technique need not be in the local hint table.
func (s *Service) Create(taskID string, intake models.Intake, choice models.Intervention) (models.Session, error) {
	if err := choice.Validate(); err != nil {
		return models.Session{}, err
	}

	// Surface a missing task before persisting anything.
	task, err := s.store.GetTask(taskID)
	if err != nil {
		return models.Session{}, err
	}

	session := models.Session{
		ID:                uuid.New().String(),
		TaskID:            task.ID,
		PhysicalSensation: intake.PhysicalSensation,
		InternalNarrative: intake.InternalNarrative,
		EmotionLabel:      intake.EmotionLabel,
		Pattern:           choice.Pattern,
		TechniqueID:       choice.TechniqueID,
		Message:           choice.Message,
		DurationSeconds:   choice.DurationSeconds,
		CreatedAt:         clock.Now(),
	}

	if err := s.store.AddSession(session); err != nil {
		return models.Session{}, err
	}

	logger.Debug("Created session", "session", session.ID, "task", task.ID, "technique", choice.TechniqueID)
	return session, nil
}

// Start marks the session as started and computes its first scheduled
// check-in. It returns ErrAlreadyStarted if started_at is already set.
func (s *Service) Start(sessionID string, startedAt time.Time, minutes int) (time.Time, error) {
	session, err := s.store.GetSession(sessionID)
	if err != nil {
		return time.Time{}, err
	}

	if session.StartedAt != nil {
		return time.Time{}, ErrAlreadyStarted
	}

	started := clock.EnsureUTC(startedAt)
	scheduled := policy.ScheduleCheckin(&started, minutes)

	session.StartedAt = &started
	session.ScheduledCheckinAt = &scheduled

	if err := s.store.UpdateSession(session); err != nil {
		return time.Time{}, err
	}

	logger.Debug("Started session", "session", session.ID, "checkin_at", scheduled)
	return scheduled, nil
}

// SetCheckinMinutes recomputes the scheduled check-in from the session's
// basis instant with the given (clamped) minutes. Valid in any state.
func (s *Service) SetCheckinMinutes(sessionID string, minutes int) (time.Time, error) {
	session, err := s.store.GetSession(sessionID)
	if err != nil {
		return time.Time{}, err
	}

	basis := session.Basis()
	scheduled := policy.ScheduleCheckin(&basis, minutes)
	session.ScheduledCheckinAt = &scheduled

	if err := s.store.UpdateSession(session); err != nil {
		return time.Time{}, err
	}
	return scheduled, nil
}

// Detail returns a read-only projection of the session including the most
// recent check-in, or a nil check-in when none has been recorded.
func (s *Service) Detail(sessionID string) (models.SessionDetail, error) {
	session, err := s.store.GetSession(sessionID)
	if err != nil {
		return models.SessionDetail{}, err
	}

	task, err := s.store.GetTask(session.TaskID)
	if err != nil && !errors.Is(err, storage.ErrNotFound) {
		return models.SessionDetail{}, err
	}

	detail := models.SessionDetail{
		SessionID:          session.ID,
		TaskID:             session.TaskID,
		TaskDescription:    task.Description,
		PhysicalSensation:  session.PhysicalSensation,
		InternalNarrative:  session.InternalNarrative,
		EmotionLabel:       session.EmotionLabel,
		TechniqueID:        session.TechniqueID,
		Message:            session.Message,
		CreatedAt:          session.CreatedAt,
		StartedAt:          session.StartedAt,
		ScheduledCheckinAt: session.ScheduledCheckinAt,
	}

	checkins, err := s.store.GetCheckins(session.ID)
	if err != nil {
		return models.SessionDetail{}, err
	}
	if len(checkins) > 0 {
		last := checkins[len(checkins)-1]
		detail.Checkin = &models.CheckinSummary{
			Outcome:   last.Outcome,
			CreatedAt: last.CreatedAt,
		}
	}

	return detail, nil
}

// Recent returns the most recently created sessions.
func (s *Service) Recent(limit int) ([]models.Session, error) {
	return s.store.GetRecentSessions(limit)
}

// PendingCheckin returns the earliest past-due session that has no
// check-ins yet, or nil when nothing is waiting. Due-ness is computed on
// demand; nothing ever fires on its own.
func (s *Service) PendingCheckin(now time.Time) (*models.Session, error) {
	sessions, err := s.store.GetScheduledSessions(clock.EnsureUTC(now))
	if err != nil {
		return nil, err
	}

	for _, session := range sessions {
		checkins, err := s.store.GetCheckins(session.ID)
		if err != nil {
			return nil, err
		}
		if len(checkins) == 0 {
			pending := session
			return &pending, nil
		}
	}
	return nil, nil
}
