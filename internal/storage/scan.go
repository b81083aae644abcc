package storage

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/julianstephens/unstick/internal/constants"
	"github.com/julianstephens/unstick/internal/models"
)

const sessionColumns = `SELECT id, task_id, physical_sensation, internal_narrative, emotion_label,
	pattern, technique_id, message, duration_seconds,
	created_at, started_at, scheduled_checkin_at`

// scanner covers both *sql.Row and *sql.Rows
type scanner interface {
	Scan(dest ...any) error
}

// Timestamps are stored as RFC3339 text in sqlite.

func formatTime(t time.Time) string {
	return t.UTC().Format(time.RFC3339Nano)
}

func formatTimePtr(t *time.Time) any {
	if t == nil {
		return nil
	}
	return formatTime(*t)
}

func parseTime(value string) (time.Time, error) {
	t, err := time.Parse(time.RFC3339Nano, value)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid stored timestamp %q: %w", value, err)
	}
	return t.UTC(), nil
}

func parseTimePtr(value sql.NullString) (*time.Time, error) {
	if !value.Valid {
		return nil, nil
	}
	t, err := parseTime(value.String)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

func scanTask(row scanner) (models.Task, error) {
	var t models.Task
	var status, createdAt string
	var lastWorkedOn, deletedAt sql.NullString

	if err := row.Scan(&t.ID, &t.Description, &status, &createdAt, &lastWorkedOn, &deletedAt); err != nil {
		return models.Task{}, err
	}

	t.Status = constants.TaskStatus(status)

	var err error
	if t.CreatedAt, err = parseTime(createdAt); err != nil {
		return models.Task{}, err
	}
	if t.LastWorkedOn, err = parseTimePtr(lastWorkedOn); err != nil {
		return models.Task{}, err
	}
	if t.DeletedAt, err = parseTimePtr(deletedAt); err != nil {
		return models.Task{}, err
	}
	return t, nil
}

func scanSession(row scanner) (models.Session, error) {
	var s models.Session
	var pattern, technique string
	var createdAt string
	var startedAt, scheduledAt sql.NullString

	err := row.Scan(
		&s.ID, &s.TaskID, &s.PhysicalSensation, &s.InternalNarrative, &s.EmotionLabel,
		&pattern, &technique, &s.Message, &s.DurationSeconds,
		&createdAt, &startedAt, &scheduledAt,
	)
	if err != nil {
		return models.Session{}, err
	}

	s.Pattern = constants.Pattern(pattern)
	s.TechniqueID = constants.Technique(technique)

	if s.CreatedAt, err = parseTime(createdAt); err != nil {
		return models.Session{}, err
	}
	if s.StartedAt, err = parseTimePtr(startedAt); err != nil {
		return models.Session{}, err
	}
	if s.ScheduledCheckinAt, err = parseTimePtr(scheduledAt); err != nil {
		return models.Session{}, err
	}
	return s, nil
}

func scanCheckin(row scanner) (models.CheckIn, error) {
	var c models.CheckIn
	var outcome, createdAt string

	if err := row.Scan(&c.ID, &c.SessionID, &outcome, &c.Notes, &c.EmotionAfter, &createdAt); err != nil {
		return models.CheckIn{}, err
	}

	c.Outcome = constants.Outcome(outcome)

	var err error
	if c.CreatedAt, err = parseTime(createdAt); err != nil {
		return models.CheckIn{}, err
	}
	return c, nil
}

func collectSessions(rows *sql.Rows) ([]models.Session, error) {
	var sessions []models.Session
	for rows.Next() {
		session, err := scanSession(rows)
		if err != nil {
			return nil, err
		}
		sessions = append(sessions, session)
	}
	return sessions, rows.Err()
}

func requireRow(res sql.Result, kind, id string) error {
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return fmt.Errorf("%s %s: %w", kind, id, ErrNotFound)
	}
	return nil
}
