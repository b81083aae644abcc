package storage

import (
	"database/sql"
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"

	_ "github.com/lib/pq"

	"github.com/julianstephens/unstick/internal/constants"
	"github.com/julianstephens/unstick/internal/migration"
	"github.com/julianstephens/unstick/internal/models"
	"github.com/julianstephens/unstick/migrations"
)

var ErrEmbeddedCredentials = errors.New("connection string must not contain a password")

type PostgresStore struct {
	connStr string
	db      *sql.DB
}

func NewPostgresStore(connStr string) *PostgresStore {
	return &PostgresStore{
		connStr: connStr,
	}
}

// HasEmbeddedCredentials reports whether a URL-style connection string
// carries a password. Credentials belong in the environment, .pgpass, or
// the OS keyring.
func HasEmbeddedCredentials(connStr string) bool {
	u, err := url.Parse(connStr)
	if err != nil {
		return false
	}
	if u.User == nil {
		return false
	}
	_, hasPassword := u.User.Password()
	return hasPassword
}

func (s *PostgresStore) open() error {
	if HasEmbeddedCredentials(s.connStr) {
		return ErrEmbeddedCredentials
	}

	db, err := sql.Open("postgres", s.connStr)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return fmt.Errorf("failed to connect to %s database: %w", constants.AppName, err)
	}
	s.db = db
	return nil
}

func (s *PostgresStore) Init() error {
	if err := s.open(); err != nil {
		return err
	}
	if err := s.runMigrations(); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}
	return nil
}

func (s *PostgresStore) Load() error {
	if s.db != nil {
		return nil
	}
	if err := s.open(); err != nil {
		return err
	}

	migrationFS, err := migrations.Postgres()
	if err != nil {
		return fmt.Errorf("failed to load embedded migrations: %w", err)
	}
	runner := migration.NewRunner(s.db, migrationFS)
	return runner.ValidateVersion()
}

func (s *PostgresStore) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

func (s *PostgresStore) runMigrations() error {
	migrationFS, err := migrations.Postgres()
	if err != nil {
		return fmt.Errorf("failed to load embedded migrations: %w", err)
	}
	runner := migration.NewRunner(s.db, migrationFS)
	_, err = runner.ApplyMigrations(nil)
	return err
}

// Migrate applies pending schema migrations, opening the connection first
// if needed. Unlike Load it tolerates a schema that is behind.
func (s *PostgresStore) Migrate(logFn func(string)) (int, error) {
	if s.db == nil {
		if err := s.open(); err != nil {
			return 0, err
		}
	}
	migrationFS, err := migrations.Postgres()
	if err != nil {
		return 0, fmt.Errorf("failed to load embedded migrations: %w", err)
	}
	return migration.NewRunner(s.db, migrationFS).ApplyMigrations(logFn)
}

func (s *PostgresStore) AddTask(task models.Task) error {
	_, err := s.db.Exec(`
		INSERT INTO tasks (id, description, status, created_at, last_worked_on, deleted_at)
		VALUES ($1, $2, $3, $4, $5, $6)`,
		task.ID, task.Description, task.Status, task.CreatedAt.UTC(),
		nullTime(task.LastWorkedOn), nullTime(task.DeletedAt),
	)
	return err
}

func (s *PostgresStore) GetTask(id string) (models.Task, error) {
	row := s.db.QueryRow(`
		SELECT id, description, status, created_at, last_worked_on, deleted_at
		FROM tasks WHERE id = $1 AND deleted_at IS NULL`, id)

	task, err := scanTaskPG(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.Task{}, fmt.Errorf("task %s: %w", id, ErrNotFound)
		}
		return models.Task{}, err
	}
	return task, nil
}

func (s *PostgresStore) GetAllTasks() ([]models.Task, error) {
	rows, err := s.db.Query(`
		SELECT id, description, status, created_at, last_worked_on, deleted_at
		FROM tasks WHERE deleted_at IS NULL ORDER BY created_at`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var tasks []models.Task
	for rows.Next() {
		task, err := scanTaskPG(rows)
		if err != nil {
			return nil, err
		}
		tasks = append(tasks, task)
	}
	return tasks, rows.Err()
}

func (s *PostgresStore) UpdateTask(task models.Task) error {
	res, err := s.db.Exec(`
		UPDATE tasks SET description = $1, status = $2, last_worked_on = $3, deleted_at = $4
		WHERE id = $5`,
		task.Description, task.Status, nullTime(task.LastWorkedOn), nullTime(task.DeletedAt), task.ID,
	)
	if err != nil {
		return err
	}
	return requireRow(res, "task", task.ID)
}

func (s *PostgresStore) DeleteTask(id string) error {
	res, err := s.db.Exec("UPDATE tasks SET deleted_at = $1 WHERE id = $2 AND deleted_at IS NULL",
		time.Now().UTC(), id)
	if err != nil {
		return err
	}
	return requireRow(res, "task", id)
}

func (s *PostgresStore) AddSession(session models.Session) error {
	_, err := s.db.Exec(`
		INSERT INTO sessions (
			id, task_id, physical_sensation, internal_narrative, emotion_label,
			pattern, technique_id, message, duration_seconds,
			created_at, started_at, scheduled_checkin_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`,
		session.ID, session.TaskID, session.PhysicalSensation, session.InternalNarrative, session.EmotionLabel,
		session.Pattern, session.TechniqueID, session.Message, session.DurationSeconds,
		session.CreatedAt.UTC(), nullTime(session.StartedAt), nullTime(session.ScheduledCheckinAt),
	)
	return err
}

func (s *PostgresStore) GetSession(id string) (models.Session, error) {
	row := s.db.QueryRow(sessionColumns+" FROM sessions WHERE id = $1", id)

	session, err := scanSessionPG(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.Session{}, fmt.Errorf("session %s: %w", id, ErrNotFound)
		}
		return models.Session{}, err
	}
	return session, nil
}

func (s *PostgresStore) UpdateSession(session models.Session) error {
	res, err := s.db.Exec(`
		UPDATE sessions SET started_at = $1, scheduled_checkin_at = $2
		WHERE id = $3`,
		nullTime(session.StartedAt), nullTime(session.ScheduledCheckinAt), session.ID,
	)
	if err != nil {
		return err
	}
	return requireRow(res, "session", session.ID)
}

func (s *PostgresStore) GetRecentSessions(limit int) ([]models.Session, error) {
	rows, err := s.db.Query(sessionColumns+" FROM sessions ORDER BY created_at DESC LIMIT $1", limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectSessionsPG(rows)
}

func (s *PostgresStore) GetScheduledSessions(before time.Time) ([]models.Session, error) {
	rows, err := s.db.Query(sessionColumns+`
		FROM sessions
		WHERE scheduled_checkin_at IS NOT NULL AND scheduled_checkin_at <= $1
		ORDER BY scheduled_checkin_at ASC`,
		before.UTC())
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectSessionsPG(rows)
}

func (s *PostgresStore) AddCheckin(checkin models.CheckIn) error {
	_, err := s.db.Exec(`
		INSERT INTO checkins (id, session_id, outcome, notes, emotion_after, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)`,
		checkin.ID, checkin.SessionID, checkin.Outcome, checkin.Notes, checkin.EmotionAfter,
		checkin.CreatedAt.UTC(),
	)
	return err
}

func (s *PostgresStore) GetCheckins(sessionID string) ([]models.CheckIn, error) {
	rows, err := s.db.Query(`
		SELECT id, session_id, outcome, notes, emotion_after, created_at
		FROM checkins WHERE session_id = $1 ORDER BY created_at ASC`, sessionID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var checkins []models.CheckIn
	for rows.Next() {
		var c models.CheckIn
		var outcome string
		var createdAt time.Time
		if err := rows.Scan(&c.ID, &c.SessionID, &outcome, &c.Notes, &c.EmotionAfter, &createdAt); err != nil {
			return nil, err
		}
		c.Outcome = constants.Outcome(outcome)
		c.CreatedAt = createdAt.UTC()
		checkins = append(checkins, c)
	}
	return checkins, rows.Err()
}

func (s *PostgresStore) GetConfigPath() string {
	// Redact query parameters; the path is only surfaced in diagnostics.
	if i := strings.Index(s.connStr, "?"); i >= 0 {
		return s.connStr[:i]
	}
	return s.connStr
}

func (s *PostgresStore) GetDB() *sql.DB {
	return s.db
}

// Postgres returns TIMESTAMPTZ columns as time.Time, so scanning differs
// from the sqlite text-based helpers.

func nullTime(t *time.Time) sql.NullTime {
	if t == nil {
		return sql.NullTime{}
	}
	return sql.NullTime{Time: t.UTC(), Valid: true}
}

func timePtr(t sql.NullTime) *time.Time {
	if !t.Valid {
		return nil
	}
	utc := t.Time.UTC()
	return &utc
}

func scanTaskPG(row scanner) (models.Task, error) {
	var t models.Task
	var status string
	var createdAt time.Time
	var lastWorkedOn, deletedAt sql.NullTime

	if err := row.Scan(&t.ID, &t.Description, &status, &createdAt, &lastWorkedOn, &deletedAt); err != nil {
		return models.Task{}, err
	}

	t.Status = constants.TaskStatus(status)
	t.CreatedAt = createdAt.UTC()
	t.LastWorkedOn = timePtr(lastWorkedOn)
	t.DeletedAt = timePtr(deletedAt)
	return t, nil
}

func scanSessionPG(row scanner) (models.Session, error) {
	var s models.Session
	var pattern, technique string
	var createdAt time.Time
	var startedAt, scheduledAt sql.NullTime

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
	s.CreatedAt = createdAt.UTC()
	s.StartedAt = timePtr(startedAt)
	s.ScheduledCheckinAt = timePtr(scheduledAt)
	return s, nil
}

func collectSessionsPG(rows *sql.Rows) ([]models.Session, error) {
	var sessions []models.Session
	for rows.Next() {
		session, err := scanSessionPG(rows)
		if err != nil {
			return nil, err
		}
		sessions = append(sessions, session)
	}
	return sessions, rows.Err()
}
