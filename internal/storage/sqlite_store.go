package storage

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"

	"github.com/julianstephens/unstick/internal/migration"
	"github.com/julianstephens/unstick/internal/models"
	"github.com/julianstephens/unstick/migrations"
)

type SQLiteStore struct {
	path string
	db   *sql.DB
}

func NewSQLiteStore(path string) *SQLiteStore {
	return &SQLiteStore{
		path: path,
	}
}

func (s *SQLiteStore) Init() error {
	// Create config directory if it doesn't exist
	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0700); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	db, err := sql.Open("sqlite", s.path)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	s.db = db

	if _, err := s.db.Exec("PRAGMA foreign_keys = ON"); err != nil {
		return fmt.Errorf("failed to enable foreign keys: %w", err)
	}

	if err := s.runMigrations(); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	return nil
}

func (s *SQLiteStore) Load() error {
	if s.db != nil {
		return nil
	}

	if _, err := os.Stat(s.path); os.IsNotExist(err) {
		return fmt.Errorf("storage not initialized, run 'unstick init' first")
	}

	db, err := sql.Open("sqlite", s.path)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	s.db = db

	if _, err := s.db.Exec("PRAGMA foreign_keys = ON"); err != nil {
		return fmt.Errorf("failed to enable foreign keys: %w", err)
	}

	// Validate schema version using embedded migrations
	migrationFS, err := migrations.SQLite()
	if err != nil {
		return fmt.Errorf("failed to load embedded migrations: %w", err)
	}
	runner := migration.NewRunner(s.db, migrationFS)
	return runner.ValidateVersion()
}

func (s *SQLiteStore) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

func (s *SQLiteStore) runMigrations() error {
	migrationFS, err := migrations.SQLite()
	if err != nil {
		return fmt.Errorf("failed to load embedded migrations: %w", err)
	}
	runner := migration.NewRunner(s.db, migrationFS)
	_, err = runner.ApplyMigrations(nil)
	return err
}

// Migrate applies pending schema migrations, opening the database first if
// needed. Unlike Load it tolerates a schema that is behind.
func (s *SQLiteStore) Migrate(logFn func(string)) (int, error) {
	if s.db == nil {
		if _, err := os.Stat(s.path); os.IsNotExist(err) {
			return 0, fmt.Errorf("storage not initialized, run 'unstick init' first")
		}
		db, err := sql.Open("sqlite", s.path)
		if err != nil {
			return 0, fmt.Errorf("failed to open database: %w", err)
		}
		s.db = db
		if _, err := s.db.Exec("PRAGMA foreign_keys = ON"); err != nil {
			return 0, fmt.Errorf("failed to enable foreign keys: %w", err)
		}
	}

	migrationFS, err := migrations.SQLite()
	if err != nil {
		return 0, fmt.Errorf("failed to load embedded migrations: %w", err)
	}
	return migration.NewRunner(s.db, migrationFS).ApplyMigrations(logFn)
}

func (s *SQLiteStore) AddTask(task models.Task) error {
	_, err := s.db.Exec(`
		INSERT INTO tasks (id, description, status, created_at, last_worked_on, deleted_at)
		VALUES (?, ?, ?, ?, ?, ?)`,
		task.ID, task.Description, task.Status,
		formatTime(task.CreatedAt), formatTimePtr(task.LastWorkedOn), formatTimePtr(task.DeletedAt),
	)
	return err
}

func (s *SQLiteStore) GetTask(id string) (models.Task, error) {
	row := s.db.QueryRow(`
		SELECT id, description, status, created_at, last_worked_on, deleted_at
		FROM tasks WHERE id = ? AND deleted_at IS NULL`, id)

	task, err := scanTask(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.Task{}, fmt.Errorf("task %s: %w", id, ErrNotFound)
		}
		return models.Task{}, err
	}
	return task, nil
}

func (s *SQLiteStore) GetAllTasks() ([]models.Task, error) {
	rows, err := s.db.Query(`
		SELECT id, description, status, created_at, last_worked_on, deleted_at
		FROM tasks WHERE deleted_at IS NULL ORDER BY created_at`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var tasks []models.Task
	for rows.Next() {
		task, err := scanTask(rows)
		if err != nil {
			return nil, err
		}
		tasks = append(tasks, task)
	}
	return tasks, rows.Err()
}

func (s *SQLiteStore) UpdateTask(task models.Task) error {
	res, err := s.db.Exec(`
		UPDATE tasks SET description = ?, status = ?, last_worked_on = ?, deleted_at = ?
		WHERE id = ?`,
		task.Description, task.Status, formatTimePtr(task.LastWorkedOn), formatTimePtr(task.DeletedAt), task.ID,
	)
	if err != nil {
		return err
	}
	return requireRow(res, "task", task.ID)
}

func (s *SQLiteStore) DeleteTask(id string) error {
	// Soft delete: set deleted_at instead of removing the record. Sessions
	// and check-ins are left in place for history.
	res, err := s.db.Exec("UPDATE tasks SET deleted_at = ? WHERE id = ? AND deleted_at IS NULL",
		formatTime(time.Now().UTC()), id)
	if err != nil {
		return err
	}
	return requireRow(res, "task", id)
}

func (s *SQLiteStore) AddSession(session models.Session) error {
	_, err := s.db.Exec(`
		INSERT INTO sessions (
			id, task_id, physical_sensation, internal_narrative, emotion_label,
			pattern, technique_id, message, duration_seconds,
			created_at, started_at, scheduled_checkin_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		session.ID, session.TaskID, session.PhysicalSensation, session.InternalNarrative, session.EmotionLabel,
		session.Pattern, session.TechniqueID, session.Message, session.DurationSeconds,
		formatTime(session.CreatedAt), formatTimePtr(session.StartedAt), formatTimePtr(session.ScheduledCheckinAt),
	)
	return err
}

func (s *SQLiteStore) GetSession(id string) (models.Session, error) {
	row := s.db.QueryRow(sessionColumns+" FROM sessions WHERE id = ?", id)

	session, err := scanSession(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.Session{}, fmt.Errorf("session %s: %w", id, ErrNotFound)
		}
		return models.Session{}, err
	}
	return session, nil
}

func (s *SQLiteStore) UpdateSession(session models.Session) error {
	res, err := s.db.Exec(`
		UPDATE sessions SET started_at = ?, scheduled_checkin_at = ?
		WHERE id = ?`,
		formatTimePtr(session.StartedAt), formatTimePtr(session.ScheduledCheckinAt), session.ID,
	)
	if err != nil {
		return err
	}
	return requireRow(res, "session", session.ID)
}

func (s *SQLiteStore) GetRecentSessions(limit int) ([]models.Session, error) {
	rows, err := s.db.Query(sessionColumns+" FROM sessions ORDER BY created_at DESC LIMIT ?", limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectSessions(rows)
}

func (s *SQLiteStore) GetScheduledSessions(before time.Time) ([]models.Session, error) {
	rows, err := s.db.Query(sessionColumns+`
		FROM sessions
		WHERE scheduled_checkin_at IS NOT NULL AND scheduled_checkin_at <= ?
		ORDER BY scheduled_checkin_at ASC`,
		formatTime(before))
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectSessions(rows)
}

func (s *SQLiteStore) AddCheckin(checkin models.CheckIn) error {
	_, err := s.db.Exec(`
		INSERT INTO checkins (id, session_id, outcome, notes, emotion_after, created_at)
		VALUES (?, ?, ?, ?, ?, ?)`,
		checkin.ID, checkin.SessionID, checkin.Outcome, checkin.Notes, checkin.EmotionAfter,
		formatTime(checkin.CreatedAt),
	)
	return err
}

func (s *SQLiteStore) GetCheckins(sessionID string) ([]models.CheckIn, error) {
	rows, err := s.db.Query(`
		SELECT id, session_id, outcome, notes, emotion_after, created_at
		FROM checkins WHERE session_id = ? ORDER BY created_at ASC`, sessionID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var checkins []models.CheckIn
	for rows.Next() {
		checkin, err := scanCheckin(rows)
		if err != nil {
			return nil, err
		}
		checkins = append(checkins, checkin)
	}
	return checkins, rows.Err()
}

func (s *SQLiteStore) GetConfigPath() string {
	return s.path
}

func (s *SQLiteStore) GetDB() *sql.DB {
	return s.db
}
