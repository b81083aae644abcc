package storage

import (
	"errors"
	"time"

	"github.com/julianstephens/unstick/internal/models"
)

// ErrNotFound is returned when a requested record does not exist. The
// session service passes it through unchanged.
var ErrNotFound = errors.New("record not found")

type Provider interface {
	// Lifecycle
	Init() error
	Load() error
	Close() error

	// Tasks
	AddTask(models.Task) error
	GetTask(id string) (models.Task, error)
	GetAllTasks() ([]models.Task, error)
	UpdateTask(models.Task) error
	DeleteTask(id string) error

	// Sessions
	AddSession(models.Session) error
	GetSession(id string) (models.Session, error)
	UpdateSession(models.Session) error
	GetRecentSessions(limit int) ([]models.Session, error)
	// GetScheduledSessions returns sessions whose scheduled check-in time
	// is set and not after `before`, ordered by that time ascending.
	GetScheduledSessions(before time.Time) ([]models.Session, error)

	// Check-ins (append-only)
	AddCheckin(models.CheckIn) error
	GetCheckins(sessionID string) ([]models.CheckIn, error)

	// Utils
	GetConfigPath() string
}
