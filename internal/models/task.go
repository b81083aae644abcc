package models

import (
	"time"

	"github.com/julianstephens/unstick/internal/constants"
)

// Task represents a piece of work the user is stuck on
type Task struct {
	ID           string               `json:"id"`
	Description  string               `json:"description"`
	Status       constants.TaskStatus `json:"status"`
	CreatedAt    time.Time            `json:"created_at"`
	LastWorkedOn *time.Time           `json:"last_worked_on,omitempty"`
	DeletedAt    *time.Time           `json:"deleted_at,omitempty"`
}
