package tasks

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/julianstephens/unstick/internal/cli"
	"github.com/julianstephens/unstick/internal/clock"
	"github.com/julianstephens/unstick/internal/constants"
	"github.com/julianstephens/unstick/internal/models"
	"github.com/julianstephens/unstick/internal/validation"
)

type TaskAddCmd struct {
	Description string `arg:"" help:"What the task is."`
}

func (c *TaskAddCmd) Validate() error {
	return validation.ValidateDescription(c.Description)
}

func (c *TaskAddCmd) Run(ctx *cli.Context) error {
	task := models.Task{
		ID:          uuid.New().String(),
		Description: c.Description,
		Status:      constants.TaskStatusActive,
		CreatedAt:   clock.Now(),
	}

	if err := ctx.Store.AddTask(task); err != nil {
		return err
	}

	fmt.Printf("Added task: %s (ID: %s)\n", task.Description, task.ID)
	return nil
}
