package tasks

import (
	"fmt"

	"github.com/julianstephens/unstick/internal/cli"
	"github.com/julianstephens/unstick/internal/clock"
	"github.com/julianstephens/unstick/internal/constants"
)

type TaskListCmd struct {
	All bool `help:"Include done and abandoned tasks."`
}

func (c *TaskListCmd) Run(ctx *cli.Context) error {
	tasks, err := ctx.Store.GetAllTasks()
	if err != nil {
		return fmt.Errorf("failed to get tasks: %w", err)
	}
	if len(tasks) == 0 {
		fmt.Println("No tasks found")
		return nil
	}

	now := clock.Now()
	fmt.Println("Tasks:")
	for _, task := range tasks {
		if !c.All && task.Status != constants.TaskStatusActive {
			continue
		}

		worked := "never worked on"
		if task.LastWorkedOn != nil {
			ago := int(now.Sub(clock.EnsureUTC(*task.LastWorkedOn)).Seconds())
			worked = fmt.Sprintf("worked on %s ago", clock.HumanizeDelta(ago))
		}

		fmt.Printf("  [%s] %s (ID: %s)\n", task.Status, task.Description, task.ID)
		fmt.Printf("      %s\n", worked)
	}

	return nil
}
