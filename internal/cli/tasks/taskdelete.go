package tasks

import (
	"fmt"

	"github.com/julianstephens/unstick/internal/cli"
)

type TaskDeleteCmd struct {
	ID string `arg:"" help:"ID of the task to delete."`
}

func (c *TaskDeleteCmd) Run(ctx *cli.Context) error {
	// Soft delete: session and check-in history stays intact.
	if err := ctx.Store.DeleteTask(c.ID); err != nil {
		return err
	}
	fmt.Printf("Deleted task: %s\n", c.ID)
	return nil
}
