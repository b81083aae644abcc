package system

import (
	"fmt"
	"os"

	"github.com/julianstephens/unstick/internal/cli"
	"github.com/julianstephens/unstick/internal/storage"
)

type InitCmd struct {
	Force bool `help:"Force reset by deleting the existing database before initialization."`
}

func (c *InitCmd) Run(ctx *cli.Context) error {
	if c.Force {
		// Force reset only makes sense for the file-backed store.
		if _, ok := ctx.Store.(*storage.SQLiteStore); !ok {
			return fmt.Errorf("--force is only supported for sqlite storage")
		}
		dbPath := ctx.Store.GetConfigPath()
		if _, err := os.Stat(dbPath); err == nil {
			// Close first to prevent file locking issues
			if err := ctx.Store.Close(); err != nil {
				return fmt.Errorf("failed to close existing database: %w", err)
			}
			if err := os.Remove(dbPath); err != nil {
				return fmt.Errorf("failed to delete existing database: %w", err)
			}
			fmt.Printf("Deleted existing database at: %s\n", dbPath)
		} else if !os.IsNotExist(err) {
			return fmt.Errorf("failed to access existing database: %w", err)
		}
	}

	if err := ctx.Store.Init(); err != nil {
		return err
	}
	fmt.Printf("Initialized unstick storage at: %s\n", ctx.Store.GetConfigPath())
	return nil
}
