package system

import (
	"fmt"

	"github.com/julianstephens/unstick/internal/cli"
)

type MigrateCmd struct{}

// migrator is implemented by both stores; migration tolerates a schema
// that Load would reject as out of date.
type migrator interface {
	Migrate(logFn func(string)) (int, error)
}

func (c *MigrateCmd) Run(ctx *cli.Context) error {
	m, ok := ctx.Store.(migrator)
	if !ok {
		return fmt.Errorf("storage backend does not support migrations")
	}
	defer ctx.Store.Close()

	count, err := m.Migrate(func(msg string) {
		fmt.Println(msg)
	})
	if err != nil {
		return fmt.Errorf("migration failed: %w", err)
	}

	if count == 0 {
		fmt.Println("No migrations to apply. Database is up to date.")
	} else {
		fmt.Printf("\nSuccessfully applied %d migration(s).\n", count)
	}
	return nil
}
