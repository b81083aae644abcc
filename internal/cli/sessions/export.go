package sessions

import (
	"fmt"
	"io"
	"os"

	"github.com/julianstephens/unstick/internal/cli"
	"github.com/julianstephens/unstick/internal/export"
)

type ExportCmd struct {
	ID     string `arg:"" help:"Session ID."`
	Format string `short:"f" default:"json" help:"Export format (json|yaml|md)."`
	Output string `short:"o" help:"Output file. Defaults to stdout."`
}

func (c *ExportCmd) Run(ctx *cli.Context) error {
	exporter, err := export.NewExporter(c.Format)
	if err != nil {
		return err
	}

	detail, err := ctx.Sessions.Detail(c.ID)
	if err != nil {
		return err
	}
	checkins, err := ctx.Store.GetCheckins(c.ID)
	if err != nil {
		return err
	}

	record := &export.Record{
		Detail:   detail,
		Checkins: checkins,
	}

	var w io.Writer = os.Stdout
	if c.Output != "" {
		f, err := os.Create(c.Output)
		if err != nil {
			return fmt.Errorf("failed to create output file: %w", err)
		}
		defer f.Close()
		w = f
	}

	if err := exporter.Export(record, w); err != nil {
		return fmt.Errorf("export failed: %w", err)
	}
	if c.Output != "" {
		fmt.Printf("Exported session %s to %s\n", c.ID, c.Output)
	}
	return nil
}
