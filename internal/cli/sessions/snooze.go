package sessions

import (
	"fmt"
	"time"

	"github.com/julianstephens/unstick/internal/cli"
	"github.com/julianstephens/unstick/internal/clock"
	"github.com/julianstephens/unstick/internal/policy"
	"github.com/julianstephens/unstick/internal/validation"
)

type SnoozeCmd struct {
	ID      string `arg:"" help:"Session ID."`
	Minutes int    `arg:"" help:"Minutes from the session's start (or creation) until the check-in. Clamped to policy bounds."`
}

func (c *SnoozeCmd) Validate() error {
	return validation.ValidateMinutes(c.Minutes)
}

func (c *SnoozeCmd) Run(ctx *cli.Context) error {
	next, err := ctx.Sessions.SetCheckinMinutes(c.ID, c.Minutes)
	if err != nil {
		return err
	}

	if clamped := policy.ClampMinutes(c.Minutes); clamped != c.Minutes {
		fmt.Printf("Note: %dm is outside the allowed window, using %dm\n", c.Minutes, clamped)
	}
	fmt.Printf("Check-in scheduled for %s (%s)\n",
		next.Format(time.RFC3339), policy.ETAText(&next, clock.Now()))
	return nil
}
