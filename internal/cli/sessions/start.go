package sessions

import (
	"errors"
	"fmt"
	"time"

	"github.com/julianstephens/unstick/internal/cli"
	"github.com/julianstephens/unstick/internal/clock"
	"github.com/julianstephens/unstick/internal/policy"
	"github.com/julianstephens/unstick/internal/session"
	"github.com/julianstephens/unstick/internal/tui"
	"github.com/julianstephens/unstick/internal/validation"
)

type StartCmd struct {
	ID      string `arg:"" help:"Session ID."`
	At      string `help:"Start timestamp (RFC3339; a zone-less value is read as UTC). Defaults to now."`
	Minutes int    `short:"m" default:"15" help:"Minutes until the first check-in (clamped to policy bounds)."`
	Timer   bool   `help:"Run the intervention countdown after starting."`
}

func (c *StartCmd) Validate() error {
	if err := validation.ValidateMinutes(c.Minutes); err != nil {
		return err
	}
	return validation.ValidateTimestamp(c.At)
}

func (c *StartCmd) Run(ctx *cli.Context) error {
	startedAt := clock.Now()
	if c.At != "" {
		var err error
		startedAt, err = clock.Parse(c.At, true)
		if err != nil {
			return err
		}
	}

	scheduled, err := ctx.Sessions.Start(c.ID, startedAt, c.Minutes)
	if err != nil {
		if errors.Is(err, session.ErrAlreadyStarted) {
			return fmt.Errorf("session %s is already started", c.ID)
		}
		return err
	}

	fmt.Printf("Session started at %s\n", startedAt.Format(time.RFC3339))
	fmt.Printf("Check-in scheduled for %s (%s)\n",
		scheduled.Format(time.RFC3339), policy.ETAText(&scheduled, clock.Now()))

	if c.Timer {
		sess, err := ctx.Store.GetSession(c.ID)
		if err != nil {
			return err
		}
		if err := tui.RunTimer(sess.Message, sess.DurationSeconds); err != nil {
			return err
		}
	}
	return nil
}
