package cli

import (
	"errors"
	"fmt"

	"github.com/julianstephens/unstick/internal/clock"
	"github.com/julianstephens/unstick/internal/constants"
	"github.com/julianstephens/unstick/internal/logger"
	"github.com/julianstephens/unstick/internal/notifier"
	"github.com/julianstephens/unstick/internal/policy"
	"github.com/julianstephens/unstick/internal/storage"
)

type DashboardCmd struct {
	Notify bool `help:"Send a desktop notification when a check-in is pending."`
}

func (c *DashboardCmd) Run(ctx *Context) error {
	ctx.PerformAutomaticBackup()

	now := clock.Now()

	sessions, err := ctx.Sessions.Recent(constants.RecentSessionLimit)
	if err != nil {
		return fmt.Errorf("failed to load recent sessions: %w", err)
	}

	fmt.Println(TitleStyle.Render("Recent sessions"))
	if len(sessions) == 0 {
		fmt.Println("  No sessions yet. Start one with 'unstick session new <task-id>'.")
	}
	for _, s := range sessions {
		desc := "(task deleted)"
		task, err := ctx.Store.GetTask(s.TaskID)
		if err == nil {
			desc = task.Description
		} else if !errors.Is(err, storage.ErrNotFound) {
			return err
		}

		state := "not started"
		if s.StartedAt != nil {
			state = fmt.Sprintf("started %s", FormatWhen(s.StartedAt))
		}
		eta := policy.ETAText(s.ScheduledCheckinAt, now)

		fmt.Printf("  %s  %s\n", s.ID, desc)
		fmt.Printf("      %s\n", FaintStyle.Render(fmt.Sprintf("%s · check-in %s · technique %s", state, eta, s.TechniqueID)))
	}

	pending, err := ctx.Sessions.PendingCheckin(now)
	if err != nil {
		return fmt.Errorf("failed to compute pending check-in: %w", err)
	}

	fmt.Println()
	if pending == nil {
		fmt.Println("No check-in is due right now.")
		return nil
	}

	fmt.Println(DueStyle.Render(fmt.Sprintf("Check-in due for session %s", pending.ID)))
	fmt.Printf("Record it with: unstick session checkin %s\n", pending.ID)

	if c.Notify {
		text := "Check-in time: how is your task going?"
		if err := notifier.New().Notify(text); err != nil {
			logger.Warn("Failed to send notification", "error", err)
			fmt.Println(FaintStyle.Render("(desktop notification unavailable: " + err.Error() + ")"))
		}
	}
	return nil
}
