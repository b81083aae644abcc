package sessions

import (
	"fmt"
	"time"

	"github.com/charmbracelet/huh"

	"github.com/julianstephens/unstick/internal/cli"
	"github.com/julianstephens/unstick/internal/constants"
	"github.com/julianstephens/unstick/internal/session"
	"github.com/julianstephens/unstick/internal/validation"
)

type CheckinCmd struct {
	ID       string `arg:"" help:"Session ID."`
	Outcome  string `help:"started_kept_going|started_stopped|did_not_start|still_working (skips the prompt)."`
	Notes    string `help:"Optional notes."`
	Emotion  string `help:"How you feel now."`
	Schedule bool   `default:"true" negatable:"" help:"Schedule the next check-in from the recommendation (--no-schedule to skip)."`
}

func (c *CheckinCmd) Run(ctx *cli.Context) error {
	var outcome constants.Outcome
	if c.Outcome != "" {
		var err error
		outcome, err = validation.ValidateOutcome(c.Outcome)
		if err != nil {
			return err
		}
	} else {
		form := huh.NewForm(
			huh.NewGroup(
				huh.NewSelect[constants.Outcome]().
					Title("How did it go?").
					Options(
						huh.NewOption("I started and kept going", constants.OutcomeStartedKeptGoing),
						huh.NewOption("I started, then stopped", constants.OutcomeStartedStopped),
						huh.NewOption("I didn't start", constants.OutcomeDidNotStart),
						huh.NewOption("I'm still working", constants.OutcomeStillWorking),
					).
					Value(&outcome),
				huh.NewInput().
					Title("Notes (optional)").
					Value(&c.Notes),
				huh.NewInput().
					Title("How do you feel now? (optional)").
					Value(&c.Emotion),
			),
		)
		if err := form.Run(); err != nil {
			return err
		}
	}

	result, err := ctx.Sessions.CreateCheckin(c.ID, session.CheckinInput{
		Outcome:          outcome,
		Notes:            c.Notes,
		EmotionAfter:     c.Emotion,
		AutoScheduleNext: c.Schedule,
	})
	if err != nil {
		return err
	}

	fmt.Println(result.Suggestion)
	fmt.Printf("Recommended next check-in: %dm\n", result.RecommendedNextMinutes)
	if result.ScheduledNextCheckinAt != nil {
		fmt.Printf("Next check-in scheduled for %s\n", result.ScheduledNextCheckinAt.Format(time.RFC3339))
	} else {
		fmt.Printf("To schedule it: unstick session snooze %s %d\n", c.ID, result.RecommendedNextMinutes)
	}
	return nil
}
