package sessions

import (
	"fmt"

	"github.com/julianstephens/unstick/internal/cli"
	"github.com/julianstephens/unstick/internal/clock"
	"github.com/julianstephens/unstick/internal/policy"
)

type ShowCmd struct {
	ID string `arg:"" help:"Session ID."`
}

func (c *ShowCmd) Run(ctx *cli.Context) error {
	detail, err := ctx.Sessions.Detail(c.ID)
	if err != nil {
		return err
	}

	fmt.Println(cli.TitleStyle.Render("Session " + detail.SessionID))
	fmt.Printf("Task:       %s\n", detail.TaskDescription)
	if detail.EmotionLabel != "" {
		fmt.Printf("Emotion:    %s\n", detail.EmotionLabel)
	}
	if detail.TechniqueID != "" {
		fmt.Printf("Technique:  %s\n", detail.TechniqueID)
	}
	if detail.Message != "" {
		fmt.Printf("Message:    %s\n", detail.Message)
	}
	fmt.Printf("Created:    %s\n", cli.FormatWhen(&detail.CreatedAt))
	fmt.Printf("Started:    %s\n", cli.FormatWhen(detail.StartedAt))
	fmt.Printf("Check-in:   %s (%s)\n",
		cli.FormatWhen(detail.ScheduledCheckinAt),
		policy.ETAText(detail.ScheduledCheckinAt, clock.Now()))

	if detail.Checkin != nil {
		fmt.Printf("Last check-in: %s at %s\n",
			detail.Checkin.Outcome, cli.FormatWhen(&detail.Checkin.CreatedAt))
	} else {
		fmt.Println("Last check-in: none recorded")
	}
	return nil
}
