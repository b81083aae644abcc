package sessions

import (
	"context"
	"fmt"

	"github.com/charmbracelet/huh"

	"github.com/julianstephens/unstick/internal/advisor"
	"github.com/julianstephens/unstick/internal/cli"
	"github.com/julianstephens/unstick/internal/constants"
	"github.com/julianstephens/unstick/internal/models"
	"github.com/julianstephens/unstick/internal/tui"
)

type NewCmd struct {
	Task      string `arg:"" help:"ID of the task you're stuck on."`
	Sensation string `help:"Physical sensation (skips the prompt)."`
	Narrative string `help:"Internal narrative (skips the prompt)."`
	Emotion   string `help:"Emotion label (skips the prompt)."`
	Timer     bool   `help:"Run the intervention countdown immediately."`
}

func (c *NewCmd) Run(ctx *cli.Context) error {
	task, err := ctx.Store.GetTask(c.Task)
	if err != nil {
		return err
	}

	var adv *advisor.Advisor
	if key, err := cli.ResolveAPIKey(); err == nil {
		adv = advisor.New(key)
	}

	intake := models.Intake{
		PhysicalSensation: c.Sensation,
		InternalNarrative: c.Narrative,
		EmotionLabel:      c.Emotion,
	}
	if intake.PhysicalSensation == "" || intake.InternalNarrative == "" {
		form := huh.NewForm(
			huh.NewGroup(
				huh.NewInput().
					Title("Where do you feel it in your body?").
					Placeholder("tight chest, restless hands...").
					Value(&intake.PhysicalSensation),
				huh.NewInput().
					Title("What's the story in your head?").
					Placeholder("it has to be perfect, I don't know where to start...").
					Value(&intake.InternalNarrative),
			),
		)
		if err := form.Run(); err != nil {
			return err
		}
	}

	req := advisor.Request{
		TaskDescription:   task.Description,
		PhysicalSensation: intake.PhysicalSensation,
		InternalNarrative: intake.InternalNarrative,
	}

	if intake.EmotionLabel == "" {
		labels := advisor.DefaultEmotionLabels()
		if adv != nil {
			labels = adv.EmotionLabels(context.Background(), req)
		}
		prompt := huh.NewSelect[string]().
			Title("Which feels closest?").
			Options(huh.NewOptions(labels...)...).
			Value(&intake.EmotionLabel)
		if err := prompt.Run(); err != nil {
			return err
		}
	}
	req.EmotionLabel = intake.EmotionLabel

	var choice models.Intervention
	if adv != nil {
		choice = adv.Choose(context.Background(), req)
	} else {
		choice = advisor.Fallback(constants.PatternAnxietyDread)
		fmt.Println("No advisor API key found; using a built-in intervention. Set one with 'unstick key set'.")
	}

	session, err := ctx.Sessions.Create(task.ID, intake, choice)
	if err != nil {
		return err
	}

	fmt.Printf("Created session: %s\n\n", session.ID)
	fmt.Printf("%s (%s)\n", cli.TitleStyle.Render(string(choice.TechniqueID)), choice.Pattern)
	fmt.Println(choice.Message)
	if choice.DurationSeconds > 0 {
		fmt.Printf("\nSuggested duration: %ds\n", choice.DurationSeconds)
	}

	if c.Timer && choice.DurationSeconds > 0 {
		if err := tui.RunTimer(choice.Message, choice.DurationSeconds); err != nil {
			return err
		}
	}

	fmt.Printf("\nWhen you begin: unstick session start %s\n", session.ID)
	return nil
}
