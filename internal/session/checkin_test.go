package session

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/julianstephens/unstick/internal/constants"
	"github.com/julianstephens/unstick/internal/models"
)

func TestCreateCheckin_HappyPath(t *testing.T) {
	store := newMemStore()
	svc := New(store)
	seedTask(t, store)

	created, err := svc.Create("task-1", models.Intake{}, validIntervention())
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	startedAt := time.Date(2024, 1, 15, 10, 0, 0, 0, time.UTC)
	scheduled, err := svc.Start(created.ID, startedAt, 15)
	if err != nil {
		t.Fatalf("Start failed: %v", err)
	}
	if want := startedAt.Add(15 * time.Minute); !scheduled.Equal(want) {
		t.Fatalf("expected first check-in at %v, got %v", want, scheduled)
	}

	result, err := svc.CreateCheckin(created.ID, CheckinInput{
		Outcome:          constants.OutcomeStartedKeptGoing,
		AutoScheduleNext: true,
	})
	if err != nil {
		t.Fatalf("CreateCheckin failed: %v", err)
	}

	if result.RecommendedNextMinutes != 25 {
		t.Errorf("expected 25 recommended minutes, got %d", result.RecommendedNextMinutes)
	}
	if result.ScheduledNextCheckinAt == nil {
		t.Fatal("expected next check-in to be scheduled")
	}
	// Next check-in is computed from started_at, not from now.
	if want := startedAt.Add(25 * time.Minute); !result.ScheduledNextCheckinAt.Equal(want) {
		t.Errorf("expected next check-in at %v, got %v", want, result.ScheduledNextCheckinAt)
	}

	stored, _ := store.GetSession(created.ID)
	if !stored.ScheduledCheckinAt.Equal(*result.ScheduledNextCheckinAt) {
		t.Error("scheduled check-in not persisted on the session")
	}

	checkins, _ := store.GetCheckins(created.ID)
	if len(checkins) != 1 {
		t.Fatalf("expected 1 check-in, got %d", len(checkins))
	}
	if checkins[0].Outcome != constants.OutcomeStartedKeptGoing {
		t.Errorf("unexpected outcome %s", checkins[0].Outcome)
	}
}

func TestCreateCheckin_InvalidOutcome(t *testing.T) {
	store := newMemStore()
	svc := New(store)
	seedTask(t, store)
	created, _ := svc.Create("task-1", models.Intake{}, validIntervention())

	_, err := svc.CreateCheckin(created.ID, CheckinInput{Outcome: "bogus"})
	if !errors.Is(err, ErrInvalidOutcome) {
		t.Errorf("expected ErrInvalidOutcome, got %v", err)
	}
	if checkins, _ := store.GetCheckins(created.ID); len(checkins) != 0 {
		t.Error("nothing should be persisted for an invalid outcome")
	}
}

func TestCreateCheckin_RecommendationTable(t *testing.T) {
	cases := []struct {
		outcome constants.Outcome
		minutes int
	}{
		{constants.OutcomeDidNotStart, 15},
		{constants.OutcomeStartedStopped, 20},
		{constants.OutcomeStartedKeptGoing, 25},
		{constants.OutcomeStillWorking, 30},
	}

	startedAt := time.Date(2024, 1, 15, 10, 0, 0, 0, time.UTC)
	for _, tc := range cases {
		store := newMemStore()
		svc := New(store)
		seedTask(t, store)
		created, _ := svc.Create("task-1", models.Intake{}, validIntervention())
		if _, err := svc.Start(created.ID, startedAt, 15); err != nil {
			t.Fatalf("Start failed: %v", err)
		}

		result, err := svc.CreateCheckin(created.ID, CheckinInput{
			Outcome:          tc.outcome,
			AutoScheduleNext: true,
		})
		if err != nil {
			t.Fatalf("CreateCheckin(%s) failed: %v", tc.outcome, err)
		}
		if result.RecommendedNextMinutes != tc.minutes {
			t.Errorf("%s: expected %d minutes, got %d", tc.outcome, tc.minutes, result.RecommendedNextMinutes)
		}
		if result.ScheduledNextCheckinAt == nil {
			t.Fatalf("%s: expected next check-in to be scheduled", tc.outcome)
		}
		if want := startedAt.Add(time.Duration(tc.minutes) * time.Minute); !result.ScheduledNextCheckinAt.Equal(want) {
			t.Errorf("%s: expected next check-in at %v, got %v", tc.outcome, want, result.ScheduledNextCheckinAt)
		}
		stored, _ := store.GetSession(created.ID)
		if !stored.ScheduledCheckinAt.Equal(*result.ScheduledNextCheckinAt) {
			t.Errorf("%s: scheduled check-in not persisted on the session", tc.outcome)
		}
	}
}

func TestCreateCheckin_TaskTouchRule(t *testing.T) {
	cases := []struct {
		outcome constants.Outcome
		touched bool
	}{
		{constants.OutcomeStartedKeptGoing, true},
		{constants.OutcomeStartedStopped, true},
		{constants.OutcomeStillWorking, true},
		{constants.OutcomeDidNotStart, false},
	}

	for _, tc := range cases {
		store := newMemStore()
		svc := New(store)
		seedTask(t, store)
		created, _ := svc.Create("task-1", models.Intake{}, validIntervention())

		if _, err := svc.CreateCheckin(created.ID, CheckinInput{Outcome: tc.outcome}); err != nil {
			t.Fatalf("CreateCheckin(%s) failed: %v", tc.outcome, err)
		}

		task, _ := store.GetTask("task-1")
		if tc.touched && task.LastWorkedOn == nil {
			t.Errorf("%s: expected last_worked_on to be set", tc.outcome)
		}
		if !tc.touched && task.LastWorkedOn != nil {
			t.Errorf("%s: last_worked_on should stay unset", tc.outcome)
		}
	}
}

func TestCreateCheckin_SuggestionIncludesTechniqueHint(t *testing.T) {
	store := newMemStore()
	svc := New(store)
	seedTask(t, store)

	iv := validIntervention()
	iv.TechniqueID = constants.TechniqueOneMinuteEntry
	created, _ := svc.Create("task-1", models.Intake{}, iv)

	result, err := svc.CreateCheckin(created.ID, CheckinInput{Outcome: constants.OutcomeStillWorking})
	if err != nil {
		t.Fatalf("CreateCheckin failed: %v", err)
	}

	if !strings.HasPrefix(result.Suggestion, "Keep going, no pressure. You've got this.") {
		t.Errorf("unexpected base suggestion: %q", result.Suggestion)
	}
	if !strings.Contains(result.Suggestion, "Commit to one minute") {
		t.Errorf("expected technique hint in suggestion: %q", result.Suggestion)
	}
}

func TestCreateCheckin_UnknownTechniqueYieldsBareSuggestion(t *testing.T) {
	store := newMemStore()
	svc := New(store)
	seedTask(t, store)

	iv := validIntervention()
	iv.TechniqueID = "novel_technique"
	created, _ := svc.Create("task-1", models.Intake{}, iv)

	result, err := svc.CreateCheckin(created.ID, CheckinInput{Outcome: constants.OutcomeDidNotStart})
	if err != nil {
		t.Fatalf("CreateCheckin failed: %v", err)
	}
	// No trailing space from an empty hint.
	if result.Suggestion != "That's okay. Want to try again?" {
		t.Errorf("unexpected suggestion: %q", result.Suggestion)
	}
}

func TestCreateCheckin_NoAutoSchedule(t *testing.T) {
	store := newMemStore()
	svc := New(store)
	seedTask(t, store)
	created, _ := svc.Create("task-1", models.Intake{}, validIntervention())

	startedAt := time.Date(2024, 1, 15, 10, 0, 0, 0, time.UTC)
	scheduled, _ := svc.Start(created.ID, startedAt, 15)

	result, err := svc.CreateCheckin(created.ID, CheckinInput{Outcome: constants.OutcomeStartedStopped})
	if err != nil {
		t.Fatalf("CreateCheckin failed: %v", err)
	}
	if result.ScheduledNextCheckinAt != nil {
		t.Error("next check-in should not be scheduled without AutoScheduleNext")
	}

	stored, _ := store.GetSession(created.ID)
	if !stored.ScheduledCheckinAt.Equal(scheduled) {
		t.Error("existing schedule should be untouched")
	}
}

func TestCreateCheckin_UnstartedSessionSchedulesFromCreation(t *testing.T) {
	store := newMemStore()
	svc := New(store)
	seedTask(t, store)
	created, _ := svc.Create("task-1", models.Intake{}, validIntervention())
	stored, _ := store.GetSession(created.ID)

	result, err := svc.CreateCheckin(created.ID, CheckinInput{
		Outcome:          constants.OutcomeDidNotStart,
		AutoScheduleNext: true,
	})
	if err != nil {
		t.Fatalf("CreateCheckin failed: %v", err)
	}
	if result.ScheduledNextCheckinAt == nil {
		t.Fatal("expected next check-in to be scheduled")
	}
	if want := stored.CreatedAt.Add(15 * time.Minute); !result.ScheduledNextCheckinAt.Equal(want) {
		t.Errorf("expected schedule from created_at (%v), got %v", want, result.ScheduledNextCheckinAt)
	}
}
