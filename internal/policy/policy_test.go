package policy

import (
	"testing"
	"time"

	"github.com/julianstephens/unstick/internal/constants"
)

func TestClampMinutes(t *testing.T) {
	cases := []struct {
		value, want int
	}{
		{1, constants.MinCheckinMinutes},
		{constants.MinCheckinMinutes, constants.MinCheckinMinutes},
		{60, 60},
		{constants.MaxCheckinMinutes, constants.MaxCheckinMinutes},
		{500, constants.MaxCheckinMinutes},
	}
	for _, tc := range cases {
		if got := ClampMinutes(tc.value); got != tc.want {
			t.Errorf("ClampMinutes(%d) = %d, want %d", tc.value, got, tc.want)
		}
	}
}

func TestScheduleCheckin_FromBasis(t *testing.T) {
	basis := time.Date(2024, 1, 15, 10, 0, 0, 0, time.UTC)
	got := ScheduleCheckin(&basis, 15)
	want := time.Date(2024, 1, 15, 10, 15, 0, 0, time.UTC)
	if !got.Equal(want) {
		t.Errorf("expected %v, got %v", want, got)
	}
}

func TestScheduleCheckin_ClampsMinutes(t *testing.T) {
	basis := time.Date(2024, 1, 15, 10, 0, 0, 0, time.UTC)

	got := ScheduleCheckin(&basis, 1)
	if minutes := got.Sub(basis).Minutes(); minutes != float64(constants.MinCheckinMinutes) {
		t.Errorf("expected %d minutes offset, got %v", constants.MinCheckinMinutes, minutes)
	}

	got = ScheduleCheckin(&basis, 500)
	if minutes := got.Sub(basis).Minutes(); minutes != float64(constants.MaxCheckinMinutes) {
		t.Errorf("expected %d minutes offset, got %v", constants.MaxCheckinMinutes, minutes)
	}
}

func TestScheduleCheckin_NilBasisUsesNow(t *testing.T) {
	before := time.Now().UTC()
	got := ScheduleCheckin(nil, 15)
	after := time.Now().UTC()

	if got.Before(before.Add(15 * time.Minute)) {
		t.Errorf("scheduled %v is before now+15m", got)
	}
	if got.After(after.Add(15 * time.Minute)) {
		t.Errorf("scheduled %v is after now+15m", got)
	}
}

func TestScheduleCheckin_AlwaysInFutureOfBasis(t *testing.T) {
	basis := time.Date(2024, 1, 15, 10, 0, 0, 0, time.UTC)
	for _, minutes := range []int{-100, 0, 1, 15, 120, 9999} {
		got := ScheduleCheckin(&basis, minutes)
		offset := got.Sub(basis)
		if offset < time.Duration(constants.MinCheckinMinutes)*time.Minute ||
			offset > time.Duration(constants.MaxCheckinMinutes)*time.Minute {
			t.Errorf("minutes=%d: offset %v outside policy bounds", minutes, offset)
		}
	}
}

func TestIsCheckinDue(t *testing.T) {
	now := time.Date(2024, 1, 15, 10, 30, 0, 0, time.UTC)
	scheduled := time.Date(2024, 1, 15, 10, 15, 0, 0, time.UTC)

	if !IsCheckinDue(&scheduled, 0, now) {
		t.Error("expected check-in to be due")
	}
	if IsCheckinDue(nil, 0, now) {
		t.Error("unscheduled check-in should never be due")
	}
	if IsCheckinDue(&scheduled, 30*time.Minute, now) {
		t.Error("grace window should defer due-ness")
	}
}

func TestETAText(t *testing.T) {
	now := time.Date(2024, 1, 15, 10, 0, 0, 0, time.UTC)

	if got := ETAText(nil, now); got != "unscheduled" {
		t.Errorf("expected \"unscheduled\", got %q", got)
	}

	past := now.Add(-time.Minute)
	if got := ETAText(&past, now); got != "due" {
		t.Errorf("expected \"due\", got %q", got)
	}

	exactly := now
	if got := ETAText(&exactly, now); got != "due" {
		t.Errorf("expected \"due\" at the boundary, got %q", got)
	}

	in17 := now.Add(17 * time.Minute)
	if got := ETAText(&in17, now); got != "in 17m" {
		t.Errorf("expected \"in 17m\", got %q", got)
	}

	in85 := now.Add(85 * time.Minute)
	if got := ETAText(&in85, now); got != "in 1h 25m" {
		t.Errorf("expected \"in 1h 25m\", got %q", got)
	}
}

func TestETAText_ConsistentWithIsCheckinDue(t *testing.T) {
	now := time.Date(2024, 1, 15, 10, 0, 0, 0, time.UTC)
	for _, offset := range []time.Duration{-time.Hour, -time.Second, 0, time.Second, time.Hour} {
		at := now.Add(offset)
		due := IsCheckinDue(&at, 0, now)
		text := ETAText(&at, now)
		if due && text != "due" {
			t.Errorf("offset %v: due but ETA text is %q", offset, text)
		}
		if !due && text == "due" {
			t.Errorf("offset %v: not due but ETA text is \"due\"", offset)
		}
	}
}
