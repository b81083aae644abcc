// Package validation checks user input at the CLI boundary before the
// session core is invoked.
package validation

import (
	"fmt"
	"strings"

	"github.com/julianstephens/unstick/internal/clock"
	"github.com/julianstephens/unstick/internal/constants"
	"github.com/julianstephens/unstick/internal/models"
)

// ValidateOutcome checks a raw outcome string against the fixed
// enumeration and returns the typed value.
func ValidateOutcome(raw string) (constants.Outcome, error) {
	outcome := constants.Outcome(strings.TrimSpace(raw))
	if !models.ValidOutcome(outcome) {
		return "", fmt.Errorf("invalid outcome %q (expected one of: %s, %s, %s, %s)",
			raw,
			constants.OutcomeStartedKeptGoing, constants.OutcomeStartedStopped,
			constants.OutcomeDidNotStart, constants.OutcomeStillWorking)
	}
	return outcome, nil
}

// ValidateMinutes checks a requested check-in window. Values outside the
// policy bounds are accepted (the policy clamps them), but nonsense is
// rejected here.
func ValidateMinutes(minutes int) error {
	if minutes <= 0 {
		return fmt.Errorf("minutes must be positive, got %d", minutes)
	}
	return nil
}

// ValidateTimestamp parses a user-supplied timestamp. A zone-less value is
// interpreted as UTC.
func ValidateTimestamp(raw string) error {
	if strings.TrimSpace(raw) == "" {
		return nil
	}
	if _, err := clock.Parse(raw, true); err != nil {
		return err
	}
	return nil
}

// ValidateDescription checks a task description for presence.
func ValidateDescription(description string) error {
	if strings.TrimSpace(description) == "" {
		return fmt.Errorf("task description cannot be empty")
	}
	return nil
}
