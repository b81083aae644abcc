package validation

import (
	"strings"
	"testing"

	"github.com/julianstephens/unstick/internal/constants"
)

func TestValidateOutcome(t *testing.T) {
	valid := []string{
		"started_kept_going",
		"started_stopped",
		"did_not_start",
		"still_working",
		"  still_working  ",
	}
	for _, raw := range valid {
		outcome, err := ValidateOutcome(raw)
		if err != nil {
			t.Errorf("ValidateOutcome(%q) failed: %v", raw, err)
		}
		if outcome == "" {
			t.Errorf("ValidateOutcome(%q) returned empty outcome", raw)
		}
	}

	if _, err := ValidateOutcome("bogus"); err == nil {
		t.Error("expected error for unknown outcome")
	} else if !strings.Contains(err.Error(), string(constants.OutcomeDidNotStart)) {
		t.Errorf("error should list valid outcomes: %v", err)
	}
	if _, err := ValidateOutcome(""); err == nil {
		t.Error("expected error for empty outcome")
	}
}

func TestValidateMinutes(t *testing.T) {
	for _, minutes := range []int{1, 15, 500} {
		if err := ValidateMinutes(minutes); err != nil {
			t.Errorf("ValidateMinutes(%d) failed: %v", minutes, err)
		}
	}
	for _, minutes := range []int{0, -5} {
		if err := ValidateMinutes(minutes); err == nil {
			t.Errorf("ValidateMinutes(%d) should fail", minutes)
		}
	}
}

func TestValidateTimestamp(t *testing.T) {
	valid := []string{
		"",
		"2024-01-15T10:00:00Z",
		"2024-01-15T10:00:00+02:00",
		"2024-01-15T10:00:00",
		"2024-01-15",
	}
	for _, raw := range valid {
		if err := ValidateTimestamp(raw); err != nil {
			t.Errorf("ValidateTimestamp(%q) failed: %v", raw, err)
		}
	}
	if err := ValidateTimestamp("yesterday"); err == nil {
		t.Error("expected error for unparseable timestamp")
	}
}

func TestValidateDescription(t *testing.T) {
	if err := ValidateDescription("write the report"); err != nil {
		t.Errorf("unexpected error: %v", err)
	}
	for _, raw := range []string{"", "   "} {
		if err := ValidateDescription(raw); err == nil {
			t.Errorf("ValidateDescription(%q) should fail", raw)
		}
	}
}
