// Package policy encodes the business rules for check-in windows,
// independent of persistence.
package policy

import (
	"fmt"
	"time"

	"github.com/julianstephens/unstick/internal/clock"
	"github.com/julianstephens/unstick/internal/constants"
)

// DefaultMinutes returns the default check-in window in minutes.
func DefaultMinutes() int {
	return constants.DefaultCheckinMinutes
}

// ClampMinutes enforces the min/max policy for check-in windows.
func ClampMinutes(value int) int {
	return clock.CoerceIntervalMinutes(value, constants.MinCheckinMinutes, constants.MaxCheckinMinutes)
}

// ScheduleCheckin computes the next check-in timestamp in UTC. If basis is
// nil the current time is used. Minutes are clamped to policy bounds, so
// the result is always between MinCheckinMinutes and MaxCheckinMinutes
// after the basis.
func ScheduleCheckin(basis *time.Time, minutes int) time.Time {
	base := clock.Now()
	if basis != nil {
		base = clock.EnsureUTC(*basis)
	}
	return clock.AddMinutes(base, ClampMinutes(minutes))
}

// IsCheckinDue reports whether a scheduled check-in is due at `now`.
func IsCheckinDue(scheduledAt *time.Time, grace time.Duration, now time.Time) bool {
	return clock.IsPast(scheduledAt, now, grace)
}

// ETAText renders a human-readable time-to-checkin string like "in 15m"
// or "due". An unset schedule yields "unscheduled".
func ETAText(scheduledAt *time.Time, now time.Time) string {
	if scheduledAt == nil {
		return "unscheduled"
	}
	seconds := int(clock.EnsureUTC(*scheduledAt).Sub(clock.EnsureUTC(now)).Seconds())
	if seconds <= 0 {
		return "due"
	}
	return fmt.Sprintf("in %s", clock.HumanizeDelta(seconds))
}
