// Package clock provides timezone-safe time arithmetic for check-in
// scheduling. All values produced here are in UTC.
package clock

import (
	"errors"
	"fmt"
	"time"
)

// ErrNaiveTimestamp is returned when a timestamp string carries no zone
// offset and the caller did not allow it to be interpreted as UTC.
var ErrNaiveTimestamp = errors.New("naive timestamp without assumed zone")

// naiveLayouts are accepted for zone-less timestamps (the "naive" case).
var naiveLayouts = []string{
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02T15:04",
	"2006-01-02",
}

// Now returns the current instant in UTC.
func Now() time.Time {
	return time.Now().UTC()
}

// EnsureUTC normalizes an instant to UTC.
func EnsureUTC(t time.Time) time.Time {
	return t.UTC()
}

// Parse parses a timestamp string into a UTC instant. RFC3339 timestamps
// are always accepted. A timestamp without a zone offset is interpreted as
// UTC when assumeUTC is true; otherwise ErrNaiveTimestamp is returned.
func Parse(value string, assumeUTC bool) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, value); err == nil {
		return t.UTC(), nil
	}

	for _, layout := range naiveLayouts {
		t, err := time.ParseInLocation(layout, value, time.UTC)
		if err != nil {
			continue
		}
		if !assumeUTC {
			return time.Time{}, ErrNaiveTimestamp
		}
		return t, nil
	}

	return time.Time{}, fmt.Errorf("invalid timestamp %q", value)
}

// AddMinutes returns the instant minutes after t, normalized to UTC.
// Minutes may be negative.
func AddMinutes(t time.Time, minutes int) time.Time {
	return EnsureUTC(t).Add(time.Duration(minutes) * time.Minute)
}

// CoerceIntervalMinutes clamps value into [min, max] inclusive.
func CoerceIntervalMinutes(value, min, max int) int {
	if value < min {
		return min
	}
	if value > max {
		return max
	}
	return value
}

// IsPast reports whether `when` has passed, optionally with a grace window.
// An unset `when` is never past.
func IsPast(when *time.Time, now time.Time, grace time.Duration) bool {
	if when == nil {
		return false
	}
	target := EnsureUTC(*when).Add(grace)
	return !EnsureUTC(now).Before(target)
}

// HumanizeDelta renders a duration in seconds as "1h 25m" or "17m".
// Negative input is treated as zero; leftover seconds are dropped.
func HumanizeDelta(seconds int) string {
	if seconds < 0 {
		seconds = 0
	}
	minutes := seconds / 60
	hours := minutes / 60
	minutes = minutes % 60
	if hours > 0 {
		return fmt.Sprintf("%dh %dm", hours, minutes)
	}
	return fmt.Sprintf("%dm", minutes)
}
