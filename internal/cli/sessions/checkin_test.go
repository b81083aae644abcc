package sessions

import (
	"testing"

	"github.com/alecthomas/kong"
)

func TestCheckinCmd_SchedulesByDefault(t *testing.T) {
	var cmd struct {
		Checkin CheckinCmd `cmd:""`
	}
	parser, err := kong.New(&cmd)
	if err != nil {
		t.Fatalf("failed to build parser: %v", err)
	}

	if _, err := parser.Parse([]string{"checkin", "sess-1", "--outcome", "still_working"}); err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	if !cmd.Checkin.Schedule {
		t.Error("check-ins should schedule the next one unless opted out")
	}

	if _, err := parser.Parse([]string{"checkin", "sess-1", "--outcome", "still_working", "--no-schedule"}); err != nil {
		t.Fatalf("parse with --no-schedule failed: %v", err)
	}
	if cmd.Checkin.Schedule {
		t.Error("--no-schedule should disable auto scheduling")
	}
}
