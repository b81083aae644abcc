package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/alecthomas/kong"

	"github.com/julianstephens/unstick/internal/cli"
	"github.com/julianstephens/unstick/internal/cli/backups"
	"github.com/julianstephens/unstick/internal/cli/sessions"
	"github.com/julianstephens/unstick/internal/cli/system"
	"github.com/julianstephens/unstick/internal/cli/tasks"
	"github.com/julianstephens/unstick/internal/constants"
	apperrors "github.com/julianstephens/unstick/internal/errors"
	"github.com/julianstephens/unstick/internal/logger"
	"github.com/julianstephens/unstick/internal/session"
	"github.com/julianstephens/unstick/internal/storage"
)

var CLI struct {
	Version kong.VersionFlag
	Config  string `help:"Database file path or PostgreSQL connection string. For PostgreSQL, credentials must NOT be embedded in the connection string. Use environment variables or .pgpass instead." type:"string" default:"~/.config/unstick/unstick.db"`
	Debug   bool   `help:"Enable debug logging."`

	Init      system.InitCmd    `cmd:"" help:"Initialize unstick storage."`
	Migrate   system.MigrateCmd `cmd:"" help:"Run database migrations."`
	Doctor    system.DoctorCmd  `cmd:"" help:"Run health checks and diagnostics."`
	Dashboard cli.DashboardCmd  `cmd:"" default:"1" help:"Show recent sessions and any pending check-in."`
	Key       struct {
		Set    system.KeySetCmd    `cmd:"" help:"Store the advisor API key in the OS keyring."`
		Status system.KeyStatusCmd `cmd:"" help:"Check keyring availability and stored key."`
		Delete system.KeyDeleteCmd `cmd:"" help:"Delete the advisor API key from the OS keyring."`
	} `cmd:"" help:"Manage the advisor API key."`
	Task struct {
		Add    tasks.TaskAddCmd    `cmd:"" help:"Add a task you're stuck on."`
		List   tasks.TaskListCmd   `cmd:"" help:"List tasks."`
		Delete tasks.TaskDeleteCmd `cmd:"" help:"Delete a task."`
	} `cmd:"" help:"Manage tasks."`
	Session struct {
		New     sessions.NewCmd     `cmd:"" help:"Create a session: intake, intervention, message."`
		Start   sessions.StartCmd   `cmd:"" help:"Mark a session as started and schedule its check-in."`
		Checkin sessions.CheckinCmd `cmd:"" help:"Record a check-in outcome."`
		Show    sessions.ShowCmd    `cmd:"" help:"Show a session's detail."`
		Snooze  sessions.SnoozeCmd  `cmd:"" help:"Reschedule a session's check-in."`
		Export  sessions.ExportCmd  `cmd:"" help:"Export a session with its check-in history."`
	} `cmd:"" help:"Manage sessions."`
	Backup struct {
		Create  backups.BackupCreateCmd  `cmd:"" help:"Create a manual backup." default:"1"`
		List    backups.BackupListCmd    `cmd:"" help:"List available backups."`
		Restore backups.BackupRestoreCmd `cmd:"" help:"Restore from a backup."`
	} `cmd:"" help:"Manage database backups."`
}

func main() {
	ctx := kong.Parse(&CLI,
		kong.Name(constants.AppName),
		kong.Description("Task-initiation coach: name the stuckness, get a micro-intervention, start, check in."),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{
			Compact:             true,
			NoExpandSubcommands: true,
		}),
		kong.Vars{"version": constants.Version},
	)

	// Initialize storage based on config format
	var store storage.Provider
	var configDir string
	if strings.HasPrefix(CLI.Config, "postgres://") || strings.HasPrefix(CLI.Config, "postgresql://") {
		if storage.HasEmbeddedCredentials(CLI.Config) {
			fmt.Fprintln(os.Stderr, "Error: PostgreSQL connection strings with embedded credentials are not allowed.")
			fmt.Fprintln(os.Stderr, "Use environment variables, a .pgpass file, or a connection string without a password.")
			os.Exit(1)
		}
		store = storage.NewPostgresStore(CLI.Config)
		if dir, err := os.UserConfigDir(); err == nil {
			configDir = filepath.Join(dir, constants.AppName)
		}
	} else {
		path := CLI.Config
		if strings.HasPrefix(path, "~/") {
			if home, err := os.UserHomeDir(); err == nil {
				path = filepath.Join(home, path[2:])
			}
		}
		store = storage.NewSQLiteStore(path)
		configDir = filepath.Dir(path)
	}

	if configDir != "" {
		if err := logger.Init(logger.Config{Debug: CLI.Debug, ConfigDir: configDir}); err != nil {
			fmt.Fprintf(os.Stderr, "Warning: failed to initialize logging: %v\n", err)
		}
	}

	appCtx := &cli.Context{
		Store:    store,
		Sessions: session.New(store),
	}

	// Load the store before running the command. Init, migrate, and doctor
	// handle loading themselves; key commands never touch the database.
	cmd := ctx.Command()
	skipLoad := cmd == "init" || cmd == "migrate" || cmd == "doctor" || strings.HasPrefix(cmd, "key ")
	if !skipLoad {
		if err := store.Load(); err != nil {
			apperrors.Fatal(err)
		}
	}

	if err := ctx.Run(appCtx); err != nil {
		apperrors.Fatal(err)
	}
}
