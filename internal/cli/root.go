package cli

import (
	"os"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/julianstephens/unstick/internal/backup"
	"github.com/julianstephens/unstick/internal/constants"
	"github.com/julianstephens/unstick/internal/keyring"
	"github.com/julianstephens/unstick/internal/logger"
	"github.com/julianstephens/unstick/internal/session"
	"github.com/julianstephens/unstick/internal/storage"
)

// Context carries the shared application state into every command.
type Context struct {
	Store    storage.Provider
	Sessions *session.Service
}

// Styles shared by the display commands.
var (
	TitleStyle = lipgloss.NewStyle().Bold(true)
	DueStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Bold(true)
	FaintStyle = lipgloss.NewStyle().Faint(true)
)

// PerformAutomaticBackup creates an automatic backup and silently handles errors
func (c *Context) PerformAutomaticBackup() {
	// File-level backups only apply to the sqlite store.
	if _, ok := c.Store.(*storage.SQLiteStore); !ok {
		return
	}
	mgr := backup.NewManager(c.Store.GetConfigPath())
	if _, err := mgr.CreateBackup(); err != nil {
		// Log warning but don't interrupt user workflow
		logger.Warn("Automatic backup failed", "error", err)
	}
}

// ResolveAPIKey returns the advisor API key from the environment, falling
// back to the OS keyring.
func ResolveAPIKey() (string, error) {
	if key := os.Getenv(constants.AdvisorAPIKeyEnv); key != "" {
		return key, nil
	}
	return keyring.GetAPIKey()
}

// FormatWhen renders an optional timestamp for display, in UTC.
func FormatWhen(t *time.Time) string {
	if t == nil {
		return "-"
	}
	return t.UTC().Format("2006-01-02 15:04 MST")
}
