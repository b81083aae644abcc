package system

import (
	"database/sql"
	"errors"
	"fmt"
	"io/fs"
	"time"

	"github.com/julianstephens/unstick/internal/backup"
	"github.com/julianstephens/unstick/internal/cli"
	"github.com/julianstephens/unstick/internal/keyring"
	"github.com/julianstephens/unstick/internal/migration"
	"github.com/julianstephens/unstick/internal/storage"
	"github.com/julianstephens/unstick/migrations"
)

type DoctorCmd struct{}

func (cmd *DoctorCmd) Run(ctx *cli.Context) error {
	fmt.Println("Running diagnostics...")
	fmt.Println()

	hasError := false
	dbReachable := false

	// Check 1: DB reachable
	if err := checkDBReachable(ctx); err != nil {
		fmt.Printf("❌ Database reachable: FAIL\n")
		fmt.Printf("   Error: %v\n", err)
		hasError = true
	} else {
		fmt.Printf("✓ Database reachable: OK\n")
		dbReachable = true
	}

	// Check 2: Schema version valid (only if DB is reachable)
	if dbReachable {
		if err := checkSchemaVersion(ctx); err != nil {
			fmt.Printf("❌ Schema version: FAIL\n")
			fmt.Printf("   Error: %v\n", err)
			hasError = true
		} else {
			fmt.Printf("✓ Schema version: OK\n")
		}
	} else {
		fmt.Printf("⊘ Schema version: SKIPPED (database not reachable)\n")
	}

	// Check 3: Orphaned check-ins (only if DB is reachable)
	if dbReachable {
		if err := checkOrphanedCheckins(ctx); err != nil {
			fmt.Printf("❌ Check-in integrity: FAIL\n")
			fmt.Printf("   Error: %v\n", err)
			hasError = true
		} else {
			fmt.Printf("✓ Check-in integrity: OK\n")
		}
	} else {
		fmt.Printf("⊘ Check-in integrity: SKIPPED (database not reachable)\n")
	}

	// Check 4: Timestamp integrity (only if DB is reachable)
	if dbReachable {
		if err := checkTimestampIntegrity(ctx); err != nil {
			fmt.Printf("❌ Timestamp integrity: FAIL\n")
			fmt.Printf("   Error: %v\n", err)
			hasError = true
		} else {
			fmt.Printf("✓ Timestamp integrity: OK\n")
		}
	} else {
		fmt.Printf("⊘ Timestamp integrity: SKIPPED (database not reachable)\n")
	}

	// Check 5: Backups present (warning only, sqlite only)
	if _, ok := ctx.Store.(*storage.SQLiteStore); ok {
		if err := checkBackupsPresent(ctx); err != nil {
			fmt.Printf("⚠ Backups present: WARNING\n")
			fmt.Printf("   %v\n", err)
		} else {
			fmt.Printf("✓ Backups present: OK\n")
		}
	} else {
		fmt.Printf("⊘ Backups present: SKIPPED (not sqlite storage)\n")
	}

	// Check 6: Advisor API key (warning only)
	if _, err := cli.ResolveAPIKey(); err != nil {
		fmt.Printf("⚠ Advisor API key: WARNING\n")
		if errors.Is(err, keyring.ErrNotFound) {
			fmt.Printf("   No API key found; interventions will use built-in fallbacks. Set one with 'unstick key set'.\n")
		} else {
			fmt.Printf("   %v\n", err)
		}
	} else {
		fmt.Printf("✓ Advisor API key: OK\n")
	}

	// Check 7: Clock/timezone sanity
	if err := checkClockTimezone(); err != nil {
		fmt.Printf("❌ Clock/timezone: FAIL\n")
		fmt.Printf("   Error: %v\n", err)
		hasError = true
	} else {
		fmt.Printf("✓ Clock/timezone: OK\n")
	}

	fmt.Println()
	if hasError {
		fmt.Println("Diagnostics completed with errors.")
		return fmt.Errorf("one or more health checks failed")
	}

	fmt.Println("All diagnostics passed!")
	return nil
}

// dbProvider is implemented by both stores.
type dbProvider interface {
	GetDB() *sql.DB
}

func getDB(ctx *cli.Context) (*sql.DB, error) {
	p, ok := ctx.Store.(dbProvider)
	if !ok {
		return nil, fmt.Errorf("storage backend does not expose a database connection")
	}
	db := p.GetDB()
	if db == nil {
		return nil, fmt.Errorf("database connection is nil")
	}
	return db, nil
}

func checkDBReachable(ctx *cli.Context) error {
	if err := ctx.Store.Load(); err != nil {
		return fmt.Errorf("failed to load database: %w", err)
	}

	db, err := getDB(ctx)
	if err != nil {
		return err
	}
	var result int
	if err := db.QueryRow("SELECT 1").Scan(&result); err != nil {
		return fmt.Errorf("failed to query database: %w", err)
	}
	return nil
}

func checkSchemaVersion(ctx *cli.Context) error {
	db, err := getDB(ctx)
	if err != nil {
		return err
	}

	var migrationFS fs.FS
	if _, ok := ctx.Store.(*storage.PostgresStore); ok {
		migrationFS, err = migrations.Postgres()
	} else {
		migrationFS, err = migrations.SQLite()
	}
	if err != nil {
		return fmt.Errorf("failed to load embedded migrations: %w", err)
	}

	return migration.NewRunner(db, migrationFS).ValidateVersion()
}

func checkOrphanedCheckins(ctx *cli.Context) error {
	db, err := getDB(ctx)
	if err != nil {
		return err
	}

	// Check-ins referencing a missing session indicate corruption.
	var orphanedCount int
	err = db.QueryRow(`
		SELECT COUNT(*)
		FROM checkins c
		LEFT JOIN sessions s ON c.session_id = s.id
		WHERE s.id IS NULL
	`).Scan(&orphanedCount)
	if err != nil {
		return fmt.Errorf("failed to check orphaned check-ins: %w", err)
	}
	if orphanedCount > 0 {
		return fmt.Errorf("found %d check-ins referencing non-existent sessions", orphanedCount)
	}
	return nil
}

func checkTimestampIntegrity(ctx *cli.Context) error {
	db, err := getDB(ctx)
	if err != nil {
		return err
	}

	for _, table := range []string{"tasks", "sessions", "checkins"} {
		var corruptedCount int
		query := fmt.Sprintf("SELECT COUNT(*) FROM %s WHERE created_at IS NULL", table)
		if err := db.QueryRow(query).Scan(&corruptedCount); err != nil {
			return fmt.Errorf("failed to check %s timestamps: %w", table, err)
		}
		if corruptedCount > 0 {
			return fmt.Errorf("found %d %s rows with missing created_at", corruptedCount, table)
		}
	}
	return nil
}

func checkBackupsPresent(ctx *cli.Context) error {
	mgr := backup.NewManager(ctx.Store.GetConfigPath())
	backups, err := mgr.ListBackups()
	if err != nil {
		return fmt.Errorf("failed to list backups: %w", err)
	}
	if len(backups) == 0 {
		return fmt.Errorf("no backups found - consider creating one with 'unstick backup create'")
	}
	return nil
}

func checkClockTimezone() error {
	now := time.Now()
	if now.Year() < 2020 || now.Year() > 2100 {
		return fmt.Errorf("system time appears incorrect: %s", now.Format(time.RFC3339))
	}
	return nil
}
