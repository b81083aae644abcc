package migration

import (
	"database/sql"
	"path/filepath"
	"testing"
	"testing/fstest"

	_ "modernc.org/sqlite"
)

func testDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := sql.Open("sqlite", filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("failed to open database: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })
	return db
}

func TestApplyMigrations(t *testing.T) {
	db := testDB(t)
	fsys := fstest.MapFS{
		"001_init.sql":     {Data: []byte("CREATE TABLE a (id TEXT PRIMARY KEY);")},
		"002_add_more.sql": {Data: []byte("CREATE TABLE b (id TEXT PRIMARY KEY);")},
	}
	runner := NewRunner(db, fsys)

	applied, err := runner.ApplyMigrations(nil)
	if err != nil {
		t.Fatalf("ApplyMigrations failed: %v", err)
	}
	if applied != 2 {
		t.Errorf("expected 2 applied migrations, got %d", applied)
	}

	version, err := runner.GetCurrentVersion()
	if err != nil {
		t.Fatalf("GetCurrentVersion failed: %v", err)
	}
	if version != 2 {
		t.Errorf("expected version 2, got %d", version)
	}

	// Second run is a no-op.
	applied, err = runner.ApplyMigrations(nil)
	if err != nil {
		t.Fatalf("second ApplyMigrations failed: %v", err)
	}
	if applied != 0 {
		t.Errorf("expected 0 applied migrations, got %d", applied)
	}

	if err := runner.ValidateVersion(); err != nil {
		t.Errorf("ValidateVersion failed on up-to-date schema: %v", err)
	}
}

func TestApplyMigrations_SkipsAppliedVersions(t *testing.T) {
	db := testDB(t)
	first := fstest.MapFS{
		"001_init.sql": {Data: []byte("CREATE TABLE a (id TEXT PRIMARY KEY);")},
	}
	if _, err := NewRunner(db, first).ApplyMigrations(nil); err != nil {
		t.Fatalf("ApplyMigrations failed: %v", err)
	}

	both := fstest.MapFS{
		"001_init.sql":     {Data: []byte("CREATE TABLE a (id TEXT PRIMARY KEY);")},
		"002_add_more.sql": {Data: []byte("CREATE TABLE b (id TEXT PRIMARY KEY);")},
	}
	applied, err := NewRunner(db, both).ApplyMigrations(nil)
	if err != nil {
		t.Fatalf("ApplyMigrations failed: %v", err)
	}
	if applied != 1 {
		t.Errorf("expected only the pending migration to apply, got %d", applied)
	}
}

func TestValidateVersion_Behind(t *testing.T) {
	db := testDB(t)
	first := fstest.MapFS{
		"001_init.sql": {Data: []byte("CREATE TABLE a (id TEXT PRIMARY KEY);")},
	}
	if _, err := NewRunner(db, first).ApplyMigrations(nil); err != nil {
		t.Fatalf("ApplyMigrations failed: %v", err)
	}

	both := fstest.MapFS{
		"001_init.sql":     {Data: []byte("CREATE TABLE a (id TEXT PRIMARY KEY);")},
		"002_add_more.sql": {Data: []byte("CREATE TABLE b (id TEXT PRIMARY KEY);")},
	}
	if err := NewRunner(db, both).ValidateVersion(); err == nil {
		t.Error("expected error for schema behind latest version")
	}
}

func TestReadMigrationFiles_RejectsBadNames(t *testing.T) {
	db := testDB(t)
	fsys := fstest.MapFS{
		"noversion.sql": {Data: []byte("CREATE TABLE a (id TEXT);")},
	}
	if _, err := NewRunner(db, fsys).ReadMigrationFiles(); err == nil {
		t.Error("expected error for filename without version prefix")
	}

	fsys = fstest.MapFS{
		"abc_init.sql": {Data: []byte("CREATE TABLE a (id TEXT);")},
	}
	if _, err := NewRunner(db, fsys).ReadMigrationFiles(); err == nil {
		t.Error("expected error for non-numeric version")
	}
}

func TestApplyMigrations_FailedMigrationRollsBack(t *testing.T) {
	db := testDB(t)
	fsys := fstest.MapFS{
		"001_bad.sql": {Data: []byte("THIS IS NOT SQL;")},
	}
	if _, err := NewRunner(db, fsys).ApplyMigrations(nil); err == nil {
		t.Fatal("expected error for invalid SQL")
	}

	version, err := NewRunner(db, fsys).GetCurrentVersion()
	if err != nil {
		t.Fatalf("GetCurrentVersion failed: %v", err)
	}
	if version != 0 {
		t.Errorf("failed migration should not advance the version, got %d", version)
	}
}
