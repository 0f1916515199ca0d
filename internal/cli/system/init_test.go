package system

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/julianstephens/hush/internal/backup"
	"github.com/julianstephens/hush/internal/cli"
	"github.com/julianstephens/hush/internal/models"
	"github.com/julianstephens/hush/internal/storage/sqlite"
)

func setupTestInitDB(t *testing.T) (*cli.Context, string) {
	t.Helper()
	dbPath := filepath.Join(t.TempDir(), "nested", "test.db")
	store := sqlite.NewStore(dbPath)
	t.Cleanup(func() { store.Close() })
	return &cli.Context{Store: store, Stdout: &bytes.Buffer{}}, dbPath
}

func TestInitCmd_Success(t *testing.T) {
	ctx, dbPath := setupTestInitDB(t)

	if err := (&InitCmd{}).Run(ctx); err != nil {
		t.Fatalf("init command failed: %v", err)
	}
	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		t.Errorf("database file was not created at %s", dbPath)
	}
	settings, err := ctx.Store.GetSettings()
	if err != nil {
		t.Fatalf("settings not readable after init: %v", err)
	}
	if settings.Mode != "auto" {
		t.Errorf("default mode = %q, want auto", settings.Mode)
	}
}

func TestInitCmd_Idempotent(t *testing.T) {
	ctx, _ := setupTestInitDB(t)

	if err := (&InitCmd{}).Run(ctx); err != nil {
		t.Fatalf("first init failed: %v", err)
	}
	s, _ := ctx.Store.GetSettings()
	s.Enabled = true
	if err := ctx.Store.SaveSettings(s); err != nil {
		t.Fatal(err)
	}

	if err := (&InitCmd{}).Run(ctx); err != nil {
		t.Fatalf("second init failed: %v", err)
	}
	s, _ = ctx.Store.GetSettings()
	if !s.Enabled {
		t.Error("second init must keep existing settings")
	}
}

func TestInitCmd_Force(t *testing.T) {
	ctx, _ := setupTestInitDB(t)

	if err := (&InitCmd{}).Run(ctx); err != nil {
		t.Fatal(err)
	}
	if err := ctx.Store.AddOverride(models.AppOverride{App: "pager", IgnoreQuietHours: true}); err != nil {
		t.Fatal(err)
	}

	if err := (&InitCmd{Force: true, Yes: true}).Run(ctx); err != nil {
		t.Fatalf("forced init failed: %v", err)
	}
	list, err := ctx.Store.GetAllOverrides()
	if err != nil {
		t.Fatal(err)
	}
	if len(list) != 0 {
		t.Errorf("expected a fresh database, found %d overrides", len(list))
	}
	output := ctx.Stdout.(*bytes.Buffer).String()
	if !strings.Contains(output, "Deleted existing database") || !strings.Contains(output, "Saved the existing database") {
		t.Errorf("unexpected output:\n%s", output)
	}
	backups, err := backup.NewManager(ctx.Store.GetConfigPath()).List()
	if err != nil || len(backups) != 1 {
		t.Errorf("expected one backup before reset, got %d (%v)", len(backups), err)
	}
}

func TestInitCmd_ForceDeclined(t *testing.T) {
	ctx, _ := setupTestInitDB(t)

	if err := (&InitCmd{}).Run(ctx); err != nil {
		t.Fatal(err)
	}
	if err := ctx.Store.AddOverride(models.AppOverride{App: "pager", IgnoreQuietHours: true}); err != nil {
		t.Fatal(err)
	}

	var asked string
	ctx.Prompt = func(title string) (bool, error) {
		asked = title
		return false, nil
	}
	if err := (&InitCmd{Force: true}).Run(ctx); err != nil {
		t.Fatalf("declined init failed: %v", err)
	}
	if !strings.Contains(asked, ctx.Store.GetConfigPath()) {
		t.Errorf("prompt should name the database, got %q", asked)
	}
	if _, err := ctx.Store.GetOverride("pager"); err != nil {
		t.Errorf("declining must keep the database: %v", err)
	}
	if !strings.Contains(ctx.Stdout.(*bytes.Buffer).String(), "Aborted.") {
		t.Error("expected an abort message")
	}
}

func TestMigrateCmd_UpToDate(t *testing.T) {
	ctx, out, _ := setupTestDB(t)

	if err := (&MigrateCmd{}).Run(ctx); err != nil {
		t.Fatalf("migrate failed: %v", err)
	}
	if !strings.Contains(out.String(), "Database is up to date") {
		t.Errorf("unexpected output: %q", out.String())
	}

	out.Reset()
	if err := (&MigrateCmd{Status: true}).Run(ctx); err != nil {
		t.Fatalf("migrate --status failed: %v", err)
	}
	if !strings.Contains(out.String(), "(0 pending)") {
		t.Errorf("unexpected status output: %q", out.String())
	}
}

func TestMigrateCmd_AppliesPending(t *testing.T) {
	ctx, out, _ := setupTestDB(t)

	db := ctx.Store.(*sqlite.Store).GetDB()
	if _, err := db.Exec("DELETE FROM schema_version"); err != nil {
		t.Fatal(err)
	}
	if _, err := db.Exec("INSERT INTO schema_version (version) VALUES (1)"); err != nil {
		t.Fatal(err)
	}
	if _, err := db.Exec("DROP TABLE delivery_history"); err != nil {
		t.Fatal(err)
	}

	if err := (&MigrateCmd{}).Run(ctx); err != nil {
		t.Fatalf("migrate failed: %v", err)
	}
	if !strings.Contains(out.String(), "Applying migration 002") || !strings.Contains(out.String(), "Successfully applied 1 migration(s)") {
		t.Errorf("unexpected output: %q", out.String())
	}
	st, err := ctx.Store.SchemaStatus()
	if err != nil {
		t.Fatal(err)
	}
	if !st.UpToDate() {
		t.Errorf("schema not up to date after migrate: %+v", st)
	}
}
