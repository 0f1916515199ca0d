package backup

import (
	"database/sql"
	"os"
	"path/filepath"
	"testing"
	"time"

	_ "modernc.org/sqlite"

	"github.com/julianstephens/hush/internal/models"
	"github.com/julianstephens/hush/internal/storage/sqlite"
)

// setupTestDB creates an initialized hush database with quiet hours enabled.
func setupTestDB(t *testing.T) string {
	t.Helper()
	dbPath := filepath.Join(t.TempDir(), "hush.db")

	store := sqlite.NewStore(dbPath)
	if err := store.Init(); err != nil {
		t.Fatalf("failed to init store: %v", err)
	}
	s := models.DefaultSettings()
	s.Enabled = true
	if err := store.SaveSettings(s); err != nil {
		t.Fatalf("failed to save settings: %v", err)
	}
	if err := store.Close(); err != nil {
		t.Fatal(err)
	}
	return dbPath
}

func fixedClock(ts time.Time) func() time.Time {
	return func() time.Time { return ts }
}

func readEnabled(t *testing.T, dbPath string) bool {
	t.Helper()
	store := sqlite.NewStore(dbPath)
	if err := store.Load(); err != nil {
		t.Fatalf("failed to load %s: %v", dbPath, err)
	}
	defer store.Close()
	s, err := store.GetSettings()
	if err != nil {
		t.Fatal(err)
	}
	return s.Enabled
}

func TestCreate(t *testing.T) {
	dbPath := setupTestDB(t)
	ts := time.Date(2024, 3, 1, 22, 15, 30, 0, time.Local)
	mgr := NewManager(dbPath, WithClock(fixedClock(ts)))

	path, err := mgr.Create()
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if filepath.Base(path) != "hush-20240301-221530.db" {
		t.Errorf("backup name = %s", filepath.Base(path))
	}
	if filepath.Dir(path) != filepath.Join(filepath.Dir(dbPath), DirName) {
		t.Errorf("backup stored in %s", filepath.Dir(path))
	}
	if !readEnabled(t, path) {
		t.Error("backup does not contain the saved settings")
	}

	// same second gets a counter suffix
	second, err := mgr.Create()
	if err != nil {
		t.Fatal(err)
	}
	if filepath.Base(second) != "hush-20240301-221530-1.db" {
		t.Errorf("second backup name = %s", filepath.Base(second))
	}
}

func TestCreateRejectsForeignDatabase(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "other.db")
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := db.Exec("CREATE TABLE notes (id INTEGER PRIMARY KEY)"); err != nil {
		t.Fatal(err)
	}
	db.Close()

	if _, err := NewManager(dbPath).Create(); err == nil {
		t.Error("expected an error backing up a database without a settings table")
	}
}

func TestCreateMissingDatabase(t *testing.T) {
	mgr := NewManager(filepath.Join(t.TempDir(), "missing.db"))
	if _, err := mgr.Create(); err == nil {
		t.Error("expected an error for a missing database")
	}
}

func TestOpenReadOnly(t *testing.T) {
	dbPath := setupTestDB(t)

	db, err := openReadOnly(dbPath)
	if err != nil {
		t.Fatal(err)
	}
	defer db.Close()
	if _, err := db.Exec("CREATE TABLE scratch (id INTEGER)"); err == nil {
		t.Error("expected a write through a read-only handle to fail")
	}

	missing := filepath.Join(t.TempDir(), "missing.db")
	ro, err := openReadOnly(missing)
	if err != nil {
		t.Fatal(err)
	}
	defer ro.Close()
	if err := ro.Ping(); err == nil {
		t.Error("expected opening a missing database read-only to fail")
	}
	if fileExists(missing) {
		t.Error("a read-only open must not create the database file")
	}
}

func TestListAndRotation(t *testing.T) {
	dbPath := setupTestDB(t)
	base := time.Date(2024, 3, 1, 8, 0, 0, 0, time.Local)

	var clock time.Time
	mgr := NewManager(dbPath, WithKeep(3), WithClock(func() time.Time { return clock }))
	for i := 0; i < 5; i++ {
		clock = base.Add(time.Duration(i) * time.Hour)
		if _, err := mgr.Create(); err != nil {
			t.Fatalf("Create %d failed: %v", i, err)
		}
	}

	// unrelated files are ignored
	if err := os.WriteFile(filepath.Join(mgr.Dir(), "notes.txt"), []byte("x"), 0600); err != nil {
		t.Fatal(err)
	}

	list, err := mgr.List()
	if err != nil {
		t.Fatal(err)
	}
	if len(list) != 3 {
		t.Fatalf("expected 3 backups after rotation, got %d", len(list))
	}
	if list[0].Name() != "hush-20240301-120000.db" || list[2].Name() != "hush-20240301-100000.db" {
		t.Errorf("unexpected order: %s .. %s", list[0].Name(), list[2].Name())
	}
	if list[0].Size == 0 {
		t.Error("expected a non-zero size")
	}
}

func TestListWithoutDirectory(t *testing.T) {
	list, err := NewManager(filepath.Join(t.TempDir(), "hush.db")).List()
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(list) != 0 {
		t.Errorf("expected no backups, got %d", len(list))
	}
}

func TestRestore(t *testing.T) {
	dbPath := setupTestDB(t)
	clock := time.Date(2024, 3, 1, 8, 0, 0, 0, time.Local)
	mgr := NewManager(dbPath, WithClock(func() time.Time { return clock }))

	snapshot, err := mgr.Create()
	if err != nil {
		t.Fatal(err)
	}

	// disable quiet hours after the snapshot
	store := sqlite.NewStore(dbPath)
	if err := store.Load(); err != nil {
		t.Fatal(err)
	}
	s, _ := store.GetSettings()
	s.Enabled = false
	if err := store.SaveSettings(s); err != nil {
		t.Fatal(err)
	}
	store.Close()

	clock = clock.Add(time.Minute)
	saved, err := mgr.Restore(mgr.Resolve(filepath.Base(snapshot)))
	if err != nil {
		t.Fatalf("Restore failed: %v", err)
	}
	if saved == "" {
		t.Fatal("expected the current database to be saved first")
	}
	if !readEnabled(t, dbPath) {
		t.Error("restored database should have quiet hours enabled")
	}
	if readEnabled(t, saved) {
		t.Error("safety backup should hold the pre-restore settings")
	}
}

func TestRestoreInvalidBackup(t *testing.T) {
	dbPath := setupTestDB(t)
	mgr := NewManager(dbPath)

	if _, err := mgr.Restore(filepath.Join(t.TempDir(), "nope.db")); err == nil {
		t.Error("expected an error for a missing backup")
	}

	junk := filepath.Join(t.TempDir(), "junk.db")
	if err := os.WriteFile(junk, []byte("not a database"), 0600); err != nil {
		t.Fatal(err)
	}
	if _, err := mgr.Restore(junk); err == nil {
		t.Error("expected an error for a corrupted backup")
	}
	if !readEnabled(t, dbPath) {
		t.Error("a failed restore must leave the database untouched")
	}
}

func TestResolve(t *testing.T) {
	mgr := NewManager(filepath.Join("cfg", "hush.db"))
	if got := mgr.Resolve("hush-20240301-080000.db"); got != filepath.Join("cfg", DirName, "hush-20240301-080000.db") {
		t.Errorf("Resolve(name) = %s", got)
	}
	p := filepath.Join("elsewhere", "x.db")
	if got := mgr.Resolve(p); got != p {
		t.Errorf("Resolve(path) = %s", got)
	}
}
