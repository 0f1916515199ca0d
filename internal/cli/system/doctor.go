package system

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/julianstephens/hush/internal/backup"
	"github.com/julianstephens/hush/internal/cli"
	"github.com/julianstephens/hush/internal/keyring"
	"github.com/julianstephens/hush/internal/notifier"
	"github.com/julianstephens/hush/internal/storage/sqlite"
	"github.com/julianstephens/hush/internal/utils"
)

type DoctorCmd struct{}

type check struct {
	name     string
	needsDB  bool
	warnOnly bool
	run      func(*cli.Context) error
}

func (cmd *DoctorCmd) Run(ctx *cli.Context) error {
	ctx.Println("Running diagnostics...")
	ctx.Println()

	checks := []check{
		{name: "Schema version", needsDB: true, run: checkSchemaVersion},
		{name: "Migrations complete", needsDB: true, run: checkMigrationsComplete},
		{name: "Quiet hours settings", needsDB: true, run: checkSettings},
		{name: "App overrides", needsDB: true, run: checkOverrides},
		{name: "Clock/timezone", needsDB: true, run: checkClockTimezone},
		{name: "Backups present", needsDB: true, warnOnly: true, run: checkBackupsPresent},
		{name: "OS keyring", warnOnly: true, run: checkKeyring},
		{name: "Notification backend", needsDB: true, warnOnly: true, run: checkNotifier},
	}

	hasError := false
	dbReachable := true
	if err := checkDBReachable(ctx); err != nil {
		ctx.Printf("❌ Database reachable: FAIL\n")
		ctx.Printf("   Error: %v\n", err)
		hasError = true
		dbReachable = false
	} else {
		ctx.Printf("✓ Database reachable: OK\n")
	}

	for _, c := range checks {
		if c.needsDB && !dbReachable {
			ctx.Printf("⊘ %s: SKIPPED (database not reachable)\n", c.name)
			continue
		}
		err := c.run(ctx)
		switch {
		case err == nil:
			ctx.Printf("✓ %s: OK\n", c.name)
		case c.warnOnly:
			ctx.Printf("⚠ %s: WARNING\n", c.name)
			ctx.Printf("   %v\n", err)
		default:
			ctx.Printf("❌ %s: FAIL\n", c.name)
			ctx.Printf("   Error: %v\n", err)
			hasError = true
		}
	}

	ctx.Println()
	if hasError {
		ctx.Println("Diagnostics completed with errors.")
		return fmt.Errorf("one or more health checks failed")
	}
	ctx.Println("All diagnostics passed!")
	return nil
}

func checkDBReachable(ctx *cli.Context) error {
	if err := ctx.Store.Load(); err != nil {
		return fmt.Errorf("failed to load database: %w", err)
	}

	if sqliteStore, ok := ctx.Store.(*sqlite.Store); ok {
		db := sqliteStore.GetDB()
		if db == nil {
			return fmt.Errorf("database connection is nil")
		}
		var result int
		if err := db.QueryRow("SELECT 1").Scan(&result); err != nil {
			return fmt.Errorf("failed to query database: %w", err)
		}
	}
	return nil
}

func checkSchemaVersion(ctx *cli.Context) error {
	st, err := ctx.Store.SchemaStatus()
	if err != nil {
		return fmt.Errorf("failed to get schema status: %w", err)
	}
	if st.Current > st.Latest {
		return fmt.Errorf("database schema version (%d) is newer than supported version (%d)", st.Current, st.Latest)
	}
	return nil
}

func checkMigrationsComplete(ctx *cli.Context) error {
	st, err := ctx.Store.SchemaStatus()
	if err != nil {
		return fmt.Errorf("failed to get schema status: %w", err)
	}
	if len(st.Pending) > 0 {
		return fmt.Errorf("migrations incomplete: current version %d, latest version %d (run 'hush migrate')", st.Current, st.Latest)
	}
	return nil
}

func checkSettings(ctx *cli.Context) error {
	settings, err := ctx.Store.GetSettings()
	if err != nil {
		return fmt.Errorf("failed to get settings: %w", err)
	}
	if _, err := settings.ToConfig(); err != nil {
		return err
	}
	return nil
}

func checkOverrides(ctx *cli.Context) error {
	list, err := ctx.Store.GetAllOverrides()
	if err != nil {
		return fmt.Errorf("failed to get overrides: %w", err)
	}
	seen := make(map[string]bool, len(list))
	for _, o := range list {
		if err := o.Validate(); err != nil {
			return fmt.Errorf("override %s: %w", o.ID, err)
		}
		key := strings.ToLower(o.App)
		if seen[key] {
			return fmt.Errorf("duplicate override for app %s", o.App)
		}
		seen[key] = true
	}
	return nil
}

func checkClockTimezone(ctx *cli.Context) error {
	now := ctx.Clock()
	if now.Year() < 2020 || now.Year() > 2100 {
		return fmt.Errorf("system time appears incorrect: %s", now.Format(time.RFC3339))
	}

	settings, err := ctx.Store.GetSettings()
	if err != nil {
		return fmt.Errorf("failed to get settings: %w", err)
	}
	if _, err := utils.LoadLocation(settings.Timezone); err != nil {
		return fmt.Errorf("timezone %q cannot be loaded: %w", settings.Timezone, err)
	}
	return nil
}

func checkBackupsPresent(ctx *cli.Context) error {
	if _, ok := ctx.Store.(*sqlite.Store); !ok {
		return nil
	}
	list, err := backup.NewManager(ctx.Store.GetConfigPath()).List()
	if err != nil {
		return fmt.Errorf("failed to list backups: %w", err)
	}
	if len(list) == 0 {
		return fmt.Errorf("no backups found - consider creating one with 'hush backup'")
	}
	return nil
}

func checkKeyring(_ *cli.Context) error {
	if !keyring.IsAvailable() {
		return errors.New("OS keyring is not available; connection strings must come from the environment")
	}
	return nil
}

func checkNotifier(ctx *cli.Context) error {
	settings, err := ctx.Store.GetSettings()
	if err != nil {
		return fmt.Errorf("failed to get settings: %w", err)
	}
	switch s := ctx.ResolveSender(settings).(type) {
	case *notifier.ShoutrrrSender:
		if !strings.Contains(s.URL, "://") {
			return fmt.Errorf("notify URL is not a service URL")
		}
		return nil
	case *notifier.TraySender:
		if err := notifier.TrayRunning(); err != nil {
			return fmt.Errorf("tray delivery unavailable: %w", err)
		}
		return nil
	default:
		return nil
	}
}
