package system

import (
	"fmt"

	"github.com/julianstephens/hush/internal/cli"
)

type MigrateCmd struct {
	Status bool `help:"Only report the schema version."`
}

func (c *MigrateCmd) Run(ctx *cli.Context) error {
	if err := ctx.Store.Load(); err != nil {
		return fmt.Errorf("failed to load database: %w", err)
	}

	before, err := ctx.Store.SchemaStatus()
	if err != nil {
		return fmt.Errorf("failed to read schema status: %w", err)
	}
	if c.Status {
		ctx.Printf("Schema version %d of %d (%d pending)\n", before.Current, before.Latest, len(before.Pending))
		return nil
	}
	if before.UpToDate() {
		ctx.Println("No migrations to apply. Database is up to date.")
		return nil
	}

	for _, m := range before.Pending {
		ctx.Printf("Applying migration %03d: %s\n", m.Version, m.Name)
	}
	// Init applies pending migrations and backfills any new default settings.
	if err := ctx.Store.Init(); err != nil {
		return fmt.Errorf("migration failed: %w", err)
	}

	after, err := ctx.Store.SchemaStatus()
	if err != nil {
		return fmt.Errorf("failed to read schema status: %w", err)
	}
	ctx.Printf("\nSuccessfully applied %d migration(s).\n", after.Current-before.Current)
	return nil
}
