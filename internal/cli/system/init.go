package system

import (
	"fmt"
	"os"

	"github.com/julianstephens/hush/internal/backup"
	"github.com/julianstephens/hush/internal/cli"
	"github.com/julianstephens/hush/internal/logger"
	"github.com/julianstephens/hush/internal/storage/sqlite"
)

type InitCmd struct {
	Force bool `help:"Delete an existing SQLite database before initialization."`
	Yes   bool `short:"y" help:"Do not ask for confirmation."`
}

func (c *InitCmd) Run(ctx *cli.Context) error {
	if c.Force {
		if _, ok := ctx.Store.(*sqlite.Store); !ok {
			return fmt.Errorf("--force is only supported for SQLite storage")
		}
		dbPath := ctx.Store.GetConfigPath()
		if _, err := os.Stat(dbPath); err == nil {
			ok, err := ctx.Confirm(fmt.Sprintf("Delete the database at %s and start over?", dbPath), c.Yes)
			if err != nil {
				return err
			}
			if !ok {
				ctx.Println("Aborted.")
				return nil
			}
			if saved, err := backup.NewManager(dbPath, backup.WithClock(ctx.Clock)).Create(); err != nil {
				logger.Warn("Could not back up database before reset", "error", err)
			} else {
				ctx.Printf("Saved the existing database as %s\n", saved)
			}
			if err := ctx.Store.Close(); err != nil {
				return fmt.Errorf("failed to close existing database: %w", err)
			}
			for _, p := range []string{dbPath, dbPath + "-wal", dbPath + "-shm", dbPath + "-journal"} {
				if err := os.Remove(p); err != nil && !os.IsNotExist(err) {
					return fmt.Errorf("failed to delete existing database: %w", err)
				}
			}
			ctx.Printf("Deleted existing database at: %s\n", dbPath)
		} else if !os.IsNotExist(err) {
			return fmt.Errorf("failed to access existing database: %w", err)
		}
	}

	if err := ctx.Store.Init(); err != nil {
		return err
	}
	ctx.Printf("Initialized hush storage at: %s\n", ctx.Store.GetConfigPath())
	return nil
}
