package system

import (
	"fmt"

	"github.com/dustin/go-humanize"

	"github.com/julianstephens/hush/internal/backup"
	"github.com/julianstephens/hush/internal/cli"
	"github.com/julianstephens/hush/internal/storage/sqlite"
)

type BackupCmd struct {
	Create  BackupCreateCmd  `cmd:"" default:"1" help:"Snapshot the settings database."`
	List    BackupListCmd    `cmd:"" help:"List available snapshots."`
	Restore BackupRestoreCmd `cmd:"" help:"Restore the settings database from a snapshot."`
}

func backupManager(ctx *cli.Context) (*backup.Manager, error) {
	if _, ok := ctx.Store.(*sqlite.Store); !ok {
		return nil, fmt.Errorf("backups are only supported for SQLite storage")
	}
	return backup.NewManager(ctx.Store.GetConfigPath(), backup.WithClock(ctx.Clock)), nil
}

type BackupCreateCmd struct{}

func (c *BackupCreateCmd) Run(ctx *cli.Context) error {
	mgr, err := backupManager(ctx)
	if err != nil {
		return err
	}
	path, err := mgr.Create()
	if err != nil {
		return err
	}
	ctx.Printf("✓ Backup created: %s\n", path)
	return nil
}

type BackupListCmd struct{}

func (c *BackupListCmd) Run(ctx *cli.Context) error {
	mgr, err := backupManager(ctx)
	if err != nil {
		return err
	}
	list, err := mgr.List()
	if err != nil {
		return err
	}
	if len(list) == 0 {
		ctx.Println("No backups found.")
		return nil
	}

	ctx.Printf("Backups in %s:\n", mgr.Dir())
	for _, b := range list {
		ctx.Printf("  %s  %s  %s\n", b.Name(), b.Timestamp.Format("2006-01-02 15:04:05"), humanize.Bytes(uint64(b.Size)))
	}
	return nil
}

type BackupRestoreCmd struct {
	Backup string `arg:"" help:"Snapshot name from 'hush backup list', or a path."`
	Yes    bool   `short:"y" help:"Do not ask for confirmation."`
}

func (c *BackupRestoreCmd) Run(ctx *cli.Context) error {
	mgr, err := backupManager(ctx)
	if err != nil {
		return err
	}
	ok, err := ctx.Confirm(fmt.Sprintf("Replace the current settings with %s?", c.Backup), c.Yes)
	if err != nil {
		return err
	}
	if !ok {
		ctx.Println("Aborted.")
		return nil
	}
	if err := ctx.Store.Close(); err != nil {
		return fmt.Errorf("failed to close database: %w", err)
	}

	saved, err := mgr.Restore(mgr.Resolve(c.Backup))
	if err != nil {
		return err
	}
	if saved != "" {
		ctx.Printf("Saved the current database as %s\n", saved)
	}
	ctx.Printf("✓ Restored %s\n", c.Backup)

	return ctx.Store.Load()
}
