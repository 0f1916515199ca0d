package main

import (
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/alecthomas/kong"

	"github.com/julianstephens/hush/internal/cli"
	"github.com/julianstephens/hush/internal/cli/overrides"
	"github.com/julianstephens/hush/internal/cli/quiet"
	"github.com/julianstephens/hush/internal/cli/settings"
	"github.com/julianstephens/hush/internal/cli/system"
	"github.com/julianstephens/hush/internal/constants"
	herrors "github.com/julianstephens/hush/internal/errors"
	"github.com/julianstephens/hush/internal/logger"
	"github.com/julianstephens/hush/internal/utils"
)

type CLI struct {
	Version kong.VersionFlag
	Config  string `help:"SQLite file path or PostgreSQL connection string. PostgreSQL credentials must NOT be embedded; use the OS keyring or HUSH_DB_CONNECTION instead." env:"HUSH_CONFIG"`
	Debug   bool   `help:"Log to stderr at debug level." env:"HUSH_DEBUG"`

	Init     system.InitCmd        `cmd:"" help:"Initialize hush storage."`
	Migrate  system.MigrateCmd     `cmd:"" help:"Run database migrations."`
	Doctor   system.DoctorCmd      `cmd:"" help:"Run health checks and diagnostics."`
	Status   quiet.StatusCmd       `cmd:"" help:"Show whether quiet hours are active." default:"1"`
	Check    quiet.CheckCmd        `cmd:"" help:"Check whether a notification would be muted."`
	Notify   system.NotifyCmd      `cmd:"" help:"Pass a notification through quiet hours."`
	Watch    system.WatchCmd       `cmd:"" help:"Live quiet hours view."`
	Mode     quiet.ModeCmd         `cmd:"" help:"Show or change the quiet hours mode."`
	Settings settings.SettingsCmd  `cmd:"" help:"Manage quiet hours settings."`
	Override overrides.OverrideCmd `cmd:"" help:"Manage per-app exemptions."`
	History  system.HistoryCmd     `cmd:"" help:"Show recent notification verdicts."`
	Keyring  system.KeyringCmd     `cmd:"" help:"Manage secrets in the OS keyring."`
	Backup   system.BackupCmd      `cmd:"" help:"Manage settings database backups."`
}

// commands that must not require an initialized store
var noLoad = map[string]bool{
	"init":    true,
	"keyring": true,
}

func main() {
	if err := run(os.Args[1:], os.Stdout); err != nil {
		herrors.Fatal(err)
	}
}

func run(args []string, stdout io.Writer) error {
	var cmdLine CLI
	parser, err := kong.New(&cmdLine,
		kong.Name(constants.AppName),
		kong.Description("Quiet hours for your notifications"),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{
			Compact:             true,
			NoExpandSubcommands: true,
		}),
		kong.Vars{"version": constants.Version},
	)
	if err != nil {
		return err
	}
	ctx, err := parser.Parse(args)
	if err != nil {
		return err
	}

	configDir := "."
	if p, err := utils.ExpandHome(constants.DefaultConfigPath); err == nil {
		configDir = filepath.Dir(p)
	}
	if err := logger.Init(logger.Config{Debug: cmdLine.Debug, ConfigDir: configDir}); err != nil {
		return err
	}

	store, err := cli.OpenStore(cmdLine.Config)
	if err != nil {
		return err
	}
	defer store.Close()

	if fields := strings.Fields(ctx.Command()); len(fields) > 0 && !noLoad[fields[0]] {
		if err := store.Load(); err != nil {
			return err
		}
	}
	logger.Debug("Running command", "command", ctx.Command(), "storage", store.GetConfigPath())

	return ctx.Run(&cli.Context{Store: store, Stdout: stdout})
}
