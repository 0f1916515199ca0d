package quiet

import (
	"fmt"

	"github.com/julianstephens/hush/internal/cli"
	"github.com/julianstephens/hush/internal/logger"
	"github.com/julianstephens/hush/internal/quiethours"
)

type ModeCmd struct {
	Set    ModeSetCmd    `cmd:"" help:"Set the quiet hours mode."`
	Toggle ModeToggleCmd `cmd:"" help:"Cycle off -> on -> auto -> off."`
	Show   ModeShowCmd   `cmd:"" default:"1" help:"Show the current mode."`
}

type ModeSetCmd struct {
	Mode string `arg:"" enum:"off,on,auto,wear" help:"One of off, on, auto, wear."`
}

func (c *ModeSetCmd) Run(ctx *cli.Context) error {
	mode, err := quiethours.ParseMode(c.Mode)
	if err != nil {
		return err
	}
	return setMode(ctx, mode)
}

type ModeToggleCmd struct{}

func (c *ModeToggleCmd) Run(ctx *cli.Context) error {
	settings, err := ctx.Store.GetSettings()
	if err != nil {
		return fmt.Errorf("failed to get settings: %w", err)
	}
	current, err := quiethours.ParseMode(settings.Mode)
	if err != nil {
		return err
	}
	return setMode(ctx, current.Next())
}

type ModeShowCmd struct{}

func (c *ModeShowCmd) Run(ctx *cli.Context) error {
	settings, err := ctx.Store.GetSettings()
	if err != nil {
		return fmt.Errorf("failed to get settings: %w", err)
	}
	ctx.Println(settings.Mode)
	return nil
}

func setMode(ctx *cli.Context, mode quiethours.Mode) error {
	settings, err := ctx.Store.GetSettings()
	if err != nil {
		return fmt.Errorf("failed to get settings: %w", err)
	}
	previous := settings.Mode
	settings.Mode = mode.String()
	if err := ctx.Store.SaveSettings(settings); err != nil {
		return fmt.Errorf("failed to save mode: %w", err)
	}
	logger.Info("Quiet hours mode changed", "from", previous, "to", settings.Mode)

	ctx.Printf("Quiet hours mode: %s\n", settings.Mode)
	if !settings.Enabled {
		ctx.Println("Note: quiet hours are disabled. Enable them with 'hush settings --enabled'.")
	}
	return nil
}
