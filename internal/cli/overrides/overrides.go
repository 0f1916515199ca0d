package overrides

import (
	"errors"
	"fmt"
	"strings"

	"github.com/julianstephens/hush/internal/cli"
	"github.com/julianstephens/hush/internal/models"
	"github.com/julianstephens/hush/internal/storage"
)

type OverrideCmd struct {
	Add    OverrideAddCmd    `cmd:"" help:"Exempt an app from quiet hours."`
	Update OverrideUpdateCmd `cmd:"" help:"Change an existing app exemption."`
	List   OverrideListCmd   `cmd:"" default:"1" help:"List app exemptions."`
	Delete OverrideDeleteCmd `cmd:"" aliases:"rm" help:"Remove an app exemption."`
}

type OverrideAddCmd struct {
	App      string   `arg:"" help:"Application the notifications come from."`
	Keywords []string `help:"Keywords that cancel the exemption when found in the notification text." sep:","`
	NoIgnore bool     `help:"Store the override without exempting the app."`
}

func (c *OverrideAddCmd) Run(ctx *cli.Context) error {
	o := models.AppOverride{
		App:              strings.TrimSpace(c.App),
		IgnoreQuietHours: !c.NoIgnore,
		Keywords:         cleanKeywords(c.Keywords),
	}
	if err := ctx.Store.AddOverride(o); err != nil {
		if errors.Is(err, storage.ErrAlreadyExists) {
			return fmt.Errorf("override for %s already exists, use 'hush override update'", o.App)
		}
		return fmt.Errorf("failed to add override: %w", err)
	}

	ctx.Printf("Added override for %s\n", o.App)
	printKeywords(ctx, o.Keywords)
	return nil
}

type OverrideUpdateCmd struct {
	App           string   `arg:"" help:"Application to update."`
	Keywords      []string `help:"Replace the keyword list." sep:","`
	ClearKeywords bool     `help:"Remove every keyword."`
	Ignore        *bool    `help:"Whether the app ignores quiet hours (--ignore=false to stop)."`
}

func (c *OverrideUpdateCmd) Run(ctx *cli.Context) error {
	o, err := ctx.Store.GetOverride(c.App)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return fmt.Errorf("no override for %s", c.App)
		}
		return fmt.Errorf("failed to get override: %w", err)
	}

	if len(c.Keywords) == 0 && !c.ClearKeywords && c.Ignore == nil {
		ctx.Println("No changes specified.")
		return nil
	}
	switch {
	case c.ClearKeywords:
		o.Keywords = nil
	case len(c.Keywords) > 0:
		o.Keywords = cleanKeywords(c.Keywords)
	}
	if c.Ignore != nil {
		o.IgnoreQuietHours = *c.Ignore
	}

	if err := ctx.Store.UpdateOverride(o); err != nil {
		return fmt.Errorf("failed to update override: %w", err)
	}
	ctx.Printf("Updated override for %s\n", o.App)
	return nil
}

type OverrideListCmd struct{}

func (c *OverrideListCmd) Run(ctx *cli.Context) error {
	list, err := ctx.Store.GetAllOverrides()
	if err != nil {
		return fmt.Errorf("failed to list overrides: %w", err)
	}
	if len(list) == 0 {
		ctx.Println("No app overrides.")
		return nil
	}

	for _, o := range list {
		state := "exempt"
		if !o.IgnoreQuietHours {
			state = "follows quiet hours"
		}
		ctx.Printf("- %s (%s)\n", o.App, state)
		printKeywords(ctx, o.Keywords)
	}
	return nil
}

type OverrideDeleteCmd struct {
	App string `arg:"" help:"Application whose exemption to remove."`
	Yes bool   `short:"y" help:"Do not ask for confirmation."`
}

func (c *OverrideDeleteCmd) Run(ctx *cli.Context) error {
	if _, err := ctx.Store.GetOverride(c.App); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return fmt.Errorf("no override for %s", c.App)
		}
		return fmt.Errorf("failed to get override: %w", err)
	}
	ok, err := ctx.Confirm(fmt.Sprintf("Remove the override for %s?", c.App), c.Yes)
	if err != nil {
		return err
	}
	if !ok {
		ctx.Println("Aborted.")
		return nil
	}
	if err := ctx.Store.DeleteOverride(c.App); err != nil {
		return fmt.Errorf("failed to delete override: %w", err)
	}
	ctx.Printf("Deleted override for %s\n", c.App)
	return nil
}

func cleanKeywords(in []string) []string {
	var out []string
	for _, kw := range in {
		if kw = strings.TrimSpace(kw); kw != "" {
			out = append(out, kw)
		}
	}
	return out
}

func printKeywords(ctx *cli.Context, keywords []string) {
	if len(keywords) > 0 {
		ctx.Printf("  muted again on: %s\n", strings.Join(keywords, ", "))
	}
}
