package quiet

import (
	"github.com/julianstephens/hush/internal/cli"
	"github.com/julianstephens/hush/internal/logger"
	"github.com/julianstephens/hush/internal/tui"
)

type StatusCmd struct {
	At          string `help:"Evaluate at this time instead of now (RFC3339, 'YYYY-MM-DD HH:MM' or HH:MM)."`
	Interactive bool   `help:"Evaluate as if the user were interactive."`
	Plain       bool   `help:"Print only 'quiet' or 'notifying'."`
}

func (c *StatusCmd) Run(ctx *cli.Context) error {
	_, cfg, loc, err := ctx.LoadConfig()
	if err != nil {
		return err
	}
	now, err := ctx.EvalTime(c.At, loc)
	if err != nil {
		return err
	}

	view := tui.NewStatusView(cfg, now, c.Interactive)
	logger.Verdict("global", view.Status)
	if c.Plain {
		if view.Status.Active {
			ctx.Println("quiet")
		} else {
			ctx.Println("notifying")
		}
		return nil
	}

	ctx.Println(tui.RenderStatus(view))
	return nil
}
