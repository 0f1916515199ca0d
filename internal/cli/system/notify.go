package system

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/julianstephens/hush/internal/cli"
	"github.com/julianstephens/hush/internal/notifier"
)

// NotifyCmd passes one notification through the quiet hours gate.
type NotifyCmd struct {
	App         string   `arg:"" help:"Source application of the notification."`
	Ticker      string   `help:"Ticker text."`
	Body        []string `help:"Body text lines. Repeat for several lines." sep:"none"`
	Interactive bool     `help:"The user is currently interactive."`
	DryRun      bool     `help:"Report the verdict without sending or recording anything."`
}

func (c *NotifyCmd) Run(ctx *cli.Context) error {
	settings, err := ctx.Store.GetSettings()
	if err != nil {
		return fmt.Errorf("failed to get settings: %w", err)
	}

	gate := notifier.NewGate(ctx.Store, ctx.ResolveSender(settings), notifier.WithClock(ctx.Clock))
	n := notifier.Notification{
		App:             c.App,
		Ticker:          c.Ticker,
		Body:            c.Body,
		UserInteractive: c.Interactive,
	}

	if c.DryRun {
		st, err := gate.Evaluate(n)
		if err != nil {
			return err
		}
		verdict := "would send"
		if st.Active {
			verdict = "would mute"
		}
		ctx.Printf("%s: %s (%s)\n", c.App, verdict, st.Reason)
		if !st.Active {
			ctx.Println(n.Render())
		}
		return nil
	}

	sigCtx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	rec, err := gate.Deliver(sigCtx, n)
	if err != nil {
		return err
	}
	ctx.Printf("%s: %s (%s)\n", c.App, rec.Status(), rec.Reason)
	return nil
}
