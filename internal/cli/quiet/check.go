package quiet

import (
	"errors"
	"fmt"

	"github.com/julianstephens/hush/internal/cli"
	"github.com/julianstephens/hush/internal/logger"
	"github.com/julianstephens/hush/internal/quiethours"
	"github.com/julianstephens/hush/internal/storage"
)

// CheckCmd answers whether one notification would be muted, without sending
// or recording it.
type CheckCmd struct {
	App         string   `arg:"" help:"Source application of the notification."`
	Ticker      string   `help:"Ticker text."`
	Body        []string `help:"Body text lines. Repeat for several lines." sep:"none"`
	At          string   `help:"Evaluate at this time instead of now."`
	Interactive bool     `help:"Evaluate as if the user were interactive."`
	Effects     bool     `help:"Also list which effects would be suppressed."`
}

func (c *CheckCmd) Run(ctx *cli.Context) error {
	_, cfg, loc, err := ctx.LoadConfig()
	if err != nil {
		return err
	}
	now, err := ctx.EvalTime(c.At, loc)
	if err != nil {
		return err
	}

	override, err := ctx.Store.GetOverride(c.App)
	if err != nil && !errors.Is(err, storage.ErrNotFound) {
		return fmt.Errorf("failed to get override for %s: %w", c.App, err)
	}

	text := quiethours.NotificationText{Ticker: c.Ticker, Body: c.Body}
	st := quiethours.EvaluateNotification(cfg, override.ToPerAppOverride(), text, now, c.Interactive)
	logger.Verdict(c.App, st)

	verdict := "allow"
	if st.Active {
		verdict = "mute"
	}
	ctx.Printf("%s: %s (%s) at %s\n", c.App, verdict, st.Reason, now.Format("Mon 2006-01-02 15:04 MST"))

	if c.Effects {
		for _, e := range []quiethours.Effect{
			quiethours.EffectSound,
			quiethours.EffectVibration,
			quiethours.EffectLED,
			quiethours.EffectSystemSounds,
		} {
			ctx.Printf("  %-14s muted=%v\n", e.String(), quiethours.ShouldMuteEffect(cfg, e, now, c.Interactive))
		}
	}
	return nil
}
