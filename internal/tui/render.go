package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/julianstephens/hush/internal/quiethours"
	"github.com/julianstephens/hush/internal/utils"
)

// StatusView is everything the status panel shows.
type StatusView struct {
	Config      quiethours.Config
	Status      quiethours.Status
	Now         time.Time
	Interactive bool
}

// NewStatusView evaluates cfg at now.
func NewStatusView(cfg quiethours.Config, now time.Time, interactive bool) StatusView {
	return StatusView{
		Config:      cfg,
		Status:      quiethours.Evaluate(cfg, now, interactive),
		Now:         now,
		Interactive: interactive,
	}
}

// RenderStatus draws the status panel used by both "hush status" and the
// watch view.
func RenderStatus(v StatusView) string {
	badge := loudStyle.Render("NOTIFYING")
	if v.Status.Active {
		badge = quietStyle.Render("QUIET")
	}

	rows := []string{
		titleStyle.Render("Quiet hours") + "  " + badge,
		"",
		row("Time", fmt.Sprintf("%s %s", utils.DayName(quiethours.DayOfWeek(v.Now)), v.Now.Format("15:04 MST"))),
		row("Mode", v.Config.Mode.String()),
		row("Reason", string(v.Status.Reason)),
	}

	if v.Config.Mode == quiethours.ModeAuto && v.Config.Enabled && !v.Config.Locked {
		rows = append(rows,
			row("Window", v.Status.Window.String()),
			row("Week days", dayNames(v.Config.ActiveDays)),
			row("Weekday", v.Config.Weekday.String()),
			row("Weekend", v.Config.Weekend.String()),
		)
		if next, ok := quiethours.NextChange(v.Config, v.Now, v.Interactive); ok {
			rows = append(rows, row("Next change", next.Format("Mon 15:04")))
		}
	}

	rows = append(rows,
		row("Interactive", fmt.Sprintf("%v (config %v)", v.Interactive, v.Config.Interactive)),
		row("Muting", mutedEffects(v)),
	)
	if v.Config.Locked {
		rows = append(rows, "", dangerStyle.Render("Locked: quiet hours are suspended"))
	}

	return boxStyle.Render(lipgloss.JoinVertical(lipgloss.Left, rows...))
}

func row(label, value string) string {
	return lipgloss.JoinHorizontal(lipgloss.Top, labelStyle.Render(label), value)
}

func dayNames(d quiethours.Days) string {
	codes := d.Codes()
	if len(codes) == 0 {
		return "none"
	}
	names := make([]string, len(codes))
	for i, c := range codes {
		names[i] = utils.DayName(c)
	}
	return strings.Join(names, ",")
}

func mutedEffects(v StatusView) string {
	var muted []string
	for _, e := range []quiethours.Effect{
		quiethours.EffectSound,
		quiethours.EffectVibration,
		quiethours.EffectLED,
		quiethours.EffectSystemSounds,
	} {
		if quiethours.ShouldMuteEffect(v.Config, e, v.Now, v.Interactive) {
			muted = append(muted, e.String())
		}
	}
	if len(muted) == 0 {
		return "nothing"
	}
	return strings.Join(muted, ", ")
}
