package settings

import (
	"fmt"
	"strings"

	"github.com/julianstephens/hush/internal/cli"
	"github.com/julianstephens/hush/internal/quiethours"
	"github.com/julianstephens/hush/internal/utils"
)

type SettingsCmd struct {
	List bool `help:"List current settings."`

	Enabled     *bool   `help:"Turn quiet hours on or off entirely."`
	Locked      *bool   `help:"Suspend quiet hours without changing the rest of the configuration."`
	WeekdayFrom *string `name:"weekday-start" help:"Window start on week days (HH:MM)."`
	WeekdayTo   *string `name:"weekday-end" help:"Window end on week days (HH:MM)."`
	WeekendFrom *string `name:"weekend-start" help:"Window start on the other days (HH:MM)."`
	WeekendTo   *string `name:"weekend-end" help:"Window end on the other days (HH:MM)."`
	ActiveDays  *string `help:"Days using the weekday window, as names or codes (1 = Sunday), e.g. mon,tue,wed,thu,fri."`
	Interactive *bool   `help:"Also stay quiet while the user is interactive."`

	MuteLED          *bool `name:"mute-led" help:"Suppress the notification light while quiet."`
	MuteVibration    *bool `help:"Suppress vibration while quiet."`
	MuteSystemSounds *bool `help:"Suppress system sounds while quiet."`

	Timezone  *string `help:"IANA timezone used for the windows, or Local."`
	NotifyURL *string `name:"notify-url" help:"Shoutrrr URL to forward notifications to. Empty uses the tray app."`
}

func (c *SettingsCmd) Run(ctx *cli.Context) error {
	settings, err := ctx.Store.GetSettings()
	if err != nil {
		return fmt.Errorf("failed to get settings: %w", err)
	}

	if c.List {
		ctx.Println("Quiet Hours:")
		ctx.Printf("  Enabled:            %v\n", settings.Enabled)
		ctx.Printf("  Locked:             %v\n", settings.Locked)
		ctx.Printf("  Mode:               %s\n", settings.Mode)
		ctx.Printf("  Weekday Window:     %s-%s\n", settings.WeekdayStart, settings.WeekdayEnd)
		ctx.Printf("  Weekend Window:     %s-%s\n", settings.WeekendStart, settings.WeekendEnd)
		ctx.Printf("  Week Days:          %s\n", describeDays(settings.ActiveDays))
		ctx.Printf("  Interactive:        %v\n", settings.Interactive)
		ctx.Println("\nWhile Quiet:")
		ctx.Printf("  Mute LED:           %v\n", settings.MuteLED)
		ctx.Printf("  Mute Vibration:     %v\n", settings.MuteVibration)
		ctx.Printf("  Mute System Sounds: %v\n", settings.MuteSystemSounds)
		ctx.Println("\nGeneral:")
		ctx.Printf("  Timezone:           %s\n", settings.Timezone)
		notify := settings.NotifyURL
		if notify == "" {
			notify = "(tray app)"
		}
		ctx.Printf("  Notify URL:         %s\n", notify)
		return nil
	}

	updated := false
	setBool := func(dst *bool, v *bool) {
		if v != nil {
			*dst = *v
			updated = true
		}
	}
	setString := func(dst *string, v *string) {
		if v != nil {
			*dst = strings.TrimSpace(*v)
			updated = true
		}
	}

	setBool(&settings.Enabled, c.Enabled)
	setBool(&settings.Locked, c.Locked)
	setString(&settings.WeekdayStart, c.WeekdayFrom)
	setString(&settings.WeekdayEnd, c.WeekdayTo)
	setString(&settings.WeekendStart, c.WeekendFrom)
	setString(&settings.WeekendEnd, c.WeekendTo)
	setBool(&settings.Interactive, c.Interactive)
	setBool(&settings.MuteLED, c.MuteLED)
	setBool(&settings.MuteVibration, c.MuteVibration)
	setBool(&settings.MuteSystemSounds, c.MuteSystemSounds)
	setString(&settings.NotifyURL, c.NotifyURL)

	if c.ActiveDays != nil {
		codes, err := utils.ParseWeekdays(*c.ActiveDays)
		if err != nil {
			return err
		}
		settings.ActiveDays = quiethours.NewDays(codes...).String()
		updated = true
	}
	if c.Timezone != nil {
		tz := strings.TrimSpace(*c.Timezone)
		if !utils.ValidateTimezone(tz) {
			return fmt.Errorf("invalid timezone %q", tz)
		}
		settings.Timezone = tz
		updated = true
	}

	if !updated {
		ctx.Println("No changes specified. Use --list to view settings or flags to update them.")
		return nil
	}

	if err := ctx.Store.SaveSettings(settings); err != nil {
		return fmt.Errorf("failed to save settings: %w", err)
	}
	ctx.Println("Settings updated successfully.")
	return nil
}

func describeDays(s string) string {
	days, err := quiethours.ParseDays(s)
	if err != nil {
		return s + " (invalid)"
	}
	codes := days.Codes()
	if len(codes) == 0 {
		return "none (weekend window every day)"
	}
	names := make([]string, len(codes))
	for i, c := range codes {
		names[i] = utils.DayName(c)
	}
	return strings.Join(names, ",")
}
