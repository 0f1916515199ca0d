package tui

import (
	"fmt"

	"github.com/charmbracelet/huh"

	"github.com/julianstephens/hush/internal/models"
	"github.com/julianstephens/hush/internal/quiethours"
	"github.com/julianstephens/hush/internal/utils"
)

// settingsForm holds the values bound to the settings editor.
type settingsForm struct {
	Mode             string
	Enabled          bool
	WeekdayStart     string
	WeekdayEnd       string
	WeekendStart     string
	WeekendEnd       string
	ActiveDays       []int
	Interactive      bool
	MuteLED          bool
	MuteVibration    bool
	MuteSystemSounds bool
	Timezone         string
}

func newSettingsForm(s models.Settings) *settingsForm {
	fm := &settingsForm{
		Mode:             s.Mode,
		Enabled:          s.Enabled,
		WeekdayStart:     s.WeekdayStart,
		WeekdayEnd:       s.WeekdayEnd,
		WeekendStart:     s.WeekendStart,
		WeekendEnd:       s.WeekendEnd,
		Interactive:      s.Interactive,
		MuteLED:          s.MuteLED,
		MuteVibration:    s.MuteVibration,
		MuteSystemSounds: s.MuteSystemSounds,
		Timezone:         s.Timezone,
	}
	if days, err := quiethours.ParseDays(s.ActiveDays); err == nil {
		fm.ActiveDays = days.Codes()
	}
	return fm
}

// apply copies the form values over base. Fields the form does not edit,
// such as Locked and NotifyURL, keep their values from base.
func (fm *settingsForm) apply(base models.Settings) models.Settings {
	s := base
	s.Mode = fm.Mode
	s.Enabled = fm.Enabled
	s.WeekdayStart = fm.WeekdayStart
	s.WeekdayEnd = fm.WeekdayEnd
	s.WeekendStart = fm.WeekendStart
	s.WeekendEnd = fm.WeekendEnd
	s.ActiveDays = quiethours.NewDays(fm.ActiveDays...).String()
	s.Interactive = fm.Interactive
	s.MuteLED = fm.MuteLED
	s.MuteVibration = fm.MuteVibration
	s.MuteSystemSounds = fm.MuteSystemSounds
	s.Timezone = fm.Timezone
	return s
}

func validateClock(s string) error {
	if !utils.ValidateTimeFormat(s) {
		return fmt.Errorf("invalid time format, use HH:MM")
	}
	return nil
}

func newSettingsEditor(fm *settingsForm) *huh.Form {
	dayOptions := make([]huh.Option[int], 0, 7)
	for code := 1; code <= 7; code++ {
		dayOptions = append(dayOptions, huh.NewOption(utils.DayName(code), code))
	}

	return huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[string]().
				Title("Mode").
				Options(huh.NewOptions("off", "on", "auto", "wear")...).
				Value(&fm.Mode),
			huh.NewConfirm().
				Title("Quiet hours enabled").
				Value(&fm.Enabled),
		),
		huh.NewGroup(
			huh.NewInput().
				Title("Weekday start (HH:MM)").
				Value(&fm.WeekdayStart).
				Validate(validateClock),
			huh.NewInput().
				Title("Weekday end (HH:MM)").
				Value(&fm.WeekdayEnd).
				Validate(validateClock),
			huh.NewInput().
				Title("Weekend start (HH:MM)").
				Value(&fm.WeekendStart).
				Validate(validateClock),
			huh.NewInput().
				Title("Weekend end (HH:MM)").
				Value(&fm.WeekendEnd).
				Validate(validateClock),
		),
		huh.NewGroup(
			huh.NewMultiSelect[int]().
				Title("Week days").
				Description("Days that use the weekday window. The rest use the weekend window.").
				Options(dayOptions...).
				Value(&fm.ActiveDays),
		),
		huh.NewGroup(
			huh.NewConfirm().
				Title("Quiet while interactive").
				Value(&fm.Interactive),
			huh.NewConfirm().
				Title("Mute LED").
				Value(&fm.MuteLED),
			huh.NewConfirm().
				Title("Mute vibration").
				Value(&fm.MuteVibration),
			huh.NewConfirm().
				Title("Mute system sounds").
				Value(&fm.MuteSystemSounds),
			huh.NewInput().
				Title("Timezone (IANA name or 'Local')").
				Description("Examples: Local, UTC, America/New_York, Europe/London").
				Value(&fm.Timezone).
				Validate(func(s string) error {
					if !utils.ValidateTimezone(s) {
						return fmt.Errorf("invalid timezone name")
					}
					return nil
				}),
		),
	)
}
