package models

import (
	"fmt"

	"github.com/julianstephens/hush/internal/constants"
)

// MapToSettings converts a map of key-value pairs to a Settings struct.
// Unknown keys are ignored.
func MapToSettings(data map[string]string) (Settings, error) {
	settings := Settings{}

	for key, value := range data {
		switch key {
		case constants.SettingLocked:
			settings.Locked = value == "true"
		case constants.SettingEnabled:
			settings.Enabled = value == "true"
		case constants.SettingMode:
			settings.Mode = value
		case constants.SettingWeekdayStart:
			settings.WeekdayStart = value
		case constants.SettingWeekdayEnd:
			settings.WeekdayEnd = value
		case constants.SettingWeekendStart:
			settings.WeekendStart = value
		case constants.SettingWeekendEnd:
			settings.WeekendEnd = value
		case constants.SettingActiveDays:
			settings.ActiveDays = value
		case constants.SettingInteractive:
			settings.Interactive = value == "true"
		case constants.SettingMuteLED:
			settings.MuteLED = value == "true"
		case constants.SettingMuteVibration:
			settings.MuteVibration = value == "true"
		case constants.SettingMuteSystemSounds:
			settings.MuteSystemSounds = value == "true"
		case constants.SettingTimezone:
			settings.Timezone = value
		case constants.SettingNotifyURL:
			settings.NotifyURL = value
		}
	}
	return settings, nil
}

// SettingsToMap converts a Settings struct to a map of key-value pairs.
func SettingsToMap(settings Settings) map[string]string {
	return map[string]string{
		constants.SettingLocked:           fmt.Sprintf("%v", settings.Locked),
		constants.SettingEnabled:          fmt.Sprintf("%v", settings.Enabled),
		constants.SettingMode:             settings.Mode,
		constants.SettingWeekdayStart:     settings.WeekdayStart,
		constants.SettingWeekdayEnd:       settings.WeekdayEnd,
		constants.SettingWeekendStart:     settings.WeekendStart,
		constants.SettingWeekendEnd:       settings.WeekendEnd,
		constants.SettingActiveDays:       settings.ActiveDays,
		constants.SettingInteractive:      fmt.Sprintf("%v", settings.Interactive),
		constants.SettingMuteLED:          fmt.Sprintf("%v", settings.MuteLED),
		constants.SettingMuteVibration:    fmt.Sprintf("%v", settings.MuteVibration),
		constants.SettingMuteSystemSounds: fmt.Sprintf("%v", settings.MuteSystemSounds),
		constants.SettingTimezone:         settings.Timezone,
		constants.SettingNotifyURL:        settings.NotifyURL,
	}
}

// DefaultSettings returns the settings written by a fresh init.
func DefaultSettings() Settings {
	return Settings{
		Locked:           constants.DefaultLocked,
		Enabled:          constants.DefaultEnabled,
		Mode:             constants.DefaultMode,
		WeekdayStart:     constants.DefaultWeekdayStart,
		WeekdayEnd:       constants.DefaultWeekdayEnd,
		WeekendStart:     constants.DefaultWeekendStart,
		WeekendEnd:       constants.DefaultWeekendEnd,
		ActiveDays:       constants.DefaultActiveDays,
		Interactive:      constants.DefaultInteractive,
		MuteLED:          constants.DefaultMuteLED,
		MuteVibration:    constants.DefaultMuteVibration,
		MuteSystemSounds: constants.DefaultMuteSystemSounds,
		Timezone:         constants.DefaultTimezone,
	}
}

// ApplyDefaultSettings applies default values to missing settings.
// Booleans cannot be told apart from an explicit false and are left alone.
func ApplyDefaultSettings(settings *Settings) {
	if settings.Mode == "" {
		settings.Mode = constants.DefaultMode
	}
	if settings.WeekdayStart == "" {
		settings.WeekdayStart = constants.DefaultWeekdayStart
	}
	if settings.WeekdayEnd == "" {
		settings.WeekdayEnd = constants.DefaultWeekdayEnd
	}
	if settings.WeekendStart == "" {
		settings.WeekendStart = constants.DefaultWeekendStart
	}
	if settings.WeekendEnd == "" {
		settings.WeekendEnd = constants.DefaultWeekendEnd
	}
	if settings.ActiveDays == "" {
		settings.ActiveDays = constants.DefaultActiveDays
	}
	if settings.Timezone == "" {
		settings.Timezone = constants.DefaultTimezone
	}
}
