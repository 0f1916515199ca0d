package models

import (
	"fmt"
	"time"

	"github.com/julianstephens/hush/internal/constants"
	"github.com/julianstephens/hush/internal/quiethours"
)

// Settings represents the persisted quiet hours configuration
type Settings struct {
	Locked           bool   `json:"locked"`             // administrative lock, quiet hours never apply while set
	Enabled          bool   `json:"enabled"`            // master switch
	Mode             string `json:"mode"`               // one of "off", "on", "auto", "wear"
	WeekdayStart     string `json:"weekday_start"`      // start on week days, e.g. "22:00"
	WeekdayEnd       string `json:"weekday_end"`        // end on week days, e.g. "07:00"
	WeekendStart     string `json:"weekend_start"`      // start on the remaining days
	WeekendEnd       string `json:"weekend_end"`        // end on the remaining days
	ActiveDays       string `json:"active_days"`        // comma separated day codes treated as week days (1 = Sunday)
	Interactive      bool   `json:"interactive"`        // also quiet while the user is interactive
	MuteLED          bool   `json:"mute_led"`           // suppress LED while quiet
	MuteVibration    bool   `json:"mute_vibration"`     // suppress vibration while quiet
	MuteSystemSounds bool   `json:"mute_system_sounds"` // suppress system sounds while quiet
	Timezone         string `json:"timezone"`           // IANA timezone name or "Local"
	NotifyURL        string `json:"notify_url"`         // Shoutrrr URL; empty means the local tray app
}

// Validate checks that every field can be converted into a quiet hours config.
func (s Settings) Validate() error {
	_, err := s.ToConfig()
	return err
}

// ToConfig converts persisted settings into an evaluation snapshot.
func (s Settings) ToConfig() (quiethours.Config, error) {
	mode, err := quiethours.ParseMode(s.Mode)
	if err != nil {
		return quiethours.Config{}, err
	}

	weekday, err := parseWindow(s.WeekdayStart, s.WeekdayEnd)
	if err != nil {
		return quiethours.Config{}, fmt.Errorf("weekday window: %w", err)
	}
	weekend, err := parseWindow(s.WeekendStart, s.WeekendEnd)
	if err != nil {
		return quiethours.Config{}, fmt.Errorf("weekend window: %w", err)
	}

	days, err := quiethours.ParseDays(s.ActiveDays)
	if err != nil {
		return quiethours.Config{}, fmt.Errorf("active days: %w", err)
	}

	return quiethours.Config{
		Locked:           s.Locked,
		Enabled:          s.Enabled,
		Mode:             mode,
		Weekday:          weekday,
		Weekend:          weekend,
		ActiveDays:       days,
		Interactive:      s.Interactive,
		MuteLED:          s.MuteLED,
		MuteVibration:    s.MuteVibration,
		MuteSystemSounds: s.MuteSystemSounds,
	}, nil
}

func parseWindow(start, end string) (quiethours.Window, error) {
	s, err := parseMinute(start)
	if err != nil {
		return quiethours.Window{}, err
	}
	e, err := parseMinute(end)
	if err != nil {
		return quiethours.Window{}, err
	}
	return quiethours.Window{Start: s, End: e}, nil
}

func parseMinute(v string) (int, error) {
	t, err := time.Parse(constants.TimeFormat, v)
	if err != nil {
		return 0, fmt.Errorf("invalid time %q (expected HH:MM)", v)
	}
	return t.Hour()*60 + t.Minute(), nil
}
