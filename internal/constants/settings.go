package constants

const (
	// Quiet Hours Settings
	SettingLocked           = "qh_locked"
	SettingEnabled          = "qh_enabled"
	SettingMode             = "qh_mode"
	SettingWeekdayStart     = "qh_start"
	SettingWeekdayEnd       = "qh_end"
	SettingWeekendStart     = "qh_start_alt"
	SettingWeekendEnd       = "qh_end_alt"
	SettingActiveDays       = "qh_weekdays"
	SettingInteractive      = "qh_interactive"
	SettingMuteLED          = "qh_mute_led"
	SettingMuteVibration    = "qh_mute_vibe"
	SettingMuteSystemSounds = "qh_mute_system_sounds"

	// General Settings
	SettingTimezone  = "timezone"
	SettingNotifyURL = "notify_url"

	// Default Settings Values
	DefaultLocked           = false
	DefaultEnabled          = false
	DefaultMode             = "auto"
	DefaultWeekdayStart     = "22:00"
	DefaultWeekdayEnd       = "07:00"
	DefaultWeekendStart     = "23:00"
	DefaultWeekendEnd       = "09:00"
	DefaultActiveDays       = "2,3,4,5,6"
	DefaultInteractive      = false
	DefaultMuteLED          = true
	DefaultMuteVibration    = true
	DefaultMuteSystemSounds = false
	DefaultTimezone         = "Local" // Use system local timezone by default
)
