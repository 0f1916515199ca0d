package quiethours

import (
	"strings"
	"time"
)

// Reason explains a quiet hours verdict.
type Reason string

const (
	ReasonLocked        Reason = "locked"
	ReasonDisabled      Reason = "disabled"
	ReasonWear          Reason = "wear"
	ReasonManualOn      Reason = "manual-on"
	ReasonManualOff     Reason = "manual-off"
	ReasonWindow        Reason = "window"
	ReasonInteractive   Reason = "interactive"
	ReasonTransition    Reason = "transition"
	ReasonOutsideWindow Reason = "outside-window"
	ReasonExempt        Reason = "exempt"
	ReasonKeyword       Reason = "keyword"
)

// Status is a verdict together with the rule that produced it.
type Status struct {
	Active bool
	Reason Reason
	// Window is the effective window after transition adjustment. Only set
	// in auto mode.
	Window Window
	// Day is the day code (1 = Sunday) the window was selected for.
	Day int
}

// Effect is a side effect of a notification that quiet hours may suppress.
type Effect int

const (
	EffectSound Effect = iota
	EffectVibration
	EffectLED
	EffectSystemSounds
)

func (e Effect) String() string {
	switch e {
	case EffectSound:
		return "sound"
	case EffectVibration:
		return "vibration"
	case EffectLED:
		return "led"
	case EffectSystemSounds:
		return "system-sounds"
	default:
		return "unknown"
	}
}

// IsActiveGlobally reports whether quiet hours are active at now, ignoring
// any per-app override.
func IsActiveGlobally(cfg Config, now time.Time, userInteractive bool) bool {
	return Evaluate(cfg, now, userInteractive).Active
}

// Evaluate is IsActiveGlobally with the reason for the verdict attached.
func Evaluate(cfg Config, now time.Time, userInteractive bool) Status {
	if cfg.Locked {
		return Status{Reason: ReasonLocked}
	}
	if !cfg.Enabled {
		return Status{Reason: ReasonDisabled}
	}

	switch cfg.Mode {
	case ModeWear:
		return Status{Active: true, Reason: ReasonWear}
	case ModeOn:
		return Status{Active: true, Reason: ReasonManualOn}
	case ModeAuto:
		// handled below
	default:
		return Status{Reason: ReasonManualOff}
	}

	day := DayOfWeek(now)
	res := evaluateWindow(cfg, day, MinuteOfDay(now))
	st := Status{Window: res.window, Day: day}
	switch {
	case res.active:
		st.Active, st.Reason = true, ReasonWindow
	case cfg.Interactive && userInteractive:
		st.Active, st.Reason = true, ReasonInteractive
	case res.cutoff:
		st.Reason = ReasonTransition
	default:
		st.Reason = ReasonOutsideWindow
	}
	return st
}

// ShouldMuteNotification reports whether a notification from a source with
// the given override should be muted at now.
func ShouldMuteNotification(cfg Config, app PerAppOverride, text NotificationText, now time.Time, userInteractive bool) bool {
	return EvaluateNotification(cfg, app, text, now, userInteractive).Active
}

// EvaluateNotification is ShouldMuteNotification with the reason attached.
func EvaluateNotification(cfg Config, app PerAppOverride, text NotificationText, now time.Time, userInteractive bool) Status {
	if cfg.Locked {
		return Status{Reason: ReasonLocked}
	}
	if !cfg.Enabled {
		return Status{Reason: ReasonDisabled}
	}
	if cfg.Mode == ModeWear {
		return Status{Active: true, Reason: ReasonWear}
	}

	if app.IgnoreQuietHours {
		if !hasKeyword(app.IgnoreKeywords, text) {
			return Status{Reason: ReasonExempt}
		}
		st := Evaluate(cfg, now, userInteractive)
		if st.Active {
			st.Reason = ReasonKeyword
		}
		return st
	}

	return Evaluate(cfg, now, userInteractive)
}

// ShouldMuteEffect reports whether a single effect is suppressed at now.
// Notification sound is always muted while quiet hours are active; the other
// effects follow their mute flags.
func ShouldMuteEffect(cfg Config, effect Effect, now time.Time, userInteractive bool) bool {
	if !IsActiveGlobally(cfg, now, userInteractive) {
		return false
	}
	switch effect {
	case EffectSound:
		return true
	case EffectVibration:
		return cfg.MuteVibration
	case EffectLED:
		return cfg.MuteLED
	case EffectSystemSounds:
		return cfg.MuteSystemSounds
	default:
		return false
	}
}

// DayOfWeek returns the day code of t in its own location, 1 = Sunday.
func DayOfWeek(t time.Time) int {
	return int(t.Weekday()) + 1
}

// MinuteOfDay returns minutes since midnight of t in its own location.
func MinuteOfDay(t time.Time) int {
	return t.Hour()*60 + t.Minute()
}

type windowResult struct {
	active bool
	cutoff bool
	window Window
}

// evaluateWindow applies the auto-mode window rules for a day code and
// minute-of-day. Both transition checks run on every call, weekday to
// weekend first.
func evaluateWindow(cfg Config, day, minute int) windowResult {
	minute = normalizeMinute(minute)
	wd := Window{Start: normalizeMinute(cfg.Weekday.Start), End: normalizeMinute(cfg.Weekday.End)}
	we := Window{Start: normalizeMinute(cfg.Weekend.Start), End: normalizeMinute(cfg.Weekend.End)}

	isWeekday := cfg.ActiveDays.Contains(day)
	nextIsWeekday := cfg.ActiveDays.Contains(day%7 + 1)

	w := we
	if isWeekday {
		w = wd
	}

	// Past today's weekday window with a day off tomorrow: the weekend start
	// applies tonight if the weekend window reaches into today at all.
	if isWeekday && !nextIsWeekday && minute > wd.End {
		if we.Start > we.End {
			w.Start = we.Start
		} else {
			return windowResult{cutoff: true, window: w}
		}
	}
	if !isWeekday && nextIsWeekday && minute > we.End {
		if wd.Start > wd.End {
			w.Start = wd.Start
		} else {
			return windowResult{cutoff: true, window: w}
		}
	}

	var active bool
	if w.Start <= w.End {
		active = minute >= w.Start && minute < w.End
	} else {
		active = minute >= w.Start || minute < w.End
	}
	return windowResult{active: active, window: w}
}

func hasKeyword(keywords []string, text NotificationText) bool {
	haystacks := make([]string, 0, len(text.Body)+1)
	if text.Ticker != "" {
		haystacks = append(haystacks, strings.ToLower(text.Ticker))
	}
	for _, b := range text.Body {
		if b != "" {
			haystacks = append(haystacks, strings.ToLower(b))
		}
	}

	for _, kw := range keywords {
		kw = strings.ToLower(strings.TrimSpace(kw))
		if kw == "" {
			continue
		}
		for _, h := range haystacks {
			if strings.Contains(h, kw) {
				return true
			}
		}
	}
	return false
}
