package quiethours

import "time"

// lookahead covers a full week plus the transition into the next one.
const lookahead = 8 * 24 * time.Hour

// NextChange returns the first minute after now at which IsActiveGlobally
// flips, assuming the config and interactivity stay as given. ok is false when
// the verdict never changes within the next eight days, which is always the
// case outside auto mode.
func NextChange(cfg Config, now time.Time, userInteractive bool) (at time.Time, ok bool) {
	if cfg.Locked || !cfg.Enabled || cfg.Mode != ModeAuto {
		return time.Time{}, false
	}

	current := IsActiveGlobally(cfg, now, userInteractive)
	t := now.Truncate(time.Minute)
	end := now.Add(lookahead)
	for t = t.Add(time.Minute); t.Before(end); t = t.Add(time.Minute) {
		if IsActiveGlobally(cfg, t, userInteractive) != current {
			return t, true
		}
	}
	return time.Time{}, false
}
