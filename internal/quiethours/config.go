// Package quiethours decides whether notification muting is active for a
// configuration snapshot at a given instant. Every function is pure: inputs are
// value snapshots and nothing is cached between calls.
package quiethours

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
)

// MinutesPerDay is the number of distinct minute-of-day values.
const MinutesPerDay = 24 * 60

// Mode selects between manual override and time-window evaluation.
type Mode int

const (
	ModeOff Mode = iota
	ModeOn
	ModeAuto
	ModeWear
)

func (m Mode) String() string {
	switch m {
	case ModeOff:
		return "off"
	case ModeOn:
		return "on"
	case ModeAuto:
		return "auto"
	case ModeWear:
		return "wear"
	default:
		return fmt.Sprintf("mode(%d)", int(m))
	}
}

// ParseMode parses the persisted string form of a mode (case-insensitive).
func ParseMode(s string) (Mode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "off":
		return ModeOff, nil
	case "on":
		return ModeOn, nil
	case "auto":
		return ModeAuto, nil
	case "wear":
		return ModeWear, nil
	default:
		return ModeOff, fmt.Errorf("unknown quiet hours mode %q", s)
	}
}

// Next returns the mode a quick toggle switches to: off -> on -> auto -> off.
// Wear is set by a connected wearable, so toggling it drops back to off.
func (m Mode) Next() Mode {
	switch m {
	case ModeOff:
		return ModeOn
	case ModeOn:
		return ModeAuto
	default:
		return ModeOff
	}
}

// Window is a minute-of-day range. Start > End spans midnight.
type Window struct {
	Start int
	End   int
}

// SpansMidnight reports whether the window wraps past 00:00.
func (w Window) SpansMidnight() bool {
	return normalizeMinute(w.Start) > normalizeMinute(w.End)
}

func (w Window) String() string {
	return FormatMinute(w.Start) + "-" + FormatMinute(w.End)
}

// Days is a set of day codes, 1 = Sunday through 7 = Saturday.
type Days uint8

// NewDays builds a set from day codes; codes outside 1..7 are dropped.
func NewDays(codes ...int) Days {
	var d Days
	for _, c := range codes {
		if c >= 1 && c <= 7 {
			d |= 1 << uint(c-1)
		}
	}
	return d
}

// ParseDays parses a comma separated list of day codes such as "2,3,4,5,6".
func ParseDays(s string) (Days, error) {
	var d Days
	for _, part := range strings.Split(s, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		code, err := strconv.Atoi(part)
		if err != nil || code < 1 || code > 7 {
			return 0, fmt.Errorf("invalid day code %q (want 1-7, 1 = Sunday)", part)
		}
		d |= NewDays(code)
	}
	return d, nil
}

// Contains reports whether the day code is in the set.
func (d Days) Contains(code int) bool {
	if code < 1 || code > 7 {
		return false
	}
	return d&(1<<uint(code-1)) != 0
}

// Codes returns the day codes in ascending order.
func (d Days) Codes() []int {
	var codes []int
	for c := 1; c <= 7; c++ {
		if d.Contains(c) {
			codes = append(codes, c)
		}
	}
	return codes
}

// String renders the set in the same form ParseDays accepts.
func (d Days) String() string {
	codes := d.Codes()
	sort.Ints(codes)
	parts := make([]string, len(codes))
	for i, c := range codes {
		parts[i] = strconv.Itoa(c)
	}
	return strings.Join(parts, ",")
}

// Config is the quiet hours configuration snapshot for one evaluation.
type Config struct {
	Locked      bool
	Enabled     bool
	Mode        Mode
	Weekday     Window
	Weekend     Window
	ActiveDays  Days
	Interactive bool

	MuteLED          bool
	MuteVibration    bool
	MuteSystemSounds bool
}

// PerAppOverride exempts one notification source from quiet hours. A keyword
// found in the notification text revokes the exemption.
type PerAppOverride struct {
	IgnoreQuietHours bool
	IgnoreKeywords   []string
}

// NotificationText is the visible text of a notification. An empty Ticker
// means the notification has none.
type NotificationText struct {
	Ticker string
	Body   []string
}

// FormatMinute renders a minute-of-day as HH:MM.
func FormatMinute(m int) string {
	m = normalizeMinute(m)
	return fmt.Sprintf("%02d:%02d", m/60, m%60)
}

func normalizeMinute(m int) int {
	m %= MinutesPerDay
	if m < 0 {
		m += MinutesPerDay
	}
	return m
}
