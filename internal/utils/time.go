package utils

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/julianstephens/hush/internal/constants"
)

// LoadLocation loads a timezone location from an IANA timezone name.
// If the timezone is "Local" or empty, it returns the system's local timezone.
func LoadLocation(timezone string) (*time.Location, error) {
	if timezone == "" || timezone == "Local" {
		return time.Local, nil
	}
	return time.LoadLocation(timezone)
}

// NowInTimezone returns the current time in the specified timezone.
func NowInTimezone(timezone string) (time.Time, error) {
	return InTimezone(time.Now(), timezone)
}

// InTimezone converts t into the specified timezone.
func InTimezone(t time.Time, timezone string) (time.Time, error) {
	loc, err := LoadLocation(timezone)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid timezone %q: %w", timezone, err)
	}
	return t.In(loc), nil
}

// ParseTime parses a time string in the standard format (HH:MM).
func ParseTime(timeStr string) (time.Time, error) {
	return time.Parse(constants.TimeFormat, timeStr)
}

// ParseTimeToMinutes parses a time string (HH:MM) and returns the number of minutes from midnight.
func ParseTimeToMinutes(timeStr string) (int, error) {
	t, err := ParseTime(timeStr)
	if err != nil {
		return 0, err
	}
	return t.Hour()*60 + t.Minute(), nil
}

// ParseAt parses an evaluation instant for the check/status commands. It
// accepts RFC3339, "YYYY-MM-DD HH:MM" and a bare "HH:MM" (today), the last two
// interpreted in loc.
func ParseAt(s string, now time.Time, loc *time.Location) (time.Time, error) {
	s = strings.TrimSpace(s)
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t.In(loc), nil
	}
	if t, err := time.ParseInLocation(constants.DateFormat+" "+constants.TimeFormat, s, loc); err == nil {
		return t, nil
	}
	if t, err := ParseTime(s); err == nil {
		local := now.In(loc)
		return time.Date(local.Year(), local.Month(), local.Day(), t.Hour(), t.Minute(), 0, 0, loc), nil
	}
	return time.Time{}, fmt.Errorf("invalid time %q (expected RFC3339, YYYY-MM-DD HH:MM or HH:MM)", s)
}

// ParseWeekdays parses a comma-separated list of day names or codes into
// day codes (1 = Sunday ... 7 = Saturday).
func ParseWeekdays(s string) ([]int, error) {
	dayMap := map[string]int{
		"sun": 1, "sunday": 1,
		"mon": 2, "monday": 2,
		"tue": 3, "tuesday": 3,
		"wed": 4, "wednesday": 4,
		"thu": 5, "thursday": 5,
		"fri": 6, "friday": 6,
		"sat": 7, "saturday": 7,
	}

	var codes []int
	for _, part := range strings.Split(s, ",") {
		part = strings.TrimSpace(strings.ToLower(part))
		if part == "" {
			continue
		}
		if code, ok := dayMap[part]; ok {
			codes = append(codes, code)
			continue
		}
		num, err := strconv.Atoi(part)
		if err != nil || num < 1 || num > 7 {
			return nil, fmt.Errorf("invalid weekday: %s", part)
		}
		codes = append(codes, num)
	}
	return codes, nil
}

// DayName returns the short English name of a day code.
func DayName(code int) string {
	if code < 1 || code > 7 {
		return "?"
	}
	return time.Weekday(code - 1).String()[:3]
}

// ValidateTimeFormat checks if the string matches the standard time format.
func ValidateTimeFormat(timeStr string) bool {
	_, err := ParseTime(timeStr)
	return err == nil
}

// ValidateTimezone checks if the timezone name is valid.
func ValidateTimezone(timezone string) bool {
	if timezone == "" || timezone == "Local" {
		return true
	}
	_, err := time.LoadLocation(timezone)
	return err == nil
}
