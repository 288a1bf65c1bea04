package study

import (
	"fmt"
	"strings"
)

// TimeToMinutes converts "HH:MM" to minutes since midnight.
// Returns -1 for malformed input; validate with ParseClock first.
func TimeToMinutes(s string) int {
	m, err := ParseClock(s)
	if err != nil {
		return -1
	}
	return m
}

// ParseClock strictly parses "HH:MM" (00:00 through 23:59).
func ParseClock(s string) (int, error) {
	if len(s) != 5 || s[2] != ':' {
		return 0, ErrInvalidTimeFormat
	}
	h, okH := twoDigits(s[0:2])
	m, okM := twoDigits(s[3:5])
	if !okH || !okM || h > 23 || m > 59 {
		return 0, ErrInvalidTimeFormat
	}
	return h*60 + m, nil
}

func twoDigits(s string) (int, bool) {
	if s[0] < '0' || s[0] > '9' || s[1] < '0' || s[1] > '9' {
		return 0, false
	}
	return int(s[0]-'0')*10 + int(s[1]-'0'), true
}

// MinutesToTime converts minutes since midnight to "HH:MM".
// Hours are not wrapped: 1500 yields "25:00". Negative input yields "00:00".
func MinutesToTime(m int) string {
	if m < 0 {
		m = 0
	}
	return fmt.Sprintf("%02d:%02d", m/60, m%60)
}

// FormatTime12 converts "HH:MM" to a 12-hour "H:MM AM" label.
// Malformed input is returned unchanged.
func FormatTime12(s string) string {
	m, err := ParseClock(s)
	if err != nil {
		return s
	}
	h, mins := m/60, m%60
	period := "AM"
	if h >= 12 {
		period = "PM"
	}
	h12 := h % 12
	if h12 == 0 {
		h12 = 12
	}
	return fmt.Sprintf("%d:%02d %s", h12, mins, period)
}

// DurationMinutes returns end minus start in minutes, or 0 when either is malformed.
func DurationMinutes(start, end string) int {
	s, e := TimeToMinutes(start), TimeToMinutes(end)
	if s < 0 || e < 0 || e < s {
		return 0
	}
	return e - s
}

// FormatDuration formats minutes as a compact duration such as "1h30m".
func FormatDuration(minutes int) string {
	if minutes <= 0 {
		return "0m"
	}
	hours := minutes / 60
	mins := minutes % 60
	switch {
	case hours == 0:
		return fmt.Sprintf("%dm", mins)
	case mins == 0:
		return fmt.Sprintf("%dh", hours)
	default:
		return fmt.Sprintf("%dh%dm", hours, mins)
	}
}

var (
	dayNames  = []string{"Sunday", "Monday", "Tuesday", "Wednesday", "Thursday", "Friday", "Saturday"}
	dayShorts = []string{"Sun", "Mon", "Tue", "Wed", "Thu", "Fri", "Sat"}
)

// DayName returns the weekday name (0=Sunday).
func DayName(day int) string {
	if day < 0 || day > 6 {
		return ""
	}
	return dayNames[day]
}

// DayShort returns the abbreviated weekday name (0=Sunday).
func DayShort(day int) string {
	if day < 0 || day > 6 {
		return ""
	}
	return dayShorts[day]
}

// ParseDayName accepts a day index ("0".."6") or a name ("mon", "Monday").
func ParseDayName(s string) (int, error) {
	if d, ok := parseWeekday(s); ok {
		return d, nil
	}
	for i := range dayNames {
		if strings.EqualFold(s, dayNames[i]) || strings.EqualFold(s, dayShorts[i]) {
			return i, nil
		}
	}
	return 0, ErrInvalidDay
}
