package study

import (
	"strings"
	"time"
)

var weekdayMap = map[string]time.Weekday{
	"sunday":    time.Sunday,
	"monday":    time.Monday,
	"tuesday":   time.Tuesday,
	"wednesday": time.Wednesday,
	"thursday":  time.Thursday,
	"friday":    time.Friday,
	"saturday":  time.Saturday,
}

// TruncateToDay returns t with time set to midnight.
func TruncateToDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// WeekStart returns the Sunday that begins the week containing t.
func WeekStart(t time.Time) time.Time {
	t = TruncateToDay(t)
	return t.AddDate(0, 0, -int(t.Weekday()))
}

// ParseDeadline parses a task deadline relative to now.
//
// Accepted forms (case-insensitive):
//   - "YYYY-MM-DDTHH:MM" or "YYYY-MM-DD HH:MM"
//   - "YYYY-MM-DD" (end of that day, 23:59)
//   - "today", "tomorrow" (23:59)
//   - weekday names, meaning the next occurrence after today (23:59)
//
// Past deadlines are accepted so overdue work can be recorded.
func ParseDeadline(s string, now time.Time) (time.Time, error) {
	raw := strings.TrimSpace(s)
	input := strings.ToLower(raw)
	if input == "" {
		return time.Time{}, ErrInvalidDeadline
	}
	loc := now.Location()
	today := TruncateToDay(now)
	endOf := func(d time.Time) time.Time {
		y, m, day := d.Date()
		return time.Date(y, m, day, 23, 59, 0, 0, loc)
	}

	switch input {
	case "today":
		return endOf(today), nil
	case "tomorrow":
		return endOf(today.AddDate(0, 0, 1)), nil
	}

	if target, ok := weekdayMap[input]; ok {
		return endOf(nextWeekday(today, target)), nil
	}

	for _, layout := range []string{"2006-01-02T15:04", "2006-01-02 15:04"} {
		if t, err := time.ParseInLocation(layout, strings.Replace(raw, "t", "T", 1), loc); err == nil {
			return t, nil
		}
	}
	if t, err := time.ParseInLocation("2006-01-02", raw, loc); err == nil {
		return endOf(t), nil
	}
	return time.Time{}, ErrInvalidDeadline
}

// nextWeekday returns the next occurrence of the given weekday after today.
// If today is the target weekday, returns one week from today.
func nextWeekday(today time.Time, target time.Weekday) time.Time {
	daysUntil := int(target) - int(today.Weekday())
	if daysUntil <= 0 {
		daysUntil += 7
	}
	return today.AddDate(0, 0, daysUntil)
}
