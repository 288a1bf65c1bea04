package analytics

import (
	"fmt"
	"math"
	"slices"
	"time"

	"github.com/javiermolinar/studyplan/internal/study"
)

const day = 24 * time.Hour

// Streak counts consecutive calendar days, ending today, with at least one
// study log. Days are taken in now's location. Returns 0 when nothing was
// logged today.
func Streak(logs []study.StudyLog, now time.Time) int {
	if len(logs) == 0 {
		return 0
	}
	loc := now.Location()
	days := make(map[time.Time]bool, len(logs))
	for _, l := range logs {
		days[study.TruncateToDay(l.Date.In(loc))] = true
	}

	streak := 0
	for d := study.TruncateToDay(now); days[d]; d = d.AddDate(0, 0, -1) {
		streak++
	}
	return streak
}

// Deadline is an incomplete task due soon.
type Deadline struct {
	Task     study.Task
	DaysLeft int
	Urgent   bool
}

// DaysLeft returns ceil((deadline - now) / 24h).
// A deadline passed by less than a day rounds to 0.
func DaysLeft(deadline, now time.Time) int {
	v := math.Ceil(float64(deadline.Sub(now)) / float64(day))
	if v == 0 {
		return 0 // normalise -0
	}
	return int(v)
}

// UpcomingDeadlines lists incomplete tasks whose DaysLeft is within
// [0, window], sorted by DaysLeft then deadline. Tasks with at most
// urgent days left are flagged.
func UpcomingDeadlines(tasks []study.Task, now time.Time, window, urgent int) []Deadline {
	var out []Deadline
	for _, t := range tasks {
		if t.Completed {
			continue
		}
		left := DaysLeft(t.Deadline, now)
		if left < 0 || left > window {
			continue
		}
		out = append(out, Deadline{Task: t, DaysLeft: left, Urgent: left <= urgent})
	}
	slices.SortStableFunc(out, func(a, b Deadline) int {
		if a.DaysLeft != b.DaysLeft {
			return a.DaysLeft - b.DaysLeft
		}
		return a.Task.Deadline.Compare(b.Task.Deadline)
	})
	return out
}

// Overdue counts incomplete tasks whose deadline has passed.
func Overdue(tasks []study.Task, now time.Time) int {
	n := 0
	for _, t := range tasks {
		if !t.Completed && t.Deadline.Before(now) {
			n++
		}
	}
	return n
}

// Severity grades a deadline badge.
type Severity string

const (
	SeverityGreen  Severity = "green"
	SeverityYellow Severity = "yellow"
	SeverityRed    Severity = "red"
)

// Badge is a short relative description of a deadline.
type Badge struct {
	Text     string
	Severity Severity
	Overdue  bool
}

// Relative describes how far away deadline is from now.
func Relative(deadline, now time.Time) Badge {
	diff := deadline.Sub(now)
	if diff < 0 {
		return Badge{Text: "Overdue", Severity: SeverityRed, Overdue: true}
	}

	minutes := int(diff / time.Minute)
	hours := minutes / 60
	days := hours / 24

	switch {
	case days > 7:
		return Badge{Text: fmt.Sprintf("%dd left", days), Severity: SeverityGreen}
	case days > 1:
		return Badge{Text: fmt.Sprintf("%dd left", days), Severity: SeverityYellow}
	case days == 1:
		return Badge{Text: "Tomorrow", Severity: SeverityYellow}
	case hours > 0:
		return Badge{Text: fmt.Sprintf("%dh left", hours), Severity: SeverityRed}
	default:
		return Badge{Text: fmt.Sprintf("%dm left", minutes), Severity: SeverityRed}
	}
}
