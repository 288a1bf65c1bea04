// Package analytics derives study statistics, streaks and deadline
// summaries from study logs and tasks. All functions are pure; the
// current time is always passed in.
package analytics

import (
	"errors"
	"math"
	"slices"
	"time"

	"github.com/javiermolinar/studyplan/internal/study"
)

// ErrInvalidPeriod is returned for an unknown period name.
var ErrInvalidPeriod = errors.New("period must be 'week', 'month' or 'all'")

// Period selects which study logs are aggregated.
type Period string

const (
	PeriodWeek  Period = "week"
	PeriodMonth Period = "month"
	PeriodAll   Period = "all"
)

// ParsePeriod validates a period name.
func ParsePeriod(s string) (Period, error) {
	switch p := Period(s); p {
	case PeriodWeek, PeriodMonth, PeriodAll:
		return p, nil
	default:
		return "", ErrInvalidPeriod
	}
}

// Since returns the earliest log time included in the period, or the zero
// time for PeriodAll.
func (p Period) Since(now time.Time) time.Time {
	switch p {
	case PeriodWeek:
		return now.AddDate(0, 0, -7)
	case PeriodMonth:
		return now.AddDate(0, -1, 0)
	default:
		return time.Time{}
	}
}

// FilterByPeriod keeps the logs dated on or after the start of the period.
func FilterByPeriod(logs []study.StudyLog, p Period, now time.Time) []study.StudyLog {
	if p == PeriodAll || p == "" {
		return logs
	}
	since := p.Since(now)
	var out []study.StudyLog
	for _, l := range logs {
		if !l.Date.Before(since) {
			out = append(out, l)
		}
	}
	return out
}

// TotalMinutes sums log durations.
func TotalMinutes(logs []study.StudyLog) int {
	total := 0
	for _, l := range logs {
		total += l.Duration
	}
	return total
}

// Hours converts minutes to hours rounded to one decimal.
func Hours(minutes int) float64 {
	return math.Round(float64(minutes)/60*10) / 10
}

// MinutesByWeekday sums durations per weekday, Sunday first, in loc.
func MinutesByWeekday(logs []study.StudyLog, loc *time.Location) [7]int {
	var out [7]int
	for _, l := range logs {
		out[l.Date.In(loc).Weekday()] += l.Duration
	}
	return out
}

// SubjectMinutes is study time attributed to one subject reference.
type SubjectMinutes struct {
	SubjectID string
	Minutes   int
}

// MinutesBySubject sums durations per subject id, ordered by first appearance.
// Logs without a subject are ignored.
func MinutesBySubject(logs []study.StudyLog) []SubjectMinutes {
	var out []SubjectMinutes
	index := make(map[string]int)
	for _, l := range logs {
		if l.SubjectID == "" {
			continue
		}
		i, ok := index[l.SubjectID]
		if !ok {
			i = len(out)
			index[l.SubjectID] = i
			out = append(out, SubjectMinutes{SubjectID: l.SubjectID})
		}
		out[i].Minutes += l.Duration
	}
	return out
}

// Slice is one subject's share of study time.
type Slice struct {
	SubjectID string
	Name      string
	Color     string
	Minutes   int
}

// Distribution returns study time per subject in subject order.
// Time logged against subjects that no longer exist is grouped into a
// trailing "Unknown" slice.
func Distribution(logs []study.StudyLog, subjects []study.Subject) []Slice {
	bySubject := make(map[string]int)
	for _, sm := range MinutesBySubject(logs) {
		bySubject[sm.SubjectID] = sm.Minutes
	}

	var out []Slice
	for _, s := range subjects {
		mins, ok := bySubject[s.ID]
		if !ok {
			continue
		}
		delete(bySubject, s.ID)
		if mins == 0 {
			continue
		}
		color := s.Color
		if color == "" {
			color = study.DefaultAccent
		}
		out = append(out, Slice{SubjectID: s.ID, Name: s.Name, Color: color, Minutes: mins})
	}

	dangling := 0
	for _, mins := range bySubject {
		dangling += mins
	}
	if dangling > 0 {
		out = append(out, Slice{Name: study.UnknownSubject, Color: study.DefaultAccent, Minutes: dangling})
	}
	return out
}

// TopSubject returns the most studied subject's name and minutes.
// Ties go to the subject logged first. Returns "None" without logs.
func TopSubject(logs []study.StudyLog, subjects []study.Subject) (string, int) {
	name, top := "None", 0
	for _, sm := range MinutesBySubject(logs) {
		if sm.Minutes <= top {
			continue
		}
		top = sm.Minutes
		name = study.UnknownSubject
		for _, s := range subjects {
			if s.ID == sm.SubjectID {
				name = s.Name
				break
			}
		}
	}
	return name, top
}

// DayTotal is study time on one calendar day.
type DayTotal struct {
	Date    time.Time // midnight in the caller's location
	Minutes int
}

// DailyProgress returns per-day totals in date order.
func DailyProgress(logs []study.StudyLog, loc *time.Location) []DayTotal {
	totals := make(map[time.Time]int)
	for _, l := range logs {
		totals[study.TruncateToDay(l.Date.In(loc))] += l.Duration
	}
	out := make([]DayTotal, 0, len(totals))
	for d, m := range totals {
		out = append(out, DayTotal{Date: d, Minutes: m})
	}
	slices.SortFunc(out, func(a, b DayTotal) int { return a.Date.Compare(b.Date) })
	return out
}

// Completion summarises task progress.
type Completion struct {
	Completed int
	Pending   int
	Rate      int // percent, rounded
}

// Total returns the number of tasks.
func (c Completion) Total() int {
	return c.Completed + c.Pending
}

// TaskCompletion counts completed and pending tasks.
func TaskCompletion(tasks []study.Task) Completion {
	var c Completion
	for _, t := range tasks {
		if t.Completed {
			c.Completed++
		} else {
			c.Pending++
		}
	}
	if total := c.Total(); total > 0 {
		c.Rate = int(math.Round(float64(c.Completed) / float64(total) * 100))
	}
	return c
}
