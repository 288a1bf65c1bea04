package analytics

import (
	"fmt"
	"strings"
	"time"

	"github.com/javiermolinar/studyplan/internal/study"
)

// Options tunes Summarize.
type Options struct {
	Period     Period
	WindowDays int // deadline look-ahead, default 7
	UrgentDays int // deadline emphasis threshold, default 2
}

// DefaultOptions returns week period with a 7 day window and 2 urgent days.
func DefaultOptions() Options {
	return Options{Period: PeriodWeek, WindowDays: 7, UrgentDays: 2}
}

// Summary bundles every statistic shown on the dashboard and stats pages.
type Summary struct {
	Period           Period
	GeneratedAt      time.Time
	Subjects         int
	TotalMinutes     int
	Sessions         int
	Streak           int
	TopSubject       string
	TopMinutes       int
	MinutesByWeekday [7]int
	Distribution     []Slice
	Daily            []DayTotal
	Completion       Completion
	Deadlines        []Deadline
	Insights         []Insight
}

// Summarize computes a Summary. Period filtering applies to logs only;
// tasks and deadlines always use the full task list.
func Summarize(logs []study.StudyLog, tasks []study.Task, subjects []study.Subject, now time.Time, opts Options) Summary {
	if opts.Period == "" {
		opts.Period = PeriodWeek
	}
	if opts.WindowDays <= 0 {
		opts.WindowDays = 7
	}
	if opts.UrgentDays <= 0 {
		opts.UrgentDays = 2
	}

	filtered := FilterByPeriod(logs, opts.Period, now)
	top, topMins := TopSubject(filtered, subjects)

	return Summary{
		Period:           opts.Period,
		GeneratedAt:      now,
		Subjects:         len(subjects),
		TotalMinutes:     TotalMinutes(filtered),
		Sessions:         len(filtered),
		Streak:           Streak(filtered, now),
		TopSubject:       top,
		TopMinutes:       topMins,
		MinutesByWeekday: MinutesByWeekday(filtered, now.Location()),
		Distribution:     Distribution(filtered, subjects),
		Daily:            DailyProgress(filtered, now.Location()),
		Completion:       TaskCompletion(tasks),
		Deadlines:        UpcomingDeadlines(tasks, now, opts.WindowDays, opts.UrgentDays),
		Insights:         Insights(filtered, tasks, subjects, now),
	}
}

// Text renders the summary as plain text, used as model input by the coach.
func (s Summary) Text() string {
	var b strings.Builder
	fmt.Fprintf(&b, "Period: %s\n", s.Period)
	fmt.Fprintf(&b, "Total study time: %s over %d sessions\n", study.FormatDuration(s.TotalMinutes), s.Sessions)
	fmt.Fprintf(&b, "Streak: %d day(s)\n", s.Streak)
	fmt.Fprintf(&b, "Top subject: %s (%s)\n", s.TopSubject, study.FormatDuration(s.TopMinutes))
	fmt.Fprintf(&b, "Tasks: %d/%d done (%d%%)\n", s.Completion.Completed, s.Completion.Total(), s.Completion.Rate)

	b.WriteString("Minutes by weekday:")
	for d, m := range s.MinutesByWeekday {
		fmt.Fprintf(&b, " %s=%d", study.DayShort(d), m)
	}
	b.WriteString("\n")

	if len(s.Distribution) > 0 {
		b.WriteString("By subject:\n")
		for _, sl := range s.Distribution {
			fmt.Fprintf(&b, "  %s: %s\n", sl.Name, study.FormatDuration(sl.Minutes))
		}
	}
	if len(s.Deadlines) > 0 {
		b.WriteString("Upcoming deadlines:\n")
		for _, d := range s.Deadlines {
			fmt.Fprintf(&b, "  %s: %d day(s) left\n", d.Task.Title, d.DaysLeft)
		}
	}
	return b.String()
}
