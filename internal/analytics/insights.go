package analytics

import (
	"fmt"
	"math"
	"time"

	"github.com/javiermolinar/studyplan/internal/study"
)

// DailyGoalMinutes is the average that earns praise.
const DailyGoalMinutes = 120

// InsightKind classifies an insight for styling.
type InsightKind string

const (
	InsightTip     InsightKind = "tip"
	InsightSuccess InsightKind = "success"
	InsightWarning InsightKind = "warning"
	InsightDanger  InsightKind = "danger"
)

// Insight is one rule-based coaching message.
type Insight struct {
	Kind InsightKind
	Text string
}

// Insights applies the coaching rules to the already filtered logs.
// The daily average always divides by seven days.
func Insights(logs []study.StudyLog, tasks []study.Task, subjects []study.Subject, now time.Time) []Insight {
	var out []Insight

	total := TotalMinutes(logs)
	if total == 0 {
		out = append(out, Insight{
			Kind: InsightWarning,
			Text: "Start logging your study sessions to see personalized insights here.",
		})
	} else {
		avg := int(math.Round(float64(total) / 7))
		if float64(total)/7 >= DailyGoalMinutes {
			out = append(out, Insight{
				Kind: InsightSuccess,
				Text: fmt.Sprintf("Great work! You're averaging %d minutes per day.", avg),
			})
		} else {
			out = append(out, Insight{
				Kind: InsightTip,
				Text: fmt.Sprintf("Try to increase your daily study time. You're currently at %d min/day.", avg),
			})
		}
	}

	if overdue := Overdue(tasks, now); overdue > 0 {
		plural := ""
		if overdue > 1 {
			plural = "s"
		}
		out = append(out, Insight{
			Kind: InsightDanger,
			Text: fmt.Sprintf("You have %d overdue task%s. Try to catch up soon.", overdue, plural),
		})
	}

	if len(subjects) > 1 && len(logs) > 0 {
		studied := len(MinutesBySubject(logs))
		if studied < len(subjects) {
			out = append(out, Insight{
				Kind: InsightWarning,
				Text: fmt.Sprintf("You've only studied %d of %d subjects. Try to balance your time.", studied, len(subjects)),
			})
		}
	}

	return out
}
