package export

import (
	"fmt"
	"io"
	"time"

	ics "github.com/arran4/golang-ical"

	"github.com/javiermolinar/studyplan/internal/study"
	"github.com/javiermolinar/studyplan/internal/timeline"
)

const prodID = "-//studyplan//weekly schedule//EN"

// ICS writes one VEVENT per entry, dated on its weekday in the week that
// contains weekOf. Recurring entries repeat weekly.
func ICS(w io.Writer, entries []study.ScheduleEntry, resolver timeline.SubjectResolver, weekOf time.Time) error {
	cal := ics.NewCalendar()
	cal.SetMethod(ics.MethodPublish)
	cal.SetProductId(prodID)

	start := study.WeekStart(weekOf)
	stamp := weekOf.UTC()
	for _, e := range entries {
		s, end := e.StartMinutes(), e.EndMinutes()
		if s < 0 || end < 0 {
			continue
		}
		day := start.AddDate(0, 0, e.Day)
		b := timeline.NewBlock(e, resolver, study.DefaultAccent)

		ev := cal.AddEvent(e.ID + "@studyplan")
		ev.SetDtStampTime(stamp)
		if !e.CreatedAt.IsZero() {
			ev.SetCreatedTime(e.CreatedAt)
		}
		ev.SetStartAt(day.Add(time.Duration(s) * time.Minute))
		ev.SetEndAt(day.Add(time.Duration(end) * time.Minute))
		ev.SetSummary(b.SubjectName)
		ev.SetDescription(fmt.Sprintf("Study session (%s)", study.FormatDuration(b.Duration)))
		if e.Recurring {
			ev.SetProperty(ics.ComponentPropertyRrule, "FREQ=WEEKLY")
		}
	}

	if _, err := io.WriteString(w, cal.Serialize()); err != nil {
		return fmt.Errorf("writing calendar: %w", err)
	}
	return nil
}
