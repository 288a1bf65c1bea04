package ui

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/javiermolinar/studyplan/internal/analytics"
	"github.com/javiermolinar/studyplan/internal/llm"
	"github.com/javiermolinar/studyplan/internal/study"
	"github.com/javiermolinar/studyplan/internal/timeline"
)

func (a *App) statsCmd() *cobra.Command {
	var (
		period string
		coach  bool
	)

	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Show study statistics and insights",
		Example: `  studyplan stats
  studyplan stats --period=month
  studyplan stats --coach`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := a.ensureRepo(); err != nil {
				return err
			}
			if period == "" {
				period = a.config.Analytics.Period
			}
			p, err := analytics.ParsePeriod(period)
			if err != nil {
				return err
			}

			ctx := cmd.Context()
			summary := a.summarize(ctx, p)
			printSummary(a.out, summary)

			if coach {
				a.runCoach(ctx, summary)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&period, "period", "", "week, month or all (default from config)")
	cmd.Flags().BoolVar(&coach, "coach", false, "Ask the configured LLM for a coaching note")
	return cmd
}

func (a *App) summarize(ctx context.Context, p analytics.Period) analytics.Summary {
	return analytics.Summarize(
		a.store.StudyLogs(ctx), a.store.Tasks(ctx), a.store.Subjects(ctx), a.now(),
		analytics.Options{
			Period:     p,
			WindowDays: a.config.Analytics.DeadlineWindowDays,
			UrgentDays: a.config.Analytics.UrgentDays,
		})
}

func printSummary(w io.Writer, s analytics.Summary) {
	fmt.Fprintf(w, "%s  %s\n\n", formatHeader("Study stats"), formatMuted("("+string(s.Period)+")"))
	fmt.Fprintf(w, "  Total study time  %s (%.1fh)\n", formatSuccess(study.FormatDuration(s.TotalMinutes)), analytics.Hours(s.TotalMinutes))
	fmt.Fprintf(w, "  Sessions          %d\n", s.Sessions)
	fmt.Fprintf(w, "  Streak            %d day(s)\n", s.Streak)
	fmt.Fprintf(w, "  Subjects          %d\n", s.Subjects)
	fmt.Fprintf(w, "  Top subject       %s %s\n", formatAccent(s.TopSubject), formatMuted(study.FormatDuration(s.TopMinutes)))
	fmt.Fprintf(w, "  Tasks             %d/%d done %s %d%%\n",
		s.Completion.Completed, s.Completion.Total(), progressBar(s.Completion.Completed, s.Completion.Total(), 20), s.Completion.Rate)

	maxDay := 0
	for _, m := range s.MinutesByWeekday {
		maxDay = max(maxDay, m)
	}
	fmt.Fprintf(w, "\n%s\n", formatHeader("By weekday"))
	for d, m := range s.MinutesByWeekday {
		fmt.Fprintf(w, "  %s %s %s\n", study.DayShort(d), progressBar(m, maxDay, 20), study.FormatDuration(m))
	}

	if len(s.Distribution) > 0 {
		fmt.Fprintf(w, "\n%s\n", formatHeader("By subject"))
		for _, sl := range s.Distribution {
			fmt.Fprintf(w, "  %-20s %s %s\n", sl.Name, progressBar(sl.Minutes, s.TotalMinutes, 20), study.FormatDuration(sl.Minutes))
		}
	}

	if len(s.Deadlines) > 0 {
		fmt.Fprintf(w, "\n%s\n", formatHeader("Upcoming deadlines"))
		printDeadlines(w, s.Deadlines, s.GeneratedAt)
	}

	if len(s.Insights) > 0 {
		fmt.Fprintf(w, "\n%s\n", formatHeader("Insights"))
		for _, in := range s.Insights {
			fmt.Fprintf(w, "  %s\n", formatInsightKind(in))
		}
	}
}

func printDeadlines(w io.Writer, deadlines []analytics.Deadline, now time.Time) {
	for _, d := range deadlines {
		marker := " "
		if d.Urgent {
			marker = formatError("!")
		}
		fmt.Fprintf(w, "  %s %-30s %s  %s\n", marker, d.Task.Title,
			d.Task.Deadline.Format("Mon Jan 2 15:04"), formatSeverity(analytics.Relative(d.Task.Deadline, now)))
	}
}

// runCoach prints an LLM review. Failures are reported but never fail stats.
func (a *App) runCoach(ctx context.Context, summary analytics.Summary) {
	ctx, cancel := context.WithTimeout(ctx, 2*time.Minute)
	defer cancel()

	fmt.Fprintf(a.out, "\n%s\n", formatHeader("Coach"))
	client, err := llm.NewClient(ctx, llm.Options{
		Provider: a.config.LLM.Provider,
		Model:    a.config.LLM.Model,
		BaseURL:  a.config.LLM.BaseURL,
	})
	if err != nil {
		a.logger.Warn("coach unavailable", zap.Error(err))
		fmt.Fprintln(a.out, formatWarning("  Coach unavailable: "+err.Error()))
		return
	}

	weekly := timeline.Weekly(a.sessions.Store().All(ctx), timeline.NewSubjectIndex(a.store.Subjects(ctx)), a.timelineOptions())
	review, err := llm.NewCoach(client).Review(ctx, summary, weekly)
	if err != nil {
		a.logger.Warn("coach review failed", zap.Error(err))
		fmt.Fprintln(a.out, formatWarning("  Coach failed: "+err.Error()))
		return
	}
	PrintInsightWrapped(a.out, review, min(termWidth(), 100))
}

func (a *App) deadlinesCmd() *cobra.Command {
	var days int

	cmd := &cobra.Command{
		Use:   "deadlines",
		Short: "List incomplete tasks due soon",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := a.ensureRepo(); err != nil {
				return err
			}
			ctx := cmd.Context()
			if days <= 0 {
				days = a.config.Analytics.DeadlineWindowDays
			}
			now := a.now()
			tasks := a.store.Tasks(ctx)
			upcoming := analytics.UpcomingDeadlines(tasks, now, days, a.config.Analytics.UrgentDays)
			if overdue := analytics.Overdue(tasks, now); overdue > 0 {
				fmt.Fprintln(a.out, formatError(fmt.Sprintf("%d overdue task(s)", overdue)))
			}
			if len(upcoming) == 0 {
				fmt.Fprintf(a.out, "No deadlines in the next %d days.\n", days)
				return nil
			}
			printDeadlines(a.out, upcoming, now)
			return nil
		},
	}

	cmd.Flags().IntVar(&days, "days", 0, "Look-ahead window in days (default from config)")
	return cmd
}
