package ui

import (
	"context"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/javiermolinar/studyplan/internal/study"
	"github.com/javiermolinar/studyplan/internal/timeline"
)

func (a *App) scheduleCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "schedule",
		Short: "Plan weekly study sessions",
	}
	cmd.AddCommand(a.scheduleAddCmd(), a.scheduleEditCmd(), a.scheduleDeleteCmd(), a.scheduleShowCmd())
	return cmd
}

// dayArg accepts an index or a weekday name and returns the index as text,
// which is what the session form validates.
func dayArg(s string) (string, error) {
	d, err := study.ParseDayName(s)
	if err != nil {
		return "", &study.ValidationError{Field: "day", Reason: err}
	}
	return strconv.Itoa(d), nil
}

func (a *App) scheduleAddCmd() *cobra.Command {
	var (
		subject   string
		day       string
		start     string
		end       string
		recurring bool
	)

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Add a study session",
		Long: `Add a study session to the weekly schedule.

Sessions on the same day may not overlap; touching sessions are fine.`,
		Example: `  studyplan schedule add --subject=Math --day=monday --start=09:00 --end=10:30 --recurring`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := a.ensureRepo(); err != nil {
				return err
			}
			ctx := cmd.Context()
			d, err := dayArg(day)
			if err != nil {
				return err
			}
			res, err := a.sessions.Submit(ctx, study.ScheduleForm{
				SubjectID: a.subjectRef(ctx, subject),
				Day:       d,
				StartTime: start,
				EndTime:   end,
				Recurring: recurring,
			}, "")
			if err != nil {
				return err
			}
			a.printSubmitted(ctx, "Scheduled", res.Entry)
			return nil
		},
	}

	cmd.Flags().StringVar(&subject, "subject", "", "Subject name or id (required)")
	cmd.Flags().StringVar(&day, "day", "", "Day: 0-6 (0=Sunday) or a weekday name (required)")
	cmd.Flags().StringVar(&start, "start", "", "Start time (HH:MM, required)")
	cmd.Flags().StringVar(&end, "end", "", "End time (HH:MM, required)")
	cmd.Flags().BoolVar(&recurring, "recurring", false, "Repeat every week")

	_ = cmd.MarkFlagRequired("subject")
	_ = cmd.MarkFlagRequired("day")
	_ = cmd.MarkFlagRequired("start")
	_ = cmd.MarkFlagRequired("end")

	return cmd
}

func (a *App) scheduleEditCmd() *cobra.Command {
	var (
		subject   string
		day       string
		start     string
		end       string
		recurring bool
	)

	cmd := &cobra.Command{
		Use:     "edit [session-id]",
		Short:   "Change a study session",
		Example: `  studyplan schedule edit 3f9a1c2e --start=10:00 --end=11:00`,
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.ensureRepo(); err != nil {
				return err
			}
			ctx := cmd.Context()
			store := a.sessions.Store()

			id, err := matchID(entryIDs(store.All(ctx)), args[0])
			if err != nil {
				return fmt.Errorf("session %w", err)
			}
			current, _ := store.Get(ctx, id)

			form := study.ScheduleForm{
				SubjectID: current.SubjectID,
				Day:       strconv.Itoa(current.Day),
				StartTime: current.StartTime,
				EndTime:   current.EndTime,
				Recurring: current.Recurring,
			}
			flags := cmd.Flags()
			if flags.Changed("subject") {
				form.SubjectID = a.subjectRef(ctx, subject)
			}
			if flags.Changed("day") {
				if form.Day, err = dayArg(day); err != nil {
					return err
				}
			}
			if flags.Changed("start") {
				form.StartTime = start
			}
			if flags.Changed("end") {
				form.EndTime = end
			}
			if flags.Changed("recurring") {
				form.Recurring = recurring
			}

			res, err := a.sessions.Submit(ctx, form, id)
			if err != nil {
				return err
			}
			a.printSubmitted(ctx, "Updated", res.Entry)
			return nil
		},
	}

	cmd.Flags().StringVar(&subject, "subject", "", "Subject name or id")
	cmd.Flags().StringVar(&day, "day", "", "Day: 0-6 (0=Sunday) or a weekday name")
	cmd.Flags().StringVar(&start, "start", "", "Start time (HH:MM)")
	cmd.Flags().StringVar(&end, "end", "", "End time (HH:MM)")
	cmd.Flags().BoolVar(&recurring, "recurring", false, "Repeat every week")
	return cmd
}

func (a *App) scheduleDeleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete [session-id]",
		Short: "Remove a study session",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.ensureRepo(); err != nil {
				return err
			}
			ctx := cmd.Context()
			id, err := matchID(entryIDs(a.sessions.Store().All(ctx)), args[0])
			if err != nil {
				return fmt.Errorf("session %w", err)
			}
			if err := a.sessions.Remove(ctx, id); err != nil {
				return err
			}
			fmt.Fprintf(a.out, "%s %s\n", formatSuccess("Removed session"), formatMuted(shortID(id)))
			return nil
		},
	}
}

func (a *App) scheduleShowCmd() *cobra.Command {
	var (
		view      string
		day       string
		showEmpty bool
	)

	cmd := &cobra.Command{
		Use:   "show",
		Short: "Show the daily or weekly schedule",
		Example: `  studyplan schedule show
  studyplan schedule show --view=weekly
  studyplan schedule show --day=friday --empty`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := a.ensureRepo(); err != nil {
				return err
			}
			ctx := cmd.Context()
			if view == "" {
				view = a.store.Settings(ctx).DefaultView
			}
			entries := a.sessions.Store().All(ctx)
			resolver := timeline.NewSubjectIndex(a.store.Subjects(ctx))
			opts := a.timelineOptions()

			switch view {
			case "weekly", "week":
				printWeekly(a.out, timeline.Weekly(entries, resolver, opts))
			case "daily", "day", "":
				d := int(a.now().Weekday())
				if day != "" {
					var err error
					if d, err = study.ParseDayName(day); err != nil {
						return &study.ValidationError{Field: "day", Reason: err}
					}
				}
				printDaily(a.out, timeline.Daily(entries, d, resolver, opts), showEmpty)
			default:
				return fmt.Errorf("unknown view %q (want daily or weekly)", view)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&view, "view", "", "daily or weekly (default from settings)")
	cmd.Flags().StringVar(&day, "day", "", "Day for the daily view (default: today)")
	cmd.Flags().BoolVar(&showEmpty, "empty", false, "Show empty hour slots")
	return cmd
}

func (a *App) printSubmitted(ctx context.Context, verb string, e study.ScheduleEntry) {
	name := study.UnknownSubject
	if s, ok := a.store.SubjectByID(ctx, e.SubjectID); ok {
		name = s.Name
	}
	fmt.Fprintf(a.out, "%s %s on %s %s-%s %s\n",
		formatSuccess(verb), formatAccent(name), study.DayName(e.Day),
		study.FormatTime12(e.StartTime), study.FormatTime12(e.EndTime), formatMuted(shortID(e.ID)))
}

func (a *App) timelineOptions() timeline.Options {
	return timeline.Options{
		StartHour: a.config.Timeline.DayStartHour,
		EndHour:   a.config.Timeline.DayEndHour,
		Today:     int(a.now().Weekday()),
		Accent:    a.config.UI.AccentColor,

		HighlightToday: true,
	}
}

func entryIDs(entries []study.ScheduleEntry) []string {
	ids := make([]string, len(entries))
	for i, e := range entries {
		ids[i] = e.ID
	}
	return ids
}
