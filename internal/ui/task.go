package ui

import (
	"context"
	"fmt"
	"slices"
	"time"

	"github.com/spf13/cobra"

	"github.com/javiermolinar/studyplan/internal/analytics"
	"github.com/javiermolinar/studyplan/internal/study"
)

const deadlineLayout = "2006-01-02T15:04"

func (a *App) taskCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "task",
		Aliases: []string{"tasks"},
		Short:   "Manage assignments, exams and other tasks",
	}
	cmd.AddCommand(a.taskAddCmd(), a.taskListCmd(), a.taskDoneCmd(), a.taskEditCmd(), a.taskDeleteCmd())
	return cmd
}

func taskFlags(cmd *cobra.Command, form *study.TaskForm) {
	cmd.Flags().StringVar(&form.Deadline, "deadline", "", "YYYY-MM-DD[THH:MM], today, tomorrow or a weekday")
	cmd.Flags().StringVar(&form.SubjectID, "subject", "", "Subject name or id")
	cmd.Flags().StringVar(&form.Type, "type", "", "assignment, exam or other")
	cmd.Flags().StringVar(&form.Priority, "priority", "", "low, medium or high")
	cmd.Flags().StringVar(&form.Description, "description", "", "Longer description")
}

func (a *App) taskAddCmd() *cobra.Command {
	var form study.TaskForm

	cmd := &cobra.Command{
		Use:   "add [title]",
		Short: "Add a task with a deadline",
		Example: `  studyplan task add "Essay draft" --deadline=2025-03-14T18:00 --subject=History
  studyplan task add "Midterm" --deadline=friday --type=exam --priority=high`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.ensureRepo(); err != nil {
				return err
			}
			ctx := cmd.Context()
			form.Title = args[0]
			if form.SubjectID != "" {
				form.SubjectID = a.subjectRef(ctx, form.SubjectID)
			}
			t, err := form.Parse(a.now())
			if err != nil {
				return err
			}
			created, err := a.store.AddTask(ctx, *t)
			if err != nil {
				return err
			}
			fmt.Fprintf(a.out, "%s %s due %s (%s) %s\n",
				formatSuccess("Added task"), created.Title, created.Deadline.Format("Mon Jan 2 15:04"),
				formatSeverity(analytics.Relative(created.Deadline, a.now())), formatMuted(shortID(created.ID)))
			return nil
		},
	}

	taskFlags(cmd, &form)
	_ = cmd.MarkFlagRequired("deadline")
	return cmd
}

func (a *App) taskListCmd() *cobra.Command {
	var all bool

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List tasks by deadline",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := a.ensureRepo(); err != nil {
				return err
			}
			ctx := cmd.Context()
			tasks := a.store.Tasks(ctx)
			slices.SortStableFunc(tasks, func(x, y study.Task) int {
				return x.Deadline.Compare(y.Deadline)
			})

			now := a.now()
			shown := 0
			for _, t := range tasks {
				if t.Completed && !all {
					continue
				}
				a.printTask(ctx, t, now)
				shown++
			}
			if shown == 0 {
				fmt.Fprintln(a.out, "No pending tasks.")
			}
			c := analytics.TaskCompletion(tasks)
			fmt.Fprintf(a.out, "\n%d completed, %d pending (%d%%)\n", c.Completed, c.Pending, c.Rate)
			return nil
		},
	}

	cmd.Flags().BoolVar(&all, "all", false, "Include completed tasks")
	return cmd
}

func (a *App) printTask(ctx context.Context, t study.Task, now time.Time) {
	status := "○"
	badge := formatSeverity(analytics.Relative(t.Deadline, now))
	if t.Completed {
		status = formatSuccess("✓")
		badge = formatMuted("done")
	}
	subject := ""
	if t.SubjectID != "" {
		name := study.UnknownSubject
		if s, ok := a.store.SubjectByID(ctx, t.SubjectID); ok {
			name = s.Name
		}
		subject = "  " + formatAccent(name)
	}
	fmt.Fprintf(a.out, "  %s %s  %-30s %-10s %s  %s%s\n",
		status, formatMuted(shortID(t.ID)), t.Title, t.Type,
		t.Deadline.Format("Jan 2 15:04"), badge, subject)
}

func (a *App) taskDoneCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "done [task-id]",
		Short: "Toggle a task between completed and pending",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.ensureRepo(); err != nil {
				return err
			}
			ctx := cmd.Context()
			id, err := matchID(taskIDs(a.store.Tasks(ctx)), args[0])
			if err != nil {
				return fmt.Errorf("task %w", err)
			}
			t, err := a.store.ToggleTask(ctx, id)
			if err != nil {
				return err
			}
			if t == nil {
				return fmt.Errorf("task %s: %w", args[0], study.ErrNotFound)
			}
			if t.Completed {
				fmt.Fprintf(a.out, "%s %s\n", formatSuccess("Completed"), t.Title)
			} else {
				fmt.Fprintf(a.out, "%s %s\n", formatWarning("Reopened"), t.Title)
			}
			return nil
		},
	}
}

func (a *App) taskEditCmd() *cobra.Command {
	var (
		form  study.TaskForm
		title string
	)

	cmd := &cobra.Command{
		Use:   "edit [task-id]",
		Short: "Change a task",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.ensureRepo(); err != nil {
				return err
			}
			ctx := cmd.Context()
			tasks := a.store.Tasks(ctx)
			id, err := matchID(taskIDs(tasks), args[0])
			if err != nil {
				return fmt.Errorf("task %w", err)
			}
			idx := slices.IndexFunc(tasks, func(t study.Task) bool { return t.ID == id })
			current := tasks[idx]

			merged := study.TaskForm{
				Title:       current.Title,
				Description: current.Description,
				SubjectID:   current.SubjectID,
				Type:        string(current.Type),
				Deadline:    current.Deadline.Format(deadlineLayout),
				Priority:    string(current.Priority),
			}
			flags := cmd.Flags()
			if flags.Changed("title") {
				merged.Title = title
			}
			if flags.Changed("description") {
				merged.Description = form.Description
			}
			if flags.Changed("subject") {
				merged.SubjectID = a.subjectRef(ctx, form.SubjectID)
			}
			if flags.Changed("type") {
				merged.Type = form.Type
			}
			if flags.Changed("deadline") {
				merged.Deadline = form.Deadline
			}
			if flags.Changed("priority") {
				merged.Priority = form.Priority
			}
			parsed, err := merged.Parse(a.now())
			if err != nil {
				return err
			}

			updated, err := a.store.UpdateTask(ctx, id, study.TaskPatch{
				Title:       &parsed.Title,
				Description: &parsed.Description,
				SubjectID:   &parsed.SubjectID,
				Type:        &parsed.Type,
				Deadline:    &parsed.Deadline,
				Priority:    &parsed.Priority,
			})
			if err != nil {
				return err
			}
			if updated == nil {
				return fmt.Errorf("task %s: %w", args[0], study.ErrNotFound)
			}
			fmt.Fprintf(a.out, "%s %s\n", formatSuccess("Updated task"), updated.Title)
			return nil
		},
	}

	cmd.Flags().StringVar(&title, "title", "", "New title")
	taskFlags(cmd, &form)
	return cmd
}

func (a *App) taskDeleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete [task-id]",
		Short: "Delete a task",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.ensureRepo(); err != nil {
				return err
			}
			ctx := cmd.Context()
			id, err := matchID(taskIDs(a.store.Tasks(ctx)), args[0])
			if err != nil {
				return fmt.Errorf("task %w", err)
			}
			if err := a.store.DeleteTask(ctx, id); err != nil {
				return err
			}
			fmt.Fprintf(a.out, "%s %s\n", formatSuccess("Deleted task"), formatMuted(shortID(id)))
			return nil
		},
	}
}

func taskIDs(tasks []study.Task) []string {
	ids := make([]string, len(tasks))
	for i, t := range tasks {
		ids[i] = t.ID
	}
	return ids
}
