package ui

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/javiermolinar/studyplan/internal/study"
)

func (a *App) subjectCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "subject",
		Aliases: []string{"subjects"},
		Short:   "Manage subjects",
	}
	cmd.AddCommand(a.subjectAddCmd(), a.subjectListCmd(), a.subjectEditCmd(), a.subjectDeleteCmd())
	return cmd
}

func (a *App) subjectAddCmd() *cobra.Command {
	var form study.SubjectForm

	cmd := &cobra.Command{
		Use:     "add [name]",
		Short:   "Add a subject",
		Example: `  studyplan subject add "Linear Algebra" --color=#3B82F6 --priority=high --target=6`,
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.ensureRepo(); err != nil {
				return err
			}
			form.Name = args[0]
			s, err := form.Parse()
			if err != nil {
				return err
			}
			created, err := a.store.AddSubject(cmd.Context(), *s)
			if err != nil {
				return err
			}
			fmt.Fprintf(a.out, "%s %s (%s, %s priority) %s\n",
				formatSuccess("Added subject"), formatAccent(created.Name), created.Color,
				created.Priority, formatMuted(shortID(created.ID)))
			return nil
		},
	}

	cmd.Flags().StringVar(&form.Color, "color", "", "Colour as #RRGGBB (default: accent)")
	cmd.Flags().StringVar(&form.Priority, "priority", "", "Priority: low, medium or high")
	cmd.Flags().StringVar(&form.TargetHours, "target", "", "Weekly target hours")
	return cmd
}

func (a *App) subjectListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List subjects",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := a.ensureRepo(); err != nil {
				return err
			}
			subjects := a.store.Subjects(cmd.Context())
			if len(subjects) == 0 {
				fmt.Fprintln(a.out, "No subjects yet. Add one with: studyplan subject add <name>")
				return nil
			}
			for _, s := range subjects {
				target := ""
				if s.TargetHours > 0 {
					target = fmt.Sprintf("  target %sh/week", strconv.FormatFloat(s.TargetHours, 'f', -1, 64))
				}
				fmt.Fprintf(a.out, "  %s  %-24s %s  %-6s%s\n",
					formatMuted(shortID(s.ID)), formatAccent(s.Name), s.Color, s.Priority, target)
			}
			return nil
		},
	}
}

func (a *App) subjectEditCmd() *cobra.Command {
	var form study.SubjectForm

	cmd := &cobra.Command{
		Use:   "edit [subject]",
		Short: "Change a subject's name, colour, priority or target",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.ensureRepo(); err != nil {
				return err
			}
			ctx := cmd.Context()
			current, err := a.findSubject(ctx, args[0])
			if err != nil {
				return err
			}

			// Validate the merged form so partial edits get the same rules as add
			merged := study.SubjectForm{
				Name:        current.Name,
				Color:       current.Color,
				Priority:    string(current.Priority),
				TargetHours: strconv.FormatFloat(current.TargetHours, 'f', -1, 64),
			}
			flags := cmd.Flags()
			if flags.Changed("name") {
				merged.Name = form.Name
			}
			if flags.Changed("color") {
				merged.Color = form.Color
			}
			if flags.Changed("priority") {
				merged.Priority = form.Priority
			}
			if flags.Changed("target") {
				merged.TargetHours = form.TargetHours
			}
			parsed, err := merged.Parse()
			if err != nil {
				return err
			}

			var patch study.SubjectPatch
			if flags.Changed("name") {
				patch.Name = &parsed.Name
			}
			if flags.Changed("color") {
				patch.Color = &parsed.Color
			}
			if flags.Changed("priority") {
				patch.Priority = &parsed.Priority
			}
			if flags.Changed("target") {
				patch.TargetHours = &parsed.TargetHours
			}

			updated, err := a.store.UpdateSubject(ctx, current.ID, patch)
			if err != nil {
				return err
			}
			if updated == nil {
				return fmt.Errorf("subject %s: %w", args[0], study.ErrNotFound)
			}
			fmt.Fprintf(a.out, "%s %s\n", formatSuccess("Updated subject"), formatAccent(updated.Name))
			return nil
		},
	}

	cmd.Flags().StringVar(&form.Name, "name", "", "New name")
	cmd.Flags().StringVar(&form.Color, "color", "", "Colour as #RRGGBB")
	cmd.Flags().StringVar(&form.Priority, "priority", "", "Priority: low, medium or high")
	cmd.Flags().StringVar(&form.TargetHours, "target", "", "Weekly target hours")
	return cmd
}

func (a *App) subjectDeleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete [subject]",
		Short: "Delete a subject (its sessions and logs are kept)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.ensureRepo(); err != nil {
				return err
			}
			s, err := a.findSubject(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			if err := a.store.DeleteSubject(cmd.Context(), s.ID); err != nil {
				return err
			}
			fmt.Fprintf(a.out, "%s %s\n", formatSuccess("Deleted subject"), s.Name)
			return nil
		},
	}
}

// findSubject resolves ref by id, id suffix or case-insensitive name.
func (a *App) findSubject(ctx context.Context, ref string) (*study.Subject, error) {
	subjects := a.store.Subjects(ctx)
	for i := range subjects {
		if strings.EqualFold(subjects[i].Name, strings.TrimSpace(ref)) {
			return &subjects[i], nil
		}
	}
	ids := make([]string, len(subjects))
	for i, s := range subjects {
		ids[i] = s.ID
	}
	id, err := matchID(ids, ref)
	if err != nil {
		return nil, fmt.Errorf("subject %w", err)
	}
	for i := range subjects {
		if subjects[i].ID == id {
			return &subjects[i], nil
		}
	}
	return nil, fmt.Errorf("subject %s: %w", ref, study.ErrNotFound)
}

// subjectRef returns the id for ref, or ref itself when no subject matches.
// Sessions and tasks may point at subjects that do not exist yet.
func (a *App) subjectRef(ctx context.Context, ref string) string {
	if s, err := a.findSubject(ctx, ref); err == nil {
		return s.ID
	}
	return strings.TrimSpace(ref)
}
