package ui

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/javiermolinar/studyplan/internal/study"
)

func (a *App) logCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "log",
		Short: "Record study time",
	}
	cmd.AddCommand(a.logAddCmd())
	return cmd
}

func (a *App) logAddCmd() *cobra.Command {
	var form study.LogForm

	cmd := &cobra.Command{
		Use:   "add [subject] [minutes]",
		Short: "Record a manual study session",
		Example: `  studyplan log add Math 45
  studyplan log add Math 90 --date=2025-03-10`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.ensureRepo(); err != nil {
				return err
			}
			ctx := cmd.Context()
			form.SubjectID = a.subjectRef(ctx, args[0])
			form.Duration = args[1]
			l, err := form.Parse(a.now())
			if err != nil {
				return err
			}
			saved, err := a.store.AddStudyLog(ctx, *l)
			if err != nil {
				return err
			}
			fmt.Fprintf(a.out, "%s %s on %s\n", formatSuccess("Logged"),
				study.FormatDuration(saved.Duration), saved.Date.Format("Mon Jan 2"))
			return nil
		},
	}

	cmd.Flags().StringVar(&form.Date, "date", "", "Date studied (YYYY-MM-DD, default: now)")
	return cmd
}
