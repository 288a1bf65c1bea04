package ui

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/javiermolinar/studyplan/internal/export"
	"github.com/javiermolinar/studyplan/internal/timeline"
)

func (a *App) exportCmd() *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "export [json|ics|pdf|xlsx]",
		Short: "Export data or the weekly schedule",
		Long: `Export study data.

  json  full backup, re-importable with "studyplan import"
  ics   weekly schedule as an iCalendar file (recurring sessions repeat weekly)
  pdf   printable weekly timetable
  xlsx  weekly timetable spreadsheet

Without --output, json and ics are written to stdout and binary formats
to studyplan.<format> in the current directory.`,
		Example: `  studyplan export json > backup.json
  studyplan export ics --output=study.ics
  studyplan export pdf`,
		Args:      cobra.ExactArgs(1),
		ValidArgs: []string{"json", "ics", "pdf", "xlsx"},
		RunE: func(cmd *cobra.Command, args []string) error {
			format, err := export.ParseFormat(args[0])
			if err != nil {
				return err
			}
			if err := a.ensureRepo(); err != nil {
				return err
			}

			if output == "" && (format == export.FormatPDF || format == export.FormatXLSX) {
				output = "studyplan." + string(format)
			}

			var w io.Writer = a.out
			if output != "" {
				path, err := resolvePath(output)
				if err != nil {
					return err
				}
				f, err := os.Create(path)
				if err != nil {
					return fmt.Errorf("creating %s: %w", path, err)
				}
				defer func() { _ = f.Close() }()
				w = f
				output = path
			}

			ctx := cmd.Context()
			now := a.now()
			entries := a.sessions.Store().All(ctx)
			resolver := timeline.NewSubjectIndex(a.store.Subjects(ctx))

			switch format {
			case export.FormatJSON:
				err = export.WriteBackup(w, a.store.ExportAll(ctx), now)
			case export.FormatICS:
				err = export.ICS(w, entries, resolver, now)
			case export.FormatPDF:
				err = export.PDF(w, timeline.Weekly(entries, resolver, a.timelineOptions()), "Weekly study schedule")
			case export.FormatXLSX:
				err = export.XLSX(w, timeline.Weekly(entries, resolver, a.timelineOptions()))
			}
			if err != nil {
				return err
			}

			a.logger.Info("exported", zap.String("format", string(format)), zap.String("output", output))
			if output != "" {
				fmt.Fprintf(a.out, "%s %s\n", formatSuccess("Wrote"), output)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "Output file")
	return cmd
}
