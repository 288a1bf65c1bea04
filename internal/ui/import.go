package ui

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/javiermolinar/studyplan/internal/export"
)

func (a *App) importCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "import [backup.json]",
		Short: "Import a JSON backup",
		Long: `Import a backup written by "studyplan export json".

Only the collections present in the file are replaced; the others are
left untouched.

Example:
  studyplan import ~/studyplan-backup.json`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.ensureRepo(); err != nil {
				return err
			}

			path, err := resolvePath(args[0])
			if err != nil {
				return err
			}
			f, err := os.Open(path)
			if err != nil {
				if os.IsNotExist(err) {
					return fmt.Errorf("backup does not exist: %s", path)
				}
				return fmt.Errorf("opening backup: %w", err)
			}
			defer func() { _ = f.Close() }()

			backup, err := export.ReadBackup(f)
			if err != nil {
				return err
			}

			written := a.store.ImportAll(cmd.Context(), backup.Snapshot)
			if len(written) == 0 {
				return fmt.Errorf("import failed, see the log for details")
			}
			a.logger.Info("backup imported", zap.String("path", path), zap.Strings("collections", written))
			fmt.Fprintf(a.out, "%s %s from %s\n", formatSuccess("Imported"), strings.Join(written, ", "), path)
			return nil
		},
	}

	return cmd
}

func (a *App) resetCmd() *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:   "reset",
		Short: "Delete all subjects, sessions, tasks, logs and settings",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := a.ensureRepo(); err != nil {
				return err
			}
			if !yes {
				if !isTerminal() {
					return fmt.Errorf("refusing to reset without --yes")
				}
				if !promptYesNo(bufio.NewReader(a.in), a.out, "Delete ALL study data? This cannot be undone.") {
					fmt.Fprintln(a.out, "Cancelled.")
					return nil
				}
			}
			if err := a.store.ResetAll(cmd.Context()); err != nil {
				return err
			}
			a.logger.Info("all data reset")
			fmt.Fprintln(a.out, formatSuccess("All data deleted."))
			return nil
		},
	}

	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "Do not ask for confirmation")
	return cmd
}

func resolvePath(path string) (string, error) {
	path = strings.TrimSpace(path)
	if path == "" {
		return "", fmt.Errorf("empty path")
	}

	if strings.HasPrefix(path, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolving home directory: %w", err)
		}
		path = filepath.Join(home, path[2:])
	}

	absPath, err := filepath.Abs(path)
	if err != nil {
		return "", fmt.Errorf("resolving path: %w", err)
	}

	return absPath, nil
}
