// Package ui implements the studyplan command line.
package ui

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/javiermolinar/studyplan/internal/config"
	"github.com/javiermolinar/studyplan/internal/db"
	"github.com/javiermolinar/studyplan/internal/logging"
	"github.com/javiermolinar/studyplan/internal/schedule"
	"github.com/javiermolinar/studyplan/internal/storage"
	"github.com/javiermolinar/studyplan/internal/tui"
)

var (
	// Version is set at build time
	Version = "dev"
	// Commit is set at build time
	Commit = "none"
)

// App holds the CLI application state.
type App struct {
	config  *config.Config
	root    *cobra.Command
	debug   bool // Enable debug logging
	noColor bool

	in     io.Reader
	out    io.Writer
	errOut io.Writer
	now    func() time.Time

	tickEvery time.Duration // pomodoro tick, one second outside tests

	logger   *zap.Logger
	backend  *db.SQLite
	store    *storage.Local
	sessions *schedule.Service
}

// NewApp creates a new CLI application. The database is opened lazily by
// the first command that needs it.
func NewApp(cfg *config.Config) *App {
	a := &App{
		config: cfg,
		in:     os.Stdin,
		out:    os.Stdout,
		errOut: os.Stderr,
		now:    time.Now,
	}

	a.root = &cobra.Command{
		Use:   "studyplan",
		Short: "A personal study planner",
		Long: `studyplan keeps your subjects, weekly study schedule, tasks and
focus sessions in one local database.

Run without arguments to open the schedule board.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(_ *cobra.Command, _ []string) {
			if a.noColor {
				DisableColor()
			}
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := a.ensureRepo(); err != nil {
				return err
			}
			return tui.Run(cmd.Context(), tui.Deps{
				Store:    a.store,
				Sessions: a.sessions,
				Config:   a.config,
				Logger:   a.logger,
			})
		},
	}

	// Add global flags
	a.root.PersistentFlags().BoolVar(&a.debug, "debug", false, "Enable debug logging")
	a.root.PersistentFlags().BoolVar(&a.noColor, "no-color", false, "Disable colored output")

	a.root.AddCommand(a.versionCmd())
	a.root.AddCommand(a.configCmd())
	a.root.AddCommand(a.subjectCmd())
	a.root.AddCommand(a.scheduleCmd())
	a.root.AddCommand(a.taskCmd())
	a.root.AddCommand(a.logCmd())
	a.root.AddCommand(a.statsCmd())
	a.root.AddCommand(a.deadlinesCmd())
	a.root.AddCommand(a.focusCmd())
	a.root.AddCommand(a.remindCmd())
	a.root.AddCommand(a.exportCmd())
	a.root.AddCommand(a.importCmd())
	a.root.AddCommand(a.resetCmd())

	return a
}

// SetIO redirects the command streams.
func (a *App) SetIO(in io.Reader, out, errOut io.Writer) {
	a.in, a.out, a.errOut = in, out, errOut
	a.root.SetIn(in)
	a.root.SetOut(out)
	a.root.SetErr(errOut)
}

// SetArgs overrides os.Args[1:].
func (a *App) SetArgs(args []string) {
	a.root.SetArgs(args)
}

// SetClock replaces time.Now.
func (a *App) SetClock(now func() time.Time) {
	a.now = now
}

func (a *App) versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version number",
		Run: func(_ *cobra.Command, _ []string) {
			fmt.Fprintf(a.out, "studyplan %s (commit: %s)\n", Version, Commit)
		},
	}
}

// ensureRepo opens the logger, the database and the stores once.
func (a *App) ensureRepo() error {
	if a.store != nil {
		return nil
	}

	logger, err := logging.New(a.config.Log, a.debug)
	if err != nil {
		return fmt.Errorf("creating logger: %w", err)
	}

	backend, err := db.New(a.config.Storage.DBPath)
	if err != nil {
		_ = logger.Sync()
		return fmt.Errorf("opening database: %w", err)
	}

	defaults := a.config.Settings()
	a.logger = logger
	a.backend = backend
	a.store = storage.New(backend, storage.Options{
		Namespace: a.config.Storage.Namespace,
		Logger:    logger,
		Defaults:  &defaults,
		Now:       a.now,
	})
	a.sessions = schedule.NewService(a.store, logger)
	logger.Debug("database opened", zap.String("path", a.config.Storage.DBPath))
	return nil
}

// Close releases the database and flushes logs.
func (a *App) Close() error {
	var err error
	if a.backend != nil {
		err = a.backend.Close()
		a.backend = nil
	}
	if a.logger != nil {
		_ = a.logger.Sync()
	}
	a.store = nil
	return err
}

// Execute runs the CLI application. Errors are printed before returning.
func (a *App) Execute() error {
	return a.ExecuteContext(context.Background())
}

// ExecuteContext runs the CLI application with ctx.
func (a *App) ExecuteContext(ctx context.Context) error {
	err := a.root.ExecuteContext(ctx)
	if err != nil && !errors.Is(err, context.Canceled) {
		fmt.Fprintln(a.errOut, formatError(Describe(err)))
	}
	return err
}
