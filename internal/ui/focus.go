package ui

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"time"

	"github.com/spf13/cobra"

	"github.com/javiermolinar/studyplan/internal/pomodoro"
	"github.com/javiermolinar/studyplan/internal/reminder"
)

func (a *App) focusCmd() *cobra.Command {
	var (
		subject      string
		focusMinutes int
		breakMinutes int
	)

	cmd := &cobra.Command{
		Use:   "focus",
		Short: "Run a pomodoro focus session in the terminal",
		Long: `Run one focus session followed by a break.

When the focus phase ends the time is logged for the chosen subject.
Press Ctrl+C to stop early; nothing is logged for an unfinished session.`,
		Example: `  studyplan focus --subject=Math
  studyplan focus --subject=Math --focus=50 --break=10`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := a.ensureRepo(); err != nil {
				return err
			}
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
			defer stop()

			settings := a.store.Settings(ctx)
			if focusMinutes <= 0 {
				focusMinutes = settings.DefaultSessionDuration
			}
			if breakMinutes <= 0 {
				breakMinutes = settings.BreakDuration
			}

			timer := pomodoro.New(focusMinutes, breakMinutes, a.store)
			if subject != "" {
				timer.SetSubject(a.subjectRef(ctx, subject))
			} else {
				fmt.Fprintln(a.out, formatWarning("No subject selected: this session will not be logged."))
			}
			a.runFocus(ctx, timer)
			return nil
		},
	}

	cmd.Flags().StringVar(&subject, "subject", "", "Subject credited with the session")
	cmd.Flags().IntVar(&focusMinutes, "focus", 0, "Focus minutes (default from settings)")
	cmd.Flags().IntVar(&breakMinutes, "break", 0, "Break minutes (default from settings)")
	return cmd
}

// runFocus drives timer until the break ends or ctx is cancelled.
func (a *App) runFocus(ctx context.Context, timer *pomodoro.Timer) {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	every := a.tickEvery
	if every <= 0 {
		every = time.Second
	}
	ticker := time.NewTicker(every)
	defer ticker.Stop()

	fmt.Fprintf(a.out, "%s %s\n", formatHeader(timer.Phase().String()), timer.Display())
	timer.Start()
	pomodoro.Run(ctx, timer, ticker.C, func(ev pomodoro.Event) {
		switch ev {
		case pomodoro.FocusComplete:
			fmt.Fprintf(a.out, "\r%s\n", formatSuccess(ev.Message()))
			if err := timer.LogErr(); err != nil {
				fmt.Fprintln(a.out, formatError("Session not saved: "+err.Error()))
			}
			fmt.Fprintf(a.out, "%s %s\n", formatHeader(timer.Phase().String()), timer.Display())
		case pomodoro.BreakComplete:
			fmt.Fprintf(a.out, "\r%s\n", formatSuccess(ev.Message()))
			cancel()
		default:
			if isTerminal() {
				fmt.Fprintf(a.out, "\r  %s %s ", timer.Display(), progressBar(int(timer.Progress()*100), 100, 30))
			}
		}
	})
	fmt.Fprintf(a.out, "Completed focus sessions: %d\n", timer.Completed())
}

func (a *App) remindCmd() *cobra.Command {
	var once bool

	cmd := &cobra.Command{
		Use:   "remind",
		Short: "Watch task deadlines and print reminders",
		Long: `Check incomplete tasks for deadlines coming up within the configured
lead time and print a reminder once per task. Runs until interrupted.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := a.ensureRepo(); err != nil {
				return err
			}
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
			defer stop()

			notify := func(title, message string) {
				fmt.Fprintf(a.out, "%s %s %s\n", formatMuted(a.now().Format("15:04")), formatWarning(title), message)
				reminder.LogNotifier(a.logger)(title, message)
			}
			enabled := func() bool { return a.store.Settings(ctx).Notifications }
			checker := reminder.New(a.store, notify, a.config.Lead(), enabled)

			if once {
				if !enabled() {
					fmt.Fprintln(a.out, "Notifications are disabled.")
					return nil
				}
				if n := checker.Check(ctx, a.now()); n == 0 {
					fmt.Fprintln(a.out, "No deadlines approaching.")
				}
				return nil
			}

			fmt.Fprintf(a.out, "Watching deadlines every %s (Ctrl+C to stop)\n", a.config.CheckEvery())
			checker.Run(ctx, a.config.CheckEvery())
			return nil
		},
	}

	cmd.Flags().BoolVar(&once, "once", false, "Check once and exit")
	return cmd
}
