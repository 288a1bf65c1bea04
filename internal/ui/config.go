package ui

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/javiermolinar/studyplan/internal/config"
	"github.com/javiermolinar/studyplan/internal/study"
	"github.com/javiermolinar/studyplan/internal/tui/theme"
)

func (a *App) configCmd() *cobra.Command {
	var (
		path string
		show bool
	)

	cmd := &cobra.Command{
		Use:   "config",
		Short: "View or edit configuration",
		Long: `Interactive configuration management.

If no config file exists, creates one with default values.
Otherwise, displays current config and allows editing.

Example:
  studyplan config
  studyplan config --show`,
		RunE: func(_ *cobra.Command, _ []string) error {
			if path == "" {
				path = config.DefaultConfigPath()
			}
			return a.runConfig(path, show)
		},
	}

	cmd.Flags().StringVar(&path, "path", "", "Config file (default ~/.config/studyplan/config.toml)")
	cmd.Flags().BoolVar(&show, "show", false, "Print the configuration and exit")
	return cmd
}

func (a *App) runConfig(path string, show bool) error {
	fmt.Fprintf(a.out, "Config file: %s\n\n", path)

	cfg, err := config.LoadFrom(path)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	if _, statErr := os.Stat(path); os.IsNotExist(statErr) {
		fmt.Fprintln(a.out, "No config file found. Creating with default values...")
		if err := cfg.SaveTo(path); err != nil {
			return fmt.Errorf("saving config: %w", err)
		}
		fmt.Fprintf(a.out, "Created %s\n\n", path)
	}

	printConfig(a.out, cfg)
	if show {
		return nil
	}

	reader := bufio.NewReader(a.in)
	if !promptYesNo(reader, a.out, "\nWould you like to edit the configuration?") {
		return nil
	}

	p := prompter{r: reader, w: a.out}
	cfg.Timeline.DayStartHour = p.number("Day start hour", cfg.Timeline.DayStartHour)
	cfg.Timeline.DayEndHour = p.number("Day end hour", cfg.Timeline.DayEndHour)
	cfg.Pomodoro.FocusMinutes = p.number("Focus minutes", cfg.Pomodoro.FocusMinutes)
	cfg.Pomodoro.BreakMinutes = p.number("Break minutes", cfg.Pomodoro.BreakMinutes)
	cfg.Notifications.Enabled = p.yesNo("Deadline reminders", cfg.Notifications.Enabled)
	cfg.Notifications.LeadMinutes = p.number("Remind minutes before deadline", cfg.Notifications.LeadMinutes)
	cfg.LLM.Provider = p.value("LLM provider", cfg.LLM.Provider)
	cfg.LLM.Model = p.value("LLM model", cfg.LLM.Model)
	cfg.LLM.BaseURL = p.value("LLM base URL (Ollama/LM Studio)", cfg.LLM.BaseURL)
	cfg.Storage.DBPath = p.value("Database path", cfg.Storage.DBPath)
	cfg.UI.DefaultView = p.value("Default view (daily, weekly)", cfg.UI.DefaultView)
	cfg.UI.Theme = p.theme(cfg.UI.Theme)
	cfg.UI.AccentColor = p.accent(cfg.UI.AccentColor)

	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	if err := cfg.SaveTo(path); err != nil {
		return fmt.Errorf("saving config: %w", err)
	}

	fmt.Fprintln(a.out, "\n"+formatSuccess("Configuration saved!"))
	return nil
}

func printConfig(w io.Writer, cfg *config.Config) {
	fmt.Fprintln(w, "Current configuration:")
	fmt.Fprintln(w, "──────────────────────")
	fmt.Fprintln(w, "[timeline]")
	fmt.Fprintf(w, "  day_start_hour       = %d\n", cfg.Timeline.DayStartHour)
	fmt.Fprintf(w, "  day_end_hour         = %d\n", cfg.Timeline.DayEndHour)
	fmt.Fprintln(w, "\n[pomodoro]")
	fmt.Fprintf(w, "  focus_minutes        = %d\n", cfg.Pomodoro.FocusMinutes)
	fmt.Fprintf(w, "  break_minutes        = %d\n", cfg.Pomodoro.BreakMinutes)
	fmt.Fprintln(w, "\n[notifications]")
	fmt.Fprintf(w, "  enabled              = %t\n", cfg.Notifications.Enabled)
	fmt.Fprintf(w, "  check_interval       = %s\n", cfg.Notifications.CheckInterval)
	fmt.Fprintf(w, "  lead_minutes         = %d\n", cfg.Notifications.LeadMinutes)
	fmt.Fprintln(w, "\n[analytics]")
	fmt.Fprintf(w, "  period               = %s\n", cfg.Analytics.Period)
	fmt.Fprintf(w, "  deadline_window_days = %d\n", cfg.Analytics.DeadlineWindowDays)
	fmt.Fprintf(w, "  urgent_days          = %d\n", cfg.Analytics.UrgentDays)
	fmt.Fprintln(w, "\n[llm]")
	fmt.Fprintf(w, "  provider             = %s\n", cfg.LLM.Provider)
	fmt.Fprintf(w, "  model                = %s\n", cfg.LLM.Model)
	fmt.Fprintf(w, "  base_url             = %s\n", cfg.LLM.BaseURL)
	fmt.Fprintln(w, "\n[storage]")
	fmt.Fprintf(w, "  db_path              = %s\n", cfg.Storage.DBPath)
	fmt.Fprintf(w, "  namespace            = %s\n", cfg.Storage.Namespace)
	fmt.Fprintln(w, "\n[ui]")
	fmt.Fprintf(w, "  theme                = %s\n", cfg.UI.Theme)
	fmt.Fprintf(w, "  default_view         = %s\n", cfg.UI.DefaultView)
	fmt.Fprintf(w, "  accent_color         = %s\n", cfg.UI.AccentColor)
}

func promptYesNo(r *bufio.Reader, w io.Writer, question string) bool {
	fmt.Fprintf(w, "%s [y/N]: ", question)
	input, _ := r.ReadString('\n')
	input = strings.TrimSpace(strings.ToLower(input))
	return input == "y" || input == "yes"
}

// prompter asks for one value at a time, keeping the current value on an
// empty answer. Invalid answers are asked again until input runs out.
type prompter struct {
	r *bufio.Reader
	w io.Writer
}

func (p prompter) ask(label, current string) (string, bool) {
	if current == "" {
		fmt.Fprintf(p.w, "  %s: ", label)
	} else {
		fmt.Fprintf(p.w, "  %s [%s]: ", label, current)
	}
	input, err := p.r.ReadString('\n')
	input = strings.TrimSpace(input)
	if input == "" {
		return current, err == nil
	}
	return input, true
}

func (p prompter) value(label, current string) string {
	v, _ := p.ask(label, current)
	return v
}

func (p prompter) number(label string, current int) int {
	for {
		v, more := p.ask(label, strconv.Itoa(current))
		n, err := strconv.Atoi(v)
		if err == nil {
			return n
		}
		fmt.Fprintf(p.w, "  %q is not a number\n", v)
		if !more {
			return current
		}
	}
}

func (p prompter) yesNo(label string, current bool) bool {
	for {
		v, more := p.ask(label, strconv.FormatBool(current))
		switch strings.ToLower(v) {
		case "y", "yes", "true", "on":
			return true
		case "n", "no", "false", "off":
			return false
		}
		fmt.Fprintf(p.w, "  Answer yes or no\n")
		if !more {
			return current
		}
	}
}

func (p prompter) theme(current string) string {
	options := strings.Join(theme.Available(), ", ")
	label := fmt.Sprintf("UI theme (%s)", options)
	for {
		v, more := p.ask(label, current)
		v = strings.ToLower(v)
		if theme.IsAvailable(v) {
			return v
		}
		fmt.Fprintf(p.w, "  Invalid theme %q. Available: %s\n", v, options)
		if !more {
			return current
		}
	}
}

func (p prompter) accent(current string) string {
	for {
		v, more := p.ask("Accent color (#RRGGBB)", current)
		if study.IsHexColor(v) {
			return v
		}
		fmt.Fprintf(p.w, "  %q is not a #RRGGBB color\n", v)
		if !more {
			return current
		}
	}
}
