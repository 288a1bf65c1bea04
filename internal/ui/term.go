package ui

import (
	"os"

	"github.com/fatih/color"
	"golang.org/x/term"

	"github.com/javiermolinar/studyplan/internal/analytics"
)

// Color definitions for consistent styling across the UI.
var (
	// Headers: bold
	colorHeader = color.New(color.Bold)

	// Session blocks and subject names
	colorAccent = color.New(color.FgMagenta, color.Bold)

	colorSuccess = color.New(color.FgGreen)
	colorWarning = color.New(color.FgYellow)
	colorError   = color.New(color.FgRed, color.Bold)

	// Coaching output
	colorInsight = color.New(color.FgCyan)

	// Muted: for secondary information
	colorMuted = color.New(color.FgWhite, color.Faint)
)

// termWidth returns the terminal width, or a default if detection fails.
func termWidth() int {
	width, _, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil || width <= 0 {
		return 80 // sensible default
	}
	return width
}

// isTerminal reports whether stdin is interactive.
func isTerminal() bool {
	return term.IsTerminal(int(os.Stdin.Fd()))
}

// DisableColor disables all color output.
func DisableColor() {
	color.NoColor = true
}

// EnableColor enables color output (if terminal supports it).
func EnableColor() {
	color.NoColor = false
}

func formatHeader(s string) string  { return colorHeader.Sprint(s) }
func formatAccent(s string) string  { return colorAccent.Sprint(s) }
func formatSuccess(s string) string { return colorSuccess.Sprint(s) }
func formatWarning(s string) string { return colorWarning.Sprint(s) }
func formatError(s string) string   { return colorError.Sprint(s) }
func formatInsight(s string) string { return colorInsight.Sprint(s) }
func formatMuted(s string) string   { return colorMuted.Sprint(s) }

// formatSeverity colours a deadline badge.
func formatSeverity(b analytics.Badge) string {
	switch b.Severity {
	case analytics.SeverityRed:
		return colorError.Sprint(b.Text)
	case analytics.SeverityYellow:
		return colorWarning.Sprint(b.Text)
	default:
		return colorSuccess.Sprint(b.Text)
	}
}

// formatInsightKind colours a rule-based insight.
func formatInsightKind(in analytics.Insight) string {
	switch in.Kind {
	case analytics.InsightSuccess:
		return colorSuccess.Sprint(in.Text)
	case analytics.InsightWarning:
		return colorWarning.Sprint(in.Text)
	case analytics.InsightDanger:
		return colorError.Sprint(in.Text)
	default:
		return colorInsight.Sprint(in.Text)
	}
}
