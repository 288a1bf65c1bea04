package ui

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/javiermolinar/studyplan/internal/schedule"
	"github.com/javiermolinar/studyplan/internal/study"
	"github.com/javiermolinar/studyplan/internal/timeline"
)

// shortIDLen is how many trailing id characters the CLI shows.
// UUIDv7 ids share their leading timestamp bits, so the tail is used.
const shortIDLen = 8

// Describe turns an error into the message shown to the user.
func Describe(err error) string {
	var cerr *schedule.ConflictError
	if errors.As(err, &cerr) {
		name := cerr.SubjectName
		if name == "" {
			name = "another session"
		}
		return fmt.Sprintf("Conflicts with %q at %s.", name, cerr.StartTime())
	}
	var verr *study.ValidationError
	if errors.As(err, &verr) {
		return fmt.Sprintf("Invalid %s: %v", verr.Field, verr.Reason)
	}
	if errors.Is(err, study.ErrNotFound) {
		return "Not found: " + err.Error()
	}
	if errors.Is(err, study.ErrNotSaved) {
		return "Not saved: " + err.Error()
	}
	return "error: " + err.Error()
}

// shortID returns the displayed form of id.
func shortID(id string) string {
	if len(id) <= shortIDLen {
		return id
	}
	return id[len(id)-shortIDLen:]
}

// matchID resolves ref to one of ids by exact match or unique suffix.
func matchID(ids []string, ref string) (string, error) {
	ref = strings.TrimSpace(ref)
	if ref == "" {
		return "", fmt.Errorf("id: %w", study.ErrMissingField)
	}
	var found []string
	for _, id := range ids {
		if id == ref {
			return id, nil
		}
		if strings.HasSuffix(id, ref) {
			found = append(found, id)
		}
	}
	switch len(found) {
	case 0:
		return "", fmt.Errorf("%s: %w", ref, study.ErrNotFound)
	case 1:
		return found[0], nil
	default:
		return "", fmt.Errorf("id %q is ambiguous (%d matches)", ref, len(found))
	}
}

// printDaily writes the daily view with slot labels.
func printDaily(w io.Writer, v timeline.DailyView, showEmpty bool) {
	fmt.Fprintln(w, formatHeader(v.Name))
	if v.Empty {
		fmt.Fprintln(w, formatMuted("  No sessions scheduled"))
		return
	}
	for _, slot := range v.Slots {
		if len(slot.Blocks) == 0 {
			if showEmpty {
				fmt.Fprintf(w, "  %s\n", formatMuted(fmt.Sprintf("%8s", slot.Label)))
			}
			continue
		}
		for i, b := range slot.Blocks {
			label := slot.Label
			if i > 0 {
				label = ""
			}
			fmt.Fprintf(w, "  %8s  %s  %s-%s  %s  %s\n",
				label, formatAccent(b.SubjectName), b.Start12, b.End12,
				formatMuted(study.FormatDuration(b.Duration)), formatMuted(shortID(b.Entry.ID)))
		}
	}
	if v.Hidden > 0 {
		fmt.Fprintln(w, formatMuted(fmt.Sprintf("  (%d outside the timeline window)", v.Hidden)))
	}
}

// printWeekly writes the seven day columns one after another.
func printWeekly(w io.Writer, v timeline.WeeklyView) {
	for i, col := range v.Days {
		if i > 0 {
			fmt.Fprintln(w)
		}
		header := col.Name
		if col.IsToday {
			header += " (today)"
		}
		fmt.Fprintf(w, "%s  %s\n", formatHeader(header), formatMuted(col.SessionCount()))
		if col.Empty() {
			fmt.Fprintln(w, formatMuted("  No sessions scheduled"))
			continue
		}
		for _, b := range col.Blocks {
			recurring := ""
			if b.Entry.Recurring {
				recurring = " ↻"
			}
			fmt.Fprintf(w, "  %s-%s  %s%s  %s\n", b.Start12, b.End12,
				formatAccent(b.SubjectName), recurring, formatMuted(shortID(b.Entry.ID)))
		}
	}
	fmt.Fprintf(w, "\nScheduled: %s\n", formatSuccess(study.FormatDuration(v.TotalMinutes())))
}

// progressBar draws a width character bar for value out of total.
func progressBar(value, total, width int) string {
	if total <= 0 || value <= 0 {
		return "[" + strings.Repeat("░", width) + "]"
	}
	filled := min(width, value*width/total)
	return "[" + formatSuccess(strings.Repeat("█", filled)) + strings.Repeat("░", width-filled) + "]"
}

// PrintInsightWrapped formats and prints coaching text preserving structure.
func PrintInsightWrapped(w io.Writer, text string, width int) {
	lines := strings.Split(text, "\n")
	for _, line := range lines {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" {
			fmt.Fprintln(w)
			continue
		}

		// Detect and format special line types
		prefix, content, contentWidth, isHeader := parseInsightLine(trimmed, width)
		if isHeader {
			fmt.Fprintln(w)
			fmt.Fprintln(w, formatHeader("  "+content))
			continue
		}

		wrapAndPrint(w, content, prefix, contentWidth)
	}
}

// parseInsightLine parses a line and returns formatting info.
// Returns: prefix, content, contentWidth, isHeader
func parseInsightLine(trimmed string, width int) (prefix, content string, contentWidth int, isHeader bool) {
	prefix = "  "
	content = trimmed
	contentWidth = width - 2

	switch {
	case strings.HasPrefix(trimmed, "- ") || strings.HasPrefix(trimmed, "* "):
		// Bullet point
		prefix = "    • "
		content = strings.TrimPrefix(strings.TrimPrefix(trimmed, "- "), "* ")
		contentWidth = width - 6

	case strings.HasPrefix(trimmed, "#"):
		content = strings.TrimLeft(trimmed, "# ")
		isHeader = true

	case strings.HasSuffix(trimmed, ":") && strings.ToUpper(trimmed) == trimmed:
		// Section label such as "NEXT WEEK:"
		isHeader = true

	case strings.HasPrefix(trimmed, ">"):
		content = strings.TrimSpace(strings.TrimPrefix(trimmed, ">"))
		prefix = "  ➜ "
		contentWidth = width - 4

	case isNumberedItem(trimmed):
		// Numbered item (1. or 10.)
		idx := strings.Index(trimmed, ".")
		prefix = "  " + trimmed[:idx+1] + " "
		content = strings.TrimSpace(trimmed[idx+1:])
		contentWidth = width - len(prefix)
	}

	return prefix, content, contentWidth, isHeader
}

// isNumberedItem checks if a line starts with a number followed by a period.
func isNumberedItem(s string) bool {
	if len(s) < 3 {
		return false
	}
	if s[0] < '1' || s[0] > '9' {
		return false
	}
	if s[1] == '.' {
		return true
	}
	if s[1] >= '0' && s[1] <= '9' && len(s) > 3 && s[2] == '.' {
		return true
	}
	return false
}

// wrapAndPrint wraps text to width and prints with the given prefix.
func wrapAndPrint(w io.Writer, text, prefix string, width int) {
	words := strings.Fields(text)
	if len(words) == 0 {
		return
	}

	line := ""
	continuation := strings.Repeat(" ", len([]rune(prefix)))
	first := true

	flush := func() {
		p := continuation
		if first {
			p = prefix
		}
		fmt.Fprintln(w, formatInsight(p+line))
		first = false
	}

	for _, word := range words {
		switch {
		case line == "":
			line = word
		case len(line)+1+len(word) <= width:
			line += " " + word
		default:
			flush()
			line = word
		}
	}

	if line != "" {
		flush()
	}
}
