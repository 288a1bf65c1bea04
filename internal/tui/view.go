package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"

	"github.com/javiermolinar/studyplan/internal/pomodoro"
	"github.com/javiermolinar/studyplan/internal/study"
	"github.com/javiermolinar/studyplan/internal/timeline"
)

const (
	minColWidth   = 12
	chromeLines   = 5 // title, tabs, blank, status, help
	progressWidth = 30
)

// View renders the model.
func (m Model) View() string {
	var b strings.Builder
	b.WriteString(m.renderTitle())
	b.WriteString("\n")
	b.WriteString(m.renderDayTabs())
	b.WriteString("\n\n")

	switch m.mode {
	case ModeForm:
		b.WriteString(m.renderForm())
	case ModeConfirm:
		b.WriteString(m.renderConfirm())
	case ModeFocus:
		b.WriteString(m.renderFocus())
	default:
		if m.view == ViewWeekly {
			b.WriteString(m.renderWeekly())
		} else {
			b.WriteString(m.renderDaily())
		}
	}

	b.WriteString("\n")
	b.WriteString(m.renderStatus())
	b.WriteString("\n")
	b.WriteString(m.renderHelp())
	return b.String()
}

func (m Model) renderTitle() string {
	title := m.styles.Title.Render("StudyPlan")
	info := m.styles.Muted.Render(fmt.Sprintf(" · %s view · %s scheduled", m.view,
		study.FormatDuration(timeline.Weekly(m.entries, nil, m.timelineOptions()).TotalMinutes())))
	line := title + info
	if t := m.timer; t.Running() || t.Phase() == pomodoro.Break || t.Remaining() < time.Duration(t.FocusMinutes())*time.Minute {
		line += m.styles.Muted.Render(" · ") + m.styles.StatusWarning.Render(fmt.Sprintf("%s %s", m.timer.Phase(), m.timer.Display()))
	}
	return m.truncate(line)
}

func (m Model) renderDayTabs() string {
	today := int(m.now().Weekday())
	tabs := make([]string, 7)
	for d := 0; d < 7; d++ {
		label := study.DayShort(d)
		switch {
		case d == m.day:
			tabs[d] = m.styles.DayTabSel.Render(label)
		case d == today:
			tabs[d] = m.styles.DayTabToday.Render(label)
		default:
			tabs[d] = m.styles.DayTab.Render(label)
		}
	}
	return m.truncate(lipgloss.JoinHorizontal(lipgloss.Top, tabs...))
}

// renderDaily draws the hourly timeline of the selected day.
func (m Model) renderDaily() string {
	v := timeline.Daily(m.entries, m.day, m.resolver(), m.timelineOptions())
	if v.Empty {
		return m.truncate(m.styles.Muted.Render(fmt.Sprintf("  No sessions scheduled on %s. Press a to add one.", v.Name))) + "\n"
	}

	selectedID := ""
	if e, ok := m.selectedEntry(); ok {
		selectedID = e.ID
	}

	var lines []string
	selectedLine := 0
	for _, slot := range v.Slots {
		label := m.styles.TimeLabel.Render(slot.Label)
		if len(slot.Blocks) == 0 {
			lines = append(lines, label+" "+m.styles.EmptySlot.Render("·"))
			continue
		}
		for i, blk := range slot.Blocks {
			if i > 0 {
				label = m.styles.TimeLabel.Render("")
			}
			selected := blk.Entry.ID == selectedID
			if selected {
				selectedLine = len(lines)
			}
			lines = append(lines, label+" "+m.renderBlock(blk, selected))
		}
	}
	if v.Hidden > 0 {
		lines = append(lines, m.styles.Muted.Render(fmt.Sprintf("  %d session(s) outside %s to %s", v.Hidden,
			v.Slots[0].Label, v.Slots[len(v.Slots)-1].Label)))
	}

	lines = m.window(lines, selectedLine)
	for i := range lines {
		lines[i] = m.truncate(lines[i])
	}
	return strings.Join(lines, "\n") + "\n"
}

func (m Model) renderBlock(blk timeline.Block, selected bool) string {
	text := blk.Label()
	if blk.Entry.Recurring {
		text += " ↻"
	}
	text += "  " + study.FormatDuration(blk.Duration)
	return m.styles.Block(blk.Color, selected).Render(text)
}

// renderWeekly draws seven Sunday-first columns.
func (m Model) renderWeekly() string {
	v := timeline.Weekly(m.entries, m.resolver(), m.timelineOptions())
	colWidth := m.colWidth()

	cols := make([]string, len(v.Days))
	for i, col := range v.Days {
		header := m.styles.ColumnHeader
		if col.IsToday {
			header = m.styles.ColumnHeaderToday
		}
		parts := []string{
			header.Width(colWidth).Render(ansi.Truncate(col.Short, colWidth, "")),
			m.styles.Muted.Width(colWidth).Render(ansi.Truncate(col.SessionCount(), colWidth, "")),
		}
		for j, blk := range col.Blocks {
			selected := col.Day == m.day && j == m.cursor
			style := m.styles.Block(blk.Color, selected)
			inner := colWidth - style.GetHorizontalFrameSize()
			body := ansi.Truncate(blk.SubjectName, inner, "…") + "\n" + ansi.Truncate(blk.Start12+"-"+blk.End12, inner, "…")
			parts = append(parts, style.Width(inner+style.GetHorizontalPadding()).Render(body))
		}
		cols[i] = lipgloss.NewStyle().Width(colWidth).MarginRight(1).Render(lipgloss.JoinVertical(lipgloss.Left, parts...))
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, cols...) + "\n"
}

func (m Model) colWidth() int {
	if m.width <= 0 {
		return minColWidth + 4
	}
	return max(minColWidth, m.width/7-1)
}

func (m Model) renderForm() string {
	title := "New session"
	if m.form.editingID != "" {
		title = "Edit session"
	}

	var b strings.Builder
	b.WriteString(m.styles.PanelTitle.Render(title))
	b.WriteString("\n\n")
	for i := 0; i < fieldCount; i++ {
		label := m.styles.FieldLabel
		if i == m.form.focus {
			label = m.styles.FieldFocus
		}
		b.WriteString(label.Render(fieldLabels[i]))
		b.WriteString(m.form.inputs[i].View())
		b.WriteString("\n")
	}
	if len(m.subjects) > 0 {
		names := make([]string, len(m.subjects))
		for i, s := range m.subjects {
			names[i] = s.Name
		}
		b.WriteString("\n")
		b.WriteString(m.styles.Muted.Render(m.truncate("Subjects: " + strings.Join(names, ", "))))
	}
	return m.styles.Panel.Render(b.String()) + "\n"
}

func (m Model) renderConfirm() string {
	label := "this session"
	for _, blk := range m.selectedBlocks() {
		if blk.Entry.ID == m.confirmID {
			label = blk.Label()
			break
		}
	}
	body := m.styles.PanelTitle.Render("Delete session") + "\n\n" +
		fmt.Sprintf("Delete %s on %s?", label, study.DayName(m.day)) + "\n\n" +
		m.styles.Help.Render("y confirm · n cancel")
	return m.styles.Panel.Render(body) + "\n"
}

func (m Model) renderFocus() string {
	t := m.timer
	state := "paused"
	if t.Running() {
		state = "running"
	}
	subject := m.focusSubjectName()
	if subject == "" {
		subject = "none (not logged)"
	}

	var b strings.Builder
	b.WriteString(m.styles.PanelTitle.Render(t.Phase().String()))
	b.WriteString("\n\n")
	b.WriteString(m.styles.Title.Render(t.Display()))
	b.WriteString(m.styles.Muted.Render("  " + state))
	b.WriteString("\n")
	b.WriteString(progressBar(t.Progress(), progressWidth))
	b.WriteString("\n\n")
	fmt.Fprintf(&b, "Subject    %s\n", subject)
	fmt.Fprintf(&b, "Completed  %d session(s)", t.Completed())
	return m.styles.Panel.Render(b.String()) + "\n"
}

func progressBar(fraction float64, width int) string {
	filled := int(fraction * float64(width))
	filled = min(max(filled, 0), width)
	return strings.Repeat("█", filled) + strings.Repeat("░", width-filled)
}

func (m Model) renderStatus() string {
	if m.status == "" {
		return ""
	}
	return m.truncate(m.styles.status(m.statusKind).Render(m.status))
}

func (m Model) renderHelp() string {
	var help string
	switch m.mode {
	case ModeForm:
		help = "tab next · shift+tab prev · enter next/save · ctrl+s save · esc cancel"
	case ModeConfirm:
		help = "y delete · n cancel"
	case ModeFocus:
		help = "space start/pause · r reset · s subject · p back · q quit"
	default:
		help = "h/l day · j/k select · v " + m.otherView() + " · a add · e edit · d delete · y copy · p focus · q quit"
	}
	return m.truncate(m.styles.Help.Render(help))
}

func (m Model) otherView() string {
	if m.view == ViewWeekly {
		return ViewDaily.String()
	}
	return ViewWeekly.String()
}

// window keeps the lines around focus that fit the terminal height.
func (m Model) window(lines []string, focus int) []string {
	if m.height <= 0 {
		return lines
	}
	avail := max(1, m.height-chromeLines)
	if len(lines) <= avail {
		return lines
	}
	start := min(max(0, focus-avail/2), len(lines)-avail)
	return lines[start : start+avail]
}

func (m Model) truncate(s string) string {
	if m.width <= 0 {
		return s
	}
	return ansi.Truncate(s, m.width, "…")
}
