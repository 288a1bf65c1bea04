package tui

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"github.com/javiermolinar/studyplan/internal/study"
	"github.com/javiermolinar/studyplan/internal/timeline"
)

// handleKeyMsg handles keyboard input.
func (m Model) handleKeyMsg(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+c" {
		return m, tea.Quit
	}
	switch m.mode {
	case ModeForm:
		return m.handleFormKeys(msg)
	case ModeConfirm:
		return m.handleConfirmKeys(msg)
	case ModeFocus:
		return m.handleFocusKeys(msg)
	default:
		return m.handleBoardKeys(msg)
	}
}

// handleBoardKeys handles keys on the schedule board.
func (m Model) handleBoardKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch key := msg.String(); key {
	case "q":
		return m, tea.Quit

	// Navigation
	case "h", "left":
		m.day = (m.day + 6) % 7
		m.cursor = 0
	case "l", "right":
		m.day = (m.day + 1) % 7
		m.cursor = 0
	case "j", "down":
		if m.cursor < len(m.selectedBlocks())-1 {
			m.cursor++
		}
	case "k", "up":
		if m.cursor > 0 {
			m.cursor--
		}
	case "t":
		m.day = int(m.now().Weekday())
		m.cursor = 0
	case "1", "2", "3", "4", "5", "6", "7":
		m.day = int(key[0] - '1')
		m.cursor = 0

	case "v":
		if m.view == ViewDaily {
			m.view = ViewWeekly
		} else {
			m.view = ViewDaily
		}

	// Sessions
	case "a":
		return m, m.openAddForm()
	case "e", "enter":
		e, ok := m.selectedEntry()
		if !ok {
			return m, m.setStatus(statusInfo, "No session selected.")
		}
		return m, m.openEditForm(e)
	case "d", "x":
		e, ok := m.selectedEntry()
		if !ok {
			return m, m.setStatus(statusInfo, "No session selected.")
		}
		m.confirmID = e.ID
		m.mode = ModeConfirm

	case "y":
		return m, m.copyView()

	case "p":
		if m.subjectIdx < 0 {
			if e, ok := m.selectedEntry(); ok {
				m.selectFocusSubject(e.SubjectID)
			}
		}
		m.mode = ModeFocus
	}
	return m, nil
}

// handleFormKeys handles keys while the session form is open.
func (m Model) handleFormKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.mode = ModeBoard
		return m, nil
	case "tab", "down":
		return m, m.form.setFocus(m.form.focus + 1)
	case "shift+tab", "up":
		return m, m.form.setFocus(m.form.focus - 1)
	case "enter":
		if m.form.focus < fieldCount-1 {
			return m, m.form.setFocus(m.form.focus + 1)
		}
		return m.submitForm()
	case "ctrl+s":
		return m.submitForm()
	}
	return m, m.form.update(msg)
}

func (m Model) submitForm() (tea.Model, tea.Cmd) {
	form := m.form.scheduleForm(m.subjects)
	res, err := m.sessions.Submit(m.ctx, form, m.form.editingID)
	if err != nil {
		kind, text := errorStatus(err)
		return m, m.setStatus(kind, text)
	}

	m.mode = ModeBoard
	m.refresh()
	m.day = res.Entry.Day
	m.cursor = 0
	for i, b := range m.selectedBlocks() {
		if b.Entry.ID == res.Entry.ID {
			m.cursor = i
			break
		}
	}

	verb := "added"
	if res.Updated {
		verb = "updated"
	}
	blk := timeline.NewBlock(res.Entry, m.resolver(), m.config.UI.AccentColor)
	return m, m.setStatus(statusSuccess, fmt.Sprintf("Session %s: %s on %s.", verb, blk.Label(), study.DayName(res.Entry.Day)))
}

// handleConfirmKeys handles the delete confirmation.
func (m Model) handleConfirmKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "y", "Y", "enter":
		id := m.confirmID
		m.confirmID = ""
		m.mode = ModeBoard
		if err := m.sessions.Remove(m.ctx, id); err != nil {
			kind, text := errorStatus(err)
			return m, m.setStatus(kind, text)
		}
		m.refresh()
		return m, m.setStatus(statusSuccess, "Session deleted.")
	case "n", "N", "esc", "q":
		m.confirmID = ""
		m.mode = ModeBoard
		return m, m.setStatus(statusInfo, "Delete cancelled.")
	}
	return m, nil
}

// handleFocusKeys handles the focus timer panel.
func (m Model) handleFocusKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q":
		return m, tea.Quit
	case "esc", "p":
		m.mode = ModeBoard
	case " ", "space":
		m.timer.Toggle()
		if m.timer.Running() {
			m.tickGen++
			return m, pomodoroTick(m.tickGen)
		}
	case "r":
		m.timer.Reset()
		m.tickGen++
	case "s":
		m.cycleFocusSubject()
	}
	return m, nil
}

func (m *Model) cycleFocusSubject() {
	m.subjectIdx++
	if m.subjectIdx >= len(m.subjects) {
		m.subjectIdx = -1
		m.timer.SetSubject("")
		return
	}
	m.timer.SetSubject(m.subjects[m.subjectIdx].ID)
}

func (m *Model) selectFocusSubject(id string) {
	for i, s := range m.subjects {
		if s.ID == id {
			m.subjectIdx = i
			m.timer.SetSubject(id)
			return
		}
	}
}

func (m *Model) focusSubjectName() string {
	if m.subjectIdx < 0 || m.subjectIdx >= len(m.subjects) {
		return ""
	}
	return m.subjects[m.subjectIdx].Name
}

// viewText returns the current view as plain text.
func (m *Model) viewText() string {
	opts := m.timelineOptions()
	if m.view == ViewWeekly {
		return timeline.RenderWeekly(timeline.Weekly(m.entries, m.resolver(), opts))
	}
	return timeline.RenderDaily(timeline.Daily(m.entries, m.day, m.resolver(), opts), false)
}

func (m *Model) copyView() tea.Cmd {
	if err := m.copyText(m.viewText()); err != nil {
		m.logger.Warn("clipboard write failed", zap.Error(err))
		return m.setStatus(statusError, "Copy failed: "+err.Error())
	}
	return m.setStatus(statusSuccess, fmt.Sprintf("Copied %s view to clipboard.", m.view))
}
