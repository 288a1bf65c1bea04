package tui

import (
	"errors"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/javiermolinar/studyplan/internal/pomodoro"
	"github.com/javiermolinar/studyplan/internal/reminder"
	"github.com/javiermolinar/studyplan/internal/schedule"
	"github.com/javiermolinar/studyplan/internal/study"
)

// Update handles messages and updates the model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKeyMsg(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case dataLoadedMsg:
		m.entries = msg.entries
		m.subjects = msg.subjects
		m.clampCursor()
		return m, nil

	case reminderTickMsg:
		cmd := m.checkReminders()
		return m, tea.Batch(cmd, m.reminderTick())

	case pomodoroTickMsg:
		return m.handlePomodoroTick(msg)

	case clearStatusMsg:
		if msg.at.Equal(m.statusAt) {
			m.status = ""
		}
		return m, nil
	}

	if m.mode == ModeForm {
		return m, m.form.update(msg)
	}
	return m, nil
}

// checkReminders runs one reminder pass and surfaces what it found.
func (m *Model) checkReminders() tea.Cmd {
	m.checker.Check(m.ctx, m.now())
	pending := *m.inbox
	if len(pending) == 0 {
		return nil
	}
	*m.inbox = (*m.inbox)[:0]

	text := reminder.Title + " " + pending[len(pending)-1]
	if len(pending) > 1 {
		text += fmt.Sprintf(" (+%d more)", len(pending)-1)
	}
	return m.setStatus(statusWarning, text)
}

func (m Model) handlePomodoroTick(msg pomodoroTickMsg) (tea.Model, tea.Cmd) {
	if msg.gen != m.tickGen || !m.timer.Running() {
		return m, nil
	}

	var cmds []tea.Cmd
	switch ev := m.timer.Tick(m.ctx); ev {
	case pomodoro.FocusComplete:
		text := ev.Message()
		if err := m.timer.LogErr(); err != nil {
			cmds = append(cmds, m.setStatus(statusError, text+" Not saved: "+err.Error()))
			break
		}
		if name := m.focusSubjectName(); name != "" {
			text = fmt.Sprintf("%s Logged %d min of %s.", text, m.timer.FocusMinutes(), name)
		}
		cmds = append(cmds, m.setStatus(statusSuccess, text))
	case pomodoro.BreakComplete:
		cmds = append(cmds, m.setStatus(statusInfo, ev.Message()))
	}
	if m.timer.Running() {
		cmds = append(cmds, pomodoroTick(m.tickGen))
	}
	return m, tea.Batch(cmds...)
}

// errorStatus renders a submission error for the status line.
func errorStatus(err error) (statusKind, string) {
	var cerr *schedule.ConflictError
	if errors.As(err, &cerr) {
		name := cerr.SubjectName
		if name == "" {
			name = "another session"
		}
		return statusWarning, fmt.Sprintf("Conflicts with %q at %s.", name, cerr.StartTime())
	}
	var verr *study.ValidationError
	if errors.As(err, &verr) {
		return statusError, fmt.Sprintf("Invalid %s: %v", verr.Field, verr.Reason)
	}
	if errors.Is(err, study.ErrNotSaved) {
		return statusError, "Not saved: " + err.Error()
	}
	return statusError, "Error: " + err.Error()
}
