package tui

import (
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/javiermolinar/studyplan/internal/study"
)

// Form fields in tab order.
const (
	fieldSubject = iota
	fieldDay
	fieldStart
	fieldEnd
	fieldRecurring
	fieldCount
)

var fieldLabels = [fieldCount]string{"Subject", "Day", "Start", "End", "Recurring"}

// sessionForm is the add/edit session form.
type sessionForm struct {
	inputs    [fieldCount]textinput.Model
	focus     int
	editingID string // empty when adding
}

func newSessionForm(styles *Styles) sessionForm {
	var f sessionForm
	placeholders := [fieldCount]string{"subject name", "Mon or 1", "09:00", "10:30", "y/n"}
	limits := [fieldCount]int{64, 9, 5, 5, 3}
	for i := range f.inputs {
		ti := textinput.New()
		ti.Prompt = ""
		ti.Placeholder = placeholders[i]
		ti.CharLimit = limits[i]
		ti.Width = 24
		ti.PlaceholderStyle = styles.Muted
		f.inputs[i] = ti
	}
	return f
}

// openAddForm prepares an empty form for day.
func (m *Model) openAddForm() tea.Cmd {
	f := newSessionForm(m.styles)
	if len(m.subjects) > 0 {
		f.inputs[fieldSubject].SetValue(m.subjects[0].Name)
	}
	f.inputs[fieldDay].SetValue(study.DayShort(m.day))
	f.inputs[fieldRecurring].SetValue("n")
	m.form = f
	m.mode = ModeForm
	return m.form.setFocus(fieldSubject)
}

// openEditForm prepares the form with the values of e.
func (m *Model) openEditForm(e study.ScheduleEntry) tea.Cmd {
	f := newSessionForm(m.styles)
	f.editingID = e.ID
	subject := e.SubjectID
	if s, ok := m.resolver().SubjectByID(e.SubjectID); ok {
		subject = s.Name
	}
	f.inputs[fieldSubject].SetValue(subject)
	f.inputs[fieldDay].SetValue(study.DayShort(e.Day))
	f.inputs[fieldStart].SetValue(e.StartTime)
	f.inputs[fieldEnd].SetValue(e.EndTime)
	recurring := "n"
	if e.Recurring {
		recurring = "y"
	}
	f.inputs[fieldRecurring].SetValue(recurring)
	m.form = f
	m.mode = ModeForm
	return m.form.setFocus(fieldStart)
}

func (f *sessionForm) setFocus(i int) tea.Cmd {
	f.focus = (i + fieldCount) % fieldCount
	var cmd tea.Cmd
	for j := range f.inputs {
		if j == f.focus {
			cmd = f.inputs[j].Focus()
			continue
		}
		f.inputs[j].Blur()
	}
	return cmd
}

func (f *sessionForm) update(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	f.inputs[f.focus], cmd = f.inputs[f.focus].Update(msg)
	return cmd
}

func (f *sessionForm) value(i int) string {
	return strings.TrimSpace(f.inputs[i].Value())
}

// scheduleForm converts the inputs into the submission form. The subject
// may be typed by name; anything that matches no subject is passed on as
// a raw id.
func (f *sessionForm) scheduleForm(subjects []study.Subject) study.ScheduleForm {
	subject := f.value(fieldSubject)
	for _, s := range subjects {
		if strings.EqualFold(s.Name, subject) {
			subject = s.ID
			break
		}
	}

	day := f.value(fieldDay)
	if d, err := study.ParseDayName(day); err == nil {
		day = strconv.Itoa(d)
	}

	recurring := false
	switch strings.ToLower(f.value(fieldRecurring)) {
	case "y", "yes", "true":
		recurring = true
	}

	return study.ScheduleForm{
		SubjectID: subject,
		Day:       day,
		StartTime: f.value(fieldStart),
		EndTime:   f.value(fieldEnd),
		Recurring: recurring,
	}
}
