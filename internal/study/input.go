package study

import (
	"errors"
	"fmt"
	"reflect"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
)

// ValidationError reports which input field was rejected and why.
type ValidationError struct {
	Field  string
	Reason error
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %v", e.Field, e.Reason)
}

func (e *ValidationError) Unwrap() error {
	return e.Reason
}

var hexColor = regexp.MustCompile(`^#[0-9A-Fa-f]{6}$`)

// IsHexColor reports whether s is a #RRGGBB colour.
func IsHexColor(s string) bool {
	return hexColor.MatchString(s)
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "" || name == "-" {
			return f.Name
		}
		return name
	})
	_ = v.RegisterValidation("clock", func(fl validator.FieldLevel) bool {
		_, err := ParseClock(fl.Field().String())
		return err == nil
	})
	_ = v.RegisterValidation("weekday", func(fl validator.FieldLevel) bool {
		_, ok := parseWeekday(fl.Field().String())
		return ok
	})
	_ = v.RegisterValidation("priority", func(fl validator.FieldLevel) bool {
		return Priority(fl.Field().String()).Valid()
	})
	_ = v.RegisterValidation("tasktype", func(fl validator.FieldLevel) bool {
		return TaskType(fl.Field().String()).Valid()
	})
	_ = v.RegisterValidation("rgb", func(fl validator.FieldLevel) bool {
		return IsHexColor(fl.Field().String())
	})
	_ = v.RegisterValidation("minutes", func(fl validator.FieldLevel) bool {
		n, err := strconv.Atoi(strings.TrimSpace(fl.Field().String()))
		return err == nil && n > 0
	})
	_ = v.RegisterValidation("hours", func(fl validator.FieldLevel) bool {
		f, err := strconv.ParseFloat(strings.TrimSpace(fl.Field().String()), 64)
		return err == nil && f >= 0
	})
	return v
}

var tagReasons = map[string]error{
	"required": ErrMissingField,
	"clock":    ErrInvalidTimeFormat,
	"weekday":  ErrInvalidDay,
	"priority": ErrInvalidPriority,
	"tasktype": ErrInvalidTaskType,
	"rgb":      ErrInvalidColor,
	"minutes":  ErrInvalidNumber,
	"hours":    ErrInvalidNumber,
}

// check runs struct validation and converts the first failure into a ValidationError.
func check(form any) error {
	err := validate.Struct(form)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return err
	}
	fe := verrs[0]
	reason, ok := tagReasons[fe.Tag()]
	if !ok {
		reason = fmt.Errorf("failed %q check", fe.Tag())
	}
	return &ValidationError{Field: fe.Field(), Reason: reason}
}

// parseWeekday accepts exactly one digit from 0 (Sunday) to 6.
func parseWeekday(s string) (int, bool) {
	if len(s) != 1 || s[0] < '0' || s[0] > '6' {
		return 0, false
	}
	return int(s[0] - '0'), true
}

// ScheduleForm is the raw input of the add/edit session form.
type ScheduleForm struct {
	SubjectID string `json:"subjectId" validate:"required"`
	Day       string `json:"day" validate:"required,weekday"`
	StartTime string `json:"startTime" validate:"required,clock"`
	EndTime   string `json:"endTime" validate:"required,clock"`
	Recurring bool   `json:"recurring"`
}

// ScheduleDraft is a validated session that has not been stored yet.
type ScheduleDraft struct {
	SubjectID string
	Day       int
	StartTime string
	EndTime   string
	Recurring bool
}

// Parse validates the form.
// An end time equal to or before the start time is rejected.
func (f ScheduleForm) Parse() (*ScheduleDraft, error) {
	f.SubjectID = strings.TrimSpace(f.SubjectID)
	f.Day = strings.TrimSpace(f.Day)
	f.StartTime = strings.TrimSpace(f.StartTime)
	f.EndTime = strings.TrimSpace(f.EndTime)

	if err := check(f); err != nil {
		return nil, err
	}

	day, _ := parseWeekday(f.Day)
	if TimeToMinutes(f.EndTime) <= TimeToMinutes(f.StartTime) {
		return nil, &ValidationError{Field: "endTime", Reason: ErrEndBeforeStart}
	}

	return &ScheduleDraft{
		SubjectID: f.SubjectID,
		Day:       day,
		StartTime: f.StartTime,
		EndTime:   f.EndTime,
		Recurring: f.Recurring,
	}, nil
}

// Entry builds an unsaved ScheduleEntry from the draft.
func (d *ScheduleDraft) Entry() ScheduleEntry {
	return ScheduleEntry{
		SubjectID: d.SubjectID,
		Day:       d.Day,
		StartTime: d.StartTime,
		EndTime:   d.EndTime,
		Recurring: d.Recurring,
	}
}

// SubjectForm is the raw input of the subject form.
// Empty Color and Priority fall back to the accent colour and medium.
type SubjectForm struct {
	Name        string `json:"name" validate:"required"`
	Color       string `json:"color" validate:"omitempty,rgb"`
	Priority    string `json:"priority" validate:"omitempty,priority"`
	TargetHours string `json:"targetHours" validate:"omitempty,hours"`
}

// Parse validates the form and returns an unsaved Subject.
func (f SubjectForm) Parse() (*Subject, error) {
	f.Name = strings.TrimSpace(f.Name)
	if err := check(f); err != nil {
		return nil, err
	}
	s := &Subject{
		Name:     f.Name,
		Color:    f.Color,
		Priority: Priority(f.Priority),
	}
	if s.Color == "" {
		s.Color = DefaultAccent
	}
	if s.Priority == "" {
		s.Priority = PriorityMedium
	}
	if f.TargetHours != "" {
		s.TargetHours, _ = strconv.ParseFloat(strings.TrimSpace(f.TargetHours), 64)
	}
	return s, nil
}

// TaskForm is the raw input of the task form.
type TaskForm struct {
	Title       string `json:"title" validate:"required"`
	Description string `json:"description"`
	SubjectID   string `json:"subjectId"`
	Type        string `json:"type" validate:"omitempty,tasktype"`
	Deadline    string `json:"deadline" validate:"required"`
	Priority    string `json:"priority" validate:"omitempty,priority"`
}

// Parse validates the form and returns an unsaved Task.
// Deadline forms are those accepted by ParseDeadline.
func (f TaskForm) Parse(now time.Time) (*Task, error) {
	f.Title = strings.TrimSpace(f.Title)
	if err := check(f); err != nil {
		return nil, err
	}
	deadline, err := ParseDeadline(f.Deadline, now)
	if err != nil {
		return nil, &ValidationError{Field: "deadline", Reason: err}
	}
	t := &Task{
		Title:       f.Title,
		Description: strings.TrimSpace(f.Description),
		SubjectID:   strings.TrimSpace(f.SubjectID),
		Type:        TaskType(f.Type),
		Deadline:    deadline,
		Priority:    Priority(f.Priority),
	}
	if t.Type == "" {
		t.Type = TaskAssignment
	}
	if t.Priority == "" {
		t.Priority = PriorityMedium
	}
	return t, nil
}

// LogForm is the raw input for recording a manual study session.
type LogForm struct {
	SubjectID string `json:"subjectId" validate:"required"`
	Duration  string `json:"duration" validate:"required,minutes"`
	Date      string `json:"date"`
}

// Parse validates the form. An empty Date means now.
func (f LogForm) Parse(now time.Time) (*StudyLog, error) {
	if err := check(f); err != nil {
		return nil, err
	}
	mins, _ := strconv.Atoi(strings.TrimSpace(f.Duration))
	date := now
	if d := strings.TrimSpace(f.Date); d != "" {
		parsed, err := time.ParseInLocation("2006-01-02", d, now.Location())
		if err != nil {
			return nil, &ValidationError{Field: "date", Reason: ErrInvalidDeadline}
		}
		date = parsed.Add(12 * time.Hour)
	}
	return &StudyLog{
		SubjectID: strings.TrimSpace(f.SubjectID),
		Duration:  mins,
		Date:      date,
		Type:      LogManual,
	}, nil
}
