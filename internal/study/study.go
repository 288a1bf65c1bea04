// Package study defines the core domain types for studyplan.
package study

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

// Validation errors.
var (
	ErrMissingField      = errors.New("required field is missing")
	ErrInvalidTimeFormat = errors.New("time must be in HH:MM format")
	ErrInvalidDay        = errors.New("day must be an integer between 0 (Sunday) and 6 (Saturday)")
	ErrEndBeforeStart    = errors.New("end time must be after start time")
	ErrInvalidPriority   = errors.New("priority must be 'low', 'medium' or 'high'")
	ErrInvalidTaskType   = errors.New("task type must be 'assignment', 'exam' or 'other'")
	ErrInvalidColor      = errors.New("color must be in #RRGGBB format")
	ErrInvalidNumber     = errors.New("value must be a non-negative number")
	ErrInvalidDeadline   = errors.New("deadline must be in YYYY-MM-DD or YYYY-MM-DDTHH:MM format")
)

// Domain errors.
var (
	ErrScheduleConflict = errors.New("study session overlaps with an existing session")
	ErrNotFound         = errors.New("record not found")
	ErrNotSaved         = errors.New("changes were not saved")
)

// UnknownSubject is the label shown when a subject reference no longer resolves.
const UnknownSubject = "Unknown"

// DefaultAccent is the fallback colour for blocks whose subject is gone.
const DefaultAccent = "#8B5CF6"

// Priority ranks subjects and tasks.
type Priority string

const (
	PriorityLow    Priority = "low"
	PriorityMedium Priority = "medium"
	PriorityHigh   Priority = "high"
)

// Valid returns true if the priority is a known value.
func (p Priority) Valid() bool {
	switch p {
	case PriorityLow, PriorityMedium, PriorityHigh:
		return true
	default:
		return false
	}
}

// Rank orders priorities for sorting, high first.
func (p Priority) Rank() int {
	switch p {
	case PriorityHigh:
		return 0
	case PriorityMedium:
		return 1
	default:
		return 2
	}
}

// TaskType categorises a task.
type TaskType string

const (
	TaskAssignment TaskType = "assignment"
	TaskExam       TaskType = "exam"
	TaskOther      TaskType = "other"
)

// Valid returns true if the task type is a known value.
func (t TaskType) Valid() bool {
	switch t {
	case TaskAssignment, TaskExam, TaskOther:
		return true
	default:
		return false
	}
}

// Subject is a course or topic being studied.
type Subject struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Color       string    `json:"color"`
	Priority    Priority  `json:"priority"`
	TargetHours float64   `json:"targetHours"`
	CreatedAt   time.Time `json:"createdAt"`
}

// ScheduleEntry is one weekly study session.
// SubjectID is a weak reference and may dangle after the subject is deleted.
type ScheduleEntry struct {
	ID        string    `json:"id"`
	SubjectID string    `json:"subjectId"`
	Day       int       `json:"day"`       // 0=Sunday, 6=Saturday
	StartTime string    `json:"startTime"` // "HH:MM"
	EndTime   string    `json:"endTime"`   // "HH:MM"
	Recurring bool      `json:"recurring"`
	CreatedAt time.Time `json:"createdAt"`
}

// StartMinutes returns the start time as minutes since midnight.
func (e *ScheduleEntry) StartMinutes() int {
	return TimeToMinutes(e.StartTime)
}

// EndMinutes returns the end time as minutes since midnight.
func (e *ScheduleEntry) EndMinutes() int {
	return TimeToMinutes(e.EndTime)
}

// Duration returns the session length in minutes.
func (e *ScheduleEntry) Duration() int {
	return DurationMinutes(e.StartTime, e.EndTime)
}

// StartHour returns the hour component of the start time.
func (e *ScheduleEntry) StartHour() int {
	m := e.StartMinutes()
	if m < 0 {
		return -1
	}
	return m / 60
}

// Overlaps reports whether the half-open interval [start, end) intersects this entry.
// Touching endpoints do not overlap.
func (e *ScheduleEntry) Overlaps(start, end int) bool {
	return start < e.EndMinutes() && end > e.StartMinutes()
}

// StudyLog records a finished study session. Logs are never mutated.
type StudyLog struct {
	ID        string    `json:"id"`
	SubjectID string    `json:"subjectId"`
	Duration  int       `json:"duration"` // minutes
	Date      time.Time `json:"date"`
	Type      string    `json:"type,omitempty"`
}

// Log types.
const (
	LogPomodoro = "pomodoro"
	LogManual   = "manual"
)

// Task is an assignment, exam or other deadline.
type Task struct {
	ID          string     `json:"id"`
	Title       string     `json:"title"`
	Description string     `json:"description,omitempty"`
	SubjectID   string     `json:"subjectId,omitempty"`
	Type        TaskType   `json:"type"`
	Deadline    time.Time  `json:"deadline"`
	Priority    Priority   `json:"priority"`
	Completed   bool       `json:"completed"`
	CompletedAt *time.Time `json:"completedAt,omitempty"`
	CreatedAt   time.Time  `json:"createdAt"`
}

// Settings holds user preferences persisted with the data.
type Settings struct {
	Notifications          bool   `json:"notifications"`
	DefaultSessionDuration int    `json:"defaultSessionDuration"` // minutes
	BreakDuration          int    `json:"breakDuration"`          // minutes
	DefaultView            string `json:"defaultView"`
	AccentColor            string `json:"accentColor"`
}

// DefaultSettings returns the settings used before the user saves any.
func DefaultSettings() Settings {
	return Settings{
		Notifications:          true,
		DefaultSessionDuration: 25,
		BreakDuration:          5,
		DefaultView:            "daily",
		AccentColor:            DefaultAccent,
	}
}

// NewID returns a new opaque identifier.
// UUIDv7 combines a millisecond timestamp with random bits.
func NewID() string {
	id, err := uuid.NewV7()
	if err != nil {
		return uuid.NewString()
	}
	return id.String()
}
