package study

import "time"

// SubjectPatch holds optional subject changes. Nil fields are left as is.
type SubjectPatch struct {
	Name        *string
	Color       *string
	Priority    *Priority
	TargetHours *float64
}

// Apply merges the non-nil fields into s.
func (p SubjectPatch) Apply(s *Subject) {
	if p.Name != nil {
		s.Name = *p.Name
	}
	if p.Color != nil {
		s.Color = *p.Color
	}
	if p.Priority != nil {
		s.Priority = *p.Priority
	}
	if p.TargetHours != nil {
		s.TargetHours = *p.TargetHours
	}
}

// TaskPatch holds optional task changes. Nil fields are left as is.
type TaskPatch struct {
	Title       *string
	Description *string
	SubjectID   *string
	Type        *TaskType
	Deadline    *time.Time
	Priority    *Priority
}

// Apply merges the non-nil fields into t.
func (p TaskPatch) Apply(t *Task) {
	if p.Title != nil {
		t.Title = *p.Title
	}
	if p.Description != nil {
		t.Description = *p.Description
	}
	if p.SubjectID != nil {
		t.SubjectID = *p.SubjectID
	}
	if p.Type != nil {
		t.Type = *p.Type
	}
	if p.Deadline != nil {
		t.Deadline = *p.Deadline
	}
	if p.Priority != nil {
		t.Priority = *p.Priority
	}
}
