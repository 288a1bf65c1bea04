// Package schedule manages the weekly study schedule: storage, overlap
// detection and the add/edit submission flow.
package schedule

import (
	"context"
	"slices"

	"github.com/javiermolinar/studyplan/internal/study"
)

// SchedulePatch holds optional entry changes. Nil fields are left as is.
type SchedulePatch struct {
	SubjectID *string
	Day       *int
	StartTime *string
	EndTime   *string
	Recurring *bool
}

// Apply merges the non-nil fields into e.
func (p SchedulePatch) Apply(e *study.ScheduleEntry) {
	if p.SubjectID != nil {
		e.SubjectID = *p.SubjectID
	}
	if p.Day != nil {
		e.Day = *p.Day
	}
	if p.StartTime != nil {
		e.StartTime = *p.StartTime
	}
	if p.EndTime != nil {
		e.EndTime = *p.EndTime
	}
	if p.Recurring != nil {
		e.Recurring = *p.Recurring
	}
}

// PatchFromDraft builds a patch that overwrites every editable field.
func PatchFromDraft(d *study.ScheduleDraft) SchedulePatch {
	return SchedulePatch{
		SubjectID: &d.SubjectID,
		Day:       &d.Day,
		StartTime: &d.StartTime,
		EndTime:   &d.EndTime,
		Recurring: &d.Recurring,
	}
}

// Store is the ordered collection of schedule entries.
type Store struct {
	repo study.ScheduleRepository
}

// NewStore creates a Store over repo.
func NewStore(repo study.ScheduleRepository) *Store {
	return &Store{repo: repo}
}

// Add appends entry with a fresh ID and creation time.
// It does not check for conflicts.
func (s *Store) Add(ctx context.Context, entry study.ScheduleEntry) (*study.ScheduleEntry, error) {
	saved, err := s.repo.AddSchedule(ctx, entry)
	if err != nil {
		return nil, err
	}
	return &saved, nil
}

// Update shallow-merges patch into the entry with id.
// Returns (nil, nil) when no entry has that id.
func (s *Store) Update(ctx context.Context, id string, patch SchedulePatch) (*study.ScheduleEntry, error) {
	return s.repo.UpdateSchedule(ctx, id, patch.Apply)
}

// Delete removes the entry with id. Unknown ids are a no-op.
func (s *Store) Delete(ctx context.Context, id string) error {
	return s.repo.DeleteSchedule(ctx, id)
}

// QueryByDay returns the entries on day in store order.
func (s *Store) QueryByDay(ctx context.Context, day int) []study.ScheduleEntry {
	return ByDay(s.repo.Schedules(ctx), day)
}

// All returns every entry in store order.
func (s *Store) All(ctx context.Context) []study.ScheduleEntry {
	return s.repo.Schedules(ctx)
}

// Get returns the entry with id.
func (s *Store) Get(ctx context.Context, id string) (*study.ScheduleEntry, bool) {
	for _, e := range s.repo.Schedules(ctx) {
		if e.ID == id {
			return &e, true
		}
	}
	return nil, false
}

// ByDay filters entries to one weekday, keeping order.
func ByDay(entries []study.ScheduleEntry, day int) []study.ScheduleEntry {
	var out []study.ScheduleEntry
	for _, e := range entries {
		if e.Day == day {
			out = append(out, e)
		}
	}
	return out
}

// SortByStart returns a copy of entries ordered by start time.
// Entries with equal starts keep their store order.
func SortByStart(entries []study.ScheduleEntry) []study.ScheduleEntry {
	out := slices.Clone(entries)
	slices.SortStableFunc(out, func(a, b study.ScheduleEntry) int {
		return a.StartMinutes() - b.StartMinutes()
	})
	return out
}
