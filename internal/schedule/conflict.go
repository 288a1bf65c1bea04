package schedule

import (
	"context"
	"fmt"

	"github.com/javiermolinar/studyplan/internal/study"
)

// FindConflict returns the first entry, in store order, on day whose
// interval overlaps [start, end). The entry with excludeID is ignored.
// Intervals that only touch at an endpoint do not conflict.
func FindConflict(entries []study.ScheduleEntry, day int, start, end, excludeID string) *study.ScheduleEntry {
	nStart := study.TimeToMinutes(start)
	nEnd := study.TimeToMinutes(end)
	for i := range entries {
		e := &entries[i]
		if e.Day != day || e.ID == excludeID {
			continue
		}
		if e.Overlaps(nStart, nEnd) {
			found := *e
			return &found
		}
	}
	return nil
}

// Detector checks candidate sessions against the stored schedule.
type Detector struct {
	repo study.ScheduleRepository
}

// NewDetector creates a Detector over repo.
func NewDetector(repo study.ScheduleRepository) *Detector {
	return &Detector{repo: repo}
}

// HasConflict returns the first stored entry that clashes with the candidate, or nil.
func (d *Detector) HasConflict(ctx context.Context, day int, start, end, excludeID string) *study.ScheduleEntry {
	return FindConflict(d.repo.Schedules(ctx), day, start, end, excludeID)
}

// ConflictError reports the existing session a candidate collides with.
type ConflictError struct {
	Entry       study.ScheduleEntry
	SubjectName string // empty when the subject no longer exists
}

// StartTime returns the conflicting session's start as a 12-hour label.
func (e *ConflictError) StartTime() string {
	return study.FormatTime12(e.Entry.StartTime)
}

func (e *ConflictError) Error() string {
	name := e.SubjectName
	if name == "" {
		name = "another session"
	}
	return fmt.Sprintf("conflicts with %q at %s", name, e.StartTime())
}

func (e *ConflictError) Unwrap() error {
	return study.ErrScheduleConflict
}
