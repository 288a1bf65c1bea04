package study

import "context"

// ScheduleRepository persists the weekly schedule.
// Every mutation rewrites the whole collection. A mutation that could not
// be persisted returns an error wrapping ErrNotSaved and changes nothing.
type ScheduleRepository interface {
	// Schedules returns all entries in store order.
	Schedules(ctx context.Context) []ScheduleEntry

	// AddSchedule assigns an ID and creation time, appends and persists.
	AddSchedule(ctx context.Context, entry ScheduleEntry) (ScheduleEntry, error)

	// UpdateSchedule applies fn to the entry with id and persists.
	// Returns (nil, nil) if no entry matches.
	UpdateSchedule(ctx context.Context, id string, fn func(*ScheduleEntry)) (*ScheduleEntry, error)

	// DeleteSchedule removes the entry with id. Absent ids are ignored.
	DeleteSchedule(ctx context.Context, id string) error
}

// SubjectLookup resolves subject references.
type SubjectLookup interface {
	SubjectByID(ctx context.Context, id string) (*Subject, bool)
}
