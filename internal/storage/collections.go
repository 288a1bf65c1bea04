package storage

import (
	"context"
	"slices"

	"github.com/javiermolinar/studyplan/internal/study"
)

// ---- Subjects ----

// Subjects returns all subjects in store order.
func (l *Local) Subjects(ctx context.Context) []study.Subject {
	return loadList[study.Subject](ctx, l, KeySubjects)
}

// SaveSubjects replaces the subject collection.
func (l *Local) SaveSubjects(ctx context.Context, subjects []study.Subject) error {
	return l.write(ctx, KeySubjects, subjects)
}

// AddSubject assigns an ID and creation time and appends the subject.
func (l *Local) AddSubject(ctx context.Context, s study.Subject) (study.Subject, error) {
	subjects, err := load[study.Subject](ctx, l, KeySubjects)
	if err != nil {
		return study.Subject{}, err
	}
	s.ID = study.NewID()
	s.CreatedAt = l.now()
	if err := l.SaveSubjects(ctx, append(subjects, s)); err != nil {
		return study.Subject{}, err
	}
	return s, nil
}

// UpdateSubject merges patch into the subject with id.
// Returns (nil, nil) if no subject matches.
func (l *Local) UpdateSubject(ctx context.Context, id string, patch study.SubjectPatch) (*study.Subject, error) {
	return mutate(ctx, l, KeySubjects, func(s study.Subject) bool { return s.ID == id }, patch.Apply)
}

// DeleteSubject removes the subject with id.
// Schedule entries, tasks and logs that reference it are kept.
func (l *Local) DeleteSubject(ctx context.Context, id string) error {
	return remove(ctx, l, KeySubjects, func(s study.Subject) bool { return s.ID == id })
}

// SubjectByID looks up a subject.
func (l *Local) SubjectByID(ctx context.Context, id string) (*study.Subject, bool) {
	for _, s := range l.Subjects(ctx) {
		if s.ID == id {
			return &s, true
		}
	}
	return nil, false
}

// ---- Schedules ----

// Schedules returns all schedule entries in store order.
func (l *Local) Schedules(ctx context.Context) []study.ScheduleEntry {
	return loadList[study.ScheduleEntry](ctx, l, KeySchedules)
}

// SaveSchedules replaces the schedule collection.
func (l *Local) SaveSchedules(ctx context.Context, entries []study.ScheduleEntry) error {
	return l.write(ctx, KeySchedules, entries)
}

// AddSchedule assigns an ID and creation time and appends the entry.
// No conflict check is made.
func (l *Local) AddSchedule(ctx context.Context, entry study.ScheduleEntry) (study.ScheduleEntry, error) {
	entries, err := load[study.ScheduleEntry](ctx, l, KeySchedules)
	if err != nil {
		return study.ScheduleEntry{}, err
	}
	entry.ID = study.NewID()
	entry.CreatedAt = l.now()
	if err := l.SaveSchedules(ctx, append(entries, entry)); err != nil {
		return study.ScheduleEntry{}, err
	}
	return entry, nil
}

// UpdateSchedule applies fn to the entry with id in place, keeping its position.
// Returns (nil, nil) if no entry matches.
func (l *Local) UpdateSchedule(ctx context.Context, id string, fn func(*study.ScheduleEntry)) (*study.ScheduleEntry, error) {
	return mutate(ctx, l, KeySchedules, func(e study.ScheduleEntry) bool { return e.ID == id }, fn)
}

// DeleteSchedule removes the entry with id. Absent ids are ignored.
func (l *Local) DeleteSchedule(ctx context.Context, id string) error {
	return remove(ctx, l, KeySchedules, func(e study.ScheduleEntry) bool { return e.ID == id })
}

// ---- Tasks ----

// Tasks returns all tasks in store order.
func (l *Local) Tasks(ctx context.Context) []study.Task {
	return loadList[study.Task](ctx, l, KeyTasks)
}

// SaveTasks replaces the task collection.
func (l *Local) SaveTasks(ctx context.Context, tasks []study.Task) error {
	return l.write(ctx, KeyTasks, tasks)
}

// AddTask assigns an ID and creation time and appends an incomplete task.
func (l *Local) AddTask(ctx context.Context, t study.Task) (study.Task, error) {
	tasks, err := load[study.Task](ctx, l, KeyTasks)
	if err != nil {
		return study.Task{}, err
	}
	t.ID = study.NewID()
	t.Completed = false
	t.CompletedAt = nil
	t.CreatedAt = l.now()
	if err := l.SaveTasks(ctx, append(tasks, t)); err != nil {
		return study.Task{}, err
	}
	return t, nil
}

// UpdateTask merges patch into the task with id.
// Returns (nil, nil) if no task matches.
func (l *Local) UpdateTask(ctx context.Context, id string, patch study.TaskPatch) (*study.Task, error) {
	return mutate(ctx, l, KeyTasks, func(t study.Task) bool { return t.ID == id }, patch.Apply)
}

// ToggleTask flips completion, stamping or clearing CompletedAt.
// Returns (nil, nil) if no task matches.
func (l *Local) ToggleTask(ctx context.Context, id string) (*study.Task, error) {
	return mutate(ctx, l, KeyTasks, func(t study.Task) bool { return t.ID == id }, func(t *study.Task) {
		t.Completed = !t.Completed
		if t.Completed {
			now := l.now()
			t.CompletedAt = &now
		} else {
			t.CompletedAt = nil
		}
	})
}

// DeleteTask removes the task with id.
func (l *Local) DeleteTask(ctx context.Context, id string) error {
	return remove(ctx, l, KeyTasks, func(t study.Task) bool { return t.ID == id })
}

// ---- Study logs ----

// StudyLogs returns all study logs in append order.
func (l *Local) StudyLogs(ctx context.Context) []study.StudyLog {
	return loadList[study.StudyLog](ctx, l, KeyStudyLogs)
}

// AddStudyLog assigns an ID and appends the log.
// A zero Date is stamped with the current time.
func (l *Local) AddStudyLog(ctx context.Context, log study.StudyLog) (study.StudyLog, error) {
	logs, err := load[study.StudyLog](ctx, l, KeyStudyLogs)
	if err != nil {
		return study.StudyLog{}, err
	}
	log.ID = study.NewID()
	if log.Date.IsZero() {
		log.Date = l.now()
	}
	if err := l.write(ctx, KeyStudyLogs, append(logs, log)); err != nil {
		return study.StudyLog{}, err
	}
	return log, nil
}

// ---- Settings ----

// Settings returns the saved settings, or the defaults when none are saved.
func (l *Local) Settings(ctx context.Context) study.Settings {
	s := l.defaults
	if found, err := l.read(ctx, KeySettings, &s); !found || err != nil {
		return l.defaults
	}
	return s
}

// SaveSettings replaces the settings document.
func (l *Local) SaveSettings(ctx context.Context, s study.Settings) error {
	return l.write(ctx, KeySettings, s)
}

// mutate applies fn to the first item matching and rewrites the collection.
func mutate[T any](ctx context.Context, l *Local, name string, match func(T) bool, fn func(*T)) (*T, error) {
	items, err := load[T](ctx, l, name)
	if err != nil {
		return nil, err
	}
	idx := slices.IndexFunc(items, match)
	if idx == -1 {
		return nil, nil
	}
	fn(&items[idx])
	if err := l.write(ctx, name, items); err != nil {
		return nil, err
	}
	updated := items[idx]
	return &updated, nil
}

// remove drops every matching item. Nothing is written when none match.
func remove[T any](ctx context.Context, l *Local, name string, match func(T) bool) error {
	items, err := load[T](ctx, l, name)
	if err != nil {
		return err
	}
	kept := slices.DeleteFunc(slices.Clone(items), match)
	if len(kept) == len(items) {
		return nil
	}
	return l.write(ctx, name, kept)
}
