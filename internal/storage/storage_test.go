package storage

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/javiermolinar/studyplan/internal/db"
	"github.com/javiermolinar/studyplan/internal/study"
)

type memBackend struct {
	docs      map[string][]byte
	loadErr   error
	failLoads int // fail this many upcoming loads
	saveErr   error
	saves     int
}

func newMemBackend() *memBackend {
	return &memBackend{docs: make(map[string][]byte)}
}

func (m *memBackend) Load(_ context.Context, key string) ([]byte, bool, error) {
	if m.loadErr != nil {
		return nil, false, m.loadErr
	}
	if m.failLoads > 0 {
		m.failLoads--
		return nil, false, errors.New("database is locked")
	}
	v, ok := m.docs[key]
	return v, ok, nil
}

func (m *memBackend) Save(_ context.Context, key string, value []byte) error {
	if m.saveErr != nil {
		return m.saveErr
	}
	m.saves++
	m.docs[key] = value
	return nil
}

func (m *memBackend) Delete(_ context.Context, key string) error {
	delete(m.docs, key)
	return nil
}

var fixedNow = time.Date(2025, 3, 12, 10, 0, 0, 0, time.UTC)

func newTestLocal(b Backend) *Local {
	return New(b, Options{Now: func() time.Time { return fixedNow }})
}

func TestAddSchedule_AssignsIDAndAppends(t *testing.T) {
	ctx := context.Background()
	b := newMemBackend()
	l := newTestLocal(b)

	first, err := l.AddSchedule(ctx, study.ScheduleEntry{SubjectID: "s1", Day: 1, StartTime: "09:00", EndTime: "10:00"})
	if err != nil {
		t.Fatalf("AddSchedule failed: %v", err)
	}
	second, _ := l.AddSchedule(ctx, study.ScheduleEntry{SubjectID: "s1", Day: 1, StartTime: "09:30", EndTime: "10:30"})

	if first.ID == "" || first.ID == second.ID {
		t.Fatalf("expected distinct ids, got %q and %q", first.ID, second.ID)
	}
	if !first.CreatedAt.Equal(fixedNow) {
		t.Errorf("got createdAt %v, want %v", first.CreatedAt, fixedNow)
	}

	all := l.Schedules(ctx)
	if len(all) != 2 {
		t.Fatalf("got %d entries, want 2 (no conflict check on add)", len(all))
	}
	if all[0].ID != first.ID || all[1].ID != second.ID {
		t.Error("entries not in insertion order")
	}
	if _, ok := b.docs["ssp_schedules"]; !ok {
		t.Error("expected ssp_schedules document")
	}
}

func TestUpdateSchedule(t *testing.T) {
	ctx := context.Background()
	l := newTestLocal(newMemBackend())

	e, _ := l.AddSchedule(ctx, study.ScheduleEntry{SubjectID: "s1", Day: 1, StartTime: "09:00", EndTime: "10:00"})
	l.AddSchedule(ctx, study.ScheduleEntry{SubjectID: "s2", Day: 2, StartTime: "09:00", EndTime: "10:00"})

	got, err := l.UpdateSchedule(ctx, e.ID, func(s *study.ScheduleEntry) { s.EndTime = "11:00" })
	if err != nil || got == nil {
		t.Fatalf("expected updated entry, got (%v, %v)", got, err)
	}
	if got.EndTime != "11:00" || got.StartTime != "09:00" || got.ID != e.ID {
		t.Errorf("unexpected merge result: %+v", got)
	}
	if l.Schedules(ctx)[0].EndTime != "11:00" {
		t.Error("update should keep position and persist")
	}

	if got, err := l.UpdateSchedule(ctx, "missing", func(*study.ScheduleEntry) {}); got != nil || err != nil {
		t.Errorf("expected (nil, nil) for missing id, got (%+v, %v)", got, err)
	}
}

func TestDeleteSchedule(t *testing.T) {
	ctx := context.Background()
	l := newTestLocal(newMemBackend())

	e, _ := l.AddSchedule(ctx, study.ScheduleEntry{SubjectID: "s1", Day: 1, StartTime: "09:00", EndTime: "10:00"})
	if err := l.DeleteSchedule(ctx, "missing"); err != nil {
		t.Fatalf("DeleteSchedule failed: %v", err)
	}
	if len(l.Schedules(ctx)) != 1 {
		t.Fatal("deleting a missing id must not change the collection")
	}
	l.DeleteSchedule(ctx, e.ID)
	if len(l.Schedules(ctx)) != 0 {
		t.Error("entry not deleted")
	}
}

func TestSubjects(t *testing.T) {
	ctx := context.Background()
	l := newTestLocal(newMemBackend())

	s, _ := l.AddSubject(ctx, study.Subject{Name: "Physics", Color: "#EF4444", Priority: study.PriorityHigh})
	l.AddSchedule(ctx, study.ScheduleEntry{SubjectID: s.ID, Day: 1, StartTime: "09:00", EndTime: "10:00"})

	got, ok := l.SubjectByID(ctx, s.ID)
	if !ok || got.Name != "Physics" {
		t.Fatalf("SubjectByID = %+v, %v", got, ok)
	}

	name := "Quantum Physics"
	updated, _ := l.UpdateSubject(ctx, s.ID, study.SubjectPatch{Name: &name})
	if updated == nil || updated.Name != name || updated.Color != "#EF4444" {
		t.Errorf("unexpected patch result: %+v", updated)
	}
	if got, _ := l.UpdateSubject(ctx, "missing", study.SubjectPatch{Name: &name}); got != nil {
		t.Error("expected nil for missing subject")
	}

	l.DeleteSubject(ctx, s.ID)
	if _, ok := l.SubjectByID(ctx, s.ID); ok {
		t.Error("subject still present")
	}
	if len(l.Schedules(ctx)) != 1 {
		t.Error("deleting a subject must not cascade to schedules")
	}
}

func TestTasks(t *testing.T) {
	ctx := context.Background()
	l := newTestLocal(newMemBackend())

	task, _ := l.AddTask(ctx, study.Task{Title: "Essay", Completed: true, Deadline: fixedNow.Add(48 * time.Hour)})
	if task.Completed {
		t.Error("new tasks start incomplete")
	}

	toggled, _ := l.ToggleTask(ctx, task.ID)
	if toggled == nil || !toggled.Completed || toggled.CompletedAt == nil {
		t.Fatalf("expected completed task with timestamp, got %+v", toggled)
	}
	toggled, _ = l.ToggleTask(ctx, task.ID)
	if toggled.Completed || toggled.CompletedAt != nil {
		t.Errorf("expected cleared completion, got %+v", toggled)
	}

	title := "Long essay"
	if got, _ := l.UpdateTask(ctx, task.ID, study.TaskPatch{Title: &title}); got == nil || got.Title != title {
		t.Errorf("unexpected update result: %+v", got)
	}
	if got, _ := l.ToggleTask(ctx, "missing"); got != nil {
		t.Error("expected nil for missing task")
	}

	l.DeleteTask(ctx, task.ID)
	if len(l.Tasks(ctx)) != 0 {
		t.Error("task not deleted")
	}
}

func TestAddStudyLog_StampsDate(t *testing.T) {
	ctx := context.Background()
	l := newTestLocal(newMemBackend())

	log, _ := l.AddStudyLog(ctx, study.StudyLog{SubjectID: "s1", Duration: 25, Type: study.LogPomodoro})
	if !log.Date.Equal(fixedNow) || log.ID == "" {
		t.Errorf("unexpected log: %+v", log)
	}

	past := fixedNow.AddDate(0, 0, -2)
	log, _ = l.AddStudyLog(ctx, study.StudyLog{SubjectID: "s1", Duration: 30, Date: past})
	if !log.Date.Equal(past) {
		t.Errorf("explicit date overwritten: %v", log.Date)
	}
	if len(l.StudyLogs(ctx)) != 2 {
		t.Error("expected two logs")
	}
}

func TestSettings_DefaultsAndSave(t *testing.T) {
	ctx := context.Background()
	l := newTestLocal(newMemBackend())

	if got := l.Settings(ctx); got != study.DefaultSettings() {
		t.Errorf("got %+v, want defaults", got)
	}

	s := study.DefaultSettings()
	s.DefaultView = "weekly"
	if err := l.SaveSettings(ctx, s); err != nil {
		t.Fatalf("SaveSettings failed: %v", err)
	}
	if got := l.Settings(ctx); got.DefaultView != "weekly" {
		t.Errorf("got view %q, want weekly", got.DefaultView)
	}
}

func TestCorruptDocumentYieldsEmpty(t *testing.T) {
	ctx := context.Background()
	b := newMemBackend()
	b.docs["ssp_schedules"] = []byte("{not json")
	l := newTestLocal(b)

	if got := l.Schedules(ctx); len(got) != 0 || got == nil {
		t.Errorf("expected empty non-nil slice, got %#v", got)
	}
}

func TestFailedWriteIsReported(t *testing.T) {
	ctx := context.Background()
	b := newMemBackend()
	l := newTestLocal(b)

	b.saveErr = errors.New("quota exceeded")
	e, err := l.AddSchedule(ctx, study.ScheduleEntry{SubjectID: "s1", Day: 1, StartTime: "09:00", EndTime: "10:00"})
	if !errors.Is(err, study.ErrNotSaved) {
		t.Errorf("got error %v, want ErrNotSaved", err)
	}
	if e.ID != "" {
		t.Errorf("unsaved entry returned with id %q", e.ID)
	}
	if _, err := l.AddTask(ctx, study.Task{Title: "x"}); !errors.Is(err, study.ErrNotSaved) {
		t.Errorf("AddTask: got %v, want ErrNotSaved", err)
	}
	if err := l.SaveSettings(ctx, study.DefaultSettings()); !errors.Is(err, study.ErrNotSaved) {
		t.Errorf("SaveSettings: got %v, want ErrNotSaved", err)
	}
	b.saveErr = nil
	if len(l.Schedules(ctx)) != 0 {
		t.Error("failed write should leave the store unchanged")
	}

	b.loadErr = errors.New("disk gone")
	if got := l.Tasks(ctx); len(got) != 0 || got == nil {
		t.Errorf("expected empty tasks on read error, got %#v", got)
	}
}

func TestFailedReadNeverOverwrites(t *testing.T) {
	ctx := context.Background()
	b := newMemBackend()
	l := newTestLocal(b)

	first, _ := l.AddSchedule(ctx, study.ScheduleEntry{SubjectID: "s1", Day: 1, StartTime: "09:00", EndTime: "10:00"})
	l.AddSchedule(ctx, study.ScheduleEntry{SubjectID: "s1", Day: 2, StartTime: "09:00", EndTime: "10:00"})
	task, _ := l.AddTask(ctx, study.Task{Title: "Essay"})
	l.AddSubject(ctx, study.Subject{Name: "Math"})
	l.AddStudyLog(ctx, study.StudyLog{SubjectID: "s1", Duration: 25})
	savesBefore := b.saves

	mutations := map[string]func() error{
		"add schedule": func() error {
			_, err := l.AddSchedule(ctx, study.ScheduleEntry{SubjectID: "s1", Day: 3, StartTime: "09:00", EndTime: "10:00"})
			return err
		},
		"update schedule": func() error {
			_, err := l.UpdateSchedule(ctx, first.ID, func(e *study.ScheduleEntry) { e.Day = 5 })
			return err
		},
		"delete absent schedule": func() error { return l.DeleteSchedule(ctx, "nonexistent") },
		"delete schedule":        func() error { return l.DeleteSchedule(ctx, first.ID) },
		"add subject": func() error {
			_, err := l.AddSubject(ctx, study.Subject{Name: "Physics"})
			return err
		},
		"delete subject": func() error { return l.DeleteSubject(ctx, "any") },
		"toggle task": func() error {
			_, err := l.ToggleTask(ctx, task.ID)
			return err
		},
		"delete task": func() error { return l.DeleteTask(ctx, task.ID) },
		"add log": func() error {
			_, err := l.AddStudyLog(ctx, study.StudyLog{SubjectID: "s1", Duration: 30})
			return err
		},
	}
	for name, mutate := range mutations {
		t.Run(name, func(t *testing.T) {
			b.failLoads = 1
			if err := mutate(); !errors.Is(err, study.ErrNotSaved) {
				t.Errorf("got error %v, want ErrNotSaved", err)
			}
		})
	}

	if b.saves != savesBefore {
		t.Errorf("%d writes after failed reads", b.saves-savesBefore)
	}
	if n := len(l.Schedules(ctx)); n != 2 {
		t.Errorf("got %d schedule entries, want 2", n)
	}
	if n := len(l.Tasks(ctx)); n != 1 {
		t.Errorf("got %d tasks, want 1", n)
	}
	if n := len(l.Subjects(ctx)); n != 1 {
		t.Errorf("got %d subjects, want 1", n)
	}
	if n := len(l.StudyLogs(ctx)); n != 1 {
		t.Errorf("got %d logs, want 1", n)
	}
}

func TestCorruptDocumentBlocksMutation(t *testing.T) {
	ctx := context.Background()
	b := newMemBackend()
	b.docs["ssp_tasks"] = []byte("{not json")
	l := newTestLocal(b)

	if _, err := l.AddTask(ctx, study.Task{Title: "x"}); !errors.Is(err, study.ErrNotSaved) {
		t.Errorf("got error %v, want ErrNotSaved", err)
	}
	if string(b.docs["ssp_tasks"]) != "{not json" {
		t.Error("corrupt document was overwritten")
	}
}

func TestNamespace(t *testing.T) {
	ctx := context.Background()
	b := newMemBackend()
	l := New(b, Options{Namespace: "test"})

	l.AddTask(ctx, study.Task{Title: "x"})
	if _, ok := b.docs["test_tasks"]; !ok {
		t.Errorf("expected test_tasks key, got %v", b.docs)
	}
}

func TestExportImportReset(t *testing.T) {
	ctx := context.Background()
	b := newMemBackend()
	l := newTestLocal(b)

	l.AddSubject(ctx, study.Subject{Name: "Math"})
	l.AddTask(ctx, study.Task{Title: "Quiz"})

	snap := l.ExportAll(ctx)
	if len(snap.Subjects) != 1 || len(snap.Tasks) != 1 || snap.Schedules == nil || snap.Settings == nil {
		t.Fatalf("unexpected snapshot: %+v", snap)
	}

	// Only present collections are replaced.
	imported := l.ImportAll(ctx, Snapshot{Subjects: []study.Subject{}})
	if len(imported) != 1 || imported[0] != KeySubjects {
		t.Errorf("got imported %v, want [subjects]", imported)
	}
	if len(l.Subjects(ctx)) != 0 {
		t.Error("subjects should be replaced by the empty import")
	}
	if len(l.Tasks(ctx)) != 1 {
		t.Error("tasks should be untouched")
	}

	if err := l.ResetAll(ctx); err != nil {
		t.Fatalf("ResetAll failed: %v", err)
	}
	if len(b.docs) != 0 {
		t.Errorf("expected no documents after reset, got %v", b.docs)
	}
}

func TestImportAll_UsesSQLiteTransaction(t *testing.T) {
	ctx := context.Background()
	repo, err := db.New(filepath.Join(t.TempDir(), "study.db"))
	if err != nil {
		t.Fatalf("failed to open db: %v", err)
	}
	defer func() { _ = repo.Close() }()

	l := newTestLocal(repo)
	settings := study.DefaultSettings()
	settings.BreakDuration = 10
	names := l.ImportAll(ctx, Snapshot{
		Schedules: []study.ScheduleEntry{{ID: "e1", SubjectID: "s1", Day: 3, StartTime: "08:00", EndTime: "09:00"}},
		Settings:  &settings,
	})
	if len(names) != 2 {
		t.Fatalf("got %v, want schedules and settings", names)
	}

	entries := l.Schedules(ctx)
	if len(entries) != 1 || entries[0].ID != "e1" {
		t.Errorf("unexpected schedules: %+v", entries)
	}
	if l.Settings(ctx).BreakDuration != 10 {
		t.Error("settings not imported")
	}

	keys, err := repo.Keys(ctx)
	if err != nil {
		t.Fatalf("Keys failed: %v", err)
	}
	if len(keys) != 2 {
		t.Errorf("got keys %v", keys)
	}
}
