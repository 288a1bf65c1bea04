package ui

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/javiermolinar/studyplan/internal/config"
	"github.com/javiermolinar/studyplan/internal/schedule"
	"github.com/javiermolinar/studyplan/internal/study"
)

// Wednesday afternoon
var testNow = time.Date(2025, 3, 12, 15, 0, 0, 0, time.UTC)

type testApp struct {
	*App
	dir string
	out *bytes.Buffer
	err *bytes.Buffer
}

func newTestApp(t *testing.T, dir string) *testApp {
	t.Helper()
	DisableColor()

	cfg := config.Default()
	cfg.Storage.DBPath = filepath.Join(dir, "studyplan.db")
	cfg.Log.File = filepath.Join(dir, "studyplan.log")

	app := NewApp(cfg)
	app.SetClock(func() time.Time { return testNow })
	app.tickEvery = time.Millisecond
	out, errOut := &bytes.Buffer{}, &bytes.Buffer{}
	app.SetIO(strings.NewReader(""), out, errOut)
	t.Cleanup(func() { _ = app.Close() })
	return &testApp{App: app, dir: dir, out: out, err: errOut}
}

// run executes one command line and returns its stdout.
func (ta *testApp) run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	ta.out.Reset()
	ta.err.Reset()
	ta.SetArgs(args)
	err := ta.Execute()
	return ta.out.String(), err
}

func (ta *testApp) mustRun(t *testing.T, args ...string) string {
	t.Helper()
	out, err := ta.run(t, args...)
	if err != nil {
		t.Fatalf("%v: %v\nstderr: %s", args, err, ta.err.String())
	}
	return out
}

func TestVersion(t *testing.T) {
	app := newTestApp(t, t.TempDir())
	out := app.mustRun(t, "version")
	if !strings.HasPrefix(out, "studyplan dev") {
		t.Errorf("got %q", out)
	}
}

func TestSubjectCommands(t *testing.T) {
	app := newTestApp(t, t.TempDir())

	out := app.mustRun(t, "subject", "list")
	if !strings.Contains(out, "No subjects yet") {
		t.Errorf("empty list: %q", out)
	}

	out = app.mustRun(t, "subject", "add", "Math", "--color=#3B82F6", "--priority=high", "--target=6")
	if !strings.Contains(out, "Added subject Math (#3B82F6, high priority)") {
		t.Errorf("add: %q", out)
	}

	out = app.mustRun(t, "subject", "list")
	if !strings.Contains(out, "Math") || !strings.Contains(out, "target 6h/week") {
		t.Errorf("list: %q", out)
	}

	out = app.mustRun(t, "subject", "edit", "math", "--name=Mathematics")
	if !strings.Contains(out, "Updated subject Mathematics") {
		t.Errorf("edit: %q", out)
	}

	out = app.mustRun(t, "subject", "delete", "Mathematics")
	if !strings.Contains(out, "Deleted subject Mathematics") {
		t.Errorf("delete: %q", out)
	}
}

func TestSubjectAdd_Validation(t *testing.T) {
	app := newTestApp(t, t.TempDir())
	_, err := app.run(t, "subject", "add", "Math", "--color=blue")
	var verr *study.ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("got %v, want ValidationError", err)
	}
	if !strings.Contains(app.err.String(), "Invalid color") {
		t.Errorf("stderr = %q", app.err.String())
	}
}

func TestScheduleAddAndShow(t *testing.T) {
	app := newTestApp(t, t.TempDir())
	app.mustRun(t, "subject", "add", "Math")

	out := app.mustRun(t, "schedule", "add", "--subject=Math", "--day=wednesday", "--start=09:00", "--end=10:30", "--recurring")
	if !strings.Contains(out, "Math on Wednesday 9:00 AM-10:30 AM") {
		t.Errorf("add: %q", out)
	}

	out = app.mustRun(t, "schedule", "show")
	if !strings.Contains(out, "Wednesday") || !strings.Contains(out, "Math  9:00 AM-10:30 AM  1h30m") {
		t.Errorf("daily: %q", out)
	}

	out = app.mustRun(t, "schedule", "show", "--view=weekly")
	for _, want := range []string{"Wednesday (today)  1 session", "9:00 AM-10:30 AM  Math ↻", "Sunday  0 sessions", "Scheduled: 1h30m"} {
		if !strings.Contains(out, want) {
			t.Errorf("weekly missing %q:\n%s", want, out)
		}
	}

	out = app.mustRun(t, "schedule", "show", "--day=mon")
	if !strings.Contains(out, "No sessions scheduled") {
		t.Errorf("monday: %q", out)
	}
}

func TestScheduleConflict(t *testing.T) {
	app := newTestApp(t, t.TempDir())
	app.mustRun(t, "subject", "add", "Math")
	app.mustRun(t, "subject", "add", "Physics")
	app.mustRun(t, "schedule", "add", "--subject=Math", "--day=3", "--start=09:00", "--end=10:30")

	_, err := app.run(t, "schedule", "add", "--subject=Physics", "--day=3", "--start=10:00", "--end=11:00")
	if !errors.Is(err, study.ErrScheduleConflict) {
		t.Fatalf("got %v, want conflict", err)
	}
	if got := strings.TrimSpace(app.err.String()); got != `Conflicts with "Math" at 9:00 AM.` {
		t.Errorf("stderr = %q", got)
	}

	// Touching sessions do not overlap.
	app.mustRun(t, "schedule", "add", "--subject=Physics", "--day=3", "--start=10:30", "--end=11:30")
}

func TestScheduleEditAndDelete(t *testing.T) {
	app := newTestApp(t, t.TempDir())
	app.mustRun(t, "subject", "add", "Math")
	app.mustRun(t, "schedule", "add", "--subject=Math", "--day=3", "--start=09:00", "--end=10:00")

	ctx := t.Context()
	entries := app.sessions.Store().All(ctx)
	if len(entries) != 1 {
		t.Fatalf("got %d entries", len(entries))
	}
	id := shortID(entries[0].ID)

	out := app.mustRun(t, "schedule", "edit", id, "--end=11:00")
	if !strings.Contains(out, "9:00 AM-11:00 AM") {
		t.Errorf("edit: %q", out)
	}

	_, err := app.run(t, "schedule", "edit", id, "--end=08:00")
	if !errors.Is(err, study.ErrEndBeforeStart) {
		t.Errorf("got %v, want ErrEndBeforeStart", err)
	}

	out = app.mustRun(t, "schedule", "delete", id)
	if !strings.Contains(out, "Removed session") {
		t.Errorf("delete: %q", out)
	}
	if n := len(app.sessions.Store().All(ctx)); n != 0 {
		t.Errorf("got %d entries after delete", n)
	}

	_, err = app.run(t, "schedule", "delete", id)
	if !errors.Is(err, study.ErrNotFound) {
		t.Errorf("got %v, want ErrNotFound", err)
	}
}

func TestTaskCommands(t *testing.T) {
	app := newTestApp(t, t.TempDir())
	app.mustRun(t, "subject", "add", "History")

	out := app.mustRun(t, "task", "add", "Essay", "--deadline=2025-03-14T18:00", "--subject=History", "--type=assignment")
	if !strings.Contains(out, "Added task Essay due Fri Mar 14 18:00") {
		t.Errorf("add: %q", out)
	}

	out = app.mustRun(t, "task", "list")
	if !strings.Contains(out, "Essay") || !strings.Contains(out, "History") || !strings.Contains(out, "0 completed, 1 pending (0%)") {
		t.Errorf("list: %q", out)
	}

	id := shortID(app.store.Tasks(t.Context())[0].ID)
	out = app.mustRun(t, "task", "done", id)
	if !strings.Contains(out, "Completed Essay") {
		t.Errorf("done: %q", out)
	}
	out = app.mustRun(t, "task", "list")
	if !strings.Contains(out, "No pending tasks.") || !strings.Contains(out, "1 completed, 0 pending (100%)") {
		t.Errorf("list after done: %q", out)
	}
	out = app.mustRun(t, "task", "done", id)
	if !strings.Contains(out, "Reopened Essay") {
		t.Errorf("reopen: %q", out)
	}

	out = app.mustRun(t, "task", "delete", id)
	if !strings.Contains(out, "Deleted task") {
		t.Errorf("delete: %q", out)
	}
}

func TestTaskAdd_RequiresDeadline(t *testing.T) {
	app := newTestApp(t, t.TempDir())
	if _, err := app.run(t, "task", "add", "Essay"); err == nil {
		t.Fatal("expected missing --deadline to fail")
	}
}

func TestLogAndStats(t *testing.T) {
	app := newTestApp(t, t.TempDir())
	app.mustRun(t, "subject", "add", "Math")

	out := app.mustRun(t, "log", "add", "Math", "45")
	if !strings.Contains(out, "Logged 45m on Wed Mar 12") {
		t.Errorf("log: %q", out)
	}

	out = app.mustRun(t, "stats")
	for _, want := range []string{"Study stats", "(week)", "Total study time  45m", "Sessions          1", "Top subject       Math"} {
		if !strings.Contains(out, want) {
			t.Errorf("stats missing %q:\n%s", want, out)
		}
	}

	if _, err := app.run(t, "stats", "--period=decade"); err == nil {
		t.Error("expected an unknown period to fail")
	}
}

func TestDeadlines(t *testing.T) {
	app := newTestApp(t, t.TempDir())

	out := app.mustRun(t, "deadlines")
	if !strings.Contains(out, "No deadlines in the next 7 days.") {
		t.Errorf("empty: %q", out)
	}

	app.mustRun(t, "task", "add", "Quiz", "--deadline=2025-03-13T09:00")
	out = app.mustRun(t, "deadlines", "--days=3")
	if !strings.Contains(out, "Quiz") || !strings.Contains(out, "!") {
		t.Errorf("deadlines: %q", out)
	}
}

func TestFocusLogsSession(t *testing.T) {
	app := newTestApp(t, t.TempDir())
	app.mustRun(t, "subject", "add", "Math")

	out := app.mustRun(t, "focus", "--subject=Math", "--focus=1", "--break=1")
	for _, want := range []string{"Focus Session 01:00", "Focus session complete!", "Break over!", "Completed focus sessions: 1"} {
		if !strings.Contains(out, want) {
			t.Errorf("focus output missing %q:\n%s", want, out)
		}
	}

	logs := app.store.StudyLogs(t.Context())
	if len(logs) != 1 || logs[0].Duration != 1 || logs[0].Type != study.LogPomodoro {
		t.Errorf("logs = %+v", logs)
	}
}

func TestRemindOnce(t *testing.T) {
	app := newTestApp(t, t.TempDir())

	out := app.mustRun(t, "remind", "--once")
	if !strings.Contains(out, "No deadlines approaching.") {
		t.Errorf("empty: %q", out)
	}

	app.mustRun(t, "task", "add", "Essay", "--deadline=2025-03-12T15:20")
	out = app.mustRun(t, "remind", "--once")
	if !strings.Contains(out, `Deadline approaching! "Essay" is due in 20 minutes.`) {
		t.Errorf("remind: %q", out)
	}
}

func TestExportImportRoundTrip(t *testing.T) {
	dir := t.TempDir()
	src := newTestApp(t, filepath.Join(dir, "src"))
	src.mustRun(t, "subject", "add", "Math")
	src.mustRun(t, "schedule", "add", "--subject=Math", "--day=1", "--start=09:00", "--end=10:00", "--recurring")

	backup := filepath.Join(dir, "backup.json")
	out := src.mustRun(t, "export", "json", "--output", backup)
	if !strings.Contains(out, "Wrote "+backup) {
		t.Errorf("export: %q", out)
	}

	dst := newTestApp(t, filepath.Join(dir, "dst"))
	out = dst.mustRun(t, "import", backup)
	if !strings.Contains(out, "Imported subjects, schedules, tasks, settings, studyLogs") {
		t.Errorf("import: %q", out)
	}
	out = dst.mustRun(t, "schedule", "show", "--view=weekly")
	if !strings.Contains(out, "Monday  1 session") || !strings.Contains(out, "Math ↻") {
		t.Errorf("imported schedule: %q", out)
	}
}

func TestExportFormats(t *testing.T) {
	dir := t.TempDir()
	app := newTestApp(t, dir)
	app.mustRun(t, "subject", "add", "Math")
	app.mustRun(t, "schedule", "add", "--subject=Math", "--day=1", "--start=09:00", "--end=10:00")

	out := app.mustRun(t, "export", "ics")
	if !strings.Contains(out, "BEGIN:VCALENDAR") || !strings.Contains(out, "SUMMARY:Math") {
		t.Errorf("ics: %q", out)
	}

	for _, format := range []string{"pdf", "xlsx"} {
		t.Run(format, func(t *testing.T) {
			path := filepath.Join(dir, "week."+format)
			app.mustRun(t, "export", format, "-o", path)
			info, err := os.Stat(path)
			if err != nil || info.Size() == 0 {
				t.Fatalf("export %s: %v", format, err)
			}
		})
	}

	if _, err := app.run(t, "export", "csv"); err == nil {
		t.Error("expected an unknown format to fail")
	}
}

func TestImport_Errors(t *testing.T) {
	dir := t.TempDir()
	app := newTestApp(t, dir)

	if _, err := app.run(t, "import", filepath.Join(dir, "missing.json")); err == nil || !strings.Contains(err.Error(), "does not exist") {
		t.Errorf("missing file: %v", err)
	}

	empty := filepath.Join(dir, "empty.json")
	if err := os.WriteFile(empty, []byte(`{"exportedAt":"2025-03-12T15:00:00Z"}`), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := app.run(t, "import", empty); err == nil {
		t.Error("expected an empty backup to fail")
	}
}

func TestReset(t *testing.T) {
	app := newTestApp(t, t.TempDir())
	app.mustRun(t, "subject", "add", "Math")

	out := app.mustRun(t, "reset", "--yes")
	if !strings.Contains(out, "All data deleted.") {
		t.Errorf("reset: %q", out)
	}
	if n := len(app.store.Subjects(t.Context())); n != 0 {
		t.Errorf("got %d subjects after reset", n)
	}
}

func TestConfigShow(t *testing.T) {
	dir := t.TempDir()
	app := newTestApp(t, dir)
	path := filepath.Join(dir, "config.toml")

	out := app.mustRun(t, "config", "--path", path, "--show")
	if !strings.Contains(out, "Created "+path) || !strings.Contains(out, "focus_minutes        = 25") {
		t.Errorf("config: %q", out)
	}
	if _, err := os.Stat(path); err != nil {
		t.Errorf("config file not written: %v", err)
	}
}

func TestConfigEdit(t *testing.T) {
	dir := t.TempDir()
	app := newTestApp(t, dir)
	path := filepath.Join(dir, "config.toml")

	// Answer yes, change the focus length and the theme, keep the rest.
	answers := []string{"y", "", "", "50", "", "", "", "", "", "", "", "", "latte", ""}
	app.SetIO(strings.NewReader(strings.Join(answers, "\n")+"\n"), app.out, app.err)
	app.mustRun(t, "config", "--path", path)

	cfg, err := config.LoadFrom(path)
	if err != nil {
		t.Fatalf("LoadFrom: %v", err)
	}
	if cfg.Pomodoro.FocusMinutes != 50 || cfg.UI.Theme != "latte" {
		t.Errorf("focus = %d, theme = %q", cfg.Pomodoro.FocusMinutes, cfg.UI.Theme)
	}
	if cfg.Timeline.DayStartHour != 6 {
		t.Errorf("unchanged values must be kept, day start = %d", cfg.Timeline.DayStartHour)
	}
}

func TestDescribe(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{
			name: "conflict",
			err:  &schedule.ConflictError{Entry: study.ScheduleEntry{StartTime: "09:00"}, SubjectName: "Math"},
			want: `Conflicts with "Math" at 9:00 AM.`,
		},
		{
			name: "conflict with deleted subject",
			err:  &schedule.ConflictError{Entry: study.ScheduleEntry{StartTime: "13:15"}},
			want: `Conflicts with "another session" at 1:15 PM.`,
		},
		{
			name: "validation",
			err:  fmt.Errorf("wrapped: %w", &study.ValidationError{Field: "startTime", Reason: study.ErrInvalidTimeFormat}),
			want: "Invalid startTime: " + study.ErrInvalidTimeFormat.Error(),
		},
		{
			name: "not found",
			err:  fmt.Errorf("task abc: %w", study.ErrNotFound),
			want: "Not found: task abc: " + study.ErrNotFound.Error(),
		},
		{
			name: "not saved",
			err:  fmt.Errorf("adding session: writing ssp_schedules: %w", study.ErrNotSaved),
			want: "Not saved: adding session: writing ssp_schedules: " + study.ErrNotSaved.Error(),
		},
		{
			name: "other",
			err:  errors.New("disk full"),
			want: "error: disk full",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Describe(tt.err); got != tt.want {
				t.Errorf("Describe() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestMatchID(t *testing.T) {
	ids := []string{"0195a1b2-aaaa-7000-8000-000000001111", "0195a1b2-bbbb-7000-8000-000000002111"}
	tests := []struct {
		name    string
		ref     string
		want    string
		wantErr error
	}{
		{name: "exact", ref: ids[0], want: ids[0]},
		{name: "suffix", ref: "2111", want: ids[1]},
		{name: "missing", ref: "9999", wantErr: study.ErrNotFound},
		{name: "empty", ref: " ", wantErr: study.ErrMissingField},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := matchID(ids, tt.ref)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("err = %v, want %v", err, tt.wantErr)
				}
				return
			}
			if err != nil || got != tt.want {
				t.Errorf("matchID() = %q, %v, want %q", got, err, tt.want)
			}
		})
	}

	if _, err := matchID(ids, "111"); err == nil || !strings.Contains(err.Error(), "ambiguous") {
		t.Errorf("ambiguous suffix: %v", err)
	}
}

func TestPrintInsightWrapped(t *testing.T) {
	var buf bytes.Buffer
	PrintInsightWrapped(&buf, "FOCUS:\n- Review calculus\n> Add a Friday session", 80)
	out := buf.String()
	if !strings.Contains(out, "Review calculus") || !strings.Contains(out, "➜ Add a Friday session") {
		t.Errorf("got %q", out)
	}
}
