package export

import (
	"bytes"
	"strings"
	"testing"
	"time"

	ics "github.com/arran4/golang-ical"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/javiermolinar/studyplan/internal/storage"
	"github.com/javiermolinar/studyplan/internal/study"
	"github.com/javiermolinar/studyplan/internal/timeline"
)

var (
	now      = time.Date(2025, 3, 12, 10, 0, 0, 0, time.UTC) // Wednesday
	subjects = []study.Subject{{ID: "math", Name: "Math", Color: "#3B82F6"}}
	entries  = []study.ScheduleEntry{
		{ID: "a", SubjectID: "math", Day: 1, StartTime: "09:00", EndTime: "10:30", Recurring: true},
		{ID: "b", SubjectID: "gone", Day: 3, StartTime: "14:00", EndTime: "15:00"},
	}
)

func TestParseFormat(t *testing.T) {
	for _, s := range []string{"json", "ics", "pdf", "xlsx"} {
		f, err := ParseFormat(s)
		require.NoError(t, err)
		assert.Equal(t, Format(s), f)
	}
	_, err := ParseFormat("csv")
	assert.Error(t, err)
}

func TestBackupRoundTrip(t *testing.T) {
	settings := study.DefaultSettings()
	snap := storage.Snapshot{
		Subjects:  subjects,
		Schedules: entries,
		Tasks:     []study.Task{},
		Settings:  &settings,
		StudyLogs: []study.StudyLog{},
	}

	var buf bytes.Buffer
	require.NoError(t, WriteBackup(&buf, snap, now))
	assert.Contains(t, buf.String(), `"exportedAt": "2025-03-12T10:00:00Z"`)
	assert.Contains(t, buf.String(), `"studyLogs": []`)

	got, err := ReadBackup(&buf)
	require.NoError(t, err)
	assert.True(t, got.ExportedAt.Equal(now))
	assert.Equal(t, entries, got.Schedules)
	assert.Equal(t, "Math", got.Subjects[0].Name)
	require.NotNil(t, got.Settings)
	assert.Equal(t, 25, got.Settings.DefaultSessionDuration)
}

func TestReadBackup_PartialLeavesMissingNil(t *testing.T) {
	got, err := ReadBackup(strings.NewReader(`{"tasks": []}`))
	require.NoError(t, err)
	assert.NotNil(t, got.Tasks)
	assert.Nil(t, got.Subjects)
	assert.Nil(t, got.Schedules)
	assert.Nil(t, got.Settings)
}

func TestReadBackup_Errors(t *testing.T) {
	_, err := ReadBackup(strings.NewReader(`{}`))
	assert.ErrorIs(t, err, ErrEmptyBackup)

	_, err = ReadBackup(strings.NewReader(`not json`))
	assert.Error(t, err)
}

func TestICS(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, ICS(&buf, entries, timeline.NewSubjectIndex(subjects), now))
	out := buf.String()

	assert.Equal(t, 2, strings.Count(out, "BEGIN:VEVENT"))
	assert.Equal(t, 1, strings.Count(out, "RRULE:FREQ=WEEKLY"))
	assert.Contains(t, out, "SUMMARY:Math")
	assert.Contains(t, out, "SUMMARY:Unknown")
	// Monday of the week containing Wed 12 March 2025
	assert.Contains(t, out, "DTSTART:20250310T090000Z")
	assert.Contains(t, out, "DTEND:20250310T103000Z")

	cal, err := ics.ParseCalendar(strings.NewReader(out))
	require.NoError(t, err)
	assert.Len(t, cal.Events(), 2)
}

func TestICS_SkipsMalformed(t *testing.T) {
	bad := []study.ScheduleEntry{{ID: "x", Day: 0, StartTime: "nope", EndTime: "10:00"}}
	var buf bytes.Buffer
	require.NoError(t, ICS(&buf, bad, nil, now))
	assert.NotContains(t, buf.String(), "BEGIN:VEVENT")
}

func TestPDF(t *testing.T) {
	view := timeline.Weekly(entries, timeline.NewSubjectIndex(subjects), timeline.DefaultOptions())

	var buf bytes.Buffer
	require.NoError(t, PDF(&buf, view, "Weekly schedule"))
	assert.True(t, bytes.HasPrefix(buf.Bytes(), []byte("%PDF-")))

	assert.Error(t, PDF(&buf, timeline.WeeklyView{}, ""))
}

func TestXLSX(t *testing.T) {
	view := timeline.Weekly(entries, timeline.NewSubjectIndex(subjects), timeline.DefaultOptions())

	var buf bytes.Buffer
	require.NoError(t, XLSX(&buf, view))

	f, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	defer f.Close()

	assert.Equal(t, []string{weekSheet, sessionsSheet}, f.GetSheetList())

	v, err := f.GetCellValue(weekSheet, "B1")
	require.NoError(t, err)
	assert.Equal(t, "Monday", v)

	v, err = f.GetCellValue(weekSheet, "B2")
	require.NoError(t, err)
	assert.Equal(t, "Math 9:00 AM - 10:30 AM", v)

	rows, err := f.GetRows(sessionsSheet)
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, []string{"Monday", "09:00", "10:30", "Math", "90"}, rows[1][:5])
	assert.Equal(t, "Unknown", rows[2][3])
}

func TestHexRGB(t *testing.T) {
	r, g, b := hexRGB("#3B82F6")
	assert.Equal(t, [3]int{0x3B, 0x82, 0xF6}, [3]int{r, g, b})

	r, g, b = hexRGB("bad")
	assert.Equal(t, [3]int{0x8B, 0x5C, 0xF6}, [3]int{r, g, b})
}
