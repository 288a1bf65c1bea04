package timeline

import (
	"strings"
	"testing"

	"github.com/javiermolinar/studyplan/internal/study"
)

var subjects = NewSubjectIndex([]study.Subject{
	{ID: "math", Name: "Math", Color: "#3B82F6"},
	{ID: "bio", Name: "Biology", Color: "#10B981"},
})

func sampleEntries() []study.ScheduleEntry {
	return []study.ScheduleEntry{
		{ID: "1", SubjectID: "math", Day: 1, StartTime: "14:00", EndTime: "15:00"},
		{ID: "2", SubjectID: "bio", Day: 1, StartTime: "09:30", EndTime: "11:00"},
		{ID: "3", SubjectID: "gone", Day: 1, StartTime: "09:00", EndTime: "09:30"},
		{ID: "4", SubjectID: "math", Day: 1, StartTime: "05:00", EndTime: "05:45"},
		{ID: "5", SubjectID: "math", Day: 3, StartTime: "18:00", EndTime: "19:00"},
	}
}

func TestDaily_Buckets(t *testing.T) {
	v := Daily(sampleEntries(), 1, subjects, DefaultOptions())

	if len(v.Slots) != 18 {
		t.Fatalf("got %d slots, want 18 (6..23)", len(v.Slots))
	}
	if v.Slots[0].Hour != 6 || v.Slots[0].Label != "6:00 AM" {
		t.Errorf("first slot = %d %q", v.Slots[0].Hour, v.Slots[0].Label)
	}
	last := v.Slots[len(v.Slots)-1]
	if last.Hour != 23 || last.Label != "11:00 PM" {
		t.Errorf("last slot = %d %q", last.Hour, last.Label)
	}
	if v.Empty {
		t.Error("day has entries and should not be empty")
	}

	nine := v.Slots[3]
	if nine.Hour != 9 || len(nine.Blocks) != 2 {
		t.Fatalf("9 AM slot: %+v", nine)
	}
	// Store order inside a bucket, not time order.
	if nine.Blocks[0].Entry.ID != "2" || nine.Blocks[1].Entry.ID != "3" {
		t.Errorf("got order %s,%s want 2,3", nine.Blocks[0].Entry.ID, nine.Blocks[1].Entry.ID)
	}

	if got := v.Slots[4].Blocks; len(got) != 0 {
		t.Errorf("a 90 minute session must only be shown in its start hour, 10 AM has %d", len(got))
	}
	if v.Hidden != 1 {
		t.Errorf("got hidden %d, want 1 (the 5 AM entry)", v.Hidden)
	}

	total := 0
	for _, s := range v.Slots {
		total += len(s.Blocks)
	}
	if total != 3 {
		t.Errorf("got %d visible blocks, want 3", total)
	}
}

func TestDaily_EmptyDay(t *testing.T) {
	v := Daily(sampleEntries(), 0, subjects, DefaultOptions())
	if !v.Empty {
		t.Error("Sunday has no entries")
	}
	if len(v.Slots) != 18 {
		t.Errorf("empty day still has all slots, got %d", len(v.Slots))
	}
	if !strings.Contains(RenderDaily(v, false), "No sessions scheduled") {
		t.Error("render should show the empty state")
	}
}

func TestDaily_CustomWindow(t *testing.T) {
	v := Daily(sampleEntries(), 1, subjects, Options{StartHour: 5, EndHour: 10})
	if len(v.Slots) != 6 || v.Hidden != 1 {
		t.Errorf("got %d slots, %d hidden; want 6 and 1 (14:00)", len(v.Slots), v.Hidden)
	}
}

func TestOptions_PartialWindow(t *testing.T) {
	tests := []struct {
		name       string
		opts       Options
		start, end int
	}{
		{name: "zero", opts: Options{}, start: 6, end: 23},
		{name: "start only", opts: Options{StartHour: 8}, start: 8, end: 23},
		{name: "end only", opts: Options{EndHour: 10}, start: 0, end: 10},
		{name: "end past midnight", opts: Options{StartHour: 7, EndHour: 30}, start: 7, end: 23},
		{name: "start after end", opts: Options{StartHour: 20, EndHour: 9}, start: 6, end: 23},
		{name: "negative start", opts: Options{StartHour: -3, EndHour: 12}, start: 6, end: 23},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := Daily(sampleEntries(), 1, subjects, tt.opts)
			if len(v.Slots) != tt.end-tt.start+1 {
				t.Fatalf("got %d slots, want %d", len(v.Slots), tt.end-tt.start+1)
			}
			if v.Slots[0].Hour != tt.start || v.Slots[len(v.Slots)-1].Hour != tt.end {
				t.Errorf("window %d..%d, want %d..%d", v.Slots[0].Hour, v.Slots[len(v.Slots)-1].Hour, tt.start, tt.end)
			}
		})
	}
}

func TestWeekly_NoHighlightByDefault(t *testing.T) {
	for _, opts := range []Options{{}, DefaultOptions(), {Today: 3}} {
		for _, d := range Weekly(nil, nil, opts).Days {
			if d.IsToday {
				t.Errorf("%s flagged as today with %+v", d.Name, opts)
			}
		}
	}
}

func TestBlockResolution(t *testing.T) {
	v := Daily(sampleEntries(), 1, subjects, DefaultOptions())
	blocks := v.Blocks()

	byID := make(map[string]Block)
	for _, b := range blocks {
		byID[b.Entry.ID] = b
	}

	if b := byID["2"]; b.SubjectName != "Biology" || b.Color != "#10B981" || b.Duration != 90 {
		t.Errorf("unexpected block: %+v", b)
	}
	if b := byID["3"]; b.SubjectName != study.UnknownSubject || b.Color != study.DefaultAccent {
		t.Errorf("dangling subject should fall back: %+v", b)
	}
	if b := byID["1"]; b.Start12 != "2:00 PM" || b.End12 != "3:00 PM" {
		t.Errorf("got %s-%s", b.Start12, b.End12)
	}
}

func TestWeekly(t *testing.T) {
	opts := DefaultOptions()
	opts.Today = 3
	opts.HighlightToday = true
	v := Weekly(sampleEntries(), subjects, opts)

	if len(v.Days) != 7 {
		t.Fatalf("got %d columns, want 7", len(v.Days))
	}
	if v.Days[0].Name != "Sunday" || v.Days[6].Short != "Sat" {
		t.Error("week must run Sunday to Saturday")
	}
	if !v.Days[0].Empty() || v.Days[0].SessionCount() != "0 sessions" {
		t.Errorf("Sunday column: %+v", v.Days[0])
	}

	mon := v.Days[1]
	want := []string{"4", "3", "2", "1"}
	if len(mon.Blocks) != len(want) {
		t.Fatalf("Monday has %d blocks, want %d", len(mon.Blocks), len(want))
	}
	for i, id := range want {
		if mon.Blocks[i].Entry.ID != id {
			t.Errorf("Monday[%d] = %s, want %s", i, mon.Blocks[i].Entry.ID, id)
		}
	}

	if !v.Days[3].IsToday || v.Days[1].IsToday {
		t.Error("only Wednesday should be today")
	}
	if v.Days[3].SessionCount() != "1 session" {
		t.Errorf("got %q", v.Days[3].SessionCount())
	}
	if v.TotalMinutes() != 60+90+30+45+60 {
		t.Errorf("got total %d", v.TotalMinutes())
	}
}

func TestRenderWeekly(t *testing.T) {
	out := RenderWeekly(Weekly(sampleEntries(), subjects, DefaultOptions()))
	if strings.Count(out, "No sessions scheduled") != 5 {
		t.Errorf("expected 5 empty days:\n%s", out)
	}
	if !strings.Contains(out, "Math  6:00 PM - 7:00 PM") {
		t.Errorf("missing Wednesday block:\n%s", out)
	}
}

func TestToday(t *testing.T) {
	got := Today(sampleEntries(), 1, nil)
	if len(got) != 4 || got[0].Entry.ID != "4" {
		t.Fatalf("unexpected today list: %+v", got)
	}
	if got[0].SubjectName != study.UnknownSubject {
		t.Error("nil resolver should mark subjects unknown")
	}
}
