// Package timeline projects schedule entries into daily hour slots and a
// Sunday-first weekly grid. Projections are pure and read-only.
package timeline

import (
	"fmt"

	"github.com/javiermolinar/studyplan/internal/schedule"
	"github.com/javiermolinar/studyplan/internal/study"
)

// SubjectResolver resolves a subject reference for display.
type SubjectResolver interface {
	SubjectByID(id string) (*study.Subject, bool)
}

// SubjectIndex is an in-memory SubjectResolver.
type SubjectIndex map[string]study.Subject

// NewSubjectIndex indexes subjects by ID.
func NewSubjectIndex(subjects []study.Subject) SubjectIndex {
	idx := make(SubjectIndex, len(subjects))
	for _, s := range subjects {
		idx[s.ID] = s
	}
	return idx
}

// SubjectByID implements SubjectResolver.
func (idx SubjectIndex) SubjectByID(id string) (*study.Subject, bool) {
	s, ok := idx[id]
	if !ok {
		return nil, false
	}
	return &s, true
}

// Options controls the projection.
//
// A zero StartHour means midnight unless EndHour is zero too, in which
// case the default 6 AM to 11 PM window is used.
type Options struct {
	StartHour int    // first daily slot
	EndHour   int    // last daily slot (inclusive), default 23
	Today     int    // weekday flagged IsToday when HighlightToday is set
	Accent    string // colour for dangling subjects, default study.DefaultAccent

	HighlightToday bool
}

// DefaultOptions returns the 6 AM to 11 PM window with no day highlighted.
func DefaultOptions() Options {
	return Options{StartHour: defaultStartHour, EndHour: defaultEndHour, Accent: study.DefaultAccent}
}

const (
	defaultStartHour = 6
	defaultEndHour   = 23
)

// normalized fills defaults per field and falls back to the default
// window when the hours do not form one.
func (o Options) normalized() Options {
	if o.StartHour == 0 && o.EndHour == 0 {
		o.StartHour = defaultStartHour
	}
	if o.EndHour <= 0 || o.EndHour > 23 {
		o.EndHour = defaultEndHour
	}
	if o.StartHour < 0 || o.StartHour > o.EndHour {
		o.StartHour, o.EndHour = defaultStartHour, defaultEndHour
	}
	if o.Accent == "" {
		o.Accent = study.DefaultAccent
	}
	return o
}

// Block is one schedule entry ready for display.
type Block struct {
	Entry       study.ScheduleEntry
	SubjectName string
	Color       string
	Start12     string
	End12       string
	Duration    int // minutes
}

// Label returns "Name  9:00 AM - 10:00 AM".
func (b Block) Label() string {
	return fmt.Sprintf("%s  %s - %s", b.SubjectName, b.Start12, b.End12)
}

// HourSlot is one hour of the daily view.
type HourSlot struct {
	Hour   int
	Label  string
	Blocks []Block
}

// DailyView is the hour-by-hour projection of one weekday.
type DailyView struct {
	Day    int
	Name   string
	Slots  []HourSlot
	Hidden int  // entries starting outside the slot window
	Empty  bool // the day has no entries at all
}

// DayColumn is one weekday of the weekly view.
type DayColumn struct {
	Day     int
	Name    string
	Short   string
	IsToday bool
	Blocks  []Block
}

// Empty reports whether the column has no sessions.
func (c DayColumn) Empty() bool {
	return len(c.Blocks) == 0
}

// SessionCount returns "N session(s)".
func (c DayColumn) SessionCount() string {
	if len(c.Blocks) == 1 {
		return "1 session"
	}
	return fmt.Sprintf("%d sessions", len(c.Blocks))
}

// WeeklyView is the Sunday-first projection of the whole schedule.
type WeeklyView struct {
	Days []DayColumn
}

// TotalMinutes returns the scheduled minutes across the week.
func (w WeeklyView) TotalMinutes() int {
	total := 0
	for _, d := range w.Days {
		for _, b := range d.Blocks {
			total += b.Duration
		}
	}
	return total
}

// NewBlock resolves an entry's subject for display.
func NewBlock(e study.ScheduleEntry, resolver SubjectResolver, accent string) Block {
	b := Block{
		Entry:       e,
		SubjectName: study.UnknownSubject,
		Color:       accent,
		Start12:     study.FormatTime12(e.StartTime),
		End12:       study.FormatTime12(e.EndTime),
		Duration:    e.Duration(),
	}
	if resolver != nil {
		if s, ok := resolver.SubjectByID(e.SubjectID); ok {
			b.SubjectName = s.Name
			if s.Color != "" {
				b.Color = s.Color
			}
		}
	}
	return b
}

// Daily buckets the entries of day into hourly slots.
// An entry appears only in the slot of its start hour, and entries
// within a slot keep store order.
func Daily(entries []study.ScheduleEntry, day int, resolver SubjectResolver, opts Options) DailyView {
	opts = opts.normalized()
	dayEntries := schedule.ByDay(entries, day)

	view := DailyView{
		Day:   day,
		Name:  study.DayName(day),
		Slots: make([]HourSlot, 0, opts.EndHour-opts.StartHour+1),
		Empty: len(dayEntries) == 0,
	}

	index := make(map[int]int, opts.EndHour-opts.StartHour+1)
	for h := opts.StartHour; h <= opts.EndHour; h++ {
		index[h] = len(view.Slots)
		view.Slots = append(view.Slots, HourSlot{
			Hour:  h,
			Label: study.FormatTime12(study.MinutesToTime(h * 60)),
		})
	}

	for _, e := range dayEntries {
		i, ok := index[e.StartHour()]
		if !ok {
			view.Hidden++
			continue
		}
		view.Slots[i].Blocks = append(view.Slots[i].Blocks, NewBlock(e, resolver, opts.Accent))
	}
	return view
}

// Blocks returns every block of the daily view in slot order.
func (v DailyView) Blocks() []Block {
	var out []Block
	for _, s := range v.Slots {
		out = append(out, s.Blocks...)
	}
	return out
}

// Weekly groups all entries into seven Sunday-first columns sorted by start.
// Days without entries are kept as empty columns.
func Weekly(entries []study.ScheduleEntry, resolver SubjectResolver, opts Options) WeeklyView {
	opts = opts.normalized()
	view := WeeklyView{Days: make([]DayColumn, 7)}
	for d := 0; d < 7; d++ {
		col := DayColumn{
			Day:     d,
			Name:    study.DayName(d),
			Short:   study.DayShort(d),
			IsToday: opts.HighlightToday && d == opts.Today,
		}
		for _, e := range schedule.SortByStart(schedule.ByDay(entries, d)) {
			col.Blocks = append(col.Blocks, NewBlock(e, resolver, opts.Accent))
		}
		view.Days[d] = col
	}
	return view
}

// Today returns the sessions of day sorted by start, for dashboard summaries.
func Today(entries []study.ScheduleEntry, day int, resolver SubjectResolver) []Block {
	var out []Block
	for _, e := range schedule.SortByStart(schedule.ByDay(entries, day)) {
		out = append(out, NewBlock(e, resolver, study.DefaultAccent))
	}
	return out
}
