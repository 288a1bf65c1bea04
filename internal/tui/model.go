// Package tui provides the terminal user interface for studyplan: the
// schedule board, the session form and the focus timer panel.
package tui

import (
	"context"
	"time"

	"github.com/atotto/clipboard"
	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"github.com/javiermolinar/studyplan/internal/config"
	"github.com/javiermolinar/studyplan/internal/pomodoro"
	"github.com/javiermolinar/studyplan/internal/reminder"
	"github.com/javiermolinar/studyplan/internal/schedule"
	"github.com/javiermolinar/studyplan/internal/storage"
	"github.com/javiermolinar/studyplan/internal/study"
	"github.com/javiermolinar/studyplan/internal/timeline"
	"github.com/javiermolinar/studyplan/internal/tui/theme"
)

// Mode represents the current interaction mode.
type Mode int

const (
	ModeBoard Mode = iota
	ModeForm
	ModeConfirm
	ModeFocus
)

// View is the board layout.
type View int

const (
	ViewDaily View = iota
	ViewWeekly
)

func (v View) String() string {
	if v == ViewWeekly {
		return "weekly"
	}
	return "daily"
}

type statusKind int

const (
	statusInfo statusKind = iota
	statusSuccess
	statusWarning
	statusError
)

// statusTTL is how long a status message stays visible.
const statusTTL = 5 * time.Second

// Deps are the collaborators the TUI works against.
type Deps struct {
	Store    *storage.Local
	Sessions *schedule.Service
	Config   *config.Config
	Logger   *zap.Logger
}

// Model is the main TUI model.
type Model struct {
	// Dependencies
	ctx      context.Context
	store    *storage.Local
	sessions *schedule.Service
	config   *config.Config
	logger   *zap.Logger
	now      func() time.Time
	copyText func(string) error

	theme  *theme.Theme
	styles *Styles

	// Data
	entries  []study.ScheduleEntry
	subjects []study.Subject

	// Board state
	mode   Mode
	view   View
	day    int // 0=Sunday
	cursor int // index into selectedBlocks()

	form      sessionForm
	confirmID string

	// Focus timer
	timer      *pomodoro.Timer
	tickGen    int // invalidates stale tick chains after pause/resume
	subjectIdx int // -1 when no subject is credited

	// Reminders
	checker *reminder.Checker
	inbox   *[]string

	status     string
	statusKind statusKind
	statusAt   time.Time

	width  int
	height int
}

// ModelOption configures optional model behavior.
type ModelOption func(*Model)

// WithClock replaces time.Now.
func WithClock(now func() time.Time) ModelOption {
	return func(m *Model) { m.now = now }
}

// WithClipboard replaces the system clipboard writer.
func WithClipboard(write func(string) error) ModelOption {
	return func(m *Model) { m.copyText = write }
}

// New creates a new TUI model.
func New(ctx context.Context, deps Deps, opts ...ModelOption) Model {
	cfg := deps.Config
	if cfg == nil {
		cfg = config.Default()
	}
	logger := deps.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	t, err := theme.Load(cfg.UI.Theme)
	if err != nil {
		logger.Warn("theme unavailable, using terminal colors", zap.String("theme", cfg.UI.Theme), zap.Error(err))
		t = &theme.Theme{Name: theme.DefaultName}
	}
	t = t.WithSessionColor(cfg.UI.AccentColor)

	m := Model{
		ctx:        ctx,
		store:      deps.Store,
		sessions:   deps.Sessions,
		config:     cfg,
		logger:     logger,
		now:        time.Now,
		copyText:   clipboard.WriteAll,
		theme:      t,
		styles:     NewStyles(t),
		subjectIdx: -1,
		inbox:      new([]string),
	}
	for _, opt := range opts {
		opt(&m)
	}

	settings := m.store.Settings(ctx)
	if settings.DefaultView == ViewWeekly.String() {
		m.view = ViewWeekly
	}
	m.day = int(m.now().Weekday())

	m.timer = pomodoro.New(settings.DefaultSessionDuration, settings.BreakDuration, m.store)

	store, inbox := m.store, m.inbox
	logNotify := reminder.LogNotifier(logger)
	m.checker = reminder.New(store, func(title, message string) {
		logNotify(title, message)
		*inbox = append(*inbox, message)
	}, cfg.Lead(), func() bool {
		return store.Settings(ctx).Notifications
	})

	return m
}

type dataLoadedMsg struct {
	entries  []study.ScheduleEntry
	subjects []study.Subject
}

type reminderTickMsg time.Time

type pomodoroTickMsg struct{ gen int }

type clearStatusMsg struct{ at time.Time }

// Init loads the board and starts the reminder loop.
func (m Model) Init() tea.Cmd {
	return tea.Batch(m.loadCmd(), m.checkNow())
}

func (m Model) loadCmd() tea.Cmd {
	store, sessions, ctx := m.store, m.sessions, m.ctx
	return func() tea.Msg {
		return dataLoadedMsg{
			entries:  sessions.Store().All(ctx),
			subjects: store.Subjects(ctx),
		}
	}
}

func (m Model) checkNow() tea.Cmd {
	now := m.now
	return func() tea.Msg { return reminderTickMsg(now()) }
}

func (m Model) reminderTick() tea.Cmd {
	return tea.Tick(m.config.CheckEvery(), func(t time.Time) tea.Msg {
		return reminderTickMsg(t)
	})
}

func pomodoroTick(gen int) tea.Cmd {
	return tea.Tick(time.Second, func(time.Time) tea.Msg {
		return pomodoroTickMsg{gen: gen}
	})
}

func clearStatusAfter(at time.Time) tea.Cmd {
	return tea.Tick(statusTTL, func(time.Time) tea.Msg {
		return clearStatusMsg{at: at}
	})
}

// refresh reloads entries and subjects synchronously after a mutation.
func (m *Model) refresh() {
	m.entries = m.sessions.Store().All(m.ctx)
	m.subjects = m.store.Subjects(m.ctx)
	m.clampCursor()
}

func (m *Model) resolver() timeline.SubjectIndex {
	return timeline.NewSubjectIndex(m.subjects)
}

func (m *Model) timelineOptions() timeline.Options {
	return timeline.Options{
		StartHour: m.config.Timeline.DayStartHour,
		EndHour:   m.config.Timeline.DayEndHour,
		Today:     int(m.now().Weekday()),
		Accent:    m.config.UI.AccentColor,

		HighlightToday: true,
	}
}

// selectedBlocks returns the blocks of the selected day sorted by start.
func (m *Model) selectedBlocks() []timeline.Block {
	return timeline.Today(m.entries, m.day, m.resolver())
}

func (m *Model) selectedEntry() (study.ScheduleEntry, bool) {
	blocks := m.selectedBlocks()
	if m.cursor < 0 || m.cursor >= len(blocks) {
		return study.ScheduleEntry{}, false
	}
	return blocks[m.cursor].Entry, true
}

func (m *Model) clampCursor() {
	n := len(m.selectedBlocks())
	if m.cursor >= n {
		m.cursor = n - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
}

func (m *Model) setStatus(kind statusKind, msg string) tea.Cmd {
	m.status = msg
	m.statusKind = kind
	m.statusAt = m.now()
	return clearStatusAfter(m.statusAt)
}

// Run starts the TUI and blocks until the user quits or ctx is cancelled.
func Run(ctx context.Context, deps Deps) error {
	model := New(ctx, deps)
	p := tea.NewProgram(model, tea.WithAltScreen(), tea.WithContext(ctx))
	_, err := p.Run()
	if err != nil && ctx.Err() != nil {
		return nil
	}
	return err
}
