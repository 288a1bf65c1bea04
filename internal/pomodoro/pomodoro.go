// Package pomodoro implements the focus/break countdown.
//
// A Timer only changes state when Tick is called, once per second, so the
// same state machine can be driven by a time.Ticker on the command line
// or by tea.Tick inside the terminal UI.
package pomodoro

import (
	"context"
	"fmt"
	"time"

	"github.com/javiermolinar/studyplan/internal/study"
)

// Phase is the current countdown kind.
type Phase int

const (
	Focus Phase = iota
	Break
)

func (p Phase) String() string {
	if p == Break {
		return "Break Time"
	}
	return "Focus Session"
}

// Event is what a tick produced.
type Event int

const (
	None Event = iota
	FocusComplete
	BreakComplete
)

// Message returns the user-facing notice for an event.
func (e Event) Message() string {
	switch e {
	case FocusComplete:
		return "Focus session complete! Take a break."
	case BreakComplete:
		return "Break over! Ready for another round?"
	default:
		return ""
	}
}

// LogSink records finished focus sessions.
type LogSink interface {
	AddStudyLog(ctx context.Context, log study.StudyLog) (study.StudyLog, error)
}

// Timer is a pomodoro countdown.
type Timer struct {
	focus     int // seconds
	brk       int // seconds
	remaining int
	running   bool
	phase     Phase
	subjectID string
	sink      LogSink
	completed int
	logErr    error // from the last finished focus phase
}

// New creates a stopped timer in the focus phase.
// Non-positive durations fall back to 25 and 5 minutes.
func New(focusMinutes, breakMinutes int, sink LogSink) *Timer {
	if focusMinutes <= 0 {
		focusMinutes = 25
	}
	if breakMinutes <= 0 {
		breakMinutes = 5
	}
	t := &Timer{
		focus: focusMinutes * 60,
		brk:   breakMinutes * 60,
		sink:  sink,
	}
	t.remaining = t.focus
	return t
}

// SetSubject selects the subject credited when a focus session ends.
// An empty id disables logging.
func (t *Timer) SetSubject(id string) { t.subjectID = id }

// Subject returns the selected subject id.
func (t *Timer) Subject() string { return t.subjectID }

// Start resumes the countdown. Starting a running timer does nothing.
func (t *Timer) Start() { t.running = true }

// Pause stops the countdown without resetting it.
func (t *Timer) Pause() { t.running = false }

// Toggle starts a paused timer or pauses a running one.
func (t *Timer) Toggle() { t.running = !t.running }

// Reset stops the timer and returns to a full focus phase.
func (t *Timer) Reset() {
	t.running = false
	t.phase = Focus
	t.remaining = t.focus
}

// Running reports whether the countdown is active.
func (t *Timer) Running() bool { return t.running }

// Phase returns the current phase.
func (t *Timer) Phase() Phase { return t.phase }

// Remaining returns the time left in the current phase.
func (t *Timer) Remaining() time.Duration {
	return time.Duration(t.remaining) * time.Second
}

// Completed returns how many focus sessions finished.
func (t *Timer) Completed() int { return t.completed }

// FocusMinutes returns the focus length in minutes.
func (t *Timer) FocusMinutes() int { return t.focus / 60 }

// Display formats the remaining time as MM:SS.
func (t *Timer) Display() string {
	return fmt.Sprintf("%02d:%02d", t.remaining/60, t.remaining%60)
}

// Progress returns the elapsed fraction of the current phase, 0 to 1.
func (t *Timer) Progress() float64 {
	total := t.focus
	if t.phase == Break {
		total = t.brk
	}
	return 1 - float64(t.remaining)/float64(total)
}

// Tick advances the countdown by one second. Paused timers ignore ticks.
//
// When focus runs out a study log is recorded for the selected subject and
// the break starts immediately. When the break runs out the timer returns
// to a full focus phase and stops.
func (t *Timer) Tick(ctx context.Context) Event {
	if !t.running {
		return None
	}
	t.remaining--
	if t.remaining > 0 {
		return None
	}

	if t.phase == Focus {
		t.completed++
		t.logErr = nil
		if t.subjectID != "" && t.sink != nil {
			_, t.logErr = t.sink.AddStudyLog(ctx, study.StudyLog{
				SubjectID: t.subjectID,
				Duration:  t.focus / 60,
				Type:      study.LogPomodoro,
			})
		}
		t.phase = Break
		t.remaining = t.brk
		return FocusComplete
	}

	t.running = false
	t.phase = Focus
	t.remaining = t.focus
	return BreakComplete
}

// LogErr reports why the last finished focus phase was not logged.
func (t *Timer) LogErr() error {
	return t.logErr
}

// Run feeds ticks into t until ctx is cancelled or ticks is closed.
// onTick, if set, is called after every tick with the resulting event.
func Run(ctx context.Context, t *Timer, ticks <-chan time.Time, onTick func(Event)) {
	for {
		select {
		case <-ctx.Done():
			return
		case _, ok := <-ticks:
			if !ok {
				return
			}
			ev := t.Tick(ctx)
			if onTick != nil {
				onTick(ev)
			}
		}
	}
}
