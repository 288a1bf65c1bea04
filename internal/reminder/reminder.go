// Package reminder scans tasks for approaching deadlines and notifies once
// per task.
package reminder

import (
	"context"
	"fmt"
	"math"
	"time"

	"go.uber.org/zap"

	"github.com/javiermolinar/studyplan/internal/study"
)

// DefaultLead is how far ahead a deadline triggers a reminder.
const DefaultLead = 30 * time.Minute

// Title is the heading of every reminder.
const Title = "Deadline approaching!"

// TaskSource lists tasks to scan.
type TaskSource interface {
	Tasks(ctx context.Context) []study.Task
}

// Notifier delivers a reminder.
type Notifier func(title, message string)

// LogNotifier returns a Notifier that writes reminders to logger.
func LogNotifier(logger *zap.Logger) Notifier {
	return func(title, message string) {
		logger.Info(title, zap.String("message", message))
	}
}

// Checker remembers which tasks it has already announced for the lifetime
// of the process.
type Checker struct {
	tasks    TaskSource
	notify   Notifier
	lead     time.Duration
	enabled  func() bool
	notified map[string]bool
}

// New creates a Checker. A non-positive lead uses DefaultLead, a nil
// notify discards reminders and a nil enabled func means always enabled.
func New(tasks TaskSource, notify Notifier, lead time.Duration, enabled func() bool) *Checker {
	if notify == nil {
		notify = LogNotifier(zap.NewNop())
	}
	if lead <= 0 {
		lead = DefaultLead
	}
	if enabled == nil {
		enabled = func() bool { return true }
	}
	return &Checker{
		tasks:    tasks,
		notify:   notify,
		lead:     lead,
		enabled:  enabled,
		notified: make(map[string]bool),
	}
}

// Check notifies about incomplete tasks due within the lead time.
// Returns the number of reminders sent.
func (c *Checker) Check(ctx context.Context, now time.Time) int {
	if !c.enabled() {
		return 0
	}
	sent := 0
	for _, t := range c.tasks.Tasks(ctx) {
		if t.Completed || c.notified[t.ID] {
			continue
		}
		diff := t.Deadline.Sub(now)
		if diff <= 0 || diff > c.lead {
			continue
		}
		c.notified[t.ID] = true
		mins := int(math.Round(diff.Minutes()))
		c.notify(Title, Message(t.Title, mins))
		sent++
	}
	return sent
}

// Message formats the reminder body.
func Message(title string, minutes int) string {
	return fmt.Sprintf("\"%s\" is due in %d minutes.", title, minutes)
}

// Run checks immediately and then on every interval until ctx is cancelled.
func (c *Checker) Run(ctx context.Context, interval time.Duration) {
	if interval <= 0 {
		interval = time.Minute
	}
	c.Check(ctx, time.Now())

	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case now := <-ticker.C:
			c.Check(ctx, now)
		}
	}
}
