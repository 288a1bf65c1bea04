package llm

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/javiermolinar/studyplan/internal/analytics"
	"github.com/javiermolinar/studyplan/internal/timeline"
)

const coachSystemPrompt = `You are a concise study coach for a university student. Output plain text only, no markdown. Never invent numbers that are not in the data.`

const coachPromptTemplate = `Review the student's recent study data and weekly plan, then output EXACTLY this format:

FOCUS: [ 2-5 word theme for next week ]

- First observation, citing a number from the data.
- Second observation about balance between subjects or deadlines.

NEXT WEEK:
> First concrete change to the weekly schedule.
> Second concrete change.

Study data:
%s
Weekly schedule:
%s
Rules:
- Keep each line under 80 characters
- Mention deadlines that are 2 days away or less
- If the data is empty, suggest how to start`

// Sampling settings shared by every provider.
const (
	coachTemperature = 0.4
	coachMaxTokens   = 600
)

// ErrEmptyReview is returned when the model answers with nothing usable.
var ErrEmptyReview = errors.New("coach returned an empty review")

// Coach turns analytics into a short coaching note.
type Coach struct {
	client Client
}

// NewCoach creates a Coach backed by client.
func NewCoach(client Client) *Coach {
	return &Coach{client: client}
}

// Review asks the model to comment on summary and the weekly plan.
func (c *Coach) Review(ctx context.Context, summary analytics.Summary, weekly timeline.WeeklyView) (string, error) {
	reply, err := c.client.Chat(ctx, Prompt(summary, weekly))
	if err != nil {
		return "", fmt.Errorf("coach review: %w", err)
	}
	reply = stripFences(reply)
	if reply == "" {
		return "", ErrEmptyReview
	}
	return reply, nil
}

// Prompt builds the messages sent by Review.
func Prompt(summary analytics.Summary, weekly timeline.WeeklyView) []Message {
	return []Message{
		{Role: "system", Content: coachSystemPrompt},
		{Role: "user", Content: fmt.Sprintf(coachPromptTemplate, summary.Text(), timeline.RenderWeekly(weekly))},
	}
}

// stripFences removes a surrounding ``` block that some models add anyway.
func stripFences(s string) string {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "```") {
		return s
	}
	s = strings.TrimPrefix(s, "```")
	// Drop a language tag such as ```text
	if i := strings.IndexByte(s, '\n'); i != -1 {
		s = s[i+1:]
	} else {
		s = ""
	}
	if i := strings.LastIndex(s, "```"); i != -1 {
		s = s[:i]
	}
	return strings.TrimSpace(s)
}
