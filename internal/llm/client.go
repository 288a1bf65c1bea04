// Package llm talks to chat models for the optional study coach.
package llm

import (
	"context"
	"errors"

	"github.com/openai/openai-go"
)

// ErrNoChoices is returned when a provider answers without content.
var ErrNoChoices = errors.New("no response choices returned")

// Message represents a chat message.
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// Client defines the interface for LLM providers.
type Client interface {
	// Chat sends messages to the LLM and returns the response.
	Chat(ctx context.Context, messages []Message) (string, error)
}

// toOpenAIMessages maps roles onto the openai-go message unions.
// Unknown roles are sent as user messages.
func toOpenAIMessages(messages []Message) []openai.ChatCompletionMessageParamUnion {
	out := make([]openai.ChatCompletionMessageParamUnion, len(messages))
	for i, msg := range messages {
		switch msg.Role {
		case "system":
			out[i] = openai.SystemMessage(msg.Content)
		case "assistant":
			out[i] = openai.AssistantMessage(msg.Content)
		default:
			out[i] = openai.UserMessage(msg.Content)
		}
	}
	return out
}

// chatCompletion runs a single completion against an OpenAI compatible API.
func chatCompletion(ctx context.Context, client openai.Client, model string, messages []Message) (string, error) {
	resp, err := client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Model:       model,
		Messages:    toOpenAIMessages(messages),
		Temperature: openai.Float(coachTemperature),
		MaxTokens:   openai.Int(coachMaxTokens),
	})
	if err != nil {
		return "", err
	}
	if len(resp.Choices) == 0 {
		return "", ErrNoChoices
	}
	return resp.Choices[0].Message.Content, nil
}
