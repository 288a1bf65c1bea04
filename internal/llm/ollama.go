package llm

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/ollama"
)

const defaultOllamaURL = "http://localhost:11434"

// OllamaClient is a Client backed by a local Ollama server.
type OllamaClient struct {
	llm       *ollama.LLM
	model     string
	serverURL string
}

// NewOllamaClient connects lazily; no request is made until Chat.
func NewOllamaClient(model, serverURL string) (*OllamaClient, error) {
	model = strings.TrimSpace(model)
	if model == "" {
		return nil, errors.New("ollama: model is required")
	}
	if serverURL == "" {
		serverURL = defaultOllamaURL
	}

	l, err := ollama.New(ollama.WithModel(model), ollama.WithServerURL(serverURL))
	if err != nil {
		return nil, fmt.Errorf("ollama: %w", err)
	}
	return &OllamaClient{llm: l, model: model, serverURL: serverURL}, nil
}

func (c *OllamaClient) Chat(ctx context.Context, messages []Message) (string, error) {
	content := make([]llms.MessageContent, len(messages))
	for i, msg := range messages {
		content[i] = llms.TextParts(chatMessageType(msg.Role), msg.Content)
	}

	resp, err := c.llm.GenerateContent(ctx, content,
		llms.WithModel(c.model),
		llms.WithTemperature(coachTemperature),
		llms.WithMaxTokens(coachMaxTokens),
	)
	if err != nil {
		return "", fmt.Errorf("ollama chat: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", ErrNoChoices
	}
	return resp.Choices[0].Content, nil
}

// chatMessageType maps a Message role; unknown roles are human turns.
func chatMessageType(role string) llms.ChatMessageType {
	switch strings.ToLower(role) {
	case "system":
		return llms.ChatMessageTypeSystem
	case "assistant":
		return llms.ChatMessageTypeAI
	default:
		return llms.ChatMessageTypeHuman
	}
}
