package llm

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
)

const defaultLMStudioURL = "http://localhost:1234/v1"

// lmStudioKeyVars are tried in order; LM Studio accepts any key.
var lmStudioKeyVars = []string{"LMSTUDIO_API_KEY", "OPENAI_API_KEY"}

// LMStudioClient talks to LM Studio's OpenAI compatible server.
type LMStudioClient struct {
	client    openai.Client
	model     string
	serverURL string
}

func NewLMStudioClient(model, serverURL string) (*LMStudioClient, error) {
	model = strings.TrimSpace(model)
	if model == "" {
		return nil, errors.New("lm studio: model is required")
	}
	if serverURL == "" {
		serverURL = defaultLMStudioURL
	}

	key := "lm-studio"
	for _, name := range lmStudioKeyVars {
		if v := os.Getenv(name); v != "" {
			key = v
			break
		}
	}

	return &LMStudioClient{
		client:    openai.NewClient(option.WithBaseURL(serverURL), option.WithAPIKey(key)),
		model:     model,
		serverURL: serverURL,
	}, nil
}

func (c *LMStudioClient) Chat(ctx context.Context, messages []Message) (string, error) {
	content, err := chatCompletion(ctx, c.client, c.model, messages)
	if err != nil {
		return "", fmt.Errorf("lm studio chat: %w", err)
	}
	return content, nil
}
