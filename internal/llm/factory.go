package llm

import (
	"context"
	"errors"
	"fmt"
	"strings"
)

// Provider names accepted in the [llm] config section.
const (
	ProviderCopilot  = "copilot"
	ProviderOllama   = "ollama"
	ProviderLMStudio = "lmstudio"
)

// ErrUnsupportedProvider is returned for unknown provider names.
var ErrUnsupportedProvider = errors.New("unsupported LLM provider")

// Options selects the coach's chat backend.
type Options struct {
	Provider string
	Model    string
	BaseURL  string // Ollama and LM Studio only
}

// ParseProvider normalises a provider name. Empty means Copilot.
func ParseProvider(s string) (string, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", ProviderCopilot, "github-copilot":
		return ProviderCopilot, nil
	case ProviderOllama:
		return ProviderOllama, nil
	case ProviderLMStudio, "lm-studio", "lm_studio":
		return ProviderLMStudio, nil
	}
	return "", fmt.Errorf("%w: %s", ErrUnsupportedProvider, s)
}

// NewClient builds the chat client for opts.
// Copilot exchanges a token over the network, bounded by ctx.
func NewClient(ctx context.Context, opts Options) (Client, error) {
	provider, err := ParseProvider(opts.Provider)
	if err != nil {
		return nil, err
	}
	switch provider {
	case ProviderOllama:
		return NewOllamaClient(opts.Model, opts.BaseURL)
	case ProviderLMStudio:
		return NewLMStudioClient(opts.Model, opts.BaseURL)
	default:
		return NewCopilotClient(ctx, opts.Model)
	}
}
