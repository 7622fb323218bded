package llm

import (
	"context"
	"fmt"
)

// NewClient builds a Client from configuration, wrapped with retry and,
// when a sink is supplied, call accounting.
// Middleware order: caller → retry → call log → provider.
func NewClient(ctx context.Context, cfg Config, sink CallSink) (Client, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	var base Client
	var err error

	switch cfg.Provider {
	case "openai":
		base, err = NewOpenAIClient(cfg.OpenAI)
	case "anthropic":
		base, err = NewAnthropicClient(cfg.Anthropic)
	case "gemini":
		base, err = NewGeminiClient(ctx, cfg.Gemini)
	case "mock":
		return NewMock(), nil
	default:
		return nil, fmt.Errorf("unknown LLM provider: %q", cfg.Provider)
	}
	if err != nil {
		return nil, fmt.Errorf("initializing %s provider: %w", cfg.Provider, err)
	}

	if sink != nil {
		base = WithCallLog(base, cfg.Provider, sink)
	}
	return WithRetry(base, cfg.Retry), nil
}
