package llm

import (
	"fmt"
	"os"
	"time"
)

// Config selects and configures the generative backend.
type Config struct {
	// Provider selects the backend.
	// Values: "openai", "anthropic", "gemini", "mock"
	Provider string

	OpenAI    OpenAIConfig
	Anthropic AnthropicConfig
	Gemini    GeminiConfig
	Retry     RetryConfig

	// Timeout is the maximum duration for a single call including
	// retries. Default: 60s (generation calls are slow for batches).
	Timeout time.Duration
}

// OpenAIConfig holds OpenAI-specific configuration. BaseURL also covers
// OpenRouter and other OpenAI-compatible gateways.
type OpenAIConfig struct {
	APIKey  string
	Model   string // Default: "gpt-4o-mini"
	BaseURL string // Optional override for compatible APIs.
}

// AnthropicConfig holds Anthropic-specific configuration.
type AnthropicConfig struct {
	APIKey string
	Model  string // Default: "claude-haiku"
}

// GeminiConfig holds Gemini-specific configuration.
type GeminiConfig struct {
	APIKey string
	Model  string // Default: "gemini-flash"
}

// RetryConfig configures retry behavior for transient failures.
type RetryConfig struct {
	MaxAttempts int
	InitialWait time.Duration
	MaxWait     time.Duration
	Multiplier  float64
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() Config {
	return Config{
		Provider: "openai",
		OpenAI: OpenAIConfig{
			Model: "gpt-4o-mini",
		},
		Anthropic: AnthropicConfig{
			Model: "claude-haiku",
		},
		Gemini: GeminiConfig{
			Model: "gemini-flash",
		},
		Retry: RetryConfig{
			MaxAttempts: 3,
			InitialWait: 1 * time.Second,
			MaxWait:     10 * time.Second,
			Multiplier:  2.0,
		},
		Timeout: 60 * time.Second,
	}
}

// ConfigFromEnv builds a Config from QUIZFORGE_* environment variables,
// falling back to defaults, then to the bare provider key variables
// (OPENAI_API_KEY etc.) when no explicit provider is configured.
func ConfigFromEnv() Config {
	cfg := DefaultConfig()

	if p := os.Getenv("QUIZFORGE_LLM_PROVIDER"); p != "" {
		cfg.Provider = p
	}

	if k := os.Getenv("QUIZFORGE_OPENAI_API_KEY"); k != "" {
		cfg.OpenAI.APIKey = k
	}
	if m := os.Getenv("QUIZFORGE_OPENAI_MODEL"); m != "" {
		cfg.OpenAI.Model = m
	}
	if u := os.Getenv("QUIZFORGE_OPENAI_BASE_URL"); u != "" {
		cfg.OpenAI.BaseURL = u
	}

	if k := os.Getenv("QUIZFORGE_ANTHROPIC_API_KEY"); k != "" {
		cfg.Anthropic.APIKey = k
	}
	if m := os.Getenv("QUIZFORGE_ANTHROPIC_MODEL"); m != "" {
		cfg.Anthropic.Model = m
	}

	if k := os.Getenv("QUIZFORGE_GEMINI_API_KEY"); k != "" {
		cfg.Gemini.APIKey = k
	}
	if m := os.Getenv("QUIZFORGE_GEMINI_MODEL"); m != "" {
		cfg.Gemini.Model = m
	}

	// Fall back to the standard key variables when nothing explicit is
	// set for the selected provider.
	if cfg.OpenAI.APIKey == "" {
		cfg.OpenAI.APIKey = os.Getenv("OPENAI_API_KEY")
	}
	if cfg.Anthropic.APIKey == "" {
		cfg.Anthropic.APIKey = os.Getenv("ANTHROPIC_API_KEY")
	}
	if cfg.Gemini.APIKey == "" {
		cfg.Gemini.APIKey = os.Getenv("GEMINI_API_KEY")
	}

	return cfg
}

// Validate checks that the selected provider has its API key set.
func (c Config) Validate() error {
	switch c.Provider {
	case "openai":
		if c.OpenAI.APIKey == "" {
			return fmt.Errorf("an OpenAI API key is required for the openai provider")
		}
	case "anthropic":
		if c.Anthropic.APIKey == "" {
			return fmt.Errorf("an Anthropic API key is required for the anthropic provider")
		}
	case "gemini":
		if c.Gemini.APIKey == "" {
			return fmt.Errorf("a Gemini API key is required for the gemini provider")
		}
	case "mock":
		// No key needed.
	default:
		return fmt.Errorf("unknown LLM provider: %q", c.Provider)
	}
	return nil
}
