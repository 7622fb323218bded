package llm

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"
)

// anthropicModels maps friendly names to Anthropic model IDs.
var anthropicModels = map[string]string{
	"claude-sonnet": "claude-sonnet-4-20250514",
	"claude-haiku":  "claude-haiku-4-5-20251001",
}

// AnthropicClient implements Client using the Anthropic SDK.
type AnthropicClient struct {
	client *anthropic.Client
	model  string
}

// NewAnthropicClient creates a new Anthropic-backed client.
func NewAnthropicClient(cfg AnthropicConfig) (*AnthropicClient, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("anthropic API key is required")
	}

	client := anthropic.NewClient(option.WithAPIKey(cfg.APIKey))

	return &AnthropicClient{
		client: &client,
		model:  resolveModel(cfg.Model, anthropicModels),
	}, nil
}

func (c *AnthropicClient) Complete(ctx context.Context, req Request) (*Result, error) {
	params := anthropic.MessageNewParams{
		Model:     anthropic.Model(c.model),
		MaxTokens: int64(req.MaxTokens),
		Messages:  buildAnthropicMessages(req.Messages),
	}

	if req.System != "" {
		params.System = []anthropic.TextBlockParam{{Text: req.System}}
	}
	if req.Temperature > 0 {
		params.Temperature = anthropic.Float(req.Temperature)
	}
	if req.Schema != nil {
		params.OutputConfig = anthropic.OutputConfigParam{
			Format: anthropic.JSONOutputFormatParam{
				Schema: req.Schema.Definition,
			},
		}
	}

	msg, err := c.client.Messages.New(ctx, params)
	if err != nil {
		return nil, mapAnthropicError(err)
	}

	content, err := extractAnthropicContent(msg)
	if err != nil {
		return nil, err
	}
	stop := mapAnthropicStopReason(msg.StopReason)
	if err := checkTruncation(stop, content); err != nil {
		return nil, err
	}
	if err := validateContent(req.Schema, content); err != nil {
		return nil, err
	}

	return &Result{
		Content: content,
		Usage: Usage{
			InputTokens:  int(msg.Usage.InputTokens),
			OutputTokens: int(msg.Usage.OutputTokens),
			TotalTokens:  int(msg.Usage.InputTokens + msg.Usage.OutputTokens),
		},
		Model:      string(msg.Model),
		StopReason: stop,
	}, nil
}

func (c *AnthropicClient) Model() string {
	return c.model
}

func buildAnthropicMessages(msgs []Message) []anthropic.MessageParam {
	out := make([]anthropic.MessageParam, len(msgs))
	for i, m := range msgs {
		role := anthropic.MessageParamRoleUser
		if m.Role == RoleAssistant {
			role = anthropic.MessageParamRoleAssistant
		}
		out[i] = anthropic.MessageParam{
			Role: role,
			Content: []anthropic.ContentBlockParamUnion{
				anthropic.NewTextBlock(m.Content),
			},
		}
	}
	return out
}

func extractAnthropicContent(msg *anthropic.Message) (json.RawMessage, error) {
	for _, block := range msg.Content {
		if block.Type == "text" {
			return json.RawMessage(block.Text), nil
		}
	}
	return nil, &BadResponseError{Err: fmt.Errorf("no text content in Anthropic response")}
}

func mapAnthropicStopReason(reason anthropic.StopReason) string {
	switch reason {
	case "end_turn":
		return StopEnd
	case "max_tokens":
		return StopMaxTokens
	default:
		return StopEnd
	}
}

func mapAnthropicError(err error) error {
	var apiErr *anthropic.Error
	if errors.As(err, &apiErr) {
		switch {
		case apiErr.StatusCode == http.StatusTooManyRequests:
			return &RateLimitError{Err: err}
		case apiErr.StatusCode >= 500:
			return &UnavailableError{Err: err}
		}
	}
	return &UnavailableError{Err: err}
}
