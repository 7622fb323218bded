package llm

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	openai "github.com/sashabaranov/go-openai"
)

// openaiModels maps friendly names to OpenAI model IDs.
var openaiModels = map[string]string{
	"gpt-4o":      "gpt-4o",
	"gpt-4o-mini": "gpt-4o-mini",
}

// OpenAIClient implements Client using the OpenAI SDK. A custom BaseURL
// also makes it serve OpenRouter and other compatible gateways.
type OpenAIClient struct {
	client *openai.Client
	model  string
}

// NewOpenAIClient creates a new OpenAI-backed client.
func NewOpenAIClient(cfg OpenAIConfig) (*OpenAIClient, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("openai API key is required")
	}

	conf := openai.DefaultConfig(cfg.APIKey)
	if cfg.BaseURL != "" {
		conf.BaseURL = cfg.BaseURL
	}

	return &OpenAIClient{
		client: openai.NewClientWithConfig(conf),
		model:  resolveModel(cfg.Model, openaiModels),
	}, nil
}

func (c *OpenAIClient) Complete(ctx context.Context, req Request) (*Result, error) {
	chatReq := openai.ChatCompletionRequest{
		Model:               c.model,
		Messages:            buildOpenAIMessages(req),
		MaxCompletionTokens: req.MaxTokens,
		Temperature:         float32(req.Temperature),
	}

	if req.Schema != nil {
		schemaBytes, err := json.Marshal(req.Schema.Definition)
		if err != nil {
			return nil, fmt.Errorf("marshal schema: %w", err)
		}
		chatReq.ResponseFormat = &openai.ChatCompletionResponseFormat{
			Type: openai.ChatCompletionResponseFormatTypeJSONSchema,
			JSONSchema: &openai.ChatCompletionResponseFormatJSONSchema{
				Name:   req.Schema.Name,
				Schema: json.RawMessage(schemaBytes),
				Strict: true,
			},
		}
	}

	resp, err := c.client.CreateChatCompletion(ctx, chatReq)
	if err != nil {
		return nil, mapOpenAIError(err)
	}
	if len(resp.Choices) == 0 {
		return nil, &BadResponseError{Err: fmt.Errorf("no choices in OpenAI response")}
	}

	content := json.RawMessage(resp.Choices[0].Message.Content)
	stop := mapOpenAIStopReason(resp.Choices[0].FinishReason)
	if err := checkTruncation(stop, content); err != nil {
		return nil, err
	}
	if err := validateContent(req.Schema, content); err != nil {
		return nil, err
	}

	return &Result{
		Content: content,
		Usage: Usage{
			InputTokens:  resp.Usage.PromptTokens,
			OutputTokens: resp.Usage.CompletionTokens,
			TotalTokens:  resp.Usage.TotalTokens,
		},
		Model:      resp.Model,
		StopReason: stop,
	}, nil
}

func (c *OpenAIClient) Model() string {
	return c.model
}

func buildOpenAIMessages(req Request) []openai.ChatCompletionMessage {
	var messages []openai.ChatCompletionMessage

	if req.System != "" {
		messages = append(messages, openai.ChatCompletionMessage{
			Role:    openai.ChatMessageRoleSystem,
			Content: req.System,
		})
	}
	for _, m := range req.Messages {
		role := openai.ChatMessageRoleUser
		if m.Role == RoleAssistant {
			role = openai.ChatMessageRoleAssistant
		}
		messages = append(messages, openai.ChatCompletionMessage{
			Role:    role,
			Content: m.Content,
		})
	}
	return messages
}

func mapOpenAIStopReason(reason openai.FinishReason) string {
	switch reason {
	case openai.FinishReasonStop:
		return StopEnd
	case openai.FinishReasonLength:
		return StopMaxTokens
	default:
		return StopEnd
	}
}

func mapOpenAIError(err error) error {
	var apiErr *openai.APIError
	if errors.As(err, &apiErr) {
		switch {
		case apiErr.HTTPStatusCode == http.StatusTooManyRequests:
			return &RateLimitError{Err: err}
		case apiErr.HTTPStatusCode >= 500:
			return &UnavailableError{Err: err}
		}
	}
	return &UnavailableError{Err: err}
}

// resolveModel maps a friendly model name to a provider model ID, passing
// unknown names through so direct model IDs work.
func resolveModel(name string, models map[string]string) string {
	if id, ok := models[name]; ok {
		return id
	}
	return name
}
