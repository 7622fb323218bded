package llm

import (
	"context"
	"encoding/json"
)

// Client is the generative backend abstraction. Callers build a Request
// and receive schema-validated JSON back; everything provider-specific
// stays behind this interface.
type Client interface {
	// Complete sends one request and returns the structured result. When
	// the request carries a Schema the returned Content conforms to it;
	// otherwise Content is the raw text wrapped as a JSON string.
	Complete(ctx context.Context, req Request) (*Result, error)

	// Model returns the model identifier this client is configured with.
	Model() string
}

// Request describes a single completion call.
type Request struct {
	// System sets the model's role and constraints.
	System string

	// Messages is the conversation. Batch generation sends a single user
	// message; multi-turn is supported but unused here.
	Messages []Message

	// Schema constrains the output. When set, the provider uses its
	// native structured-output mechanism and the result is validated
	// against the schema before being returned.
	Schema *Schema

	// MaxTokens caps the response length.
	MaxTokens int

	// Temperature in [0.0, 1.0]. Zero means deterministic.
	Temperature float64
}

// Message is one turn of the conversation.
type Message struct {
	Role    Role
	Content string
}

// Role identifies the message sender.
type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// Schema is a JSON Schema the response must conform to.
type Schema struct {
	// Name identifies the schema to the provider (OpenAI schema name,
	// Anthropic tool name). Kebab-case, e.g. "mcq-batch".
	Name string

	// Description guides generation; sent to the model where supported.
	Description string

	// Definition is the schema body as a map.
	Definition map[string]any
}

// Stop reasons, normalized across providers.
const (
	StopEnd       = "end"
	StopMaxTokens = "max_tokens"
)

// Result is the outcome of a completed call.
type Result struct {
	// Content is the generated output. Validated JSON when the request
	// had a Schema.
	Content json.RawMessage

	// Usage reports token consumption.
	Usage Usage

	// Model is the model that actually served the call, which may be a
	// more specific ID than the one requested.
	Model string

	// StopReason is one of the normalized Stop* constants.
	StopReason string
}

// Usage is the token accounting for one call.
type Usage struct {
	InputTokens  int
	OutputTokens int
	TotalTokens  int
}

// checkTruncation returns a TruncatedError when generation stopped on the
// token budget. Providers call this before schema validation: a cut-off
// response is almost never valid JSON, and the truncation is the real
// diagnosis.
func checkTruncation(stopReason string, content json.RawMessage) error {
	if stopReason == StopMaxTokens {
		return &TruncatedError{Content: content}
	}
	return nil
}
