package llm

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
)

// Compile-time conformance of every Client implementation.
var (
	_ Client = (*Mock)(nil)
	_ Client = (*OpenAIClient)(nil)
	_ Client = (*AnthropicClient)(nil)
	_ Client = (*GeminiClient)(nil)
	_ Client = (*retryClient)(nil)
	_ Client = (*loggedClient)(nil)
)

func TestMockServesThroughClientInterface(t *testing.T) {
	var c Client = NewMock(MockResult{
		Content: json.RawMessage(`{"ok":true}`),
		Usage:   Usage{InputTokens: 10, OutputTokens: 5},
	})

	req := Request{
		System:   "assistant",
		Messages: []Message{{Role: RoleUser, Content: "generate"}},
	}
	res, err := c.Complete(context.Background(), req)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if string(res.Content) != `{"ok":true}` {
		t.Errorf("content = %s", res.Content)
	}
	if res.StopReason != StopEnd {
		t.Errorf("stop reason = %q, want %q", res.StopReason, StopEnd)
	}
	if c.Model() != "mock" {
		t.Errorf("model = %q", c.Model())
	}

	// The queue is exhausted; the next call reports unavailability.
	_, err = c.Complete(context.Background(), req)
	var unavail *UnavailableError
	if !errors.As(err, &unavail) {
		t.Fatalf("expected UnavailableError on empty queue, got %v", err)
	}
}

func TestCheckTruncation(t *testing.T) {
	partial := json.RawMessage(`{"questions":[{"stem":"cut of`)

	err := checkTruncation(StopMaxTokens, partial)
	var trunc *TruncatedError
	if !errors.As(err, &trunc) {
		t.Fatalf("max_tokens stop should yield TruncatedError, got %v", err)
	}
	if string(trunc.Content) != string(partial) {
		t.Error("truncated content not preserved")
	}

	if err := checkTruncation(StopEnd, partial); err != nil {
		t.Errorf("normal stop should not error: %v", err)
	}
}

func TestPurposeContext(t *testing.T) {
	if got := PurposeFrom(context.Background()); got != "unknown" {
		t.Errorf("missing purpose = %q, want unknown", got)
	}

	ctx := WithPurpose(context.Background(), "mcq-batch")
	if got := PurposeFrom(ctx); got != "mcq-batch" {
		t.Errorf("purpose = %q", got)
	}
}
