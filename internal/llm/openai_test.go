package llm

import (
	"testing"

	openai "github.com/sashabaranov/go-openai"
)

func TestBuildOpenAIMessages(t *testing.T) {
	req := Request{
		System: "you are a quiz writer",
		Messages: []Message{
			{Role: RoleUser, Content: "five questions"},
			{Role: RoleAssistant, Content: "here"},
		},
	}

	msgs := buildOpenAIMessages(req)
	if len(msgs) != 3 {
		t.Fatalf("expected 3 messages, got %d", len(msgs))
	}
	if msgs[0].Role != openai.ChatMessageRoleSystem {
		t.Errorf("first message role = %q", msgs[0].Role)
	}
	if msgs[1].Role != openai.ChatMessageRoleUser || msgs[2].Role != openai.ChatMessageRoleAssistant {
		t.Errorf("conversation roles = %q, %q", msgs[1].Role, msgs[2].Role)
	}
}

func TestMapOpenAIStopReason(t *testing.T) {
	tests := []struct {
		reason openai.FinishReason
		want   string
	}{
		{openai.FinishReasonStop, StopEnd},
		{openai.FinishReasonLength, StopMaxTokens},
		{openai.FinishReasonContentFilter, StopEnd},
	}
	for _, tt := range tests {
		if got := mapOpenAIStopReason(tt.reason); got != tt.want {
			t.Errorf("mapOpenAIStopReason(%q) = %q, want %q", tt.reason, got, tt.want)
		}
	}
}

func TestResolveModel(t *testing.T) {
	if got := resolveModel("gpt-4o-mini", openaiModels); got != "gpt-4o-mini" {
		t.Errorf("friendly name resolved to %q", got)
	}
	// Direct model IDs pass through untouched.
	if got := resolveModel("o4-mini-2025", openaiModels); got != "o4-mini-2025" {
		t.Errorf("passthrough = %q", got)
	}
}
