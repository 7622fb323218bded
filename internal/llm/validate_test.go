package llm

import (
	"encoding/json"
	"errors"
	"testing"
)

func testSchema() *Schema {
	return &Schema{
		Name:        "test-answer",
		Description: "A test answer",
		Definition: map[string]any{
			"type": "object",
			"properties": map[string]any{
				"answer": map[string]any{"type": "string"},
				"score":  map[string]any{"type": "integer"},
			},
			"required":             []any{"answer", "score"},
			"additionalProperties": false,
		},
	}
}

func TestValidateContent_NilSchema(t *testing.T) {
	if err := validateContent(nil, json.RawMessage(`not even json`)); err != nil {
		t.Errorf("nil schema must not validate: %v", err)
	}
}

func TestValidateContent_Valid(t *testing.T) {
	raw := json.RawMessage(`{"answer": "yes", "score": 3}`)
	if err := validateContent(testSchema(), raw); err != nil {
		t.Errorf("unexpected validation failure: %v", err)
	}
}

func TestValidateContent_InvalidJSON(t *testing.T) {
	err := validateContent(testSchema(), json.RawMessage(`{"answer": `))
	var bad *BadResponseError
	if !errors.As(err, &bad) {
		t.Fatalf("expected BadResponseError, got %v", err)
	}
}

func TestValidateContent_MissingField(t *testing.T) {
	err := validateContent(testSchema(), json.RawMessage(`{"answer": "yes"}`))
	var bad *BadResponseError
	if !errors.As(err, &bad) {
		t.Fatalf("expected BadResponseError, got %v", err)
	}
}

func TestValidateContent_WrongType(t *testing.T) {
	err := validateContent(testSchema(), json.RawMessage(`{"answer": "yes", "score": "three"}`))
	var bad *BadResponseError
	if !errors.As(err, &bad) {
		t.Fatalf("expected BadResponseError, got %v", err)
	}
}
