package mcqgen

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/omerk/quizforge/internal/llm"
	"github.com/omerk/quizforge/internal/quiz"
)

func batchJSON(stems ...string) json.RawMessage {
	type q struct {
		Stem         string   `json:"stem"`
		Options      []string `json:"options"`
		CorrectIndex int      `json:"correct_index"`
		Topic        string   `json:"topic"`
		Explanation  string   `json:"explanation"`
	}
	var qs []q
	for i, stem := range stems {
		qs = append(qs, q{
			Stem:         stem,
			Options:      []string{"option a", "option b", "option c", "option d"},
			CorrectIndex: i % 4,
			Topic:        "licenses",
			Explanation:  "stated in the material",
		})
	}
	raw, _ := json.Marshal(map[string]any{"questions": qs})
	return raw
}

func TestGenerate_Batch(t *testing.T) {
	mock := llm.NewMock(llm.MockResult{
		Content: batchJSON(
			"Which body issues brokerage licenses under the statute?",
			"What is the maximum fine for unlicensed activity?",
			"Who may object to a license application?",
		),
	})
	gen := New(mock, DefaultConfig())

	got, err := gen.Generate(context.Background(), BatchInput{
		Topics:     []string{"licenses"},
		DocContext: "Chapter 2 of the statute covers licensing.",
		Count:      3,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) != 3 {
		t.Fatalf("expected 3 candidates, got %d", len(got))
	}
	for _, c := range got {
		if c.ID == "" {
			t.Error("candidate must carry an ID")
		}
		if c.Origin != quiz.OriginGenerated {
			t.Errorf("origin = %q, want %q", c.Origin, quiz.OriginGenerated)
		}
		if len(c.Options) != 4 {
			t.Errorf("expected 4 options, got %d", len(c.Options))
		}
	}
}

func TestGenerate_CapsAtRequestedCount(t *testing.T) {
	mock := llm.NewMock(llm.MockResult{
		Content: batchJSON("first question text here", "second question text here", "third question text here"),
	})
	gen := New(mock, DefaultConfig())

	got, err := gen.Generate(context.Background(), BatchInput{Count: 2, DocContext: "material"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) != 2 {
		t.Errorf("expected batch capped at 2, got %d", len(got))
	}
}

func TestGenerate_DropsInvalidQuestions(t *testing.T) {
	// Second question has 3 options; third has an out-of-range index.
	raw := json.RawMessage(`{"questions": [
		{"stem": "a perfectly valid question stem", "options": ["a", "b", "c", "d"], "correct_index": 1, "topic": "t", "explanation": "e"},
		{"stem": "only three options on this one", "options": ["a", "b", "c"], "correct_index": 0, "topic": "t", "explanation": "e"},
		{"stem": "index out of range on this one", "options": ["a", "b", "c", "d"], "correct_index": 4, "topic": "t", "explanation": "e"}
	]}`)
	gen := New(llm.NewMock(llm.MockResult{Content: raw}), DefaultConfig())

	got, err := gen.Generate(context.Background(), BatchInput{Count: 3, DocContext: "material"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) != 1 {
		t.Fatalf("expected 1 surviving candidate, got %d", len(got))
	}
	if got[0].Text != "a perfectly valid question stem" {
		t.Errorf("wrong survivor: %q", got[0].Text)
	}
}

func TestGenerate_AllInvalidIsError(t *testing.T) {
	raw := json.RawMessage(`{"questions": [
		{"stem": "", "options": ["a", "b", "c", "d"], "correct_index": 0, "topic": "t", "explanation": "e"}
	]}`)
	gen := New(llm.NewMock(llm.MockResult{Content: raw}), DefaultConfig())

	if _, err := gen.Generate(context.Background(), BatchInput{Count: 1, DocContext: "m"}); err == nil {
		t.Fatal("expected an error when nothing in the batch survives")
	}
}

func TestGenerate_ClientErrorPropagates(t *testing.T) {
	gen := New(llm.NewMock(llm.MockResult{Err: &llm.UnavailableError{Err: errors.New("down")}}), DefaultConfig())

	_, err := gen.Generate(context.Background(), BatchInput{Count: 5, DocContext: "m"})
	var unavail *llm.UnavailableError
	if !errors.As(err, &unavail) {
		t.Fatalf("expected UnavailableError, got %v", err)
	}
}

func TestGenerate_ZeroCount(t *testing.T) {
	mock := llm.NewMock()
	gen := New(mock, DefaultConfig())

	got, err := gen.Generate(context.Background(), BatchInput{Count: 0})
	if err != nil || got != nil {
		t.Errorf("zero count should be a no-op, got (%v, %v)", got, err)
	}
	if mock.CallCount() != 0 {
		t.Error("zero count must not call the client")
	}
}

func TestBuildUserMessage_PriorQuestionsCapped(t *testing.T) {
	cfg := DefaultConfig()
	cfg.MaxPriorQuestions = 3

	var prior []string
	for i := 0; i < 10; i++ {
		prior = append(prior, fmt.Sprintf("prior question %d", i))
	}

	msg := buildUserMessage(BatchInput{Count: 5, PriorQuestions: prior, DocContext: "m"}, cfg)
	if strings.Contains(msg, "prior question 6") {
		t.Error("older prior questions should be dropped")
	}
	for i := 7; i < 10; i++ {
		if !strings.Contains(msg, fmt.Sprintf("prior question %d", i)) {
			t.Errorf("most recent prior question %d missing from prompt", i)
		}
	}
}

func TestBuildUserMessage_NoPrior(t *testing.T) {
	msg := buildUserMessage(BatchInput{Count: 5, DocContext: "m"}, DefaultConfig())
	if !strings.Contains(msg, "None") {
		t.Error("empty prior list should render as None")
	}
}
