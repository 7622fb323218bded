package mcqgen

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"

	"github.com/omerk/quizforge/internal/llm"
	"github.com/omerk/quizforge/internal/quiz"
)

// Generator produces batches of MCQ candidates via the LLM client.
// Each call is independent; idempotency is not assumed.
type Generator struct {
	client llm.Client
	config Config
}

// New creates a Generator with the given client and config.
func New(client llm.Client, cfg Config) *Generator {
	return &Generator{client: client, config: cfg}
}

// batchOutput is the raw response shape before validation.
type batchOutput struct {
	Questions []questionOutput `json:"questions"`
}

type questionOutput struct {
	Stem         string   `json:"stem"`
	Options      []string `json:"options"`
	CorrectIndex int      `json:"correct_index"`
	Topic        string   `json:"topic"`
	Explanation  string   `json:"explanation"`
}

// Generate produces up to input.Count candidate questions. Structurally
// invalid questions are dropped from the batch; an error is returned only
// when the call fails outright or nothing in the batch survives.
func (g *Generator) Generate(ctx context.Context, input BatchInput) ([]quiz.Candidate, error) {
	if input.Count <= 0 {
		return nil, nil
	}

	ctx = llm.WithPurpose(ctx, "mcq-batch")

	req := llm.Request{
		System: systemPrompt,
		Messages: []llm.Message{
			{Role: llm.RoleUser, Content: buildUserMessage(input, g.config)},
		},
		Schema:      BatchSchema,
		MaxTokens:   g.config.MaxTokens,
		Temperature: g.config.Temperature,
	}

	res, err := g.client.Complete(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("mcq generation failed: %w", err)
	}

	var raw batchOutput
	if err := json.Unmarshal(res.Content, &raw); err != nil {
		return nil, fmt.Errorf("parse mcq batch: %w", err)
	}

	out := make([]quiz.Candidate, 0, len(raw.Questions))
	for _, q := range raw.Questions {
		if err := g.checkStructure(q); err != nil {
			continue
		}
		out = append(out, quiz.Candidate{
			ID:          uuid.NewString(),
			Text:        q.Stem,
			Options:     q.Options,
			Correct:     q.CorrectIndex,
			Topic:       q.Topic,
			Explanation: q.Explanation,
			Origin:      quiz.OriginGenerated,
		})
		if len(out) == input.Count {
			break
		}
	}

	if len(out) == 0 {
		return nil, fmt.Errorf("mcq batch produced no structurally valid questions")
	}
	return out, nil
}
