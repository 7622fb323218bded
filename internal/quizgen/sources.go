package quizgen

import (
	"context"

	"github.com/omerk/quizforge/internal/quiz"
)

// QuestionSource is the pre-existing question store boundary. Random-
// sampling semantics are assumed and a fetch may return fewer candidates
// than requested.
type QuestionSource interface {
	FetchQuestions(ctx context.Context, docID string, topics []string, count int) ([]quiz.Candidate, error)
}

// Generator is the generative backend boundary. Calls may fail or time
// out, and idempotency is not assumed.
type Generator interface {
	Generate(ctx context.Context, req GenerateRequest) ([]quiz.Candidate, error)
}

// GenerateRequest describes one generation call.
type GenerateRequest struct {
	// Topics targets the call; empty means a general batch.
	Topics []string

	// DocContext is the source material the questions must come from.
	DocContext string

	// Count is the number of questions wanted.
	Count int

	// Prior lists question texts already delivered in this session so
	// the backend can avoid repeats at the prompt level.
	Prior []string
}

// SourceMix selects which sources a session draws from.
type SourceMix int

const (
	// MixAuto uses the store first and the generator for the remainder.
	MixAuto SourceMix = iota

	// MixStoreOnly never calls the generator.
	MixStoreOnly

	// MixGeneratorOnly never queries the store.
	MixGeneratorOnly
)
