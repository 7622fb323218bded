// Package mcqgen generates batches of multiple-choice questions from
// source material using the configured LLM client.
package mcqgen

// BatchInput holds all context needed to generate one batch of questions.
type BatchInput struct {
	// Topics optionally targets the batch at specific topics. Empty means
	// a general batch over the whole material.
	Topics []string

	// DocContext is the source material excerpt questions must be
	// grounded in.
	DocContext string

	// Count is the number of questions requested.
	Count int

	// PriorQuestions contains texts already delivered in this session,
	// listed in the prompt so the model avoids repeating them.
	PriorQuestions []string
}

// Config controls the Generator.
type Config struct {
	// MaxTokens is the token budget for one batch response.
	MaxTokens int

	// Temperature controls output randomness (0.0-1.0).
	Temperature float64

	// MaxPriorQuestions caps how many prior questions are listed in the
	// prompt for deduplication.
	MaxPriorQuestions int

	// MaxOptionLen caps the length of a single answer option.
	MaxOptionLen int

	// MaxStemLen caps the length of a question stem.
	MaxStemLen int
}

// DefaultConfig returns the recommended generator configuration.
func DefaultConfig() Config {
	return Config{
		MaxTokens:         2048,
		Temperature:       0.7,
		MaxPriorQuestions: 12,
		MaxOptionLen:      200,
		MaxStemLen:        500,
	}
}
