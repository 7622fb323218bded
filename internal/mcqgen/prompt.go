package mcqgen

import (
	"fmt"
	"strings"
)

const systemPrompt = `You are an exam-prep assistant creating multiple-choice practice questions from the source material provided by the user.

Rules:
- Every question must be answerable from the provided material alone. Do not invent facts or ask about topics the material does not cover.
- Write the question and all options in the same language as the source material.
- Each question has exactly 4 options with exactly one correct answer. Distractors should be plausible misreadings of the material, not random values.
- Keep questions short, clear, and self-contained.
- Provide a brief explanation citing the relevant part of the material.
- When target topics are given, every question must belong to one of them; set the "topic" field accordingly.
- Do not repeat, rephrase, or lightly vary any question from the "already delivered" list. Each question in the batch must test a distinct point.`

// buildUserMessage constructs the user message for one batch request.
func buildUserMessage(input BatchInput, cfg Config) string {
	var b strings.Builder

	fmt.Fprintf(&b, "Generate %d questions.\n", input.Count)

	if len(input.Topics) > 0 {
		fmt.Fprintf(&b, "Target topics: %s\n", strings.Join(input.Topics, ", "))
	} else {
		b.WriteString("Target topics: any covered by the material\n")
	}

	b.WriteString("\nAlready delivered in this session:\n")
	b.WriteString(formatPrior(input.PriorQuestions, cfg.MaxPriorQuestions))

	b.WriteString("\n\nSource material:\n")
	b.WriteString(input.DocContext)

	return b.String()
}

// formatPrior lists prior questions for the prompt, keeping only the most
// recent max entries. Returns "None" when there are none.
func formatPrior(prior []string, max int) string {
	if len(prior) == 0 {
		return "None"
	}
	if max > 0 && len(prior) > max {
		prior = prior[len(prior)-max:]
	}

	var b strings.Builder
	for i, q := range prior {
		fmt.Fprintf(&b, "%d. %s\n", i+1, q)
	}
	return strings.TrimRight(b.String(), "\n")
}
