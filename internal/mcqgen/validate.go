package mcqgen

import "fmt"

// checkStructure verifies one raw question before it becomes a candidate.
// The JSON schema already constrains types; this catches what a schema
// cannot express (empty strings, option count, duplicate options).
func (g *Generator) checkStructure(q questionOutput) error {
	if q.Stem == "" {
		return fmt.Errorf("empty stem")
	}
	if len([]rune(q.Stem)) > g.config.MaxStemLen {
		return fmt.Errorf("stem exceeds %d characters", g.config.MaxStemLen)
	}
	if len(q.Options) != 4 {
		return fmt.Errorf("expected 4 options, got %d", len(q.Options))
	}
	if q.CorrectIndex < 0 || q.CorrectIndex > 3 {
		return fmt.Errorf("correct_index %d out of range", q.CorrectIndex)
	}

	seen := make(map[string]bool, 4)
	for i, opt := range q.Options {
		if opt == "" {
			return fmt.Errorf("option %d is empty", i)
		}
		if len([]rune(opt)) > g.config.MaxOptionLen {
			return fmt.Errorf("option %d exceeds %d characters", i, g.config.MaxOptionLen)
		}
		if seen[opt] {
			return fmt.Errorf("option %q appears twice", opt)
		}
		seen[opt] = true
	}
	return nil
}
