// Package quiz defines the shared question candidate model produced by
// the store and the generator and consumed by the session pipeline.
package quiz

import "github.com/omerk/quizforge/internal/textsim"

// Origin records which source produced a candidate.
type Origin string

const (
	// OriginStore marks a candidate fetched from the question store.
	OriginStore Origin = "store"

	// OriginGenerated marks a candidate produced by a generation call.
	OriginGenerated Origin = "generated"
)

// Candidate is a single multiple-choice practice question. Immutable once
// produced. Identity is the normalized question text alone: the consumer
// may re-randomize option order without affecting identity.
type Candidate struct {
	// ID is a stable identifier assigned at production time.
	ID string

	// Text is the question stem shown to the user.
	Text string

	// Options is the ordered answer list. Always 4 entries for generated
	// questions; stored questions carry whatever was ingested.
	Options []string

	// Correct is the index into Options of the right answer.
	Correct int

	// Topic is the optional topic label used for adaptive sampling.
	Topic string

	// SourceRef optionally points at the source material the question was
	// derived from (e.g. a document block hash or a page reference).
	SourceRef string

	// Explanation optionally tells the user why the answer is correct.
	Explanation string

	// Origin records the producing source.
	Origin Origin
}

// Fingerprint returns the candidate's identity: its normalized text.
func (c Candidate) Fingerprint() string {
	return textsim.Normalize(c.Text)
}

// Fingerprints maps a candidate slice to its normalized texts, preserving
// order.
func Fingerprints(cs []Candidate) []string {
	out := make([]string, len(cs))
	for i, c := range cs {
		out[i] = c.Fingerprint()
	}
	return out
}
