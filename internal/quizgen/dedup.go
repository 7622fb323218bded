package quizgen

import (
	"github.com/omerk/quizforge/internal/history"
	"github.com/omerk/quizforge/internal/quiz"
	"github.com/omerk/quizforge/internal/textsim"
)

// Deduplicator filters candidate batches against themselves, the prior
// results of the session, and the recent-history window.
type Deduplicator struct {
	// Window suppresses questions delivered in recent sessions. Optional.
	Window *history.Window
}

// Filter runs a single pass over candidates in insertion order. A
// candidate is rejected when it is a near-duplicate of an already
// accepted member of this call, of any fingerprint in existing (prior
// accepted results of the session), or of a recent-history entry.
// The rejected count lets the scheduler compute a replacement deficit.
func (d *Deduplicator) Filter(candidates []quiz.Candidate, existing []string) (accepted []quiz.Candidate, rejected int) {
	seen := make([]string, 0, len(candidates))

	for _, c := range candidates {
		fp := c.Fingerprint()
		if d.duplicate(fp, seen, existing) {
			rejected++
			continue
		}
		accepted = append(accepted, c)
		seen = append(seen, fp)
	}
	return accepted, rejected
}

func (d *Deduplicator) duplicate(fp string, seen, existing []string) bool {
	for _, s := range seen {
		if textsim.IsNearDuplicate(fp, s) {
			return true
		}
	}
	for _, e := range existing {
		if textsim.IsNearDuplicate(fp, e) {
			return true
		}
	}
	return d.Window != nil && d.Window.Contains(fp)
}
