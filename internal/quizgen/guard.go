package quizgen

import (
	"sync"

	"github.com/omerk/quizforge/internal/quiz"
)

// Mutation describes how the visible result list changes after a batch
// commit.
type Mutation struct {
	// Replace is true when the whole visible list may be swapped out,
	// which keeps progressive display smooth before the consumer starts
	// interacting.
	Replace bool

	// Visible is the full list exposed after applying the mutation.
	Visible []quiz.Candidate

	// Appended holds only the new tail elements when Replace is false.
	Appended []quiz.Candidate
}

// Guard decides whether newly produced questions may replace the exposed
// list outright or must be appended without disturbing the element the
// consumer is viewing.
//
// Once consumer activity is observed the guard latches into background
// mode for the remainder of the session: every further batch uses
// append-only semantics even if the consumer goes idle again, so the
// list never flaps between replace and append.
type Guard struct {
	mu         sync.Mutex
	background bool
}

// Reconcile computes the visible-list mutation for a committed batch.
// prev must be the currently exposed list and accumulated the session's
// full accepted list, of which prev is always a prefix.
func (g *Guard) Reconcile(prev, accumulated []quiz.Candidate, active bool) Mutation {
	g.mu.Lock()
	defer g.mu.Unlock()

	if active {
		g.background = true
	}

	if !g.background {
		return Mutation{Replace: true, Visible: accumulated}
	}

	tail := accumulated[len(prev):]
	visible := make([]quiz.Candidate, 0, len(accumulated))
	visible = append(visible, prev...)
	visible = append(visible, tail...)
	return Mutation{Visible: visible, Appended: tail}
}

// InBackground reports whether the sticky append-only latch has fired.
func (g *Guard) InBackground() bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.background
}
