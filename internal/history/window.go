// Package history tracks recently delivered question fingerprints so a
// question the user answered recently does not reappear, independent of
// session boundaries.
package history

import (
	"sync"

	"github.com/omerk/quizforge/internal/textsim"
)

// DefaultCapacity is the number of fingerprints retained.
const DefaultCapacity = 50

// Window is a bounded, order-preserving record of recently delivered
// question fingerprints, most-recent-first. It is process-wide state
// scoped to one user's activity and is reset only by explicit teardown,
// never time-expired. Safe for concurrent use.
type Window struct {
	mu       sync.Mutex
	entries  []string // normalized fingerprints, most recent first
	capacity int
}

// NewWindow creates a Window with DefaultCapacity.
func NewWindow() *Window {
	return NewWindowSize(DefaultCapacity)
}

// NewWindowSize creates a Window with the given capacity.
func NewWindowSize(capacity int) *Window {
	if capacity < 1 {
		capacity = DefaultCapacity
	}
	return &Window{capacity: capacity}
}

// Contains reports whether text is a near-duplicate of any window member.
// This is a similarity check against every entry, not an exact-match
// lookup.
func (w *Window) Contains(text string) bool {
	w.mu.Lock()
	defer w.mu.Unlock()

	for _, e := range w.entries {
		if textsim.IsNearDuplicate(e, text) {
			return true
		}
	}
	return false
}

// Record inserts the normalized fingerprint of text at the front of the
// window. An existing entry that matches (exactly or as a near-duplicate)
// is first removed from its old position, so re-recording refreshes an
// entry to the front. Insertion beyond capacity evicts the oldest entry.
func (w *Window) Record(text string) {
	fp := textsim.Normalize(text)
	if fp == "" {
		return
	}

	w.mu.Lock()
	defer w.mu.Unlock()

	for i, e := range w.entries {
		if e == fp || textsim.IsNearDuplicate(e, fp) {
			w.entries = append(w.entries[:i], w.entries[i+1:]...)
			break
		}
	}

	w.entries = append([]string{fp}, w.entries...)
	if len(w.entries) > w.capacity {
		w.entries = w.entries[:w.capacity]
	}
}

// Len returns the number of fingerprints currently retained.
func (w *Window) Len() int {
	w.mu.Lock()
	defer w.mu.Unlock()
	return len(w.entries)
}

// Snapshot returns a copy of the current fingerprints, most recent first.
func (w *Window) Snapshot() []string {
	w.mu.Lock()
	defer w.mu.Unlock()
	out := make([]string, len(w.entries))
	copy(out, w.entries)
	return out
}

// Restore replaces the window contents with a previously captured
// snapshot, most recent first. Entries beyond capacity are dropped and
// each entry is re-normalized on the way in.
func (w *Window) Restore(entries []string) {
	w.mu.Lock()
	defer w.mu.Unlock()

	w.entries = w.entries[:0]
	for _, e := range entries {
		fp := textsim.Normalize(e)
		if fp == "" {
			continue
		}
		w.entries = append(w.entries, fp)
		if len(w.entries) == w.capacity {
			break
		}
	}
}

// Reset clears the window. Called on explicit session teardown (logout).
func (w *Window) Reset() {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.entries = nil
}
