package quizgen

import (
	"errors"
	"fmt"
)

// ErrSessionCancelled is the terminal error of a cancelled session. The
// visible result set is never mutated by cancellation.
var ErrSessionCancelled = errors.New("session cancelled")

// ErrNoCandidates is the terminal error when every batch failed and the
// session produced nothing. The caller must retry or surface the failure.
var ErrNoCandidates = errors.New("no candidates produced")

// SourceUnavailableError wraps a failed or timed-out source call. It is
// batch-local: the scheduler logs it, skips the batch, and continues.
type SourceUnavailableError struct {
	Source string // "store" or "generator"
	Err    error
}

func (e *SourceUnavailableError) Error() string {
	return fmt.Sprintf("source %s unavailable: %v", e.Source, e.Err)
}

func (e *SourceUnavailableError) Unwrap() error { return e.Err }

// ShortfallWarning is attached to a finished session whose final set is
// smaller than the target after the retry budget ran out. The session
// still completes with its best-effort results.
type ShortfallWarning struct {
	Target    int
	Delivered int
}

func (e *ShortfallWarning) Error() string {
	return fmt.Sprintf("insufficient unique questions: delivered %d of %d", e.Delivered, e.Target)
}
