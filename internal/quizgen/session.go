package quizgen

import (
	"context"
	"sync"

	"github.com/omerk/quizforge/internal/quiz"
)

// State is the scheduler's lifecycle state for one session.
type State int

const (
	StateIdle State = iota
	StateGenerating
	StateFinalizing
	StateDone
	StateAborted
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateGenerating:
		return "generating"
	case StateFinalizing:
		return "finalizing"
	case StateDone:
		return "done"
	case StateAborted:
		return "aborted"
	default:
		return "unknown"
	}
}

// Event is one progress emission. The final event carries Final=true
// plus the terminal warning or error, after which the stream closes.
type Event struct {
	Visible []quiz.Candidate
	Final   bool
	Warn    error
	Err     error
}

// Handle is the caller's view of a running session.
type Handle struct {
	id     string
	events chan Event
	cancel context.CancelFunc
	guard  *Guard
	done   chan struct{}

	mu      sync.Mutex
	state   State
	active  bool
	visible []quiz.Candidate
	result  []quiz.Candidate
	warn    error
	err     error
}

func newHandle(id string, cancel context.CancelFunc, eventBuffer int) *Handle {
	return &Handle{
		id:     id,
		events: make(chan Event, eventBuffer),
		cancel: cancel,
		guard:  &Guard{},
		done:   make(chan struct{}),
		state:  StateIdle,
	}
}

// ID returns the session identifier.
func (h *Handle) ID() string { return h.id }

// Progress returns the event stream. The channel is closed after the
// final event.
func (h *Handle) Progress() <-chan Event { return h.events }

// NotifyConsumerActive tells the guard the user has begun interacting
// with the visible questions. From this point on, delivered questions
// are only ever appended to.
func (h *Handle) NotifyConsumerActive() {
	h.mu.Lock()
	h.active = true
	h.mu.Unlock()
}

// Cancel aborts the session. Any in-flight batch result is discarded and
// the visible list is left untouched.
func (h *Handle) Cancel() { h.cancel() }

// Done is closed when the session reaches a terminal state.
func (h *Handle) Done() <-chan struct{} { return h.done }

// State returns the current lifecycle state.
func (h *Handle) State() State {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.state
}

// Result blocks until the session terminates and returns the final
// question set. A shortfall is not an error; check Warning for it.
func (h *Handle) Result() ([]quiz.Candidate, error) {
	<-h.done
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.err != nil {
		return nil, h.err
	}
	out := make([]quiz.Candidate, len(h.result))
	copy(out, h.result)
	return out, nil
}

// Warning returns the shortfall warning attached to a finished session,
// or nil. Valid after Done.
func (h *Handle) Warning() error {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.warn
}

func (h *Handle) isActive() bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.active
}

func (h *Handle) currentVisible() []quiz.Candidate {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.visible
}

func (h *Handle) setState(s State) {
	h.mu.Lock()
	h.state = s
	h.mu.Unlock()
}

// commit applies a guard mutation and emits a progress event.
func (h *Handle) commit(mut Mutation) {
	h.mu.Lock()
	h.visible = mut.Visible
	vis := snapshot(mut.Visible)
	h.mu.Unlock()

	h.emit(Event{Visible: vis})
}

// finish records the terminal state, emits the final event, and closes
// the stream. The visible list is not touched on abort.
func (h *Handle) finish(state State, result []quiz.Candidate, warn, err error) {
	h.mu.Lock()
	h.state = state
	h.result = result
	h.warn = warn
	h.err = err
	vis := snapshot(h.visible)
	h.mu.Unlock()

	h.emit(Event{Visible: vis, Final: true, Warn: warn, Err: err})
	close(h.events)
	close(h.done)
}

// emit never blocks; the buffer is sized for the session's batch plan so
// drops only happen if a consumer reads nothing at all.
func (h *Handle) emit(ev Event) {
	select {
	case h.events <- ev:
	default:
	}
}

func snapshot(cs []quiz.Candidate) []quiz.Candidate {
	out := make([]quiz.Candidate, len(cs))
	copy(out, cs)
	return out
}
