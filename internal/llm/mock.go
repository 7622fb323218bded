package llm

import (
	"context"
	"encoding/json"
	"sync"
)

// MockResult is a canned response for the Mock client.
type MockResult struct {
	Content json.RawMessage
	Usage   Usage
	Err     error
}

// Mock is a deterministic Client for testing. Canned results are served
// FIFO and every request is recorded.
type Mock struct {
	mu      sync.Mutex
	results []MockResult
	Calls   []Request
}

// NewMock creates a Mock with the given canned results.
func NewMock(results ...MockResult) *Mock {
	return &Mock{results: results}
}

// Complete returns the next canned result, or an UnavailableError when
// the queue is empty.
func (m *Mock) Complete(_ context.Context, req Request) (*Result, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.Calls = append(m.Calls, req)

	if len(m.results) == 0 {
		return nil, &UnavailableError{}
	}

	next := m.results[0]
	m.results = m.results[1:]

	if next.Err != nil {
		return nil, next.Err
	}

	return &Result{
		Content:    next.Content,
		Usage:      next.Usage,
		Model:      "mock",
		StopReason: StopEnd,
	}, nil
}

// Model returns "mock".
func (m *Mock) Model() string {
	return "mock"
}

// Enqueue appends a canned result to the queue.
func (m *Mock) Enqueue(res MockResult) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.results = append(m.results, res)
}

// CallCount returns the number of Complete calls made.
func (m *Mock) CallCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.Calls)
}
