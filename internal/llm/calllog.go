package llm

import (
	"context"
	"fmt"
	"os"
	"time"
)

// CallRecord is the accounting entry written for every generative call.
type CallRecord struct {
	Provider     string
	Model        string
	Purpose      string
	InputTokens  int
	OutputTokens int
	LatencyMs    int64
	Success      bool
	ErrorMessage string
}

// CallSink receives call records. Implemented by the store's call log.
type CallSink interface {
	RecordCall(ctx context.Context, rec CallRecord) error
}

// loggedClient is a decorator that records every call as a CallRecord.
type loggedClient struct {
	inner    Client
	provider string
	sink     CallSink
}

// WithCallLog wraps a Client with call accounting.
func WithCallLog(c Client, provider string, sink CallSink) Client {
	return &loggedClient{inner: c, provider: provider, sink: sink}
}

func (l *loggedClient) Complete(ctx context.Context, req Request) (*Result, error) {
	start := time.Now()

	res, err := l.inner.Complete(ctx, req)

	rec := CallRecord{
		Provider:  l.provider,
		Model:     l.inner.Model(),
		Purpose:   PurposeFrom(ctx),
		LatencyMs: time.Since(start).Milliseconds(),
		Success:   err == nil,
	}
	if res != nil {
		rec.InputTokens = res.Usage.InputTokens
		rec.OutputTokens = res.Usage.OutputTokens
		rec.Model = res.Model
	}
	if err != nil {
		rec.ErrorMessage = err.Error()
	}

	// Accounting must never fail the call itself.
	if logErr := l.sink.RecordCall(ctx, rec); logErr != nil {
		fmt.Fprintf(os.Stderr, "warning: failed to record LLM call: %v\n", logErr)
	}

	return res, err
}

func (l *loggedClient) Model() string {
	return l.inner.Model()
}
