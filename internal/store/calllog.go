package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/omerk/quizforge/internal/llm"
)

// CallLog persists LLM call accounting. It implements llm.CallSink.
type CallLog struct {
	db *sql.DB
}

var _ llm.CallSink = (*CallLog)(nil)

func (l *CallLog) RecordCall(ctx context.Context, rec llm.CallRecord) error {
	_, err := l.db.ExecContext(ctx, `
		INSERT INTO llm_calls (provider, model, purpose, input_tokens, output_tokens, latency_ms, success, error_message)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		rec.Provider, rec.Model, rec.Purpose, rec.InputTokens, rec.OutputTokens,
		rec.LatencyMs, rec.Success, rec.ErrorMessage)
	if err != nil {
		return fmt.Errorf("save call record: %w", err)
	}
	return nil
}

// Totals aggregates token usage across all recorded calls.
func (l *CallLog) Totals(ctx context.Context) (calls, inputTokens, outputTokens int, err error) {
	err = l.db.QueryRowContext(ctx, `
		SELECT COUNT(*), COALESCE(SUM(input_tokens), 0), COALESCE(SUM(output_tokens), 0)
		FROM llm_calls`).Scan(&calls, &inputTokens, &outputTokens)
	if err != nil {
		return 0, 0, 0, fmt.Errorf("aggregate call log: %w", err)
	}
	return calls, inputTokens, outputTokens, nil
}
