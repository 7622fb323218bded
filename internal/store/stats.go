package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/omerk/quizforge/internal/topicstats"
)

// StatsRepo persists per-topic answer counters.
type StatsRepo struct {
	db *sql.DB
}

// RecordAnswer bumps the counters for one answered question.
func (r *StatsRepo) RecordAnswer(ctx context.Context, topic string, correct bool) error {
	inc := 0
	if correct {
		inc = 1
	}

	_, err := r.db.ExecContext(ctx, `
		INSERT INTO topic_stats (topic, total_answered, correct_count, incorrect_count, updated_at)
		VALUES (?, 1, ?, ?, CURRENT_TIMESTAMP)
		ON CONFLICT (topic) DO UPDATE SET
			total_answered  = total_answered + 1,
			correct_count   = correct_count + excluded.correct_count,
			incorrect_count = incorrect_count + excluded.incorrect_count,
			updated_at      = CURRENT_TIMESTAMP`,
		topic, inc, 1-inc)
	if err != nil {
		return fmt.Errorf("record answer: %w", err)
	}
	return nil
}

// Load returns all stored topic counters keyed by topic.
func (r *StatsRepo) Load(ctx context.Context) (map[string]topicstats.TopicStat, error) {
	rows, err := r.db.QueryContext(ctx,
		"SELECT topic, total_answered, correct_count, incorrect_count FROM topic_stats")
	if err != nil {
		return nil, fmt.Errorf("query topic stats: %w", err)
	}
	defer rows.Close()

	out := make(map[string]topicstats.TopicStat)
	for rows.Next() {
		var s topicstats.TopicStat
		if err := rows.Scan(&s.Topic, &s.TotalAnswered, &s.CorrectCount, &s.IncorrectCount); err != nil {
			return nil, fmt.Errorf("scan topic stat: %w", err)
		}
		out[s.Topic] = s
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate topic stats: %w", err)
	}
	return out, nil
}

// Reset clears all counters.
func (r *StatsRepo) Reset(ctx context.Context) error {
	if _, err := r.db.ExecContext(ctx, "DELETE FROM topic_stats"); err != nil {
		return fmt.Errorf("reset topic stats: %w", err)
	}
	return nil
}
