package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/omerk/quizforge/internal/quiz"
)

// QuestionRepo provides access to the curated question bank.
type QuestionRepo struct {
	db *sql.DB
}

// Insert stores one question under a document scope. Options are
// serialized as a JSON array.
func (r *QuestionRepo) Insert(ctx context.Context, docID string, c quiz.Candidate) error {
	opts, err := json.Marshal(c.Options)
	if err != nil {
		return fmt.Errorf("marshal options: %w", err)
	}

	_, err = r.db.ExecContext(ctx, `
		INSERT INTO questions (id, doc_id, topic, stem, options, correct, explanation, source_ref)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		c.ID, docID, c.Topic, c.Text, string(opts), c.Correct, c.Explanation, c.SourceRef)
	if err != nil {
		return fmt.Errorf("insert question: %w", err)
	}
	return nil
}

// FetchRandom returns up to count random questions, optionally scoped to
// a document and a topic set. Fewer rows than asked is not an error.
func (r *QuestionRepo) FetchRandom(ctx context.Context, docID string, topics []string, count int) ([]quiz.Candidate, error) {
	if count <= 0 {
		return nil, nil
	}

	var (
		conds []string
		args  []any
	)
	if docID != "" {
		conds = append(conds, "doc_id = ?")
		args = append(args, docID)
	}
	if len(topics) > 0 {
		placeholders := strings.Repeat("?,", len(topics))
		conds = append(conds, "topic IN ("+placeholders[:len(placeholders)-1]+")")
		for _, t := range topics {
			args = append(args, t)
		}
	}

	query := "SELECT id, topic, stem, options, correct, explanation, source_ref FROM questions"
	if len(conds) > 0 {
		query += " WHERE " + strings.Join(conds, " AND ")
	}
	query += " ORDER BY RANDOM() LIMIT ?"
	args = append(args, count)

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query questions: %w", err)
	}
	defer rows.Close()

	var out []quiz.Candidate
	for rows.Next() {
		var (
			c       quiz.Candidate
			rawOpts string
		)
		if err := rows.Scan(&c.ID, &c.Topic, &c.Text, &rawOpts, &c.Correct, &c.Explanation, &c.SourceRef); err != nil {
			return nil, fmt.Errorf("scan question: %w", err)
		}
		if err := json.Unmarshal([]byte(rawOpts), &c.Options); err != nil {
			return nil, fmt.Errorf("decode options for %s: %w", c.ID, err)
		}
		c.Origin = quiz.OriginStore
		out = append(out, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate questions: %w", err)
	}
	return out, nil
}

// SaveGenerated persists the generated questions of a finished session so
// later sessions can serve them from the bank instead of paying for a new
// generation call. Store-origin candidates are skipped (already present)
// and a question whose stem is already banked for the document is ignored
// rather than duplicated. Returns the number of rows actually added.
func (r *QuestionRepo) SaveGenerated(ctx context.Context, docID string, cs []quiz.Candidate) (int, error) {
	saved := 0
	for _, c := range cs {
		if c.Origin != quiz.OriginGenerated {
			continue
		}
		opts, err := json.Marshal(c.Options)
		if err != nil {
			return saved, fmt.Errorf("marshal options: %w", err)
		}
		res, err := r.db.ExecContext(ctx, `
			INSERT OR IGNORE INTO questions (id, doc_id, topic, stem, options, correct, explanation, source_ref)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
			c.ID, docID, c.Topic, c.Text, string(opts), c.Correct, c.Explanation, c.SourceRef)
		if err != nil {
			return saved, fmt.Errorf("save generated question: %w", err)
		}
		if n, err := res.RowsAffected(); err == nil {
			saved += int(n)
		}
	}
	return saved, nil
}

// Count returns the number of stored questions for a document, or all
// questions when docID is empty.
func (r *QuestionRepo) Count(ctx context.Context, docID string) (int, error) {
	query := "SELECT COUNT(*) FROM questions"
	var args []any
	if docID != "" {
		query += " WHERE doc_id = ?"
		args = append(args, docID)
	}

	var n int
	if err := r.db.QueryRowContext(ctx, query, args...).Scan(&n); err != nil {
		return 0, fmt.Errorf("count questions: %w", err)
	}
	return n, nil
}
