package store

import (
	"context"
	"database/sql"
	"fmt"
)

// HistoryRepo persists the recent-question window between runs, so a
// question delivered by one invocation stays suppressed in the next.
type HistoryRepo struct {
	db *sql.DB
}

// Load returns the stored fingerprints, most recent first, capped at
// limit. A limit of zero or less means no cap.
func (r *HistoryRepo) Load(ctx context.Context, limit int) ([]string, error) {
	query := "SELECT fingerprint FROM question_history ORDER BY position DESC"
	var args []any
	if limit > 0 {
		query += " LIMIT ?"
		args = append(args, limit)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query question history: %w", err)
	}
	defer rows.Close()

	var out []string
	for rows.Next() {
		var fp string
		if err := rows.Scan(&fp); err != nil {
			return nil, fmt.Errorf("scan fingerprint: %w", err)
		}
		out = append(out, fp)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate question history: %w", err)
	}
	return out, nil
}

// Replace overwrites the stored history with the given snapshot, expected
// most recent first. The whole swap runs in one transaction.
func (r *HistoryRepo) Replace(ctx context.Context, fingerprints []string) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin history swap: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, "DELETE FROM question_history"); err != nil {
		return fmt.Errorf("clear question history: %w", err)
	}

	// Insert oldest first so the autoincrement position preserves
	// recency order.
	for i := len(fingerprints) - 1; i >= 0; i-- {
		if _, err := tx.ExecContext(ctx,
			"INSERT OR IGNORE INTO question_history (fingerprint) VALUES (?)",
			fingerprints[i]); err != nil {
			return fmt.Errorf("insert fingerprint: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit history swap: %w", err)
	}
	return nil
}

// Clear drops all stored fingerprints.
func (r *HistoryRepo) Clear(ctx context.Context) error {
	if _, err := r.db.ExecContext(ctx, "DELETE FROM question_history"); err != nil {
		return fmt.Errorf("clear question history: %w", err)
	}
	return nil
}
