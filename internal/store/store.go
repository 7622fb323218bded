package store

import (
	"fmt"
	"os"
	"path/filepath"

	"database/sql"

	// Pure Go SQLite driver (no CGO).
	_ "modernc.org/sqlite"
)

// Store wraps the SQLite connection and provides access to repositories.
type Store struct {
	db *sql.DB
}

// Open creates a new Store connected to the SQLite database at dsn.
// It applies recommended pragmas and runs migrations.
func Open(dsn string) (*Store, error) {
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	if err := applyPragmas(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("apply pragmas: %w", err)
	}

	if err := migrate(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}

	return &Store{db: db}, nil
}

// DB returns the underlying *sql.DB for raw queries.
func (s *Store) DB() *sql.DB {
	return s.db
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// Questions returns the question repository backed by this store.
func (s *Store) Questions() *QuestionRepo {
	return &QuestionRepo{db: s.db}
}

// Stats returns the per-topic answer stats repository.
func (s *Store) Stats() *StatsRepo {
	return &StatsRepo{db: s.db}
}

// History returns the delivered-question history repository.
func (s *Store) History() *HistoryRepo {
	return &HistoryRepo{db: s.db}
}

// CallLog returns the LLM call accounting sink.
func (s *Store) CallLog() *CallLog {
	return &CallLog{db: s.db}
}

// applyPragmas configures SQLite for single-user performance.
func applyPragmas(db *sql.DB) error {
	pragmas := []string{
		"PRAGMA journal_mode = WAL",
		"PRAGMA busy_timeout = 5000",
		"PRAGMA foreign_keys = ON",
		"PRAGMA synchronous = NORMAL",
	}
	for _, p := range pragmas {
		if _, err := db.Exec(p); err != nil {
			return fmt.Errorf("%s: %w", p, err)
		}
	}
	return nil
}

func migrate(db *sql.DB) error {
	schema := []string{
		`CREATE TABLE IF NOT EXISTS questions (
			id           TEXT PRIMARY KEY,
			doc_id       TEXT NOT NULL DEFAULT '',
			topic        TEXT NOT NULL DEFAULT '',
			stem         TEXT NOT NULL,
			options      TEXT NOT NULL,
			correct      INTEGER NOT NULL,
			explanation  TEXT NOT NULL DEFAULT '',
			source_ref   TEXT NOT NULL DEFAULT '',
			created_at   TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
		)`,
		`CREATE INDEX IF NOT EXISTS idx_questions_doc_topic ON questions (doc_id, topic)`,
		`CREATE UNIQUE INDEX IF NOT EXISTS idx_questions_doc_stem ON questions (doc_id, stem)`,
		`CREATE TABLE IF NOT EXISTS question_history (
			position    INTEGER PRIMARY KEY AUTOINCREMENT,
			fingerprint TEXT NOT NULL UNIQUE
		)`,
		`CREATE TABLE IF NOT EXISTS topic_stats (
			topic           TEXT PRIMARY KEY,
			total_answered  INTEGER NOT NULL DEFAULT 0,
			correct_count   INTEGER NOT NULL DEFAULT 0,
			incorrect_count INTEGER NOT NULL DEFAULT 0,
			updated_at      TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
		)`,
		`CREATE TABLE IF NOT EXISTS llm_calls (
			id            INTEGER PRIMARY KEY AUTOINCREMENT,
			provider      TEXT NOT NULL,
			model         TEXT NOT NULL,
			purpose       TEXT NOT NULL DEFAULT '',
			input_tokens  INTEGER NOT NULL DEFAULT 0,
			output_tokens INTEGER NOT NULL DEFAULT 0,
			latency_ms    INTEGER NOT NULL DEFAULT 0,
			success       INTEGER NOT NULL DEFAULT 1,
			error_message TEXT NOT NULL DEFAULT '',
			created_at    TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
		)`,
	}
	for _, stmt := range schema {
		if _, err := db.Exec(stmt); err != nil {
			return fmt.Errorf("exec schema: %w", err)
		}
	}
	return nil
}

// DefaultDBPath resolves the database file path in priority order:
// 1. QUIZFORGE_DB environment variable
// 2. $XDG_DATA_HOME/quizforge/quizforge.db
// 3. ~/.local/share/quizforge/quizforge.db
func DefaultDBPath() (string, error) {
	if p := os.Getenv("QUIZFORGE_DB"); p != "" {
		return p, EnsureDir(p)
	}

	dataHome := os.Getenv("XDG_DATA_HOME")
	if dataHome == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home dir: %w", err)
		}
		dataHome = filepath.Join(home, ".local", "share")
	}

	p := filepath.Join(dataHome, "quizforge", "quizforge.db")
	return p, EnsureDir(p)
}

// EnsureDir creates the parent directory of path if it doesn't exist.
func EnsureDir(path string) error {
	dir := filepath.Dir(path)
	return os.MkdirAll(dir, 0o755)
}
