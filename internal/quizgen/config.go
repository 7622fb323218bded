package quizgen

import "time"

// Config controls scheduler behavior.
type Config struct {
	// BatchSize is the number of questions requested per batch round trip.
	BatchSize int

	// CallTimeout bounds each source call. A timeout is treated the same
	// as a batch failure: skipped, non-fatal.
	CallTimeout time.Duration

	// ReplacementRounds caps how many extra requests a batch may issue to
	// cover candidates the deduplicator rejected. The scheduler never
	// loops indefinitely chasing the exact target.
	ReplacementRounds int

	// Logf receives batch-level diagnostics. Nil logs to stderr.
	Logf func(format string, args ...any)
}

// DefaultConfig returns the standard scheduler configuration.
func DefaultConfig() Config {
	return Config{
		BatchSize:         5,
		CallTimeout:       60 * time.Second,
		ReplacementRounds: 1,
	}
}
