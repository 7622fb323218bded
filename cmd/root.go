package cmd

import (
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/omerk/quizforge/internal/store"
)

var rootCmd = &cobra.Command{
	Use:   "quizforge",
	Short: "Adaptive exam-prep quiz generator",
	Long:  "QuizForge generates batches of unique multiple-choice questions from exam material, weighted toward the user's weak topics.",
}

func Execute() error {
	// A .env file is a convenience for local runs; absence is fine.
	_ = godotenv.Load()
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().String("db", "", "Path to SQLite database file (overrides QUIZFORGE_DB env var)")

	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(statsCmd)
	rootCmd.AddCommand(resetCmd)
	rootCmd.AddCommand(versionCmd)
}

// resolveDBPath returns the database path using --db flag (highest priority),
// then QUIZFORGE_DB env var, then the default XDG path.
func resolveDBPath(cmd *cobra.Command) (string, error) {
	if p, _ := cmd.Flags().GetString("db"); p != "" {
		return p, store.EnsureDir(p)
	}
	return store.DefaultDBPath()
}
