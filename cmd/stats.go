package cmd

import (
	"fmt"
	"sort"

	"github.com/spf13/cobra"

	"github.com/omerk/quizforge/internal/store"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show per-topic answer statistics",
	RunE: func(cmd *cobra.Command, args []string) error {
		dbPath, err := resolveDBPath(cmd)
		if err != nil {
			return fmt.Errorf("resolve DB path: %w", err)
		}
		st, err := store.Open(dbPath)
		if err != nil {
			return fmt.Errorf("open store: %w", err)
		}
		defer st.Close()

		ctx := cmd.Context()
		stats, err := st.Stats().Load(ctx)
		if err != nil {
			return fmt.Errorf("load topic stats: %w", err)
		}
		if len(stats) == 0 {
			fmt.Fprintln(cmd.OutOrStdout(), "No answers recorded yet.")
			return nil
		}

		topics := make([]string, 0, len(stats))
		for t := range stats {
			topics = append(topics, t)
		}
		sort.Strings(topics)

		w := cmd.OutOrStdout()
		fmt.Fprintf(w, "%-30s %8s %8s %8s\n", "TOPIC", "ANSWERED", "CORRECT", "ACCURACY")
		for _, t := range topics {
			s := stats[t]
			fmt.Fprintf(w, "%-30s %8d %8d %7.0f%%\n", s.Topic, s.TotalAnswered, s.CorrectCount, s.Accuracy()*100)
		}

		banked, err := st.Questions().Count(ctx, "")
		if err != nil {
			return fmt.Errorf("count question bank: %w", err)
		}
		calls, in, out, err := st.CallLog().Totals(ctx)
		if err != nil {
			return fmt.Errorf("aggregate call log: %w", err)
		}
		fmt.Fprintf(w, "\nQuestion bank: %d questions\n", banked)
		fmt.Fprintf(w, "LLM calls: %d (%d input / %d output tokens)\n", calls, in, out)
		return nil
	},
}
