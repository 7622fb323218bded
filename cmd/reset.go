package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/omerk/quizforge/internal/store"
)

var resetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Clear answer statistics and recent-question history",
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
		if err := st.Stats().Reset(ctx); err != nil {
			return err
		}
		if err := st.History().Clear(ctx); err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), "Statistics and question history cleared.")
		return nil
	},
}
