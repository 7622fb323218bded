package cmd

import (
	"fmt"
	"runtime/debug"

	"github.com/spf13/cobra"
)

// version is set via -ldflags at release time; module builds fall back
// to the version stamped by the Go toolchain.
var version = ""

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the quizforge version",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintln(cmd.OutOrStdout(), "quizforge", resolveVersion())
	},
}

func resolveVersion() string {
	if version != "" {
		return version
	}
	if info, ok := debug.ReadBuildInfo(); ok && info.Main.Version != "" {
		return info.Main.Version
	}
	return "(devel)"
}
