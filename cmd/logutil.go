package cmd

import (
	"github.com/spf13/cobra"
)

// logutilCmd groups subcommands for working with the SQLite telemetry logs
// a run produces.
var logutilCmd = &cobra.Command{
	Use:   "logutil",
	Short: "Utilities for working with encephalon telemetry logs.",
	Long: `The logutil command provides subcommands for processing and
exporting data from the SQLite telemetry databases created during runs.`,
}

func init() {
	rootCmd.AddCommand(logutilCmd)
}
