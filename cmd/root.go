// Package cmd implements the encephalon command-line interface: a Cobra
// root command with "run" and "logutil export" subcommands, layering
// configuration as defaults -> TOML file -> explicit CLI flags.
package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var configFile string

// rootCmd is the base command when encephalon is called without any
// subcommands.
var rootCmd = &cobra.Command{
	Use:   "encephalon",
	Short: "encephalon: a spiking neural network simulator",
	Long: `encephalon is a command-line simulator for a lattice of spiking
neurons connected by Hebbian plasticity. Run "encephalon run" to build and
drive an encephalon, or "encephalon logutil export" to pull telemetry out of
a SQLite run log.`,
}

// Execute adds every child command to the root command and runs it. It is
// called exactly once by main.main.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configFile, "configFile", "", "Path to a TOML configuration file overriding defaults.")
}
