package cmd

import (
	"fmt"
	"log"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/spf13/cobra"

	"github.com/hd220/encephalon/cli"
	"github.com/hd220/encephalon/config"
)

var (
	runSeed     int64
	runCycles   int
	runDbPath   string
	runLogEvery int
)

// runCmd builds and drives an encephalon for a fixed number of cycles.
var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Build an encephalon and run it for a number of cycles.",
	Long: `Builds an encephalon from the default parameters, optionally
overridden by a TOML configuration file and then by explicit flags, and
runs it for the configured number of cycles, logging telemetry to SQLite
if a database path and a positive logEvery are configured.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		appCfg := &config.AppConfig{
			Encephalon: config.DefaultEncephalonParams(),
			Cli: config.CLIConfig{
				Seed:     runSeed,
				Cycles:   runCycles,
				DbPath:   runDbPath,
				LogEvery: runLogEvery,
			},
		}

		if configFile != "" {
			fmt.Printf("loading configuration from %s\n", configFile)
			cliBeforeToml := appCfg.Cli
			if _, err := toml.DecodeFile(configFile, appCfg); err != nil {
				log.Printf("warning: failed to decode TOML file %q: %v, continuing with defaults/flags", configFile, err)
				appCfg.Cli = cliBeforeToml
			}
		}

		if cmd.Flags().Changed("seed") {
			appCfg.Cli.Seed = runSeed
		}
		if cmd.Flags().Changed("cycles") {
			appCfg.Cli.Cycles = runCycles
		}
		if cmd.Flags().Changed("dbPath") {
			appCfg.Cli.DbPath = runDbPath
		}
		if cmd.Flags().Changed("logEvery") {
			appCfg.Cli.LogEvery = runLogEvery
		}
		if appCfg.Cli.Seed == 0 {
			appCfg.Cli.Seed = time.Now().UnixNano()
		}

		if err := appCfg.Validate(); err != nil {
			return fmt.Errorf("invalid configuration: %w", err)
		}

		orchestrator := cli.NewOrchestrator(appCfg)
		if err := orchestrator.Run(); err != nil {
			return fmt.Errorf("run failed: %w", err)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(runCmd)

	defaults := config.DefaultCLIConfig()
	runCmd.Flags().Int64Var(&runSeed, "seed", defaults.Seed, "Seed for the sprouting RNG (0 uses the current time).")
	runCmd.Flags().IntVarP(&runCycles, "cycles", "c", defaults.Cycles, "Number of cycles to run.")
	runCmd.Flags().StringVarP(&runDbPath, "dbPath", "d", defaults.DbPath, "Path for the SQLite telemetry database file.")
	runCmd.Flags().IntVar(&runLogEvery, "logEvery", defaults.LogEvery, "Log a telemetry row every N cycles (0 disables telemetry).")
}
