package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/hd220/encephalon/telemetry"
)

var (
	logutilExportDbPath string
	logutilExportOutput string
)

// logutilExportCmd exports the CycleLog table of a telemetry database to CSV.
var logutilExportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export the CycleLog table of a telemetry database to CSV.",
	Long: `Reads the SQLite database at --dbPath and writes its CycleLog
table as CSV to --output, or to stdout if --output is not given.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		fmt.Printf("exporting CycleLog from %s\n", logutilExportDbPath)
		if logutilExportOutput != "" {
			fmt.Printf("writing to %s\n", logutilExportOutput)
		} else {
			fmt.Println("writing to stdout")
		}

		if err := telemetry.ExportCSV(logutilExportDbPath, logutilExportOutput); err != nil {
			return fmt.Errorf("export failed: %w", err)
		}
		fmt.Println("export completed successfully")
		return nil
	},
}

func init() {
	logutilCmd.AddCommand(logutilExportCmd)

	logutilExportCmd.Flags().StringVarP(&logutilExportDbPath, "dbPath", "d", "", "Path to the SQLite telemetry database (required).")
	_ = logutilExportCmd.MarkFlagRequired("dbPath")

	logutilExportCmd.Flags().StringVarP(&logutilExportOutput, "output", "o", "", "Output CSV file (stdout if not specified).")
}
