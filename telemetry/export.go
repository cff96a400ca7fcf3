package telemetry

import (
	"database/sql"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"

	_ "github.com/mattn/go-sqlite3"
)

// ExportCSV connects to the SQLite database at dbPath (read-only) and writes
// the CycleLog table as CSV to outputPath, or to stdout if outputPath is
// empty.
func ExportCSV(dbPath, outputPath string) error {
	db, err := sql.Open("sqlite3", dbPath+"?mode=ro")
	if err != nil {
		return fmt.Errorf("telemetry: failed to open SQLite database at %s: %w", dbPath, err)
	}
	defer db.Close()

	if err := db.Ping(); err != nil {
		return fmt.Errorf("telemetry: failed to ping SQLite database at %s: %w", dbPath, err)
	}

	var out io.Writer = os.Stdout
	if outputPath != "" {
		file, err := os.Create(outputPath)
		if err != nil {
			return fmt.Errorf("telemetry: failed to create output file %s: %w", outputPath, err)
		}
		defer file.Close()
		out = file
	}

	writer := csv.NewWriter(out)
	defer writer.Flush()

	return exportCycleLog(db, writer)
}

func exportCycleLog(db *sql.DB, writer *csv.Writer) error {
	headers := []string{"LogID", "Cycle", "NeuronHash", "Ema", "Fired"}
	if err := writer.Write(headers); err != nil {
		return fmt.Errorf("telemetry: failed to write CSV headers: %w", err)
	}

	rows, err := db.Query("SELECT LogID, Cycle, NeuronHash, Ema, Fired FROM CycleLog ORDER BY LogID")
	if err != nil {
		return fmt.Errorf("telemetry: failed to query CycleLog: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var logID, cycle, fired int64
		var neuronHash string
		var ema float64
		if err := rows.Scan(&logID, &cycle, &neuronHash, &ema, &fired); err != nil {
			return fmt.Errorf("telemetry: failed to scan row from CycleLog: %w", err)
		}
		record := []string{
			strconv.FormatInt(logID, 10),
			strconv.FormatInt(cycle, 10),
			neuronHash,
			strconv.FormatFloat(ema, 'f', -1, 64),
			strconv.FormatInt(fired, 10),
		}
		if err := writer.Write(record); err != nil {
			return fmt.Errorf("telemetry: failed to write CSV record: %w", err)
		}
	}
	return rows.Err()
}
