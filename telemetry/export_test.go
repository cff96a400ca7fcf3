package telemetry_test

import (
	"bufio"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/hd220/encephalon/common"
	"github.com/hd220/encephalon/encephalon"
	"github.com/hd220/encephalon/telemetry"
)

func TestExportCSVWritesHeaderAndRows(t *testing.T) {
	dir := t.TempDir()
	dbPath := filepath.Join(dir, "run.db")
	csvPath := filepath.Join(dir, "run.csv")

	logger, err := telemetry.NewSQLiteLogger(dbPath)
	if err != nil {
		t.Fatalf("NewSQLiteLogger failed: %v", err)
	}
	if err := logger.LogCycle(common.CycleCount(1), []encephalon.NeuronSnapshot{
		{Position: "0,0,0", EMA: 0.1, Fired: false},
	}); err != nil {
		t.Fatalf("LogCycle failed: %v", err)
	}
	if err := logger.LogCycle(common.CycleCount(2), []encephalon.NeuronSnapshot{
		{Position: "0,0,0", EMA: 0.2, Fired: true},
		{Position: "1,0,0", EMA: 0.3, Fired: true},
	}); err != nil {
		t.Fatalf("LogCycle failed: %v", err)
	}
	if err := logger.Close(); err != nil {
		t.Fatalf("Close failed: %v", err)
	}

	if err := telemetry.ExportCSV(dbPath, csvPath); err != nil {
		t.Fatalf("ExportCSV failed: %v", err)
	}

	file, err := os.Open(csvPath)
	if err != nil {
		t.Fatalf("failed to open exported CSV: %v", err)
	}
	defer file.Close()

	var lines []string
	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		lines = append(lines, scanner.Text())
	}
	if err := scanner.Err(); err != nil {
		t.Fatalf("failed to read exported CSV: %v", err)
	}

	if len(lines) != 4 {
		t.Fatalf("expected header + 3 data rows, got %d lines: %v", len(lines), lines)
	}
	wantHeader := "LogID,Cycle,NeuronHash,Ema,Fired"
	if lines[0] != wantHeader {
		t.Fatalf("expected header %q, got %q", wantHeader, lines[0])
	}
	if !strings.HasSuffix(lines[1], ",0.1,0") {
		t.Fatalf("expected first data row to end with ema=0.1 fired=0, got %q", lines[1])
	}
	if !strings.HasSuffix(lines[3], ",0.3,1") {
		t.Fatalf("expected third data row to end with ema=0.3 fired=1, got %q", lines[3])
	}
}

func TestExportCSVWritesToStdoutWhenOutputPathEmpty(t *testing.T) {
	dir := t.TempDir()
	dbPath := filepath.Join(dir, "run.db")

	logger, err := telemetry.NewSQLiteLogger(dbPath)
	if err != nil {
		t.Fatalf("NewSQLiteLogger failed: %v", err)
	}
	if err := logger.LogCycle(common.CycleCount(1), []encephalon.NeuronSnapshot{
		{Position: "0,0,0", EMA: 0.5, Fired: true},
	}); err != nil {
		t.Fatalf("LogCycle failed: %v", err)
	}
	if err := logger.Close(); err != nil {
		t.Fatalf("Close failed: %v", err)
	}

	if err := telemetry.ExportCSV(dbPath, ""); err != nil {
		t.Fatalf("ExportCSV to stdout failed: %v", err)
	}
}
