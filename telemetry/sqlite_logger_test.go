package telemetry_test

import (
	"database/sql"
	"fmt"
	"testing"

	_ "github.com/mattn/go-sqlite3"

	"github.com/hd220/encephalon/common"
	"github.com/hd220/encephalon/encephalon"
	"github.com/hd220/encephalon/telemetry"
)

func tableExistsAndHasColumns(db *sql.DB, tableName string, expectedCols []string) (bool, error) {
	rows, err := db.Query(fmt.Sprintf("PRAGMA table_info(%s);", tableName))
	if err != nil {
		return false, fmt.Errorf("failed to query table_info for %s: %w", tableName, err)
	}
	defer rows.Close()

	found := make(map[string]bool)
	for rows.Next() {
		var cid, notnull, pk int
		var name, typeStr string
		var dflt sql.NullString
		if err := rows.Scan(&cid, &name, &typeStr, &notnull, &dflt, &pk); err != nil {
			return false, fmt.Errorf("failed to scan table_info row for %s: %w", tableName, err)
		}
		found[name] = true
	}
	if err := rows.Err(); err != nil {
		return false, err
	}
	if len(found) == 0 {
		return false, nil
	}
	for _, col := range expectedCols {
		if !found[col] {
			return false, fmt.Errorf("expected column %q not found in table %q", col, tableName)
		}
	}
	return true, nil
}

func TestNewSQLiteLoggerCreatesSchema(t *testing.T) {
	logger, err := telemetry.NewSQLiteLogger(":memory:")
	if err != nil {
		t.Fatalf("NewSQLiteLogger(:memory:) failed: %v", err)
	}
	defer logger.Close()

	exists, err := tableExistsAndHasColumns(logger.DBForTest(), "CycleLog", []string{"LogID", "Cycle", "NeuronHash", "Ema", "Fired"})
	if err != nil {
		t.Fatalf("error checking CycleLog table: %v", err)
	}
	if !exists {
		t.Fatal("CycleLog table was not created with the expected columns")
	}
}

func TestLogCycleInsertsOneRowPerSnapshot(t *testing.T) {
	logger, err := telemetry.NewSQLiteLogger(":memory:")
	if err != nil {
		t.Fatalf("NewSQLiteLogger(:memory:) failed: %v", err)
	}
	defer logger.Close()

	snapshots := []encephalon.NeuronSnapshot{
		{Position: "0,0,0", EMA: 0.25, Fired: true},
		{Position: "1,0,0", EMA: 0.0, Fired: false},
	}
	if err := logger.LogCycle(common.CycleCount(7), snapshots); err != nil {
		t.Fatalf("LogCycle failed: %v", err)
	}

	var count int
	if err := logger.DBForTest().QueryRow("SELECT COUNT(*) FROM CycleLog WHERE Cycle = ?", 7).Scan(&count); err != nil {
		t.Fatalf("failed to count rows: %v", err)
	}
	if count != 2 {
		t.Fatalf("expected 2 rows logged for cycle 7, got %d", count)
	}

	var ema float64
	var fired int
	if err := logger.DBForTest().QueryRow(
		"SELECT Ema, Fired FROM CycleLog WHERE NeuronHash = ?", "0,0,0",
	).Scan(&ema, &fired); err != nil {
		t.Fatalf("failed to read back row: %v", err)
	}
	if ema != 0.25 || fired != 1 {
		t.Fatalf("expected (ema=0.25, fired=1), got (ema=%f, fired=%d)", ema, fired)
	}
}
