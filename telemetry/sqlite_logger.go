// Package telemetry logs per-cycle neuron observability data to a SQLite
// database. This is an ambient concern: observability of a running process,
// not encephalon state persistence — there is no way to load an encephalon
// back from what this package writes.
package telemetry

import (
	"database/sql"
	"fmt"
	"os"

	_ "github.com/mattn/go-sqlite3"

	"github.com/hd220/encephalon/common"
	"github.com/hd220/encephalon/encephalon"
)

// Logger records per-cycle neuron snapshots to a SQLite database.
type Logger struct {
	db *sql.DB
}

// NewSQLiteLogger opens (recreating, if it already exists) a SQLite database
// at dataSourceName and prepares its schema.
func NewSQLiteLogger(dataSourceName string) (*Logger, error) {
	_ = os.Remove(dataSourceName)

	db, err := sql.Open("sqlite3", dataSourceName)
	if err != nil {
		return nil, fmt.Errorf("telemetry: failed to open SQLite database at %s: %w", dataSourceName, err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("telemetry: failed to ping SQLite database at %s: %w", dataSourceName, err)
	}

	logger := &Logger{db: db}
	if err := logger.createTables(); err != nil {
		db.Close()
		return nil, fmt.Errorf("telemetry: failed to create tables: %w", err)
	}
	return logger, nil
}

func (l *Logger) createTables() error {
	const schema = `
	CREATE TABLE IF NOT EXISTS CycleLog (
		LogID      INTEGER PRIMARY KEY AUTOINCREMENT,
		Cycle      INTEGER NOT NULL,
		NeuronHash TEXT NOT NULL,
		Ema        REAL NOT NULL,
		Fired      INTEGER NOT NULL
	);`
	if _, err := l.db.Exec(schema); err != nil {
		return fmt.Errorf("failed to create CycleLog table: %w", err)
	}
	return nil
}

// DBForTest returns the underlying database handle, for test use only.
func (l *Logger) DBForTest() *sql.DB {
	return l.db
}

// LogCycle records one row per neuron snapshot for the given cycle.
func (l *Logger) LogCycle(cycle common.CycleCount, snapshots []encephalon.NeuronSnapshot) error {
	if l.db == nil {
		return fmt.Errorf("telemetry: logger not initialized")
	}

	tx, err := l.db.Begin()
	if err != nil {
		return fmt.Errorf("telemetry: failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	stmt, err := tx.Prepare(`INSERT INTO CycleLog (Cycle, NeuronHash, Ema, Fired) VALUES (?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("telemetry: failed to prepare insert: %w", err)
	}
	defer stmt.Close()

	for _, s := range snapshots {
		fired := 0
		if s.Fired {
			fired = 1
		}
		if _, err := stmt.Exec(uint64(cycle), string(s.Position), s.EMA, fired); err != nil {
			return fmt.Errorf("telemetry: failed to insert row for %s: %w", s.Position, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("telemetry: failed to commit transaction: %w", err)
	}
	return nil
}

// Close closes the underlying database connection.
func (l *Logger) Close() error {
	if l.db != nil {
		return l.db.Close()
	}
	return nil
}
