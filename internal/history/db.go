// Package history records run and per-site check outcomes in a sqlite
// database, providing a queryable audit trail alongside the text logs.
package history

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/rs/zerolog"
	_ "modernc.org/sqlite"

	"github.com/robotswatch/robotswatch/internal/models"
)

// DB wraps the SQL database connection holding run and check history.
type DB struct {
	db     *sql.DB
	logger zerolog.Logger
}

// RunEntry represents a record in the run_history table.
type RunEntry struct {
	ID         int64
	RunID      string
	StartedAt  time.Time
	FinishedAt sql.NullTime
	TotalSites int
	FirstRun   int
	NoChange   int
	Changed    int
	Errored    int
}

// NewDB opens the history database at the given path and ensures the schema
// exists.
func NewDB(dataSourceName string, logger zerolog.Logger) (*DB, error) {
	dbLogger := logger.With().Str("component", "HistoryDB").Logger()

	if err := os.MkdirAll(filepath.Dir(dataSourceName), 0755); err != nil {
		return nil, fmt.Errorf("failed to create history database directory: %w", err)
	}

	dbInstance, err := sql.Open("sqlite", dataSourceName)
	if err != nil {
		return nil, fmt.Errorf("sql.Open failed for %s: %w", dataSourceName, err)
	}

	db := &DB{db: dbInstance, logger: dbLogger}
	if err := db.initSchema(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to initialize history schema: %w", err)
	}

	dbLogger.Debug().Str("path", dataSourceName).Msg("History database ready")
	return db, nil
}

// Close closes the database connection.
func (d *DB) Close() error {
	if d.db != nil {
		return d.db.Close()
	}
	return nil
}

func (d *DB) initSchema() error {
	query := `
	CREATE TABLE IF NOT EXISTS run_history (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		run_id TEXT UNIQUE NOT NULL,
		started_at DATETIME NOT NULL,
		finished_at DATETIME,
		total_sites INTEGER NOT NULL,
		first_run INTEGER DEFAULT 0,
		no_change INTEGER DEFAULT 0,
		changed INTEGER DEFAULT 0,
		errored INTEGER DEFAULT 0
	);
	CREATE TABLE IF NOT EXISTS check_history (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		run_id TEXT NOT NULL,
		site_name TEXT NOT NULL,
		site_url TEXT NOT NULL,
		classification TEXT NOT NULL,
		error_detail TEXT,
		checked_at DATETIME NOT NULL
	);
	CREATE INDEX IF NOT EXISTS idx_check_history_site ON check_history(site_name, checked_at);
	`
	_, err := d.db.Exec(query)
	return err
}

// RecordRunStart inserts a new run_history row and returns its ID.
func (d *DB) RecordRunStart(runID string, totalSites int, startedAt time.Time) (int64, error) {
	result, err := d.db.Exec(
		`INSERT INTO run_history (run_id, started_at, total_sites) VALUES (?, ?, ?)`,
		runID, startedAt, totalSites)
	if err != nil {
		return 0, fmt.Errorf("failed to insert run start record: %w", err)
	}
	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("failed to get last insert ID: %w", err)
	}
	d.logger.Debug().Int64("db_id", id).Str("run_id", runID).Msg("Recorded run start")
	return id, nil
}

// RecordCheck inserts one site's outcome into check_history.
func (d *DB) RecordCheck(runID string, outcome models.CheckOutcome) error {
	_, err := d.db.Exec(
		`INSERT INTO check_history (run_id, site_name, site_url, classification, error_detail, checked_at)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		runID,
		outcome.Site.Name,
		outcome.Site.URL,
		outcome.Classification.String(),
		sql.NullString{String: outcome.ErrorDetail, Valid: outcome.ErrorDetail != ""},
		outcome.Timestamp)
	if err != nil {
		return fmt.Errorf("failed to insert check record for '%s': %w", outcome.Site.Name, err)
	}
	return nil
}

// RecordRunCompletion updates a run_history row with the final counts.
func (d *DB) RecordRunCompletion(dbRunID int64, summary *models.RunSummary) error {
	_, err := d.db.Exec(
		`UPDATE run_history SET finished_at = ?, first_run = ?, no_change = ?, changed = ?, errored = ? WHERE id = ?`,
		summary.FinishedAt, summary.FirstRun, summary.NoChange, summary.Changed, summary.Errored, dbRunID)
	if err != nil {
		return fmt.Errorf("failed to update run completion for ID %d: %w", dbRunID, err)
	}
	d.logger.Debug().Int64("db_id", dbRunID).Msg("Recorded run completion")
	return nil
}

// GetRun retrieves one run_history row by run ID.
func (d *DB) GetRun(runID string) (*RunEntry, error) {
	row := d.db.QueryRow(
		`SELECT id, run_id, started_at, finished_at, total_sites, first_run, no_change, changed, errored
		 FROM run_history WHERE run_id = ?`, runID)

	var entry RunEntry
	err := row.Scan(&entry.ID, &entry.RunID, &entry.StartedAt, &entry.FinishedAt,
		&entry.TotalSites, &entry.FirstRun, &entry.NoChange, &entry.Changed, &entry.Errored)
	if err != nil {
		return nil, fmt.Errorf("failed to query run '%s': %w", runID, err)
	}
	return &entry, nil
}

// CountChecks returns how many check rows were recorded for a run.
func (d *DB) CountChecks(runID string) (int, error) {
	var count int
	err := d.db.QueryRow(`SELECT COUNT(*) FROM check_history WHERE run_id = ?`, runID).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count checks for run '%s': %w", runID, err)
	}
	return count, nil
}
