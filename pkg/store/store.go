package store

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/openfleet/fleetlens/pkg/engine"
)

// Open opens (creating if needed) the result database and ensures the
// schema exists.
func Open(path string) (*sql.DB, error) {
	dir := filepath.Dir(path)
	if dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("failed to create db directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open sqlite db: %w", err)
	}

	createSQL := `
	CREATE TABLE IF NOT EXISTS runs (
		id TEXT PRIMARY KEY,
		source_digest TEXT,
		created_at TEXT,
		total_trips INTEGER,
		total_hours REAL,
		fleet_size INTEGER,
		capacity_hours REAL,
		occupancy_rate REAL,
		completion_rate REAL,
		cancellation_rate REAL,
		overlap_rate REAL,
		overlap_count INTEGER,
		rows_unparseable INTEGER,
		identifiers_rejected INTEGER
	);
	CREATE TABLE IF NOT EXISTS bookings (
		run_id TEXT,
		row_id INTEGER,
		plate_raw TEXT,
		plate_norm TEXT,
		start_at TEXT,
		end_at TEXT,
		duration_hours REAL,
		requester TEXT,
		driver TEXT,
		department TEXT,
		company TEXT,
		site TEXT,
		route TEXT,
		scope TEXT,
		session TEXT,
		status TEXT,
		cost REAL,
		distance_km REAL,
		fleet_owned INTEGER
	);
	CREATE TABLE IF NOT EXISTS overlaps (
		run_id TEXT,
		plate_norm TEXT,
		prev_row INTEGER,
		cur_row INTEGER,
		prev_end TEXT,
		cur_start TEXT
	);`

	if _, err := db.Exec(createSQL); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create tables: %w", err)
	}
	return db, nil
}

// SaveRun persists one pipeline result: the run's metric snapshot, the
// cleaned booking table and the overlap list, all in one transaction.
func SaveRun(db *sql.DB, res *engine.Result) error {
	tx, err := db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	_, err = tx.Exec(`INSERT INTO runs(
		id, source_digest, created_at,
		total_trips, total_hours, fleet_size, capacity_hours,
		occupancy_rate, completion_rate, cancellation_rate, overlap_rate, overlap_count,
		rows_unparseable, identifiers_rejected
	) VALUES(?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		res.RunID, res.SourceDigest, time.Now().UTC().Format(time.RFC3339),
		res.Metrics.TotalTrips, res.Metrics.TotalHours, res.Metrics.FleetSize, res.Metrics.CapacityHours,
		res.Metrics.OccupancyRate, res.Metrics.CompletionRate, res.Metrics.CancellationRate,
		res.Metrics.OverlapRate, res.Metrics.OverlapCount,
		res.Quality.RowsUnparseable, res.Quality.IdentifiersRejected,
	)
	if err != nil {
		return fmt.Errorf("failed to insert run: %w", err)
	}

	stmt, err := tx.Prepare(`INSERT INTO bookings(
		run_id, row_id, plate_raw, plate_norm, start_at, end_at, duration_hours,
		requester, driver, department, company, site, route,
		scope, session, status, cost, distance_km, fleet_owned
	) VALUES(?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return err
	}
	defer stmt.Close()

	for _, r := range res.Records {
		startAt, endAt := "", ""
		if r.IntervalParsed {
			startAt = r.StartAt.Format(time.RFC3339)
			endAt = r.EndAt.Format(time.RFC3339)
		}
		if _, err := stmt.Exec(
			res.RunID, r.ID, r.VehicleIDRaw, r.VehicleIDNorm, startAt, endAt, r.DurationHours,
			r.Requester, r.Driver, r.Department, r.Company, r.Site, r.RouteText,
			string(r.Scope), string(r.Session), string(r.Status), r.Cost, r.DistanceKm, r.FleetOwned,
		); err != nil {
			return fmt.Errorf("failed to insert booking row %d: %w", r.ID, err)
		}
	}

	ovStmt, err := tx.Prepare(`INSERT INTO overlaps(
		run_id, plate_norm, prev_row, cur_row, prev_end, cur_start
	) VALUES(?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return err
	}
	defer ovStmt.Close()

	for _, o := range res.Overlaps {
		if _, err := ovStmt.Exec(
			res.RunID, o.VehicleIDNorm, o.Previous.ID, o.Current.ID,
			o.Previous.EndAt.Format(time.RFC3339), o.Current.StartAt.Format(time.RFC3339),
		); err != nil {
			return fmt.Errorf("failed to insert overlap: %w", err)
		}
	}

	return tx.Commit()
}

// LatestRun returns the metric snapshot of the most recent run, for the
// presentation layer's summary view.
func LatestRun(db *sql.DB) (runID string, m engine.Metrics, err error) {
	row := db.QueryRow(`SELECT id, total_trips, total_hours, fleet_size, capacity_hours,
		occupancy_rate, completion_rate, cancellation_rate, overlap_rate, overlap_count
		FROM runs ORDER BY created_at DESC LIMIT 1`)
	err = row.Scan(&runID, &m.TotalTrips, &m.TotalHours, &m.FleetSize, &m.CapacityHours,
		&m.OccupancyRate, &m.CompletionRate, &m.CancellationRate, &m.OverlapRate, &m.OverlapCount)
	return runID, m, err
}
