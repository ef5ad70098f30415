package database

import (
	"database/sql"
	"fmt"

	"github.com/jgoulah/hvacsim/internal/report"
	"github.com/jgoulah/hvacsim/pkg/models"
	_ "modernc.org/sqlite"
)

// DB wraps the database connection. It holds a single flat table that is
// replaced on every run.
type DB struct {
	conn *sql.DB
}

// New creates a new database connection and initializes the schema
func New(dbPath string) (*DB, error) {
	conn, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	db := &DB{conn: conn}
	if err := db.initSchema(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("initializing schema: %w", err)
	}

	return db, nil
}

// Close closes the database connection
func (db *DB) Close() error {
	return db.conn.Close()
}

// initSchema creates the output table
func (db *DB) initSchema() error {
	// Values are stored as formatted text so the table matches the CSV output exactly
	schema := `
	CREATE TABLE IF NOT EXISTS energy_data (
		hour INTEGER PRIMARY KEY,
		occupancy TEXT NOT NULL,
		temperature TEXT NOT NULL,
		historical TEXT NOT NULL,
		optimized TEXT NOT NULL,
		energy_saved TEXT NOT NULL
	);
	`

	_, err := db.conn.Exec(schema)
	return err
}

// WriteTable replaces the table contents with the rows of run
func (db *DB) WriteTable(run *models.Run) error {
	tx, err := db.conn.Begin()
	if err != nil {
		return fmt.Errorf("starting transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec(`DELETE FROM energy_data`); err != nil {
		return fmt.Errorf("clearing previous run: %w", err)
	}

	query := `
	INSERT INTO energy_data (hour, occupancy, temperature, historical, optimized, energy_saved)
	VALUES (?, ?, ?, ?, ?, ?)
	`
	for _, rec := range run.Records {
		row := report.FormatRow(rec)
		if _, err := tx.Exec(query, rec.Hour, row.Occupancy, row.Temperature, row.Historical, row.Optimized, row.EnergySaved); err != nil {
			return fmt.Errorf("inserting hour %d: %w", rec.Hour, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing run: %w", err)
	}

	return nil
}

// Rows retrieves the stored table, ordered by hour
func (db *DB) Rows() ([]report.Row, error) {
	query := `
	SELECT hour, occupancy, temperature, historical, optimized, energy_saved
	FROM energy_data
	ORDER BY hour ASC
	`

	rows, err := db.conn.Query(query)
	if err != nil {
		return nil, fmt.Errorf("querying energy data: %w", err)
	}
	defer rows.Close()

	var results []report.Row
	for rows.Next() {
		var hour int
		var row report.Row
		if err := rows.Scan(&hour, &row.Occupancy, &row.Temperature, &row.Historical, &row.Optimized, &row.EnergySaved); err != nil {
			return nil, fmt.Errorf("scanning row: %w", err)
		}
		row.Hour = fmt.Sprintf("%d", hour)
		results = append(results, row)
	}

	return results, rows.Err()
}

// Count returns the number of rows currently stored
func (db *DB) Count() (int, error) {
	var n int
	if err := db.conn.QueryRow(`SELECT COUNT(*) FROM energy_data`).Scan(&n); err != nil {
		return 0, fmt.Errorf("counting rows: %w", err)
	}
	return n, nil
}

// Table is a report.TableSink that opens the database for each write
type Table struct {
	Path string
}

// WriteTable implements report.TableSink
func (t *Table) WriteTable(run *models.Run) error {
	db, err := New(t.Path)
	if err != nil {
		return err
	}
	defer db.Close()

	return db.WriteTable(run)
}
