package storage

import (
	"database/sql"
	"fmt"
	"strings"
	"time"

	_ "github.com/lib/pq"

	"github.com/jaydipmangukiya/Prop-valuer-sub000/models"
)

const batchSize = 50

var requestColumns = []string{
	"id", "property_type", "owner_name", "city", "locality",
	"unit_size", "measurement_unit", "area_type", "age_of_property",
	"carpet_area", "super_built_up_area", "loading", "created_at",
}

var auctionColumns = []string{
	"title", "reserve_price", "location", "measurement_unit", "area_type",
	"carpet_area", "super_built_up_area", "loading", "url", "description",
}

// PostgresWriter persists valuation requests and auction listings to PostgreSQL.
type PostgresWriter struct {
	db *sql.DB
}

// NewPostgresWriter opens a connection to PostgreSQL, runs schema migrations,
// and returns a ready-to-use PostgresWriter.
func NewPostgresWriter(dsn string, pingAttempts int) (*PostgresWriter, error) {
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("postgres: open: %w", err)
	}

	if pingAttempts < 1 {
		pingAttempts = 1
	}
	for i := 0; i < pingAttempts; i++ {
		if err = db.Ping(); err == nil {
			break
		}
		if i < pingAttempts-1 {
			time.Sleep(2 * time.Second)
		}
	}
	if err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("postgres: ping failed after retries: %w", err)
	}

	pw := &PostgresWriter{db: db}
	if err := pw.migrate(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("postgres: migrate: %w", err)
	}

	return pw, nil
}

func (pw *PostgresWriter) migrate() error {
	_, err := pw.db.Exec(`
		CREATE TABLE IF NOT EXISTS valuation_requests (
			id                  TEXT          PRIMARY KEY,
			property_type       VARCHAR(20)   NOT NULL,
			owner_name          TEXT          NOT NULL DEFAULT '',
			city                TEXT          NOT NULL DEFAULT '',
			locality            TEXT          NOT NULL DEFAULT '',
			unit_size           NUMERIC(14,4) NOT NULL,
			measurement_unit    VARCHAR(20)   NOT NULL,
			area_type           VARCHAR(20)   NOT NULL,
			age_of_property     NUMERIC(6,2)  NOT NULL DEFAULT 0,
			carpet_area         NUMERIC(14,0) NOT NULL,
			super_built_up_area NUMERIC(14,0) NOT NULL,
			loading             NUMERIC(5,2)  NOT NULL,
			created_at          TIMESTAMPTZ   NOT NULL DEFAULT NOW()
		);

		CREATE INDEX IF NOT EXISTS idx_requests_type ON valuation_requests(property_type);
		CREATE INDEX IF NOT EXISTS idx_requests_city ON valuation_requests(city);

		CREATE TABLE IF NOT EXISTS auction_listings (
			id                  SERIAL PRIMARY KEY,
			title               TEXT          NOT NULL,
			reserve_price       NUMERIC(16,2) NOT NULL DEFAULT 0,
			location            TEXT          NOT NULL DEFAULT '',
			measurement_unit    VARCHAR(20)   NOT NULL DEFAULT '',
			area_type           VARCHAR(20)   NOT NULL DEFAULT '',
			carpet_area         NUMERIC(14,0) NOT NULL DEFAULT 0,
			super_built_up_area NUMERIC(14,0) NOT NULL DEFAULT 0,
			loading             NUMERIC(5,2)  NOT NULL DEFAULT 0,
			url                 TEXT          UNIQUE NOT NULL,
			description         TEXT          NOT NULL DEFAULT '',
			created_at          TIMESTAMPTZ   NOT NULL DEFAULT NOW()
		);

		CREATE INDEX IF NOT EXISTS idx_auctions_price    ON auction_listings(reserve_price);
		CREATE INDEX IF NOT EXISTS idx_auctions_location ON auction_listings(location);
	`)
	return err
}

// Write batch-inserts valuation requests in one transaction. Requests already
// stored under the same id are left as they are.
func (pw *PostgresWriter) Write(requests []*models.ValuationRequest) error {
	if len(requests) == 0 {
		return nil
	}

	rows := make([][]interface{}, 0, len(requests))
	for _, r := range requests {
		rows = append(rows, []interface{}{
			r.ID, string(r.PropertyType), r.OwnerName, r.City, r.Locality,
			r.UnitSize, string(r.MeasurementUnit), string(r.AreaType), r.AgeOfProperty,
			r.CarpetArea, r.SuperBuiltUpArea, r.Loading, r.CreatedAt,
		})
	}

	return pw.inTx(func(tx *sql.Tx) error {
		if err := insertBatches(tx, "valuation_requests", requestColumns, rows, "ON CONFLICT (id) DO NOTHING"); err != nil {
			return fmt.Errorf("postgres: insert requests: %w", err)
		}
		return nil
	})
}

// ClearAuctions deletes all stored auction listings.
func (pw *PostgresWriter) ClearAuctions() error {
	_, err := pw.db.Exec("DELETE FROM auction_listings")
	if err != nil {
		return fmt.Errorf("postgres: clear auctions: %w", err)
	}
	return nil
}

// WriteAuctions replaces the stored auction listings with a fresh scrape. The
// old snapshot stays in place if any insert fails.
func (pw *PostgresWriter) WriteAuctions(listings []*models.AuctionListing) error {
	if len(listings) == 0 {
		return nil
	}

	rows := make([][]interface{}, 0, len(listings))
	for _, l := range listings {
		rows = append(rows, []interface{}{
			l.Title, l.ReservePrice, l.Location, string(l.MeasurementUnit), string(l.AreaType),
			l.CarpetArea, l.SuperBuiltUpArea, l.Loading, l.URL, l.Description,
		})
	}

	return pw.inTx(func(tx *sql.Tx) error {
		if _, err := tx.Exec("DELETE FROM auction_listings"); err != nil {
			return fmt.Errorf("postgres: clear auctions: %w", err)
		}
		if err := insertBatches(tx, "auction_listings", auctionColumns, rows, "ON CONFLICT (url) DO NOTHING"); err != nil {
			return fmt.Errorf("postgres: insert auctions: %w", err)
		}
		return nil
	})
}

// inTx runs fn in a transaction, committing only when fn succeeds.
func (pw *PostgresWriter) inTx(fn func(tx *sql.Tx) error) error {
	tx, err := pw.db.Begin()
	if err != nil {
		return fmt.Errorf("postgres: begin: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if err := fn(tx); err != nil {
		return err
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("postgres: commit: %w", err)
	}
	return nil
}

// insertBatches writes rows batchSize at a time.
func insertBatches(tx *sql.Tx, table string, columns []string, rows [][]interface{}, suffix string) error {
	for i := 0; i < len(rows); i += batchSize {
		end := min(i+batchSize, len(rows))
		query, args := buildInsert(table, columns, rows[i:end], suffix)
		if _, err := tx.Exec(query, args...); err != nil {
			return err
		}
	}
	return nil
}

// buildInsert renders a multi-row INSERT with $n placeholders.
func buildInsert(table string, columns []string, rows [][]interface{}, suffix string) (string, []interface{}) {
	valueStrings := make([]string, 0, len(rows))
	valueArgs := make([]interface{}, 0, len(rows)*len(columns))

	for idx, row := range rows {
		base := idx * len(columns)
		placeholders := make([]string, len(columns))
		for j := range columns {
			placeholders[j] = fmt.Sprintf("$%d", base+j+1)
		}
		valueStrings = append(valueStrings, "("+strings.Join(placeholders, ",")+")")
		valueArgs = append(valueArgs, row...)
	}

	query := fmt.Sprintf("INSERT INTO %s (%s) VALUES %s %s",
		table, strings.Join(columns, ", "), strings.Join(valueStrings, ","), suffix)
	return strings.TrimSpace(query), valueArgs
}

func (pw *PostgresWriter) Close() error {
	return pw.db.Close()
}

// FetchAll retrieves all stored valuation requests — used by the insight service.
func (pw *PostgresWriter) FetchAll() ([]*models.ValuationRequest, error) {
	rows, err := pw.db.Query(`
		SELECT id, property_type, owner_name, city, locality, unit_size, measurement_unit,
		       area_type, age_of_property, carpet_area, super_built_up_area, loading, created_at
		FROM valuation_requests
		ORDER BY created_at, id
	`)
	if err != nil {
		return nil, fmt.Errorf("postgres: fetch all: %w", err)
	}
	defer rows.Close()

	var requests []*models.ValuationRequest
	for rows.Next() {
		r := &models.ValuationRequest{}
		var pt, unit, areaType string
		if err := rows.Scan(
			&r.ID, &pt, &r.OwnerName, &r.City, &r.Locality, &r.UnitSize, &unit,
			&areaType, &r.AgeOfProperty, &r.CarpetArea, &r.SuperBuiltUpArea, &r.Loading, &r.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("postgres: scan row: %w", err)
		}
		r.PropertyType = models.PropertyType(pt)
		r.MeasurementUnit = models.MeasurementUnit(unit)
		r.AreaType = models.AreaType(areaType)
		requests = append(requests, r)
	}
	return requests, rows.Err()
}
