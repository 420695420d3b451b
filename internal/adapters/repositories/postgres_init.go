package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"

	"route-optimizer-service/internal/domain"
	"route-optimizer-service/internal/ingest"
)

// Initialize the Postgres database schema.
func InitSchema(db *sql.DB) error {
	if db == nil {
		return errors.New("init schema: DB is nil")
	}

	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("init schema: begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	createStopsQuery := `
	CREATE TABLE IF NOT EXISTS stops (
		stop_id SERIAL PRIMARY KEY,
		name TEXT NOT NULL,
		address TEXT NOT NULL,
		locality TEXT NOT NULL DEFAULT '',
		weight_kg DOUBLE PRECISION NOT NULL DEFAULT 0,
		volume_m3 DOUBLE PRECISION NOT NULL DEFAULT 0,
		lat DOUBLE PRECISION NOT NULL DEFAULT 0,
		lng DOUBLE PRECISION NOT NULL DEFAULT 0
	);
	`

	createGeocodeCacheQuery := `
	CREATE TABLE IF NOT EXISTS geocode_cache (
		address TEXT PRIMARY KEY,
		lat DOUBLE PRECISION NOT NULL,
		lng DOUBLE PRECISION NOT NULL
	);
	`

	createPlansQuery := `
	CREATE TABLE IF NOT EXISTS optimization_plans (
		plan_id UUID PRIMARY KEY,
		mode TEXT NOT NULL,
		truck_count INTEGER NOT NULL,
		created_at TIMESTAMPTZ NOT NULL,
		routes JSONB NOT NULL
	);
	`

	createPlanIndexQuery := `
	CREATE INDEX IF NOT EXISTS idx_optimization_plans_created_at
	ON optimization_plans(created_at DESC);
	`

	statements := []string{
		createStopsQuery,
		createGeocodeCacheQuery,
		createPlansQuery,
		createPlanIndexQuery,
	}

	for i, stmt := range statements {
		if _, err := tx.Exec(stmt); err != nil {
			return fmt.Errorf("init schema: exec statement #%d: %w", i+1, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("init schema: commit tx: %w", err)
	}

	return nil
}

// Populate the database with stop data from a CSV file.
func SeedFromCSV(ctx context.Context, db *sql.DB, csvPath string) error {
	data, err := os.ReadFile(csvPath)
	if err != nil {
		return fmt.Errorf("seed stops: read %q: %w", csvPath, err)
	}

	records, err := ingest.ParseStops(data)
	if err != nil {
		return fmt.Errorf("seed stops: %w", err)
	}

	stops := make([]domain.Stop, 0, len(records))
	for _, r := range records {
		stops = append(stops, domain.Stop{
			Name:     r.Name,
			Address:  r.Address,
			Locality: r.Locality,
			WeightKg: r.WeightKg,
			VolumeM3: r.VolumeM3,
			Coord:    domain.Coordinates{Lat: r.Lat, Lng: r.Lng},
		})
	}

	repo := NewPostgresStopRepository(db)
	if err := repo.ReplaceStops(ctx, stops); err != nil {
		return fmt.Errorf("seed stops: %w", err)
	}

	return nil
}
