package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"route-optimizer-service/internal/domain"
)

// Postgres-backed implementation of the StopRepository port.
type PostgresStopRepository struct{ DB *sql.DB }

func NewPostgresStopRepository(db *sql.DB) *PostgresStopRepository {
	return &PostgresStopRepository{DB: db}
}

// Return all stops stored in the database, in insertion order.
func (s *PostgresStopRepository) ListStops(ctx context.Context) ([]domain.Stop, error) {
	if s.DB == nil {
		return nil, errors.New("postgres stop repository: DB is nil")
	}

	query := `
	SELECT
		stop_id,
		name,
		address,
		locality,
		weight_kg,
		volume_m3,
		lat,
		lng
	FROM stops
	ORDER BY stop_id;
	`
	rows, err := s.DB.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list stops: query stops table: %w", err)
	}
	defer rows.Close()

	stops := make([]domain.Stop, 0, 64)
	for rows.Next() {
		var stop domain.Stop
		err := rows.Scan(
			&stop.StopID,
			&stop.Name,
			&stop.Address,
			&stop.Locality,
			&stop.WeightKg,
			&stop.VolumeM3,
			&stop.Coord.Lat,
			&stop.Coord.Lng,
		)
		if err != nil {
			return nil, fmt.Errorf("list stops: scan row: %w", err)
		}
		stops = append(stops, stop)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list stops: row iteration: %w", err)
	}

	return stops, nil
}

// Replace the stored stop set with a freshly uploaded one.
func (s *PostgresStopRepository) ReplaceStops(ctx context.Context, stops []domain.Stop) error {
	if s.DB == nil {
		return errors.New("postgres stop repository: DB is nil")
	}

	tx, err := s.DB.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("replace stops: begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, `DELETE FROM stops;`); err != nil {
		return fmt.Errorf("replace stops: clear stops table: %w", err)
	}

	query := `
	INSERT INTO stops (name, address, locality, weight_kg, volume_m3, lat, lng)
	VALUES ($1, $2, $3, $4, $5, $6, $7);
	`
	stmt, err := tx.PrepareContext(ctx, query)
	if err != nil {
		return fmt.Errorf("replace stops: prepare insert: %w", err)
	}
	defer stmt.Close()

	for _, stop := range stops {
		_, err := stmt.ExecContext(ctx,
			stop.Name,
			stop.Address,
			stop.Locality,
			stop.WeightKg,
			stop.VolumeM3,
			stop.Coord.Lat,
			stop.Coord.Lng,
		)
		if err != nil {
			return fmt.Errorf("replace stops: insert %q: %w", stop.Name, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("replace stops: commit tx: %w", err)
	}

	return nil
}
