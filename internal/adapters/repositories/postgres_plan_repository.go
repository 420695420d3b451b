package repositories

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"route-optimizer-service/internal/domain"
	"route-optimizer-service/internal/ports"
)

// Postgres-backed implementation of the PlanRepository port. Routes are
// stored as a JSONB document; plans are read back whole, never queried
// per field.
type PostgresPlanRepository struct{ DB *sql.DB }

func NewPostgresPlanRepository(db *sql.DB) *PostgresPlanRepository {
	return &PostgresPlanRepository{DB: db}
}

// Persist a finished plan.
func (p *PostgresPlanRepository) SavePlan(ctx context.Context, plan ports.OptimizationPlan) error {
	if p.DB == nil {
		return errors.New("postgres plan repository: DB is nil")
	}

	routes, err := json.Marshal(plan.Routes)
	if err != nil {
		return fmt.Errorf("save plan: marshal routes: %w", err)
	}

	query := `
	INSERT INTO optimization_plans (plan_id, mode, truck_count, created_at, routes)
	VALUES ($1, $2, $3, $4, $5);
	`
	if _, err := p.DB.ExecContext(ctx, query, plan.PlanID, plan.Mode, plan.TruckCount, plan.CreatedAt, routes); err != nil {
		return fmt.Errorf("save plan: insert plan %q: %w", plan.PlanID, err)
	}

	return nil
}

// Retrieve the most recent plan.
func (p *PostgresPlanRepository) LatestPlan(ctx context.Context) (ports.OptimizationPlan, bool, error) {
	if p.DB == nil {
		return ports.OptimizationPlan{}, false, errors.New("postgres plan repository: DB is nil")
	}

	query := `
	SELECT plan_id, mode, truck_count, created_at, routes
	FROM optimization_plans
	ORDER BY created_at DESC
	LIMIT 1;
	`

	var plan ports.OptimizationPlan
	var routes []byte
	err := p.DB.QueryRowContext(ctx, query).Scan(
		&plan.PlanID,
		&plan.Mode,
		&plan.TruckCount,
		&plan.CreatedAt,
		&routes,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return ports.OptimizationPlan{}, false, nil
	}
	if err != nil {
		return ports.OptimizationPlan{}, false, fmt.Errorf("latest plan: query: %w", err)
	}

	if err := json.Unmarshal(routes, &plan.Routes); err != nil {
		return ports.OptimizationPlan{}, false, fmt.Errorf("latest plan: unmarshal routes: %w", err)
	}
	if plan.Routes == nil {
		plan.Routes = []domain.Route{}
	}

	return plan, true, nil
}
