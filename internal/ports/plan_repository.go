package ports

import (
	"context"
	"time"

	"route-optimizer-service/internal/domain"
)

// OptimizationPlan is a finished pipeline run: the annotated routes plus
// the parameters that produced them.
type OptimizationPlan struct {
	PlanID     string
	Mode       string
	TruckCount int
	CreatedAt  time.Time
	Routes     []domain.Route
}

// Port: a boundary for persisting and retrieving optimization plans.
type PlanRepository interface {
	// Persist a finished plan.
	SavePlan(ctx context.Context, plan OptimizationPlan) error
	// Retrieve the most recent plan, or ok=false when none exists.
	LatestPlan(ctx context.Context) (OptimizationPlan, bool, error)
}
