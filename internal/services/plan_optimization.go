package services

import (
	"context"
	"fmt"
	"time"

	"route-optimizer-service/internal/cluster"
	"route-optimizer-service/internal/domain"
	"route-optimizer-service/internal/platform/obs"
	"route-optimizer-service/internal/ports"

	"github.com/google/uuid"
)

// Clustering modes accepted by PlanOptimization.
const (
	ModeGeographic = "geographic"
	ModeCapacity   = "capacity"
)

type PlanOptimizationRequest struct {
	Mode       string
	TruckCount int
}

// PlanOptimization runs the full pipeline for the stored stop set:
// resolve missing coordinates, cluster into TruckCount groups, sequence
// each group from the depot, annotate metrics, and persist the plan.
func PlanOptimization(
	ctx context.Context,
	req PlanOptimizationRequest,
	repo ports.StopRepository,
	geocoder ports.Geocoder,
	planRepo ports.PlanRepository,
	depot *domain.Depot,
	specs []domain.TruckSpec,
	costCfg RouteCostConfig,
) (_ ports.OptimizationPlan, err error) {
	defer obs.Time(ctx, "services.PlanOptimization")(&err)

	if req.TruckCount < 1 || req.TruckCount > 20 {
		return ports.OptimizationPlan{}, fmt.Errorf("plan optimization: truck count %d out of range [1,20]", req.TruckCount)
	}
	if req.Mode != ModeGeographic && req.Mode != ModeCapacity {
		return ports.OptimizationPlan{}, fmt.Errorf("plan optimization: unknown mode %q", req.Mode)
	}

	stops, err := repo.ListStops(ctx)
	if err != nil {
		return ports.OptimizationPlan{}, fmt.Errorf("plan optimization: list stops: %w", err)
	}

	if err := resolveCoordinates(ctx, stops, geocoder); err != nil {
		return ports.OptimizationPlan{}, fmt.Errorf("plan optimization: %w", err)
	}

	var clusters []domain.Cluster
	switch req.Mode {
	case ModeCapacity:
		clusters = cluster.WithCapacity(stops, specs, req.TruckCount, depot)
	default:
		clusters = cluster.Geographic(stops, req.TruckCount, depot)
	}

	routes := OptimizeRoutes(clusters, depot, specs)
	routes = CalculateRouteDistances(routes, costCfg)

	plan := ports.OptimizationPlan{
		PlanID:     uuid.NewString(),
		Mode:       req.Mode,
		TruckCount: req.TruckCount,
		CreatedAt:  time.Now().UTC(),
		Routes:     routes,
	}

	if planRepo != nil {
		if err := planRepo.SavePlan(ctx, plan); err != nil {
			return ports.OptimizationPlan{}, fmt.Errorf("plan optimization: save plan: %w", err)
		}
	}

	return plan, nil
}

// resolveCoordinates fills in coordinates for stops the ingestion step
// left unresolved. Stops that already carry coordinates are not
// re-validated; the geocoder guarantees in-bounds results.
func resolveCoordinates(ctx context.Context, stops []domain.Stop, geocoder ports.Geocoder) error {
	for i := range stops {
		if !stops[i].Coord.IsZero() {
			continue
		}

		coord, err := geocoder.Geocode(ctx, stops[i].Address, stops[i].Locality)
		if err != nil {
			return fmt.Errorf("geocode stop %q: %w", stops[i].Name, err)
		}
		stops[i].Coord = coord
	}
	return nil
}
