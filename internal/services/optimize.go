// Package services contains the optimization pipeline use cases: cluster
// the stops, sequence each cluster into a depot-anchored route, and
// annotate the finished routes with distance, time, fuel, and efficiency
// metrics.
package services

import (
	"route-optimizer-service/internal/domain"
	"route-optimizer-service/internal/tsp"
)

// routeColors are cycled across routes for map rendering.
var routeColors = []string{"#FF6B6B", "#4ECDC4", "#45B7D1", "#FFA726", "#AB47BC", "#26A69A"}

const defaultTruckName = "Camión Estándar"

// OptimizeRoutes sequences each non-empty cluster with the route solver
// and materializes the depot-anchored stop lists. Empty clusters produce
// no route. The stop sequence of each route is a permutation of its
// source cluster's stops with the depot added at both ends.
func OptimizeRoutes(clusters []domain.Cluster, depot *domain.Depot, specs []domain.TruckSpec) []domain.Route {
	routes := make([]domain.Route, 0, len(clusters))

	for _, c := range clusters {
		if len(c.Stops) == 0 {
			continue
		}

		order := tsp.Sequence(c.Stops, depot)

		stops := make([]domain.Stop, 0, len(c.Stops)+2)
		stops = append(stops, depot.AsStop())
		for _, idx := range order {
			stops = append(stops, c.Stops[idx])
		}
		stops = append(stops, depot.AsStop())

		routes = append(routes, domain.Route{
			ClusterID:     c.ClusterID,
			TruckTier:     c.TruckTier,
			TruckName:     truckDisplayName(c.TruckTier, specs),
			Color:         routeColors[len(routes)%len(routeColors)],
			Stops:         stops,
			CustomerCount: len(c.Stops),
		})
	}

	return routes
}

func truckDisplayName(tier string, specs []domain.TruckSpec) string {
	for _, spec := range specs {
		if spec.Tier == tier {
			return spec.DisplayName
		}
	}
	return defaultTruckName
}
