package services

import (
	"math"

	"route-optimizer-service/internal/domain"
	"route-optimizer-service/internal/geo"
)

// RouteCostConfig holds the constants used to derive time and fuel
// estimates from route distance. Values are immutable once built.
type RouteCostConfig struct {
	AvgSpeedKmh       float64
	StopMinutes       float64
	FuelKmPerLiter    float64
	FuelPerStopLiters float64
	FuelCostPerLiter  float64
}

// DefaultRouteCostConfig returns the city-delivery defaults: 30 km/h
// average speed, 5 minutes per stop, 8 km/l trucks with 0.2 l of extra
// consumption per stop, priced at 3000 COP per liter.
func DefaultRouteCostConfig() RouteCostConfig {
	return RouteCostConfig{
		AvgSpeedKmh:       30,
		StopMinutes:       5,
		FuelKmPerLiter:    8,
		FuelPerStopLiters: 0.2,
		FuelCostPerLiter:  3000,
	}
}

// CalculateRouteDistances annotates each route with segment distances,
// totals, and the derived time, efficiency, and fuel estimates. The
// input routes are returned with their metrics fields populated; stop
// sequences are never reordered here.
func CalculateRouteDistances(routes []domain.Route, cfg RouteCostConfig) []domain.Route {
	updated := make([]domain.Route, 0, len(routes))

	for _, route := range routes {
		stops := route.Stops

		if len(stops) <= 1 {
			route.TotalDistanceKm = 0
			route.SegmentDistances = []domain.SegmentDistance{}
			updated = append(updated, route)
			continue
		}

		segments := make([]domain.SegmentDistance, 0, len(stops))
		total := 0.0

		// Consecutive legs plus the wrap-around edge back to the start.
		for i := range stops {
			j := (i + 1) % len(stops)
			d := geo.Distance(stops[i].Coord, stops[j].Coord)
			segments = append(segments, domain.SegmentDistance{
				FromStop:   i,
				ToStop:     j,
				FromName:   stops[i].Name,
				ToName:     stops[j].Name,
				DistanceKm: d,
			})
			total += d
		}

		route.TotalDistanceKm = total
		route.SegmentDistances = segments
		route.AvgDistancePerStop = total / float64(len(stops))

		drivingHours := total / cfg.AvgSpeedKmh
		stopHours := float64(len(stops)) * cfg.StopMinutes / 60
		route.EstimatedTimeHours = drivingHours + stopHours

		route.Efficiency = routeEfficiency(route)
		route.Fuel = fuelEstimate(route, cfg)

		updated = append(updated, route)
	}

	return updated
}

// routeEfficiency rates a finished route: compactness (how tightly the
// stops group around their centroid) divided by the detour factor (actual
// distance versus direct round trips to every stop). Routes with at most
// one customer have nothing to rate and score zero.
func routeEfficiency(route domain.Route) domain.EfficiencyMetrics {
	stops := route.Stops

	if route.CustomerCount <= 1 {
		return domain.EfficiencyMetrics{
			EfficiencyScore:  0,
			DetourFactor:     1.0,
			CompactnessScore: 0,
		}
	}

	// Direct round trip from the depot (first stop) to every other stop.
	depot := stops[0]
	totalDirect := 0.0
	for _, s := range stops[1:] {
		totalDirect += geo.Distance(depot.Coord, s.Coord)
	}
	totalDirect *= 2

	detour := 1.0
	if totalDirect > 0 {
		detour = route.TotalDistanceKm / totalDirect
	}

	compactness := 1.0
	if len(stops) > 2 {
		center := stopCentroid(stops)
		spread := distanceSpread(stops, center)
		compactness = 1 / (1 + spread)
	}

	efficiency := 0.0
	if detour > 0 {
		efficiency = compactness / detour
	}

	return domain.EfficiencyMetrics{
		EfficiencyScore:       efficiency,
		DetourFactor:          detour,
		CompactnessScore:      compactness,
		TotalDirectDistanceKm: totalDirect,
	}
}

func stopCentroid(stops []domain.Stop) domain.Coordinates {
	var c domain.Coordinates
	for _, s := range stops {
		c.Lat += s.Coord.Lat
		c.Lng += s.Coord.Lng
	}
	c.Lat /= float64(len(stops))
	c.Lng /= float64(len(stops))
	return c
}

// distanceSpread is the population standard deviation of each stop's
// distance from the centroid. Identical coordinates yield zero spread.
func distanceSpread(stops []domain.Stop, center domain.Coordinates) float64 {
	distances := make([]float64, len(stops))
	mean := 0.0
	for i, s := range stops {
		distances[i] = geo.Distance(center, s.Coord)
		mean += distances[i]
	}
	mean /= float64(len(distances))

	variance := 0.0
	for _, d := range distances {
		variance += (d - mean) * (d - mean)
	}
	variance /= float64(len(distances))

	return math.Sqrt(variance)
}

func fuelEstimate(route domain.Route, cfg RouteCostConfig) domain.FuelEstimate {
	liters := route.TotalDistanceKm/cfg.FuelKmPerLiter +
		float64(len(route.Stops))*cfg.FuelPerStopLiters

	return domain.FuelEstimate{
		FuelLiters:     liters,
		FuelCost:       liters * cfg.FuelCostPerLiter,
		KmPerLiterUsed: cfg.FuelKmPerLiter,
	}
}
