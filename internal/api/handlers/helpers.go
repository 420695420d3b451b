package handlers

import (
	"encoding/json"
	"log"
	"net/http"

	"route-optimizer-service/internal/api/dto"
	"route-optimizer-service/internal/domain"
	"route-optimizer-service/internal/ports"
)

func writeJSON(w http.ResponseWriter, r *http.Request, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("encode failed: method=%s path=%s err=%v", r.Method, r.URL.Path, err)
	}
}

func writeError(w http.ResponseWriter, r *http.Request, status int, msg string) {
	writeJSON(w, r, status, map[string]string{"error": msg})
}

func stopToDTO(s domain.Stop) dto.StopResponse {
	return dto.StopResponse{
		StopID:   s.StopID,
		Name:     s.Name,
		Address:  s.Address,
		Locality: s.Locality,
		WeightKg: s.WeightKg,
		VolumeM3: s.VolumeM3,
		Lat:      s.Coord.Lat,
		Lng:      s.Coord.Lng,
		IsDepot:  s.IsDepot,
	}
}

func routeToDTO(route domain.Route) dto.RouteResponse {
	stops := make([]dto.StopResponse, 0, len(route.Stops))
	for _, s := range route.Stops {
		stops = append(stops, stopToDTO(s))
	}

	segments := make([]dto.SegmentResponse, 0, len(route.SegmentDistances))
	for _, seg := range route.SegmentDistances {
		segments = append(segments, dto.SegmentResponse{
			FromStop:   seg.FromStop,
			ToStop:     seg.ToStop,
			FromName:   seg.FromName,
			ToName:     seg.ToName,
			DistanceKm: seg.DistanceKm,
		})
	}

	return dto.RouteResponse{
		ClusterID:          route.ClusterID,
		TruckTier:          route.TruckTier,
		TruckName:          route.TruckName,
		Color:              route.Color,
		CustomerCount:      route.CustomerCount,
		Stops:              stops,
		TotalDistanceKm:    route.TotalDistanceKm,
		SegmentDistances:   segments,
		AvgDistancePerStop: route.AvgDistancePerStop,
		EstimatedTimeHours: route.EstimatedTimeHours,
		Efficiency: dto.EfficiencyResponse{
			EfficiencyScore:       route.Efficiency.EfficiencyScore,
			DetourFactor:          route.Efficiency.DetourFactor,
			CompactnessScore:      route.Efficiency.CompactnessScore,
			TotalDirectDistanceKm: route.Efficiency.TotalDirectDistanceKm,
		},
		Fuel: dto.FuelResponse{
			FuelLiters:     route.Fuel.FuelLiters,
			FuelCost:       route.Fuel.FuelCost,
			KmPerLiterUsed: route.Fuel.KmPerLiterUsed,
		},
	}
}

func planToDTO(plan ports.OptimizationPlan) dto.PlanResponse {
	routes := make([]dto.RouteResponse, 0, len(plan.Routes))
	for _, route := range plan.Routes {
		routes = append(routes, routeToDTO(route))
	}

	return dto.PlanResponse{
		PlanID:     plan.PlanID,
		Mode:       plan.Mode,
		TruckCount: plan.TruckCount,
		CreatedAt:  plan.CreatedAt,
		Routes:     routes,
	}
}
