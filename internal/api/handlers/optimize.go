package handlers

import (
	"encoding/json"
	"io"
	"log"
	"net/http"
	"time"

	"route-optimizer-service/internal/api/dto"
	"route-optimizer-service/internal/domain"
	"route-optimizer-service/internal/platform/metrics"
	"route-optimizer-service/internal/ports"
	"route-optimizer-service/internal/services"
)

// OptimizeHandler runs the full optimization pipeline for the stored
// stop set. It coordinates repository access, geocoding, clustering,
// route solving, and metrics annotation.
type OptimizeHandler struct {
	Stops    ports.StopRepository
	Geocoder ports.Geocoder
	Plans    ports.PlanRepository
	Depot    *domain.Depot
	Specs    []domain.TruckSpec
	Costs    services.RouteCostConfig
}

func (h *OptimizeHandler) Optimize(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.Header().Set("Allow", http.MethodPost)
		writeError(w, r, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	var req dto.OptimizeRequest

	dec := json.NewDecoder(r.Body)
	defer r.Body.Close()
	dec.DisallowUnknownFields()

	if err := dec.Decode(&req); err != nil {
		writeError(w, r, http.StatusBadRequest, "invalid json body")
		return
	}
	if err := dec.Decode(&struct{}{}); err != io.EOF {
		writeError(w, r, http.StatusBadRequest, "body must contain only one JSON object")
		return
	}

	numTrucks := req.NumTrucks
	if numTrucks == 0 {
		numTrucks = 3
	}
	if numTrucks < 1 || numTrucks > 20 {
		writeError(w, r, http.StatusBadRequest, "num_trucks must be between 1 and 20")
		return
	}

	mode := req.Mode
	if mode == "" {
		mode = services.ModeGeographic
	}
	if mode != services.ModeGeographic && mode != services.ModeCapacity {
		writeError(w, r, http.StatusBadRequest, "mode must be 'geographic' or 'capacity'")
		return
	}

	svcReq := services.PlanOptimizationRequest{
		Mode:       mode,
		TruckCount: numTrucks,
	}

	start := time.Now()
	plan, err := services.PlanOptimization(r.Context(), svcReq, h.Stops, h.Geocoder, h.Plans, h.Depot, h.Specs, h.Costs)
	metrics.OptimizationDuration.WithLabelValues(mode).Observe(time.Since(start).Seconds())
	if err != nil {
		metrics.OptimizationRuns.WithLabelValues(mode, "error").Inc()
		log.Printf("plan optimization failed: %v", err)
		writeError(w, r, http.StatusInternalServerError, "internal server error")
		return
	}
	metrics.OptimizationRuns.WithLabelValues(mode, "ok").Inc()

	writeJSON(w, r, http.StatusOK, planToDTO(plan))
}
