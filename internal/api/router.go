package api

import (
	"net/http"

	"route-optimizer-service/internal/api/handlers"
	"route-optimizer-service/internal/domain"
	"route-optimizer-service/internal/platform/metrics"
	"route-optimizer-service/internal/ports"
	"route-optimizer-service/internal/services"

	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Deps holds everything the HTTP layer needs from the composition root.
type Deps struct {
	Stops    ports.StopRepository
	Geocoder ports.Geocoder
	Plans    ports.PlanRepository
	Depot    *domain.Depot
	Specs    []domain.TruckSpec
	Costs    services.RouteCostConfig
}

// NewRouter wires HTTP handlers with their dependencies and returns an http.Handler.
// This is the API composition root (handlers stay unaware of concrete adapters).
func NewRouter(deps Deps) http.Handler {
	mux := http.NewServeMux()

	stopHandler := &handlers.StopHandler{Repo: deps.Stops}
	optimizeHandler := &handlers.OptimizeHandler{
		Stops:    deps.Stops,
		Geocoder: deps.Geocoder,
		Plans:    deps.Plans,
		Depot:    deps.Depot,
		Specs:    deps.Specs,
		Costs:    deps.Costs,
	}
	planHandler := &handlers.PlanHandler{Plans: deps.Plans}

	mux.HandleFunc("/health", handlers.Health)
	mux.HandleFunc("/stops", stopHandler.List)
	mux.HandleFunc("/stops/upload", stopHandler.Upload)
	mux.HandleFunc("/optimize", optimizeHandler.Optimize)
	mux.HandleFunc("/plans/latest", planHandler.Latest)
	mux.Handle("/metrics", promhttp.HandlerFor(metrics.Registry, promhttp.HandlerOpts{}))

	return requestIDMiddleware(loggingMiddleware(mux))
}
