package handlers

import (
	"log"
	"net/http"

	"route-optimizer-service/internal/ports"
)

// PlanHandler exposes read-only access to persisted optimization plans.
type PlanHandler struct {
	Plans ports.PlanRepository
}

func (h *PlanHandler) Latest(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.Header().Set("Allow", http.MethodGet)
		writeError(w, r, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	plan, ok, err := h.Plans.LatestPlan(r.Context())
	if err != nil {
		log.Printf("latest plan failed: %v", err)
		writeError(w, r, http.StatusInternalServerError, "internal server error")
		return
	}
	if !ok {
		writeError(w, r, http.StatusNotFound, "no optimization plan yet")
		return
	}

	writeJSON(w, r, http.StatusOK, planToDTO(plan))
}
