package handlers

import (
	"itinerary-route-service/internal/platform/obs"
	"net/http"
)

type healthResponse struct {
	Status   string                 `json:"status"`
	Counters map[string]obs.OpCount `json:"counters"`
}

// Health is a liveness check that also reports per-operation counters.
func Health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, r, http.StatusOK, healthResponse{Status: "ok", Counters: obs.Snapshot()})
}
