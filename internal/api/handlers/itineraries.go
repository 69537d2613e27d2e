package handlers

import (
	"itinerary-route-service/internal/adapters/mapexport"
	"itinerary-route-service/internal/api/dto"
	"itinerary-route-service/internal/domain"
	"itinerary-route-service/internal/platform/logger"
	"itinerary-route-service/internal/platform/obs"
	"itinerary-route-service/internal/services"
	"net/http"
)

type ItineraryHandler struct {
	Planner *services.ItineraryPlanner
}

func (h *ItineraryHandler) Plan(w http.ResponseWriter, r *http.Request) {
	it, ok := h.plan(w, r)
	if !ok {
		return
	}
	writeJSON(w, r, http.StatusOK, dto.NewItineraryResponse(*it))
}

// GeoJSON plans like Plan but answers with a FeatureCollection.
func (h *ItineraryHandler) GeoJSON(w http.ResponseWriter, r *http.Request) {
	it, ok := h.plan(w, r)
	if !ok {
		return
	}

	body, err := mapexport.Itinerary(*it).MarshalJSON()
	if err != nil {
		logger.Error("encode geojson failed", "req_id", obs.RequestID(r.Context()), "error", err)
		writeError(w, r, http.StatusInternalServerError, "internal server error")
		return
	}

	w.Header().Set("Content-Type", "application/geo+json")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(body)
}

func (h *ItineraryHandler) plan(w http.ResponseWriter, r *http.Request) (*domain.Itinerary, bool) {
	var req dto.PlanItineraryRequest
	if !decodeBody(w, r, &req) {
		return nil, false
	}

	it, err := h.Planner.Plan(r.Context(), services.PlanItineraryRequest{
		AccommodationID: req.AccommodationID,
		SpotIDs:         req.SpotIDs,
		Tags:            req.Tags,
		IncludeTransit:  req.IncludeTransit,
	})
	if err != nil {
		writeServiceError(w, r, "plan itinerary", err)
		return nil, false
	}
	return it, true
}
