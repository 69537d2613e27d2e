package handlers

import (
	"itinerary-route-service/internal/api/dto"
	"itinerary-route-service/internal/platform/logger"
	"itinerary-route-service/internal/platform/obs"
	"itinerary-route-service/internal/ports"
	"itinerary-route-service/internal/services"
	"net/http"
	"strings"
)

// SpotHandler exposes read-only catalog endpoints.
type SpotHandler struct {
	Repo ports.SpotRepository
}

// List accepts ?area= and ?tag= (repeatable or comma separated).
func (h *SpotHandler) List(w http.ResponseWriter, r *http.Request) {
	spots, err := h.Repo.ListSpots(r.Context())
	if err != nil {
		logger.Error("list spots failed", "req_id", obs.RequestID(r.Context()), "error", err)
		writeError(w, r, http.StatusInternalServerError, "internal server error")
		return
	}

	q := r.URL.Query()
	var tags []string
	for _, raw := range q["tag"] {
		for _, t := range strings.Split(raw, ",") {
			if t = strings.TrimSpace(t); t != "" {
				tags = append(tags, t)
			}
		}
	}
	spots = services.FilterSpots(spots, q.Get("area"), tags)

	res := dto.ListSpotsResponse{Spots: make([]dto.SpotResponse, 0, len(spots))}
	for _, s := range spots {
		res.Spots = append(res.Spots, dto.NewSpotResponse(s))
	}
	writeJSON(w, r, http.StatusOK, res)
}

func (h *SpotHandler) Tags(w http.ResponseWriter, r *http.Request) {
	spots, err := h.Repo.ListSpots(r.Context())
	if err != nil {
		logger.Error("list tags failed", "req_id", obs.RequestID(r.Context()), "error", err)
		writeError(w, r, http.StatusInternalServerError, "internal server error")
		return
	}
	writeJSON(w, r, http.StatusOK, dto.ValuesResponse{Values: services.AllTags(spots)})
}

func (h *SpotHandler) Areas(w http.ResponseWriter, r *http.Request) {
	spots, err := h.Repo.ListSpots(r.Context())
	if err != nil {
		logger.Error("list areas failed", "req_id", obs.RequestID(r.Context()), "error", err)
		writeError(w, r, http.StatusInternalServerError, "internal server error")
		return
	}
	writeJSON(w, r, http.StatusOK, dto.ValuesResponse{Values: services.AllAreas(spots)})
}

func (h *SpotHandler) Accommodations(w http.ResponseWriter, r *http.Request) {
	accs, err := h.Repo.ListAccommodations(r.Context())
	if err != nil {
		logger.Error("list accommodations failed", "req_id", obs.RequestID(r.Context()), "error", err)
		writeError(w, r, http.StatusInternalServerError, "internal server error")
		return
	}

	res := dto.ListAccommodationsResponse{Accommodations: make([]dto.AccommodationResponse, 0, len(accs))}
	for _, a := range accs {
		res.Accommodations = append(res.Accommodations, dto.NewAccommodationResponse(a))
	}
	writeJSON(w, r, http.StatusOK, res)
}
