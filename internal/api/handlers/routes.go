package handlers

import (
	"itinerary-route-service/internal/api/dto"
	"itinerary-route-service/internal/domain"
	"itinerary-route-service/internal/services"
	"net/http"
	"strings"
)

const maxDestinations = 50

type RouteHandler struct {
	Planner *services.ItineraryPlanner
}

// Optimize orders arbitrary destinations from a start location.
func (h *RouteHandler) Optimize(w http.ResponseWriter, r *http.Request) {
	var req dto.OptimizeRouteRequest
	if !decodeBody(w, r, &req) {
		return
	}

	if req.Start == nil {
		writeError(w, r, http.StatusBadRequest, "start is required")
		return
	}
	if len(req.Destinations) > maxDestinations {
		writeError(w, r, http.StatusBadRequest, "at most 50 destinations are allowed")
		return
	}
	start, ok := location(req.Start)
	if !ok {
		writeError(w, r, http.StatusBadRequest, "start requires valid lat and lng")
		return
	}

	dests := make([]domain.Location, 0, len(req.Destinations))
	for _, d := range req.Destinations {
		loc, ok := location(&d)
		if !ok {
			writeError(w, r, http.StatusBadRequest, "each destination requires valid lat and lng")
			return
		}
		dests = append(dests, loc)
	}

	route := h.Planner.Optimize(r.Context(), start, dests)
	writeJSON(w, r, http.StatusOK, dto.NewOptimizedRouteResponse(route))
}

// Transit synthesizes step-by-step directions between two points.
func (h *RouteHandler) Transit(w http.ResponseWriter, r *http.Request) {
	var req dto.TransitRequest
	if !decodeBody(w, r, &req) {
		return
	}

	from, ok := endpoint(req.From)
	if !ok {
		writeError(w, r, http.StatusBadRequest, "from requires valid lat and lng")
		return
	}
	to, ok := endpoint(req.To)
	if !ok {
		writeError(w, r, http.StatusBadRequest, "to requires valid lat and lng")
		return
	}

	route, err := h.Planner.Transit(r.Context(), from, to)
	if err != nil {
		writeServiceError(w, r, "transit", err)
		return
	}
	writeJSON(w, r, http.StatusOK, dto.NewDetailedRouteResponse(route))
}

func location(l *dto.LocationRequest) (domain.Location, bool) {
	loc, ok := l.Location()
	if !ok || !validCoord(loc.Lat, loc.Lng) {
		return domain.Location{}, false
	}
	return loc, true
}

func endpoint(e *dto.EndpointRequest) (domain.Endpoint, bool) {
	if e == nil || e.Lat == nil || e.Lng == nil || !validCoord(*e.Lat, *e.Lng) {
		return domain.Endpoint{}, false
	}
	return domain.Endpoint{Lat: *e.Lat, Lng: *e.Lng, Label: strings.TrimSpace(e.Label)}, true
}

func validCoord(lat, lng float64) bool {
	return lat >= -90 && lat <= 90 && lng >= -180 && lng <= 180
}
