package handlers

import (
	"itinerary-route-service/internal/api/dto"
	"itinerary-route-service/internal/domain"
	"itinerary-route-service/internal/metro"
	"math"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"
)

type MetroHandler struct {
	Graph *metro.Graph
}

func (h *MetroHandler) Lines(w http.ResponseWriter, r *http.Request) {
	lines := h.Graph.Lines()
	res := dto.ListLinesResponse{Lines: make([]dto.MetroLineResponse, 0, len(lines))}
	for _, l := range lines {
		res.Lines = append(res.Lines, dto.NewMetroLineResponse(l))
	}
	writeJSON(w, r, http.StatusOK, res)
}

func (h *MetroHandler) Stations(w http.ResponseWriter, r *http.Request) {
	stations := h.Graph.Stations()
	res := dto.ListStationsResponse{Stations: make([]dto.StationResponse, 0, len(stations))}
	for _, s := range stations {
		res.Stations = append(res.Stations, dto.NewStationResponse(s))
	}
	writeJSON(w, r, http.StatusOK, res)
}

func (h *MetroHandler) Line(w http.ResponseWriter, r *http.Request) {
	l, ok := h.Graph.Line(mux.Vars(r)["id"])
	if !ok {
		writeError(w, r, http.StatusNotFound, "line not found")
		return
	}
	writeJSON(w, r, http.StatusOK, dto.NewMetroLineResponse(l))
}

// Station looks a station up by id, then by display or local name.
func (h *MetroHandler) Station(w http.ResponseWriter, r *http.Request) {
	key := mux.Vars(r)["key"]
	st, ok := h.Graph.Station(key)
	if !ok {
		st, ok = h.Graph.StationByName(key)
	}
	if !ok {
		writeError(w, r, http.StatusNotFound, "station not found")
		return
	}
	writeJSON(w, r, http.StatusOK, dto.NewStationResponse(st))
}

// Nearest finds the closest station to ?lat=&lng=.
func (h *MetroHandler) Nearest(w http.ResponseWriter, r *http.Request) {
	lat, okLat := parseCoord(r.URL.Query().Get("lat"), 90)
	lng, okLng := parseCoord(r.URL.Query().Get("lng"), 180)
	if !okLat || !okLng {
		writeError(w, r, http.StatusBadRequest, "lat and lng must be valid coordinates")
		return
	}

	st, km, ok := h.Graph.NearestStation(lat, lng)
	if !ok {
		writeError(w, r, http.StatusNotFound, "no stations available")
		return
	}

	writeJSON(w, r, http.StatusOK, dto.NearestStationResponse{
		Station:      dto.NewStationResponse(st),
		DistanceKm:   km,
		DistanceText: domain.FormatDistance(km),
	})
}

func parseCoord(raw string, limit float64) (float64, bool) {
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil || math.IsNaN(v) || math.Abs(v) > limit {
		return 0, false
	}
	return v, true
}
