package api

import (
	"itinerary-route-service/internal/api/handlers"
	"itinerary-route-service/internal/metro"
	"itinerary-route-service/internal/ports"
	"itinerary-route-service/internal/services"
	"net/http"

	"github.com/gorilla/mux"
)

type Deps struct {
	Spots   ports.SpotRepository
	Graph   *metro.Graph
	Planner *services.ItineraryPlanner
}

// NewRouter wires HTTP handlers with their dependencies and returns an http.Handler.
func NewRouter(d Deps) http.Handler {
	r := mux.NewRouter()
	r.NotFoundHandler = http.HandlerFunc(handlers.NotFound)
	r.MethodNotAllowedHandler = http.HandlerFunc(handlers.MethodNotAllowed)

	spots := &handlers.SpotHandler{Repo: d.Spots}
	metroH := &handlers.MetroHandler{Graph: d.Graph}
	routes := &handlers.RouteHandler{Planner: d.Planner}
	itineraries := &handlers.ItineraryHandler{Planner: d.Planner}

	r.HandleFunc("/health", handlers.Health).Methods(http.MethodGet)

	r.HandleFunc("/spots", spots.List).Methods(http.MethodGet)
	r.HandleFunc("/spots/tags", spots.Tags).Methods(http.MethodGet)
	r.HandleFunc("/spots/areas", spots.Areas).Methods(http.MethodGet)
	r.HandleFunc("/accommodations", spots.Accommodations).Methods(http.MethodGet)

	r.HandleFunc("/metro/lines", metroH.Lines).Methods(http.MethodGet)
	r.HandleFunc("/metro/stations", metroH.Stations).Methods(http.MethodGet)
	r.HandleFunc("/metro/lines/{id}", metroH.Line).Methods(http.MethodGet)
	r.HandleFunc("/metro/stations/nearest", metroH.Nearest).Methods(http.MethodGet)
	r.HandleFunc("/metro/stations/{key}", metroH.Station).Methods(http.MethodGet)

	r.HandleFunc("/routes/optimize", routes.Optimize).Methods(http.MethodPost)
	r.HandleFunc("/routes/transit", routes.Transit).Methods(http.MethodPost)

	r.HandleFunc("/itineraries", itineraries.Plan).Methods(http.MethodPost)
	r.HandleFunc("/itineraries/geojson", itineraries.GeoJSON).Methods(http.MethodPost)

	return requestIDMiddleware(loggingMiddleware(r))
}
