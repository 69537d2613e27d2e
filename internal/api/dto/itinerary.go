package dto

import (
	"itinerary-route-service/internal/domain"
	"time"
)

type PlanItineraryRequest struct {
	AccommodationID string   `json:"accommodation_id"`
	SpotIDs         []string `json:"spot_ids"`
	Tags            []string `json:"tags"`
	IncludeTransit  bool     `json:"include_transit"`
}

type ItineraryResponse struct {
	Accommodation AccommodationResponse   `json:"accommodation"`
	Spots         []SpotResponse          `json:"spots"`
	Route         OptimizedRouteResponse  `json:"route"`
	LegDetails    []DetailedRouteResponse `json:"leg_details,omitempty"`
	TotalVisitMin int                     `json:"total_visit_min"`
	TotalMin      int                     `json:"total_min"`
	TotalTimeText string                  `json:"total_time_text"`
	GeneratedAt   time.Time               `json:"generated_at"`
}

func NewItineraryResponse(it domain.Itinerary) ItineraryResponse {
	res := ItineraryResponse{
		Accommodation: NewAccommodationResponse(it.Accommodation),
		Spots:         make([]SpotResponse, 0, len(it.Spots)),
		Route:         NewOptimizedRouteResponse(it.Route),
		TotalVisitMin: it.TotalVisitMin,
		TotalMin:      it.TotalMin(),
		TotalTimeText: domain.FormatDuration(it.TotalMin()),
		GeneratedAt:   it.GeneratedAt,
	}
	for _, s := range it.Spots {
		res.Spots = append(res.Spots, NewSpotResponse(s))
	}
	for _, d := range it.LegDetails {
		res.LegDetails = append(res.LegDetails, NewDetailedRouteResponse(d))
	}
	return res
}
