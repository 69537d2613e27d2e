package dto

import "itinerary-route-service/internal/domain"

type SpotResponse struct {
	ID               string   `json:"id"`
	Name             string   `json:"name"`
	NameLocal        string   `json:"name_local,omitempty"`
	Area             string   `json:"area"`
	Lat              float64  `json:"lat"`
	Lng              float64  `json:"lng"`
	Description      string   `json:"description"`
	Tags             []string `json:"tags"`
	VisitDurationMin int      `json:"visit_duration_min"`
	BestTime         string   `json:"best_time,omitempty"`
}

type ListSpotsResponse struct {
	Spots []SpotResponse `json:"spots"`
}

type AccommodationResponse struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Area        string   `json:"area"`
	Lat         float64  `json:"lat"`
	Lng         float64  `json:"lng"`
	Description string   `json:"description"`
	Advantages  []string `json:"advantages"`
}

type ListAccommodationsResponse struct {
	Accommodations []AccommodationResponse `json:"accommodations"`
}

type ValuesResponse struct {
	Values []string `json:"values"`
}

func NewSpotResponse(s domain.Spot) SpotResponse {
	tags := s.Tags
	if tags == nil {
		tags = []string{}
	}
	return SpotResponse{
		ID:               s.ID,
		Name:             s.Name,
		NameLocal:        s.NameLocal,
		Area:             s.Area,
		Lat:              s.Lat,
		Lng:              s.Lng,
		Description:      s.Description,
		Tags:             tags,
		VisitDurationMin: s.VisitDurationMin,
		BestTime:         s.BestTime,
	}
}

func NewAccommodationResponse(a domain.Accommodation) AccommodationResponse {
	adv := a.Advantages
	if adv == nil {
		adv = []string{}
	}
	return AccommodationResponse{
		ID:          a.ID,
		Name:        a.Name,
		Area:        a.Area,
		Lat:         a.Lat,
		Lng:         a.Lng,
		Description: a.Description,
		Advantages:  adv,
	}
}
