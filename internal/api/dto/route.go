package dto

import "itinerary-route-service/internal/domain"

type LocationRequest struct {
	ID   string   `json:"id"`
	Name string   `json:"name"`
	Lat  *float64 `json:"lat"`
	Lng  *float64 `json:"lng"`
}

// Location converts the request; ok is false when a coordinate is missing.
func (l LocationRequest) Location() (domain.Location, bool) {
	if l.Lat == nil || l.Lng == nil {
		return domain.Location{}, false
	}
	return domain.Location{ID: l.ID, Name: l.Name, Lat: *l.Lat, Lng: *l.Lng}, true
}

type OptimizeRouteRequest struct {
	Start        *LocationRequest  `json:"start"`
	Destinations []LocationRequest `json:"destinations"`
}

type LocationResponse struct {
	ID   string  `json:"id"`
	Name string  `json:"name"`
	Lat  float64 `json:"lat"`
	Lng  float64 `json:"lng"`
}

type RouteLegResponse struct {
	From          LocationResponse `json:"from"`
	To            LocationResponse `json:"to"`
	DistanceKm    float64          `json:"distance_km"`
	DurationMin   int              `json:"duration_min"`
	TransportMode string           `json:"transport_mode"`
	ModeLabel     string           `json:"mode_label"`
	ModeIcon      string           `json:"mode_icon"`
	DistanceText  string           `json:"distance_text"`
	DurationText  string           `json:"duration_text"`
}

type OptimizedRouteResponse struct {
	OrderedLocations  []LocationResponse `json:"ordered_locations"`
	Legs              []RouteLegResponse `json:"legs"`
	TotalDistanceKm   float64            `json:"total_distance_km"`
	TotalDurationMin  int                `json:"total_duration_min"`
	TotalDistanceText string             `json:"total_distance_text"`
	TotalDurationText string             `json:"total_duration_text"`
}

type EndpointRequest struct {
	Lat   *float64 `json:"lat"`
	Lng   *float64 `json:"lng"`
	Label string   `json:"label"`
}

type TransitRequest struct {
	From *EndpointRequest `json:"from"`
	To   *EndpointRequest `json:"to"`
}

type TransitStepResponse struct {
	Kind                string             `json:"kind"`
	FromLabel           string             `json:"from_label"`
	ToLabel             string             `json:"to_label"`
	Line                *MetroLineResponse `json:"line,omitempty"`
	DurationMin         int                `json:"duration_min"`
	DistanceKm          *float64           `json:"distance_km,omitempty"`
	NarrativeText       string             `json:"narrative_text"`
	TransferStationName *string            `json:"transfer_station_name,omitempty"`
}

type DetailedRouteResponse struct {
	Steps            []TransitStepResponse `json:"steps"`
	TotalDurationMin int                   `json:"total_duration_min"`
	TotalDistanceKm  float64               `json:"total_distance_km"`
	SummaryText      string                `json:"summary_text"`
}

func NewLocationResponse(l domain.Location) LocationResponse {
	return LocationResponse{ID: l.ID, Name: l.Name, Lat: l.Lat, Lng: l.Lng}
}

func NewOptimizedRouteResponse(r domain.OptimizedRoute) OptimizedRouteResponse {
	res := OptimizedRouteResponse{
		OrderedLocations:  make([]LocationResponse, 0, len(r.OrderedLocations)),
		Legs:              make([]RouteLegResponse, 0, len(r.Legs)),
		TotalDistanceKm:   r.TotalDistanceKm,
		TotalDurationMin:  r.TotalDurationMin,
		TotalDistanceText: domain.FormatDistance(r.TotalDistanceKm),
		TotalDurationText: domain.FormatDuration(r.TotalDurationMin),
	}
	for _, l := range r.OrderedLocations {
		res.OrderedLocations = append(res.OrderedLocations, NewLocationResponse(l))
	}
	for _, leg := range r.Legs {
		res.Legs = append(res.Legs, RouteLegResponse{
			From:          NewLocationResponse(leg.From),
			To:            NewLocationResponse(leg.To),
			DistanceKm:    leg.DistanceKm,
			DurationMin:   leg.DurationMin,
			TransportMode: string(leg.TransportMode),
			ModeLabel:     leg.TransportMode.Label(),
			ModeIcon:      leg.TransportMode.Icon(),
			DistanceText:  domain.FormatDistance(leg.DistanceKm),
			DurationText:  domain.FormatDuration(leg.DurationMin),
		})
	}
	return res
}

func NewDetailedRouteResponse(r domain.DetailedRoute) DetailedRouteResponse {
	res := DetailedRouteResponse{
		Steps:            make([]TransitStepResponse, 0, len(r.Steps)),
		TotalDurationMin: r.TotalDurationMin,
		TotalDistanceKm:  r.TotalDistanceKm,
		SummaryText:      r.SummaryText,
	}
	for _, s := range r.Steps {
		step := TransitStepResponse{
			Kind:                string(s.Kind),
			FromLabel:           s.FromLabel,
			ToLabel:             s.ToLabel,
			DurationMin:         s.DurationMin,
			DistanceKm:          s.DistanceKm,
			NarrativeText:       s.NarrativeText,
			TransferStationName: s.TransferStationName,
		}
		if s.Line != nil {
			line := NewMetroLineResponse(*s.Line)
			step.Line = &line
		}
		res.Steps = append(res.Steps, step)
	}
	return res
}
