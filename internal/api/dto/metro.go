package dto

import "itinerary-route-service/internal/domain"

type MetroLineResponse struct {
	ID           string   `json:"id"`
	Name         string   `json:"name"`
	NameLocal    string   `json:"name_local,omitempty"`
	Color        string   `json:"color"`
	Operator     string   `json:"operator"`
	StationNames []string `json:"station_names"`
}

type ListLinesResponse struct {
	Lines []MetroLineResponse `json:"lines"`
}

type StationResponse struct {
	ID        string   `json:"id"`
	Name      string   `json:"name"`
	NameLocal string   `json:"name_local,omitempty"`
	Lat       float64  `json:"lat"`
	Lng       float64  `json:"lng"`
	LineIDs   []string `json:"line_ids"`
}

type ListStationsResponse struct {
	Stations []StationResponse `json:"stations"`
}

type NearestStationResponse struct {
	Station      StationResponse `json:"station"`
	DistanceKm   float64         `json:"distance_km"`
	DistanceText string          `json:"distance_text"`
}

func NewMetroLineResponse(l domain.MetroLine) MetroLineResponse {
	return MetroLineResponse{
		ID:           l.ID,
		Name:         l.Name,
		NameLocal:    l.NameLocal,
		Color:        l.Color,
		Operator:     string(l.Operator),
		StationNames: append([]string{}, l.StationNames...),
	}
}

func NewStationResponse(s domain.Station) StationResponse {
	return StationResponse{
		ID:        s.ID,
		Name:      s.Name,
		NameLocal: s.NameLocal,
		Lat:       s.Lat,
		Lng:       s.Lng,
		LineIDs:   append([]string{}, s.LineIDs...),
	}
}
