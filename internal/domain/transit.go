package domain

// One step of a synthesized transit narrative.
// Line is set on subway/train steps that ride a known line.
// DistanceKm is set on walking steps only.
// TransferStationName is set on the in-station transfer step.
type TransitStep struct {
	Kind                TransportMode
	FromLabel           string
	ToLabel             string
	Line                *MetroLine
	DurationMin         int
	DistanceKm          *float64
	NarrativeText       string
	TransferStationName *string
}

// Step-by-step itinerary between two points. Steps always has at least one element.
type DetailedRoute struct {
	Steps            []TransitStep
	TotalDurationMin int
	TotalDistanceKm  float64
	SummaryText      string
}

// Endpoint is a raw coordinate pair with a display label.
type Endpoint struct {
	Lat   float64
	Lng   float64
	Label string
}

func (e Endpoint) Coordinates() Coordinates { return Coordinates{Lat: e.Lat, Lng: e.Lng} }
