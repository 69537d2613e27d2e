package domain

// TransportMode is the travel mode estimated for a single leg or step.
type TransportMode string

const (
	ModeWalk   TransportMode = "walk"
	ModeSubway TransportMode = "subway"
	ModeTrain  TransportMode = "train"
)

// Label returns the display name of the mode.
func (m TransportMode) Label() string {
	switch m {
	case ModeWalk:
		return "Walk"
	case ModeSubway:
		return "Subway"
	case ModeTrain:
		return "Train"
	default:
		return string(m)
	}
}

// Icon returns the pictogram shown next to the mode.
func (m TransportMode) Icon() string {
	switch m {
	case ModeWalk:
		return "🚶"
	case ModeSubway:
		return "🚇"
	case ModeTrain:
		return "🚃"
	default:
		return ""
	}
}

// Represents an opaque waypoint of a route request.
// IDs are unique within a single request; the optimizer never mutates a Location.
type Location struct {
	ID   string
	Name string
	Lat  float64
	Lng  float64
}

func (l Location) Coordinates() Coordinates { return Coordinates{Lat: l.Lat, Lng: l.Lng} }

// Represents one edge of an optimized route.
type RouteLeg struct {
	From          Location
	To            Location
	DistanceKm    float64
	DurationMin   int
	TransportMode TransportMode
}

// Represents the visiting order produced by the route optimizer.
// OrderedLocations starts with the fixed start location and has one more
// element than Legs. Totals are the sums of the leg values.
type OptimizedRoute struct {
	OrderedLocations []Location
	Legs             []RouteLeg
	TotalDistanceKm  float64
	TotalDurationMin int
}
