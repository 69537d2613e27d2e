package domain

import "time"

// Planned day: the optimized visiting order plus, when requested,
// a transit narrative for every leg in leg order.
type Itinerary struct {
	Accommodation Accommodation
	Spots         []Spot
	Route         OptimizedRoute
	LegDetails    []DetailedRoute
	TotalVisitMin int
	GeneratedAt   time.Time
}

// TotalMin is travel plus on-site time.
func (i Itinerary) TotalMin() int {
	return i.Route.TotalDurationMin + i.TotalVisitMin
}
