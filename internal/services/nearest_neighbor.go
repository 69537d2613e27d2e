package services

import (
	"itinerary-route-service/internal/domain"
	"itinerary-route-service/internal/geo"
	"math"
)

// Order destinations with a greedy nearest-neighbor walk from start.
//
// At each step the closest unvisited destination is appended. Ties keep the
// destination that comes first in input order, since the best candidate is
// only replaced on a strictly smaller distance.
func NearestNeighborTour(start domain.Location, destinations []domain.Location) []domain.Location {
	tour := make([]domain.Location, 0, len(destinations)+1)
	tour = append(tour, start)

	remaining := make([]domain.Location, len(destinations))
	copy(remaining, destinations)

	current := start
	for len(remaining) > 0 {
		best := -1
		bestDist := math.Inf(1)
		for i, d := range remaining {
			dist := geo.Between(current.Coordinates(), d.Coordinates())
			if dist < bestDist {
				best, bestDist = i, dist
			}
		}

		// NaN coordinates never compare smaller; keep input order for them.
		if best < 0 {
			best = 0
		}

		current = remaining[best]
		tour = append(tour, current)
		remaining = append(remaining[:best], remaining[best+1:]...)
	}

	return tour
}
