package services

import (
	"itinerary-route-service/internal/domain"
	"itinerary-route-service/internal/geo"
)

// Improve a tour in place with 2-opt moves until no move shortens it.
//
// Index 0 is pinned. For every 1 <= i < j < len(tour) the edges (i-1,i) and
// (j-1,j) are replaced by (i-1,j-1) and (i,j), which reverses tour[i:j].
// A move is applied only when it strictly reduces the tour length.
func TwoOpt(tour []domain.Location) {
	if len(tour) < 4 {
		return
	}

	dist := func(a, b int) float64 {
		return geo.Between(tour[a].Coordinates(), tour[b].Coordinates())
	}

	for improved := true; improved; {
		improved = false
		for i := 1; i < len(tour)-1; i++ {
			for j := i + 1; j < len(tour); j++ {
				before := dist(i-1, i) + dist(j-1, j)
				after := dist(i-1, j-1) + dist(i, j)
				if after < before {
					reverse(tour[i:j])
					improved = true
				}
			}
		}
	}
}

func reverse(s []domain.Location) {
	for i, j := 0, len(s)-1; i < j; i, j = i+1, j-1 {
		s[i], s[j] = s[j], s[i]
	}
}

// TourLengthKm is the sum of consecutive Haversine distances along tour.
func TourLengthKm(tour []domain.Location) float64 {
	points := make([]domain.Coordinates, len(tour))
	for i, l := range tour {
		points[i] = l.Coordinates()
	}
	return geo.PathDistanceKm(points)
}
