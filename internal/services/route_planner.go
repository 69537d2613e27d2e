package services

import (
	"itinerary-route-service/internal/domain"
	"itinerary-route-service/internal/geo"
	"math"
)

// Leg classification thresholds and average speeds.
const (
	walkMaxKm   = 0.8
	subwayMaxKm = 20.0

	walkKmh   = 4.0
	subwayKmh = 30.0
	trainKmh  = 50.0

	subwayOverheadMin = 10.0
	trainOverheadMin  = 15.0
)

// Plan a visiting order from start through every destination.
//
// Greedy nearest-neighbor builds the initial tour and 2-opt improves it; the
// start stays first and is never revisited. Each leg is then classified by
// distance and given a duration estimate. The destinations slice is copied and
// never modified. The result is deterministic for identical input.
func OptimizeRoute(start domain.Location, destinations []domain.Location) domain.OptimizedRoute {
	var tour []domain.Location
	switch len(destinations) {
	case 0:
		tour = []domain.Location{start}
	case 1:
		tour = []domain.Location{start, destinations[0]}
	default:
		tour = NearestNeighborTour(start, destinations)
		TwoOpt(tour)
	}

	route := domain.OptimizedRoute{
		OrderedLocations: tour,
		Legs:             make([]domain.RouteLeg, 0, len(tour)-1),
	}
	for i := 1; i < len(tour); i++ {
		leg := AnnotateLeg(tour[i-1], tour[i])
		route.Legs = append(route.Legs, leg)
		route.TotalDistanceKm += leg.DistanceKm
		route.TotalDurationMin += leg.DurationMin
	}

	return route
}

// AnnotateLeg measures the leg and estimates its mode and duration.
func AnnotateLeg(from, to domain.Location) domain.RouteLeg {
	d := geo.Between(from.Coordinates(), to.Coordinates())
	mode := ClassifyMode(d)
	return domain.RouteLeg{
		From:          from,
		To:            to,
		DistanceKm:    d,
		DurationMin:   EstimateDurationMin(d, mode),
		TransportMode: mode,
	}
}

// ClassifyMode maps a straight-line distance to a travel mode:
// under 0.8 km walk, up to and including 20 km subway, beyond that train.
func ClassifyMode(distanceKm float64) domain.TransportMode {
	switch {
	case distanceKm < walkMaxKm:
		return domain.ModeWalk
	case distanceKm <= subwayMaxKm:
		return domain.ModeSubway
	default:
		return domain.ModeTrain
	}
}

// EstimateDurationMin converts a distance to whole minutes for mode,
// adding the fixed waiting overhead of rail modes.
func EstimateDurationMin(distanceKm float64, mode domain.TransportMode) int {
	var minutes float64
	switch mode {
	case domain.ModeSubway:
		minutes = distanceKm/subwayKmh*60 + subwayOverheadMin
	case domain.ModeTrain:
		minutes = distanceKm/trainKmh*60 + trainOverheadMin
	default:
		minutes = distanceKm / walkKmh * 60
	}
	return int(math.Round(minutes))
}
