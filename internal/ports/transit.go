package ports

import (
	"context"
	"itinerary-route-service/internal/domain"
)

// Contract for turning two labeled points into a transit narrative.
type TransitDetailer interface {
	GenerateDetailedRoute(from, to domain.Endpoint) domain.DetailedRoute
}

// Persistent store of synthesized routes keyed by a caller-built string.
type TransitCache interface {
	// Return the cached routes found for keys; missing keys are absent from the map.
	GetMany(ctx context.Context, keys []string) (map[string]domain.DetailedRoute, error)
	// Store many routes at once.
	PutMany(ctx context.Context, routes map[string]domain.DetailedRoute) error
}
