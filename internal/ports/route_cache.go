package ports

import (
	"context"
	"itinerary-route-service/internal/domain"
)

// Cache for optimized routes. A miss returns ok == false and a nil error.
type RouteCache interface {
	Get(ctx context.Context, key string) (route domain.OptimizedRoute, ok bool, err error)
	Put(ctx context.Context, key string, route domain.OptimizedRoute) error
}
