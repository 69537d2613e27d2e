package ports

import (
	"context"
	"itinerary-route-service/internal/domain"
)

// Port: a boundary for retrieving spots and accommodations from a data source.
type SpotRepository interface {
	// Retrieve all spots in listed order.
	ListSpots(ctx context.Context) ([]domain.Spot, error)
	// Retrieve all accommodations in listed order.
	ListAccommodations(ctx context.Context) ([]domain.Accommodation, error)
	// Retrieve one spot; ok is false when the id is unknown.
	GetSpot(ctx context.Context, id string) (spot domain.Spot, ok bool, err error)
	// Retrieve one accommodation; ok is false when the id is unknown.
	GetAccommodation(ctx context.Context, id string) (acc domain.Accommodation, ok bool, err error)
}
