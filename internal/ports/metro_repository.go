package ports

import (
	"context"
	"itinerary-route-service/internal/domain"
)

// Port: static line and station data used to build the metro graph.
type MetroRepository interface {
	ListLines(ctx context.Context) ([]domain.MetroLine, error)
	ListStations(ctx context.Context) ([]domain.Station, error)
}
