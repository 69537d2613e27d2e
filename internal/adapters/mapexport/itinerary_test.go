package mapexport

import (
	"encoding/json"
	"itinerary-route-service/internal/domain"
	"testing"

	"github.com/paulmach/orb"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestItinerary(t *testing.T) {
	hotel := domain.Accommodation{ID: "h", Name: "Hotel", Lat: 35.71, Lng: 139.79}
	spot := domain.Spot{ID: "s", Name: "Temple", Area: "Asakusa", Lat: 35.7148, Lng: 139.7967, VisitDurationMin: 60}
	it := domain.Itinerary{
		Accommodation: hotel,
		Spots:         []domain.Spot{spot},
		Route: domain.OptimizedRoute{
			OrderedLocations: []domain.Location{hotel.Location(), spot.Location()},
			Legs:             []domain.RouteLeg{{From: hotel.Location(), To: spot.Location(), TransportMode: domain.ModeSubway}},
			TotalDistanceKm:  0.9,
			TotalDurationMin: 12,
		},
	}

	fc := Itinerary(it)
	require.Len(t, fc.Features, 3)

	assert.Equal(t, orb.Point{139.79, 35.71}, fc.Features[0].Geometry)
	assert.Equal(t, "accommodation", fc.Features[0].Properties["kind"])
	assert.Equal(t, 1, fc.Features[1].Properties["order"])

	line, ok := fc.Features[2].Geometry.(orb.LineString)
	require.True(t, ok)
	assert.Len(t, line, 2)

	raw, err := fc.MarshalJSON()
	require.NoError(t, err)
	var decoded map[string]any
	require.NoError(t, json.Unmarshal(raw, &decoded))
	assert.Equal(t, "FeatureCollection", decoded["type"])
}

func TestItineraryWithoutRouteLine(t *testing.T) {
	fc := Itinerary(domain.Itinerary{
		Accommodation: domain.Accommodation{ID: "h"},
		Route:         domain.OptimizedRoute{OrderedLocations: []domain.Location{{ID: "h"}}},
	})
	assert.Len(t, fc.Features, 1)
}
