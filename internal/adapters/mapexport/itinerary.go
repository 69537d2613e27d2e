// Package mapexport renders planned itineraries as GeoJSON for map clients.
package mapexport

import (
	"itinerary-route-service/internal/domain"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"
)

// Itinerary returns one point feature per stop in visiting order (the
// accommodation first, with order 0) followed by a line string of the route.
func Itinerary(it domain.Itinerary) *geojson.FeatureCollection {
	fc := geojson.NewFeatureCollection()

	acc := geojson.NewFeature(orb.Point{it.Accommodation.Lng, it.Accommodation.Lat})
	acc.ID = it.Accommodation.ID
	acc.Properties["kind"] = "accommodation"
	acc.Properties["name"] = it.Accommodation.Name
	acc.Properties["order"] = 0
	fc.Append(acc)

	for i, s := range it.Spots {
		f := geojson.NewFeature(orb.Point{s.Lng, s.Lat})
		f.ID = s.ID
		f.Properties["kind"] = "spot"
		f.Properties["name"] = s.Name
		f.Properties["area"] = s.Area
		f.Properties["order"] = i + 1
		f.Properties["visit_duration_min"] = s.VisitDurationMin
		fc.Append(f)
	}

	if len(it.Route.OrderedLocations) >= 2 {
		line := make(orb.LineString, 0, len(it.Route.OrderedLocations))
		for _, l := range it.Route.OrderedLocations {
			line = append(line, orb.Point{l.Lng, l.Lat})
		}
		f := geojson.NewFeature(line)
		f.Properties["kind"] = "route"
		f.Properties["total_distance_km"] = it.Route.TotalDistanceKm
		f.Properties["total_duration_min"] = it.Route.TotalDurationMin
		f.Properties["modes"] = legModes(it.Route.Legs)
		fc.Append(f)
	}

	return fc
}

func legModes(legs []domain.RouteLeg) []string {
	out := make([]string, 0, len(legs))
	for _, l := range legs {
		out = append(out, string(l.TransportMode))
	}
	return out
}
